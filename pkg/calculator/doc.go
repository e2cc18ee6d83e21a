// Package calculator implements the keypad calculator engine. It contains:
//
//   - Button: the closed set of 19 keypad buttons and their labels
//   - Operation: the pending binary operation, if any
//   - State: the session record mutated by button presses
//   - Press: the pure transition function (State, Button) -> State
//   - Engine: a mutable holder around State for presentation layers
//
// The engine has four-function arithmetic with a single pending operation. There
// is no precedence and no history. Division by zero moves the display to
// ErrorSentinel, after which only ButtonClear has any effect.
package calculator
