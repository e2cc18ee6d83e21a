// Package keypad is the terminal presentation of the calculator: the button
// grid, its colors per color scheme and theme, and the keystroke bindings.
// It only reads calculator state; all arithmetic lives in package calculator.
package keypad
