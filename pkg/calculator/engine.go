package calculator

import "strings"

// Press applies one button press to s and returns the resulting state.
func Press(s State, b Button) State {
	if s.IsError() && b != ButtonClear {
		return s
	}

	switch {
	case b.IsOperator():
		return pressOperator(s, b)
	case b.IsDigit():
		return pressDigit(s, b)
	}

	switch b {
	case ButtonEquals:
		next, ok := resolve(s)
		if !ok {
			return next
		}
		next.Operation = OpNone
		next.Accumulator = 0
		next.AwaitingEntry = true
		next.OperatorSymbol = ""
		return next

	case ButtonClear:
		return NewState()

	case ButtonDecimal:
		switch {
		case s.AwaitingEntry:
			s.Value = "0."
			s.AwaitingEntry = false
			s.OperatorSymbol = ""
		case !strings.Contains(s.Value, "."):
			s.Value += "."
		}
		return s

	case ButtonNegative:
		// The pending operation is kept; only its label is dropped.
		if v, ok := parse(s.Value); ok {
			s.Value = Format(-v)
		}
		s.OperatorSymbol = ""
		return s

	case ButtonPercent:
		return pressPercent(s)
	}

	return s
}

func pressOperator(s State, b Button) State {
	if s.Operation != OpNone && !s.AwaitingEntry {
		next, ok := resolve(s)
		if !ok {
			return next
		}
		s = next
	}
	s.Accumulator = Parse(s.Value)
	s.Operation = b.Operation()
	s.OperatorSymbol = b.Label()
	s.AwaitingEntry = true
	return s
}

func pressDigit(s State, b Button) State {
	switch {
	case s.AwaitingEntry:
		s.Value = b.Label()
		s.AwaitingEntry = false
		s.OperatorSymbol = ""
	case s.Value == "0":
		s.Value = b.Label()
	default:
		s.Value += b.Label()
	}
	return s
}

func pressPercent(s State) State {
	cur, ok := parse(s.Value)
	if s.Operation != OpNone {
		if !ok {
			return s
		}
		s.Value = Format(s.Accumulator * (cur / 100))
		s.Accumulator = 0
		s.Operation = OpNone
		s.AwaitingEntry = true
		s.OperatorSymbol = ""
		return s
	}

	if ok {
		s.Value = Format(cur / 100)
	}
	s.AwaitingEntry = true
	s.OperatorSymbol = ""
	return s
}

// resolve applies the pending operation with the display value as the right
// operand and writes the formatted result to the display. With no pending
// operation the result is 0. It reports false when the press must stop
// because the display moved to ErrorSentinel.
func resolve(s State) (State, bool) {
	rhs := Parse(s.Value)

	var result float64
	switch s.Operation {
	case OpAdd:
		result = s.Accumulator + rhs
	case OpSubtract:
		result = s.Accumulator - rhs
	case OpMultiply:
		result = s.Accumulator * rhs
	case OpDivide:
		if rhs == 0 {
			s.Value = ErrorSentinel
			return s, false
		}
		result = s.Accumulator / rhs
	}

	s.Value = Format(result)
	return s, !s.IsError()
}

// Engine holds the state of one session. It is not safe for concurrent use.
type Engine struct {
	state State
}

// NewEngine returns an engine in the default state.
func NewEngine() *Engine {
	return &Engine{state: NewState()}
}

// HandleButtonPress applies b to the session.
func (e *Engine) HandleButtonPress(b Button) {
	e.state = Press(e.state, b)
}

// PressAll applies every button in order.
func (e *Engine) PressAll(bs ...Button) {
	for _, b := range bs {
		e.HandleButtonPress(b)
	}
}

// Value returns the display value.
func (e *Engine) Value() string {
	return e.state.Value
}

// OperatorSymbol returns the label of the displayed pending operator.
func (e *Engine) OperatorSymbol() string {
	return e.state.OperatorSymbol
}

// Screen returns the text a keypad should show.
func (e *Engine) Screen() string {
	return e.state.Screen()
}

// State returns a copy of the session state.
func (e *Engine) State() State {
	return e.state
}
