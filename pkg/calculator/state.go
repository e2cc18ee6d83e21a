package calculator

import "fmt"

// ErrorSentinel is shown after a division by zero. Only ButtonClear leaves it.
const ErrorSentinel = "Error"

// Operation is the binary operation waiting for its right operand.
type Operation int

const (
	OpNone Operation = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
)

var operationNames = map[Operation]string{
	OpNone:     "none",
	OpAdd:      "add",
	OpSubtract: "subtract",
	OpMultiply: "multiply",
	OpDivide:   "divide",
}

func (o Operation) String() string {
	if s, ok := operationNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Operation(%d)", int(o))
}

// MarshalText encodes o as its lower-case name.
func (o Operation) MarshalText() ([]byte, error) {
	s, ok := operationNames[o]
	if !ok {
		return nil, fmt.Errorf("unknown operation %d", int(o))
	}
	return []byte(s), nil
}

// UnmarshalText decodes the names produced by MarshalText.
func (o *Operation) UnmarshalText(text []byte) error {
	for op, name := range operationNames {
		if name == string(text) {
			*o = op
			return nil
		}
	}
	return fmt.Errorf("unknown operation %q", string(text))
}

// Phase is the implicit mode of the state machine.
type Phase string

const (
	// PhaseEntry means digits append to the current value.
	PhaseEntry Phase = "Entry"
	// PhaseAwaitingEntry means the next digit starts a new number.
	PhaseAwaitingEntry Phase = "AwaitingEntry"
	// PhaseError means the display holds ErrorSentinel.
	PhaseError Phase = "Error"
)

// State is one calculator session.
type State struct {
	// Value is the editable entry or ErrorSentinel.
	Value string `json:"value"`
	// Operation is pending until equals, percent or the next operator.
	Operation Operation `json:"operation"`
	// Accumulator is the left operand of Operation.
	Accumulator float64 `json:"accumulator"`
	// AwaitingEntry is set after an operator, equals or percent.
	AwaitingEntry bool `json:"awaitingEntry"`
	// OperatorSymbol is the label of the operator shown next to the
	// accumulator. Digit, decimal and sign presses clear it.
	OperatorSymbol string `json:"operatorSymbol"`
}

// NewState returns the default state.
func NewState() State {
	return State{Value: "0"}
}

// IsError reports whether the display holds ErrorSentinel.
func (s State) IsError() bool {
	return s.Value == ErrorSentinel
}

// Phase derives the state machine mode from the fields.
func (s State) Phase() Phase {
	switch {
	case s.IsError():
		return PhaseError
	case s.AwaitingEntry:
		return PhaseAwaitingEntry
	default:
		return PhaseEntry
	}
}

// Screen is the text a keypad shows: the value, or the accumulator followed
// by the operator symbol while an operator label is displayed.
func (s State) Screen() string {
	if s.OperatorSymbol == "" || s.IsError() {
		return s.Value
	}
	return Format(s.Accumulator) + " " + s.OperatorSymbol
}

// Status is the view of a State returned by the daemon API.
type Status struct {
	State
	Screen string `json:"screen"`
	Phase  Phase  `json:"phase"`
}

// StatusOf builds the API view of s.
func StatusOf(s State) Status {
	return Status{
		State:  s,
		Screen: s.Screen(),
		Phase:  s.Phase(),
	}
}
