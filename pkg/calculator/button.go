package calculator

import (
	"errors"
	"fmt"
	"strings"
)

// Button is a keypad button.
type Button int

const (
	ButtonZero Button = iota
	ButtonOne
	ButtonTwo
	ButtonThree
	ButtonFour
	ButtonFive
	ButtonSix
	ButtonSeven
	ButtonEight
	ButtonNine
	ButtonDecimal
	ButtonAdd
	ButtonSubtract
	ButtonMultiply
	ButtonDivide
	ButtonEquals
	ButtonClear
	ButtonNegative
	ButtonPercent

	buttonCount
)

// Class groups buttons the way the keypad colors them.
type Class string

const (
	ClassDigit    Class = "digit"
	ClassOperator Class = "operator"
	ClassEquals   Class = "equals"
	ClassFunction Class = "function"
)

// ErrUnknownButton is returned when a name does not map to any button.
var ErrUnknownButton = errors.New("unknown button")

var labels = [buttonCount]string{
	ButtonZero:     "0",
	ButtonOne:      "1",
	ButtonTwo:      "2",
	ButtonThree:    "3",
	ButtonFour:     "4",
	ButtonFive:     "5",
	ButtonSix:      "6",
	ButtonSeven:    "7",
	ButtonEight:    "8",
	ButtonNine:     "9",
	ButtonDecimal:  ".",
	ButtonAdd:      "+",
	ButtonSubtract: "-",
	ButtonMultiply: "×",
	ButtonDivide:   "÷",
	ButtonEquals:   "=",
	ButtonClear:    "AC",
	ButtonNegative: "+/-",
	ButtonPercent:  "%",
}

// aliases are the extra spellings accepted by ParseButton, on top of the
// labels. Keys are lower case.
var aliases = map[string]Button{
	"*":        ButtonMultiply,
	"x":        ButtonMultiply,
	"/":        ButtonDivide,
	":":        ButtonDivide,
	",":        ButtonDecimal,
	"ac":       ButtonClear,
	"c":        ButtonClear,
	"clear":    ButtonClear,
	"±":        ButtonNegative,
	"neg":      ButtonNegative,
	"negate":   ButtonNegative,
	"negative": ButtonNegative,
	"plus":     ButtonAdd,
	"add":      ButtonAdd,
	"minus":    ButtonSubtract,
	"subtract": ButtonSubtract,
	"times":    ButtonMultiply,
	"multiply": ButtonMultiply,
	"divide":   ButtonDivide,
	"equals":   ButtonEquals,
	"percent":  ButtonPercent,
	"decimal":  ButtonDecimal,
	"dot":      ButtonDecimal,
}

// Buttons returns every button in declaration order.
func Buttons() []Button {
	bs := make([]Button, 0, buttonCount)
	for b := ButtonZero; b < buttonCount; b++ {
		bs = append(bs, b)
	}
	return bs
}

// Valid reports whether b is one of the 19 keypad buttons.
func (b Button) Valid() bool {
	return b >= ButtonZero && b < buttonCount
}

// Label returns the text printed on the button.
func (b Button) Label() string {
	if !b.Valid() {
		return ""
	}
	return labels[b]
}

func (b Button) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Button(%d)", int(b))
	}
	return labels[b]
}

// IsDigit reports whether b is one of 0-9.
func (b Button) IsDigit() bool {
	return b >= ButtonZero && b <= ButtonNine
}

// IsOperator reports whether b is one of the four binary operators.
func (b Button) IsOperator() bool {
	return b >= ButtonAdd && b <= ButtonDivide
}

// Operation returns the binary operation pressed by b, or OpNone.
func (b Button) Operation() Operation {
	switch b {
	case ButtonAdd:
		return OpAdd
	case ButtonSubtract:
		return OpSubtract
	case ButtonMultiply:
		return OpMultiply
	case ButtonDivide:
		return OpDivide
	default:
		return OpNone
	}
}

// Class returns the keypad color group of b.
func (b Button) Class() Class {
	switch {
	case b.IsDigit(), b == ButtonDecimal:
		return ClassDigit
	case b.IsOperator():
		return ClassOperator
	case b == ButtonEquals:
		return ClassEquals
	default:
		return ClassFunction
	}
}

// MarshalText encodes b as its label.
func (b Button) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownButton, int(b))
	}
	return []byte(labels[b]), nil
}

// UnmarshalText accepts anything ParseButton accepts.
func (b *Button) UnmarshalText(text []byte) error {
	parsed, err := ParseButton(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseButton maps a label ("7", "×", "AC", "+/-") or an ASCII alias
// ("*", "/", "c", "neg") to a Button.
func ParseButton(s string) (Button, error) {
	s = strings.TrimSpace(s)
	for b := ButtonZero; b < buttonCount; b++ {
		if labels[b] == s {
			return b, nil
		}
	}
	if b, ok := aliases[strings.ToLower(s)]; ok {
		return b, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownButton, s)
}

// ParseButtons parses every name in order, splitting multi-digit numbers such
// as "12.5" into their individual key presses.
func ParseButtons(names []string) ([]Button, error) {
	var out []Button
	for _, name := range names {
		if b, err := ParseButton(name); err == nil {
			out = append(out, b)
			continue
		}
		if !isNumberEntry(name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownButton, name)
		}
		for _, r := range name {
			b, err := ParseButton(string(r))
			if err != nil {
				return nil, err
			}
			out = append(out, b)
		}
	}
	return out, nil
}

func isNumberEntry(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return true
}
