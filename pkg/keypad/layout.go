package keypad

import "github.com/hesapmakinesi/hesap/pkg/calculator"

// Rows is the button grid, top to bottom. The zero key spans two columns.
var Rows = [][]calculator.Button{
	{calculator.ButtonClear, calculator.ButtonNegative, calculator.ButtonPercent, calculator.ButtonDivide},
	{calculator.ButtonSeven, calculator.ButtonEight, calculator.ButtonNine, calculator.ButtonMultiply},
	{calculator.ButtonFour, calculator.ButtonFive, calculator.ButtonSix, calculator.ButtonSubtract},
	{calculator.ButtonOne, calculator.ButtonTwo, calculator.ButtonThree, calculator.ButtonAdd},
	{calculator.ButtonZero, calculator.ButtonDecimal, calculator.ButtonEquals},
}

const (
	columns   = 4
	cellWidth = 6
	cellGap   = 1
)

// width returns how many grid columns b occupies.
func width(b calculator.Button) int {
	if b == calculator.ButtonZero {
		return 2
	}
	return 1
}

// lineWidth is the printable width of one grid row.
func lineWidth() int {
	return columns*cellWidth + (columns-1)*cellGap
}

// ButtonForKey maps a keystroke to a button. Enter means equals, and c or
// Escape clear the display.
func ButtonForKey(r rune) (calculator.Button, bool) {
	switch r {
	case '\r', '\n':
		return calculator.ButtonEquals, true
	case 0x1b, 'c', 'C':
		return calculator.ButtonClear, true
	case 'n', 'N', '_':
		return calculator.ButtonNegative, true
	}
	b, err := calculator.ParseButton(string(r))
	if err != nil {
		return 0, false
	}
	return b, true
}
