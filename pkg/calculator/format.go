package calculator

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// MaxFractionDigits caps the fractional digits of a formatted result.
const MaxFractionDigits = 9

// Format renders a computed result for the display. Integral values have no
// decimal point; other values use plain decimal notation with at most
// MaxFractionDigits fractional digits and no trailing zeros. Nothing is ever
// grouped. Non-finite values render as ErrorSentinel.
func Format(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrorSentinel
	}
	if v == 0 {
		// -0 would otherwise print as "-0".
		return "0"
	}
	if math.Mod(v, 1) == 0 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}

	s := strconv.FormatFloat(v, 'f', MaxFractionDigits, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// Parse converts display text to a number. Malformed text yields 0; text too
// large for a float64 yields ±Inf.
func Parse(s string) float64 {
	v, _ := parse(s)
	return v
}

func parse(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if errors.Is(err, strconv.ErrRange) {
		return v, true
	}
	if err != nil {
		return 0, false
	}
	return v, true
}
