package keypad

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/hesapmakinesi/hesap/pkg/calculator"
)

// Render draws the screen line and the button grid. Lines end in "\r\n" so
// the output stays aligned while the terminal is in raw mode.
func Render(w io.Writer, p Palette, screen string) error {
	var sb strings.Builder

	sb.WriteString(p.Screen.Sprint(padLeft(fit(screen, lineWidth()), lineWidth())))
	sb.WriteString("\r\n\r\n")

	for _, row := range Rows {
		for i, b := range row {
			if i > 0 {
				sb.WriteString(strings.Repeat(" ", cellGap))
			}
			cw := width(b)*cellWidth + (width(b)-1)*cellGap
			sb.WriteString(p.button(b).Sprint(center(b.Label(), cw)))
		}
		sb.WriteString("\r\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// RenderState draws s as a keypad would show it.
func RenderState(w io.Writer, p Palette, s calculator.State) error {
	return Render(w, p, s.Screen())
}

// fit keeps the rightmost n runes of s, marking a cut with "…".
func fit(s string, n int) string {
	l := utf8.RuneCountInString(s)
	if l <= n {
		return s
	}
	r := []rune(s)
	return "…" + string(r[l-n+1:])
}

func padLeft(s string, n int) string {
	l := utf8.RuneCountInString(s)
	if l >= n {
		return s
	}
	return strings.Repeat(" ", n-l) + s
}

func center(s string, n int) string {
	l := utf8.RuneCountInString(s)
	if l >= n {
		return s
	}
	left := (n - l) / 2
	return fmt.Sprintf("%s%s%s", strings.Repeat(" ", left), s, strings.Repeat(" ", n-l-left))
}
