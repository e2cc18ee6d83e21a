package keypad

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/hesapmakinesi/hesap/pkg/calculator"
	"github.com/hesapmakinesi/hesap/pkg/config"
)

func TestRows_CoverEveryButton(t *testing.T) {
	seen := map[calculator.Button]int{}
	for _, row := range Rows {
		cols := 0
		for _, b := range row {
			seen[b]++
			cols += width(b)
		}
		if cols != columns {
			t.Errorf("row %v spans %d columns, want %d", row, cols, columns)
		}
	}
	for _, b := range calculator.Buttons() {
		if seen[b] != 1 {
			t.Errorf("button %v appears %d times", b, seen[b])
		}
	}
}

func TestButtonForKey(t *testing.T) {
	tests := []struct {
		key  rune
		want calculator.Button
		ok   bool
	}{
		{'7', calculator.ButtonSeven, true},
		{'.', calculator.ButtonDecimal, true},
		{'*', calculator.ButtonMultiply, true},
		{'/', calculator.ButtonDivide, true},
		{'\r', calculator.ButtonEquals, true},
		{'=', calculator.ButtonEquals, true},
		{'c', calculator.ButtonClear, true},
		{0x1b, calculator.ButtonClear, true},
		{'n', calculator.ButtonNegative, true},
		{'%', calculator.ButtonPercent, true},
		{'q', 0, false},
	}
	for _, tt := range tests {
		got, ok := ButtonForKey(tt.key)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ButtonForKey(%q) = %v, %v; want %v, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRender(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	e := calculator.NewEngine()
	e.PressAll(calculator.ButtonOne, calculator.ButtonTwo, calculator.ButtonAdd)

	var buf bytes.Buffer
	if err := RenderState(&buf, PaletteFor(config.ColorSchemeDark, config.ThemeClassic), e.State()); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\r\n"), "\r\n")
	if len(lines) != 2+len(Rows) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), 2+len(Rows), buf.String())
	}
	if got := strings.TrimSpace(lines[0]); got != "12 +" {
		t.Errorf("screen line = %q, want %q", got, "12 +")
	}
	for _, label := range []string{"AC", "+/-", "÷", "×", "="} {
		if !strings.Contains(buf.String(), label) {
			t.Errorf("output missing %q", label)
		}
	}
}

func TestFit(t *testing.T) {
	if got := fit("123456", 4); got != "…456" {
		t.Errorf("fit() = %q, want %q", got, "…456")
	}
	if got := fit("12", 4); got != "12" {
		t.Errorf("fit() = %q, want %q", got, "12")
	}
}

func TestPaletteFor(t *testing.T) {
	for _, scheme := range []config.ColorScheme{config.ColorSchemeLight, config.ColorSchemeDark} {
		for _, theme := range []config.Theme{config.ThemeClassic, config.ThemeGlass} {
			p := PaletteFor(scheme, theme)
			for _, c := range []calculator.Class{calculator.ClassDigit, calculator.ClassOperator, calculator.ClassEquals, calculator.ClassFunction} {
				if p.Buttons[c] == nil {
					t.Errorf("%s/%s palette has no color for %s", scheme, theme, c)
				}
			}
			if p.Screen == nil {
				t.Errorf("%s/%s palette has no screen color", scheme, theme)
			}
		}
	}
}
