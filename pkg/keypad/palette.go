package keypad

import (
	"github.com/fatih/color"

	"github.com/hesapmakinesi/hesap/pkg/calculator"
	"github.com/hesapmakinesi/hesap/pkg/config"
)

// Palette colors each button class and the screen.
type Palette struct {
	Buttons map[calculator.Class]*color.Color
	Screen  *color.Color
}

// PaletteFor picks the palette for a color scheme and theme.
func PaletteFor(scheme config.ColorScheme, theme config.Theme) Palette {
	if theme == config.ThemeGlass {
		text := color.FgWhite
		if scheme == config.ColorSchemeLight {
			text = color.FgBlack
		}
		return Palette{
			Buttons: map[calculator.Class]*color.Color{
				calculator.ClassFunction: color.New(color.BgHiBlack, text),
				calculator.ClassOperator: color.New(color.BgBlue, text),
				calculator.ClassEquals:   color.New(color.BgHiBlue, text, color.Bold),
				calculator.ClassDigit:    color.New(color.BgBlack, text),
			},
			Screen: color.New(color.Bold, text),
		}
	}

	if scheme == config.ColorSchemeLight {
		return Palette{
			Buttons: map[calculator.Class]*color.Color{
				calculator.ClassFunction: color.New(color.BgWhite, color.FgHiBlack),
				calculator.ClassOperator: color.New(color.BgHiCyan, color.FgHiBlack),
				calculator.ClassEquals:   color.New(color.BgHiBlue, color.FgHiWhite),
				calculator.ClassDigit:    color.New(color.BgHiWhite, color.FgHiBlack),
			},
			Screen: color.New(color.Bold, color.FgHiBlack),
		}
	}

	return Palette{
		Buttons: map[calculator.Class]*color.Color{
			calculator.ClassFunction: color.New(color.BgWhite, color.FgHiWhite),
			calculator.ClassOperator: color.New(color.BgBlue, color.FgHiWhite),
			calculator.ClassEquals:   color.New(color.BgHiBlue, color.FgHiWhite),
			calculator.ClassDigit:    color.New(color.BgHiBlack, color.FgHiWhite),
		},
		Screen: color.New(color.Bold, color.FgHiWhite),
	}
}

func (p Palette) button(b calculator.Button) *color.Color {
	if c, ok := p.Buttons[b.Class()]; ok {
		return c
	}
	return color.New(color.Reset)
}
