package config

import "github.com/sirupsen/logrus"

// ColorScheme selects the light or dark keypad palette.
type ColorScheme string

const (
	ColorSchemeLight ColorScheme = "light"
	ColorSchemeDark  ColorScheme = "dark"
)

// Theme selects the keypad palette variant.
type Theme string

const (
	ThemeClassic Theme = "classic"
	ThemeGlass   Theme = "glass"
)

type Config interface {
	AllowNonRootAccess() bool
	ColorScheme() ColorScheme
	Theme() Theme
	MetricsEnabled() bool

	SetAllowNonRootAccess(bool)
	SetColorScheme(ColorScheme)
	SetTheme(Theme)
	SetMetricsEnabled(bool)

	LogrusFields() logrus.Fields

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
