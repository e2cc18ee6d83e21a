package main

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hesapmakinesi/hesap/pkg/config"
)

// configFlags are the keypad and daemon settings that can be written to the
// config file from the command line.
type configFlags struct {
	colorScheme string
	theme       string
	metrics     bool
}

func (f *configFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.colorScheme, "color-scheme", "", "keypad color scheme (light, dark)")
	flags.StringVar(&f.theme, "theme", "", "keypad theme (classic, glass)")
	flags.BoolVar(&f.metrics, "metrics", true, "serve Prometheus metrics at /metrics")
}

// apply sets the flags the user passed on conf. Values are validated before
// anything is changed.
func (f *configFlags) apply(cmd *cobra.Command, conf config.Config) error {
	flags := cmd.Flags()

	scheme := config.ColorScheme(f.colorScheme)
	if flags.Changed("color-scheme") && scheme != config.ColorSchemeLight && scheme != config.ColorSchemeDark {
		return fmt.Errorf("invalid color scheme %q, must be light or dark", f.colorScheme)
	}
	theme := config.Theme(f.theme)
	if flags.Changed("theme") && theme != config.ThemeClassic && theme != config.ThemeGlass {
		return fmt.Errorf("invalid theme %q, must be classic or glass", f.theme)
	}

	if flags.Changed("color-scheme") {
		conf.SetColorScheme(scheme)
	}
	if flags.Changed("theme") {
		conf.SetTheme(theme)
	}
	if flags.Changed("metrics") {
		conf.SetMetricsEnabled(f.metrics)
	}

	return nil
}

// NewConfigureCommand .
func NewConfigureCommand() *cobra.Command {
	var f configFlags

	cmd := &cobra.Command{
		Use:     "configure",
		Short:   "Change settings in the config file",
		GroupID: gAdvanced,
		Args:    cobra.NoArgs,
		Long: `Change settings in the config file.

Only the flags you pass are changed. A running daemon picks the new file up on SIGHUP or restart.`,
		Example: `  hesap configure --color-scheme light --theme glass
  hesap configure --metrics=false`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := config.NewFile(configPath)
			if err != nil {
				return err
			}

			if err := f.apply(cmd, conf); err != nil {
				return err
			}

			err = conf.Save()
			if err != nil {
				return pkgerrors.Wrapf(err, "failed to save config")
			}

			logrus.WithFields(conf.LogrusFields()).Info("config saved")
			cmd.Printf("saved %s\n", configPath)

			return nil
		},
	}

	f.register(cmd)

	return cmd
}
