package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hesapmakinesi/hesap/pkg/calculator"
	"github.com/hesapmakinesi/hesap/pkg/config"
)

func NewStatusCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "status",
		GroupID: gBasic,
		Short:   "Get the current state of the daemon's calculator",
		Long:    `Get the calculator display, the pending operation and the daemon configuration.`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api := apiClient()

			st, err := api.GetState()
			if err != nil {
				return fmt.Errorf("failed to get state: %w", err)
			}

			if asJSON {
				return printStatusJSON(cmd, *st)
			}

			raw, err := api.GetConfig()
			if err != nil {
				return fmt.Errorf("failed to get config: %w", err)
			}
			conf := config.NewFileFromConfig(raw, "")

			cmd.Println(bold("Display:"))
			cmd.Printf("  Screen: %s\n", bold("%s", st.Screen))
			cmd.Printf("  Value: %s\n", st.Value)
			cmd.Printf("  State: %s\n", phaseText(st.Phase))

			cmd.Println()

			cmd.Println(bold("Pending operation:"))
			if st.Operation == calculator.OpNone {
				cmd.Println("  None")
			} else {
				cmd.Printf("  Operation: %s\n", bold("%s", st.Operation))
				cmd.Printf("  Left operand: %s\n", calculator.Format(st.Accumulator))
				if st.OperatorSymbol == "" {
					cmd.Println("    The operator label is hidden, but the operation is still pending.")
				}
			}

			cmd.Println()

			cmd.Println(bold("Configuration:"))
			cmd.Printf("  Color scheme: %s\n", bold("%s", conf.ColorScheme()))
			cmd.Printf("  Theme: %s\n", bold("%s", conf.Theme()))
			cmd.Printf("  Metrics endpoint: %s\n", bool2Text(conf.MetricsEnabled()))
			cmd.Printf("  Allow non-root users to access the daemon: %s\n", bool2Text(conf.AllowNonRootAccess()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the state as JSON")

	return cmd
}

func printStatusJSON(cmd *cobra.Command, st calculator.Status) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(st)
}

func phaseText(p calculator.Phase) string {
	switch p {
	case calculator.PhaseError:
		return color.New(color.Bold, color.FgRed).Sprint("error (press AC)")
	case calculator.PhaseAwaitingEntry:
		return color.New(color.Bold, color.FgYellow).Sprint("awaiting entry")
	default:
		return color.New(color.Bold, color.FgGreen).Sprint("entry")
	}
}

func bool2Text(b bool) string {
	if b {
		return color.New(color.Bold, color.FgGreen).Sprint("✔")
	}
	return color.New(color.Bold, color.FgRed).Sprint("✘")
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
