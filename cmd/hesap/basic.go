package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hesapmakinesi/hesap/pkg/calculator"
	"github.com/hesapmakinesi/hesap/pkg/version"
)

const buttonsHelp = `Buttons are given by label or alias, one per argument:

  digits   0-9 (numbers such as 12.5 are split into key presses)
  decimal  .
  ops      +  -  × or * or x  ÷ or /
  equals   =
  clear    AC or c
  sign     +/- or neg
  percent  %`

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)

			daemonVersion, err := apiClient().GetVersion()
			if err != nil {
				logrus.WithError(err).Debug("failed to get daemon version")
				return
			}
			if daemonVersion != version.Version {
				logrus.WithFields(logrus.Fields{
					"clientVersion": version.Version,
					"daemonVersion": daemonVersion,
				}).Warn("version mismatch between client and daemon")
			}
		},
	}
}

func NewPressCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "press <button>...",
		Short:   "Press buttons on the daemon's calculator",
		GroupID: gBasic,
		Long: `Press buttons on the calculator kept by the daemon and print its screen.

` + buttonsHelp + `

Example:
  hesap press 7 + 3 =`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bs, err := calculator.ParseButtons(args)
			if err != nil {
				return err
			}

			st, err := apiClient().PressAll(bs...)
			if err != nil {
				return fmt.Errorf("failed to press buttons: %w", err)
			}

			logrus.WithFields(logrus.Fields{
				"presses": len(bs),
				"phase":   st.Phase,
			}).Debug("buttons pressed")

			cmd.Println(st.Screen)
			return nil
		},
	}
}

func NewClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "clear",
		Short:   "Press AC on the daemon's calculator",
		GroupID: gBasic,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := apiClient().Clear()
			if err != nil {
				return fmt.Errorf("failed to clear: %w", err)
			}
			cmd.Println(st.Screen)
			return nil
		},
	}
}

func NewEvalCommand() *cobra.Command {
	var showState bool

	cmd := &cobra.Command{
		Use:     "eval <button>...",
		Short:   "Press buttons on a fresh in-process calculator",
		GroupID: gBasic,
		Long: `Press buttons on a fresh calculator in this process, without a daemon,
and print the resulting screen.

` + buttonsHelp + `

Example:
  hesap eval 10 ÷ 4 =`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bs, err := calculator.ParseButtons(args)
			if err != nil {
				return err
			}

			e := calculator.NewEngine()
			e.PressAll(bs...)

			if showState {
				return printStatusJSON(cmd, calculator.StatusOf(e.State()))
			}
			cmd.Println(e.Screen())
			return nil
		},
	}

	cmd.Flags().BoolVar(&showState, "json", false, "print the full calculator state as JSON")

	return cmd
}
