package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hesapmakinesi/hesap/pkg/calculator"
	"github.com/hesapmakinesi/hesap/pkg/client"
)

var (
	logLevel       = "info"
	unixSocketPath = "/tmp/hesap.sock"
	configPath     = defaultConfigPath()
)

var (
	gBasic        = "Basic:"
	gAdvanced     = "Advanced:"
	commandGroups = []string{
		gBasic,
		gAdvanced,
	}
)

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "hesap.json"
	}
	return filepath.Join(dir, "hesap", "config.json")
}

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	switch {
	case errors.Is(err, client.ErrDaemonNotRunning):
		fmt.Fprintln(os.Stderr, "\nError: hesap daemon is not running")
		fmt.Fprintln(os.Stderr, "  - Start it with 'hesap daemon'")
		fmt.Fprintln(os.Stderr, "  - Or use 'hesap eval' / 'hesap keypad --local' to calculate without a daemon")
	case errors.Is(err, client.ErrPermissionDenied):
		fmt.Fprintln(os.Stderr, "\nError: Permission Denied")
		fmt.Fprintln(os.Stderr, "  - Restart the daemon with '--allow-non-root-access' to grant permissions to your user")
	case errors.Is(err, calculator.ErrUnknownButton):
		fmt.Fprintln(os.Stderr, "\nValid buttons: 0-9 . + - × (*) ÷ (/) = AC (c) +/- (neg) %")
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hesap",
		Short: "hesap is a keypad calculator for the terminal",
		Long: `hesap is a keypad calculator for the terminal.

It keeps one calculator session in a small daemon, so every shell can press
buttons on the same display. Without a daemon, 'hesap eval' and
'hesap keypad --local' run the calculator in-process.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "config file path (.json, .yaml or .yml)")
	globalFlags.StringVar(&unixSocketPath, "daemon-socket", unixSocketPath, "hesap daemon unix socket path")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewPressCommand(),
		NewClearCommand(),
		NewStatusCommand(),
		NewEvalCommand(),
		NewKeypadCommand(),
		NewWatchCommand(),
		NewDaemonCommand(),
		NewConfigureCommand(),
		NewVersionCommand(),
		NewInstallCommand(),
		NewUninstallCommand(),
	)

	return cmd
}

// apiClient builds a client for the socket selected by --daemon-socket.
func apiClient() *client.Client {
	return client.NewClient(unixSocketPath)
}
