package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hesapmakinesi/hesap/pkg/calculator"
	"github.com/hesapmakinesi/hesap/pkg/config"
	"github.com/hesapmakinesi/hesap/pkg/events"
	"github.com/hesapmakinesi/hesap/pkg/keypad"
)

const clearScreen = "\x1b[H\x1b[2J"

func NewKeypadCommand() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:     "keypad",
		Short:   "Open the interactive keypad",
		GroupID: gBasic,
		Long: `Open the interactive keypad in this terminal.

Type digits, '.', '+', '-', '*', '/', '%' and '=' (or Enter). 'c' or Escape
clears, 'n' toggles the sign and 'q' or Ctrl-C quits.

By default the keypad drives the daemon's calculator and also shows presses
made from other terminals. With --local it runs a private in-process
calculator instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fd := int(os.Stdin.Fd())
			if !term.IsTerminal(fd) {
				return errors.New("keypad needs an interactive terminal")
			}

			if local {
				conf, err := config.NewFile(configPath)
				if err != nil {
					return err
				}
				return withRawTerminal(fd, func() error {
					return runLocalKeypad(os.Stdin, cmd.OutOrStdout(), keypad.PaletteFor(conf.ColorScheme(), conf.Theme()))
				})
			}

			api := apiClient()
			raw, err := api.GetConfig()
			if err != nil {
				return err
			}
			conf := config.NewFileFromConfig(raw, "")
			return withRawTerminal(fd, func() error {
				return runDaemonKeypad(os.Stdin, cmd.OutOrStdout(), keypad.PaletteFor(conf.ColorScheme(), conf.Theme()))
			})
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "use an in-process calculator instead of the daemon")

	return cmd
}

func withRawTerminal(fd int, fn func() error) error {
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to switch terminal to raw mode: %w", err)
	}
	defer func() {
		if err := term.Restore(fd, oldState); err != nil {
			logrus.Errorf("failed to restore terminal: %v", err)
		}
	}()
	return fn()
}

func isQuitKey(r rune) bool {
	return r == 'q' || r == 'Q' || r == 0x03 || r == 0x04
}

// readKeys calls fn with every keypad button typed on in, until a quit key,
// EOF or an error from fn.
func readKeys(in io.Reader, fn func(calculator.Button) error) error {
	br := bufio.NewReader(in)
	for {
		r, _, err := br.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if isQuitKey(r) {
			return nil
		}
		b, ok := keypad.ButtonForKey(r)
		if !ok {
			continue
		}
		if err := fn(b); err != nil {
			return err
		}
	}
}

func runLocalKeypad(in io.Reader, out io.Writer, p keypad.Palette) error {
	e := calculator.NewEngine()
	draw := func() error {
		if _, err := io.WriteString(out, clearScreen); err != nil {
			return err
		}
		return keypad.RenderState(out, p, e.State())
	}

	if err := draw(); err != nil {
		return err
	}
	return readKeys(in, func(b calculator.Button) error {
		e.HandleButtonPress(b)
		return draw()
	})
}

// runDaemonKeypad sends typed buttons to the daemon and redraws from the
// daemon's event stream, so presses from other clients show up too.
func runDaemonKeypad(in io.Reader, out io.Writer, p keypad.Palette) error {
	api := apiClient()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range api.SubscribeEvents(ctx) {
			payload, err := events.DecodeAs[events.DisplayChangedEvent](ev)
			if err != nil {
				logrus.WithError(err).Debug("failed to decode event")
				continue
			}
			_, _ = io.WriteString(out, clearScreen)
			if err := keypad.Render(out, p, payload.Screen); err != nil {
				logrus.WithError(err).Debug("failed to render keypad")
			}
		}
	}()

	err := readKeys(in, func(b calculator.Button) error {
		_, err := api.Press(b)
		return err
	})

	cancel()
	<-done
	return err
}
