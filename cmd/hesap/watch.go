package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hesapmakinesi/hesap/pkg/client"
	"github.com/hesapmakinesi/hesap/pkg/events"
)

func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "watch",
		Short:   "Print the daemon's screen every time it changes",
		GroupID: gAdvanced,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api := apiClient()
			// Fail fast with a friendly error if the daemon is down.
			if _, err := api.GetState(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return watch(ctx, cmd, api)
		},
	}
}

func watch(ctx context.Context, cmd *cobra.Command, api *client.Client) error {
	for ev := range api.SubscribeEvents(ctx) {
		if ev.Name != events.DisplayChanged {
			continue
		}
		payload, err := events.DecodeAs[events.DisplayChangedEvent](ev)
		if err != nil {
			logrus.WithError(err).Error("failed to decode display.changed event")
			continue
		}
		if payload.Button != "" {
			cmd.Printf("[%s] %s\n", payload.Button, payload.Screen)
		} else {
			cmd.Println(payload.Screen)
		}
	}
	return nil
}
