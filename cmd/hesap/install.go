package main

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hesapmakinesi/hesap/pkg/config"
	"github.com/hesapmakinesi/hesap/pkg/utils/service"
)

var gInstallation = "Installation:"

func init() {
	commandGroups = append(commandGroups, gInstallation)
}

// NewInstallCommand .
func NewInstallCommand() *cobra.Command {
	allowNonRootAccess := false
	var settings configFlags

	cmd := &cobra.Command{
		Use:     "install",
		Short:   "Install hesap daemon as a systemd user service",
		GroupID: gInstallation,
		Args:    cobra.NoArgs,
		Long: `Install hesap daemon as a systemd user service.

This keeps one calculator session running in the background and starts it on login.

By default, only the owner of the socket can reach the daemon. Use --allow-non-root-access to let every local user press buttons on the shared display.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := config.NewFile(configPath)
			if err != nil {
				return err
			}

			conf.SetAllowNonRootAccess(allowNonRootAccess)
			if allowNonRootAccess {
				logrus.Info("every local user is allowed to access the hesap daemon.")
			}

			if err := settings.apply(cmd, conf); err != nil {
				return err
			}

			err = conf.Save()
			if err != nil {
				return pkgerrors.Wrapf(err, "failed to save config")
			}

			opts := service.Options{
				SocketPath: unixSocketPath,
				ConfigPath: configPath,
			}
			err = service.Install(opts)
			if err != nil {
				return fmt.Errorf("failed to install daemon: %w", err)
			}

			logrus.Infof("installation succeeded")

			cmd.Println("systemd will use the current binary at startup, so please do not move it. Once it is moved or deleted, run `hesap install' again.")

			return nil
		},
	}

	cmd.Flags().BoolVar(&allowNonRootAccess, "allow-non-root-access", false, "Allow every local user to access hesap daemon.")
	settings.register(cmd)

	return cmd
}

// NewUninstallCommand .
func NewUninstallCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "uninstall",
		Short:   "Uninstall hesap daemon service",
		GroupID: gInstallation,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := service.Uninstall(service.Options{
				SocketPath: unixSocketPath,
				ConfigPath: configPath,
			})
			if err != nil {
				return fmt.Errorf("failed to uninstall daemon: %w", err)
			}

			cmd.Println("successfully uninstalled hesap daemon")
			return nil
		},
	}
}
