package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hesapmakinesi/hesap/pkg/daemon"
	"github.com/hesapmakinesi/hesap/pkg/version"
)

var (
	// alwaysAllowNonRootAccess indicates whether to always allow non-root users to access the hesap daemon.
	alwaysAllowNonRootAccess = false
)

// NewDaemonCommand .
func NewDaemonCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "daemon",
		Short:   "Run hesap daemon in the foreground",
		GroupID: gAdvanced,
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			logrus.WithFields(logrus.Fields{
				"version": version.Version,
				"commit":  version.GitCommit,
				"socket":  unixSocketPath,
			}).Info("hesap daemon starting")
			return daemon.Run(configPath, unixSocketPath, alwaysAllowNonRootAccess)
		},
	}

	f := cmd.Flags()

	f.BoolVar(&alwaysAllowNonRootAccess, "allow-non-root-access", false,
		"Always allow non-root users to access the daemon.")

	return cmd
}
