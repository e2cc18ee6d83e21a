// Package service installs the hesap daemon as a systemd user service.
package service

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"text/template"

	"github.com/sirupsen/logrus"
)

// UnitName is the systemd unit file name.
const UnitName = "hesap.service"

var unitTemplate = template.Must(template.New("unit").Parse(`[Unit]
Description=hesap calculator daemon

[Service]
ExecStart="{{ .Executable }}" daemon --daemon-socket "{{ .SocketPath }}" --config "{{ .ConfigPath }}"
Restart=on-failure

[Install]
WantedBy=default.target
`))

// Options describes one installation.
type Options struct {
	// Executable is the hesap binary; empty means the running executable.
	Executable string
	SocketPath string
	ConfigPath string
	// UnitDir defaults to the systemd user unit directory.
	UnitDir string
	// Systemctl runs systemctl with the given arguments; nil runs
	// "systemctl --user".
	Systemctl func(args ...string) error
}

func (o *Options) complete() error {
	if o.Executable == "" {
		exePath, err := os.Executable()
		if err != nil {
			return fmt.Errorf("failed to get the path to the current executable: %w", err)
		}
		o.Executable = exePath
	}
	exePath, err := filepath.Abs(o.Executable)
	if err != nil {
		return fmt.Errorf("failed to get the absolute path to the current executable: %w", err)
	}
	o.Executable = exePath

	if o.UnitDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("failed to find user config dir: %w", err)
		}
		o.UnitDir = filepath.Join(dir, "systemd", "user")
	}

	if o.Systemctl == nil {
		o.Systemctl = func(args ...string) error {
			out, err := exec.Command("systemctl", append([]string{"--user"}, args...)...).CombinedOutput()
			if err != nil {
				return fmt.Errorf("systemctl %v: %w: %s", args, err, bytes.TrimSpace(out))
			}
			return nil
		}
	}

	return nil
}

// Unit renders the systemd unit for o.
func Unit(o Options) (string, error) {
	var buf bytes.Buffer
	if err := unitTemplate.Execute(&buf, o); err != nil {
		return "", fmt.Errorf("failed to render unit: %w", err)
	}
	return buf.String(), nil
}

// UnitPath returns where the unit file of o lives.
func UnitPath(o Options) string {
	return filepath.Join(o.UnitDir, UnitName)
}

func Install(o Options) error {
	if err := o.complete(); err != nil {
		return err
	}

	logrus.Infof("current executable path: %s", o.Executable)

	unit, err := Unit(o)
	if err != nil {
		return err
	}

	// mkdir -p
	err = os.MkdirAll(o.UnitDir, 0755)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", o.UnitDir, err)
	}

	unitPath := UnitPath(o)

	// warn if the file already exists
	if _, err := os.Stat(unitPath); err == nil {
		logrus.Warnf("%s already exists, overwriting", unitPath)
	}

	logrus.Infof("writing systemd unit to %s", unitPath)
	err = os.WriteFile(unitPath, []byte(unit), 0644)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", unitPath, err)
	}

	logrus.Infof("starting hesap daemon")
	if err := o.Systemctl("daemon-reload"); err != nil {
		return err
	}
	return o.Systemctl("enable", "--now", UnitName)
}
