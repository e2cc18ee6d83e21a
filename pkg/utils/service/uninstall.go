package service

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

func Uninstall(o Options) error {
	if err := o.complete(); err != nil {
		return err
	}

	logrus.Infof("stopping hesap daemon")
	if err := o.Systemctl("disable", "--now", UnitName); err != nil {
		logrus.Warnf("failed to stop %s: %v", UnitName, err)
	}

	unitPath := UnitPath(o)

	// if the file doesn't exist, we don't need to remove it
	_, err := os.Stat(unitPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", unitPath, err)
	}

	logrus.Infof("removing %s", unitPath)
	err = os.Remove(unitPath)
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", unitPath, err)
	}

	return o.Systemctl("daemon-reload")
}
