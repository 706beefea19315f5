package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Debugf("Command failed: %v", err)
		os.Exit(1)
	}
}
