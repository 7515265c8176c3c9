package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Errorf("coapdump: %v", err)
		os.Exit(1)
	}
}
