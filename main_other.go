//go:build !windows && !headless

package main

import (
	"os"
)

func main() {
	a := parseArgs()
	settings, logger, closer := setup(a)

	if a.startupCommand() {
		code := runStartupCommand(a, newRegistrar(settings, logger), os.Stdout)
		closer.Close()
		os.Exit(code)
	}

	logger.Error("The Dayscript window host only runs on Windows")
	closer.Close()
	os.Exit(1)
}
