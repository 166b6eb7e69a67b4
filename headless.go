//go:build headless

package main

import (
	"os"
)

// In headless mode no window is created; only startup registration is managed.
func main() {
	a := parseArgs()
	settings, logger, closer := setup(a)

	code := runStartupCommand(a, newRegistrar(settings, logger), os.Stdout)
	closer.Close()
	os.Exit(code)
}
