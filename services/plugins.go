package services

import (
	"log/slog"

	"github.com/dayscript/dayscript-windows/events"
	"github.com/dayscript/dayscript-windows/startup"
)

// NewPluginRegistrant returns the hook the window host calls once its engine bus exists.
// Every native channel other than the window-owned overlay channel is registered here.
func NewPluginRegistrant(registrar *startup.Registrar, logger *slog.Logger) func(bus *events.Bus) {
	return func(bus *events.Bus) {
		NewStartupService(registrar, logger).Register(bus)
		logger.Debug("Registered plugins", "channels", []string{events.StartupChannel})
	}
}
