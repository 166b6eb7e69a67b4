package services

import (
	"log/slog"

	"github.com/dayscript/dayscript-windows/events"
)

type NotificationService struct {
	bus    *events.Bus
	logger *slog.Logger
}

func NewNotificationService(bus *events.Bus, logger *slog.Logger) *NotificationService {
	return &NotificationService{
		bus:    bus,
		logger: logger,
	}
}

func (n *NotificationService) Notify(notification events.Notification) {
	n.bus.EmitEvent(events.Event{
		Name: events.NotificationEvent,
		Data: notification,
	})
	n.logger.Info("Notification", "title", notification.Title, "message", notification.Message, "level", notification.Level)
}
