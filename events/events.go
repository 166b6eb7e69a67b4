package events

import (
	"github.com/google/uuid"
)

// Channel names registered on the engine bus
const (
	OverlayChannel = "dayscript/overlay"
	StartupChannel = "dayscript/startup"
)

const (
	WindowVisible      = "window/visible"
	SystemFontsChanged = "window/fontsChanged"
)

const (
	StartupChanged = "startup/changed"
)

const (
	NotificationEvent = "notification"
)

type Notification struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Level   string `json:"level"` // info, warning, error
	Id      string `json:"id"`    // unique id for the notification
}

type Event struct {
	Name string // Name of the event
	Data interface{}
}

func NewNotification(title, message, level string) Notification {
	return Notification{
		Title:   title,
		Message: message,
		Level:   level,
		Id:      uuid.New().String(),
	}
}
