package services

import (
	"encoding/json"
	"log/slog"

	"github.com/dayscript/dayscript-windows/events"
	"github.com/dayscript/dayscript-windows/startup"
)

const ErrorCodeInvalidArgument = "INVALID_ARGUMENT"

type startupOp int

const (
	startupOpUnknown startupOp = iota
	startupOpSet
	startupOpIsEnabled
)

func decodeStartupOp(method string) startupOp {
	switch method {
	case "setStartup":
		return startupOpSet
	case "isStartupEnabled":
		return startupOpIsEnabled
	default:
		return startupOpUnknown
	}
}

type StartupStatus struct {
	Enabled bool `json:"enabled"`
}

// StartupService exposes the startup registrar on the dayscript/startup channel.
type StartupService struct {
	registrar *startup.Registrar
	notifier  *NotificationService
	bus       *events.Bus
	logger    *slog.Logger
}

func NewStartupService(registrar *startup.Registrar, logger *slog.Logger) *StartupService {
	return &StartupService{
		registrar: registrar,
		logger:    logger,
	}
}

func (s *StartupService) Register(bus *events.Bus) {
	s.bus = bus
	s.notifier = NewNotificationService(bus, s.logger)
	channel := events.NewMethodChannel(bus, events.StartupChannel)
	channel.SetMethodCallHandler(s.HandleMethodCall)
	s.logger.Debug("Method channel registered", "channel", channel.Name())
}

func (s *StartupService) HandleMethodCall(call events.MethodCall, result events.MethodResult) {
	switch decodeStartupOp(call.Method) {
	case startupOpSet:
		enable, ok := parseEnable(call)
		if !ok {
			result.Error(ErrorCodeInvalidArgument, "enable must be a boolean or 0/1", nil)
			return
		}
		s.SetStartup(enable)
		result.Success(StartupStatus{Enabled: s.registrar.IsStartupEnabled()})
	case startupOpIsEnabled:
		result.Success(StartupStatus{Enabled: s.registrar.IsStartupEnabled()})
	default:
		result.NotImplemented()
	}
}

// SetStartup applies enable and tells the GUI layer about the resulting state.
func (s *StartupService) SetStartup(enable bool) startup.Status {
	status := s.registrar.SetStartup(enable)
	if s.bus == nil {
		return status
	}
	if status != startup.StatusApplied {
		s.notifier.Notify(events.NewNotification("Startup", "Could not change the startup setting", "warning"))
	}
	s.bus.EmitEvent(events.Event{
		Name: events.StartupChanged,
		Data: StartupStatus{Enabled: s.registrar.IsStartupEnabled()},
	})
	return status
}

func parseEnable(call events.MethodCall) (bool, bool) {
	var args map[string]json.RawMessage
	if err := call.DecodeArguments(&args); err != nil {
		return false, false
	}
	raw, ok := args["enable"]
	if !ok {
		return false, false
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return false, false
	}
	switch v := value.(type) {
	case bool:
		return v, true
	case float64:
		if v == 0 || v == 1 {
			return v == 1, true
		}
	}
	return false, false
}
