// Package overlay serves the dayscript/overlay channel, which lets the GUI layer change the
// uniform opacity of the host window.
package overlay

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dayscript/dayscript-windows/events"
)

const (
	ErrorCodeInvalidAlpha    = "INVALID_ALPHA"
	ErrorCodeWindowFailure   = "WINDOW_FAILURE"
	invalidAlphaMessage      = "Alpha must be 0~255"
	setTransparentMethodName = "setTransparent"
)

var ErrInvalidAlpha = errors.New(invalidAlphaMessage)

// Op is the closed set of operations the overlay channel understands.
type Op int

const (
	OpUnknown Op = iota
	OpSetTransparent
)

func DecodeOp(method string) Op {
	switch method {
	case setTransparentMethodName:
		return OpSetTransparent
	default:
		return OpUnknown
	}
}

func (o Op) String() string {
	switch o {
	case OpSetTransparent:
		return setTransparentMethodName
	default:
		return "unknown"
	}
}

// Layered is a window whose whole-surface alpha can be set.
// SetLayeredAlpha must enable the layered style before applying alpha.
type Layered interface {
	SetLayeredAlpha(alpha uint8) error
}

type Handler struct {
	window Layered
	logger *slog.Logger
}

func NewHandler(window Layered, logger *slog.Logger) *Handler {
	return &Handler{
		window: window,
		logger: logger,
	}
}

// Register installs the handler on the overlay channel of bus.
func (h *Handler) Register(bus *events.Bus) *events.MethodChannel {
	channel := events.NewMethodChannel(bus, events.OverlayChannel)
	channel.SetMethodCallHandler(h.HandleMethodCall)
	h.logger.Debug("Method channel registered", "channel", channel.Name())
	return channel
}

func (h *Handler) HandleMethodCall(call events.MethodCall, result events.MethodResult) {
	switch DecodeOp(call.Method) {
	case OpSetTransparent:
		h.setTransparent(call, result)
	default:
		result.NotImplemented()
	}
}

func (h *Handler) setTransparent(call events.MethodCall, result events.MethodResult) {
	alpha, err := ParseAlpha(call)
	if err != nil {
		h.logger.Debug("Rejected transparency change", "error", err)
		result.Error(ErrorCodeInvalidAlpha, invalidAlphaMessage, nil)
		return
	}
	if err := h.window.SetLayeredAlpha(alpha); err != nil {
		h.logger.Error("Failed to apply window transparency", "alpha", alpha, "error", err)
		result.Error(ErrorCodeWindowFailure, err.Error(), nil)
		return
	}
	h.logger.Debug("Applied window transparency", "alpha", alpha)
	result.Success(nil)
}

// ParseAlpha extracts the integer "alpha" field from the call arguments.
func ParseAlpha(call events.MethodCall) (uint8, error) {
	var args map[string]json.RawMessage
	if err := call.DecodeArguments(&args); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAlpha, err)
	}
	raw, ok := args["alpha"]
	if !ok {
		return 0, fmt.Errorf("%w: missing alpha", ErrInvalidAlpha)
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var value any
	if err := decoder.Decode(&value); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAlpha, err)
	}
	number, ok := value.(json.Number)
	if !ok {
		return 0, fmt.Errorf("%w: alpha is not a number", ErrInvalidAlpha)
	}
	alpha, err := number.Int64()
	if err != nil {
		return 0, fmt.Errorf("%w: alpha %s is not an integer", ErrInvalidAlpha, number)
	}
	if alpha < 0 || alpha > 255 {
		return 0, fmt.Errorf("%w: alpha %d out of range", ErrInvalidAlpha, alpha)
	}
	return uint8(alpha), nil
}
