package events

import (
	"encoding/json"
	"log/slog"
	"sync"
)

const (
	replySuccess        = "success"
	replyError          = "error"
	replyNotImplemented = "notImplemented"
	replyEvent          = "event"
)

// Poster delivers an encoded message to the GUI layer.
type Poster func(payload string)

type request struct {
	ID      json.RawMessage `json:"id,omitempty"`
	Channel string          `json:"channel"`
	Method  string          `json:"method"`
	Args    json.RawMessage `json:"args,omitempty"`
}

type envelope struct {
	ID      json.RawMessage `json:"id,omitempty"`
	Kind    string          `json:"kind"`
	Result  any             `json:"result,omitempty"`
	Code    string          `json:"code,omitempty"`
	Message string          `json:"message,omitempty"`
	Details any             `json:"details,omitempty"`
	Event   string          `json:"event,omitempty"`
	Data    any             `json:"data,omitempty"`
}

// Bus routes method calls from the GUI layer to the handler registered for their channel
// and carries native events back. It is driven from the UI thread.
type Bus struct {
	sync.RWMutex
	handlers map[string]MethodCallHandler
	post     Poster
	logger   *slog.Logger
}

func NewBus(post Poster, logger *slog.Logger) *Bus {
	return &Bus{
		handlers: make(map[string]MethodCallHandler),
		post:     post,
		logger:   logger,
	}
}

// SetMethodCallHandler registers handler under channel. A nil handler removes the channel.
func (b *Bus) SetMethodCallHandler(channel string, handler MethodCallHandler) {
	b.Lock()
	defer b.Unlock()
	if handler == nil {
		delete(b.handlers, channel)
		return
	}
	b.handlers[channel] = handler
}

// HasChannel reports whether a handler is registered under channel.
func (b *Bus) HasChannel(channel string) bool {
	b.RLock()
	defer b.RUnlock()
	_, ok := b.handlers[channel]
	return ok
}

// Dispatch decodes one raw message from the GUI layer and hands it to its channel handler.
// Malformed messages are logged and dropped.
func (b *Bus) Dispatch(raw string) {
	var req request
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		b.logger.Warn("Dropping malformed channel message", "error", err)
		return
	}
	if req.Channel == "" {
		b.logger.Warn("Dropping channel message without channel name", "method", req.Method)
		return
	}

	b.RLock()
	handler, ok := b.handlers[req.Channel]
	b.RUnlock()

	result := &methodResult{bus: b, id: req.ID, channel: req.Channel, method: req.Method}
	if !ok {
		result.NotImplemented()
		return
	}
	handler(MethodCall{Method: req.Method, Arguments: req.Args}, result)
}

// EmitEvent sends a native event to the GUI layer.
func (b *Bus) EmitEvent(event Event) {
	b.send(envelope{Kind: replyEvent, Event: event.Name, Data: event.Data})
}

func (b *Bus) send(env envelope) {
	payload, err := json.Marshal(env)
	if err != nil {
		b.logger.Error("Failed to encode channel message", "kind", env.Kind, "error", err)
		return
	}
	if b.post == nil {
		return
	}
	b.post(string(payload))
}

// methodResult answers a single request; only the first response is delivered.
type methodResult struct {
	bus       *Bus
	id        json.RawMessage
	channel   string
	method    string
	responded bool
}

func (r *methodResult) Success(result any) {
	r.respond(envelope{Kind: replySuccess, Result: result})
}

func (r *methodResult) Error(code, message string, details any) {
	r.respond(envelope{Kind: replyError, Code: code, Message: message, Details: details})
}

func (r *methodResult) NotImplemented() {
	r.respond(envelope{Kind: replyNotImplemented})
}

func (r *methodResult) respond(env envelope) {
	if r.responded {
		r.bus.logger.Warn("Ignoring repeated channel response", "channel", r.channel, "method", r.method, "kind", env.Kind)
		return
	}
	r.responded = true
	env.ID = r.id
	r.bus.send(env)
}
