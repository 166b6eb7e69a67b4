package events

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ErrNoArguments is returned by DecodeArguments when the call carried no argument value.
var ErrNoArguments = errors.New("method call has no arguments")

// MethodCall is a single invocation received on a named channel.
type MethodCall struct {
	Method    string
	Arguments json.RawMessage
}

// HasArguments reports whether the call carried a non-null argument value.
func (c MethodCall) HasArguments() bool {
	trimmed := bytes.TrimSpace(c.Arguments)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// DecodeArguments unmarshals the call arguments into v.
func (c MethodCall) DecodeArguments(v any) error {
	if !c.HasArguments() {
		return ErrNoArguments
	}
	return json.Unmarshal(c.Arguments, v)
}

// MethodResult receives exactly one outcome for a MethodCall.
type MethodResult interface {
	Success(result any)
	Error(code, message string, details any)
	NotImplemented()
}

type MethodCallHandler func(call MethodCall, result MethodResult)

// MethodChannel is a named bidirectional call interface on a Bus.
type MethodChannel struct {
	name string
	bus  *Bus
}

func NewMethodChannel(bus *Bus, name string) *MethodChannel {
	return &MethodChannel{
		name: name,
		bus:  bus,
	}
}

func (c *MethodChannel) Name() string {
	return c.name
}

// SetMethodCallHandler installs handler for the channel, replacing any previous one.
// A nil handler unregisters the channel.
func (c *MethodChannel) SetMethodCallHandler(handler MethodCallHandler) {
	c.bus.SetMethodCallHandler(c.name, handler)
}
