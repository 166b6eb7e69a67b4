package services

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/dayscript/dayscript-windows/events"
	"github.com/dayscript/dayscript-windows/startup"
	"github.com/dayscript/dayscript-windows/utils"
)

type memStore struct {
	values  map[string]string
	openErr error
}

func (s *memStore) Open(startup.Access) (startup.Key, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	return memKey{values: s.values}, nil
}

type memKey struct {
	values map[string]string
}

func (k memKey) SetString(name, value string) error {
	k.values[name] = value
	return nil
}

func (k memKey) GetString(name string) (string, error) {
	v, ok := k.values[name]
	if !ok {
		return "", startup.ErrValueNotFound
	}
	return v, nil
}

func (k memKey) DeleteValue(name string) error {
	delete(k.values, name)
	return nil
}

func (k memKey) Close() error { return nil }

func newTestBus(t *testing.T, store *memStore) (*events.Bus, *[]map[string]any) {
	t.Helper()
	logger := utils.DiscardLogger()
	sent := make([]map[string]any, 0)
	bus := events.NewBus(func(payload string) {
		var msg map[string]any
		if err := json.Unmarshal([]byte(payload), &msg); err != nil {
			t.Fatalf("invalid payload %q: %v", payload, err)
		}
		sent = append(sent, msg)
	}, logger)
	registrar := startup.NewRegistrar(store, startup.WithExecutable(func() (string, error) {
		return `C:\dayscript.exe`, nil
	}))
	NewPluginRegistrant(registrar, logger)(bus)
	return bus, &sent
}

func findReply(sent []map[string]any) map[string]any {
	for _, msg := range sent {
		if msg["kind"] != "event" {
			return msg
		}
	}
	return nil
}

func findEvent(sent []map[string]any, name string) map[string]any {
	for _, msg := range sent {
		if msg["kind"] == "event" && msg["event"] == name {
			return msg
		}
	}
	return nil
}

func TestSetStartupOverChannel(t *testing.T) {
	store := &memStore{values: map[string]string{}}
	bus, sent := newTestBus(t, store)

	bus.Dispatch(`{"id":1,"channel":"dayscript/startup","method":"setStartup","args":{"enable":1}}`)

	reply := findReply(*sent)
	if reply == nil || reply["kind"] != "success" {
		t.Fatalf("unexpected reply: %v", *sent)
	}
	if result := reply["result"].(map[string]any); result["enabled"] != true {
		t.Errorf("enabled = %v, want true", result["enabled"])
	}
	if store.values[startup.DefaultAppName] != `C:\dayscript.exe` {
		t.Errorf("stored values = %v", store.values)
	}
	if findEvent(*sent, events.StartupChanged) == nil {
		t.Error("startup change event not emitted")
	}
}

func TestIsStartupEnabledOverChannel(t *testing.T) {
	store := &memStore{values: map[string]string{startup.DefaultAppName: `C:\other.exe`}}
	bus, sent := newTestBus(t, store)

	bus.Dispatch(`{"id":2,"channel":"dayscript/startup","method":"isStartupEnabled"}`)

	reply := findReply(*sent)
	if result := reply["result"].(map[string]any); result["enabled"] != true {
		t.Errorf("enabled = %v, want true", result["enabled"])
	}
}

func TestDisableStartupOverChannel(t *testing.T) {
	store := &memStore{values: map[string]string{startup.DefaultAppName: `C:\dayscript.exe`}}
	bus, sent := newTestBus(t, store)

	bus.Dispatch(`{"id":3,"channel":"dayscript/startup","method":"setStartup","args":{"enable":false}}`)

	reply := findReply(*sent)
	if result := reply["result"].(map[string]any); result["enabled"] != false {
		t.Errorf("enabled = %v, want false", result["enabled"])
	}
	if len(store.values) != 0 {
		t.Errorf("value not removed: %v", store.values)
	}
}

func TestUnavailableRegistryNotifies(t *testing.T) {
	store := &memStore{values: map[string]string{}, openErr: errors.New("denied")}
	bus, sent := newTestBus(t, store)

	bus.Dispatch(`{"id":4,"channel":"dayscript/startup","method":"setStartup","args":{"enable":true}}`)

	reply := findReply(*sent)
	if reply["kind"] != "success" {
		t.Fatalf("kind = %v, want success", reply["kind"])
	}
	if result := reply["result"].(map[string]any); result["enabled"] != false {
		t.Errorf("enabled = %v, want false", result["enabled"])
	}
	if findEvent(*sent, events.NotificationEvent) == nil {
		t.Error("no notification for unavailable registry")
	}
}

func TestInvalidEnableArgument(t *testing.T) {
	for _, args := range []string{``, `,"args":{}`, `,"args":{"enable":2}`, `,"args":{"enable":"yes"}`} {
		store := &memStore{values: map[string]string{}}
		bus, sent := newTestBus(t, store)

		bus.Dispatch(`{"id":5,"channel":"dayscript/startup","method":"setStartup"` + args + `}`)

		reply := findReply(*sent)
		if reply["kind"] != "error" || reply["code"] != ErrorCodeInvalidArgument {
			t.Errorf("args %q: unexpected reply %v", args, reply)
		}
		if len(store.values) != 0 {
			t.Errorf("args %q: registry changed: %v", args, store.values)
		}
	}
}

func TestUnknownStartupMethod(t *testing.T) {
	bus, sent := newTestBus(t, &memStore{values: map[string]string{}})

	bus.Dispatch(`{"id":6,"channel":"dayscript/startup","method":"toggle"}`)

	if reply := findReply(*sent); reply["kind"] != "notImplemented" {
		t.Errorf("kind = %v, want notImplemented", reply["kind"])
	}
}
