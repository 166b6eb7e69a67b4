package app

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/dayscript/dayscript-windows/events"
	"github.com/dayscript/dayscript-windows/overlay"
	"github.com/google/uuid"
)

const wmFontChange = 0x001D

// Window hosts a GUI engine view inside a native window and serves the overlay channel.
type Window struct {
	base       Base
	newView    ViewFactory
	plugins    func(bus *events.Bus)
	controller ViewController
	state      State
	shown      sync.Once
	id         uuid.UUID
	logger     *slog.Logger
}

// NewWindow returns a host for base. plugins, if set, registers extra channels on the engine bus.
func NewWindow(base Base, newView ViewFactory, plugins func(bus *events.Bus), logger *slog.Logger) *Window {
	id := uuid.New()
	return &Window{
		base:    base,
		newView: newView,
		plugins: plugins,
		state:   StateUninitialized,
		id:      id,
		logger:  logger.With("window", id.String()),
	}
}

func (w *Window) ID() uuid.UUID {
	return w.id
}

func (w *Window) State() State {
	return w.state
}

// OnCreate runs once the base window exists. Any error is terminal for this window.
func (w *Window) OnCreate() error {
	frame := w.base.ClientArea()

	controller, err := w.newView(frame.Width(), frame.Height())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEngineInit, err)
	}
	engine := controller.Engine()
	if engine == nil {
		controller.Release()
		return ErrEngineInit
	}
	view := controller.View()
	if view == nil {
		controller.Release()
		return ErrViewInit
	}
	w.controller = controller

	bus := engine.Messenger()
	if w.plugins != nil {
		w.plugins(bus)
	}
	if err := w.base.SetChildContent(view); err != nil {
		w.releaseController()
		return fmt.Errorf("%w: %v", ErrViewInit, err)
	}

	overlay.NewHandler(w.base, w.logger).Register(bus)
	w.state = StateCreated

	// The engine may deliver the first frame from inside ForceRedraw.
	engine.SetNextFrameCallback(func() {
		if w.state != StateCreated {
			return
		}
		w.shown.Do(func() {
			w.base.Show()
			w.state = StateVisible
			bus.EmitEvent(events.Event{Name: events.WindowVisible, Data: true})
			w.logger.Info("Window shown after first frame")
		})
	})
	controller.ForceRedraw()

	w.logger.Info("Window created", "width", frame.Width(), "height", frame.Height())
	return nil
}

// OnDestroy releases the engine view before the base window is torn down.
func (w *Window) OnDestroy() {
	w.releaseController()
	w.state = StateDestroyed
	w.base.Teardown()
	w.logger.Info("Window destroyed")
}

func (w *Window) MessageHandler(hwnd uintptr, msg uint32, wParam, lParam uintptr) uintptr {
	if w.controller != nil {
		if result, handled := w.controller.HandleTopLevelWindowProc(hwnd, msg, wParam, lParam); handled {
			return result
		}
	}

	switch msg {
	case wmFontChange:
		if w.controller != nil {
			w.controller.Engine().ReloadSystemFonts()
		}
	}

	return w.base.DefaultMessageHandler(hwnd, msg, wParam, lParam)
}

func (w *Window) releaseController() {
	if w.controller == nil {
		return
	}
	w.controller.Release()
	w.controller = nil
}
