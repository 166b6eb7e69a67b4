package app

import (
	"github.com/dayscript/dayscript-windows/events"
)

// ViewController owns a GUI engine and the view it renders into for the lifetime of one window.
type ViewController interface {
	// Engine returns nil when the engine could not be started.
	Engine() Engine
	// View returns nil when the view could not be created.
	View() View
	// HandleTopLevelWindowProc offers a window message to the engine before the host sees it.
	// handled reports whether the engine consumed the message, in which case result must be
	// returned to the OS unchanged.
	HandleTopLevelWindowProc(hwnd uintptr, msg uint32, wParam, lParam uintptr) (result uintptr, handled bool)
	ForceRedraw()
	// Release frees the engine and its view. It must run while the parent window still exists.
	Release()
}

type Engine interface {
	Messenger() *events.Bus
	// SetNextFrameCallback schedules callback to run on the UI thread after the next frame.
	SetNextFrameCallback(callback func())
	ReloadSystemFonts()
}

// View is the engine's native surface, hosted as child content of a window.
type View interface {
	Attach(parent uintptr) error
	Resize(bounds Rect)
	Focus()
}

// ViewFactory creates an engine view sized to fill a client area of width x height.
type ViewFactory func(width, height int32) (ViewController, error)

// Base is the native top-level window a Window host builds on.
type Base interface {
	Handle() uintptr
	ClientArea() Rect
	SetChildContent(content View) error
	Show() bool
	// SetLayeredAlpha adds the layered extended style and applies a uniform alpha.
	SetLayeredAlpha(alpha uint8) error
	// DefaultMessageHandler is the base window's own message processing.
	DefaultMessageHandler(hwnd uintptr, msg uint32, wParam, lParam uintptr) uintptr
	// Teardown releases base window resources. It runs after the engine has been released.
	Teardown()
}

// Delegate receives lifecycle callbacks from a Base window.
type Delegate interface {
	OnCreate() error
	OnDestroy()
	MessageHandler(hwnd uintptr, msg uint32, wParam, lParam uintptr) uintptr
}
