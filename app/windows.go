//go:build windows

package app

import (
	"fmt"
	"log/slog"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

const (
	windowClassName = "DAYSCRIPT_WINDOW"
	lwaAlpha        = 0x2
)

var (
	user32                         = windows.NewLazySystemDLL("user32.dll")
	procSetLayeredWindowAttributes = user32.NewProc("SetLayeredWindowAttributes")
)

// Every window lives on the UI thread, so the handle table needs no locking.
var (
	windowsByHandle = make(map[win.HWND]*Win32Window)
	creating        *Win32Window
	classRegistered bool
	wndProcCallback = windows.NewCallback(wndProc)
)

// Win32Window is a top-level window that forwards its messages to a Delegate.
type Win32Window struct {
	hwnd        win.HWND
	delegate    Delegate
	child       View
	quitOnClose bool
	destroyed   bool
	logger      *slog.Logger
}

func NewWin32Window(quitOnClose bool, logger *slog.Logger) *Win32Window {
	return &Win32Window{
		quitOnClose: quitOnClose,
		logger:      logger,
	}
}

// Create makes the native window and runs delegate.OnCreate. If OnCreate fails the window is
// destroyed before Create returns.
func (w *Win32Window) Create(delegate Delegate, title string, origin Point, size Size) error {
	if err := registerWindowClass(); err != nil {
		return err
	}
	className, err := syscall.UTF16PtrFromString(windowClassName)
	if err != nil {
		return err
	}
	windowTitle, err := syscall.UTF16PtrFromString(title)
	if err != nil {
		return err
	}

	w.delegate = delegate
	creating = w
	hwnd := win.CreateWindowEx(0, className, windowTitle, win.WS_OVERLAPPEDWINDOW,
		origin.X, origin.Y, size.Width, size.Height, 0, 0, win.GetModuleHandle(nil), nil)
	creating = nil
	if hwnd == 0 {
		return fmt.Errorf("%w: error %d", ErrWindowCreate, win.GetLastError())
	}
	w.bind(hwnd)

	if err := delegate.OnCreate(); err != nil {
		w.logger.Error("Window creation failed", "error", err)
		w.Destroy()
		return err
	}
	return nil
}

func (w *Win32Window) bind(hwnd win.HWND) {
	w.hwnd = hwnd
	windowsByHandle[hwnd] = w
}

// Destroy runs the delegate's teardown once and then destroys the native window.
func (w *Win32Window) Destroy() {
	if !w.destroyed {
		w.destroyed = true
		w.delegate.OnDestroy()
	}
	if w.hwnd != 0 {
		hwnd := w.hwnd
		w.hwnd = 0
		win.DestroyWindow(hwnd)
	}
}

func (w *Win32Window) Handle() uintptr {
	return uintptr(w.hwnd)
}

func (w *Win32Window) ClientArea() Rect {
	var rect win.RECT
	win.GetClientRect(w.hwnd, &rect)
	return Rect{Left: rect.Left, Top: rect.Top, Right: rect.Right, Bottom: rect.Bottom}
}

func (w *Win32Window) SetChildContent(content View) error {
	if w.hwnd == 0 {
		return ErrNoWindow
	}
	if err := content.Attach(uintptr(w.hwnd)); err != nil {
		return err
	}
	w.child = content
	content.Resize(w.ClientArea())
	content.Focus()
	return nil
}

func (w *Win32Window) Show() bool {
	return win.ShowWindow(w.hwnd, win.SW_SHOWNORMAL)
}

func (w *Win32Window) SetLayeredAlpha(alpha uint8) error {
	if w.hwnd == 0 {
		return ErrNoWindow
	}
	style := win.GetWindowLong(w.hwnd, win.GWL_EXSTYLE)
	if style&win.WS_EX_LAYERED == 0 {
		win.SetWindowLong(w.hwnd, win.GWL_EXSTYLE, style|win.WS_EX_LAYERED)
	}

	r, _, err := procSetLayeredWindowAttributes.Call(uintptr(w.hwnd), 0, uintptr(alpha), lwaAlpha)
	if r == 0 {
		// Leave the window style as it was before the failed call.
		win.SetWindowLong(w.hwnd, win.GWL_EXSTYLE, style)
		return fmt.Errorf("SetLayeredWindowAttributes: %w", err)
	}
	return nil
}

func (w *Win32Window) DefaultMessageHandler(hwnd uintptr, msg uint32, wParam, lParam uintptr) uintptr {
	switch msg {
	case win.WM_DESTROY:
		w.hwnd = 0
		w.Destroy()
		if w.quitOnClose {
			win.PostQuitMessage(0)
		}
		return 0
	case win.WM_SIZE:
		if w.child != nil {
			w.child.Resize(w.ClientArea())
		}
		return 0
	case win.WM_ACTIVATE:
		if w.child != nil {
			w.child.Focus()
		}
		return 0
	}
	return win.DefWindowProc(win.HWND(hwnd), msg, wParam, lParam)
}

func (w *Win32Window) Teardown() {
	w.child = nil
}

func registerWindowClass() error {
	if classRegistered {
		return nil
	}
	className, err := syscall.UTF16PtrFromString(windowClassName)
	if err != nil {
		return err
	}
	wc := win.WNDCLASSEX{
		Style:         win.CS_HREDRAW | win.CS_VREDRAW,
		LpfnWndProc:   wndProcCallback,
		HInstance:     win.GetModuleHandle(nil),
		HCursor:       win.LoadCursor(0, win.MAKEINTRESOURCE(win.IDC_ARROW)),
		LpszClassName: className,
	}
	wc.CbSize = uint32(unsafe.Sizeof(wc))
	if win.RegisterClassEx(&wc) == 0 {
		return fmt.Errorf("%w: RegisterClassEx error %d", ErrWindowCreate, win.GetLastError())
	}
	classRegistered = true
	return nil
}

func wndProc(hwnd uintptr, msg uint32, wParam, lParam uintptr) uintptr {
	handle := win.HWND(hwnd)
	w, ok := windowsByHandle[handle]
	if !ok && creating != nil {
		w = creating
		w.bind(handle)
		ok = true
	}
	if !ok {
		return win.DefWindowProc(handle, msg, wParam, lParam)
	}

	result := w.delegate.MessageHandler(hwnd, msg, wParam, lParam)
	if msg == win.WM_NCDESTROY {
		delete(windowsByHandle, handle)
	}
	return result
}

// RunMessageLoop pumps messages for the calling thread until WM_QUIT and returns its exit code.
func RunMessageLoop() int {
	var msg win.MSG
	for win.GetMessage(&msg, 0, 0, 0) > 0 {
		win.TranslateMessage(&msg)
		win.DispatchMessage(&msg)
	}
	return int(msg.WParam)
}
