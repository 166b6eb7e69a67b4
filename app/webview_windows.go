//go:build windows

package app

import (
	"log/slog"

	"github.com/dayscript/dayscript-windows/events"
	"github.com/lxn/win"
	"github.com/wailsapp/go-webview2/pkg/edge"
)

type WebViewOptions struct {
	StartURL              string
	DataPath              string
	Debug                 bool
	TransparentBackground bool
}

// NewWebViewFactory returns a ViewFactory backed by Edge WebView2. The view sizes itself to
// the parent's client area once attached, so the requested size is only logged.
func NewWebViewFactory(opts WebViewOptions, logger *slog.Logger) ViewFactory {
	return func(width, height int32) (ViewController, error) {
		logger.Debug("Creating WebView2 view", "width", width, "height", height)
		return newWebViewController(opts, logger), nil
	}
}

type webViewController struct {
	chromium  *edge.Chromium
	bus       *events.Bus
	opts      WebViewOptions
	nextFrame func()
	logger    *slog.Logger
}

func newWebViewController(opts WebViewOptions, logger *slog.Logger) *webViewController {
	c := &webViewController{
		chromium: edge.NewChromium(),
		opts:     opts,
		logger:   logger,
	}
	c.bus = events.NewBus(c.post, logger)
	return c
}

func (c *webViewController) Engine() Engine {
	return webViewEngine{c}
}

func (c *webViewController) View() View {
	return webView{c}
}

func (c *webViewController) HandleTopLevelWindowProc(hwnd uintptr, msg uint32, wParam, lParam uintptr) (uintptr, bool) {
	switch msg {
	case win.WM_MOVE, win.WM_MOVING:
		if err := c.chromium.NotifyParentWindowPositionChanged(); err != nil {
			c.logger.Debug("Failed to notify WebView2 of window move", "error", err)
		}
	}
	return 0, false
}

func (c *webViewController) ForceRedraw() {
	c.chromium.Resize()
}

func (c *webViewController) Release() {
	c.chromium.ShuttingDown()
	controller := c.chromium.GetController()
	if controller == nil {
		return
	}
	if err := c.chromium.Hide(); err != nil {
		c.logger.Debug("Failed to hide WebView2 before release", "error", err)
	}
	controller.Release()
}

func (c *webViewController) post(payload string) {
	c.chromium.Eval(receiveScript(payload))
}

func (c *webViewController) frameRendered() {
	callback := c.nextFrame
	c.nextFrame = nil
	if callback != nil {
		callback()
	}
}

type webViewEngine struct {
	c *webViewController
}

func (e webViewEngine) Messenger() *events.Bus {
	return e.c.bus
}

// SetNextFrameCallback fires after the next completed navigation, which is the first point at
// which WebView2 has painted page content.
func (e webViewEngine) SetNextFrameCallback(callback func()) {
	e.c.nextFrame = callback
}

// ReloadSystemFonts tells the page that system fonts changed; WebView2 refreshes its own font
// cache, but the page may have measured text with the old fonts.
func (e webViewEngine) ReloadSystemFonts() {
	e.c.bus.EmitEvent(events.Event{Name: events.SystemFontsChanged})
}

type webView struct {
	c *webViewController
}

// Attach embeds WebView2 into parent. edge reports fatal initialization errors through its
// error callback and then exits the process.
func (v webView) Attach(parent uintptr) error {
	c := v.c
	chromium := c.chromium
	chromium.DataPath = c.opts.DataPath
	chromium.Debug = c.opts.Debug
	chromium.SetErrorCallback(func(err error) {
		c.logger.Error("WebView2 failure", "error", err)
	})
	chromium.MessageCallback = func(message string, _ *edge.ICoreWebView2, _ *edge.ICoreWebView2WebMessageReceivedEventArgs) {
		c.bus.Dispatch(message)
	}
	chromium.NavigationCompletedCallback = func(_ *edge.ICoreWebView2, _ *edge.ICoreWebView2NavigationCompletedEventArgs) {
		c.frameRendered()
	}
	chromium.ProcessFailedCallback = func(_ *edge.ICoreWebView2, _ *edge.ICoreWebView2ProcessFailedEventArgs) {
		c.logger.Error("WebView2 process failed")
	}

	if !chromium.Embed(parent) || chromium.GetController() == nil {
		return ErrViewInit
	}
	if c.opts.TransparentBackground {
		chromium.SetBackgroundColour(0, 0, 0, 0)
	}
	if settings, err := chromium.GetSettings(); err == nil {
		_ = settings.PutAreDevToolsEnabled(c.opts.Debug)
		_ = settings.PutAreDefaultContextMenusEnabled(c.opts.Debug)
		_ = settings.PutIsStatusBarEnabled(false)
		_ = settings.PutIsZoomControlEnabled(false)
	} else {
		c.logger.Warn("Failed to read WebView2 settings", "error", err)
	}

	chromium.Init(bridgeScript)
	chromium.Navigate(c.opts.StartURL)
	c.logger.Info("WebView2 attached", "url", c.opts.StartURL)
	return nil
}

func (v webView) Resize(bounds Rect) {
	v.c.chromium.ResizeWithBounds(&edge.Rect{
		Left:   bounds.Left,
		Top:    bounds.Top,
		Right:  bounds.Right,
		Bottom: bounds.Bottom,
	})
}

func (v webView) Focus() {
	if v.c.chromium.GetController() == nil {
		return
	}
	v.c.chromium.Focus()
}
