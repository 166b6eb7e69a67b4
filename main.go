//go:build windows && !headless

package main

import (
	"os"
	"runtime"

	"github.com/dayscript/dayscript-windows/app"
	"github.com/dayscript/dayscript-windows/services"
)

func init() {
	// Windows, WebView2 and the message loop must stay on one OS thread.
	runtime.LockOSThread()
}

func main() {
	os.Exit(run())
}

func run() int {
	a := parseArgs()
	settings, logger, closer := setup(a)
	defer closer.Close()

	registrar := newRegistrar(settings, logger)
	if a.startupCommand() {
		return runStartupCommand(a, registrar, os.Stdout)
	}

	base := app.NewWin32Window(settings.Window.QuitOnClose, logger)
	host := app.NewWindow(base,
		app.NewWebViewFactory(app.WebViewOptions{
			StartURL:              settings.WebView.StartURL,
			DataPath:              settings.WebView.DataPath,
			Debug:                 settings.WebView.Debug,
			TransparentBackground: settings.WebView.TransparentBackground,
		}, logger),
		services.NewPluginRegistrant(registrar, logger),
		logger,
	)

	origin := app.Point{X: settings.Window.X, Y: settings.Window.Y}
	size := app.Size{Width: settings.Window.Width, Height: settings.Window.Height}
	if err := base.Create(host, settings.Window.Title, origin, size); err != nil {
		logger.Error("Failed to create window", "error", err)
		return 1
	}

	code := app.RunMessageLoop()
	logger.Info("Message loop finished", "exitCode", code)
	return code
}
