package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"

	"github.com/alexflint/go-arg"
	"github.com/dayscript/dayscript-windows/app"
	"github.com/dayscript/dayscript-windows/startup"
	"github.com/dayscript/dayscript-windows/state"
	"github.com/dayscript/dayscript-windows/utils"
)

type args struct {
	Config         string `arg:"--config" default:"config.yaml" help:"Path to the configuration file"`
	LogFolder      string `arg:"--log-folder" help:"Folder to store log files, overrides the configuration"`
	NoFileLog      bool   `arg:"--no-file-log" help:"Disable file logging"`
	EnableStartup  bool   `arg:"--enable-startup" help:"Launch Dayscript at login and exit"`
	DisableStartup bool   `arg:"--disable-startup" help:"Stop launching Dayscript at login and exit"`
	StartupStatus  bool   `arg:"--startup-status" help:"Print whether Dayscript launches at login and exit"`
}

func (args) Version() string {
	return "dayscript " + app.Version
}

func parseArgs() args {
	var a args
	p := arg.MustParse(&a)
	if a.EnableStartup && a.DisableStartup {
		p.Fail("--enable-startup and --disable-startup are mutually exclusive")
	}
	return a
}

func (a args) startupCommand() bool {
	return a.EnableStartup || a.DisableStartup || a.StartupStatus
}

func setup(a args) (*state.SettingsState, *slog.Logger, io.Closer) {
	settings, err := state.GetSettingsState(a.Config)
	if err != nil {
		log.Fatalf("error loading settings: %v", err)
	}

	logFolder := settings.Log.Folder
	if a.LogFolder != "" {
		logFolder = a.LogFolder
	}
	fileLogEnabled := settings.Log.FileEnabled && !a.NoFileLog

	logger, closer := utils.CreateLogger(utils.LoggerOptions{
		Level:       settings.LogLevel(),
		Folder:      logFolder,
		FileEnabled: fileLogEnabled,
	})

	logger.Info("Using config file", "config", a.Config)
	logger.Info("Using log folder", "logFolder", logFolder)
	logger.Info("File logging enabled", "fileLogEnabled", fileLogEnabled)
	logger.Info("Version", "version", app.Version)
	return settings, logger, closer
}

func newRegistrar(settings *state.SettingsState, logger *slog.Logger) *startup.Registrar {
	return startup.NewRegistrar(startup.NewRunKeyStore(),
		startup.WithAppName(settings.Startup.AppName),
		startup.WithLogger(logger),
	)
}

// runStartupCommand applies the startup flags and prints the resulting state to out.
// It returns the process exit code.
func runStartupCommand(a args, registrar *startup.Registrar, out io.Writer) int {
	code := 0
	switch {
	case a.EnableStartup:
		if status := registrar.SetStartup(true); status != startup.StatusApplied {
			code = 1
		}
	case a.DisableStartup:
		if status := registrar.SetStartup(false); status != startup.StatusApplied {
			code = 1
		}
	}

	reg := registrar.State()
	switch {
	case !reg.Supported:
		fmt.Fprintln(out, "startup registration is not supported on this platform")
		return 1
	case reg.Registered && !reg.Current:
		fmt.Fprintf(out, "%s: enabled (registered path is not this executable)\n", registrar.AppName())
	case reg.Registered:
		fmt.Fprintf(out, "%s: enabled\n", registrar.AppName())
	default:
		fmt.Fprintf(out, "%s: disabled\n", registrar.AppName())
	}
	return code
}
