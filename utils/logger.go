package utils

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	slogmulti "github.com/samber/slog-multi"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logFileName = "dayscript-log.jsonl"

type LoggerOptions struct {
	Level       slog.Level
	Folder      string
	FileEnabled bool
	Console     io.Writer // defaults to os.Stdout
}

// CreateLogger builds a text logger on the console and, when enabled, a rotated JSON log file.
// The returned closer flushes and closes the file sink.
func CreateLogger(opts LoggerOptions) (*slog.Logger, io.Closer) {
	console := opts.Console
	if console == nil {
		console = os.Stdout
	}
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}
	consoleHandler := slog.NewTextHandler(console, handlerOpts)

	if !opts.FileEnabled {
		return slog.New(consoleHandler), nopCloser{}
	}

	file := &lumberjack.Logger{
		Filename:   filepath.Join(opts.Folder, logFileName),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     180, // days
	}
	logger := slog.New(slogmulti.Fanout(
		consoleHandler,
		slog.NewJSONHandler(file, handlerOpts),
	))
	return logger, file
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
