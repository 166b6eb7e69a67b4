// Package startup registers and deregisters the application as a per-user login item.
//
// Registration is a best-effort convenience: none of the operations return errors. A registry
// that cannot be opened turns writes into no-ops and reads into "disabled".
package startup

import (
	"errors"
	"log/slog"
	"os"

	"github.com/dayscript/dayscript-windows/utils"
)

const (
	RunKeyPath     = `Software\Microsoft\Windows\CurrentVersion\Run`
	DefaultAppName = "Dayscript"
)

var (
	ErrUnsupported   = errors.New("startup registration is not supported on this platform")
	ErrValueNotFound = errors.New("startup value not found")
)

// Status reports what a SetStartup call did.
type Status int

const (
	StatusApplied     Status = iota
	StatusUnavailable        // key could not be opened, nothing changed
	StatusFailed             // key opened but the change could not be written
)

func (s Status) String() string {
	switch s {
	case StatusApplied:
		return "applied"
	case StatusUnavailable:
		return "unavailable"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type Access int

const (
	AccessRead Access = iota
	AccessWrite
)

// Key is an open handle on the run-at-login key.
type Key interface {
	SetString(name, value string) error
	// GetString returns ErrValueNotFound when name is absent.
	GetString(name string) (string, error)
	// DeleteValue returns ErrValueNotFound when name is absent.
	DeleteValue(name string) error
	Close() error
}

type KeyStore interface {
	Open(access Access) (Key, error)
}

type RegistrationState struct {
	Supported  bool
	Registered bool
	// Current is set when the registered path is the running executable.
	Current bool
}

type Registrar struct {
	store      KeyStore
	appName    string
	executable func() (string, error)
	logger     *slog.Logger
}

type Option func(*Registrar)

func WithAppName(name string) Option {
	return func(r *Registrar) {
		if name != "" {
			r.appName = name
		}
	}
}

func WithExecutable(executable func() (string, error)) Option {
	return func(r *Registrar) {
		r.executable = executable
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Registrar) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func NewRegistrar(store KeyStore, opts ...Option) *Registrar {
	r := &Registrar{
		store:      store,
		appName:    DefaultAppName,
		executable: os.Executable,
		logger:     utils.DiscardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registrar) AppName() string {
	return r.appName
}

// SetStartup writes the running executable under the app name when enable is set and removes
// the value otherwise. An existing value is always overwritten.
func (r *Registrar) SetStartup(enable bool) Status {
	key, err := r.store.Open(AccessWrite)
	if err != nil {
		r.logger.Debug("Startup key unavailable", "access", "write", "error", err)
		return StatusUnavailable
	}
	defer r.closeKey(key)

	if !enable {
		if err := key.DeleteValue(r.appName); err != nil && !errors.Is(err, ErrValueNotFound) {
			r.logger.Warn("Failed to remove startup entry", "app", r.appName, "error", err)
			return StatusFailed
		}
		r.logger.Info("Startup entry removed", "app", r.appName)
		return StatusApplied
	}

	exePath, err := r.executable()
	if err != nil {
		r.logger.Warn("Failed to resolve executable path", "error", err)
		return StatusFailed
	}
	if err := key.SetString(r.appName, exePath); err != nil {
		r.logger.Warn("Failed to write startup entry", "app", r.appName, "path", exePath, "error", err)
		return StatusFailed
	}
	r.logger.Info("Startup entry written", "app", r.appName, "path", exePath)
	return StatusApplied
}

// IsStartupEnabled reports whether any value is stored under the app name. It does not check
// that the value points at the running executable; see State for that.
func (r *Registrar) IsStartupEnabled() bool {
	_, ok := r.registeredPath()
	return ok
}

func (r *Registrar) State() RegistrationState {
	key, err := r.store.Open(AccessRead)
	if err != nil {
		return RegistrationState{Supported: !errors.Is(err, ErrUnsupported)}
	}
	defer r.closeKey(key)

	state := RegistrationState{Supported: true}
	path, err := key.GetString(r.appName)
	if err != nil {
		return state
	}
	state.Registered = true
	if exePath, err := r.executable(); err == nil {
		state.Current = path == exePath
	}
	return state
}

func (r *Registrar) registeredPath() (string, bool) {
	key, err := r.store.Open(AccessRead)
	if err != nil {
		r.logger.Debug("Startup key unavailable", "access", "read", "error", err)
		return "", false
	}
	defer r.closeKey(key)

	path, err := key.GetString(r.appName)
	if err != nil {
		return "", false
	}
	return path, true
}

func (r *Registrar) closeKey(key Key) {
	if err := key.Close(); err != nil {
		r.logger.Debug("Failed to close startup key", "error", err)
	}
}

var defaultRegistrar = NewRegistrar(NewRunKeyStore())

// SetStartup enables (non-zero) or disables (zero) startup for the default app name.
func SetStartup(enable uint8) {
	defaultRegistrar.SetStartup(enable != 0)
}

// IsStartupEnabled returns 1 when a startup value exists for the default app name, 0 otherwise.
func IsStartupEnabled() uint8 {
	if defaultRegistrar.IsStartupEnabled() {
		return 1
	}
	return 0
}
