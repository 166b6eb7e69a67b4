package state

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override, e.g. DAYSCRIPT_WEBVIEW_START_URL.
const EnvPrefix = "DAYSCRIPT"

// SettingsState holds the current state of the settings
type SettingsState struct {
	sync.RWMutex `yaml:"-" ignored:"true"`
	Window       WindowSettings  `yaml:"window"`
	WebView      WebViewSettings `yaml:"webview"`
	Startup      StartupSettings `yaml:"startup"`
	Log          LogSettings     `yaml:"log"`
	file         string
}

type WindowSettings struct {
	Title       string `yaml:"title"`
	X           int32  `yaml:"x"`
	Y           int32  `yaml:"y"`
	Width       int32  `yaml:"width"`
	Height      int32  `yaml:"height"`
	QuitOnClose bool   `yaml:"quitOnClose" split_words:"true"`
}

type WebViewSettings struct {
	StartURL              string `yaml:"startUrl" split_words:"true"`
	DataPath              string `yaml:"dataPath" split_words:"true"` // empty means %AppData%\<exe name>
	Debug                 bool   `yaml:"debug"`
	TransparentBackground bool   `yaml:"transparentBackground" split_words:"true"`
}

type StartupSettings struct {
	AppName string `yaml:"appName" split_words:"true"`
}

type LogSettings struct {
	Folder      string `yaml:"folder"`
	FileEnabled bool   `yaml:"fileEnabled" split_words:"true"`
	Level       string `yaml:"level"`
}

func defaultSettings(file string) *SettingsState {
	return &SettingsState{
		file: file,
		Window: WindowSettings{
			Title:       "Dayscript",
			X:           10,
			Y:           10,
			Width:       1280,
			Height:      720,
			QuitOnClose: true,
		},
		WebView: WebViewSettings{
			StartURL:              "https://app.dayscript.local/",
			Debug:                 false,
			TransparentBackground: true,
		},
		Startup: StartupSettings{
			AppName: "Dayscript",
		},
		Log: LogSettings{
			Folder:      "log",
			FileEnabled: true,
			Level:       "info",
		},
	}
}

// GetSettingsState loads file, creating it with default values when it does not exist, and then
// applies environment overrides.
func GetSettingsState(file string) (*SettingsState, error) {
	settings := defaultSettings(file)

	yamlFile, err := os.ReadFile(file)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		// If the file doesn't exist, create a new one with default values
		if err := settings.Save(); err != nil {
			return settings, err
		}
	} else if err := yaml.Unmarshal(yamlFile, settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}

	if err := settings.ApplyEnvironment(); err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// envFile is loaded before environment overrides are applied. A missing file is fine.
var envFile = ".env"

// ApplyEnvironment loads a .env file if present and overrides settings from DAYSCRIPT_* variables.
func (s *SettingsState) ApplyEnvironment() error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", envFile, err)
	}

	s.Lock()
	defer s.Unlock()
	if err := envconfig.Process(EnvPrefix, s); err != nil {
		return fmt.Errorf("environment overrides: %w", err)
	}
	return nil
}

func (s *SettingsState) Validate() error {
	s.RLock()
	defer s.RUnlock()
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", s.Window.Width, s.Window.Height)
	}
	if s.WebView.StartURL == "" {
		return errors.New("webview start url is empty")
	}
	return nil
}

func (s *SettingsState) Save() error {
	// Save the settings to the file
	yamlData, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	err = os.WriteFile(s.file, yamlData, 0644)
	if err != nil {
		return err
	}
	return nil
}

// LogLevel parses the configured level, falling back to info.
func (s *SettingsState) LogLevel() slog.Level {
	s.RLock()
	defer s.RUnlock()
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}
