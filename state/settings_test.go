package state

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestGetSettingsStateCreatesDefaults(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")

	settings, err := GetSettingsState(file)
	if err != nil {
		t.Fatalf("GetSettingsState() error = %v", err)
	}
	if settings.Window.Title != "Dayscript" || settings.Startup.AppName != "Dayscript" {
		t.Errorf("unexpected defaults: %+v", settings)
	}
	if _, err := os.Stat(file); err != nil {
		t.Errorf("settings file not written: %v", err)
	}
}

func TestGetSettingsStateKeepsDefaultsForMissingFields(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	content := "window:\n  title: Overlay\n  width: 400\n"
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := GetSettingsState(file)
	if err != nil {
		t.Fatalf("GetSettingsState() error = %v", err)
	}
	if settings.Window.Title != "Overlay" || settings.Window.Width != 400 {
		t.Errorf("file values not loaded: %+v", settings.Window)
	}
	if settings.Window.Height != 720 {
		t.Errorf("Height = %d, want default 720", settings.Window.Height)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("DAYSCRIPT_WEBVIEW_START_URL", "http://localhost:5173/")
	t.Setenv("DAYSCRIPT_WINDOW_WIDTH", "640")
	t.Setenv("DAYSCRIPT_LOG_FILE_ENABLED", "false")

	settings, err := GetSettingsState(file)
	if err != nil {
		t.Fatalf("GetSettingsState() error = %v", err)
	}
	if settings.WebView.StartURL != "http://localhost:5173/" {
		t.Errorf("StartURL = %q", settings.WebView.StartURL)
	}
	if settings.Window.Width != 640 {
		t.Errorf("Width = %d, want 640", settings.Window.Width)
	}
	if settings.Log.FileEnabled {
		t.Error("FileEnabled override not applied")
	}
}

func TestInvalidSettings(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(file, []byte("window:\n  width: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := GetSettingsState(file); err == nil {
		t.Error("expected error for zero width")
	}

	if err := os.WriteFile(file, []byte("window: [\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := GetSettingsState(file); err == nil {
		t.Error("expected parse error")
	}
}

func TestLogLevel(t *testing.T) {
	settings := defaultSettings("")
	settings.Log.Level = "debug"
	if settings.LogLevel() != slog.LevelDebug {
		t.Errorf("LogLevel() = %v, want debug", settings.LogLevel())
	}
	settings.Log.Level = "loud"
	if settings.LogLevel() != slog.LevelInfo {
		t.Errorf("LogLevel() = %v, want info fallback", settings.LogLevel())
	}
}

func useEnvFile(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	previous := envFile
	envFile = path
	t.Cleanup(func() { envFile = previous })
}

func TestEnvFileOverrides(t *testing.T) {
	useEnvFile(t, "DAYSCRIPT_WINDOW_TITLE=Dayscript Dev\n")
	t.Cleanup(func() { os.Unsetenv("DAYSCRIPT_WINDOW_TITLE") })

	settings, err := GetSettingsState(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("GetSettingsState() error = %v", err)
	}
	if settings.Window.Title != "Dayscript Dev" {
		t.Errorf("Title = %q, want %q", settings.Window.Title, "Dayscript Dev")
	}
}

func TestMalformedEnvFile(t *testing.T) {
	useEnvFile(t, "DAYSCRIPT_WINDOW_TITLE=\"unterminated\n")

	if _, err := GetSettingsState(filepath.Join(t.TempDir(), "config.yaml")); err == nil {
		t.Error("expected error for malformed env file")
	}
}

func TestMissingEnvFileIsIgnored(t *testing.T) {
	previous := envFile
	envFile = filepath.Join(t.TempDir(), "missing.env")
	t.Cleanup(func() { envFile = previous })

	if _, err := GetSettingsState(filepath.Join(t.TempDir(), "config.yaml")); err != nil {
		t.Errorf("GetSettingsState() error = %v", err)
	}
}
