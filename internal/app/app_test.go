package app_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/saadjs/fitlog/internal/app"
)

func TestLoadEnvMissingFileIsNotAnError(t *testing.T) {
	if err := app.LoadEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("load missing env: %v", err)
	}
}

func TestLoadEnvDoesNotOverrideExistingValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "FITLOG_DB=/from/file.db\nFITLOG_PREFIX=filepfx\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv(app.EnvDBPath, "/from/shell.db")
	t.Setenv(app.EnvPrefix, "")
	_ = os.Unsetenv(app.EnvPrefix)

	if err := app.LoadEnv(path); err != nil {
		t.Fatalf("load env: %v", err)
	}
	s := app.SettingsFromEnv()
	if s.DBPath != "/from/shell.db" {
		t.Fatalf("expected shell value to win, got %q", s.DBPath)
	}
	if s.Prefix != "filepfx" {
		t.Fatalf("expected prefix from file, got %q", s.Prefix)
	}
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	if _, err := app.NewLogger(&bytes.Buffer{}, "loud"); err == nil {
		t.Fatalf("expected unknown level to fail")
	}
}

func TestNewLoggerDefaultsToWarn(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := app.NewLogger(buf, "")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected log output: %q", out)
	}
}
