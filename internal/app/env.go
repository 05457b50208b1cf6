package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvDBPath   = "FITLOG_DB"
	EnvLogLevel = "FITLOG_LOG_LEVEL"
	EnvPrefix   = "FITLOG_PREFIX"
)

// Settings are the values a user can set through the environment or the
// .env file in the fitlog config dir. Flags take precedence over both.
type Settings struct {
	DBPath   string
	LogLevel string
	Prefix   string
}

// LoadEnv reads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func SettingsFromEnv() Settings {
	return Settings{
		DBPath:   strings.TrimSpace(os.Getenv(EnvDBPath)),
		LogLevel: strings.TrimSpace(os.Getenv(EnvLogLevel)),
		Prefix:   strings.TrimSpace(os.Getenv(EnvPrefix)),
	}
}
