package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// NewLogger builds the stderr logger used by the CLI. An empty level means
// warn so routine commands stay quiet.
func NewLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl := log.WarnLevel
	if s := strings.TrimSpace(level); s != "" {
		parsed, err := log.ParseLevel(strings.ToLower(s))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q (use debug, info, warn or error)", level)
		}
		lvl = parsed
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "fitlog",
		ReportTimestamp: lvl == log.DebugLevel,
	}), nil
}
