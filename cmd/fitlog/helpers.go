package fitlog

import (
	"database/sql"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/saadjs/fitlog/internal/app"
	"github.com/saadjs/fitlog/internal/db"
	"github.com/saadjs/fitlog/internal/storage"
	"github.com/saadjs/fitlog/internal/store"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	if logger != nil {
		logger.Debug("database ready", "path", path)
	}
	return run(sqldb)
}

// withStore opens the database and hands run a store over its kv_store
// table. The handle is closed when run returns.
func withStore(run func(*store.Store, *sql.DB) error) error {
	return withDB(func(sqldb *sql.DB) error {
		opts := []store.Option{store.WithPrefix(resolvePrefix())}
		if logger != nil {
			opts = append(opts, store.WithLogger(logger))
		}
		return run(store.New(storage.NewSQLite(sqldb), opts...), sqldb)
	})
}

func resolvePrefix() string {
	if strings.TrimSpace(prefix) != "" {
		return prefix
	}
	if settings.Prefix != "" {
		return settings.Prefix
	}
	return store.DefaultPrefix
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func heading(cmd *cobra.Command, text string) {
	fmt.Fprintln(cmd.OutOrStdout(), headingStyle.Render(text))
}

func parseDateTimeOrNow(date, timeStr string) (time.Time, error) {
	date = strings.TrimSpace(date)
	timeStr = strings.TrimSpace(timeStr)
	if date == "" && timeStr == "" {
		return time.Time{}, nil
	}
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if timeStr == "" {
		t, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
		}
		return t.Add(12 * time.Hour), nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+timeStr, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date/--time (expected YYYY-MM-DD and HH:MM)")
	}
	return t, nil
}

func parseDayOrToday(date string) (time.Time, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
	}
	return t, nil
}

// floatFlag returns nil unless the flag was given on the command line.
func floatFlag(cmd *cobra.Command, name string, value float64) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

func intFlag(cmd *cobra.Command, name string, value int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

func stringFlag(cmd *cobra.Command, name, value string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

func fmtOptFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}

func fmtOptInt(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

func fmtTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}
