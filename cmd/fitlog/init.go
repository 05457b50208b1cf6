package fitlog

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/fitlog/internal/app"
	"github.com/saadjs/fitlog/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local fitlog database",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			path, err := resolveDBPath()
			if err != nil {
				return err
			}
			version, err := db.SchemaVersion(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized fitlog database at %s (schema v%d)\n", path, version)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// resolveDBPath prefers --db, then FITLOG_DB, then the per-user default.
func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if settings.DBPath != "" {
		return settings.DBPath, nil
	}
	return app.DefaultDBPath()
}
