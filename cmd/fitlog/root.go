package fitlog

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/saadjs/fitlog/internal/app"
)

var (
	dbPath   string
	logLevel string
	prefix   string

	settings app.Settings
	logger   *log.Logger
)

var rootCmd = &cobra.Command{
	Use:           "fitlog",
	Short:         "fitlog tracks workouts, meals and body metrics offline",
	Long:          "fitlog is a local-first fitness log: workout sessions with sets and RIR, meals against a nutrition goal, body metrics, and coaching notes, all kept in one SQLite file.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envPath, err := app.DefaultEnvPath()
		if err == nil {
			if err := app.LoadEnv(envPath); err != nil {
				return err
			}
		}
		settings = app.SettingsFromEnv()
		level := logLevel
		if !cmd.Flags().Changed("log-level") && settings.LogLevel != "" {
			level = settings.LogLevel
		}
		logger, err = app.NewLogger(cmd.ErrOrStderr(), level)
		if err != nil {
			return err
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (env FITLOG_DB)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error (env FITLOG_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&prefix, "prefix", "", "Key namespace inside the database (env FITLOG_PREFIX, default fitlog)")
}
