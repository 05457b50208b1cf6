package fitlog

import (
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/fitlog/internal/store"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every collection as one JSON or YAML document",
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(strings.TrimSpace(exportFormat))
		if format != "json" && format != "yaml" {
			return fmt.Errorf("invalid --format value %q (use json|yaml)", exportFormat)
		}
		return withStore(func(s *store.Store, _ *sql.DB) error {
			var buf bytes.Buffer
			if format == "json" {
				text, err := s.ExportAll()
				if err != nil {
					return err
				}
				buf.WriteString(text)
				buf.WriteByte('\n')
			} else if err := s.ExportYAML(&buf); err != nil {
				return err
			}
			if exportOut == "" {
				_, err := io.Copy(cmd.OutOrStdout(), &buf)
				return err
			}
			if err := os.WriteFile(exportOut, buf.Bytes(), 0o600); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", exportOut)
			return nil
		})
	},
}

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all logged data (preferences and config are kept)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return fmt.Errorf("reset deletes every workout, meal, metric and conversation; rerun with --yes")
		}
		return withStore(func(s *store.Store, _ *sql.DB) error {
			if err := s.ResetAll(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All fitlog data cleared")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, resetCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format: json|yaml")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Write to file instead of stdout")
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "Confirm deleting all data")
}
