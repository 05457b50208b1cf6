package fitlog

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/fitlog/internal/store"
)

var prefCmd = &cobra.Command{
	Use:   "pref",
	Short: "Read and write small UI preferences",
	Long:  "Preferences are best-effort: a failed write is logged as a warning and never fails the command.",
}

var prefSetCmd = &cobra.Command{
	Use:   "set <name> <value>",
	Short: "Store a preference",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store, _ *sql.DB) error {
			s.SetPreference(args[0], args[1])
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
			return nil
		})
	},
}

var prefGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Show a preference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store, _ *sql.DB) error {
			v, ok := s.Preference(args[0])
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is not set\n", args[0])
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(prefCmd)
	prefCmd.AddCommand(prefSetCmd, prefGetCmd)
}
