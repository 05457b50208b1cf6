package fitlog

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/saadjs/fitlog/internal/service"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage fitlog local configuration",
}

var (
	cfgWeightUnit string
	cfgFoodURL    string
	cfgCacheDays  string
	cfgAdherence  string
)

var configSetFlags = []struct {
	flag string
	key  string
	val  *string
}{
	{"weight-unit", service.ConfigWeightUnit, &cfgWeightUnit},
	{"openfoodfacts-url", service.ConfigOpenFoodFactsURL, &cfgFoodURL},
	{"barcode-cache-days", service.ConfigBarcodeCacheDays, &cfgCacheDays},
	{"adherence-tolerance", service.ConfigAdherenceTolerance, &cfgAdherence},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set configuration values",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			updates := 0
			for _, f := range configSetFlags {
				if !cmd.Flags().Changed(f.flag) {
					continue
				}
				if err := service.SetConfig(sqldb, f.key, *f.val); err != nil {
					return err
				}
				updates++
			}
			if updates == 0 {
				return fmt.Errorf("set at least one flag")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d config value(s)\n", updates)
			return nil
		})
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			cfg, err := service.ListConfig(sqldb)
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(cfg))
			for k := range cfg {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "KEY\tVALUE")
			for _, k := range keys {
				fmt.Fprintf(tw, "%s\t%s\n", k, cfg[k])
			}
			return tw.Flush()
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configGetCmd)

	configSetCmd.Flags().StringVar(&cfgWeightUnit, "weight-unit", "", "Default weight unit: kg|lb")
	configSetCmd.Flags().StringVar(&cfgFoodURL, "openfoodfacts-url", "", "Open Food Facts base URL")
	configSetCmd.Flags().StringVar(&cfgCacheDays, "barcode-cache-days", "", "Days a barcode lookup stays cached")
	configSetCmd.Flags().StringVar(&cfgAdherence, "adherence-tolerance", "", "Goal adherence tolerance as a fraction, e.g. 0.1")
}
