package fitlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/saadjs/fitlog/internal/provider/openfoodfacts"
	"github.com/saadjs/fitlog/internal/service"
	"github.com/saadjs/fitlog/internal/store"
)

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Log and manage meals",
}

var (
	mealName     string
	mealType     string
	mealCalories float64
	mealProtein  float64
	mealCarbs    float64
	mealFat      float64
	mealDate     string
	mealTime     string
)

var mealAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a meal",
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := parseDateTimeOrNow(mealDate, mealTime)
		if err != nil {
			return err
		}
		in := service.MealInput{
			Name:     mealName,
			MealType: mealType,
			Date:     at,
			Calories: floatFlag(cmd, "calories", mealCalories),
			ProteinG: floatFlag(cmd, "protein", mealProtein),
			CarbsG:   floatFlag(cmd, "carbs", mealCarbs),
			FatG:     floatFlag(cmd, "fat", mealFat),
		}
		return withStore(func(s *store.Store, _ *sql.DB) error {
			m, err := service.LogMeal(s, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s %s (%s)\n", m.MealType, m.Name, m.ID)
			return nil
		})
	},
}

var mealUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of a logged meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := service.MealPatch{
			Name:     stringFlag(cmd, "name", mealName),
			MealType: stringFlag(cmd, "type", mealType),
			Calories: floatFlag(cmd, "calories", mealCalories),
			ProteinG: floatFlag(cmd, "protein", mealProtein),
			CarbsG:   floatFlag(cmd, "carbs", mealCarbs),
			FatG:     floatFlag(cmd, "fat", mealFat),
		}
		if cmd.Flags().Changed("date") || cmd.Flags().Changed("time") {
			at, err := parseDateTimeOrNow(mealDate, mealTime)
			if err != nil {
				return err
			}
			p.Date = &at
		}
		return withStore(func(s *store.Store, _ *sql.DB) error {
			m, err := service.UpdateMeal(s, args[0], p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated meal %s\n", m.ID)
			return nil
		})
	},
}

var mealDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store, _ *sql.DB) error {
			if err := service.DeleteMeal(s, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted meal %s\n", args[0])
			return nil
		})
	},
}

var (
	mealListDate string
	mealFrom     string
	mealTo       string
	mealListType string
)

var mealListCmd = &cobra.Command{
	Use:   "list",
	Short: "List meals (today by default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := service.MealFilter{Date: mealListDate, FromDate: mealFrom, ToDate: mealTo, MealType: mealListType}
		return withStore(func(s *store.Store, _ *sql.DB) error {
			items, err := service.ListMeals(s, filter)
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tDATE\tTYPE\tNAME\tKCAL\tP\tC\tF")
			for _, m := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n", m.ID, fmtTime(m.Date), m.MealType, m.Name,
					fmtOptFloat(m.Calories), fmtOptFloat(m.Protein), fmtOptFloat(m.Carbs), fmtOptFloat(m.Fat))
			}
			return tw.Flush()
		})
	},
}

var (
	scanServings float64
	scanLog      bool
	scanJSON     bool
	scanTimeout  time.Duration
)

func newFoodClient(sqldb *sql.DB) *openfoodfacts.Client {
	return &openfoodfacts.Client{
		BaseURL:    service.ConfigOrDefault(sqldb, service.ConfigOpenFoodFactsURL, ""),
		HTTPClient: &http.Client{Timeout: scanTimeout},
	}
}

// barcodeTTL reads barcode_cache_days; 0 lets LookupBarcode use its default.
func barcodeTTL(sqldb *sql.DB) time.Duration {
	days, err := strconv.Atoi(service.ConfigOrDefault(sqldb, service.ConfigBarcodeCacheDays, ""))
	if err != nil || days <= 0 {
		return 0
	}
	return time.Duration(days) * 24 * time.Hour
}

var mealScanCmd = &cobra.Command{
	Use:   "scan <barcode>",
	Short: "Look up a packaged food by barcode and optionally log it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := parseDateTimeOrNow(mealDate, mealTime)
		if err != nil {
			return err
		}
		return withStore(func(s *store.Store, sqldb *sql.DB) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), scanTimeout)
			defer cancel()
			result, err := service.LookupBarcode(ctx, sqldb, newFoodClient(sqldb), args[0], barcodeTTL(sqldb))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if scanJSON {
				b, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal barcode lookup json: %w", err)
				}
				fmt.Fprintln(out, string(b))
			} else {
				source := "live"
				if result.FromCache {
					source = "cache"
				}
				fmt.Fprintf(out, "Barcode: %s (%s)\n", result.Barcode, source)
				fmt.Fprintf(out, "Food: %s\n", result.Name)
				if result.Brand != "" {
					fmt.Fprintf(out, "Brand: %s\n", result.Brand)
				}
				fmt.Fprintf(out, "Per: %.1f %s (%s)\n", result.ServingAmount, result.ServingUnit, result.Basis)
				fmt.Fprintf(out, "Calories: %.1f\nProtein: %.1fg\nCarbs: %.1fg\nFat: %.1fg\n", result.Calories, result.ProteinG, result.CarbsG, result.FatG)
			}
			if !scanLog {
				return nil
			}
			in, err := service.MealFromProduct(result.Product, scanServings)
			if err != nil {
				return err
			}
			in.Date = at
			in.MealType = mealType
			m, err := service.LogMeal(s, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Logged %s %s (%s)\n", m.MealType, m.Name, m.ID)
			return nil
		})
	},
}

var searchLimit int

var mealSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search Open Food Facts by product name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		return withDB(func(sqldb *sql.DB) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), scanTimeout)
			defer cancel()
			items, err := newFoodClient(sqldb).SearchProducts(ctx, query, searchLimit)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No products match %q.\n", query)
				return nil
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "BARCODE\tNAME\tBRAND\tPER\tKCAL\tP\tC\tF")
			for _, p := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%.0f %s\t%.1f\t%.1f\t%.1f\t%.1f\n", p.Barcode, p.Name, p.Brand, p.ServingAmount, p.ServingUnit, p.Calories, p.ProteinG, p.CarbsG, p.FatG)
			}
			return tw.Flush()
		})
	},
}

var mealCacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the barcode cache",
}

var cacheLimit int

var mealCacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached barcodes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			items, err := service.ListBarcodeCache(sqldb, cacheLimit)
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "BARCODE\tNAME\tBRAND\tEXPIRES")
			for _, it := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", it.Barcode, it.Name, it.Brand, fmtTime(it.ExpiresAt))
			}
			return tw.Flush()
		})
	},
}

var mealCachePurgeCmd = &cobra.Command{
	Use:   "purge [barcode]",
	Short: "Drop one cached barcode, or all of them",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		barcode := ""
		if len(args) == 1 {
			barcode = args[0]
		}
		return withDB(func(sqldb *sql.DB) error {
			n, err := service.PurgeBarcodeCache(sqldb, barcode)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Purged %d cached barcode(s)\n", n)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(mealCmd)
	mealCmd.AddCommand(mealAddCmd, mealListCmd, mealUpdateCmd, mealDeleteCmd, mealScanCmd, mealSearchCmd, mealCacheCmd)
	mealCacheCmd.AddCommand(mealCacheListCmd, mealCachePurgeCmd)

	for _, c := range []*cobra.Command{mealAddCmd, mealUpdateCmd} {
		c.Flags().StringVar(&mealName, "name", "", "Meal name")
		c.Flags().Float64Var(&mealCalories, "calories", 0, "Calories")
		c.Flags().Float64Var(&mealProtein, "protein", 0, "Protein grams")
		c.Flags().Float64Var(&mealCarbs, "carbs", 0, "Carbs grams")
		c.Flags().Float64Var(&mealFat, "fat", 0, "Fat grams")
	}
	for _, c := range []*cobra.Command{mealAddCmd, mealUpdateCmd, mealScanCmd} {
		c.Flags().StringVar(&mealType, "type", "", "Meal type: breakfast|lunch|dinner|snack (default from time of day)")
		c.Flags().StringVar(&mealDate, "date", "", "Date YYYY-MM-DD")
		c.Flags().StringVar(&mealTime, "time", "", "Time HH:MM")
	}
	_ = mealAddCmd.MarkFlagRequired("name")

	mealListCmd.Flags().StringVar(&mealListDate, "date", "", "Filter by date YYYY-MM-DD")
	mealListCmd.Flags().StringVar(&mealFrom, "from", "", "Start date YYYY-MM-DD")
	mealListCmd.Flags().StringVar(&mealTo, "to", "", "End date YYYY-MM-DD")
	mealListCmd.Flags().StringVar(&mealListType, "type", "", "Filter by meal type")

	mealScanCmd.Flags().Float64Var(&scanServings, "servings", 1, "Servings to log")
	mealScanCmd.Flags().BoolVar(&scanLog, "log", false, "Log the product as a meal")
	mealScanCmd.Flags().BoolVar(&scanJSON, "json", false, "Output as JSON")
	for _, c := range []*cobra.Command{mealScanCmd, mealSearchCmd} {
		c.Flags().DurationVar(&scanTimeout, "timeout", 10*time.Second, "Network timeout")
	}
	mealSearchCmd.Flags().IntVar(&searchLimit, "limit", 10, "Maximum results")
	mealCacheListCmd.Flags().IntVar(&cacheLimit, "limit", 50, "Maximum rows")
}
