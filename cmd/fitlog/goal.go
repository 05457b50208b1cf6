package fitlog

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/fitlog/internal/service"
	"github.com/saadjs/fitlog/internal/store"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage the daily nutrition goal",
}

var (
	goalCalories float64
	goalProtein  float64
	goalCarbs    float64
	goalFat      float64
)

var goalSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the daily calorie and macro targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.SetGoalInput{Calories: goalCalories, ProteinG: goalProtein, CarbsG: goalCarbs, FatG: goalFat}
		return withStore(func(s *store.Store, _ *sql.DB) error {
			if err := service.SetGoal(s, in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set goal: %.0f kcal, P%.1f C%.1f F%.1f\n", in.Calories, in.ProteinG, in.CarbsG, in.FatG)
			return nil
		})
	},
}

var goalShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the daily goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store, _ *sql.DB) error {
			g, err := s.NutritionGoal()
			if err != nil {
				return err
			}
			if g == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No goal set. Use `fitlog goal set`.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Calories: %.0f\nProtein: %.1fg\nCarbs: %.1fg\nFat: %.1fg\n", g.DailyCalories, g.DailyProtein, g.DailyCarbs, g.DailyFat)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(goalCmd)
	goalCmd.AddCommand(goalSetCmd, goalShowCmd)

	goalSetCmd.Flags().Float64Var(&goalCalories, "calories", 0, "Daily calories")
	goalSetCmd.Flags().Float64Var(&goalProtein, "protein", 0, "Daily protein grams")
	goalSetCmd.Flags().Float64Var(&goalCarbs, "carbs", 0, "Daily carbs grams")
	goalSetCmd.Flags().Float64Var(&goalFat, "fat", 0, "Daily fat grams")
	_ = goalSetCmd.MarkFlagRequired("calories")
}
