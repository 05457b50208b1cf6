package fitlog

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/fitlog/internal/service"
	"github.com/saadjs/fitlog/internal/store"
)

var (
	todayDate string
	todayJSON bool
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show calories, macros and training for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDayOrToday(todayDate)
		if err != nil {
			return err
		}
		return withStore(func(s *store.Store, sqldb *sql.DB) error {
			status, err := service.TodaySummary(s, day)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if todayJSON {
				b, err := json.MarshalIndent(status, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal today json: %w", err)
				}
				fmt.Fprintln(out, string(b))
				return nil
			}
			heading(cmd, status.Date)
			fmt.Fprintf(out, "Meals: %d\n", status.Meals)
			if status.HasGoal {
				fmt.Fprintf(out, "Calories: %.0f / %.0f (%.0f left)\n", status.Calories, status.GoalCalories, status.RemainingCalories)
				fmt.Fprintf(out, "Protein: %.1f / %.1fg\nCarbs: %.1f / %.1fg\nFat: %.1f / %.1fg\n",
					status.ProteinG, status.GoalProteinG, status.CarbsG, status.GoalCarbsG, status.FatG, status.GoalFatG)
			} else {
				fmt.Fprintf(out, "Calories: %.0f\nProtein: %.1fg\nCarbs: %.1fg\nFat: %.1fg\n", status.Calories, status.ProteinG, status.CarbsG, status.FatG)
			}
			fmt.Fprintf(out, "Workouts: %d (%d sets, %.0f kg volume)\n", status.Workouts, status.Training.CompletedSets, status.Training.VolumeKg)
			if status.ActiveWorkout != nil {
				fmt.Fprintln(out, warnStyle.Render(fmt.Sprintf("In progress: %s since %s", status.ActiveWorkout.Name, fmtTime(status.ActiveWorkout.StartTime))))
			}
			if status.LatestWeightKg != nil {
				unit := service.ConfigOrDefault(sqldb, service.ConfigWeightUnit, "kg")
				w, err := service.WeightFromKg(*status.LatestWeightKg, unit)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Weight: %.1f %s\n", w, unit)
			}
			return nil
		})
	},
}

var (
	weekFrom string
	weekTo   string
	weekJSON bool
)

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Summarize nutrition, training and body trend over the last 7 days",
	RunE: func(cmd *cobra.Command, args []string) error {
		end, err := parseDayOrToday(weekTo)
		if err != nil {
			return err
		}
		from, to := service.WeekRange(end)
		if weekFrom != "" {
			if from, err = service.ParseDay(weekFrom); err != nil {
				return err
			}
		}
		return withStore(func(s *store.Store, sqldb *sql.DB) error {
			tolerance := service.ConfigFloat(sqldb, service.ConfigAdherenceTolerance, 0.1)
			report, err := service.AnalyticsRange(s, from, to, tolerance)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if weekJSON {
				b, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal week json: %w", err)
				}
				fmt.Fprintln(out, string(b))
				return nil
			}
			heading(cmd, fmt.Sprintf("%s to %s", report.FromDate, report.ToDate))
			fmt.Fprintf(out, "Days with meals: %d\n", report.DaysWithMeals)
			fmt.Fprintf(out, "Avg/day: %.0f kcal, P%.1f C%.1f F%.1f\n", report.AverageCaloriesPerDay, report.AverageProteinPerDay, report.AverageCarbsPerDay, report.AverageFatPerDay)
			if report.Adherence != nil {
				fmt.Fprintf(out, "Within goal: %d/%d days (%.1f%%)\n", report.Adherence.WithinGoalDays, report.Adherence.EvaluatedDays, report.Adherence.PercentWithin)
			}
			fmt.Fprintf(out, "Workouts: %d (%d finished), %d sets, %.0f kg volume\n", report.Workouts, report.CompletedWorkouts, report.Training.CompletedSets, report.Training.VolumeKg)
			if report.Body.ChangeKg != nil {
				fmt.Fprintf(out, "Weight change: %+.1f kg over %d entries\n", *report.Body.ChangeKg, report.Body.Entries)
			}
			if len(report.Days) > 0 {
				tw := newTable(out)
				fmt.Fprintln(tw, "DATE\tMEALS\tKCAL\tP\tC\tF")
				for _, d := range report.Days {
					fmt.Fprintf(tw, "%s\t%d\t%.0f\t%.1f\t%.1f\t%.1f\n", d.Date, d.Meals, d.Calories, d.Protein, d.Carbs, d.Fat)
				}
				return tw.Flush()
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(todayCmd, weekCmd)
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Date YYYY-MM-DD (default today)")
	todayCmd.Flags().BoolVar(&todayJSON, "json", false, "Output as JSON")
	weekCmd.Flags().StringVar(&weekFrom, "from", "", "Start date YYYY-MM-DD (default 6 days before --to)")
	weekCmd.Flags().StringVar(&weekTo, "to", "", "End date YYYY-MM-DD (default today)")
	weekCmd.Flags().BoolVar(&weekJSON, "json", false, "Output as JSON")
}
