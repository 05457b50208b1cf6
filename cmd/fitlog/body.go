package fitlog

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/fitlog/internal/model"
	"github.com/saadjs/fitlog/internal/service"
	"github.com/saadjs/fitlog/internal/store"
)

var bodyCmd = &cobra.Command{
	Use:   "body",
	Short: "Manage body metrics (weight, body-fat, muscle mass)",
}

var (
	bodyWeight     float64
	bodyUnit       string
	bodyFat        float64
	bodyMuscleMass float64
	bodyDate       string
	bodyTime       string
	bodyNotes      string
)

func bodyInput(cmd *cobra.Command, sqldb *sql.DB) (service.BodyMetricInput, error) {
	measuredAt, err := parseDateTimeOrNow(bodyDate, bodyTime)
	if err != nil {
		return service.BodyMetricInput{}, err
	}
	unit := bodyUnit
	if unit == "" {
		unit = service.ConfigOrDefault(sqldb, service.ConfigWeightUnit, "kg")
	}
	return service.BodyMetricInput{
		Weight:     floatFlag(cmd, "weight", bodyWeight),
		MuscleMass: floatFlag(cmd, "muscle-mass", bodyMuscleMass),
		Unit:       unit,
		BodyFatPct: floatFlag(cmd, "body-fat", bodyFat),
		MeasuredAt: measuredAt,
		Notes:      bodyNotes,
	}, nil
}

var bodyAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add body metric",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store, sqldb *sql.DB) error {
			in, err := bodyInput(cmd, sqldb)
			if err != nil {
				return err
			}
			m, err := service.AddBodyMetric(s, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added body metric %s\n", m.ID)
			return nil
		})
	},
}

var bodyUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace the values of a body metric",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store, sqldb *sql.DB) error {
			in, err := bodyInput(cmd, sqldb)
			if err != nil {
				return err
			}
			m, err := service.UpdateBodyMetric(s, args[0], in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated body metric %s\n", m.ID)
			return nil
		})
	},
}

var bodyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete body metric",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store, _ *sql.DB) error {
			if err := service.DeleteBodyMetric(s, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted body metric %s\n", args[0])
			return nil
		})
	},
}

var (
	bodyListDate string
	bodyFrom     string
	bodyTo       string
	bodyLimit    int
	bodyOutUnit  string
)

var bodyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List body metrics, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := service.BodyMetricFilter{Date: bodyListDate, FromDate: bodyFrom, ToDate: bodyTo, Limit: bodyLimit}
		return withStore(func(s *store.Store, sqldb *sql.DB) error {
			items, err := service.ListBodyMetrics(s, filter)
			if err != nil {
				return err
			}
			unit := bodyOutUnit
			if unit == "" {
				unit = service.ConfigOrDefault(sqldb, service.ConfigWeightUnit, "kg")
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tDATE\tWEIGHT\tUNIT\tBODY_FAT%\tMUSCLE\tNOTES")
			for _, m := range items {
				weight, muscle, err := displayWeights(m, unit)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", m.ID, fmtTime(m.Date), weight, unit, fmtOptFloat(m.BodyFatPercentage), muscle, m.Notes)
			}
			return tw.Flush()
		})
	},
}

var bodyLatestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Show the most recent body metric",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store, sqldb *sql.DB) error {
			m, err := s.LatestBodyMetric()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if m == nil {
				fmt.Fprintln(out, "No body metrics yet.")
				return nil
			}
			unit := bodyOutUnit
			if unit == "" {
				unit = service.ConfigOrDefault(sqldb, service.ConfigWeightUnit, "kg")
			}
			weight, muscle, err := displayWeights(*m, unit)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s (%s)\nWeight: %s %s\nBody fat: %s%%\nMuscle mass: %s %s\n", fmtTime(m.Date), m.ID, weight, unit, fmtOptFloat(m.BodyFatPercentage), muscle, unit)
			return nil
		})
	},
}

func displayWeights(m model.BodyMetric, unit string) (string, string, error) {
	conv := func(v *float64) (string, error) {
		if v == nil {
			return "-", nil
		}
		out, err := service.WeightFromKg(*v, unit)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%.1f", out), nil
	}
	weight, err := conv(m.Weight)
	if err != nil {
		return "", "", err
	}
	muscle, err := conv(m.MuscleMass)
	if err != nil {
		return "", "", err
	}
	return weight, muscle, nil
}

func init() {
	rootCmd.AddCommand(bodyCmd)
	bodyCmd.AddCommand(bodyAddCmd, bodyListCmd, bodyLatestCmd, bodyUpdateCmd, bodyDeleteCmd)

	for _, c := range []*cobra.Command{bodyAddCmd, bodyUpdateCmd} {
		c.Flags().Float64Var(&bodyWeight, "weight", 0, "Body weight")
		c.Flags().StringVar(&bodyUnit, "unit", "", "Weight unit: kg|lb (default from config weight_unit)")
		c.Flags().Float64Var(&bodyFat, "body-fat", 0, "Body fat percentage")
		c.Flags().Float64Var(&bodyMuscleMass, "muscle-mass", 0, "Muscle mass, same unit as weight")
		c.Flags().StringVar(&bodyDate, "date", "", "Date YYYY-MM-DD")
		c.Flags().StringVar(&bodyTime, "time", "", "Time HH:MM")
		c.Flags().StringVar(&bodyNotes, "notes", "", "Notes")
	}

	bodyListCmd.Flags().StringVar(&bodyListDate, "date", "", "Filter by date YYYY-MM-DD")
	bodyListCmd.Flags().StringVar(&bodyFrom, "from", "", "Start date YYYY-MM-DD")
	bodyListCmd.Flags().StringVar(&bodyTo, "to", "", "End date YYYY-MM-DD")
	bodyListCmd.Flags().IntVar(&bodyLimit, "limit", 0, "Maximum rows")
	for _, c := range []*cobra.Command{bodyListCmd, bodyLatestCmd} {
		c.Flags().StringVar(&bodyOutUnit, "unit", "", "Display unit: kg|lb")
	}
}
