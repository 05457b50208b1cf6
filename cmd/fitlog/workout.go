package fitlog

import (
	"database/sql"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/saadjs/fitlog/internal/catalog"
	"github.com/saadjs/fitlog/internal/model"
	"github.com/saadjs/fitlog/internal/service"
	"github.com/saadjs/fitlog/internal/store"
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Track workout sessions, exercises and sets",
}

var (
	workoutID    string
	workoutName  string
	workoutDate  string
	workoutTime  string
	workoutNotes string
)

var workoutStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a workout session",
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := parseDateTimeOrNow(workoutDate, workoutTime)
		if err != nil {
			return err
		}
		return withStore(func(s *store.Store, _ *sql.DB) error {
			w, err := service.StartWorkout(s, workoutName, at)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Started %q (%s)\n", w.Name, w.ID)
			return nil
		})
	},
}

var workoutExerciseCmd = &cobra.Command{
	Use:   "exercise <exercise-id>",
	Short: "Add an exercise from the catalog to the workout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store, _ *sql.DB) error {
			ex, err := service.AddExercise(s, workoutID, args[0], workoutNotes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", exerciseName(ex.ExerciseID), ex.ID)
			return nil
		})
	},
}

var workoutSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Add, update or remove sets",
}

var (
	setWeight  float64
	setUnit    string
	setReps    int
	setRIR     int
	setType    string
	setDone    bool
	setNotDone bool
)

func resolveSetUnit(sqldb *sql.DB) string {
	if setUnit != "" {
		return setUnit
	}
	return service.ConfigOrDefault(sqldb, service.ConfigWeightUnit, "kg")
}

var workoutSetAddCmd = &cobra.Command{
	Use:   "add <exercise>",
	Short: "Log a set for an exercise (entry id or catalog id)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store, sqldb *sql.DB) error {
			in := service.SetInput{
				Weight:    floatFlag(cmd, "weight", setWeight),
				Unit:      resolveSetUnit(sqldb),
				Reps:      intFlag(cmd, "reps", setReps),
				RIR:       intFlag(cmd, "rir", setRIR),
				SetType:   setType,
				Completed: !setNotDone,
			}
			set, err := service.AddSet(s, workoutID, args[0], in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged set %d (%s)\n", set.SetNumber, set.ID)
			return nil
		})
	},
}

var workoutSetUpdateCmd = &cobra.Command{
	Use:   "update <set-id>",
	Short: "Change a logged set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store, sqldb *sql.DB) error {
			p := service.SetPatch{
				Weight:  floatFlag(cmd, "weight", setWeight),
				Unit:    resolveSetUnit(sqldb),
				Reps:    intFlag(cmd, "reps", setReps),
				RIR:     intFlag(cmd, "rir", setRIR),
				SetType: stringFlag(cmd, "type", setType),
			}
			switch {
			case cmd.Flags().Changed("done"):
				v := setDone
				p.Completed = &v
			case cmd.Flags().Changed("not-done"):
				v := !setNotDone
				p.Completed = &v
			}
			set, err := service.UpdateSet(s, workoutID, args[0], p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated set %d (%s)\n", set.SetNumber, set.ID)
			return nil
		})
	},
}

var workoutSetRemoveCmd = &cobra.Command{
	Use:   "remove <set-id>",
	Short: "Remove a set and renumber the rest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store, _ *sql.DB) error {
			if err := service.RemoveSet(s, workoutID, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed set %s\n", args[0])
			return nil
		})
	},
}

var workoutFinishCmd = &cobra.Command{
	Use:   "finish",
	Short: "Finish the workout in progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := parseDateTimeOrNow(workoutDate, workoutTime)
		if err != nil {
			return err
		}
		return withStore(func(s *store.Store, _ *sql.DB) error {
			w, err := service.FinishWorkout(s, workoutID, at, workoutNotes)
			if err != nil {
				return err
			}
			t := service.SummarizeWorkouts(w)
			fmt.Fprintf(cmd.OutOrStdout(), "Finished %q: %d exercises, %d/%d sets, %.0f kg volume, %s\n",
				w.Name, t.Exercises, t.CompletedSets, t.Sets, t.VolumeKg, w.EndTime.Sub(w.StartTime).Round(time.Minute))
			return nil
		})
	},
}

var workoutActiveCmd = &cobra.Command{
	Use:   "active",
	Short: "Show the workout in progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store, sqldb *sql.DB) error {
			w, err := s.ActiveWorkout()
			if err != nil {
				return err
			}
			if w == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No workout in progress.")
				return nil
			}
			return printWorkout(cmd.OutOrStdout(), *w, service.ConfigOrDefault(sqldb, service.ConfigWeightUnit, "kg"))
		})
	},
}

var workoutShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a workout with its sets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store, sqldb *sql.DB) error {
			w, err := s.Workout(args[0])
			if err != nil {
				return err
			}
			return printWorkout(cmd.OutOrStdout(), w, service.ConfigOrDefault(sqldb, service.ConfigWeightUnit, "kg"))
		})
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a workout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store, _ *sql.DB) error {
			if err := service.DeleteWorkout(s, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted workout %s\n", args[0])
			return nil
		})
	},
}

var (
	workoutListDate string
	workoutFrom     string
	workoutTo       string
	workoutLimit    int
)

var workoutListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workouts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := service.WorkoutFilter{Date: workoutListDate, FromDate: workoutFrom, ToDate: workoutTo, Limit: workoutLimit}
		return withStore(func(s *store.Store, _ *sql.DB) error {
			items, err := service.ListWorkouts(s, filter)
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tSTART\tNAME\tSTATUS\tEXERCISES\tSETS\tVOLUME_KG")
			for _, w := range items {
				t := service.SummarizeWorkouts(w)
				status := "done"
				if !w.IsCompleted {
					status = "active"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%.0f\n", w.ID, fmtTime(w.StartTime), w.Name, status, t.Exercises, t.Sets, t.VolumeKg)
			}
			return tw.Flush()
		})
	},
}

func exerciseName(id string) string {
	if e, ok := catalog.Lookup(id); ok {
		return e.Name
	}
	return id
}

func printWorkout(out io.Writer, w model.Workout, unit string) error {
	status := "in progress"
	if w.IsCompleted && w.EndTime != nil {
		status = "finished " + fmtTime(*w.EndTime)
	}
	fmt.Fprintln(out, headingStyle.Render(w.Name))
	fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("%s  started %s  %s", w.ID, fmtTime(w.StartTime), status)))
	for _, ex := range w.Exercises {
		fmt.Fprintf(out, "\n%s  %s\n", exerciseName(ex.ExerciseID), mutedStyle.Render(ex.ID))
		if ex.Notes != "" {
			fmt.Fprintf(out, "  %s\n", ex.Notes)
		}
		tw := newTable(out)
		for _, set := range ex.Sets {
			weight := "-"
			if set.Weight != nil {
				v, err := service.WeightFromKg(*set.Weight, unit)
				if err != nil {
					return err
				}
				weight = fmt.Sprintf("%.1f %s", v, unit)
			}
			mark := " "
			if set.IsCompleted {
				mark = "x"
			}
			fmt.Fprintf(tw, "  [%s] %d\t%s\t%s reps\tRIR %s\t%s\t%s\n", mark, set.SetNumber, weight, fmtOptInt(set.Reps), fmtOptInt(set.RIR), set.SetType, mutedStyle.Render(set.ID))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	if w.Notes != "" {
		fmt.Fprintf(out, "\nNotes: %s\n", w.Notes)
	}
	return nil
}

var exerciseGroup string

var exercisesCmd = &cobra.Command{
	Use:   "exercises",
	Short: "List the built-in exercise catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := catalog.List(exerciseGroup)
		if err != nil {
			return err
		}
		tw := newTable(cmd.OutOrStdout())
		fmt.Fprintln(tw, "ID\tNAME\tMUSCLE_GROUP\tEQUIPMENT")
		for _, e := range items {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, e.Name, e.MuscleGroup, strings.TrimSpace(e.Equipment))
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(workoutCmd, exercisesCmd)
	workoutCmd.AddCommand(workoutStartCmd, workoutExerciseCmd, workoutSetCmd, workoutFinishCmd, workoutActiveCmd, workoutListCmd, workoutShowCmd, workoutDeleteCmd)
	workoutSetCmd.AddCommand(workoutSetAddCmd, workoutSetUpdateCmd, workoutSetRemoveCmd)

	workoutStartCmd.Flags().StringVar(&workoutName, "name", "", "Workout name (default from time of day)")
	for _, c := range []*cobra.Command{workoutStartCmd, workoutFinishCmd} {
		c.Flags().StringVar(&workoutDate, "date", "", "Date YYYY-MM-DD")
		c.Flags().StringVar(&workoutTime, "time", "", "Time HH:MM")
	}
	for _, c := range []*cobra.Command{workoutExerciseCmd, workoutFinishCmd} {
		c.Flags().StringVar(&workoutNotes, "notes", "", "Notes")
	}
	for _, c := range []*cobra.Command{workoutExerciseCmd, workoutSetAddCmd, workoutSetUpdateCmd, workoutSetRemoveCmd, workoutFinishCmd} {
		c.Flags().StringVar(&workoutID, "workout", "", "Workout id (default: the workout in progress)")
	}
	for _, c := range []*cobra.Command{workoutSetAddCmd, workoutSetUpdateCmd} {
		c.Flags().Float64Var(&setWeight, "weight", 0, "Load")
		c.Flags().StringVar(&setUnit, "unit", "", "Weight unit: kg|lb (default from config weight_unit)")
		c.Flags().IntVar(&setReps, "reps", 0, "Repetitions")
		c.Flags().IntVar(&setRIR, "rir", 0, "Reps in reserve, 0-4")
		c.Flags().StringVar(&setType, "type", "", "Set type: work|warm|drop|failure")
		c.Flags().BoolVar(&setNotDone, "not-done", false, "Mark the set as not completed")
	}
	workoutSetUpdateCmd.Flags().BoolVar(&setDone, "done", false, "Mark the set as completed")

	workoutListCmd.Flags().StringVar(&workoutListDate, "date", "", "Filter by date YYYY-MM-DD")
	workoutListCmd.Flags().StringVar(&workoutFrom, "from", "", "Start date YYYY-MM-DD")
	workoutListCmd.Flags().StringVar(&workoutTo, "to", "", "End date YYYY-MM-DD")
	workoutListCmd.Flags().IntVar(&workoutLimit, "limit", 0, "Maximum rows")

	exercisesCmd.Flags().StringVar(&exerciseGroup, "muscle", "", "Filter by muscle group")
}
