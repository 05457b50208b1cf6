package fitlog

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/fitlog/internal/service"
	"github.com/saadjs/fitlog/internal/store"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check every slot decodes and workouts are consistent",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store, _ *sql.DB) error {
			report, err := service.RunDoctor(s, doctorFix)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			tw := newTable(out)
			fmt.Fprintln(tw, "SLOT\tPRESENT\tITEMS\tERROR")
			for _, c := range report.Slots {
				fmt.Fprintf(tw, "%s\t%t\t%d\t%s\n", c.Slot, c.Present, c.Items, c.Error)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "Corrupt slots: %d\n", report.CorruptSlots)
			fmt.Fprintf(out, "Active workouts: %d\n", report.ActiveWorkouts)
			fmt.Fprintf(out, "Set numbering issues: %d\n", report.SetSequenceIssues)
			fmt.Fprintf(out, "Unknown exercises: %d\n", report.UnknownExercises)
			for _, k := range report.StrayKeys {
				fmt.Fprintln(out, warnStyle.Render("Stray key: "+k))
			}
			if doctorFix {
				fmt.Fprintf(out, "Renumbered sets: %d\n", report.RenumberedSets)
				fmt.Fprintf(out, "Closed workouts: %d\n", report.ClosedWorkouts)
				// Re-check after fixes so exit status reflects final state.
				report, err = service.RunDoctor(s, false)
				if err != nil {
					return err
				}
			}
			if !report.Healthy() {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Renumber sets with gaps or duplicates and close extra active workouts")
}
