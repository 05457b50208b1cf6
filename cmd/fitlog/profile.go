package fitlog

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/fitlog/internal/service"
	"github.com/saadjs/fitlog/internal/store"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your user profile",
}

var (
	profileUsername string
	profileFirst    string
	profileLast     string
	profileGoal     string
	profileActivity string
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or replace the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.ProfileInput{
			Username:      profileUsername,
			FirstName:     profileFirst,
			LastName:      profileLast,
			Goal:          profileGoal,
			ActivityLevel: profileActivity,
		}
		return withStore(func(s *store.Store, _ *sql.DB) error {
			p, err := service.SetProfile(s, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved profile for %s\n", p.Username)
			return nil
		})
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store, _ *sql.DB) error {
			p, err := s.User()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if p == nil {
				fmt.Fprintln(out, "No profile set. Use `fitlog profile set --username <name>`.")
				return nil
			}
			fmt.Fprintf(out, "Username: %s\n", p.Username)
			if p.FirstName != "" || p.LastName != "" {
				fmt.Fprintf(out, "Name: %s %s\n", p.FirstName, p.LastName)
			}
			if p.Goal != "" {
				fmt.Fprintf(out, "Goal: %s\n", p.Goal)
			}
			if p.ActivityLevel != "" {
				fmt.Fprintf(out, "Activity: %s\n", p.ActivityLevel)
			}
			if !p.CreatedAt.IsZero() {
				fmt.Fprintf(out, "Since: %s\n", p.CreatedAt.Local().Format("2006-01-02"))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileSetCmd, profileShowCmd)

	profileSetCmd.Flags().StringVar(&profileUsername, "username", "", "Username")
	profileSetCmd.Flags().StringVar(&profileFirst, "first-name", "", "First name")
	profileSetCmd.Flags().StringVar(&profileLast, "last-name", "", "Last name")
	profileSetCmd.Flags().StringVar(&profileGoal, "goal", "", "Training goal, free text")
	profileSetCmd.Flags().StringVar(&profileActivity, "activity", "", "Activity level: sedentary|light|moderate|active|very_active")
	_ = profileSetCmd.MarkFlagRequired("username")
}
