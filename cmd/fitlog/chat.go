package fitlog

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/fitlog/internal/service"
	"github.com/saadjs/fitlog/internal/store"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Keep coaching conversations next to your logs",
}

var (
	chatContext string
	chatRole    string
)

var chatNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a conversation",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store, _ *sql.DB) error {
			c, err := service.StartConversation(s, chatContext)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Started %s conversation %s\n", c.Context, c.ID)
			return nil
		})
	},
}

var chatSayCmd = &cobra.Command{
	Use:   "say <conversation-id> <message...>",
	Short: "Append a message to a conversation",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		content := strings.Join(args[1:], " ")
		return withStore(func(s *store.Store, _ *sql.DB) error {
			c, err := service.AppendMessage(s, args[0], chatRole, content)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d message(s)\n", c.ID, len(c.Messages))
			return nil
		})
	},
}

var chatListCmd = &cobra.Command{
	Use:   "list",
	Short: "List conversations, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store, _ *sql.DB) error {
			items, err := service.ListConversations(s)
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tCONTEXT\tMESSAGES\tUPDATED")
			for _, c := range items {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", c.ID, c.Context, len(c.Messages), fmtTime(c.UpdatedAt))
			}
			return tw.Flush()
		})
	},
}

var chatShowCmd = &cobra.Command{
	Use:   "show <conversation-id>",
	Short: "Print a conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store, _ *sql.DB) error {
			c, err := s.Conversation(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			heading(cmd, fmt.Sprintf("%s (%s)", c.ID, c.Context))
			for _, m := range c.Messages {
				fmt.Fprintf(out, "%s %s\n%s\n\n", mutedStyle.Render(fmtTime(m.Timestamp)), m.Role, m.Content)
			}
			return nil
		})
	},
}

var chatDeleteCmd = &cobra.Command{
	Use:   "delete <conversation-id>",
	Short: "Delete a conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store, _ *sql.DB) error {
			if err := service.DeleteConversation(s, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted conversation %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.AddCommand(chatNewCmd, chatSayCmd, chatListCmd, chatShowCmd, chatDeleteCmd)

	chatNewCmd.Flags().StringVar(&chatContext, "context", "general", "Context: general|workout|nutrition|progress")
	chatSayCmd.Flags().StringVar(&chatRole, "role", "user", "Role: user|assistant|system")
}
