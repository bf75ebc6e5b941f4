package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vatastudio/concierge/internal/app"
	"github.com/vatastudio/concierge/internal/textutil"
)

var escalationsCmd = &cobra.Command{
	Use:   "escalations",
	Short: "Manage pending manager escalations",
}

// escalationsPendingCmd lists pages no manager has handled yet.
var escalationsPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List unhandled escalations",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.New(context.Background(), app.FromViper())
		if err != nil {
			return err
		}
		defer a.Close()

		pending := a.Notifier.PendingPages()
		if len(pending) == 0 {
			fmt.Println("Нет ожидающих эскалаций")
			return nil
		}
		for _, p := range pending {
			age := time.Since(p.CreatedAt).Round(time.Second)
			fmt.Printf("🚨 пользователь %d → менеджер %d (%s назад): %s\n",
				p.UserID, p.ManagerID, age, textutil.Truncate(p.Question, 80))
		}
		return nil
	},
}

// escalationsHandleCmd marks a user's escalation handled.
var escalationsHandleCmd = &cobra.Command{
	Use:   "handle [user-id]",
	Short: "Mark a user's escalation as handled",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user id %q: %w", args[0], err)
		}
		managerID, _ := cmd.Flags().GetInt64("manager")

		a, err := app.New(context.Background(), app.FromViper())
		if err != nil {
			return err
		}
		defer a.Close()

		if !a.Notifier.MarkHandled(userID, managerID) {
			fmt.Printf("Нет ожидающей эскалации для пользователя %d\n", userID)
			return nil
		}
		fmt.Printf("✅ Эскалация пользователя %d обработана\n", userID)
		return nil
	},
}

func init() {
	escalationsHandleCmd.Flags().Int64("manager", 0, "manager ID closing the escalation (0 matches any)")
	escalationsCmd.AddCommand(escalationsPendingCmd)
	escalationsCmd.AddCommand(escalationsHandleCmd)
	rootCmd.AddCommand(escalationsCmd)
}
