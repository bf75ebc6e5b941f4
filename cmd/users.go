package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vatastudio/concierge/internal/app"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage per-user assistant state",
}

// usersEnableCmd turns the assistant back on for a user.
var usersEnableCmd = &cobra.Command{
	Use:   "enable [user-id]",
	Short: "Enable the assistant for a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleUser(cmd, args[0], true)
	},
}

// usersDisableCmd silences the assistant for a user so a manager can
// take over the conversation.
var usersDisableCmd = &cobra.Command{
	Use:   "disable [user-id]",
	Short: "Disable the assistant for a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleUser(cmd, args[0], false)
	},
}

func toggleUser(cmd *cobra.Command, rawID string, enable bool) error {
	userID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", rawID, err)
	}
	managerID, _ := cmd.Flags().GetInt64("manager")

	a, err := app.New(context.Background(), app.FromViper())
	if err != nil {
		return err
	}
	defer a.Close()

	if enable {
		a.Sessions.Enable(userID, managerID)
		fmt.Printf("✅ Помощник включен для пользователя %d\n", userID)
	} else {
		a.Sessions.Disable(userID, managerID)
		fmt.Printf("🔇 Помощник выключен для пользователя %d\n", userID)
	}
	return nil
}

func init() {
	usersCmd.PersistentFlags().Int64("manager", 0, "manager ID performing the change")
	usersCmd.AddCommand(usersEnableCmd)
	usersCmd.AddCommand(usersDisableCmd)
	rootCmd.AddCommand(usersCmd)
}
