package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vatastudio/concierge/internal/app"
)

// sessionsCmd lists active sessions with their activity figures.
var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List active user sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.New(context.Background(), app.FromViper())
		if err != nil {
			return err
		}
		defer a.Close()

		users := a.Sessions.ActiveUsers()
		if len(users) == 0 {
			fmt.Println("Нет активных сессий")
			return nil
		}
		sort.Slice(users, func(i, j int) bool { return users[i] < users[j] })

		for _, id := range users {
			info, ok := a.Sessions.SessionInfo(id)
			if !ok {
				continue
			}
			fmt.Printf("👤 %d: %d сообщений, %d ответов ИИ, %d мин, неактивен %d мин\n",
				id, info.MessageCount, info.AIResponses, info.DurationMinutes, info.InactiveMinutes)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
}
