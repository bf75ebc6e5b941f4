package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vatastudio/concierge/internal/app"
	"github.com/vatastudio/concierge/internal/catalog"
)

// statsCmd prints session, escalation and catalog counters. With --user
// it prints that user's session and history instead.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show session, escalation and catalog statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetInt64("user")

		ctx := context.Background()
		a, err := app.New(ctx, app.FromViper())
		if err != nil {
			return err
		}
		defer a.Close()

		if userID != 0 {
			return printUserStats(a, userID)
		}

		s := a.Sessions.Stats()
		fmt.Println("📊 Сессии:")
		fmt.Printf("  всего: %d, активных: %d, неактивных: %d\n", s.TotalSessions, s.ActiveSessions, s.InactiveSessions)
		fmt.Printf("  ответов ИИ: %d, вмешательств менеджера: %d\n", s.AIResponses, s.ManagerInterventions)
		fmt.Printf("  пользователей: включено %d, выключено %d\n", s.EnabledUsers, s.DisabledUsers)

		e := a.Notifier.Stats()
		fmt.Println("🚨 Эскалации:")
		fmt.Printf("  вызовов: %d, обработано: %d, в ожидании: %d\n", e.TotalCalls, e.HandledCalls, e.PendingCalls)
		if e.AvgResponseSeconds > 0 {
			fmt.Printf("  среднее время ответа: %.0f сек\n", e.AvgResponseSeconds)
		}

		fmt.Println("📁 Каталог:")
		for _, c := range catalog.Categories() {
			loadedAt, ok := a.Catalog.LoadedAt(c)
			if !ok {
				fmt.Printf("  %s: не загружены\n", c)
				continue
			}
			fmt.Printf("  %s: %d записей (обновлено %s)\n", c, len(a.Catalog.Records(c)), loadedAt.Format("15:04:05"))
		}
		return nil
	},
}

func printUserStats(a *app.App, userID int64) error {
	info, ok := a.Sessions.SessionInfo(userID)
	if !ok {
		fmt.Printf("Нет сессии для пользователя %d\n", userID)
	} else {
		fmt.Printf("👤 Пользователь %d:\n", userID)
		fmt.Printf("  сообщений: %d, ответов ИИ: %d\n", info.MessageCount, info.AIResponses)
		fmt.Printf("  длительность: %d мин, неактивен: %d мин\n", info.DurationMinutes, info.InactiveMinutes)
	}

	if a.History == nil {
		return nil
	}
	hs, err := a.History.Stats(userID)
	if err != nil {
		return err
	}
	fmt.Printf("  история: %d сообщений (%d от бота)\n", hs.TotalMessages, hs.BotMessages)
	return nil
}

func init() {
	statsCmd.Flags().Int64("user", 0, "show stats for one user instead of totals")
	rootCmd.AddCommand(statsCmd)
}
