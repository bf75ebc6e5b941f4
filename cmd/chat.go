package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vatastudio/concierge/internal/app"
	"github.com/vatastudio/concierge/internal/escalate"
)

// chatCmd runs an interactive session on stdin. Between turns the typing
// timer is armed so slow replies page a manager, the same way the
// messenger transport would.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive question session",
	Long: `Start an interactive session: each line is resolved and answered.
Type /quit to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetInt64("user")
		debug := viper.GetBool("debug")

		ctx := context.Background()
		a, err := app.New(ctx, app.FromViper())
		if err != nil {
			return err
		}
		defer a.Close()

		for _, res := range a.Catalog.Reload(ctx) {
			if res.Err != nil {
				fmt.Printf("⚠️ %s не загружены: %v\n", res.Category, res.Err)
			}
		}

		// Periodic sweep: expired sessions and overdue typing timers.
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		go func() {
			for range ticker.C {
				a.Sessions.CleanupInactive()
				if a.Sessions.CheckTypingTimeout(userID) {
					user := escalate.UserInfo{ID: userID}
					if err := a.Notifier.NotifyTypingTimeout(context.Background(), user); err != nil && debug {
						fmt.Printf("typing alert failed: %v\n", err)
					}
				}
			}
		}()

		user := escalate.UserInfo{ID: userID, Username: "console"}
		fmt.Println("Задайте вопрос (или /quit для выхода):")

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if line == "/quit" || line == "/exit" {
				break
			}

			a.Sessions.StartTyping(userID)
			d := a.Resolver.Resolve(ctx, user, line)
			if debug {
				fmt.Printf("[%s/%s]\n", d.Kind, d.Intent)
			}
			fmt.Println(d.Reply)
		}
		return scanner.Err()
	},
}

func init() {
	chatCmd.Flags().Int64("user", 1, "user ID the session is attributed to")
	rootCmd.AddCommand(chatCmd)
}
