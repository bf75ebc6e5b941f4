package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vatastudio/concierge/internal/app"
	"github.com/vatastudio/concierge/internal/engine"
	"github.com/vatastudio/concierge/internal/escalate"
)

// askCmd resolves a single question and prints the reply.
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask one question about tariffs or models",
	Long: `Ask a natural language question and print the assistant's answer.

Examples:
  concierge ask "Сколько стоит базовый тариф?"
  concierge ask "Расскажи про модель Хлоя"
  concierge ask "Когда свободна Яна?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.Join(args, " ")
		debug := viper.GetBool("debug")
		userID, _ := cmd.Flags().GetInt64("user")

		ctx := context.Background()
		a, err := app.New(ctx, app.FromViper())
		if err != nil {
			return err
		}
		defer a.Close()

		for _, res := range a.Catalog.Reload(ctx) {
			if res.Err != nil && debug {
				fmt.Printf("reload %s failed: %v\n", res.Category, res.Err)
			}
		}

		d := a.Resolver.Resolve(ctx, escalate.UserInfo{ID: userID}, question)
		if debug {
			fmt.Printf("decision=%s intent=%s entities=%+v\n", d.Kind, d.Intent, d.Entities)
			if d.Kind == engine.DecisionTemplate {
				for _, s := range engine.Suggestions(question, d.Intent) {
					fmt.Println(s)
				}
			}
		}
		fmt.Println(d.Reply)
		return nil
	},
}

func init() {
	askCmd.Flags().Int64("user", 1, "user ID the question is attributed to")
	rootCmd.AddCommand(askCmd)
}
