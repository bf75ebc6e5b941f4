package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vatastudio/concierge/internal/app"
)

// reloadCmd refetches all catalog sheets and reports per-category results.
var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Reload tariff, model and synonym sheets",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		a, err := app.New(ctx, app.FromViper())
		if err != nil {
			return err
		}
		defer a.Close()

		results := a.Catalog.Reload(ctx)
		failed := 0
		for _, res := range results {
			if res.Err != nil {
				failed++
				fmt.Printf("❌ %s: %v\n", res.Category, res.Err)
				continue
			}
			fmt.Printf("✅ %s: %d записей\n", res.Category, res.Count)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d categories failed", failed, len(results))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reloadCmd)
}
