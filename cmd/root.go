package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "concierge",
	Short: "Query assistant for Vata Studio tariffs and models",
	Long: `Concierge answers natural language questions about Vata Studio
tariffs and models, escalates to a manager when it cannot help, and keeps
per-user session state. Catalog data is pulled from Google Sheets.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.concierge.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug output (shows progress + internal diagnostics)")

	// Sheets flags
	rootCmd.PersistentFlags().String("tariff-sheet", "", "tariff spreadsheet ID (or set CONCIERGE_SHEETS_TARIFFS)")
	rootCmd.PersistentFlags().String("model-sheet", "", "model spreadsheet ID (or set CONCIERGE_SHEETS_MODELS)")
	rootCmd.PersistentFlags().String("synonym-sheet", "", "synonym spreadsheet ID (or set CONCIERGE_SHEETS_SYNONYMS)")
	rootCmd.PersistentFlags().String("sheets-backend", "csv", "sheets fetch backend: csv or api")
	rootCmd.PersistentFlags().String("sheets-api-key", "", "Sheets API key, required for the api backend")

	// TODO: add error return here
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("sheets.tariffs", rootCmd.PersistentFlags().Lookup("tariff-sheet"))
	viper.BindPFlag("sheets.models", rootCmd.PersistentFlags().Lookup("model-sheet"))
	viper.BindPFlag("sheets.synonyms", rootCmd.PersistentFlags().Lookup("synonym-sheet"))
	viper.BindPFlag("sheets.backend", rootCmd.PersistentFlags().Lookup("sheets-backend"))
	viper.BindPFlag("sheets.api_key", rootCmd.PersistentFlags().Lookup("sheets-api-key"))

	viper.SetDefault("sheets.backend", "csv")
	viper.SetDefault("history.path", "data/conversations.db")
	viper.SetDefault("session.auto_enable", true)
	viper.SetDefault("session.ai_by_default", true)
	viper.SetDefault("session.timeout", "30m")
	viper.SetDefault("session.typing_timeout", "30s")
	viper.SetDefault("session.rate_limit_per_minute", 10)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".concierge")
	}

	viper.SetEnvPrefix("CONCIERGE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("debug") {
			fmt.Println("Using config file:", viper.ConfigFileUsed())
		}
	}
}
