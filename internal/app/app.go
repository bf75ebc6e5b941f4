// Package app wires the assistant together from configuration: catalog
// cache, session controller, history store, escalation notifier and the
// resolution engine behind one container.
package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/vatastudio/concierge/internal/catalog"
	"github.com/vatastudio/concierge/internal/engine"
	"github.com/vatastudio/concierge/internal/escalate"
	"github.com/vatastudio/concierge/internal/history"
	"github.com/vatastudio/concierge/internal/session"
)

// Config is everything the assistant needs to start.
type Config struct {
	// TariffSheetID, ModelSheetID and SynonymSheetID are the three
	// spreadsheet IDs the catalog is built from.
	TariffSheetID  string
	ModelSheetID   string
	SynonymSheetID string

	// FetchBackend selects "csv" (public export URL) or "api"
	// (Sheets API with a key).
	FetchBackend string
	SheetsAPIKey string

	// Managers receive escalation pages, first ID also gets typing
	// timeout alerts.
	Managers []int64

	// HistoryPath is the sqlite file; empty disables history.
	HistoryPath string

	Session session.Settings
}

// FromViper reads the config the way the CLI stores it.
func FromViper() Config {
	settings := session.DefaultSettings()
	settings.AutoEnableNewUsers = viper.GetBool("session.auto_enable")
	settings.EnableAIByDefault = viper.GetBool("session.ai_by_default")
	if d := viper.GetDuration("session.timeout"); d > 0 {
		settings.SessionTimeout = d
	}
	if d := viper.GetDuration("session.typing_timeout"); d > 0 {
		settings.TypingTimeout = d
	}
	if n := viper.GetInt("session.rate_limit_per_minute"); n > 0 {
		settings.MaxMessagesPerMinute = n
	}

	var managers []int64
	for _, id := range viper.GetIntSlice("managers") {
		managers = append(managers, int64(id))
	}

	return Config{
		TariffSheetID:  viper.GetString("sheets.tariffs"),
		ModelSheetID:   viper.GetString("sheets.models"),
		SynonymSheetID: viper.GetString("sheets.synonyms"),
		FetchBackend:   viper.GetString("sheets.backend"),
		SheetsAPIKey:   viper.GetString("sheets.api_key"),
		Managers:       managers,
		HistoryPath:    viper.GetString("history.path"),
		Session:        settings,
	}
}

// App holds the wired assistant.
type App struct {
	Catalog  *catalog.Cache
	Sessions *session.Controller
	History  *history.Store
	Notifier *escalate.Notifier
	Resolver *engine.Resolver
}

// New wires the app. History is optional; everything else is built
// unconditionally.
func New(ctx context.Context, cfg Config) (*App, error) {
	source, err := buildSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sheets := map[catalog.Category]catalog.Sheet{
		catalog.Tariffs:  {Category: catalog.Tariffs, ID: cfg.TariffSheetID},
		catalog.Models:   {Category: catalog.Models, ID: cfg.ModelSheetID},
		catalog.Synonyms: {Category: catalog.Synonyms, ID: cfg.SynonymSheetID},
	}
	cache := catalog.New(source, sheets)
	sessions := session.New(cfg.Session)

	var store *history.Store
	if cfg.HistoryPath != "" {
		store, err = history.Open(cfg.HistoryPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open history: %w", err)
		}
	}

	notifier := escalate.NewNotifier(&ConsoleSink{Out: os.Stdout}, cfg.Managers)

	resolver, err := engine.NewResolver(cache, sessions, store, notifier)
	if err != nil {
		return nil, err
	}

	return &App{
		Catalog:  cache,
		Sessions: sessions,
		History:  store,
		Notifier: notifier,
		Resolver: resolver,
	}, nil
}

// Close releases held resources.
func (a *App) Close() error {
	if a.History != nil {
		return a.History.Close()
	}
	return nil
}

func buildSource(ctx context.Context, cfg Config) (catalog.Source, error) {
	switch cfg.FetchBackend {
	case "", "csv":
		client := &http.Client{Timeout: catalog.DefaultFetchTimeout}
		return catalog.NewCSVSource(client, ""), nil
	case "api":
		if cfg.SheetsAPIKey == "" {
			return nil, fmt.Errorf("sheets backend %q requires sheets.api_key", cfg.FetchBackend)
		}
		return catalog.NewSheetsSource(ctx, cfg.SheetsAPIKey)
	default:
		return nil, fmt.Errorf("unknown sheets backend %q (want csv or api)", cfg.FetchBackend)
	}
}

// ConsoleSink prints escalation pages to a writer. It stands in for a
// messenger transport in CLI use.
type ConsoleSink struct {
	Out io.Writer
}

func (s *ConsoleSink) Send(_ context.Context, managerID int64, text string) error {
	out := s.Out
	if out == nil {
		out = os.Stdout
	}
	_, err := fmt.Fprintf(out, "\n📢 [менеджер %d] %s\n%s\n", managerID, time.Now().Format("15:04:05"), text)
	return err
}
