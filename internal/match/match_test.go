package match

import (
	"testing"

	"github.com/vatastudio/concierge/internal/catalog"
	"github.com/vatastudio/concierge/internal/synonym"
)

var tariffs = []catalog.Record{
	{"Название тарифа": "Базовый"},
	{"Название тарифа": "Vata Prod"},
}

func TestTariff(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantName string // "" = no match
	}{
		{"name word inside query", "расскажи про базовый", "Базовый"},
		{"query inside name", "vata", "Vata Prod"},
		{"exact name", "Базовый", "Базовый"},
		{"generic query no match", "хочу узнать тарифы", ""},
		{"empty query", "", ""},
		{"multiword name word hit", "что входит в prod пакет", "Vata Prod"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tariff(tt.query, tariffs, nil)
			switch {
			case tt.wantName == "" && got != nil:
				t.Errorf("Tariff(%q) = %v, want no match", tt.query, got)
			case tt.wantName != "" && got == nil:
				t.Errorf("Tariff(%q) = nil, want %q", tt.query, tt.wantName)
			case got != nil && got.TariffName() != tt.wantName:
				t.Errorf("Tariff(%q) = %q, want %q", tt.query, got.TariffName(), tt.wantName)
			}
		})
	}
}

func TestTariffSynonymRewrite(t *testing.T) {
	table := synonym.NewTable()
	table.Add("базовый", []string{"стартовый"})

	got := Tariff("подойдет ли стартовый", tariffs, table)
	if got == nil || got.TariffName() != "Базовый" {
		t.Fatalf("synonym-rewritten query should match «Базовый», got %v", got)
	}
}

func TestTariffSheetOrderWins(t *testing.T) {
	records := []catalog.Record{
		{"Название тарифа": "Прод Лайт"},
		{"Название тарифа": "Прод"},
	}
	// «прод» is a word of both names; the first record in sheet order wins.
	got := Tariff("нужен прод", records, nil)
	if got == nil || got.TariffName() != "Прод Лайт" {
		t.Fatalf("want first record by sheet order, got %v", got)
	}
}

func TestModel(t *testing.T) {
	models := []catalog.Record{
		{"Имя": "Хлоя"},
		{"Имя": "Яна"},
	}

	if got := Model("когда свободна хлоя", models, nil); got == nil || got.ModelName() != "Хлоя" {
		t.Errorf("Model() = %v, want «Хлоя»", got)
	}
	if got := Model("кто-нибудь в пятницу", models, nil); got != nil {
		t.Errorf("Model() = %v, want no match", got)
	}
}
