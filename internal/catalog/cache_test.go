package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// fakeSource serves canned rows per category and can be flipped to fail.
type fakeSource struct {
	mu   sync.Mutex
	rows map[Category][]Record
	fail map[Category]error
}

func (f *fakeSource) Fetch(_ context.Context, sheet Sheet) ([]Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail[sheet.Category]; err != nil {
		return nil, err
	}
	return f.rows[sheet.Category], nil
}

func testSheets() map[Category]Sheet {
	return map[Category]Sheet{
		Tariffs:  {Category: Tariffs, ID: "sheet-tariffs"},
		Models:   {Category: Models, ID: "sheet-models"},
		Synonyms: {Category: Synonyms, ID: "sheet-synonyms"},
	}
}

func TestReload(t *testing.T) {
	src := &fakeSource{
		rows: map[Category][]Record{
			Tariffs:  {{"Название тарифа": "Базовый"}, {"Название тарифа": "Vata Prod"}},
			Models:   {{"Имя": "Хлоя"}},
			Synonyms: {{"Синонимы": "тариф, пакет"}},
		},
	}

	cache := New(src, testSheets())
	results := cache.Reload(context.Background())

	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("category %s failed: %v", r.Category, r.Err)
		}
	}
	if got := len(cache.Records(Tariffs)); got != 2 {
		t.Errorf("tariffs count = %d, want 2", got)
	}
	if !cache.Loaded(Models) {
		t.Error("models should be loaded")
	}
	if cache.Synonyms().Len() != 1 {
		t.Errorf("synonym groups = %d, want 1", cache.Synonyms().Len())
	}
	if _, ok := cache.Synonyms().Variants("тариф"); !ok {
		t.Error("synonym table missing «тариф»")
	}
}

func TestReloadPartialFailure(t *testing.T) {
	src := &fakeSource{
		rows: map[Category][]Record{
			Tariffs:  {{"Название тарифа": "Базовый"}},
			Models:   {{"Имя": "Хлоя"}},
			Synonyms: {{"Синонимы": "тариф, пакет"}},
		},
	}
	cache := New(src, testSheets())
	cache.Reload(context.Background())

	// Second reload: models times out, tariffs and synonyms change.
	src.mu.Lock()
	src.rows[Tariffs] = []Record{
		{"Название тарифа": "Базовый"},
		{"Название тарифа": "Премиум"},
	}
	src.rows[Synonyms] = []Record{
		{"Синонимы": "тариф, пакет"},
		{"Синонимы": "модель, девушка"},
	}
	src.fail = map[Category]error{Models: errors.New("timeout")}
	src.mu.Unlock()

	results := cache.Reload(context.Background())

	var modelErr error
	for _, r := range results {
		if r.Category == Models {
			modelErr = r.Err
		}
	}
	if modelErr == nil {
		t.Fatal("expected models fetch error in results")
	}

	if got := len(cache.Records(Tariffs)); got != 2 {
		t.Errorf("tariffs not updated: count = %d, want 2", got)
	}
	if got := cache.Synonyms().Len(); got != 2 {
		t.Errorf("synonyms not updated: groups = %d, want 2", got)
	}
	// Models keeps its previous snapshot.
	if got := len(cache.Records(Models)); got != 1 {
		t.Errorf("models snapshot lost: count = %d, want 1", got)
	}
	if !cache.Loaded(Models) {
		t.Error("models should still count as loaded from the first reload")
	}
}

func TestReloadNeverLoadedFailure(t *testing.T) {
	src := &fakeSource{
		rows: map[Category][]Record{Tariffs: {{"Название тарифа": "Базовый"}}},
		fail: map[Category]error{Models: errors.New("boom"), Synonyms: errors.New("boom")},
	}
	cache := New(src, testSheets())
	cache.Reload(context.Background())

	if cache.Loaded(Models) {
		t.Error("models should not be loaded")
	}
	if got := len(cache.Records(Models)); got != 0 {
		t.Errorf("models count = %d, want 0", got)
	}
	if cache.Loaded(Tariffs) != true {
		t.Error("tariffs should be loaded")
	}
}

func TestDecodeCSV(t *testing.T) {
	body := []byte("\xEF\xBB\xBFНазвание тарифа,Цена\nБазовый,5000\nVata Prod,12000\n")
	records, err := decodeCSV(body, Tariffs)
	if err != nil {
		t.Fatalf("decodeCSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if got := records[0].TariffName(); got != "Базовый" {
		t.Errorf("first name = %q, want «Базовый» (BOM must be stripped)", got)
	}
	if got := records[1].Tariff().Price; got != "12000" {
		t.Errorf("price = %q, want 12000", got)
	}
}

func TestRecordAliases(t *testing.T) {
	rec := Record{"Тариф": "Старый формат", "Цена": "3000"}
	tariff := rec.Tariff()
	if tariff.Name != "Старый формат" {
		t.Errorf("alias fallback failed: %q", tariff.Name)
	}
	if tariff.Price != "3000" {
		t.Errorf("price alias fallback failed: %q", tariff.Price)
	}

	model := Record{"Модель": "Яна", "Портфолио": "https://example.com"}.Model()
	if model.Name != "Яна" || model.PortfolioURL != "https://example.com" {
		t.Errorf("model alias fallback failed: %+v", model)
	}
}
