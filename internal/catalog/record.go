// Package catalog loads the tariff, model and synonym sheets and serves
// them as an atomically replaceable in-memory snapshot.
package catalog

// Record is one spreadsheet row: a flat column-name → value mapping with
// no enforced schema. Field access goes through alias chains because the
// sheets have been renamed over time.
type Record map[string]string

// Get returns the first non-empty value among the given field aliases.
func (r Record) Get(aliases ...string) string {
	for _, name := range aliases {
		if v := r[name]; v != "" {
			return v
		}
	}
	return ""
}

// Alias chains for the logical fields, in lookup order.
var (
	tariffNameAliases = []string{"Название тарифа", "Тариф"}
	tariffPriceAliases = []string{"Цена за 1 арт, руб.", "Цена"}
	tariffFramesAliases = []string{"Количество кадров", "Кадры"}

	modelNameAliases      = []string{"Имя", "Модель"}
	modelPortfolioAliases = []string{"Ссылка на портфолио", "Портфолио"}
)

// TariffRecord is the alias-resolved view of a tariff row.
type TariffRecord struct {
	Name        string
	Price       string
	FrameCount  string
	Description string
	Clients     string
	ExampleURL  string
}

// Tariff resolves the row into a typed tariff record.
func (r Record) Tariff() TariffRecord {
	return TariffRecord{
		Name:        r.Get(tariffNameAliases...),
		Price:       r.Get(tariffPriceAliases...),
		FrameCount:  r.Get(tariffFramesAliases...),
		Description: r.Get("Описание"),
		Clients:     r.Get("Для каких клиентов"),
		ExampleURL:  r.Get("Пример ссылки"),
	}
}

// TariffName returns the display name of a tariff row.
func (r Record) TariffName() string {
	return r.Get(tariffNameAliases...)
}

// ModelRecord is the alias-resolved view of a model row.
type ModelRecord struct {
	Name         string
	Height       string
	Parameters   string
	ShootingType string
	PortfolioURL string
	FreeDates    string
}

// Model resolves the row into a typed model record.
func (r Record) Model() ModelRecord {
	return ModelRecord{
		Name:         r.Get(modelNameAliases...),
		Height:       r.Get("Рост"),
		Parameters:   r.Get("Параметры"),
		ShootingType: r.Get("Тип съемок"),
		PortfolioURL: r.Get(modelPortfolioAliases...),
		FreeDates:    r.Get("Свободные даты"),
	}
}

// ModelName returns the display name of a model row.
func (r Record) ModelName() string {
	return r.Get(modelNameAliases...)
}
