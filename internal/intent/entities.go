package intent

import (
	"regexp"
	"strings"
)

// Entities are the lightweight values extracted from a message. Empty
// string means "not found"; the shape is always complete.
type Entities struct {
	TariffName   string
	ModelName    string
	QuestionType string // "tariff", "model" or ""
	Date         string
	Time         string
}

// Known display names, scanned in this order; first hit wins. «vata prod»
// must precede its prefixes.
var (
	tariffNames = []string{"базовый", "vata prod", "vata", "prod", "премиум", "стандарт"}
	modelNames  = []string{"хлоя", "яна", "валерия", "тори", "модель"}
)

// Date patterns tried in order; the first match is stored verbatim.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2}[./]\d{1,2}[./]\d{2,4})`),
	regexp.MustCompile(`(\d{1,2}\s+[а-яё]+)`),
	regexp.MustCompile(`(завтра|послезавтра|сегодня)`),
	regexp.MustCompile(`(понедельник|вторник|сред[ау]|четверг|пятниц[ау]|суббот[ау]|воскресень[ея])`),
}

var timePattern = regexp.MustCompile(`(\d{1,2}[:.]\d{2})`)

// Extract pulls entities out of a message. It is independent of intent
// classification and total: unknown inputs produce an empty Entities.
func Extract(text string) Entities {
	var e Entities
	lower := strings.ToLower(text)

	for _, name := range tariffNames {
		if strings.Contains(lower, name) {
			e.TariffName = name
			e.QuestionType = "tariff"
			break
		}
	}

	for _, name := range modelNames {
		if strings.Contains(lower, name) {
			e.ModelName = name
			e.QuestionType = "model"
			break
		}
	}

	for _, pattern := range datePatterns {
		if m := pattern.FindStringSubmatch(lower); m != nil {
			e.Date = m[1]
			break
		}
	}

	if m := timePattern.FindStringSubmatch(lower); m != nil {
		e.Time = m[1]
	}

	return e
}
