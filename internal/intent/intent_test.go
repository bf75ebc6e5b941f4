package intent

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := NewClassifier()
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	return c
}

func TestClassify(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		name string
		text string
		want Kind
	}{
		{"command", "/start", Command},
		{"command with args", "/tariffs все", Command},
		{"command after spaces", "  /help", Command},
		{"greeting", "Привет! Как дела?", Greeting},
		{"greeting english", "hello there", Greeting},
		{"farewell", "до свидания", Farewell},
		{"tariff info", "сколько стоит съемка", TariffInfo},
		{"model info", "модель Яна подойдет", ModelInfo},
		{"portfolio", "есть примеры работ?", Portfolio},
		{"schedule", "какой график на неделю", Schedule},
		{"contact", "дайте телефон студии", Contact},
		{"thanks alone", "отлично, понятно", Thanks},
		{"fallback tariff word", "vata подойдет?", TariffInfo},
		{"fallback model word", "а тори сможет?", ModelInfo},
		{"unknown", "абракадабра", Unknown},
		{"empty", "", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.text); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifyGroupOrder(t *testing.T) {
	c := newTestClassifier(t)

	// «спасибо» appears in both farewell and thanks; farewell is declared
	// earlier and wins.
	if got := c.Classify("спасибо"); got != Farewell {
		t.Errorf("Classify(«спасибо») = %q, want %q", got, Farewell)
	}
	// «покажи» contains the farewell fragment «пока», and farewell is
	// scanned before model_info. Scan order, not relevance, decides.
	if got := c.Classify("покажи модель"); got != Farewell {
		t.Errorf("Classify(«покажи модель») = %q, want %q", got, Farewell)
	}
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Entities
	}{
		{
			name: "tariff name",
			text: "расскажи про Базовый тариф",
			want: Entities{TariffName: "базовый", QuestionType: "tariff"},
		},
		{
			name: "model overrides question type",
			text: "базовый тариф или Хлоя?",
			want: Entities{TariffName: "базовый", ModelName: "хлоя", QuestionType: "model"},
		},
		{
			name: "numeric date",
			text: "запишите на 15/12/2024",
			want: Entities{Date: "15/12/2024"},
		},
		{
			name: "relative day with time",
			text: "давайте завтра в 14:30",
			want: Entities{Date: "завтра", Time: "14:30"},
		},
		{
			name: "weekday",
			text: "давайте в среду",
			want: Entities{Date: "среду"},
		},
		{
			name: "dotted time only",
			text: "приду к 9.45",
			want: Entities{Time: "9.45"},
		},
		{
			name: "nothing",
			text: "просто вопрос",
			want: Entities{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Extract(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}
