// Package escalate decides when a conversation must leave the automated
// layer and pages the managers when it does.
package escalate

import (
	"strings"

	"github.com/vatastudio/concierge/internal/intent"
)

// managerKeywords force a human handoff: direct operator requests,
// payment/booking matters and complaints. Order is irrelevant here, any
// hit triggers.
var managerKeywords = []string{
	"менеджер", "человек", "оператор", "админ", "администратор",
	"позовите", "вызовите", "нужен человек", "живой",
	"договор", "оплата", "заказ", "забронировать", "записаться",
	"жалоба", "проблема", "недоволен", "претензия",
}

// ShouldEscalate reports whether the message must bypass automation.
// Pure and stateless: only the text and the already-classified intent
// participate in the decision.
func ShouldEscalate(text string, kind intent.Kind) bool {
	lower := strings.ToLower(text)
	for _, keyword := range managerKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return kind == intent.Contact
}
