package engine

import (
	"math/rand"
	"strings"

	"github.com/vatastudio/concierge/internal/history"
	"github.com/vatastudio/concierge/internal/intent"
)

// responseTemplates are the canned per-intent replies; one is picked at
// random per response.
var responseTemplates = map[intent.Kind][]string{
	intent.Greeting: {
		"Привет! 😊 Рад вас видеть! Чем могу помочь?",
		"Здравствуйте! 👋 Я ваш помощник Vata Studio. Какой у вас вопрос?",
		"Приветствую! Я готов помочь с вопросами о съемках и тарифах.",
	},
	intent.Farewell: {
		"Всего доброго! Обращайтесь еще! 👋",
		"До свидания! Буду рад помочь снова!",
		"Спасибо за обращение! Хорошего дня! ✨",
	},
	intent.Portfolio: {
		"К сожалению, система портфолио временно недоступна. Используйте команды /tariffs и /models для получения информации.",
		"Портфолио в разработке. Пока можете посмотреть информацию о тарифах и моделях.",
		"Раздел портфолио скоро будет доступен. А пока могу рассказать о наших услугах.",
	},
	intent.Schedule: {
		"Расписание моделей пока недоступно онлайн. Для записи на съемку свяжитесь с менеджером.",
		"Информация о расписании обновляется. Лучше уточнить у менеджера.",
		"Чтобы узнать точное расписание, напишите 'менеджер' для связи со специалистом.",
	},
	intent.Contact: {
		"Чтобы связаться с менеджером, напишите 'менеджер' или подождите, я вызову специалиста.",
		"Сейчас вызову менеджера для вас...",
		"Менеджер скоро свяжется с вами. А пока могу ответить на другие вопросы?",
	},
	intent.Thanks: {
		"Пожалуйста! Рад был помочь! 😊",
		"Всегда готов помочь! Обращайтесь!",
		"Спасибо за обращение! Если есть еще вопросы - пишите!",
	},
	intent.Unknown: {
		"Извините, я не совсем понял ваш запрос. Можете уточнить?",
		"Пока не могу ответить на этот вопрос. Попробуйте задать его иначе.",
		"Этот вопрос лучше уточнить у менеджера. Написать 'менеджер'?",
		"Я еще учусь понимать такие запросы. Можете использовать команды из меню?",
	},
}

const (
	replyCommand         = "Используйте команды из меню для навигации."
	replyDataUnavailable = "❌ Данные не загружены. Используйте команду /reload для загрузки данных."
	replyTariffNoMatch   = "Конкретный тариф не найден. Используйте команду /tariffs чтобы увидеть все доступные тарифы."
	replyModelNoMatch    = "Конкретная модель не найдена. Используйте команду /models чтобы увидеть всех моделей."
	replyEscalated       = "✅ Менеджер уведомлен! С вами свяжутся в ближайшее время. А пока могу помочь с другими вопросами?"
	replyEscalateFailed  = "Не удалось связаться с менеджером. Попробуйте, пожалуйста, позже."
	replyBlocked         = "Извините, ИИ-помощник временно недоступен. Используйте команды из меню."
)

func pickTemplate(rng *rand.Rand, kind intent.Kind) string {
	templates, ok := responseTemplates[kind]
	if !ok || len(templates) == 0 {
		templates = responseTemplates[intent.Unknown]
	}
	return templates[rng.Intn(len(templates))]
}

// unknownSuggestion hints the user toward a working query, looking at
// their recent messages for what they were after.
func unknownSuggestion(recent []history.Entry) string {
	var lastUserTexts []string
	for _, e := range recent {
		if !e.IsBot {
			lastUserTexts = append(lastUserTexts, e.Text)
		}
	}
	if len(lastUserTexts) > 2 {
		lastUserTexts = lastUserTexts[len(lastUserTexts)-2:]
	}

	for _, text := range lastUserTexts {
		lower := strings.ToLower(text)
		if containsAny(lower, []string{"тариф", "цена", "стоит"}) {
			return "Может быть, вы хотите узнать о тарифах? Напишите 'тарифы'"
		}
		if containsAny(lower, []string{"модель", "девушка", "рост"}) {
			return "Может быть, вы спрашиваете о моделях? Напишите 'модели'"
		}
	}
	return "Вы можете спросить о тарифах, моделях или вызвать менеджера."
}

// Suggestions offers example queries for the classified intent.
func Suggestions(query string, kind intent.Kind) []string {
	lower := strings.ToLower(query)

	switch kind {
	case intent.Unknown:
		switch {
		case containsAny(lower, []string{"стоит", "цена"}):
			return []string{"💡 Попробуйте: 'Сколько стоит базовый тариф?'"}
		case containsAny(lower, []string{"модель", "девушка"}):
			return []string{"💡 Попробуйте: 'Покажи модели для съемки'"}
		case containsAny(lower, []string{"когда", "время"}):
			return []string{"💡 Попробуйте: 'Когда свободна Хлоя?'"}
		default:
			return []string{"💡 Попробуйте: 'Тарифы' или 'Модели'"}
		}
	case intent.TariffInfo:
		return []string{"💡 Вы можете спросить: 'Базовый тариф' или 'Vata Prod'"}
	case intent.ModelInfo:
		return []string{"💡 Вы можете спросить: 'Хлоя' или 'модели для мобильной съемки'"}
	}
	return nil
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
