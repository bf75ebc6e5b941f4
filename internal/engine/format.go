package engine

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/vatastudio/concierge/internal/catalog"
)

// FormatTariff renders one tariff as the HTML-marked reply text.
func FormatTariff(t catalog.TariffRecord) string {
	name := t.Name
	if name == "" {
		name = "Без названия"
	}
	price := t.Price
	if price == "" {
		price = "?"
	}
	frames := t.FrameCount
	if frames == "" {
		frames = "?"
	}

	lines := []string{
		fmt.Sprintf("<b>🎯 Тариф: %s</b>", name),
		fmt.Sprintf("💰 <b>Цена:</b> %s₽ за 1 артикул", price),
		fmt.Sprintf("📸 <b>Кадров:</b> %s", frames),
	}
	if t.Description != "" {
		lines = append(lines, fmt.Sprintf("📝 <b>Описание:</b> %s", t.Description))
	}
	if t.Clients != "" {
		lines = append(lines, fmt.Sprintf("👥 <b>Для кого:</b> %s", t.Clients))
	}
	if isValidURL(t.ExampleURL) {
		lines = append(lines, fmt.Sprintf("🔗 <b>Пример работ:</b> %s", t.ExampleURL))
	}
	return strings.Join(lines, "\n")
}

// FormatModel renders one model as the HTML-marked reply text.
func FormatModel(m catalog.ModelRecord) string {
	name := m.Name
	if name == "" {
		name = "Без имени"
	}
	height := m.Height
	if height == "" {
		height = "?"
	}

	lines := []string{
		fmt.Sprintf("<b>👤 Модель: %s</b>", name),
		fmt.Sprintf("📏 <b>Рост:</b> %s см", height),
	}
	if m.Parameters != "" {
		lines = append(lines, fmt.Sprintf("📐 <b>Параметры:</b> %s", m.Parameters))
	}
	if m.ShootingType != "" {
		lines = append(lines, fmt.Sprintf("🎬 <b>Тип съемок:</b> %s", m.ShootingType))
	}
	if m.FreeDates != "" {
		lines = append(lines, fmt.Sprintf("📅 <b>Свободные даты:</b> %s", m.FreeDates))
	}
	if isValidURL(m.PortfolioURL) {
		lines = append(lines, fmt.Sprintf("🔗 <b>Портфолио:</b> %s", m.PortfolioURL))
	}
	return strings.Join(lines, "\n")
}

func isValidURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}
