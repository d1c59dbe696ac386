package report

import (
	"fmt"
	"strings"

	"familypay/internal/core"
)

type breakdownItem struct {
	label  string
	amount int64
}

type categoryBreakdown struct {
	category string
	items    []breakdownItem
}

// limitBreakdown is the hand-curated composition of each category's
// suggested monthly limit. It is informational and independent of the limits
// actually stored per user.
var limitBreakdown = []categoryBreakdown{
	{"Кредиты", []breakdownItem{
		{"До 10 числа кредитка Сбер", 23749},
		{"3-го числа", 4000},
		{"20-го числа", 16900},
		{"Т 1 числа", 13000},
		{"1 числа кровать", 14000},
		{"1 декабря АльфПрест", 11000},
	}},
	{"ЖКХ", []breakdownItem{
		{"Квартплата", 8500},
		{"Электричество", 2000},
	}},
	{"Мобильная связь и Интернет", []breakdownItem{
		{"Связь и интернет", 2500},
	}},
	{"Подписки", []breakdownItem{
		{"Подписки (169+599+599+1390)", 2757},
		{"Подписки (дополнительно)", 2500},
	}},
	{"Питомец", []breakdownItem{
		{"Корм", 4500},
		{"Груминг", 2000},
	}},
	{"Аптека", []breakdownItem{
		{"Аптека", 3000},
		{"Аптека (дополнительно)", 1000},
	}},
	{"Школа", []breakdownItem{
		{"Школа", 2000},
		{"Школа (дополнительно)", 11000},
	}},
	{"НГ", []breakdownItem{
		{"План на НГ", 25000},
	}},
	{"АИ", []breakdownItem{
		{"План на АИ", 25000},
	}},
	{"Ульяша", []breakdownItem{
		{"Ульяша", 20000},
	}},
	{"Стики", []breakdownItem{
		{"Стики", 16000},
	}},
}

// LimitBreakdown renders the curated limit composition per category,
// followed by the vocabulary categories that have no breakdown data.
func LimitBreakdown() string {
	lines := []string{"Детализация лимитов по категориям:", ""}

	covered := make(map[string]bool, len(limitBreakdown))
	for _, cb := range limitBreakdown {
		covered[cb.category] = true

		var total int64
		for _, item := range cb.items {
			total += item.amount
		}
		lines = append(lines, fmt.Sprintf("%s: %d ₽", cb.category, total))
		for _, item := range cb.items {
			lines = append(lines, fmt.Sprintf("  - %s: %d ₽", item.label, item.amount))
		}
		lines = append(lines, "")
	}

	var missing []string
	for _, category := range core.Categories {
		if !covered[category] {
			missing = append(missing, category)
		}
	}
	if len(missing) > 0 {
		lines = append(lines, "Нет детальной информации для категорий:")
		for _, category := range missing {
			lines = append(lines, fmt.Sprintf("  - %s", category))
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}
