package core

import "fmt"

// Categories is the fixed expense vocabulary, in menu order. The store does
// not enforce it: legacy rows may carry categories outside this list, and
// reports surface those separately.
var Categories = []string{
	"Еда",
	"Транспорт",
	"Кредиты",
	"ЖКХ",
	"Мобильная связь и Интернет",
	"Аптека",
	"Подписки",
	"Питомец",
	"Школа",
	"НГ",
	"АИ",
	"Ульяша",
	"Долги",
	"Стики",
	"Другое",
}

var monthNames = [13]string{
	"",
	"Январь",
	"Февраль",
	"Март",
	"Апрель",
	"Май",
	"Июнь",
	"Июль",
	"Август",
	"Сентябрь",
	"Октябрь",
	"Ноябрь",
	"Декабрь",
}

// IsValidCategory reports whether c belongs to the fixed vocabulary.
func IsValidCategory(c string) bool {
	for _, cat := range Categories {
		if cat == c {
			return true
		}
	}
	return false
}

// MonthName returns the Russian month name, or the numeric value when out of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("%d", month)
	}
	return monthNames[month]
}

// FormatMonthYear renders a report title like "Август 2026".
func FormatMonthYear(year, month int) string {
	return fmt.Sprintf("%s %d", MonthName(month), year)
}
