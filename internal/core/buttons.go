package core

// Reply-keyboard button labels. The conversation layer dispatches on the
// exact label text, so these double as menu command identifiers.
const (
	BtnAdd           = "➕ Добавить расход"
	BtnSalary        = "💼 Установить зарплату"
	BtnLimit         = "🎯 Лимит по категории"
	BtnLimitDetails  = "🧾 Детали лимитов"
	BtnStats         = "📊 Статистика"
	BtnStatsCurrent  = "📈 Текущий месяц"
	BtnStatsPrevious = "📉 Прошлый месяц"
	BtnStatsYear     = "🗓️ Год"
	BtnStatsCategory = "📂 Детали по категории"
	BtnStatsBack     = "⬅️ Главное меню"
	BtnClear         = "🧹 Очистить расходы"
	BtnHelp          = "ℹ️ Помощь"
)
