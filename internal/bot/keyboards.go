package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"familypay/internal/core"
)

func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(core.BtnAdd),
			tgbotapi.NewKeyboardButton(core.BtnStatsCurrent),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(core.BtnStats),
			tgbotapi.NewKeyboardButton(core.BtnLimit),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(core.BtnSalary),
			tgbotapi.NewKeyboardButton(core.BtnLimitDetails),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(core.BtnClear),
			tgbotapi.NewKeyboardButton(core.BtnHelp),
		),
	)
}

// categoryKeyboard lays the fixed vocabulary out two buttons per row, in
// declaration order.
func categoryKeyboard() tgbotapi.ReplyKeyboardMarkup {
	var (
		rows [][]tgbotapi.KeyboardButton
		row  []tgbotapi.KeyboardButton
	)
	for _, category := range core.Categories {
		row = append(row, tgbotapi.NewKeyboardButton(category))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	markup := tgbotapi.NewReplyKeyboard(rows...)
	markup.OneTimeKeyboard = true
	return markup
}

func statsKeyboard() tgbotapi.ReplyKeyboardMarkup {
	markup := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(core.BtnStatsPrevious)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(core.BtnStatsYear)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(core.BtnStatsCategory)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(core.BtnStatsBack)),
	)
	markup.OneTimeKeyboard = true
	return markup
}
