// Package bot binds the conversation engine to Telegram: it receives updates
// over long polling, routes commands and free text, and renders reply
// keyboards.
package bot

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"familypay/internal/session"
)

type Bot struct {
	api         *tgbotapi.BotAPI
	engine      *session.Engine
	pollTimeout int
}

func New(token string, pollTimeout int, engine *session.Engine) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram client: %w", err)
	}

	b := &Bot{
		api:         api,
		engine:      engine,
		pollTimeout: pollTimeout,
	}

	if err := b.registerCommands(); err != nil {
		return nil, fmt.Errorf("register commands: %w", err)
	}

	slog.Info("Telegram bot authorized", "username", api.Self.UserName)
	return b, nil
}

func (b *Bot) registerCommands() error {
	commands := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Главное меню"},
		tgbotapi.BotCommand{Command: "add", Description: "Добавить расход"},
		tgbotapi.BotCommand{Command: "salary", Description: "Установить зарплату"},
		tgbotapi.BotCommand{Command: "limit", Description: "Лимит по категории"},
		tgbotapi.BotCommand{Command: "stats", Description: "Статистика"},
		tgbotapi.BotCommand{Command: "clear", Description: "Очистить расходы"},
		tgbotapi.BotCommand{Command: "help", Description: "Помощь"},
	)
	_, err := b.api.Request(commands)
	return err
}

// Run consumes updates until the context is cancelled. Each message is
// handled to completion before the next one; infrastructure faults inside a
// handler propagate out and stop the loop.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout
	updates := b.api.GetUpdatesChan(u)

	slog.Info("Listening for updates", "poll_timeout", b.pollTimeout)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if err := b.handleUpdate(ctx, update); err != nil {
				return fmt.Errorf("handle update: %w", err)
			}
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	if update.Message == nil || update.Message.Text == "" {
		return nil
	}

	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	msgs, err := b.dispatch(ctx, userID, update.Message)
	if err != nil {
		return err
	}

	return b.send(chatID, msgs)
}

// dispatch routes commands to their explicit entry points; everything else
// goes through the state machine.
func (b *Bot) dispatch(ctx context.Context, userID int64, message *tgbotapi.Message) ([]session.Message, error) {
	if !message.IsCommand() {
		return b.engine.HandleText(ctx, userID, message.Text)
	}

	switch message.Command() {
	case "start":
		return []session.Message{b.engine.Greeting()}, nil
	case "add":
		return []session.Message{b.engine.StartAddFlow(userID)}, nil
	case "salary":
		if args := message.CommandArguments(); args != "" {
			return b.engine.SetSalaryDirect(ctx, userID, args)
		}
		return []session.Message{b.engine.StartSalaryFlow(userID)}, nil
	case "limit":
		return []session.Message{b.engine.StartLimitFlow(userID)}, nil
	case "clear":
		return b.engine.ClearExpenses(ctx, userID)
	case "stats":
		return []session.Message{b.engine.StartStatsMenu(userID)}, nil
	case "help":
		return []session.Message{b.engine.Help()}, nil
	default:
		return []session.Message{b.engine.Help()}, nil
	}
}

func (b *Bot) send(chatID int64, msgs []session.Message) error {
	for _, m := range msgs {
		out := tgbotapi.NewMessage(chatID, m.Text)
		if markup := replyMarkup(m.Keyboard); markup != nil {
			out.ReplyMarkup = markup
		}
		if _, err := b.api.Send(out); err != nil {
			return fmt.Errorf("send reply: %w", err)
		}
	}
	return nil
}

// replyMarkup maps a keyboard hint to Telegram markup; KeyboardKeep maps to
// nil, leaving the user's current keyboard in place.
func replyMarkup(k session.Keyboard) interface{} {
	switch k {
	case session.KeyboardMain:
		return mainKeyboard()
	case session.KeyboardCategories:
		return categoryKeyboard()
	case session.KeyboardStats:
		return statsKeyboard()
	case session.KeyboardRemove:
		return tgbotapi.NewRemoveKeyboard(true)
	default:
		return nil
	}
}
