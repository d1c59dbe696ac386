package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"familypay/internal/core"
	"familypay/internal/ledger"
	"familypay/internal/period"
	"familypay/internal/report"
)

// Engine routes inbound text through the pending-interaction state machine.
// Validation happens strictly before any write: input that fails a step
// re-prompts and keeps the state, so no partial record ever reaches the
// ledger.
type Engine struct {
	sessions *sessions
	ledger   *ledger.Service
	reports  *report.Builder
	now      func() time.Time
}

func NewEngine(ledger *ledger.Service, reports *report.Builder) *Engine {
	return &Engine{
		sessions: newSessions(),
		ledger:   ledger,
		reports:  reports,
		now:      time.Now,
	}
}

// HandleText processes one free-text message for a user and returns the
// replies. Errors are infrastructure faults only; user mistakes come back as
// re-prompt messages.
func (e *Engine) HandleText(ctx context.Context, userID int64, text string) ([]Message, error) {
	text = strings.TrimSpace(text)

	switch st := e.sessions.get(userID).(type) {
	case Idle:
		return e.handleIdle(ctx, userID, text)
	case AwaitingAmount:
		return e.handleAmount(userID, text)
	case AwaitingCategory:
		return e.handleCategory(userID, st, text)
	case AwaitingDescription:
		return e.handleDescription(ctx, userID, st, text)
	case AwaitingSalary:
		return e.handleSalary(ctx, userID, text)
	case AwaitingLimitCategory:
		return e.handleLimitCategory(userID, text)
	case AwaitingLimitValue:
		return e.handleLimitValue(ctx, userID, st, text)
	case AwaitingStatsOption:
		return e.handleStatsOption(ctx, userID, text)
	case AwaitingDetailCategory:
		return e.handleDetailCategory(ctx, userID, text)
	default:
		// Unreachable with the sealed state set; recover to idle anyway.
		e.sessions.reset(userID)
		return e.fallback(), nil
	}
}

func (e *Engine) handleIdle(ctx context.Context, userID int64, text string) ([]Message, error) {
	switch text {
	case core.BtnAdd:
		return []Message{e.StartAddFlow(userID)}, nil
	case core.BtnStatsCurrent:
		return e.monthlyReport(ctx, e.now())
	case core.BtnSalary:
		return []Message{e.StartSalaryFlow(userID)}, nil
	case core.BtnLimit:
		return []Message{e.StartLimitFlow(userID)}, nil
	case core.BtnStats:
		return []Message{e.StartStatsMenu(userID)}, nil
	case core.BtnLimitDetails:
		return []Message{{Text: report.LimitBreakdown(), Keyboard: KeyboardMain}}, nil
	case core.BtnClear:
		return e.ClearExpenses(ctx, userID)
	case core.BtnHelp:
		return []Message{e.Help()}, nil
	default:
		return e.fallback(), nil
	}
}

// StartAddFlow begins the add-expense flow, discarding any pending
// interaction.
func (e *Engine) StartAddFlow(userID int64) Message {
	e.sessions.set(userID, AwaitingAmount{})
	return Message{Text: "Введите сумму расхода:", Keyboard: KeyboardRemove}
}

// StartSalaryFlow begins the interactive salary flow.
func (e *Engine) StartSalaryFlow(userID int64) Message {
	e.sessions.set(userID, AwaitingSalary{})
	return Message{Text: "Введите сумму заработной платы:", Keyboard: KeyboardRemove}
}

// StartLimitFlow begins the category-limit flow.
func (e *Engine) StartLimitFlow(userID int64) Message {
	e.sessions.set(userID, AwaitingLimitCategory{})
	return Message{Text: "Выберите категорию для установки лимита:", Keyboard: KeyboardCategories}
}

// StartStatsMenu opens the statistics submenu.
func (e *Engine) StartStatsMenu(userID int64) Message {
	e.sessions.set(userID, AwaitingStatsOption{})
	return Message{Text: "Выберите интересующий отчёт:", Keyboard: KeyboardStats}
}

func (e *Engine) handleAmount(userID int64, text string) ([]Message, error) {
	amount, err := core.ParsePositiveAmount(text)
	switch {
	case err == core.ErrNotPositive:
		return []Message{{Text: "Сумма должна быть больше нуля."}}, nil
	case err != nil:
		return []Message{{Text: "Сумма должна быть целым числом, попробуйте ещё раз."}}, nil
	}

	e.sessions.set(userID, AwaitingCategory{Amount: amount})
	return []Message{{Text: "Выберите категорию:", Keyboard: KeyboardCategories}}, nil
}

func (e *Engine) handleCategory(userID int64, st AwaitingCategory, text string) ([]Message, error) {
	if !core.IsValidCategory(text) {
		return []Message{{Text: "Выберите категорию из списка на клавиатуре.", Keyboard: KeyboardCategories}}, nil
	}

	e.sessions.set(userID, AwaitingDescription{Amount: st.Amount, Category: text})
	return []Message{{Text: "Введите описание расхода (или '-' если без описания):", Keyboard: KeyboardRemove}}, nil
}

func (e *Engine) handleDescription(ctx context.Context, userID int64, st AwaitingDescription, text string) ([]Message, error) {
	if st.Amount <= 0 || st.Category == "" {
		// Pending data went missing; abandon the flow rather than guess.
		e.sessions.reset(userID)
		return []Message{{Text: "Не удалось сохранить расход, попробуйте снова команду /add.", Keyboard: KeyboardMain}}, nil
	}

	description := text
	if description == "-" {
		description = ""
	}

	if _, err := e.ledger.AddExpense(ctx, core.Expense{
		UserID:      userID,
		Amount:      st.Amount,
		Category:    st.Category,
		Description: description,
		Timestamp:   e.now(),
	}); err != nil {
		return nil, fmt.Errorf("complete add flow: %w", err)
	}

	e.sessions.reset(userID)
	confirmation := Message{Text: fmt.Sprintf("Расход добавлен: %d ₽ (%s)", st.Amount, st.Category)}
	return e.withMonthlyReport(ctx, confirmation)
}

func (e *Engine) handleSalary(ctx context.Context, userID int64, text string) ([]Message, error) {
	amount, err := core.ParsePositiveAmount(text)
	switch {
	case err == core.ErrNotPositive:
		return []Message{{Text: "Сумма должна быть положительной"}}, nil
	case err != nil:
		return []Message{{Text: "Сумма должна быть целым числом, попробуйте ещё раз."}}, nil
	}

	if err := e.ledger.SetSalary(ctx, userID, amount); err != nil {
		return nil, fmt.Errorf("complete salary flow: %w", err)
	}

	e.sessions.reset(userID)
	confirmation := Message{Text: fmt.Sprintf("Заработная плата установлена: %d ₽", amount)}
	return e.withMonthlyReport(ctx, confirmation)
}

// SetSalaryDirect handles the /salary command with an inline amount,
// bypassing the interactive flow.
func (e *Engine) SetSalaryDirect(ctx context.Context, userID int64, arg string) ([]Message, error) {
	amount, err := core.ParsePositiveAmount(arg)
	switch {
	case err == core.ErrNotPositive:
		return []Message{{Text: "Сумма должна быть положительной"}}, nil
	case err != nil:
		return []Message{{Text: "Сумма должна быть целым числом!"}}, nil
	}

	if err := e.ledger.SetSalary(ctx, userID, amount); err != nil {
		return nil, fmt.Errorf("set salary: %w", err)
	}

	confirmation := Message{Text: fmt.Sprintf("Заработная плата установлена: %d ₽", amount)}
	return e.withMonthlyReport(ctx, confirmation)
}

func (e *Engine) handleLimitCategory(userID int64, text string) ([]Message, error) {
	if !core.IsValidCategory(text) {
		return []Message{{Text: "Выберите категорию из списка на клавиатуре.", Keyboard: KeyboardCategories}}, nil
	}

	e.sessions.set(userID, AwaitingLimitValue{Category: text})
	return []Message{{Text: "Введите лимит для категории (0 — чтобы удалить лимит):", Keyboard: KeyboardRemove}}, nil
}

func (e *Engine) handleLimitValue(ctx context.Context, userID int64, st AwaitingLimitValue, text string) ([]Message, error) {
	value, err := core.ParseLimitValue(text)
	switch {
	case err == core.ErrNegativeLimit:
		return []Message{{Text: "Лимит не может быть отрицательным. Введите 0 для удаления или положительное число."}}, nil
	case err != nil:
		return []Message{{Text: "Лимит должен быть целым числом, попробуйте ещё раз."}}, nil
	}

	if st.Category == "" {
		e.sessions.reset(userID)
		return []Message{{Text: "Не удалось сохранить лимит, попробуйте снова команду /limit.", Keyboard: KeyboardMain}}, nil
	}

	if err := e.ledger.SetCategoryLimit(ctx, userID, st.Category, value); err != nil {
		return nil, fmt.Errorf("complete limit flow: %w", err)
	}

	e.sessions.reset(userID)
	var confirmation Message
	if value == 0 {
		confirmation = Message{Text: fmt.Sprintf("Лимит для категории '%s' удалён.", st.Category)}
	} else {
		confirmation = Message{Text: fmt.Sprintf("Лимит для категории '%s' установлен: %d ₽", st.Category, value)}
	}
	return e.withMonthlyReport(ctx, confirmation)
}

func (e *Engine) handleStatsOption(ctx context.Context, userID int64, text string) ([]Message, error) {
	switch text {
	case core.BtnStatsPrevious:
		e.sessions.reset(userID)
		return e.monthlyReport(ctx, period.PreviousMonth(e.now()))
	case core.BtnStatsYear:
		e.sessions.reset(userID)
		now := e.now()
		msg, err := e.reports.Yearly(ctx, now.Year(), now)
		if err != nil {
			return nil, fmt.Errorf("year report: %w", err)
		}
		return []Message{{Text: msg, Keyboard: KeyboardMain}}, nil
	case core.BtnStatsCategory:
		e.sessions.set(userID, AwaitingDetailCategory{})
		return []Message{{Text: "Выберите категорию для детальной статистики:", Keyboard: KeyboardCategories}}, nil
	case core.BtnStatsBack:
		e.sessions.reset(userID)
		return []Message{{Text: "Возврат в главное меню.", Keyboard: KeyboardMain}}, nil
	default:
		return []Message{{Text: "Выберите вариант из меню статистики.", Keyboard: KeyboardStats}}, nil
	}
}

func (e *Engine) handleDetailCategory(ctx context.Context, userID int64, text string) ([]Message, error) {
	if !core.IsValidCategory(text) {
		return []Message{{Text: "Выберите категорию из списка на клавиатуре.", Keyboard: KeyboardCategories}}, nil
	}

	e.sessions.reset(userID)
	msg, err := e.reports.CategoryDetails(ctx, text, e.now())
	if err != nil {
		return nil, fmt.Errorf("category detail report: %w", err)
	}
	return []Message{{Text: msg, Keyboard: KeyboardMain}}, nil
}

// ClearExpenses wipes the user's expense history and reports the result.
func (e *Engine) ClearExpenses(ctx context.Context, userID int64) ([]Message, error) {
	e.sessions.reset(userID)
	if err := e.ledger.ClearExpenses(ctx, userID); err != nil {
		return nil, fmt.Errorf("clear expenses: %w", err)
	}
	return e.withMonthlyReport(ctx, Message{Text: "Вся история расходов очищена."})
}

// CurrentMonthReport renders the report for the month in progress.
func (e *Engine) CurrentMonthReport(ctx context.Context) ([]Message, error) {
	return e.monthlyReport(ctx, e.now())
}

// Greeting is the /start reply.
func (e *Engine) Greeting() Message {
	return Message{
		Text:     "Привет! Я бот для учёта расходов.\nИспользуйте кнопки ниже или команды:",
		Keyboard: KeyboardMain,
	}
}

// Help lists the available buttons and commands.
func (e *Engine) Help() Message {
	text := "Доступные действия:\n" +
		core.BtnAdd + " — пошаговое добавление расхода\n" +
		core.BtnStatsCurrent + " — статистика за текущий месяц\n" +
		core.BtnSalary + " — установка суммы зарплаты\n" +
		core.BtnLimit + " — настройка лимитов по категориям\n" +
		core.BtnStats + " — выбор отчётов (прошлый месяц, год, детально по категории)\n" +
		core.BtnLimitDetails + " — из чего складываются лимиты\n" +
		core.BtnClear + " — очистка истории расходов\n" +
		core.BtnHelp + " — эта подсказка\n\n" +
		"Используйте кнопки главного меню или команды /add, /salary, /limit, /clear, /stats.\n" +
		"Все суммы вводите целыми числами."
	return Message{Text: text, Keyboard: KeyboardMain}
}

func (e *Engine) fallback() []Message {
	return []Message{{
		Text:     "Я вас не понял. Используйте кнопки главного меню или команду /help для справки.",
		Keyboard: KeyboardMain,
	}}
}

func (e *Engine) monthlyReport(ctx context.Context, target time.Time) ([]Message, error) {
	msg, err := e.reports.Monthly(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("month report: %w", err)
	}
	return []Message{{Text: msg, Keyboard: KeyboardMain}}, nil
}

func (e *Engine) withMonthlyReport(ctx context.Context, first Message) ([]Message, error) {
	reportMsgs, err := e.monthlyReport(ctx, e.now())
	if err != nil {
		return nil, err
	}
	return append([]Message{first}, reportMsgs...), nil
}
