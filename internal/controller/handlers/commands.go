package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/trainer_scheduler/internal/controller/formatting"
	"github.com/Freeeeeet/trainer_scheduler/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Подсказки по использованию команд
const (
	usageShifts      = "/shifts <тренер>"
	usageAddShift    = "/addshift <тренер> <день> <ЧЧ:ММ> <ЧЧ:ММ>"
	usageRemoveShift = "/removeshift <id смены>"
	usageFree        = "/free <тренер> <ГГГГ-ММ-ДД> <ЧЧ:ММ> <минуты>"
	usageSuggest     = "/suggest <тренер> <ГГГГ-ММ-ДД> <минуты>"
	usageBook        = "/book <тренер> <ГГГГ-ММ-ДД> <ЧЧ:ММ> <минуты> [тип]"
	usageCancel      = "/cancel <id тренировки> [причина]"
)

const helpText = "📚 Справка по командам:\n\n" +
	"Для клиентов:\n" +
	usageFree + " - Проверить время\n" +
	usageSuggest + " - Подобрать свободное время\n" +
	usageBook + " - Записаться\n" +
	usageCancel + " - Отменить запись\n" +
	"/mysessions - Мои тренировки\n" +
	usageShifts + " - Смены тренера\n\n" +
	"Для администраторов расписания:\n" +
	usageAddShift + " - Добавить смену\n" +
	usageRemoveShift + " - Удалить смену\n\n" +
	"День недели: пн..вс, mon..sun или 0-6 (0 = воскресенье)"

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg, ok := requireMessage(update)
	if !ok {
		return
	}

	member := memberFrom(msg.From)
	h.logger.Info("User started bot", zap.String("member_id", member.ID))

	h.sendMessage(ctx, b, msg.Chat.ID, fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Это бот для записи на персональные тренировки.\n\n"+
			"Подобрать время: %s\n"+
			"Записаться: %s\n"+
			"Мои тренировки: /mysessions\n"+
			"Справка: /help",
		member.Name, usageSuggest, usageBook,
	))
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg, ok := requireMessage(update)
	if !ok {
		return
	}
	h.sendMessage(ctx, b, msg.Chat.ID, helpText)
}

// HandleShifts обрабатывает команду /shifts
func (h *Handlers) HandleShifts(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg, ok := requireMessage(update)
	if !ok {
		return
	}

	args := commandArgs(msg.Text)
	if len(args) != 1 {
		h.replyBadArgs(ctx, b, msg.Chat.ID, errUsage, usageShifts)
		return
	}

	shifts, err := h.scheduler.ListShifts(ctx, args[0])
	if err != nil {
		h.replyFailure(ctx, b, msg.Chat.ID, "list shifts", err)
		return
	}

	h.sendMessage(ctx, b, msg.Chat.ID, formatting.FormatShifts(args[0], shifts))
}

// HandleAddShift обрабатывает команду /addshift
func (h *Handlers) HandleAddShift(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg, ok := requireMessage(update)
	if !ok {
		return
	}
	if !h.requireAdmin(ctx, b, msg) {
		return
	}

	args, err := ParseShiftArgs(commandArgs(msg.Text))
	if err != nil {
		h.replyBadArgs(ctx, b, msg.Chat.ID, err, usageAddShift)
		return
	}

	slotID, err := h.scheduler.AddShift(ctx, args.TrainerID, args.Day, args.Start, args.End)
	if err != nil {
		h.replyFailure(ctx, b, msg.Chat.ID, "add shift", err)
		return
	}

	h.sendMessage(ctx, b, msg.Chat.ID, fmt.Sprintf(
		"✅ Смена добавлена: %s %s\n🆔 %s",
		formatting.GetWeekdayName(args.Day),
		formatting.FormatTimeRange(args.Start, args.End),
		slotID,
	))
}

// HandleRemoveShift обрабатывает команду /removeshift
func (h *Handlers) HandleRemoveShift(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg, ok := requireMessage(update)
	if !ok {
		return
	}
	if !h.requireAdmin(ctx, b, msg) {
		return
	}

	args := commandArgs(msg.Text)
	if len(args) != 1 {
		h.replyBadArgs(ctx, b, msg.Chat.ID, errUsage, usageRemoveShift)
		return
	}

	if err := h.scheduler.RemoveShift(ctx, args[0]); err != nil {
		h.replyFailure(ctx, b, msg.Chat.ID, "remove shift", err)
		return
	}

	h.sendMessage(ctx, b, msg.Chat.ID, "✅ Смена удалена. Уже записанные тренировки сохранены.")
}

// HandleFree обрабатывает команду /free
func (h *Handlers) HandleFree(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg, ok := requireMessage(update)
	if !ok {
		return
	}

	args, err := ParseSlotArgs(commandArgs(msg.Text), false)
	if err != nil {
		h.replyBadArgs(ctx, b, msg.Chat.ID, err, usageFree)
		return
	}

	free, err := h.scheduler.IsSlotAvailable(ctx, args.TrainerID, args.Date, args.Start, args.DurationMinutes)
	if err != nil {
		h.replyFailure(ctx, b, msg.Chat.ID, "check slot", err)
		return
	}

	when := fmt.Sprintf("%s %s",
		formatting.FormatDateWithWeekday(args.Date),
		formatting.FormatTimeRange(args.Start, args.Start.Add(args.DurationMinutes)))
	if free {
		h.sendMessage(ctx, b, msg.Chat.ID, "🟢 Свободно: "+when)
		return
	}
	h.sendMessage(ctx, b, msg.Chat.ID, "🔴 Занято или вне смены: "+when)
}

// HandleSuggest обрабатывает команду /suggest
func (h *Handlers) HandleSuggest(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg, ok := requireMessage(update)
	if !ok {
		return
	}

	args, err := ParseSuggestArgs(commandArgs(msg.Text))
	if err != nil {
		h.replyBadArgs(ctx, b, msg.Chat.ID, err, usageSuggest)
		return
	}

	times, err := h.scheduler.SuggestStartTimes(ctx, args.TrainerID, args.Date, args.DurationMinutes, SuggestStepMinutes)
	if err != nil {
		h.replyFailure(ctx, b, msg.Chat.ID, "suggest start times", err)
		return
	}

	h.sendMessage(ctx, b, msg.Chat.ID, formatting.FormatStartTimes(times))
}

// HandleBook обрабатывает команду /book
func (h *Handlers) HandleBook(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg, ok := requireMessage(update)
	if !ok {
		return
	}

	args, err := ParseSlotArgs(commandArgs(msg.Text), true)
	if err != nil {
		h.replyBadArgs(ctx, b, msg.Chat.ID, err, usageBook)
		return
	}

	member := memberFrom(msg.From)
	session, err := h.scheduler.ScheduleSession(ctx, service.ScheduleRequest{
		MemberID:        member.ID,
		MemberName:      member.Name,
		TrainerID:       args.TrainerID,
		SessionType:     args.SessionType,
		Date:            args.Date,
		StartTime:       args.Start,
		DurationMinutes: args.DurationMinutes,
	})
	if err != nil {
		h.replyFailure(ctx, b, msg.Chat.ID, "schedule session", err)
		return
	}

	h.sendMessage(ctx, b, msg.Chat.ID, "🎉 Вы записаны!\n\n"+formatting.FormatSession(*session))
}

// HandleCancel обрабатывает команду /cancel
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg, ok := requireMessage(update)
	if !ok {
		return
	}

	args, err := ParseCancelArgs(commandArgs(msg.Text))
	if err != nil {
		h.replyBadArgs(ctx, b, msg.Chat.ID, err, usageCancel)
		return
	}

	// Отменять можно только свои тренировки
	member := memberFrom(msg.From)
	session, err := h.scheduler.GetSession(ctx, args.SessionID)
	if err != nil {
		h.replyFailure(ctx, b, msg.Chat.ID, "get session", err)
		return
	}
	if session.MemberID != member.ID {
		h.sendError(ctx, b, msg.Chat.ID, UserMessage(service.ErrSessionNotFound))
		return
	}

	if err := h.scheduler.CancelSession(ctx, args.SessionID, args.Reason); err != nil {
		h.replyFailure(ctx, b, msg.Chat.ID, "cancel session", err)
		return
	}

	h.sendMessage(ctx, b, msg.Chat.ID, "✅ Тренировка отменена. Время снова свободно.")
}

// HandleMySessions обрабатывает команду /mysessions
func (h *Handlers) HandleMySessions(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg, ok := requireMessage(update)
	if !ok {
		return
	}

	member := memberFrom(msg.From)
	sessions, err := h.scheduler.GetSessionsForMember(ctx, member.ID)
	if err != nil {
		h.replyFailure(ctx, b, msg.Chat.ID, "get member sessions", err)
		return
	}

	h.sendMessage(ctx, b, msg.Chat.ID, formatting.FormatSessions(sessions))
}

// replyBadArgs ответ на неразобранные аргументы
func (h *Handlers) replyBadArgs(ctx context.Context, b *bot.Bot, chatID int64, err error, usage string) {
	text := "❌ Неверные аргументы"
	if !errors.Is(err, errUsage) {
		text += ": " + err.Error()
	}
	h.sendError(ctx, b, chatID, text+"\n\nИспользование: "+usage)
}

// replyFailure логирует сбой (но не ошибки пользователя) и отвечает понятным текстом
func (h *Handlers) replyFailure(ctx context.Context, b *bot.Bot, chatID int64, op string, err error) {
	if !isUserError(err) {
		h.logger.Error("Command failed",
			zap.String("op", op),
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
	h.sendError(ctx, b, chatID, UserMessage(err))
}
