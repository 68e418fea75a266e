package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Member клиент, от имени которого пришла команда
type Member struct {
	ID   string
	Name string
}

// memberFrom клиентом считается пользователь Telegram
func memberFrom(user *models.User) Member {
	name := strings.TrimSpace(user.FirstName + " " + user.LastName)
	if name == "" {
		name = user.Username
	}
	return Member{ID: strconv.FormatInt(user.ID, 10), Name: name}
}

// requireMessage проверяет что пришло текстовое сообщение от пользователя
func requireMessage(update *models.Update) (*models.Message, bool) {
	if update.Message == nil || update.Message.From == nil {
		return nil, false
	}
	return update.Message, true
}

// requireAdmin проверяет что команду прислал администратор расписания
func (h *Handlers) requireAdmin(ctx context.Context, b *bot.Bot, msg *models.Message) bool {
	if _, ok := h.admins[msg.From.ID]; ok {
		return true
	}

	h.logger.Warn("Admin command refused",
		zap.Int64("telegram_id", msg.From.ID),
		zap.String("text", msg.Text))
	h.sendError(ctx, b, msg.Chat.ID, "❌ Эта команда доступна только администраторам расписания.")
	return false
}

// sendError отправляет сообщение об ошибке и логирует если не удалось
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err),
		)
	}
}

// sendMessage отправляет сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
