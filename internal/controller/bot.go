package controller

import (
	"context"

	"github.com/Freeeeeet/trainer_scheduler/internal/controller/handlers"
	"github.com/Freeeeeet/trainer_scheduler/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot      *bot.Bot
	handlers *handlers.Handlers
	logger   *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	scheduler *service.SchedulingService,
	admins []int64,
	logger *zap.Logger,
) *BotController {
	return &BotController{
		bot:      botInstance,
		handlers: handlers.NewHandlers(scheduler, admins, logger),
		logger:   logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/mysessions", bot.MatchTypeExact, c.handlers.HandleMySessions)

	// Команды клиентов (с аргументами)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/free", bot.MatchTypePrefix, c.handlers.HandleFree)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/suggest", bot.MatchTypePrefix, c.handlers.HandleSuggest)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/book", bot.MatchTypePrefix, c.handlers.HandleBook)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypePrefix, c.handlers.HandleCancel)

	// Управление сменами, /addshift и /removeshift только для администраторов
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/shifts", bot.MatchTypePrefix, c.handlers.HandleShifts)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/addshift", bot.MatchTypePrefix, c.handlers.HandleAddShift)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/removeshift", bot.MatchTypePrefix, c.handlers.HandleRemoveShift)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "help", Description: "❓ Справка по командам"},
		{Command: "suggest", Description: "🕐 Подобрать свободное время"},
		{Command: "book", Description: "📝 Записаться на тренировку"},
		{Command: "mysessions", Description: "📅 Мои тренировки"},
		{Command: "cancel", Description: "❌ Отменить тренировку"},
		{Command: "shifts", Description: "🗓 Смены тренера"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
