// Package telegram is a bot client for quizzes, spelling rounds,
// pronunciation checks and quest tracking.
package telegram

import (
	"context"
	"net/http"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Spell-Splash/spell-splash-word-service/internal/domain/entities"
)

// Services groups the use cases the bot calls.
type Services struct {
	Quiz          QuizService
	Scorer        WordScorer
	Letters       LetterGenerator
	Pronunciation PronunciationService
	Players       PlayerService
	Sessions      SessionStore
}

type Handler struct {
	bot          BotAPI
	logger       *zap.Logger
	services     Services
	httpClient   *http.Client
	defaultLevel entities.Level
	poolSize     int
}

func NewHandler(
	bot BotAPI,
	logger *zap.Logger,
	services Services,
	defaultLevel entities.Level,
	poolSize int,
) *Handler {
	if defaultLevel == "" {
		defaultLevel = entities.LevelAll
	}
	if poolSize <= 0 {
		poolSize = 10
	}

	return &Handler{
		bot:          bot,
		logger:       logger,
		services:     services,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		defaultLevel: defaultLevel,
		poolSize:     poolSize,
	}
}

// Run consumes updates until ctx is cancelled.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	from := update.Message.From
	playerID := strconv.FormatInt(from.ID, 10)
	if _, err := h.services.Players.RegisterOrGet(ctx, playerID, displayName(from)); err != nil {
		h.logger.Error("failed to ensure player",
			zap.Int64("user_id", from.ID),
			zap.Error(err),
		)
	}

	chatID := update.Message.Chat.ID

	if update.Message.IsCommand() {
		args := update.Message.CommandArguments()

		switch update.Message.Command() {
		case "start", "help":
			_ = h.send(newPlainMessage(chatID, msgWelcome))

		case "quiz":
			_ = h.withErrorHandling(h.handleQuiz(entities.QuizModeDefinition, args))(ctx, chatID)

		case "meaning":
			_ = h.withErrorHandling(h.handleQuiz(entities.QuizModeMeaning, args))(ctx, chatID)

		case "cursed":
			_ = h.withErrorHandling(h.handleQuiz(entities.QuizModeCursed, args))(ctx, chatID)

		case "letters":
			_ = h.withErrorHandling(h.handleLetters(args))(ctx, chatID)

		case "quest":
			_ = h.withErrorHandling(h.handleQuest(playerID, args))(ctx, chatID)

		case "summary":
			_ = h.withErrorHandling(h.handleSummary(playerID))(ctx, chatID)

		default:
			_ = h.send(newPlainMessage(chatID, msgUnknownCommand))
		}

		return
	}

	if update.Message.Voice != nil {
		_ = h.withErrorHandling(h.handleVoice(update.Message.Voice))(ctx, chatID)
		return
	}

	_ = h.withErrorHandling(h.handleWord(update.Message.Text))(ctx, chatID)
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}

func displayName(u *tgbotapi.User) string {
	if u.UserName != "" {
		return u.UserName
	}
	return u.FirstName
}

// RegisterCommands publishes the command menu shown by Telegram clients.
func RegisterCommands(bot BotAPI) error {
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "quiz", Description: "Definition quiz (usage: /quiz B1)"},
		{Command: "meaning", Description: "Meaning quiz (usage: /meaning A2)"},
		{Command: "cursed", Description: "Listening quiz (usage: /cursed B2)"},
		{Command: "letters", Description: "Spelling round (usage: /letters 10)"},
		{Command: "quest", Description: "Update a quest (usage: /quest forest COMPLETED)"},
		{Command: "summary", Description: "Show your quests"},
		{Command: "help", Description: "Help"},
	}

	_, err := bot.Request(tgbotapi.NewSetMyCommands(commands...))
	return err
}
