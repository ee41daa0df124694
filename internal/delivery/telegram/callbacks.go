package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Remove the user's "clock".
	defer func() {
		if _, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
			h.logger.Warn("callback answer error", zap.Error(err))
		}
	}()

	if cb.Message == nil {
		return
	}

	cd := decodeCallback(cb.Data)
	switch cd.Action {
	case actionQuiz:
		h.handleQuizAnswer(ctx, cb, cd)
	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
	}
}

// handleQuizAnswer replaces the question with the verdict.
func (h *Handler) handleQuizAnswer(ctx context.Context, cb *tgbotapi.CallbackQuery, cd callbackData) {
	chatID := cb.Message.Chat.ID

	targetID, answerID, ok := parseQuizAnswer(cd)
	if !ok {
		h.logger.Warn("invalid quiz callback", zap.String("data", cd.Raw))
		return
	}

	check, err := h.services.Quiz.CheckAnswer(ctx, targetID, answerID)
	if err != nil {
		_ = h.withErrorHandling(func(context.Context, int64) error { return err })(ctx, chatID)
		return
	}

	text := formatAnswer(check)

	// Audio prompts carry a caption rather than text.
	if cb.Message.Audio != nil || cb.Message.Voice != nil {
		edit := tgbotapi.NewEditMessageCaption(chatID, cb.Message.MessageID, text)
		edit.ParseMode = tgbotapi.ModeMarkdownV2
		_ = h.send(edit)
		return
	}

	edit := tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	_ = h.send(edit)
}
