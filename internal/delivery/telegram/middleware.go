package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Spell-Splash/spell-splash-word-service/internal/repository"
	"github.com/Spell-Splash/spell-splash-word-service/internal/service"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling logs a failed handler and tells the chat what went wrong.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		if err == nil {
			return nil
		}

		text := msgInternalError
		switch {
		case errors.Is(err, service.ErrNoWordsFound):
			text = msgNoWords
		case errors.Is(err, repository.ErrVocabularyNotFound):
			text = msgWordGone
		case errors.Is(err, service.ErrTranscriptionFailed):
			text = msgTranscriptionFailed
		case errors.Is(err, service.ErrInvalidQuest), errors.Is(err, service.ErrInvalidAudio):
			text = msgBadInput
		}

		h.logger.Error("handle error",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		_ = h.send(newPlainMessage(chatID, text))
		return nil
	}
}
