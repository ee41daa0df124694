package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const maxVoiceBytes = 10 << 20

// handleVoice grades a recording against the chat's last quiz target.
func (h *Handler) handleVoice(voice *tgbotapi.Voice) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		targetID, ok := h.services.Sessions.Target(chatID)
		if !ok {
			return h.send(newPlainMessage(chatID, msgNoTarget))
		}

		audio, err := h.downloadFile(ctx, voice.FileID)
		if err != nil {
			return fmt.Errorf("download voice: %w", err)
		}

		result, err := h.services.Pronunciation.EvaluateByID(ctx, targetID, audio, "voice.ogg")
		if err != nil {
			return fmt.Errorf("evaluate pronunciation: %w", err)
		}

		return h.send(newMessage(chatID, formatPronunciation(result)))
	}
}

func (h *Handler) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	url, err := h.bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("resolve file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxVoiceBytes))
}
