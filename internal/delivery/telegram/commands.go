package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Spell-Splash/spell-splash-word-service/internal/domain/entities"
)

// handleQuiz sends a multiple-choice question and remembers its target for voice grading.
func (h *Handler) handleQuiz(mode entities.QuizMode, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		level := h.defaultLevel
		if raw := strings.TrimSpace(args); raw != "" {
			parsed, ok := entities.ParseLevel(raw)
			if !ok {
				return h.send(newPlainMessage(chatID, fmt.Sprintf(msgUnknownLevel, raw)))
			}
			level = parsed
		}

		q, err := h.services.Quiz.GenerateQuiz(ctx, mode, level)
		if err != nil {
			return fmt.Errorf("generate %s quiz: %w", mode, err)
		}

		h.services.Sessions.StoreTarget(chatID, q.TargetID)

		if mode == entities.QuizModeCursed && q.AudioURL != "" {
			audio := buildQuizAudio(chatID, q)
			if err := h.send(audio); err == nil {
				return nil
			}
			h.logger.Warn("audio prompt failed, falling back to text",
				zap.Int64("chat_id", chatID),
				zap.String("audio_url", q.AudioURL),
			)
		}

		msg := newMessage(chatID, formatQuizPrompt(q))
		msg.ReplyMarkup = buildChoicesKeyboard(q)
		return h.send(msg)
	}
}

// handleLetters starts a spelling round; the next text message is scored against it.
func (h *Handler) handleLetters(args string) HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		amount := h.poolSize
		if raw := strings.TrimSpace(args); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return h.send(newPlainMessage(chatID, msgInvalidAmount))
			}
			amount = n
		}

		letters := h.services.Letters.Generate(amount)
		h.services.Sessions.StoreLetters(chatID, letters)

		return h.send(newMessage(chatID, formatLetters(letters)))
	}
}

// handleWord scores plain text against the chat's current letter pool.
func (h *Handler) handleWord(text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		word := strings.TrimSpace(text)
		if word == "" {
			return h.send(newPlainMessage(chatID, msgUnknownCommand))
		}

		letters, ok := h.services.Sessions.TakeLetters(chatID)
		if !ok {
			return h.send(newPlainMessage(chatID, msgNoLetters))
		}

		result, err := h.services.Scorer.Score(ctx, word, letters)
		if err != nil {
			return fmt.Errorf("score word: %w", err)
		}

		return h.send(newMessage(chatID, formatScore(result)))
	}
}

func (h *Handler) handleQuest(playerID, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		fields := strings.Fields(args)
		if len(fields) != 2 {
			return h.send(newPlainMessage(chatID, msgQuestUsage))
		}

		quest, err := h.services.Players.UpdateQuest(ctx, playerID, fields[0], strings.ToUpper(fields[1]))
		if err != nil {
			return fmt.Errorf("update quest: %w", err)
		}

		return h.send(newMessage(chatID, formatQuest(quest)))
	}
}

func (h *Handler) handleSummary(playerID string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		summary, err := h.services.Players.Summarize(ctx, playerID)
		if err != nil {
			return fmt.Errorf("summarize player: %w", err)
		}

		return h.send(newPlainMessage(chatID, summary))
	}
}
