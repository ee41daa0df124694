package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spell-Splash/spell-splash-word-service/internal/domain/entities"
)

// BotAPI is the part of *tgbotapi.BotAPI the handler uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	GetFileDirectURL(fileID string) (string, error)
	StopReceivingUpdates()
}

type QuizService interface {
	GenerateQuiz(ctx context.Context, mode entities.QuizMode, level entities.Level) (*entities.QuizQuestion, error)
	CheckAnswer(ctx context.Context, vocabID, answerID int64) (*entities.AnswerCheck, error)
}

type WordScorer interface {
	Score(ctx context.Context, submitted string, available []string) (*entities.ScoreResult, error)
}

type LetterGenerator interface {
	Generate(amount int) []string
}

type PronunciationService interface {
	EvaluateByID(ctx context.Context, vocabID int64, audio []byte, filename string) (*entities.PronunciationResult, error)
}

type PlayerService interface {
	RegisterOrGet(ctx context.Context, playerID, username string) (*entities.Player, error)
	UpdateQuest(ctx context.Context, playerID, questID, status string) (*entities.PlayerQuest, error)
	Summarize(ctx context.Context, playerID string) (string, error)
}

// SessionStore keeps per-chat state between updates.
type SessionStore interface {
	StoreLetters(chatID int64, letters []string)
	TakeLetters(chatID int64) ([]string, bool)
	StoreTarget(chatID, vocabID int64)
	Target(chatID int64) (int64, bool)
}
