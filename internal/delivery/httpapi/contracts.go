package httpapi

import (
	"context"

	"github.com/Spell-Splash/spell-splash-word-service/internal/domain/entities"
)

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
	Evaluate(ctx context.Context, targetWord string, audio []byte, filename string) (*entities.PronunciationResult, error)
}

type PlayerService interface {
	RegisterOrGet(ctx context.Context, playerID, username string) (*entities.Player, error)
	UpdateQuest(ctx context.Context, playerID, questID, status string) (*entities.PlayerQuest, error)
	Summarize(ctx context.Context, playerID string) (string, error)
}

// ScoreRecorder observes scored submissions. It may be nil.
type ScoreRecorder interface {
	WordScored(ctx context.Context, result *entities.ScoreResult)
}
