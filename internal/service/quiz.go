package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Spell-Splash/spell-splash-word-service/internal/domain/entities"
	"github.com/Spell-Splash/spell-splash-word-service/internal/repository"
)

var (
	// ErrNoWordsFound is returned when no entry matches the requested level.
	ErrNoWordsFound = errors.New("no words found")
	// ErrUnknownQuizMode is returned for an unsupported quiz mode.
	ErrUnknownQuizMode = errors.New("unknown quiz mode")
)

// Answer check messages.
const (
	MessageCorrect = "Correct!"
	MessageWrong   = "Wrong! Try again."
)

// QuizRecorder observes served quizzes. It may be nil.
type QuizRecorder interface {
	QuizServed(ctx context.Context, mode entities.QuizMode, choices int)
	AnswerChecked(ctx context.Context, correct bool)
}

// QuizService generates multiple-choice questions and checks answers.
type QuizService struct {
	repo        VocabularyRepository
	selector    *DistractorSelector
	assembler   *QuizAssembler
	choiceCount int
	recorder    QuizRecorder
	logger      *zap.Logger
}

// NewQuizService creates a new QuizService. choiceCount includes the target.
func NewQuizService(
	repo VocabularyRepository,
	selector *DistractorSelector,
	assembler *QuizAssembler,
	choiceCount int,
	recorder QuizRecorder,
	logger *zap.Logger,
) *QuizService {
	if choiceCount < 2 {
		choiceCount = 2
	}
	return &QuizService{
		repo:        repo,
		selector:    selector,
		assembler:   assembler,
		choiceCount: choiceCount,
		recorder:    recorder,
		logger:      logger,
	}
}

// GenerateQuiz picks a random target at level and builds a question for mode.
// Fewer choices than configured are returned when the vocabulary is too small.
func (s *QuizService) GenerateQuiz(
	ctx context.Context, mode entities.QuizMode, level entities.Level,
) (*entities.QuizQuestion, error) {
	if _, ok := entities.ParseQuizMode(string(mode)); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownQuizMode, mode)
	}

	target, err := s.repo.FindRandom(ctx, level)
	if err != nil {
		if errors.Is(err, repository.ErrVocabularyNotFound) {
			return nil, ErrNoWordsFound
		}
		return nil, fmt.Errorf("find random word: %w", err)
	}

	distractors, err := s.selector.Select(ctx, target, s.choiceCount-1, mode)
	if err != nil {
		return nil, fmt.Errorf("select distractors: %w", err)
	}

	question, err := s.assembler.Assemble(target, distractors, mode)
	if err != nil {
		return nil, fmt.Errorf("assemble quiz: %w", err)
	}

	if s.recorder != nil {
		s.recorder.QuizServed(ctx, mode, len(question.Choices))
	}

	s.logger.Debug("quiz generated",
		zap.String("mode", string(mode)),
		zap.String("level", string(level)),
		zap.Int64("vocab_id", target.ID),
		zap.Int("choices", len(question.Choices)),
	)

	return question, nil
}

// CheckAnswer compares the chosen entry with the target.
func (s *QuizService) CheckAnswer(ctx context.Context, vocabID, answerID int64) (*entities.AnswerCheck, error) {
	target, err := s.repo.FindByID(ctx, vocabID)
	if err != nil {
		return nil, fmt.Errorf("find word %d: %w", vocabID, err)
	}

	check := &entities.AnswerCheck{
		IsCorrect:   vocabID == answerID,
		Message:     MessageWrong,
		CorrectWord: target.Word,
		Meaning:     target.Meaning,
	}
	if check.IsCorrect {
		check.Message = MessageCorrect
	}

	if s.recorder != nil {
		s.recorder.AnswerChecked(ctx, check.IsCorrect)
	}

	return check, nil
}

// Target returns the entry behind a question, for follow-up grading.
func (s *QuizService) Target(ctx context.Context, vocabID int64) (*entities.Vocabulary, error) {
	return s.repo.FindByID(ctx, vocabID)
}
