package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/Spell-Splash/spell-splash-word-service/internal/domain/entities"
)

var (
	// ErrTranscriptionFailed wraps any speech-to-text failure. It is never graded as zero.
	ErrTranscriptionFailed = errors.New("transcription failed")
	// ErrInvalidAudio is returned for an empty upload.
	ErrInvalidAudio = errors.New("invalid audio")
)

// Score thresholds for a correct pronunciation.
const (
	excellentThreshold  = 80
	acceptableThreshold = 50

	matchWeight    = 100
	mismatchWeight = 30
)

// PronunciationGrader maps a transcript onto a grade. It is a pure function of its inputs.
type PronunciationGrader struct{}

// Grade compares transcript with targetWord and scores it by confidence.
func (PronunciationGrader) Grade(targetWord, transcript string, confidence float64) *entities.PronunciationResult {
	confidence = math.Min(math.Max(confidence, 0), 1)

	expected := strings.ToLower(strings.TrimSpace(targetWord))
	heard := normalizeSpoken(transcript)

	result := &entities.PronunciationResult{
		TargetWord: expected,
		Transcript: heard,
		Confidence: confidence,
	}

	if heard != expected {
		result.Score = int(math.Round(confidence * mismatchWeight))
		result.Feedback = entities.FeedbackMismatch
		result.Message = fmt.Sprintf("We heard '%s', but the word was '%s'.", heard, expected)
		return result
	}

	result.IsCorrect = true
	result.Score = int(math.Round(confidence * matchWeight))

	switch {
	case result.Score >= excellentThreshold:
		result.Feedback = entities.FeedbackExcellent
		result.Message = "Excellent pronunciation!"
	case result.Score >= acceptableThreshold:
		result.Feedback = entities.FeedbackAcceptable
		result.Message = "Good, but try to speak a little more clearly."
	default:
		result.Feedback = entities.FeedbackUnclear
		result.Message = "Correct word, but it was hard to hear. Try again."
	}

	return result
}

// PronunciationRecorder observes grades and transcription failures. It may be nil.
type PronunciationRecorder interface {
	PronunciationGraded(ctx context.Context, result *entities.PronunciationResult)
	TranscriptionFailed(ctx context.Context)
}

// PronunciationService transcribes an upload once and grades it.
type PronunciationService struct {
	repo        VocabularyRepository
	transcriber Transcriber
	grader      PronunciationGrader
	recorder    PronunciationRecorder
	logger      *zap.Logger
}

// NewPronunciationService creates a new PronunciationService.
func NewPronunciationService(
	repo VocabularyRepository,
	transcriber Transcriber,
	recorder PronunciationRecorder,
	logger *zap.Logger,
) *PronunciationService {
	return &PronunciationService{
		repo:        repo,
		transcriber: transcriber,
		recorder:    recorder,
		logger:      logger,
	}
}

// EvaluateByID grades audio against the entry with vocabID.
func (s *PronunciationService) EvaluateByID(
	ctx context.Context, vocabID int64, audio []byte, filename string,
) (*entities.PronunciationResult, error) {
	target, err := s.repo.FindByID(ctx, vocabID)
	if err != nil {
		return nil, fmt.Errorf("find word %d: %w", vocabID, err)
	}

	return s.Evaluate(ctx, target.Word, audio, filename)
}

// Evaluate grades audio against targetWord.
func (s *PronunciationService) Evaluate(
	ctx context.Context, targetWord string, audio []byte, filename string,
) (*entities.PronunciationResult, error) {
	if strings.TrimSpace(targetWord) == "" {
		return nil, fmt.Errorf("%w: empty target word", ErrInvalidAudio)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidAudio)
	}

	transcript, err := s.transcriber.Transcribe(ctx, audio, filename)
	if err != nil {
		if s.recorder != nil {
			s.recorder.TranscriptionFailed(ctx)
		}
		s.logger.Warn("transcription failed",
			zap.String("word", targetWord),
			zap.Int("audio_bytes", len(audio)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrTranscriptionFailed, err)
	}

	result := s.grader.Grade(targetWord, transcript.Text, transcript.Confidence)

	if s.recorder != nil {
		s.recorder.PronunciationGraded(ctx, result)
	}

	s.logger.Debug("pronunciation graded",
		zap.String("word", result.TargetWord),
		zap.String("transcript", result.Transcript),
		zap.Int("score", result.Score),
		zap.String("feedback", string(result.Feedback)),
	)

	return result, nil
}
