package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/Spell-Splash/spell-splash-word-service/internal/domain/entities"
	"github.com/Spell-Splash/spell-splash-word-service/internal/repository"
)

// letterScores are Scrabble tile values.
var letterScores = map[rune]int{
	'A': 1, 'E': 1, 'I': 1, 'O': 1, 'U': 1, 'L': 1, 'N': 1, 'S': 1, 'T': 1, 'R': 1,
	'D': 2, 'G': 2,
	'B': 3, 'C': 3, 'M': 3, 'P': 3,
	'F': 4, 'H': 4, 'V': 4, 'W': 4, 'Y': 4,
	'K': 5,
	'J': 8, 'X': 8,
	'Q': 10, 'Z': 10,
}

// levelMultipliers reward harder vocabulary. Unknown tiers score 1.0.
var levelMultipliers = map[entities.Level]float64{
	entities.LevelA1: 1.0,
	entities.LevelA2: 1.2,
	entities.LevelB1: 1.5,
	entities.LevelB2: 2.0,
	entities.LevelC1: 2.5,
}

// LetterValue returns the point value of an uppercase letter, 0 for anything else.
func LetterValue(r rune) int {
	return letterScores[r]
}

// LevelMultiplier returns the score multiplier of a tier, case-insensitive.
func LevelMultiplier(level entities.Level) float64 {
	if m, ok := levelMultipliers[entities.Level(strings.ToUpper(string(level)))]; ok {
		return m
	}
	return 1.0
}

// WordScorer validates spelling submissions and computes their score.
type WordScorer struct {
	lookup     WordLookup
	dictionary Dictionary
	logger     *zap.Logger
}

// NewWordScorer creates a new WordScorer.
func NewWordScorer(lookup WordLookup, dictionary Dictionary, logger *zap.Logger) *WordScorer {
	return &WordScorer{
		lookup:     lookup,
		dictionary: dictionary,
		logger:     logger,
	}
}

// Score checks a submission against the available letters and the dictionary.
// Rejections are returned as results; an error means the repository failed.
func (s *WordScorer) Score(ctx context.Context, submitted string, available []string) (*entities.ScoreResult, error) {
	word := strings.TrimSpace(submitted)
	upper := strings.ToUpper(word)
	lower := strings.ToLower(word)

	result := &entities.ScoreResult{
		Word:       word,
		Multiplier: 1.0,
	}

	// 1. Every letter must come out of the pool, each pool letter at most once.
	if bad, ok := drawLetters(upper, normalizeLetters(available)); !ok {
		result.Failure = entities.FailureInvalidLetters
		result.Message = fmt.Sprintf("You don't have the letter '%c' in your pool, or you used it too many times!", bad)
		return result, nil
	}

	// 2. It must be a real word.
	if lower == "" || !s.dictionary.IsKnownWord(lower) {
		result.Failure = entities.FailureNotAWord
		result.Message = fmt.Sprintf("'%s' is not a valid English word", word)
		return result, nil
	}

	// 3. Base score.
	for _, r := range upper {
		result.BaseScore += LetterValue(r)
	}

	// 4. Vocabulary bonus.
	entry, err := s.lookup.FindByWord(ctx, lower)
	switch {
	case err == nil:
		level := entities.Level(strings.ToUpper(string(entry.Level)))
		result.IsInDB = true
		result.Level = &level
		result.Multiplier = LevelMultiplier(level)
	case errors.Is(err, repository.ErrVocabularyNotFound):
	default:
		return nil, fmt.Errorf("find word %q: %w", lower, err)
	}

	// 5. Final score.
	result.IsValid = true
	result.Message = "Correct!"
	result.TotalScore = int(math.Floor(float64(result.BaseScore) * result.Multiplier))

	s.logger.Debug("word scored",
		zap.String("word", lower),
		zap.Int("base_score", result.BaseScore),
		zap.Float64("multiplier", result.Multiplier),
		zap.Int("total_score", result.TotalScore),
	)

	return result, nil
}

// drawLetters removes each rune of word from a copy of pool.
// It returns the first rune the pool could not supply.
func drawLetters(word string, pool []string) (rune, bool) {
	remaining := make(map[string]int, len(pool))
	for _, l := range pool {
		remaining[l]++
	}

	for _, r := range word {
		key := string(r)
		if remaining[key] == 0 {
			return r, false
		}
		remaining[key]--
	}

	return 0, true
}
