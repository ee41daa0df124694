package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Spell-Splash/spell-splash-word-service/internal/domain/entities"
)

func newTestScorer(repo *fakeVocabRepo, dict fakeDictionary) *WordScorer {
	return NewWordScorer(repo, dict, zap.NewNop())
}

func TestScoreValidWordOutsideVocabulary(t *testing.T) {
	scorer := newTestScorer(&fakeVocabRepo{}, fakeDictionary{"cat": true})

	res, err := scorer.Score(context.Background(), "cat", []string{"C", "A", "T", "X"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := LetterValue('C') + LetterValue('A') + LetterValue('T')
	if !res.IsValid {
		t.Fatalf("expected valid result, got %+v", res)
	}
	if res.BaseScore != want || res.TotalScore != want {
		t.Fatalf("expected base and total %d, got %d and %d", want, res.BaseScore, res.TotalScore)
	}
	if res.IsInDB || res.Level != nil || res.Multiplier != 1.0 {
		t.Fatalf("expected no vocabulary bonus, got %+v", res)
	}
	if res.Word != "cat" {
		t.Fatalf("expected echoed word, got %q", res.Word)
	}
}

func TestScoreAppliesLevelMultiplier(t *testing.T) {
	repo := &fakeVocabRepo{entries: []*entities.Vocabulary{
		{ID: 1, Word: "quiz", Level: "b1"},
	}}
	scorer := newTestScorer(repo, fakeDictionary{"quiz": true})

	res, err := scorer.Score(context.Background(), "Quiz", []string{"q", "u", "i", "z"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 10 + 1 + 1 + 10 = 22, 22 * 1.5 = 33
	if res.BaseScore != 22 || res.TotalScore != 33 {
		t.Fatalf("expected 22/33, got %d/%d", res.BaseScore, res.TotalScore)
	}
	if !res.IsInDB || res.Level == nil || *res.Level != entities.LevelB1 {
		t.Fatalf("expected B1 entry, got %+v", res)
	}
}

func TestScoreFloorsFinalScore(t *testing.T) {
	repo := &fakeVocabRepo{entries: []*entities.Vocabulary{
		{ID: 1, Word: "cat", Level: entities.LevelA2},
	}}
	scorer := newTestScorer(repo, fakeDictionary{"cat": true})

	res, err := scorer.Score(context.Background(), "cat", []string{"C", "A", "T"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 5 * 1.2 = 6.0
	if res.TotalScore != 6 {
		t.Fatalf("expected 6, got %d", res.TotalScore)
	}
}

func TestScoreRejections(t *testing.T) {
	tests := []struct {
		name      string
		word      string
		pool      []string
		failure   entities.ScoreFailure
		mentioned string
	}{
		{name: "missing letter", word: "dog", pool: []string{"D", "O"}, failure: entities.FailureInvalidLetters, mentioned: "'G'"},
		{name: "letter used twice", word: "toot", pool: []string{"T", "O"}, failure: entities.FailureInvalidLetters, mentioned: "'O'"},
		{name: "not a word", word: "tac", pool: []string{"C", "A", "T"}, failure: entities.FailureNotAWord, mentioned: "'tac'"},
	}

	scorer := newTestScorer(&fakeVocabRepo{}, fakeDictionary{"dog": true, "toot": true})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := scorer.Score(context.Background(), tt.word, tt.pool)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.IsValid {
				t.Fatalf("expected invalid result, got %+v", res)
			}
			if res.Failure != tt.failure {
				t.Fatalf("expected failure %s, got %s", tt.failure, res.Failure)
			}
			if !strings.Contains(res.Message, tt.mentioned) {
				t.Fatalf("expected message to mention %s, got %q", tt.mentioned, res.Message)
			}
			if res.TotalScore != 0 {
				t.Fatalf("expected no score, got %d", res.TotalScore)
			}
		})
	}
}

func TestScoreRepositoryFailure(t *testing.T) {
	scorer := newTestScorer(&fakeVocabRepo{wordErr: errBoom}, fakeDictionary{"cat": true})

	_, err := scorer.Score(context.Background(), "cat", []string{"C", "A", "T"})
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected repository error, got %v", err)
	}
}

func TestLevelMultiplierTable(t *testing.T) {
	tests := map[entities.Level]float64{
		"a1": 1.0, "A2": 1.2, "B1": 1.5, "b2": 2.0, "C1": 2.5, "C2": 1.0, "": 1.0,
	}
	for level, want := range tests {
		if got := LevelMultiplier(level); got != want {
			t.Errorf("LevelMultiplier(%q) = %v, want %v", level, got, want)
		}
	}
}
