package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Spell-Splash/spell-splash-word-service/internal/domain/entities"
)

// Strategy is one layer of distractor selection.
type Strategy string

const (
	// StrategyPartOfSpeech picks entries sharing the target's part of speech.
	StrategyPartOfSpeech Strategy = "part_of_speech"
	// StrategyHomophone picks entries with exactly the target's phonetic transcription.
	StrategyHomophone Strategy = "homophone"
	// StrategySoundAlike picks same-initial entries sharing a Double Metaphone code.
	StrategySoundAlike Strategy = "sound_alike"
	// StrategySimilarity ranks same-initial entries by edit similarity to the target.
	StrategySimilarity Strategy = "similarity"
	// StrategyRandom samples any remaining entries uniformly.
	StrategyRandom Strategy = "random"
)

// StrategiesFor returns the layering used for a quiz mode.
func StrategiesFor(mode entities.QuizMode) []Strategy {
	if mode == entities.QuizModeCursed {
		return []Strategy{StrategyHomophone, StrategySoundAlike, StrategySimilarity, StrategyRandom}
	}
	return []Strategy{StrategyPartOfSpeech, StrategySimilarity, StrategyRandom}
}

// ErrNoDistractors is returned when every strategy failed and nothing was selected.
var ErrNoDistractors = errors.New("no distractors available")

// DistractorSelector implements layered distractor selection.
type DistractorSelector struct {
	repo           CandidateRepository
	rng            Random
	candidateLimit int
	logger         *zap.Logger
}

// NewDistractorSelector creates a new DistractorSelector.
// candidateLimit bounds the rows fetched by each strategy.
func NewDistractorSelector(repo CandidateRepository, rng Random, candidateLimit int, logger *zap.Logger) *DistractorSelector {
	if candidateLimit <= 0 {
		candidateLimit = 50
	}
	return &DistractorSelector{
		repo:           repo,
		rng:            rng,
		candidateLimit: candidateLimit,
		logger:         logger,
	}
}

// selection tracks one Select call: what is picked and what must be excluded.
type selection struct {
	target   *entities.Vocabulary
	mode     entities.QuizMode
	needed   int
	picked   []*entities.Vocabulary
	seenIDs  map[int64]struct{}
	seenText map[string]struct{}

	prefixLoaded bool
	prefix       []*entities.Vocabulary
}

func newSelection(target *entities.Vocabulary, mode entities.QuizMode, needed int) *selection {
	return &selection{
		target:   target,
		mode:     mode,
		needed:   needed,
		seenIDs:  map[int64]struct{}{target.ID: {}},
		seenText: map[string]struct{}{displayKey(target, mode): {}},
	}
}

// displayKey is what a player sees for e in mode; two choices must never share it.
func displayKey(e *entities.Vocabulary, mode entities.QuizMode) string {
	return strings.ToLower(strings.TrimSpace(choiceText(e, mode)))
}

func (s *selection) remaining() int {
	return max(s.needed-len(s.picked), 0)
}

func (s *selection) excludeIDs() []int64 {
	ids := make([]int64, 0, len(s.seenIDs))
	for id := range s.seenIDs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// accept keeps candidates that are new by id and by displayed text, up to the remaining count.
func (s *selection) accept(candidates []*entities.Vocabulary) {
	for _, c := range candidates {
		if s.remaining() == 0 {
			return
		}
		if c == nil {
			continue
		}
		if _, ok := s.seenIDs[c.ID]; ok {
			continue
		}
		text := displayKey(c, s.mode)
		if _, ok := s.seenText[text]; ok {
			continue
		}
		s.seenIDs[c.ID] = struct{}{}
		s.seenText[text] = struct{}{}
		s.picked = append(s.picked, c)
	}
}

// Select returns up to needed entries distinct from target and from each other,
// both by id and by the text mode displays. The strategies of StrategiesFor(mode)
// run in order, each filling what the previous ones left. A failing strategy is logged
// and skipped; an error is returned only when nothing could be selected because
// of failures.
func (d *DistractorSelector) Select(
	ctx context.Context,
	target *entities.Vocabulary,
	needed int,
	mode entities.QuizMode,
) ([]*entities.Vocabulary, error) {
	if needed <= 0 {
		return nil, nil
	}

	sel := newSelection(target, mode, needed)

	var errs []error
	for _, strategy := range StrategiesFor(mode) {
		if sel.remaining() == 0 {
			break
		}

		before := len(sel.picked)
		if err := d.apply(ctx, sel, strategy); err != nil {
			d.logger.Warn("distractor strategy failed",
				zap.String("strategy", string(strategy)),
				zap.Int64("vocab_id", target.ID),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("%s: %w", strategy, err))
			continue
		}

		d.logger.Debug("distractor strategy applied",
			zap.String("strategy", string(strategy)),
			zap.Int64("vocab_id", target.ID),
			zap.Int("added", len(sel.picked)-before),
			zap.Int("remaining", sel.remaining()),
		)
	}

	if len(sel.picked) == 0 && len(errs) > 0 {
		return nil, errors.Join(append([]error{ErrNoDistractors}, errs...)...)
	}

	if sel.remaining() > 0 {
		d.logger.Info("insufficient distractors",
			zap.Int64("vocab_id", target.ID),
			zap.Int("needed", needed),
			zap.Int("selected", len(sel.picked)),
		)
	}

	return sel.picked, nil
}

func (d *DistractorSelector) apply(ctx context.Context, sel *selection, strategy Strategy) error {
	switch strategy {
	case StrategyPartOfSpeech:
		return d.byPartOfSpeech(ctx, sel)
	case StrategyHomophone:
		return d.byHomophone(ctx, sel)
	case StrategySoundAlike:
		return d.bySoundAlike(ctx, sel)
	case StrategySimilarity:
		return d.bySimilarity(ctx, sel)
	case StrategyRandom:
		return d.byRandom(ctx, sel)
	default:
		return fmt.Errorf("unknown strategy %q", strategy)
	}
}

func (d *DistractorSelector) byPartOfSpeech(ctx context.Context, sel *selection) error {
	pos := strings.TrimSpace(sel.target.PartOfSpeech)
	if pos == "" {
		return nil
	}

	candidates, err := d.repo.FindByPartOfSpeech(ctx, pos, sel.excludeIDs(), d.candidateLimit)
	if err != nil {
		return err
	}

	sel.accept(d.shuffled(candidates))
	return nil
}

func (d *DistractorSelector) byHomophone(ctx context.Context, sel *selection) error {
	transcription := strings.TrimSpace(sel.target.Phonetic)
	if transcription == "" {
		return nil
	}

	candidates, err := d.repo.FindByPhonetic(ctx, transcription, sel.target.ID, d.candidateLimit)
	if err != nil {
		return err
	}

	sel.accept(d.shuffled(candidates))
	return nil
}

func (d *DistractorSelector) bySoundAlike(ctx context.Context, sel *selection) error {
	candidates, err := d.prefixCandidates(ctx, sel)
	if err != nil {
		return err
	}

	alike := make([]*entities.Vocabulary, 0, len(candidates))
	for _, c := range candidates {
		if soundsAlike(sel.target.Word, c.Word) {
			alike = append(alike, c)
		}
	}

	sel.accept(d.shuffled(alike))
	return nil
}

func (d *DistractorSelector) bySimilarity(ctx context.Context, sel *selection) error {
	candidates, err := d.prefixCandidates(ctx, sel)
	if err != nil {
		return err
	}

	sel.accept(rankBySimilarity(sel.target.Word, candidates))
	return nil
}

func (d *DistractorSelector) byRandom(ctx context.Context, sel *selection) error {
	candidates, err := d.repo.FindExcluding(ctx, sel.excludeIDs(), entities.LevelAll, d.candidateLimit)
	if err != nil {
		return err
	}

	sel.accept(d.shuffled(candidates))
	return nil
}

// prefixCandidates loads entries sharing the target's first letter once per selection.
func (d *DistractorSelector) prefixCandidates(ctx context.Context, sel *selection) ([]*entities.Vocabulary, error) {
	if sel.prefixLoaded {
		return sel.prefix, nil
	}

	letter := sel.target.FirstLetter()
	if letter == "" {
		sel.prefixLoaded = true
		return nil, nil
	}

	candidates, err := d.repo.FindByPrefix(ctx, letter, []int64{sel.target.ID}, d.candidateLimit)
	if err != nil {
		return nil, err
	}

	sel.prefix = candidates
	sel.prefixLoaded = true
	return candidates, nil
}

// shuffled returns a shuffled copy of the input slice.
func (d *DistractorSelector) shuffled(in []*entities.Vocabulary) []*entities.Vocabulary {
	out := append([]*entities.Vocabulary(nil), in...)
	d.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

type scoredCandidate struct {
	entry *entities.Vocabulary
	score float64
}

// rankBySimilarity orders candidates by descending similarity to word.
// Ties keep retrieval order.
func rankBySimilarity(word string, candidates []*entities.Vocabulary) []*entities.Vocabulary {
	scored := make([]scoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, scoredCandidate{entry: c, score: similarityRatio(word, c.Word)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	out := make([]*entities.Vocabulary, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.entry)
	}
	return out
}
