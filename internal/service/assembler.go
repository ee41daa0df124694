package service

import (
	"errors"
	"strings"

	"github.com/samber/lo"

	"github.com/Spell-Splash/spell-splash-word-service/internal/domain/entities"
)

// ErrTargetMissing is returned when the target cannot be located after shuffling.
var ErrTargetMissing = errors.New("target missing from choices")

// QuizAssembler turns a target and its distractors into a shuffled question.
type QuizAssembler struct {
	rng   Random
	audio AudioLinker
}

// NewQuizAssembler creates a new QuizAssembler.
func NewQuizAssembler(rng Random, audio AudioLinker) *QuizAssembler {
	return &QuizAssembler{
		rng:   rng,
		audio: audio,
	}
}

// Assemble builds a question for target. Choices are projected to value objects
// before shuffling, and CorrectIndex is found by scanning for the target's id.
func (a *QuizAssembler) Assemble(
	target *entities.Vocabulary,
	distractors []*entities.Vocabulary,
	mode entities.QuizMode,
) (*entities.QuizQuestion, error) {
	entries := make([]*entities.Vocabulary, 0, len(distractors)+1)
	entries = append(entries, target)
	entries = append(entries, lo.UniqBy(
		lo.Filter(distractors, func(d *entities.Vocabulary, _ int) bool {
			return d != nil && d.ID != target.ID
		}),
		func(d *entities.Vocabulary) int64 { return d.ID },
	)...)

	choices := lo.Map(entries, func(e *entities.Vocabulary, _ int) entities.Choice {
		return entities.Choice{VocabID: e.ID, Word: choiceText(e, mode)}
	})

	a.rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	_, correctIndex, ok := lo.FindIndexOf(choices, func(c entities.Choice) bool {
		return c.VocabID == target.ID
	})
	if !ok {
		return nil, ErrTargetMissing
	}

	return &entities.QuizQuestion{
		Mode:         mode,
		TargetID:     target.ID,
		Prompt:       promptFor(target, mode),
		Level:        target.Level,
		CorrectIndex: correctIndex,
		Choices:      choices,
		AudioURL:     a.AudioFor(target),
	}, nil
}

// AudioFor returns the cached audio reference, or a synthesized TTS link.
func (a *QuizAssembler) AudioFor(target *entities.Vocabulary) string {
	if path := strings.TrimSpace(target.AudioPath); path != "" {
		return path
	}
	if a.audio == nil {
		return ""
	}
	return a.audio.AudioURL(target.Word)
}

func promptFor(target *entities.Vocabulary, mode entities.QuizMode) string {
	switch mode {
	case entities.QuizModeCursed:
		return entities.CursedPrompt
	case entities.QuizModeMeaning:
		return target.Word
	default:
		return definitionText(target)
	}
}

func choiceText(e *entities.Vocabulary, mode entities.QuizMode) string {
	if mode == entities.QuizModeMeaning {
		return definitionText(e)
	}
	return e.Word
}

// definitionText falls back from meaning to the English definition, then to the word.
func definitionText(e *entities.Vocabulary) string {
	for _, s := range []string{e.Meaning, e.DefinitionEN, e.Definition} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return e.Word
}
