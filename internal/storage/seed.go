package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Spell-Splash/spell-splash-word-service/internal/domain/entities"
)

// ErrInvalidSeed is returned when a seed file holds an unusable entry.
var ErrInvalidSeed = errors.New("invalid vocabulary seed")

// LoadVocabularyFile reads a {"words": [...]} seed file.
func LoadVocabularyFile(path string) ([]*entities.Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Words []*entities.Vocabulary `json:"words"`
	}
	if err = json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vocabulary JSON: %w", err)
	}

	seen := make(map[int64]bool, len(wrapper.Words))
	for i, w := range wrapper.Words {
		if w == nil || w.ID <= 0 || strings.TrimSpace(w.Word) == "" {
			return nil, fmt.Errorf("%w: entry %d needs vocab_id and word", ErrInvalidSeed, i)
		}
		if seen[w.ID] {
			return nil, fmt.Errorf("%w: duplicate vocab_id %d", ErrInvalidSeed, w.ID)
		}
		seen[w.ID] = true
		Canonicalize(w)
	}

	return wrapper.Words, nil
}

// Canonicalize lowercases the surface word and upper-cases the level in place.
func Canonicalize(v *entities.Vocabulary) {
	v.Word = strings.ToLower(strings.TrimSpace(v.Word))
	v.Level = entities.Level(strings.ToUpper(strings.TrimSpace(string(v.Level))))
	v.PartOfSpeech = strings.ToLower(strings.TrimSpace(v.PartOfSpeech))
	v.Phonetic = strings.TrimSpace(v.Phonetic)
}
