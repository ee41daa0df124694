// Package storage holds in-memory stores used when no database is configured
// and for per-chat bot state.
package storage

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/Spell-Splash/spell-splash-word-service/internal/domain/entities"
	"github.com/Spell-Splash/spell-splash-word-service/internal/repository"
)

// Picker chooses an index in [0, n).
type Picker interface {
	Intn(n int) int
}

// VocabularyStore is an in-memory vocabulary repository.
// Results come back in ascending vocab_id. Candidate queries matching more
// than limit entries return a random subset chosen by the picker.
type VocabularyStore struct {
	mu      sync.RWMutex
	entries []*entities.Vocabulary
	byID    map[int64]*entities.Vocabulary
	byWord  map[string]*entities.Vocabulary
	picker  Picker
}

// NewVocabularyStore creates a store holding entries.
func NewVocabularyStore(entries []*entities.Vocabulary, picker Picker) *VocabularyStore {
	s := &VocabularyStore{
		byID:   make(map[int64]*entities.Vocabulary),
		byWord: make(map[string]*entities.Vocabulary),
		picker: picker,
	}
	s.Import(context.Background(), entries)
	return s
}

// Import upserts entries by vocab_id and returns how many were written.
func (s *VocabularyStore) Import(_ context.Context, entries []*entities.Vocabulary) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	written := 0
	for _, e := range entries {
		if e == nil || e.ID <= 0 || strings.TrimSpace(e.Word) == "" {
			continue
		}
		entry := *e
		Canonicalize(&entry)

		if old, ok := s.byID[entry.ID]; ok && s.byWord[old.Word] == old {
			delete(s.byWord, old.Word)
		}
		s.byID[entry.ID] = &entry
		s.byWord[entry.Word] = &entry
		written++
	}

	s.entries = lo.Values(s.byID)
	slices.SortFunc(s.entries, func(a, b *entities.Vocabulary) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})

	return written
}

// Count returns the number of stored entries.
func (s *VocabularyStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Words returns every stored surface word.
func (s *VocabularyStore) Words() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Map(s.entries, func(e *entities.Vocabulary, _ int) string { return e.Word })
}

// FindRandom returns a uniformly chosen entry at level.
func (s *VocabularyStore) FindRandom(_ context.Context, level entities.Level) (*entities.Vocabulary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matching := lo.Filter(s.entries, func(e *entities.Vocabulary, _ int) bool {
		return matchesLevel(e, level)
	})
	if len(matching) == 0 {
		return nil, repository.ErrVocabularyNotFound
	}

	return matching[s.picker.Intn(len(matching))], nil
}

// FindByID returns the entry with id.
func (s *VocabularyStore) FindByID(_ context.Context, id int64) (*entities.Vocabulary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrVocabularyNotFound
	}
	return e, nil
}

// FindByWord returns the entry with the lowercase surface word.
func (s *VocabularyStore) FindByWord(_ context.Context, word string) (*entities.Vocabulary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.byWord[strings.ToLower(word)]
	if !ok {
		return nil, repository.ErrVocabularyNotFound
	}
	return e, nil
}

// FindExcluding returns up to limit entries at level not in excludeIDs.
func (s *VocabularyStore) FindExcluding(_ context.Context, excludeIDs []int64, level entities.Level, limit int) ([]*entities.Vocabulary, error) {
	return s.collect(limit, func(e *entities.Vocabulary) bool {
		return !slices.Contains(excludeIDs, e.ID) && matchesLevel(e, level)
	}), nil
}

// FindByPhonetic returns entries with exactly the given transcription.
func (s *VocabularyStore) FindByPhonetic(_ context.Context, transcription string, excludeID int64, limit int) ([]*entities.Vocabulary, error) {
	if transcription == "" {
		return nil, nil
	}
	return s.collect(limit, func(e *entities.Vocabulary) bool {
		return e.ID != excludeID && e.Phonetic == transcription
	}), nil
}

// FindByPrefix returns entries whose word starts with letter.
func (s *VocabularyStore) FindByPrefix(_ context.Context, letter string, excludeIDs []int64, limit int) ([]*entities.Vocabulary, error) {
	letter = strings.ToLower(letter)
	return s.collect(limit, func(e *entities.Vocabulary) bool {
		return !slices.Contains(excludeIDs, e.ID) && strings.HasPrefix(e.Word, letter)
	}), nil
}

// FindByPartOfSpeech returns entries tagged with pos.
func (s *VocabularyStore) FindByPartOfSpeech(_ context.Context, pos string, excludeIDs []int64, limit int) ([]*entities.Vocabulary, error) {
	pos = strings.ToLower(pos)
	return s.collect(limit, func(e *entities.Vocabulary) bool {
		return !slices.Contains(excludeIDs, e.ID) && e.PartOfSpeech == pos
	}), nil
}

func (s *VocabularyStore) collect(limit int, keep func(*entities.Vocabulary) bool) []*entities.Vocabulary {
	if limit <= 0 {
		return nil
	}

	s.mu.RLock()
	matches := lo.Filter(s.entries, func(e *entities.Vocabulary, _ int) bool { return keep(e) })
	s.mu.RUnlock()

	if len(matches) <= limit {
		return matches
	}

	// Partial Fisher-Yates: the first limit slots end up a uniform sample.
	for i := range limit {
		j := i + s.picker.Intn(len(matches)-i)
		matches[i], matches[j] = matches[j], matches[i]
	}
	out := matches[:limit]
	slices.SortFunc(out, func(a, b *entities.Vocabulary) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
	return out
}

func matchesLevel(e *entities.Vocabulary, level entities.Level) bool {
	filter := level.Filter()
	return filter == "" || string(e.Level) == filter
}
