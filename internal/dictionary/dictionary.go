// Package dictionary provides the known-word oracle used by the word scorer.
//
// Words come from a newline separated file (one word per line, '#' comments
// allowed) and fall back to a small embedded list when no file is configured.
// Vocabulary words are always added on top, so every quiz word is spellable.
package dictionary

import (
	"bufio"
	_ "embed"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
)

//go:embed default_words.txt
var embeddedWords string

// ErrEmpty is returned when no words could be loaded.
var ErrEmpty = errors.New("dictionary: word list is empty")

// Dictionary is a concurrency-safe set of lowercase words.
type Dictionary struct {
	mu    sync.RWMutex
	words map[string]struct{}
}

// New creates a dictionary holding words.
func New(words ...string) *Dictionary {
	d := &Dictionary{words: make(map[string]struct{}, len(words))}
	d.Add(words...)
	return d
}

// Load reads path, or the embedded list when path is empty.
func Load(path string) (*Dictionary, error) {
	if path == "" {
		return fromReader(strings.NewReader(embeddedWords))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return fromReader(f)
}

func fromReader(r io.Reader) (*Dictionary, error) {
	d := New()

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		d.Add(line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if d.Len() == 0 {
		return nil, ErrEmpty
	}
	return d, nil
}

// Add inserts words, lowercased and trimmed. Entries with non-letters are skipped.
func (d *Dictionary) Add(words ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" && isAlpha(w) {
			d.words[w] = struct{}{}
		}
	}
}

// IsKnownWord reports whether word is in the list.
func (d *Dictionary) IsKnownWord(word string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	_, ok := d.words[strings.ToLower(word)]
	return ok
}

// Len returns the number of words.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.words)
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
