// Package entities contains domain entities used across the application.
package entities

import "strings"

// Level is a CEFR proficiency tier.
type Level string

const (
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
	LevelC1 Level = "C1"

	// LevelAll disables level filtering.
	LevelAll Level = "ALL"
)

// Levels lists the recognised tiers in ascending order.
var Levels = []Level{LevelA1, LevelA2, LevelB1, LevelB2, LevelC1}

// ParseLevel parses a tier case-insensitively. An empty string or "all" yields LevelAll.
func ParseLevel(s string) (Level, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || s == string(LevelAll) {
		return LevelAll, true
	}
	for _, l := range Levels {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// Filter returns the value used by repositories for level filtering ("" means any level).
func (l Level) Filter() string {
	if l == LevelAll {
		return ""
	}
	return string(l)
}

// Vocabulary is a single vocabulary entry. Optional fields are empty when absent.
type Vocabulary struct {
	ID           int64  `json:"vocab_id"`       // stable identifier
	Word         string `json:"word"`           // lowercase canonical surface form
	Meaning      string `json:"meaning"`        // native-language meaning
	Definition   string `json:"definition"`     // free-form definition text
	DefinitionEN string `json:"definition_en"`  // English definition
	PartOfSpeech string `json:"part_of_speech"` // e.g. "noun", "verb"
	Level        Level  `json:"cefr_level"`     // proficiency tier
	Phonetic     string `json:"phonetic_transcription"`
	AudioPath    string `json:"audio_cache_path"` // cached audio reference
}

// FirstLetter returns the lowercase first letter of the word, or "" for an empty word.
func (v *Vocabulary) FirstLetter() string {
	for _, r := range strings.ToLower(v.Word) {
		return string(r)
	}
	return ""
}
