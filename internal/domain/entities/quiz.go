package entities

import "strings"

// QuizMode selects how a question is prompted and how choices are displayed.
type QuizMode string

const (
	// QuizModeDefinition prompts with the meaning and offers words as choices.
	QuizModeDefinition QuizMode = "definition"
	// QuizModeMeaning prompts with the word and offers meanings as choices.
	QuizModeMeaning QuizMode = "meaning"
	// QuizModeCursed prompts with an audio clip and offers words as choices.
	QuizModeCursed QuizMode = "cursed"
)

// CursedPrompt is the text prompt of every listening question.
const CursedPrompt = "[Audio Clip]"

// ParseQuizMode parses a quiz mode case-insensitively.
func ParseQuizMode(s string) (QuizMode, bool) {
	switch QuizMode(strings.ToLower(strings.TrimSpace(s))) {
	case QuizModeDefinition:
		return QuizModeDefinition, true
	case QuizModeMeaning:
		return QuizModeMeaning, true
	case QuizModeCursed, "listening":
		return QuizModeCursed, true
	default:
		return "", false
	}
}

// Choice is a single answer option. It never carries the full entry.
type Choice struct {
	VocabID int64  `json:"vocab_id"`
	Word    string `json:"word"` // display text: the word, or the meaning in QuizModeMeaning
}

// QuizQuestion is one multiple-choice question.
// Choices[CorrectIndex].VocabID always equals TargetID.
type QuizQuestion struct {
	Mode         QuizMode `json:"mode"`
	TargetID     int64    `json:"vocab_id"`
	Prompt       string   `json:"question"`
	Level        Level    `json:"cefr_level"`
	CorrectIndex int      `json:"correct_index"`
	Choices      []Choice `json:"choices"`
	AudioURL     string   `json:"audio_url,omitempty"` // listening prompt or pronunciation link
}

// CorrectChoice returns the choice pointed to by CorrectIndex.
func (q *QuizQuestion) CorrectChoice() Choice {
	return q.Choices[q.CorrectIndex]
}

// AnswerCheck is the verdict for a submitted multiple-choice answer.
type AnswerCheck struct {
	IsCorrect   bool   `json:"is_correct"`
	Message     string `json:"message"`
	CorrectWord string `json:"correct_word"`
	Meaning     string `json:"meaning"`
}
