package entities

// Feedback is the tier assigned to a pronunciation attempt.
type Feedback string

const (
	FeedbackExcellent  Feedback = "excellent"
	FeedbackAcceptable Feedback = "acceptable"
	FeedbackUnclear    Feedback = "unclear"
	FeedbackMismatch   Feedback = "mismatch"
)

// Transcript is what the speech-to-text service heard.
type Transcript struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence_score"`
}

// PronunciationResult is the grade for one spoken attempt at a target word.
type PronunciationResult struct {
	TargetWord string   `json:"target_word"`
	Transcript string   `json:"transcript"`
	Confidence float64  `json:"confidence"`
	IsCorrect  bool     `json:"is_correct"`
	Score      int      `json:"score"`
	Feedback   Feedback `json:"feedback"`
	Message    string   `json:"message"`
}
