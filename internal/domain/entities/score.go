package entities

// ScoreFailure names why a spelling submission was rejected.
type ScoreFailure string

const (
	FailureNone           ScoreFailure = ""
	FailureInvalidLetters ScoreFailure = "INVALID_LETTERS"
	FailureNotAWord       ScoreFailure = "NOT_A_WORD"
)

// ScoreResult is the outcome of scoring a spelling submission.
// Invalid submissions are results too, with IsValid false and Failure set.
type ScoreResult struct {
	IsValid    bool         `json:"is_valid"`
	Failure    ScoreFailure `json:"failure,omitempty"`
	Message    string       `json:"message"`
	Word       string       `json:"word"`
	BaseScore  int          `json:"base_score"`
	IsInDB     bool         `json:"is_in_db"`
	Level      *Level       `json:"cefr_level"`
	Multiplier float64      `json:"multiplier"`
	TotalScore int          `json:"total_score"`
}
