package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionQuiz = "quiz"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// buildQuizAnswerCallback builds callback data for answering a quiz question.
func buildQuizAnswerCallback(targetID, answerID int64) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{
			strconv.FormatInt(targetID, 10),
			strconv.FormatInt(answerID, 10),
		},
	}.encode()
}

// parseQuizAnswer extracts the target and chosen ids from a quiz callback.
func parseQuizAnswer(cd callbackData) (targetID, answerID int64, ok bool) {
	if cd.Action != actionQuiz || len(cd.Params) != 2 {
		return 0, 0, false
	}

	targetID, err1 := strconv.ParseInt(cd.Params[0], 10, 64)
	answerID, err2 := strconv.ParseInt(cd.Params[1], 10, 64)
	if err1 != nil || err2 != nil || targetID <= 0 || answerID <= 0 {
		return 0, 0, false
	}

	return targetID, answerID, true
}
