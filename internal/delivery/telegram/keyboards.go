package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spell-Splash/spell-splash-word-service/internal/domain/entities"
)

// buildChoicesKeyboard lays out one button per row so long meanings stay readable.
func buildChoicesKeyboard(q *entities.QuizQuestion) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(q.Choices))
	for _, c := range q.Choices {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(truncate(c.Word, 60), buildQuizAnswerCallback(q.TargetID, c.VocabID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
