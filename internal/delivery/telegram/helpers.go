package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spell-Splash/spell-splash-word-service/internal/domain/entities"
)

// buildQuizAudio sends the listening prompt with the answer keyboard attached.
func buildQuizAudio(chatID int64, q *entities.QuizQuestion) tgbotapi.AudioConfig {
	a := tgbotapi.NewAudio(chatID, audioFile(q.AudioURL))
	a.Caption = formatQuizPrompt(q)
	a.ParseMode = tgbotapi.ModeMarkdownV2
	a.ReplyMarkup = buildChoicesKeyboard(q)
	return a
}

// audioFile treats anything that is not an http(s) URL as a local cache path.
func audioFile(ref string) tgbotapi.RequestFileData {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return tgbotapi.FileURL(ref)
	}
	return tgbotapi.FilePath(ref)
}
