// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spell-Splash/spell-splash-word-service/internal/domain/entities"
)

const (
	msgWelcome = "Welcome to Spell Splash!\n\n" +
		"/quiz [level] — pick the word for a definition\n" +
		"/meaning [level] — pick the meaning of a word\n" +
		"/cursed [level] — listen and pick the word\n" +
		"/letters [n] — get a letter pool, then reply with a word\n" +
		"/quest <id> <status> — update a quest\n" +
		"/summary — show your quests\n\n" +
		"After a quiz, send a voice message to check your pronunciation."
	msgUnknownCommand      = "Unknown command. Send /help to see what I can do."
	msgInternalError       = "Something went wrong. Please try again later."
	msgNoWords             = "No words are available for that level yet."
	msgWordGone            = "That word is no longer available. Start a new /quiz."
	msgTranscriptionFailed = "I couldn't process that recording. Please try again."
	msgBadInput            = "That input doesn't look right. Send /help for usage."
	msgUnknownLevel        = "Unknown level %q. Use one of A1, A2, B1, B2, C1 or ALL."
	msgInvalidAmount       = "Use: /letters 10"
	msgQuestUsage          = "Use: /quest <quest_id> <status>"
	msgNoLetters           = "Start a spelling round with /letters first."
	msgNoTarget            = "Take a /quiz first, then send a voice message with the word."
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

func formatQuizPrompt(q *entities.QuizQuestion) string {
	var sb strings.Builder

	switch q.Mode {
	case entities.QuizModeMeaning:
		sb.WriteString(md("What does this word mean?"))
	case entities.QuizModeCursed:
		sb.WriteString(md("Listen and pick the word you hear."))
	default:
		sb.WriteString(md("Which word matches this definition?"))
	}
	sb.WriteString("\n\n")

	if q.Mode != entities.QuizModeCursed {
		sb.WriteString(bold(q.Prompt))
		sb.WriteString("\n")
	}
	if q.Level != "" && q.Level != entities.LevelAll {
		sb.WriteString(md(fmt.Sprintf("Level: %s", q.Level)))
	}

	return sb.String()
}

func formatAnswer(check *entities.AnswerCheck) string {
	var sb strings.Builder

	if check.IsCorrect {
		sb.WriteString("✅ ")
	} else {
		sb.WriteString("❌ ")
	}
	sb.WriteString(md(check.Message))
	sb.WriteString("\n\n")
	sb.WriteString(bold(check.CorrectWord))
	if check.Meaning != "" {
		sb.WriteString(md(" — " + check.Meaning))
	}

	return sb.String()
}

func formatLetters(letters []string) string {
	return bold(strings.Join(letters, " ")) + "\n\n" + md("Reply with a word made from these letters.")
}

func formatScore(r *entities.ScoreResult) string {
	if !r.IsValid {
		return "❌ " + md(r.Message)
	}

	var sb strings.Builder
	sb.WriteString("✅ ")
	sb.WriteString(bold(strings.ToUpper(r.Word)))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("Base score: %d", r.BaseScore)))
	if r.IsInDB && r.Level != nil {
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("Vocabulary bonus (%s): ×%.1f", *r.Level, r.Multiplier)))
	}
	sb.WriteString("\n")
	sb.WriteString(bold(fmt.Sprintf("Total: %d", r.TotalScore)))

	return sb.String()
}

func formatPronunciation(r *entities.PronunciationResult) string {
	var sb strings.Builder

	switch r.Feedback {
	case entities.FeedbackExcellent:
		sb.WriteString("🌟 ")
	case entities.FeedbackAcceptable:
		sb.WriteString("👍 ")
	default:
		sb.WriteString("🔁 ")
	}
	sb.WriteString(md(r.Message))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("Score: %d/100", r.Score)))

	return sb.String()
}

func formatQuest(q *entities.PlayerQuest) string {
	return md(fmt.Sprintf("Quest %s is now %s.", q.QuestID, q.Status))
}
