package service

import (
	"context"

	"github.com/Spell-Splash/spell-splash-word-service/internal/domain/entities"
)

// VocabularyRepository is the read side of vocabulary storage.
// Lookups that match nothing return repository.ErrVocabularyNotFound.
type VocabularyRepository interface {
	FindRandom(ctx context.Context, level entities.Level) (*entities.Vocabulary, error)
	FindByID(ctx context.Context, id int64) (*entities.Vocabulary, error)
	WordLookup
	CandidateRepository
}

// WordLookup finds an entry by its lowercase surface word.
type WordLookup interface {
	FindByWord(ctx context.Context, word string) (*entities.Vocabulary, error)
}

// CandidateRepository returns distractor candidates in a stable retrieval order.
type CandidateRepository interface {
	FindExcluding(ctx context.Context, excludeIDs []int64, level entities.Level, limit int) ([]*entities.Vocabulary, error)
	FindByPhonetic(ctx context.Context, transcription string, excludeID int64, limit int) ([]*entities.Vocabulary, error)
	FindByPrefix(ctx context.Context, letter string, excludeIDs []int64, limit int) ([]*entities.Vocabulary, error)
	FindByPartOfSpeech(ctx context.Context, pos string, excludeIDs []int64, limit int) ([]*entities.Vocabulary, error)
}

// PlayerRepository stores players and their quest states.
// Missing rows return repository.ErrPlayerNotFound / repository.ErrQuestNotFound.
type PlayerRepository interface {
	GetPlayer(ctx context.Context, playerID string) (*entities.Player, error)
	UpsertPlayer(ctx context.Context, player *entities.Player) (*entities.Player, error)
	GetQuest(ctx context.Context, playerID, questID string) (*entities.PlayerQuest, error)
	UpsertQuest(ctx context.Context, quest *entities.PlayerQuest) error
	ListQuests(ctx context.Context, playerID string) ([]*entities.PlayerQuest, error)
}

// Dictionary answers whether a lowercase word is a recognised English word.
type Dictionary interface {
	IsKnownWord(word string) bool
}

// Transcriber sends recorded audio to a speech-to-text service.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (*entities.Transcript, error)
}

// AudioLinker derives an audio reference for a word without cached audio.
type AudioLinker interface {
	AudioURL(word string) string
}
