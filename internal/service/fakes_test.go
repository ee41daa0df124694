package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Spell-Splash/spell-splash-word-service/internal/domain/entities"
	"github.com/Spell-Splash/spell-splash-word-service/internal/repository"
)

var errBoom = errors.New("boom")

// fakeVocabRepo serves entries in slice order, which stands in for retrieval order.
type fakeVocabRepo struct {
	entries []*entities.Vocabulary

	randomErr   error
	excludeErr  error
	phoneticErr error
	prefixErr   error
	posErr      error
	wordErr     error

	prefixCalls int
}

func (f *fakeVocabRepo) FindRandom(_ context.Context, level entities.Level) (*entities.Vocabulary, error) {
	if f.randomErr != nil {
		return nil, f.randomErr
	}
	for _, e := range f.entries {
		if level.Filter() == "" || string(e.Level) == level.Filter() {
			return e, nil
		}
	}
	return nil, repository.ErrVocabularyNotFound
}

func (f *fakeVocabRepo) FindByID(_ context.Context, id int64) (*entities.Vocabulary, error) {
	for _, e := range f.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, repository.ErrVocabularyNotFound
}

func (f *fakeVocabRepo) FindByWord(_ context.Context, word string) (*entities.Vocabulary, error) {
	if f.wordErr != nil {
		return nil, f.wordErr
	}
	for _, e := range f.entries {
		if e.Word == word {
			return e, nil
		}
	}
	return nil, repository.ErrVocabularyNotFound
}

func (f *fakeVocabRepo) FindExcluding(_ context.Context, excludeIDs []int64, level entities.Level, limit int) ([]*entities.Vocabulary, error) {
	if f.excludeErr != nil {
		return nil, f.excludeErr
	}
	return f.collect(limit, func(e *entities.Vocabulary) bool {
		return !slices.Contains(excludeIDs, e.ID) &&
			(level.Filter() == "" || string(e.Level) == level.Filter())
	}), nil
}

func (f *fakeVocabRepo) FindByPhonetic(_ context.Context, transcription string, excludeID int64, limit int) ([]*entities.Vocabulary, error) {
	if f.phoneticErr != nil {
		return nil, f.phoneticErr
	}
	return f.collect(limit, func(e *entities.Vocabulary) bool {
		return e.ID != excludeID && e.Phonetic == transcription
	}), nil
}

func (f *fakeVocabRepo) FindByPrefix(_ context.Context, letter string, excludeIDs []int64, limit int) ([]*entities.Vocabulary, error) {
	f.prefixCalls++
	if f.prefixErr != nil {
		return nil, f.prefixErr
	}
	return f.collect(limit, func(e *entities.Vocabulary) bool {
		return !slices.Contains(excludeIDs, e.ID) && strings.HasPrefix(e.Word, letter)
	}), nil
}

func (f *fakeVocabRepo) FindByPartOfSpeech(_ context.Context, pos string, excludeIDs []int64, limit int) ([]*entities.Vocabulary, error) {
	if f.posErr != nil {
		return nil, f.posErr
	}
	return f.collect(limit, func(e *entities.Vocabulary) bool {
		return !slices.Contains(excludeIDs, e.ID) && e.PartOfSpeech == pos
	}), nil
}

func (f *fakeVocabRepo) collect(limit int, keep func(*entities.Vocabulary) bool) []*entities.Vocabulary {
	var out []*entities.Vocabulary
	for _, e := range f.entries {
		if len(out) == limit {
			break
		}
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

type fakeDictionary map[string]bool

func (d fakeDictionary) IsKnownWord(word string) bool {
	return d[word]
}

type fakeTranscriber struct {
	transcript *entities.Transcript
	err        error
	calls      int
}

func (f *fakeTranscriber) Transcribe(context.Context, []byte, string) (*entities.Transcript, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.transcript, nil
}

type fakeLinker struct{}

func (fakeLinker) AudioURL(word string) string {
	return "http://tts.local/tts?text=" + word
}

type fakePlayerRepo struct {
	mu      sync.Mutex
	players map[string]*entities.Player
	quests  map[string][]*entities.PlayerQuest

	upserts int
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{
		players: make(map[string]*entities.Player),
		quests:  make(map[string][]*entities.PlayerQuest),
	}
}

func (f *fakePlayerRepo) GetPlayer(_ context.Context, playerID string) (*entities.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.players[playerID]
	if !ok {
		return nil, repository.ErrPlayerNotFound
	}
	return p, nil
}

func (f *fakePlayerRepo) UpsertPlayer(_ context.Context, player *entities.Player) (*entities.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++
	if p, ok := f.players[player.ID]; ok {
		return p, nil
	}
	f.players[player.ID] = player
	return player, nil
}

func (f *fakePlayerRepo) GetQuest(_ context.Context, playerID, questID string) (*entities.PlayerQuest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, q := range f.quests[playerID] {
		if q.QuestID == questID {
			return q, nil
		}
	}
	return nil, repository.ErrQuestNotFound
}

func (f *fakePlayerRepo) UpsertQuest(_ context.Context, quest *entities.PlayerQuest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, q := range f.quests[quest.PlayerID] {
		if q.QuestID == quest.QuestID {
			q.Status = quest.Status
			q.UpdatedAt = quest.UpdatedAt
			return nil
		}
	}
	f.quests[quest.PlayerID] = append(f.quests[quest.PlayerID], quest)
	return nil
}

func (f *fakePlayerRepo) ListQuests(_ context.Context, playerID string) ([]*entities.PlayerQuest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.quests[playerID], nil
}

func sampleVocabulary() []*entities.Vocabulary {
	return []*entities.Vocabulary{
		{ID: 1, Word: "cat", Meaning: "แมว", PartOfSpeech: "noun", Level: entities.LevelA1, Phonetic: "kæt"},
		{ID: 2, Word: "car", Meaning: "รถยนต์", PartOfSpeech: "noun", Level: entities.LevelA1, Phonetic: "kɑːr"},
		{ID: 3, Word: "cart", Meaning: "รถเข็น", PartOfSpeech: "noun", Level: entities.LevelA2, Phonetic: "kɑːrt"},
		{ID: 4, Word: "run", Meaning: "วิ่ง", PartOfSpeech: "verb", Level: entities.LevelA1, Phonetic: "rʌn"},
		{ID: 5, Word: "knight", Meaning: "อัศวิน", PartOfSpeech: "noun", Level: entities.LevelB1, Phonetic: "naɪt"},
		{ID: 6, Word: "night", Meaning: "กลางคืน", PartOfSpeech: "noun", Level: entities.LevelA1, Phonetic: "naɪt"},
		{ID: 7, Word: "candle", Meaning: "เทียน", PartOfSpeech: "noun", Level: entities.LevelA2, Phonetic: "ˈkændl"},
		{ID: 8, Word: "quickly", Meaning: "อย่างรวดเร็ว", PartOfSpeech: "adverb", Level: entities.LevelB2, Phonetic: "ˈkwɪkli"},
	}
}

var fixedTime = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
