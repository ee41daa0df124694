package storage

import (
	"context"
	"sync"

	"github.com/Spell-Splash/spell-splash-word-service/internal/domain/entities"
	"github.com/Spell-Splash/spell-splash-word-service/internal/repository"
)

type questKey struct {
	playerID string
	questID  string
}

// PlayerStore is an in-memory player and quest repository.
type PlayerStore struct {
	mu      sync.RWMutex
	players map[string]entities.Player
	quests  map[questKey]entities.PlayerQuest
	order   map[string][]string // quest ids per player in first-seen order
}

// NewPlayerStore creates an empty PlayerStore.
func NewPlayerStore() *PlayerStore {
	return &PlayerStore{
		players: make(map[string]entities.Player),
		quests:  make(map[questKey]entities.PlayerQuest),
		order:   make(map[string][]string),
	}
}

// GetPlayer returns a copy of the stored player.
func (s *PlayerStore) GetPlayer(_ context.Context, playerID string) (*entities.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[playerID]
	if !ok {
		return nil, repository.ErrPlayerNotFound
	}
	return &p, nil
}

// UpsertPlayer inserts player unless it exists and returns the stored record.
func (s *PlayerStore) UpsertPlayer(_ context.Context, player *entities.Player) (*entities.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.players[player.ID]; ok {
		return &p, nil
	}

	s.players[player.ID] = *player
	p := *player
	return &p, nil
}

// GetQuest returns one quest state.
func (s *PlayerStore) GetQuest(_ context.Context, playerID, questID string) (*entities.PlayerQuest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.quests[questKey{playerID, questID}]
	if !ok {
		return nil, repository.ErrQuestNotFound
	}
	return &q, nil
}

// UpsertQuest creates or overwrites a quest state.
func (s *PlayerStore) UpsertQuest(_ context.Context, quest *entities.PlayerQuest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := questKey{quest.PlayerID, quest.QuestID}
	if _, ok := s.quests[key]; !ok {
		s.order[quest.PlayerID] = append(s.order[quest.PlayerID], quest.QuestID)
	}
	s.quests[key] = *quest
	return nil
}

// ListQuests returns the player's quests in first-seen order.
func (s *PlayerStore) ListQuests(_ context.Context, playerID string) ([]*entities.PlayerQuest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.order[playerID]
	out := make([]*entities.PlayerQuest, 0, len(ids))
	for _, id := range ids {
		q := s.quests[questKey{playerID, id}]
		out = append(out, &q)
	}
	return out, nil
}
