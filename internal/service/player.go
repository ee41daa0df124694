package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Spell-Splash/spell-splash-word-service/internal/domain/entities"
	"github.com/Spell-Splash/spell-splash-word-service/internal/repository"
)

var (
	// ErrInvalidPlayer is returned for an empty player id.
	ErrInvalidPlayer = errors.New("invalid player")
	// ErrInvalidQuest is returned for an empty quest id or status.
	ErrInvalidQuest = errors.New("invalid quest")
)

const (
	defaultPlayerName = "Adventurer"
	noneListed        = "None"
)

// PlayerService tracks players and their quest states.
type PlayerService struct {
	repository PlayerRepository
}

// NewPlayerService creates a new PlayerService.
func NewPlayerService(repository PlayerRepository) *PlayerService {
	return &PlayerService{repository: repository}
}

// RegisterOrGet returns the existing player unchanged or creates it.
func (s *PlayerService) RegisterOrGet(ctx context.Context, playerID, username string) (*entities.Player, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, ErrInvalidPlayer
	}

	player, err := s.repository.GetPlayer(ctx, playerID)
	if err == nil {
		return player, nil
	}
	if !errors.Is(err, repository.ErrPlayerNotFound) {
		return nil, err
	}

	return s.repository.UpsertPlayer(ctx, entities.NewPlayer(playerID, strings.TrimSpace(username)))
}

// UpdateQuest sets a quest status, creating the quest on first reference.
// An unknown player is registered with an empty username first.
// Status is free-form; transitions are not validated.
func (s *PlayerService) UpdateQuest(ctx context.Context, playerID, questID, status string) (*entities.PlayerQuest, error) {
	playerID = strings.TrimSpace(playerID)
	questID = strings.TrimSpace(questID)
	status = strings.TrimSpace(status)

	if playerID == "" {
		return nil, ErrInvalidPlayer
	}
	if questID == "" || status == "" {
		return nil, fmt.Errorf("%w: quest id and status are required", ErrInvalidQuest)
	}

	if _, err := s.repository.GetPlayer(ctx, playerID); err != nil {
		if !errors.Is(err, repository.ErrPlayerNotFound) {
			return nil, err
		}
		if _, err := s.repository.UpsertPlayer(ctx, entities.NewPlayer(playerID, "")); err != nil {
			return nil, fmt.Errorf("register player: %w", err)
		}
	}

	quest := &entities.PlayerQuest{
		PlayerID:  playerID,
		QuestID:   questID,
		Status:    status,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.repository.UpsertQuest(ctx, quest); err != nil {
		return nil, fmt.Errorf("upsert quest: %w", err)
	}

	return quest, nil
}

// Summarize renders the player's quests as one sentence.
// Unknown players get a placeholder instead of an error.
func (s *PlayerService) Summarize(ctx context.Context, playerID string) (string, error) {
	player, err := s.repository.GetPlayer(ctx, strings.TrimSpace(playerID))
	if err != nil {
		if errors.Is(err, repository.ErrPlayerNotFound) {
			return formatSummary(defaultPlayerName, nil, nil), nil
		}
		return "", err
	}

	quests, err := s.repository.ListQuests(ctx, player.ID)
	if err != nil {
		return "", fmt.Errorf("list quests: %w", err)
	}

	var active, completed []string
	for _, q := range quests {
		switch {
		case q.IsCompleted():
			completed = append(completed, q.QuestID)
		case q.IsActive():
			active = append(active, q.QuestID)
		}
	}

	name := player.Username
	if name == "" {
		name = defaultPlayerName
	}

	return formatSummary(name, active, completed), nil
}

func formatSummary(name string, active, completed []string) string {
	return fmt.Sprintf("Player Name: %s. Active Quests: %s. Completed Achievements: %s.",
		name, listOrNone(active), listOrNone(completed))
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return noneListed
	}
	return strings.Join(items, ", ")
}
