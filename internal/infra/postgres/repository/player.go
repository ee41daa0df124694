package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Spell-Splash/spell-splash-word-service/internal/domain/entities"
	"github.com/Spell-Splash/spell-splash-word-service/internal/infra/postgres"
	repoerrors "github.com/Spell-Splash/spell-splash-word-service/internal/repository"
)

// PlayerRepository provides access to players and their quests in the database.
type PlayerRepository struct {
	db postgres.DBTX
}

// NewPlayerRepository creates a new PlayerRepository with the provided database handle.
func NewPlayerRepository(db postgres.DBTX) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// GetPlayer retrieves a player by ID.
func (r *PlayerRepository) GetPlayer(ctx context.Context, playerID string) (*entities.Player, error) {
	query := `
		SELECT player_id, username, created_at
		FROM players
		WHERE player_id = $1
	`

	var p entities.Player
	err := r.db.QueryRow(ctx, query, playerID).Scan(&p.ID, &p.Username, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repoerrors.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("get player: %w", err)
	}

	return &p, nil
}

// UpsertPlayer inserts the player unless it exists, and returns the stored row.
// An existing row is returned unchanged.
func (r *PlayerRepository) UpsertPlayer(ctx context.Context, player *entities.Player) (*entities.Player, error) {
	query := `
		INSERT INTO players (player_id, username, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (player_id) DO UPDATE SET
			player_id = players.player_id
		RETURNING player_id, username, created_at
	`

	var p entities.Player
	err := r.db.QueryRow(ctx, query, player.ID, player.Username, player.CreatedAt).
		Scan(&p.ID, &p.Username, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert player: %w", err)
	}

	return &p, nil
}

// GetQuest retrieves the state of one quest.
func (r *PlayerRepository) GetQuest(ctx context.Context, playerID, questID string) (*entities.PlayerQuest, error) {
	query := `
		SELECT player_id, quest_id, status, updated_at
		FROM player_quests
		WHERE player_id = $1 AND quest_id = $2
	`

	var q entities.PlayerQuest
	err := r.db.QueryRow(ctx, query, playerID, questID).Scan(&q.PlayerID, &q.QuestID, &q.Status, &q.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repoerrors.ErrQuestNotFound
		}
		return nil, fmt.Errorf("get quest: %w", err)
	}

	return &q, nil
}

// UpsertQuest creates the quest or overwrites its status.
func (r *PlayerRepository) UpsertQuest(ctx context.Context, quest *entities.PlayerQuest) error {
	query := `
		INSERT INTO player_quests (player_id, quest_id, status, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (player_id, quest_id) DO UPDATE SET
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.Exec(ctx, query, quest.PlayerID, quest.QuestID, quest.Status, quest.UpdatedAt); err != nil {
		return fmt.Errorf("upsert quest: %w", err)
	}

	return nil
}

// ListQuests returns the player's quests in creation order.
func (r *PlayerRepository) ListQuests(ctx context.Context, playerID string) ([]*entities.PlayerQuest, error) {
	query := `
		SELECT player_id, quest_id, status, updated_at
		FROM player_quests
		WHERE player_id = $1
		ORDER BY created_at, quest_id
	`

	rows, err := r.db.Query(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("list quests: %w", err)
	}
	defer rows.Close()

	var quests []*entities.PlayerQuest
	for rows.Next() {
		q := new(entities.PlayerQuest)
		if err := rows.Scan(&q.PlayerID, &q.QuestID, &q.Status, &q.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan quest: %w", err)
		}
		quests = append(quests, q)
	}

	return quests, rows.Err()
}
