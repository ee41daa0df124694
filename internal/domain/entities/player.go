package entities

import "time"

// Recognised quest statuses. Any other non-empty status is accepted as-is.
const (
	QuestNotStarted = "NOT_STARTED"
	QuestInProgress = "IN_PROGRESS"
	QuestCompleted  = "COMPLETED"
)

// Player is a game client player.
type Player struct {
	ID        string    `json:"player_id"` // stable external identifier
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPlayer creates a player stamped with the current time.
func NewPlayer(id, username string) *Player {
	return &Player{
		ID:        id,
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
}

// PlayerQuest is the status of one quest for one player, keyed by (PlayerID, QuestID).
type PlayerQuest struct {
	PlayerID  string    `json:"player_id"`
	QuestID   string    `json:"quest_id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsCompleted reports whether the quest counts as an achievement.
func (q *PlayerQuest) IsCompleted() bool {
	return q.Status == QuestCompleted
}

// IsActive reports whether the quest is started but not completed.
func (q *PlayerQuest) IsActive() bool {
	return q.Status != QuestCompleted && q.Status != QuestNotStarted
}
