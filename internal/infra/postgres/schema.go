package postgres

import (
	"context"
	"fmt"
)

// schema is idempotent; Migrate may run on every start.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS vocabulary (
		vocab_id               BIGINT PRIMARY KEY,
		word                   TEXT NOT NULL,
		meaning                TEXT,
		definition             TEXT,
		definition_en          TEXT,
		part_of_speech         TEXT,
		cefr_level             TEXT,
		phonetic_transcription TEXT,
		audio_cache_path       TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS vocabulary_word_idx ON vocabulary (word)`,
	`CREATE INDEX IF NOT EXISTS vocabulary_level_idx ON vocabulary (cefr_level)`,
	`CREATE INDEX IF NOT EXISTS vocabulary_phonetic_idx ON vocabulary (phonetic_transcription)`,
	`CREATE INDEX IF NOT EXISTS vocabulary_pos_idx ON vocabulary (part_of_speech)`,
	`CREATE TABLE IF NOT EXISTS players (
		player_id  TEXT PRIMARY KEY,
		username   TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS player_quests (
		player_id  TEXT NOT NULL REFERENCES players (player_id) ON DELETE CASCADE,
		quest_id   TEXT NOT NULL,
		status     TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (player_id, quest_id)
	)`,
}

// Migrate applies the schema.
func Migrate(ctx context.Context, db DBTX) error {
	for i, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i, err)
		}
	}
	return nil
}
