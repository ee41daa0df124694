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

const vocabularyColumns = `
	vocab_id, word,
	COALESCE(meaning, ''), COALESCE(definition, ''), COALESCE(definition_en, ''),
	COALESCE(part_of_speech, ''), COALESCE(cefr_level, ''),
	COALESCE(phonetic_transcription, ''), COALESCE(audio_cache_path, '')
`

// VocabularyRepository provides access to vocabulary entries in the database.
type VocabularyRepository struct {
	db postgres.DBTX
}

// NewVocabularyRepository creates a new VocabularyRepository.
func NewVocabularyRepository(db postgres.DBTX) *VocabularyRepository {
	return &VocabularyRepository{db: db}
}

// FindRandom returns one random entry at level.
func (r *VocabularyRepository) FindRandom(ctx context.Context, level entities.Level) (*entities.Vocabulary, error) {
	query := `
		SELECT ` + vocabularyColumns + `
		FROM vocabulary
		WHERE ($1 = '' OR cefr_level = $1)
		ORDER BY random()
		LIMIT 1
	`

	v, err := scanVocabulary(r.db.QueryRow(ctx, query, level.Filter()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repoerrors.ErrVocabularyNotFound
		}
		return nil, fmt.Errorf("find random vocabulary: %w", err)
	}

	return v, nil
}

// FindByID returns the entry with id.
func (r *VocabularyRepository) FindByID(ctx context.Context, id int64) (*entities.Vocabulary, error) {
	query := `SELECT ` + vocabularyColumns + ` FROM vocabulary WHERE vocab_id = $1`

	v, err := scanVocabulary(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repoerrors.ErrVocabularyNotFound
		}
		return nil, fmt.Errorf("get vocabulary: %w", err)
	}

	return v, nil
}

// FindByWord returns the entry with the lowercase surface word.
func (r *VocabularyRepository) FindByWord(ctx context.Context, word string) (*entities.Vocabulary, error) {
	query := `
		SELECT ` + vocabularyColumns + `
		FROM vocabulary
		WHERE word = lower($1)
		ORDER BY vocab_id
		LIMIT 1
	`

	v, err := scanVocabulary(r.db.QueryRow(ctx, query, word))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repoerrors.ErrVocabularyNotFound
		}
		return nil, fmt.Errorf("get vocabulary by word: %w", err)
	}

	return v, nil
}

// FindExcluding returns up to limit random entries at level outside excludeIDs.
func (r *VocabularyRepository) FindExcluding(ctx context.Context, excludeIDs []int64, level entities.Level, limit int) ([]*entities.Vocabulary, error) {
	query := `
		SELECT ` + vocabularyColumns + `
		FROM vocabulary
		WHERE NOT (vocab_id = ANY($1::bigint[]))
		  AND ($2 = '' OR cefr_level = $2)
		ORDER BY random()
		LIMIT $3
	`

	return r.list(ctx, "find vocabulary excluding", query, ids(excludeIDs), level.Filter(), limit)
}

// FindByPhonetic returns entries with exactly the given transcription.
func (r *VocabularyRepository) FindByPhonetic(ctx context.Context, transcription string, excludeID int64, limit int) ([]*entities.Vocabulary, error) {
	query := `
		SELECT ` + vocabularyColumns + `
		FROM vocabulary
		WHERE phonetic_transcription = $1
		  AND vocab_id <> $2
		ORDER BY vocab_id
		LIMIT $3
	`

	return r.list(ctx, "find vocabulary by phonetic", query, transcription, excludeID, limit)
}

// FindByPrefix returns up to limit random entries whose word starts with letter.
func (r *VocabularyRepository) FindByPrefix(ctx context.Context, letter string, excludeIDs []int64, limit int) ([]*entities.Vocabulary, error) {
	query := `
		SELECT ` + vocabularyColumns + `
		FROM vocabulary
		WHERE left(word, 1) = lower($1)
		  AND NOT (vocab_id = ANY($2::bigint[]))
		ORDER BY random()
		LIMIT $3
	`

	return r.list(ctx, "find vocabulary by prefix", query, letter, ids(excludeIDs), limit)
}

// FindByPartOfSpeech returns up to limit random entries tagged with pos.
func (r *VocabularyRepository) FindByPartOfSpeech(ctx context.Context, pos string, excludeIDs []int64, limit int) ([]*entities.Vocabulary, error) {
	query := `
		SELECT ` + vocabularyColumns + `
		FROM vocabulary
		WHERE part_of_speech = lower($1)
		  AND NOT (vocab_id = ANY($2::bigint[]))
		ORDER BY random()
		LIMIT $3
	`

	return r.list(ctx, "find vocabulary by part of speech", query, pos, ids(excludeIDs), limit)
}

// Words returns every stored surface word.
func (r *VocabularyRepository) Words(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT word FROM vocabulary`)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}

	words, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	return words, nil
}

// Upsert writes entries keyed by vocab_id in one batch.
// Run it through Transactor.WithinTx to make the import atomic.
func (r *VocabularyRepository) Upsert(ctx context.Context, entries []*entities.Vocabulary) error {
	query := `
		INSERT INTO vocabulary (
			vocab_id, word, meaning, definition, definition_en,
			part_of_speech, cefr_level, phonetic_transcription, audio_cache_path
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (vocab_id) DO UPDATE SET
			word = EXCLUDED.word,
			meaning = EXCLUDED.meaning,
			definition = EXCLUDED.definition,
			definition_en = EXCLUDED.definition_en,
			part_of_speech = EXCLUDED.part_of_speech,
			cefr_level = EXCLUDED.cefr_level,
			phonetic_transcription = EXCLUDED.phonetic_transcription,
			audio_cache_path = EXCLUDED.audio_cache_path
	`

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(query,
			e.ID, e.Word, e.Meaning, e.Definition, e.DefinitionEN,
			e.PartOfSpeech, string(e.Level), e.Phonetic, e.AudioPath,
		)
	}

	br := r.db.SendBatch(ctx, batch)
	for _, e := range entries {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("upsert vocabulary %d: %w", e.ID, err)
		}
	}

	if err := br.Close(); err != nil {
		return fmt.Errorf("upsert vocabulary: %w", err)
	}
	return nil
}

func (r *VocabularyRepository) list(ctx context.Context, op, query string, args ...any) ([]*entities.Vocabulary, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []*entities.Vocabulary
	for rows.Next() {
		v, err := scanVocabulary(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func scanVocabulary(row pgx.Row) (*entities.Vocabulary, error) {
	var (
		v     entities.Vocabulary
		level string
	)
	if err := row.Scan(
		&v.ID, &v.Word,
		&v.Meaning, &v.Definition, &v.DefinitionEN,
		&v.PartOfSpeech, &level,
		&v.Phonetic, &v.AudioPath,
	); err != nil {
		return nil, err
	}

	v.Level = entities.Level(level)
	return &v, nil
}

// ids never returns nil: a NULL array would make NOT (x = ANY(...)) drop every row.
func ids(in []int64) []int64 {
	if in == nil {
		return []int64{}
	}
	return in
}
