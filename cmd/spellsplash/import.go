package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Spell-Splash/spell-splash-word-service/internal/app"
	"github.com/Spell-Splash/spell-splash-word-service/internal/infra/postgres"
	pgrepo "github.com/Spell-Splash/spell-splash-word-service/internal/infra/postgres/repository"
	"github.com/Spell-Splash/spell-splash-word-service/internal/storage"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a vocabulary JSON file into the database",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		path, _ := cmd.Flags().GetString("file")

		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		if path == "" {
			path = cfg.Vocabulary.SeedPath
		}
		if path == "" {
			return fmt.Errorf("no input: pass --file or set vocabulary.seed_path")
		}

		entries, err := storage.LoadVocabularyFile(path)
		if err != nil {
			return fmt.Errorf("load vocabulary: %w", err)
		}

		pool, err := app.OpenPool(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := postgres.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}

		// All entries land or none do.
		err = postgres.NewTransactor(pool).WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
			return pgrepo.NewVocabularyRepository(tx).Upsert(ctx, entries)
		})
		if err != nil {
			return fmt.Errorf("import vocabulary: %w", err)
		}

		log.Info("vocabulary imported",
			zap.String("file", path),
			zap.Int("entries", len(entries)),
		)
		return nil
	},
}

func init() {
	importCmd.Flags().String("file", "", "vocabulary JSON file ({\"words\": [...]}); defaults to vocabulary.seed_path")
}
