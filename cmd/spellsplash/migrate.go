package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Spell-Splash/spell-splash-word-service/internal/app"
	"github.com/Spell-Splash/spell-splash-word-service/internal/infra/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database tables and indexes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		pool, err := app.OpenPool(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := postgres.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}

		log.Info("schema is up to date")
		return nil
	},
}

