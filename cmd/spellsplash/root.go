package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Spell-Splash/spell-splash-word-service/internal/config"
	"github.com/Spell-Splash/spell-splash-word-service/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:           "spellsplash",
	Short:         "Vocabulary quiz, spelling and pronunciation service",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, importCmd)
}

// bootstrap loads configuration and builds the logger every subcommand uses.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	return cfg, log, nil
}
