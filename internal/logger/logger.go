package logger

import (
	"go.uber.org/zap"

	"github.com/Spell-Splash/spell-splash-word-service/internal/config"
)

// New builds the service logger. Every entry carries the service name and environment.
func New(cfg *config.Config) (*zap.Logger, error) {
	fields := zap.Fields(
		zap.String("service", "spellsplash"),
		zap.String("env", cfg.Env),
	)

	if cfg.IsProduction() {
		return zap.NewProduction(fields)
	}

	return zap.NewDevelopment(fields)
}
