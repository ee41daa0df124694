// Package app wires configuration, storage, services and delivery together.
package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Spell-Splash/spell-splash-word-service/internal/config"
	"github.com/Spell-Splash/spell-splash-word-service/internal/delivery/httpapi"
	"github.com/Spell-Splash/spell-splash-word-service/internal/delivery/telegram"
	"github.com/Spell-Splash/spell-splash-word-service/internal/dictionary"
	"github.com/Spell-Splash/spell-splash-word-service/internal/domain/entities"
	"github.com/Spell-Splash/spell-splash-word-service/internal/infra/postgres"
	pgrepo "github.com/Spell-Splash/spell-splash-word-service/internal/infra/postgres/repository"
	"github.com/Spell-Splash/spell-splash-word-service/internal/observe"
	"github.com/Spell-Splash/spell-splash-word-service/internal/service"
	"github.com/Spell-Splash/spell-splash-word-service/internal/speech"
	"github.com/Spell-Splash/spell-splash-word-service/internal/storage"
)

// Version is reported in telemetry. It is set at build time.
var Version = "dev"

// App is a fully wired service.
type App struct {
	HTTP *httpapi.Server
	Bot  *telegram.Handler // nil when the bot is disabled

	logger    *zap.Logger
	telemetry *observe.Provider
	closers   []func()
}

// repositories is the storage backend chosen by configuration.
type repositories struct {
	vocabulary service.VocabularyRepository
	players    service.PlayerRepository
	words      func(ctx context.Context) ([]string, error)
	ready      func(ctx context.Context) error
	close      func()
}

// New builds every component described by cfg.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{logger: logger}

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if repos.close != nil {
		a.closers = append(a.closers, repos.close)
	}

	dict, err := loadDictionary(ctx, cfg, repos, logger)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}

	telemetry, err := observe.InitProvider(observe.ProviderConfig{ServiceVersion: Version})
	if err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("init telemetry: %w", err)
	}
	a.telemetry = telemetry

	metrics, err := observe.NewMetrics(telemetry.MeterProvider)
	if err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("init metrics: %w", err)
	}

	level, ok := entities.ParseLevel(cfg.Quiz.DefaultLevel)
	if !ok {
		a.Close(ctx)
		return nil, fmt.Errorf("invalid quiz.default_level %q", cfg.Quiz.DefaultLevel)
	}

	// Initialize services.
	rng := service.NewTimeSeededRandom()
	linker := speech.NewTTSLinker(cfg.TTS.BaseURL, cfg.TTS.Voice)
	stt := observe.NewTimedTranscriber(speech.NewSTTClient(cfg.STT.URL, speech.WithTimeout(cfg.STT.Timeout)), metrics)

	selector := service.NewDistractorSelector(repos.vocabulary, rng, cfg.Quiz.CandidateLimit, logger)
	assembler := service.NewQuizAssembler(rng, linker)
	quizService := service.NewQuizService(repos.vocabulary, selector, assembler, cfg.Quiz.ChoiceCount, metrics, logger)
	scorer := service.NewWordScorer(repos.vocabulary, dict, logger)
	letters := service.NewLetterPoolGenerator(rng)
	pronunciationService := service.NewPronunciationService(repos.vocabulary, stt, metrics, logger)
	playerService := service.NewPlayerService(repos.players)

	a.HTTP = httpapi.New(httpapi.Deps{
		Quiz:          quizService,
		Scorer:        scorer,
		Letters:       letters,
		Pronunciation: pronunciationService,
		Players:       playerService,
		Recorder:      metrics,
		Metrics:       telemetry.Handler,
		Middleware:    observe.Middleware(metrics, logger),
		Ready:         repos.ready,
	}, httpapi.Options{
		RequestTimeout: cfg.HTTP.RequestTimeout,
		DefaultLevel:   level,
		LetterPoolSize: cfg.Quiz.LetterPoolSize,
	}, logger)

	if cfg.Telegram.Enabled {
		bot, err := tgbotapi.NewBotAPI(cfg.Telegram.APIToken)
		if err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("init telegram bot: %w", err)
		}
		bot.Debug = cfg.Telegram.Debug

		if err := telegram.RegisterCommands(bot); err != nil {
			logger.Warn("failed to set bot commands", zap.Error(err))
		}
		logger.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

		a.Bot = telegram.NewHandler(bot, logger, telegram.Services{
			Quiz:          quizService,
			Scorer:        scorer,
			Letters:       letters,
			Pronunciation: pronunciationService,
			Players:       playerService,
			Sessions:      storage.NewSessionStorage(),
		}, level, cfg.Quiz.LetterPoolSize)
	}

	return a, nil
}

// Close releases storage and flushes telemetry.
func (a *App) Close(ctx context.Context) {
	if a.telemetry != nil {
		if err := a.telemetry.Shutdown(ctx); err != nil {
			a.logger.Warn("telemetry shutdown", zap.Error(err))
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func openRepositories(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*repositories, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		var entries []*entities.Vocabulary
		if cfg.Vocabulary.SeedPath != "" {
			loaded, err := storage.LoadVocabularyFile(cfg.Vocabulary.SeedPath)
			if err != nil {
				return nil, fmt.Errorf("load vocabulary: %w", err)
			}
			entries = loaded
		}

		store := storage.NewVocabularyStore(entries, service.NewTimeSeededRandom())
		logger.Info("using in-memory storage", zap.Int("words", store.Count()))

		return &repositories{
			vocabulary: store,
			players:    storage.NewPlayerStore(),
			words:      func(context.Context) ([]string, error) { return store.Words(), nil },
			ready:      func(context.Context) error { return nil },
		}, nil

	case config.DriverPostgres:
		pool, err := OpenPool(ctx, cfg)
		if err != nil {
			return nil, err
		}

		if cfg.DB.Migrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrate: %w", err)
			}
		}

		vocabulary := pgrepo.NewVocabularyRepository(pool)
		logger.Info("using postgres storage")

		return &repositories{
			vocabulary: vocabulary,
			players:    pgrepo.NewPlayerRepository(pool),
			words:      vocabulary.Words,
			ready:      pool.Ping,
			close:      pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownStorageDriver, cfg.Storage.Driver)
	}
}

// loadDictionary reads the word list and adds every vocabulary word to it,
// so words worth a bonus are never rejected as unknown.
func loadDictionary(ctx context.Context, cfg *config.Config, repos *repositories, logger *zap.Logger) (*dictionary.Dictionary, error) {
	dict, err := dictionary.Load(cfg.Dictionary.Path)
	if errors.Is(err, dictionary.ErrEmpty) || errors.Is(err, fs.ErrNotExist) {
		logger.Warn("dictionary file unusable, using the built-in list",
			zap.String("path", cfg.Dictionary.Path),
			zap.Error(err),
		)
		dict, err = dictionary.Load("")
	}
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}

	words, err := repos.words(ctx)
	if err != nil {
		return nil, fmt.Errorf("list vocabulary words: %w", err)
	}
	dict.Add(words...)

	logger.Info("dictionary loaded", zap.Int("words", dict.Len()))
	return dict, nil
}
