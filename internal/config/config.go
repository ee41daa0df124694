package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrUnknownStorageDriver        = errors.New("unknown storage driver")
)

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env        string     `mapstructure:"env"` // current application environment (local, dev, production etc)
	HTTP       HTTP       `mapstructure:"http"`
	DB         DB         `mapstructure:"database"`
	Storage    Storage    `mapstructure:"storage"`
	Vocabulary Vocabulary `mapstructure:"vocabulary"`
	Dictionary Dictionary `mapstructure:"dictionary"`
	Quiz       Quiz       `mapstructure:"quiz"`
	TTS        TTS        `mapstructure:"tts"`
	STT        STT        `mapstructure:"stt"`
	Telegram   Telegram   `mapstructure:"telegram"`
}

// HTTP configures the JSON API listener.
type HTTP struct {
	Addr           string        `mapstructure:"addr"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
	Migrate         bool          `mapstructure:"migrate"`           // apply the schema on start
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Storage selects the repository backend.
type Storage struct {
	Driver string `mapstructure:"driver"` // postgres or memory
}

// Vocabulary configures the seed data file.
type Vocabulary struct {
	SeedPath string `mapstructure:"seed_path"` // JSON file with {"words": [...]}; empty disables seeding
}

// Dictionary configures the known-word list.
type Dictionary struct {
	Path string `mapstructure:"path"` // newline separated word list
}

// Quiz holds quiz tuning knobs.
type Quiz struct {
	ChoiceCount    int    `mapstructure:"choice_count"`     // choices per question, target included
	DefaultLevel   string `mapstructure:"default_level"`    // level used when a client sends none
	LetterPoolSize int    `mapstructure:"letter_pool_size"` // default spelling round size
	CandidateLimit int    `mapstructure:"candidate_limit"`  // rows fetched per distractor strategy
}

// TTS describes how audio links are derived for words without cached audio.
type TTS struct {
	BaseURL string `mapstructure:"base_url"`
	Voice   string `mapstructure:"voice"`
}

// STT locates the transcription service.
type STT struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Telegram configures the bot client.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	APIToken string `mapstructure:"-"` // Telegram API token loaded from environment
	Debug    bool   `mapstructure:"debug"`
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.request_timeout", "30s")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("database.migrate", true)
	v.SetDefault("storage.driver", DriverPostgres)
	v.SetDefault("vocabulary.seed_path", "assets/data/vocabulary.json")
	v.SetDefault("dictionary.path", "assets/data/words.txt")
	v.SetDefault("quiz.choice_count", 4)
	v.SetDefault("quiz.default_level", "ALL")
	v.SetDefault("quiz.letter_pool_size", 10)
	v.SetDefault("quiz.candidate_limit", 50)
	v.SetDefault("tts.base_url", "http://localhost:5002")
	v.SetDefault("tts.voice", "en-US-default")
	v.SetDefault("stt.url", "http://localhost:9000/transcribe")
	v.SetDefault("stt.timeout", "15s")
	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.debug", false)
}

func fromViper(v *viper.Viper) (*Config, error) {
	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.DB.URL = v.GetString("database_url")
	cfg.Telegram.APIToken = v.GetString("telegram_api_token")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverPostgres:
		if c.DB.URL == "" {
			return fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorageDriver, c.Storage.Driver)
	}

	if c.Telegram.Enabled && c.Telegram.APIToken == "" {
		return fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}

	if c.Quiz.ChoiceCount < 2 {
		c.Quiz.ChoiceCount = 2
	}

	return nil
}

// IsProduction reports whether the production logger and settings should be used.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
