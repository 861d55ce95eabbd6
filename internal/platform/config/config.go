// Package config loads the service configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centralizes every setting the service reads at startup.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	Environment string `env:"APP_ENV" envDefault:"development"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`

	DB    DBConfig
	Redis RedisConfig
	JWT   JWTConfig
	AI    AIConfig
	Log   LogConfig

	ProfileCacheTTL time.Duration `env:"PROFILE_CACHE_TTL" envDefault:"10m"`
}

type DBConfig struct {
	Driver        string `env:"DB_DRIVER" envDefault:"postgres"`
	Host          string `env:"DB_HOST" envDefault:"localhost"`
	Port          string `env:"DB_PORT" envDefault:"5432"`
	User          string `env:"DB_USER" envDefault:"postgres"`
	Password      string `env:"DB_PASSWORD"`
	Name          string `env:"DB_NAME" envDefault:"credit_dispute_db"`
	SSLMode       string `env:"DB_SSLMODE" envDefault:"disable"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"credit.db"`
	RunMigrations bool   `env:"RUN_MIGRATIONS" envDefault:"true"`
}

// RedisConfig is optional: an empty host disables redis-backed components.
type RedisConfig struct {
	Host     string `env:"REDIS_HOST"`
	Port     string `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
}

// Addr returns host:port, or "" when redis is not configured.
func (r RedisConfig) Addr() string {
	if r.Host == "" {
		return ""
	}
	return r.Host + ":" + r.Port
}

type JWTConfig struct {
	Secret     string        `env:"JWT_SECRET"`
	AccessTTL  time.Duration `env:"JWT_ACCESS_TTL" envDefault:"15m"`
	RefreshTTL time.Duration `env:"JWT_REFRESH_TTL" envDefault:"168h"`
}

// AIConfig selects and configures the letter text provider.
type AIConfig struct {
	Provider      string        `env:"LETTER_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey  string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string        `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	OpenAIModel   string        `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`
	GeminiAPIKey  string        `env:"GEMINI_API_KEY"`
	GeminiModel   string        `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	UseMock       bool          `env:"USE_MOCK_AI" envDefault:"false"`
	Timeout       time.Duration `env:"LETTER_PROVIDER_TIMEOUT" envDefault:"30s"`
	RateLimit     int           `env:"LETTER_PROVIDER_RATE_LIMIT" envDefault:"20"`
}

// APIKey returns the key of the selected provider.
func (a AIConfig) APIKey() string {
	if a.Provider == "gemini" {
		return a.GeminiAPIKey
	}
	return a.OpenAIAPIKey
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load parses the environment into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that env tags cannot express.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	switch c.AI.Provider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("unsupported LETTER_PROVIDER %q", c.AI.Provider)
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 {
		return fmt.Errorf("JWT token lifetimes must be positive")
	}
	return nil
}
