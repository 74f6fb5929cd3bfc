package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration. It is built once in main and
// passed to the components that need it; nothing reads the environment after
// startup.
type Config struct {
	ServerPort   int           `env:"PORT" envDefault:"8080"`
	DatabasePath string        `env:"DATABASE_PATH" envDefault:"./lifetrack.db"`
	JWTSecret    string        `env:"JWT_SECRET,notEmpty"`
	TokenTTL     time.Duration `env:"TOKEN_TTL" envDefault:"15m"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`

	Storage StorageConfig `envPrefix:"STORAGE_"`

	CleanupSchedule    string `env:"CLEANUP_SCHEDULE" envDefault:"@daily"`
	EventRetentionDays int    `env:"EVENT_RETENTION_DAYS" envDefault:"30"`
}

// StorageConfig holds credentials for the external S3-compatible object
// store backing the file endpoints.
type StorageConfig struct {
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"true"`
}

// Load reads configuration from the environment, after loading a .env file
// if one is present.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
