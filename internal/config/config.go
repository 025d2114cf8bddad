package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/afero"
	"golang.org/x/text/language"
)

// DefaultEnvFile is the dotenv file read at startup when present.
const DefaultEnvFile = ".env"

// Config holds all configuration for the application.
// It is built once at startup and never mutated afterwards.
type Config struct {
	// BackendBaseURL is the origin serving GET /api/reviews.
	BackendBaseURL string `envconfig:"BACKEND_BASE_URL" default:"http://localhost:8000" validate:"required,url"`

	ServerAddr    string `envconfig:"SERVER_ADDR" default:":3000" validate:"required"`
	// SessionSecret signs session cookies. Only the web server needs it.
	SessionSecret string `envconfig:"SESSION_SECRET" validate:"omitempty,min=16"`

	FetchTimeout       time.Duration `envconfig:"FETCH_TIMEOUT" default:"10s" validate:"gt=0"`
	SessionIdleTTL     time.Duration `envconfig:"SESSION_IDLE_TTL" default:"30m" validate:"gt=0"`
	RetryRatePerMinute int           `envconfig:"RETRY_RATE_PER_MINUTE" default:"30" validate:"min=1"`

	DisplayTimezone string `envconfig:"DISPLAY_TIMEZONE" default:"UTC" validate:"required"`
	DisplayLocale   string `envconfig:"DISPLAY_LOCALE" default:"en-US" validate:"required"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"text" validate:"oneof=text json"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	location *time.Location
	locale   language.Tag
}

// Location returns the time zone used to display review timestamps.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// Locale returns the language tag used for number formatting.
func (c *Config) Locale() language.Tag {
	if c.locale == language.Und {
		return language.AmericanEnglish
	}
	return c.locale
}

// New loads configuration from the .env file in the working directory and the
// process environment.
func New() (*Config, error) {
	return Load(afero.NewOsFs(), DefaultEnvFile)
}

// Load reads envFile from fsys (if it exists) into the environment without
// overriding variables that are already set, then decodes and validates the
// configuration.
func Load(fsys afero.Fs, envFile string) (*Config, error) {
	if err := loadDotenv(fsys, envFile); err != nil {
		return nil, err
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: decode environment: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	loc, err := time.LoadLocation(cfg.DisplayTimezone)
	if err != nil {
		return nil, fmt.Errorf("config: DISPLAY_TIMEZONE: %w", err)
	}
	cfg.location = loc

	tag, err := language.Parse(cfg.DisplayLocale)
	if err != nil {
		return nil, fmt.Errorf("config: DISPLAY_LOCALE: %w", err)
	}
	cfg.locale = tag

	return &cfg, nil
}

// ErrMissingSessionSecret is returned by RequireSessionSecret.
var ErrMissingSessionSecret = errors.New("config: SESSION_SECRET is required to serve the web UI")

// RequireSessionSecret reports whether the web server can be started.
func (c *Config) RequireSessionSecret() error {
	if c.SessionSecret == "" {
		return ErrMissingSessionSecret
	}
	return nil
}

func loadDotenv(fsys afero.Fs, envFile string) error {
	if envFile == "" {
		return nil
	}
	data, err := afero.ReadFile(fsys, envFile)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("No .env file found, relying on environment variables", "path", envFile)
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: read %s: %w", envFile, err)
	}

	values, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("config: parse %s: %w", envFile, err)
	}
	for key, value := range values {
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("config: set %s: %w", key, err)
		}
	}
	return nil
}
