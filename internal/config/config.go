// internal/config/config.go
//
// Process configuration, read from WORDLE_* environment variables.
// A .env file in the working directory is loaded first when present.

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle/apps/wordlestar/internal/store"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds every tunable of the server.
type Config struct {
	Port           int           `envconfig:"WORDLE_PORT" default:"5175"`
	LogLevel       string        `envconfig:"WORDLE_LOG_LEVEL" default:"info"`
	StorageDriver  string        `envconfig:"WORDLE_STORAGE_DRIVER" default:"sqlite"`
	StoragePath    string        `envconfig:"WORDLE_STORAGE_PATH" default:"./data/wordle.db"`
	CacheSize      int           `envconfig:"WORDLE_STORAGE_CACHE_SIZE" default:"64"`
	Timezone       string        `envconfig:"WORDLE_TIMEZONE" default:"Local"`
	PrefersDark    bool          `envconfig:"WORDLE_PREFERS_DARK" default:"false"`
	AnswersFile    string        `envconfig:"WORDLE_ANSWERS_FILE"`
	AllowedFile    string        `envconfig:"WORDLE_ALLOWED_FILE"`
	ClientOrigin   string        `envconfig:"WORDLE_CLIENT_ORIGIN" default:"http://localhost:5173"`
	RequestTimeout time.Duration `envconfig:"WORDLE_REQUEST_TIMEOUT" default:"10s"`
}

// Load reads .env (if any) and the environment, then validates.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the environment only.
func FromEnv() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks values envconfig can't.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalid, c.Port)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel)
	}
	switch c.StorageDriver {
	case store.DriverMemory, store.DriverSQLite, store.DriverBolt:
	default:
		return fmt.Errorf("%w: storage driver %q", ErrInvalid, c.StorageDriver)
	}
	if c.StorageDriver != store.DriverMemory && c.StoragePath == "" {
		return fmt.Errorf("%w: storage path required for %s", ErrInvalid, c.StorageDriver)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("%w: negative cache size", ErrInvalid)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("%w: timezone %q: %v", ErrInvalid, c.Timezone, err)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalid)
	}
	return nil
}

// Location resolves Timezone; "Local" and "" mean the host zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Level is the parsed log level, info if unparsable.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// Addr is the listen address.
func (c Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }
