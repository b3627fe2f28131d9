// Package config resolves runtime settings from defaults, the settings
// store and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Setting keys as stored by `toxicmates config set`.
const (
	KeyFeedCapacity    = "feed.capacity"
	KeyMailboxCapacity = "mailbox.capacity"
	KeyLogFormat       = "log.format"
)

// Log formats accepted by log.format.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// ErrUnknownKey is returned for keys that are not settings.
var ErrUnknownKey = errors.New("unknown config key")

var envNames = map[string]string{
	KeyFeedCapacity:    "TOXICMATES_FEED_CAPACITY",
	KeyMailboxCapacity: "TOXICMATES_MAILBOX_CAPACITY",
	KeyLogFormat:       "TOXICMATES_LOG_FORMAT",
}

// Config holds the resolved settings.
type Config struct {
	FeedCapacity    int    `validate:"min=1,max=1000000"`
	MailboxCapacity int    `validate:"min=1,max=1000000"`
	LogFormat       string `validate:"oneof=console json"`
}

// Settings is the read side of the settings store.
type Settings interface {
	GetConfig(key string) (string, error)
}

var validate = validator.New()

func Default() Config {
	return Config{
		FeedCapacity:    1000,
		MailboxCapacity: 1000,
		LogFormat:       FormatConsole,
	}
}

// Keys returns every known setting key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(envNames))
	for k := range envNames {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Load starts from Default, applies stored settings (s may be nil), then
// environment variables, loading a .env file from the working directory if
// one exists. The result is validated.
func Load(s Settings) (Config, error) {
	// Missing .env is fine.
	_ = godotenv.Load()

	cfg := Default()
	for _, key := range Keys() {
		if s != nil {
			value, err := s.GetConfig(key)
			if err != nil {
				return Config{}, fmt.Errorf("failed to read setting %s: %w", key, err)
			}
			if value != "" {
				if err := cfg.Set(key, value); err != nil {
					return Config{}, err
				}
			}
		}
		if value := os.Getenv(envNames[key]); value != "" {
			if err := cfg.Set(key, value); err != nil {
				return Config{}, fmt.Errorf("%s: %w", envNames[key], err)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Set parses value into the field named by key.
func (c *Config) Set(key, value string) error {
	switch key {
	case KeyFeedCapacity, KeyMailboxCapacity:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %q is not an integer", key, value)
		}
		if key == KeyFeedCapacity {
			c.FeedCapacity = n
		} else {
			c.MailboxCapacity = n
		}
	case KeyLogFormat:
		c.LogFormat = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Check reports whether value is acceptable for key without touching any
// stored state.
func Check(key, value string) error {
	cfg := Default()
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	return cfg.Validate()
}
