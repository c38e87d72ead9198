package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Settings holds the runtime configuration read from the environment.
// Values from an optional .env file are loaded first; real environment
// variables take precedence.
type Settings struct {
	Port        string        `env:"NUMEROLOGY_PORT" envDefault:"18080"`
	BindAddr    string        `env:"NUMEROLOGY_BIND" envDefault:"127.0.0.1"`
	Language    string        `env:"NUMEROLOGY_LANG" envDefault:"en"`
	LogFormat   string        `env:"NUMEROLOGY_LOG_FORMAT" envDefault:"auto"`
	SourceMode  string        `env:"NUMEROLOGY_SOURCE_MODE" envDefault:"local"`
	LocalPath   string        `env:"NUMEROLOGY_LOCAL_PATH"`
	WebURL      string        `env:"NUMEROLOGY_WEB_URL"`
	WebUser     string        `env:"NUMEROLOGY_WEB_USER"`
	WebPass     string        `env:"NUMEROLOGY_WEB_PASS"`
	Refresh     time.Duration `env:"NUMEROLOGY_REFRESH" envDefault:"1h"`
	CacheTTL    time.Duration `env:"NUMEROLOGY_CACHE_TTL" envDefault:"10m"`
	CORSOrigins []string      `env:"NUMEROLOGY_CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

// Load reads Settings from the process environment.
func Load() (Settings, error) {
	_ = godotenv.Load()

	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", ErrSettingsLoad, err)
	}

	return s, nil
}

// HasCalendarSource reports whether a people source is configured for the
// calendar feed.
func (s Settings) HasCalendarSource() bool {
	switch s.SourceMode {
	case SourceModeLocal:
		return s.LocalPath != ""
	case SourceModeWeb:
		return s.WebURL != ""
	default:
		return false
	}
}
