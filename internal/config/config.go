package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Defaults for the flat bonus units, matching the source dashboard.
const (
	defaultDirectBonus = 500
	defaultPairBonus   = 1000
)

type Config struct {
	// Discord. Token empty = bot disabled, HTTP API only.
	Token   string
	GuildID string

	HTTPAddr string

	// Postgres. Empty = in-memory only, no persistence.
	DatabaseURL    string
	MigrationsPath string

	DefaultLocale string
	RootName      string

	DirectBonus     int64
	PairBonus       int64
	MaxParticipants int
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env is optional when variables come from the environment (Docker, CI, etc.).
	}

	cfg := &Config{
		Token:           os.Getenv("TOKEN"),
		GuildID:         os.Getenv("GUILD_ID"),
		HTTPAddr:        os.Getenv("HTTP_ADDR"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		MigrationsPath:  os.Getenv("MIGRATIONS_PATH"),
		DefaultLocale:   os.Getenv("DEFAULT_LOCALE"),
		RootName:        os.Getenv("ROOT_NAME"),
		DirectBonus:     defaultDirectBonus,
		PairBonus:       defaultPairBonus,
		MaxParticipants: 0,
	}

	if v := os.Getenv("DIRECT_BONUS"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("config: DIRECT_BONUS must be an integer, got %q", v)
		}
		cfg.DirectBonus = n
	}
	if v := os.Getenv("PAIR_BONUS"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("config: PAIR_BONUS must be an integer, got %q", v)
		}
		cfg.PairBonus = n
	}
	if v := os.Getenv("MAX_PARTICIPANTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("config: MAX_PARTICIPANTS must be an integer, got %q", v)
		}
		cfg.MaxParticipants = n
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate applies all the rules on the loaded configuration and fills
// in defaults.
func (c *Config) validate() error {
	if strings.TrimSpace(c.HTTPAddr) == "" {
		c.HTTPAddr = ":8080"
	}
	if strings.TrimSpace(c.MigrationsPath) == "" {
		c.MigrationsPath = "migrations"
	}
	if strings.TrimSpace(c.DefaultLocale) == "" {
		c.DefaultLocale = "en"
	}
	if strings.TrimSpace(c.RootName) == "" {
		c.RootName = "Root"
	}

	if c.DirectBonus < 0 {
		return fmt.Errorf("config: DIRECT_BONUS cannot be negative (%d)", c.DirectBonus)
	}
	if c.PairBonus < 0 {
		return fmt.Errorf("config: PAIR_BONUS cannot be negative (%d)", c.PairBonus)
	}
	if c.MaxParticipants < 0 {
		return fmt.Errorf("config: MAX_PARTICIPANTS cannot be negative (%d)", c.MaxParticipants)
	}

	if strings.TrimSpace(c.DatabaseURL) != "" {
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.DatabaseURL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", c.DatabaseURL)
		}
	}

	if strings.TrimSpace(c.Token) != "" && strings.TrimSpace(c.GuildID) != "" {
		for _, r := range c.GuildID {
			if r < '0' || r > '9' {
				return fmt.Errorf("config: GUILD_ID must be a Discord guild ID (digits only)")
			}
		}
	}

	return nil
}
