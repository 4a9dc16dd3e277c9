package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dukerupert/starboard/internal/avatar"
	"github.com/dukerupert/starboard/internal/logging"
)

const envPrefix = "STARBOARD_"

type Config struct {
	Port        string   `env:"PORT" envDefault:"8080"`
	Members     []string `env:"MEMBERS" envSeparator:"," envDefault:"Alice,Bob,Carol,Dave,Erin,Frank"`
	StaticDir   string   `env:"STATIC_DIR" envDefault:"web/static"`
	MaxUploadMB int64    `env:"MAX_UPLOAD_MB" envDefault:"5"`
	// RateLimit is the number of rating and guestbook posts allowed per client per minute.
	RateLimit int `env:"RATE_LIMIT" envDefault:"30"`
	// TrustProxy honors X-Real-IP and X-Forwarded-For. Only set it behind a
	// reverse proxy that overwrites those headers.
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"false"`

	Log logging.Config  `envPrefix:"LOG_"`
	S3  avatar.S3Config `envPrefix:"S3_"`
}

// AvatarDir is where locally stored avatars are written.
func (c Config) AvatarDir() string {
	return filepath.Join(c.StaticDir, "avatars")
}

func (c Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

// Load reads an optional .env file, then parses STARBOARD_* variables.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	return Parse(env.Options{Prefix: envPrefix})
}

// Parse builds a Config from the environment described by opts.
func Parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if len(c.Members) == 0 {
		return errors.New("at least one member is required")
	}
	seen := make(map[string]bool, len(c.Members))
	for _, name := range c.Members {
		if name == "" {
			return errors.New("member names must not be empty")
		}
		if seen[name] {
			return fmt.Errorf("duplicate member name %q", name)
		}
		seen[name] = true
	}
	if c.MaxUploadMB <= 0 {
		return errors.New("max upload size must be positive")
	}
	if c.RateLimit <= 0 {
		return errors.New("rate limit must be positive")
	}
	return nil
}
