// Package config loads the CLI configuration from a YAML or TOML file and LOCALESYNC_*
// environment variables. Environment values override the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"

	"github.com/loopcontext/localesync"
)

const EnvPrefix = "LOCALESYNC_"

type Logging struct {
	Level  string `yaml:"level" toml:"level" env:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `yaml:"format" toml:"format" env:"LOG_FORMAT" validate:"omitempty,oneof=logfmt json text tint"`
}

type File struct {
	LocalesRoot       string        `yaml:"locales_root" toml:"locales_root" env:"LOCALES_ROOT" validate:"required"`
	Language          string        `yaml:"language" toml:"language" env:"LANGUAGE" validate:"required"`
	FallbackLanguage  string        `yaml:"fallback_language" toml:"fallback_language" env:"FALLBACK_LANGUAGE" validate:"required"`
	FlushQuietPeriod  time.Duration `yaml:"flush_quiet_period" toml:"flush_quiet_period" env:"FLUSH_QUIET_PERIOD" validate:"gt=0"`
	ReloadQuietPeriod time.Duration `yaml:"reload_quiet_period" toml:"reload_quiet_period" env:"RELOAD_QUIET_PERIOD" validate:"gt=0"`
	FlushConcurrency  int           `yaml:"flush_concurrency" toml:"flush_concurrency" env:"FLUSH_CONCURRENCY" validate:"min=1,max=64"`
	MetricsAddr       string        `yaml:"metrics_addr" toml:"metrics_addr" env:"METRICS_ADDR" validate:"omitempty,hostname_port"`
	Logging           Logging       `yaml:"logging" toml:"logging"`
}

func Default() File {
	return File{
		LocalesRoot:       "./locales",
		Language:          "en",
		FallbackLanguage:  "en",
		FlushQuietPeriod:  localesync.DefaultFlushQuietPeriod,
		ReloadQuietPeriod: localesync.DefaultReloadQuietPeriod,
		FlushConcurrency:  localesync.DefaultFlushConcurrency,
		Logging:           Logging{Level: "info", Format: "logfmt"},
	}
}

// Load reads path over the defaults, then applies environment overrides and validates the
// result. Files ending in .toml are decoded as TOML, anything else as YAML. An empty path or
// a missing file only applies defaults and environment.
func Load(path string) (File, error) {
	cfg := Default()
	if path != "" {
		content, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := decode(path, content, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func decode(path string, content []byte, cfg *File) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(content, cfg)
	}
	return yaml.UnmarshalStrict(content, cfg)
}

// SyncConfig converts the file configuration into the library configuration.
func (f File) SyncConfig(logger *slog.Logger, observer localesync.Observer) localesync.Config {
	return localesync.Config{
		LocalesRoot:       f.LocalesRoot,
		Language:          f.Language,
		FlushQuietPeriod:  f.FlushQuietPeriod,
		ReloadQuietPeriod: f.ReloadQuietPeriod,
		FlushConcurrency:  f.FlushConcurrency,
		Logger:            logger,
		Observer:          observer,
	}
}
