package localesync

import (
	"context"
	"log/slog"
	"time"
)

//go:generate mockgen -source=$GOFILE -package mock_localesync -destination=test/mock/$GOFILE

const (
	DefaultFlushQuietPeriod  = 1000 * time.Millisecond
	DefaultReloadQuietPeriod = 1000 * time.Millisecond
	DefaultFlushConcurrency  = 4
)

type Config struct {
	// LocalesRoot holds one directory per language with one JSON file per namespace.
	LocalesRoot string
	// Language is used when the engine does not report a current language.
	Language          string
	FlushQuietPeriod  time.Duration
	ReloadQuietPeriod time.Duration
	FlushConcurrency  int
	Logger            *slog.Logger
	Observer          Observer
	ObserverBuffer    int
	StatsMaxKeys      int
	NowFn             func() time.Time
}

func (cfg Config) withDefaults() Config {
	if cfg.FlushQuietPeriod <= 0 {
		cfg.FlushQuietPeriod = DefaultFlushQuietPeriod
	}
	if cfg.ReloadQuietPeriod <= 0 {
		cfg.ReloadQuietPeriod = DefaultReloadQuietPeriod
	}
	if cfg.FlushConcurrency <= 0 {
		cfg.FlushConcurrency = DefaultFlushConcurrency
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.ObserverBuffer <= 0 {
		cfg.ObserverBuffer = 1024
	}
	if cfg.StatsMaxKeys <= 0 {
		cfg.StatsMaxKeys = 512
	}
	if cfg.NowFn == nil {
		cfg.NowFn = time.Now
	}
	return cfg
}

// MissingKeyEvent is reported by the translation engine when a lookup falls back.
type MissingKeyEvent struct {
	Languages []string
	Namespace string
	Key       string
	Fallback  string
}

// Reloader reloads the in-memory resources of the given languages from disk.
type Reloader interface {
	ReloadResources(ctx context.Context, languages ...string) error
}

// CaptureSwitch turns missing-key reporting on and off in the engine.
type CaptureSwitch interface {
	SetSaveMissing(enabled bool)
}

// EventSource delivers engine events. The returned functions revoke the subscription.
type EventSource interface {
	Language() string
	SubscribeMissingKey(fn func(MissingKeyEvent)) (unsubscribe func())
	SubscribeLanguageChanged(fn func(lang string)) (unsubscribe func())
}

// Engine is the host translation engine.
type Engine interface {
	Reloader
	CaptureSwitch
	EventSource
}

// WatchEvent is a change inside a watched directory.
type WatchEvent struct {
	Path string
	Op   string
}

type WatchSession interface {
	Close() error
}

// DirectoryWatcher subscribes to change events of one directory. onEvent may be called from
// any goroutine until the session is closed; no call happens after Close returns.
type DirectoryWatcher interface {
	Subscribe(dir string, onEvent func(WatchEvent)) (WatchSession, error)
}
