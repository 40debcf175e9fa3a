// Package localesync keeps an on-disk translation store (<root>/<lang>/<namespace>.json) in
// sync with a running application: keys the application reports as missing are merged into
// the active language's files, and edits to those files are reloaded into the application.
package localesync

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Syncer connects a translation engine to the resource store: missing keys reported by the
// engine are written to disk, and edits on disk are reloaded into the engine. It owns the
// collector and the coordinator and keeps them on the same language.
type Syncer struct {
	cfg         Config
	store       *ResourceFileStore
	engine      Engine
	collector   *MissingKeyCollector
	coordinator *LanguageWatchCoordinator
	stats       *syncStats
	events      *observerQueue
	logger      *slog.Logger
	capturing   atomic.Bool

	mu            sync.Mutex
	unsubscribers []func()
	started       bool
	closed        bool
}

func NewSyncer(cfg Config, engine Engine, watcher DirectoryWatcher) (*Syncer, error) {
	cfg = cfg.withDefaults()
	if cfg.LocalesRoot == "" {
		return nil, fmt.Errorf("locales root is required")
	}
	if engine == nil {
		return nil, fmt.Errorf("engine is required")
	}
	if watcher == nil {
		return nil, fmt.Errorf("directory watcher is required")
	}

	s := &Syncer{
		cfg:    cfg,
		store:  NewResourceFileStore(cfg.LocalesRoot),
		engine: engine,
		logger: cfg.Logger,
	}
	s.stats = newSyncStats(cfg.StatsMaxKeys, cfg.NowFn)
	s.events = newObserverQueue(cfg.Observer, cfg.ObserverBuffer, s.stats)

	collector, err := newMissingKeyCollector(s.store, cfg, s.stats, s.events)
	if err != nil {
		s.events.close()
		return nil, err
	}
	s.collector = collector
	s.coordinator = newLanguageWatchCoordinator(s.store, watcher, engine, captureSwitch{s}, cfg, s.stats, s.events)
	return s, nil
}

// captureSwitch flips the engine's save-missing switch and gates forwarding of its events.
type captureSwitch struct {
	s *Syncer
}

func (cs captureSwitch) SetSaveMissing(enabled bool) {
	cs.s.capturing.Store(enabled)
	cs.s.engine.SetSaveMissing(enabled)
}

// Start subscribes to the engine and applies its current language.
func (s *Syncer) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("syncer is closed")
	}
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.unsubscribers = append(s.unsubscribers,
		s.engine.SubscribeMissingKey(s.onMissingKey),
		s.engine.SubscribeLanguageChanged(func(lang string) {
			s.LanguageChanged(context.Background(), lang)
		}),
	)
	s.mu.Unlock()

	lang := s.engine.Language()
	if lang == "" {
		lang = s.cfg.Language
	}
	s.LanguageChanged(ctx, lang)
	return nil
}

func (s *Syncer) onMissingKey(evt MissingKeyEvent) {
	if !s.capturing.Load() {
		return
	}
	s.collector.OnMissingKey(evt.Languages, evt.Namespace, evt.Key, evt.Fallback)
}

// LanguageChanged moves both the collector and the watch session to lang.
func (s *Syncer) LanguageChanged(ctx context.Context, lang string) {
	s.collector.SetLanguage(lang)
	s.coordinator.SetLanguage(ctx, lang)
}

func (s *Syncer) Store() *ResourceFileStore {
	return s.store
}

func (s *Syncer) Collector() *MissingKeyCollector {
	return s.collector
}

func (s *Syncer) Coordinator() *LanguageWatchCoordinator {
	return s.coordinator
}

func (s *Syncer) Stats() Stats {
	return s.stats.snapshot()
}

func (s *Syncer) ResetStats() {
	s.stats.reset()
}

// Close revokes the engine subscriptions, closes the watch session and cancels pending
// flushes and reloads.
func (s *Syncer) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	unsubscribers := s.unsubscribers
	s.unsubscribers = nil
	s.mu.Unlock()

	for _, unsubscribe := range unsubscribers {
		unsubscribe()
	}
	s.coordinator.Close()
	s.collector.Close()
	s.events.close()
}
