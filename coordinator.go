package localesync

import (
	"context"
	"log/slog"
	"sync"
)

// LanguageWatchCoordinator keeps at most one watch session open, on the active language's
// directory, and reloads that language after external edits settle.
type LanguageWatchCoordinator struct {
	// transition serializes SetLanguage and Close. It is never taken by event delivery.
	transition sync.Mutex
	mu         sync.Mutex
	store      *ResourceFileStore
	watcher    DirectoryWatcher
	reloader   Reloader
	capture    CaptureSwitch
	language   string
	session    *watchSession
	nextID     uint64
	reloadTask *DebouncedTask[string]
	logger     *slog.Logger
	stats      *syncStats
	events     *observerQueue
	ownsEvents bool
	closed     bool
}

type watchSession struct {
	id       uint64
	language string
	dir      string
	handle   WatchSession
}

func NewLanguageWatchCoordinator(store *ResourceFileStore, watcher DirectoryWatcher, reloader Reloader, capture CaptureSwitch, cfg Config) *LanguageWatchCoordinator {
	cfg = cfg.withDefaults()
	stats := newSyncStats(cfg.StatsMaxKeys, cfg.NowFn)
	c := newLanguageWatchCoordinator(store, watcher, reloader, capture, cfg, stats, newObserverQueue(cfg.Observer, cfg.ObserverBuffer, stats))
	c.ownsEvents = true
	return c
}

func newLanguageWatchCoordinator(store *ResourceFileStore, watcher DirectoryWatcher, reloader Reloader, capture CaptureSwitch, cfg Config, stats *syncStats, events *observerQueue) *LanguageWatchCoordinator {
	c := &LanguageWatchCoordinator{
		store:    store,
		watcher:  watcher,
		reloader: reloader,
		capture:  capture,
		logger:   cfg.Logger.With(slog.String("component", "language_watch")),
		stats:    stats,
		events:   events,
	}
	c.reloadTask = NewDebouncedTask(cfg.ReloadQuietPeriod, c.reload)
	return c
}

// SetLanguage closes the current session and, when the language has a directory, opens a
// new one on it and enables missing-key capture. Without a directory capture is disabled
// and no session is opened.
func (c *LanguageWatchCoordinator) SetLanguage(ctx context.Context, lang string) {
	c.transition.Lock()
	defer c.transition.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	previous := c.session
	c.session = nil
	c.language = lang
	c.mu.Unlock()

	// pending reloads belong to the previous session
	c.reloadTask.Cancel()
	if previous != nil {
		c.closeSession(previous)
	}

	if err := ctx.Err(); err != nil {
		c.unavailable(lang, err)
		return
	}
	if !c.store.HasLanguage(lang) {
		c.unavailable(lang, ErrWatchUnavailable)
		return
	}

	c.mu.Lock()
	c.nextID++
	session := &watchSession{id: c.nextID, language: lang, dir: c.store.LanguageDir(lang)}
	c.session = session
	c.mu.Unlock()

	handle, err := c.watcher.Subscribe(session.dir, func(evt WatchEvent) {
		c.onEvent(session.id, evt)
	})
	if err != nil {
		c.mu.Lock()
		c.session = nil
		c.mu.Unlock()
		c.unavailable(lang, err)
		return
	}

	c.mu.Lock()
	session.handle = handle
	c.mu.Unlock()

	c.capture.SetSaveMissing(true)
	c.logger.Info("watching language directory", slog.String("lang", lang), slog.String("dir", session.dir))
}

func (c *LanguageWatchCoordinator) unavailable(lang string, cause error) {
	c.capture.SetSaveMissing(false)
	c.stats.incrementWatchUnavailable(lang)
	c.events.publish(observerEvent{kind: observerEventWatchUnavailable, lang: lang})
	c.logger.Debug("language directory not watched, missing-key capture disabled",
		slog.String("lang", lang),
		slog.Any("error", cause),
	)
}

func (c *LanguageWatchCoordinator) closeSession(session *watchSession) {
	c.mu.Lock()
	handle := session.handle
	c.mu.Unlock()
	if handle == nil {
		return
	}
	if err := handle.Close(); err != nil {
		c.logger.Warn("failed to close watch session", slog.String("lang", session.language), slog.Any("error", err))
	}
}

func (c *LanguageWatchCoordinator) onEvent(sessionID uint64, evt WatchEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.session == nil || c.session.id != sessionID {
		return
	}
	c.logger.Debug("language directory changed", slog.String("path", evt.Path), slog.String("op", evt.Op))
	c.reloadTask.Schedule(c.session.language)
}

func (c *LanguageWatchCoordinator) reload(lang string) {
	err := c.reloader.ReloadResources(context.Background(), lang)
	c.stats.recordReload(lang, err)
	c.events.publish(observerEvent{kind: observerEventReload, lang: lang, err: err})
	if err != nil {
		c.logger.Warn("failed to reload translations", slog.String("lang", lang), slog.Any("error", err))
		return
	}
	c.logger.Info("translations reloaded", slog.String("lang", lang))
}

// State returns the active language and whether its directory is being watched.
func (c *LanguageWatchCoordinator) State() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.language, c.session != nil
}

func (c *LanguageWatchCoordinator) Stats() Stats {
	return c.stats.snapshot()
}

// Close closes the open session and drops any scheduled reload.
func (c *LanguageWatchCoordinator) Close() {
	c.transition.Lock()
	defer c.transition.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	session := c.session
	c.session = nil
	c.mu.Unlock()

	if session != nil {
		c.closeSession(session)
	}
	c.reloadTask.Close()
	if c.ownsEvents {
		c.events.close()
	}
}
