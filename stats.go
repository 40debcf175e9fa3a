package localesync

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const overflowStatKey = "__overflow__"

// Stats is a snapshot of the sync counters. Map keys are "lang/namespace" for flush counters
// and the language for reload counters.
type Stats struct {
	MissingKeys      map[string]int
	FlushedKeys      map[string]int
	FlushFailures    map[string]int
	Reloads          map[string]int
	ReloadFailures   map[string]int
	WatchUnavailable map[string]int
	DroppedEvents    map[string]int
	LastFlushAt      time.Time
	LastReloadAt     time.Time
}

type syncStats struct {
	mu               sync.Mutex
	missingKeys      map[string]int
	flushedKeys      map[string]int
	flushFailures    map[string]int
	reloads          map[string]int
	reloadFailures   map[string]int
	watchUnavailable map[string]int
	droppedEvents    map[string]int
	maxKeys          int
	lastFlushAt      time.Time
	lastReloadAt     time.Time
	nowFn            func() time.Time
}

func newSyncStats(maxKeys int, nowFn func() time.Time) *syncStats {
	s := &syncStats{maxKeys: maxKeys, nowFn: nowFn}
	s.reset()
	return s
}

func sanitizeStatKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "unknown"
	}
	if len(key) > 120 {
		return key[:120]
	}
	return key
}

func (s *syncStats) add(target map[string]int, key string, n int) {
	if target == nil {
		return
	}
	key = sanitizeStatKey(key)
	if s.maxKeys > 0 {
		if _, exists := target[key]; !exists {
			if _, hasOverflow := target[overflowStatKey]; hasOverflow {
				if len(target) >= s.maxKeys {
					key = overflowStatKey
				}
			} else if len(target) >= s.maxKeys-1 {
				key = overflowStatKey
			}
		}
	}
	target[key] += n
}

func namespaceStatKey(lang string, namespace string) string {
	return fmt.Sprintf("%s/%s", lang, namespace)
}

func (s *syncStats) incrementMissingKey(namespace string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.add(s.missingKeys, namespace, 1)
}

func (s *syncStats) recordFlush(lang string, namespace string, added int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.add(s.flushedKeys, namespaceStatKey(lang, namespace), added)
	s.lastFlushAt = s.nowFn()
}

func (s *syncStats) incrementFlushFailure(lang string, namespace string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.add(s.flushFailures, namespaceStatKey(lang, namespace), 1)
}

func (s *syncStats) recordReload(lang string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.add(s.reloadFailures, lang, 1)
		return
	}
	s.add(s.reloads, lang, 1)
	s.lastReloadAt = s.nowFn()
}

func (s *syncStats) incrementWatchUnavailable(lang string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.add(s.watchUnavailable, lang, 1)
}

func (s *syncStats) incrementDroppedEvent(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.add(s.droppedEvents, reason, 1)
}

func (s *syncStats) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.missingKeys = map[string]int{}
	s.flushedKeys = map[string]int{}
	s.flushFailures = map[string]int{}
	s.reloads = map[string]int{}
	s.reloadFailures = map[string]int{}
	s.watchUnavailable = map[string]int{}
	s.droppedEvents = map[string]int{}
	s.lastFlushAt = time.Time{}
	s.lastReloadAt = time.Time{}
}

func (s *syncStats) snapshot() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	copyMap := func(input map[string]int) map[string]int {
		output := make(map[string]int, len(input))
		for k, v := range input {
			output[k] = v
		}
		return output
	}

	return Stats{
		MissingKeys:      copyMap(s.missingKeys),
		FlushedKeys:      copyMap(s.flushedKeys),
		FlushFailures:    copyMap(s.flushFailures),
		Reloads:          copyMap(s.reloads),
		ReloadFailures:   copyMap(s.reloadFailures),
		WatchUnavailable: copyMap(s.watchUnavailable),
		DroppedEvents:    copyMap(s.droppedEvents),
		LastFlushAt:      s.lastFlushAt,
		LastReloadAt:     s.lastReloadAt,
	}
}
