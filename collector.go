package localesync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// MissingKeyCollector buffers missing keys per namespace and, after a quiet period, merges
// them into the active language's resource files. A namespace's batch is cleared once
// written; a failed batch stays buffered and is retried by a later flush.
type MissingKeyCollector struct {
	mu         sync.Mutex
	flushMu    sync.Mutex
	store      *ResourceFileStore
	merge      func(lang string, namespace string, keys map[string]string) (int, error)
	language   string
	pending    map[string]map[string]string
	flushTask  *DebouncedTask[struct{}]
	pool       *ants.Pool
	logger     *slog.Logger
	stats      *syncStats
	events     *observerQueue
	ownsEvents bool
}

func NewMissingKeyCollector(store *ResourceFileStore, cfg Config) (*MissingKeyCollector, error) {
	cfg = cfg.withDefaults()
	stats := newSyncStats(cfg.StatsMaxKeys, cfg.NowFn)
	collector, err := newMissingKeyCollector(store, cfg, stats, newObserverQueue(cfg.Observer, cfg.ObserverBuffer, stats))
	if err != nil {
		return nil, err
	}
	collector.ownsEvents = true
	return collector, nil
}

func newMissingKeyCollector(store *ResourceFileStore, cfg Config, stats *syncStats, events *observerQueue) (*MissingKeyCollector, error) {
	logger := cfg.Logger.With(slog.String("component", "missing_keys"))
	pool, err := ants.NewPool(cfg.FlushConcurrency, ants.WithPanicHandler(func(p any) {
		logger.Error("merge task panicked", slog.Any("panic", p))
	}))
	if err != nil {
		return nil, fmt.Errorf("create flush pool: %w", err)
	}

	c := &MissingKeyCollector{
		store:    store,
		merge:    store.Merge,
		language: cfg.Language,
		pending:  map[string]map[string]string{},
		pool:     pool,
		logger:   logger,
		stats:    stats,
		events:   events,
	}
	c.flushTask = NewDebouncedTask(cfg.FlushQuietPeriod, func(struct{}) {
		if err := c.Flush(context.Background()); err != nil {
			c.logger.Debug("flush finished with failures", slog.Any("error", err))
		}
	})
	return c, nil
}

// OnMissingKey records key with its fallback and schedules a flush. languages is the
// engine's lookup chain; only the active language's files are written.
func (c *MissingKeyCollector) OnMissingKey(languages []string, namespace string, key string, fallback string) {
	if key == "" {
		return
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}

	c.mu.Lock()
	keys, found := c.pending[namespace]
	if !found {
		keys = map[string]string{}
		c.pending[namespace] = keys
	}
	keys[key] = fallback
	c.mu.Unlock()

	c.stats.incrementMissingKey(namespace)
	c.logger.Debug("missing key recorded",
		slog.String("namespace", namespace),
		slog.String("key", key),
		slog.Any("languages", languages),
	)
	c.flushTask.Schedule(struct{}{})
}

// SetLanguage changes the language written by subsequent flushes.
func (c *MissingKeyCollector) SetLanguage(lang string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.language = lang
}

func (c *MissingKeyCollector) Language() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.language
}

// PendingKeys returns a copy of the buffered keys.
func (c *MissingKeyCollector) PendingKeys() map[string]map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]map[string]string, len(c.pending))
	for namespace, keys := range c.pending {
		copied := make(map[string]string, len(keys))
		for k, v := range keys {
			copied[k] = v
		}
		out[namespace] = copied
	}
	return out
}

// Flush merges every buffered namespace into its resource file, concurrently across
// namespaces, and waits for all of them.
func (c *MissingKeyCollector) Flush(ctx context.Context) error {
	// one flush at a time, so no two merges touch the same file concurrently
	c.flushMu.Lock()
	defer c.flushMu.Unlock()

	c.mu.Lock()
	lang := c.language
	batch := c.pending
	c.pending = map[string]map[string]string{}
	c.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}
	if lang == "" {
		for namespace, keys := range batch {
			c.requeue(namespace, keys)
		}
		return fmt.Errorf("flush: no active language")
	}

	var (
		wg    sync.WaitGroup
		errMu sync.Mutex
		errs  []error
		retry bool
	)
	for namespace, keys := range batch {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			err := c.flushNamespace(ctx, lang, namespace, keys)
			if err == nil {
				return
			}
			errMu.Lock()
			defer errMu.Unlock()
			errs = append(errs, err)
			retry = retry || IsRetryable(err)
		}
		if err := c.pool.Submit(task); err != nil {
			task()
		}
	}
	wg.Wait()

	if retry {
		c.flushTask.Schedule(struct{}{})
	}
	return errors.Join(errs...)
}

func (c *MissingKeyCollector) flushNamespace(ctx context.Context, lang string, namespace string, keys map[string]string) error {
	logger := c.logger.With(slog.String("lang", lang), slog.String("namespace", namespace))

	var (
		added int
		err   error
	)
	if err = ctx.Err(); err == nil {
		added, err = c.merge(lang, namespace, keys)
	}
	if err != nil {
		c.requeue(namespace, keys)
		c.stats.incrementFlushFailure(lang, namespace)
		c.events.publish(observerEvent{kind: observerEventFlushFailure, lang: lang, namespace: namespace, err: err})
		if IsRetryable(err) {
			logger.Info("resource file busy, missing translations kept for retry", slog.Any("error", err))
		} else {
			logger.Warn("failed to insert missing translations", slog.Any("error", err))
		}
		return err
	}

	c.stats.recordFlush(lang, namespace, added)
	c.events.publish(observerEvent{kind: observerEventFlush, lang: lang, namespace: namespace, added: added})
	if added > 0 {
		logger.Info("missing translations inserted", slog.Int("added", added))
	}
	return nil
}

// requeue puts a failed batch back. Keys recorded while the batch was being written win.
func (c *MissingKeyCollector) requeue(namespace string, keys map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	current, found := c.pending[namespace]
	if !found {
		current = map[string]string{}
		c.pending[namespace] = current
	}
	for k, v := range keys {
		if _, exists := current[k]; !exists {
			current[k] = v
		}
	}
}

func (c *MissingKeyCollector) Stats() Stats {
	return c.stats.snapshot()
}

// Close drops the scheduled flush, waits for a running one and releases the worker pool.
// Buffered keys that were not flushed are discarded.
func (c *MissingKeyCollector) Close() {
	c.flushTask.Close()
	c.pool.Release()
	if c.ownsEvents {
		c.events.close()
	}
}
