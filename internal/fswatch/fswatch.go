// Package fswatch subscribes to change events of a single directory using fsnotify.
package fswatch

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/loopcontext/localesync"
)

// Watcher opens one fsnotify watcher per subscription.
type Watcher struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{logger: logger.With(slog.String("component", "fswatch"))}
}

// Subscribe starts delivering events of dir to onEvent. Chmod-only events are ignored.
func (w *Watcher) Subscribe(dir string, onEvent func(localesync.WatchEvent)) (localesync.WatchSession, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	s := &session{
		watcher: watcher,
		dir:     dir,
		onEvent: onEvent,
		logger:  w.logger.With(slog.String("dir", dir)),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go s.loop()
	return s, nil
}

type session struct {
	watcher   *fsnotify.Watcher
	dir       string
	onEvent   func(localesync.WatchEvent)
	logger    *slog.Logger
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

func (s *session) loop() {
	defer close(s.done)
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			// Close may race with a buffered event
			select {
			case <-s.stop:
				return
			default:
			}
			s.onEvent(localesync.WatchEvent{Path: event.Name, Op: event.Op.String()})

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Error("file watcher error", slog.Any("error", err))

		case <-s.stop:
			return
		}
	}
}

// Close stops delivery. No event is delivered after Close returns.
func (s *session) Close() error {
	s.closeOnce.Do(func() {
		close(s.stop)
		s.closeErr = s.watcher.Close()
		<-s.done
	})
	return s.closeErr
}
