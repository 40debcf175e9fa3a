package test

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/loopcontext/localesync"
)

// WriteResource writes content to <root>/<lang>/<namespace>.json, creating the language directory.
func WriteResource(root string, lang string, namespace string, content string) error {
	dir := filepath.Join(root, lang)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, namespace+".json"), []byte(content), 0o644)
}

// RecordingObserver keeps every notification it receives.
type RecordingObserver struct {
	mu            sync.Mutex
	flushes       []string
	flushFailures []error
	reloads       []string
	unavailable   []string
}

var _ localesync.Observer = (*RecordingObserver)(nil)

func (o *RecordingObserver) OnFlush(lang string, namespace string, added int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.flushes = append(o.flushes, fmt.Sprintf("%s/%s:%d", lang, namespace, added))
}

func (o *RecordingObserver) OnFlushFailure(lang string, namespace string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.flushFailures = append(o.flushFailures, err)
}

func (o *RecordingObserver) OnReload(lang string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	result := "ok"
	if err != nil {
		result = "error"
	}
	o.reloads = append(o.reloads, lang+":"+result)
}

func (o *RecordingObserver) OnWatchUnavailable(lang string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.unavailable = append(o.unavailable, lang)
}

func (o *RecordingObserver) Flushes() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.flushes...)
}

func (o *RecordingObserver) FlushFailures() []error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]error(nil), o.flushFailures...)
}

func (o *RecordingObserver) Reloads() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.reloads...)
}

func (o *RecordingObserver) Unavailable() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.unavailable...)
}

// FakeWatcher is a DirectoryWatcher whose events are emitted by the test.
type FakeWatcher struct {
	mu       sync.Mutex
	sessions []*FakeSession
	// Err, when set, is returned by Subscribe.
	Err error
}

var _ localesync.DirectoryWatcher = (*FakeWatcher)(nil)

func (w *FakeWatcher) Subscribe(dir string, onEvent func(localesync.WatchEvent)) (localesync.WatchSession, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Err != nil {
		return nil, w.Err
	}
	s := &FakeSession{Dir: dir, onEvent: onEvent}
	w.sessions = append(w.sessions, s)
	return s, nil
}

func (w *FakeWatcher) Sessions() []*FakeSession {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]*FakeSession(nil), w.sessions...)
}

// Open returns the sessions that are not closed.
func (w *FakeWatcher) Open() []*FakeSession {
	var open []*FakeSession
	for _, s := range w.Sessions() {
		if !s.Closed() {
			open = append(open, s)
		}
	}
	return open
}

// Last returns the most recent session, or nil.
func (w *FakeWatcher) Last() *FakeSession {
	sessions := w.Sessions()
	if len(sessions) == 0 {
		return nil
	}
	return sessions[len(sessions)-1]
}

type FakeSession struct {
	Dir     string
	mu      sync.Mutex
	onEvent func(localesync.WatchEvent)
	closed  bool
}

// Emit delivers a write event for name inside the session directory. It is a no-op once the
// session is closed.
func (s *FakeSession) Emit(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.onEvent(localesync.WatchEvent{Path: filepath.Join(s.Dir, name), Op: "WRITE"})
}

func (s *FakeSession) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *FakeSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
