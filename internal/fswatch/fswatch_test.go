package fswatch

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/loopcontext/localesync"
)

type eventLog struct {
	mu     sync.Mutex
	events []localesync.WatchEvent
}

func (l *eventLog) add(evt localesync.WatchEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, evt)
}

func (l *eventLog) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

func (l *eventLog) paths() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.events))
	for _, evt := range l.events {
		out = append(out, evt.Path)
	}
	return out
}

func TestWatcher_deliversDirectoryEvents(t *testing.T) {
	dir := t.TempDir()
	log := &eventLog{}

	session, err := New(nil).Subscribe(dir, log.add)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	defer session.Close()

	path := filepath.Join(dir, "common.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for log.len() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if log.len() == 0 {
		t.Fatal("no event delivered for a new file")
	}
	for _, p := range log.paths() {
		if p != path {
			t.Errorf("event for %q, want %q", p, path)
		}
	}
}

func TestWatcher_noDeliveryAfterClose(t *testing.T) {
	dir := t.TempDir()
	var delivered atomic.Int32

	session, err := New(nil).Subscribe(dir, func(localesync.WatchEvent) { delivered.Add(1) })
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	if err := session.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := session.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "ui.json"), []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)
	if n := delivered.Load(); n != 0 {
		t.Errorf("%d events delivered after Close", n)
	}
}

func TestWatcher_missingDirectory(t *testing.T) {
	_, err := New(nil).Subscribe(filepath.Join(t.TempDir(), "absent"), func(localesync.WatchEvent) {})
	if err == nil {
		t.Fatal("Subscribe() on a missing directory succeeded")
	}
}
