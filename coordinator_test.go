package localesync_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/loopcontext/localesync"
	"github.com/loopcontext/localesync/test"
	mock_localesync "github.com/loopcontext/localesync/test/mock"
)

const reloadQuiet = 40 * time.Millisecond

type coordinatorFixture struct {
	root     string
	watcher  *test.FakeWatcher
	reloader *mock_localesync.MockReloader
	capture  *mock_localesync.MockCaptureSwitch
	observer *test.RecordingObserver
	coord    *localesync.LanguageWatchCoordinator
}

func newCoordinatorFixture(t *testing.T, ctrl *gomock.Controller, languages ...string) *coordinatorFixture {
	t.Helper()
	root := t.TempDir()
	for _, lang := range languages {
		if err := os.MkdirAll(filepath.Join(root, lang), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	f := &coordinatorFixture{
		root:     root,
		watcher:  &test.FakeWatcher{},
		reloader: mock_localesync.NewMockReloader(ctrl),
		capture:  mock_localesync.NewMockCaptureSwitch(ctrl),
		observer: &test.RecordingObserver{},
	}
	f.coord = localesync.NewLanguageWatchCoordinator(
		localesync.NewResourceFileStore(root),
		f.watcher,
		f.reloader,
		f.capture,
		localesync.Config{LocalesRoot: root, ReloadQuietPeriod: reloadQuiet, Observer: f.observer},
	)
	return f
}

func TestLanguageWatchCoordinator_burstOfEditsReloadsOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newCoordinatorFixture(t, ctrl, "en")
	defer f.coord.Close()

	reloaded := make(chan string, 4)
	f.capture.EXPECT().SetSaveMissing(true)
	f.reloader.EXPECT().ReloadResources(gomock.Any(), "en").DoAndReturn(func(_ context.Context, languages ...string) error {
		reloaded <- languages[0]
		return nil
	}).Times(1)

	f.coord.SetLanguage(context.Background(), "en")
	session := f.watcher.Last()
	if session == nil || session.Dir != filepath.Join(f.root, "en") {
		t.Fatalf("session = %+v, want one on the en directory", session)
	}
	if lang, watching := f.coord.State(); lang != "en" || !watching {
		t.Fatalf("State() = %q, %v", lang, watching)
	}

	for _, name := range []string{"common.json", "ui.json", "common.json"} {
		session.Emit(name)
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case lang := <-reloaded:
		if lang != "en" {
			t.Errorf("reloaded %q, want en", lang)
		}
	case <-time.After(time.Second):
		t.Fatal("no reload after edits settled")
	}
	time.Sleep(3 * reloadQuiet)
	if stats := f.coord.Stats(); stats.Reloads["en"] != 1 {
		t.Errorf("Reloads = %v, want en=1", stats.Reloads)
	}
}

func TestLanguageWatchCoordinator_switchToLanguageWithoutDirectory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newCoordinatorFixture(t, ctrl, "en")
	defer f.coord.Close()

	gomock.InOrder(
		f.capture.EXPECT().SetSaveMissing(true),
		f.capture.EXPECT().SetSaveMissing(false),
	)
	f.reloader.EXPECT().ReloadResources(gomock.Any(), gomock.Any()).Times(0)

	f.coord.SetLanguage(context.Background(), "en")
	first := f.watcher.Last()
	// the edit is still settling when the language changes
	first.Emit("common.json")
	f.coord.SetLanguage(context.Background(), "xx")

	if !first.Closed() {
		t.Error("session of the previous language left open")
	}
	if open := f.watcher.Open(); len(open) != 0 {
		t.Errorf("%d sessions open, want none", len(open))
	}
	if lang, watching := f.coord.State(); lang != "xx" || watching {
		t.Errorf("State() = %q, %v, want xx without watch", lang, watching)
	}
	time.Sleep(3 * reloadQuiet)

	if stats := f.coord.Stats(); stats.WatchUnavailable["xx"] != 1 {
		t.Errorf("WatchUnavailable = %v", stats.WatchUnavailable)
	}
	if got := f.observer.Unavailable(); len(got) != 1 || got[0] != "xx" {
		t.Errorf("observer unavailable = %v", got)
	}
}

func TestLanguageWatchCoordinator_reArmsOnEveryChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newCoordinatorFixture(t, ctrl, "en", "de")
	defer f.coord.Close()

	reloaded := make(chan string, 4)
	f.capture.EXPECT().SetSaveMissing(true).Times(3)
	f.reloader.EXPECT().ReloadResources(gomock.Any(), "de").DoAndReturn(func(_ context.Context, languages ...string) error {
		reloaded <- languages[0]
		return nil
	}).Times(1)

	f.coord.SetLanguage(context.Background(), "en")
	f.coord.SetLanguage(context.Background(), "de")
	f.coord.SetLanguage(context.Background(), "de")

	sessions := f.watcher.Sessions()
	if len(sessions) != 3 {
		t.Fatalf("%d sessions opened, want 3", len(sessions))
	}
	if open := f.watcher.Open(); len(open) != 1 || open[0] != sessions[2] {
		t.Fatalf("open sessions = %v, want only the latest", open)
	}
	sessions[0].Emit("common.json")
	sessions[2].Emit("common.json")

	select {
	case lang := <-reloaded:
		if lang != "de" {
			t.Errorf("reloaded %q, want de", lang)
		}
	case <-time.After(time.Second):
		t.Fatal("no reload for de")
	}
	time.Sleep(3 * reloadQuiet)
}

func TestLanguageWatchCoordinator_subscribeFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newCoordinatorFixture(t, ctrl, "en")
	defer f.coord.Close()
	f.watcher.Err = errors.New("too many open files")

	f.capture.EXPECT().SetSaveMissing(false)

	f.coord.SetLanguage(context.Background(), "en")
	if lang, watching := f.coord.State(); lang != "en" || watching {
		t.Errorf("State() = %q, %v, want en without watch", lang, watching)
	}
	if stats := f.coord.Stats(); stats.WatchUnavailable["en"] != 1 {
		t.Errorf("WatchUnavailable = %v", stats.WatchUnavailable)
	}
}

func TestLanguageWatchCoordinator_reloadFailureIsReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newCoordinatorFixture(t, ctrl, "en")
	defer f.coord.Close()

	f.capture.EXPECT().SetSaveMissing(true)
	f.reloader.EXPECT().ReloadResources(gomock.Any(), "en").Return(errors.New("bad resource"))

	f.coord.SetLanguage(context.Background(), "en")
	f.watcher.Last().Emit("common.json")

	eventually(t, func() bool { return len(f.observer.Reloads()) == 1 })
	if got := f.observer.Reloads(); got[0] != "en:error" {
		t.Errorf("observer reloads = %v", got)
	}
	if stats := f.coord.Stats(); stats.ReloadFailures["en"] != 1 || stats.Reloads["en"] != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestLanguageWatchCoordinator_close(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newCoordinatorFixture(t, ctrl, "en", "de")

	f.capture.EXPECT().SetSaveMissing(true)
	f.reloader.EXPECT().ReloadResources(gomock.Any(), gomock.Any()).Times(0)

	f.coord.SetLanguage(context.Background(), "en")
	session := f.watcher.Last()
	session.Emit("common.json")
	f.coord.Close()

	if !session.Closed() {
		t.Error("Close left the session open")
	}
	f.coord.SetLanguage(context.Background(), "de")
	if n := len(f.watcher.Sessions()); n != 1 {
		t.Errorf("SetLanguage after Close opened a session (%d total)", n)
	}
	time.Sleep(3 * reloadQuiet)
	f.coord.Close()
}
