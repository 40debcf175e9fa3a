package localesync_test

import (
	"context"
	"os"
	"time"

	"github.com/loopcontext/localesync"
	"github.com/loopcontext/localesync/i18nhost"
	"github.com/loopcontext/localesync/internal/fswatch"
	"github.com/loopcontext/localesync/test"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

const (
	flushQuiet  = 50 * time.Millisecond
	reloadQuiet = 150 * time.Millisecond
)

var _ = Describe("Locale sync", func() {
	var (
		root     string
		store    *localesync.ResourceFileStore
		engine   *i18nhost.Engine
		syncer   *localesync.Syncer
		observer *test.RecordingObserver
		ctx      context.Context
	)

	readCommon := func(lang string) func() map[string]string {
		return func() map[string]string {
			entries, err := store.ReadNamespace(lang, "common")
			if err != nil {
				return nil
			}
			return entries
		}
	}
	reloads := func(lang string) func() int {
		return func() int {
			return syncer.Stats().Reloads[lang]
		}
	}

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		root, err = os.MkdirTemp("", "localesync-suite-*")
		Expect(err).NotTo(HaveOccurred())
		Expect(test.WriteResource(root, "en", "common", `{"a":"A"}`)).To(Succeed())

		store = localesync.NewResourceFileStore(root)
		engine, err = i18nhost.New(store, "en", nil)
		Expect(err).NotTo(HaveOccurred())

		observer = &test.RecordingObserver{}
		syncer, err = localesync.NewSyncer(localesync.Config{
			LocalesRoot:       root,
			FlushQuietPeriod:  flushQuiet,
			ReloadQuietPeriod: reloadQuiet,
			Observer:          observer,
		}, engine, fswatch.New(nil))
		Expect(err).NotTo(HaveOccurred())
		Expect(syncer.Start(ctx)).To(Succeed())
	})

	AfterEach(func() {
		syncer.Close()
		Expect(os.RemoveAll(root)).To(Succeed())
	})

	It("should watch the active language after start", func() {
		lang, watching := syncer.Coordinator().State()
		Expect(lang).To(Equal("en"))
		Expect(watching).To(BeTrue())
		Expect(engine.SaveMissing()).To(BeTrue())
	})

	It("should write a missing key next to the existing ones", func() {
		Expect(engine.Localize("common", "b", "B")).To(Equal("B"))

		Eventually(readCommon("en"), "2s", "20ms").Should(Equal(map[string]string{"a": "A", "b": "B"}))
		Eventually(observer.Flushes, "2s", "20ms").Should(ContainElement("en/common:1"))
	})

	It("should reload the written key into the engine", func() {
		engine.Localize("common", "b", "B")
		Eventually(readCommon("en"), "2s", "20ms").Should(HaveKeyWithValue("b", "B"))

		Eventually(func() string {
			return engine.Localize("common", "b", "fallback")
		}, "3s", "50ms").Should(Equal("B"))
	})

	It("should never overwrite an existing key", func() {
		syncer.Collector().OnMissingKey([]string{"en"}, "common", "a", "Z")
		Expect(syncer.Collector().Flush(ctx)).To(Succeed())

		Expect(readCommon("en")()).To(Equal(map[string]string{"a": "A"}))
		Expect(syncer.Collector().PendingKeys()).To(BeEmpty())
	})

	It("should coalesce a burst of edits into one reload", func() {
		syncer.ResetStats()
		for _, text := range []string{"A1", "A2", "A3"} {
			Expect(test.WriteResource(root, "en", "common", `{"a":"`+text+`"}`)).To(Succeed())
			time.Sleep(10 * time.Millisecond)
		}

		Eventually(func() string {
			return engine.Localize("common", "a", "x")
		}, "3s", "50ms").Should(Equal("A3"))
		Eventually(reloads("en"), "2s", "20ms").Should(Equal(1))
		Consistently(reloads("en"), 3*reloadQuiet, "50ms").Should(Equal(1))
	})

	Context("when switching to a language without a directory", func() {
		BeforeEach(func() {
			Expect(engine.ChangeLanguage(ctx, "it")).To(Succeed())
			syncer.ResetStats()
		})

		It("should stop watching and disable capture", func() {
			lang, watching := syncer.Coordinator().State()
			Expect(lang).To(Equal("it"))
			Expect(watching).To(BeFalse())
			Expect(engine.SaveMissing()).To(BeFalse())
		})

		It("should ignore missing keys and edits of the previous language", func() {
			engine.Localize("common", "zzz", "Z")
			Expect(test.WriteResource(root, "en", "common", `{"a":"edited"}`)).To(Succeed())

			Consistently(syncer.Collector().PendingKeys, 3*flushQuiet, "20ms").Should(BeEmpty())
			Consistently(reloads("en"), 2*reloadQuiet, "50ms").Should(Equal(0))
			Expect(readCommon("en")()).To(Equal(map[string]string{"a": "edited"}))
		})

		It("should re-arm once the language is created", func() {
			Expect(store.CreateLanguage("it")).To(Succeed())
			Expect(engine.ChangeLanguage(ctx, "it")).To(Succeed())

			lang, watching := syncer.Coordinator().State()
			Expect(lang).To(Equal("it"))
			Expect(watching).To(BeTrue())
			Expect(engine.SaveMissing()).To(BeTrue())

			Expect(engine.Localize("common", "a", "A")).To(Equal("A"))
			Eventually(readCommon("it"), "2s", "20ms").Should(Equal(map[string]string{"a": "A"}))
		})
	})
})
