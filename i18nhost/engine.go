// Package i18nhost is a translation engine over go-i18n that reads its resources from a
// localesync store, reports missing keys and reloads on request. It implements
// localesync.Engine.
package i18nhost

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/loopcontext/localesync"
)

// resources are plain text; these delimiters never occur in them, so go-i18n does not
// try to parse "{{name}}" placeholders as templates
const (
	literalLeftDelim  = "\x00{{"
	literalRightDelim = "}}\x00"
)

// MessageID joins a namespace and a key into a bundle message id.
func MessageID(namespace string, key string) string {
	if namespace == "" {
		namespace = localesync.DefaultNamespace
	}
	return namespace + ":" + key
}

type Engine struct {
	store       *localesync.ResourceFileStore
	fallback    string
	logger      *slog.Logger
	saveMissing atomic.Bool

	mu       sync.RWMutex
	bundle   *i18n.Bundle
	language string
	loaded   map[string]struct{}

	subMu        sync.Mutex
	nextSub      uint64
	missingSubs  map[uint64]func(localesync.MissingKeyEvent)
	languageSubs map[uint64]func(string)
}

// New loads the fallback language and makes it the current language.
func New(store *localesync.ResourceFileStore, fallback string, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if _, err := language.Parse(fallback); err != nil {
		return nil, fmt.Errorf("invalid fallback language %q: %w", fallback, err)
	}
	e := &Engine{
		store:        store,
		fallback:     fallback,
		logger:       logger.With(slog.String("component", "i18nhost")),
		language:     fallback,
		loaded:       map[string]struct{}{fallback: {}},
		missingSubs:  map[uint64]func(localesync.MissingKeyEvent){},
		languageSubs: map[uint64]func(string){},
	}
	bundle, err := e.buildBundle([]string{fallback})
	e.bundle = bundle
	return e, err
}

func (e *Engine) buildBundle(languages []string) (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.MustParse(e.fallback))
	var errs []error
	for _, lang := range languages {
		if err := e.loadLanguage(bundle, lang); err != nil {
			errs = append(errs, err)
		}
	}
	return bundle, errors.Join(errs...)
}

func (e *Engine) loadLanguage(bundle *i18n.Bundle, lang string) error {
	tag, err := language.Parse(lang)
	if err != nil {
		return fmt.Errorf("invalid language %q: %w", lang, err)
	}
	if !e.store.HasLanguage(lang) {
		return nil
	}
	namespaces, err := e.store.Namespaces(lang)
	if err != nil {
		return err
	}
	var errs []error
	for _, namespace := range namespaces {
		entries, err := e.store.ReadNamespace(lang, namespace)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		messages := make([]*i18n.Message, 0, len(entries))
		for key, text := range entries {
			messages = append(messages, &i18n.Message{
				ID:         MessageID(namespace, key),
				Other:      text,
				LeftDelim:  literalLeftDelim,
				RightDelim: literalRightDelim,
			})
		}
		if err := bundle.AddMessages(tag, messages...); err != nil {
			errs = append(errs, fmt.Errorf("add %s/%s: %w", lang, namespace, err))
		}
	}
	return errors.Join(errs...)
}

func (e *Engine) Language() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.language
}

// ChangeLanguage loads lang, makes it current and notifies language subscribers.
func (e *Engine) ChangeLanguage(ctx context.Context, lang string) error {
	if _, err := language.Parse(lang); err != nil {
		return fmt.Errorf("invalid language %q: %w", lang, err)
	}
	e.mu.Lock()
	e.language = lang
	_, known := e.loaded[lang]
	e.loaded[lang] = struct{}{}
	e.mu.Unlock()

	var err error
	if !known {
		err = e.ReloadResources(ctx, lang)
	}
	for _, fn := range e.languageSubscribers() {
		fn(lang)
	}
	return err
}

// ReloadResources rebuilds the bundle from disk. Languages not loaded before are added.
func (e *Engine) ReloadResources(ctx context.Context, languages ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.mu.Lock()
	for _, lang := range languages {
		e.loaded[lang] = struct{}{}
	}
	all := make([]string, 0, len(e.loaded))
	for lang := range e.loaded {
		all = append(all, lang)
	}
	e.mu.Unlock()
	sort.Strings(all)

	bundle, err := e.buildBundle(all)
	e.mu.Lock()
	e.bundle = bundle
	e.mu.Unlock()
	if err != nil {
		e.logger.Warn("some resources could not be loaded", slog.Any("error", err))
	}
	return err
}

// Localize resolves key in namespace for the current language. When the current language has
// no entry the key is reported as missing (while save-missing is on) and the fallback
// language's text, or fallback itself, is returned.
func (e *Engine) Localize(namespace string, key string, fallback string) string {
	e.mu.RLock()
	bundle := e.bundle
	lang := e.language
	e.mu.RUnlock()

	chain := []string{lang}
	if lang != e.fallback {
		chain = append(chain, e.fallback)
	}
	localizer := i18n.NewLocalizer(bundle, chain...)
	text, tag, err := localizer.LocalizeWithTag(&i18n.LocalizeConfig{MessageID: MessageID(namespace, key)})

	var notFound *i18n.MessageNotFoundErr
	switch {
	case errors.As(err, &notFound):
		text = fallback
	case err != nil:
		e.logger.Warn("could not localize message",
			slog.String("namespace", namespace),
			slog.String("key", key),
			slog.Any("error", err),
		)
		return fallback
	case sameLanguage(tag, lang):
		return text
	}

	e.reportMissing(localesync.MissingKeyEvent{
		Languages: chain,
		Namespace: namespace,
		Key:       key,
		Fallback:  text,
	})
	return text
}

func sameLanguage(tag language.Tag, lang string) bool {
	want, err := language.Parse(lang)
	if err != nil {
		return false
	}
	return tag == want
}

func (e *Engine) reportMissing(evt localesync.MissingKeyEvent) {
	if !e.saveMissing.Load() {
		return
	}
	for _, fn := range e.missingSubscribers() {
		fn(evt)
	}
}

func (e *Engine) SetSaveMissing(enabled bool) {
	e.saveMissing.Store(enabled)
}

func (e *Engine) SaveMissing() bool {
	return e.saveMissing.Load()
}

func (e *Engine) SubscribeMissingKey(fn func(localesync.MissingKeyEvent)) func() {
	e.subMu.Lock()
	defer e.subMu.Unlock()
	e.nextSub++
	id := e.nextSub
	e.missingSubs[id] = fn
	return func() {
		e.subMu.Lock()
		defer e.subMu.Unlock()
		delete(e.missingSubs, id)
	}
}

func (e *Engine) SubscribeLanguageChanged(fn func(string)) func() {
	e.subMu.Lock()
	defer e.subMu.Unlock()
	e.nextSub++
	id := e.nextSub
	e.languageSubs[id] = fn
	return func() {
		e.subMu.Lock()
		defer e.subMu.Unlock()
		delete(e.languageSubs, id)
	}
}

func (e *Engine) missingSubscribers() []func(localesync.MissingKeyEvent) {
	e.subMu.Lock()
	defer e.subMu.Unlock()
	out := make([]func(localesync.MissingKeyEvent), 0, len(e.missingSubs))
	for _, fn := range e.missingSubs {
		out = append(out, fn)
	}
	return out
}

func (e *Engine) languageSubscribers() []func(string) {
	e.subMu.Lock()
	defer e.subMu.Unlock()
	out := make([]func(string), 0, len(e.languageSubs))
	for _, fn := range e.languageSubs {
		out = append(out, fn)
	}
	return out
}
