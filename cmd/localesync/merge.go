package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/loopcontext/localesync"
)

// mergeConfig holds flags for the merge command.
type mergeConfig struct {
	root      string
	lang      string
	namespace string
	pairs     []string
}

func parseMergeFlags(args []string) (*mergeConfig, error) {
	fs := flag.NewFlagSet("merge", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `usage: localesync merge -lang CODE [-ns NAMESPACE] [-root DIR] key=value...

Adds each key to <root>/<lang>/<ns>.json with value as its text. Keys that already exist
keep their current text.

Flags:
`)
		fs.PrintDefaults()
	}
	var cfg mergeConfig
	fs.StringVar(&cfg.root, "root", "./locales", "Locales root directory.")
	fs.StringVar(&cfg.lang, "lang", "", "Language code. Required.")
	fs.StringVar(&cfg.namespace, "ns", localesync.DefaultNamespace, "Namespace file name without .json.")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.pairs = fs.Args()
	return &cfg, nil
}

func parsePairs(pairs []string) (map[string]string, error) {
	keys := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return nil, fmt.Errorf("invalid pair %q, expected key=value", pair)
		}
		keys[key] = value
	}
	return keys, nil
}

func runMerge(cfg *mergeConfig) error {
	if cfg.lang == "" {
		return fmt.Errorf("merge: -lang is required")
	}
	keys, err := parsePairs(cfg.pairs)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return fmt.Errorf("merge: no key=value pairs given")
	}
	store := localesync.NewResourceFileStore(cfg.root)
	if !store.HasLanguage(cfg.lang) {
		return fmt.Errorf("merge: language %s does not exist under %s", cfg.lang, cfg.root)
	}
	added, err := store.Merge(cfg.lang, cfg.namespace, keys)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "localesync: added %d key(s) to %s/%s\n", added, cfg.lang, cfg.namespace)
	return nil
}
