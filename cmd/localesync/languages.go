package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/loopcontext/localesync"
)

type languagesConfig struct {
	root string
}

type createConfig struct {
	root string
	lang string
}

func parseLanguagesFlags(args []string) (*languagesConfig, error) {
	fs := flag.NewFlagSet("languages", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: localesync languages [-root DIR]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	var cfg languagesConfig
	fs.StringVar(&cfg.root, "root", "./locales", "Locales root directory.")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func runLanguages(cfg *languagesConfig, out io.Writer) error {
	for _, lang := range localesync.NewResourceFileStore(cfg.root).KnownLanguages() {
		if _, err := fmt.Fprintln(out, lang); err != nil {
			return err
		}
	}
	return nil
}

func parseCreateFlags(args []string) (*createConfig, error) {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `usage: localesync create -lang CODE [-root DIR]

Creates <root>/<lang>/ with an empty common.json. An existing common.json is kept.

Flags:
`)
		fs.PrintDefaults()
	}
	var cfg createConfig
	fs.StringVar(&cfg.root, "root", "./locales", "Locales root directory.")
	fs.StringVar(&cfg.lang, "lang", "", "Language code (e.g. de, pt-BR). Required.")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func runCreate(cfg *createConfig) error {
	if cfg.lang == "" {
		return fmt.Errorf("create: -lang is required")
	}
	store := localesync.NewResourceFileStore(cfg.root)
	if err := store.CreateLanguage(cfg.lang); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "localesync: created %s\n", store.LanguageDir(cfg.lang))
	return nil
}
