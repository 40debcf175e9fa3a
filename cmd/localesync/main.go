package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	sub := os.Args[1]
	args := os.Args[2:]
	var err error
	switch sub {
	case "languages":
		cfg, e := parseLanguagesFlags(args)
		if e != nil {
			err = e
			break
		}
		err = runLanguages(cfg, os.Stdout)
	case "create":
		cfg, e := parseCreateFlags(args)
		if e != nil {
			err = e
			break
		}
		err = runCreate(cfg)
	case "merge":
		cfg, e := parseMergeFlags(args)
		if e != nil {
			err = e
			break
		}
		err = runMerge(cfg)
	case "watch":
		cfg, e := parseWatchFlags(args)
		if e != nil {
			err = e
			break
		}
		err = runWatch(cfg)
	case "help", "-h", "--help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "localesync: unknown subcommand %q\n", sub)
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "localesync: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `localesync - keep translation files in sync with a running application

usage: localesync <command> [options]

commands:
  languages  List the languages found under the locales root.
  create     Create a language directory with an empty common namespace.
  merge      Add keys to a namespace file without touching existing ones.
  watch      Capture missing keys and reload edited files until interrupted.

Use 'localesync <command> -h' for command-specific flags.
`)
}
