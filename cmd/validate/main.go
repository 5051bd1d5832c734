package main

import (
	"net/http"
	"os"
	"time"

	"github.com/woozymasta/tofixlint/internal/config"
	"github.com/woozymasta/tofixlint/internal/logger"
	"github.com/woozymasta/tofixlint/internal/processor"
	"github.com/woozymasta/tofixlint/internal/tofix"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

// Exit codes.
const (
	exitInvalid    = 1
	exitLoadFailed = 2
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile  string   `short:"c" long:"config"      env:"CONFIG_FILE"  description:"Path to configuration file with collections to validate"`
	Limit       []string `short:"l" long:"limit"       env:"LIMIT_NAMES"  description:"Limit validation to specific collection names"`
	Input       string   `short:"i" long:"input-format"                   description:"Format of files and stdin, guessed when empty" choice:"json" choice:"yaml"`
	Output      string   `short:"f" long:"format"      env:"OUTPUT_FORMAT" description:"Report format" choice:"text" choice:"json" choice:"yaml" default:"text"`
	Concurrency int      `short:"p" long:"concurrency" env:"CONCURRENCY"  description:"Concurrency" default:"4"`
	Timeout     int      `short:"t" long:"timeout"     env:"TIMEOUT"      description:"HTTP fetch timeout in seconds" default:"15"`

	Args struct {
		Files []string `positional-arg-name:"FILE" description:"GeoJSON or YAML files, - for stdin"`
	} `positional-args:"yes"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(exitLoadFailed)
	}

	opts.Logger.Setup()

	var cols []config.Collection
	if opts.ConfigFile != "" {
		cfg, err := config.Load(opts.ConfigFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
		if cfg.Concurrency > 0 {
			opts.Concurrency = cfg.Concurrency
		}
		if cfg.Timeout > 0 {
			opts.Timeout = cfg.Timeout
		}
		cols = limitCollections(cfg.Collections, opts.Limit)
	}

	for _, file := range opts.Args.Files {
		if file == "-" {
			continue
		}
		cols = append(cols, config.Collection{Name: file, Path: file, Format: opts.Input})
	}

	useStdin := len(cols) == 0 && opts.ConfigFile == ""
	for _, file := range opts.Args.Files {
		if file == "-" {
			useStdin = true
		}
	}

	client := &http.Client{Timeout: time.Duration(opts.Timeout) * time.Second}
	validator := tofix.New()

	log.Debug().
		Int("collections", len(cols)).
		Bool("stdin", useStdin).
		Msg("Starting validation")

	reports := processor.ValidateAll(client, validator, cols, opts.Concurrency)

	if useStdin {
		src, err := processor.LoadReader("stdin", os.Stdin, opts.Input)
		if err != nil {
			log.Error().Err(err).Msg("Failed to read stdin")
			reports = append(reports, processor.Report{Name: "stdin", LoadError: err.Error()})
		} else {
			reports = append(reports, processor.Validate(validator, src))
		}
	}

	if err := processor.WriteReports(os.Stdout, reports, opts.Output); err != nil {
		log.Fatal().Err(err).Msg("Failed to write report")
	}

	invalid, unloaded := processor.Failed(reports)
	log.Info().
		Int("total", len(reports)).
		Int("invalid", invalid).
		Int("unloaded", unloaded).
		Msg("Validation finished")

	switch {
	case unloaded > 0:
		os.Exit(exitLoadFailed)
	case invalid > 0:
		os.Exit(exitInvalid)
	}
}

// limitCollections keeps the named collections, in the order given.
func limitCollections(all []config.Collection, names []string) []config.Collection {
	if len(names) == 0 {
		return all
	}

	available := make(map[string]config.Collection, len(all))
	for _, c := range all {
		available[c.Name] = c
	}

	selected := make([]config.Collection, 0, len(names))
	seen := make(map[string]bool)
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		if c, ok := available[name]; ok {
			selected = append(selected, c)
		} else {
			log.Error().
				Str("name", name).
				Msg("Collection specified in --limit not found in configuration")
		}
	}

	return selected
}
