package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/woozymasta/tofixlint/internal/config"
	"github.com/woozymasta/tofixlint/internal/logger"
	"github.com/woozymasta/tofixlint/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile  string `short:"c" long:"config"        env:"CONFIG_FILE"    description:"Path to configuration file"`
	Addr        string `short:"a" long:"addr"          env:"LISTEN_ADDRESS" description:"Address to listen on"        default:"0.0.0.0"`
	Port        int    `short:"p" long:"port"          env:"LISTEN_PORT"    description:"Port to listen on"           default:"8080"`
	MaxBodySize int64  `short:"m" long:"max-body-size" env:"MAX_BODY_SIZE"  description:"Max request body in bytes"   default:"33554432"`
	Concurrency int    `short:"j" long:"concurrency"   env:"CONCURRENCY"    description:"Collections validated in parallel" default:"4"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// Setup Logging
	opts.Logger.Setup()

	// Load Config
	cfg := &config.Config{}
	if opts.ConfigFile != "" {
		var err error
		cfg, err = config.Load(opts.ConfigFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
	}

	if cfg.Concurrency <= 0 {
		cfg.Concurrency = opts.Concurrency
	}

	srvCtx := server.NewServerContext(cfg, nil)
	if opts.MaxBodySize > 0 {
		srvCtx.MaxBodySize = opts.MaxBodySize
	}

	// Routes
	mux := http.NewServeMux()
	mux.HandleFunc("/api/validate", srvCtx.HandleValidate)
	mux.HandleFunc("/api/collections", srvCtx.HandleCollections)

	handler := server.RequestLogger(mux)

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	log.Info().
		Str("addr", listenAddr).
		Int("collections", len(cfg.Collections)).
		Int64("max_body_size", srvCtx.MaxBodySize).
		Msg("Web server started")

	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
