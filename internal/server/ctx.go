package server

import (
	"net/http"
	"time"

	"github.com/woozymasta/tofixlint/internal/config"
	"github.com/woozymasta/tofixlint/internal/tofix"

	"github.com/rs/zerolog/log"
)

// defaultMaxBodySize limits uploaded documents.
const defaultMaxBodySize = 32 << 20

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config      *config.Config
	Validator   *tofix.Validator
	Client      *http.Client
	MaxBodySize int64
}

// NewServerContext initializes the context for the configured collections.
func NewServerContext(cfg *config.Config, client *http.Client) *ServerContext {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if client == nil {
		timeout := 15 * time.Second
		if cfg.Timeout > 0 {
			timeout = time.Duration(cfg.Timeout) * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}

	for _, c := range cfg.Collections {
		log.Debug().
			Str("collection", c.Name).
			Bool("inline", c.Inline != nil).
			Str("path", c.Path).
			Str("url", c.URL).
			Msg("Collection registered")
	}

	log.Info().
		Int("collections", len(cfg.Collections)).
		Int("concurrency", cfg.Concurrency).
		Msg("Server context initialized successfully")

	return &ServerContext{
		Config:      cfg,
		Validator:   tofix.New(),
		Client:      client,
		MaxBodySize: defaultMaxBodySize,
	}
}
