// Package server handles HTTP requests and middleware.
package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/woozymasta/tofixlint/internal/config"
	"github.com/woozymasta/tofixlint/internal/processor"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

type errorResponse struct {
	Error string `json:"error"`
}

// HandleValidate validates a FeatureCollection posted in the request body.
// JSON and YAML bodies are accepted. It answers 200 for a valid document,
// 422 with the findings otherwise.
func (s *ServerContext) HandleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	body := http.MaxBytesReader(w, r.Body, s.MaxBodySize)
	src, err := processor.LoadReader("request", body, formatFromContentType(r.Header.Get("Content-Type")))
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	report := processor.Validate(s.Validator, src)
	status := http.StatusOK
	if !report.Valid {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, report)
}

// HandleCollections validates the configured collections.
// The optional "name" query parameters limit the run to those collections.
func (s *ServerContext) HandleCollections(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	cols := s.Config.Collections
	if names := r.URL.Query()["name"]; len(names) > 0 {
		cols = selectCollections(cols, names)
		if len(cols) == 0 {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "no such collection"})
			return
		}
	}

	reports := processor.ValidateAll(s.Client, s.Validator, cols, s.Config.Concurrency)
	writeJSON(w, http.StatusOK, reports)
}

func selectCollections(all []config.Collection, names []string) []config.Collection {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	selected := make([]config.Collection, 0, len(names))
	for _, c := range all {
		if wanted[c.Name] {
			selected = append(selected, c)
		}
	}

	return selected
}

// formatFromContentType maps a request content type to a document format.
// Unknown types are left for content sniffing.
func formatFromContentType(ct string) string {
	ct = strings.ToLower(ct)
	switch {
	case strings.Contains(ct, "yaml"):
		return "yaml"
	case strings.Contains(ct, "json"):
		return "json"
	default:
		return ""
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Ignoring error as we cannot handle client disconnects
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Trace().Err(err).Msg("Failed to write response")
	}
}
