package rest

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"dictproxy/internal/fetcher"
	"dictproxy/internal/lookup"
	"dictproxy/internal/models"
)

const (
	msgNotFound   = "No definition found"
	msgTimeout    = "Request timed out"
	msgUnexpected = "An unexpected error occurred"
)

//go:embed static/index.html
var landingPage []byte

// Lookuper resolves a word into dictionary entries.
type Lookuper interface {
	Lookup(ctx context.Context, word string) ([]models.Entry, error)
}

type DictionaryHandler struct {
	svc Lookuper
}

func NewDictionaryHandler(svc Lookuper) *DictionaryHandler {
	return &DictionaryHandler{svc: svc}
}

// Home serves the static landing page.
func (h *DictionaryHandler) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(landingPage)
}

// Lookup handles GET /x/{word}.
func (h *DictionaryHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	word := r.PathValue("word")
	entries, err := h.svc.Lookup(r.Context(), word)
	if err != nil {
		writeLookupError(r.Context(), w, word, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// writeLookupError maps the lookup error taxonomy onto HTTP responses.
func writeLookupError(ctx context.Context, w http.ResponseWriter, word string, err error) {
	log := zerolog.Ctx(ctx)

	var (
		upstream *lookup.UpstreamError
		fetchErr *fetcher.FetchError
	)
	switch {
	case errors.Is(err, lookup.ErrNotFound):
		log.Info().Str("word", word).Msg("no definition found")
		writeError(w, http.StatusNotFound, msgNotFound)

	case errors.As(err, &upstream):
		msg := fmt.Sprintf("Failed to fetch definition. Status code: %d", upstream.StatusCode)
		log.Error().Str("word", word).Int("upstream_status", upstream.StatusCode).Msg(msg)
		writeError(w, forwardStatus(upstream.StatusCode), msg)

	case errors.As(err, &fetchErr) && fetchErr.Kind == fetcher.KindTimeout:
		log.Error().Str("word", word).Msg("request timed out")
		writeError(w, http.StatusGatewayTimeout, msgTimeout)

	case errors.As(err, &fetchErr):
		log.Error().Str("word", word).Str("cause", fetchErr.Cause()).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch definition: "+fetchErr.Cause())

	default:
		log.Error().Err(err).Str("word", word).Msg("unexpected error")
		writeError(w, http.StatusInternalServerError, msgUnexpected)
	}
}

// forwardStatus keeps the upstream status unless it cannot be sent as a
// final response.
func forwardStatus(code int) int {
	if code < 200 || code > 599 {
		return http.StatusBadGateway
	}
	return code
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, models.ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
