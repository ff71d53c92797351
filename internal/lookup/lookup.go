// Package lookup resolves a word into dictionary entries: cache first,
// then the upstream page, then extraction.
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"dictproxy/internal/cache"
	"dictproxy/internal/fetcher"
	"dictproxy/internal/models"
)

var ErrNotFound = errors.New("no definition found")

// UpstreamError is a non-200 answer from the dictionary site.
type UpstreamError struct {
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

type Fetcher interface {
	Fetch(ctx context.Context, word string) (fetcher.Result, error)
}

type Extractor interface {
	Extract(html string) []models.Entry
}

type Service struct {
	fetcher   Fetcher
	extractor Extractor
	cache     cache.Cache
}

// NewService wires the lookup pipeline. c may be nil to disable caching.
func NewService(f Fetcher, e Extractor, c cache.Cache) *Service {
	return &Service{fetcher: f, extractor: e, cache: c}
}

func (s *Service) Lookup(ctx context.Context, word string) ([]models.Entry, error) {
	log := zerolog.Ctx(ctx)
	key := fetcher.Normalize(word)

	if entries, ok := s.fromCache(ctx, key); ok {
		log.Debug().Str("word", key).Msg("cache hit")
		return entries, nil
	}

	res, err := s.fetcher.Fetch(ctx, word)
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", key, err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, &UpstreamError{StatusCode: res.StatusCode}
	}

	entries := s.extractor.Extract(res.Body)
	if len(entries) == 0 {
		return nil, ErrNotFound
	}

	s.toCache(ctx, key, entries)
	return entries, nil
}

func (s *Service) fromCache(ctx context.Context, key string) ([]models.Entry, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("word", key).Msg("cache read failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var entries []models.Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("word", key).Msg("discarding undecodable cache entry")
		return nil, false
	}
	return entries, true
}

func (s *Service) toCache(ctx context.Context, key string, entries []models.Entry) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("word", key).Msg("cannot encode entries for cache")
		return
	}
	if err := s.cache.Set(ctx, key, raw); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("word", key).Msg("cache write failed")
	}
}
