
package fetcher

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/html/charset"
)

const (
	DefaultBaseURL   = "https://www.britannica.com/dictionary"
	DefaultTimeout   = 10 * time.Second
	DefaultSizeCap   = 5 * 1024 * 1024
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Result is the raw upstream answer. Non-200 statuses are not errors.
type Result struct {
	URL        string
	StatusCode int
	Body       string
}

type Options struct {
	BaseURL     string
	UserAgent   string
	Timeout     time.Duration
	DialTimeout time.Duration
	SizeCap     int64
}

type HTTPClient struct {
	client    *http.Client
	baseURL   string
	userAgent string
	sizeCap   int64
	log       zerolog.Logger
}

func NewHTTPClient(opts Options, logger zerolog.Logger) *HTTPClient {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = 5 * time.Second
	}
	if opts.SizeCap <= 0 {
		opts.SizeCap = DefaultSizeCap
	}
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   opts.DialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &HTTPClient{
		client: &http.Client{
			Transport: transport,
			Timeout:   opts.Timeout,
		},
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		userAgent: opts.UserAgent,
		sizeCap:   opts.SizeCap,
		log:       logger.With().Str("component", "fetcher").Logger(),
	}
}

// Normalize trims and lowercases a word. It is also the cache key.
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// WordURL builds the dictionary page URL for word. The normalized word is
// escaped as a single path segment, so "a/b" stays one segment.
func WordURL(baseURL, word string) string {
	return strings.TrimRight(baseURL, "/") + "/" + url.PathEscape(Normalize(word))
}

// Fetch downloads the dictionary page for word. Any HTTP response,
// whatever its status, is returned as a Result; only transport failures
// are errors, always of type *FetchError.
func (h *HTTPClient) Fetch(ctx context.Context, word string) (Result, error) {
	start := time.Now()
	target := WordURL(h.baseURL, word)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Result{}, newNetworkError(err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("User-Agent", h.userAgent)

	h.log.Info().Str("word", word).Str("url", target).Msg("fetching definition")

	resp, err := h.client.Do(req)
	if err != nil {
		return Result{}, classify(err)
	}
	defer resp.Body.Close()

	var body io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return Result{}, newNetworkError(fmt.Errorf("gzip: %w", err))
		}
		defer gz.Close()
		body = gz
	}

	// enforce a size cap
	body = io.LimitReader(body, h.sizeCap)

	utf8Body, err := charset.NewReader(body, resp.Header.Get("Content-Type"))
	if err != nil {
		// unknown charset label, keep the raw bytes
		utf8Body = body
	}
	data, err := io.ReadAll(utf8Body)
	if err != nil {
		return Result{}, classify(err)
	}

	h.log.Debug().
		Str("word", word).
		Int("status", resp.StatusCode).
		Int("bytes", len(data)).
		Dur("elapsed", time.Since(start)).
		Msg("upstream responded")

	return Result{
		URL:        target,
		StatusCode: resp.StatusCode,
		Body:       string(data),
	}, nil
}

func classify(err error) error {
	if isTimeout(err) {
		return &FetchError{Kind: KindTimeout, Err: err}
	}
	return newNetworkError(err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
