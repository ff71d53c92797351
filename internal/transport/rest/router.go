package rest

import (
	"net/http"

	"github.com/rs/zerolog"

	"dictproxy/internal/config"
	"dictproxy/internal/ratelimit"
	"dictproxy/internal/transport/middleware"
)

// RouterDeps are the collaborators the HTTP surface needs. Limiter may be
// nil to disable rate limiting.
type RouterDeps struct {
	Dictionary *DictionaryHandler
	Health     *HealthHandler
	Limiter    ratelimit.Limiter
	CORS       config.CORSConfig
	Logger     zerolog.Logger
}

func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()

	limited := func(h http.HandlerFunc) http.Handler {
		if d.Limiter == nil {
			return h
		}
		return middleware.RateLimit(d.Limiter)(h)
	}

	mux.Handle("GET /{$}", limited(d.Dictionary.Home))
	mux.Handle("GET /x/{word}", limited(d.Dictionary.Lookup))
	mux.HandleFunc("GET /health", d.Health.Health)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})

	return middleware.Chain(
		middleware.RequestID(d.Logger),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(d.CORS),
	)(mux)
}
