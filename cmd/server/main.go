package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"dictproxy/internal/cache"
	"dictproxy/internal/config"
	"dictproxy/internal/extractor"
	"dictproxy/internal/fetcher"
	"dictproxy/internal/lookup"
	"dictproxy/internal/ratelimit"
	"dictproxy/internal/transport/rest"
	"dictproxy/internal/version"
	"dictproxy/pkg/logger"
)

const redisConnectionTestTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	l := logger.New(cfg.Log.Level, cfg.Log.Format)

	if err := run(cfg, l); err != nil {
		l.Fatal().Err(err).Msg("server failed")
	}
}

func run(cfg *config.Config, l zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	health := map[string]rest.Pinger{}

	var rdb redis.UniversalClient
	if cfg.UsesRedis() {
		rdb = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs:    []string{cfg.Redis.Addr},
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(ctx, redisConnectionTestTimeout)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return fmt.Errorf("connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		l.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
		health["redis"] = rest.PingerFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}

	var c cache.Cache
	switch cfg.Cache.Backend {
	case config.BackendRedis:
		c = cache.NewRedis(rdb, cfg.Cache.TTL, "")
	default:
		c = cache.NewMemory(cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}

	var limiter ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		rules, err := ratelimit.ParseRules(cfg.RateLimit.Rules)
		if err != nil {
			return err
		}
		switch cfg.RateLimit.Backend {
		case config.BackendRedis:
			limiter = ratelimit.NewRedis(rdb, rules, "")
		default:
			mem := ratelimit.NewMemory(rules, cfg.RateLimit.CleanupInterval)
			defer mem.Stop()
			limiter = mem
		}
		l.Info().
			Str("backend", cfg.RateLimit.Backend).
			Str("rules", cfg.RateLimit.Rules).
			Msg("rate limiting enabled")
	}

	f := fetcher.NewHTTPClient(fetcher.Options{
		BaseURL:     cfg.Upstream.BaseURL,
		UserAgent:   cfg.Upstream.UserAgent,
		Timeout:     cfg.Upstream.Timeout,
		DialTimeout: cfg.Upstream.DialTimeout,
		SizeCap:     cfg.Upstream.MaxBodySize,
	}, l)
	svc := lookup.NewService(f, extractor.New(), c)

	router := rest.NewRouter(rest.RouterDeps{
		Dictionary: rest.NewDictionaryHandler(svc),
		Health:     rest.NewHealthHandler(version.Version, health),
		Limiter:    limiter,
		CORS:       cfg.CORS,
		Logger:     l,
	})

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		l.Info().
			Str("addr", addr).
			Str("version", version.String()).
			Str("cache", cfg.Cache.Backend).
			Msg("server listening")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	l.Warn().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Warn().Err(err).Msg("shutdown timed out")
		return nil
	}
	l.Info().Msg("graceful shutdown completed")
	return nil
}
