package main

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"dictproxy/internal/cache"
	"dictproxy/internal/extractor"
	"dictproxy/internal/fetcher"
	"dictproxy/internal/ioformats"
	"dictproxy/internal/lookup"
	"dictproxy/internal/models"
	"dictproxy/pkg/logger"
)

var (
	flagInput       string
	flagOutput      string
	flagConcurrency int
	flagTimeout     time.Duration
	flagBaseURL     string
	flagLogLevel    string
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [word]...",
	Short: "Look up one or more words",
	Long: `Lookup fetches each word from the dictionary site and writes one NDJSON
record per word, in input order. Failed words carry an "error" field instead
of "entries".

Examples:
  dictproxy-cli lookup stat run
  dictproxy-cli lookup --input words.csv --concurrency 8
  dictproxy-cli lookup --input words.ndjson --output out.ndjson`,
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)

	lookupCmd.Flags().StringVar(&flagInput, "input", "", "Input file (csv with 'word' column or ndjson)")
	lookupCmd.Flags().StringVar(&flagOutput, "output", "", "Output NDJSON file (default stdout)")
	lookupCmd.Flags().IntVar(&flagConcurrency, "concurrency", 4, "Number of concurrent lookups")
	lookupCmd.Flags().DurationVar(&flagTimeout, "timeout", fetcher.DefaultTimeout, "Per-word upstream timeout")
	lookupCmd.Flags().StringVar(&flagBaseURL, "base-url", fetcher.DefaultBaseURL, "Dictionary base URL")
	lookupCmd.Flags().StringVar(&flagLogLevel, "log-level", "warn", "Log level written to stderr")
}

func runLookup(cmd *cobra.Command, args []string) error {
	words := append([]string(nil), args...)
	if flagInput != "" {
		fromFile, err := ioformats.ReadWords(flagInput)
		if err != nil {
			return err
		}
		words = append(words, fromFile...)
	}
	if len(words) == 0 {
		return errors.New("no words given: pass them as arguments or use --input")
	}
	if flagConcurrency < 1 {
		return errors.New("--concurrency must be at least 1")
	}

	l := logger.NewWithWriter(cmd.ErrOrStderr(), flagLogLevel, "console")
	f := fetcher.NewHTTPClient(fetcher.Options{BaseURL: flagBaseURL, Timeout: flagTimeout}, l)
	svc := lookup.NewService(f, extractor.New(), cache.NewMemory(len(words), 0))

	ctx := l.WithContext(cmd.Context())
	records := lookupAll(ctx, svc, words, flagConcurrency)

	var w io.Writer = cmd.OutOrStdout()
	if flagOutput != "" {
		out, err := os.Create(flagOutput)
		if err != nil {
			return err
		}
		defer out.Close()
		w = out
	}
	return ioformats.WriteNDJSON(w, records)
}

type wordLookuper interface {
	Lookup(ctx context.Context, word string) ([]models.Entry, error)
}

// lookupAll resolves words with at most concurrency lookups in flight and
// returns the records in input order.
func lookupAll(ctx context.Context, svc wordLookuper, words []string, concurrency int) []models.LookupRecord {
	results := make([]models.LookupRecord, len(words))

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	for i, word := range words {
		sem <- struct{}{} // acquire
		wg.Add(1)
		go func() {
			defer func() { <-sem; wg.Done() }()
			entries, err := svc.Lookup(ctx, word)
			if err != nil {
				zerolog.Ctx(ctx).Warn().Err(err).Str("word", word).Msg("lookup failed")
				results[i] = models.LookupRecord{Word: word, Error: err.Error()}
				return
			}
			results[i] = models.LookupRecord{Word: word, Entries: entries}
		}()
	}
	wg.Wait()
	return results
}
