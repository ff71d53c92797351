// Package ratelimit implements fixed-window request limits keyed by client
// address. Several rules (e.g. "100/day" and "20/hour") apply at once.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultRules mirrors the public service limits.
const DefaultRules = "100/day,20/hour"

type Rule struct {
	Limit  int
	Window time.Duration
	name   string
}

func (r Rule) String() string {
	if r.name != "" {
		return fmt.Sprintf("%d per %s", r.Limit, r.name)
	}
	return fmt.Sprintf("%d per %s", r.Limit, r.Window)
}

// Decision is the outcome of a single Allow call.
type Decision struct {
	Allowed bool
	// Rule is the exhausted rule when Allowed is false.
	Rule       Rule
	Remaining  int
	RetryAfter time.Duration
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

var periods = map[string]time.Duration{
	"second": time.Second,
	"minute": time.Minute,
	"hour":   time.Hour,
	"day":    24 * time.Hour,
}

// ParseRules parses a comma separated list like "100/day,20/hour".
func ParseRules(raw string) ([]Rule, error) {
	var rules []Rule
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		count, period, found := strings.Cut(part, "/")
		if !found {
			return nil, fmt.Errorf("invalid rule %q: expected <count>/<period>", part)
		}
		n, err := strconv.Atoi(strings.TrimSpace(count))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid rule %q: count must be a positive integer", part)
		}
		name := strings.ToLower(strings.TrimSpace(period))
		window, ok := periods[name]
		if !ok {
			return nil, fmt.Errorf("invalid rule %q: unknown period %q", part, period)
		}
		rules = append(rules, Rule{Limit: n, Window: window, name: name})
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("no rate limit rules in %q", raw)
	}
	return rules, nil
}

// MustParseRules is ParseRules for constant input.
func MustParseRules(raw string) []Rule {
	rules, err := ParseRules(raw)
	if err != nil {
		panic(err)
	}
	return rules
}

func ruleKey(key string, r Rule) string {
	return fmt.Sprintf("%s/%d/%d", key, r.Limit, int64(r.Window/time.Second))
}
