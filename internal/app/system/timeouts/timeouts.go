// Package timeouts holds the context deadlines used for database and network
// calls made while serving a request or running a background job.
//
//   - Ping: health checks
//   - Short: single-document reads and writes
//   - Medium: list queries, aggregation, outbound message sends
//   - Long: curriculum refresh, spreadsheet export
//   - Batch: content imports
package timeouts

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Defaults used until Configure or ConfigureFromEnv changes them.
const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
	DefaultBatch  = 60 * time.Second
)

// Config holds timeout values. Zero fields are ignored by Configure.
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
	Batch  time.Duration
}

func defaults() Config {
	return Config{
		Ping:   DefaultPing,
		Short:  DefaultShort,
		Medium: DefaultMedium,
		Long:   DefaultLong,
		Batch:  DefaultBatch,
	}
}

var (
	mu  sync.RWMutex
	cur = defaults()
)

func Ping() time.Duration   { return get(func(c Config) time.Duration { return c.Ping }) }
func Short() time.Duration  { return get(func(c Config) time.Duration { return c.Short }) }
func Medium() time.Duration { return get(func(c Config) time.Duration { return c.Medium }) }
func Long() time.Duration   { return get(func(c Config) time.Duration { return c.Long }) }
func Batch() time.Duration  { return get(func(c Config) time.Duration { return c.Batch }) }

func get(f func(Config) time.Duration) time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return f(cur)
}

// Configure overrides the non-zero fields of cfg. Call it during startup,
// before handlers are built.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	merge(&cur, cfg)
}

func merge(dst *Config, src Config) {
	for _, p := range []struct {
		dst *time.Duration
		src time.Duration
	}{
		{&dst.Ping, src.Ping},
		{&dst.Short, src.Short},
		{&dst.Medium, src.Medium},
		{&dst.Long, src.Long},
		{&dst.Batch, src.Batch},
	} {
		if p.src > 0 {
			*p.dst = p.src
		}
	}
}

// Reset restores the defaults. Tests use it.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	cur = defaults()
}

// ConfigureFromEnv reads LEARNRUST_TIMEOUT_{PING,SHORT,MEDIUM,LONG,BATCH}
// as Go durations ("2s", "500ms"). Unset or invalid values are skipped. It
// returns how many values were applied.
func ConfigureFromEnv() int {
	var cfg Config
	n := 0
	for name, dst := range map[string]*time.Duration{
		"LEARNRUST_TIMEOUT_PING":   &cfg.Ping,
		"LEARNRUST_TIMEOUT_SHORT":  &cfg.Short,
		"LEARNRUST_TIMEOUT_MEDIUM": &cfg.Medium,
		"LEARNRUST_TIMEOUT_LONG":   &cfg.Long,
		"LEARNRUST_TIMEOUT_BATCH":  &cfg.Batch,
	} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			*dst = d
			n++
		}
	}
	Configure(cfg)
	return n
}

// Current returns the active configuration, for startup logging.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cur
}

// WithTimeout is context.WithTimeout whose cancel func logs a warning when
// the deadline was hit.
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Batch(), h.Log, "lesson import")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout))
		}
		cancel()
	}
}
