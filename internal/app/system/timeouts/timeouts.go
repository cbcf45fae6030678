// Package timeouts provides centralized timeout values for handler
// operations. All database work in handlers runs under context.WithTimeout
// using one of these values, so a slow Mongo node cannot pin requests.
//
// Guidelines for choosing a timeout:
//   - Ping: health checks
//   - Short: single-document reads and writes
//   - Medium: list queries, aggregations, multi-document writes
//   - Long: transactional ledger writes, bulk read-marking
package timeouts

import (
	"os"
	"sync"
	"time"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
)

var mu sync.RWMutex

var (
	ping   = DefaultPing
	short  = DefaultShort
	medium = DefaultMedium
	long   = DefaultLong
)

// Ping returns the timeout for health checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Short returns the timeout for single-document reads and writes.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Medium returns the timeout for list queries and aggregations.
func Medium() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return medium
}

// Long returns the timeout for transactional writes and bulk updates.
func Long() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return long
}

// Config holds timeout configuration values. Zero values are ignored
// (defaults are kept).
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
}

// Configure sets custom timeout values during startup, before handlers are
// registered. Zero values keep the current settings.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Short > 0 {
		short = cfg.Short
	}
	if cfg.Medium > 0 {
		medium = cfg.Medium
	}
	if cfg.Long > 0 {
		long = cfg.Long
	}
}

// Reset restores all timeouts to their defaults. Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	short = DefaultShort
	medium = DefaultMedium
	long = DefaultLong
}

// ConfigureFromEnv reads timeout overrides from WEKEZA_TIMEOUT_PING,
// WEKEZA_TIMEOUT_SHORT, WEKEZA_TIMEOUT_MEDIUM, and WEKEZA_TIMEOUT_LONG
// (Go duration strings). Invalid values are ignored. Returns the number of
// timeouts configured.
func ConfigureFromEnv() int {
	mu.Lock()
	defer mu.Unlock()
	configured := 0

	read := func(key string, dst *time.Duration) {
		if v := os.Getenv(key); v != "" {
			if d, err := time.ParseDuration(v); err == nil && d > 0 {
				*dst = d
				configured++
			}
		}
	}

	read("WEKEZA_TIMEOUT_PING", &ping)
	read("WEKEZA_TIMEOUT_SHORT", &short)
	read("WEKEZA_TIMEOUT_MEDIUM", &medium)
	read("WEKEZA_TIMEOUT_LONG", &long)

	return configured
}
