// Package config holds the solver's tunable runtime settings: the
// transposition table budget and the weak/exact and logging switches,
// behind a mutex-guarded package-level store.
package config

import "sync"

// Config is the solver's full set of runtime knobs.
type Config struct {
	// TTSizeMB bounds the transposition table's memory footprint.
	TTSizeMB int `json:"tt_size_mb"`

	// Weak, when true, has Solve report only win/draw/loss instead of
	// the exact distance-to-end score, at a fraction of the node cost.
	Weak bool `json:"weak"`

	// LogSearchStats turns on node/TT-probe counting in package search.
	// Off by default: counting costs nothing correctness-wise but isn't
	// free, and most callers don't read the numbers.
	LogSearchStats bool `json:"log_search_stats"`
}

// DefaultConfig returns the settings a fresh solver starts with.
func DefaultConfig() Config {
	return Config{
		TTSizeMB:       64,
		Weak:           false,
		LogSearchStats: false,
	}
}

// Store is a concurrency-safe holder for the active Config, read far
// more often than it's written (an HTTP handler reads it per request;
// an admin endpoint or CLI flag writes it once at startup or rarely
// thereafter).
type Store struct {
	mu     sync.RWMutex
	config Config
}

var defaultStore = &Store{config: DefaultConfig()}

// Get returns the process-wide active configuration.
func Get() Config {
	return defaultStore.Get()
}

// Update replaces the process-wide active configuration.
func Update(c Config) {
	defaultStore.Update(c)
}

// Get returns s's current configuration.
func (s *Store) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Update replaces s's configuration.
func (s *Store) Update(c Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = c
}
