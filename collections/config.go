package collections

import (
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds the package-wide settings shared by every Collection.
type Config struct {
	// Logger receives the output of [Collection.Dump].
	// Defaults to the global zerolog logger.
	Logger zerolog.Logger

	// Rand is the source used by [Collection.Shuffle] and
	// [Collection.Random]. Set a seeded generator for reproducible results.
	// A nil Rand is replaced by a time-seeded generator.
	Rand *rand.Rand

	// JSONFlags are the flags used when no flags are passed explicitly:
	// by [Collection.String], [Collection.MarshalJSON] and [Collection.Dump].
	JSONFlags JSONFlag
}

// DefaultConfig returns a [Config] populated with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Logger: log.Logger,
		Rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

var settings struct {
	mu  sync.RWMutex
	cfg Config
}

func init() {
	settings.cfg = DefaultConfig()
}

// Configure replaces the package configuration.
// Safe to call from multiple goroutines.
func Configure(cfg Config) {
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	settings.mu.Lock()
	defer settings.mu.Unlock()
	settings.cfg = cfg
}

// CurrentConfig returns a copy of the active configuration.
func CurrentConfig() Config {
	settings.mu.RLock()
	defer settings.mu.RUnlock()
	return settings.cfg
}

// withRand runs fn with exclusive use of the configured generator;
// *rand.Rand is not safe for concurrent use.
func withRand(fn func(r *rand.Rand)) {
	settings.mu.Lock()
	defer settings.mu.Unlock()
	fn(settings.cfg.Rand)
}

func defaultFlags() JSONFlag {
	settings.mu.RLock()
	defer settings.mu.RUnlock()
	return settings.cfg.JSONFlags
}

func logger() zerolog.Logger {
	settings.mu.RLock()
	defer settings.mu.RUnlock()
	return settings.cfg.Logger
}
