package envgate

import (
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/Azhovan/envgate/sourceenv"
	"github.com/Azhovan/envgate/sourcefile"
)

// defaultEnvFile is the file probed by default discovery when no
// explicit path is configured.
const defaultEnvFile = ".env"

// state is the immutable configuration snapshot published by Init.
// Queries only ever read it; Init replaces it wholesale.
type state struct {
	values   map[string]string
	origins  map[string]string // key -> "env" or "file:<name>"
	prefixes []string
	path     string // loaded file path, empty when none
	logger   logrus.FieldLogger
}

// current holds the published state. The atomic pointer gives queries
// acquire/release visibility of a snapshot that never mutates after
// publication.
var current atomic.Pointer[state]

// Option configures Init behavior.
type Option func(*initConfig)

type initConfig struct {
	path     string
	prefixes []string
	logger   logrus.FieldLogger
}

// WithFile sets an explicit env file path. Unlike default discovery,
// an explicit file that is missing or malformed fails Init.
func WithFile(path string) Option {
	return func(cfg *initConfig) {
		cfg.path = path
	}
}

// WithPrefixes restricts visible keys to those starting with one of
// the given prefixes. Matching is case-sensitive and never rewrites
// the key; non-matching keys behave as absent.
func WithPrefixes(prefixes ...string) Option {
	return func(cfg *initConfig) {
		cfg.prefixes = append(cfg.prefixes, prefixes...)
	}
}

// WithLogger enables the advisory warning side-channel. Warnings are
// emitted when a builder query falls back to its default after a
// validation or coercion failure. They are never required for
// correctness; a nil logger disables them.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(cfg *initConfig) {
		cfg.logger = logger
	}
}

// Init loads the env file (explicit path, or ".env" by default
// discovery), merges its entries into the process environment without
// overwriting variables already set, and publishes the configuration
// snapshot used by builder queries.
//
// Default discovery that finds no file succeeds with nothing loaded.
// An explicit file that cannot be read or parsed fails with *InitError.
//
// Re-initialization policy: last call wins. A second Init replaces the
// published state atomically. Init is not meant to race with queries;
// call it once before spawning workers.
func Init(opts ...Option) error {
	cfg := initConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	path := cfg.path
	if path == "" {
		if _, err := os.Stat(defaultEnvFile); err == nil {
			path = defaultEnvFile
		}
	}

	fileKeys := make(map[string]bool)
	if path != "" {
		pairs, err := sourcefile.Load(path, sourcefile.Options{})
		if err != nil {
			return &InitError{Path: path, Err: err}
		}
		for k, v := range pairs {
			if _, exists := os.LookupEnv(k); exists {
				// Explicit operator settings win over file values.
				continue
			}
			if err := os.Setenv(k, v); err != nil {
				return &InitError{Path: path, Err: err}
			}
			fileKeys[k] = true
		}
	}

	values := sourceenv.Snapshot(cfg.prefixes)
	origins := make(map[string]string, len(values))
	for k := range values {
		if fileKeys[k] {
			origins[k] = "file:" + filepath.Base(path)
		} else {
			origins[k] = "env"
		}
	}

	current.Store(&state{
		values:   values,
		origins:  origins,
		prefixes: cfg.prefixes,
		path:     path,
		logger:   cfg.logger,
	})
	return nil
}

// lookup resolves a key against the snapshot, applying the prefix
// gate before the map lookup.
func (s *state) lookup(key string) (string, bool) {
	if !sourceenv.Matches(key, s.prefixes) {
		return "", false
	}
	v, ok := s.values[key]
	return v, ok
}

func (s *state) warn(msg string, fields logrus.Fields) {
	if s.logger == nil {
		return
	}
	s.logger.WithFields(fields).Warn(msg)
}
