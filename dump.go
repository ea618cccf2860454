package envgate

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// SnapshotVersion is the current snapshot format version.
const SnapshotVersion = "1.0"

// redactedValue replaces secret-looking values in dumps and snapshots.
const redactedValue = "***redacted***"

var secretMarkers = []string{"PASSWORD", "SECRET", "TOKEN", "APIKEY", "API_KEY", "PRIVATE_KEY"}

// Entry is a single effective configuration value.
type Entry struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Origin string `json:"origin"` // "env" or "file:<name>"
}

// Entries returns the effective configuration sorted by key.
// Values are returned as loaded, without redaction.
func Entries() ([]Entry, error) {
	st := current.Load()
	if st == nil {
		return nil, ErrNotInitialized
	}

	entries := make([]Entry, 0, len(st.values))
	for k, v := range st.values {
		entries = append(entries, Entry{Key: k, Value: v, Origin: st.origins[k]})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}

// DumpOption configures dump behavior using the functional options pattern.
type DumpOption func(*dumpConfig)

type dumpConfig struct {
	withSources bool   // Include origin attribution for each key
	asJSON      bool   // Output as JSON instead of text format
	indent      string // Indentation for JSON output (default: "  ")
}

// WithSources includes origin attribution for each key in the output.
func WithSources() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.withSources = true
	}
}

// AsJSON outputs the configuration as JSON instead of text format.
func AsJSON() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.asJSON = true
	}
}

// WithIndent sets the indentation for JSON output.
// Default is two spaces ("  ").
func WithIndent(indent string) DumpOption {
	return func(cfg *dumpConfig) {
		cfg.indent = indent
	}
}

// Dump writes a human-readable representation of the effective
// configuration. Secret-looking keys (PASSWORD, SECRET, TOKEN, ...)
// are automatically redacted.
func Dump(w io.Writer, opts ...DumpOption) error {
	cfg := dumpConfig{indent: "  "}
	for _, opt := range opts {
		opt(&cfg)
	}

	entries, err := Entries()
	if err != nil {
		return err
	}
	entries = redactEntries(entries)

	if cfg.asJSON {
		data, err := json.MarshalIndent(entries, "", cfg.indent)
		if err != nil {
			return fmt.Errorf("json marshal error: %w", err)
		}
		data = append(data, '\n')
		_, err = w.Write(data)
		return err
	}

	for _, e := range entries {
		line := fmt.Sprintf("%s: %q", e.Key, e.Value)
		if cfg.withSources && e.Origin != "" {
			line += fmt.Sprintf(" (source: %s)", e.Origin)
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return fmt.Errorf("write error: %w", err)
		}
	}
	return nil
}

// Snapshot represents a point-in-time capture of the effective
// configuration, with secrets redacted.
type Snapshot struct {
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path,omitempty"` // loaded file, if any
	Entries   []Entry   `json:"entries"`
}

// CreateSnapshot captures the current effective configuration.
// The Timestamp is captured at creation time.
func CreateSnapshot() (*Snapshot, error) {
	st := current.Load()
	if st == nil {
		return nil, ErrNotInitialized
	}

	entries, err := Entries()
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Version:   SnapshotVersion,
		Timestamp: time.Now().UTC(),
		Path:      st.path,
		Entries:   redactEntries(entries),
	}, nil
}

// WriteSnapshot persists a snapshot to disk with atomic write
// semantics (temp file plus rename in the target directory). The path
// may contain a {{timestamp}} template variable, expanded from the
// snapshot's own Timestamp so the filename matches its metadata.
func WriteSnapshot(pathTemplate string) error {
	snap, err := CreateSnapshot()
	if err != nil {
		return err
	}

	targetPath := ExpandPathWithTime(pathTemplate, snap.Timestamp)

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(targetPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(targetPath)+".tmp.*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpPath, targetPath)
}

// ExpandPathWithTime replaces all {{timestamp}} occurrences with the
// time formatted as 20060102-150405. The path is returned unchanged
// when no template variables are present.
func ExpandPathWithTime(template string, t time.Time) string {
	timestamp := t.UTC().Format("20060102-150405")
	return strings.ReplaceAll(template, "{{timestamp}}", timestamp)
}

func redactEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		if isSecretKey(e.Key) {
			e.Value = redactedValue
		}
		out[i] = e
	}
	return out
}

func isSecretKey(key string) bool {
	upper := strings.ToUpper(key)
	for _, marker := range secretMarkers {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}
