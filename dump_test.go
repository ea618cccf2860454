package envgate

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntries_SortedByKey(t *testing.T) {
	t.Setenv("ENVGATE_DUMP_B", "2")
	t.Setenv("ENVGATE_DUMP_A", "1")
	require.NoError(t, Init(WithPrefixes("ENVGATE_DUMP_")))

	entries, err := Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, sort.SliceIsSorted(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	}))
	assert.Equal(t, "ENVGATE_DUMP_A", entries[0].Key)
	assert.Equal(t, "1", entries[0].Value)
}

func TestDump_Text(t *testing.T) {
	t.Setenv("ENVGATE_DUMP_HOST", "localhost")
	t.Setenv("ENVGATE_DUMP_DB_PASSWORD", "hunter2")
	require.NoError(t, Init(WithPrefixes("ENVGATE_DUMP_")))

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf))

	out := buf.String()
	assert.Contains(t, out, `ENVGATE_DUMP_HOST: "localhost"`)
	assert.Contains(t, out, redactedValue)
	assert.NotContains(t, out, "hunter2")
}

func TestDump_WithSources(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ENVGATE_DUMP_FROM_FILE=v\n"), 0600))
	defer os.Unsetenv("ENVGATE_DUMP_FROM_FILE")

	require.NoError(t, Init(WithFile(path), WithPrefixes("ENVGATE_DUMP_")))

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, WithSources()))
	assert.Contains(t, buf.String(), "(source: file:.env)")
}

func TestDump_JSON(t *testing.T) {
	t.Setenv("ENVGATE_DUMP_PORT", "8080")
	require.NoError(t, Init(WithPrefixes("ENVGATE_DUMP_")))

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, AsJSON(), WithIndent("")))

	var entries []Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "ENVGATE_DUMP_PORT", entries[0].Key)
	assert.Equal(t, "8080", entries[0].Value)
	assert.Equal(t, "env", entries[0].Origin)
}

func TestDump_NotInitialized(t *testing.T) {
	reset()
	var buf bytes.Buffer
	assert.ErrorIs(t, Dump(&buf), ErrNotInitialized)
}

func TestWriteSnapshot(t *testing.T) {
	t.Setenv("ENVGATE_SNAP_TOKEN", "abc123")
	t.Setenv("ENVGATE_SNAP_HOST", "localhost")
	require.NoError(t, Init(WithPrefixes("ENVGATE_SNAP_")))

	dir := t.TempDir()
	template := filepath.Join(dir, "snap-{{timestamp}}.json")
	require.NoError(t, WriteSnapshot(template))

	matches, err := filepath.Glob(filepath.Join(dir, "snap-*.json"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.NotContains(t, matches[0], "{{timestamp}}")

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Equal(t, SnapshotVersion, snap.Version)

	byKey := make(map[string]Entry, len(snap.Entries))
	for _, e := range snap.Entries {
		byKey[e.Key] = e
	}
	assert.Equal(t, "localhost", byKey["ENVGATE_SNAP_HOST"].Value)
	assert.Equal(t, redactedValue, byKey["ENVGATE_SNAP_TOKEN"].Value)
	assert.NotContains(t, string(data), "abc123")

	// No temp files left behind.
	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp.*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestExpandPathWithTime(t *testing.T) {
	at := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "snap-20240315-103000.json", ExpandPathWithTime("snap-{{timestamp}}.json", at))
	assert.Equal(t, "plain.json", ExpandPathWithTime("plain.json", at))
}

func TestIsSecretKey(t *testing.T) {
	for _, key := range []string{"DB_PASSWORD", "app_secret", "AUTH_TOKEN", "STRIPE_API_KEY"} {
		assert.True(t, isSecretKey(key), "key %q", key)
	}
	for _, key := range []string{"HOST", "PORT", "TIMEOUT"} {
		assert.False(t, isSecretKey(key), "key %q", key)
	}
}

func TestDump_RedactionDoesNotMutateStore(t *testing.T) {
	t.Setenv("ENVGATE_DUMP_SECRET", "real-value")
	require.NoError(t, Init(WithPrefixes("ENVGATE_DUMP_")))

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf))
	assert.True(t, strings.Contains(buf.String(), redactedValue))

	got, err := Query[string]("ENVGATE_DUMP_SECRET").Get()
	require.NoError(t, err)
	assert.Equal(t, "real-value", got)
}
