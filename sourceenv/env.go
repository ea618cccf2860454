package sourceenv

import (
	"os"
	"strings"
)

// Snapshot copies the process environment into a map. When prefixes
// are given, only keys starting with one of them are kept; keys are
// stored unmodified (filtering gates visibility, it never rewrites the
// key). Matching is case-sensitive.
func Snapshot(prefixes []string) map[string]string {
	result := make(map[string]string)

	for _, env := range os.Environ() {
		key, value, ok := strings.Cut(env, "=")
		if !ok || key == "" {
			continue
		}
		if !Matches(key, prefixes) {
			continue
		}
		result[key] = value
	}

	return result
}

// Matches reports whether key is visible under the given prefixes.
// An empty prefix list means no filtering.
func Matches(key string, prefixes []string) bool {
	if len(prefixes) == 0 {
		return true
	}
	for _, p := range prefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}
