// Package normalize converts configuration paths into environment-style keys.
package normalize

import (
	"fmt"
	"strconv"
	"strings"
)

var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_", " ", "_")

// ToEnvKey converts a single path segment to env style.
// Examples:
//   - "host" → "HOST"
//   - "db-host" → "DB_HOST"
//   - "rate.limit" → "RATE_LIMIT"
func ToEnvKey(segment string) string {
	return strings.ToUpper(envKeyReplacer.Replace(segment))
}

// JoinKey appends a segment to an env-style key prefix.
// Examples:
//   - JoinKey("", "host") → "HOST"
//   - JoinKey("DATABASE", "host") → "DATABASE_HOST"
func JoinKey(prefix, segment string) string {
	key := ToEnvKey(segment)
	if prefix == "" {
		return key
	}
	return prefix + "_" + key
}

// FormatScalar renders a parsed scalar back to its textual env form.
// YAML yields int, TOML int64, JSON float64; all are formatted without
// an exponent so round-tripping through strconv keeps working.
func FormatScalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}
