package envgate

import (
	"encoding"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseValue converts a raw environment string into a T.
// Built-in targets: string, bool, signed/unsigned integers, floats,
// and time.Duration. Any other type must implement
// encoding.TextUnmarshaler on its pointer receiver.
func parseValue[T any](raw string) (T, error) {
	var v T
	switch p := any(&v).(type) {
	case *string:
		*p = raw
	case *bool:
		b, err := parseBool(raw)
		if err != nil {
			return v, err
		}
		*p = b
	case *int:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 0)
		if err != nil {
			return v, fmt.Errorf("not numeric: %q", raw)
		}
		*p = int(n)
	case *int64:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return v, fmt.Errorf("not numeric: %q", raw)
		}
		*p = n
	case *uint:
		n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 0)
		if err != nil {
			return v, fmt.Errorf("not numeric: %q", raw)
		}
		*p = uint(n)
	case *uint64:
		n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return v, fmt.Errorf("not numeric: %q", raw)
		}
		*p = n
	case *float32:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 32)
		if err != nil {
			return v, fmt.Errorf("not numeric: %q", raw)
		}
		*p = float32(f)
	case *float64:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return v, fmt.Errorf("not numeric: %q", raw)
		}
		*p = f
	case *time.Duration:
		d, err := time.ParseDuration(strings.TrimSpace(raw))
		if err != nil {
			return v, fmt.Errorf("not a duration: %q", raw)
		}
		*p = d
	default:
		if u, ok := any(&v).(encoding.TextUnmarshaler); ok {
			if err := u.UnmarshalText([]byte(raw)); err != nil {
				return v, fmt.Errorf("unmarshal text %q: %w", raw, err)
			}
			return v, nil
		}
		return v, fmt.Errorf("unsupported target type %T", v)
	}
	return v, nil
}

// parseBool recognizes the boolean vocabulary case-insensitively:
// true/1/yes and false/0/no. Anything else is a coercion failure.
func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	}
	return false, fmt.Errorf("not a recognized boolean: %q", raw)
}
