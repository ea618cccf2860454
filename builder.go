package envgate

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Builder is a fluent query for a single key. Build one with Query,
// chain Default and Validate, then execute with Get or MustGet.
// A Builder is ephemeral and owned by the calling goroutine.
type Builder[T any] struct {
	key        string
	def        T
	hasDefault bool
	validators []Validator
}

// Query starts a typed query for key. The builder API requires Init to
// have run; use GetOr for zero-configuration access.
func Query[T any](key string) *Builder[T] {
	return &Builder[T]{key: key}
}

// Default sets the value returned when the key is absent, fails
// validation, or cannot be coerced.
func (b *Builder[T]) Default(v T) *Builder[T] {
	b.def = v
	b.hasDefault = true
	return b
}

// Validate appends validators to the chain. All must pass; evaluation
// short-circuits on the first failure.
func (b *Builder[T]) Validate(v ...Validator) *Builder[T] {
	b.validators = append(b.validators, v...)
	return b
}

// Get executes the query.
//
// Without a default, failures surface as typed errors: *QueryError
// with code "missing", "validation_failed", or "parse_failed". With a
// default, those failures silently resolve to it (a warning goes to
// the advisory logger when one is configured).
//
// ErrNotInitialized is returned before Init regardless of any default:
// a silently defaulted misconfiguration is worse than the error.
func (b *Builder[T]) Get() (T, error) {
	var zero T

	st := current.Load()
	if st == nil {
		return zero, ErrNotInitialized
	}

	raw, ok := st.lookup(b.key)
	if !ok {
		if b.hasDefault {
			return b.def, nil
		}
		return zero, &QueryError{Key: b.key, Code: ErrCodeMissing, Validator: -1}
	}

	if i := runValidators(b.validators, raw); i >= 0 {
		if b.hasDefault {
			st.warn("validation failed, using default", logrus.Fields{
				"key":       b.key,
				"value":     raw,
				"validator": i,
			})
			return b.def, nil
		}
		return zero, &QueryError{Key: b.key, Value: raw, Code: ErrCodeValidation, Validator: i}
	}

	v, err := parseValue[T](raw)
	if err != nil {
		if b.hasDefault {
			st.warn("coercion failed, using default", logrus.Fields{
				"key":   b.key,
				"value": raw,
				"error": err.Error(),
			})
			return b.def, nil
		}
		return zero, &QueryError{Key: b.key, Value: raw, Code: ErrCodeParse, Validator: -1, Err: err}
	}

	return v, nil
}

// MustGet is Get that panics on any error. This is the strict-mode
// surface: a query that cannot be answered stops execution.
func (b *Builder[T]) MustGet() T {
	v, err := b.Get()
	if err != nil {
		panic(err)
	}
	return v
}

// GetOr reads key directly from the process environment and coerces it
// to T, returning def when the variable is absent or cannot be parsed.
// It has no error surface and no init gate; prefix filtering does not
// apply.
func GetOr[T any](key string, def T) T {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	v, err := parseValue[T](raw)
	if err != nil {
		return def
	}
	return v
}

// String reads key as a string, returning def when absent.
func String(key, def string) string {
	return GetOr(key, def)
}

// Bool reads key as a boolean (true/1/yes, false/0/no, case-insensitive),
// returning def when absent or outside the vocabulary.
func Bool(key string, def bool) bool {
	return GetOr(key, def)
}
