package envgate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Validator is a pure predicate over a raw environment value.
// Validators run before coercion, in declaration order, and the chain
// short-circuits on the first failure.
type Validator func(raw string) bool

// IsNonEmpty checks that the value is not empty or whitespace only.
func IsNonEmpty(raw string) bool {
	return strings.TrimSpace(raw) != ""
}

// IsInteger checks for an optional sign followed by digits only.
func IsInteger(raw string) bool {
	_, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	return err == nil
}

// IsPositiveNumber checks for a number strictly greater than zero.
// Floats are accepted.
func IsPositiveNumber(raw string) bool {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	return err == nil && f > 0
}

// IsPort checks for an integer in [0, 65535].
func IsPort(raw string) bool {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	return err == nil && n <= 65535
}

// IsBool checks for the boolean vocabulary: true/1/yes/false/0/no,
// case-insensitive.
func IsBool(raw string) bool {
	_, err := parseBool(raw)
	return err == nil
}

// IsURL is a coarse structural check: a non-empty scheme, "://", and a
// non-empty host segment. It is not an RFC validator.
func IsURL(raw string) bool {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok || scheme == "" {
		return false
	}
	host := rest
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		host = rest[:i]
	}
	return host != ""
}

// MatchesRegex builds a validator from a regular expression. A pattern
// the engine cannot compile fails at construction, never at query
// time; the returned error wraps ErrUnsupportedValidator.
func MatchesRegex(pattern string) (Validator, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid pattern %q: %v", ErrUnsupportedValidator, pattern, err)
	}
	return re.MatchString, nil
}

// runValidators evaluates the chain in order and returns the index of
// the first failing validator, or -1 when all pass.
func runValidators(validators []Validator, raw string) int {
	for i, v := range validators {
		if !v(raw) {
			return i
		}
	}
	return -1
}
