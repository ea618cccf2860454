// Package sourceenv captures the process environment as an immutable
// key/value snapshot, optionally restricted to a set of key prefixes.
package sourceenv
