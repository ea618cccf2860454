// Package sourcefile loads flat key/value configuration pairs from
// dotenv, YAML, JSON, and TOML files.
package sourcefile
