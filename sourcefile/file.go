package sourcefile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/Azhovan/envgate/internal/normalize"
)

// Options configures file loading behavior.
type Options struct {
	// Format: "env", "yaml", "json", or "toml". Auto-detected from the
	// extension if empty; unknown extensions fall back to dotenv syntax.
	Format string
}

// Load reads the file at path and returns its entries as env-style
// key/value string pairs. Nested YAML/JSON/TOML documents are
// flattened to upper-snake keys (database.host → DATABASE_HOST).
func Load(path string, opts Options) (map[string]string, error) {
	format := opts.Format
	if format == "" {
		format = inferFormat(path)
	}

	switch format {
	case "env":
		pairs, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("parse env file %s: %w", path, err)
		}
		return pairs, nil

	case "yaml", "yml", "json", "toml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}

		var raw map[string]any
		switch format {
		case "yaml", "yml":
			if err := yaml.Unmarshal(data, &raw); err != nil {
				return nil, fmt.Errorf("parse YAML file %s: %w", path, err)
			}
		case "json":
			if err := json.Unmarshal(data, &raw); err != nil {
				return nil, fmt.Errorf("parse JSON file %s: %w", path, err)
			}
		case "toml":
			if err := toml.Unmarshal(data, &raw); err != nil {
				return nil, fmt.Errorf("parse TOML file %s: %w", path, err)
			}
		}

		result := make(map[string]string)
		flatten("", raw, result)
		return result, nil

	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: env, yaml, json, toml)", format)
	}
}

// flatten recursively flattens nested maps to env-style keys.
func flatten(prefix string, value any, result map[string]string) {
	switch v := value.(type) {
	case map[string]any:
		for key, val := range v {
			flatten(normalize.JoinKey(prefix, key), val, result)
		}
	case map[any]any:
		for key, val := range v {
			keyStr, ok := key.(string)
			if !ok {
				continue
			}
			flatten(normalize.JoinKey(prefix, keyStr), val, result)
		}
	default:
		if prefix == "" {
			return
		}
		result[prefix] = normalize.FormatScalar(value)
	}
}

func inferFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	case ".toml":
		return "toml"
	default:
		// .env files rarely carry an extension worth switching on.
		return "env"
	}
}
