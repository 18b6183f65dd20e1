// Package config holds all chisel configuration and its loading logic.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema.json
var configSchema []byte

// Config holds all configuration options for chisel.
type Config struct {
	// Root is the working-directory root all relative paths resolve
	// against. Empty means the process working directory.
	Root string `koanf:"root" json:"root" toml:"root"`

	Exclude ExcludeConfig `koanf:"exclude" json:"exclude" toml:"exclude"`
	Limits  LimitsConfig  `koanf:"limits" json:"limits" toml:"limits"`
	Output  OutputConfig  `koanf:"output" json:"output" toml:"output"`
}

// ExcludeConfig controls which paths the file set resolver skips.
type ExcludeConfig struct {
	// Dirs are directory names skipped wherever they appear in a path.
	Dirs []string `koanf:"dirs" json:"dirs" toml:"dirs"`

	// Patterns are doublestar globs matched against relative paths.
	Patterns []string `koanf:"patterns" json:"patterns" toml:"patterns"`

	// Gitignore enables .gitignore pattern matching inside git repos.
	Gitignore bool `koanf:"gitignore" json:"gitignore" toml:"gitignore"`

	// Hidden skips dot-directories during traversal.
	Hidden bool `koanf:"hidden" json:"hidden" toml:"hidden"`
}

// LimitsConfig bounds resource usage.
type LimitsConfig struct {
	// MaxFileSize in bytes; files above it are skipped. 0 disables the cap.
	MaxFileSize int64 `koanf:"max_file_size" json:"max_file_size" toml:"max_file_size"`

	// Workers caps the per-file worker pool. 0 means 2x NumCPU.
	Workers int `koanf:"workers" json:"workers" toml:"workers"`
}

// OutputConfig controls CLI output formatting.
type OutputConfig struct {
	Format  string `koanf:"format" json:"format" toml:"format"` // text, json, markdown
	Color   bool   `koanf:"color" json:"color" toml:"color"`
	Verbose bool   `koanf:"verbose" json:"verbose" toml:"verbose"`
}

// DefaultExclusionSet is the fixed set of directory names skipped by every
// traversal: dependency caches, build output, and version-control metadata.
// Hidden dot-directories are handled separately by ExcludeConfig.Hidden.
var DefaultExclusionSet = []string{
	"node_modules",
	"vendor",
	"dist",
	"build",
	"target",
	"__pycache__",
	".git",
	".hg",
	".svn",
	".venv",
	"venv",
	".tox",
	".mypy_cache",
	".pytest_cache",
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Exclude: ExcludeConfig{
			Dirs:      append([]string(nil), DefaultExclusionSet...),
			Patterns:  []string{"*.min.js", "*.min.css"},
			Gitignore: true,
			Hidden:    true,
		},
		Limits: LimitsConfig{
			MaxFileSize: 10 * 1024 * 1024,
			Workers:     0,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file, picking the parser from the
// extension and validating the result against the embedded schema.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := validate(k.Raw()); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks a loaded config document against the embedded JSON schema.
func validate(doc map[string]any) error {
	schemaDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(configSchema))
	if err != nil {
		return err
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("chisel://config.schema.json", schemaDoc); err != nil {
		return err
	}
	sch, err := c.Compile("chisel://config.schema.json")
	if err != nil {
		return err
	}
	return sch.Validate(normalize(doc))
}

// normalize rewrites koanf's raw map into plain JSON-compatible values so the
// schema validator accepts it.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case float32:
		return float64(val)
	default:
		return val
	}
}

// LoadOrDefault tries standard config locations, falling back to defaults.
func LoadOrDefault() *Config {
	names := []string{
		"chisel.toml",
		"chisel.yaml",
		"chisel.yml",
		"chisel.json",
		".chisel.toml",
		".chisel.yaml",
		".chisel.yml",
		".chisel.json",
	}

	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			if cfg, err := Load(name); err == nil {
				return cfg
			}
		}
	}
	return DefaultConfig()
}

// ResolvePath resolves a path against the configured root.
func (c *Config) ResolvePath(path string) string {
	if c.Root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Root, path)
}
