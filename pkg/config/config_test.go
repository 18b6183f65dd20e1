package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.Exclude.Gitignore {
		t.Error("expected gitignore exclusion enabled by default")
	}
	if !cfg.Exclude.Hidden {
		t.Error("expected hidden dirs excluded by default")
	}
	if cfg.Limits.MaxFileSize != 10*1024*1024 {
		t.Errorf("unexpected default max file size: %d", cfg.Limits.MaxFileSize)
	}
	if cfg.Output.Format != "text" {
		t.Errorf("unexpected default format: %s", cfg.Output.Format)
	}

	found := false
	for _, d := range cfg.Exclude.Dirs {
		if d == "node_modules" {
			found = true
		}
	}
	if !found {
		t.Error("node_modules missing from default exclusions")
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chisel.toml")
	content := `root = "/src"

[exclude]
dirs = ["generated"]
gitignore = false

[limits]
max_file_size = 1024
workers = 4

[output]
format = "json"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Root != "/src" {
		t.Errorf("root = %q, want /src", cfg.Root)
	}
	if len(cfg.Exclude.Dirs) != 1 || cfg.Exclude.Dirs[0] != "generated" {
		t.Errorf("exclude dirs = %v", cfg.Exclude.Dirs)
	}
	if cfg.Exclude.Gitignore {
		t.Error("gitignore should be disabled")
	}
	if cfg.Limits.MaxFileSize != 1024 {
		t.Errorf("max_file_size = %d", cfg.Limits.MaxFileSize)
	}
	if cfg.Limits.Workers != 4 {
		t.Errorf("workers = %d", cfg.Limits.Workers)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("format = %s", cfg.Output.Format)
	}
	// Untouched sections keep defaults.
	if !cfg.Output.Color {
		t.Error("color default should survive partial config")
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chisel.yaml")
	content := `output:
  format: markdown
  verbose: true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Output.Format != "markdown" {
		t.Errorf("format = %s", cfg.Output.Format)
	}
	if !cfg.Output.Verbose {
		t.Error("verbose should be true")
	}
}

func TestLoadInvalidFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chisel.toml")
	content := `[output]
format = "xml"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected schema validation error for unknown format")
	}
}

func TestLoadUnknownKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chisel.toml")
	content := `bogus = true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected schema validation error for unknown key")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/chisel.toml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestResolvePath(t *testing.T) {
	cfg := &Config{Root: "/workspace"}

	if got := cfg.ResolvePath("a/b.py"); got != filepath.Join("/workspace", "a/b.py") {
		t.Errorf("ResolvePath relative = %q", got)
	}
	if got := cfg.ResolvePath("/abs/b.py"); got != "/abs/b.py" {
		t.Errorf("ResolvePath absolute = %q", got)
	}

	empty := &Config{}
	if got := empty.ResolvePath("a/b.py"); got != "a/b.py" {
		t.Errorf("ResolvePath with no root = %q", got)
	}
}
