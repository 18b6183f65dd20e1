package tool

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/chiseltools/chisel/internal/service/code"
	"github.com/chiseltools/chisel/pkg/config"
	"github.com/chiseltools/chisel/pkg/models"
)

const calcSource = "def calculate(x):\n    return x*2\n\nresult = calculate(5)\nprint(calculate(10))"

func newRegistry(t *testing.T) (*Registry, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Root = dir
	svc := code.New(code.WithConfig(cfg))
	return DefaultRegistry(svc), dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestRegistryNames(t *testing.T) {
	r, _ := newRegistry(t)
	names := r.Names()
	want := []string{"find_references", "parse_file", "rename_symbol", "symbol_info"}
	if len(names) != len(want) {
		t.Fatalf("names = %v", names)
	}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("names[%d] = %s, want %s", i, names[i], n)
		}
	}
}

func TestRegistryDuplicate(t *testing.T) {
	r, _ := newRegistry(t)
	if err := r.Register(&ParseTool{}); err == nil {
		t.Error("expected duplicate registration error")
	}
}

func TestDispatchUnknownTool(t *testing.T) {
	r, _ := newRegistry(t)
	result := r.Dispatch(context.Background(), "no_such_tool", Params{})
	if result.Success {
		t.Error("unknown tool must fail")
	}
}

func TestDispatchMissingRequiredParam(t *testing.T) {
	r, _ := newRegistry(t)
	result := r.Dispatch(context.Background(), "parse_file", Params{})
	if result.Success {
		t.Fatal("expected failure")
	}
	if result.Metadata["error_kind"] != "invalid_argument" {
		t.Errorf("metadata = %v", result.Metadata)
	}
}

func TestDispatchParse(t *testing.T) {
	r, dir := newRegistry(t)
	writeFile(t, filepath.Join(dir, "a.py"), calcSource)

	result := r.Dispatch(context.Background(), "parse_file", Params{"path": "a.py"})
	if !result.Success {
		t.Fatalf("parse failed: %s", result.Error)
	}
	tree, ok := result.Output.(*models.ParseTree)
	if !ok {
		t.Fatalf("output type %T", result.Output)
	}
	if tree.Root.Type != "module" {
		t.Errorf("root type = %s", tree.Root.Type)
	}
	if result.Metadata["language"] != "python" {
		t.Errorf("metadata = %v", result.Metadata)
	}
}

func TestDispatchParseUnsupported(t *testing.T) {
	r, dir := newRegistry(t)
	writeFile(t, filepath.Join(dir, "notes.txt"), "hi\n")

	result := r.Dispatch(context.Background(), "parse_file", Params{"path": "notes.txt"})
	if result.Success {
		t.Fatal("expected failure")
	}
	if result.Metadata["error_kind"] != "unsupported_language" {
		t.Errorf("metadata = %v", result.Metadata)
	}
	if result.Error == "" {
		t.Error("expected a short actionable message")
	}
}

func TestDispatchFindReferences(t *testing.T) {
	r, dir := newRegistry(t)
	writeFile(t, filepath.Join(dir, "a.py"), calcSource)

	result := r.Dispatch(context.Background(), "find_references", Params{
		"path": ".",
		"name": "calculate",
	})
	if !result.Success {
		t.Fatalf("find_references failed: %s", result.Error)
	}
	if result.Metadata["count"] != 3 {
		t.Errorf("count = %v", result.Metadata["count"])
	}
}

func TestDispatchFindReferencesFileTypesFromJSON(t *testing.T) {
	r, dir := newRegistry(t)
	writeFile(t, filepath.Join(dir, "a.py"), "x = 1\n")
	writeFile(t, filepath.Join(dir, "b.js"), "const x = 1;\n")

	// JSON decoding yields []any for lists; the params layer must cope.
	result := r.Dispatch(context.Background(), "find_references", Params{
		"path":       ".",
		"name":       "x",
		"file_types": []any{"py"},
	})
	if !result.Success {
		t.Fatalf("find_references failed: %s", result.Error)
	}
	refs := result.Output.(*models.ReferenceSet)
	if refs.Count() != 1 {
		t.Errorf("count = %d, want 1", refs.Count())
	}
}

func TestDispatchSymbolInfoMissIsSuccess(t *testing.T) {
	r, dir := newRegistry(t)
	writeFile(t, filepath.Join(dir, "a.py"), calcSource)

	result := r.Dispatch(context.Background(), "symbol_info", Params{
		"path": "a.py",
		"name": "nonexistent",
	})
	if !result.Success {
		t.Fatalf("a symbol miss must be success=true: %s", result.Error)
	}
	if result.Metadata["found"] != false {
		t.Errorf("metadata = %v", result.Metadata)
	}
}

func TestDispatchRenameDryRun(t *testing.T) {
	r, dir := newRegistry(t)
	path := filepath.Join(dir, "a.py")
	writeFile(t, path, calcSource)

	result := r.Dispatch(context.Background(), "rename_symbol", Params{
		"path":     ".",
		"old_name": "calculate",
		"new_name": "compute",
		"dry_run":  true,
	})
	if !result.Success {
		t.Fatalf("rename failed: %s", result.Error)
	}
	if result.Metadata["occurrences"] != 3 {
		t.Errorf("occurrences = %v", result.Metadata["occurrences"])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != calcSource {
		t.Error("dry run modified the file")
	}
}

func TestDispatchRenameInvalidArgs(t *testing.T) {
	r, dir := newRegistry(t)
	writeFile(t, filepath.Join(dir, "a.py"), calcSource)

	result := r.Dispatch(context.Background(), "rename_symbol", Params{
		"path":     ".",
		"old_name": "same",
		"new_name": "same",
	})
	if result.Success {
		t.Fatal("expected failure")
	}
	if result.Metadata["error_kind"] != "invalid_argument" {
		t.Errorf("metadata = %v", result.Metadata)
	}
}

func TestParamsGetters(t *testing.T) {
	p := Params{
		"s":    "hello",
		"b":    true,
		"list": []string{"a", "b"},
	}

	if v, ok := p.String("s"); !ok || v != "hello" {
		t.Errorf("String = %q, %v", v, ok)
	}
	if _, ok := p.String("missing"); ok {
		t.Error("missing key reported present")
	}
	if p.StringOr("missing", "dflt") != "dflt" {
		t.Error("StringOr fallback failed")
	}
	if !p.Bool("b") || p.Bool("missing") {
		t.Error("Bool getter failed")
	}
	if got := p.StringList("list"); len(got) != 2 || got[0] != "a" {
		t.Errorf("StringList = %v", got)
	}
	if p.StringList("missing") != nil {
		t.Error("missing list should be nil")
	}
}
