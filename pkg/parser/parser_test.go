package parser

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		want Language
	}{
		{"script.py", LangPython},
		{"types.pyi", LangPython},
		{"app.js", LangJavaScript},
		{"component.jsx", LangJavaScript},
		{"module.mjs", LangJavaScript},
		{"common.cjs", LangJavaScript},
		{"app.ts", LangTypeScript},
		{"component.tsx", LangTypeScript},
		{"main.rs", LangRust},
		{"main.go", LangGo},
		{"pkg/parser/parser.go", LangGo},

		// Case insensitivity
		{"MAIN.GO", LangGo},
		{"SCRIPT.PY", LangPython},

		// Unsupported
		{"file.txt", LangUnknown},
		{"file.md", LangUnknown},
		{"file.rb", LangUnknown},
		{"file", LangUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := DetectLanguage(tt.path); got != tt.want {
				t.Errorf("DetectLanguage(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	if lang, ok := Resolve(".py"); !ok || lang != LangPython {
		t.Errorf("Resolve(.py) = %v, %v", lang, ok)
	}
	if lang, ok := Resolve("PY"); !ok || lang != LangPython {
		t.Errorf("Resolve(PY) = %v, %v", lang, ok)
	}
	if _, ok := Resolve(".zig"); ok {
		t.Error("Resolve(.zig) should not resolve")
	}
}

func TestGrammar(t *testing.T) {
	for _, lang := range []Language{LangPython, LangJavaScript, LangTypeScript, LangRust, LangGo} {
		g, err := Grammar(lang)
		if err != nil {
			t.Errorf("Grammar(%s) error: %v", lang, err)
		}
		if g == nil {
			t.Errorf("Grammar(%s) returned nil", lang)
		}
	}

	if _, err := Grammar(LangUnknown); err == nil {
		t.Error("Grammar(unknown) should fail")
	}
}

func TestGrammarMemoized(t *testing.T) {
	a, _ := Grammar(LangPython)
	b, _ := Grammar(LangPython)
	if a != b {
		t.Error("Grammar should return the same instance for repeated calls")
	}
}

func TestParse(t *testing.T) {
	p := New()
	defer p.Close()

	src := []byte("def calculate(x):\n    return x * 2\n")
	result, err := p.Parse(context.Background(), src, LangPython)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if result.Tree == nil {
		t.Fatal("Parse() returned nil tree")
	}
	if result.Tree.RootNode().Type() != "module" {
		t.Errorf("root type = %q, want module", result.Tree.RootNode().Type())
	}
	if result.HasErrors() {
		t.Error("valid source should not produce error nodes")
	}
}

func TestParseErrorTolerant(t *testing.T) {
	p := New()
	defer p.Close()

	// Malformed source still yields a best-effort tree with error nodes.
	result, err := p.Parse(context.Background(), []byte("def broken(:\n"), LangPython)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if !result.HasErrors() {
		t.Error("malformed source should produce error nodes")
	}
}

func TestParseBytesUnsupported(t *testing.T) {
	p := New()
	defer p.Close()

	_, err := p.ParseBytes(context.Background(), []byte("x"), "notes.txt")
	if err == nil {
		t.Fatal("ParseBytes on .txt should fail")
	}
}

func TestWalkPreOrder(t *testing.T) {
	p := New()
	defer p.Close()

	src := []byte("x = 1\n")
	result, err := p.Parse(context.Background(), src, LangPython)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	var types []string
	WalkTyped(result.Tree.RootNode(), src, func(_ *sitter.Node, nodeType string, _ []byte) bool {
		types = append(types, nodeType)
		return true
	})

	if len(types) == 0 || types[0] != "module" {
		t.Fatalf("walk order = %v, want module first", types)
	}
	// The parent statement must precede its identifier leaf.
	stmt, ident := -1, -1
	for i, ty := range types {
		if ty == "expression_statement" && stmt < 0 {
			stmt = i
		}
		if ty == "identifier" && ident < 0 {
			ident = i
		}
	}
	if stmt < 0 || ident < 0 || stmt > ident {
		t.Errorf("expected pre-order: statement before identifier, got %v", types)
	}
}

func TestGetNodeTextBounds(t *testing.T) {
	if got := GetNodeText(nil, []byte("abc")); got != "" {
		t.Errorf("GetNodeText(nil) = %q, want empty", got)
	}
}

func TestSerialize(t *testing.T) {
	p := New()
	defer p.Close()

	src := []byte("x = 1\n")
	result, err := p.Parse(context.Background(), src, LangPython)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	// Without positions: fields omitted, not nulled.
	node := Serialize(result.Tree.RootNode(), false)
	if node.Type != "module" {
		t.Errorf("type = %q, want module", node.Type)
	}
	if node.Start != nil || node.End != nil {
		t.Error("positions should be omitted when not requested")
	}
	if len(node.Children) == 0 {
		t.Error("module should have children")
	}

	// With positions: 1-indexed lines, 0-indexed columns.
	node = Serialize(result.Tree.RootNode(), true)
	if node.Start == nil || node.Start.Line != 1 || node.Start.Column != 0 {
		t.Errorf("start = %+v, want line 1 column 0", node.Start)
	}
}

func TestSerializeTree(t *testing.T) {
	p := New()
	defer p.Close()

	result, err := p.ParseBytes(context.Background(), []byte("package main\n"), "main.go")
	if err != nil {
		t.Fatalf("ParseBytes() error: %v", err)
	}

	tree := SerializeTree(result, false)
	if tree.Language != "go" {
		t.Errorf("language = %q, want go", tree.Language)
	}
	if tree.File != "main.go" {
		t.Errorf("file = %q, want main.go", tree.File)
	}
	if tree.NodeCount < 2 {
		t.Errorf("node count = %d, want at least 2", tree.NodeCount)
	}
	if tree.HasErrors {
		t.Error("valid go source should not report errors")
	}
}
