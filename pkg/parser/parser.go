// Package parser wraps tree-sitter for multi-language concrete syntax tree
// parsing. It owns the extension-to-language table and memoizes one grammar
// per language for the process lifetime.
package parser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Language identifies a supported language.
type Language string

const (
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangRust       Language = "rust"
	LangGo         Language = "go"
	LangUnknown    Language = "unknown"
)

// ErrUnsupportedFileType is returned when no grammar covers a file extension.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// ErrParseFailed is returned when the grammar library fails outright
// (e.g. on binary input). Malformed source normally still yields a
// best-effort tree containing error nodes instead.
var ErrParseFailed = errors.New("parse failed")

// extensions maps normalized file extensions to language ids. The file set
// resolver filters on plain extension membership against this table's keys,
// so a filter like "py" stays stable independent of grammar coverage.
var extensions = map[string]Language{
	"py":  LangPython,
	"pyi": LangPython,
	"js":  LangJavaScript,
	"jsx": LangJavaScript,
	"mjs": LangJavaScript,
	"cjs": LangJavaScript,
	"ts":  LangTypeScript,
	"tsx": LangTypeScript,
	"rs":  LangRust,
	"go":  LangGo,
}

// NormalizeExt lowercases an extension and strips a leading dot.
func NormalizeExt(ext string) string {
	return strings.TrimPrefix(strings.ToLower(ext), ".")
}

// Resolve maps a file extension to a language id. The second return is false
// for unsupported extensions; callers treat that as a fatal
// "unsupported file type" condition.
func Resolve(ext string) (Language, bool) {
	lang, ok := extensions[NormalizeExt(ext)]
	return lang, ok
}

// DetectLanguage determines the language from a file path.
func DetectLanguage(path string) Language {
	if lang, ok := Resolve(filepath.Ext(path)); ok {
		return lang
	}
	return LangUnknown
}

// SupportedExtensions returns every extension with grammar coverage.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(extensions))
	for ext := range extensions {
		exts = append(exts, ext)
	}
	return exts
}

// grammars memoizes one tree-sitter grammar per language for the process
// lifetime. Grammar objects are immutable and shared read-only across all
// concurrent invocations; sitter.Parser instances are not, so those are
// created per call site.
var (
	grammarMu sync.Mutex
	grammars  = map[string]*sitter.Language{}
)

func grammar(key string, build func() *sitter.Language) *sitter.Language {
	grammarMu.Lock()
	defer grammarMu.Unlock()
	if g, ok := grammars[key]; ok {
		return g
	}
	g := build()
	grammars[key] = g
	return g
}

// Grammar returns the memoized tree-sitter grammar for a language.
func Grammar(lang Language) (*sitter.Language, error) {
	switch lang {
	case LangPython:
		return grammar("python", python.GetLanguage), nil
	case LangJavaScript:
		return grammar("javascript", javascript.GetLanguage), nil
	case LangTypeScript:
		return grammar("typescript", typescript.GetLanguage), nil
	case LangRust:
		return grammar("rust", rust.GetLanguage), nil
	case LangGo:
		return grammar("go", golang.GetLanguage), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, lang)
	}
}

// grammarForFile picks the concrete grammar for a path. TSX files keep the
// typescript language id but need the JSX-aware grammar variant; the
// JavaScript grammar already handles JSX.
func grammarForFile(path string) (*sitter.Language, Language, error) {
	lang := DetectLanguage(path)
	if lang == LangUnknown {
		return nil, lang, fmt.Errorf("%w: %s", ErrUnsupportedFileType, filepath.Base(path))
	}
	if NormalizeExt(filepath.Ext(path)) == "tsx" {
		return grammar("tsx", tsx.GetLanguage), lang, nil
	}
	g, err := Grammar(lang)
	return g, lang, err
}

// Parser wraps a tree-sitter parser. Not safe for concurrent use; create one
// per worker.
type Parser struct {
	parser *sitter.Parser
}

// ParseResult contains a parsed tree and its inputs. The tree is owned by the
// underlying parser library for the lifetime of one parse and is immutable
// once produced.
type ParseResult struct {
	Tree     *sitter.Tree
	Language Language
	Source   []byte
	Path     string
}

// HasErrors reports whether the tree contains error-tagged nodes. Such nodes
// are otherwise opaque, ordinary nodes; no repair is attempted.
func (r *ParseResult) HasErrors() bool {
	return r.Tree != nil && r.Tree.RootNode().HasError()
}

// New creates a new parser instance.
func New() *Parser {
	return &Parser{parser: sitter.NewParser()}
}

// Close releases parser resources.
func (p *Parser) Close() {
	p.parser.Close()
}

// Parse parses source bytes with the given language's grammar. Pure per
// call: no state survives between parses beyond the parser's language
// setting.
func (p *Parser) Parse(ctx context.Context, source []byte, lang Language) (*ParseResult, error) {
	g, err := Grammar(lang)
	if err != nil {
		return nil, err
	}
	return p.parseWith(ctx, source, g, lang, "")
}

// ParseFile reads and parses a single file, selecting the grammar from its
// extension.
func (p *Parser) ParseFile(ctx context.Context, path string) (*ParseResult, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return p.ParseBytes(ctx, source, path)
}

// ParseBytes parses already-read source for a path, selecting the grammar
// from the path's extension.
func (p *Parser) ParseBytes(ctx context.Context, source []byte, path string) (*ParseResult, error) {
	g, lang, err := grammarForFile(path)
	if err != nil {
		return nil, err
	}
	return p.parseWith(ctx, source, g, lang, path)
}

func (p *Parser) parseWith(ctx context.Context, source []byte, g *sitter.Language, lang Language, path string) (*ParseResult, error) {
	p.parser.SetLanguage(g)
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}
	if tree == nil || tree.RootNode() == nil {
		return nil, ErrParseFailed
	}
	return &ParseResult{
		Tree:     tree,
		Language: lang,
		Source:   source,
		Path:     path,
	}, nil
}

// NodeVisitor is called for each node during a walk. Returning false stops
// descent into the node's children.
type NodeVisitor func(node *sitter.Node, source []byte) bool

// TypedNodeVisitor receives the node type pre-cached to avoid repeated CGO
// calls on hot paths.
type TypedNodeVisitor func(node *sitter.Node, nodeType string, source []byte) bool

// Walk traverses the tree pre-order, children in original order.
func Walk(node *sitter.Node, source []byte, visitor NodeVisitor) {
	if node == nil {
		return
	}
	if !visitor(node, source) {
		return
	}
	for i := range int(node.ChildCount()) {
		Walk(node.Child(i), source, visitor)
	}
}

// WalkTyped traverses the tree pre-order with cached node types.
func WalkTyped(node *sitter.Node, source []byte, visitor TypedNodeVisitor) {
	if node == nil {
		return
	}
	nodeType := node.Type()
	if !visitor(node, nodeType, source) {
		return
	}
	for i := range int(node.ChildCount()) {
		WalkTyped(node.Child(i), source, visitor)
	}
}

// GetNodeText extracts the source text for a node. Returns empty string if
// the node is nil or its byte offsets are out of bounds.
func GetNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start := node.StartByte()
	end := node.EndByte()
	if start > end || end > uint32(len(source)) {
		return ""
	}
	return string(source[start:end])
}
