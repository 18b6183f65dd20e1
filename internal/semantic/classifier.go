// Package semantic classifies named definitions in parsed syntax trees.
// A per-language table maps definition-shaped node types to extraction
// rules, so adding a language is a table entry rather than new control flow.
package semantic

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/chiseltools/chisel/pkg/models"
	"github.com/chiseltools/chisel/pkg/parser"
)

// extractFunc pulls a SymbolInfo out of one definition-shaped node, or
// returns nil when the node carries no usable name.
type extractFunc func(node *sitter.Node, source []byte) *models.SymbolInfo

// table maps grammar node types to their extraction rules.
type table map[string]extractFunc

func tableFor(lang parser.Language) table {
	switch lang {
	case parser.LangPython:
		return pythonTable
	case parser.LangJavaScript:
		return javascriptTable
	case parser.LangTypeScript:
		return typescriptTable
	case parser.LangRust:
		return rustTable
	case parser.LangGo:
		return goTable
	default:
		return nil
	}
}

// Locate finds the first definition of name in pre-order traversal of the
// whole file. Duplicate definitions (overloads, reassignment) are not
// enumerated: first match wins. A miss returns found=false and is a normal
// result, never an error.
func Locate(result *parser.ParseResult, name string) (*models.SymbolInfo, bool) {
	if result == nil || result.Tree == nil || name == "" {
		return nil, false
	}

	tbl := tableFor(result.Language)
	if tbl == nil {
		return nil, false
	}

	var found *models.SymbolInfo
	parser.WalkTyped(result.Tree.RootNode(), result.Source, func(node *sitter.Node, nodeType string, source []byte) bool {
		if found != nil {
			return false
		}
		extract, ok := tbl[nodeType]
		if !ok {
			return true
		}
		info := extract(node, source)
		if info == nil || info.Name != name {
			// Keep descending: the target may be nested inside this
			// definition (a method in a class, a local function).
			return true
		}
		info.File = result.Path
		info.Line = node.StartPoint().Row + 1
		found = info
		return false
	})

	return found, found != nil
}

// nameOf returns the text of a node's "name" field.
func nameOf(node *sitter.Node, source []byte) string {
	return parser.GetNodeText(node.ChildByFieldName("name"), source)
}

// hasAncestor reports whether the nearest enclosing node among the given
// types is of wantType, stopping the climb at any of the other types. Used
// to tell methods (enclosed by a class/impl before any function) apart from
// plain and nested functions.
func hasAncestor(node *sitter.Node, wantType string, stopTypes ...string) bool {
	for n := node.Parent(); n != nil; n = n.Parent() {
		t := n.Type()
		if t == wantType {
			return true
		}
		for _, stop := range stopTypes {
			if t == stop {
				return false
			}
		}
	}
	return false
}

// wrapperTypes are container nodes that share their first child's source
// position for documentation purposes: a comment above a type_declaration
// documents the type_spec inside it.
var wrapperTypes = map[string]bool{
	"type_declaration":     true,
	"const_declaration":    true,
	"var_declaration":      true,
	"decorated_definition": true,
	"export_statement":     true,
	"lexical_declaration":  true,
	"variable_declaration": true,
	"variable_declarator":  true,
}

// commentTypes are the grammar tags for comments across the supported
// languages.
var commentTypes = map[string]bool{
	"comment":       true,
	"line_comment":  true,
	"block_comment": true,
}

// docComment collects the contiguous comment block immediately preceding a
// definition. The climb through wrapper nodes makes `// doc` above
// `type Foo struct` attach to the type_spec, and a decorator or export
// keyword not break the association.
func docComment(node *sitter.Node, source []byte) string {
	n := node
	for n.Parent() != nil && wrapperTypes[n.Parent().Type()] {
		n = n.Parent()
	}

	var lines []string
	expected := int(n.StartPoint().Row)
	for prev := n.PrevNamedSibling(); prev != nil; prev = prev.PrevNamedSibling() {
		if !commentTypes[prev.Type()] {
			break
		}
		// Only a comment ending on the line directly above stays attached.
		if int(prev.EndPoint().Row) < expected-1 {
			break
		}
		lines = append([]string{parser.GetNodeText(prev, source)}, lines...)
		expected = int(prev.StartPoint().Row)
	}
	return strings.Join(lines, "\n")
}

// stringContent strips the quoting from a string literal node's text.
func stringContent(node *sitter.Node, source []byte) string {
	raw := parser.GetNodeText(node, source)
	if strings.HasPrefix(raw, `"""`) || strings.HasPrefix(raw, `'''`) {
		return strings.Trim(raw, `"'`)
	}
	return strings.Trim(raw, `"'`)
}

// annotationText strips the leading colon from a type annotation node.
func annotationText(node *sitter.Node, source []byte) string {
	text := parser.GetNodeText(node, source)
	text = strings.TrimPrefix(text, ":")
	return strings.TrimSpace(text)
}
