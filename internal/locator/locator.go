// Package locator finds identifier occurrences in parsed syntax trees.
package locator

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/chiseltools/chisel/pkg/models"
	"github.com/chiseltools/chisel/pkg/parser"
)

// identifierTypes lists, per language, the grammar node types that tag
// identifier/name leaf tokens. Matching only these types is what keeps
// identifiers inside string literals and comments from ever counting: those
// subtrees carry different node types.
var identifierTypes = map[parser.Language][]string{
	parser.LangPython: {
		"identifier",
	},
	parser.LangJavaScript: {
		"identifier",
		"property_identifier",
		"shorthand_property_identifier",
		"shorthand_property_identifier_pattern",
	},
	parser.LangTypeScript: {
		"identifier",
		"property_identifier",
		"shorthand_property_identifier",
		"shorthand_property_identifier_pattern",
		"type_identifier",
	},
	parser.LangRust: {
		"identifier",
		"type_identifier",
		"field_identifier",
	},
	parser.LangGo: {
		"identifier",
		"field_identifier",
		"type_identifier",
		"package_identifier",
	},
}

// IsIdentifierType reports whether nodeType tags an identifier leaf in the
// given language.
func IsIdentifierType(lang parser.Language, nodeType string) bool {
	for _, t := range identifierTypes[lang] {
		if t == nodeType {
			return true
		}
	}
	return false
}

// Find collects every identifier leaf whose exact source text equals name,
// in pre-order traversal order. The match is case-sensitive and whole-token:
// an identifier leaf's text is the complete token. Both defining occurrences
// and reference sites are collected uniformly; distinguishing them is left
// to callers.
func Find(result *parser.ParseResult, name string) []models.Occurrence {
	if result == nil || result.Tree == nil || name == "" {
		return nil
	}

	types := identifierTypes[result.Language]
	if len(types) == 0 {
		return nil
	}

	var occurrences []models.Occurrence
	parser.WalkTyped(result.Tree.RootNode(), result.Source, func(node *sitter.Node, nodeType string, source []byte) bool {
		for _, t := range types {
			if nodeType != t {
				continue
			}
			if parser.GetNodeText(node, source) == name {
				start := node.StartPoint()
				occurrences = append(occurrences, models.Occurrence{
					File:      result.Path,
					Line:      start.Row + 1,
					Column:    start.Column,
					StartByte: node.StartByte(),
					EndByte:   node.EndByte(),
				})
			}
			break
		}
		return true
	})

	return occurrences
}
