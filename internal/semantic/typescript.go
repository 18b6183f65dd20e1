package semantic

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/chiseltools/chisel/pkg/models"
)

// typescriptTable extends the JavaScript rules with TypeScript-only
// declaration forms.
var typescriptTable = func() table {
	t := table{
		"interface_declaration":      extractTSInterface,
		"type_alias_declaration":     extractTSTypeAlias,
		"enum_declaration":           extractTSEnum,
		"abstract_class_declaration": extractJSClass,
	}
	for nodeType, fn := range javascriptTable {
		t[nodeType] = fn
	}
	return t
}()

func extractTSInterface(node *sitter.Node, source []byte) *models.SymbolInfo {
	name := nameOf(node, source)
	if name == "" {
		return nil
	}
	return &models.SymbolInfo{
		Kind:      models.SymbolInterface,
		Name:      name,
		Docstring: docComment(node, source),
	}
}

func extractTSTypeAlias(node *sitter.Node, source []byte) *models.SymbolInfo {
	name := nameOf(node, source)
	if name == "" {
		return nil
	}
	return &models.SymbolInfo{
		Kind:      models.SymbolType,
		Name:      name,
		Docstring: docComment(node, source),
	}
}

func extractTSEnum(node *sitter.Node, source []byte) *models.SymbolInfo {
	name := nameOf(node, source)
	if name == "" {
		return nil
	}
	return &models.SymbolInfo{
		Kind:      models.SymbolType,
		Name:      name,
		Docstring: docComment(node, source),
	}
}
