package semantic

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/chiseltools/chisel/pkg/models"
	"github.com/chiseltools/chisel/pkg/parser"
)

var rustTable = table{
	"function_item": extractRustFunction,
	"struct_item":   rustNamed(models.SymbolStruct),
	"enum_item":     rustNamed(models.SymbolType),
	"trait_item":    rustNamed(models.SymbolInterface),
	"type_item":     rustNamed(models.SymbolType),
	"const_item":    rustNamed(models.SymbolConstant),
	"static_item":   rustNamed(models.SymbolVariable),
}

func extractRustFunction(node *sitter.Node, source []byte) *models.SymbolInfo {
	name := nameOf(node, source)
	if name == "" {
		return nil
	}

	kind := models.SymbolFunction
	if hasAncestor(node, "impl_item", "function_item") ||
		hasAncestor(node, "trait_item", "function_item") {
		kind = models.SymbolMethod
	}

	return &models.SymbolInfo{
		Kind:       kind,
		Name:       name,
		Parameters: rustParameters(node.ChildByFieldName("parameters"), source),
		Docstring:  docComment(node, source),
	}
}

// rustNamed builds an extractor for item kinds that only need a name and
// leading doc comment.
func rustNamed(kind models.SymbolKind) extractFunc {
	return func(node *sitter.Node, source []byte) *models.SymbolInfo {
		name := nameOf(node, source)
		if name == "" {
			return nil
		}
		return &models.SymbolInfo{
			Kind:      kind,
			Name:      name,
			Docstring: docComment(node, source),
		}
	}
}

func rustParameters(params *sitter.Node, source []byte) []models.Parameter {
	if params == nil {
		return nil
	}

	var out []models.Parameter
	for i := range int(params.NamedChildCount()) {
		child := params.NamedChild(i)
		switch child.Type() {
		case "parameter":
			p := models.Parameter{
				Name: parser.GetNodeText(child.ChildByFieldName("pattern"), source),
			}
			if typeNode := child.ChildByFieldName("type"); typeNode != nil {
				p.Type = parser.GetNodeText(typeNode, source)
			}
			if p.Name != "" {
				out = append(out, p)
			}
		case "self_parameter":
			out = append(out, models.Parameter{Name: parser.GetNodeText(child, source)})
		}
	}
	return out
}
