package semantic

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/chiseltools/chisel/pkg/models"
	"github.com/chiseltools/chisel/pkg/parser"
)

var pythonTable = table{
	"function_definition": extractPythonFunction,
	"class_definition":    extractPythonClass,
	"assignment":          extractPythonAssignment,
}

func extractPythonFunction(node *sitter.Node, source []byte) *models.SymbolInfo {
	name := nameOf(node, source)
	if name == "" {
		return nil
	}

	kind := models.SymbolFunction
	if hasAncestor(node, "class_definition", "function_definition") {
		kind = models.SymbolMethod
	}

	return &models.SymbolInfo{
		Kind:       kind,
		Name:       name,
		Parameters: pythonParameters(node.ChildByFieldName("parameters"), source),
		Docstring:  pythonDocstring(node.ChildByFieldName("body"), source),
	}
}

func extractPythonClass(node *sitter.Node, source []byte) *models.SymbolInfo {
	name := nameOf(node, source)
	if name == "" {
		return nil
	}
	return &models.SymbolInfo{
		Kind:      models.SymbolClass,
		Name:      name,
		Docstring: pythonDocstring(node.ChildByFieldName("body"), source),
	}
}

func extractPythonAssignment(node *sitter.Node, source []byte) *models.SymbolInfo {
	left := node.ChildByFieldName("left")
	if left == nil || left.Type() != "identifier" {
		return nil
	}
	return &models.SymbolInfo{
		Kind: models.SymbolVariable,
		Name: parser.GetNodeText(left, source),
	}
}

// pythonParameters walks a "parameters" node, keeping declaration order and
// the annotation text where present.
func pythonParameters(params *sitter.Node, source []byte) []models.Parameter {
	if params == nil {
		return nil
	}

	var out []models.Parameter
	for i := range int(params.NamedChildCount()) {
		child := params.NamedChild(i)
		switch child.Type() {
		case "identifier":
			out = append(out, models.Parameter{Name: parser.GetNodeText(child, source)})
		case "typed_parameter":
			p := models.Parameter{}
			for j := range int(child.NamedChildCount()) {
				sub := child.NamedChild(j)
				switch sub.Type() {
				case "identifier", "list_splat_pattern", "dictionary_splat_pattern":
					p.Name = parser.GetNodeText(sub, source)
				case "type":
					p.Type = parser.GetNodeText(sub, source)
				}
			}
			if p.Name != "" {
				out = append(out, p)
			}
		case "default_parameter", "typed_default_parameter":
			p := models.Parameter{
				Name: parser.GetNodeText(child.ChildByFieldName("name"), source),
			}
			if typeNode := child.ChildByFieldName("type"); typeNode != nil {
				p.Type = parser.GetNodeText(typeNode, source)
			}
			if p.Name != "" {
				out = append(out, p)
			}
		case "list_splat_pattern", "dictionary_splat_pattern":
			out = append(out, models.Parameter{Name: parser.GetNodeText(child, source)})
		}
	}
	return out
}

// pythonDocstring returns the docstring when the body's first statement is a
// bare string literal, per Python convention.
func pythonDocstring(body *sitter.Node, source []byte) string {
	if body == nil || body.NamedChildCount() == 0 {
		return ""
	}
	first := body.NamedChild(0)
	if first.Type() != "expression_statement" || first.NamedChildCount() == 0 {
		return ""
	}
	str := first.NamedChild(0)
	if str.Type() != "string" {
		return ""
	}
	return stringContent(str, source)
}
