package semantic

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/chiseltools/chisel/pkg/models"
	"github.com/chiseltools/chisel/pkg/parser"
)

var goTable = table{
	"function_declaration": extractGoFunction,
	"method_declaration":   extractGoMethod,
	"type_spec":            extractGoType,
	"const_spec":           extractGoConst,
	"var_spec":             extractGoVar,
}

func extractGoFunction(node *sitter.Node, source []byte) *models.SymbolInfo {
	name := nameOf(node, source)
	if name == "" {
		return nil
	}
	return &models.SymbolInfo{
		Kind:       models.SymbolFunction,
		Name:       name,
		Parameters: goParameters(node.ChildByFieldName("parameters"), source),
		Docstring:  docComment(node, source),
	}
}

func extractGoMethod(node *sitter.Node, source []byte) *models.SymbolInfo {
	name := nameOf(node, source)
	if name == "" {
		return nil
	}
	return &models.SymbolInfo{
		Kind:       models.SymbolMethod,
		Name:       name,
		Parameters: goParameters(node.ChildByFieldName("parameters"), source),
		Docstring:  docComment(node, source),
	}
}

func extractGoType(node *sitter.Node, source []byte) *models.SymbolInfo {
	name := nameOf(node, source)
	if name == "" {
		return nil
	}

	kind := models.SymbolType
	if typeNode := node.ChildByFieldName("type"); typeNode != nil {
		switch typeNode.Type() {
		case "struct_type":
			kind = models.SymbolStruct
		case "interface_type":
			kind = models.SymbolInterface
		}
	}

	return &models.SymbolInfo{
		Kind:      kind,
		Name:      name,
		Docstring: docComment(node, source),
	}
}

func extractGoConst(node *sitter.Node, source []byte) *models.SymbolInfo {
	name := nameOf(node, source)
	if name == "" {
		return nil
	}
	return &models.SymbolInfo{
		Kind:      models.SymbolConstant,
		Name:      name,
		Docstring: docComment(node, source),
	}
}

func extractGoVar(node *sitter.Node, source []byte) *models.SymbolInfo {
	name := nameOf(node, source)
	if name == "" {
		return nil
	}
	return &models.SymbolInfo{
		Kind:      models.SymbolVariable,
		Name:      name,
		Docstring: docComment(node, source),
	}
}

// goParameters flattens a parameter_list. One parameter_declaration can
// declare several names sharing the same type (a, b int).
func goParameters(params *sitter.Node, source []byte) []models.Parameter {
	if params == nil {
		return nil
	}

	var out []models.Parameter
	for i := range int(params.NamedChildCount()) {
		decl := params.NamedChild(i)
		switch decl.Type() {
		case "parameter_declaration", "variadic_parameter_declaration":
			typeText := parser.GetNodeText(decl.ChildByFieldName("type"), source)
			if decl.Type() == "variadic_parameter_declaration" {
				typeText = "..." + typeText
			}
			names := 0
			for j := range int(decl.NamedChildCount()) {
				sub := decl.NamedChild(j)
				if sub.Type() == "identifier" {
					out = append(out, models.Parameter{
						Name: parser.GetNodeText(sub, source),
						Type: typeText,
					})
					names++
				}
			}
			// Unnamed parameter (type only), e.g. func(io.Reader).
			if names == 0 && typeText != "" {
				out = append(out, models.Parameter{Type: typeText})
			}
		}
	}
	return out
}
