package semantic

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/chiseltools/chisel/pkg/models"
	"github.com/chiseltools/chisel/pkg/parser"
)

var javascriptTable = table{
	"function_declaration":           extractJSFunction,
	"generator_function_declaration": extractJSFunction,
	"method_definition":              extractJSMethod,
	"class_declaration":              extractJSClass,
	"variable_declarator":            extractJSVariable,
}

func extractJSFunction(node *sitter.Node, source []byte) *models.SymbolInfo {
	name := nameOf(node, source)
	if name == "" {
		return nil
	}
	return &models.SymbolInfo{
		Kind:       models.SymbolFunction,
		Name:       name,
		Parameters: jsParameters(node.ChildByFieldName("parameters"), source),
		Docstring:  docComment(node, source),
	}
}

func extractJSMethod(node *sitter.Node, source []byte) *models.SymbolInfo {
	name := nameOf(node, source)
	if name == "" {
		return nil
	}
	return &models.SymbolInfo{
		Kind:       models.SymbolMethod,
		Name:       name,
		Parameters: jsParameters(node.ChildByFieldName("parameters"), source),
		Docstring:  docComment(node, source),
	}
}

func extractJSClass(node *sitter.Node, source []byte) *models.SymbolInfo {
	name := nameOf(node, source)
	if name == "" {
		return nil
	}
	return &models.SymbolInfo{
		Kind:      models.SymbolClass,
		Name:      name,
		Docstring: docComment(node, source),
	}
}

// extractJSVariable handles both plain declarations and the common
// const f = () => {} idiom, which classifies as a function with the arrow's
// parameter list.
func extractJSVariable(node *sitter.Node, source []byte) *models.SymbolInfo {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil || nameNode.Type() != "identifier" {
		return nil
	}

	info := &models.SymbolInfo{
		Kind:      models.SymbolVariable,
		Name:      parser.GetNodeText(nameNode, source),
		Docstring: docComment(node, source),
	}

	if value := node.ChildByFieldName("value"); value != nil {
		switch value.Type() {
		case "arrow_function", "function", "function_expression", "generator_function":
			info.Kind = models.SymbolFunction
			info.Parameters = jsParameters(value.ChildByFieldName("parameters"), source)
		}
	}
	return info
}

// jsParameters walks a formal_parameters node. TypeScript parameter wrappers
// (required_parameter, optional_parameter) are handled here too so the two
// tables can share the helper.
func jsParameters(params *sitter.Node, source []byte) []models.Parameter {
	if params == nil {
		return nil
	}

	var out []models.Parameter
	for i := range int(params.NamedChildCount()) {
		child := params.NamedChild(i)
		switch child.Type() {
		case "identifier":
			out = append(out, models.Parameter{Name: parser.GetNodeText(child, source)})
		case "assignment_pattern":
			if left := child.ChildByFieldName("left"); left != nil {
				out = append(out, models.Parameter{Name: parser.GetNodeText(left, source)})
			}
		case "rest_pattern", "object_pattern", "array_pattern":
			out = append(out, models.Parameter{Name: parser.GetNodeText(child, source)})
		case "required_parameter", "optional_parameter":
			p := models.Parameter{
				Name: parser.GetNodeText(child.ChildByFieldName("pattern"), source),
			}
			if child.Type() == "optional_parameter" {
				p.Name += "?"
			}
			if typeNode := child.ChildByFieldName("type"); typeNode != nil {
				p.Type = annotationText(typeNode, source)
			}
			if p.Name != "" && p.Name != "?" {
				out = append(out, p)
			}
		}
	}
	return out
}
