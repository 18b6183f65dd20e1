package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/chiseltools/chisel/pkg/models"
)

// Serialize converts a tree node into its language-agnostic form, recursing
// over children in original order. When includePositions is false, the
// position fields are omitted entirely rather than nulled, keeping payloads
// compact. Lines are 1-indexed, columns 0-indexed.
func Serialize(node *sitter.Node, includePositions bool) *models.SerializedNode {
	if node == nil {
		return nil
	}

	out := &models.SerializedNode{Type: node.Type()}
	if includePositions {
		start := node.StartPoint()
		end := node.EndPoint()
		out.Start = &models.Position{Line: start.Row + 1, Column: start.Column}
		out.End = &models.Position{Line: end.Row + 1, Column: end.Column}
	}

	count := int(node.ChildCount())
	if count > 0 {
		out.Children = make([]*models.SerializedNode, 0, count)
		for i := range count {
			out.Children = append(out.Children, Serialize(node.Child(i), includePositions))
		}
	}
	return out
}

// SerializeTree serializes a whole parse result, including file metadata.
func SerializeTree(result *ParseResult, includePositions bool) *models.ParseTree {
	root := Serialize(result.Tree.RootNode(), includePositions)
	return &models.ParseTree{
		File:      result.Path,
		Language:  string(result.Language),
		HasErrors: result.HasErrors(),
		NodeCount: root.NodeCount(),
		Root:      root,
	}
}
