package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	toon "github.com/toon-format/toon-go"

	"github.com/chiseltools/chisel/internal/service/code"
)

// Input structures for tools

// ParseFileInput selects a file to parse.
type ParseFileInput struct {
	Path             string `json:"path" jsonschema:"Path to the source file, relative to the working root."`
	IncludePositions bool   `json:"include_positions,omitempty" jsonschema:"Include 1-indexed line and 0-indexed column positions on every node."`
	Format           string `json:"format,omitempty" jsonschema:"Output format: toon (default) or json."`
}

// FindReferencesInput selects an identifier search.
type FindReferencesInput struct {
	Path      string   `json:"path" jsonschema:"File or directory to search."`
	Name      string   `json:"name" jsonschema:"Identifier to look for. Matching is exact and case-sensitive."`
	FileTypes []string `json:"file_types,omitempty" jsonschema:"Restrict the search to these file extensions, e.g. [\"py\"]."`
	Format    string   `json:"format,omitempty" jsonschema:"Output format: toon (default) or json."`
}

// SymbolInfoInput selects a symbol lookup.
type SymbolInfoInput struct {
	Path   string `json:"path" jsonschema:"Path to the source file."`
	Name   string `json:"name" jsonschema:"Symbol name to look up. The first definition in traversal order is reported."`
	Format string `json:"format,omitempty" jsonschema:"Output format: toon (default) or json."`
}

// RenameSymbolInput selects a rename operation.
type RenameSymbolInput struct {
	Path      string   `json:"path" jsonschema:"File or directory to rename within."`
	OldName   string   `json:"old_name" jsonschema:"Identifier to replace."`
	NewName   string   `json:"new_name" jsonschema:"Replacement identifier."`
	FileTypes []string `json:"file_types,omitempty" jsonschema:"Restrict the rename to these file extensions."`
	DryRun    bool     `json:"dry_run,omitempty" jsonschema:"Compute and report the rename without writing any file."`
	Format    string   `json:"format,omitempty" jsonschema:"Output format: toon (default) or json."`
}

// Helper functions

func formatOutput(data any, format string) (string, error) {
	switch format {
	case "json":
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return "", err
		}
		return string(out), nil
	default:
		out, err := toon.Marshal(data, toon.WithIndent(2))
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
}

func toolResult(data any, format string) (*mcp.CallToolResult, any, error) {
	text, err := formatOutput(data, format)
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

// Tool handlers

func handleParseFile(ctx context.Context, req *mcp.CallToolRequest, input ParseFileInput) (*mcp.CallToolResult, any, error) {
	svc := code.New()
	tree, err := svc.Parse(ctx, input.Path, input.IncludePositions)
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(tree, input.Format)
}

func handleFindReferences(ctx context.Context, req *mcp.CallToolRequest, input FindReferencesInput) (*mcp.CallToolResult, any, error) {
	svc := code.New()
	refs, err := svc.FindReferences(ctx, input.Path, input.Name, input.FileTypes)
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(refs, input.Format)
}

func handleSymbolInfo(ctx context.Context, req *mcp.CallToolRequest, input SymbolInfoInput) (*mcp.CallToolResult, any, error) {
	svc := code.New()
	result, err := svc.SymbolInfo(ctx, input.Path, input.Name)
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(result, input.Format)
}

func handleRenameSymbol(ctx context.Context, req *mcp.CallToolRequest, input RenameSymbolInput) (*mcp.CallToolResult, any, error) {
	svc := code.New()
	result, err := svc.Rename(ctx, input.Path, input.OldName, input.NewName, input.FileTypes, input.DryRun)
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(result, input.Format)
}
