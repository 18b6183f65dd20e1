package tool

import (
	"context"

	"github.com/chiseltools/chisel/internal/service/code"
)

// errorResult maps a classified service error onto the contract shape.
func errorResult(err error) *Result {
	meta := map[string]any{}
	if kind, ok := code.KindOf(err); ok {
		meta["error_kind"] = string(kind)
	}
	return Fail(err.Error(), meta)
}

// ParseTool serializes one source file's syntax tree.
type ParseTool struct {
	Service *code.Service
}

func (t *ParseTool) Definition() Definition {
	return Definition{
		Name:        "parse_file",
		Description: "Parse a source file and return its concrete syntax tree.",
		Parameters: map[string]ParamDef{
			"path": {
				Type:        ParamTypeString,
				Description: "Path to the source file, relative to the working root.",
				Required:    true,
			},
			"include_positions": {
				Type:        ParamTypeBool,
				Description: "Include line/column positions on every node.",
				Default:     false,
			},
		},
	}
}

func (t *ParseTool) Execute(ctx context.Context, params Params) *Result {
	path, _ := params.String("path")
	tree, err := t.Service.Parse(ctx, path, params.Bool("include_positions"))
	if err != nil {
		return errorResult(err)
	}
	return Ok(tree, map[string]any{
		"language":   tree.Language,
		"node_count": tree.NodeCount,
		"has_errors": tree.HasErrors,
	})
}

// FindReferencesTool locates identifier occurrences across a file set.
type FindReferencesTool struct {
	Service *code.Service
}

func (t *FindReferencesTool) Definition() Definition {
	return Definition{
		Name:        "find_references",
		Description: "Find every occurrence of an identifier across a file or directory.",
		Parameters: map[string]ParamDef{
			"path": {
				Type:        ParamTypeString,
				Description: "File or directory to search.",
				Required:    true,
			},
			"name": {
				Type:        ParamTypeString,
				Description: "Identifier to look for (exact, case-sensitive match).",
				Required:    true,
			},
			"file_types": {
				Type:        ParamTypeList,
				Description: "Restrict to these file extensions, e.g. [\"py\"].",
			},
		},
	}
}

func (t *FindReferencesTool) Execute(ctx context.Context, params Params) *Result {
	path, _ := params.String("path")
	name, _ := params.String("name")
	refs, err := t.Service.FindReferences(ctx, path, name, params.StringList("file_types"))
	if err != nil {
		return errorResult(err)
	}
	return Ok(refs, map[string]any{
		"count":         refs.Count(),
		"files_scanned": refs.FilesScanned,
		"files_skipped": len(refs.FilesSkipped),
		"languages":     refs.Languages,
	})
}

// SymbolInfoTool reports the first definition of a name in one file.
type SymbolInfoTool struct {
	Service *code.Service
}

func (t *SymbolInfoTool) Definition() Definition {
	return Definition{
		Name:        "symbol_info",
		Description: "Describe the first definition of a symbol in a source file.",
		Parameters: map[string]ParamDef{
			"path": {
				Type:        ParamTypeString,
				Description: "Path to the source file.",
				Required:    true,
			},
			"name": {
				Type:        ParamTypeString,
				Description: "Symbol name to look up.",
				Required:    true,
			},
		},
	}
}

func (t *SymbolInfoTool) Execute(ctx context.Context, params Params) *Result {
	path, _ := params.String("path")
	name, _ := params.String("name")
	result, err := t.Service.SymbolInfo(ctx, path, name)
	if err != nil {
		return errorResult(err)
	}
	return Ok(result, map[string]any{"found": result.Found})
}

// RenameTool applies a cross-file textual rename.
type RenameTool struct {
	Service *code.Service
}

func (t *RenameTool) Definition() Definition {
	return Definition{
		Name:        "rename_symbol",
		Description: "Rename every occurrence of an identifier across a file or directory.",
		Parameters: map[string]ParamDef{
			"path": {
				Type:        ParamTypeString,
				Description: "File or directory to rename within.",
				Required:    true,
			},
			"old_name": {
				Type:        ParamTypeString,
				Description: "Identifier to replace.",
				Required:    true,
			},
			"new_name": {
				Type:        ParamTypeString,
				Description: "Replacement identifier.",
				Required:    true,
			},
			"file_types": {
				Type:        ParamTypeList,
				Description: "Restrict to these file extensions.",
			},
			"dry_run": {
				Type:        ParamTypeBool,
				Description: "Compute and report the rename without writing files.",
				Default:     false,
			},
		},
		SideEffects: true,
	}
}

func (t *RenameTool) Execute(ctx context.Context, params Params) *Result {
	path, _ := params.String("path")
	oldName, _ := params.String("old_name")
	newName, _ := params.String("new_name")
	result, err := t.Service.Rename(ctx, path, oldName, newName,
		params.StringList("file_types"), params.Bool("dry_run"))
	if err != nil {
		return errorResult(err)
	}
	return Ok(result, map[string]any{
		"occurrences":    result.Occurrences,
		"files_modified": result.FilesModified,
		"dry_run":        result.DryRun,
	})
}

// DefaultRegistry builds a registry holding the four code tools bound to
// one service instance.
func DefaultRegistry(svc *code.Service) *Registry {
	r := NewRegistry()
	for _, t := range []Tool{
		&ParseTool{Service: svc},
		&FindReferencesTool{Service: svc},
		&SymbolInfoTool{Service: svc},
		&RenameTool{Service: svc},
	} {
		// Names are unique by construction.
		_ = r.Register(t)
	}
	return r
}
