package models

// Position is a point in a source file. Lines are 1-indexed and columns are
// 0-indexed, matching conventional editor addressing.
type Position struct {
	Line   uint32 `json:"line" toon:"line"`
	Column uint32 `json:"column" toon:"column"`
}

// SerializedNode is a language-agnostic view of a concrete syntax tree node.
// Start/End are present only when positions were requested; Children preserve
// the original node order.
type SerializedNode struct {
	Type     string            `json:"type" toon:"type"`
	Start    *Position         `json:"start,omitempty" toon:"start,omitempty"`
	End      *Position         `json:"end,omitempty" toon:"end,omitempty"`
	Children []*SerializedNode `json:"children,omitempty" toon:"children,omitempty"`
}

// NodeCount returns the number of nodes in the serialized subtree.
func (n *SerializedNode) NodeCount() int {
	if n == nil {
		return 0
	}
	count := 1
	for _, c := range n.Children {
		count += c.NodeCount()
	}
	return count
}

// ParseTree is the result of parsing a single file.
type ParseTree struct {
	File      string          `json:"file" toon:"file"`
	Language  string          `json:"language" toon:"language"`
	HasErrors bool            `json:"has_errors" toon:"has_errors"`
	NodeCount int             `json:"node_count" toon:"node_count"`
	Root      *SerializedNode `json:"root" toon:"root"`
}

// Occurrence is a single identifier occurrence. The byte span is carried for
// rename splicing and is not part of the wire shape.
type Occurrence struct {
	File   string `json:"file" toon:"file"`
	Line   uint32 `json:"line" toon:"line"`
	Column uint32 `json:"column" toon:"column"`

	StartByte uint32 `json:"-" toon:"-"`
	EndByte   uint32 `json:"-" toon:"-"`
}

// ReferenceSet holds every occurrence of an identifier across a file set,
// in file order then pre-order traversal order within a file.
type ReferenceSet struct {
	Name         string         `json:"name" toon:"name"`
	Occurrences  []Occurrence   `json:"occurrences" toon:"occurrences"`
	FilesScanned int            `json:"files_scanned" toon:"files_scanned"`
	FilesSkipped []string       `json:"files_skipped,omitempty" toon:"files_skipped,omitempty"`
	Languages    map[string]int `json:"languages,omitempty" toon:"languages,omitempty"`
}

// Count returns the total number of occurrences.
func (r *ReferenceSet) Count() int {
	return len(r.Occurrences)
}

// SymbolKind classifies a definition-shaped node.
type SymbolKind string

const (
	SymbolFunction  SymbolKind = "function"
	SymbolMethod    SymbolKind = "method"
	SymbolClass     SymbolKind = "class"
	SymbolStruct    SymbolKind = "struct"
	SymbolInterface SymbolKind = "interface"
	SymbolType      SymbolKind = "type"
	SymbolVariable  SymbolKind = "variable"
	SymbolConstant  SymbolKind = "constant"
)

// Parameter is one entry of a definition's parameter list. Type carries the
// annotation text when the grammar has one, otherwise it is empty.
type Parameter struct {
	Name string `json:"name" toon:"name"`
	Type string `json:"type,omitempty" toon:"type,omitempty"`
}

// SymbolInfo describes the first definition of a name found in a file.
// Computed on demand, never cached.
type SymbolInfo struct {
	Kind       SymbolKind  `json:"kind" toon:"kind"`
	Name       string      `json:"name" toon:"name"`
	File       string      `json:"file,omitempty" toon:"file,omitempty"`
	Line       uint32      `json:"line,omitempty" toon:"line,omitempty"`
	Parameters []Parameter `json:"parameters,omitempty" toon:"parameters,omitempty"`
	Docstring  string      `json:"docstring,omitempty" toon:"docstring,omitempty"`
}

// SymbolResult wraps a symbol lookup. A miss is a normal successful result,
// never an error.
type SymbolResult struct {
	Found  bool        `json:"found" toon:"found"`
	Symbol *SymbolInfo `json:"symbol,omitempty" toon:"symbol,omitempty"`
}
