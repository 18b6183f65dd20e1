package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/chiseltools/chisel/pkg/models"
)

// TreeView renders a parsed syntax tree as an indented node listing.
type TreeView struct {
	Tree *models.ParseTree
}

func (v *TreeView) RenderData() any {
	return v.Tree
}

func (v *TreeView) RenderText(w io.Writer, colored bool) error {
	header := fmt.Sprintf("%s (%s, %d nodes)", v.Tree.File, v.Tree.Language, v.Tree.NodeCount)
	if colored {
		color.New(color.Bold).Fprintln(w, header)
	} else {
		fmt.Fprintln(w, header)
	}
	if v.Tree.HasErrors {
		fmt.Fprintln(w, "warning: source contains syntax errors; tree is best-effort")
	}
	renderNode(w, v.Tree.Root, 0)
	return nil
}

func (v *TreeView) RenderMarkdown(w io.Writer) error {
	fmt.Fprintf(w, "## %s\n\n```\n", v.Tree.File)
	renderNode(w, v.Tree.Root, 0)
	fmt.Fprintln(w, "```")
	return nil
}

func renderNode(w io.Writer, node *models.SerializedNode, depth int) {
	if node == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	if node.Start != nil && node.End != nil {
		fmt.Fprintf(w, "%s%s [%d:%d - %d:%d]\n", indent, node.Type,
			node.Start.Line, node.Start.Column, node.End.Line, node.End.Column)
	} else {
		fmt.Fprintf(w, "%s%s\n", indent, node.Type)
	}
	for _, c := range node.Children {
		renderNode(w, c, depth+1)
	}
}

// ReferencesTable renders a reference set as a file/line/column table.
func ReferencesTable(refs *models.ReferenceSet) *Table {
	rows := make([][]string, 0, len(refs.Occurrences))
	for _, occ := range refs.Occurrences {
		rows = append(rows, []string{
			occ.File,
			strconv.FormatUint(uint64(occ.Line), 10),
			strconv.FormatUint(uint64(occ.Column), 10),
		})
	}

	footer := []string{
		fmt.Sprintf("%d occurrence(s)", refs.Count()),
		fmt.Sprintf("%d file(s) scanned", refs.FilesScanned),
		"",
	}
	if len(refs.FilesSkipped) > 0 {
		footer[2] = fmt.Sprintf("%d skipped", len(refs.FilesSkipped))
	}

	return NewTable(
		fmt.Sprintf("References to %q", refs.Name),
		[]string{"File", "Line", "Column"},
		rows,
		footer,
		refs,
	)
}

// SymbolSection renders a symbol lookup result.
func SymbolSection(result *models.SymbolResult, name string) *Section {
	if !result.Found {
		return &Section{
			Title:   fmt.Sprintf("Symbol %q", name),
			Content: "not found",
			Data:    result,
		}
	}

	sym := result.Symbol
	var b strings.Builder
	fmt.Fprintf(&b, "kind: %s\n", sym.Kind)
	if sym.File != "" {
		fmt.Fprintf(&b, "defined: %s:%d\n", sym.File, sym.Line)
	}
	if len(sym.Parameters) > 0 {
		parts := make([]string, len(sym.Parameters))
		for i, p := range sym.Parameters {
			if p.Type != "" {
				parts[i] = p.Name + ": " + p.Type
			} else {
				parts[i] = p.Name
			}
		}
		fmt.Fprintf(&b, "parameters: (%s)\n", strings.Join(parts, ", "))
	}
	if sym.Docstring != "" {
		fmt.Fprintf(&b, "doc: %s\n", sym.Docstring)
	}

	return &Section{
		Title:   fmt.Sprintf("Symbol %q", sym.Name),
		Content: strings.TrimRight(b.String(), "\n"),
		Data:    result,
	}
}

// RenameTable renders a rename result with a per-file breakdown.
func RenameTable(result *models.RenameResult) *Table {
	rows := make([][]string, 0, len(result.Files))
	for _, f := range result.Files {
		rows = append(rows, []string{
			f.File,
			strconv.Itoa(f.Occurrences),
			f.Fingerprint,
		})
	}

	title := fmt.Sprintf("Rename %q -> %q", result.OldName, result.NewName)
	if result.DryRun {
		title += " (dry run)"
	}

	return NewTable(
		title,
		[]string{"File", "Occurrences", "Fingerprint"},
		rows,
		[]string{
			fmt.Sprintf("%d occurrence(s)", result.Occurrences),
			fmt.Sprintf("%d file(s) modified", result.FilesModified),
			"",
		},
		result,
	)
}
