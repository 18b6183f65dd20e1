package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/chiseltools/chisel/pkg/models"
)

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"json":     FormatJSON,
		"JSON":     FormatJSON,
		"markdown": FormatMarkdown,
		"md":       FormatMarkdown,
		"text":     FormatText,
		"":         FormatText,
		"bogus":    FormatText,
	}
	for in, want := range cases {
		if got := ParseFormat(in); got != want {
			t.Errorf("ParseFormat(%q) = %v, want %v", in, got, want)
		}
	}
}

func newTestFormatter(format Format) (*Formatter, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return &Formatter{format: format, writer: buf, colored: false}, buf
}

func TestFormatterJSONOutput(t *testing.T) {
	f, buf := newTestFormatter(FormatJSON)
	if err := f.Output(map[string]int{"count": 3}); err != nil {
		t.Fatal(err)
	}

	var decoded map[string]int
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["count"] != 3 {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestTableRenderText(t *testing.T) {
	table := NewTable("Results", []string{"File", "Line"},
		[][]string{{"a.py", "1"}, {"b.py", "4"}}, nil, nil)

	buf := &bytes.Buffer{}
	if err := table.RenderText(buf, false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Results") || !strings.Contains(out, "a.py") {
		t.Errorf("text output missing content: %q", out)
	}
}

func TestTableRenderMarkdown(t *testing.T) {
	table := NewTable("Results", []string{"File", "Line"},
		[][]string{{"a.py", "1"}}, nil, nil)

	buf := &bytes.Buffer{}
	if err := table.RenderMarkdown(buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "| File | Line |") {
		t.Errorf("markdown header missing: %q", out)
	}
	if !strings.Contains(out, "| --- | --- |") {
		t.Errorf("markdown separator missing: %q", out)
	}
}

func TestTableRenderDataFallback(t *testing.T) {
	table := NewTable("", []string{"File"}, [][]string{{"a.py"}}, nil, nil)
	data, ok := table.RenderData().([]map[string]string)
	if !ok || len(data) != 1 || data[0]["File"] != "a.py" {
		t.Errorf("RenderData = %v", table.RenderData())
	}
}

func TestTreeView(t *testing.T) {
	tree := &models.ParseTree{
		File:      "a.py",
		Language:  "python",
		NodeCount: 3,
		Root: &models.SerializedNode{
			Type: "module",
			Children: []*models.SerializedNode{
				{Type: "expression_statement", Children: []*models.SerializedNode{
					{Type: "identifier"},
				}},
			},
		},
	}

	buf := &bytes.Buffer{}
	view := &TreeView{Tree: tree}
	if err := view.RenderText(buf, false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "module") {
		t.Errorf("missing root: %q", out)
	}
	if !strings.Contains(out, "    identifier") {
		t.Errorf("children not indented: %q", out)
	}
}

func TestTreeViewWithPositions(t *testing.T) {
	tree := &models.ParseTree{
		File:     "a.py",
		Language: "python",
		Root: &models.SerializedNode{
			Type:  "module",
			Start: &models.Position{Line: 1, Column: 0},
			End:   &models.Position{Line: 2, Column: 0},
		},
	}

	buf := &bytes.Buffer{}
	if err := (&TreeView{Tree: tree}).RenderText(buf, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "[1:0 - 2:0]") {
		t.Errorf("positions not rendered: %q", buf.String())
	}
}

func TestReferencesTable(t *testing.T) {
	refs := &models.ReferenceSet{
		Name: "calculate",
		Occurrences: []models.Occurrence{
			{File: "a.py", Line: 1, Column: 4},
			{File: "a.py", Line: 4, Column: 9},
		},
		FilesScanned: 1,
	}

	table := ReferencesTable(refs)
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d", len(table.Rows))
	}
	if table.Rows[0][1] != "1" || table.Rows[0][2] != "4" {
		t.Errorf("row = %v", table.Rows[0])
	}
	if table.Data != refs {
		t.Error("structured data not wrapped")
	}
}

func TestSymbolSectionFound(t *testing.T) {
	result := &models.SymbolResult{
		Found: true,
		Symbol: &models.SymbolInfo{
			Kind: models.SymbolFunction,
			Name: "calculate",
			File: "a.py",
			Line: 1,
			Parameters: []models.Parameter{
				{Name: "x"},
				{Name: "y", Type: "int"},
			},
		},
	}

	section := SymbolSection(result, "calculate")
	if !strings.Contains(section.Content, "kind: function") {
		t.Errorf("content = %q", section.Content)
	}
	if !strings.Contains(section.Content, "(x, y: int)") {
		t.Errorf("parameters not rendered: %q", section.Content)
	}
}

func TestSymbolSectionMiss(t *testing.T) {
	section := SymbolSection(&models.SymbolResult{Found: false}, "ghost")
	if !strings.Contains(section.Content, "not found") {
		t.Errorf("content = %q", section.Content)
	}
}

func TestRenameTable(t *testing.T) {
	result := &models.RenameResult{
		OldName:       "calculate",
		NewName:       "compute",
		Occurrences:   3,
		FilesModified: 1,
		DryRun:        true,
		Files: []models.RenamedFile{
			{File: "a.py", Occurrences: 3, Fingerprint: "abc123"},
		},
	}

	table := RenameTable(result)
	if !strings.Contains(table.Title, "dry run") {
		t.Errorf("title = %q", table.Title)
	}
	if len(table.Rows) != 1 || table.Rows[0][1] != "3" {
		t.Errorf("rows = %v", table.Rows)
	}
}

func TestSectionRenderMarkdownNesting(t *testing.T) {
	s := &Section{
		Title:   "Top",
		Content: "body",
		Sections: []Section{
			{Title: "Sub", Content: "inner"},
		},
	}

	buf := &bytes.Buffer{}
	if err := s.RenderMarkdown(buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "## Top") || !strings.Contains(out, "### Sub") {
		t.Errorf("heading levels wrong: %q", out)
	}
}
