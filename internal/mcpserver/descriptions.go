package mcpserver

// Tool descriptions with interpretation guidance for LLMs.
// Each description explains what the tool does, when to use it,
// and how to interpret results.

func describeParse() string {
	return `Parses a source file (Python, JavaScript, TypeScript, Rust, or Go) and returns its concrete syntax tree.

USE WHEN:
- Inspecting the exact structure of a file before editing it
- Checking whether a file contains syntax errors (has_errors flag)
- Finding the node types a grammar uses for a construct

INTERPRETING RESULTS:
- root is the top-level node; children preserve source order
- has_errors=true means the grammar recovered from malformed input;
  the tree is best-effort and error-tagged nodes appear as ordinary nodes
- Positions are included only when include_positions=true;
  lines are 1-indexed, columns 0-indexed
- node_count gives a quick size measure of the tree`
}

func describeFindReferences() string {
	return `Finds every occurrence of an identifier across a file or directory.

USE WHEN:
- Measuring the blast radius of a rename or signature change
- Locating all call sites and the definition of a symbol
- Checking whether a symbol is still used before deleting it

INTERPRETING RESULTS:
- Matching is textual and exact: only identifier tokens whose text
  equals the name are counted, never substrings, strings, or comments
- Definition and use sites are reported uniformly, in file order then
  source order within a file
- Zero occurrences is a normal result, not an error
- files_skipped lists files that could not be parsed`
}

func describeSymbolInfo() string {
	return `Describes the first definition of a symbol in one source file: kind, parameters, and documentation.

USE WHEN:
- Looking up a function's signature without reading the whole file
- Checking whether a name is a function, method, class, or variable
- Pulling a symbol's docstring or doc comment

INTERPRETING RESULTS:
- kind is one of function, method, class, struct, interface, type,
  variable, constant
- Only the first definition in traversal order is reported; overloads
  and reassignments are not enumerated
- found=false is a normal result, not an error
- parameters carry type annotation text when the language has one`
}

func describeRename() string {
	return `Renames every occurrence of an identifier across a file or directory.

USE WHEN:
- Applying a project-wide identifier rename
- Previewing the scope of a rename with dry_run=true before committing

INTERPRETING RESULTS:
- The rename is textual, not semantic: unrelated identifiers that share
  the name in unrelated scopes are all renamed
- occurrences is counted before any file is written; files_modified
  counts files that contained at least one occurrence
- dry_run=true reports the identical counts without touching any file;
  plan_digest matches between a dry run and a later apply over
  unchanged inputs
- Files that fail to parse are skipped and listed in files_skipped`
}
