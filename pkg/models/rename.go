package models

// RenamedFile reports the per-file outcome of a rename. Fingerprint is the
// xxhash64 of the file content after replacement (the would-be content on a
// dry run), so callers can detect concurrent modification between runs.
type RenamedFile struct {
	File        string `json:"file" toon:"file"`
	Occurrences int    `json:"occurrences" toon:"occurrences"`
	Fingerprint string `json:"fingerprint,omitempty" toon:"fingerprint,omitempty"`
}

// RenameResult aggregates a cross-file textual rename. Occurrences is counted
// before any mutation; FilesModified counts only files that contained at
// least one occurrence (and were actually written, when not a dry run).
type RenameResult struct {
	OldName       string        `json:"old_name" toon:"old_name"`
	NewName       string        `json:"new_name" toon:"new_name"`
	Occurrences   int           `json:"occurrences" toon:"occurrences"`
	FilesModified int           `json:"files_modified" toon:"files_modified"`
	DryRun        bool          `json:"dry_run" toon:"dry_run"`
	Message       string        `json:"message,omitempty" toon:"message,omitempty"`
	Files         []RenamedFile `json:"files,omitempty" toon:"files,omitempty"`

	// PlanDigest is a blake3 digest over the ordered (path, span,
	// replacement) tuples of the splice plan. A dry run and a later apply
	// over unchanged inputs produce the same digest.
	PlanDigest string `json:"plan_digest,omitempty" toon:"plan_digest,omitempty"`

	FilesSkipped []string `json:"files_skipped,omitempty" toon:"files_skipped,omitempty"`
}
