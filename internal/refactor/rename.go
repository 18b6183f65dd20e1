// Package refactor implements cross-file textual rename over identifier
// occurrences. The rename is textual, not semantic: unrelated identifiers
// that share a name in unrelated scopes are all renamed.
package refactor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/blake3"

	"github.com/chiseltools/chisel/internal/fileproc"
	"github.com/chiseltools/chisel/internal/locator"
	"github.com/chiseltools/chisel/internal/scanner"
	"github.com/chiseltools/chisel/pkg/config"
	"github.com/chiseltools/chisel/pkg/models"
	"github.com/chiseltools/chisel/pkg/parser"
)

// Argument validation errors. These fail the whole operation before any
// file is touched.
var (
	ErrEmptyName = errors.New("old_name and new_name must be non-empty")
	ErrSameName  = errors.New("old_name and new_name must differ")
)

// Engine computes and applies renames.
type Engine struct {
	config   *config.Config
	scanner  *scanner.Scanner
	progress fileproc.ProgressFactory
}

// New creates a rename engine. A nil config gets defaults.
func New(cfg *config.Config) *Engine {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Engine{config: cfg, scanner: scanner.New(cfg)}
}

// SetProgress installs a progress hook invoked per processed file.
func (e *Engine) SetProgress(f fileproc.ProgressFactory) {
	e.progress = f
}

// candidate is the parse-and-locate result for one file.
type candidate struct {
	path        string
	source      []byte
	occurrences []models.Occurrence
}

// Rename locates every occurrence of oldName under root and replaces it
// with newName. Occurrences are counted before any mutation. With dryRun
// set, the full plan is computed and reported but nothing is written.
// Files that fail to parse are skipped and listed in FilesSkipped.
func (e *Engine) Rename(ctx context.Context, root, oldName, newName string, fileTypes []string, dryRun bool) (*models.RenameResult, error) {
	if oldName == "" || newName == "" {
		return nil, ErrEmptyName
	}
	if oldName == newName {
		return nil, ErrSameName
	}

	files, err := e.scanner.Resolve(root, fileTypes)
	if err != nil {
		return nil, err
	}
	files, _ = scanner.FilterBySize(files, e.config.Limits.MaxFileSize)

	result := &models.RenameResult{
		OldName: oldName,
		NewName: newName,
		DryRun:  dryRun,
	}

	var tick fileproc.ProgressFunc
	if e.progress != nil {
		var done func()
		tick, done = e.progress(len(files))
		defer done()
	}

	candidates, procErrs := fileproc.MapFilesWithProgress(ctx, files, e.config.Limits.Workers,
		func(psr *parser.Parser, path string) (candidate, error) {
			parsed, err := psr.ParseFile(ctx, path)
			if err != nil {
				return candidate{}, err
			}
			return candidate{
				path:        path,
				source:      parsed.Source,
				occurrences: locator.Find(parsed, oldName),
			}, nil
		}, tick)

	if procErrs != nil {
		for _, pe := range procErrs.Errors {
			if errors.Is(pe.Err, context.Canceled) || errors.Is(pe.Err, context.DeadlineExceeded) {
				return nil, pe.Err
			}
			result.FilesSkipped = append(result.FilesSkipped, pe.Path)
		}
		sort.Strings(result.FilesSkipped)
	}

	for _, c := range candidates {
		result.Occurrences += len(c.occurrences)
	}
	if result.Occurrences == 0 {
		result.Message = fmt.Sprintf("no references to %q found", oldName)
		return result, nil
	}

	digest := blake3.New()
	for _, c := range candidates {
		if len(c.occurrences) == 0 {
			continue
		}

		content := splice(c.source, c.occurrences, newName)
		for _, occ := range c.occurrences {
			fmt.Fprintf(digest, "%s:%d:%d:%s\n", c.path, occ.StartByte, occ.EndByte, newName)
		}

		if !dryRun {
			if err := writeBack(c.path, content); err != nil {
				return nil, fmt.Errorf("writing %s: %w", c.path, err)
			}
		}

		result.Files = append(result.Files, models.RenamedFile{
			File:        c.path,
			Occurrences: len(c.occurrences),
			Fingerprint: fmt.Sprintf("%016x", xxhash.Sum64(content)),
		})
		result.FilesModified++
	}

	result.PlanDigest = fmt.Sprintf("%x", digest.Sum(nil))
	result.Message = fmt.Sprintf("renamed %d occurrence(s) of %q to %q across %d file(s)",
		result.Occurrences, oldName, newName, result.FilesModified)
	if dryRun {
		result.Message = "dry run: " + result.Message
	}
	return result, nil
}

// splice replaces every occurrence span with the replacement text, working
// from the highest byte offset down so earlier offsets stay valid while
// mutating one in-memory buffer.
func splice(source []byte, occurrences []models.Occurrence, replacement string) []byte {
	sorted := make([]models.Occurrence, len(occurrences))
	copy(sorted, occurrences)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartByte > sorted[j].StartByte
	})

	out := make([]byte, len(source))
	copy(out, source)
	for _, occ := range sorted {
		if occ.EndByte > uint32(len(out)) || occ.StartByte > occ.EndByte {
			continue
		}
		var next []byte
		next = append(next, out[:occ.StartByte]...)
		next = append(next, replacement...)
		next = append(next, out[occ.EndByte:]...)
		out = next
	}
	return out
}

// writeBack rewrites the whole file, preserving its mode.
func writeBack(path string, content []byte) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	return os.WriteFile(path, content, mode)
}
