// Package code orchestrates the tool-facing source introspection
// operations: parse, find-references, symbol-info, and rename.
package code

import (
	"context"
	"errors"
	"os"
	"sort"

	"github.com/chiseltools/chisel/internal/fileproc"
	"github.com/chiseltools/chisel/internal/locator"
	"github.com/chiseltools/chisel/internal/refactor"
	"github.com/chiseltools/chisel/internal/scanner"
	"github.com/chiseltools/chisel/internal/semantic"
	"github.com/chiseltools/chisel/pkg/config"
	"github.com/chiseltools/chisel/pkg/models"
	"github.com/chiseltools/chisel/pkg/parser"
)

// Service orchestrates source introspection operations.
type Service struct {
	config   *config.Config
	scanner  *scanner.Scanner
	engine   *refactor.Engine
	progress fileproc.ProgressFactory
}

// Option configures a Service.
type Option func(*Service)

// WithConfig sets the configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// WithProgress installs a progress hook for multi-file operations.
func WithProgress(f fileproc.ProgressFactory) Option {
	return func(s *Service) {
		s.progress = f
	}
}

// New creates a new code service.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	if s.config == nil {
		s.config = config.LoadOrDefault()
	}
	s.scanner = scanner.New(s.config)
	s.engine = refactor.New(s.config)
	if s.progress != nil {
		s.engine.SetProgress(s.progress)
	}
	return s
}

// statFile resolves path against the configured root and requires it to be
// an existing regular file.
func (s *Service) statFile(path string) (string, error) {
	resolved := s.config.ResolvePath(path)
	info, err := os.Stat(resolved)
	if err != nil {
		return "", notFound(path, err)
	}
	if info.IsDir() {
		return "", invalidArgument("expected a file, got a directory: "+path, nil)
	}
	return resolved, nil
}

// parseOne parses a single file, mapping failures to the fatal taxonomy.
// Single-file operations never skip a parse failure.
func (s *Service) parseOne(ctx context.Context, path string) (*parser.ParseResult, error) {
	resolved, err := s.statFile(path)
	if err != nil {
		return nil, err
	}
	if parser.DetectLanguage(resolved) == parser.LangUnknown {
		return nil, unsupportedLanguage(path)
	}

	psr := parser.New()
	defer psr.Close()

	result, err := psr.ParseFile(ctx, resolved)
	if err != nil {
		if errors.Is(err, parser.ErrUnsupportedFileType) {
			return nil, unsupportedLanguage(path)
		}
		return nil, parseFailure(path, err)
	}
	return result, nil
}

// Parse parses one source file and returns its serialized syntax tree.
// Position fields are omitted from the tree unless requested.
func (s *Service) Parse(ctx context.Context, path string, includePositions bool) (*models.ParseTree, error) {
	result, err := s.parseOne(ctx, path)
	if err != nil {
		return nil, err
	}
	return parser.SerializeTree(result, includePositions), nil
}

// SymbolInfo locates the first definition of name in one file. A miss
// returns Found=false, not an error.
func (s *Service) SymbolInfo(ctx context.Context, path, name string) (*models.SymbolResult, error) {
	if name == "" {
		return nil, invalidArgument("symbol name must be non-empty", nil)
	}
	result, err := s.parseOne(ctx, path)
	if err != nil {
		return nil, err
	}

	info, found := semantic.Locate(result, name)
	if !found {
		return &models.SymbolResult{Found: false}, nil
	}
	return &models.SymbolResult{Found: true, Symbol: info}, nil
}

// fileRefs is the per-file outcome of a reference scan.
type fileRefs struct {
	occurrences []models.Occurrence
}

// FindReferences collects every occurrence of name across the file set
// under root, in file order then pre-order within a file. Files that fail
// to parse are skipped and listed in the result.
func (s *Service) FindReferences(ctx context.Context, root, name string, fileTypes []string) (*models.ReferenceSet, error) {
	if name == "" {
		return nil, invalidArgument("identifier name must be non-empty", nil)
	}

	resolved := s.config.ResolvePath(root)
	info, err := os.Stat(resolved)
	if err != nil {
		return nil, notFound(root, err)
	}
	// An explicitly named file must have grammar support; inside a
	// directory walk, unsupported files are simply not candidates.
	if !info.IsDir() && parser.DetectLanguage(resolved) == parser.LangUnknown {
		return nil, unsupportedLanguage(root)
	}

	files, err := s.scanner.Resolve(resolved, fileTypes)
	if err != nil {
		return nil, notFound(root, err)
	}
	files, _ = scanner.FilterBySize(files, s.config.Limits.MaxFileSize)

	refs := &models.ReferenceSet{Name: name}

	var tick fileproc.ProgressFunc
	if s.progress != nil {
		var done func()
		tick, done = s.progress(len(files))
		defer done()
	}

	results, procErrs := fileproc.MapFilesWithProgress(ctx, files, s.config.Limits.Workers,
		func(psr *parser.Parser, path string) (fileRefs, error) {
			parsed, err := psr.ParseFile(ctx, path)
			if err != nil {
				return fileRefs{}, err
			}
			return fileRefs{occurrences: locator.Find(parsed, name)}, nil
		}, tick)

	if procErrs != nil {
		for _, pe := range procErrs.Errors {
			if errors.Is(pe.Err, context.Canceled) || errors.Is(pe.Err, context.DeadlineExceeded) {
				return nil, pe.Err
			}
			refs.FilesSkipped = append(refs.FilesSkipped, pe.Path)
		}
		sort.Strings(refs.FilesSkipped)
	}

	for _, r := range results {
		refs.Occurrences = append(refs.Occurrences, r.occurrences...)
	}
	refs.FilesScanned = len(results)

	if len(files) > 0 {
		refs.Languages = make(map[string]int)
		for lang, group := range scanner.GroupByLanguage(files) {
			refs.Languages[string(lang)] = len(group)
		}
	}
	return refs, nil
}

// Rename applies a cross-file textual rename under root.
func (s *Service) Rename(ctx context.Context, root, oldName, newName string, fileTypes []string, dryRun bool) (*models.RenameResult, error) {
	resolved := s.config.ResolvePath(root)
	if _, err := os.Stat(resolved); err != nil {
		// Argument validation outranks path resolution so bad names never
		// leak a filesystem error.
		if oldName == "" || newName == "" || oldName == newName {
			return nil, invalidRenameArgs(oldName, newName)
		}
		return nil, notFound(root, err)
	}

	result, err := s.engine.Rename(ctx, resolved, oldName, newName, fileTypes, dryRun)
	if err != nil {
		if errors.Is(err, refactor.ErrEmptyName) || errors.Is(err, refactor.ErrSameName) {
			return nil, invalidArgument(err.Error(), err)
		}
		return nil, err
	}
	return result, nil
}

func invalidRenameArgs(oldName, newName string) *Error {
	if oldName == "" || newName == "" {
		return invalidArgument(refactor.ErrEmptyName.Error(), refactor.ErrEmptyName)
	}
	return invalidArgument(refactor.ErrSameName.Error(), refactor.ErrSameName)
}
