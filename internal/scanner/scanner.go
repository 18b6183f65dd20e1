// Package scanner resolves file sets for multi-file operations.
package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/chiseltools/chisel/pkg/config"
	"github.com/chiseltools/chisel/pkg/parser"
)

// Scanner finds source files under a root directory.
type Scanner struct {
	config  *config.Config
	matcher gitignore.Matcher
}

// New creates a scanner from config. A nil config gets defaults.
func New(cfg *config.Config) *Scanner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Scanner{config: cfg}
}

// findGitRoot walks up from start looking for a .git directory.
// Returns empty string if not inside a git repository.
func findGitRoot(start string) string {
	dir := start
	for {
		gitDir := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadGitignore builds a matcher from all .gitignore files in the repo
// containing root, if gitignore exclusion is enabled.
func (s *Scanner) loadGitignore(root string) {
	if !s.config.Exclude.Gitignore {
		return
	}
	gitRoot := findGitRoot(root)
	if gitRoot == "" {
		return
	}
	bfs := osfs.New(gitRoot)
	patterns, err := gitignore.ReadPatterns(bfs, nil)
	if err != nil || len(patterns) == 0 {
		return
	}
	s.matcher = gitignore.NewMatcher(patterns)
}

// excludedDir reports whether a directory name is skipped outright.
func (s *Scanner) excludedDir(name string) bool {
	if s.config.Exclude.Hidden && strings.HasPrefix(name, ".") && name != "." {
		return true
	}
	for _, d := range s.config.Exclude.Dirs {
		if name == d {
			return true
		}
	}
	return false
}

// excludedPath checks a root-relative path against configured glob patterns
// and gitignore rules.
func (s *Scanner) excludedPath(relPath string, isDir bool) bool {
	rel := filepath.ToSlash(relPath)
	for _, pattern := range s.config.Exclude.Patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, filepath.Base(rel)); ok {
			return true
		}
	}
	if s.matcher != nil {
		parts := strings.Split(relPath, string(filepath.Separator))
		if s.matcher.Match(parts, isDir) {
			return true
		}
	}
	return false
}

// Excluded reports whether a path under root would be skipped by this
// scanner's directory, pattern, and gitignore rules.
func (s *Scanner) Excluded(root, path string) bool {
	relPath, err := filepath.Rel(root, path)
	if err != nil || relPath == "." {
		return false
	}
	for _, part := range strings.Split(relPath, string(filepath.Separator)) {
		if s.excludedDir(part) {
			return true
		}
	}
	return s.excludedPath(relPath, false)
}

// matchesTypes reports whether path's extension is in the normalized
// extension set. An empty set matches everything.
func matchesTypes(path string, types map[string]bool) bool {
	if len(types) == 0 {
		return true
	}
	ext := parser.NormalizeExt(filepath.Ext(path))
	return types[ext]
}

// normalizeTypes lowercases and strips leading dots from a file type list.
func normalizeTypes(fileTypes []string) map[string]bool {
	if len(fileTypes) == 0 {
		return nil
	}
	set := make(map[string]bool, len(fileTypes))
	for _, t := range fileTypes {
		set[parser.NormalizeExt(t)] = true
	}
	return set
}

// Resolve expands a path into the set of source files an operation runs
// over. A regular file resolves to itself (subject to the type filter); a
// directory is walked recursively. The returned list is sorted so results
// are deterministic regardless of filesystem iteration order.
func (s *Scanner) Resolve(root string, fileTypes []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}

	types := normalizeTypes(fileTypes)

	if !info.IsDir() {
		if parser.DetectLanguage(root) == parser.LangUnknown {
			return nil, nil
		}
		if !matchesTypes(root, types) {
			return nil, nil
		}
		return []string{root}, nil
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	absRoot, err = filepath.EvalSymlinks(absRoot)
	if err != nil {
		return nil, err
	}

	s.loadGitignore(root)

	files := make([]string, 0, 256)
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		relPath, _ := filepath.Rel(root, path)
		if relPath == "." {
			return nil
		}

		// Symlinks that escape the root are skipped entirely.
		if d.Type()&fs.ModeSymlink != 0 {
			resolved, err := filepath.EvalSymlinks(path)
			if err != nil || !isWithinRoot(resolved, absRoot) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() {
			if s.excludedDir(d.Name()) || s.excludedPath(relPath, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if s.excludedPath(relPath, false) {
			return nil
		}
		if parser.DetectLanguage(path) == parser.LangUnknown {
			return nil
		}
		if !matchesTypes(path, types) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Strings(files)
	return files, nil
}

// isWithinRoot checks that path is contained within root after symlink
// resolution.
func isWithinRoot(path, root string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	absPath = filepath.Clean(absPath)
	root = filepath.Clean(root)
	return absPath == root || strings.HasPrefix(absPath, root+string(filepath.Separator))
}

// FilterBySize drops files larger than maxSize bytes, returning the kept
// list and the number skipped. A maxSize of 0 disables the cap.
func FilterBySize(files []string, maxSize int64) ([]string, int) {
	if maxSize <= 0 {
		return files, 0
	}

	filtered := make([]string, 0, len(files))
	skipped := 0
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			skipped++
			continue
		}
		if info.Size() > maxSize {
			skipped++
			continue
		}
		filtered = append(filtered, f)
	}
	return filtered, skipped
}

// GroupByLanguage buckets files by their detected language.
func GroupByLanguage(files []string) map[parser.Language][]string {
	groups := make(map[parser.Language][]string)
	for _, f := range files {
		lang := parser.DetectLanguage(f)
		if lang != parser.LangUnknown {
			groups[lang] = append(groups[lang], f)
		}
	}
	return groups
}
