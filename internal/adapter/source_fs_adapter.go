// Package adapter contains the infrastructure adapters of the rsdisco CLI:
// filesystem access, Rust syntax extraction and inventory persistence.
package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	m "rsdisco.dev/pkg/rsdisco/internal/model"
)

const (
	rustExt          = ".rs"
	recursiveSuffix  = "..."
	projectRootFile  = "Cargo.toml"
	defaultScanRoot  = "."
	recursivePattern = "./..."
)

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when scanning user projects. It intentionally hides direct `os`
// access so the workflow logic can be tested without touching the disk.
//
//nolint:interfacebloat // A richer interface keeps workflow logic decoupled from os/fs.
type SourceFSAdapter interface {
	// Get resolves Go-style path patterns (`./...`, `./src`, `lib.rs`) to the
	// Rust source units below them, skipping paths matching any exclude regex.
	Get(ctx context.Context, paths []m.Path, exclude ...string) ([]m.Path, error)

	// Walk traverses the provided root path. When recursive is false the
	// implementation should limit itself to the root directory (no sub-dirs).
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// FindProjectRoot searches for Cargo.toml walking up the directory tree.
	FindProjectRoot(startPath m.Path) (m.Path, error)

	// Glob returns the files matching pattern, sorted.
	Glob(pattern string) ([]m.Path, error)

	// WriteFile writes content to a file with the given permissions.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// RelPath returns the relative path from base to target.
	RelPath(base, target m.Path) (m.Path, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type directly into the
// domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Get expands every path pattern into Rust source files. A trailing `...`
// scans recursively; a directory without it only yields its own files.
// Results are de-duplicated and sorted.
func (a *LocalSourceFSAdapter) Get(ctx context.Context, paths []m.Path, exclude ...string) ([]m.Path, error) {
	if len(paths) == 0 {
		paths = []m.Path{recursivePattern}
	}

	excludes, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	seen := make(map[m.Path]struct{})

	for _, pattern := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		root, recursive := splitPattern(pattern)

		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}

		if !info.IsDir() {
			if isRustSource(root) && !excluded(root, excludes) {
				seen[m.Path(root)] = struct{}{}
			}

			continue
		}

		err = a.Walk(m.Path(root), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				if path != root && skipDir(info.Name()) {
					return filepath.SkipDir
				}

				return nil
			}

			if isRustSource(path) && !excluded(path, excludes) {
				seen[m.Path(path)] = struct{}{}
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	units := make([]m.Path, 0, len(seen))
	for path := range seen {
		units = append(units, path)
	}

	sort.Slice(units, func(i, j int) bool { return units[i] < units[j] })

	slog.Debug("resolved source units", "patterns", len(paths), "units", len(units))

	return units, nil
}

func splitPattern(pattern m.Path) (string, bool) {
	raw := string(pattern)
	if !strings.HasSuffix(raw, recursiveSuffix) {
		return filepath.Clean(raw), false
	}

	root := strings.TrimSuffix(strings.TrimSuffix(raw, recursiveSuffix), "/")
	if root == "" {
		root = defaultScanRoot
	}

	return filepath.Clean(root), true
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		if strings.TrimSpace(pattern) == "" {
			continue
		}

		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		compiled = append(compiled, re)
	}

	return compiled, nil
}

func excluded(path string, excludes []*regexp.Regexp) bool {
	base := filepath.Base(path)

	for _, re := range excludes {
		if re.MatchString(path) || re.MatchString(base) {
			return true
		}
	}

	return false
}

func isRustSource(path string) bool {
	return filepath.Ext(path) == rustExt
}

// skipDir reports directories that never hold scannable sources: build
// output, VCS metadata and hidden folders.
func skipDir(name string) bool {
	switch name {
	case "target", "node_modules", "vendor":
		return true
	}

	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalSourceFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && path != rootStr {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// FindProjectRoot searches for Cargo.toml walking up the directory tree.
func (a *LocalSourceFSAdapter) FindProjectRoot(startPath m.Path) (m.Path, error) {
	dir := filepath.Dir(string(startPath))

	for {
		manifest := filepath.Join(dir, projectRootFile)
		if _, err := os.Stat(manifest); err == nil {
			return m.Path(dir), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s not found in any parent directory of %s", projectRootFile, startPath)
		}

		dir = parent
	}
}

// Glob returns the regular files matching pattern in lexical order.
func (a *LocalSourceFSAdapter) Glob(pattern string) ([]m.Path, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}

	paths := make([]m.Path, 0, len(matches))

	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}

		paths = append(paths, m.Path(match))
	}

	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })

	return paths, nil
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	if dir := filepath.Dir(string(path)); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return err
		}
	}

	return os.WriteFile(string(path), content, perm)
}

// RelPath returns the relative path from base to target.
func (a *LocalSourceFSAdapter) RelPath(base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
