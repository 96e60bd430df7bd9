package domain

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"rsdisco.dev/pkg/rsdisco/internal/adapter"
	m "rsdisco.dev/pkg/rsdisco/internal/model"
)

// StrategyKind names a discovery strategy.
type StrategyKind string

const (
	// StrategySyntax discovers from source text only.
	StrategySyntax StrategyKind = "syntax"
	// StrategyExtended may also consult the filesystem, which enables
	// `#[files(...)]` parameterization.
	StrategyExtended StrategyKind = "extended"
)

// ErrUnsupportedParameterization is returned by strategies that cannot
// expand a parameterization form.
var ErrUnsupportedParameterization = errors.New("unsupported parameterization")

// Strategy is the seam for discovery variants heavier than the syntax scan.
type Strategy interface {
	Kind() StrategyKind
	// ExpandFiles turns the glob patterns of a files-marked parameter into
	// one string value per matching file, relative to the crate root.
	ExpandFiles(unit m.Path, patterns []m.Value) ([]m.Value, error)
}

// ParseStrategyKind validates a strategy name from flags or config.
func ParseStrategyKind(name string) (StrategyKind, error) {
	switch StrategyKind(strings.ToLower(strings.TrimSpace(name))) {
	case "", StrategySyntax:
		return StrategySyntax, nil
	case StrategyExtended:
		return StrategyExtended, nil
	}

	return "", fmt.Errorf("unknown discovery strategy %q (want %s or %s)", name, StrategySyntax, StrategyExtended)
}

// NewStrategy builds the strategy of the given kind. The filesystem adapter
// is only used by the extended strategy.
func NewStrategy(kind StrategyKind, fs adapter.SourceFSAdapter) Strategy {
	if kind == StrategyExtended {
		return &extendedStrategy{fs: fs}
	}

	return syntaxStrategy{}
}

type syntaxStrategy struct{}

func (syntaxStrategy) Kind() StrategyKind { return StrategySyntax }

func (syntaxStrategy) ExpandFiles(_ m.Path, _ []m.Value) ([]m.Value, error) {
	return nil, fmt.Errorf("%w: files(...) needs the %s strategy", ErrUnsupportedParameterization, StrategyExtended)
}

type extendedStrategy struct {
	fs adapter.SourceFSAdapter
}

func (s *extendedStrategy) Kind() StrategyKind { return StrategyExtended }

// ExpandFiles globs every pattern below the directory holding Cargo.toml, or
// the unit's own directory when there is none.
func (s *extendedStrategy) ExpandFiles(unit m.Path, patterns []m.Value) ([]m.Value, error) {
	root, err := s.fs.FindProjectRoot(unit)
	if err != nil {
		slog.Debug("no crate root, globbing next to the unit", "unit", unit, "error", err)

		root = m.Path(filepath.Dir(string(unit)))
	}

	seen := make(map[m.Path]struct{})

	var values []m.Value

	for _, pattern := range patterns {
		matches, err := s.fs.Glob(string(s.fs.JoinPath(string(root), pattern.Str)))
		if err != nil {
			return nil, fmt.Errorf("expand files %s: %w", pattern.Raw, err)
		}

		for _, match := range matches {
			if _, dup := seen[match]; dup {
				continue
			}

			seen[match] = struct{}{}

			rel, err := s.fs.RelPath(root, match)
			if err != nil {
				rel = match
			}

			text := filepath.ToSlash(string(rel))
			values = append(values, m.Value{Raw: fmt.Sprintf("%q", text), Kind: m.ValueString, Str: text})
		}
	}

	return values, nil
}
