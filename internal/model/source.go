// Package model defines the data structures shared by the discovery engine.
package model

// Path represents a file system path.
type Path string

// Span locates a node in a source unit. Bytes are a half-open interval,
// lines are 1-based and inclusive.
type Span struct {
	StartByte int `json:"startByte" yaml:"startByte"`
	EndByte   int `json:"endByte" yaml:"endByte"`
	StartLine int `json:"startLine" yaml:"startLine"`
	EndLine   int `json:"endLine" yaml:"endLine"`
}

// SourceUnit is one file handed to the scanner: its logical path and text.
type SourceUnit struct {
	Path    Path
	Content []byte
}

// ItemKind distinguishes the structural items the extractor reports.
type ItemKind string

const (
	// ItemFunction is a `fn` item.
	ItemFunction ItemKind = "function"
	// ItemModule is an inline (`mod x { ... }`) or out-of-line (`mod x;`) module.
	ItemModule ItemKind = "module"
)

// SourceItem is a function or module found in the structural scan.
type SourceItem struct {
	Kind ItemKind
	Name string
	// QualifiedPath holds the enclosing module names followed by Name.
	QualifiedPath []string
	Attributes    []AttributeRecord
	Params        []Parameter
	Async         bool
	Span          Span
	// Children is only populated for modules.
	Children []SourceItem
}

// Parameter is a declared function parameter with the attributes written on it.
type Parameter struct {
	Name       string
	Type       string
	Attributes []AttributeRecord
	Span       Span
}

// ModulePath returns the enclosing module names of the item.
func (i SourceItem) ModulePath() []string {
	if len(i.QualifiedPath) == 0 {
		return nil
	}

	return i.QualifiedPath[:len(i.QualifiedPath)-1]
}
