package domain

import (
	"time"

	m "rsdisco.dev/pkg/rsdisco/internal/model"
)

// Case is one entry of a function's case list.
type Case struct {
	Index    int
	Label    string
	Flavor   m.CaseFlavor
	Values   []m.Value
	Expected string
	// Timeout is the override positioned for this case, if any.
	Timeout *time.Duration
	Span    m.Span
}

// CaseList is the result of expanding a function's attributes.
type CaseList struct {
	Cases []Case
	// Default applies to every case without its own override, and to the
	// function itself when it has no cases.
	Default *time.Duration
}

// EffectiveTimeout returns the case override or the function default.
func (cl CaseList) EffectiveTimeout(c Case) *time.Duration {
	if c.Timeout != nil {
		return c.Timeout
	}

	return cl.Default
}

// ExpandCases walks the attributes in source order and builds the case list.
//
// A timeout attribute is matched by position only. Between two cases it
// belongs to the following case. After the last case it belongs to the
// preceding one. Before any case it is the function-level default.
// When several land on the same target the last one in source order wins.
func ExpandCases(attrs []m.Attribute) CaseList {
	var (
		list      CaseList
		positions []int
	)

	for i, attr := range attrs {
		if attr.Kind != m.AttrCase {
			continue
		}

		positions = append(positions, i)
		list.Cases = append(list.Cases, Case{
			Index:    len(list.Cases),
			Label:    attr.Label,
			Flavor:   attr.Flavor,
			Values:   attr.Values,
			Expected: attr.Expected,
			Span:     attr.Record.Span,
		})
	}

	for i, attr := range attrs {
		if attr.Kind != m.AttrTimeout || attr.Timeout == nil {
			continue
		}

		before, after := neighbours(positions, i)

		switch {
		case before < 0:
			list.Default = attr.Timeout
		case after >= 0:
			list.Cases[after].Timeout = attr.Timeout
		default:
			list.Cases[before].Timeout = attr.Timeout
		}
	}

	return list
}

// neighbours returns the case indexes immediately before and after the
// attribute at pos, or -1.
func neighbours(positions []int, pos int) (int, int) {
	before, after := -1, -1

	for idx, p := range positions {
		if p < pos {
			before = idx
			continue
		}

		after = idx

		break
	}

	return before, after
}
