package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	m "rsdisco.dev/pkg/rsdisco/internal/model"
)

var (
	// ErrUnresolvedFixture is returned when no fixture definition matches a name.
	ErrUnresolvedFixture = errors.New("unresolved fixture")
	// ErrFixtureCycle is returned when fixtures depend on each other in a loop.
	ErrFixtureCycle = errors.New("fixture dependency cycle")
)

// FixtureIndex holds the fixture definitions of one unit.
type FixtureIndex struct {
	byName map[string][]interpretedItem
}

// newFixtureIndex collects every function marked as a fixture definition.
func newFixtureIndex(functions []interpretedItem) *FixtureIndex {
	idx := &FixtureIndex{byName: make(map[string][]interpretedItem)}

	for _, fn := range functions {
		if fn.has(m.AttrFixture) {
			idx.byName[fn.item.Name] = append(idx.byName[fn.item.Name], fn)
		}
	}

	return idx
}

// Lookup finds the definition of name as seen from modPath: the module
// itself first, then each enclosing module, then a definition that is unique
// in the whole unit.
func (idx *FixtureIndex) Lookup(name string, modPath []string) (interpretedItem, error) {
	name = lastSegment(name)
	defs := idx.byName[name]

	for depth := len(modPath); depth >= 0; depth-- {
		for _, def := range defs {
			if slices.Equal(def.item.ModulePath(), modPath[:depth]) {
				return def, nil
			}
		}
	}

	switch len(defs) {
	case 0:
		return interpretedItem{}, fmt.Errorf("%w: no fixture named `%s`", ErrUnresolvedFixture, name)
	case 1:
		return defs[0], nil
	}

	return interpretedItem{}, fmt.Errorf("%w: `%s` is defined in %d modules", ErrUnresolvedFixture, name, len(defs))
}

// Resolve binds a fixture and, recursively, the fixture's own parameters.
// with overrides the leading parameters positionally; the rest take their
// `default(...)` or resolve as fixtures themselves.
func (idx *FixtureIndex) Resolve(name string, modPath []string, with []m.Value) (*m.FixtureBinding, error) {
	return idx.resolve(name, modPath, with, nil)
}

func (idx *FixtureIndex) resolve(name string, modPath []string, with []m.Value, stack []string) (*m.FixtureBinding, error) {
	def, err := idx.Lookup(name, modPath)
	if err != nil {
		return nil, err
	}

	key := def.base()
	if slices.Contains(stack, key) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrFixtureCycle, strings.Join(stack, " -> "), key)
	}

	stack = append(stack, key)

	binding := &m.FixtureBinding{
		Name:  def.item.Name,
		Path:  def.item.QualifiedPath,
		Async: def.item.Async,
	}

	for i, param := range def.item.Params {
		marker := def.markers[i]

		switch {
		case i < len(with):
			v := with[i]
			binding.Args = append(binding.Args, m.Binding{Param: param.Name, Source: m.BindWith, Value: &v})
		case marker.Default != nil:
			v := *marker.Default
			binding.Args = append(binding.Args, m.Binding{Param: param.Name, Source: m.BindDefault, Value: &v})
		default:
			nested, err := idx.resolve(marker.FixtureName(param.Name), def.item.ModulePath(), marker.With, stack)
			if err != nil {
				return nil, fmt.Errorf("fixture `%s` parameter `%s`: %w", def.item.Name, param.Name, err)
			}

			binding.Args = append(binding.Args, m.Binding{
				Param:    param.Name,
				Source:   m.BindFixture,
				Fixture:  nested,
				Deferred: marker.Future,
				Awaited:  marker.Awaited,
			})
		}
	}

	return binding, nil
}

func lastSegment(name string) string {
	if idx := strings.LastIndex(name, "::"); idx >= 0 {
		return name[idx+2:]
	}

	return name
}
