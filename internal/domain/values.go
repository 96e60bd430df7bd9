package domain

import (
	m "rsdisco.dev/pkg/rsdisco/internal/model"
)

// Axis is one independently varying parameter of a combinator-expanded function.
type Axis struct {
	Param  string
	Source m.BindingSource
	Values []m.Value
	// Future and Awaited are copied onto every binding drawn from the axis.
	Future  bool
	Awaited bool
}

// Combine returns the Cartesian product of the axes as per-axis positions.
// The leftmost axis varies slowest. An empty axis yields no combination.
func Combine(axes []Axis) [][]int {
	if len(axes) == 0 {
		return nil
	}

	total := 1
	for _, axis := range axes {
		total *= len(axis.Values)
	}

	combos := make([][]int, 0, total)

	for n := 0; n < total; n++ {
		combo := make([]int, len(axes))
		rest := n

		for i := len(axes) - 1; i >= 0; i-- {
			size := len(axes[i].Values)
			combo[i] = rest % size
			rest /= size
		}

		combos = append(combos, combo)
	}

	return combos
}
