package domain

import (
	"fmt"
	"path"
	"strings"

	m "rsdisco.dev/pkg/rsdisco/internal/model"
)

const pathSep = "::"

func joinPath(parts []string) string {
	return strings.Join(parts, pathSep)
}

// CaseName is `base::label` for labelled cases and `base::case_<index>`
// otherwise.
func CaseName(base string, c Case) string {
	if c.Label != "" {
		return base + pathSep + c.Label
	}

	return fmt.Sprintf("%s%scase_%d", base, pathSep, c.Index)
}

// CombinationNames names every combination as `base::<param>_<value>` per
// axis in declaration order. Values whose rendering repeats inside an axis
// get their position in the axis appended.
func CombinationNames(base string, axes []Axis, combos [][]int) []string {
	rendered := make([][]string, len(axes))

	for i, axis := range axes {
		rendered[i] = renderAxis(axis)
	}

	names := make([]string, 0, len(combos))

	for _, combo := range combos {
		parts := make([]string, 0, len(axes)+1)
		parts = append(parts, base)

		for i, pos := range combo {
			parts = append(parts, axes[i].Param+"_"+rendered[i][pos])
		}

		names = append(names, joinPath(parts))
	}

	return names
}

func renderAxis(axis Axis) []string {
	out := make([]string, len(axis.Values))
	counts := make(map[string]int, len(axis.Values))

	for i, v := range axis.Values {
		out[i] = RenderValue(v, axis.Source)
		counts[out[i]]++
	}

	for i, r := range out {
		if counts[r] > 1 {
			out[i] = fmt.Sprintf("%s_%d", r, i)
		}
	}

	return out
}

// RenderValue renders a value as an identifier fragment. String literals
// lose their quotes, file values keep only their base name.
func RenderValue(v m.Value, source m.BindingSource) string {
	text := v.Raw

	switch {
	case source == m.BindFiles:
		text = path.Base(strings.ReplaceAll(v.Str, "\\", "/"))
	case v.Kind == m.ValueString || v.Kind == m.ValueChar:
		text = v.Str
	case strings.HasPrefix(text, "-"):
		text = "minus_" + text[1:]
	}

	return identifier(text)
}

// identifier collapses every run of characters outside [A-Za-z0-9_] to one
// `_` and trims underscores at both ends.
func identifier(text string) string {
	var b strings.Builder

	pending := false

	for _, r := range text {
		if r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}

			pending = false

			b.WriteRune(r)

			continue
		}

		pending = true
	}

	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "empty"
	}

	return out
}

// dedupeNames appends `_<n>` to any name already taken among siblings.
func dedupeNames(tests []m.DiscoveredTest) {
	seen := make(map[string]int, len(tests))

	for i := range tests {
		name := tests[i].Name
		if _, taken := seen[name]; !taken {
			seen[name] = 0
			continue
		}

		for {
			seen[name]++
			candidate := fmt.Sprintf("%s_%d", name, seen[name])

			if _, taken := seen[candidate]; !taken {
				seen[candidate] = 0
				tests[i].Name = candidate

				break
			}
		}
	}
}

// testID prefixes the display name with the unit path.
func testID(unit m.Path, name string) string {
	return string(unit) + pathSep + name
}
