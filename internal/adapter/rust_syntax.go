package adapter

import (
	"errors"
	"fmt"
	"strings"

	m "rsdisco.dev/pkg/rsdisco/internal/model"
	"rsdisco.dev/pkg/rsdisco/pkg"
)

var (
	errMalformedAttribute = errors.New("malformed attribute")
	errMalformedParameter = errors.New("malformed parameter")
)

// parseAttribute splits `#[name::path(args)]`, `#[name = value]` or `#[name]`
// into an AttributeRecord. offset is the byte offset of text in the unit.
func parseAttribute(text string, offset int, lines lineIndex) (m.AttributeRecord, error) {
	trimmed := strings.TrimSpace(text)
	lead := strings.Index(text, trimmed)

	if !strings.HasPrefix(trimmed, "#[") || !strings.HasSuffix(trimmed, "]") {
		return m.AttributeRecord{}, fmt.Errorf("%w: %q", errMalformedAttribute, text)
	}

	inner := strings.TrimSpace(trimmed[2 : len(trimmed)-1])

	nameEnd := 0
	for nameEnd < len(inner) && isPathByte(inner[nameEnd]) {
		nameEnd++
	}

	name := inner[:nameEnd]
	if name == "" {
		return m.AttributeRecord{}, fmt.Errorf("%w: %q", errMalformedAttribute, text)
	}

	record := m.AttributeRecord{
		Name: name,
		Span: lines.span(offset+lead, offset+lead+len(trimmed)),
	}

	rest := strings.TrimSpace(inner[nameEnd:])

	switch {
	case rest == "":
	case strings.HasPrefix(rest, "(") && pkg.MatchingClose(rest, 0) == len(rest)-1:
		record.HasArgs = true
		record.RawArgs = strings.TrimSpace(rest[1 : len(rest)-1])
		record.Args = pkg.Texts(pkg.SplitTopLevel(record.RawArgs, ","))
	case strings.HasPrefix(rest, "="):
		record.HasArgs = true
		record.RawArgs = strings.TrimSpace(rest[1:])
		record.Args = []string{record.RawArgs}
	default:
		return m.AttributeRecord{}, fmt.Errorf("%w: %q", errMalformedAttribute, text)
	}

	return record, nil
}

func isPathByte(c byte) bool {
	return c == ':' || c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// parseParameters splits the text of a parameter list, parentheses included,
// into parameters with their attributes. Receivers are skipped.
func parseParameters(text string, offset int, lines lineIndex) ([]m.Parameter, error) {
	clean := pkg.StripComments(text)

	open := strings.IndexByte(clean, '(')
	if open < 0 {
		return nil, fmt.Errorf("%w: missing parameter list", errMalformedParameter)
	}

	closing := pkg.MatchingClose(clean, open)
	if closing < 0 {
		return nil, fmt.Errorf("%w: unbalanced parameter list", errMalformedParameter)
	}

	base := offset + open + 1

	var params []m.Parameter

	for _, seg := range pkg.SplitParams(clean[open+1 : closing]) {
		param, skip, err := parseParameter(seg, base, lines)
		if err != nil {
			return nil, err
		}

		if skip {
			continue
		}

		params = append(params, param)
	}

	return params, nil
}

func parseParameter(seg pkg.Segment, base int, lines lineIndex) (m.Parameter, bool, error) {
	rest := seg.Text
	pos := base + seg.Offset
	ordinal := 0

	var attrs []m.AttributeRecord

	for strings.HasPrefix(rest, "#") {
		open := strings.IndexByte(rest, '[')
		closing := -1

		if open > 0 {
			closing = pkg.MatchingClose(rest, open)
		}

		if closing < 0 {
			return m.Parameter{}, false, fmt.Errorf("%w: unterminated attribute in %q", errMalformedParameter, seg.Text)
		}

		attr, err := parseAttribute(rest[:closing+1], pos, lines)
		if err != nil {
			return m.Parameter{}, false, err
		}

		attr.Ordinal = ordinal
		ordinal++
		attrs = append(attrs, attr)

		after := rest[closing+1:]
		trimmedAfter := strings.TrimLeft(after, " \t\r\n")
		pos += closing + 1 + len(after) - len(trimmedAfter)
		rest = trimmedAfter
	}

	colon := typeColon(rest)
	if colon < 0 {
		if isReceiver(rest) {
			return m.Parameter{}, true, nil
		}

		return m.Parameter{}, false, fmt.Errorf("%w: %q has no type", errMalformedParameter, seg.Text)
	}

	pattern := strings.TrimSpace(rest[:colon])
	pattern = strings.TrimPrefix(pattern, "mut ")
	pattern = strings.TrimPrefix(pattern, "ref ")
	pattern = strings.TrimSpace(pattern)

	if pattern == "" {
		return m.Parameter{}, false, fmt.Errorf("%w: %q has no name", errMalformedParameter, seg.Text)
	}

	if pattern == "self" {
		return m.Parameter{}, true, nil
	}

	typ := strings.TrimSpace(rest[colon+1:])
	if typ == "" {
		return m.Parameter{}, false, fmt.Errorf("%w: %q has no type", errMalformedParameter, seg.Text)
	}

	return m.Parameter{
		Name:       pattern,
		Type:       typ,
		Attributes: attrs,
		Span:       lines.span(pos, base+seg.Offset+len(seg.Text)),
	}, false, nil
}

// typeColon finds the `:` separating pattern and type, skipping `::` paths.
func typeColon(s string) int {
	depth := 0

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ':':
			if i+1 < len(s) && s[i+1] == ':' {
				i++
				continue
			}

			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

func isReceiver(s string) bool {
	fields := strings.Fields(strings.ReplaceAll(s, "&", "& "))
	return len(fields) > 0 && fields[len(fields)-1] == "self"
}

// lineIndex maps byte offsets to 1-based lines.
type lineIndex []int

func newLineIndex(src []byte) lineIndex {
	idx := lineIndex{0}

	for i, c := range src {
		if c == '\n' {
			idx = append(idx, i+1)
		}
	}

	return idx
}

func (li lineIndex) line(offset int) int {
	lo, hi := 0, len(li)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if li[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}

	return lo + 1
}

func (li lineIndex) span(start, end int) m.Span {
	last := end
	if end > start {
		last = end - 1
	}

	return m.Span{
		StartByte: start,
		EndByte:   end,
		StartLine: li.line(start),
		EndLine:   li.line(last),
	}
}
