// Package pkg provides text utilities shared by the extractor and the interpreter.
package pkg

import (
	"strings"
	"unicode/utf8"
)

// Segment is a trimmed piece of a larger text and the byte offset where it starts.
type Segment struct {
	Text   string
	Offset int
}

// SplitTopLevel splits s on sep wherever the separator is outside brackets,
// string literals and char literals. Empty trailing segments (a trailing
// comma) are dropped.
func SplitTopLevel(s string, sep string) []Segment {
	return split(s, sep, false)
}

// SplitParams is SplitTopLevel for parameter lists: generic angle brackets
// at depth zero also nest, so `HashMap<K, V>` stays one segment.
func SplitParams(s string) []Segment {
	return split(s, ",", true)
}

// Texts returns the text of each segment.
func Texts(segments []Segment) []string {
	texts := make([]string, 0, len(segments))
	for _, seg := range segments {
		texts = append(texts, seg.Text)
	}

	return texts
}

func split(s string, sep string, angles bool) []Segment {
	var segments []Segment

	depth, angle, start := 0, 0, 0

	for i := 0; i < len(s); i++ {
		if end, ok := skipLiteral(s, i); ok {
			i = end
			continue
		}

		c := s[i]

		switch c {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		case '<':
			if angles && depth == 0 {
				angle++
			}
		case '>':
			if angles && depth == 0 && angle > 0 && (i == 0 || s[i-1] != '-') {
				angle--
			}
		}

		if depth == 0 && angle == 0 && strings.HasPrefix(s[i:], sep) {
			segments = append(segments, trimmed(s[start:i], start))
			start = i + len(sep)
			i += len(sep) - 1
		}
	}

	if last := trimmed(s[start:], start); last.Text != "" {
		segments = append(segments, last)
	}

	return segments
}

func trimmed(s string, offset int) Segment {
	lead := len(s) - len(strings.TrimLeft(s, " \t\r\n"))
	return Segment{Text: strings.TrimSpace(s), Offset: offset + lead}
}

// MatchingClose returns the index of the bracket closing the one at open,
// or -1 when it is unbalanced.
func MatchingClose(s string, open int) int {
	depth := 0

	for i := open; i < len(s); i++ {
		if end, ok := skipLiteral(s, i); ok {
			i = end
			continue
		}

		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// StripComments blanks out line and block comments, keeping byte offsets and
// newlines so spans computed on the result stay valid.
func StripComments(s string) string {
	b := []byte(s)

	for i := 0; i < len(b); i++ {
		if end, ok := skipLiteral(s, i); ok {
			i = end
			continue
		}

		if b[i] != '/' || i+1 >= len(b) {
			continue
		}

		switch b[i+1] {
		case '/':
			j := i
			for j < len(b) && b[j] != '\n' {
				b[j] = ' '
				j++
			}

			i = j
		case '*':
			nested := 0
			j := i

			for j < len(b) {
				if j+1 < len(b) && b[j] == '/' && b[j+1] == '*' {
					nested++
					b[j], b[j+1] = ' ', ' '
					j += 2

					continue
				}

				if j+1 < len(b) && b[j] == '*' && b[j+1] == '/' {
					nested--
					b[j], b[j+1] = ' ', ' '
					j += 2

					if nested == 0 {
						break
					}

					continue
				}

				if b[j] != '\n' {
					b[j] = ' '
				}
				j++
			}

			i = j - 1
		}
	}

	return string(b)
}

// skipLiteral reports whether a string, raw string or char literal starts at
// i, and returns the index of its last byte.
func skipLiteral(s string, i int) (int, bool) {
	switch c := s[i]; {
	case c == '"':
		return skipString(s, i), true
	case c == 'r' && (i == 0 || !isIdentByte(s[i-1])):
		if end, ok := skipRawString(s, i); ok {
			return end, true
		}
	case c == '\'':
		return skipChar(s, i)
	}

	return i, false
}

func skipString(s string, i int) int {
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '"':
			return j
		}
	}

	return len(s) - 1
}

func skipRawString(s string, i int) (int, bool) {
	j := i + 1

	hashes := 0
	for j < len(s) && s[j] == '#' {
		hashes++
		j++
	}

	if j >= len(s) || s[j] != '"' {
		return i, false
	}

	closing := "\"" + strings.Repeat("#", hashes)

	end := strings.Index(s[j+1:], closing)
	if end < 0 {
		return len(s) - 1, true
	}

	return j + 1 + end + len(closing) - 1, true
}

// skipChar distinguishes char literals from lifetimes ('a).
func skipChar(s string, i int) (int, bool) {
	if i+1 >= len(s) {
		return i, false
	}

	if s[i+1] == '\\' {
		end := strings.IndexByte(s[i+2:], '\'')
		if end < 0 {
			return i, false
		}

		return i + 2 + end, true
	}

	_, size := utf8.DecodeRuneInString(s[i+1:])
	if i+1+size < len(s) && s[i+1+size] == '\'' {
		return i + 1 + size, true
	}

	return i, false
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// IsIdent reports whether s is a plain identifier.
func IsIdent(s string) bool {
	if s == "" || s[0] >= '0' && s[0] <= '9' {
		return false
	}

	for i := 0; i < len(s); i++ {
		if !isIdentByte(s[i]) {
			return false
		}
	}

	return true
}
