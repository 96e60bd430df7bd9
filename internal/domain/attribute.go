// Package domain implements test discovery: attribute interpretation, case
// and combination expansion, fixture resolution, naming and tree building.
package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	m "rsdisco.dev/pkg/rsdisco/internal/model"
	"rsdisco.dev/pkg/rsdisco/pkg"
)

// ErrInvalidArgument marks attributes whose arguments cannot be interpreted.
var ErrInvalidArgument = errors.New("invalid attribute argument")

// asyncRuntimes maps the crate prefix of `<crate>::test` to its runtime name.
var asyncRuntimes = map[string]string{
	"tokio":      "tokio",
	"async_std":  "async_std",
	"actix_rt":   "actix_rt",
	"actix_web":  "actix_web",
	"smol_potat": "smol_potat",
}

// DefaultAsyncRuntime drives parameterized async tests that name no runtime.
const DefaultAsyncRuntime = "async_std"

// InterpretItemAttribute classifies an attribute written on a function.
// Unknown names become AttrUnrecognized; the error is only set when a known
// attribute carries arguments that cannot be interpreted.
func InterpretItemAttribute(record m.AttributeRecord) (m.Attribute, error) {
	attr := m.Attribute{Record: record, Kind: m.AttrUnrecognized}
	head, tail := splitName(record.Name)

	switch {
	case record.Name == "test":
		attr.Kind = m.AttrTest
	case tail == "test" && asyncRuntimes[head] != "":
		attr.Kind = m.AttrAsyncRuntime
		attr.Runtime = asyncRuntimes[head]
	case tail == "test" && head != "":
		// test_log::test, serial_test style wrappers still mark a plain test.
		attr.Kind = m.AttrTest
	case record.Name == "rstest" || record.Name == "rstest::rstest":
		attr.Kind = m.AttrParameterized
	case record.Name == "fixture" || record.Name == "rstest::fixture":
		attr.Kind = m.AttrFixture
	case record.Name == "case" && record.HasArgs:
		attr.Kind = m.AttrCase
		attr.Flavor = m.FlavorRstest
		attr.Values = parseValues(record.Args)
	case head == "case" && tail != "" && record.HasArgs:
		attr.Kind = m.AttrCase
		attr.Flavor = m.FlavorRstest
		attr.Label = tail
		attr.Values = parseValues(record.Args)
	case record.Name == "test_case" || record.Name == "test_case::test_case":
		return interpretTestCase(attr)
	case record.Name == "timeout" || record.Name == "ntest::timeout":
		return interpretTimeout(attr)
	case record.Name == "awt":
		attr.Kind = m.AttrFuture
		attr.Awaited = true
	}

	return attr, nil
}

// InterpretParamAttribute classifies an attribute written on a parameter.
func InterpretParamAttribute(record m.AttributeRecord) (m.Attribute, error) {
	attr := m.Attribute{Record: record, Kind: m.AttrUnrecognized}

	switch record.Name {
	case "case":
		if record.HasArgs {
			return attr, fmt.Errorf("%w: parameter `case` marker takes no arguments", ErrInvalidArgument)
		}

		attr.Kind = m.AttrCaseMarker
	case "values":
		attr.Kind = m.AttrValues
		attr.Values = parseValues(record.Args)
	case "files":
		attr.Kind = m.AttrFiles
		attr.Values = parseValues(record.Args)

		for _, v := range attr.Values {
			if v.Kind != m.ValueString {
				return attr, fmt.Errorf("%w: files pattern %s is not a string literal", ErrInvalidArgument, v.Raw)
			}
		}
	case "future":
		attr.Kind = m.AttrFuture

		switch {
		case len(record.Args) == 1 && record.Args[0] == "awt":
			attr.Awaited = true
		case len(record.Args) > 0:
			return attr, fmt.Errorf("%w: future(%s)", ErrInvalidArgument, record.RawArgs)
		}
	case "awt":
		attr.Kind = m.AttrFuture
		attr.Awaited = true
	case "from":
		if len(record.Args) != 1 {
			return attr, fmt.Errorf("%w: from expects one fixture name", ErrInvalidArgument)
		}

		attr.Kind = m.AttrFrom
		attr.Label = record.Args[0]
	case "with":
		attr.Kind = m.AttrWith
		attr.Values = parseValues(record.Args)
	case "default":
		if strings.TrimSpace(record.RawArgs) == "" {
			return attr, fmt.Errorf("%w: default expects an expression", ErrInvalidArgument)
		}

		attr.Kind = m.AttrDefault
		attr.Values = []m.Value{ParseValue(record.RawArgs)}
	}

	return attr, nil
}

func splitName(name string) (string, string) {
	idx := strings.LastIndex(name, "::")
	if idx < 0 {
		return name, ""
	}

	return name[:idx], name[idx+2:]
}

// interpretTestCase handles `args`, `args ; "description"` and
// `args => expected` forms.
func interpretTestCase(attr m.Attribute) (m.Attribute, error) {
	attr.Kind = m.AttrCase
	attr.Flavor = m.FlavorTestCase

	parts := pkg.Texts(pkg.SplitTopLevel(attr.Record.RawArgs, ";"))
	if len(parts) == 0 || len(parts) > 2 {
		return attr, fmt.Errorf("%w: test_case(%s)", ErrInvalidArgument, attr.Record.RawArgs)
	}

	call := parts[0]
	if arrow := pkg.SplitTopLevel(call, "=>"); len(arrow) == 2 {
		call = arrow[0].Text
		attr.Expected = arrow[1].Text
	}

	args := pkg.Texts(pkg.SplitTopLevel(call, ","))
	attr.Values = parseValues(args)

	if len(parts) == 2 {
		desc := ParseValue(parts[1])
		if desc.Kind != m.ValueString {
			return attr, fmt.Errorf("%w: test_case description %s is not a string literal", ErrInvalidArgument, parts[1])
		}

		attr.Label = EscapeTestName(desc.Str)

		return attr, nil
	}

	generated := strings.Join(args, " ")
	if attr.Expected != "" {
		generated += " expects " + attr.Expected
	}

	attr.Label = EscapeTestName(generated)

	return attr, nil
}

func interpretTimeout(attr m.Attribute) (m.Attribute, error) {
	attr.Kind = m.AttrTimeout

	if len(attr.Record.Args) != 1 {
		return attr, fmt.Errorf("%w: timeout expects one duration", ErrInvalidArgument)
	}

	v := ParseValue(attr.Record.Args[0])

	switch v.Kind {
	case m.ValueDuration:
		d := v.Duration
		attr.Timeout = &d
	case m.ValueInt:
		if v.Int < 0 {
			return attr, fmt.Errorf("%w: negative timeout %s", ErrInvalidArgument, v.Raw)
		}

		d := time.Duration(v.Int) * time.Millisecond
		attr.Timeout = &d
	default:
		return attr, fmt.Errorf("%w: timeout %s is not a duration", ErrInvalidArgument, v.Raw)
	}

	return attr, nil
}

// EscapeTestName turns a free-form description into an identifier: lower
// case, runs of other characters collapsed to `_`, and a leading `_` when
// the result would start with a digit.
func EscapeTestName(desc string) string {
	var b strings.Builder

	underscore := false

	for _, r := range desc {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))

			underscore = false

			continue
		}

		if !underscore {
			b.WriteByte('_')

			underscore = true
		}
	}

	name := b.String()

	switch {
	case name == "":
		return "_empty"
	case unicode.IsDigit([]rune(name)[0]):
		return "_" + name
	}

	return name
}

func parseValues(args []string) []m.Value {
	values := make([]m.Value, 0, len(args))
	for _, arg := range args {
		values = append(values, ParseValue(arg))
	}

	return values
}

var intSuffixes = []string{"u128", "i128", "usize", "isize", "u64", "i64", "u32", "i32", "u16", "i16", "u8", "i8"}

var durationCtors = map[string]time.Duration{
	"from_nanos":  time.Nanosecond,
	"from_micros": time.Microsecond,
	"from_millis": time.Millisecond,
	"from_secs":   time.Second,
}

// ParseValue extracts the structured form of a literal token. Anything that
// is not an unambiguous literal is kept as ValueExpr.
func ParseValue(raw string) m.Value {
	raw = strings.TrimSpace(raw)
	v := m.Value{Raw: raw, Kind: m.ValueExpr}

	switch {
	case raw == "true" || raw == "false":
		v.Kind = m.ValueBool
		v.Bool = raw == "true"
	case strings.HasPrefix(raw, `"`):
		if s, ok := unquoteString(raw); ok {
			v.Kind = m.ValueString
			v.Str = s
		}
	case strings.HasPrefix(raw, "r\"") || strings.HasPrefix(raw, "r#"):
		if s, ok := unquoteRawString(raw); ok {
			v.Kind = m.ValueString
			v.Str = s
		}
	case strings.HasPrefix(raw, "'"):
		if s, ok := unquoteChar(raw); ok {
			v.Kind = m.ValueChar
			v.Str = s
		}
	default:
		if n, ok := parseInt(raw); ok {
			v.Kind = m.ValueInt
			v.Int = n
		} else if f, ok := parseFloat(raw); ok {
			v.Kind = m.ValueFloat
			v.Float = f
		} else if d, ok := parseDuration(raw); ok {
			v.Kind = m.ValueDuration
			v.Duration = d
		}
	}

	return v
}

func unquoteString(raw string) (string, bool) {
	if len(raw) < 2 || !strings.HasSuffix(raw, `"`) || !escapedQuotes(raw) {
		return "", false
	}

	if s, err := strconv.Unquote(raw); err == nil {
		return s, true
	}

	// Rust escapes Go does not know (`\u{1F600}`, line continuations) keep their text.
	return raw[1 : len(raw)-1], true
}

// escapedQuotes reports whether every inner quote of a string literal is escaped.
func escapedQuotes(raw string) bool {
	inner := raw[1 : len(raw)-1]

	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '\\':
			i++
		case '"':
			return false
		}
	}

	return true
}

func unquoteRawString(raw string) (string, bool) {
	body := strings.TrimPrefix(raw, "r")
	hashes := len(body) - len(strings.TrimLeft(body, "#"))
	fence := strings.Repeat("#", hashes)

	body = body[hashes:]
	if !strings.HasPrefix(body, `"`) || !strings.HasSuffix(body, `"`+fence) || len(body) < 2+hashes {
		return "", false
	}

	return body[1 : len(body)-1-hashes], true
}

func unquoteChar(raw string) (string, bool) {
	if len(raw) < 3 || !strings.HasSuffix(raw, "'") {
		return "", false
	}

	inner := raw[1 : len(raw)-1]
	if strings.HasPrefix(inner, `\`) {
		if s, err := strconv.Unquote(`"` + inner + `"`); err == nil {
			return s, true
		}

		return inner, true
	}

	if len([]rune(inner)) != 1 {
		return "", false
	}

	return inner, true
}

func parseInt(raw string) (int64, bool) {
	s := raw
	for _, suffix := range intSuffixes {
		if strings.HasSuffix(s, suffix) {
			s = strings.TrimSuffix(s, suffix)
			break
		}
	}

	s = strings.ReplaceAll(s, "_", "")

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	if s == "" || s[0] < '0' || s[0] > '9' {
		return 0, false
	}

	base := 10

	switch {
	case strings.HasPrefix(s, "0x"):
		base, s = 16, s[2:]
	case strings.HasPrefix(s, "0o"):
		base, s = 8, s[2:]
	case strings.HasPrefix(s, "0b"):
		base, s = 2, s[2:]
	}

	u, err := strconv.ParseUint(s, base, 64)
	if err != nil || u > math.MaxInt64 {
		return 0, false
	}

	if neg {
		return -int64(u), true
	}

	return int64(u), true
}

func parseFloat(raw string) (float64, bool) {
	s := strings.TrimSuffix(strings.TrimSuffix(raw, "f64"), "f32")
	s = strings.ReplaceAll(s, "_", "")

	body := strings.TrimPrefix(s, "-")
	if body == "" || body[0] < '0' || body[0] > '9' || strings.HasPrefix(body, "0x") {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	return f, true
}

// parseDuration understands `Duration::from_*(n)` with an optional
// `std::time::` or `core::time::` prefix.
func parseDuration(raw string) (time.Duration, bool) {
	s := strings.TrimPrefix(raw, "std::time::")
	s = strings.TrimPrefix(s, "core::time::")

	if !strings.HasPrefix(s, "Duration::") {
		return 0, false
	}

	s = strings.TrimPrefix(s, "Duration::")

	open := strings.IndexByte(s, '(')
	if open < 0 || pkg.MatchingClose(s, open) != len(s)-1 {
		return 0, false
	}

	ctor, arg := s[:open], strings.TrimSpace(s[open+1:len(s)-1])

	if ctor == "from_secs_f64" || ctor == "from_secs_f32" {
		f, ok := parseFloat(arg)
		if !ok {
			n, isInt := parseInt(arg)
			if !isInt {
				return 0, false
			}

			f = float64(n)
		}

		return time.Duration(f * float64(time.Second)), true
	}

	unit, ok := durationCtors[ctor]
	if !ok {
		return 0, false
	}

	n, ok := parseInt(arg)
	if !ok || n < 0 {
		return 0, false
	}

	return time.Duration(n) * unit, true
}
