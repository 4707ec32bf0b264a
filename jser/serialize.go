// Package jser serializes a jval.Value tree back to JSON text, per
// spec.md §4.6: numbers in fixed six-fractional-digit form, strings with
// the named-escape table (no generic \u00xx fallback), and an optional
// indent width for pretty-printing.
//
// Grounded on jcs/serialize.go's buffer-growing append style and escape
// table, generalized away from RFC 8785: no UTF-16 member sorting (this
// spec preserves insertion order), no ECMA-262 shortest-round-trip number
// format (this spec always emits six fractional digits), and an indent
// parameter the JCS serializer deliberately has no use for.
package jser

import (
	"strconv"

	"github.com/tzimuto1/json-parser/jval"
)

// Serialize renders v as JSON text. indent <= 0 means compact output (no
// newlines, no indentation); indent > 0 is the number of spaces added per
// nesting level.
func Serialize(v *jval.Value, indent int) []byte {
	s := &serializer{indentWidth: indent}
	buf := s.value(nil, v, 0)
	return buf
}

type serializer struct {
	indentWidth int
}

func (s *serializer) pretty() bool { return s.indentWidth > 0 }

func (s *serializer) newline(buf []byte, depth int) []byte {
	if !s.pretty() {
		return buf
	}
	buf = append(buf, '\n')
	for i := 0; i < depth*s.indentWidth; i++ {
		buf = append(buf, ' ')
	}
	return buf
}

func (s *serializer) value(buf []byte, v *jval.Value, depth int) []byte {
	if v == nil {
		return append(buf, "null"...)
	}
	switch v.Kind {
	case jval.KindNull:
		return append(buf, "null"...)
	case jval.KindBool:
		if v.Bool() {
			return append(buf, "true"...)
		}
		return append(buf, "false"...)
	case jval.KindNumber:
		return s.number(buf, v.Number())
	case jval.KindString:
		return s.string(buf, v.Str())
	case jval.KindArray:
		return s.array(buf, v, depth)
	case jval.KindObject:
		return s.object(buf, v, depth)
	default:
		return append(buf, "null"...)
	}
}

// number renders f with exactly six digits after the decimal point, per
// spec.md §4.6 and its Design Note retaining this even for integers.
func (s *serializer) number(buf []byte, f float64) []byte {
	return strconv.AppendFloat(buf, f, 'f', 6, 64)
}

func (s *serializer) string(buf []byte, str string) []byte {
	buf = append(buf, '"')
	for i := 0; i < len(str); i++ {
		b := str[i]
		switch b {
		case '"':
			buf = append(buf, '\\', '"')
		case '\\':
			buf = append(buf, '\\', '\\')
		case '/':
			buf = append(buf, '\\', '/')
		case '\b':
			buf = append(buf, '\\', 'b')
		case '\f':
			buf = append(buf, '\\', 'f')
		case '\n':
			buf = append(buf, '\\', 'n')
		case '\r':
			buf = append(buf, '\\', 'r')
		case '\t':
			buf = append(buf, '\\', 't')
		default:
			// Everything else, including raw multi-byte UTF-8 sequences
			// and any other byte value, passes through unchanged per
			// spec.md §4.6 — there is no generic \u00xx fallback here.
			buf = append(buf, b)
		}
	}
	buf = append(buf, '"')
	return buf
}

func (s *serializer) array(buf []byte, v *jval.Value, depth int) []byte {
	elems := v.Elems()
	buf = append(buf, '[')
	for i, e := range elems {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = s.newline(buf, depth+1)
		buf = s.value(buf, e, depth+1)
	}
	if len(elems) > 0 {
		buf = s.newline(buf, depth)
	}
	buf = append(buf, ']')
	return buf
}

func (s *serializer) object(buf []byte, v *jval.Value, depth int) []byte {
	members := v.Members()
	buf = append(buf, '{')
	for i, m := range members {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = s.newline(buf, depth+1)
		buf = s.string(buf, m.Key)
		buf = append(buf, ':')
		if s.pretty() {
			buf = append(buf, ' ')
		}
		buf = s.value(buf, m.Value, depth+1)
	}
	if len(members) > 0 {
		buf = s.newline(buf, depth)
	}
	buf = append(buf, '}')
	return buf
}

// String is a convenience wrapper returning Serialize's output as a
// string, for callers that don't want to deal with []byte directly.
func String(v *jval.Value, indent int) string {
	return string(Serialize(v, indent))
}
