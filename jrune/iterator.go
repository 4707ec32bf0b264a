// Package jrune provides a code-point iterator over a byte buffer, the
// leaf-level primitive jparse is built on. It decodes one Unicode code
// point at a time, optionally skipping ASCII whitespace, and sticks its
// first UTF-8 decode error so callers don't have to check after every
// call.
package jrune

import (
	"fmt"
	"unicode/utf8"
)

// isASCIIWhitespace reports membership in the exact whitespace set the
// grammar permits between tokens: tab, newline, carriage return, space. Form feed and vertical tab
// are deliberately not members.
func isASCIIWhitespace(b byte) bool {
	switch b {
	case 0x09, 0x0A, 0x0D, 0x20:
		return true
	default:
		return false
	}
}

// DecodeError reports a UTF-8 decode failure at a byte offset. It is kept
// distinct from jerr.Error so the iterator has no dependency on the
// parser's error taxonomy; jparse wraps it when surfacing a ParseOutput.
type DecodeError struct {
	Offset int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("jrune: invalid UTF-8 at byte %d", e.Offset)
}

// Iterator walks a byte buffer one Unicode code point at a time.
type Iterator struct {
	buf            []byte
	pos            int
	skipWhitespace bool
	err            error
}

// New returns an Iterator over buf. Whitespace skipping is enabled by
// default, matching the grammar's "whitespace permitted between all
// tokens" rule; jparse's string and number scanners turn it off for the
// duration of a call via SetSkipWhitespace, and MatchLiteral does the same
// for its literal.
func New(buf []byte) *Iterator {
	return &Iterator{buf: buf, skipWhitespace: true}
}

// Pos returns the current byte offset.
func (it *Iterator) Pos() int { return it.pos }

// Err returns the sticky decode error, if one has been set.
func (it *Iterator) Err() error { return it.err }

// SetSkipWhitespace toggles whitespace skipping and returns the previous
// value, so callers can restore it with a single defer.
func (it *Iterator) SetSkipWhitespace(v bool) bool {
	prev := it.skipWhitespace
	it.skipWhitespace = v
	return prev
}

func (it *Iterator) skipWS() {
	if !it.skipWhitespace {
		return
	}
	for it.pos < len(it.buf) && isASCIIWhitespace(it.buf[it.pos]) {
		it.pos++
	}
}

// Peek returns the next significant code point without consuming it. When
// whitespace skipping is on, the position is first advanced past any
// whitespace. It returns 0 at end of buffer or once the sticky error is set.
func (it *Iterator) Peek() rune {
	if it.err != nil {
		return 0
	}
	it.skipWS()
	if it.pos >= len(it.buf) {
		return 0
	}
	r, size := utf8.DecodeRune(it.buf[it.pos:])
	if r == utf8.RuneError && size <= 1 {
		it.err = &DecodeError{Offset: it.pos}
		return 0
	}
	return r
}

// Next returns the next significant code point and advances past it. It
// returns 0 at end of buffer or once the sticky error is set.
func (it *Iterator) Next() rune {
	if it.err != nil {
		return 0
	}
	it.skipWS()
	if it.pos >= len(it.buf) {
		return 0
	}
	r, size := utf8.DecodeRune(it.buf[it.pos:])
	if r == utf8.RuneError && size <= 1 {
		it.err = &DecodeError{Offset: it.pos}
		return 0
	}
	it.pos += size
	return r
}

// PeekByte returns the next raw byte without consuming it and without
// code-point decoding. Like Peek, it first advances past whitespace when
// whitespace skipping is on. Used by jparse for ASCII
// structural characters ('{', '"', '-', digits, ...) where a full rune
// decode would be wasted work; kept on Iterator so jparse never touches
// the buffer directly.
func (it *Iterator) PeekByte() (byte, bool) {
	if it.err != nil {
		return 0, false
	}
	it.skipWS()
	if it.pos >= len(it.buf) {
		return 0, false
	}
	return it.buf[it.pos], true
}

// MatchLiteral temporarily disables whitespace skipping and compares the
// next len(ascii) bytes, consumed one code point at a time via Next,
// against ascii. On any mismatch it stops at the point of mismatch (the
// differing code point has already been consumed, so the position is left
// just past it) and returns false. Whitespace skipping is always restored on exit.
func (it *Iterator) MatchLiteral(ascii string) bool {
	prev := it.SetSkipWhitespace(false)
	defer it.SetSkipWhitespace(prev)

	for i := 0; i < len(ascii); i++ {
		r := it.Next()
		if byte(r) != ascii[i] || r > 0x7F {
			return false
		}
	}
	return true
}
