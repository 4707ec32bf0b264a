// Package jparse implements the recursive-descent JSON parser of
// spec.md §4.5: it drives a jrune.Iterator, builds a jval.Value tree, and
// reports the first grammar violation it encounters together with the
// byte offset at which parsing stopped.
//
// Grounded on jcstoken's parser shape (one method per grammar production,
// sticky error via early return, a push/pop depth counter) but
// generalized away from that package's JCS-only strictness: duplicate
// object keys are accepted and preserved here, and \u escapes are only
// checked for basic Unicode legality (not noncharacters, not -0/underflow
// rejection), matching spec.md's grammar rather than RFC 8785's.
package jparse

import (
	"math"
	"strconv"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/tzimuto1/json-parser/jerr"
	"github.com/tzimuto1/json-parser/jrune"
	"github.com/tzimuto1/json-parser/jval"
)

// DefaultMaxDepth is the compile-time recursion-depth ceiling, per
// spec.md §4.5/§6.
const DefaultMaxDepth = 512

// Result bundles the root value (or nil), the error code, and the byte
// offset at which parsing stopped — spec.md's ParseOutput.
type Result struct {
	Root     *jval.Value
	Err      error
	Position int
}

// Parse parses a complete JSON text. On success Result.Err is nil and
// Result.Root is non-nil. On failure Result.Root is nil and any partial
// tree built along the way has already been discarded.
func Parse(data []byte) Result {
	return ParseWithMaxDepth(data, DefaultMaxDepth)
}

// ParseWithMaxDepth is like Parse but accepts a custom depth ceiling
// (0 means DefaultMaxDepth).
func ParseWithMaxDepth(data []byte, maxDepth int) Result {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if isEmptyInput(data) {
		return Result{Err: jerr.New(jerr.EmptyInput, 0, "empty or whitespace-only input")}
	}

	p := &parser{it: jrune.New(data), maxDepth: maxDepth}
	v, err := p.parseValue()
	if err != nil {
		return Result{Err: err, Position: p.it.Pos()}
	}

	if decErr := p.it.Err(); decErr != nil {
		return Result{Err: jerr.New(jerr.Utf8Decode, p.it.Pos(), decErr.Error()), Position: p.it.Pos()}
	}

	if p.it.Peek() != 0 {
		// CLI/grammar callers only ever see InvalidJson for trailing
		// content, matching spec.md §4.5's "Top level" rule.
		return Result{Err: jerr.New(jerr.InvalidJson, p.it.Pos(), "trailing content after JSON value"), Position: p.it.Pos()}
	}

	return Result{Root: v, Position: p.it.Pos()}
}

func isEmptyInput(data []byte) bool {
	for _, b := range data {
		switch b {
		case 0x09, 0x0A, 0x0D, 0x20:
			continue
		default:
			return false
		}
	}
	return true
}

type parser struct {
	it       *jrune.Iterator
	depth    int
	maxDepth int
}

// errf builds a grammar-failure error at the current position. If the
// iterator already recorded a UTF-8 decode failure, that earlier fault is
// surfaced instead, preserving the "earliest error wins" stickiness
// spec.md §7/§8 requires — a decode failure is always detected before any
// grammar check downstream of it can fire.
func (p *parser) errf(code jerr.Code, msg string) *jerr.Error {
	if decErr := p.it.Err(); decErr != nil {
		return jerr.New(jerr.Utf8Decode, p.it.Pos(), decErr.Error())
	}
	return jerr.New(code, p.it.Pos(), msg)
}

func (p *parser) pushDepth() error {
	p.depth++
	if p.depth > p.maxDepth {
		return p.errf(jerr.MaxDepthExceeded, "nesting depth exceeds maximum")
	}
	return nil
}

func (p *parser) popDepth() { p.depth-- }

// parseValue dispatches on the next significant code point, per spec.md's
// dispatch table.
func (p *parser) parseValue() (*jval.Value, error) {
	c, ok := p.it.PeekByte()
	if !ok {
		return nil, p.errf(jerr.InvalidJson, "unexpected end of input")
	}

	switch {
	case c == '{':
		return p.parseObject()
	case c == '[':
		return p.parseArray()
	case c == '"':
		return p.parseString()
	case c == 't' || c == 'f':
		return p.parseBool()
	case c == 'n':
		return p.parseNull()
	case c == '-' || isDigit(c):
		return p.parseNumber()
	default:
		return nil, p.errf(jerr.IllegalCharacter, "unexpected character")
	}
}

func (p *parser) parseObject() (*jval.Value, error) {
	if err := p.pushDepth(); err != nil {
		return nil, err
	}
	defer p.popDepth()

	p.it.Next() // consume '{'
	v := jval.NewObject()
	var members []jval.Pair

	if c, ok := p.it.PeekByte(); ok && c == '}' {
		p.it.Next()
		return v, nil
	}
	if _, ok := p.it.PeekByte(); !ok {
		return nil, p.errf(jerr.UnbalancedBrace, "unterminated object")
	}

	for {
		keyVal, err := p.parseString()
		if err != nil {
			return nil, err
		}

		c, ok := p.it.PeekByte()
		if !ok {
			return nil, p.errf(jerr.UnbalancedBrace, "unterminated object")
		}
		if c != ':' {
			return nil, p.errf(jerr.MissingObjectColon, "expected ':' after object key")
		}
		p.it.Next()

		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		members = append(members, jval.Pair{Key: keyVal.Str(), Value: val})

		c, ok = p.it.PeekByte()
		if !ok {
			return nil, p.errf(jerr.UnbalancedBrace, "unterminated object")
		}
		if c == '}' {
			p.it.Next()
			v.SetMembers(members)
			return v, nil
		}
		if c == ',' {
			p.it.Next()
			if _, ok := p.it.PeekByte(); !ok {
				return nil, p.errf(jerr.UnbalancedBrace, "unterminated object")
			}
			continue
		}
		return nil, p.errf(jerr.InvalidJson, "expected ',' or '}' in object")
	}
}

func (p *parser) parseArray() (*jval.Value, error) {
	if err := p.pushDepth(); err != nil {
		return nil, err
	}
	defer p.popDepth()

	p.it.Next() // consume '['
	v := jval.NewArray()
	var elems []*jval.Value

	c, ok := p.it.PeekByte()
	if !ok {
		return nil, p.errf(jerr.UnbalancedSquareBracket, "unterminated array")
	}
	if c == ']' {
		p.it.Next()
		return v, nil
	}

	for {
		elem, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)

		c, ok := p.it.PeekByte()
		if !ok {
			return nil, p.errf(jerr.UnbalancedSquareBracket, "unterminated array")
		}
		if c == ']' {
			p.it.Next()
			v.SetElems(elems)
			return v, nil
		}
		if c == ',' {
			p.it.Next()
			continue
		}
		return nil, p.errf(jerr.InvalidJson, "expected ',' or ']' in array")
	}
}

func (p *parser) parseString() (*jval.Value, error) {
	c, ok := p.it.PeekByte()
	if !ok || c != '"' {
		return nil, p.errf(jerr.InvalidString, "expected '\"' to start string")
	}
	p.it.Next()

	prevSkip := p.it.SetSkipWhitespace(false)
	defer p.it.SetSkipWhitespace(prevSkip)

	var buf []byte
	for {
		r := p.it.Next()
		if r == 0 {
			if decErr := p.it.Err(); decErr != nil {
				return nil, p.errf(jerr.Utf8Decode, decErr.Error())
			}
			return nil, p.errf(jerr.UnbalancedQuote, "unterminated string")
		}
		if r == '"' {
			return jval.NewString(string(buf)), nil
		}
		if r == '\\' {
			decoded, err := p.parseEscape()
			if err != nil {
				return nil, err
			}
			var tmp [4]byte
			n := utf8.EncodeRune(tmp[:], decoded)
			buf = append(buf, tmp[:n]...)
			continue
		}
		if r < 0x20 {
			return nil, p.errf(jerr.StringHasControlChar, "unescaped control character in string")
		}
		var tmp [4]byte
		n := utf8.EncodeRune(tmp[:], r)
		buf = append(buf, tmp[:n]...)
	}
}

func (p *parser) parseEscape() (rune, error) {
	r := p.it.Next()
	if r == 0 && p.it.Err() == nil {
		return 0, p.errf(jerr.InvalidEscapeSequence, "unterminated escape sequence")
	}
	if r == 'u' {
		return p.parseUnicodeEscape()
	}
	decoded, ok := escapedRune(r)
	if !ok {
		return 0, p.errf(jerr.InvalidEscapeSequence, "invalid escape character")
	}
	return decoded, nil
}

func escapedRune(r rune) (rune, bool) {
	switch r {
	case '"':
		return '"', true
	case '\\':
		return '\\', true
	case '/':
		return '/', true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	default:
		return 0, false
	}
}

func (p *parser) parseUnicodeEscape() (rune, error) {
	r1, err := p.readHex4()
	if err != nil {
		return 0, err
	}
	if !utf16.IsSurrogate(r1) {
		return r1, nil
	}
	if r1 >= 0xDC00 {
		return 0, p.errf(jerr.InvalidUnicodeEscapeSequence, "lone low surrogate")
	}

	if p.it.Next() != '\\' || p.it.Next() != 'u' {
		return 0, p.errf(jerr.InvalidUnicodeEscapeSequence, "lone high surrogate (no following \\u)")
	}
	r2, err := p.readHex4()
	if err != nil {
		return 0, err
	}
	if r2 < 0xDC00 || r2 > 0xDFFF {
		return 0, p.errf(jerr.InvalidUnicodeEscapeSequence, "high surrogate followed by non-low-surrogate")
	}
	decoded := utf16.DecodeRune(r1, r2)
	if decoded == unicode.ReplacementChar {
		return 0, p.errf(jerr.InvalidUnicodeEscapeSequence, "invalid surrogate pair")
	}
	return decoded, nil
}

func (p *parser) readHex4() (rune, error) {
	var digits [4]byte
	for i := 0; i < 4; i++ {
		r := p.it.Next()
		if r == 0 || r > 0x7F || !isHexDigit(byte(r)) {
			return 0, p.errf(jerr.InvalidUnicodeEscapeSequence, "incomplete or invalid \\u escape")
		}
		digits[i] = byte(r)
	}
	val, err := strconv.ParseUint(string(digits[:]), 16, 16)
	if err != nil {
		return 0, p.errf(jerr.InvalidUnicodeEscapeSequence, "invalid hex in \\u escape")
	}
	return rune(val), nil
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func (p *parser) parseNumber() (*jval.Value, error) {
	prevSkip := p.it.SetSkipWhitespace(false)
	defer p.it.SetSkipWhitespace(prevSkip)

	start := p.it.Pos()
	var raw []byte

	if c, ok := p.it.PeekByte(); ok && c == '-' {
		raw = append(raw, byte(p.it.Next()))
	}

	intDigits, err := p.scanIntegerPart()
	if err != nil {
		return nil, err
	}
	raw = append(raw, intDigits...)

	fracDigits, err := p.scanFractionPart()
	if err != nil {
		return nil, err
	}
	raw = append(raw, fracDigits...)

	expDigits, err := p.scanExponentPart()
	if err != nil {
		return nil, err
	}
	raw = append(raw, expDigits...)

	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return nil, jerr.New(jerr.InvalidNumberFormat, start, "invalid number literal")
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, jerr.New(jerr.InvalidNumberFormat, start, "number overflows IEEE-754 double")
	}
	return jval.NewNumber(f), nil
}

func (p *parser) scanIntegerPart() ([]byte, error) {
	c, ok := p.it.PeekByte()
	if !ok {
		return nil, p.errf(jerr.InvalidNumberFormat, "unexpected end of input in number")
	}
	if c == '0' {
		p.it.Next()
		if c2, ok := p.it.PeekByte(); ok && isDigit(c2) {
			return nil, p.errf(jerr.InvalidNumberFormat, "leading zero in number")
		}
		return []byte{'0'}, nil
	}
	if !isDigit(c) {
		return nil, p.errf(jerr.InvalidNumberFormat, "expected digit")
	}
	var digits []byte
	for {
		c, ok := p.it.PeekByte()
		if !ok || !isDigit(c) {
			break
		}
		digits = append(digits, byte(p.it.Next()))
	}
	return digits, nil
}

func (p *parser) scanFractionPart() ([]byte, error) {
	c, ok := p.it.PeekByte()
	if !ok || c != '.' {
		return nil, nil
	}
	p.it.Next()
	digits := []byte{'.'}

	c, ok = p.it.PeekByte()
	if !ok || !isDigit(c) {
		return nil, p.errf(jerr.InvalidNumberFormat, "expected digit after decimal point")
	}
	for {
		c, ok := p.it.PeekByte()
		if !ok || !isDigit(c) {
			break
		}
		digits = append(digits, byte(p.it.Next()))
	}
	return digits, nil
}

func (p *parser) scanExponentPart() ([]byte, error) {
	c, ok := p.it.PeekByte()
	if !ok || (c != 'e' && c != 'E') {
		return nil, nil
	}
	digits := []byte{byte(p.it.Next())}

	if c, ok := p.it.PeekByte(); ok && (c == '+' || c == '-') {
		digits = append(digits, byte(p.it.Next()))
	}

	c, ok = p.it.PeekByte()
	if !ok || !isDigit(c) {
		return nil, p.errf(jerr.InvalidNumberFormat, "expected digit in exponent")
	}
	for {
		c, ok := p.it.PeekByte()
		if !ok || !isDigit(c) {
			break
		}
		digits = append(digits, byte(p.it.Next()))
	}
	return digits, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func (p *parser) parseBool() (*jval.Value, error) {
	c, _ := p.it.PeekByte()
	if c == 't' {
		if !p.it.MatchLiteral("true") {
			return nil, p.errf(jerr.InvalidJson, "invalid literal, expected 'true'")
		}
		return jval.NewBool(true), nil
	}
	if !p.it.MatchLiteral("false") {
		return nil, p.errf(jerr.InvalidJson, "invalid literal, expected 'false'")
	}
	return jval.NewBool(false), nil
}

func (p *parser) parseNull() (*jval.Value, error) {
	if !p.it.MatchLiteral("null") {
		return nil, p.errf(jerr.InvalidJson, "invalid literal, expected 'null'")
	}
	return jval.NewNull(), nil
}
