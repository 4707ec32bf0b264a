package jrune

import "testing"

func TestPeekSkipsWhitespace(t *testing.T) {
	it := New([]byte("  \t\n\"x\""))
	if r := it.Peek(); r != '"' {
		t.Fatalf("Peek() = %q, want '\"'", r)
	}
	if it.Pos() != 4 {
		t.Fatalf("Peek() should skip the 4 whitespace bytes without consuming the token, pos = %d", it.Pos())
	}
}

func TestNextAdvances(t *testing.T) {
	it := New([]byte("ab"))
	if r := it.Next(); r != 'a' {
		t.Fatalf("Next() = %q, want 'a'", r)
	}
	if r := it.Next(); r != 'b' {
		t.Fatalf("Next() = %q, want 'b'", r)
	}
	if r := it.Next(); r != 0 {
		t.Fatalf("Next() at EOF = %q, want 0", r)
	}
}

func TestNextDecodesMultibyte(t *testing.T) {
	it := New([]byte("\xc2\xa9")) // U+00A9 COPYRIGHT SIGN
	if r := it.Next(); r != '©' {
		t.Fatalf("Next() = %U, want U+00A9", r)
	}
}

func TestInvalidUTF8SetsStickyError(t *testing.T) {
	it := New([]byte{0xff, 'a'})
	if r := it.Next(); r != 0 {
		t.Fatalf("Next() = %q, want 0 on decode error", r)
	}
	if it.Err() == nil {
		t.Fatalf("expected sticky decode error")
	}
	if r := it.Next(); r != 0 {
		t.Fatalf("Next() after sticky error = %q, want 0", r)
	}
}

func TestMatchLiteralSuccess(t *testing.T) {
	it := New([]byte("true,"))
	if !it.MatchLiteral("true") {
		t.Fatalf("expected MatchLiteral to succeed")
	}
	if it.Pos() != 4 {
		t.Fatalf("pos after match = %d, want 4", it.Pos())
	}
}

func TestMatchLiteralFailureStopsAtMismatch(t *testing.T) {
	it := New([]byte("trux"))
	if it.MatchLiteral("true") {
		t.Fatalf("expected MatchLiteral to fail")
	}
	if it.Pos() != 4 {
		t.Fatalf("pos after failed match = %d, want 4 (advanced through mismatch)", it.Pos())
	}
}

func TestMatchLiteralRestoresWhitespaceSkipping(t *testing.T) {
	it := New([]byte("true   \"x\""))
	if !it.MatchLiteral("true") {
		t.Fatalf("expected MatchLiteral to succeed")
	}
	if r := it.Peek(); r != '"' {
		t.Fatalf("Peek() after MatchLiteral = %q, want '\"' (whitespace skipping restored)", r)
	}
}

func TestPeekByteNoDecode(t *testing.T) {
	it := New([]byte("  [1]"))
	b, ok := it.PeekByte()
	if !ok || b != '[' {
		t.Fatalf("PeekByte() = (%q, %v), want ('[', true)", b, ok)
	}
	if it.Pos() != 2 {
		t.Fatalf("PeekByte() should skip whitespace without consuming token, pos = %d", it.Pos())
	}
}
