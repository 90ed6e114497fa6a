package core

import (
	"errors"
	"testing"
)

// TestCursorByteAt tests peeking without consuming
func TestCursorByteAt(t *testing.T) {
	cur := NewCursor([]byte("ab"))

	b, err := cur.ByteAt()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b != 'a' {
		t.Errorf("expected 'a', got %q", b)
	}

	// Peeking does not move the position
	b, err = cur.ByteAt()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b != 'a' {
		t.Errorf("second peek: expected 'a', got %q", b)
	}
	if cur.Position() != 0 {
		t.Errorf("position moved to %d after peek", cur.Position())
	}
}

// TestCursorAdvance tests sequential consumption
func TestCursorAdvance(t *testing.T) {
	cur := NewCursor([]byte("abc"))

	for i, want := range []byte("abc") {
		b, err := cur.Advance()
		if err != nil {
			t.Fatalf("byte %d: unexpected error: %v", i, err)
		}
		if b != want {
			t.Errorf("byte %d: expected %q, got %q", i, want, b)
		}
	}

	if _, err := cur.Advance(); !errors.Is(err, ErrEndOfInput) {
		t.Errorf("expected ErrEndOfInput past the end, got %v", err)
	}
}

// TestCursorAdvanceRetract tests that Retract after Advance restores the
// same byte. The parser's reference lookahead depends on this.
func TestCursorAdvanceRetract(t *testing.T) {
	cur := NewCursor([]byte("xyz"))

	b1, err := cur.Advance()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cur.Retract()
	b2, err := cur.Advance()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b1 != b2 {
		t.Errorf("re-read byte %q differs from first read %q", b2, b1)
	}
	if cur.Position() != 1 {
		t.Errorf("expected position 1, got %d", cur.Position())
	}
}

// TestCursorIncrement tests moving without reading
func TestCursorIncrement(t *testing.T) {
	cur := NewCursor([]byte("ab"))

	cur.Increment()
	if cur.Position() != 1 {
		t.Errorf("expected position 1, got %d", cur.Position())
	}

	// Increment clamps at the end of the buffer
	cur.Increment()
	cur.Increment()
	cur.Increment()
	if cur.Position() != 2 {
		t.Errorf("expected position clamped at 2, got %d", cur.Position())
	}
}

// TestCursorRetract tests that Retract clamps at zero
func TestCursorRetract(t *testing.T) {
	cur := NewCursor([]byte("ab"))

	cur.Retract()
	if cur.Position() != 0 {
		t.Errorf("expected position 0 after retract at start, got %d", cur.Position())
	}

	cur.Increment()
	cur.Retract()
	cur.Retract()
	cur.Retract()
	if cur.Position() != 0 {
		t.Errorf("expected position clamped at 0, got %d", cur.Position())
	}
}

// TestCursorSeek tests absolute repositioning and its bounds
func TestCursorSeek(t *testing.T) {
	data := []byte("hello")

	tests := []struct {
		name    string
		offset  int
		wantErr bool
	}{
		{"start", 0, false},
		{"middle", 2, false},
		{"end", 5, false}, // one past the last byte is a valid EOF position
		{"negative", -1, true},
		{"beyond end", 6, true},
		{"far beyond", 9999, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur := NewCursor(data)
			err := cur.Seek(tt.offset)
			if (err != nil) != tt.wantErr {
				t.Fatalf("wantErr=%v, got error: %v", tt.wantErr, err)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrEndOfInput) {
					t.Errorf("expected ErrEndOfInput kind, got %v", err)
				}
				return
			}
			if cur.Position() != tt.offset {
				t.Errorf("expected position %d, got %d", tt.offset, cur.Position())
			}
		})
	}

	// Seeking to the end leaves nothing to read
	cur := NewCursor(data)
	if err := cur.Seek(5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cur.HasMore() {
		t.Error("expected HasMore false at end position")
	}
	if _, err := cur.ByteAt(); !errors.Is(err, ErrEndOfInput) {
		t.Errorf("expected ErrEndOfInput at end position, got %v", err)
	}
}

// TestCursorHasMore tests the remaining-bytes check
func TestCursorHasMore(t *testing.T) {
	cur := NewCursor([]byte("a"))
	if !cur.HasMore() {
		t.Error("expected HasMore true at start")
	}
	cur.Increment()
	if cur.HasMore() {
		t.Error("expected HasMore false at end")
	}

	empty := NewCursor(nil)
	if empty.HasMore() {
		t.Error("expected HasMore false on empty buffer")
	}
}

// TestCursorLen tests the total length
func TestCursorLen(t *testing.T) {
	if got := NewCursor([]byte("hello")).Len(); got != 5 {
		t.Errorf("expected Len 5, got %d", got)
	}
	if got := NewCursor(nil).Len(); got != 0 {
		t.Errorf("expected Len 0, got %d", got)
	}
}

// TestCursorReadBytes tests bulk reads
func TestCursorReadBytes(t *testing.T) {
	t.Run("exact read", func(t *testing.T) {
		cur := NewCursor([]byte("hello world"))
		data, err := cur.ReadBytes(5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != "hello" {
			t.Errorf("expected 'hello', got %q", data)
		}
		if cur.Position() != 5 {
			t.Errorf("expected position 5, got %d", cur.Position())
		}
	})

	t.Run("read to end", func(t *testing.T) {
		cur := NewCursor([]byte("abc"))
		data, err := cur.ReadBytes(3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != "abc" {
			t.Errorf("expected 'abc', got %q", data)
		}
		if cur.HasMore() {
			t.Error("expected HasMore false after reading everything")
		}
	})

	t.Run("zero length", func(t *testing.T) {
		cur := NewCursor([]byte("abc"))
		data, err := cur.ReadBytes(0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(data) != 0 {
			t.Errorf("expected empty slice, got %q", data)
		}
		if cur.Position() != 0 {
			t.Errorf("position moved to %d on zero-length read", cur.Position())
		}
	})

	t.Run("too many bytes", func(t *testing.T) {
		cur := NewCursor([]byte("abc"))
		if _, err := cur.ReadBytes(4); !errors.Is(err, ErrEndOfInput) {
			t.Errorf("expected ErrEndOfInput, got %v", err)
		}
	})

	t.Run("negative length", func(t *testing.T) {
		cur := NewCursor([]byte("abc"))
		if _, err := cur.ReadBytes(-1); !errors.Is(err, ErrBadNumber) {
			t.Errorf("expected ErrBadNumber, got %v", err)
		}
	})
}

// TestWhitespaceClassification tests the whitespace byte set: space, tab,
// LF, CR, FF, and the null byte
func TestWhitespaceClassification(t *testing.T) {
	tests := []struct {
		name string
		b    byte
		want bool
	}{
		{"space", ' ', true},
		{"tab", '\t', true},
		{"LF", '\n', true},
		{"CR", '\r', true},
		{"FF", '\f', true},
		{"null byte", 0x00, true},
		{"letter", 'a', false},
		{"digit", '7', false},
		{"paren", '(', false},
		{"vertical tab", '\v', false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isWhitespace(tt.b); got != tt.want {
				t.Errorf("isWhitespace(%q) = %v, want %v", tt.b, got, tt.want)
			}
		})
	}
}

// TestDelimiterClassification tests the delimiter byte set
func TestDelimiterClassification(t *testing.T) {
	for _, b := range []byte("()<>[]{}/%") {
		if !isDelimiter(b) {
			t.Errorf("isDelimiter(%q) = false, want true", b)
		}
		if isRegular(b) {
			t.Errorf("isRegular(%q) = true for a delimiter", b)
		}
	}
	for _, b := range []byte("aZ09#+-.") {
		if isDelimiter(b) {
			t.Errorf("isDelimiter(%q) = true, want false", b)
		}
		if !isRegular(b) {
			t.Errorf("isRegular(%q) = false, want true", b)
		}
	}
	// Whitespace is neither a delimiter nor regular
	if isDelimiter(' ') {
		t.Error("isDelimiter(' ') = true, want false")
	}
	if isRegular(' ') {
		t.Error("isRegular(' ') = true, want false")
	}
}

// TestDigitClassification tests the digit classifiers
func TestDigitClassification(t *testing.T) {
	for b := byte('0'); b <= '9'; b++ {
		if !isDigit(b) {
			t.Errorf("isDigit(%q) = false", b)
		}
	}
	for _, b := range []byte("aA/ .") {
		if isDigit(b) {
			t.Errorf("isDigit(%q) = true", b)
		}
	}

	for b := byte('0'); b <= '7'; b++ {
		if !isOctalDigit(b) {
			t.Errorf("isOctalDigit(%q) = false", b)
		}
	}
	for _, b := range []byte("89aF") {
		if isOctalDigit(b) {
			t.Errorf("isOctalDigit(%q) = true", b)
		}
	}

	for _, b := range []byte("0123456789abcdefABCDEF") {
		if !isHexDigit(b) {
			t.Errorf("isHexDigit(%q) = false", b)
		}
	}
	for _, b := range []byte("gGzZ /") {
		if isHexDigit(b) {
			t.Errorf("isHexDigit(%q) = true", b)
		}
	}
}

// TestAlphaClassification tests the letter classifier
func TestAlphaClassification(t *testing.T) {
	for _, b := range []byte("azAZ") {
		if !isAlpha(b) {
			t.Errorf("isAlpha(%q) = false", b)
		}
	}
	for _, b := range []byte("09 /@[`{") {
		if isAlpha(b) {
			t.Errorf("isAlpha(%q) = true", b)
		}
	}
}

// TestHexValue tests hex digit decoding
func TestHexValue(t *testing.T) {
	tests := []struct {
		b    byte
		want byte
	}{
		{'0', 0},
		{'9', 9},
		{'a', 10},
		{'f', 15},
		{'A', 10},
		{'F', 15},
	}

	for _, tt := range tests {
		if got := hexValue(tt.b); got != tt.want {
			t.Errorf("hexValue(%q) = %d, want %d", tt.b, got, tt.want)
		}
	}
}
