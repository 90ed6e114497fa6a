package core

// Cursor is a position-tracking view over an in-memory byte buffer. It is
// the lowest layer of the parser: one byte of lookahead via ByteAt, consume
// via Advance, and pushback via Retract. Retract immediately after Advance
// always restores the exact prior byte; the parser relies on that symmetry
// when disambiguating multi-byte constructs such as "12 0 R" versus a bare
// number. Position stays within [0, Len()].
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor creates a cursor positioned at the start of data.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// ByteAt peeks at the current byte without consuming it.
// It fails with ErrEndOfInput when the cursor is past the last byte.
func (c *Cursor) ByteAt() (byte, error) {
	if c.pos >= len(c.data) {
		return 0, parseError(ErrEndOfInput, c.pos, "")
	}
	return c.data[c.pos], nil
}

// Advance reads the current byte and moves past it.
func (c *Cursor) Advance() (byte, error) {
	b, err := c.ByteAt()
	if err != nil {
		return 0, err
	}
	c.pos++
	return b, nil
}

// Increment moves the position forward by one byte without reading.
// It never moves past the end of the buffer.
func (c *Cursor) Increment() {
	if c.pos < len(c.data) {
		c.pos++
	}
}

// Retract moves the position back by one byte. It never moves below zero.
func (c *Cursor) Retract() {
	if c.pos > 0 {
		c.pos--
	}
}

// Seek repositions the cursor to an absolute offset. Offsets may come from
// an untrusted cross-reference table, so out-of-range values fail with
// ErrEndOfInput rather than panicking.
func (c *Cursor) Seek(offset int) error {
	if offset < 0 || offset > len(c.data) {
		return parseError(ErrEndOfInput, offset, "seek outside buffer of %d bytes", len(c.data))
	}
	c.pos = offset
	return nil
}

// Position returns the current byte offset.
func (c *Cursor) Position() int { return c.pos }

// HasMore reports whether at least one byte remains.
func (c *Cursor) HasMore() bool { return c.pos < len(c.data) }

// Len returns the total buffer length.
func (c *Cursor) Len() int { return len(c.data) }

// ReadBytes reads exactly n bytes starting at the current position and
// moves past them. Used for stream payloads, whose extent is given by the
// Length entry rather than by a terminator.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, parseError(ErrBadNumber, c.pos, "negative read length %d", n)
	}
	if c.pos+n > len(c.data) {
		return nil, parseError(ErrEndOfInput, c.pos, "need %d bytes, have %d", n, len(c.data)-c.pos)
	}
	data := c.data[c.pos : c.pos+n]
	c.pos += n
	return data, nil
}

func isWhitespace(b byte) bool {
	// PDF whitespace: space, tab, LF, CR, FF, null
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == 0
}

func isDelimiter(b byte) bool {
	return b == '(' || b == ')' || b == '<' || b == '>' || b == '[' || b == ']' ||
		b == '{' || b == '}' || b == '/' || b == '%'
}

func isRegular(b byte) bool {
	return !isWhitespace(b) && !isDelimiter(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isOctalDigit(b byte) bool {
	return b >= '0' && b <= '7'
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func hexValue(b byte) byte {
	if b >= '0' && b <= '9' {
		return b - '0'
	}
	if b >= 'a' && b <= 'f' {
		return b - 'a' + 10
	}
	if b >= 'A' && b <= 'F' {
		return b - 'A' + 10
	}
	return 0
}
