package core

import (
	"fmt"
	"strconv"
)

// ReferenceResolver resolves an indirect reference to its target object.
// The document reader implements this on top of the cross-reference table;
// the parser needs it mid-parse when a stream's Length entry is itself an
// indirect reference.
type ReferenceResolver interface {
	ResolveReference(ref IndirectRef) (Object, error)
}

// StreamStore is the externalization policy for stream payloads: given the
// raw bytes it persists them somewhere and returns a path that can be
// handed to os.Open later. Payloads above the parser's inline limit are
// spilled through it instead of being retained in memory.
type StreamStore interface {
	Externalize(data []byte) (string, error)
}

// Parser is a recursive-descent parser for COS syntax over an in-memory
// buffer. A Parser holds the state of one parse session and is not safe
// for concurrent use.
type Parser struct {
	cur         *Cursor
	resolver    ReferenceResolver
	store       StreamStore
	inlineLimit int
}

// NewParser creates a parser positioned at the start of data.
func NewParser(data []byte) *Parser {
	return &Parser{cur: NewCursor(data)}
}

// SetReferenceResolver installs the resolver consulted for indirect stream
// lengths. Without one, a stream whose Length is a reference fails to parse.
func (p *Parser) SetReferenceResolver(r ReferenceResolver) {
	p.resolver = r
}

// SetStreamStore installs the externalization policy: payloads larger than
// inlineLimit bytes are written through store instead of kept in memory.
// A nil store disables spilling.
func (p *Parser) SetStreamStore(store StreamStore, inlineLimit int) {
	p.store = store
	p.inlineLimit = inlineLimit
}

// Seek repositions the parser to an absolute byte offset.
func (p *Parser) Seek(offset int) error {
	return p.cur.Seek(offset)
}

// Position returns the current byte offset.
func (p *Parser) Position() int {
	return p.cur.Position()
}

// PeekByte returns the byte at the current position without consuming it.
func (p *Parser) PeekByte() (byte, error) {
	return p.cur.ByteAt()
}

// ReadByte consumes and returns the byte at the current position.
func (p *Parser) ReadByte() (byte, error) {
	return p.cur.Advance()
}

// ReadBytes consumes exactly n bytes.
func (p *Parser) ReadBytes(n int) ([]byte, error) {
	return p.cur.ReadBytes(n)
}

// HasMore reports whether any input remains.
func (p *Parser) HasMore() bool {
	return p.cur.HasMore()
}

// SkipWhitespace consumes whitespace bytes. It does not consume comments.
func (p *Parser) SkipWhitespace() {
	for p.cur.HasMore() {
		b, _ := p.cur.ByteAt()
		if !isWhitespace(b) {
			return
		}
		p.cur.Increment()
	}
}

// skipComment consumes a %-comment through its end of line. The comment
// produces no value; ParseObject loops past it.
func (p *Parser) skipComment() {
	for p.cur.HasMore() {
		b, _ := p.cur.Advance()
		if b == '\r' || b == '\n' {
			return
		}
	}
}

// ReadKeyword consumes a run of regular bytes and returns it. Used for the
// fixed keywords of the object grammar (true, false, null, obj, endobj,
// stream, endstream, R) and for content-stream operators.
func (p *Parser) ReadKeyword() (string, error) {
	start := p.cur.Position()
	for p.cur.HasMore() {
		b, _ := p.cur.ByteAt()
		if !isRegular(b) {
			break
		}
		p.cur.Increment()
	}
	end := p.cur.Position()
	if end == start {
		b, err := p.cur.ByteAt()
		if err != nil {
			return "", err
		}
		return "", parseError(ErrUnexpectedCharacter, start, "expected keyword, found %q", b)
	}
	return string(p.cur.data[start:end]), nil
}

// ParseObject parses one COS value at the current position: null, boolean,
// number, name, literal or hex string, array, dictionary, or indirect
// reference. Leading whitespace is ignored and comments are consumed
// without producing a value. It fails with ErrEndOfInput when no value
// remains and with ErrUnexpectedCharacter when the leading byte cannot
// begin a value.
func (p *Parser) ParseObject() (Object, error) {
	var b byte
	for {
		p.SkipWhitespace()
		var err error
		b, err = p.cur.ByteAt()
		if err != nil {
			return nil, err
		}
		if b != '%' {
			break
		}
		p.skipComment()
	}

	switch {
	case b == '(':
		return p.parseLiteralString()
	case b == '<':
		return p.parseHexStringOrDict()
	case b == '/':
		return p.parseName()
	case b == '[':
		return p.parseArray()
	case isDigit(b) || b == '+' || b == '-' || b == '.':
		return p.parseNumberOrReference()
	case isAlpha(b):
		return p.parseKeywordObject()
	default:
		return nil, parseError(ErrUnexpectedCharacter, p.cur.Position(), "%q cannot begin an object", b)
	}
}

// parseKeywordObject handles the fixed keyword constants true, false, null.
func (p *Parser) parseKeywordObject() (Object, error) {
	start := p.cur.Position()
	kw, err := p.ReadKeyword()
	if err != nil {
		return nil, err
	}
	switch kw {
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	case "null":
		return Null{}, nil
	}
	return nil, parseError(ErrUnexpectedCharacter, start, "unknown keyword %q", kw)
}

// parseName parses /Name. A # introduces a two-hex-digit escape; anything
// other than two hex digits after # is an error.
func (p *Parser) parseName() (Object, error) {
	if _, err := p.cur.Advance(); err != nil { // consume '/'
		return nil, err
	}
	var name []byte
	for p.cur.HasMore() {
		b, _ := p.cur.ByteAt()
		if !isRegular(b) {
			break
		}
		p.cur.Increment()
		if b != '#' {
			name = append(name, b)
			continue
		}
		hi, err := p.cur.Advance()
		if err != nil {
			return nil, err
		}
		lo, err := p.cur.Advance()
		if err != nil {
			return nil, err
		}
		if !isHexDigit(hi) || !isHexDigit(lo) {
			return nil, parseError(ErrUnexpectedCharacter, p.cur.Position()-2,
				"name escape #%c%c is not two hex digits", hi, lo)
		}
		name = append(name, hexValue(hi)<<4|hexValue(lo))
	}
	return Name(name), nil
}

// parseLiteralString parses (...) with balanced-parenthesis nesting.
// Escapes: one to three octal digits, or the fixed table \n \r \t \b \f
// \( \) \\. Unrecognized escape bytes fail with ErrBadEscape; raw control
// bytes below space fail with ErrBadControlCharacter. Reaching end of
// input before the closing parenthesis fails with ErrEndOfInput.
func (p *Parser) parseLiteralString() (Object, error) {
	if _, err := p.cur.Advance(); err != nil { // consume '('
		return nil, err
	}
	depth := 1
	var out []byte
	for {
		b, err := p.cur.Advance()
		if err != nil {
			return nil, err
		}
		switch {
		case b == '\\':
			esc, err := p.parseStringEscape()
			if err != nil {
				return nil, err
			}
			out = append(out, esc)
		case b == '(':
			depth++
			out = append(out, b)
		case b == ')':
			depth--
			if depth == 0 {
				return String(out), nil
			}
			out = append(out, b)
		case b < ' ':
			return nil, parseError(ErrBadControlCharacter, p.cur.Position()-1,
				"raw control byte 0x%02X in literal string", b)
		default:
			out = append(out, b)
		}
	}
}

// parseStringEscape handles the byte(s) after a backslash.
func (p *Parser) parseStringEscape() (byte, error) {
	b, err := p.cur.Advance()
	if err != nil {
		return 0, err
	}
	if isOctalDigit(b) {
		// Up to three octal digits; a non-digit ends the escape early and
		// is not consumed.
		val := int(b - '0')
		for i := 0; i < 2; i++ {
			next, err := p.cur.ByteAt()
			if err != nil || !isOctalDigit(next) {
				break
			}
			p.cur.Increment()
			val = val<<3 | int(next-'0')
		}
		return byte(val), nil
	}
	switch b {
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case '(', ')', '\\':
		return b, nil
	}
	return 0, parseError(ErrBadEscape, p.cur.Position()-1, "\\%c", b)
}

// parseHexStringOrDict handles the two constructs opened by '<': a second
// '<' switches to dictionary parsing, anything else is a hex string.
func (p *Parser) parseHexStringOrDict() (Object, error) {
	save := p.cur.Position()
	if _, err := p.cur.Advance(); err != nil {
		return nil, err
	}
	b, err := p.cur.ByteAt()
	if err != nil {
		// "<" then nothing: an unterminated hex string.
		return nil, err
	}
	if b == '<' {
		if err := p.cur.Seek(save); err != nil {
			return nil, err
		}
		return p.parseDict()
	}
	return p.parseHexString()
}

// parseHexString parses the digits of <...> with the opening '<' already
// consumed. Digits pair into bytes; an odd final digit pads a zero low
// nibble, so <ABC> is 0xAB 0xC0. Any byte other than a hex digit or the
// closing '>' is an error.
func (p *Parser) parseHexString() (Object, error) {
	var out []byte
	var hi byte
	haveHigh := false
	for {
		b, err := p.cur.Advance()
		if err != nil {
			return nil, err
		}
		if b == '>' {
			if haveHigh {
				out = append(out, hi<<4)
			}
			return HexString(out), nil
		}
		if !isHexDigit(b) {
			return nil, parseError(ErrUnexpectedCharacter, p.cur.Position()-1,
				"%q in hex string", b)
		}
		if !haveHigh {
			hi = hexValue(b)
			haveHigh = true
		} else {
			out = append(out, hi<<4|hexValue(b))
			haveHigh = false
		}
	}
}

// parseDict parses <<...>>. Keys are names; a key whose value parses to
// null is dropped, matching the COS convention that an absent key and a
// null-valued key mean the same thing. A dictionary truncated before its
// closing >> fails with ErrEndOfInput.
func (p *Parser) parseDict() (Object, error) {
	for i := 0; i < 2; i++ { // consume '<<'
		if _, err := p.cur.Advance(); err != nil {
			return nil, err
		}
	}
	dict := Dict{}
	for {
		var b byte
		for {
			p.SkipWhitespace()
			var err error
			b, err = p.cur.ByteAt()
			if err != nil {
				return nil, err
			}
			if b != '%' {
				break
			}
			p.skipComment()
		}
		if b == '>' {
			p.cur.Increment()
			b2, err := p.cur.ByteAt()
			if err != nil {
				return nil, err
			}
			if b2 != '>' {
				return nil, parseError(ErrUnexpectedCharacter, p.cur.Position(),
					"expected '>>', found '>%c'", b2)
			}
			p.cur.Increment()
			return dict, nil
		}
		if b != '/' {
			return nil, parseError(ErrUnexpectedCharacter, p.cur.Position(),
				"dictionary key must be a name, found %q", b)
		}
		key, err := p.parseName()
		if err != nil {
			return nil, err
		}
		val, err := p.ParseObject()
		if err != nil {
			return nil, err
		}
		if IsNull(val) {
			continue
		}
		dict[string(key.(Name))] = val
	}
}

// parseArray parses [...]. Null elements are kept: only dictionaries drop
// null values.
func (p *Parser) parseArray() (Object, error) {
	if _, err := p.cur.Advance(); err != nil { // consume '['
		return nil, err
	}
	arr := Array{}
	for {
		var b byte
		for {
			p.SkipWhitespace()
			var err error
			b, err = p.cur.ByteAt()
			if err != nil {
				return nil, err
			}
			if b != '%' {
				break
			}
			p.skipComment()
		}
		if b == ']' {
			p.cur.Increment()
			return arr, nil
		}
		obj, err := p.ParseObject()
		if err != nil {
			return nil, err
		}
		arr = append(arr, obj)
	}
}

// parseNumberOrReference parses a number, then checks whether it begins an
// indirect reference: a non-negative integer followed by another
// non-negative integer and the keyword R. The check needs lookahead past
// the first number, so the cursor position is saved and unconditionally
// restored when the reference pattern does not match.
func (p *Parser) parseNumberOrReference() (Object, error) {
	num, err := p.parseNumber()
	if err != nil {
		return nil, err
	}
	n, ok := num.(Int)
	if !ok || n < 0 {
		return num, nil
	}
	save := p.cur.Position()
	if ref, ok := p.tryReferenceTail(int(n)); ok {
		return ref, nil
	}
	if err := p.cur.Seek(save); err != nil {
		return nil, err
	}
	return num, nil
}

// tryReferenceTail attempts to read "<generation> R" after an integer that
// may be an object number. It reports false when the pattern does not
// match; the caller restores the cursor.
func (p *Parser) tryReferenceTail(number int) (IndirectRef, bool) {
	p.SkipWhitespace()
	b, err := p.cur.ByteAt()
	if err != nil || !isDigit(b) {
		return IndirectRef{}, false
	}
	gen := 0
	for p.cur.HasMore() {
		b, _ := p.cur.ByteAt()
		if !isDigit(b) {
			break
		}
		p.cur.Increment()
		gen = gen*10 + int(b-'0')
	}
	// "12 0.5" is two numbers, not a reference.
	if b, err := p.cur.ByteAt(); err == nil && (b == '.' || isRegular(b)) {
		return IndirectRef{}, false
	}
	p.SkipWhitespace()
	kw, err := p.ReadKeyword()
	if err != nil || kw != "R" {
		return IndirectRef{}, false
	}
	return IndirectRef{Number: number, Generation: gen}, true
}

// parseNumber lexes a numeric token. A leading '+' is skipped silently; a
// '.' anywhere in the token makes it a Real. Integers convert by manual
// base-10 accumulation with a single optional leading '-'; reals convert
// with strconv.ParseFloat over the exact token bytes. Either conversion
// rejecting the token fails with ErrBadNumber.
func (p *Parser) parseNumber() (Object, error) {
	start := p.cur.Position()
	if b, err := p.cur.ByteAt(); err == nil && b == '+' {
		p.cur.Increment()
	}
	tokStart := p.cur.Position()
	isReal := false
	for p.cur.HasMore() {
		b, _ := p.cur.ByteAt()
		if b == '.' {
			isReal = true
		} else if !isDigit(b) && b != '-' {
			break
		}
		p.cur.Increment()
	}
	tok := p.cur.data[tokStart:p.cur.Position()]
	if len(tok) == 0 {
		return nil, parseError(ErrBadNumber, start, "no digits")
	}
	if isReal {
		f, err := strconv.ParseFloat(string(tok), 64)
		if err != nil {
			return nil, parseError(ErrBadNumber, start, "%q", tok)
		}
		return Real(f), nil
	}
	neg := false
	i := 0
	if tok[0] == '-' {
		neg = true
		i = 1
	}
	if i == len(tok) {
		return nil, parseError(ErrBadNumber, start, "sign without digits")
	}
	var val int64
	for ; i < len(tok); i++ {
		if !isDigit(tok[i]) {
			return nil, parseError(ErrBadNumber, start, "%q", tok)
		}
		val = val*10 + int64(tok[i]-'0')
	}
	if neg {
		val = -val
	}
	return Int(val), nil
}

// ParseIndirectRef reads "<number> <generation> R" unconditionally. Unlike
// the backtracking path inside ParseObject, a non-matching input here is
// an error, not a number.
func (p *Parser) ParseIndirectRef() (IndirectRef, error) {
	number, err := p.parseRequiredInt("object number")
	if err != nil {
		return IndirectRef{}, err
	}
	gen, err := p.parseRequiredInt("generation number")
	if err != nil {
		return IndirectRef{}, err
	}
	p.SkipWhitespace()
	pos := p.cur.Position()
	kw, err := p.ReadKeyword()
	if err != nil {
		return IndirectRef{}, err
	}
	if kw != "R" {
		return IndirectRef{}, parseError(ErrUnexpectedCharacter, pos, "expected 'R', found %q", kw)
	}
	return IndirectRef{Number: number, Generation: gen}, nil
}

// parseRequiredInt parses a non-negative integer token or fails.
func (p *Parser) parseRequiredInt(what string) (int, error) {
	p.SkipWhitespace()
	pos := p.cur.Position()
	num, err := p.parseNumber()
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", what, err)
	}
	n, ok := num.(Int)
	if !ok || n < 0 {
		return 0, parseError(ErrUnexpectedCharacter, pos, "expected non-negative integer %s, found %s", what, num)
	}
	return int(n), nil
}

// ParseIndirectObject parses a complete "<num> <gen> obj ... endobj" unit
// at the current position. When the body is a dictionary immediately
// followed by the stream keyword, the payload is captured (and spilled
// through the stream store when above the inline limit) and the result is
// a *Stream. Missing endstream or endobj keywords are hard failures.
func (p *Parser) ParseIndirectObject() (*IndirectObject, error) {
	number, err := p.parseRequiredInt("object number")
	if err != nil {
		return nil, err
	}
	gen, err := p.parseRequiredInt("generation number")
	if err != nil {
		return nil, err
	}
	p.SkipWhitespace()
	pos := p.cur.Position()
	kw, err := p.ReadKeyword()
	if err != nil {
		return nil, err
	}
	if kw != "obj" {
		return nil, parseError(ErrUnexpectedCharacter, pos, "expected 'obj', found %q", kw)
	}

	obj, err := p.ParseObject()
	if err != nil {
		return nil, fmt.Errorf("failed to parse object %d %d: %w", number, gen, err)
	}

	p.SkipWhitespace()
	save := p.cur.Position()
	if b, err := p.cur.ByteAt(); err == nil && isAlpha(b) {
		kw, err := p.ReadKeyword()
		if err != nil {
			return nil, err
		}
		switch kw {
		case "stream":
			dict, ok := obj.(Dict)
			if !ok {
				return nil, parseError(ErrUnexpectedCharacter, save,
					"stream keyword after %s value", obj.Type())
			}
			stream, err := p.parseStreamBody(dict)
			if err != nil {
				return nil, fmt.Errorf("failed to parse stream %d %d: %w", number, gen, err)
			}
			obj = stream
		case "endobj":
			return &IndirectObject{Ref: IndirectRef{Number: number, Generation: gen}, Object: obj}, nil
		default:
			return nil, parseError(ErrUnexpectedCharacter, save,
				"expected 'stream' or 'endobj', found %q", kw)
		}
	}

	p.SkipWhitespace()
	pos = p.cur.Position()
	kw, err = p.ReadKeyword()
	if err != nil {
		return nil, err
	}
	if kw != "endobj" {
		return nil, parseError(ErrUnexpectedCharacter, pos, "expected 'endobj', found %q", kw)
	}
	return &IndirectObject{Ref: IndirectRef{Number: number, Generation: gen}, Object: obj}, nil
}

// parseStreamBody handles everything after the stream keyword: the EOL
// marker, the Length-delimited payload, externalization, and the required
// endstream keyword.
func (p *Parser) parseStreamBody(dict Dict) (*Stream, error) {
	// The keyword must be followed by CRLF or LF alone. A lone CR would
	// leave the payload start ambiguous, so it is rejected.
	b, err := p.cur.Advance()
	if err != nil {
		return nil, err
	}
	switch b {
	case '\n':
	case '\r':
		b2, err := p.cur.Advance()
		if err != nil {
			return nil, err
		}
		if b2 != '\n' {
			return nil, parseError(ErrUnexpectedCharacter, p.cur.Position()-1,
				"stream keyword followed by CR without LF")
		}
	default:
		return nil, parseError(ErrUnexpectedCharacter, p.cur.Position()-1,
			"stream keyword not followed by end of line")
	}

	length, err := p.resolveStreamLength(dict)
	if err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, parseError(ErrInvalidObject, p.cur.Position(), "negative stream Length %d", length)
	}
	payload, err := p.cur.ReadBytes(length)
	if err != nil {
		return nil, err
	}

	stream, err := p.externalize(dict, payload)
	if err != nil {
		return nil, err
	}

	p.SkipWhitespace()
	pos := p.cur.Position()
	kw, err := p.ReadKeyword()
	if err != nil {
		return nil, err
	}
	if kw != "endstream" {
		return nil, parseError(ErrUnexpectedCharacter, pos, "expected 'endstream', found %q", kw)
	}
	return stream, nil
}

// resolveStreamLength returns the payload length from the Length entry,
// resolving it through the reference resolver when indirect. The cursor
// position is saved before the nested resolve and restored after, since
// the resolver re-enters parsing at another offset.
func (p *Parser) resolveStreamLength(dict Dict) (int, error) {
	pos := p.cur.Position()
	switch v := dict.Get("Length").(type) {
	case Int:
		return int(v), nil
	case IndirectRef:
		if p.resolver == nil {
			return 0, parseError(ErrInvalidObject, pos,
				"stream Length is %s but no resolver is set", v)
		}
		save := p.cur.Position()
		obj, err := p.resolver.ResolveReference(v)
		if err != nil {
			return 0, fmt.Errorf("failed to resolve stream Length %s: %w", v, err)
		}
		if err := p.cur.Seek(save); err != nil {
			return 0, err
		}
		n, ok := obj.(Int)
		if !ok {
			return 0, parseError(ErrInvalidObject, pos, "stream Length %s resolved to %s", v, obj)
		}
		return int(n), nil
	case nil:
		return 0, parseError(ErrInvalidObject, pos, "stream dictionary has no Length")
	default:
		return 0, parseError(ErrInvalidObject, pos, "stream Length is %s", v.Type())
	}
}

// externalize applies the spill policy to a captured payload. On spill the
// dictionary's filter keys move to their external variants (FFilter,
// FDecodeParms, F) and the originals are removed, so exactly one decode
// path remains active.
func (p *Parser) externalize(dict Dict, payload []byte) (*Stream, error) {
	if p.store == nil || len(payload) <= p.inlineLimit {
		return NewStream(dict, payload), nil
	}
	path, err := p.store.Externalize(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to externalize %d-byte stream payload: %w", len(payload), err)
	}
	if f, ok := dict["Filter"]; ok {
		dict.Set("FFilter", f)
		dict.Delete("Filter")
	}
	if parms, ok := dict["DecodeParms"]; ok {
		dict.Set("FDecodeParms", parms)
		dict.Delete("DecodeParms")
	}
	dict.Set("F", String(path))
	return NewExternalStream(dict, path, len(payload)), nil
}
