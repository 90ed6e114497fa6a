package core

import (
	"bytes"
	"fmt"
)

// XRefEntryType classifies a cross-reference entry.
type XRefEntryType int

const (
	// XRefEntryFree marks a free (deleted or never-used) object number.
	XRefEntryFree XRefEntryType = iota
	// XRefEntryUncompressed marks an object stored at a byte offset in the
	// file.
	XRefEntryUncompressed
	// XRefEntryCompressed marks an object stored inside an object stream.
	XRefEntryCompressed
)

// XRefEntry represents a single cross-reference entry. The field meaning
// depends on Type: for uncompressed entries Offset is the byte offset of
// the object and Generation its generation number; for compressed entries
// Offset is the object number of the containing object stream and
// Generation the index within it; for free entries Offset is the next free
// object number.
type XRefEntry struct {
	Type       XRefEntryType
	Offset     int64
	Generation int
	InUse      bool
}

// XRefTable maps object numbers to cross-reference entries. Resolution
// state (the parsed-object cache) lives with the document reader, not
// here: the table is pure identity-to-offset data and can be supplied by
// a caller that builds its own.
type XRefTable struct {
	Entries  map[int]*XRefEntry
	Trailer  Dict
	IsStream bool // true when parsed from an xref stream rather than a table
}

// NewXRefTable creates a new empty XRef table.
func NewXRefTable() *XRefTable {
	return &XRefTable{
		Entries: make(map[int]*XRefEntry),
		Trailer: make(Dict),
	}
}

// Get retrieves an XRef entry by object number.
func (x *XRefTable) Get(objNum int) (*XRefEntry, bool) {
	entry, ok := x.Entries[objNum]
	return entry, ok
}

// Set adds or updates an XRef entry.
func (x *XRefTable) Set(objNum int, entry *XRefEntry) {
	x.Entries[objNum] = entry
}

// Size returns the number of entries in the table.
func (x *XRefTable) Size() int {
	return len(x.Entries)
}

// XRefParser parses cross-reference data out of a document buffer. It
// handles classic "xref" tables, xref streams (PDF 1.5), hybrid files
// carrying both, and /Prev incremental-update chains.
type XRefParser struct {
	data []byte
}

// NewXRefParser creates an XRef parser over the document bytes.
func NewXRefParser(data []byte) *XRefParser {
	return &XRefParser{data: data}
}

// FindStartXRef locates the offset recorded by the startxref keyword near
// the end of the file. PDFs end with "startxref\n<offset>\n%%EOF".
func (x *XRefParser) FindStartXRef() (int, error) {
	tail := x.data
	if len(tail) > 1024 {
		tail = tail[len(tail)-1024:]
	}
	idx := bytes.LastIndex(tail, []byte("startxref"))
	if idx == -1 {
		return 0, fmt.Errorf("startxref not found")
	}
	base := len(x.data) - len(tail)

	p := NewParser(x.data)
	if err := p.Seek(base + idx + len("startxref")); err != nil {
		return 0, err
	}
	offset, err := p.parseRequiredInt("startxref offset")
	if err != nil {
		return 0, err
	}
	if offset >= len(x.data) {
		return 0, parseError(ErrEndOfInput, offset, "startxref offset beyond end of file")
	}
	return offset, nil
}

// isXRefStream reports whether the data at offset begins an xref stream
// ("N G obj" with a stream body) rather than a classic table ("xref").
func (x *XRefParser) isXRefStream(offset int) (bool, error) {
	p := NewParser(x.data)
	if err := p.Seek(offset); err != nil {
		return false, err
	}
	p.SkipWhitespace()
	b, err := p.PeekByte()
	if err != nil {
		return false, err
	}
	if isDigit(b) {
		return true, nil
	}
	kw, err := p.ReadKeyword()
	if err != nil {
		return false, err
	}
	if kw == "xref" {
		return false, nil
	}
	return false, parseError(ErrUnexpectedCharacter, offset, "expected 'xref' or 'N G obj', found %q", kw)
}

// ParseXRef parses the cross-reference section at the given byte offset,
// dispatching between the classic table format and the stream format.
func (x *XRefParser) ParseXRef(offset int) (*XRefTable, error) {
	isStream, err := x.isXRefStream(offset)
	if err != nil {
		return nil, err
	}
	if isStream {
		return x.parseXRefStream(offset)
	}
	return x.parseXRefTable(offset)
}

// parseXRefTable parses a classic xref section: the xref keyword, one or
// more "first count" subsections of 20-byte entries, then the trailer
// dictionary.
func (x *XRefParser) parseXRefTable(offset int) (*XRefTable, error) {
	p := NewParser(x.data)
	if err := p.Seek(offset); err != nil {
		return nil, err
	}
	p.SkipWhitespace()
	kw, err := p.ReadKeyword()
	if err != nil {
		return nil, err
	}
	if kw != "xref" {
		return nil, parseError(ErrUnexpectedCharacter, offset, "expected 'xref', found %q", kw)
	}

	table := NewXRefTable()
	for {
		p.SkipWhitespace()
		b, err := p.PeekByte()
		if err != nil {
			return nil, fmt.Errorf("xref table missing trailer: %w", err)
		}
		if isAlpha(b) {
			pos := p.Position()
			kw, err := p.ReadKeyword()
			if err != nil {
				return nil, err
			}
			if kw != "trailer" {
				return nil, parseError(ErrUnexpectedCharacter, pos, "expected 'trailer', found %q", kw)
			}
			obj, err := p.ParseObject()
			if err != nil {
				return nil, fmt.Errorf("failed to parse trailer dictionary: %w", err)
			}
			trailer, ok := obj.(Dict)
			if !ok {
				return nil, parseError(ErrInvalidObject, pos, "trailer is %s, not a dictionary", obj.Type())
			}
			table.Trailer = trailer
			return table, nil
		}

		first, err := p.parseRequiredInt("subsection start")
		if err != nil {
			return nil, err
		}
		count, err := p.parseRequiredInt("subsection count")
		if err != nil {
			return nil, err
		}
		for i := 0; i < count; i++ {
			entry, err := x.parseTableEntry(p)
			if err != nil {
				return nil, fmt.Errorf("failed to parse xref entry %d: %w", first+i, err)
			}
			table.Set(first+i, entry)
		}
	}
}

// parseTableEntry parses one "nnnnnnnnnn ggggg n|f" entry. The format is
// nominally fixed-width 20 bytes; parsing by token tolerates the line
// ending variants writers actually produce.
func (x *XRefParser) parseTableEntry(p *Parser) (*XRefEntry, error) {
	offset, err := p.parseRequiredInt("entry offset")
	if err != nil {
		return nil, err
	}
	gen, err := p.parseRequiredInt("entry generation")
	if err != nil {
		return nil, err
	}
	p.SkipWhitespace()
	pos := p.Position()
	flag, err := p.ReadKeyword()
	if err != nil {
		return nil, err
	}
	entry := &XRefEntry{Offset: int64(offset), Generation: gen}
	switch flag {
	case "n":
		entry.Type = XRefEntryUncompressed
		entry.InUse = true
	case "f":
		entry.Type = XRefEntryFree
	default:
		return nil, parseError(ErrUnexpectedCharacter, pos, "entry flag %q is not 'n' or 'f'", flag)
	}
	return entry, nil
}

// parseXRefStream parses an xref stream at offset: an indirect stream
// object with /Type /XRef whose decoded payload holds binary entries and
// whose dictionary doubles as the trailer.
func (x *XRefParser) parseXRefStream(offset int) (*XRefTable, error) {
	p := NewParser(x.data)
	if err := p.Seek(offset); err != nil {
		return nil, err
	}
	// The Length of an xref stream must be direct: resolving it would need
	// the very table being parsed.
	obj, err := p.ParseIndirectObject()
	if err != nil {
		return nil, fmt.Errorf("failed to parse xref stream object: %w", err)
	}
	stream, ok := obj.Object.(*Stream)
	if !ok {
		return nil, parseError(ErrInvalidObject, offset, "xref stream object is %s", obj.Object.Type())
	}
	return x.decodeXRefStream(stream)
}

// decodeXRefStream builds a table from a parsed /Type /XRef stream.
func (x *XRefParser) decodeXRefStream(stream *Stream) (*XRefTable, error) {
	dict := stream.Dict
	if typ, _ := dict.GetName("Type"); typ != "XRef" {
		return nil, fmt.Errorf("xref stream has /Type /%s, want /XRef", typ)
	}
	size, ok := dict.GetInt("Size")
	if !ok {
		return nil, fmt.Errorf("xref stream missing /Size")
	}
	wArr, ok := dict.GetArray("W")
	if !ok {
		return nil, fmt.Errorf("xref stream missing /W")
	}
	if wArr.Len() != 3 {
		return nil, fmt.Errorf("xref stream /W has %d elements, want 3", wArr.Len())
	}
	w := make([]int, 3)
	for i := 0; i < 3; i++ {
		wi, ok := wArr.GetInt(i)
		if !ok || wi < 0 {
			return nil, fmt.Errorf("xref stream /W[%d] is not a non-negative integer", i)
		}
		w[i] = int(wi)
	}

	// Default index covers object numbers [0, Size).
	index := []int{0, int(size)}
	if idxArr, ok := dict.GetArray("Index"); ok {
		if idxArr.Len()%2 != 0 {
			return nil, fmt.Errorf("xref stream /Index has odd length %d", idxArr.Len())
		}
		index = index[:0]
		for i := 0; i < idxArr.Len(); i++ {
			v, ok := idxArr.GetInt(i)
			if !ok {
				return nil, fmt.Errorf("xref stream /Index[%d] is not an integer", i)
			}
			index = append(index, int(v))
		}
	}

	data, err := stream.Decoded()
	if err != nil {
		return nil, fmt.Errorf("failed to decode xref stream: %w", err)
	}

	table := NewXRefTable()
	table.IsStream = true
	table.Trailer = dict

	pos := 0
	for i := 0; i+1 < len(index); i += 2 {
		first, count := index[i], index[i+1]
		for n := 0; n < count; n++ {
			entry, read, err := x.parseXRefStreamEntry(data[pos:], w)
			if err != nil {
				return nil, fmt.Errorf("xref stream entry for object %d: %w", first+n, err)
			}
			pos += read
			table.Set(first+n, entry)
		}
	}
	return table, nil
}

// parseXRefStreamEntry decodes one binary entry using the /W field widths.
// A zero-width type field defaults the type to 1 (uncompressed). Returns
// the entry and the number of bytes consumed.
func (x *XRefParser) parseXRefStreamEntry(data []byte, w []int) (*XRefEntry, int, error) {
	need := w[0] + w[1] + w[2]
	if len(data) < need {
		return nil, 0, fmt.Errorf("entry needs %d bytes, have %d", need, len(data))
	}

	typ := int64(XRefEntryUncompressed)
	if w[0] > 0 {
		typ = readBigEndianInt(data, w[0])
	}
	field2 := readBigEndianInt(data[w[0]:], w[1])
	field3 := readBigEndianInt(data[w[0]+w[1]:], w[2])

	entry := &XRefEntry{Offset: field2, Generation: int(field3)}
	switch XRefEntryType(typ) {
	case XRefEntryFree:
		entry.Type = XRefEntryFree
	case XRefEntryUncompressed:
		entry.Type = XRefEntryUncompressed
		entry.InUse = true
	case XRefEntryCompressed:
		entry.Type = XRefEntryCompressed
		entry.InUse = true
	default:
		return nil, 0, fmt.Errorf("unknown entry type %d", typ)
	}
	return entry, need, nil
}

// readBigEndianInt reads a big-endian integer of the given byte width.
// Width zero yields zero.
func readBigEndianInt(data []byte, width int) int64 {
	var v int64
	for i := 0; i < width; i++ {
		v = v<<8 | int64(data[i])
	}
	return v
}

// ParsePrevXRef parses the table referenced by the trailer's /Prev entry,
// or returns nil when there is none.
func (x *XRefParser) ParsePrevXRef(table *XRefTable) (*XRefTable, error) {
	prevObj := table.Trailer.Get("Prev")
	if prevObj == nil {
		return nil, nil
	}
	prev, ok := prevObj.(Int)
	if !ok {
		return nil, fmt.Errorf("invalid /Prev entry type: %T", prevObj)
	}
	prevTable, err := x.ParseXRef(int(prev))
	if err != nil {
		return nil, fmt.Errorf("failed to parse previous xref: %w", err)
	}
	return prevTable, nil
}

// MergeXRefTables merges tables given oldest first; later entries override
// earlier ones and the newest trailer wins.
func MergeXRefTables(tables ...*XRefTable) *XRefTable {
	merged := NewXRefTable()
	for _, table := range tables {
		for objNum, entry := range table.Entries {
			merged.Set(objNum, entry)
		}
		merged.Trailer = table.Trailer
		merged.IsStream = table.IsStream
	}
	return merged
}

// ParseAllXRefs locates the newest cross-reference section from the file
// tail and follows its /Prev chain, returning the tables ordered oldest
// first. Hybrid files place an /XRefStm entry in a classic trailer; that
// stream's entries take precedence over its classic sibling and are
// ordered accordingly. Offsets already visited are skipped so that a
// corrupt /Prev loop terminates.
func (x *XRefParser) ParseAllXRefs() ([]*XRefTable, error) {
	offset, err := x.FindStartXRef()
	if err != nil {
		return nil, fmt.Errorf("failed to find xref: %w", err)
	}

	var tables []*XRefTable
	visited := make(map[int]bool)
	for {
		if visited[offset] {
			break
		}
		visited[offset] = true

		table, err := x.ParseXRef(offset)
		if err != nil {
			return nil, fmt.Errorf("failed to parse xref at %d: %w", offset, err)
		}

		step := []*XRefTable{table}
		if stm, ok := table.Trailer.GetInt("XRefStm"); ok && !visited[int(stm)] {
			visited[int(stm)] = true
			stmTable, err := x.ParseXRef(int(stm))
			if err != nil {
				return nil, fmt.Errorf("failed to parse hybrid xref stream at %d: %w", stm, err)
			}
			// The stream's entries override its classic sibling, and the
			// classic trailer stays authoritative for the chain.
			stmTable.Trailer = table.Trailer
			step = append(step, stmTable)
		}
		// Oldest-first order: prepend as we walk backwards through the
		// update history.
		tables = append(step, tables...)

		prevObj := table.Trailer.Get("Prev")
		if prevObj == nil {
			break
		}
		prev, ok := prevObj.(Int)
		if !ok {
			return nil, fmt.Errorf("invalid /Prev entry type: %T", prevObj)
		}
		offset = int(prev)
	}
	return tables, nil
}
