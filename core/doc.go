// Package core provides low-level PDF parsing primitives and object types.
//
// This package implements the COS (Carousel Object System) layer of the PDF
// format: the eight basic object types, streams, indirect references,
// cross-reference data in both its classic and stream encodings, and object
// streams.
//
// # Object Types
//
// PDF defines eight basic object types, all implemented as types satisfying
// the Object interface:
//
//   - [Null] - the PDF null object
//   - [Bool] - boolean values (true/false)
//   - [Int] - integers
//   - [Real] - real (floating point) numbers
//   - [String] - literal strings, holding decoded bytes
//   - [HexString] - hexadecimal strings, also holding decoded bytes
//   - [Name] - name objects (e.g., /Type, /Font)
//   - [Array] - heterogeneous arrays
//   - [Dict] - string-keyed dictionaries
//
// Additionally, [Stream] represents a PDF stream (dictionary + payload)
// whose payload may live in memory or be spilled to external storage, and
// [IndirectRef] represents a reference to an indirect object.
//
// # Parsing
//
// The [Parser] type parses PDF syntax from an in-memory buffer, either
// individual values via [Parser.ParseObject] or complete
// "N G obj ... endobj" units via [Parser.ParseIndirectObject]. It sits on
// [Cursor], a byte-level view with one byte of lookahead and cheap
// save/restore, which the parser uses to disambiguate indirect references
// from plain numbers. A [ReferenceResolver] supplies indirect stream
// lengths mid-parse; a [StreamStore] lets large stream payloads spill out
// of memory as they are read.
//
// Parse failures carry a sentinel kind ([ErrUnexpectedCharacter],
// [ErrBadNumber], and friends) and the byte offset, wrapped in a
// [ParseError] that works with errors.Is and errors.As.
//
// # Cross-Reference Data
//
// [XRefTable] maps object numbers to [XRefEntry] locations. [XRefParser]
// parses classic "xref" tables (PDF 1.0-1.4), xref streams (PDF 1.5+),
// hybrid files carrying both, and whole /Prev update chains via
// [XRefParser.ParseAllXRefs]; [MergeXRefTables] folds an update chain into
// one view.
//
// # Object Streams
//
// [ObjectStream] (PDF 1.5+) extracts objects stored inside a compressed
// container stream, decoding the container and parsing members lazily.
//
// # Stream Decoding
//
// Stream payloads decode through their /Filter chain via [Stream.Decoded],
// which caches the result. FlateDecode, LZWDecode, ASCIIHexDecode,
// ASCII85Decode, RunLengthDecode, and CCITTFaxDecode are implemented;
// DCTDecode and JPXDecode pass through for image consumers.
package core
