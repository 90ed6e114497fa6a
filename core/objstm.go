package core

import (
	"fmt"
)

// ObjectStream represents a PDF object stream (/Type /ObjStm, PDF 1.5):
// a container stream holding several non-stream objects, addressed by an
// index of object-number/offset pairs. Decoding and member parsing are
// lazy; parsed members are cached so each is materialized once.
type ObjectStream struct {
	stream  *Stream
	n       int
	first   int
	extends *IndirectRef
	decoded []byte
	entries []objStmEntry
	objects map[int]Object // cache keyed by index within the stream
}

// objStmEntry pairs an object number with its offset in the decoded data,
// relative to First.
type objStmEntry struct {
	Number int
	Offset int
}

// NewObjectStream wraps a parsed stream as an object stream. The stream
// dictionary must carry /Type /ObjStm with the required /N and /First.
func NewObjectStream(stream *Stream) (*ObjectStream, error) {
	if stream == nil {
		return nil, fmt.Errorf("stream is nil")
	}
	if typ, _ := stream.Dict.GetName("Type"); typ != "ObjStm" {
		return nil, fmt.Errorf("stream is not an object stream, got type /%s", typ)
	}
	n, ok := stream.Dict.GetInt("N")
	if !ok || n < 0 {
		return nil, fmt.Errorf("object stream /N missing or invalid")
	}
	first, ok := stream.Dict.GetInt("First")
	if !ok || first < 0 {
		return nil, fmt.Errorf("object stream /First missing or invalid")
	}

	var extends *IndirectRef
	if obj := stream.Dict.Get("Extends"); obj != nil {
		ref, ok := obj.(IndirectRef)
		if !ok {
			return nil, fmt.Errorf("invalid /Extends type: %T", obj)
		}
		extends = &ref
	}

	return &ObjectStream{
		stream:  stream,
		n:       int(n),
		first:   int(first),
		extends: extends,
		objects: make(map[int]Object),
	}, nil
}

// N returns the number of objects stored in the stream.
func (os *ObjectStream) N() int { return os.n }

// First returns the offset of the first object's data in the decoded
// payload; the object-number/offset header precedes it.
func (os *ObjectStream) First() int { return os.first }

// Extends returns the reference to the object stream this one extends, or
// nil.
func (os *ObjectStream) Extends() *IndirectRef { return os.extends }

// decode materializes the payload and header on first access.
func (os *ObjectStream) decode() error {
	if os.decoded != nil {
		return nil
	}
	decoded, err := os.stream.Decoded()
	if err != nil {
		return fmt.Errorf("failed to decode object stream: %w", err)
	}
	if os.first > len(decoded) {
		return fmt.Errorf("object stream /First %d exceeds decoded length %d", os.first, len(decoded))
	}
	os.decoded = decoded

	// Header: N whitespace-separated integer pairs before First.
	p := NewParser(decoded[:os.first])
	os.entries = make([]objStmEntry, 0, os.n)
	for i := 0; i < os.n; i++ {
		number, err := p.parseRequiredInt("member object number")
		if err != nil {
			return fmt.Errorf("object stream header pair %d: %w", i, err)
		}
		offset, err := p.parseRequiredInt("member offset")
		if err != nil {
			return fmt.Errorf("object stream header pair %d: %w", i, err)
		}
		os.entries = append(os.entries, objStmEntry{Number: number, Offset: offset})
	}
	return nil
}

// GetObjectByIndex extracts the member at a 0-based index, returning the
// object and its object number. Members never contain streams, so plain
// value parsing suffices.
func (os *ObjectStream) GetObjectByIndex(index int) (Object, int, error) {
	if err := os.decode(); err != nil {
		return nil, 0, err
	}
	if index < 0 || index >= len(os.entries) {
		return nil, 0, fmt.Errorf("index %d out of range [0, %d)", index, len(os.entries))
	}
	if obj, ok := os.objects[index]; ok {
		return obj, os.entries[index].Number, nil
	}

	offset := os.first + os.entries[index].Offset
	if offset > len(os.decoded) {
		return nil, 0, fmt.Errorf("member offset %d exceeds decoded length %d", offset, len(os.decoded))
	}

	p := NewParser(os.decoded)
	if err := p.Seek(offset); err != nil {
		return nil, 0, err
	}
	obj, err := p.ParseObject()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse member at index %d: %w", index, err)
	}
	os.objects[index] = obj
	return obj, os.entries[index].Number, nil
}

// GetObjectByNumber finds a member by object number, returning the object
// and its index within the stream.
func (os *ObjectStream) GetObjectByNumber(number int) (Object, int, error) {
	if err := os.decode(); err != nil {
		return nil, 0, err
	}
	for i, entry := range os.entries {
		if entry.Number == number {
			obj, _, err := os.GetObjectByIndex(i)
			return obj, i, err
		}
	}
	return nil, 0, fmt.Errorf("object %d not found in object stream", number)
}

// ObjectNumbers returns the object numbers stored in this stream, in
// header order.
func (os *ObjectStream) ObjectNumbers() ([]int, error) {
	if err := os.decode(); err != nil {
		return nil, err
	}
	nums := make([]int, len(os.entries))
	for i, entry := range os.entries {
		nums[i] = entry.Number
	}
	return nums, nil
}

// ContainsObject reports whether the given object number is a member.
func (os *ObjectStream) ContainsObject(number int) (bool, error) {
	if err := os.decode(); err != nil {
		return false, err
	}
	for _, entry := range os.entries {
		if entry.Number == number {
			return true, nil
		}
	}
	return false, nil
}
