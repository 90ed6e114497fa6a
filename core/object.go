package core

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Object represents a COS object. The implementing types form a closed set:
// Null, Bool, Int, Real, String, HexString, Name, Array, Dict, *Stream,
// IndirectRef and *IndirectObject. Consumers dispatch on Type rather than
// reflecting over unknown implementations.
type Object interface {
	Type() ObjectType
	String() string
}

// ObjectType identifies the variant of a COS object.
type ObjectType int

const (
	ObjNull ObjectType = iota
	ObjBool
	ObjInt
	ObjReal
	ObjString
	ObjHexString
	ObjName
	ObjArray
	ObjDict
	ObjStream
	ObjIndirect
	ObjIndirectObject
)

// String returns the string representation of the object type.
func (t ObjectType) String() string {
	switch t {
	case ObjNull:
		return "Null"
	case ObjBool:
		return "Bool"
	case ObjInt:
		return "Int"
	case ObjReal:
		return "Real"
	case ObjString:
		return "String"
	case ObjHexString:
		return "HexString"
	case ObjName:
		return "Name"
	case ObjArray:
		return "Array"
	case ObjDict:
		return "Dict"
	case ObjStream:
		return "Stream"
	case ObjIndirect:
		return "IndirectRef"
	case ObjIndirectObject:
		return "IndirectObject"
	default:
		return "Unknown"
	}
}

// Null represents the COS null object.
type Null struct{}

func (n Null) Type() ObjectType { return ObjNull }
func (n Null) String() string   { return "null" }

// IsNull reports whether obj is absent or the null object. Dictionary
// entries and resolved references treat the two identically.
func IsNull(obj Object) bool {
	if obj == nil {
		return true
	}
	_, ok := obj.(Null)
	return ok
}

// Bool represents a COS boolean.
type Bool bool

func (b Bool) Type() ObjectType { return ObjBool }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Int represents a COS integer.
type Int int64

func (i Int) Type() ObjectType { return ObjInt }
func (i Int) String() string   { return strconv.FormatInt(int64(i), 10) }

// Real represents a COS real number.
type Real float64

func (r Real) Type() ObjectType { return ObjReal }
func (r Real) String() string   { return strconv.FormatFloat(float64(r), 'f', -1, 64) }

// String represents a COS literal string. The value holds raw bytes after
// escape processing; it is not necessarily valid text.
type String string

func (s String) Type() ObjectType { return ObjString }
func (s String) String() string   { return "(" + string(s) + ")" }

// Bytes returns the string's raw byte content.
func (s String) Bytes() []byte { return []byte(s) }

// HexString represents a COS hexadecimal string. The value holds the
// decoded bytes, one per digit pair.
type HexString string

func (h HexString) Type() ObjectType { return ObjHexString }
func (h HexString) String() string {
	return "<" + strings.ToUpper(fmt.Sprintf("%x", string(h))) + ">"
}

// Bytes returns the string's decoded byte content.
func (h HexString) Bytes() []byte { return []byte(h) }

// StringBytes returns the byte content of either string variant.
// It returns false for any other object.
func StringBytes(obj Object) ([]byte, bool) {
	switch s := obj.(type) {
	case String:
		return s.Bytes(), true
	case HexString:
		return s.Bytes(), true
	}
	return nil, false
}

// Name represents a COS name.
type Name string

func (n Name) Type() ObjectType { return ObjName }
func (n Name) String() string   { return "/" + string(n) }

// Array represents a COS array.
type Array []Object

func (a Array) Type() ObjectType { return ObjArray }
func (a Array) String() string {
	var parts []string
	for _, obj := range a {
		parts = append(parts, obj.String())
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Len returns the length of the array.
func (a Array) Len() int {
	return len(a)
}

// Get retrieves an element at the given index.
func (a Array) Get(index int) Object {
	if index < 0 || index >= len(a) {
		return nil
	}
	return a[index]
}

// GetInt retrieves an integer at the given index.
func (a Array) GetInt(index int) (Int, bool) {
	obj := a.Get(index)
	if obj == nil {
		return 0, false
	}
	i, ok := obj.(Int)
	return i, ok
}

// GetReal retrieves a real number at the given index.
func (a Array) GetReal(index int) (Real, bool) {
	obj := a.Get(index)
	if obj == nil {
		return 0, false
	}
	r, ok := obj.(Real)
	return r, ok
}

// GetNumber retrieves an integer or real at the given index as a float64.
func (a Array) GetNumber(index int) (float64, bool) {
	switch v := a.Get(index).(type) {
	case Int:
		return float64(v), true
	case Real:
		return float64(v), true
	}
	return 0, false
}

// GetName retrieves a name at the given index.
func (a Array) GetName(index int) (Name, bool) {
	obj := a.Get(index)
	if obj == nil {
		return "", false
	}
	n, ok := obj.(Name)
	return n, ok
}

// Dict represents a COS dictionary. Keys are name text without the leading
// slash. An entry whose value would be null is never stored: absent key and
// null value are the same thing in COS, and the parser drops such entries
// on construction.
type Dict map[string]Object

func (d Dict) Type() ObjectType { return ObjDict }
func (d Dict) String() string {
	var parts []string
	for key, val := range d {
		parts = append(parts, fmt.Sprintf("/%s %s", key, val.String()))
	}
	return "<<" + strings.Join(parts, " ") + ">>"
}

// Get retrieves a value from the dictionary.
func (d Dict) Get(key string) Object {
	return d[key]
}

// GetName retrieves a name value.
func (d Dict) GetName(key string) (Name, bool) {
	obj, ok := d[key]
	if !ok {
		return "", false
	}
	name, ok := obj.(Name)
	return name, ok
}

// GetInt retrieves an integer value.
func (d Dict) GetInt(key string) (Int, bool) {
	obj, ok := d[key]
	if !ok {
		return 0, false
	}
	i, ok := obj.(Int)
	return i, ok
}

// GetDict retrieves a dictionary value.
func (d Dict) GetDict(key string) (Dict, bool) {
	obj, ok := d[key]
	if !ok {
		return nil, false
	}
	dict, ok := obj.(Dict)
	return dict, ok
}

// GetArray retrieves an array value.
func (d Dict) GetArray(key string) (Array, bool) {
	obj, ok := d[key]
	if !ok {
		return nil, false
	}
	arr, ok := obj.(Array)
	return arr, ok
}

// GetReal retrieves a real number value.
func (d Dict) GetReal(key string) (Real, bool) {
	obj, ok := d[key]
	if !ok {
		return 0, false
	}
	r, ok := obj.(Real)
	return r, ok
}

// GetString retrieves a literal string value.
func (d Dict) GetString(key string) (String, bool) {
	obj, ok := d[key]
	if !ok {
		return "", false
	}
	s, ok := obj.(String)
	return s, ok
}

// GetBool retrieves a boolean value.
func (d Dict) GetBool(key string) (Bool, bool) {
	obj, ok := d[key]
	if !ok {
		return false, false
	}
	b, ok := obj.(Bool)
	return b, ok
}

// GetStream retrieves a stream value.
func (d Dict) GetStream(key string) (*Stream, bool) {
	obj, ok := d[key]
	if !ok {
		return nil, false
	}
	s, ok := obj.(*Stream)
	return s, ok
}

// GetIndirectRef retrieves an indirect reference.
func (d Dict) GetIndirectRef(key string) (IndirectRef, bool) {
	obj, ok := d[key]
	if !ok {
		return IndirectRef{}, false
	}
	ref, ok := obj.(IndirectRef)
	return ref, ok
}

// Has checks if a key exists in the dictionary.
func (d Dict) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// Set sets a value in the dictionary. Setting a null value removes the key.
func (d Dict) Set(key string, value Object) {
	if IsNull(value) {
		delete(d, key)
		return
	}
	d[key] = value
}

// Delete removes a key from the dictionary.
func (d Dict) Delete(key string) {
	delete(d, key)
}

// Keys returns all keys in the dictionary.
func (d Dict) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	return keys
}

// Stream represents a COS stream: a dictionary plus a raw payload. The
// payload lives in memory for small streams, or in a scratch file when the
// parser's externalization policy spilled it. Exactly one of data/path is
// populated.
type Stream struct {
	Dict    Dict
	data    []byte
	path    string
	length  int
	decoded []byte
}

// NewStream creates a stream whose payload is held in memory.
func NewStream(dict Dict, data []byte) *Stream {
	return &Stream{Dict: dict, data: data, length: len(data)}
}

// NewExternalStream creates a stream whose payload of length bytes has been
// written to the scratch file at path.
func NewExternalStream(dict Dict, path string, length int) *Stream {
	return &Stream{Dict: dict, path: path, length: length}
}

func (s *Stream) Type() ObjectType { return ObjStream }
func (s *Stream) String() string {
	if s.Spilled() {
		return fmt.Sprintf("stream %s (%d bytes, external)", s.Dict.String(), s.length)
	}
	return fmt.Sprintf("stream %s (%d bytes)", s.Dict.String(), s.length)
}

// Len returns the raw payload length in bytes.
func (s *Stream) Len() int { return s.length }

// Spilled reports whether the payload was externalized to scratch storage.
func (s *Stream) Spilled() bool { return s.path != "" }

// Path returns the scratch file path for a spilled payload, or "".
func (s *Stream) Path() string { return s.path }

// Raw returns the raw (still encoded) payload bytes, reading them back from
// scratch storage if the payload was spilled.
func (s *Stream) Raw() ([]byte, error) {
	if !s.Spilled() {
		return s.data, nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read external stream payload: %w", err)
	}
	return data, nil
}

// Reader returns a reader over the raw payload. The caller must close it on
// every path; for spilled payloads it holds an open file handle.
func (s *Stream) Reader() (io.ReadCloser, error) {
	if !s.Spilled() {
		return io.NopCloser(bytes.NewReader(s.data)), nil
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open external stream payload: %w", err)
	}
	return f, nil
}

// IndirectRef represents an indirect object reference: an object number and
// generation number identifying a definition elsewhere in the file.
type IndirectRef struct {
	Number     int
	Generation int
}

func (r IndirectRef) Type() ObjectType { return ObjIndirect }
func (r IndirectRef) String() string {
	return fmt.Sprintf("%d %d R", r.Number, r.Generation)
}

// IndirectObject represents an indirect object definition: the reference
// identity together with the owned value.
type IndirectObject struct {
	Ref    IndirectRef
	Object Object
}

func (o *IndirectObject) Type() ObjectType { return ObjIndirectObject }
func (o *IndirectObject) String() string {
	return fmt.Sprintf("%d %d obj %s", o.Ref.Number, o.Ref.Generation, o.Object)
}
