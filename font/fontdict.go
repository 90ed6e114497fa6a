package font

import (
	"fmt"

	"github.com/tsawler/carousel/core"
)

// ResolverFunc resolves an indirect reference to the object it names. Font
// dictionaries lean heavily on indirect references for widths, descriptors
// and embedded font programs, so every font constructor takes one.
type ResolverFunc func(core.IndirectRef) (core.Object, error)

// deref resolves obj through the resolver when it is an indirect reference.
func deref(obj core.Object, resolver ResolverFunc) (core.Object, error) {
	ref, ok := obj.(core.IndirectRef)
	if !ok {
		return obj, nil
	}
	return resolver(ref)
}

// derefStream resolves obj and returns it as a stream, or nil when it is
// absent, unresolvable, or not a stream.
func derefStream(obj core.Object, resolver ResolverFunc) *core.Stream {
	obj, err := deref(obj, resolver)
	if err != nil {
		return nil
	}
	stream, _ := obj.(*core.Stream)
	return stream
}

// toUnicodeStream pulls the ToUnicode stream out of a font dictionary, if any.
func toUnicodeStream(fontDict core.Dict, resolver ResolverFunc) *core.Stream {
	return derefStream(fontDict.Get("ToUnicode"), resolver)
}

// FontDescriptor contains font metrics and properties
type FontDescriptor struct {
	FontName     string
	Flags        int
	FontBBox     [4]float64 // [llx lly urx ury]
	ItalicAngle  float64
	Ascent       float64
	Descent      float64
	CapHeight    float64
	StemV        float64
	StemH        float64
	AvgWidth     float64
	MaxWidth     float64
	MissingWidth float64
	FontFile     *core.Stream // Type1 font program
	FontFile2    *core.Stream // TrueType font program
	FontFile3    *core.Stream // Type1C or CIDFont program
}

// parseFontDescriptor reads the FontDescriptor entry of a font dictionary.
// Descriptors are optional (the standard 14 fonts have none), so an absent
// entry returns nil without error.
func parseFontDescriptor(fontDict core.Dict, resolver ResolverFunc) (*FontDescriptor, error) {
	fdObj := fontDict.Get("FontDescriptor")
	if fdObj == nil {
		return nil, nil
	}

	fdObj, err := deref(fdObj, resolver)
	if err != nil {
		return nil, err
	}

	fdDict, ok := fdObj.(core.Dict)
	if !ok {
		return nil, fmt.Errorf("font descriptor is not a dictionary: %T", fdObj)
	}

	fd := &FontDescriptor{
		FontName:     extractName(fdDict.Get("FontName")),
		ItalicAngle:  getNumber(fdDict.Get("ItalicAngle")),
		Ascent:       getNumber(fdDict.Get("Ascent")),
		Descent:      getNumber(fdDict.Get("Descent")),
		CapHeight:    getNumber(fdDict.Get("CapHeight")),
		StemV:        getNumber(fdDict.Get("StemV")),
		StemH:        getNumber(fdDict.Get("StemH")),
		AvgWidth:     getNumber(fdDict.Get("AvgWidth")),
		MaxWidth:     getNumber(fdDict.Get("MaxWidth")),
		MissingWidth: getNumber(fdDict.Get("MissingWidth")),
	}

	if flags, ok := fdDict.GetInt("Flags"); ok {
		fd.Flags = int(flags)
	}

	if bboxObj, err := deref(fdDict.Get("FontBBox"), resolver); err == nil {
		if bbox, ok := bboxObj.(core.Array); ok && len(bbox) >= 4 {
			for i := 0; i < 4; i++ {
				fd.FontBBox[i] = getNumber(bbox[i])
			}
		}
	}

	fd.FontFile = derefStream(fdDict.Get("FontFile"), resolver)
	fd.FontFile2 = derefStream(fdDict.Get("FontFile2"), resolver)
	fd.FontFile3 = derefStream(fdDict.Get("FontFile3"), resolver)

	return fd, nil
}

// parseWidthsArray extracts the FirstChar/LastChar bounds and the Widths
// array of a simple font dictionary. The returned widths are indexed from
// FirstChar; a font without a Widths entry returns nil widths.
func parseWidthsArray(fontDict core.Dict, resolver ResolverFunc) (first, last int, widths []float64, err error) {
	first, last = 0, 255
	if v, ok := fontDict.GetInt("FirstChar"); ok {
		first = int(v)
	}
	if v, ok := fontDict.GetInt("LastChar"); ok {
		last = int(v)
	}

	obj := fontDict.Get("Widths")
	if obj == nil {
		return first, last, nil, nil
	}
	obj, err = deref(obj, resolver)
	if err != nil {
		return first, last, nil, err
	}

	arr, ok := obj.(core.Array)
	if !ok {
		return first, last, nil, fmt.Errorf("widths is not an array: %T", obj)
	}

	widths = make([]float64, len(arr))
	for i, w := range arr {
		switch v := w.(type) {
		case core.Int:
			widths[i] = float64(v)
		case core.Real:
			widths[i] = float64(v)
		default:
			return first, last, nil, fmt.Errorf("invalid width type at index %d: %T", i, w)
		}
	}
	return first, last, widths, nil
}

// differencesEncoding builds the custom encoding described by an Encoding
// dictionary's Differences array: runs of glyph names, each run preceded by
// the character code it starts at.
func differencesEncoding(base string, diffs core.Array) (Encoding, error) {
	names := make(map[byte]string)
	code := 0
	for _, item := range diffs {
		switch v := item.(type) {
		case core.Int:
			code = int(v)
		case core.Name:
			if code >= 0 && code < 256 {
				names[byte(code)] = string(v)
			}
			code++
		default:
			return nil, fmt.Errorf("invalid differences array item: %T", item)
		}
	}
	if len(names) == 0 {
		return nil, nil
	}
	return NewCustomEncodingFromGlyphs(GetEncoding(base), names), nil
}

// extractName extracts a name from a PDF object. Some writers store name
// values as strings, so both are accepted.
func extractName(obj core.Object) string {
	switch v := obj.(type) {
	case core.Name:
		return string(v)
	case core.String:
		return string(v)
	default:
		return ""
	}
}

// getNumber extracts a numeric value from a PDF object
func getNumber(obj core.Object) float64 {
	switch v := obj.(type) {
	case core.Int:
		return float64(v)
	case core.Real:
		return float64(v)
	default:
		return 0
	}
}
