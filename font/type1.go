package font

import (
	"fmt"

	"github.com/tsawler/carousel/core"
)

// Type1Font represents a Type1 font in a PDF
// Type1 fonts are the original PostScript fonts and one of the most common font types in PDFs
type Type1Font struct {
	*Font // Embed basic font

	// Type1-specific fields
	FirstChar      int
	LastChar       int
	Widths         []float64
	FontDescriptor *FontDescriptor
	ToUnicode      *core.Stream // CMap for character code to Unicode mapping
}

// NewType1Font creates a Type1 font from a PDF font dictionary
func NewType1Font(fontDict core.Dict, resolver ResolverFunc) (*Type1Font, error) {
	// Extract basic font properties
	name := extractName(fontDict.Get("Name"))
	baseFont := extractName(fontDict.Get("BaseFont"))
	subtype := extractName(fontDict.Get("Subtype"))

	if subtype != "Type1" {
		return nil, fmt.Errorf("not a Type1 font: %s", subtype)
	}

	t1 := &Type1Font{
		Font:      NewFont(name, baseFont, subtype),
		FirstChar: 0,
		LastChar:  255,
	}

	// Parse encoding before widths so that width lookups go through the
	// same code-to-rune mapping as text decoding
	if err := t1.parseEncoding(fontDict, resolver); err != nil {
		return nil, fmt.Errorf("failed to parse encoding: %w", err)
	}

	first, last, widths, err := parseWidthsArray(fontDict, resolver)
	if err != nil {
		return nil, fmt.Errorf("failed to parse widths: %w", err)
	}
	t1.FirstChar, t1.LastChar, t1.Widths = first, last, widths
	t1.applyWidths(first, last, widths)

	// Font descriptor is optional: the standard 14 fonts carry no
	// descriptor, and damaged ones should not sink the whole font
	if fd, err := parseFontDescriptor(fontDict, resolver); err == nil {
		t1.FontDescriptor = fd
	}

	if stream := toUnicodeStream(fontDict, resolver); stream != nil {
		t1.ToUnicode = stream
		if cmap, err := ParseToUnicodeCMap(stream); err == nil {
			t1.Font.ToUnicodeCMap = cmap
		}
	}

	return t1, nil
}

// parseEncoding extracts the encoding from the font dictionary
func (t1 *Type1Font) parseEncoding(fontDict core.Dict, resolver ResolverFunc) error {
	encodingObj := fontDict.Get("Encoding")
	if encodingObj == nil {
		// Use default encoding
		t1.Encoding = "StandardEncoding"
		return nil
	}

	encodingObj, err := deref(encodingObj, resolver)
	if err != nil {
		return err
	}

	// Check if it's a name (predefined encoding)
	if name, ok := encodingObj.(core.Name); ok {
		t1.Encoding = string(name)
		return nil
	}

	// Check if it's a dictionary (custom encoding with Differences)
	if dict, ok := encodingObj.(core.Dict); ok {
		if name, ok := dict.GetName("BaseEncoding"); ok {
			t1.Encoding = string(name)
		} else {
			t1.Encoding = "StandardEncoding"
		}

		diffsObj, err := deref(dict.Get("Differences"), resolver)
		if err != nil {
			return err
		}
		if diffs, ok := diffsObj.(core.Array); ok {
			if err := t1.applyEncodingDifferences(diffs); err != nil {
				return err
			}
		}

		return nil
	}

	return fmt.Errorf("invalid encoding type: %T", encodingObj)
}

// applyEncodingDifferences overlays a Differences array on the base
// encoding, resolving glyph names to Unicode.
func (t1 *Type1Font) applyEncodingDifferences(diffs core.Array) error {
	enc, err := differencesEncoding(t1.Encoding, diffs)
	if err != nil {
		return err
	}
	if enc != nil {
		t1.customEncoding = enc
	}
	return nil
}
