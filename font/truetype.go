package font

import (
	"fmt"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/tsawler/carousel/core"
)

// TrueTypeFont represents a TrueType font in a PDF
// TrueType fonts contain glyph outlines as quadratic Bézier curves
type TrueTypeFont struct {
	*Font // Embed basic font

	// TrueType-specific fields
	FirstChar      int
	LastChar       int
	Widths         []float64
	FontDescriptor *FontDescriptor
	ToUnicode      *core.Stream // CMap for character code to Unicode mapping

	// Raw font program from FontFile2
	FontProgram []byte

	// Parsed font program, for glyph and advance lookups when the
	// dictionary carries no Widths entry
	sfntFont   *sfnt.Font
	sfntBuf    sfnt.Buffer
	unitsPerEm float64

	isSubset bool // Whether this is a subset font
}

// NewTrueTypeFont creates a TrueType font from a PDF font dictionary
func NewTrueTypeFont(fontDict core.Dict, resolver ResolverFunc) (*TrueTypeFont, error) {
	// Extract basic font properties
	name := extractName(fontDict.Get("Name"))
	baseFont := extractName(fontDict.Get("BaseFont"))
	subtype := extractName(fontDict.Get("Subtype"))

	if subtype != "TrueType" {
		return nil, fmt.Errorf("not a TrueType font: %s", subtype)
	}

	tt := &TrueTypeFont{
		Font:      NewFont(name, baseFont, subtype),
		FirstChar: 0,
		LastChar:  255,
	}

	// Check if this is a subset font (name like "ABCDEF+FontName")
	tt.isSubset = isSubsetFont(baseFont)

	if err := tt.parseEncoding(fontDict, resolver); err != nil {
		return nil, fmt.Errorf("failed to parse encoding: %w", err)
	}

	// Widths from the PDF dictionary override font program widths
	first, last, widths, err := parseWidthsArray(fontDict, resolver)
	if err != nil {
		return nil, fmt.Errorf("failed to parse widths: %w", err)
	}
	tt.FirstChar, tt.LastChar, tt.Widths = first, last, widths
	tt.applyWidths(first, last, widths)

	if fd, err := parseFontDescriptor(fontDict, resolver); err == nil {
		tt.FontDescriptor = fd
	}

	if stream := toUnicodeStream(fontDict, resolver); stream != nil {
		tt.ToUnicode = stream
		if cmap, err := ParseToUnicodeCMap(stream); err == nil {
			tt.Font.ToUnicodeCMap = cmap
		}
	}

	// Parse the embedded font program if present. Non-fatal: the widths
	// from the PDF dictionary are usually all we need.
	if tt.FontDescriptor != nil && tt.FontDescriptor.FontFile2 != nil {
		if err := tt.parseFontProgram(); err != nil {
			_ = err
		}
	}

	return tt, nil
}

// isSubsetFont checks if a font is a subset (has a prefix like "ABCDEF+")
func isSubsetFont(baseFontName string) bool {
	// Subset fonts have names like "ABCDEF+FontName"
	// The prefix is 6 uppercase letters followed by +
	if len(baseFontName) < 8 {
		return false
	}

	for i := 0; i < 6; i++ {
		if baseFontName[i] < 'A' || baseFontName[i] > 'Z' {
			return false
		}
	}

	return baseFontName[6] == '+'
}

// parseEncoding extracts the encoding from the font dictionary
func (tt *TrueTypeFont) parseEncoding(fontDict core.Dict, resolver ResolverFunc) error {
	encodingObj := fontDict.Get("Encoding")
	if encodingObj == nil {
		// Use default encoding
		tt.Encoding = "WinAnsiEncoding"
		return nil
	}

	encodingObj, err := deref(encodingObj, resolver)
	if err != nil {
		return err
	}

	// Check if it's a name (predefined encoding)
	if name, ok := encodingObj.(core.Name); ok {
		tt.Encoding = string(name)
		return nil
	}

	// Check if it's a dictionary (custom encoding with Differences)
	if dict, ok := encodingObj.(core.Dict); ok {
		if name, ok := dict.GetName("BaseEncoding"); ok {
			tt.Encoding = string(name)
		} else {
			tt.Encoding = "WinAnsiEncoding"
		}

		diffsObj, err := deref(dict.Get("Differences"), resolver)
		if err != nil {
			return err
		}
		if diffs, ok := diffsObj.(core.Array); ok {
			enc, err := differencesEncoding(tt.Encoding, diffs)
			if err != nil {
				return err
			}
			if enc != nil {
				tt.customEncoding = enc
			}
		}

		return nil
	}

	return fmt.Errorf("invalid encoding type: %T", encodingObj)
}

// parseFontProgram decodes FontFile2 and hands it to the sfnt parser,
// giving character-to-glyph and glyph-advance lookups.
func (tt *TrueTypeFont) parseFontProgram() error {
	if tt.FontDescriptor == nil || tt.FontDescriptor.FontFile2 == nil {
		return fmt.Errorf("no font program available")
	}

	data, err := tt.FontDescriptor.FontFile2.Decode()
	if err != nil {
		return fmt.Errorf("failed to decode font program: %w", err)
	}

	parsed, err := sfnt.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse font program: %w", err)
	}

	tt.FontProgram = data
	tt.sfntFont = parsed
	tt.unitsPerEm = float64(parsed.UnitsPerEm())

	return nil
}

// GetGlyphID returns the glyph ID for a character, or 0 (.notdef) when the
// font program is absent or does not map the character
func (tt *TrueTypeFont) GetGlyphID(r rune) uint16 {
	if tt.sfntFont == nil {
		return 0
	}

	gid, err := tt.sfntFont.GlyphIndex(&tt.sfntBuf, r)
	if err != nil {
		return 0
	}
	return uint16(gid)
}

// GetWidthFromGlyph gets the width for a glyph ID in 1000ths of an em
func (tt *TrueTypeFont) GetWidthFromGlyph(glyphID uint16) float64 {
	if tt.sfntFont == nil || tt.unitsPerEm == 0 {
		return 500.0 // Default
	}

	// Querying at ppem == unitsPerEm returns the advance in font units
	ppem := fixed.I(int(tt.unitsPerEm))
	adv, err := tt.sfntFont.GlyphAdvance(&tt.sfntBuf, sfnt.GlyphIndex(glyphID), ppem, xfont.HintingNone)
	if err != nil {
		return 500.0
	}

	return float64(adv) / 64.0 * 1000.0 / tt.unitsPerEm
}
