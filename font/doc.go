// Package font provides PDF font handling including Type1, TrueType, and CID fonts.
//
// This package handles font parsing, character encoding, and text width calculation
// for accurate text extraction from PDFs.
//
// # Font Types
//
// The package supports multiple PDF font types:
//
//   - [Type1Font] - PostScript Type 1 fonts (including Standard 14)
//   - [TrueTypeFont] - TrueType outline fonts, with metrics read from the
//     embedded font program when one is present
//   - [Type0Font] - Composite fonts for CJK text, with CID-keyed widths and
//     vertical writing metrics
//
// # Font Creation
//
// Fonts are created from PDF font dictionaries. The [ResolverFunc] resolves
// indirect references against the document being read:
//
//	font, err := font.NewType1Font(fontDict, resolver)
//	font, err := font.NewTrueTypeFont(fontDict, resolver)
//	font, err := font.NewType0Font(fontDict, resolver)
//
// # Text Decoding
//
// The [Font] type decodes raw string bytes to Unicode text:
//
//	text := font.DecodeString(rawBytes)
//
// Decoding tries the font's ToUnicode CMap first, then UTF-16 byte order
// marks, then the font's character encoding. Encodings built from an
// /Encoding dictionary with /Differences take precedence over the named
// base encoding.
//
// # Character Widths
//
// Width information is used for text positioning:
//
//	width := font.GetWidth(charCode)         // Single character
//	width := font.GetStringWidth(text)       // String width in font units
//
// Widths come from the font dictionary's /Widths array, from the W array of
// a descendant CIDFont, or from the glyph metrics of an embedded TrueType
// font program.
//
// # Encodings
//
// Character encodings map character codes to Unicode runes:
//
//   - Standard PDF encodings (StandardEncoding, WinAnsiEncoding, MacRomanEncoding)
//   - Custom encodings from an /Encoding dictionary with /Differences
//   - ToUnicode CMaps for direct Unicode conversion
//
// # CMap Support
//
// Embedded ToUnicode CMaps are parsed from their content streams and handle
// single codes (bfchar), code ranges (bfrange), and surrogate pairs for
// characters outside the Basic Multilingual Plane.
package font
