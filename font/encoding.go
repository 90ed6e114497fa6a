package font

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/unicode/norm"
)

// Encoding maps the byte codes of a simple (single-byte) font to Unicode
type Encoding interface {
	// Decode maps a single byte to its Unicode code point
	Decode(b byte) rune

	// DecodeString decodes a whole byte string
	DecodeString(data []byte) string

	// Name returns the PDF name of the encoding
	Name() string
}

// Built-in encodings selectable through a font's Encoding entry
var (
	StandardEncodingTable Encoding = &tableEncoding{name: "StandardEncoding", table: &standardTable}
	WinAnsiEncoding       Encoding = &tableEncoding{name: "WinAnsiEncoding", table: &winAnsiTable}
	MacRomanEncoding      Encoding = &tableEncoding{name: "MacRomanEncoding", table: &macRomanTable}
	MacExpertEncoding     Encoding = &tableEncoding{name: "MacExpertEncoding", table: &macExpertTable}
	PDFDocEncoding        Encoding = &tableEncoding{name: "PDFDocEncoding", table: &pdfDocTable}
)

// GetEncoding returns the built-in encoding with the given PDF name.
// Unknown or empty names fall back to StandardEncoding, the default when a
// font declares no usable encoding.
func GetEncoding(name string) Encoding {
	switch name {
	case "WinAnsiEncoding":
		return WinAnsiEncoding
	case "MacRomanEncoding":
		return MacRomanEncoding
	case "MacExpertEncoding":
		return MacExpertEncoding
	case "PDFDocEncoding":
		return PDFDocEncoding
	default:
		return StandardEncodingTable
	}
}

// DecodeWithEncoding decodes data using the named built-in encoding
func DecodeWithEncoding(data []byte, encodingName string) string {
	return GetEncoding(encodingName).DecodeString(data)
}

// NormalizeUnicode normalizes a decoded string to NFC so that composed and
// decomposed character sequences compare equal
func NormalizeUnicode(s string) string {
	return norm.NFC.String(s)
}

// IsValidUTF8 reports whether s is well-formed UTF-8
func IsValidUTF8(s string) bool {
	return utf8.ValidString(s)
}

// DecodeUTF16BE decodes big-endian UTF-16 bytes (no leading BOM)
func DecodeUTF16BE(data []byte) string {
	dec := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	decoded, err := dec.Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}

// DecodeUTF16LE decodes little-endian UTF-16 bytes (no leading BOM)
func DecodeUTF16LE(data []byte) string {
	dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	decoded, err := dec.Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}

// DecodeTextString decodes a PDF text string: UTF-16 when the bytes begin
// with a byte order mark, UTF-8 when they begin with a UTF-8 BOM, and
// PDFDocEncoding otherwise. Used for document metadata such as Info values.
func DecodeTextString(data []byte) string {
	switch {
	case len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF:
		return DecodeUTF16BE(data[2:])
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE:
		return DecodeUTF16LE(data[2:])
	case len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF:
		return string(data[3:])
	}
	return PDFDocEncoding.DecodeString(data)
}

// tableEncoding is a built-in encoding backed by a fixed 256-entry table
type tableEncoding struct {
	name  string
	table *[256]rune
}

func (e *tableEncoding) Decode(b byte) rune {
	if r := e.table[b]; r != 0 {
		return r
	}
	return utf8.RuneError
}

func (e *tableEncoding) DecodeString(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		sb.WriteRune(e.Decode(b))
	}
	return sb.String()
}

func (e *tableEncoding) Name() string {
	return e.name
}

// customEncoding overlays per-byte differences on a base encoding, as
// produced by a font's Differences array
type customEncoding struct {
	base        Encoding
	differences map[byte]rune
}

// NewCustomEncoding creates an encoding that maps the given bytes to the
// given runes and defers to base for everything else
func NewCustomEncoding(base Encoding, differences map[byte]rune) Encoding {
	return &customEncoding{base: base, differences: differences}
}

// NewCustomEncodingFromGlyphs creates a custom encoding from glyph names, as
// they appear in a Differences array. Names not in the glyph table are
// ignored and fall through to the base encoding.
func NewCustomEncodingFromGlyphs(base Encoding, differences map[byte]string) Encoding {
	runes := make(map[byte]rune, len(differences))
	for b, glyph := range differences {
		if r, ok := glyphNameToUnicode[glyph]; ok {
			runes[b] = r
		}
	}
	return &customEncoding{base: base, differences: runes}
}

func (e *customEncoding) Decode(b byte) rune {
	if r, ok := e.differences[b]; ok {
		return r
	}
	return e.base.Decode(b)
}

func (e *customEncoding) DecodeString(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		sb.WriteRune(e.Decode(b))
	}
	return sb.String()
}

func (e *customEncoding) Name() string {
	return e.base.Name() + "+custom"
}

// standardTable is Adobe StandardEncoding, the default for Type 1 fonts
// that declare no other encoding. See PDF 32000-1 Annex D.
var standardTable = [256]rune{
	0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, // 0x00-0x07
	0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, // 0x08-0x0F
	0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, // 0x10-0x17
	0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, // 0x18-0x1F
	0x0020, 0x0021, 0x0022, 0x0023, 0x0024, 0x0025, 0x0026, 0x2019, // 0x20-0x27 space ! " # $ % & quoteright
	0x0028, 0x0029, 0x002A, 0x002B, 0x002C, 0x002D, 0x002E, 0x002F, // 0x28-0x2F ( ) * + , - . /
	0x0030, 0x0031, 0x0032, 0x0033, 0x0034, 0x0035, 0x0036, 0x0037, // 0x30-0x37 0 1 2 3 4 5 6 7
	0x0038, 0x0039, 0x003A, 0x003B, 0x003C, 0x003D, 0x003E, 0x003F, // 0x38-0x3F 8 9 : ; < = > ?
	0x0040, 0x0041, 0x0042, 0x0043, 0x0044, 0x0045, 0x0046, 0x0047, // 0x40-0x47 @ A B C D E F G
	0x0048, 0x0049, 0x004A, 0x004B, 0x004C, 0x004D, 0x004E, 0x004F, // 0x48-0x4F H I J K L M N O
	0x0050, 0x0051, 0x0052, 0x0053, 0x0054, 0x0055, 0x0056, 0x0057, // 0x50-0x57 P Q R S T U V W
	0x0058, 0x0059, 0x005A, 0x005B, 0x005C, 0x005D, 0x005E, 0x005F, // 0x58-0x5F X Y Z [ \ ] ^ _
	0x2018, 0x0061, 0x0062, 0x0063, 0x0064, 0x0065, 0x0066, 0x0067, // 0x60-0x67 quoteleft a b c d e f g
	0x0068, 0x0069, 0x006A, 0x006B, 0x006C, 0x006D, 0x006E, 0x006F, // 0x68-0x6F h i j k l m n o
	0x0070, 0x0071, 0x0072, 0x0073, 0x0074, 0x0075, 0x0076, 0x0077, // 0x70-0x77 p q r s t u v w
	0x0078, 0x0079, 0x007A, 0x007B, 0x007C, 0x007D, 0x007E, 0x0000, // 0x78-0x7F x y z { | } ~
	0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, // 0x80-0x87
	0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, // 0x88-0x8F
	0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, // 0x90-0x97
	0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, // 0x98-0x9F
	0x0000, 0x00A1, 0x00A2, 0x00A3, 0x2044, 0x00A5, 0x0192, 0x00A7, // 0xA0-0xA7 ¡ ¢ £ ⁄ ¥ ƒ §
	0x00A4, 0x0027, 0x201C, 0x00AB, 0x2039, 0x203A, 0xFB01, 0xFB02, // 0xA8-0xAF ¤ ' “ « ‹ › ﬁ ﬂ
	0x0000, 0x2013, 0x2020, 0x2021, 0x00B7, 0x0000, 0x00B6, 0x2022, // 0xB0-0xB7 – † ‡ · ¶ •
	0x201A, 0x201E, 0x201D, 0x00BB, 0x2026, 0x2030, 0x0000, 0x00BF, // 0xB8-0xBF ‚ „ ” » … ‰ ¿
	0x0000, 0x0060, 0x00B4, 0x02C6, 0x02DC, 0x00AF, 0x02D8, 0x02D9, // 0xC0-0xC7 ` ´ ˆ ˜ ¯ ˘ ˙
	0x00A8, 0x0000, 0x02DA, 0x00B8, 0x0000, 0x02DD, 0x02DB, 0x02C7, // 0xC8-0xCF ¨ ˚ ¸ ˝ ˛ ˇ
	0x2014, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, // 0xD0-0xD7 —
	0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, // 0xD8-0xDF
	0x0000, 0x00C6, 0x0000, 0x00AA, 0x0000, 0x0000, 0x0000, 0x0000, // 0xE0-0xE7 Æ ª
	0x0141, 0x00D8, 0x0152, 0x00BA, 0x0000, 0x0000, 0x0000, 0x0000, // 0xE8-0xEF Ł Ø Œ º
	0x0000, 0x00E6, 0x0000, 0x0000, 0x0000, 0x0131, 0x0000, 0x0000, // 0xF0-0xF7 æ ı
	0x0142, 0x00F8, 0x0153, 0x00DF, 0x0000, 0x0000, 0x0000, 0x0000, // 0xF8-0xFF ł ø œ ß
}

// winAnsiTable is WinAnsiEncoding (Windows code page 1252). Byte 0xA0 is the
// space glyph and 0xAD the hyphen glyph, per Annex D.
var winAnsiTable = [256]rune{
	0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, // 0x00-0x07
	0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, // 0x08-0x0F
	0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, // 0x10-0x17
	0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, // 0x18-0x1F
	0x0020, 0x0021, 0x0022, 0x0023, 0x0024, 0x0025, 0x0026, 0x0027, // 0x20-0x27 space ! " # $ % & '
	0x0028, 0x0029, 0x002A, 0x002B, 0x002C, 0x002D, 0x002E, 0x002F, // 0x28-0x2F ( ) * + , - . /
	0x0030, 0x0031, 0x0032, 0x0033, 0x0034, 0x0035, 0x0036, 0x0037, // 0x30-0x37 0 1 2 3 4 5 6 7
	0x0038, 0x0039, 0x003A, 0x003B, 0x003C, 0x003D, 0x003E, 0x003F, // 0x38-0x3F 8 9 : ; < = > ?
	0x0040, 0x0041, 0x0042, 0x0043, 0x0044, 0x0045, 0x0046, 0x0047, // 0x40-0x47 @ A B C D E F G
	0x0048, 0x0049, 0x004A, 0x004B, 0x004C, 0x004D, 0x004E, 0x004F, // 0x48-0x4F H I J K L M N O
	0x0050, 0x0051, 0x0052, 0x0053, 0x0054, 0x0055, 0x0056, 0x0057, // 0x50-0x57 P Q R S T U V W
	0x0058, 0x0059, 0x005A, 0x005B, 0x005C, 0x005D, 0x005E, 0x005F, // 0x58-0x5F X Y Z [ \ ] ^ _
	0x0060, 0x0061, 0x0062, 0x0063, 0x0064, 0x0065, 0x0066, 0x0067, // 0x60-0x67 ` a b c d e f g
	0x0068, 0x0069, 0x006A, 0x006B, 0x006C, 0x006D, 0x006E, 0x006F, // 0x68-0x6F h i j k l m n o
	0x0070, 0x0071, 0x0072, 0x0073, 0x0074, 0x0075, 0x0076, 0x0077, // 0x70-0x77 p q r s t u v w
	0x0078, 0x0079, 0x007A, 0x007B, 0x007C, 0x007D, 0x007E, 0x0000, // 0x78-0x7F x y z { | } ~
	0x20AC, 0x0000, 0x201A, 0x0192, 0x201E, 0x2026, 0x2020, 0x2021, // 0x80-0x87 € ‚ ƒ „ … † ‡
	0x02C6, 0x2030, 0x0160, 0x2039, 0x0152, 0x0000, 0x017D, 0x0000, // 0x88-0x8F ˆ ‰ Š ‹ Œ Ž
	0x0000, 0x2018, 0x2019, 0x201C, 0x201D, 0x2022, 0x2013, 0x2014, // 0x90-0x97 ‘ ’ “ ” • – —
	0x02DC, 0x2122, 0x0161, 0x203A, 0x0153, 0x0000, 0x017E, 0x0178, // 0x98-0x9F ˜ ™ š › œ ž Ÿ
	0x0020, 0x00A1, 0x00A2, 0x00A3, 0x00A4, 0x00A5, 0x00A6, 0x00A7, // 0xA0-0xA7 space ¡ ¢ £ ¤ ¥ ¦ §
	0x00A8, 0x00A9, 0x00AA, 0x00AB, 0x00AC, 0x002D, 0x00AE, 0x00AF, // 0xA8-0xAF ¨ © ª « ¬ - ® ¯
	0x00B0, 0x00B1, 0x00B2, 0x00B3, 0x00B4, 0x00B5, 0x00B6, 0x00B7, // 0xB0-0xB7 ° ± ² ³ ´ µ ¶ ·
	0x00B8, 0x00B9, 0x00BA, 0x00BB, 0x00BC, 0x00BD, 0x00BE, 0x00BF, // 0xB8-0xBF ¸ ¹ º » ¼ ½ ¾ ¿
	0x00C0, 0x00C1, 0x00C2, 0x00C3, 0x00C4, 0x00C5, 0x00C6, 0x00C7, // 0xC0-0xC7 À Á Â Ã Ä Å Æ Ç
	0x00C8, 0x00C9, 0x00CA, 0x00CB, 0x00CC, 0x00CD, 0x00CE, 0x00CF, // 0xC8-0xCF È É Ê Ë Ì Í Î Ï
	0x00D0, 0x00D1, 0x00D2, 0x00D3, 0x00D4, 0x00D5, 0x00D6, 0x00D7, // 0xD0-0xD7 Ð Ñ Ò Ó Ô Õ Ö ×
	0x00D8, 0x00D9, 0x00DA, 0x00DB, 0x00DC, 0x00DD, 0x00DE, 0x00DF, // 0xD8-0xDF Ø Ù Ú Û Ü Ý Þ ß
	0x00E0, 0x00E1, 0x00E2, 0x00E3, 0x00E4, 0x00E5, 0x00E6, 0x00E7, // 0xE0-0xE7 à á â ã ä å æ ç
	0x00E8, 0x00E9, 0x00EA, 0x00EB, 0x00EC, 0x00ED, 0x00EE, 0x00EF, // 0xE8-0xEF è é ê ë ì í î ï
	0x00F0, 0x00F1, 0x00F2, 0x00F3, 0x00F4, 0x00F5, 0x00F6, 0x00F7, // 0xF0-0xF7 ð ñ ò ó ô õ ö ÷
	0x00F8, 0x00F9, 0x00FA, 0x00FB, 0x00FC, 0x00FD, 0x00FE, 0x00FF, // 0xF8-0xFF ø ù ú û ü ý þ ÿ
}

// macRomanTable is MacRomanEncoding. Byte 0xCA (the Mac OS no-break space
// position) carries the space glyph.
var macRomanTable = [256]rune{
	0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, // 0x00-0x07
	0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, // 0x08-0x0F
	0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, // 0x10-0x17
	0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, // 0x18-0x1F
	0x0020, 0x0021, 0x0022, 0x0023, 0x0024, 0x0025, 0x0026, 0x0027, // 0x20-0x27 space ! " # $ % & '
	0x0028, 0x0029, 0x002A, 0x002B, 0x002C, 0x002D, 0x002E, 0x002F, // 0x28-0x2F ( ) * + , - . /
	0x0030, 0x0031, 0x0032, 0x0033, 0x0034, 0x0035, 0x0036, 0x0037, // 0x30-0x37 0 1 2 3 4 5 6 7
	0x0038, 0x0039, 0x003A, 0x003B, 0x003C, 0x003D, 0x003E, 0x003F, // 0x38-0x3F 8 9 : ; < = > ?
	0x0040, 0x0041, 0x0042, 0x0043, 0x0044, 0x0045, 0x0046, 0x0047, // 0x40-0x47 @ A B C D E F G
	0x0048, 0x0049, 0x004A, 0x004B, 0x004C, 0x004D, 0x004E, 0x004F, // 0x48-0x4F H I J K L M N O
	0x0050, 0x0051, 0x0052, 0x0053, 0x0054, 0x0055, 0x0056, 0x0057, // 0x50-0x57 P Q R S T U V W
	0x0058, 0x0059, 0x005A, 0x005B, 0x005C, 0x005D, 0x005E, 0x005F, // 0x58-0x5F X Y Z [ \ ] ^ _
	0x0060, 0x0061, 0x0062, 0x0063, 0x0064, 0x0065, 0x0066, 0x0067, // 0x60-0x67 ` a b c d e f g
	0x0068, 0x0069, 0x006A, 0x006B, 0x006C, 0x006D, 0x006E, 0x006F, // 0x68-0x6F h i j k l m n o
	0x0070, 0x0071, 0x0072, 0x0073, 0x0074, 0x0075, 0x0076, 0x0077, // 0x70-0x77 p q r s t u v w
	0x0078, 0x0079, 0x007A, 0x007B, 0x007C, 0x007D, 0x007E, 0x0000, // 0x78-0x7F x y z { | } ~
	0x00C4, 0x00C5, 0x00C7, 0x00C9, 0x00D1, 0x00D6, 0x00DC, 0x00E1, // 0x80-0x87 Ä Å Ç É Ñ Ö Ü á
	0x00E0, 0x00E2, 0x00E4, 0x00E3, 0x00E5, 0x00E7, 0x00E9, 0x00E8, // 0x88-0x8F à â ä ã å ç é è
	0x00EA, 0x00EB, 0x00ED, 0x00EC, 0x00EE, 0x00EF, 0x00F1, 0x00F3, // 0x90-0x97 ê ë í ì î ï ñ ó
	0x00F2, 0x00F4, 0x00F6, 0x00F5, 0x00FA, 0x00F9, 0x00FB, 0x00FC, // 0x98-0x9F ò ô ö õ ú ù û ü
	0x2020, 0x00B0, 0x00A2, 0x00A3, 0x00A7, 0x2022, 0x00B6, 0x00DF, // 0xA0-0xA7 † ° ¢ £ § • ¶ ß
	0x00AE, 0x00A9, 0x2122, 0x00B4, 0x00A8, 0x0000, 0x00C6, 0x00D8, // 0xA8-0xAF ® © ™ ´ ¨ Æ Ø
	0x0000, 0x00B1, 0x0000, 0x0000, 0x00A5, 0x00B5, 0x0000, 0x0000, // 0xB0-0xB7 ± ¥ µ
	0x0000, 0x0000, 0x0000, 0x00AA, 0x00BA, 0x0000, 0x00E6, 0x00F8, // 0xB8-0xBF ª º æ ø
	0x00BF, 0x00A1, 0x00AC, 0x0000, 0x0192, 0x0000, 0x0000, 0x00AB, // 0xC0-0xC7 ¿ ¡ ¬ ƒ «
	0x00BB, 0x2026, 0x0020, 0x00C0, 0x00C3, 0x00D5, 0x0152, 0x0153, // 0xC8-0xCF » … space À Ã Õ Œ œ
	0x2013, 0x2014, 0x201C, 0x201D, 0x2018, 0x2019, 0x00F7, 0x0000, // 0xD0-0xD7 – — “ ” ‘ ’ ÷
	0x00FF, 0x0178, 0x2044, 0x00A4, 0x2039, 0x203A, 0xFB01, 0xFB02, // 0xD8-0xDF ÿ Ÿ ⁄ ¤ ‹ › ﬁ ﬂ
	0x2021, 0x00B7, 0x201A, 0x201E, 0x2030, 0x00C2, 0x00CA, 0x00C1, // 0xE0-0xE7 ‡ · ‚ „ ‰ Â Ê Á
	0x00CB, 0x00C8, 0x00CD, 0x00CE, 0x00CF, 0x00CC, 0x00D3, 0x00D4, // 0xE8-0xEF Ë È Í Î Ï Ì Ó Ô
	0x0000, 0x00D2, 0x00DA, 0x00DB, 0x00D9, 0x0131, 0x02C6, 0x02DC, // 0xF0-0xF7 Ò Ú Û Ù ı ˆ ˜
	0x00AF, 0x02D8, 0x02D9, 0x02DA, 0x00B8, 0x02DD, 0x02DB, 0x02C7, // 0xF8-0xFF ¯ ˘ ˙ ˚ ¸ ˝ ˛ ˇ
}

// macExpertTable is MacExpertEncoding. The expert set carries small caps,
// oldstyle figures, superiors, inferiors and fitted fractions; glyphs whose
// meaning is a styled variant of a plain character map to that character.
var macExpertTable = [256]rune{
	0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, // 0x00-0x07
	0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, // 0x08-0x0F
	0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, // 0x10-0x17
	0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, // 0x18-0x1F
	0x0020, 0x0021, 0x02DD, 0x00A2, 0x0024, 0x0024, 0x0026, 0x00B4, // 0x20-0x27 space ! ˝ ¢ $ $ & ´
	0x207D, 0x207E, 0x2025, 0x2024, 0x002C, 0x002D, 0x002E, 0x2044, // 0x28-0x2F ⁽ ⁾ ‥ ․ , - . ⁄
	0x0030, 0x0031, 0x0032, 0x0033, 0x0034, 0x0035, 0x0036, 0x0037, // 0x30-0x37 0 1 2 3 4 5 6 7
	0x0038, 0x0039, 0x003A, 0x003B, 0x0000, 0x2014, 0x0000, 0x003F, // 0x38-0x3F 8 9 : ; — ?
	0x0000, 0x0000, 0x0000, 0x0000, 0x1D06, 0x0000, 0x0000, 0x00BC, // 0x40-0x47 ᴆ ¼
	0x00BD, 0x00BE, 0x215B, 0x215C, 0x215D, 0x215E, 0x2153, 0x2154, // 0x48-0x4F ½ ¾ ⅛ ⅜ ⅝ ⅞ ⅓ ⅔
	0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0xFB00, 0xFB01, // 0x50-0x57 ﬀ ﬁ
	0xFB02, 0xFB03, 0xFB04, 0x208D, 0x0000, 0x208E, 0x02C6, 0x002D, // 0x58-0x5F ﬂ ﬃ ﬄ ₍ ₎ ˆ -
	0x0060, 0x1D00, 0x0299, 0x1D04, 0x1D05, 0x1D07, 0x0046, 0x0047, // 0x60-0x67 ` ᴀ ʙ ᴄ ᴅ ᴇ F G
	0x029C, 0x0049, 0x1D0A, 0x1D0B, 0x029F, 0x1D0D, 0x0274, 0x1D0F, // 0x68-0x6F ʜ I ᴊ ᴋ ʟ ᴍ ɴ ᴏ
	0x1D18, 0x0051, 0x0052, 0x0053, 0x1D1B, 0x1D1C, 0x1D20, 0x1D21, // 0x70-0x77 ᴘ Q R S ᴛ ᴜ ᴠ ᴡ
	0x0058, 0x0059, 0x007A, 0x20A1, 0x0031, 0x0052, 0x02DC, 0x0000, // 0x78-0x7F X Y z ₡ 1 R ˜
	0x0000, 0x0061, 0x00A2, 0x0000, 0x0000, 0x0000, 0x0000, 0x00C1, // 0x80-0x87 a ¢ Á
	0x00C0, 0x00C2, 0x00C4, 0x00C3, 0x00C5, 0x00C7, 0x00C9, 0x00C8, // 0x88-0x8F À Â Ä Ã Å Ç É È
	0x00CA, 0x00CB, 0x00CD, 0x00CC, 0x00CE, 0x00CF, 0x00D1, 0x00D3, // 0x90-0x97 Ê Ë Í Ì Î Ï Ñ Ó
	0x00F2, 0x00D4, 0x00D6, 0x00D5, 0x00DA, 0x00D9, 0x00DB, 0x00DC, // 0x98-0x9F ò Ô Ö Õ Ú Ù Û Ü
	0x0000, 0x2078, 0x2084, 0x2083, 0x2086, 0x2088, 0x2087, 0x0160, // 0xA0-0xA7 ⁸ ₄ ₃ ₆ ₈ ₇ Š
	0x0000, 0x00A2, 0x2082, 0x0000, 0x00A8, 0x0000, 0x02C7, 0x004F, // 0xA8-0xAF ¢ ₂ ¨ ˇ O
	0x2085, 0x0000, 0x002C, 0x002E, 0x00DD, 0x0000, 0x0024, 0x0000, // 0xB0-0xB7 ₅ , . Ý $
	0x0000, 0x00FE, 0x0000, 0x2089, 0x2080, 0x017D, 0x1D01, 0x00F8, // 0xB8-0xBF þ ₉ ₀ Ž ᴁ ø
	0x00BF, 0x2081, 0x1D0C, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, // 0xC0-0xC7 ¿ ₁ ᴌ
	0x0000, 0x00B8, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0276, // 0xC8-0xCF ¸ ɶ
	0x2012, 0x002D, 0x0000, 0x0000, 0x0000, 0x0000, 0x00A1, 0x0000, // 0xD0-0xD7 ‒ - ¡
	0x0178, 0x0000, 0x00B9, 0x00B2, 0x00B3, 0x2074, 0x2075, 0x2076, // 0xD8-0xDF Ÿ ¹ ² ³ ⁴ ⁵ ⁶
	0x2077, 0x2079, 0x2070, 0x0000, 0x0065, 0x0072, 0x0074, 0x0000, // 0xE0-0xE7 ⁷ ⁹ ⁰ e r t
	0x0000, 0x0069, 0x0053, 0x0064, 0x0000, 0x0000, 0x0000, 0x0000, // 0xE8-0xEF i S d
	0x0000, 0x006C, 0x02DB, 0x02D8, 0x00AF, 0x0062, 0x207F, 0x006D, // 0xF0-0xF7 l ˛ ˘ ¯ b ⁿ m
	0x002C, 0x002E, 0x02D9, 0x02DA, 0x0000, 0x0000, 0x0000, 0x0000, // 0xF8-0xFF , . ˙ ˚
}

// pdfDocTable is PDFDocEncoding, used for text strings outside content
// streams (Info values, outline titles) that carry no UTF-16 BOM.
var pdfDocTable = [256]rune{
	0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, // 0x00-0x07
	0x0000, 0x0009, 0x000A, 0x0000, 0x0000, 0x000D, 0x0000, 0x0000, // 0x08-0x0F tab LF CR
	0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, 0x0000, // 0x10-0x17
	0x02D8, 0x02C7, 0x02C6, 0x02D9, 0x02DD, 0x02DB, 0x02DA, 0x02DC, // 0x18-0x1F ˘ ˇ ˆ ˙ ˝ ˛ ˚ ˜
	0x0020, 0x0021, 0x0022, 0x0023, 0x0024, 0x0025, 0x0026, 0x0027, // 0x20-0x27 space ! " # $ % & '
	0x0028, 0x0029, 0x002A, 0x002B, 0x002C, 0x002D, 0x002E, 0x002F, // 0x28-0x2F ( ) * + , - . /
	0x0030, 0x0031, 0x0032, 0x0033, 0x0034, 0x0035, 0x0036, 0x0037, // 0x30-0x37 0 1 2 3 4 5 6 7
	0x0038, 0x0039, 0x003A, 0x003B, 0x003C, 0x003D, 0x003E, 0x003F, // 0x38-0x3F 8 9 : ; < = > ?
	0x0040, 0x0041, 0x0042, 0x0043, 0x0044, 0x0045, 0x0046, 0x0047, // 0x40-0x47 @ A B C D E F G
	0x0048, 0x0049, 0x004A, 0x004B, 0x004C, 0x004D, 0x004E, 0x004F, // 0x48-0x4F H I J K L M N O
	0x0050, 0x0051, 0x0052, 0x0053, 0x0054, 0x0055, 0x0056, 0x0057, // 0x50-0x57 P Q R S T U V W
	0x0058, 0x0059, 0x005A, 0x005B, 0x005C, 0x005D, 0x005E, 0x005F, // 0x58-0x5F X Y Z [ \ ] ^ _
	0x0060, 0x0061, 0x0062, 0x0063, 0x0064, 0x0065, 0x0066, 0x0067, // 0x60-0x67 ` a b c d e f g
	0x0068, 0x0069, 0x006A, 0x006B, 0x006C, 0x006D, 0x006E, 0x006F, // 0x68-0x6F h i j k l m n o
	0x0070, 0x0071, 0x0072, 0x0073, 0x0074, 0x0075, 0x0076, 0x0077, // 0x70-0x77 p q r s t u v w
	0x0078, 0x0079, 0x007A, 0x007B, 0x007C, 0x007D, 0x007E, 0x0000, // 0x78-0x7F x y z { | } ~
	0x2022, 0x2020, 0x2021, 0x2026, 0x2014, 0x2013, 0x0192, 0x2044, // 0x80-0x87 • † ‡ … — – ƒ ⁄
	0x2039, 0x203A, 0x2212, 0x2030, 0x201E, 0x201C, 0x201D, 0x2018, // 0x88-0x8F ‹ › − ‰ „ “ ” ‘
	0x2019, 0x201A, 0x2122, 0xFB01, 0xFB02, 0x0141, 0x0152, 0x0160, // 0x90-0x97 ’ ‚ ™ ﬁ ﬂ Ł Œ Š
	0x0178, 0x017D, 0x0131, 0x0142, 0x0153, 0x0161, 0x017E, 0x0000, // 0x98-0x9F Ÿ Ž ı ł œ š ž
	0x20AC, 0x00A1, 0x00A2, 0x00A3, 0x00A4, 0x00A5, 0x00A6, 0x00A7, // 0xA0-0xA7 € ¡ ¢ £ ¤ ¥ ¦ §
	0x00A8, 0x00A9, 0x00AA, 0x00AB, 0x00AC, 0x0000, 0x00AE, 0x00AF, // 0xA8-0xAF ¨ © ª « ¬ ® ¯
	0x00B0, 0x00B1, 0x00B2, 0x00B3, 0x00B4, 0x00B5, 0x00B6, 0x00B7, // 0xB0-0xB7 ° ± ² ³ ´ µ ¶ ·
	0x00B8, 0x00B9, 0x00BA, 0x00BB, 0x00BC, 0x00BD, 0x00BE, 0x00BF, // 0xB8-0xBF ¸ ¹ º » ¼ ½ ¾ ¿
	0x00C0, 0x00C1, 0x00C2, 0x00C3, 0x00C4, 0x00C5, 0x00C6, 0x00C7, // 0xC0-0xC7 À Á Â Ã Ä Å Æ Ç
	0x00C8, 0x00C9, 0x00CA, 0x00CB, 0x00CC, 0x00CD, 0x00CE, 0x00CF, // 0xC8-0xCF È É Ê Ë Ì Í Î Ï
	0x00D0, 0x00D1, 0x00D2, 0x00D3, 0x00D4, 0x00D5, 0x00D6, 0x00D7, // 0xD0-0xD7 Ð Ñ Ò Ó Ô Õ Ö ×
	0x00D8, 0x00D9, 0x00DA, 0x00DB, 0x00DC, 0x00DD, 0x00DE, 0x00DF, // 0xD8-0xDF Ø Ù Ú Û Ü Ý Þ ß
	0x00E0, 0x00E1, 0x00E2, 0x00E3, 0x00E4, 0x00E5, 0x00E6, 0x00E7, // 0xE0-0xE7 à á â ã ä å æ ç
	0x00E8, 0x00E9, 0x00EA, 0x00EB, 0x00EC, 0x00ED, 0x00EE, 0x00EF, // 0xE8-0xEF è é ê ë ì í î ï
	0x00F0, 0x00F1, 0x00F2, 0x00F3, 0x00F4, 0x00F5, 0x00F6, 0x00F7, // 0xF0-0xF7 ð ñ ò ó ô õ ö ÷
	0x00F8, 0x00F9, 0x00FA, 0x00FB, 0x00FC, 0x00FD, 0x00FE, 0x00FF, // 0xF8-0xFF ø ù ú û ü ý þ ÿ
}

// glyphNameToUnicode maps Adobe glyph names to Unicode code points. This is
// the subset of the Adobe Glyph List that Differences arrays use in practice.
var glyphNameToUnicode = map[string]rune{
	// ASCII
	"space": 0x0020, "exclam": '!', "quotedbl": '"', "numbersign": '#',
	"dollar": '$', "percent": '%', "ampersand": '&', "quotesingle": '\'',
	"parenleft": '(', "parenright": ')', "asterisk": '*', "plus": '+',
	"comma": ',', "hyphen": '-', "period": '.', "slash": '/',
	"zero": '0', "one": '1', "two": '2', "three": '3', "four": '4',
	"five": '5', "six": '6', "seven": '7', "eight": '8', "nine": '9',
	"colon": ':', "semicolon": ';', "less": '<', "equal": '=', "greater": '>',
	"question": '?', "at": '@',
	"A": 'A', "B": 'B', "C": 'C', "D": 'D', "E": 'E', "F": 'F', "G": 'G',
	"H": 'H', "I": 'I', "J": 'J', "K": 'K', "L": 'L', "M": 'M', "N": 'N',
	"O": 'O', "P": 'P', "Q": 'Q', "R": 'R', "S": 'S', "T": 'T', "U": 'U',
	"V": 'V', "W": 'W', "X": 'X', "Y": 'Y', "Z": 'Z',
	"bracketleft": '[', "backslash": '\\', "bracketright": ']',
	"asciicircum": '^', "underscore": '_', "grave": '`',
	"a": 'a', "b": 'b', "c": 'c', "d": 'd', "e": 'e', "f": 'f', "g": 'g',
	"h": 'h', "i": 'i', "j": 'j', "k": 'k', "l": 'l', "m": 'm', "n": 'n',
	"o": 'o', "p": 'p', "q": 'q', "r": 'r', "s": 's', "t": 't', "u": 'u',
	"v": 'v', "w": 'w', "x": 'x', "y": 'y', "z": 'z',
	"braceleft": '{', "bar": '|', "braceright": '}', "asciitilde": '~',

	// Latin-1 punctuation and signs
	"exclamdown": '¡', "cent": '¢', "sterling": '£', "currency": '¤',
	"yen": '¥', "brokenbar": '¦', "section": '§', "dieresis": '¨',
	"copyright": '©', "ordfeminine": 'ª', "guillemotleft": '«',
	"logicalnot": '¬', "registered": '®', "macron": '¯', "degree": '°',
	"plusminus": '±', "twosuperior": '²', "threesuperior": '³', "acute": '´',
	"mu": 'µ', "paragraph": '¶', "periodcentered": '·', "cedilla": '¸',
	"onesuperior": '¹', "ordmasculine": 'º', "guillemotright": '»',
	"onequarter": '¼', "onehalf": '½', "threequarters": '¾',
	"questiondown": '¿', "multiply": '×', "divide": '÷',

	// Latin-1 letters
	"Agrave": 'À', "Aacute": 'Á', "Acircumflex": 'Â', "Atilde": 'Ã',
	"Adieresis": 'Ä', "Aring": 'Å', "AE": 'Æ', "Ccedilla": 'Ç',
	"Egrave": 'È', "Eacute": 'É', "Ecircumflex": 'Ê', "Edieresis": 'Ë',
	"Igrave": 'Ì', "Iacute": 'Í', "Icircumflex": 'Î', "Idieresis": 'Ï',
	"Eth": 'Ð', "Ntilde": 'Ñ', "Ograve": 'Ò', "Oacute": 'Ó',
	"Ocircumflex": 'Ô', "Otilde": 'Õ', "Odieresis": 'Ö', "Oslash": 'Ø',
	"Ugrave": 'Ù', "Uacute": 'Ú', "Ucircumflex": 'Û', "Udieresis": 'Ü',
	"Yacute": 'Ý', "Thorn": 'Þ', "germandbls": 'ß',
	"agrave": 'à', "aacute": 'á', "acircumflex": 'â', "atilde": 'ã',
	"adieresis": 'ä', "aring": 'å', "ae": 'æ', "ccedilla": 'ç',
	"egrave": 'è', "eacute": 'é', "ecircumflex": 'ê', "edieresis": 'ë',
	"igrave": 'ì', "iacute": 'í', "icircumflex": 'î', "idieresis": 'ï',
	"eth": 'ð', "ntilde": 'ñ', "ograve": 'ò', "oacute": 'ó',
	"ocircumflex": 'ô', "otilde": 'õ', "odieresis": 'ö', "oslash": 'ø',
	"ugrave": 'ù', "uacute": 'ú', "ucircumflex": 'û', "udieresis": 'ü',
	"yacute": 'ý', "thorn": 'þ', "ydieresis": 'ÿ',

	// Latin extended
	"Lslash": 0x0141, "lslash": 0x0142, "OE": 0x0152, "oe": 0x0153,
	"Scaron": 0x0160, "scaron": 0x0161, "Ydieresis": 0x0178,
	"Zcaron": 0x017D, "zcaron": 0x017E, "dotlessi": 0x0131,
	"florin": 0x0192,

	// Typographic marks
	"quoteleft": 0x2018, "quoteright": 0x2019, "quotesinglbase": 0x201A,
	"quotedblleft": 0x201C, "quotedblright": 0x201D, "quotedblbase": 0x201E,
	"dagger": 0x2020, "daggerdbl": 0x2021, "bullet": 0x2022,
	"ellipsis": 0x2026, "endash": 0x2013, "emdash": 0x2014,
	"perthousand": 0x2030, "guilsinglleft": 0x2039, "guilsinglright": 0x203A,
	"fraction": 0x2044, "minus": 0x2212, "Euro": 0x20AC,
	"trademark": 0x2122, "fi": 0xFB01, "fl": 0xFB02,

	// Accents
	"breve": 0x02D8, "caron": 0x02C7, "circumflex": 0x02C6,
	"dotaccent": 0x02D9, "hungarumlaut": 0x02DD, "ogonek": 0x02DB,
	"ring": 0x02DA, "tilde": 0x02DC,
}
