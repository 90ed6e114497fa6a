package font

import (
	"fmt"
	"strings"

	"github.com/tsawler/carousel/contentstream"
	"github.com/tsawler/carousel/core"
)

// CMap maps character codes to Unicode text, as declared by a font's
// ToUnicode stream.
type CMap struct {
	// Single character mappings: charCode -> unicode string
	charMappings map[uint32]string

	// Range mappings for efficiency
	rangeMappings []CMapRange
}

// CMapRange represents a contiguous run of character codes whose Unicode
// values increment together from a common start.
type CMapRange struct {
	StartCode    uint32
	EndCode      uint32
	StartUnicode uint32
}

// NewCMap creates a new empty CMap
func NewCMap() *CMap {
	return &CMap{
		charMappings:  make(map[uint32]string),
		rangeMappings: make([]CMapRange, 0),
	}
}

// ParseToUnicodeCMap parses a ToUnicode CMap stream
func ParseToUnicodeCMap(stream *core.Stream) (*CMap, error) {
	if stream == nil {
		return nil, fmt.Errorf("stream is nil")
	}

	data, err := stream.Decode()
	if err != nil {
		return nil, fmt.Errorf("failed to decode stream: %w", err)
	}

	return parseCMapData(data)
}

// parseCMapData parses CMap content. CMaps use the same PostScript-flavored
// token grammar as page content, so the content stream parser does the
// tokenizing: the pairs of a bfchar section and the triples of a bfrange
// section arrive as the operand lists of the endbfchar and endbfrange
// operators.
func parseCMapData(data []byte) (*CMap, error) {
	ops, err := contentstream.NewParser(data).Parse()
	if err != nil {
		return nil, fmt.Errorf("invalid CMap: %w", err)
	}

	cmap := NewCMap()
	for _, op := range ops {
		switch op.Operator {
		case "endbfchar":
			cmap.addChars(op.Operands)
		case "endbfrange":
			cmap.addRanges(op.Operands)
		}
	}

	return cmap, nil
}

// addChars consumes the <src> <dst> pairs of a bfchar section.
func (cm *CMap) addChars(operands []core.Object) {
	for i := 0; i+1 < len(operands); i += 2 {
		src, ok := operands[i].(core.HexString)
		if !ok {
			continue
		}
		dst, ok := operands[i+1].(core.HexString)
		if !ok {
			continue
		}
		cm.charMappings[codeValue([]byte(src))] = unicodeValue([]byte(dst))
	}
}

// addRanges consumes the <start> <end> dst triples of a bfrange section.
// The destination is either a hex string holding the Unicode value of the
// first code in the range, or an array listing one value per code.
func (cm *CMap) addRanges(operands []core.Object) {
	for i := 0; i+2 < len(operands); i += 3 {
		start, ok := operands[i].(core.HexString)
		if !ok {
			continue
		}
		end, ok := operands[i+1].(core.HexString)
		if !ok {
			continue
		}

		lo := codeValue([]byte(start))
		hi := codeValue([]byte(end))

		switch dst := operands[i+2].(type) {
		case core.HexString:
			cm.rangeMappings = append(cm.rangeMappings, CMapRange{
				StartCode:    lo,
				EndCode:      hi,
				StartUnicode: codeValue([]byte(dst)),
			})
		case core.Array:
			code := lo
			for _, item := range dst {
				if code > hi {
					break
				}
				if hex, ok := item.(core.HexString); ok {
					cm.charMappings[code] = unicodeValue([]byte(hex))
				}
				code++
			}
		}
	}
}

// Lookup returns the Unicode text for a character code, or the empty string
// when the code is unmapped. Callers decide the fallback.
func (cm *CMap) Lookup(charCode uint32) string {
	if unicode, ok := cm.charMappings[charCode]; ok {
		return unicode
	}

	for _, r := range cm.rangeMappings {
		if charCode >= r.StartCode && charCode <= r.EndCode {
			return string(rune(r.StartUnicode + charCode - r.StartCode))
		}
	}

	return ""
}

// LookupString decodes a string of character codes to Unicode. Codes are
// probed two bytes at a time first, the common width for CID-keyed fonts,
// then one byte; bytes matching nothing pass through unchanged.
func (cm *CMap) LookupString(data []byte) string {
	if cm == nil {
		return string(data)
	}

	var result strings.Builder

	i := 0
	for i < len(data) {
		if i+1 < len(data) {
			code := uint32(data[i])<<8 | uint32(data[i+1])
			if unicode := cm.Lookup(code); unicode != "" {
				result.WriteString(unicode)
				i += 2
				continue
			}
		}

		code := uint32(data[i])
		if unicode := cm.Lookup(code); unicode != "" {
			result.WriteString(unicode)
		} else {
			result.WriteByte(data[i])
		}
		i++
	}

	return result.String()
}

// codeValue interprets the bytes of a hex string as a big-endian character
// code.
func codeValue(b []byte) uint32 {
	var v uint32
	for _, c := range b {
		v = v<<8 | uint32(c)
	}
	return v
}

// unicodeValue decodes a bfchar or bfrange destination. Destinations are
// UTF-16BE, occasionally written with an explicit byte order mark.
func unicodeValue(b []byte) string {
	if len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF {
		b = b[2:]
	}
	if len(b) >= 2 {
		return DecodeUTF16BE(b)
	}
	if len(b) == 1 {
		return string(rune(b[0]))
	}
	return ""
}
