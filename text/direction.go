package text

import "golang.org/x/text/unicode/bidi"

// Direction represents the writing direction of text.
// It is used to detect and handle bidirectional text (bidi) in documents.
type Direction int

const (
	// LTR (Left-to-Right) for Latin, Cyrillic, CJK, etc.
	LTR Direction = iota
	// RTL (Right-to-Left) for Arabic, Hebrew, etc.
	RTL
	// Neutral for text with no inherent direction (digits, punctuation,
	// whitespace)
	Neutral
)

// String returns a human-readable direction name
func (d Direction) String() string {
	switch d {
	case LTR:
		return "LTR"
	case RTL:
		return "RTL"
	case Neutral:
		return "Neutral"
	default:
		return "Unknown"
	}
}

// GetCharDirection returns the direction of a single character based on
// its Unicode bidirectional class. Strong left-to-right characters map
// to LTR and strong right-to-left characters (Hebrew, Arabic and the
// other RTL scripts) map to RTL. Digits, punctuation, whitespace,
// combining marks and the rest of the weak and neutral classes are
// Neutral.
func GetCharDirection(r rune) Direction {
	props, _ := bidi.LookupRune(r)
	switch props.Class() {
	case bidi.L:
		return LTR
	case bidi.R, bidi.AL:
		return RTL
	default:
		return Neutral
	}
}

// DetectDirection determines the dominant direction of a string by
// counting strong directional characters. A string with no strong
// characters is Neutral.
func DetectDirection(text string) Direction {
	ltr, rtl := 0, 0

	for _, r := range text {
		switch GetCharDirection(r) {
		case LTR:
			ltr++
		case RTL:
			rtl++
		}
	}

	if ltr == 0 && rtl == 0 {
		return Neutral
	}

	if rtl > ltr {
		return RTL
	}
	return LTR
}
