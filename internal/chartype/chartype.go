// Package chartype classifies single code points into the script and
// punctuation categories used by the tokenizer.
//
// Classify is total: every rune, including invalid ones, maps to some
// CharType. ASCII goes through a precomputed table; everything else through
// fixed glyph sets followed by a script/East-Asian-width fallback.
package chartype

import (
	"unicode"

	"golang.org/x/text/width"
)

// CharType is the category of a single code point.
type CharType uint8

const (
	Empty CharType = iota
	Space
	WesternLetter
	CjkChar
	HalfwidthPauseOrStop
	FullwidthPauseOrStop
	HalfwidthQuotation
	FullwidthQuotation
	HalfwidthBracket
	FullwidthBracket
	HalfwidthOtherPunctuation
	FullwidthOtherPunctuation
)

var charTypeName = [...]string{
	Empty:                     "Empty",
	Space:                     "Space",
	WesternLetter:             "WesternLetter",
	CjkChar:                   "CjkChar",
	HalfwidthPauseOrStop:      "HalfwidthPauseOrStop",
	FullwidthPauseOrStop:      "FullwidthPauseOrStop",
	HalfwidthQuotation:        "HalfwidthQuotation",
	FullwidthQuotation:        "FullwidthQuotation",
	HalfwidthBracket:          "HalfwidthBracket",
	FullwidthBracket:          "FullwidthBracket",
	HalfwidthOtherPunctuation: "HalfwidthOtherPunctuation",
	FullwidthOtherPunctuation: "FullwidthOtherPunctuation",
}

func (c CharType) String() string {
	if int(c) < len(charTypeName) {
		return charTypeName[c]
	}
	return "Unknown"
}

// IsLetter reports Western letters and CJK characters.
func (c CharType) IsLetter() bool {
	return c == WesternLetter || c == CjkChar
}

// IsPunctuation reports every punctuation category, brackets and quotations included.
func (c CharType) IsPunctuation() bool {
	return c >= HalfwidthPauseOrStop && c <= FullwidthOtherPunctuation
}

// IsFullwidth reports the East-Asian side of each width pair.
func (c CharType) IsFullwidth() bool {
	switch c {
	case CjkChar, FullwidthPauseOrStop, FullwidthQuotation, FullwidthBracket, FullwidthOtherPunctuation:
		return true
	}
	return false
}

var asciiTable [0x80]CharType

func init() {
	for r := rune(0); r < 0x80; r++ {
		asciiTable[r] = classifySlow(r)
	}
}

// Classify returns the category of r.
func Classify(r rune) CharType {
	if r >= 0 && r < 0x80 {
		return asciiTable[r]
	}
	return classifySlow(r)
}

// ClassifyString classifies the first rune of s, or returns Empty.
func ClassifyString(s string) CharType {
	for _, r := range s {
		return Classify(r)
	}
	return Empty
}

func classifySlow(r rune) CharType {
	if t, ok := glyphs[r]; ok {
		return t
	}
	if unicode.IsSpace(r) {
		return Space
	}
	wide := isWide(r)
	if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) {
		if wide || unicode.In(r, cjkScripts...) {
			return CjkChar
		}
		return WesternLetter
	}
	if wide {
		return FullwidthOtherPunctuation
	}
	return HalfwidthOtherPunctuation
}

var cjkScripts = []*unicode.RangeTable{
	unicode.Han,
	unicode.Hiragana,
	unicode.Katakana,
	unicode.Hangul,
	unicode.Bopomofo,
}

func isWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	}
	return false
}
