package token

import "hyperlex/internal/chartype"

// Type classifies every kind of token.
type Type uint8

const (
	Invalid Type = iota

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

	// BracketMark is a bracket glyph that belongs to a mark.
	BracketMark
	// HyperMark is an inline Markdown mark such as ** or a backslash escape.
	HyperMark
	// CodeContent covers `xxx` and <code>xxx</code>.
	CodeContent
	// HyperContent covers container blocks and other html.
	HyperContent
	// Unmatched is an opener whose closer never came.
	Unmatched
	// Indeterminate marks regions the tree builder could not place.
	Indeterminate

	Group
)

var typeName = [...]string{
	Invalid:                   "Invalid",
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
	BracketMark:               "BracketMark",
	HyperMark:                 "HyperMark",
	CodeContent:               "CodeContent",
	HyperContent:              "HyperContent",
	Unmatched:                 "Unmatched",
	Indeterminate:             "Indeterminate",
	Group:                     "Group",
}

func (t Type) String() string {
	if int(t) < len(typeName) {
		return typeName[t]
	}
	return "Unknown"
}

// FromChar maps a character category to its normal-content token type.
// Space and Empty have no token type and map to Invalid.
func FromChar(c chartype.CharType) Type {
	switch c {
	case chartype.WesternLetter:
		return WesternLetter
	case chartype.CjkChar:
		return CjkChar
	case chartype.HalfwidthPauseOrStop:
		return HalfwidthPauseOrStop
	case chartype.FullwidthPauseOrStop:
		return FullwidthPauseOrStop
	case chartype.HalfwidthQuotation:
		return HalfwidthQuotation
	case chartype.FullwidthQuotation:
		return FullwidthQuotation
	case chartype.HalfwidthBracket:
		return HalfwidthBracket
	case chartype.FullwidthBracket:
		return FullwidthBracket
	case chartype.HalfwidthOtherPunctuation:
		return HalfwidthOtherPunctuation
	case chartype.FullwidthOtherPunctuation:
		return FullwidthOtherPunctuation
	default:
		return Invalid
	}
}

func (t Type) IsLetter() bool { return t == WesternLetter || t == CjkChar }

func (t Type) IsPauseOrStop() bool {
	return t == HalfwidthPauseOrStop || t == FullwidthPauseOrStop
}

func (t Type) IsQuotation() bool {
	return t == HalfwidthQuotation || t == FullwidthQuotation
}

func (t Type) IsBracket() bool {
	return t == HalfwidthBracket || t == FullwidthBracket
}

func (t Type) IsOtherPunctuation() bool {
	return t == HalfwidthOtherPunctuation || t == FullwidthOtherPunctuation
}

// IsSinglePunctuation reports punctuation that never pairs.
func (t Type) IsSinglePunctuation() bool {
	return t.IsPauseOrStop() || t.IsOtherPunctuation()
}

// IsPunctuation reports single punctuation and bracket glyphs.
func (t Type) IsPunctuation() bool {
	return t.IsSinglePunctuation() || t.IsBracket()
}

// IsNormalContent reports letters and single punctuation.
func (t Type) IsNormalContent() bool {
	return t.IsLetter() || t.IsSinglePunctuation()
}

func (t Type) IsHalfwidth() bool {
	switch t {
	case WesternLetter, HalfwidthPauseOrStop, HalfwidthQuotation, HalfwidthBracket, HalfwidthOtherPunctuation:
		return true
	}
	return false
}

func (t Type) IsFullwidth() bool {
	switch t {
	case CjkChar, FullwidthPauseOrStop, FullwidthQuotation, FullwidthBracket, FullwidthOtherPunctuation:
		return true
	}
	return false
}

// IsHyper reports the mark and content types introduced by markup.
func (t Type) IsHyper() bool { return t >= BracketMark && t <= Indeterminate }

func (t Type) IsGroup() bool { return t == Group }

func (t Type) IsSingle() bool { return t != Invalid && t != Group }

// IsNonCodeVisible reports visible text that spacing rules may touch.
func (t Type) IsNonCodeVisible() bool {
	return t.IsNormalContent() || t.IsBracket() || t.IsQuotation() ||
		t == BracketMark || t == Unmatched || t == Group
}

// IsVisible reports everything rendered as text, code included.
func (t Type) IsVisible() bool { return t == CodeContent || t.IsNonCodeVisible() }

// IsInvisible reports markup that does not render, e.g. emphasis marks.
func (t Type) IsInvisible() bool { return t == HyperMark }

// IsVisibilityUnknown reports content whose rendering depends on the host
// (raw html, containers) and regions the builder could not classify.
func (t Type) IsVisibilityUnknown() bool { return t == HyperContent || t == Indeterminate }
