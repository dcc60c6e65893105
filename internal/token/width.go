package token

import (
	"strings"

	"golang.org/x/text/width"
)

// Widen converts a halfwidth letter or single-punctuation type to its
// fullwidth counterpart. Other types, brackets and quotations included, are
// returned unchanged.
func Widen(t Type) Type {
	switch t {
	case WesternLetter:
		return CjkChar
	case HalfwidthPauseOrStop:
		return FullwidthPauseOrStop
	case HalfwidthOtherPunctuation:
		return FullwidthOtherPunctuation
	}
	return t
}

// Narrow is the inverse of Widen.
func Narrow(t Type) Type {
	switch t {
	case CjkChar:
		return WesternLetter
	case FullwidthPauseOrStop:
		return HalfwidthPauseOrStop
	case FullwidthOtherPunctuation:
		return HalfwidthOtherPunctuation
	}
	return t
}

// pause/stop glyphs whose CJK form is not the compatibility fullwidth form
var (
	widenStops  = strings.NewReplacer(",", "，", ".", "。", ";", "；", ":", "：", "?", "？", "!", "！")
	narrowStops = strings.NewReplacer("，", ",", "。", ".", "、", ",", "；", ";", "：", ":", "？", "?", "！", "!", "．", ".")
)

// WidenValue rewrites punctuation in s to its fullwidth form.
func WidenValue(s string) string {
	return width.Widen.String(widenStops.Replace(s))
}

// NarrowValue rewrites fullwidth punctuation in s to its halfwidth form.
func NarrowValue(s string) string {
	return width.Narrow.String(narrowStops.Replace(s))
}
