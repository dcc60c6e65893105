package chartype

// glyphs and pairSides are built by variable initializers so they are ready
// before the init that fills the ASCII table.
var (
	glyphs    = buildGlyphs()
	pairSides = buildPairSides()
)

func buildGlyphs() map[rune]CharType {
	m := make(map[rune]CharType, 96)
	register := func(t CharType, set string) {
		for _, r := range set {
			m[r] = t
		}
	}
	register(HalfwidthPauseOrStop, ",.;:?!")
	register(FullwidthPauseOrStop, "，。、；：？！⁈⁇‼⁉．")
	register(HalfwidthQuotation, `"'`)
	register(FullwidthQuotation, "“”‘’「」『』")
	register(HalfwidthBracket, "()[]{}")
	register(FullwidthBracket, "（）［］｛｝【】〔〕〖〗〘〙〚〛《》〈〉")
	register(HalfwidthOtherPunctuation, "~-+*/\\%=&|`<>@#$^_")
	register(FullwidthOtherPunctuation, "—…·～￥％＃＆＠｜＋＝－＊／＼＿＾｀＜＞＄￡")
	return m
}

func buildPairSides() map[rune]Side {
	m := make(map[rune]Side, 2*len(closers)+2)
	for open, shut := range closers {
		m[open] = SideOpen
		m[shut] = SideClose
	}
	m['"'] = SideEither
	m['\''] = SideEither
	return m
}

// Side tells how a paired glyph participates in pairing.
type Side uint8

const (
	SideNone Side = iota
	SideOpen
	SideClose
	// SideEither is used by glyphs that open and close with the same code point.
	SideEither
)

var closers = map[rune]rune{
	'(': ')', '[': ']', '{': '}',
	'（': '）', '［': '］', '｛': '｝',
	'【': '】', '〔': '〕', '〖': '〗', '〘': '〙', '〚': '〛',
	'《': '》', '〈': '〉',
	'“': '”', '‘': '’', '「': '」', '『': '』',
}

// PairSide reports whether r opens, closes, or does both for a bracket or quotation.
func PairSide(r rune) Side {
	return pairSides[r]
}

// Closer returns the glyph that closes open. Same-glyph quotations return
// themselves; anything else returns 0.
func Closer(open rune) rune {
	if c, ok := closers[open]; ok {
		return c
	}
	if pairSides[open] == SideEither {
		return open
	}
	return 0
}
