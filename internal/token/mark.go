package token

import "math"

// Unresolved is the EndIndex of a pair whose closer has not been found.
const Unresolved = math.MaxInt

// MarkType is the parser category of a mark, not its usage.
type MarkType uint8

const (
	MarkNone MarkType = iota
	// MarkBrackets covers halfwidth and fullwidth brackets.
	MarkBrackets
	// MarkQuotation covers quotation glyphs.
	MarkQuotation
	// MarkHyper covers inline Markdown marks.
	MarkHyper
	// MarkRaw covers `xxx`, <code>xxx</code>, containers and other html.
	MarkRaw
)

func (m MarkType) String() string {
	switch m {
	case MarkBrackets:
		return "brackets"
	case MarkQuotation:
		return "quotation"
	case MarkHyper:
		return "hyper"
	case MarkRaw:
		return "raw"
	}
	return "none"
}

// Pairing reports mark types that become group tokens when resolved.
func (m MarkType) Pairing() bool {
	return m == MarkBrackets || m == MarkQuotation || m == MarkHyper
}

type MarkSide uint8

const (
	SideNone MarkSide = iota
	SideLeft
	SideRight
)

func (s MarkSide) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	}
	return ""
}

// Pair is a delimited range with the literal text at each boundary.
// StartIndex is the offset of StartValue, EndIndex the offset of EndValue.
type Pair struct {
	StartIndex int
	StartValue string
	EndIndex   int
	EndValue   string
}

// NewPair returns a pair opened at index with an unresolved end.
func NewPair(index int, value string) Pair {
	return Pair{StartIndex: index, StartValue: value, EndIndex: Unresolved}
}

func (p Pair) Resolved() bool { return p.EndIndex != Unresolved }

// InnerStart is the offset right after the opening delimiter.
func (p Pair) InnerStart() int { return p.StartIndex + len(p.StartValue) }

// Limit is the exclusive end of the closing delimiter.
func (p Pair) Limit() int {
	if !p.Resolved() {
		return Unresolved
	}
	return p.EndIndex + len(p.EndValue)
}

type MarkID int32

const NoMark MarkID = -1

// Mark is one markup unit. Meta carries the role supplied by the hyper mark
// provider (e.g. "mark-pair"); it is empty for brackets and quotations.
type Mark struct {
	ID     MarkID
	Pair   Pair
	Type   MarkType
	Meta   string
	Single bool
}

// Unmatched reports a pairing mark whose closer was never found.
func (m *Mark) Unmatched() bool {
	return !m.Single && !m.Pair.Resolved()
}
