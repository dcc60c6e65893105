// Package hyper describes the inline markup capability the parser consumes.
//
// A Provider inspects a document and reports where inline marks sit and which
// role each plays. The parser only does pairing mechanics on top of that; it
// never decides markup semantics itself.
package hyper

// Kind is the role of an inline mark.
type Kind uint8

const (
	KindNone Kind = iota
	// MarkPair has a start and an end delimiter around parsed content (**x**, [x](y)).
	MarkPair
	// MarkPairWithCode has delimiters around raw content (`x`, <code>x</code>).
	MarkPairWithCode
	// SingleMark is a standalone raw span (<br>, <div>, <https://x>).
	SingleMark
	// SingleMarkConnect is a glyph that binds to its neighbours (a backslash escape).
	SingleMarkConnect
)

func (k Kind) String() string {
	switch k {
	case MarkPair:
		return "mark-pair"
	case MarkPairWithCode:
		return "mark-pair-with-code"
	case SingleMark:
		return "single-mark"
	case SingleMarkConnect:
		return "single-mark-connect"
	}
	return ""
}

// Paired reports kinds that carry an end range.
func (k Kind) Paired() bool { return k == MarkPair || k == MarkPairWithCode }

// Range is a half-open byte range.
type Range struct {
	Start int
	End   int
}

func (r Range) Len() int { return r.End - r.Start }

// InlineMark is one mark found by a Provider. End is zero for single kinds.
type InlineMark struct {
	Kind  Kind
	Start Range
	End   Range
}

// Provider finds inline marks in a document.
type Provider interface {
	Marks(text string) []InlineMark
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(text string) []InlineMark

func (f ProviderFunc) Marks(text string) []InlineMark { return f(text) }

// None reports no marks; every glyph is plain prose.
var None Provider = ProviderFunc(func(string) []InlineMark { return nil })

// Entry is a MarkMap value: the mark and whether the offset is its end.
type Entry struct {
	Mark  *InlineMark
	Index int
	IsEnd bool
}

// MarkMap indexes marks by the offsets where the parser meets them: both
// range starts for paired kinds, the start range for single kinds. Later
// marks do not overwrite earlier ones at the same offset.
func MarkMap(marks []InlineMark) map[int]Entry {
	m := make(map[int]Entry, 2*len(marks))
	put := func(off int, e Entry) {
		if _, taken := m[off]; !taken {
			m[off] = e
		}
	}
	for i := range marks {
		mk := &marks[i]
		switch mk.Kind {
		case MarkPair, MarkPairWithCode:
			put(mk.Start.Start, Entry{Mark: mk, Index: i})
			put(mk.End.Start, Entry{Mark: mk, Index: i, IsEnd: true})
		case SingleMark, SingleMarkConnect:
			put(mk.Start.Start, Entry{Mark: mk, Index: i})
		}
	}
	return m
}
