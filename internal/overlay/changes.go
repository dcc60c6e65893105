package overlay

import "hyperlex/internal/token"

type Field uint8

const (
	FieldValue Field = iota
	FieldSpaceAfter
	FieldInnerSpaceBefore
	FieldStartValue
	FieldEndValue
)

func (f Field) String() string {
	switch f {
	case FieldValue:
		return "value"
	case FieldSpaceAfter:
		return "space-after"
	case FieldInnerSpaceBefore:
		return "inner-space-before"
	case FieldStartValue:
		return "start-value"
	case FieldEndValue:
		return "end-value"
	}
	return "unknown"
}

// Change is one text edit against the original document. Offset is the
// byte offset of Before in the original text.
type Change struct {
	Offset int
	Token  token.ID
	Field  Field
	Before string
	After  string
}

// Changes lists effective text edits in document order. Writes that restore
// the original value are not reported.
func (r *Result) Changes() []Change {
	var out []Change
	add := func(tok MutToken, offset int, f Field, before, after string) {
		if before != after {
			out = append(out, Change{Offset: offset, Token: tok.id, Field: f, Before: before, After: after})
		}
	}
	var visit func(tok MutToken)
	visit = func(tok MutToken) {
		b := tok.Base()
		if !b.IsGroup() {
			add(tok, b.Index, FieldValue, b.Value, tok.Value())
			add(tok, b.End(), FieldSpaceAfter, b.SpaceAfter, tok.SpaceAfter())
			return
		}
		if m, ok := tok.Mark(); ok {
			add(tok, b.Pair.StartIndex, FieldStartValue, m.Base().Pair.StartValue, tok.StartValue())
		}
		add(tok, b.Pair.InnerStart(), FieldInnerSpaceBefore, b.InnerSpaceBefore, tok.InnerSpaceBefore())
		for _, c := range tok.Children() {
			visit(c)
		}
		if m, ok := tok.Mark(); ok {
			add(tok, b.Pair.EndIndex, FieldEndValue, m.Base().Pair.EndValue, tok.EndValue())
		}
		add(tok, b.End(), FieldSpaceAfter, b.SpaceAfter, tok.SpaceAfter())
	}
	if len(r.base.Tokens) > 0 {
		visit(r.Root())
	}
	return out
}
