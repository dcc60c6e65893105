package overlay

import "hyperlex/internal/token"

// MutToken is a handle to one token of an overlay. The zero value is
// invalid and reads as empty.
type MutToken struct {
	r  *Result
	id token.ID
}

func (t MutToken) Valid() bool { return t.r != nil }

func (t MutToken) ID() token.ID { return t.id }

// Base returns the unmodified token.
func (t MutToken) Base() *token.Token {
	if t.r == nil {
		return nil
	}
	return t.r.base.Token(t.id)
}

func (t MutToken) edit() *tokenEdit {
	if t.r == nil {
		return nil
	}
	return t.r.tokens[t.id]
}

func (t MutToken) writable() *tokenEdit {
	if t.r == nil {
		panic("overlay: write through invalid token handle")
	}
	return t.r.tokenEdit(t.id)
}

// IsGroup follows the base token; SetType never turns a group into a
// single token or back.
func (t MutToken) IsGroup() bool {
	b := t.Base()
	return b != nil && b.IsGroup()
}

func (t MutToken) Children() []MutToken {
	b := t.Base()
	if b == nil || len(b.Children) == 0 {
		return nil
	}
	out := make([]MutToken, len(b.Children))
	for i, c := range b.Children {
		out[i] = MutToken{r: t.r, id: c}
	}
	return out
}

// Mark returns the mark the token refers to.
func (t MutToken) Mark() (MutMark, bool) {
	b := t.Base()
	if b == nil || !b.HasMark() {
		return MutMark{}, false
	}
	return MutMark{r: t.r, id: b.Mark}, true
}

func (t MutToken) Type() token.Type {
	var orig token.Type
	if b := t.Base(); b != nil {
		orig = b.Type
	}
	if e := t.edit(); e != nil {
		return e.typ.get(orig)
	}
	return orig
}

func (t MutToken) SetType(v token.Type)    { t.writable().typ.set(v) }
func (t MutToken) IgnoreType(v token.Type) { t.writable().typ.ignore(v) }

func (t MutToken) IgnoredType() token.Type {
	if e := t.edit(); e != nil {
		return e.typ.getIgnored()
	}
	return token.Invalid
}

func (t MutToken) Value() string {
	var orig string
	if b := t.Base(); b != nil {
		orig = b.Value
	}
	if e := t.edit(); e != nil {
		return e.value.get(orig)
	}
	return orig
}

func (t MutToken) SetValue(v string)    { t.writable().value.set(v) }
func (t MutToken) IgnoreValue(v string) { t.writable().value.ignore(v) }

func (t MutToken) IgnoredValue() string {
	if e := t.edit(); e != nil {
		return e.value.getIgnored()
	}
	return ""
}

func (t MutToken) SpaceAfter() string {
	var orig string
	if b := t.Base(); b != nil {
		orig = b.SpaceAfter
	}
	if e := t.edit(); e != nil {
		return e.spaceAfter.get(orig)
	}
	return orig
}

func (t MutToken) SetSpaceAfter(v string)    { t.writable().spaceAfter.set(v) }
func (t MutToken) IgnoreSpaceAfter(v string) { t.writable().spaceAfter.ignore(v) }

func (t MutToken) IgnoredSpaceAfter() string {
	if e := t.edit(); e != nil {
		return e.spaceAfter.getIgnored()
	}
	return ""
}

func (t MutToken) InnerSpaceBefore() string {
	var orig string
	if b := t.Base(); b != nil {
		orig = b.InnerSpaceBefore
	}
	if e := t.edit(); e != nil {
		return e.innerSpaceBefore.get(orig)
	}
	return orig
}

func (t MutToken) SetInnerSpaceBefore(v string)    { t.writable().innerSpaceBefore.set(v) }
func (t MutToken) IgnoreInnerSpaceBefore(v string) { t.writable().innerSpaceBefore.ignore(v) }

func (t MutToken) IgnoredInnerSpaceBefore() string {
	if e := t.edit(); e != nil {
		return e.innerSpaceBefore.getIgnored()
	}
	return ""
}

// StartValue is the opening delimiter of a group, read through its mark.
// The root group has no mark and no delimiters.
func (t MutToken) StartValue() string {
	if m, ok := t.Mark(); ok && t.IsGroup() {
		return m.StartValue()
	}
	if b := t.Base(); b != nil {
		return b.Pair.StartValue
	}
	return ""
}

func (t MutToken) EndValue() string {
	if m, ok := t.Mark(); ok && t.IsGroup() {
		return m.EndValue()
	}
	if b := t.Base(); b != nil {
		return b.Pair.EndValue
	}
	return ""
}

// MutMark is a handle to one mark of an overlay.
type MutMark struct {
	r  *Result
	id token.MarkID
}

func (m MutMark) Valid() bool { return m.r != nil }

func (m MutMark) ID() token.MarkID { return m.id }

func (m MutMark) Base() *token.Mark {
	if m.r == nil {
		return nil
	}
	return m.r.base.Mark(m.id)
}

func (m MutMark) edit() *markEdit {
	if m.r == nil {
		return nil
	}
	return m.r.marks[m.id]
}

func (m MutMark) writable() *markEdit {
	if m.r == nil {
		panic("overlay: write through invalid mark handle")
	}
	return m.r.markEdit(m.id)
}

func (m MutMark) StartValue() string {
	var orig string
	if b := m.Base(); b != nil {
		orig = b.Pair.StartValue
	}
	if e := m.edit(); e != nil {
		return e.startValue.get(orig)
	}
	return orig
}

func (m MutMark) SetStartValue(v string)    { m.writable().startValue.set(v) }
func (m MutMark) IgnoreStartValue(v string) { m.writable().startValue.ignore(v) }

func (m MutMark) IgnoredStartValue() string {
	if e := m.edit(); e != nil {
		return e.startValue.getIgnored()
	}
	return ""
}

func (m MutMark) EndValue() string {
	var orig string
	if b := m.Base(); b != nil {
		orig = b.Pair.EndValue
	}
	if e := m.edit(); e != nil {
		return e.endValue.get(orig)
	}
	return orig
}

func (m MutMark) SetEndValue(v string)    { m.writable().endValue.set(v) }
func (m MutMark) IgnoreEndValue(v string) { m.writable().endValue.ignore(v) }

func (m MutMark) IgnoredEndValue() string {
	if e := m.edit(); e != nil {
		return e.endValue.getIgnored()
	}
	return ""
}
