// Package overlay layers edits over a read-only parse result. Passes read
// and write through MutToken and MutMark handles; the base result is never
// touched, so several overlays may share one parse.
package overlay

import (
	"strings"

	"hyperlex/internal/parser"
	"hyperlex/internal/token"
)

// Result is a mutable view of a parser.Result. It is not safe for
// concurrent writes.
type Result struct {
	base   *parser.Result
	tokens map[token.ID]*tokenEdit
	marks  map[token.MarkID]*markEdit
}

func New(base *parser.Result) *Result {
	return &Result{
		base:   base,
		tokens: make(map[token.ID]*tokenEdit),
		marks:  make(map[token.MarkID]*markEdit),
	}
}

// Base returns the underlying parse result.
func (r *Result) Base() *parser.Result { return r.base }

func (r *Result) Root() MutToken { return MutToken{r: r, id: r.base.Root} }

func (r *Result) Token(id token.ID) MutToken {
	if r.base.Token(id) == nil {
		return MutToken{}
	}
	return MutToken{r: r, id: id}
}

func (r *Result) Mark(id token.MarkID) MutMark {
	if r.base.Mark(id) == nil {
		return MutMark{}
	}
	return MutMark{r: r, id: id}
}

// Modified reports whether any field was written.
func (r *Result) Modified() bool {
	for _, e := range r.tokens {
		if e.value.hasModified || e.spaceAfter.hasModified || e.innerSpaceBefore.hasModified || e.typ.hasModified {
			return true
		}
	}
	for _, e := range r.marks {
		if e.startValue.hasModified || e.endValue.hasModified {
			return true
		}
	}
	return false
}

func (r *Result) tokenEdit(id token.ID) *tokenEdit {
	e, ok := r.tokens[id]
	if !ok {
		e = &tokenEdit{}
		r.tokens[id] = e
	}
	return e
}

func (r *Result) markEdit(id token.MarkID) *markEdit {
	e, ok := r.marks[id]
	if !ok {
		e = &markEdit{}
		r.marks[id] = e
	}
	return e
}

// Walk visits every token depth-first in text order. Returning false skips
// the children of a group.
func (r *Result) Walk(fn func(tok MutToken, depth int) bool) {
	r.base.Walk(func(t *token.Token, depth int) bool {
		return fn(MutToken{r: r, id: t.ID}, depth)
	})
}

// Handler is one editing pass. parent is the group that holds tok; it is
// the zero MutToken for the root.
type Handler func(tok, parent MutToken)

// Apply runs each handler over the whole tree before starting the next.
func (r *Result) Apply(handlers ...Handler) {
	for _, h := range handlers {
		r.apply(h, MutToken{}, r.Root())
	}
}

func (r *Result) apply(h Handler, parent, tok MutToken) {
	h(tok, parent)
	for _, c := range tok.Children() {
		r.apply(h, tok, c)
	}
}

// Output renders the text with every modification applied.
func (r *Result) Output() string {
	var sb strings.Builder
	sb.Grow(len(r.base.Text))
	r.write(&sb, r.Root())
	return sb.String()
}

func (r *Result) write(sb *strings.Builder, tok MutToken) {
	if !tok.IsGroup() {
		sb.WriteString(tok.Value())
		sb.WriteString(tok.SpaceAfter())
		return
	}
	sb.WriteString(tok.StartValue())
	sb.WriteString(tok.InnerSpaceBefore())
	for _, c := range tok.Children() {
		r.write(sb, c)
	}
	sb.WriteString(tok.EndValue())
	sb.WriteString(tok.SpaceAfter())
}
