package parser

import (
	"strings"

	"hyperlex/internal/token"
)

// Result is the read-only outcome of Parse. Tokens is an arena indexed by
// token.ID; Root is always 0.
type Result struct {
	Text      string               `json:"text" msgpack:"text"`
	Root      token.ID             `json:"root" msgpack:"root"`
	Tokens    []token.Token        `json:"tokens" msgpack:"tokens"`
	Groups    []token.ID           `json:"groups" msgpack:"groups"`
	Marks     []token.Mark         `json:"marks" msgpack:"marks"`
	MarkIndex map[int]token.MarkID `json:"mark_index" msgpack:"mark_index"`
	Errors    []string             `json:"errors,omitempty" msgpack:"errors"`
}

func (r *Result) Token(id token.ID) *token.Token {
	if id < 0 || int(id) >= len(r.Tokens) {
		return nil
	}
	return &r.Tokens[id]
}

func (r *Result) Mark(id token.MarkID) *token.Mark {
	if id < 0 || int(id) >= len(r.Marks) {
		return nil
	}
	return &r.Marks[id]
}

func (r *Result) RootToken() *token.Token { return r.Token(r.Root) }

// MarkAt returns the mark whose boundary starts at offset.
func (r *Result) MarkAt(offset int) (*token.Mark, bool) {
	id, ok := r.MarkIndex[offset]
	if !ok {
		return nil, false
	}
	return r.Mark(id), true
}

// Walk visits tokens depth-first in text order. Returning false from fn
// skips the children of a group.
func (r *Result) Walk(fn func(t *token.Token, depth int) bool) {
	if len(r.Tokens) == 0 {
		return
	}
	r.walk(r.Root, 0, fn)
}

func (r *Result) walk(id token.ID, depth int, fn func(*token.Token, int) bool) {
	t := &r.Tokens[id]
	if !fn(t, depth) {
		return
	}
	for _, c := range t.Children {
		r.walk(c, depth+1, fn)
	}
}

// Reconstruct reassembles the source text from the tree.
func (r *Result) Reconstruct() string {
	if len(r.Tokens) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(len(r.Text))
	r.write(&sb, r.Root)
	return sb.String()
}

func (r *Result) write(sb *strings.Builder, id token.ID) {
	t := &r.Tokens[id]
	if !t.IsGroup() {
		sb.WriteString(t.Value)
		sb.WriteString(t.SpaceAfter)
		return
	}
	sb.WriteString(t.Pair.StartValue)
	sb.WriteString(t.InnerSpaceBefore)
	for _, c := range t.Children {
		r.write(sb, c)
	}
	sb.WriteString(t.Pair.EndValue)
	sb.WriteString(t.SpaceAfter)
}

// HasErrors reports whether the parse logged anything.
func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }
