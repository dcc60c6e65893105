package parser

import (
	"hyperlex/internal/diag"
	"hyperlex/internal/token"
)

// build is the group-tree pass. It folds the lexeme stream into the token
// arena under a root group spanning the whole text.
func (st *status) build() {
	root := st.newToken(token.Token{
		Type:             token.Group,
		Length:           len(st.text),
		Mark:             token.NoMark,
		Pair:             token.Pair{EndIndex: len(st.text)},
		InnerSpaceBefore: st.leading,
	})
	st.groupStack = append(st.groupStack[:0], root)

	for i := range st.lexemes {
		lx := &st.lexemes[i]
		if lx.mark != token.NoMark {
			m := &st.marks[lx.mark]
			if m.Type.Pairing() && !m.Single && m.Pair.Resolved() {
				switch lx.side {
				case token.SideLeft:
					st.openGroup(lx, m)
					continue
				case token.SideRight:
					st.closeGroup(lx, m)
					continue
				}
			}
		}
		st.appendChild(st.single(lx, lx.typ))
	}

	for len(st.groupStack) > 1 {
		st.dissolveTop()
	}

	st.groups = st.groups[:0]
	for i := range st.tokens {
		if st.tokens[i].IsGroup() {
			st.groups = append(st.groups, st.tokens[i].ID)
		}
	}
	st.checkCoverage()
}

func (st *status) single(lx *lexeme, typ token.Type) token.ID {
	return st.newToken(token.Token{
		Type:       typ,
		Index:      lx.index,
		Length:     len(lx.value),
		Value:      lx.value,
		SpaceAfter: lx.spaceAfter,
		Mark:       lx.mark,
		MarkSide:   lx.side,
	})
}

func (st *status) topGroup() *token.Token {
	return &st.tokens[st.groupStack[len(st.groupStack)-1]]
}

func (st *status) appendChild(id token.ID) {
	g := st.topGroup()
	g.Children = append(g.Children, id)
}

func (st *status) openGroup(lx *lexeme, m *token.Mark) {
	id := st.newToken(token.Token{
		Type:             token.Group,
		Index:            m.Pair.StartIndex,
		Length:           m.Pair.Limit() - m.Pair.StartIndex,
		Mark:             m.ID,
		Pair:             m.Pair,
		InnerSpaceBefore: lx.spaceAfter,
	})
	st.appendChild(id)
	st.groupStack = append(st.groupStack, id)
}

// closeGroup closes the top group when lx is its closer. A closer for any
// other group overlaps a boundary and stays in place as Indeterminate.
func (st *status) closeGroup(lx *lexeme, m *token.Mark) {
	if g := st.topGroup(); len(st.groupStack) > 1 && g.Mark == m.ID {
		g.SpaceAfter = lx.spaceAfter
		st.groupStack = st.groupStack[:len(st.groupStack)-1]
		return
	}
	st.appendChild(st.single(lx, token.Indeterminate))
	st.report(diag.ParseBoundaryOverlap, diag.SevError, lx.index, lx.end(),
		"closing %q at %d crosses the boundary of an enclosing group", lx.value, lx.index)
}

// dissolveTop turns a group whose closer never arrived back into its opener
// and splices its children into the parent.
func (st *status) dissolveTop() {
	id := st.groupStack[len(st.groupStack)-1]
	st.groupStack = st.groupStack[:len(st.groupStack)-1]

	g := &st.tokens[id]
	children := g.Children
	start, value := g.Pair.StartIndex, g.Pair.StartValue
	*g = token.Token{
		ID:         id,
		Type:       token.Indeterminate,
		Index:      start,
		Length:     len(value),
		Value:      value,
		SpaceAfter: g.InnerSpaceBefore,
		Mark:       g.Mark,
		MarkSide:   token.SideLeft,
	}
	parent := st.topGroup()
	parent.Children = append(parent.Children, children...)
	st.report(diag.ParseBoundaryOverlap, diag.SevError, start, start+len(value),
		"group opened by %q at %d is never closed", value, start)
}

// checkCoverage verifies that every group's children tile its inner range.
func (st *status) checkCoverage() {
	for _, gid := range st.groups {
		g := &st.tokens[gid]
		cursor := g.Pair.InnerStart() + len(g.InnerSpaceBefore)
		for _, cid := range g.Children {
			c := &st.tokens[cid]
			if c.Index != cursor {
				st.report(diag.ParseCoverageGap, diag.SevError, min(cursor, c.Index), max(cursor, c.Index),
					"children of group at %d do not tile: expected %d, found %d", g.Index, cursor, c.Index)
			}
			cursor = c.Next()
		}
		if cursor != g.Pair.EndIndex {
			st.report(diag.ParseCoverageGap, diag.SevError, min(cursor, g.Pair.EndIndex), max(cursor, g.Pair.EndIndex),
				"children of group at %d end at %d, closer at %d", g.Index, cursor, g.Pair.EndIndex)
		}
	}
}
