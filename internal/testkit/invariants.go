package testkit

import (
	"fmt"
	"sort"

	"fortio.org/safecast"

	"hyperlex/internal/parser"
	"hyperlex/internal/source"
	"hyperlex/internal/token"
)

// CheckResult runs every structural invariant on a parse result and returns
// the first violation.
func CheckResult(r *parser.Result) error {
	if r == nil {
		return fmt.Errorf("nil result")
	}
	for _, check := range []func(*parser.Result) error{
		CheckMarks,
		CheckNesting,
		CheckMarkIndex,
		CheckTokens,
		CheckLossless,
	} {
		if err := check(r); err != nil {
			return err
		}
	}
	return nil
}

// CheckMarks verifies the pair sentinel ordering and that every boundary
// value is the literal text at its offset.
func CheckMarks(r *parser.Result) error {
	for i := range r.Marks {
		m := &r.Marks[i]
		if m.ID != token.MarkID(i) { //nolint:gosec // arena index
			return fmt.Errorf("mark %d carries id %d", i, m.ID)
		}
		p := m.Pair
		if p.Resolved() && p.EndIndex <= p.StartIndex {
			return fmt.Errorf("mark %d: end %d not after start %d", i, p.EndIndex, p.StartIndex)
		}
		if !literalAt(r.Text, p.StartIndex, p.StartValue) {
			return fmt.Errorf("mark %d: start value %q not found at %d", i, p.StartValue, p.StartIndex)
		}
		if p.Resolved() && !literalAt(r.Text, p.EndIndex, p.EndValue) {
			return fmt.Errorf("mark %d: end value %q not found at %d", i, p.EndValue, p.EndIndex)
		}
		if m.Single && m.Type.Pairing() && m.Type != token.MarkHyper {
			return fmt.Errorf("mark %d: single %s mark", i, m.Type)
		}
	}
	return nil
}

func literalAt(text string, at int, value string) bool {
	return at >= 0 && at+len(value) <= len(text) && text[at:at+len(value)] == value
}

// CheckNesting verifies that resolved pairs never cross.
func CheckNesting(r *parser.Result) error {
	var pairs []token.Pair
	for i := range r.Marks {
		m := &r.Marks[i]
		if !m.Single && m.Pair.Resolved() {
			pairs = append(pairs, m.Pair)
		}
	}
	sort.Slice(pairs, func(a, b int) bool { return pairs[a].StartIndex < pairs[b].StartIndex })

	var stack []token.Pair
	for _, p := range pairs {
		for len(stack) > 0 && stack[len(stack)-1].Limit() <= p.StartIndex {
			stack = stack[:len(stack)-1]
		}
		if len(stack) > 0 {
			outer := stack[len(stack)-1]
			if p.StartIndex < outer.InnerStart() || p.Limit() > outer.EndIndex {
				return fmt.Errorf("pair at %d crosses pair at %d", p.StartIndex, outer.StartIndex)
			}
		}
		stack = append(stack, p)
	}
	return nil
}

// CheckMarkIndex verifies the offset index round-trip.
func CheckMarkIndex(r *parser.Result) error {
	for i := range r.Marks {
		m := &r.Marks[i]
		if got, ok := r.MarkIndex[m.Pair.StartIndex]; !ok || got != m.ID {
			return fmt.Errorf("mark index at %d: got %d want %d", m.Pair.StartIndex, got, m.ID)
		}
		if m.Single || !m.Pair.Resolved() {
			continue
		}
		if got, ok := r.MarkIndex[m.Pair.EndIndex]; !ok || got != m.ID {
			return fmt.Errorf("mark index at %d: got %d want %d", m.Pair.EndIndex, got, m.ID)
		}
	}
	return nil
}

// CheckTokens verifies token literals against the text and that group
// children tile the group's inner range.
func CheckTokens(r *parser.Result) error {
	root := r.RootToken()
	if root == nil || !root.IsGroup() {
		return fmt.Errorf("missing root group")
	}
	fileSpan, err := span(root)
	if err != nil {
		return err
	}
	var walkErr error
	r.Walk(func(t *token.Token, _ int) bool {
		if walkErr != nil {
			return false
		}
		sp, err := span(t)
		if err != nil {
			walkErr = err
			return false
		}
		if t.ID != r.Root && !fileSpan.Contains(sp) {
			walkErr = fmt.Errorf("token %d span %v outside %v", t.ID, sp, fileSpan)
			return false
		}
		if !literalAt(r.Text, t.End(), t.SpaceAfter) {
			walkErr = fmt.Errorf("token %d: space after %q not found at %d", t.ID, t.SpaceAfter, t.End())
			return false
		}
		if !t.IsGroup() {
			if !literalAt(r.Text, t.Index, t.Value) || len(t.Value) != t.Length {
				walkErr = fmt.Errorf("token %d: value %q not found at %d", t.ID, t.Value, t.Index)
			}
			return false
		}
		walkErr = checkTiling(r, t)
		return walkErr == nil
	})
	return walkErr
}

func checkTiling(r *parser.Result, g *token.Token) error {
	cursor := g.Pair.InnerStart() + len(g.InnerSpaceBefore)
	for _, c := range g.Children {
		child := r.Token(c)
		if child == nil {
			return fmt.Errorf("group %d: missing child %d", g.ID, c)
		}
		if child.Index != cursor {
			return fmt.Errorf("group %d: child %d at %d, expected %d", g.ID, c, child.Index, cursor)
		}
		cursor = child.Next()
	}
	if cursor != g.Pair.EndIndex {
		return fmt.Errorf("group %d: children end at %d, closer at %d", g.ID, cursor, g.Pair.EndIndex)
	}
	return nil
}

func span(t *token.Token) (source.Span, error) {
	start, err := safecast.Conv[uint32](t.Index)
	if err != nil {
		return source.Span{}, fmt.Errorf("token %d start overflow: %w", t.ID, err)
	}
	end, err := safecast.Conv[uint32](t.End())
	if err != nil {
		return source.Span{}, fmt.Errorf("token %d end overflow: %w", t.ID, err)
	}
	return source.Span{Start: start, End: end}, nil
}

// CheckLossless verifies that the tree reassembles to the source text.
func CheckLossless(r *parser.Result) error {
	if got := r.Reconstruct(); got != r.Text {
		return fmt.Errorf("reconstruction differs:\n got: %q\nwant: %q", got, r.Text)
	}
	return nil
}
