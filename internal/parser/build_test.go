package parser

import (
	"testing"

	"hyperlex/internal/diag"
	"hyperlex/internal/token"
)

// Crossed pairs cannot come out of the pairing pass, so the lexeme stream is
// assembled by hand.
func TestBuildCrossedBoundaries(t *testing.T) {
	bag := diag.NewBag(10)
	st := newStatus("(a[)]", Options{Reporter: diag.BagReporter{Bag: bag}})
	paren := st.newMark(token.MarkBrackets, token.Pair{StartIndex: 0, StartValue: "(", EndIndex: 3, EndValue: ")"}, "", false)
	square := st.newMark(token.MarkBrackets, token.Pair{StartIndex: 2, StartValue: "[", EndIndex: 4, EndValue: "]"}, "", false)
	st.lexemes = []lexeme{
		{typ: token.BracketMark, index: 0, value: "(", mark: paren, side: token.SideLeft},
		{typ: token.WesternLetter, index: 1, value: "a", mark: token.NoMark},
		{typ: token.BracketMark, index: 2, value: "[", mark: square, side: token.SideLeft},
		{typ: token.BracketMark, index: 3, value: ")", mark: paren, side: token.SideRight},
		{typ: token.BracketMark, index: 4, value: "]", mark: square, side: token.SideRight},
	}
	st.build()
	res := st.result()

	root := res.RootToken()
	var types []token.Type
	for _, c := range root.Children {
		types = append(types, res.Token(c).Type)
	}
	want := []token.Type{token.Indeterminate, token.WesternLetter, token.Group}
	if len(types) != len(want) {
		t.Fatalf("root children = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("root children = %v, want %v", types, want)
		}
	}

	square2 := res.Token(root.Children[2])
	if len(square2.Children) != 1 || res.Token(square2.Children[0]).Type != token.Indeterminate {
		t.Errorf("inner group children = %v", square2.Children)
	}
	if len(res.Groups) != 2 {
		t.Errorf("groups = %v", res.Groups)
	}
	if got := res.Reconstruct(); got != "(a[)]" {
		t.Errorf("reconstruct = %q", got)
	}

	if bag.Len() != 2 {
		t.Fatalf("diagnostics = %+v", bag.Items())
	}
	for _, d := range bag.Items() {
		if d.Code != diag.ParseBoundaryOverlap || d.Severity != diag.SevError {
			t.Errorf("diagnostic = %+v", d)
		}
	}
}

func TestCoverageGapIsReported(t *testing.T) {
	st := newStatus("ab", Options{})
	st.lexemes = []lexeme{{typ: token.WesternLetter, index: 1, value: "b", mark: token.NoMark}}
	st.build()
	if len(st.errors) != 1 {
		t.Fatalf("errors = %v", st.errors)
	}
}
