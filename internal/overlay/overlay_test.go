package overlay_test

import (
	"testing"

	"hyperlex/internal/markdown"
	"hyperlex/internal/overlay"
	"hyperlex/internal/parser"
	"hyperlex/internal/token"
)

const sample = "中文English（括号）**粗体** ok"

func newOverlay(t *testing.T, text string) (*parser.Result, *overlay.Result) {
	t.Helper()
	base := parser.Parse(text, parser.Options{Hyper: markdown.Provider{}})
	return base, overlay.New(base)
}

// spaceBetweenScripts inserts a space between adjacent CJK and Western
// letters, the way a spacing pass would.
func spaceBetweenScripts(tok, parent overlay.MutToken) {
	if !parent.Valid() || tok.SpaceAfter() != "" {
		return
	}
	kids := parent.Children()
	for i, c := range kids {
		if c.ID() != tok.ID() || i+1 == len(kids) {
			continue
		}
		next := kids[i+1]
		a, b := tok.Type(), next.Type()
		if a.IsLetter() && b.IsLetter() && a != b {
			tok.SetSpaceAfter(" ")
		}
	}
}

func TestUnmodifiedOutputIsOriginal(t *testing.T) {
	_, ov := newOverlay(t, sample)
	if got := ov.Output(); got != sample {
		t.Errorf("Output() = %q", got)
	}
	if ov.Modified() || len(ov.Changes()) != 0 {
		t.Errorf("fresh overlay reports changes: %v", ov.Changes())
	}
}

func TestApplyDoesNotTouchBase(t *testing.T) {
	base, ov := newOverlay(t, sample)
	before := append([]token.Token(nil), base.Tokens...)

	ov.Apply(spaceBetweenScripts)
	if got, want := ov.Output(), "中文 English（括号）**粗体** ok"; got != want {
		t.Errorf("Output() = %q, want %q", got, want)
	}
	if got := base.Reconstruct(); got != sample {
		t.Errorf("base changed: %q", got)
	}
	for i := range before {
		if base.Tokens[i].SpaceAfter != before[i].SpaceAfter || base.Tokens[i].Value != before[i].Value {
			t.Fatalf("base token %d changed", i)
		}
	}

	second := overlay.New(base)
	if second.Output() != sample {
		t.Errorf("second overlay sees edits of the first")
	}
}

func TestGroupPairEditsGoThroughMark(t *testing.T) {
	_, ov := newOverlay(t, "a(b)")
	group := ov.Root().Children()[1]
	if !group.IsGroup() {
		t.Fatalf("child 1 is %v", group.Type())
	}
	m, ok := group.Mark()
	if !ok {
		t.Fatal("group has no mark")
	}
	m.SetStartValue("（")
	m.SetEndValue("）")
	if group.StartValue() != "（" || group.EndValue() != "）" {
		t.Errorf("group reads %q %q", group.StartValue(), group.EndValue())
	}
	if got := ov.Output(); got != "a（b）" {
		t.Errorf("Output() = %q", got)
	}
	changes := ov.Changes()
	if len(changes) != 2 {
		t.Fatalf("changes = %+v", changes)
	}
	if changes[0].Field != overlay.FieldStartValue || changes[0].Offset != 1 || changes[0].Before != "(" {
		t.Errorf("first change = %+v", changes[0])
	}
	if changes[1].Field != overlay.FieldEndValue || changes[1].Offset != 3 {
		t.Errorf("second change = %+v", changes[1])
	}
}

func TestIgnoredValues(t *testing.T) {
	_, ov := newOverlay(t, "a ,b")
	ov.Walk(func(tok overlay.MutToken, _ int) bool {
		if tok.Type() == token.HalfwidthPauseOrStop {
			tok.IgnoreValue("，")
			tok.IgnoreType(token.FullwidthPauseOrStop)
		}
		return true
	})
	comma := ov.Root().Children()[1]
	if comma.Value() != "," || comma.IgnoredValue() != "，" {
		t.Errorf("value %q ignored %q", comma.Value(), comma.IgnoredValue())
	}
	if comma.Type() != token.HalfwidthPauseOrStop || comma.IgnoredType() != token.FullwidthPauseOrStop {
		t.Errorf("type %v ignored %v", comma.Type(), comma.IgnoredType())
	}
	letter := ov.Root().Children()[0]
	if letter.IgnoredValue() != "" || letter.IgnoredSpaceAfter() != "" || letter.IgnoredType() != token.Invalid {
		t.Errorf("unset ignored slots are not empty")
	}
	if ov.Output() != "a ,b" || ov.Modified() {
		t.Errorf("ignored values leaked into output")
	}
}

func TestRestoringValueIsNoChange(t *testing.T) {
	_, ov := newOverlay(t, "x y")
	x := ov.Root().Children()[0]
	x.SetSpaceAfter("")
	x.SetSpaceAfter(" ")
	if len(ov.Changes()) != 0 {
		t.Errorf("changes = %+v", ov.Changes())
	}
	if !ov.Modified() {
		t.Errorf("Modified() = false after writes")
	}
}

func TestRootSpace(t *testing.T) {
	_, ov := newOverlay(t, "  x")
	root := ov.Root()
	root.SetInnerSpaceBefore("")
	if got := ov.Output(); got != "x" {
		t.Errorf("Output() = %q", got)
	}
	if got := ov.Changes(); len(got) != 1 || got[0].Field != overlay.FieldInnerSpaceBefore {
		t.Errorf("changes = %+v", got)
	}
}

func TestInvalidHandles(t *testing.T) {
	_, ov := newOverlay(t, "x")
	bad := ov.Token(99)
	if bad.Valid() || bad.Value() != "" || bad.Children() != nil {
		t.Errorf("invalid handle reads %+v", bad)
	}
	if ov.Mark(5).Valid() {
		t.Errorf("mark 5 should be invalid")
	}
}

// widenPunctuation rewrites halfwidth pauses to fullwidth and records the
// fullwidth brackets a later pass chose not to apply.
func widenPunctuation(tok, _ overlay.MutToken) {
	switch {
	case tok.Type() == token.HalfwidthPauseOrStop:
		tok.SetValue(token.WidenValue(tok.Value()))
		tok.SetType(token.Widen(tok.Type()))
	case tok.IsGroup():
		if m, ok := tok.Mark(); ok {
			m.IgnoreStartValue(token.WidenValue(m.StartValue()))
			m.IgnoreEndValue(token.WidenValue(m.EndValue()))
		}
		tok.IgnoreInnerSpaceBefore(" ")
		tok.IgnoreSpaceAfter(" ")
	}
}

func TestWidenWithIgnoredGroupEdits(t *testing.T) {
	_, ov := newOverlay(t, "中,(b)")
	ov.Apply(widenPunctuation)
	if got, want := ov.Output(), "中，(b)"; got != want {
		t.Errorf("Output() = %q, want %q", got, want)
	}

	kids := ov.Root().Children()
	comma, group := kids[1], kids[2]
	if comma.Type() != token.FullwidthPauseOrStop {
		t.Errorf("comma type = %v", comma.Type())
	}
	m, ok := group.Mark()
	if !ok {
		t.Fatal("group has no mark")
	}
	if m.IgnoredStartValue() != "（" || m.IgnoredEndValue() != "）" {
		t.Errorf("ignored delimiters %q %q", m.IgnoredStartValue(), m.IgnoredEndValue())
	}
	if group.IgnoredInnerSpaceBefore() != " " || group.IgnoredSpaceAfter() != " " {
		t.Errorf("ignored spaces %q %q", group.IgnoredInnerSpaceBefore(), group.IgnoredSpaceAfter())
	}

	changes := ov.Changes()
	if len(changes) != 1 || changes[0].Field != overlay.FieldValue || changes[0].Offset != 3 || changes[0].After != "，" {
		t.Errorf("changes = %+v", changes)
	}
}
