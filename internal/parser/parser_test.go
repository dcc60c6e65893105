package parser_test

import (
	"slices"
	"testing"

	"hyperlex/internal/diag"
	"hyperlex/internal/hyper"
	"hyperlex/internal/markdown"
	"hyperlex/internal/parser"
	"hyperlex/internal/testkit"
	"hyperlex/internal/token"
)

func parse(t *testing.T, text string, opts parser.Options) *parser.Result {
	t.Helper()
	res := parser.Parse(text, opts)
	if err := testkit.CheckResult(res); err != nil {
		t.Fatalf("%q: %v", text, err)
	}
	return res
}

type tokenCase struct {
	typ   token.Type
	value string
	space string
}

// expectChildren compares the direct children of group id. Group children
// are listed with their start value.
func expectChildren(t *testing.T, res *parser.Result, id token.ID, want []tokenCase) {
	t.Helper()
	g := res.Token(id)
	if len(g.Children) != len(want) {
		t.Fatalf("group %d: got %d children, want %d (%s)", id, len(g.Children), len(want), dump(res, g))
	}
	for i, c := range g.Children {
		tok := res.Token(c)
		value := tok.Value
		if tok.IsGroup() {
			value = tok.Pair.StartValue
		}
		w := want[i]
		if tok.Type != w.typ || value != w.value || tok.SpaceAfter != w.space {
			t.Errorf("child %d = %v %q %q, want %v %q %q", i, tok.Type, value, tok.SpaceAfter, w.typ, w.value, w.space)
		}
	}
}

func dump(res *parser.Result, g *token.Token) string {
	s := ""
	for _, c := range g.Children {
		tok := res.Token(c)
		s += tok.Type.String() + ":" + tok.Value + " "
	}
	return s
}

func child(res *parser.Result, id token.ID, i int) token.ID {
	return res.Token(id).Children[i]
}

func TestLettersAndSpace(t *testing.T) {
	res := parse(t, "  Hello 世界 world", parser.Options{})
	if got := res.RootToken().InnerSpaceBefore; got != "  " {
		t.Errorf("leading space = %q", got)
	}
	expectChildren(t, res, res.Root, []tokenCase{
		{token.WesternLetter, "Hello", " "},
		{token.CjkChar, "世界", " "},
		{token.WesternLetter, "world", ""},
	})
	if len(res.Errors) != 0 {
		t.Errorf("unexpected errors %v", res.Errors)
	}
}

func TestPunctuationIsSingle(t *testing.T) {
	res := parse(t, "好，对。ok...", parser.Options{})
	expectChildren(t, res, res.Root, []tokenCase{
		{token.CjkChar, "好", ""},
		{token.FullwidthPauseOrStop, "，", ""},
		{token.CjkChar, "对", ""},
		{token.FullwidthPauseOrStop, "。", ""},
		{token.WesternLetter, "ok", ""},
		{token.HalfwidthPauseOrStop, ".", ""},
		{token.HalfwidthPauseOrStop, ".", ""},
		{token.HalfwidthPauseOrStop, ".", ""},
	})
}

func TestCrossedBracketsAreLIFO(t *testing.T) {
	res := parse(t, "([)]", parser.Options{})
	if len(res.Marks) != 2 {
		t.Fatalf("got %d marks", len(res.Marks))
	}
	if res.Marks[0].Pair.Resolved() {
		t.Errorf("outer ( should stay unmatched: %+v", res.Marks[0].Pair)
	}
	want := token.Pair{StartIndex: 1, StartValue: "[", EndIndex: 3, EndValue: "]"}
	if res.Marks[1].Pair != want {
		t.Errorf("inner pair = %+v, want %+v", res.Marks[1].Pair, want)
	}
	expectChildren(t, res, res.Root, []tokenCase{
		{token.Unmatched, "(", ""},
		{token.Group, "[", ""},
	})
	expectChildren(t, res, child(res, res.Root, 1), []tokenCase{
		{token.HalfwidthBracket, ")", ""},
	})
	if len(res.Errors) != 1 {
		t.Errorf("errors = %v, want one unmatched opener", res.Errors)
	}
}

func TestGroupSpacing(t *testing.T) {
	res := parse(t, "a ( b ) c", parser.Options{})
	expectChildren(t, res, res.Root, []tokenCase{
		{token.WesternLetter, "a", " "},
		{token.Group, "(", " "},
		{token.WesternLetter, "c", ""},
	})
	g := res.Token(child(res, res.Root, 1))
	if g.InnerSpaceBefore != " " || g.Pair.EndValue != ")" {
		t.Errorf("group = %+v", g)
	}
	if m := res.Mark(g.Mark); m == nil || m.Type != token.MarkBrackets {
		t.Errorf("group mark = %+v", m)
	}
	expectChildren(t, res, g.ID, []tokenCase{{token.WesternLetter, "b", " "}})
}

func TestQuotations(t *testing.T) {
	res := parse(t, `他说“你好”and "hi" 'yo'`, parser.Options{})
	var quotes []token.Pair
	for _, m := range res.Marks {
		if m.Type != token.MarkQuotation {
			t.Errorf("mark %d type %v", m.ID, m.Type)
		}
		quotes = append(quotes, m.Pair)
	}
	if len(quotes) != 3 {
		t.Fatalf("got %d quotation marks", len(quotes))
	}
	for _, p := range quotes {
		if !p.Resolved() {
			t.Errorf("pair %+v unresolved", p)
		}
	}
	if len(res.Groups) != 4 {
		t.Errorf("groups = %v", res.Groups)
	}
}

func TestShorthandApostrophe(t *testing.T) {
	tests := []struct {
		text string
		want []tokenCase
	}{
		{"don't", []tokenCase{{token.WesternLetter, "don't", ""}}},
		{"students' books", []tokenCase{
			{token.WesternLetter, "students'", " "},
			{token.WesternLetter, "books", ""},
		}},
		{"'90s", []tokenCase{{token.WesternLetter, "'90s", ""}}},
		{"'yes'", []tokenCase{{token.Group, "'", ""}}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			res := parse(t, tt.text, parser.Options{})
			expectChildren(t, res, res.Root, tt.want)
		})
	}
}

func TestUnmatchedOpenerAtEnd(t *testing.T) {
	bag := diag.NewBag(10)
	res := parse(t, "a (b", parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	expectChildren(t, res, res.Root, []tokenCase{
		{token.WesternLetter, "a", " "},
		{token.Unmatched, "(", ""},
		{token.WesternLetter, "b", ""},
	})
	if bag.Len() != 1 || bag.Items()[0].Code != diag.ParseUnmatchedOpener {
		t.Fatalf("diagnostics = %+v", bag.Items())
	}
	if sp := bag.Items()[0].Primary; sp.Start != 2 || sp.End != 3 {
		t.Errorf("span = %v", sp)
	}
}

func TestStrayCloser(t *testing.T) {
	res := parse(t, "a)", parser.Options{})
	if len(res.Errors) != 0 {
		t.Errorf("stray closer logged by default: %v", res.Errors)
	}

	bag := diag.NewBag(10)
	res = parse(t, "a) [b)]", parser.Options{ReportStrayClosers: true, Reporter: diag.BagReporter{Bag: bag}})
	if bag.Len() != 2 {
		t.Fatalf("diagnostics = %+v", bag.Items())
	}
	for _, d := range bag.Items() {
		if d.Code != diag.ParseUnmatchedCloser {
			t.Errorf("code = %v", d.Code)
		}
	}
	expectChildren(t, res, res.Root, []tokenCase{
		{token.WesternLetter, "a", ""},
		{token.HalfwidthBracket, ")", " "},
		{token.Group, "[", ""},
	})
}

func TestMaxDepth(t *testing.T) {
	res := parse(t, "(((a)))", parser.Options{MaxDepth: 2})
	if len(res.Errors) != 1 {
		t.Fatalf("errors = %v", res.Errors)
	}
	outer := child(res, res.Root, 0)
	inner := child(res, outer, 0)
	expectChildren(t, res, inner, []tokenCase{
		{token.HalfwidthBracket, "(", ""},
		{token.WesternLetter, "a", ""},
	})
	expectChildren(t, res, res.Root, []tokenCase{
		{token.Group, "(", ""},
		{token.HalfwidthBracket, ")", ""},
	})
}

func TestResolveContentType(t *testing.T) {
	tests := []struct {
		span string
		want token.Type
	}{
		{"`code`", token.CodeContent},
		{"<code>x</code>", token.CodeContent},
		{"<CODE class=\"go\">x</Code>", token.CodeContent},
		{"<br>", token.HyperContent},
		{"<div>\nx</div>", token.HyperContent},
		{"<code>a\nb</code>", token.HyperContent},
	}
	for _, tt := range tests {
		if got := parser.ResolveContentType(tt.span); got != tt.want {
			t.Errorf("ResolveContentType(%q) = %v, want %v", tt.span, got, tt.want)
		}
	}
}

func TestMarkdownMarks(t *testing.T) {
	opts := parser.Options{Hyper: markdown.Provider{}}

	res := parse(t, "foo `bar` baz", opts)
	expectChildren(t, res, res.Root, []tokenCase{
		{token.WesternLetter, "foo", " "},
		{token.CodeContent, "`bar`", " "},
		{token.WesternLetter, "baz", ""},
	})
	code := res.Mark(res.Token(child(res, res.Root, 1)).Mark)
	if code.Type != token.MarkRaw || code.Pair.EndIndex != 8 || code.Meta != hyper.MarkPairWithCode.String() {
		t.Errorf("code mark = %+v", code)
	}

	res = parse(t, "a<br>b", opts)
	expectChildren(t, res, res.Root, []tokenCase{
		{token.WesternLetter, "a", ""},
		{token.HyperContent, "<br>", ""},
		{token.WesternLetter, "b", ""},
	})

	res = parse(t, "中文**粗体**中文", opts)
	expectChildren(t, res, res.Root, []tokenCase{
		{token.CjkChar, "中文", ""},
		{token.Group, "**", ""},
		{token.CjkChar, "中文", ""},
	})
	g := res.Token(child(res, res.Root, 1))
	if m := res.Mark(g.Mark); m.Type != token.MarkHyper {
		t.Errorf("emphasis mark = %+v", m)
	}

	res = parse(t, "see [a (b](u) x", opts)
	expectChildren(t, res, res.Root, []tokenCase{
		{token.WesternLetter, "see", " "},
		{token.Group, "[", " "},
		{token.WesternLetter, "x", ""},
	})
	link := child(res, res.Root, 1)
	if got := res.Token(link).Pair.EndValue; got != "](u)" {
		t.Errorf("link end = %q", got)
	}
	expectChildren(t, res, link, []tokenCase{
		{token.WesternLetter, "a", " "},
		{token.Unmatched, "(", ""},
		{token.WesternLetter, "b", ""},
	})

	res = parse(t, `\*x`, opts)
	expectChildren(t, res, res.Root, []tokenCase{
		{token.HyperMark, `\`, ""},
		{token.HalfwidthOtherPunctuation, "*", ""},
		{token.WesternLetter, "x", ""},
	})
}

func TestHyperEndIsAuthoritative(t *testing.T) {
	provider := hyper.ProviderFunc(func(string) []hyper.InlineMark {
		return []hyper.InlineMark{{Kind: hyper.MarkPair, Start: hyper.Range{Start: 0, End: 1}, End: hyper.Range{Start: 3, End: 4}}}
	})
	res := parse(t, "*(a*", parser.Options{Hyper: provider})
	expectChildren(t, res, res.Root, []tokenCase{{token.Group, "*", ""}})
	expectChildren(t, res, child(res, res.Root, 0), []tokenCase{
		{token.Unmatched, "(", ""},
		{token.WesternLetter, "a", ""},
	})
	if len(res.Errors) != 1 {
		t.Errorf("errors = %v", res.Errors)
	}
}

func TestInvalidProviderRangesFallBack(t *testing.T) {
	provider := hyper.ProviderFunc(func(text string) []hyper.InlineMark {
		return []hyper.InlineMark{
			{Kind: hyper.MarkPair, Start: hyper.Range{Start: 0, End: 1}, End: hyper.Range{Start: 40, End: 41}},
			{Kind: hyper.SingleMark, Start: hyper.Range{Start: 2, End: 2}},
		}
	})
	res := parse(t, "*a(b)", parser.Options{Hyper: provider})
	expectChildren(t, res, res.Root, []tokenCase{
		{token.HalfwidthOtherPunctuation, "*", ""},
		{token.WesternLetter, "a", ""},
		{token.Group, "(", ""},
	})
}

func TestLosslessAndIndex(t *testing.T) {
	for _, text := range testkit.Samples {
		for _, opts := range []parser.Options{{}, {Hyper: markdown.Provider{}}, {MaxDepth: 1}} {
			parse(t, text, opts)
		}
	}
}

func TestReparseIsIdempotent(t *testing.T) {
	type groupShape struct {
		mark token.MarkID
		pair token.Pair
	}
	opts := parser.Options{Hyper: markdown.Provider{}}
	for _, text := range testkit.Samples {
		first := parse(t, text, opts)
		second := parse(t, first.Reconstruct(), opts)

		var a, b []token.Type
		first.Walk(func(tok *token.Token, _ int) bool { a = append(a, tok.Type); return true })
		second.Walk(func(tok *token.Token, _ int) bool { b = append(b, tok.Type); return true })
		if !slices.Equal(a, b) {
			t.Fatalf("%q: token types differ\n%v\n%v", text, a, b)
		}

		if len(first.Marks) != len(second.Marks) {
			t.Fatalf("%q: %d marks vs %d", text, len(first.Marks), len(second.Marks))
		}
		for i := range first.Marks {
			m, n := &first.Marks[i], &second.Marks[i]
			if m.Type != n.Type || m.Meta != n.Meta || m.Single != n.Single ||
				m.Pair != n.Pair || m.Pair.Resolved() != n.Pair.Resolved() {
				t.Errorf("%q: mark %d = %+v, reparsed %+v", text, i, *m, *n)
			}
		}

		shapes := func(res *parser.Result) []groupShape {
			out := make([]groupShape, 0, len(res.Groups))
			for _, id := range res.Groups {
				g := res.Token(id)
				out = append(out, groupShape{mark: g.Mark, pair: g.Pair})
			}
			return out
		}
		if ga, gb := shapes(first), shapes(second); !slices.Equal(ga, gb) {
			t.Errorf("%q: groups differ\n%+v\n%+v", text, ga, gb)
		}
	}
}

func TestMarkAt(t *testing.T) {
	res := parse(t, "x(y)", parser.Options{})
	for _, off := range []int{1, 3} {
		m, ok := res.MarkAt(off)
		if !ok || m.ID != 0 {
			t.Errorf("MarkAt(%d) = %v %v", off, m, ok)
		}
	}
	if _, ok := res.MarkAt(2); ok {
		t.Errorf("MarkAt(2) found a mark")
	}
}
