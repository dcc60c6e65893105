// Package markdown is the default hyper.Provider. It runs goldmark's inline
// parsers over the document and reports the delimiters of code spans, inline
// html, autolinks, emphasis, strikethrough, links, images and backslash
// escapes.
//
// Only the paragraph block parser is installed: list bullets, headings and
// indented lines stay prose. Marks are always properly nested; anything
// goldmark parsed inside a <code>...</code> pair is dropped because that
// content is raw.
package markdown

import (
	"bytes"
	"slices"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	gtext "github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"hyperlex/internal/hyper"
)

// Provider implements hyper.Provider.
type Provider struct{}

var _ hyper.Provider = Provider{}

var recorderKey = parser.NewContextKey()

var inline = parser.NewParser(
	parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 1000)),
	parser.WithInlineParsers(
		util.Prioritized(tracked{parser.NewCodeSpanParser()}, 100),
		util.Prioritized(tracked{parser.NewLinkParser()}, 200),
		util.Prioritized(tracked{parser.NewAutoLinkParser()}, 300),
		util.Prioritized(parser.NewRawHTMLParser(), 400),
		util.Prioritized(parser.NewEmphasisParser(), 500),
		util.Prioritized(extension.NewStrikethroughParser(), 500),
	),
)

// Marks parses doc and returns its inline marks ordered by start offset.
func (Provider) Marks(doc string) []hyper.InlineMark {
	src := []byte(doc)
	rec := &recorder{
		src:      src,
		starts:   make(map[ast.Node]int),
		links:    make(map[ast.Node]linkMarks),
		openers:  make(map[ast.Node][]hyper.Range),
		spans:    make(map[ast.Node]span),
		codeOpen: make(map[ast.Node][]hyper.Range),
	}
	pc := parser.NewContext()
	pc.Set(recorderKey, rec)
	root := inline.Parse(gtext.NewReader(src), parser.WithContext(pc))
	return rec.collect(root)
}

// tracked records where the nodes of the wrapped inline parser start.
// goldmark keeps no offsets for code spans, autolinks and link brackets.
type tracked struct {
	parser.InlineParser
}

func (p tracked) Parse(parent ast.Node, block gtext.Reader, pc parser.Context) ast.Node {
	rec, _ := pc.Get(recorderKey).(*recorder)
	line, seg := block.PeekLine()
	if rec == nil || len(line) == 0 {
		return p.InlineParser.Parse(parent, block, pc)
	}
	start := seg.Start
	switch line[0] {
	case '[':
		rec.openers[parent] = append(rec.openers[parent], hyper.Range{Start: start, End: start + 1})
	case '!':
		if len(line) > 1 && line[1] == '[' {
			rec.openers[parent] = append(rec.openers[parent], hyper.Range{Start: start, End: start + 2})
		}
	case ']':
		return rec.closeLink(parent, start, p.InlineParser.Parse(parent, block, pc))
	}
	n := p.InlineParser.Parse(parent, block, pc)
	if n != nil {
		rec.starts[n] = start
	}
	return n
}

func (p tracked) CloseBlock(parent ast.Node, block gtext.Reader, pc parser.Context) {
	if rec, ok := pc.Get(recorderKey).(*recorder); ok {
		delete(rec.openers, parent)
	}
	if cb, ok := p.InlineParser.(parser.CloseBlocker); ok {
		cb.CloseBlock(parent, block, pc)
	}
}

type linkMarks struct {
	open       hyper.Range
	closeStart int
}

// span is the delimiter layout of a node. close is zero for single spans.
type span struct {
	open  hyper.Range
	close hyper.Range
	ok    bool
}

func (s span) outer() hyper.Range {
	if s.close == (hyper.Range{}) {
		return s.open
	}
	return hyper.Range{Start: s.open.Start, End: s.close.End}
}

type recorder struct {
	src []byte
	// starts holds the trigger offset of tracked nodes.
	starts map[ast.Node]int
	links  map[ast.Node]linkMarks
	// openers mirrors goldmark's link label stack per block: every "]"
	// consumes the newest opener whether or not a link results.
	openers  map[ast.Node][]hyper.Range
	spans    map[ast.Node]span
	codeOpen map[ast.Node][]hyper.Range
	out      []hyper.InlineMark
}

func (r *recorder) closeLink(parent ast.Node, at int, n ast.Node) ast.Node {
	stack := r.openers[parent]
	if len(stack) == 0 {
		return n
	}
	open := stack[len(stack)-1]
	r.openers[parent] = stack[:len(stack)-1]
	switch n.(type) {
	case *ast.Link, *ast.Image:
		r.links[n] = linkMarks{open: open, closeStart: at}
	}
	return n
}

func (r *recorder) emit(kind hyper.Kind, start, end hyper.Range) {
	r.out = append(r.out, hyper.InlineMark{Kind: kind, Start: start, End: end})
}

func (r *recorder) collect(root ast.Node) []hyper.InlineMark {
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Text:
			r.escapes(n.Segment)
		case *ast.CodeSpan:
			if sp := r.spanOf(n); sp.ok {
				r.emit(hyper.MarkPairWithCode, sp.open, sp.close)
			}
			return ast.WalkSkipChildren, nil
		case *ast.AutoLink:
			if sp := r.spanOf(n); sp.ok {
				r.emit(hyper.SingleMark, sp.open, hyper.Range{})
			}
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			r.rawHTML(n)
		case *ast.Link, *ast.Image, *ast.Emphasis, *extast.Strikethrough:
			if sp := r.spanOf(n); sp.ok {
				r.emit(hyper.MarkPair, sp.open, sp.close)
			}
		}
		return ast.WalkContinue, nil
	})
	for _, open := range r.codeOpen {
		for _, rg := range open {
			r.emit(hyper.SingleMark, rg, hyper.Range{})
		}
	}
	slices.SortFunc(r.out, func(a, b hyper.InlineMark) int { return a.Start.Start - b.Start.Start })
	return dropInsideRaw(r.out)
}

// escapes reports backslash escapes; goldmark leaves the backslash in the
// text segment.
func (r *recorder) escapes(seg gtext.Segment) {
	for i := seg.Start; i < seg.Stop; i++ {
		if r.src[i] == '\\' && i+1 < len(r.src) && isASCIIPunct(r.src[i+1]) {
			r.emit(hyper.SingleMarkConnect, hyper.Range{Start: i, End: i + 1}, hyper.Range{})
			i++
		}
	}
}

// rawHTML pairs <code> with the next </code> of the same parent. Other tags
// and comments are single marks.
func (r *recorder) rawHTML(n *ast.RawHTML) {
	sp := r.spanOf(n)
	if !sp.ok {
		return
	}
	tag := strings.ToLower(string(r.src[sp.open.Start:min(sp.open.End, sp.open.Start+7)]))
	parent := n.Parent()
	switch {
	case isTagNamed(tag, "<code"):
		r.codeOpen[parent] = append(r.codeOpen[parent], sp.open)
	case isTagNamed(tag, "</code") && len(r.codeOpen[parent]) > 0:
		stack := r.codeOpen[parent]
		r.emit(hyper.MarkPairWithCode, stack[len(stack)-1], sp.open)
		r.codeOpen[parent] = stack[:len(stack)-1]
	default:
		r.emit(hyper.SingleMark, sp.open, hyper.Range{})
	}
}

func isTagNamed(tag, name string) bool {
	if !strings.HasPrefix(tag, name) || len(tag) <= len(name) {
		return false
	}
	c := tag[len(name)]
	return c == '>' || c == ' ' || c == '\t' || c == '\n'
}

func (r *recorder) spanOf(n ast.Node) span {
	if sp, ok := r.spans[n]; ok {
		return sp
	}
	sp := r.measure(n)
	r.spans[n] = sp
	return sp
}

func (r *recorder) measure(n ast.Node) span {
	switch n := n.(type) {
	case *ast.Text:
		return span{open: hyper.Range{Start: n.Segment.Start, End: n.Segment.Stop}, ok: true}
	case *ast.RawHTML:
		if n.Segments == nil || n.Segments.Len() == 0 {
			return span{}
		}
		last := n.Segments.At(n.Segments.Len() - 1)
		return span{open: hyper.Range{Start: n.Segments.At(0).Start, End: last.Stop}, ok: true}
	case *ast.CodeSpan:
		start, ok := r.starts[n]
		if !ok {
			return span{}
		}
		k := runLen(r.src, start, '`')
		if k == 0 {
			return span{}
		}
		for j := start + k; j < len(r.src); {
			if r.src[j] != '`' {
				j++
				continue
			}
			m := runLen(r.src, j, '`')
			if m == k {
				return span{open: hyper.Range{Start: start, End: start + k}, close: hyper.Range{Start: j, End: j + k}, ok: true}
			}
			j += m
		}
	case *ast.AutoLink:
		start, ok := r.starts[n]
		if !ok {
			return span{}
		}
		if end := bytes.IndexByte(r.src[start:], '>'); end > 0 {
			return span{open: hyper.Range{Start: start, End: start + end + 1}, ok: true}
		}
	case *ast.Link, *ast.Image:
		l, ok := r.links[n]
		if !ok {
			return span{}
		}
		if end := linkTailEnd(r.src, l.closeStart); end > 0 {
			return span{open: l.open, close: hyper.Range{Start: l.closeStart, End: end}, ok: true}
		}
	case *ast.Emphasis:
		return r.wrapped(n, n.Level, "*_")
	case *extast.Strikethrough:
		if n.FirstChild() == nil {
			return span{}
		}
		first := r.spanOf(n.FirstChild())
		if !first.ok {
			return span{}
		}
		s, w := first.outer().Start, 0
		for w < 2 && s-w > 0 && r.src[s-w-1] == '~' {
			w++
		}
		return r.wrapped(n, w, "~")
	}
	return span{}
}

// wrapped derives the delimiters of a container node from its first and
// last children: width bytes of chars on each side.
func (r *recorder) wrapped(n ast.Node, width int, chars string) span {
	if width <= 0 || n.FirstChild() == nil {
		return span{}
	}
	first, last := r.spanOf(n.FirstChild()), r.spanOf(n.LastChild())
	if !first.ok || !last.ok {
		return span{}
	}
	s, e := first.outer().Start, last.outer().End
	if s-width < 0 || e+width > len(r.src) {
		return span{}
	}
	for i := 0; i < width; i++ {
		if strings.IndexByte(chars, r.src[s-width+i]) < 0 || strings.IndexByte(chars, r.src[e+i]) < 0 {
			return span{}
		}
	}
	return span{open: hyper.Range{Start: s - width, End: s}, close: hyper.Range{Start: e, End: e + width}, ok: true}
}

// linkTailEnd returns the offset past the ")" of the inline link tail
// "](dest "title")" starting at i, or -1.
func linkTailEnd(src []byte, i int) int {
	i++
	if i >= len(src) || src[i] != '(' {
		return -1
	}
	i = skipSpace(src, i+1)
	if i < len(src) && src[i] == '<' {
		for i++; i < len(src) && src[i] != '>'; i++ {
			if src[i] == '\\' {
				i++
			}
		}
		i++
	} else {
		depth := 0
	dest:
		for ; i < len(src); i++ {
			switch src[i] {
			case '\\':
				i++
			case '(':
				depth++
			case ')':
				if depth == 0 {
					break dest
				}
				depth--
			case ' ', '\t', '\n':
				break dest
			}
		}
	}
	i = skipSpace(src, i)
	if i < len(src) && (src[i] == '"' || src[i] == '\'' || src[i] == '(') {
		closer := src[i]
		if closer == '(' {
			closer = ')'
		}
		for i++; i < len(src) && src[i] != closer; i++ {
			if src[i] == '\\' {
				i++
			}
		}
		i = skipSpace(src, i+1)
	}
	if i >= len(src) || src[i] != ')' {
		return -1
	}
	return i + 1
}

// dropInsideRaw removes marks that start or end inside the content of a
// code pair. Nested code pairs go too.
func dropInsideRaw(marks []hyper.InlineMark) []hyper.InlineMark {
	var regions []hyper.InlineMark
	lastEnd := -1
	for _, m := range marks {
		if m.Kind != hyper.MarkPairWithCode || m.Start.Start < lastEnd {
			continue
		}
		regions = append(regions, m)
		lastEnd = m.End.End
	}
	if len(regions) == 0 {
		return marks
	}
	inside := func(off int) bool {
		i := sort.Search(len(regions), func(i int) bool { return regions[i].End.Start > off })
		return i < len(regions) && regions[i].Start.End <= off
	}
	out := marks[:0]
	for _, m := range marks {
		if inside(m.Start.Start) || (m.Kind.Paired() && inside(m.End.Start)) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func runLen(src []byte, i int, c byte) int {
	n := 0
	for i+n < len(src) && src[i+n] == c {
		n++
	}
	return n
}

func skipSpace(src []byte, i int) int {
	for i < len(src) && (src[i] == ' ' || src[i] == '\t' || src[i] == '\n') {
		i++
	}
	return i
}

func isASCIIPunct(b byte) bool {
	return b < utf8.RuneSelf && (unicode.IsPunct(rune(b)) || unicode.IsSymbol(rune(b)))
}
