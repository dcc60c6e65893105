package parser

import (
	"fmt"

	"hyperlex/internal/diag"
	"hyperlex/internal/hyper"
	"hyperlex/internal/source"
	"hyperlex/internal/token"
)

// lexeme is a flat token produced by the pairing pass.
type lexeme struct {
	typ        token.Type
	index      int
	value      string
	spaceAfter string
	mark       token.MarkID
	side       token.MarkSide
}

func (lx *lexeme) end() int { return lx.index + len(lx.value) }

// status is the state of one Parse call. It is never shared.
type status struct {
	text string
	opts Options

	lexemes []lexeme
	leading string

	marks      []token.Mark
	markStack  []token.MarkID
	markLexeme map[token.MarkID]int

	hyperMarks map[int]hyper.Entry
	hyperOpen  map[int]token.MarkID
	hyperSkip  map[int]bool
	depthHit   bool

	tokens     []token.Token
	groupStack []token.ID
	groups     []token.ID

	errors []string
}

func newStatus(text string, opts Options) *status {
	return &status{
		text:       text,
		opts:       opts,
		lexemes:    make([]lexeme, 0, len(text)/2+1),
		markLexeme: make(map[token.MarkID]int),
		hyperMarks: hyper.MarkMap(opts.provider().Marks(text)),
		hyperOpen:  make(map[int]token.MarkID),
		hyperSkip:  make(map[int]bool),
	}
}

func (st *status) report(code diag.Code, sev diag.Severity, start, end int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	st.errors = append(st.errors, msg)
	if st.opts.Reporter != nil {
		st.opts.Reporter.Report(code, sev, source.SpanOf(st.opts.File, start, end), msg, nil)
	}
}

func (st *status) newMark(typ token.MarkType, pair token.Pair, meta string, single bool) token.MarkID {
	id := token.MarkID(len(st.marks)) //nolint:gosec // bounded by input size
	st.marks = append(st.marks, token.Mark{ID: id, Pair: pair, Type: typ, Meta: meta, Single: single})
	return id
}

func (st *status) push(lx lexeme) int {
	st.lexemes = append(st.lexemes, lx)
	return len(st.lexemes) - 1
}

func (st *status) last() *lexeme {
	if len(st.lexemes) == 0 {
		return nil
	}
	return &st.lexemes[len(st.lexemes)-1]
}

func (st *status) newToken(t token.Token) token.ID {
	id := token.ID(len(st.tokens)) //nolint:gosec // bounded by input size
	t.ID = id
	st.tokens = append(st.tokens, t)
	return id
}

func (st *status) result() *Result {
	index := make(map[int]token.MarkID, 2*len(st.marks))
	for i := range st.marks {
		m := &st.marks[i]
		index[m.Pair.StartIndex] = m.ID
		if !m.Single && m.Pair.Resolved() {
			index[m.Pair.EndIndex] = m.ID
		}
	}
	return &Result{
		Text:      st.text,
		Root:      0,
		Tokens:    st.tokens,
		Groups:    st.groups,
		Marks:     st.marks,
		MarkIndex: index,
		Errors:    st.errors,
	}
}

// Parse tokenizes text. It always returns a complete tree.
func Parse(text string, opts Options) *Result {
	st := newStatus(text, opts)
	st.scan()
	st.build()
	return st.result()
}

// ParseFile parses a loaded source file; diagnostics point into it.
func ParseFile(f *source.File, opts Options) *Result {
	opts.File = f.ID
	return Parse(f.Text(), opts)
}
