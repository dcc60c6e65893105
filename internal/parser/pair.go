package parser

import (
	"unicode/utf8"

	"hyperlex/internal/chartype"
	"hyperlex/internal/diag"
	"hyperlex/internal/hyper"
	"hyperlex/internal/token"
)

// scan is the pairing pass.
func (st *status) scan() {
	text := st.text
	for i := 0; i < len(text); {
		if e, ok := st.hyperMarks[i]; ok {
			if next, handled := st.handleHyper(i, e); handled {
				i = next
				continue
			}
		}

		r, size := utf8.DecodeRuneInString(text[i:])
		ct := chartype.Classify(r)
		switch {
		case ct == chartype.Space:
			i = st.appendSpace(i)
			continue
		case ct.IsLetter():
			st.appendLetter(i, size, ct)
		case r == '\'' && st.isShorthand(i):
			st.appendLetter(i, size, chartype.WesternLetter)
		default:
			st.handlePunctuation(i, r, size, ct)
		}
		i += size
	}

	for len(st.markStack) > 0 {
		st.dropUnmatched()
	}
}

// appendSpace consumes a whitespace run starting at i and attaches it to the
// preceding lexeme. Space before the first lexeme is kept as leading space.
func (st *status) appendSpace(i int) int {
	j := i
	for j < len(st.text) {
		r, size := utf8.DecodeRuneInString(st.text[j:])
		if chartype.Classify(r) != chartype.Space {
			break
		}
		j += size
	}
	if lx := st.last(); lx != nil {
		lx.spaceAfter = st.text[lx.end() : j]
	} else {
		st.leading = st.text[:j]
	}
	return j
}

// appendLetter extends the previous letter run when it is adjacent and of the
// same type, otherwise starts a new lexeme.
func (st *status) appendLetter(i, size int, ct chartype.CharType) {
	typ := token.FromChar(ct)
	if lx := st.last(); lx != nil && lx.typ == typ && lx.mark == token.NoMark &&
		lx.spaceAfter == "" && lx.end() == i {
		lx.value = st.text[lx.index : i+size]
		return
	}
	st.push(lexeme{typ: typ, index: i, value: st.text[i : i+size], mark: token.NoMark})
}

// isShorthand reports an apostrophe that belongs to a word: don't, students',
// '90s.
func (st *status) isShorthand(i int) bool {
	text := st.text
	prevWestern := false
	if i > 0 {
		prev, _ := utf8.DecodeLastRuneInString(text[:i])
		prevWestern = chartype.Classify(prev) == chartype.WesternLetter
	}
	nextWestern := false
	if i+1 < len(text) {
		next, _ := utf8.DecodeRuneInString(text[i+1:])
		nextWestern = chartype.Classify(next) == chartype.WesternLetter
	}

	switch {
	case prevWestern && nextWestern:
		return true
	case prevWestern:
		return !st.pending("'")
	case i+2 < len(text) && isDigit(text[i+1]) && isDigit(text[i+2]):
		return true
	}
	return false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// pending reports whether an opener with the given value waits on the stack.
func (st *status) pending(value string) bool {
	for _, id := range st.markStack {
		if st.marks[id].Pair.StartValue == value {
			return true
		}
	}
	return false
}

func (st *status) top() (token.MarkID, bool) {
	if len(st.markStack) == 0 {
		return token.NoMark, false
	}
	return st.markStack[len(st.markStack)-1], true
}

func markTypeOf(ct chartype.CharType) (token.MarkType, token.Type) {
	if ct == chartype.HalfwidthBracket || ct == chartype.FullwidthBracket {
		return token.MarkBrackets, token.BracketMark
	}
	return token.MarkQuotation, token.FromChar(ct)
}

func (st *status) handlePunctuation(i int, r rune, size int, ct chartype.CharType) {
	value := st.text[i : i+size]
	switch chartype.PairSide(r) {
	case chartype.SideOpen:
		st.openMark(i, value, ct)
	case chartype.SideClose:
		if id, ok := st.top(); ok && st.closes(id, r) {
			st.closeMark(id, i, value)
			return
		}
		st.strayCloser(i, value, r, ct)
	case chartype.SideEither:
		if id, ok := st.top(); ok && st.marks[id].Pair.StartValue == value {
			st.closeMark(id, i, value)
			return
		}
		st.openMark(i, value, ct)
	default:
		st.push(lexeme{typ: token.FromChar(ct), index: i, value: value, mark: token.NoMark})
	}
}

// closes reports whether glyph r closes the bracket or quotation mark id.
func (st *status) closes(id token.MarkID, r rune) bool {
	m := &st.marks[id]
	if m.Type != token.MarkBrackets && m.Type != token.MarkQuotation {
		return false
	}
	open, _ := utf8.DecodeRuneInString(m.Pair.StartValue)
	return chartype.Closer(open) == r
}

func (st *status) depthExceeded(i, size int) bool {
	if st.opts.MaxDepth <= 0 || len(st.markStack) < st.opts.MaxDepth {
		return false
	}
	if !st.depthHit {
		st.depthHit = true
		st.report(diag.ParseDepthExceeded, diag.SevWarning, i, i+size,
			"nesting deeper than %d at %d; further openers are plain punctuation", st.opts.MaxDepth, i)
	}
	return true
}

func (st *status) openMark(i int, value string, ct chartype.CharType) {
	if st.depthExceeded(i, len(value)) {
		st.push(lexeme{typ: token.FromChar(ct), index: i, value: value, mark: token.NoMark})
		return
	}
	markType, typ := markTypeOf(ct)
	id := st.newMark(markType, token.NewPair(i, value), "", false)
	st.markStack = append(st.markStack, id)
	st.markLexeme[id] = st.push(lexeme{typ: typ, index: i, value: value, mark: id, side: token.SideLeft})
}

// closeMark resolves id, which must be on top of the stack.
func (st *status) closeMark(id token.MarkID, i int, value string) {
	m := &st.marks[id]
	m.Pair.EndIndex = i
	m.Pair.EndValue = value
	st.markStack = st.markStack[:len(st.markStack)-1]
	typ := st.lexemes[st.markLexeme[id]].typ
	st.push(lexeme{typ: typ, index: i, value: value, mark: id, side: token.SideRight})
}

func (st *status) strayCloser(i int, value string, r rune, ct chartype.CharType) {
	st.push(lexeme{typ: token.FromChar(ct), index: i, value: value, mark: token.NoMark})
	if !st.opts.ReportStrayClosers {
		return
	}
	for _, id := range st.markStack {
		if st.closes(id, r) {
			return
		}
	}
	st.report(diag.ParseUnmatchedCloser, diag.SevWarning, i, i+len(value),
		"closing %q at %d has no opener", value, i)
}

// dropUnmatched finalizes the top of the stack as unmatched.
func (st *status) dropUnmatched() {
	id := st.markStack[len(st.markStack)-1]
	st.markStack = st.markStack[:len(st.markStack)-1]
	m := &st.marks[id]
	st.lexemes[st.markLexeme[id]].typ = token.Unmatched
	st.report(diag.ParseUnmatchedOpener, diag.SevWarning, m.Pair.StartIndex, m.Pair.InnerStart(),
		"unmatched %q at %d", m.Pair.StartValue, m.Pair.StartIndex)
}

func (st *status) validRange(r hyper.Range, from int) bool {
	return r.Start >= from && r.End > r.Start && r.End <= len(st.text)
}

// handleHyper applies the provider mark met at offset i. It reports false
// when the glyphs should be scanned as ordinary text instead.
func (st *status) handleHyper(i int, e hyper.Entry) (int, bool) {
	m := e.Mark
	meta := m.Kind.String()
	text := st.text

	switch m.Kind {
	case hyper.MarkPairWithCode:
		if e.IsEnd || !st.validRange(m.Start, i) || !st.validRange(m.End, m.Start.End) {
			return 0, false
		}
		pair := token.Pair{
			StartIndex: m.Start.Start, StartValue: text[m.Start.Start:m.Start.End],
			EndIndex: m.End.Start, EndValue: text[m.End.Start:m.End.End],
		}
		span := text[m.Start.Start:m.End.End]
		id := st.newMark(token.MarkRaw, pair, meta, false)
		st.push(lexeme{typ: ResolveContentType(span), index: i, value: span, mark: id})
		return m.End.End, true

	case hyper.SingleMark, hyper.SingleMarkConnect:
		if !st.validRange(m.Start, i) {
			return 0, false
		}
		span := text[m.Start.Start:m.Start.End]
		pair := token.Pair{StartIndex: i, StartValue: span, EndIndex: m.Start.End}
		markType, typ := token.MarkRaw, ResolveContentType(span)
		if m.Kind == hyper.SingleMarkConnect {
			markType, typ = token.MarkHyper, token.HyperMark
		}
		id := st.newMark(markType, pair, meta, true)
		st.push(lexeme{typ: typ, index: i, value: span, mark: id})
		return m.Start.End, true

	case hyper.MarkPair:
		if !e.IsEnd {
			return st.openHyper(i, e)
		}
		return st.closeHyper(i, e)
	}
	return 0, false
}

func (st *status) openHyper(i int, e hyper.Entry) (int, bool) {
	m := e.Mark
	if !st.validRange(m.Start, i) || !st.validRange(m.End, m.Start.End) {
		st.hyperSkip[e.Index] = true
		return 0, false
	}
	value := st.text[m.Start.Start:m.Start.End]
	if st.depthExceeded(i, len(value)) {
		st.hyperSkip[e.Index] = true
		return 0, false
	}
	id := st.newMark(token.MarkHyper, token.NewPair(i, value), m.Kind.String(), false)
	st.markStack = append(st.markStack, id)
	st.hyperOpen[e.Index] = id
	st.markLexeme[id] = st.push(lexeme{typ: token.HyperMark, index: i, value: value, mark: id, side: token.SideLeft})
	return m.Start.End, true
}

// closeHyper resolves a hyper pair. The provider is authoritative about
// Markdown structure, so marks opened after the hyper opener and still
// pending are finalized as unmatched first.
func (st *status) closeHyper(i int, e hyper.Entry) (int, bool) {
	m := e.Mark
	if st.hyperSkip[e.Index] || !st.validRange(m.End, i) {
		return 0, false
	}
	value := st.text[m.End.Start:m.End.End]
	id, opened := st.hyperOpen[e.Index]
	pos := -1
	if opened {
		for k := len(st.markStack) - 1; k >= 0; k-- {
			if st.markStack[k] == id {
				pos = k
				break
			}
		}
	}
	if pos < 0 {
		st.push(lexeme{typ: token.HyperMark, index: i, value: value, mark: token.NoMark})
		return m.End.End, true
	}
	for len(st.markStack)-1 > pos {
		st.dropUnmatched()
	}
	st.closeMark(id, i, value)
	return m.End.End, true
}
