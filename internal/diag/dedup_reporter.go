package diag

import "hyperlex/internal/source"

// dedupKey identifies a parse problem by what it points at. Messages are not
// part of the key: they quote the glyph at the span, so equal spans with
// equal codes already say the same thing.
type dedupKey struct {
	code  Code
	file  source.FileID
	start uint32
	end   uint32
}

// DedupReporter forwards the first report per code and span. Recovery in
// the tree builder can revisit a boundary it has already flagged; each
// problem in the document is shown once.
type DedupReporter struct {
	next       Reporter
	seen       map[dedupKey]struct{}
	suppressed int
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{
		next: next,
		seen: make(map[dedupKey]struct{}),
	}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r == nil || r.next == nil {
		return
	}
	key := dedupKey{code: code, file: primary.File, start: primary.Start, end: primary.End}
	if _, ok := r.seen[key]; ok {
		r.suppressed++
		return
	}
	r.seen[key] = struct{}{}
	r.next.Report(code, sev, primary, msg, notes)
}

// Suppressed is the number of dropped repeats.
func (r *DedupReporter) Suppressed() int {
	if r == nil {
		return 0
	}
	return r.suppressed
}
