package source

import (
	"fmt"

	"fortio.org/safecast"
)

// Span is a half-open byte range [Start, End) inside one file.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

// SpanOf builds a span from int offsets as produced by the parser.
// Offsets that do not fit into uint32 are clamped to the maximum value.
func SpanOf(file FileID, start, end int) Span {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		s = ^uint32(0)
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil {
		e = ^uint32(0)
	}
	return Span{File: file, Start: s, End: e}
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span containing both s and other.
// Spans of different files are not merged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Contains reports whether other lies fully inside s.
func (s Span) Contains(other Span) bool {
	return s.File == other.File && other.Start >= s.Start && other.End <= s.End
}
