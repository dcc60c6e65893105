package parser

import (
	"hyperlex/internal/diag"
	"hyperlex/internal/hyper"
	"hyperlex/internal/source"
)

type Options struct {
	// Hyper finds inline markup. nil means plain prose.
	Hyper hyper.Provider
	// MaxDepth caps the mark stack; openers beyond it are plain punctuation.
	// Zero disables the cap.
	MaxDepth int
	// ReportStrayClosers logs closers that have no compatible opener anywhere
	// on the stack. They are plain punctuation either way.
	ReportStrayClosers bool
	// Reporter receives every logged problem as a diagnostic. May be nil.
	Reporter diag.Reporter
	// File is used for diagnostic spans.
	File source.FileID
}

func (o *Options) provider() hyper.Provider {
	if o.Hyper == nil {
		return hyper.None
	}
	return o.Hyper
}
