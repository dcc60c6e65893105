package driver

import (
	"hyperlex/internal/config"
	"hyperlex/internal/diag"
	"hyperlex/internal/hyper"
	"hyperlex/internal/markdown"
	"hyperlex/internal/observ"
	"hyperlex/internal/parser"
	"hyperlex/internal/source"
)

// Options control one driver run.
type Options struct {
	MaxDepth           int
	ReportStrayClosers bool
	// Hyper selects the mark provider: config.HyperMarkdown or config.HyperNone.
	Hyper          string
	MaxDiagnostics int
	// Jobs bounds parallel parses; zero means GOMAXPROCS.
	Jobs int
	// Extensions are the file suffixes TokenizeDir picks up.
	Extensions []string
	// Cache is optional.
	Cache *DiskCache
	// Progress receives per-file events from TokenizeDir. May be nil.
	Progress ProgressSink
}

var DefaultExtensions = []string{".md", ".markdown", ".txt"}

// OptionsFromConfig copies the parse, output and cache settings of cfg.
// The cache is opened separately with OpenDiskCache.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		MaxDepth:           cfg.Parse.MaxDepth,
		ReportStrayClosers: cfg.Parse.ReportStrayClosers,
		Hyper:              cfg.Parse.Hyper,
		MaxDiagnostics:     cfg.Output.MaxDiagnostics,
	}
}

func (o *Options) provider() hyper.Provider {
	if o.Hyper == config.HyperNone {
		return hyper.None
	}
	return markdown.Provider{}
}

func (o *Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions
	}
	return o.Extensions
}

func (o *Options) parserOptions(file source.FileID, reporter diag.Reporter) parser.Options {
	return parser.Options{
		Hyper:              o.provider(),
		MaxDepth:           o.MaxDepth,
		ReportStrayClosers: o.ReportStrayClosers,
		Reporter:           reporter,
		File:               file,
	}
}

// FileResult is the outcome for one document. Result is nil when the file
// could not be loaded; the reason is in Bag.
type FileResult struct {
	Path   string
	FileID source.FileID
	Result *parser.Result
	Bag    *diag.Bag
	Cached bool
	Timing *observ.Report
}
