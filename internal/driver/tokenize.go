package driver

import (
	"context"
	"fmt"
	"strconv"

	"hyperlex/internal/diag"
	"hyperlex/internal/observ"
	"hyperlex/internal/parser"
	"hyperlex/internal/source"
	"hyperlex/internal/trace"
)

// Tokenize loads and parses one file.
func Tokenize(ctx context.Context, path string, opts Options) (*source.FileSet, *FileResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	res := tokenizeFile(ctx, fs.Get(fileID), opts)
	return fs, &res, nil
}

// TokenizeText parses an in-memory document, such as stdin.
func TokenizeText(ctx context.Context, name string, content []byte, opts Options) (*source.FileSet, *FileResult) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	res := tokenizeFile(ctx, fs.Get(fileID), opts)
	return fs, &res
}

// tokenizeFile parses f, going through the cache when one is configured.
// It is safe to call concurrently for different files.
func tokenizeFile(ctx context.Context, f *source.File, opts Options) FileResult {
	ctx, span := trace.BeginCtx(ctx, trace.ScopeFile, "file:"+f.Path)
	timer := observ.NewTimer()
	bag := diag.NewBag(opts.MaxDiagnostics)
	out := FileResult{Path: f.Path, FileID: f.ID, Bag: bag}

	key := cacheKey(f, &opts)
	if opts.Cache != nil {
		idx := timer.Begin("cache")
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		switch {
		case err != nil:
			bag.Add(diag.Diagnostic{
				Severity: diag.SevWarning,
				Code:     diag.CacheError,
				Message:  "cache read failed: " + err.Error(),
				Primary:  source.Span{File: f.ID},
			})
		case hit && payload.Schema == diskCacheSchemaVersion:
			out.Result = payload.Result
			out.Cached = true
			for _, d := range payload.Diagnostics {
				d.Primary.File = f.ID
				bag.Add(d)
			}
		}
		timer.End(idx, strconv.FormatBool(out.Cached))
	}

	suppressed := 0
	if out.Result == nil {
		idx := timer.Begin("parse")
		reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
		out.Result = parser.ParseFile(f, opts.parserOptions(f.ID, reporter))
		suppressed = reporter.Suppressed()
		timer.End(idx, "")

		if opts.Cache != nil {
			idx = timer.Begin("cache-store")
			payload := &DiskPayload{Schema: diskCacheSchemaVersion, Result: out.Result, Diagnostics: parseDiagnostics(bag)}
			if err := opts.Cache.Put(key, payload); err != nil {
				bag.Add(diag.Diagnostic{
					Severity: diag.SevWarning,
					Code:     diag.CacheError,
					Message:  "cache write failed: " + err.Error(),
					Primary:  source.Span{File: f.ID},
				})
			}
			timer.End(idx, "")
		}
	}

	tracer := trace.FromContext(ctx)
	for _, d := range bag.Items() {
		trace.Point(tracer, trace.ScopeMark, d.Code.ID(), span.ID(), d.Message)
	}
	report := timer.Report()
	out.Timing = &report
	span.WithExtra("tokens", strconv.Itoa(len(out.Result.Tokens))).
		WithExtra("marks", strconv.Itoa(len(out.Result.Marks))).
		WithExtra("cached", strconv.FormatBool(out.Cached)).
		WithExtra("flags", f.Flags.String()).
		WithExtra("suppressed", strconv.Itoa(suppressed)).
		End("")
	return out
}

// parseDiagnostics drops cache warnings, which describe this run only.
func parseDiagnostics(bag *diag.Bag) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, d := range bag.Items() {
		if d.Code != diag.CacheError {
			out = append(out, d)
		}
	}
	return out
}
