package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"hyperlex/internal/diag"
	"hyperlex/internal/driver"
	"hyperlex/internal/source"
)

// run is one tokenized input: a single file, stdin, or a directory.
type run struct {
	fileSet *source.FileSet
	results []driver.FileResult
	dir     bool
}

// tokenizeTarget tokenizes target, which may be "-" for stdin, a file or a
// directory. Directories show a progress screen when the UI mode allows it.
func tokenizeTarget(cmd *cobra.Command, target string, st *settings) (*run, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if target == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		fs, res := driver.TokenizeText(ctx, "<stdin>", data, st.opts)
		return &run{fileSet: fs, results: []driver.FileResult{*res}}, nil
	}

	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", target, err)
	}
	if !info.IsDir() {
		fs, res, err := driver.Tokenize(ctx, target, st.opts)
		if err != nil {
			return nil, fmt.Errorf("tokenization failed: %w", err)
		}
		return &run{fileSet: fs, results: []driver.FileResult{*res}}, nil
	}

	var (
		fs      *source.FileSet
		results []driver.FileResult
	)
	if shouldUseTUI(st.ui) {
		fs, results, err = runDirWithUI(ctx, "tokenizing "+target, target, st.opts)
	} else {
		fs, results, err = driver.TokenizeDir(ctx, target, st.opts)
	}
	if err != nil {
		return nil, fmt.Errorf("tokenization failed: %w", err)
	}
	return &run{fileSet: fs, results: results, dir: true}, nil
}

// diagnostics merges the bags of every result in path order.
func (r *run) diagnostics() *diag.Bag {
	bag := diag.NewBag(0)
	for _, res := range r.results {
		if res.Bag != nil {
			bag.Merge(res.Bag)
		}
	}
	bag.Sort()
	return bag
}

// exitCode is 1 when any diagnostic is an error, or a warning with
// warningsAsErrors set.
func (r *run) exitCode(warningsAsErrors bool) int {
	for _, res := range r.results {
		if res.Bag == nil {
			continue
		}
		if res.Bag.HasErrors() || (warningsAsErrors && res.Bag.HasWarnings()) {
			return 1
		}
	}
	return 0
}

func targetArg(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}

// printTimings writes the phase report of each result to w.
func printTimings(w io.Writer, r *run) {
	for _, res := range r.results {
		if res.Timing == nil {
			continue
		}
		fmt.Fprintf(w, "%s: %.2fms", res.Path, res.Timing.TotalMS)
		if res.Cached {
			fmt.Fprint(w, " (cached)")
		}
		fmt.Fprintln(w)
		for _, p := range res.Timing.Phases {
			fmt.Fprintf(w, "  %-10s %8.2fms", p.Name, p.DurationMS)
			if p.Note != "" {
				fmt.Fprintf(w, "  %s", p.Note)
			}
			fmt.Fprintln(w)
		}
	}
}
