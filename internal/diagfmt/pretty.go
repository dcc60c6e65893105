package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"hyperlex/internal/diag"
	"hyperlex/internal/source"
)

const tabWidth = 4

// Pretty writes each diagnostic of bag as
//
//	<path>:<line>:<col>: <severity> <CODE>: <message>
//	  <line> | <source line>
//	         | ^~~~
//
// Callers sort the bag first if they want positional order.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	for _, d := range bag.Items() {
		if err := prettyOne(w, &d, fs, opts); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) error {
	bold := painter(opts.Color, color.Bold)
	sev := painter(opts.Color, severityColor(d.Severity), color.Bold)

	if fs == nil || int(d.Primary.File) >= fs.Len() {
		_, err := fmt.Fprintf(w, "%s %s: %s\n", sev(strings.ToLower(d.Severity.String())), bold(d.Code.ID()), d.Message)
		return err
	}
	f := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)
	if _, err := fmt.Fprintf(w, "%s: %s %s: %s\n",
		bold(fmt.Sprintf("%s:%d:%d", formatPath(f, opts.PathMode, fs.BaseDir()), start.Line, start.Col)),
		sev(strings.ToLower(d.Severity.String())), bold(d.Code.ID()), d.Message); err != nil {
		return err
	}
	if err := snippet(w, f, start, end, sev, opts.Color); err != nil {
		return err
	}

	if !opts.ShowNotes {
		return nil
	}
	note := painter(opts.Color, color.FgCyan, color.Bold)
	for _, n := range d.Notes {
		ns, _ := fs.Resolve(n.Span)
		if _, err := fmt.Fprintf(w, "  %s %d:%d: %s\n", note("note:"), ns.Line, ns.Col, n.Msg); err != nil {
			return err
		}
	}
	return nil
}

// snippet prints the primary line with a caret underline measured in display
// cells, so CJK text lines up.
func snippet(w io.Writer, f *source.File, start, end source.LineCol, mark func(...any) string, colored bool) error {
	line := f.GetLine(start.Line)
	startCol := clampCol(line, start.Col)
	endCol := len(line)
	if end.Line == start.Line {
		endCol = clampCol(line, end.Col)
	}
	if endCol < startCol {
		endCol = startCol
	}

	prefix := displayWidth(line[:startCol])
	width := max(displayWidth(line[startCol:endCol]), 1)
	gutter := fmt.Sprintf("%d", start.Line)
	dim := painter(colored, color.FgBlue, color.Bold)

	_, err := fmt.Fprintf(w, "  %s %s %s\n  %s %s %s%s\n",
		dim(gutter), dim("|"), expandTabs(line),
		strings.Repeat(" ", len(gutter)), dim("|"),
		strings.Repeat(" ", prefix), mark("^"+strings.Repeat("~", width-1)))
	return err
}

// clampCol converts a 1-based byte column into an offset within line.
func clampCol(line string, col uint32) int {
	off := int(col) - 1
	if off < 0 {
		return 0
	}
	if off > len(line) {
		return len(line)
	}
	return off
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func displayWidth(s string) int {
	return runewidth.StringWidth(expandTabs(s))
}

func severityColor(s diag.Severity) color.Attribute {
	switch s {
	case diag.SevError:
		return color.FgRed
	case diag.SevWarning:
		return color.FgYellow
	default:
		return color.FgCyan
	}
}

// Short writes one line per diagnostic without source snippets.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode) error {
	for _, d := range bag.Items() {
		loc := ""
		if fs != nil && int(d.Primary.File) < fs.Len() {
			start, _ := fs.Resolve(d.Primary)
			loc = fmt.Sprintf("%s:%d:%d: ", formatPath(fs.Get(d.Primary.File), mode, fs.BaseDir()), start.Line, start.Col)
		}
		if _, err := fmt.Fprintf(w, "%s%s %s: %s\n", loc, strings.ToLower(d.Severity.String()), d.Code.ID(), d.Message); err != nil {
			return err
		}
	}
	return nil
}
