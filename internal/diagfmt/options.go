package diagfmt

import (
	"path/filepath"

	"github.com/fatih/color"

	"hyperlex/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto prints paths as they were given.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool
	PathMode         PathMode
	Max              int // truncates the output, not the Bag
}

// TreeOpts configures token tree output.
type TreeOpts struct {
	Color bool
	// ShowMarks appends the mark id and type to tokens that carry one.
	ShowMarks bool
	// MaxValueWidth caps the value column; 0 means 40 cells.
	MaxValueWidth int
}

func formatPath(f *source.File, mode PathMode, base string) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return abs
		}
	case PathModeRelative:
		if f.Flags&source.FileVirtual == 0 {
			abs, err := filepath.Abs(f.Path)
			absBase, baseErr := filepath.Abs(base)
			if err == nil && baseErr == nil {
				if rel, err := filepath.Rel(absBase, abs); err == nil {
					return filepath.ToSlash(rel)
				}
			}
		}
	case PathModeBasename:
		return filepath.Base(f.Path)
	}
	return f.Path
}

// painter returns a Sprint for attrs that ignores the global NoColor
// setting in favor of enabled.
func painter(enabled bool, attrs ...color.Attribute) func(a ...any) string {
	c := color.New(attrs...)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.SprintFunc()
}
