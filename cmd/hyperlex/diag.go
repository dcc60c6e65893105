package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"hyperlex/internal/diag"
	"hyperlex/internal/diagfmt"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] [file|dir|-]",
	Short: "Report unmatched marks and other parse problems",
	Long: `Diag tokenizes its input and prints only the diagnostics. The exit
status is 1 when any error is found.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDiag,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	diagCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	diagCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	diagCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	diagCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	addParseFlags(diagCmd.Flags())
}

type diagFlags struct {
	format           string
	noWarnings       bool
	warningsAsErrors bool
	withNotes        bool
	fullPath         bool
}

func readDiagFlags(cmd *cobra.Command) (diagFlags, error) {
	var f diagFlags
	var err error
	if f.format, err = cmd.Flags().GetString("format"); err != nil {
		return f, fmt.Errorf("failed to get format flag: %w", err)
	}
	f.format = strings.ToLower(f.format)
	if f.noWarnings, err = cmd.Flags().GetBool("no-warnings"); err != nil {
		return f, fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	if f.warningsAsErrors, err = cmd.Flags().GetBool("warnings-as-errors"); err != nil {
		return f, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if f.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return f, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if f.fullPath, err = cmd.Flags().GetBool("fullpath"); err != nil {
		return f, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	if f.noWarnings && f.warningsAsErrors {
		return f, fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	switch f.format {
	case "pretty", "json", "short":
	default:
		return f, fmt.Errorf("unknown format: %s", f.format)
	}
	return f, nil
}

func runDiag(cmd *cobra.Command, args []string) error {
	flags, err := readDiagFlags(cmd)
	if err != nil {
		return err
	}
	target := targetArg(args)
	st, err := loadSettings(cmd, target)
	if err != nil {
		return err
	}
	r, err := tokenizeTarget(cmd, target, st)
	if err != nil {
		return err
	}

	bag := r.diagnostics()
	if flags.noWarnings {
		bag = filterSeverity(bag, diag.SevError)
	}
	pathMode := diagfmt.PathModeRelative
	if flags.fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	out := cmd.OutOrStdout()
	switch flags.format {
	case "json":
		err = diagfmt.JSON(out, bag, r.fileSet, diagfmt.JSONOpts{IncludePositions: true, PathMode: pathMode})
	case "short":
		err = diagfmt.Short(out, bag, r.fileSet, pathMode)
	default:
		err = diagfmt.Pretty(out, bag, r.fileSet, diagfmt.PrettyOpts{
			Color:     st.stdoutColor(),
			PathMode:  pathMode,
			ShowNotes: flags.withNotes,
		})
	}
	if err != nil {
		return err
	}
	if code := r.exitCode(flags.warningsAsErrors); code != 0 {
		return exitError{code: code}
	}
	return nil
}

// filterSeverity keeps diagnostics at or above floor.
func filterSeverity(bag *diag.Bag, floor diag.Severity) *diag.Bag {
	out := diag.NewBag(bag.Len())
	for _, d := range bag.Items() {
		if d.Severity >= floor {
			out.Add(d)
		}
	}
	return out
}
