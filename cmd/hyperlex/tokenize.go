package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"hyperlex/internal/config"
	"hyperlex/internal/diagfmt"
	"hyperlex/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] [file|dir|-]",
	Short: "Print the token tree of a document",
	Long: `Tokenize parses a document, every .md/.markdown/.txt file of a
directory, or stdin ("-" or no argument) and prints the token tree.
Diagnostics go to stderr.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", config.FormatPretty, "output format (pretty|json|marks)")
	tokenizeCmd.Flags().Bool("show-marks", false, "annotate tokens with their mark in pretty output")
	tokenizeCmd.Flags().Int("value-width", 40, "maximum value column width in pretty output")
	tokenizeCmd.Flags().Bool("quiet", false, "do not print diagnostics")
	addParseFlags(tokenizeCmd.Flags())
}

func runTokenize(cmd *cobra.Command, args []string) error {
	target := targetArg(args)
	st, err := loadSettings(cmd, target)
	if err != nil {
		return err
	}
	showMarks, err := cmd.Flags().GetBool("show-marks")
	if err != nil {
		return fmt.Errorf("failed to get show-marks flag: %w", err)
	}
	valueWidth, err := cmd.Flags().GetInt("value-width")
	if err != nil {
		return fmt.Errorf("failed to get value-width flag: %w", err)
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	r, err := tokenizeTarget(cmd, target, st)
	if err != nil {
		return err
	}

	if !quiet {
		bag := r.diagnostics()
		if bag.Len() > 0 {
			opts := diagfmt.PrettyOpts{Color: st.stderrColor(), PathMode: diagfmt.PathModeRelative}
			if err := diagfmt.Pretty(cmd.ErrOrStderr(), bag, r.fileSet, opts); err != nil {
				return err
			}
		}
	}

	out := cmd.OutOrStdout()
	treeOpts := diagfmt.TreeOpts{Color: st.stdoutColor(), ShowMarks: showMarks, MaxValueWidth: valueWidth}
	if err := writeTrees(out, r, st.cfg.Output.Format, treeOpts); err != nil {
		return err
	}
	if timings {
		printTimings(cmd.ErrOrStderr(), r)
	}
	if code := r.exitCode(false); code != 0 {
		return exitError{code: code}
	}
	return nil
}

// writeTrees prints every parsed result. Directory runs get a header per
// file, or one JSON array.
func writeTrees(w io.Writer, r *run, format string, opts diagfmt.TreeOpts) error {
	if format == config.FormatJSON {
		if !r.dir {
			return diagfmt.FormatTreeJSON(w, r.results[0].Path, r.results[0].Result)
		}
		docs := make([]diagfmt.TreeOutput, 0, len(r.results))
		for _, res := range r.results {
			if res.Result != nil {
				docs = append(docs, diagfmt.BuildTreeOutput(res.Path, res.Result))
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	}

	for i, res := range r.results {
		if res.Result == nil {
			continue
		}
		if r.dir {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "==> %s <==\n", displayPath(r, &res))
		}
		var err error
		if format == config.FormatMarks {
			err = diagfmt.FormatMarks(w, res.Result, opts.Color)
		} else {
			err = diagfmt.FormatTreePretty(w, res.Result, opts)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// displayPath is res.Path relative to the directory that was walked.
func displayPath(r *run, res *driver.FileResult) string {
	if r.fileSet == nil || r.fileSet.BaseDir() == "" {
		return res.Path
	}
	if rel, err := filepath.Rel(r.fileSet.BaseDir(), res.Path); err == nil {
		return filepath.ToSlash(rel)
	}
	return res.Path
}
