package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"hyperlex/internal/config"
	"hyperlex/internal/trace"
	"hyperlex/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "hyperlex",
	Short: "Tokenizer for mixed CJK and Western prose",
	Long: `hyperlex splits prose with inline Markdown into a lossless tree of
letters, punctuation, paired marks and opaque code or HTML spans.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// exitError carries a process exit status without an error message.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(diagCmd)
	rootCmd.AddCommand(versionCmd)

	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.String("config", "", "config file (default: nearest "+config.FileName+" above the input)")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics kept per file")
	flags.Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	flags.String("ui", "auto", "progress UI for directories (auto|on|off)")
	flags.Bool("timings", false, "print per-file phase timings to stderr")
	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.Int("trace-ring-size", 4096, "events kept in ring mode")
	flags.Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval (0 = off)")
	flags.String("cpu-profile", "", "write a CPU profile to this file")
	flags.String("mem-profile", "", "write a heap profile to this file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to this file")
}

func setup(cmd *cobra.Command, args []string) error {
	if err := setupTracing(cmd, args); err != nil {
		return err
	}
	return setupProfiling(cmd)
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		dumpTraceRing()
	}
	if perr := stopProfiling(); perr != nil {
		fmt.Fprintf(os.Stderr, "hyperlex: %v\n", perr)
	}
	closeTracing()

	var exit exitError
	switch {
	case errors.As(err, &exit):
		os.Exit(exit.code)
	case err != nil:
		fmt.Fprintf(os.Stderr, "hyperlex: %v\n", err)
		os.Exit(1)
	}
}

// dumpTraceRing writes the in-memory trace to stderr after a failure.
func dumpTraceRing() {
	ring := trace.FindRing(activeTracer)
	if ring == nil {
		return
	}
	fmt.Fprintln(os.Stderr, "--- trace ---")
	if err := ring.Dump(os.Stderr, trace.FormatText); err != nil {
		fmt.Fprintf(os.Stderr, "trace: dump error: %v\n", err)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}
