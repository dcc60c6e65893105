package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hyperlex/internal/prof"
)

var profileSession *prof.Session

// setupProfiling starts the profilers requested on the command line.
func setupProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	var p prof.Paths
	var err error
	if p.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if p.Mem, err = flags.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if p.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if p == (prof.Paths{}) {
		return nil
	}
	profileSession, err = prof.Start(p)
	return err
}

func stopProfiling() error {
	err := profileSession.Stop()
	profileSession = nil
	return err
}
