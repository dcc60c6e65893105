package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"hyperlex/internal/driver"
	"hyperlex/internal/source"
	"hyperlex/internal/ui"
)

type dirOutcome struct {
	fileSet *source.FileSet
	results []driver.FileResult
	err     error
}

// runDirWithUI tokenizes dir while a progress screen follows the driver
// events. The screen goes to stderr so stdout stays clean for output.
func runDirWithUI(ctx context.Context, title, dir string, opts driver.Options) (*source.FileSet, []driver.FileResult, error) {
	files, err := driver.ListFiles(dir, &opts)
	if err != nil {
		return nil, nil, err
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		runOpts := opts
		runOpts.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.TokenizeDir(ctx, dir, runOpts)
		outcomeCh <- dirOutcome{fileSet: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// The screen may quit early; keep the driver from blocking on a full channel.
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
