package ui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"rex/internal/driver"
	"rex/internal/source"
)

type dirOutcome struct {
	fs      *source.FileSet
	results []driver.TokenizeDirResult
	err     error
}

// RunTokenizeDir runs driver.TokenizeDir while rendering its progress to out.
func RunTokenizeDir(ctx context.Context, out io.Writer, title, dir string, opts driver.Options) (*source.FileSet, []driver.TokenizeDirResult, error) {
	files, err := driver.ListFiles(dir, opts)
	if err != nil {
		return nil, nil, err
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.TokenizeDir(ctx, dir, optsCopy)
		outcomeCh <- dirOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	if uiErr != nil {
		// дочитываем события, чтобы воркеры не заблокировались
		for range events {
		}
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
