package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"shorthand/internal/driver"
	"shorthand/internal/ui"
)

type formatOutcome struct {
	results []driver.FormatResult
	err     error
}

type lintOutcome struct {
	results []driver.LintResult
	err     error
}

func runFormatWithUI(ctx context.Context, title string, paths []string, opts driver.FormatOptions) ([]driver.FormatResult, error) {
	files, err := driver.CollectFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan formatOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		results, err := driver.FormatPaths(ctx, files, opts)
		outcomeCh <- formatOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

func runLintWithUI(ctx context.Context, title string, paths []string, opts driver.LintOptions) ([]driver.LintResult, error) {
	files, err := driver.CollectFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan lintOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		results, err := driver.LintPaths(ctx, files, opts)
		outcomeCh <- lintOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
