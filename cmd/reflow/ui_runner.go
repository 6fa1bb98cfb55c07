package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"reflow/internal/driver"
	"reflow/internal/ui"
)

type reflowOutcome struct {
	results []driver.Result
	err     error
}

func runReflowWithUI(ctx context.Context, title string, paths []string, opts driver.Options) ([]driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan reflowOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.ReflowPaths(ctx, paths, optsCopy)
		outcomeCh <- reflowOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	if uiErr != nil {
		// UI упал: дочитываем события, чтобы воркеры не застряли на канале
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
