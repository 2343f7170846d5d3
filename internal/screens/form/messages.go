package form

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/qbank-ai/qbank/internal/questionbank"
)

// stageMsg reports that the running generation reached a stage.
type stageMsg struct {
	stage questionbank.Stage
}

// generatedMsg carries the outcome of the running generation.
type generatedMsg struct {
	result *questionbank.Result
	err    error
}

// runGeneration starts gen in a goroutine and returns the channel its
// progress and final outcome are delivered on. The channel is closed
// after the generatedMsg.
func runGeneration(ctx context.Context, gen Generator, req questionbank.Request) <-chan tea.Msg {
	// Three stages plus the outcome; the goroutine never blocks.
	events := make(chan tea.Msg, 4)
	go func() {
		defer close(events)
		res, err := gen.GenerateWithProgress(ctx, req, func(s questionbank.Stage) {
			events <- stageMsg{stage: s}
		})
		events <- generatedMsg{result: res, err: err}
	}()
	return events
}

// waitForEvent reads the next generation event.
func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}
