package logx

import (
	"fmt"
	"time"

	"hb_varimp/tui"
)

// Convenience functions that forward to TUI

func LogRoundWinner(round int, winner string, score float64) {
	event := tui.Event{
		Timestamp: time.Now(),
		Type:      "ROUND",
		Severity:  "info",
		Message:   fmt.Sprintf("Round %d selected %s (score=%.4f)", round, winner, score),
	}
	tui.PushEvent(event)
}

func LogBootstrapPass(round, iter, totalIters int) {
	event := tui.Event{
		Timestamp: time.Now(),
		Type:      "BOOT",
		Severity:  "info",
		Message:   fmt.Sprintf("Round %d bootstrap pass %d/%d done", round, iter, totalIters),
	}
	tui.PushEvent(event)
}

func LogWorkerFailureEvent(variable string, err error) {
	event := tui.Event{
		Timestamp: time.Now(),
		Type:      "WORKER",
		Severity:  "error",
		Message:   fmt.Sprintf("Scoring %s failed: %v", variable, err),
	}
	tui.PushEvent(event)
}

func LogSelectionDone(rounds int, elapsed time.Duration) {
	event := tui.Event{
		Timestamp: time.Now(),
		Type:      "DONE",
		Severity:  "info",
		Message:   fmt.Sprintf("Selection finished: %d rounds in %s", rounds, FormatDuration(elapsed)),
	}
	tui.PushEvent(event)
}

func LogSlowRound(round int, elapsed time.Duration) {
	event := tui.Event{
		Timestamp: time.Now(),
		Type:      "SLOW",
		Severity:  "warning",
		Message:   fmt.Sprintf("Round %d took %s", round, FormatDuration(elapsed)),
	}
	tui.PushEvent(event)
}
