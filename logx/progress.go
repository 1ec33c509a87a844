package logx

import (
	"fmt"
	"time"
)

const eventSep = "═══════════════════════════════════════════════════════════════════"

// LogBaseline - run header with the baseline (zero-important) score
func LogBaseline(method string, baseline float64, nvars, rounds, bootstrap, jobs int) {
	fmt.Printf("%s  %s  %s: vars=%d rounds=%d bootstrap=%d jobs=%d baseline=%s\n",
		C(gray, time.Now().UTC().Format("15:04:05Z")),
		Channel("PROG"),
		method, nvars, rounds, bootstrap, jobs,
		ScoreColor(baseline),
	)
}

// LogBootstrap - one bootstrap pass finished within a round
func LogBootstrap(round, totalRounds, iter, totalIters, scored int) {
	fmt.Printf("%s  %s  round %d/%d pass %d/%d: scored %d candidates\n",
		C(gray, time.Now().UTC().Format("15:04:05Z")),
		Channel("BOOT"),
		round, totalRounds, iter, totalIters, scored,
	)
}

// LogRoundResult - round completion line with the winning variable
func LogRoundResult(round, totalRounds int, winner string, score float64, elapsed time.Duration) {
	fmt.Printf("%s  %s  round %d/%d: winner=%s score=%s elapsed=%s\n",
		C(gray, time.Now().UTC().Format("15:04:05Z")),
		Channel("RND "),
		round, totalRounds,
		Highlight(winner), ScoreColor(score), formatDuration(elapsed),
	)
}

// LogRoundBlock - verbose round event block (used by the demo's -verbose mode)
func LogRoundBlock(round int, winner string, score float64, candidates int) {
	fmt.Printf("%s\n%s  [RND ]  ROUND COMPLETE\nRound:        %d\nCandidates:   %d\nWinner:       %s\nScore:        %.6f\n%s\n",
		eventSep,
		C(cyan, time.Now().UTC().Format("15:04:05.000Z")),
		round,
		candidates,
		winner,
		score,
		eventSep,
	)
}

// LogFinish - run completion summary
func LogFinish(rounds int, elapsed time.Duration) {
	fmt.Printf("%s  %s  done: %d rounds in %s\n",
		C(gray, time.Now().UTC().Format("15:04:05Z")),
		Channel("PROG"),
		rounds, formatDuration(elapsed),
	)
}

// LogWorkerFailure - a scoring task failed; the run is aborting
func LogWorkerFailure(variable string, err error) {
	fmt.Printf("%s  %s  %s scoring %s failed: %v\n",
		C(gray, time.Now().UTC().Format("15:04:05Z")),
		Channel("ENG "),
		Error("✗"), variable, err,
	)
}

// LogValidation - data validation outcome
func LogValidation(passed bool, detail string) {
	fmt.Printf("%s  %s  %s %s\n",
		C(gray, time.Now().UTC().Format("15:04:05Z")),
		Channel("VAL "),
		Checkmark(passed), detail,
	)
}

// formatDuration formats a duration in a human-readable way
// Shows hours, minutes, and seconds (e.g., "1h23m45s" or "45m32s" or "23s")
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", hours, minutes)
}

// formatNumber adds thousands separators (1234567 -> "1,234,567")
func formatNumber(n int) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return formatNumber(n/1000) + fmt.Sprintf(",%03d", n%1000)
}
