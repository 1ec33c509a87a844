package varimp

import (
	"sort"
	"sync"
	"time"

	"hb_varimp/logx"
	"hb_varimp/tui"
)

// Progress reporting is off by default so the library stays quiet when
// embedded. The demo turns the surfaces on before running.
var (
	consoleProgress = false
	tuiProgress     = false
)

// EnableConsoleProgress turns the logx progress lines on or off.
func EnableConsoleProgress(enabled bool) {
	consoleProgress = enabled
}

// EnableTUIProgress routes run state into the terminal dashboard. The caller
// is responsible for tui.Start / tui.Stop.
func EnableTUIProgress(enabled bool) {
	tuiProgress = enabled
}

// runState tracks the live run for the TUI and web observers. One selection
// run is observed at a time; concurrent library use just skips reporting.
type runState struct {
	mu sync.Mutex

	method    string
	startTime time.Time

	nvars       int
	totalRounds int
	totalBoot   int

	baseline float64
	scored   int64
	winners  []string

	bestScore    float64
	bestVariable string
	ranking      []tui.RankLine
}

var state runState

func emitBaseline(method string, baseline float64, nvars, nrounds, nboot, njobs int) {
	state.mu.Lock()
	state.method = method
	state.startTime = time.Now()
	state.nvars = nvars
	state.totalRounds = nrounds
	state.totalBoot = nboot
	state.baseline = baseline
	state.scored = 0
	state.winners = nil
	state.bestScore = baseline
	state.bestVariable = ""
	state.ranking = nil
	state.mu.Unlock()

	if consoleProgress {
		logx.LogBaseline(method, baseline, nvars, nrounds, nboot, njobs)
	}
	if tuiProgress {
		tui.PushState(state.snapshot())
	}
	SendBaseline(method, baseline, nvars, nrounds, nboot, njobs)
}

func emitBootstrap(round, totalRounds, iter, totalIters, scored int) {
	state.mu.Lock()
	state.scored += int64(scored)
	state.mu.Unlock()

	if consoleProgress {
		logx.LogBootstrap(round, totalRounds, iter, totalIters, scored)
	}
	if tuiProgress {
		logx.LogBootstrapPass(round, iter, totalIters)
		s := state.snapshot()
		s.Round = round
		s.Bootstrap = iter
		tui.PushState(s)
	}
	SendBootstrap(round, totalRounds, iter, totalIters, scored)
}

func emitRound(round, totalRounds int, winner string, score float64, ranks map[string]VariableRank, elapsed time.Duration) {
	state.mu.Lock()
	state.winners = append(state.winners, winner)
	state.bestScore = score
	state.bestVariable = winner
	state.ranking = rankLines(ranks)
	scored := state.scored
	rate := 0.0
	if sec := time.Since(state.startTime).Seconds(); sec > 0 {
		rate = float64(scored) / sec
	}
	state.mu.Unlock()

	if consoleProgress {
		logx.LogRoundResult(round, totalRounds, winner, score, elapsed)
	}
	if tuiProgress {
		logx.LogRoundWinner(round, winner, score)
		s := state.snapshot()
		s.Round = round
		s.Bootstrap = s.TotalBootstrap
		tui.PushState(s)
	}
	SendRoundResult(round, totalRounds, winner, score, elapsed, rate, scored)
	SendRanking(round, ranks)
}

func emitFinish(result *ImportanceResult, elapsed time.Duration) {
	if consoleProgress {
		logx.LogFinish(result.NumRounds(), elapsed)
	}
	if tuiProgress {
		logx.LogSelectionDone(result.NumRounds(), elapsed)
	}
	SendFinish(result, elapsed)
}

func (s *runState) snapshot() tui.StateSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	rate := 0.0
	if sec := time.Since(s.startTime).Seconds(); sec > 0 {
		rate = float64(s.scored) / sec
	}
	winners := make([]string, len(s.winners))
	copy(winners, s.winners)
	ranking := make([]tui.RankLine, len(s.ranking))
	copy(ranking, s.ranking)

	return tui.StateSnapshot{
		Title:            "varimp",
		Method:           s.method,
		StartTime:        s.startTime,
		TotalRounds:      s.totalRounds,
		Round:            len(winners),
		TotalBootstrap:   s.totalBoot,
		CandidatesScored: s.scored,
		RatePerSec:       rate,
		BaselineScore:    s.baseline,
		BestScore:        s.bestScore,
		BestVariable:     s.bestVariable,
		Winners:          winners,
		CurrentRanking:   ranking,
	}
}

// rankLines converts a round's rank map to display order (best first).
func rankLines(ranks map[string]VariableRank) []tui.RankLine {
	lines := make([]tui.RankLine, 0, len(ranks))
	for name, vr := range ranks {
		lines = append(lines, tui.RankLine{Rank: vr.Rank, Variable: name, Score: vr.Score})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Rank < lines[j].Rank })
	return lines
}
