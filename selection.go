package varimp

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Options tunes a selection run. The zero value runs every variable as a
// round, one bootstrap pass, the full data, one worker, and a
// minimum-is-best comparator.
type Options struct {
	// VariableNames overrides the registry derived from the data.
	VariableNames []string

	// Comparator wins over ScoringStrategy when set. When both are empty the
	// run uses ArgMin (smallest score is best).
	Comparator      Comparator
	ScoringStrategy string

	// Method names the run in the result; defaults to the strategy's name.
	Method string

	// NumImportant is the round count. 0 means all variables.
	NumImportant int

	// Bootstrap is the number of resampled scoring passes averaged per
	// round. 0 means 1.
	Bootstrap int

	// Subsample is the rows sampled (with replacement) per bootstrap pass:
	// a fraction of the training rows when <= 1, an absolute count when > 1.
	// 0 means the full data without resampling.
	Subsample float64

	// Jobs is the worker count. 0 means 1; a negative value resolves to the
	// host concurrency plus the value (-1 on an 8-core host gives 7).
	Jobs int
}

// SequentialForwardSelection builds the important set one variable at a
// time, each round adding whichever candidate the comparator likes best.
func SequentialForwardSelection(ctx context.Context, training, scoring DataPair, fn ScoringFn, opts Options) (*ImportanceResult, error) {
	return SequentialSelection(ctx, training, scoring, fn, NewForwardSelection, opts)
}

// SequentialBackwardSelection removes the least useful variable per round
// from an initially all-important set.
func SequentialBackwardSelection(ctx context.Context, training, scoring DataPair, fn ScoringFn, opts Options) (*ImportanceResult, error) {
	return SequentialSelection(ctx, training, scoring, fn, NewBackwardSelection, opts)
}

// SequentialSelection drives the abstract selection loop over any strategy
// factory. Every error path propagates to the caller; nothing is swallowed
// and a failed round never yields a partial result.
func SequentialSelection(ctx context.Context, training, scoring DataPair, fn ScoringFn, factory StrategyFactory, opts Options) (*ImportanceResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	training, err := VerifyDataPair(training)
	if err != nil {
		return nil, err
	}
	scoring, err = VerifyDataPair(scoring)
	if err != nil {
		return nil, err
	}

	cmp := opts.Comparator
	if cmp == nil {
		name := opts.ScoringStrategy
		if name == "" {
			name = "min"
		}
		cmp, err = ResolveComparator(name)
		if err != nil {
			return nil, err
		}
	}

	names, err := DetermineVariableNames(training, opts.VariableNames)
	if err != nil {
		return nil, err
	}
	nvars := len(names)

	nrounds := opts.NumImportant
	if nrounds <= 0 {
		nrounds = nvars
	}
	nboot := opts.Bootstrap
	if nboot <= 0 {
		nboot = 1
	}
	subsample := resolveSubsample(opts.Subsample, training.Inputs.NumRows())
	njobs := resolveWorkerCount(opts.Jobs, runtime.NumCPU())

	start := time.Now()

	// Baseline: score over zero selected variables, using the strategy's own
	// zero-candidate dataset generation.
	probe := factory(training, scoring, nvars, nil, 0, subsample)
	method := opts.Method
	if method == "" {
		method = probe.Name()
	}
	baseTrain, baseScore := probe.GenerateDatasets(nil)
	baseline, err := fn(baseTrain, baseScore)
	if err != nil {
		return nil, fmt.Errorf("varimp: baseline score: %w", err)
	}

	result := NewImportanceResult(method, names, baseline)
	emitBaseline(method, baseline, nvars, nrounds, nboot, njobs)

	important := make([]int, 0, nrounds)
	for round := 0; round < nrounds; round++ {
		if nvars-len(important) == 0 {
			return nil, fmt.Errorf("varimp: round %d of %d: %w", round+1, nrounds, ErrExhaustedCandidates)
		}
		roundStart := time.Now()

		// Bootstrap passes are strictly sequential; only candidate scoring
		// within a pass is parallel. Keeps averaging deterministic.
		var order []int
		samples := make(map[int][]float64)
		for b := 0; b < nboot; b++ {
			hist := make([]int, len(important))
			copy(hist, important)
			strat := factory(training, scoring, nvars, hist, b, subsample)

			scores, err := scoreCandidates(ctx, strat, fn, njobs)
			if err != nil {
				return nil, err
			}

			cands := strat.Candidates()
			if b == 0 {
				order = cands
			} else if !equalIntSlices(order, cands) {
				return nil, fmt.Errorf("varimp: internal: bootstrap pass %d enumerated different candidates than pass 0", b)
			}
			for _, v := range cands {
				s, ok := scores[v]
				if !ok {
					return nil, fmt.Errorf("varimp: internal: variable %d was not scored", v)
				}
				samples[v] = append(samples[v], s)
			}
			emitBootstrap(round+1, nrounds, b+1, nboot, len(cands))
		}

		orderNames := make([]string, len(order))
		avg := make(map[string]float64, len(order))
		for i, v := range order {
			orderNames[i] = names[v]
			avg[names[v]] = stat.Mean(samples[v], nil)
		}

		ranks := RankScores(orderNames, avg, cmp)

		winner := ""
		winnerIdx := -1
		for i, n := range orderNames {
			if ranks[n].Rank == 0 {
				winner = n
				winnerIdx = order[i]
				break
			}
		}

		result.addRound(ranks, winner)
		next := make([]int, 0, len(important)+1)
		next = append(next, important...)
		important = append(next, winnerIdx)

		emitRound(round+1, nrounds, winner, avg[winner], ranks, time.Since(roundStart))
	}

	emitFinish(result, time.Since(start))
	return result, nil
}

// resolveSubsample converts the subsample option into a row count: a
// fraction of nrows when <= 1, an absolute count when > 1. Zero or negative
// means the full data.
func resolveSubsample(subsample float64, nrows int) int {
	if subsample <= 0 {
		return nrows
	}
	if subsample <= 1 {
		n := int(float64(nrows) * subsample)
		if n < 1 {
			n = 1
		}
		return n
	}
	return int(subsample)
}

// resolveWorkerCount converts the jobs option into a pool size against the
// given host concurrency. Zero means 1; negative adds to ncpu.
func resolveWorkerCount(njobs, ncpu int) int {
	if njobs > 0 {
		return njobs
	}
	if njobs == 0 {
		return 1
	}
	n := ncpu + njobs
	if n < 1 {
		n = 1
	}
	return n
}

func equalIntSlices(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
