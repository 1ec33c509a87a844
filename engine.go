package varimp

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ScoringFn scores one (training, scoring) subset pair. It must be
// deterministic and free of cross-invocation shared mutable state: the
// engine may run it concurrently from several workers.
type ScoringFn func(training, scoring DataPair) (float64, error)

type scoreJob struct {
	v        int
	training DataPair
	scoring  DataPair
}

type scoreResult struct {
	v     int
	score float64
}

// scoreCandidates evaluates the scoring function once per candidate and
// returns variable index -> score. njobs == 1 runs sequentially; njobs > 1
// runs a fixed worker pool. Both modes produce identical mappings for
// identical inputs. Any scoring failure aborts the whole evaluation and
// surfaces as a WorkerError; there are no partial results.
func scoreCandidates(ctx context.Context, strat SelectionStrategy, fn ScoringFn, njobs int) (map[int]float64, error) {
	if njobs <= 1 {
		return scoreSequential(ctx, strat, fn)
	}
	return scoreParallel(ctx, strat, fn, njobs)
}

func scoreSequential(ctx context.Context, strat SelectionStrategy, fn ScoringFn) (map[int]float64, error) {
	cands := strat.Candidates()
	out := make(map[int]float64, len(cands))
	for _, v := range cands {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		training, scoring := strat.Triple(v)
		score, err := fn(training, scoring)
		if err != nil {
			return nil, &WorkerError{Var: v, Err: err}
		}
		out[v] = score
	}
	return out, nil
}

// scoreParallel fans the candidates out over a fixed pool. The jobs channel
// is bounded at njobs so the producer never holds more in-flight subsets
// than the workers can consume. A worker error cancels the group context,
// which unblocks the producer and drains the pool instead of hanging.
func scoreParallel(ctx context.Context, strat SelectionStrategy, fn ScoringFn, njobs int) (map[int]float64, error) {
	eg, ctx := errgroup.WithContext(ctx)

	jobs := make(chan scoreJob, njobs)
	results := make(chan scoreResult, njobs)

	eg.Go(func() error {
		defer close(jobs)
		for _, v := range strat.Candidates() {
			if err := ctx.Err(); err != nil {
				return err
			}
			training, scoring := strat.Triple(v)
			select {
			case jobs <- scoreJob{v: v, training: training, scoring: scoring}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	var wg sync.WaitGroup
	wg.Add(njobs)
	for i := 0; i < njobs; i++ {
		eg.Go(func() error {
			defer wg.Done()
			for job := range jobs {
				score, err := fn(job.training, job.scoring)
				if err != nil {
					return &WorkerError{Var: job.v, Err: err}
				}
				select {
				case results <- scoreResult{v: job.v, score: score}:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	// Completion order is irrelevant: results reassemble by key.
	out := make(map[int]float64)
	for r := range results {
		out[r.v] = r.score
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
