package varimp

import "math/rand"

// SelectionStrategy produces a round's candidate triples: for each candidate
// variable, the training and scoring subsets to hand to the scoring function.
// Iteration must be repeatable and order-stable across calls with the same
// arguments; the ranking aggregator's tie-breaking depends on it.
type SelectionStrategy interface {
	Name() string

	// Candidates returns the round's candidate variable indices in a stable
	// order (ascending).
	Candidates() []int

	// Triple returns the training/scoring subsets for one candidate.
	Triple(v int) (training, scoring DataPair)

	// GenerateDatasets returns the subsets for an explicit extra selection on
	// top of the important history. Called with nil for the baseline score.
	GenerateDatasets(selected []int) (training, scoring DataPair)
}

// StrategyFactory constructs a fresh strategy for one round and bootstrap
// pass. important is the round's immutable selected-variable history;
// subsample is the resolved row count for bootstrap resampling.
type StrategyFactory func(training, scoring DataPair, nvars int, important []int, bootstrapIter, subsample int) SelectionStrategy

// baseSelection carries the state shared by the forward and backward
// variants. Row resampling (with replacement) is fixed at construction,
// seeded by the bootstrap index, so every candidate within one pass sees the
// same rows and reruns reproduce the same sample.
type baseSelection struct {
	training  DataPair
	scoring   DataPair
	nvars     int
	important []int
	rows      []int // nil = full training data, no resampling
}

func newBaseSelection(training, scoring DataPair, nvars int, important []int, bootstrapIter, subsample int) baseSelection {
	b := baseSelection{
		training:  training,
		scoring:   scoring,
		nvars:     nvars,
		important: important,
	}
	nrows := training.Inputs.NumRows()
	if subsample > 0 && subsample < nrows {
		rng := rand.New(rand.NewSource(int64(bootstrapIter)))
		rows := make([]int, subsample)
		for i := range rows {
			rows[i] = rng.Intn(nrows)
		}
		b.rows = rows
	}
	return b
}

func (b *baseSelection) candidates() []int {
	selected := make(map[int]bool, len(b.important))
	for _, v := range b.important {
		selected[v] = true
	}
	out := make([]int, 0, b.nvars-len(b.important))
	for v := 0; v < b.nvars; v++ {
		if !selected[v] {
			out = append(out, v)
		}
	}
	return out
}

func (b *baseSelection) datasets(cols []int) (DataPair, DataPair) {
	training := b.training.subsetColumns(cols)
	if b.rows != nil {
		training = training.subsetRows(b.rows)
	}
	return training, b.scoring.subsetColumns(cols)
}

// ForwardSelection builds the important set one variable at a time: each
// candidate is scored together with the variables already selected.
type ForwardSelection struct {
	baseSelection
}

// NewForwardSelection is the StrategyFactory for forward selection.
func NewForwardSelection(training, scoring DataPair, nvars int, important []int, bootstrapIter, subsample int) SelectionStrategy {
	return &ForwardSelection{newBaseSelection(training, scoring, nvars, important, bootstrapIter, subsample)}
}

func (s *ForwardSelection) Name() string { return "sequential_forward_selection" }

func (s *ForwardSelection) Candidates() []int { return s.candidates() }

func (s *ForwardSelection) Triple(v int) (DataPair, DataPair) {
	return s.GenerateDatasets([]int{v})
}

func (s *ForwardSelection) GenerateDatasets(selected []int) (DataPair, DataPair) {
	cols := make([]int, 0, len(s.important)+len(selected))
	cols = append(cols, s.important...)
	cols = append(cols, selected...)
	return s.datasets(cols)
}

// BackwardSelection removes variables one at a time from an initially
// all-important set: each candidate is scored by leaving it (and the already
// removed history) out.
type BackwardSelection struct {
	baseSelection
}

// NewBackwardSelection is the StrategyFactory for backward selection.
func NewBackwardSelection(training, scoring DataPair, nvars int, important []int, bootstrapIter, subsample int) SelectionStrategy {
	return &BackwardSelection{newBaseSelection(training, scoring, nvars, important, bootstrapIter, subsample)}
}

func (s *BackwardSelection) Name() string { return "sequential_backward_selection" }

func (s *BackwardSelection) Candidates() []int { return s.candidates() }

func (s *BackwardSelection) Triple(v int) (DataPair, DataPair) {
	return s.GenerateDatasets([]int{v})
}

func (s *BackwardSelection) GenerateDatasets(selected []int) (DataPair, DataPair) {
	drop := make(map[int]bool, len(s.important)+len(selected))
	for _, v := range s.important {
		drop[v] = true
	}
	for _, v := range selected {
		drop[v] = true
	}
	cols := make([]int, 0, s.nvars-len(drop))
	for v := 0; v < s.nvars; v++ {
		if !drop[v] {
			cols = append(cols, v)
		}
	}
	return s.datasets(cols)
}
