package varimp

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
)

// TestResolveWorkerCount covers the jobs option resolution table
func TestResolveWorkerCount(t *testing.T) {
	cases := []struct {
		njobs, ncpu, want int
	}{
		{3, 8, 3},   // positive passes through
		{0, 8, 1},   // zero value means one worker
		{-1, 8, 7},  // negative adds to host concurrency
		{-8, 8, 1},  // never below one
		{-20, 8, 1}, // never below one
	}
	for _, c := range cases {
		if got := resolveWorkerCount(c.njobs, c.ncpu); got != c.want {
			t.Errorf("FAIL: resolveWorkerCount(%d, %d) = %d, want %d", c.njobs, c.ncpu, got, c.want)
		}
	}
}

// TestResolveSubsample covers fraction vs absolute interpretation
func TestResolveSubsample(t *testing.T) {
	cases := []struct {
		subsample float64
		nrows     int
		want      int
	}{
		{0, 100, 100},    // zero means full data
		{-1, 100, 100},   // negative means full data
		{0.5, 100, 50},   // fraction of rows
		{1, 100, 100},    // fraction boundary
		{0.001, 100, 1},  // tiny fraction clamps to one row
		{10, 100, 10},    // absolute count
		{250, 100, 250},  // absolute count is not clamped here
	}
	for _, c := range cases {
		if got := resolveSubsample(c.subsample, c.nrows); got != c.want {
			t.Errorf("FAIL: resolveSubsample(%v, %d) = %d, want %d", c.subsample, c.nrows, got, c.want)
		}
	}
}

// TestForwardSelectionEndToEnd runs forward selection on the constant-column
// table with a sum score and max comparator. Column values 1, 2, 4 make every
// round's winner predictable: C first, then B, then A.
func TestForwardSelectionEndToEnd(t *testing.T) {
	fmt.Println("\n========================================")
	fmt.Println("Test: forward selection end to end")
	fmt.Println("========================================")

	pair := makeTestPair(6)
	opts := Options{ScoringStrategy: "max", Jobs: 2}

	result, err := SequentialForwardSelection(context.Background(), pair, pair, sumFirstRow, opts)
	if err != nil {
		t.Fatalf("FAIL: %v", err)
	}

	if result.Method != "sequential_forward_selection" {
		t.Errorf("FAIL: method should default to strategy name, got %q", result.Method)
	}
	if result.BaselineScore != 0 {
		t.Errorf("FAIL: forward baseline scores zero columns, want 0, got %.2f", result.BaselineScore)
	}
	if result.NumRounds() != 3 {
		t.Fatalf("FAIL: expected 3 rounds, got %d", result.NumRounds())
	}
	if got := result.Winners(); !reflect.DeepEqual(got, []string{"C", "B", "A"}) {
		t.Fatalf("FAIL: winners should be [C B A], got %v", got)
	}

	// Round 1 ranking: C=4 best, B=2, A=1
	r0 := result.Round(0)
	if r0.Ranks["C"].Rank != 0 || r0.Ranks["B"].Rank != 1 || r0.Ranks["A"].Rank != 2 {
		t.Errorf("FAIL: round 1 ranks wrong: %+v", r0.Ranks)
	}
	if r0.Ranks["C"].Score != 4 || r0.Ranks["A"].Score != 1 {
		t.Errorf("FAIL: round 1 scores wrong: %+v", r0.Ranks)
	}

	// Round 2 scores include the already-selected C: A=5, B=6
	r1 := result.Round(1)
	if r1.Ranks["B"].Score != 6 || r1.Ranks["A"].Score != 5 {
		t.Errorf("FAIL: round 2 scores should include history, got %+v", r1.Ranks)
	}
	// The winner of round 1 never reappears as a later candidate
	if _, ok := r1.Ranks["C"]; ok {
		t.Errorf("FAIL: selected variable C must not be a round 2 candidate")
	}
	fmt.Println("  PASS: winners [C B A] with history-aware scores")
}

// TestBackwardSelectionEndToEnd verifies the leave-out run removes the least
// useful variable first: dropping A costs the least under max
func TestBackwardSelectionEndToEnd(t *testing.T) {
	fmt.Println("\n========================================")
	fmt.Println("Test: backward selection end to end")
	fmt.Println("========================================")

	pair := makeTestPair(6)
	opts := Options{ScoringStrategy: "max"}

	result, err := SequentialBackwardSelection(context.Background(), pair, pair, sumFirstRow, opts)
	if err != nil {
		t.Fatalf("FAIL: %v", err)
	}

	if result.Method != "sequential_backward_selection" {
		t.Errorf("FAIL: method should default to strategy name, got %q", result.Method)
	}
	// Backward baseline scores all columns: 1+2+4
	if result.BaselineScore != 7 {
		t.Errorf("FAIL: backward baseline should be 7, got %.2f", result.BaselineScore)
	}
	if got := result.Winners(); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Fatalf("FAIL: removal order should be [A B C], got %v", got)
	}

	// Round 1: leave-out scores are 6 (drop A), 5 (drop B), 3 (drop C)
	r0 := result.Round(0)
	if r0.Ranks["A"].Score != 6 || r0.Ranks["B"].Score != 5 || r0.Ranks["C"].Score != 3 {
		t.Errorf("FAIL: round 1 leave-out scores wrong: %+v", r0.Ranks)
	}
	fmt.Println("  PASS: least useful variable removed first")
}

// TestSelectionDeterminism runs the same bootstrapped, subsampled, parallel
// configuration twice and demands identical results
func TestSelectionDeterminism(t *testing.T) {
	fmt.Println("\n========================================")
	fmt.Println("Test: run-twice determinism")
	fmt.Println("========================================")

	// Non-constant data so subsampling actually matters
	nrows := 40
	cols := make([][]float32, 4)
	names := []string{"w", "x", "y", "z"}
	for c := range cols {
		cols[c] = make([]float32, nrows)
		for r := 0; r < nrows; r++ {
			cols[c][r] = float32((r*7+c*3)%11) - 5
		}
	}
	out := make([]float32, nrows)
	for r := 0; r < nrows; r++ {
		out[r] = cols[1][r] * 2
	}
	pair := DataPair{
		Inputs:  NewTable(names, cols),
		Outputs: NewTable([]string{"y"}, [][]float32{out}),
	}

	// Score by mean absolute residual against the output using the first
	// available column; crude but deterministic
	score := func(training, scoring DataPair) (float64, error) {
		var sum float64
		n := training.Inputs.NumRows()
		for r := 0; r < n; r++ {
			pred := float64(0)
			if training.Inputs.NumVars() > 0 {
				pred = float64(training.Inputs.At(r, 0))
			}
			d := pred - float64(training.Outputs.At(r, 0))
			if d < 0 {
				d = -d
			}
			sum += d
		}
		return sum / float64(n), nil
	}

	opts := Options{Bootstrap: 3, Subsample: 0.5, Jobs: 4, NumImportant: 3}

	first, err := SequentialForwardSelection(context.Background(), pair, pair, score, opts)
	if err != nil {
		t.Fatalf("FAIL: first run: %v", err)
	}
	second, err := SequentialForwardSelection(context.Background(), pair, pair, score, opts)
	if err != nil {
		t.Fatalf("FAIL: second run: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("FAIL: identical configuration must reproduce identical results\nfirst:  %+v\nsecond: %+v", first, second)
	}
	fmt.Println("  PASS: bootstrapped parallel runs reproduce exactly")
}

// TestExhaustedCandidates verifies the fail-fast when rounds outnumber
// variables: typed error, no partial result
func TestExhaustedCandidates(t *testing.T) {
	pair := makeTestPair(4)
	opts := Options{ScoringStrategy: "max", NumImportant: 5}

	result, err := SequentialForwardSelection(context.Background(), pair, pair, sumFirstRow, opts)
	if !errors.Is(err, ErrExhaustedCandidates) {
		t.Fatalf("FAIL: expected ErrExhaustedCandidates, got %v", err)
	}
	if result != nil {
		t.Errorf("FAIL: exhausted run must not return a partial result")
	}
}

// TestSelectionOptionValidation covers the entry-point rejection paths
func TestSelectionOptionValidation(t *testing.T) {
	pair := makeTestPair(4)

	// Unknown scoring strategy
	_, err := SequentialForwardSelection(context.Background(), pair, pair, sumFirstRow,
		Options{ScoringStrategy: "mode_of_vibes"})
	var serr *InvalidStrategyError
	if !errors.As(err, &serr) {
		t.Errorf("FAIL: unknown strategy should give InvalidStrategyError, got %v", err)
	}

	// Bad variable-name count
	_, err = SequentialForwardSelection(context.Background(), pair, pair, sumFirstRow,
		Options{VariableNames: []string{"one"}})
	var derr *InvalidDataError
	if !errors.As(err, &derr) {
		t.Errorf("FAIL: name mismatch should give InvalidDataError, got %v", err)
	}

	// Bad data
	_, err = SequentialForwardSelection(context.Background(), DataPair{}, pair, sumFirstRow, Options{})
	if !errors.As(err, &derr) {
		t.Errorf("FAIL: empty pair should give InvalidDataError, got %v", err)
	}
}

// TestScoringErrorPropagates verifies a mid-run scoring failure aborts the
// whole selection with the worker's typed error
func TestScoringErrorPropagates(t *testing.T) {
	pair := makeTestPair(4)
	boom := errors.New("singular matrix")
	calls := 0
	flaky := func(training, scoring DataPair) (float64, error) {
		calls++
		if calls > 4 {
			return 0, boom
		}
		return sumFirstRow(training, scoring)
	}

	_, err := SequentialForwardSelection(context.Background(), pair, pair, flaky,
		Options{ScoringStrategy: "max"})
	if !errors.Is(err, boom) {
		t.Fatalf("FAIL: scoring failure should propagate, got %v", err)
	}
	var werr *WorkerError
	if !errors.As(err, &werr) {
		t.Errorf("FAIL: failure should be wrapped as WorkerError, got %v", err)
	}
}

// TestCustomComparatorWins verifies an explicit Comparator overrides the
// ScoringStrategy name
func TestCustomComparatorWins(t *testing.T) {
	pair := makeTestPair(4)
	opts := Options{
		Comparator:      ArgMax{},
		ScoringStrategy: "min", // ignored: explicit comparator wins
		NumImportant:    1,
	}
	result, err := SequentialForwardSelection(context.Background(), pair, pair, sumFirstRow, opts)
	if err != nil {
		t.Fatalf("FAIL: %v", err)
	}
	if result.Winners()[0] != "C" {
		t.Errorf("FAIL: explicit ArgMax should pick C, got %v", result.Winners())
	}
}

// TestMatrixSelection runs the whole loop over the row-major container with
// index-derived names
func TestMatrixSelection(t *testing.T) {
	rows := [][]float32{
		{1, 2, 4},
		{1, 2, 4},
		{1, 2, 4},
	}
	pair := DataPair{
		Inputs:  NewMatrix(rows),
		Outputs: NewMatrix([][]float32{{0}, {0}, {0}}),
	}

	result, err := SequentialForwardSelection(context.Background(), pair, pair, sumFirstRow,
		Options{ScoringStrategy: "max", NumImportant: 2})
	if err != nil {
		t.Fatalf("FAIL: %v", err)
	}
	if got := result.Winners(); !reflect.DeepEqual(got, []string{"2", "1"}) {
		t.Errorf("FAIL: matrix winners should be index names [2 1], got %v", got)
	}
}
