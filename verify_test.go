package varimp

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

// makeTestPair builds a small 3-variable table pair used across tests.
// Columns hold constant values 1, 2 and 4 so subset scores are predictable.
func makeTestPair(nrows int) DataPair {
	cols := make([][]float32, 3)
	vals := []float32{1, 2, 4}
	for c := range cols {
		cols[c] = make([]float32, nrows)
		for r := 0; r < nrows; r++ {
			cols[c][r] = vals[c]
		}
	}
	out := make([]float32, nrows)
	return DataPair{
		Inputs:  NewTable([]string{"A", "B", "C"}, cols),
		Outputs: NewTable([]string{"y"}, [][]float32{out}),
	}
}

// TestVerifyDataPair covers the rejection paths for malformed pairs
func TestVerifyDataPair(t *testing.T) {
	fmt.Println("\n========================================")
	fmt.Println("Test: data pair verification")
	fmt.Println("========================================")

	var derr *InvalidDataError

	// Missing halves
	if _, err := VerifyDataPair(DataPair{}); !errors.As(err, &derr) {
		t.Errorf("FAIL: empty pair should give InvalidDataError, got %v", err)
	}

	// No rows
	empty := DataPair{
		Inputs:  NewTable([]string{"A"}, [][]float32{{}}),
		Outputs: NewTable([]string{"y"}, [][]float32{{}}),
	}
	if _, err := VerifyDataPair(empty); !errors.As(err, &derr) {
		t.Errorf("FAIL: zero-row pair should give InvalidDataError, got %v", err)
	}

	// Row mismatch between halves
	mismatch := DataPair{
		Inputs:  NewTable([]string{"A"}, [][]float32{{1, 2, 3}}),
		Outputs: NewTable([]string{"y"}, [][]float32{{1, 2}}),
	}
	if _, err := VerifyDataPair(mismatch); !errors.As(err, &derr) {
		t.Errorf("FAIL: row mismatch should give InvalidDataError, got %v", err)
	}

	// Valid pair passes through unchanged
	good := makeTestPair(5)
	got, err := VerifyDataPair(good)
	if err != nil {
		t.Fatalf("FAIL: valid pair rejected: %v", err)
	}
	if got.Inputs != good.Inputs || got.Outputs != good.Outputs {
		t.Errorf("FAIL: valid pair should pass through unchanged")
	}
	fmt.Println("  PASS: malformed pairs rejected, valid pair passes through")
}

// TestDetermineVariableNames covers the three registry sources
func TestDetermineVariableNames(t *testing.T) {
	pair := makeTestPair(4)

	// Caller-supplied names win
	names, err := DetermineVariableNames(pair, []string{"x", "y", "z"})
	if err != nil {
		t.Fatalf("FAIL: %v", err)
	}
	if names[0] != "x" || names[2] != "z" {
		t.Errorf("FAIL: caller names should win, got %v", names)
	}

	// Length mismatch fails typed
	var derr *InvalidDataError
	if _, err := DetermineVariableNames(pair, []string{"too", "few"}); !errors.As(err, &derr) {
		t.Errorf("FAIL: name count mismatch should give InvalidDataError, got %v", err)
	}

	// Table contributes its column names
	names, err = DetermineVariableNames(pair, nil)
	if err != nil {
		t.Fatalf("FAIL: %v", err)
	}
	if names[0] != "A" || names[1] != "B" || names[2] != "C" {
		t.Errorf("FAIL: table names expected, got %v", names)
	}

	// Matrix falls back to column indices
	m := DataPair{
		Inputs:  NewMatrix([][]float32{{1, 2}, {3, 4}}),
		Outputs: NewMatrix([][]float32{{0}, {0}}),
	}
	names, err = DetermineVariableNames(m, nil)
	if err != nil {
		t.Fatalf("FAIL: %v", err)
	}
	if names[0] != "0" || names[1] != "1" {
		t.Errorf("FAIL: matrix should name columns by index, got %v", names)
	}
}

// TestAuditValues verifies the non-finite scan reports the first offender
func TestAuditValues(t *testing.T) {
	good := makeTestPair(3)
	if err := AuditValues(good); err != nil {
		t.Fatalf("FAIL: finite data should pass audit: %v", err)
	}

	bad := DataPair{
		Inputs:  NewTable([]string{"A", "B"}, [][]float32{{1, 2}, {3, float32(math.NaN())}}),
		Outputs: NewTable([]string{"y"}, [][]float32{{0, 0}}),
	}
	var derr *InvalidDataError
	if err := AuditValues(bad); !errors.As(err, &derr) {
		t.Errorf("FAIL: NaN should fail the audit, got %v", err)
	}
}

// TestTableSubsets verifies column and row subsetting keep values aligned
func TestTableSubsets(t *testing.T) {
	fmt.Println("\n========================================")
	fmt.Println("Test: table subset operations")
	fmt.Println("========================================")

	tbl := NewTable([]string{"A", "B", "C"}, [][]float32{
		{1, 10, 100},
		{2, 20, 200},
		{3, 30, 300},
	})

	sub := tbl.SubsetColumns([]int{2, 0}).(*Table)
	if sub.NumVars() != 2 || sub.Names[0] != "C" || sub.Names[1] != "A" {
		t.Fatalf("FAIL: column subset order wrong: %v", sub.Names)
	}
	if sub.At(1, 0) != 30 || sub.At(1, 1) != 10 {
		t.Errorf("FAIL: column subset values wrong: %v %v", sub.At(1, 0), sub.At(1, 1))
	}

	// Repeated row indices are allowed (bootstrap resampling)
	rows := tbl.SubsetRows([]int{2, 2, 0}).(*Table)
	if rows.NumRows() != 3 || rows.At(0, 0) != 100 || rows.At(1, 0) != 100 || rows.At(2, 0) != 1 {
		t.Errorf("FAIL: row subset with repeats wrong")
	}

	// Unknown names fail typed
	var derr *InvalidDataError
	if _, err := tbl.SubsetColumnsByName([]string{"A", "nope"}); !errors.As(err, &derr) {
		t.Errorf("FAIL: unknown column name should give InvalidDataError")
	}

	byName, err := tbl.SubsetColumnsByName([]string{"B"})
	if err != nil {
		t.Fatalf("FAIL: %v", err)
	}
	if byName.At(2, 0) != 20 {
		t.Errorf("FAIL: named subset value wrong: %v", byName.At(2, 0))
	}
	fmt.Println("  PASS: subsets keep order, values and names aligned")
}

// TestMatrixSubsets mirrors the table checks on the row-major container
func TestMatrixSubsets(t *testing.T) {
	m := NewMatrix([][]float32{
		{1, 10, 100},
		{2, 20, 200},
	})

	sub := m.SubsetColumns([]int{1})
	if sub.NumVars() != 1 || sub.At(1, 0) != 20 {
		t.Errorf("FAIL: matrix column subset wrong")
	}

	rows := m.SubsetRows([]int{1, 0, 1})
	if rows.NumRows() != 3 || rows.At(0, 2) != 200 || rows.At(1, 2) != 100 {
		t.Errorf("FAIL: matrix row subset wrong")
	}
}
