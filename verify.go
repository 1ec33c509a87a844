package varimp

import (
	"fmt"
	"math"
	"strconv"
)

// VerifyDataPair validates a data pair before any computation begins.
// Both halves must be present, non-empty, and row-aligned. The pair is
// returned unchanged on success so callers can chain the call.
func VerifyDataPair(p DataPair) (DataPair, error) {
	if p.Inputs == nil || p.Outputs == nil {
		return DataPair{}, &InvalidDataError{Reason: "data pair must have inputs and outputs"}
	}
	if p.Inputs.NumRows() == 0 {
		return DataPair{}, &InvalidDataError{Reason: "inputs have no rows"}
	}
	if p.Inputs.NumVars() == 0 {
		return DataPair{}, &InvalidDataError{Reason: "inputs have no variables"}
	}
	if p.Inputs.NumRows() != p.Outputs.NumRows() {
		return DataPair{}, &InvalidDataError{Reason: fmt.Sprintf(
			"inputs have %d rows but outputs have %d", p.Inputs.NumRows(), p.Outputs.NumRows())}
	}
	return p, nil
}

// DetermineVariableNames resolves the variable registry for a pair.
// Caller-supplied names win (length-checked against the input width);
// otherwise a Table contributes its column names and a Matrix falls back to
// column indices.
func DetermineVariableNames(p DataPair, names []string) ([]string, error) {
	nvars := p.Inputs.NumVars()
	if names != nil {
		if len(names) != nvars {
			return nil, &InvalidDataError{Reason: fmt.Sprintf(
				"%d variable names supplied for %d variables", len(names), nvars)}
		}
		out := make([]string, nvars)
		copy(out, names)
		return out, nil
	}

	if t, ok := p.Inputs.(*Table); ok {
		out := make([]string, nvars)
		copy(out, t.Names)
		return out, nil
	}

	out := make([]string, nvars)
	for i := range out {
		out[i] = strconv.Itoa(i)
	}
	return out, nil
}

// AuditValues scans the inputs for NaN/Inf and reports the first offender.
// Selection itself tolerates whatever the scoring function tolerates; this
// check is for callers who want to fail early on bad data.
func AuditValues(p DataPair) error {
	nrows := p.Inputs.NumRows()
	nvars := p.Inputs.NumVars()
	for c := 0; c < nvars; c++ {
		for r := 0; r < nrows; r++ {
			v := float64(p.Inputs.At(r, c))
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return &InvalidDataError{Reason: fmt.Sprintf(
					"non-finite value %.4g at row %d, variable %d", v, r, c)}
			}
		}
	}
	return nil
}
