package varimp

import (
	"errors"
	"fmt"
)

// Sentinel errors for the varimp package.
// Use errors.Is to check: errors.Is(err, varimp.ErrExhaustedCandidates)
var (
	// ErrExhaustedCandidates is returned when the requested round count
	// exceeds the number of available candidate variables. The run fails
	// fast before the empty round starts rather than truncating silently.
	ErrExhaustedCandidates = errors.New("varimp: candidate pool exhausted")
)

// InvalidDataError reports an unsupported container or mismatched shapes,
// raised by verification or subsetting before any computation begins.
type InvalidDataError struct {
	Reason string
}

func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("varimp: invalid data: %s", e.Reason)
}

// InvalidStrategyError reports an unrecognized scoring-strategy name.
type InvalidStrategyError struct {
	Name string
}

func (e *InvalidStrategyError) Error() string {
	return fmt.Sprintf("varimp: unrecognized scoring strategy %q", e.Name)
}

// WorkerError wraps a scoring-function failure. A single scoring failure is
// fatal to the whole run: the scoring function is assumed deterministic, so a
// retry would not change the outcome.
type WorkerError struct {
	Var int // variable index whose scoring failed
	Err error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("varimp: scoring variable %d failed: %v", e.Var, e.Err)
}

func (e *WorkerError) Unwrap() error {
	return e.Err
}
