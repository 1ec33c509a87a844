// Package varimp computes variable importance by sequential selection.
//
// The engine repeatedly asks "which remaining variable, when added to (or
// removed from) the important set, most changes a score?" using a
// caller-supplied scoring function over training/scoring data splits.
// Candidate variables are scored in parallel by a fixed worker pool, averaged
// over bootstrap resampling passes, and ranked by a pluggable comparator.
// Rankings are deterministic: identical inputs always produce identical
// orderings of selected variables and identical scores.
//
// Entry points are SequentialForwardSelection and SequentialBackwardSelection.
// The scoring function is an opaque black box; the engine never trains a
// model itself.
package varimp
