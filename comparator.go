package varimp

import "math"

// Comparator selects the "best" score among a set. Implementations form a
// closed set resolved once at entry; the definition of best is theirs alone
// (minimum, maximum, closeness to a baseline) and need not be a total order.
//
// BestIndex must return the index of the best score, breaking ties in favor
// of the earliest index. Callers guarantee len(scores) > 0.
type Comparator interface {
	BestIndex(scores []float64) int
	String() string
}

// ArgMin treats the smallest score as best (e.g. error metrics).
type ArgMin struct{}

func (ArgMin) BestIndex(scores []float64) int {
	best := 0
	for i, s := range scores {
		if s < scores[best] {
			best = i
		}
	}
	return best
}

func (ArgMin) String() string { return "argmin_of_mean" }

// ArgMax treats the largest score as best (e.g. accuracy, negative loss).
type ArgMax struct{}

func (ArgMax) BestIndex(scores []float64) int {
	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}
	return best
}

func (ArgMax) String() string { return "argmax_of_mean" }

// ArgClosest treats the score closest to Target as best, typically used to
// find the variable whose removal deviates least from a baseline score.
type ArgClosest struct {
	Target float64
}

func (c ArgClosest) BestIndex(scores []float64) int {
	best := 0
	bestDist := math.Abs(scores[0] - c.Target)
	for i, s := range scores {
		if d := math.Abs(s - c.Target); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

func (c ArgClosest) String() string { return "argclosest_to_baseline" }

// ResolveComparator maps a recognized scoring-strategy name to its
// comparator. Unrecognized names fail with InvalidStrategyError.
func ResolveComparator(name string) (Comparator, error) {
	switch name {
	case "min", "argmin_of_mean":
		return ArgMin{}, nil
	case "max", "argmax_of_mean":
		return ArgMax{}, nil
	default:
		return nil, &InvalidStrategyError{Name: name}
	}
}
