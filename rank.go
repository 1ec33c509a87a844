package varimp

// VariableRank pairs a variable's rank with its raw score. Rank 0 is best
// according to the comparator that produced the ranking.
type VariableRank struct {
	Rank  int     `json:"rank"`
	Score float64 `json:"score"`
}

// RankScores converts a round's scores into a rank map. order fixes the
// encounter order of the candidates (map iteration order would not be
// deterministic); scores must hold an entry for every name in order.
//
// The algorithm repeatedly asks the comparator for the best entry among
// those not yet ranked, assigns it the next rank, and removes it from the
// pool. A generic sort cannot replace this: the comparator's notion of best
// is pluggable and need not induce a total order. Ties are broken by
// encounter order because comparators keep the earliest best index.
func RankScores(order []string, scores map[string]float64, cmp Comparator) map[string]VariableRank {
	if len(order) == 0 {
		return map[string]VariableRank{}
	}

	pool := make([]string, len(order))
	copy(pool, order)
	vals := make([]float64, len(order))
	for i, name := range order {
		vals[i] = scores[name]
	}

	out := make(map[string]VariableRank, len(order))
	rank := 0
	for len(pool) > 1 {
		best := cmp.BestIndex(vals)
		out[pool[best]] = VariableRank{Rank: rank, Score: vals[best]}
		rank++
		pool = append(pool[:best], pool[best+1:]...)
		vals = append(vals[:best], vals[best+1:]...)
	}
	out[pool[0]] = VariableRank{Rank: rank, Score: vals[0]}
	return out
}
