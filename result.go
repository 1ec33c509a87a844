package varimp

import (
	"encoding/json"
	"os"
)

// RoundResult is one completed round: the full rank map for the round's
// candidates and the variable that won rank 0.
type RoundResult struct {
	Ranks  map[string]VariableRank `json:"ranks"`
	Winner string                  `json:"winner"`
}

// ImportanceResult accumulates a selection run: the baseline score recorded
// once, then one round result appended per completed round. Owned by the
// orchestrator while the run is live; read-only for callers afterwards.
type ImportanceResult struct {
	Method        string        `json:"method"`
	VariableNames []string      `json:"variable_names"`
	BaselineScore float64       `json:"baseline_score"`
	Rounds        []RoundResult `json:"rounds"`
}

// NewImportanceResult starts an empty result with the baseline recorded.
func NewImportanceResult(method string, variableNames []string, baseline float64) *ImportanceResult {
	return &ImportanceResult{
		Method:        method,
		VariableNames: variableNames,
		BaselineScore: baseline,
	}
}

func (r *ImportanceResult) addRound(ranks map[string]VariableRank, winner string) {
	r.Rounds = append(r.Rounds, RoundResult{Ranks: ranks, Winner: winner})
}

// NumRounds returns the number of completed rounds.
func (r *ImportanceResult) NumRounds() int { return len(r.Rounds) }

// Round returns the k-th completed round (0-based).
func (r *ImportanceResult) Round(k int) RoundResult { return r.Rounds[k] }

// Winners returns the selected variables in selection order, one per round.
func (r *ImportanceResult) Winners() []string {
	out := make([]string, len(r.Rounds))
	for i, rr := range r.Rounds {
		out[i] = rr.Winner
	}
	return out
}

// SaveJSON writes the result to path so long runs can be archived.
func (r *ImportanceResult) SaveJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadResultJSON reads a result previously written by SaveJSON.
func LoadResultJSON(path string) (*ImportanceResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r ImportanceResult
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
