package logx

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
)

// RankRow is one line of a rank table (rank 0 = best)
type RankRow struct {
	Rank     int
	Variable string
	Score    float64
}

// PrintRankTable - prints a round's ranking as an aligned table
func PrintRankTable(title string, rows []RankRow) {
	fmt.Printf("\n%s\n", Highlight(title))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  rank\tvariable\tscore\n")
	for _, r := range rows {
		fmt.Fprintf(w, "  %s\t%s\t%.6f\n", RankColor(r.Rank), r.Variable, r.Score)
	}
	w.Flush()
}

// PrintWinners - prints the selection order after a finished run
func PrintWinners(winners []string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "\n  round\tselected\n")
	for i, v := range winners {
		fmt.Fprintf(w, "  %d\t%s\n", i+1, v)
	}
	w.Flush()
}

// NewTableWriter creates a tabwriter for custom output
func NewTableWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}
