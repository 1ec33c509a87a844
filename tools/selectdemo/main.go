package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"gonum.org/v1/gonum/stat"

	"hb_varimp"
	"hb_varimp/logx"
	"hb_varimp/tui"
)

// Demo runner: plants a linear signal on the first few variables of a
// synthetic table, then runs sequential selection and prints the ranking.
// The selector should recover the planted variables first.

func main() {
	mode := flag.String("mode", "forward", "selection mode: forward or backward")
	nvars := flag.Int("vars", 8, "number of input variables")
	nrows := flag.Int("rows", 500, "number of rows per dataset")
	rounds := flag.Int("rounds", 0, "rounds to run (0 = all variables)")
	bootstrap := flag.Int("bootstrap", 3, "bootstrap passes per round")
	subsample := flag.Float64("subsample", 0.75, "rows per bootstrap pass (fraction <=1, absolute >1)")
	jobs := flag.Int("jobs", -1, "workers (0=1, negative = NumCPU+jobs)")
	seed := flag.Int64("seed", 42, "data generation seed")
	useTUI := flag.Bool("tui", false, "show the terminal dashboard")
	useWeb := flag.Bool("web", false, "serve the web dashboard")
	webPort := flag.Int("webport", 8080, "web dashboard port (auto-bumped if taken)")
	outPath := flag.String("out", "", "write the result JSON to this path")
	flag.Parse()

	training, scoring, names := makePlantedData(*seed, *nrows, *nvars)

	opts := varimp.Options{
		VariableNames: names,
		NumImportant:  *rounds,
		Bootstrap:     *bootstrap,
		Subsample:     *subsample,
		Jobs:          *jobs,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	varimp.EnableConsoleProgress(!*useTUI)

	if *useTUI {
		if err := tui.Start(ctx, tui.TUIConfig{Title: "varimp demo", Method: *mode, Dataset: "synthetic"}); err != nil {
			fmt.Printf("%s %v, falling back to console\n", logx.Warn("⚠"), err)
			varimp.EnableConsoleProgress(true)
		} else {
			varimp.EnableTUIProgress(true)
			defer tui.Stop()
		}
	}

	if *useWeb {
		port := varimp.FindAvailablePort(*webPort)
		varimp.EnableWebDashboard(true)
		go func() {
			if err := varimp.StartWebServer(port); err != nil {
				fmt.Printf("%s web dashboard: %v\n", logx.Error("✗"), err)
			}
		}()
	}

	var result *varimp.ImportanceResult
	var err error
	switch *mode {
	case "forward":
		result, err = varimp.SequentialForwardSelection(ctx, training, scoring, scoreMSE, opts)
	case "backward":
		result, err = varimp.SequentialBackwardSelection(ctx, training, scoring, scoreMSE, opts)
	default:
		fmt.Printf("%s unknown mode %q (want forward or backward)\n", logx.Error("✗"), *mode)
		os.Exit(2)
	}
	if err != nil {
		fmt.Printf("%s selection failed: %v\n", logx.Error("✗"), err)
		os.Exit(1)
	}

	printResult(result)

	if *outPath != "" {
		if err := result.SaveJSON(*outPath); err != nil {
			fmt.Printf("%s save result: %v\n", logx.Error("✗"), err)
			os.Exit(1)
		}
		fmt.Printf("%s result written to %s\n", logx.Success("✓"), *outPath)
	}
}

// makePlantedData builds training and scoring tables where the output is a
// noisy linear function of the first three variables. The remaining
// variables are pure noise.
func makePlantedData(seed int64, nrows, nvars int) (training, scoring varimp.DataPair, names []string) {
	rng := rand.New(rand.NewSource(seed))

	names = make([]string, nvars)
	for i := range names {
		names[i] = fmt.Sprintf("var%02d", i)
	}

	gen := func(n int) varimp.DataPair {
		cols := make([][]float32, nvars)
		for c := range cols {
			cols[c] = make([]float32, n)
			for r := 0; r < n; r++ {
				cols[c][r] = float32(rng.NormFloat64())
			}
		}
		out := make([]float32, n)
		for r := 0; r < n; r++ {
			y := 3.0*float64(cols[0][r]) - 2.0*float64(cols[1%nvars][r]) + 1.0*float64(cols[2%nvars][r])
			out[r] = float32(y + 0.1*rng.NormFloat64())
		}
		return varimp.DataPair{
			Inputs:  varimp.NewTable(names, cols),
			Outputs: varimp.NewTable([]string{"target"}, [][]float32{out}),
		}
	}

	return gen(nrows), gen(nrows), names
}

// scoreMSE fits one univariate slope per selected column on the training
// half and reports mean squared error on the scoring half. With no columns
// selected it predicts the training mean. Lower is better, matching the
// default comparator.
func scoreMSE(training, scoring varimp.DataPair) (float64, error) {
	ntrain := training.Inputs.NumRows()
	ncols := training.Inputs.NumVars()

	ytrain := make([]float64, ntrain)
	for r := 0; r < ntrain; r++ {
		ytrain[r] = float64(training.Outputs.At(r, 0))
	}

	betas := make([]float64, ncols)
	for c := 0; c < ncols; c++ {
		x := make([]float64, ntrain)
		for r := 0; r < ntrain; r++ {
			x[r] = float64(training.Inputs.At(r, c))
		}
		_, betas[c] = stat.LinearRegression(x, ytrain, nil, false)
	}
	mean := stat.Mean(ytrain, nil)

	nscore := scoring.Inputs.NumRows()
	var sse float64
	for r := 0; r < nscore; r++ {
		pred := 0.0
		if ncols == 0 {
			pred = mean
		}
		for c := 0; c < ncols; c++ {
			pred += betas[c] * float64(scoring.Inputs.At(r, c))
		}
		diff := pred - float64(scoring.Outputs.At(r, 0))
		sse += diff * diff
	}
	return sse / float64(nscore), nil
}

func printResult(result *varimp.ImportanceResult) {
	fmt.Printf("\n%s baseline=%.4f method=%s\n", logx.Channel("RANK"), result.BaselineScore, result.Method)
	for i, rr := range result.Rounds {
		rows := make([]logx.RankRow, 0, len(rr.Ranks))
		for name, vr := range rr.Ranks {
			rows = append(rows, logx.RankRow{Rank: vr.Rank, Variable: name, Score: vr.Score})
		}
		sortRankRows(rows)
		logx.PrintRankTable(fmt.Sprintf("Round %d (winner: %s)", i+1, rr.Winner), rows)
	}
	logx.PrintWinners(result.Winners())
}

func sortRankRows(rows []logx.RankRow) {
	for i := 1; i < len(rows); i++ {
		for j := i; j > 0 && rows[j].Rank < rows[j-1].Rank; j-- {
			rows[j], rows[j-1] = rows[j-1], rows[j]
		}
	}
}
