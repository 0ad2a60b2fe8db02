package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/cricklet/movegen/internal/fen"
	. "github.com/cricklet/movegen/internal/helpers"
	"github.com/cricklet/movegen/internal/perft"
	"github.com/cricklet/movegen/internal/perftstore"
	"github.com/cricklet/movegen/internal/stockfish"
	"github.com/cricklet/movegen/internal/zobrist"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/pkg/profile"
	"github.com/schollz/progressbar/v3"
)

func progressBar(total int, label string) ProgressBar {
	bar := progressbar.Default(int64(total), label)
	return ProgressBar{
		Set:   func(i int) { _ = bar.Set(i) },
		Add:   func(i int) { _ = bar.Add(i) },
		Close: func() { _ = bar.Finish() },
	}
}

func run() Error {
	fenString := flag.String("fen", fen.StartFen, "position to count from")
	depth := flag.Int("depth", 5, "perft depth")
	workers := flag.Int("workers", runtime.NumCPU(), "goroutines splitting the root moves")
	storeDir := flag.String("store", "", "badger directory for persistent counts")
	cacheSize := flag.Int("cache", 0, "transposition table entries, 0 disables")
	compare := flag.Bool("compare", false, "compare the divide against stockfish")
	stockfishPath := flag.String("stockfish", "stockfish", "stockfish binary for -compare")
	profilePath := flag.String("profile", "", "write a cpu profile to this directory")
	progress := flag.String("progress", "bar", "bar, lines or none")
	flag.Parse()

	if *profilePath != "" {
		defer profile.Start(profile.ProfilePath(*profilePath)).Stop()
	}

	pos, err := fen.PositionFromFenString(*fenString)
	if !IsNil(err) {
		return err
	}

	options := []perft.Option{
		perft.WithWorkers(*workers),
		perft.WithLogger(NewFieldLogger(map[string]any{"component": "perft"})),
	}
	switch *progress {
	case "bar":
		options = append(options, perft.WithProgress(progressBar))
	case "lines":
		options = append(options, perft.WithProgress(func(total int, label string) ProgressBar {
			return CreateProgressBar(total, color.CyanString(label))
		}))
	case "none":
	default:
		return Errorf("unknown progress %v", *progress)
	}
	if *cacheSize > 0 {
		options = append(options, perft.WithCache(zobrist.NewTranspositionTable(*cacheSize)))
	}
	if *storeDir != "" {
		store, err := perftstore.Open(*storeDir)
		if !IsNil(err) {
			return err
		}
		defer store.Close()
		options = append(options, perft.WithStore(store))
	}

	start := time.Now()
	divide, err := perft.NewRunner(options...).Divide(pos, *depth)
	if !IsNil(err) {
		return err
	}
	elapsed := time.Since(start)

	fmt.Println(divide)
	fmt.Printf("%v nodes in %v, %v nps\n",
		humanize.Comma(int64(divide.Total)),
		elapsed.Round(time.Millisecond),
		humanize.Comma(int64(float64(divide.Total)/elapsed.Seconds())))

	if !*compare {
		return NilError
	}

	sf := stockfish.NewStockfishRunner(stockfish.WithBinary(*stockfishPath))
	defer sf.Close()

	expected, err := sf.Perft(*fenString, nil, *depth)
	if !IsNil(err) {
		return err
	}

	issues := perft.Compare(divide, expected)
	if len(issues) == 0 {
		color.Green("matches stockfish: %v nodes", humanize.Comma(int64(expected.Total)))
		return NilError
	}
	for _, issue := range issues {
		color.Red("%v", issue)
	}
	return Errorf("%v moves differ from stockfish", len(issues))
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, fmt.Sprint(r))
			fmt.Fprintln(os.Stderr, string(debug.Stack()))
			os.Exit(1)
		}
	}()

	err := run()
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
