package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"time"

	buddy "github.com/xgzlucario/BuddySim"
	"golang.org/x/exp/slog"
)

var previousPause time.Duration

func gcPause() time.Duration {
	runtime.GC()
	var stats debug.GCStats
	debug.ReadGCStats(&stats)
	pause := stats.PauseTotal - previousPause
	previousPause = stats.PauseTotal
	return pause
}

func main() {
	mode := ""
	scripts := 0
	repeat := 0
	count := 0
	flag.StringVar(&mode, "mode", "batch", "runner to bench: batch or serial.")
	flag.IntVar(&scripts, "scripts", 256, "number of scripts to test")
	flag.IntVar(&repeat, "repeat", 50, "number of repetitions")
	flag.IntVar(&count, "count", 512, "operations per script")
	flag.Parse()

	debug.SetGCPercent(10)
	fmt.Println("Mode:              ", mode)
	fmt.Println("Number of scripts: ", scripts)
	fmt.Println("Number of repeats: ", repeat)
	fmt.Println("Ops per script:    ", count)

	options := buddy.DefaultOptions
	options.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	input := make([][]buddy.Process, scripts)
	for i := range input {
		w := buddy.DefaultWorkload
		w.Seed = int64(i)
		w.Count = count
		input[i] = w.Generate()
	}

	var benchFunc func(options buddy.Options, input [][]buddy.Process)

	switch mode {
	case "batch":
		benchFunc = batch
	case "serial":
		benchFunc = serial
	default:
		fmt.Printf("unknown mode: %s", mode)
		os.Exit(1)
	}

	benchFunc(options, input)
	fmt.Println("GC pause for startup: ", gcPause())
	for i := 0; i < repeat; i++ {
		benchFunc(options, input)
	}

	fmt.Printf("GC pause for %s: %s\n", mode, gcPause())
}

func serial(options buddy.Options, input [][]buddy.Process) {
	for _, ops := range input {
		sim, err := buddy.New(options)
		if err != nil {
			panic(err)
		}
		sim.Run(ops)
		sim.Trace()
	}
}

func batch(options buddy.Options, input [][]buddy.Process) {
	b, err := buddy.NewBatch(options, 0)
	if err != nil {
		panic(err)
	}
	defer b.Close()

	if _, err := b.Run(context.Background(), input); err != nil {
		panic(err)
	}
}
