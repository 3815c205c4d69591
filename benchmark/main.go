package main

import (
	"flag"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/dustin/go-humanize"
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
	s := ""
	entries := 0
	capacity := 0
	repeat := 0
	flag.StringVar(&s, "strategy", "linear", "placement strategy to bench.")
	flag.IntVar(&entries, "entries", 10*10000, "number of operations to test")
	flag.IntVar(&capacity, "capacity", 64*1024, "pool capacity in units")
	flag.IntVar(&repeat, "repeat", 1, "number of runs")
	flag.Parse()

	strategy, err := buddy.ParseStrategy(s)
	if err != nil {
		panic(err)
	}

	fmt.Println(strategy)
	fmt.Println("entries:", humanize.Comma(int64(entries)))
	fmt.Println("capacity:", capacity)

	w := buddy.DefaultWorkload
	w.Count = entries
	w.MaxSize = capacity / 64
	ops := w.Generate()

	options := buddy.DefaultOptions
	options.Capacity = capacity
	options.ChunkSize = capacity / 64
	options.Strategy = strategy
	options.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	sim, err := buddy.New(options)
	if err != nil {
		panic(err)
	}

	lat := buddy.NewLatency()
	start := time.Now()
	for i := 0; i < repeat; i++ {
		sim.Reset()
		for _, op := range ops {
			lat.Time(func() { sim.Do(op) })
		}
	}
	cost := time.Since(start)

	var mem runtime.MemStats
	var stat debug.GCStats

	runtime.ReadMemStats(&mem)
	debug.ReadGCStats(&stat)

	st := sim.Stats()
	fmt.Println("allocations:", st.Allocations, "releases:", st.Releases, "no space:", st.NoSpace)
	fmt.Printf("utilization: %.2f%%\n", st.Utilization())
	fmt.Println("alloc:", humanize.Bytes(mem.Alloc))
	fmt.Println("heap inuse:", humanize.Bytes(mem.HeapInuse))
	fmt.Println("heap object:", humanize.Comma(int64(mem.HeapObjects)))
	fmt.Println("gc:", stat.NumGC)
	fmt.Println("pause:", gcPause())
	fmt.Println("cost:", cost)
	fmt.Printf("latency: avg %v, p50 %v, p99 %v, max %v\n",
		lat.Avg(), lat.Percentile(50), lat.Percentile(99), lat.Max())
}
