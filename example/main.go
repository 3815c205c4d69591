package main

import (
	"fmt"
	"os"

	buddy "github.com/xgzlucario/BuddySim"
	"golang.org/x/exp/slog"
)

func main() {
	ops := []buddy.Process{
		buddy.Request(1, "A", 65),
		buddy.Request(2, "B", 30),
		buddy.Request(3, "C", 94),
		buddy.Request(4, "D", 34),
		buddy.Request(5, "E", 136),
		buddy.Release(4),
	}

	for _, strategy := range []buddy.Strategy{buddy.StrategyLinear, buddy.StrategyNextFit} {
		options := buddy.DefaultOptions
		options.Strategy = strategy
		options.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

		sim, err := buddy.New(options)
		if err != nil {
			panic(err)
		}

		fmt.Println("strategy:", strategy)
		for _, res := range sim.Run(ops) {
			fmt.Println(res)
		}

		fmt.Println()
		sim.History().Render(os.Stdout)

		st := sim.Stats()
		fmt.Printf("used: %d/%d units, internal fragmentation: %d, largest free run: %d\n\n",
			st.UsedUnits, options.Capacity, st.InternalFragmentation(), st.LargestFreeRun)
	}
}
