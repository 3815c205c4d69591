package main

import (
	"fmt"
	"io"
	"slices"

	buddy "github.com/xgzlucario/BuddySim"
	"golang.org/x/exp/slog"
)

func main() {
	opt := buddy.DefaultOptions
	opt.ChunkSize = 1
	opt.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	run := func(w buddy.Workload) *buddy.History {
		sim, err := buddy.New(opt)
		if err != nil {
			panic(err)
		}
		sim.Run(w.Generate())
		return sim.History()
	}

	seen := make(map[uint64]int64, 1024)

	for seed := int64(0); ; seed++ {
		if seed%10000 == 0 {
			fmt.Println("progress:", seed/10000, "w")
		}
		w := buddy.DefaultWorkload
		w.Seed = seed
		w.Count = 16

		h := run(w)
		digest := h.Digest()

		if run(w).Digest() != digest {
			panic(fmt.Sprintf("seed %d: digest is not stable", seed))
		}

		if prev, ok := seen[digest]; ok {
			pw := w
			pw.Seed = prev
			if !slices.EqualFunc(run(pw).All(), h.All(), slices.Equal[buddy.Snapshot]) {
				panic(fmt.Sprintf("digest conflict: seed %d and %d", prev, seed))
			}
			continue
		}
		seen[digest] = seed
	}
}
