package buddy

import (
	"context"
	"testing"
)

var strategies = []Strategy{StrategyLinear, StrategyAligned, StrategyNextFit}

func newBenchSimulator(b *testing.B, strategy Strategy) *Simulator {
	options := DefaultOptions
	options.Capacity = 64 * 1024
	options.ChunkSize = 1024
	options.Strategy = strategy
	options.Logger = quietLogger
	s, err := New(options)
	if err != nil {
		b.Fatal(err)
	}
	return s
}

func BenchmarkAllocate(b *testing.B) {
	for _, strategy := range strategies {
		b.Run(strategy.String(), func(b *testing.B) {
			s := newBenchSimulator(b, strategy)
			for i := 0; i < b.N; i++ {
				id := i%64 + 1
				s.Allocate(Request(id, "bench", 1000))
				s.Release(id)
			}
		})
	}
}

func BenchmarkLocate(b *testing.B) {
	for _, strategy := range strategies {
		b.Run(strategy.String(), func(b *testing.B) {
			s := newBenchSimulator(b, strategy)
			// fill half of the pool with small blocks.
			for i := 1; i <= 256; i++ {
				s.Allocate(Request(i, "bench", 64))
				if i%2 == 0 {
					s.Release(i)
				}
			}
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				Locate(s.Pool(), 500, strategy, i%s.Pool().Cap())
			}
		})
	}
}

func BenchmarkRun(b *testing.B) {
	w := DefaultWorkload
	w.Count = 1000
	ops := w.Generate()

	for _, strategy := range strategies {
		b.Run(strategy.String(), func(b *testing.B) {
			s := newBenchSimulator(b, strategy)
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				s.Reset()
				s.Run(ops)
			}
		})
	}
}

func BenchmarkSnapshot(b *testing.B) {
	s := newBenchSimulator(b, StrategyLinear)
	s.Run(DefaultWorkload.Generate())
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		TakeSnapshot(s.Pool(), 1)
	}
}

func BenchmarkBatch(b *testing.B) {
	scripts := make([][]Process, 32)
	for i := range scripts {
		w := DefaultWorkload
		w.Seed = int64(i)
		scripts[i] = w.Generate()
	}
	options := DefaultOptions
	options.Logger = quietLogger

	b.Run("serial", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			for _, ops := range scripts {
				s, _ := New(options)
				s.Run(ops)
				s.Trace()
			}
		}
	})

	b.Run("batch", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			batch, _ := NewBatch(options, 0)
			batch.Run(context.Background(), scripts)
			batch.Close()
		}
	})
}
