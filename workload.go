package buddy

import (
	"github.com/brianvoe/gofakeit/v6"
)

// Workload describes a random script.
type Workload struct {
	// Seed makes Generate deterministic.
	Seed int64

	// Count is the number of operations.
	Count int

	// MaxSize bounds the size of each request, sizes are in [1, MaxSize].
	MaxSize int

	// ReleaseRatio is the chance that an operation releases an active process.
	ReleaseRatio float64
}

// DefaultWorkload
var DefaultWorkload = Workload{
	Seed:         1,
	Count:        64,
	MaxSize:      256,
	ReleaseRatio: 0.4,
}

// Generate returns Count operations. Ids start at 1 and are never reused,
// a release always targets an id requested earlier in the script.
func (w Workload) Generate() []Process {
	f := gofakeit.New(w.Seed)
	maxSize := max(w.MaxSize, 1)

	ops := make([]Process, 0, max(w.Count, 0))
	var live []int
	nextID := 1

	for len(ops) < w.Count {
		if len(live) > 0 && f.Float64Range(0, 1) < w.ReleaseRatio {
			i := f.Number(0, len(live)-1)
			ops = append(ops, Release(live[i]))
			live = append(live[:i], live[i+1:]...)
			continue
		}
		ops = append(ops, Request(nextID, f.FirstName(), f.Number(1, maxSize)))
		live = append(live, nextID)
		nextID++
	}
	return ops
}
