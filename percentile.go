package buddy

import (
	"slices"
	"time"
)

const maxLatencySamples = 100 * 10000

// Latency collects operation durations, keeping the latest maxLatencySamples.
//
// data is a ring in arrival order, pos is the oldest sample once the ring is full.
// Percentiles read a sorted copy, data itself is never reordered.
type Latency struct {
	data   []time.Duration
	pos    int
	sorted []time.Duration
	dirty  bool
}

// NewLatency
func NewLatency(data ...time.Duration) *Latency {
	l := &Latency{}
	for _, d := range data {
		l.Add(d)
	}
	return l
}

// Add
func (l *Latency) Add(d time.Duration) {
	l.dirty = true
	if len(l.data) == maxLatencySamples {
		l.data[l.pos] = d
		l.pos = (l.pos + 1) % maxLatencySamples
	} else {
		l.data = append(l.data, d)
	}
}

// Time runs f and records its duration.
func (l *Latency) Time(f func()) {
	start := time.Now()
	f()
	l.Add(time.Since(start))
}

// Len
func (l *Latency) Len() int {
	return len(l.data)
}

func (l *Latency) sort() []time.Duration {
	if l.dirty {
		l.sorted = append(l.sorted[:0], l.data...)
		slices.Sort(l.sorted)
		l.dirty = false
	}
	return l.sorted
}

// Percentile returns the sample at p percent, p in [0, 100].
func (l *Latency) Percentile(p float64) time.Duration {
	if len(l.data) == 0 {
		return 0
	}
	sorted := l.sort()
	i := int(p / 100 * float64(len(sorted)))
	return sorted[max(0, min(i, len(sorted)-1))]
}

// Min
func (l *Latency) Min() time.Duration {
	return l.Percentile(0)
}

// Max
func (l *Latency) Max() time.Duration {
	return l.Percentile(100)
}

// Avg
func (l *Latency) Avg() time.Duration {
	if len(l.data) == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range l.data {
		sum += d
	}
	return sum / time.Duration(len(l.data))
}
