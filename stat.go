package buddy

// Stats is the running summary of a simulation.
type Stats struct {
	Operations  int
	Allocations int
	Releases    int
	NoSpace     int
	NotFound    int
	Invalid     int

	ActiveBlocks   int
	UsedUnits      int
	RequestedUnits int
	FreeUnits      int
	LargestFreeRun int
}

func (st *Stats) add(res Result) {
	st.Operations++
	switch res.Status() {
	case StatusOK:
		if res.Process.Op == OpRelease {
			st.Releases++
		} else {
			st.Allocations++
		}
	case StatusNoSpace:
		st.NoSpace++
	case StatusNotFound:
		st.NotFound++
	default:
		st.Invalid++
	}
}

// Stats
func (s *Simulator) Stats() Stats {
	stat := s.stats
	for _, p := range s.active.All() {
		stat.ActiveBlocks++
		stat.UsedUnits += p.Block.Length
		stat.RequestedUnits += p.Size
	}
	stat.FreeUnits = s.pool.Free()
	for _, run := range s.pool.FreeRuns() {
		stat.LargestFreeRun = max(stat.LargestFreeRun, run.Length)
	}
	return stat
}

// InternalFragmentation returns the allocated units nobody asked for.
func (st Stats) InternalFragmentation() int {
	return st.UsedUnits - st.RequestedUnits
}

// Utilization returns the percent of the pool held by active blocks.
func (st Stats) Utilization() float64 {
	total := st.UsedUnits + st.FreeUnits
	if total == 0 {
		return 0
	}
	return float64(st.UsedUnits) / float64(total) * 100
}
