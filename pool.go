package buddy

import "github.com/cockroachdb/errors"

// Unit is one cell of the memory map.
type Unit struct {
	Owner        int
	Occupied     bool
	IsBlockStart bool
	IsBlockEnd   bool
}

// Block is a contiguous run of units, End inclusive.
type Block struct {
	Start  int `json:"start"`
	End    int `json:"end"`
	Length int `json:"length"`
}

func newBlock(start, length int) Block {
	return Block{Start: start, End: start + length - 1, Length: length}
}

// Pool is the memory map at one unit granularity.
// Its length is fixed at creation, only the simulator mutates it.
type Pool struct {
	units []Unit
}

// NewPool returns an all free pool of capacity units.
func NewPool(capacity int) *Pool {
	return &Pool{units: make([]Unit, capacity)}
}

// Cap returns the number of units.
func (p *Pool) Cap() int {
	return len(p.units)
}

// Unit returns a copy of the unit at i.
func (p *Pool) Unit(i int) Unit {
	return p.units[i]
}

// Units returns a copy of the whole map.
func (p *Pool) Units() []Unit {
	units := make([]Unit, len(p.units))
	copy(units, p.units)
	return units
}

// Free returns the count of free units.
func (p *Pool) Free() (n int) {
	for _, u := range p.units {
		if !u.Occupied {
			n++
		}
	}
	return
}

// isFree reports whether every unit of [start, start+length) is free.
func (p *Pool) isFree(start, length int) bool {
	for _, u := range p.units[start : start+length] {
		if u.Occupied {
			return false
		}
	}
	return true
}

// mark assigns block to owner and sets its boundary markers.
func (p *Pool) mark(b Block, owner int) {
	for i := b.Start; i <= b.End; i++ {
		p.units[i] = Unit{Owner: owner, Occupied: true}
	}
	p.units[b.Start].IsBlockStart = true
	p.units[b.End].IsBlockEnd = true
}

// unmark resets every unit of [start, end] owned by owner.
func (p *Pool) unmark(start, end, owner int) {
	for i := start; i <= end; i++ {
		if p.units[i].Owner == owner {
			p.units[i] = Unit{}
		}
	}
}

// reset frees the whole map.
func (p *Pool) reset() {
	clear(p.units)
}

// Runs returns the occupied runs in address order.
func (p *Pool) Runs() []Block {
	var runs []Block
	for i := 0; i < len(p.units); {
		if !p.units[i].Occupied {
			i++
			continue
		}
		start := i
		for i < len(p.units) && p.units[i].Owner == p.units[start].Owner {
			i++
			if p.units[i-1].IsBlockEnd {
				break
			}
		}
		runs = append(runs, newBlock(start, i-start))
	}
	return runs
}

// FreeRuns returns the maximal free runs in address order.
func (p *Pool) FreeRuns() []Block {
	var runs []Block
	for i := 0; i < len(p.units); {
		if p.units[i].Occupied {
			i++
			continue
		}
		start := i
		for i < len(p.units) && !p.units[i].Occupied {
			i++
		}
		runs = append(runs, newBlock(start, i-start))
	}
	return runs
}

// Validate checks the block invariants of the map:
// occupancy follows the owner, every run has exactly one start and one end marker,
// and no owner appears in more than one run.
func (p *Pool) Validate() error {
	seen := make(map[int]int)
	inRun := false
	owner := 0

	for i, u := range p.units {
		if u.Occupied != (u.Owner != 0) {
			return errors.Wrapf(ErrCorrupted, "unit %d: occupied=%v owner=%d", i, u.Occupied, u.Owner)
		}
		if !u.Occupied {
			if u.IsBlockStart || u.IsBlockEnd {
				return errors.Wrapf(ErrCorrupted, "unit %d: free unit carries a block marker", i)
			}
			if inRun {
				return errors.Wrapf(ErrCorrupted, "unit %d: run of %d has no end marker", i, owner)
			}
			continue
		}

		if !inRun {
			if !u.IsBlockStart {
				return errors.Wrapf(ErrCorrupted, "unit %d: run of %d has no start marker", i, u.Owner)
			}
			if at, ok := seen[u.Owner]; ok {
				return errors.Wrapf(ErrCorrupted, "unit %d: owner %d already owns a run at %d", i, u.Owner, at)
			}
			seen[u.Owner] = i
			inRun, owner = true, u.Owner
		} else if u.Owner != owner || u.IsBlockStart {
			return errors.Wrapf(ErrCorrupted, "unit %d: run of %d interrupted", i, owner)
		}

		if u.IsBlockEnd {
			inRun = false
		}
	}

	if inRun {
		return errors.Wrapf(ErrCorrupted, "run of %d has no end marker", owner)
	}
	return nil
}
