package buddy

import (
	"slices"

	"github.com/tidwall/hashmap"
)

// ledger maps the id of every active process to its placement.
//
//	map[id]Placement ----+
//	                     |
//	                     v
//	                   start                 end
//	+-----+------------+-------------------------+-----+
//	| ... | free units | units owned by id       | ... |
//	+-----+------------+-------------------------+-----+
//	                   |<------- Length -------->|
type ledger struct {
	m *hashmap.Map[int, Placement]
}

func newLedger() *ledger {
	return &ledger{m: hashmap.New[int, Placement](8)}
}

func (l *ledger) Get(id int) (Placement, bool) {
	if l.m.Len() == 0 {
		return Placement{}, false
	}
	return l.m.Get(id)
}

func (l *ledger) Put(id int, p Placement) {
	l.m.Set(id, p)
}

func (l *ledger) Delete(id int) (Placement, bool) {
	return l.m.Delete(id)
}

func (l *ledger) Len() int {
	return l.m.Len()
}

// All returns the placements ordered by start index.
func (l *ledger) All() []Placement {
	all := make([]Placement, 0, l.m.Len())
	l.m.Scan(func(_ int, p Placement) bool {
		all = append(all, p)
		return true
	})
	slices.SortFunc(all, func(a, b Placement) int {
		return a.Block.Start - b.Block.Start
	})
	return all
}

func (l *ledger) Clear() {
	l.m = hashmap.New[int, Placement](8)
}
