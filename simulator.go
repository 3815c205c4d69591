package buddy

import (
	"os"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/slog"
)

var defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

// Simulator replays a script of requests and releases against one pool.
// It is not safe for concurrent use, run independent scripts on independent simulators.
type Simulator struct {
	options Options
	log     *slog.Logger

	pool    *Pool
	active  *ledger
	history *History

	// cursor is one past the last placement, used by StrategyNextFit.
	cursor int

	results []Result
	stats   Stats
}

// New returns a simulator with an all free pool.
func New(options Options) (*Simulator, error) {
	if err := checkOptions(options); err != nil {
		return nil, err
	}
	log := options.Logger
	if log == nil {
		log = defaultLogger
	}
	return &Simulator{
		options: options,
		log:     log.With("strategy", options.Strategy.String()),
		pool:    NewPool(options.Capacity),
		active:  newLedger(),
		history: newHistory(options.ChunkSize),
	}, nil
}

// Run processes ops strictly in order and returns their results.
// A failing operation never stops the run.
func (s *Simulator) Run(ops []Process) []Result {
	results := make([]Result, 0, len(ops))
	for _, op := range ops {
		results = append(results, s.Do(op))
	}
	return results
}

// Do dispatches a single operation by its kind.
func (s *Simulator) Do(op Process) Result {
	switch op.Op {
	case OpRequest:
		return s.Allocate(op)
	case OpRelease:
		return s.Release(op.ID)
	}
	return s.finish(Result{
		Process: op,
		Err:     errors.Wrapf(ErrInvalidRequest, "unknown operation %d", op.Op),
	})
}

// Allocate places p in the lowest block the strategy accepts.
func (s *Simulator) Allocate(p Process) Result {
	p.Op = OpRequest
	res := Result{Process: p}

	if err := p.validate(s.pool.Cap()); err != nil {
		res.Err = err
		return s.finish(res)
	}
	if _, ok := s.active.Get(p.ID); ok {
		res.Err = errors.Wrapf(ErrInvalidRequest, "process %d is already allocated", p.ID)
		return s.finish(res)
	}

	block, err := Locate(s.pool, p.Size, s.options.Strategy, s.cursor)
	if err != nil {
		res.Err = errors.Wrapf(err, "allocate %s", p.Name)
		return s.finish(res)
	}

	s.pool.mark(block, p.ID)
	s.cursor = (block.End + 1) % s.pool.Cap()

	res.Placement = Placement{ID: p.ID, Name: p.Name, Size: p.Size, Block: block}
	s.active.Put(p.ID, res.Placement)
	return s.finish(res)
}

// Release frees the run owned by id.
func (s *Simulator) Release(id int) Result {
	res := Result{Process: Release(id)}

	// free units carry owner 0, so ids <= 0 never own a block.
	start := -1
	for i := 0; id > 0 && i < s.pool.Cap(); i++ {
		if s.pool.units[i].Owner == id {
			start = i
			break
		}
	}
	if start < 0 {
		res.Err = errors.Wrapf(ErrNotFound, "release %d", id)
		return s.finish(res)
	}

	end := start
	for end < s.pool.Cap()-1 {
		if u := s.pool.units[end]; u.IsBlockEnd && u.Owner == id {
			break
		}
		end++
	}
	s.pool.unmark(start, end, id)

	placement, _ := s.active.Delete(id)
	placement.ID = id
	placement.Block = newBlock(start, end-start+1)
	res.Placement = placement
	res.Process.Name = placement.Name
	return s.finish(res)
}

// finish records the snapshot, counters and log line of res.
func (s *Simulator) finish(res Result) Result {
	res.Seq = len(s.results)
	s.history.record(s.pool)
	s.stats.add(res)
	s.results = append(s.results, res)

	b := res.Placement.Block
	if res.Err != nil {
		s.log.Warn(res.String(),
			"seq", res.Seq, "id", res.Process.ID, "op", res.Process.Op.String(),
			"status", res.Status().String(), "err", res.Err.Error())
	} else {
		s.log.Debug(res.String(),
			"seq", res.Seq, "id", res.Process.ID, "op", res.Process.Op.String(),
			"name", res.Placement.Name, "size", res.Placement.Size,
			"start", b.Start, "end", b.End, "length", b.Length)
	}
	return res
}

// Options returns the options s was built with.
func (s *Simulator) Options() Options {
	return s.options
}

// Pool returns the live memory map. It must not be kept across operations.
func (s *Simulator) Pool() *Pool {
	return s.pool
}

// History returns the snapshots recorded so far.
func (s *Simulator) History() *History {
	return s.history
}

// Results returns every result since creation or the last Reset.
func (s *Simulator) Results() []Result {
	return append([]Result(nil), s.results...)
}

// Active returns the live placements ordered by start index.
func (s *Simulator) Active() []Placement {
	return s.active.All()
}

// Reset frees the pool and drops history and results.
func (s *Simulator) Reset() {
	s.pool.reset()
	s.active.Clear()
	s.history.reset()
	s.results = s.results[:0]
	s.cursor = 0
	s.stats = Stats{}
}
