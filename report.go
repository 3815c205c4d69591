package buddy

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Placement is where a request has been placed.
type Placement struct {
	ID    int
	Name  string
	Size  int
	Block Block
}

// InternalFragmentation returns the units allocated beyond the request.
func (p Placement) InternalFragmentation() int {
	return p.Block.Length - p.Size
}

// Status classifies the outcome of an operation.
type Status uint8

const (
	StatusOK Status = iota
	StatusNoSpace
	StatusNotFound
	StatusInvalid
)

var statusNames = [...]string{
	StatusOK:       "ok",
	StatusNoSpace:  "no_space",
	StatusNotFound: "not_found",
	StatusInvalid:  "invalid",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", s)
}

// Result is the outcome of one operation.
// Placement is set on success, and for a release it is the freed block.
type Result struct {
	Seq       int
	Process   Process
	Placement Placement
	Err       error
}

// Status classifies r.Err.
func (r Result) Status() Status {
	switch {
	case r.Err == nil:
		return StatusOK
	case errors.Is(r.Err, ErrNoSpace):
		return StatusNoSpace
	case errors.Is(r.Err, ErrNotFound):
		return StatusNotFound
	default:
		return StatusInvalid
	}
}

// OK reports whether the operation changed the pool.
func (r Result) OK() bool {
	return r.Err == nil
}

// String returns the human readable report of r.
func (r Result) String() string {
	p, b := r.Placement, r.Placement.Block

	switch r.Status() {
	case StatusOK:
		if r.Process.Op == OpRelease {
			return fmt.Sprintf("Process %s has been deallocated from %d to %d", p.Name, b.Start, b.End)
		}
		return fmt.Sprintf("Process %s allocated memory of %dK from %d to %d with actual size of %dK",
			p.Name, b.Length, b.Start, b.End, p.Size)

	case StatusNoSpace:
		return fmt.Sprintf("No space available to allocate process %s of %dK",
			r.Process.Name, BlockLength(r.Process.Size))

	case StatusNotFound:
		return fmt.Sprintf("Process %d has no memory to deallocate", r.Process.ID)
	}
	return fmt.Sprintf("Invalid request for process %d: %v", r.Process.ID, r.Err)
}
