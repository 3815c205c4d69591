package buddy

import (
	"strconv"

	"github.com/cockroachdb/errors"
)

// OpKind is the kind of an operation, either OpRequest or OpRelease.
type OpKind uint8

const (
	opUnknown OpKind = iota
	OpRequest
	OpRelease
)

func (k OpKind) String() string {
	switch k {
	case OpRequest:
		return "Request"
	case OpRelease:
		return "Release"
	}
	return "OpKind(" + strconv.Itoa(int(k)) + ")"
}

// ParseOpKind parses "Request" or "Release".
func ParseOpKind(s string) (OpKind, error) {
	switch s {
	case "Request":
		return OpRequest, nil
	case "Release":
		return OpRelease, nil
	}
	return opUnknown, errors.Wrapf(ErrInvalidRequest, "unknown operation %q", s)
}

func (k OpKind) MarshalJSON() ([]byte, error) {
	if k != OpRequest && k != OpRelease {
		return nil, errors.Wrapf(ErrInvalidRequest, "unknown operation %d", k)
	}
	return []byte(strconv.Quote(k.String())), nil
}

func (k *OpKind) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return errors.Wrapf(ErrInvalidRequest, "operation must be a string, got %s", b)
	}
	*k, err = ParseOpKind(s)
	return err
}

// Process is one entry of a script. For a release only ID is meaningful.
type Process struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
	Size int    `json:"size,omitempty"`
	Op   OpKind `json:"op"`
}

// Request returns a request for size units.
func Request(id int, name string, size int) Process {
	return Process{ID: id, Name: name, Size: size, Op: OpRequest}
}

// Release returns a release of the block owned by id.
func Release(id int) Process {
	return Process{ID: id, Op: OpRelease}
}

// validate checks the fields the operation kind needs against a pool of capacity units.
func (p Process) validate(capacity int) error {
	if p.ID <= 0 {
		return errors.Wrapf(ErrInvalidRequest, "id must be positive, got %d", p.ID)
	}
	switch p.Op {
	case OpRequest:
		if p.Name == "" {
			return errors.Wrapf(ErrInvalidRequest, "request %d has no name", p.ID)
		}
		if p.Size <= 0 || p.Size > capacity {
			return errors.Wrapf(ErrInvalidRequest, "size must be in [1, %d], got %d", capacity, p.Size)
		}
	case OpRelease:
	default:
		return errors.Wrapf(ErrInvalidRequest, "unknown operation %d", p.Op)
	}
	return nil
}
