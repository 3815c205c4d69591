package buddy

import (
	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/s2"
)

// ParseScript decodes a JSON array of processes.
func ParseScript(src []byte) ([]Process, error) {
	var ops []Process
	if err := sonic.Unmarshal(src, &ops); err != nil {
		return nil, errors.Wrap(err, "parse script")
	}
	return ops, nil
}

// MarshalScript encodes ops as a JSON array.
func MarshalScript(ops []Process) ([]byte, error) {
	return sonic.Marshal(ops)
}

// TraceEntry is the exported form of a Result.
type TraceEntry struct {
	Seq     int    `json:"seq"`
	ID      int    `json:"id"`
	Name    string `json:"name,omitempty"`
	Op      string `json:"op"`
	Size    int    `json:"size,omitempty"`
	Block   *Block `json:"block,omitempty"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Trace is a finished simulation: its configuration, every result and every snapshot.
type Trace struct {
	Capacity  int          `json:"capacity"`
	ChunkSize int          `json:"chunk_size"`
	Strategy  string       `json:"strategy"`
	Results   []TraceEntry `json:"results"`
	History   [][]int      `json:"history"`
	Digest    uint64       `json:"digest"`
}

// Trace exports the current state of s.
func (s *Simulator) Trace() *Trace {
	t := &Trace{
		Capacity:  s.options.Capacity,
		ChunkSize: s.options.ChunkSize,
		Strategy:  s.options.Strategy.String(),
		Results:   make([]TraceEntry, 0, len(s.results)),
		History:   make([][]int, 0, s.history.Len()),
		Digest:    s.history.Digest(),
	}

	for _, res := range s.results {
		e := TraceEntry{
			Seq:     res.Seq,
			ID:      res.Process.ID,
			Name:    res.Process.Name,
			Op:      res.Process.Op.String(),
			Size:    res.Process.Size,
			Status:  res.Status().String(),
			Message: res.String(),
		}
		if res.OK() {
			b := res.Placement.Block
			e.Block = &b
		}
		t.Results = append(t.Results, e)
	}

	for _, snap := range s.history.snaps {
		t.History = append(t.History, append([]int(nil), snap...))
	}
	return t
}

// MarshalBinary encodes t as s2 compressed JSON.
func (t *Trace) MarshalBinary() ([]byte, error) {
	src, err := sonic.Marshal(t)
	if err != nil {
		return nil, errors.Wrap(err, "marshal trace")
	}
	return s2.Encode(nil, src), nil
}

// UnmarshalTrace decodes the output of Trace.MarshalBinary.
func UnmarshalTrace(src []byte) (*Trace, error) {
	buf, err := s2.Decode(nil, src)
	if err != nil {
		return nil, errors.Wrap(err, "decompress trace")
	}
	var t Trace
	if err := sonic.Unmarshal(buf, &t); err != nil {
		return nil, errors.Wrap(err, "unmarshal trace")
	}
	return &t, nil
}
