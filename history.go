package buddy

import (
	"encoding/binary"
	"io"
	"strings"

	"github.com/zeebo/xxh3"
)

// freeChunk marks a chunk whose first unit is free.
const freeChunk = -1

// Snapshot is the chunked occupancy of a pool at one moment.
// One cell per chunk: -1 when the first unit of the chunk is free, else its owner.
type Snapshot []int

// TakeSnapshot samples the first unit of every chunk of p.
func TakeSnapshot(p *Pool, chunkSize int) Snapshot {
	snap := make(Snapshot, p.Cap()/chunkSize)
	for i := range snap {
		if u := p.units[i*chunkSize]; u.Occupied {
			snap[i] = u.Owner
		} else {
			snap[i] = freeChunk
		}
	}
	return snap
}

// String renders one character per chunk, '.' for free chunks.
func (s Snapshot) String() string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, owner := range s {
		sb.WriteByte(ownerChar(owner))
	}
	return sb.String()
}

const ownerChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

func ownerChar(owner int) byte {
	if owner == freeChunk {
		return '.'
	}
	return ownerChars[owner%len(ownerChars)]
}

// History is the append-only sequence of snapshots taken after each operation.
type History struct {
	chunkSize int
	snaps     []Snapshot
}

func newHistory(chunkSize int) *History {
	return &History{chunkSize: chunkSize}
}

func (h *History) record(p *Pool) Snapshot {
	snap := TakeSnapshot(p, h.chunkSize)
	h.snaps = append(h.snaps, snap)
	return snap
}

// ChunkSize returns the units per chunk.
func (h *History) ChunkSize() int {
	return h.chunkSize
}

// Len returns the number of snapshots.
func (h *History) Len() int {
	return len(h.snaps)
}

// At returns a copy of the i-th snapshot.
func (h *History) At(i int) Snapshot {
	return append(Snapshot(nil), h.snaps[i]...)
}

// All returns a copy of every snapshot.
func (h *History) All() []Snapshot {
	all := make([]Snapshot, len(h.snaps))
	for i := range h.snaps {
		all[i] = h.At(i)
	}
	return all
}

// Digest returns the xxh3 fingerprint of the whole sequence.
// Two runs producing the same occupancy over time share a digest.
func (h *History) Digest() uint64 {
	hasher := xxh3.New()
	var buf [8]byte
	for _, snap := range h.snaps {
		for _, owner := range snap {
			binary.LittleEndian.PutUint64(buf[:], uint64(owner))
			hasher.Write(buf[:])
		}
	}
	return hasher.Sum64()
}

// Render writes one line per snapshot.
func (h *History) Render(w io.Writer) error {
	for _, snap := range h.snaps {
		if _, err := io.WriteString(w, snap.String()+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func (h *History) reset() {
	h.snaps = h.snaps[:0]
}
