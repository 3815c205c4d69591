package buddy

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestPoolMark(t *testing.T) {
	assert := assert.New(t)

	p := NewPool(64)
	assert.Equal(64, p.Cap())
	assert.Equal(64, p.Free())

	p.mark(newBlock(16, 16), 3)
	assert.Equal(48, p.Free())
	assert.Equal(Unit{Owner: 3, Occupied: true, IsBlockStart: true}, p.Unit(16))
	assert.Equal(Unit{Owner: 3, Occupied: true}, p.Unit(20))
	assert.Equal(Unit{Owner: 3, Occupied: true, IsBlockEnd: true}, p.Unit(31))
	assert.Equal(Unit{}, p.Unit(32))
	assert.Nil(p.Validate())

	// single unit block carries both markers.
	p.mark(newBlock(0, 1), 9)
	assert.Equal(Unit{Owner: 9, Occupied: true, IsBlockStart: true, IsBlockEnd: true}, p.Unit(0))
	assert.Nil(p.Validate())

	p.unmark(16, 31, 3)
	assert.Equal(63, p.Free())
	assert.Nil(p.Validate())

	// copies do not alias the map.
	units := p.Units()
	units[0] = Unit{}
	assert.Equal(9, p.Unit(0).Owner)

	p.reset()
	assert.Equal(64, p.Free())
}

func TestPoolRuns(t *testing.T) {
	assert := assert.New(t)

	p := NewPool(32)
	p.mark(newBlock(0, 4), 1)
	p.mark(newBlock(4, 4), 2)
	p.mark(newBlock(16, 8), 3)

	assert.Equal([]Block{
		{Start: 0, End: 3, Length: 4},
		{Start: 4, End: 7, Length: 4},
		{Start: 16, End: 23, Length: 8},
	}, p.Runs())

	assert.Equal([]Block{
		{Start: 8, End: 15, Length: 8},
		{Start: 24, End: 31, Length: 8},
	}, p.FreeRuns())

	assert.Empty(NewPool(8).Runs())
	assert.Equal([]Block{{Start: 0, End: 7, Length: 8}}, NewPool(8).FreeRuns())
}

func TestPoolValidate(t *testing.T) {
	tests := []struct {
		name  string
		units map[int]Unit
	}{
		{"occupied_without_owner", map[int]Unit{0: {Occupied: true, IsBlockStart: true, IsBlockEnd: true}}},
		{"owner_without_occupied", map[int]Unit{0: {Owner: 1, IsBlockStart: true, IsBlockEnd: true}}},
		{"free_with_marker", map[int]Unit{2: {IsBlockEnd: true}}},
		{"no_start", map[int]Unit{0: {Owner: 1, Occupied: true, IsBlockEnd: true}}},
		{"no_end", map[int]Unit{0: {Owner: 1, Occupied: true, IsBlockStart: true}}},
		{"no_end_at_tail", map[int]Unit{7: {Owner: 1, Occupied: true, IsBlockStart: true}}},
		{"interrupted", map[int]Unit{
			0: {Owner: 1, Occupied: true, IsBlockStart: true},
			1: {Owner: 2, Occupied: true, IsBlockEnd: true},
		}},
		{"owner_twice", map[int]Unit{
			0: {Owner: 1, Occupied: true, IsBlockStart: true, IsBlockEnd: true},
			4: {Owner: 1, Occupied: true, IsBlockStart: true, IsBlockEnd: true},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPool(8)
			for i, u := range tt.units {
				p.units[i] = u
			}
			assert.True(t, errors.Is(p.Validate(), ErrCorrupted))
		})
	}
}
