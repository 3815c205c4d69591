package buddy

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioScript = `[
	{"id": 1, "name": "A", "size": 65, "op": "Request"},
	{"id": 2, "name": "B", "size": 30, "op": "Request"},
	{"id": 3, "name": "C", "size": 94, "op": "Request"},
	{"id": 4, "name": "D", "size": 34, "op": "Request"},
	{"id": 5, "name": "E", "size": 136, "op": "Request"},
	{"id": 4, "op": "Release"}
]`

func TestParseScript(t *testing.T) {
	assert := assert.New(t)

	ops, err := ParseScript([]byte(scenarioScript))
	assert.Nil(err)
	assert.Equal(scenario(), ops)

	src, err := MarshalScript(ops)
	assert.Nil(err)
	again, err := ParseScript(src)
	assert.Nil(err)
	assert.Equal(ops, again)

	_, err = ParseScript([]byte(`[{"id": 1, "op": "Grow"}]`))
	assert.True(errors.Is(err, ErrInvalidRequest))

	_, err = ParseScript([]byte(`{"id": 1}`))
	assert.NotNil(err)

	ops, err = ParseScript([]byte(`[]`))
	assert.Nil(err)
	assert.Empty(ops)
}

func TestTrace(t *testing.T) {
	assert := assert.New(t)

	s := newTestSimulator(t, StrategyLinear)
	s.Run(scenario())
	s.Release(9)

	tr := s.Trace()
	assert.Equal(1024, tr.Capacity)
	assert.Equal(32, tr.ChunkSize)
	assert.Equal("linear", tr.Strategy)
	assert.Equal(s.History().Digest(), tr.Digest)
	require.Len(t, tr.Results, 7)
	require.Len(t, tr.History, 7)

	d := tr.Results[3]
	assert.Equal(TraceEntry{
		Seq:     3,
		ID:      4,
		Name:    "D",
		Op:      "Request",
		Size:    34,
		Block:   &Block{Start: 192, End: 255, Length: 64},
		Status:  "ok",
		Message: "Process D allocated memory of 64K from 192 to 255 with actual size of 34K",
	}, d)

	miss := tr.Results[6]
	assert.Nil(miss.Block)
	assert.Equal("not_found", miss.Status)
	assert.Equal("Release", miss.Op)

	// the export does not alias the history.
	tr.History[0][0] = 42
	assert.Equal(1, s.History().At(0)[0])

	buf, err := tr.MarshalBinary()
	assert.Nil(err)
	got, err := UnmarshalTrace(buf)
	assert.Nil(err)
	assert.Equal(tr, got)

	_, err = UnmarshalTrace([]byte("not a trace"))
	assert.NotNil(err)
}
