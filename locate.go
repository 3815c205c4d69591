package buddy

import (
	"math/bits"
	"strconv"

	"github.com/cockroachdb/errors"
)

// Strategy decides the order in which candidate start indices are probed.
type Strategy uint8

const (
	// StrategyLinear probes 0, 1, 2, ... and takes the lowest accepted run.
	StrategyLinear Strategy = iota

	// StrategyAligned probes multiples of the block length only.
	StrategyAligned

	// StrategyNextFit probes like StrategyLinear from one past the last placement,
	// wrapping around to 0 once.
	StrategyNextFit
)

var strategyNames = [...]string{
	StrategyLinear:  "linear",
	StrategyAligned: "aligned",
	StrategyNextFit: "nextfit",
}

func (s Strategy) valid() bool {
	return int(s) < len(strategyNames)
}

func (s Strategy) String() string {
	if s.valid() {
		return strategyNames[s]
	}
	return "Strategy(" + strconv.Itoa(int(s)) + ")"
}

// ParseStrategy parses the name of a strategy.
func ParseStrategy(name string) (Strategy, error) {
	for i, n := range strategyNames {
		if n == name {
			return Strategy(i), nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidOptions, "unknown strategy %q", name)
}

// BlockLength returns the smallest power of two >= size, size must be positive.
// e.g. 65 -> 2^7 = 128.
func BlockLength(size int) int {
	return 1 << bits.Len(uint(size-1))
}

// accept reports whether a run of length units may start at start.
// The first two indices are exempt from alignment.
func accept(p *Pool, start, length int) bool {
	if start+length > p.Cap() {
		return false
	}
	if start > 1 && start%length != 0 {
		return false
	}
	return p.isFree(start, length)
}

// Locate finds a free run for size units.
// cursor is only used by StrategyNextFit and is the index probing starts from.
func Locate(p *Pool, size int, strategy Strategy, cursor int) (Block, error) {
	if size <= 0 || size > p.Cap() {
		return Block{}, errors.Wrapf(ErrInvalidRequest, "size must be in [1, %d], got %d", p.Cap(), size)
	}
	length := BlockLength(size)

	switch strategy {
	case StrategyAligned:
		for start := 0; start+length <= p.Cap(); start += length {
			if p.isFree(start, length) {
				return newBlock(start, length), nil
			}
		}

	case StrategyNextFit:
		if cursor < 0 || cursor >= p.Cap() {
			cursor = 0
		}
		if start, ok := probe(p, cursor, p.Cap(), length); ok {
			return newBlock(start, length), nil
		}
		if start, ok := probe(p, 0, cursor, length); ok {
			return newBlock(start, length), nil
		}

	default:
		if start, ok := probe(p, 0, p.Cap(), length); ok {
			return newBlock(start, length), nil
		}
	}

	return Block{}, errors.Wrapf(ErrNoSpace, "no free run of %d units", length)
}

// probe tries every start in [from, to) one by one.
func probe(p *Pool, from, to, length int) (int, bool) {
	for start := from; start < to && start+length <= p.Cap(); start++ {
		if accept(p, start, length) {
			return start, true
		}
	}
	return -1, false
}
