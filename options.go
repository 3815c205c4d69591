package buddy

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/slog"
)

// Options is the configuration of a Simulator.
type Options struct {
	// Capacity is the total units of the pool, must be a power of two.
	Capacity int

	// ChunkSize is the units sampled by one history cell.
	ChunkSize int

	// Strategy decides where the locator starts probing.
	Strategy Strategy

	// Logger receives one record per operation. nil uses the package default.
	Logger *slog.Logger
}

// DefaultOptions
var DefaultOptions = Options{
	Capacity:  1024, // 1024K = 1M
	ChunkSize: 32,
	Strategy:  StrategyLinear,
}

func checkOptions(options Options) error {
	if options.Capacity <= 0 || options.Capacity&(options.Capacity-1) != 0 {
		return errors.Wrapf(ErrInvalidOptions, "capacity must be a power of two, got %d", options.Capacity)
	}
	if options.ChunkSize <= 0 || options.ChunkSize > options.Capacity || options.Capacity%options.ChunkSize != 0 {
		return errors.Wrapf(ErrInvalidOptions, "chunk size must divide capacity %d, got %d", options.Capacity, options.ChunkSize)
	}
	if !options.Strategy.valid() {
		return errors.Wrapf(ErrInvalidOptions, "unknown strategy %d", options.Strategy)
	}
	return nil
}
