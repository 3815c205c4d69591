package buddy

import (
	"context"
	"encoding/binary"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/iter"
	"github.com/zeebo/xxh3"
	"golang.org/x/exp/slog"
)

// xxh3Hasher lets bigcache shard keys with xxh3.
type xxh3Hasher struct{}

func (xxh3Hasher) Sum64(key string) uint64 {
	return xxh3.HashString(key)
}

// Batch runs independent scripts in parallel, each on its own Simulator.
// Simulations are deterministic, so a script already run with the same options
// is served from a trace cache.
type Batch struct {
	options Options
	workers int
	log     *slog.Logger
	cache   *bigcache.BigCache

	hits atomic.Int64
}

// NewBatch returns a batch running at most workers scripts at once, 0 means GOMAXPROCS.
func NewBatch(options Options, workers int) (*Batch, error) {
	if err := checkOptions(options); err != nil {
		return nil, err
	}
	log := options.Logger
	if log == nil {
		log = defaultLogger
	}

	config := bigcache.Config{
		Shards:             16,
		LifeWindow:         10 * time.Minute,
		MaxEntriesInWindow: 1024,
		MaxEntrySize:       4 * 1024,
		Hasher:             xxh3Hasher{},
		Logger:             slog.NewLogLogger(log.Handler(), slog.LevelDebug),
	}
	cache, err := bigcache.New(context.Background(), config)
	if err != nil {
		return nil, errors.Wrap(err, "batch: init trace cache")
	}

	return &Batch{options: options, workers: workers, log: log, cache: cache}, nil
}

// Run simulates every script and returns their traces in input order.
// It stops starting new scripts once ctx is done.
func (b *Batch) Run(ctx context.Context, scripts [][]Process) ([]*Trace, error) {
	mapper := iter.Mapper[[]Process, *Trace]{MaxGoroutines: b.workers}

	return mapper.MapErr(scripts, func(ops *[]Process) (*Trace, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return b.run(*ops)
	})
}

func (b *Batch) run(ops []Process) (*Trace, error) {
	key, err := b.scriptKey(ops)
	if err != nil {
		return nil, err
	}

	if buf, err := b.cache.Get(key); err == nil {
		if t, err := UnmarshalTrace(buf); err == nil {
			b.hits.Add(1)
			return t, nil
		}
	}

	sim, err := New(b.options)
	if err != nil {
		return nil, err
	}
	sim.Run(ops)
	t := sim.Trace()

	buf, err := t.MarshalBinary()
	if err != nil {
		return nil, err
	}
	if err := b.cache.Set(key, buf); err != nil {
		b.log.Debug("trace not cached", "key", key, "err", err)
	}
	return t, nil
}

// scriptKey fingerprints the options and the script.
func (b *Batch) scriptKey(ops []Process) (string, error) {
	src, err := MarshalScript(ops)
	if err != nil {
		return "", errors.Wrap(err, "batch: encode script")
	}
	h := xxh3.New()
	var buf [8]byte
	for _, v := range []int{b.options.Capacity, b.options.ChunkSize, int(b.options.Strategy)} {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}
	h.Write(src)
	return strconv.FormatUint(h.Sum64(), 16), nil
}

// CacheHits returns how many scripts were served from the trace cache.
func (b *Batch) CacheHits() int64 {
	return b.hits.Load()
}

// Close releases the trace cache.
func (b *Batch) Close() error {
	return b.cache.Close()
}
