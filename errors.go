package buddy

import "github.com/cockroachdb/errors"

var (
	// ErrNoSpace indicates that no free, aligned run of the rounded length exists.
	ErrNoSpace = errors.New("buddy: no space available")

	// ErrNotFound indicates a release of an id that owns no unit in the pool.
	ErrNotFound = errors.New("buddy: process not found")

	// ErrInvalidRequest indicates a request rejected before reaching the locator.
	ErrInvalidRequest = errors.New("buddy: invalid request")

	// ErrInvalidOptions indicates a configuration that cannot build a pool.
	ErrInvalidOptions = errors.New("buddy: invalid options")

	// ErrCorrupted indicates that the memory map breaks the block invariants.
	ErrCorrupted = errors.New("buddy: corrupted memory map")
)
