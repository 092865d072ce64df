package durability

import (
	"time"

	"github.com/google/uuid"
)

// PassStatus is the outcome of one scan pass.
type PassStatus uint8

const (
	PassSucceeded PassStatus = iota
	// PassPartial means at least one structure faulted and was skipped.
	PassPartial
	// PassFailed means the pass aborted; some structures may not have been visited.
	PassFailed
)

func (s PassStatus) String() string {
	switch s {
	case PassSucceeded:
		return "succeeded"
	case PassPartial:
		return "partial"
	case PassFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// PassResult describes a single scan pass.
type PassResult struct {
	ID      uuid.UUID
	Status  PassStatus
	Err     error
	Started time.Time
	// Duration is the wall time the pass took.
	Duration time.Duration
	// Elapsed is the simulated time integrated by the pass.
	Elapsed time.Duration

	Structures int // structures visited
	Disposed   int // nil or disposed structures skipped
	Components int // components seen on visited structures
	Damaged    int // components whose integrity was written
	Inert      int // components at or below IntegrityFloor
	Faults     int // structures that panicked

	RatesVersion uint64
}

// Profile is the self-paced loop's running throughput average.
type Profile struct {
	At              time.Time
	Iterations      uint64
	AvgLoopInterval time.Duration
	AvgLoopTime     time.Duration
}
