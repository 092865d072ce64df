package vars

import (
	"math"
	"sync/atomic"
)

// AtomicFloat64 stores a float64 as its IEEE-754 bits in a single machine word,
// so readers never observe a torn value.
type AtomicFloat64 struct {
	bits    atomic.Uint64
	version atomic.Uint64
	dirty   atomic.Bool
}

// NewAtomicFloat64 creates a new AtomicFloat64 with the given initial value
func NewAtomicFloat64(initialValue float64) *AtomicFloat64 {
	a := &AtomicFloat64{}
	a.bits.Store(math.Float64bits(initialValue))
	a.version.Store(1)
	return a
}

// Get returns the current value atomically
func (a *AtomicFloat64) Get() float64 {
	return math.Float64frombits(a.bits.Load())
}

// Set sets the value atomically
func (a *AtomicFloat64) Set(value float64) {
	a.bits.Store(math.Float64bits(value))
	a.version.Add(1)
	a.dirty.Store(true)
}

// Swap atomically swaps the value and returns the old value
func (a *AtomicFloat64) Swap(value float64) float64 {
	old := a.bits.Swap(math.Float64bits(value))
	a.version.Add(1)
	a.dirty.Store(true)
	return math.Float64frombits(old)
}

// CompareAndSwap compares bit patterns, so NaN only matches the same NaN payload.
func (a *AtomicFloat64) CompareAndSwap(old, value float64) bool {
	if a.bits.CompareAndSwap(math.Float64bits(old), math.Float64bits(value)) {
		a.version.Add(1)
		a.dirty.Store(true)
		return true
	}
	return false
}

// Version returns the current version number
func (a *AtomicFloat64) Version() uint64 {
	return a.version.Load()
}

// IsDirty returns true if the value has been modified since last clean
func (a *AtomicFloat64) IsDirty() bool {
	return a.dirty.Load()
}

// MarkClean marks the value as clean
func (a *AtomicFloat64) MarkClean() {
	a.dirty.Store(false)
}
