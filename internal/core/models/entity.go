package models

import (
	"context"

	"github.com/zeusync/durability/internal/core/systems/physics"
)

// Registry enumerates the structures the host currently simulates.
type Registry interface {
	// LiveStructures returns a snapshot of the structures at call time.
	// Entries may be nil or become disposed while the caller iterates.
	LiveStructures(ctx context.Context) ([]Structure, error)
}

// Structure is a host-owned aggregate of components.
type Structure interface {
	ID() string
	// Disposed reports that the host has removed the structure from the world.
	Disposed() bool
	SizeClass() physics.SizeClass
	Components() []Component
}

// Component is a single block of a structure. Integrity is a fraction in [0, 1].
type Component interface {
	physics.Positioned
	Integrity() float64
	SetIntegrity(float64)
}

// PowerConsumer is implemented by components that draw power and wear with use.
type PowerConsumer interface {
	Component
	PowerDraw() float64
}

// Reactor is implemented by components that produce power and can leak
// radiation into the rest of their structure.
type Reactor interface {
	Component
	PowerOutput() float64
}

// AsPowerConsumer is the variant query for power-consuming components.
func AsPowerConsumer(c Component) (PowerConsumer, bool) {
	pc, ok := c.(PowerConsumer)
	return pc, ok
}

// AsReactor is the variant query for reactor components.
func AsReactor(c Component) (Reactor, bool) {
	r, ok := c.(Reactor)
	return r, ok
}
