package memory

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/zeusync/durability/internal/core/models"
	"github.com/zeusync/durability/internal/core/systems/physics"
)

var _ models.Structure = (*Structure)(nil)

// Structure is an in-memory aggregate of components.
type Structure struct {
	id       string
	size     physics.SizeClass
	disposed atomic.Bool

	mu         sync.RWMutex
	components []models.Component
}

func NewStructure(size physics.SizeClass) *Structure {
	return &Structure{id: uuid.NewString(), size: size}
}

func (s *Structure) ID() string                   { return s.id }
func (s *Structure) SizeClass() physics.SizeClass { return s.size }

// Disposed is safe to call on a nil *Structure.
func (s *Structure) Disposed() bool {
	return s == nil || s.disposed.Load()
}

// Dispose removes the structure from simulation. It cannot be undone.
func (s *Structure) Dispose() {
	s.disposed.Store(true)
}

// Components returns a copy of the component list, or nil once disposed.
func (s *Structure) Components() []models.Component {
	if s.Disposed() {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Component, len(s.components))
	copy(out, s.components)
	return out
}

func (s *Structure) Add(c models.Component) {
	s.mu.Lock()
	s.components = append(s.components, c)
	s.mu.Unlock()
}

func (s *Structure) AddBlock(min physics.Vec3i, integrity float64) *Block {
	b := NewBlock(min, integrity)
	s.Add(b)
	return b
}

func (s *Structure) AddConsumer(min physics.Vec3i, integrity, draw float64) *Consumer {
	c := NewConsumer(min, integrity, draw)
	s.Add(c)
	return c
}

func (s *Structure) AddReactor(min physics.Vec3i, integrity, output float64) *ReactorBlock {
	r := NewReactor(min, integrity, output)
	s.Add(r)
	return r
}
