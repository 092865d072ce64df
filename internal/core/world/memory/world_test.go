package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/durability/internal/core/models"
	"github.com/zeusync/durability/internal/core/systems/physics"
)

func TestWorldAddRemove(t *testing.T) {
	w := New(4)
	a := NewStructure(physics.SizeSmall)
	b := NewStructure(physics.SizeLarge)
	w.Add(a)
	w.Add(b)
	w.Add(a)
	require.Equal(t, 2, w.Len())

	got, ok := w.Get(a.ID())
	require.True(t, ok)
	assert.Same(t, a, got)

	require.True(t, w.Remove(a.ID()))
	assert.False(t, w.Remove(a.ID()))
	assert.True(t, a.Disposed())
	assert.Nil(t, a.Components())
	assert.Equal(t, 1, w.Len())
}

func TestLiveStructuresSkipsDisposed(t *testing.T) {
	w := New(0)
	keep := NewStructure(physics.SizeSmall)
	gone := NewStructure(physics.SizeSmall)
	w.Add(keep)
	w.Add(gone)
	gone.Dispose()

	live, err := w.LiveStructures(context.Background())
	require.NoError(t, err)
	require.Len(t, live, 1)
	assert.Equal(t, keep.ID(), live[0].ID())
}

func TestLiveStructuresHonoursContext(t *testing.T) {
	w := New(2)
	w.Add(NewStructure(physics.SizeSmall))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := w.LiveStructures(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestComponentVariants(t *testing.T) {
	s := NewStructure(physics.SizeLarge)
	s.AddBlock(physics.Vec3i{}, 1)
	s.AddConsumer(physics.Vec3i{X: 1}, 0.8, 2)
	s.AddReactor(physics.Vec3i{X: 2}, 0.6, 10)

	var consumers, reactors int
	for _, c := range s.Components() {
		if pc, ok := models.AsPowerConsumer(c); ok {
			consumers++
			assert.Equal(t, 2.0, pc.PowerDraw())
		}
		if r, ok := models.AsReactor(c); ok {
			reactors++
			assert.Equal(t, 10.0, r.PowerOutput())
		}
	}
	assert.Equal(t, 1, consumers)
	assert.Equal(t, 1, reactors)

	var nilStructure *Structure
	assert.True(t, nilStructure.Disposed())
}

func TestSeed(t *testing.T) {
	w := New(0)
	cfg := DefaultSeedConfig()
	cfg.Structures = 3
	cfg.ComponentsPerStructure = 10
	cfg.ReactorsPerStructure = 2
	cfg.ConsumersPerStructure = 3

	structures := Seed(w, cfg)
	require.Len(t, structures, 3)
	assert.Equal(t, 3, w.Len())

	for _, s := range structures {
		var reactors, consumers int
		for _, c := range s.Components() {
			assert.Equal(t, 1.0, c.Integrity())
			if _, ok := models.AsReactor(c); ok {
				reactors++
			}
			if _, ok := models.AsPowerConsumer(c); ok {
				consumers++
			}
		}
		assert.Len(t, s.Components(), 10)
		assert.Equal(t, 2, reactors)
		assert.Equal(t, 3, consumers)
	}
}
