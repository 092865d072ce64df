package durability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/durability/internal/core/models"
	"github.com/zeusync/durability/internal/core/systems/physics"
	"github.com/zeusync/durability/internal/core/tuning"
	"github.com/zeusync/durability/internal/core/world/memory"
)

// registryFunc adapts a function to models.Registry.
type registryFunc func(ctx context.Context) ([]models.Structure, error)

func (f registryFunc) LiveStructures(ctx context.Context) ([]models.Structure, error) {
	return f(ctx)
}

func staticRegistry(structures ...models.Structure) registryFunc {
	return func(context.Context) ([]models.Structure, error) {
		return structures, nil
	}
}

// disposingStructure disposes itself while its components are being read.
type disposingStructure struct {
	*memory.Structure
}

func (d disposingStructure) Components() []models.Component {
	out := d.Structure.Components()
	d.Structure.Dispose()
	return out
}

// panickingStructure faults while a pass reads it.
type panickingStructure struct {
	*memory.Structure
}

func (panickingStructure) Components() []models.Component {
	panic("corrupted component table")
}

func mustRates(v tuning.Values) *tuning.Rates {
	r, err := tuning.NewRates(v)
	if err != nil {
		panic(err)
	}
	return r
}

func newSolarScanner(registry models.Registry, workers int) *Scanner {
	return NewScanner(registry, mustRates(solarOnly()), NewModel(WithRandom(zeroDraw)), workers)
}

func TestScanDamagesEveryLiveStructure(t *testing.T) {
	w := memory.New(4)
	small := memory.NewStructure(physics.SizeSmall)
	a := small.AddBlock(physics.Vec3i{}, 1)
	b := small.AddBlock(physics.Vec3i{X: 1}, 1)
	large := memory.NewStructure(physics.SizeLarge)
	c := large.AddBlock(physics.Vec3i{}, 1)
	inert := large.AddBlock(physics.Vec3i{Y: 1}, IntegrityFloor)
	w.Add(small)
	w.Add(large)

	res := newSolarScanner(w, 1).Scan(context.Background(), time.Hour)

	require.Equal(t, PassSucceeded, res.Status)
	require.NoError(t, res.Err)
	assert.Equal(t, 2, res.Structures)
	assert.Equal(t, 4, res.Components)
	assert.Equal(t, 3, res.Damaged)
	assert.Equal(t, 1, res.Inert)
	assert.Equal(t, time.Hour, res.Elapsed)
	for _, blk := range []*memory.Block{a, b, c} {
		assert.InDelta(t, 0.99875, blk.Integrity(), 1e-12)
	}
	assert.Equal(t, IntegrityFloor, inert.Integrity())
}

func TestScanZeroElapsedLeavesIntegrity(t *testing.T) {
	s := memory.NewStructure(physics.SizeSmall)
	blk := s.AddBlock(physics.Vec3i{}, 0.7)

	res := newSolarScanner(staticRegistry(s), 1).Scan(context.Background(), 0)

	require.Equal(t, PassSucceeded, res.Status)
	assert.Equal(t, 0.7, blk.Integrity())
}

func TestScanSkipsNilAndDisposedStructures(t *testing.T) {
	live := memory.NewStructure(physics.SizeSmall)
	kept := live.AddBlock(physics.Vec3i{}, 1)
	gone := memory.NewStructure(physics.SizeSmall)
	untouched := gone.AddBlock(physics.Vec3i{}, 1)
	gone.Dispose()

	res := newSolarScanner(staticRegistry(nil, gone, live), 1).Scan(context.Background(), time.Hour)

	require.Equal(t, PassSucceeded, res.Status)
	assert.Equal(t, 1, res.Structures)
	assert.Equal(t, 2, res.Disposed)
	assert.Equal(t, 1.0, untouched.Integrity())
	assert.Less(t, kept.Integrity(), 1.0)
}

func TestScanLeavesStructureDisposedMidPassUnmodified(t *testing.T) {
	inner := memory.NewStructure(physics.SizeSmall)
	blk := inner.AddBlock(physics.Vec3i{}, 1)
	other := memory.NewStructure(physics.SizeSmall)
	otherBlk := other.AddBlock(physics.Vec3i{}, 1)

	res := newSolarScanner(staticRegistry(disposingStructure{inner}, other), 1).Scan(context.Background(), time.Hour)

	require.Equal(t, PassSucceeded, res.Status)
	assert.Equal(t, 1, res.Disposed)
	assert.Equal(t, 1, res.Structures)
	assert.Equal(t, 1.0, blk.Integrity())
	assert.InDelta(t, 0.99875, otherBlk.Integrity(), 1e-12)
}

func TestScanIsolatesPanickingStructure(t *testing.T) {
	healthy := memory.NewStructure(physics.SizeSmall)
	blk := healthy.AddBlock(physics.Vec3i{}, 1)
	broken := panickingStructure{memory.NewStructure(physics.SizeSmall)}

	res := newSolarScanner(staticRegistry(broken, healthy), 1).Scan(context.Background(), time.Hour)

	require.Equal(t, PassPartial, res.Status)
	assert.Equal(t, 1, res.Faults)
	assert.ErrorIs(t, res.Err, ErrStructureFault)
	assert.Contains(t, res.Err.Error(), broken.ID())
	assert.InDelta(t, 0.99875, blk.Integrity(), 1e-12)
}

func TestScanFailsWhenListingFails(t *testing.T) {
	boom := errors.New("registry offline")
	registry := registryFunc(func(context.Context) ([]models.Structure, error) { return nil, boom })

	res := newSolarScanner(registry, 1).Scan(context.Background(), time.Hour)

	assert.Equal(t, PassFailed, res.Status)
	assert.ErrorIs(t, res.Err, ErrListStructures)
	assert.ErrorIs(t, res.Err, boom)
	assert.Zero(t, res.Damaged)
}

func TestScanRecoversRegistryPanic(t *testing.T) {
	registry := registryFunc(func(context.Context) ([]models.Structure, error) { panic("nil map") })

	res := newSolarScanner(registry, 1).Scan(context.Background(), time.Hour)

	assert.Equal(t, PassFailed, res.Status)
	assert.ErrorIs(t, res.Err, ErrPassPanicked)
}

func TestScanCanceledContextFails(t *testing.T) {
	s := memory.NewStructure(physics.SizeSmall)
	s.AddBlock(physics.Vec3i{}, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := newSolarScanner(staticRegistry(s), 1).Scan(ctx, time.Hour)

	assert.Equal(t, PassFailed, res.Status)
	assert.ErrorIs(t, res.Err, context.Canceled)
}

func TestScanWithWorkersMatchesSequential(t *testing.T) {
	seed := memory.DefaultSeedConfig()
	seed.Structures = 24
	seed.ComponentsPerStructure = 32

	sequential := memory.New(4)
	parallel := memory.New(4)
	seqStructures := memory.Seed(sequential, seed)
	parStructures := memory.Seed(parallel, seed)

	resSeq := newSolarScanner(sequential, 1).Scan(context.Background(), 3*time.Hour)
	resPar := newSolarScanner(parallel, 8).Scan(context.Background(), 3*time.Hour)

	require.Equal(t, PassSucceeded, resPar.Status)
	assert.Equal(t, resSeq.Structures, resPar.Structures)
	assert.Equal(t, resSeq.Components, resPar.Components)
	assert.Equal(t, resSeq.Damaged, resPar.Damaged)
	assert.Equal(t, integrities(seqStructures), integrities(parStructures))
}

// integrities flattens component integrities in seed order. Structure IDs
// are random, so the two worlds are compared by layout instead.
func integrities(structures []*memory.Structure) []float64 {
	var out []float64
	for _, st := range structures {
		for _, c := range st.Components() {
			out = append(out, c.Integrity())
		}
	}
	return out
}

func TestScanUsesRatesSnapshot(t *testing.T) {
	s := memory.NewStructure(physics.SizeSmall)
	blk := s.AddBlock(physics.Vec3i{}, 1)
	rates := mustRates(solarOnly())
	scanner := NewScanner(staticRegistry(s), rates, NewModel(WithRandom(zeroDraw)), 1)

	require.NoError(t, rates.SetDamageRate(2))
	res := scanner.Scan(context.Background(), time.Hour)

	assert.InDelta(t, 0.9975, blk.Integrity(), 1e-12)
	assert.Equal(t, rates.Version(), res.RatesVersion)
}
