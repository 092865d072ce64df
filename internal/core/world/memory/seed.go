package memory

import (
	"math/rand/v2"

	"github.com/zeusync/durability/internal/core/systems/physics"
)

// SeedConfig describes a demo world.
type SeedConfig struct {
	Structures             int     `yaml:"structures"`
	ComponentsPerStructure int     `yaml:"components_per_structure"`
	ReactorsPerStructure   int     `yaml:"reactors_per_structure"`
	ConsumersPerStructure  int     `yaml:"consumers_per_structure"`
	LargeRatio             float64 `yaml:"large_ratio"`
	ReactorOutput          float64 `yaml:"reactor_output"`
	ConsumerDraw           float64 `yaml:"consumer_draw"`
	GridExtent             int     `yaml:"grid_extent"`
	Seed                   uint64  `yaml:"seed"`
}

func DefaultSeedConfig() SeedConfig {
	return SeedConfig{
		Structures:             8,
		ComponentsPerStructure: 64,
		ReactorsPerStructure:   1,
		ConsumersPerStructure:  8,
		LargeRatio:             0.5,
		ReactorOutput:          10,
		ConsumerDraw:           0.5,
		GridExtent:             8,
		Seed:                   1,
	}
}

// Seed fills w with randomly laid out structures at full integrity.
// Reactors and consumers are taken out of the component budget first.
func Seed(w *World, cfg SeedConfig) []*Structure {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	extent := max(cfg.GridExtent, 1)

	cell := func() physics.Vec3i {
		return physics.Vec3i{X: rng.IntN(extent), Y: rng.IntN(extent), Z: rng.IntN(extent)}
	}

	out := make([]*Structure, 0, cfg.Structures)
	for i := 0; i < cfg.Structures; i++ {
		size := physics.SizeSmall
		if rng.Float64() < cfg.LargeRatio {
			size = physics.SizeLarge
		}
		s := NewStructure(size)

		for n := 0; n < cfg.ComponentsPerStructure; n++ {
			switch {
			case n < cfg.ReactorsPerStructure:
				s.AddReactor(cell(), 1, cfg.ReactorOutput)
			case n < cfg.ReactorsPerStructure+cfg.ConsumersPerStructure:
				s.AddConsumer(cell(), 1, cfg.ConsumerDraw)
			default:
				s.AddBlock(cell(), 1)
			}
		}

		w.Add(s)
		out = append(out, s)
	}
	return out
}
