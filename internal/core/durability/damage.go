package durability

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/zeusync/durability/internal/core/models"
	"github.com/zeusync/durability/internal/core/systems/physics"
	"github.com/zeusync/durability/internal/core/tuning"
)

const (
	// IntegrityFloor is the lowest integrity damage can leave a component at.
	// Components at or below it are inert.
	IntegrityFloor = 0.05

	// Damage is expressed in percent of integrity.
	integrityScale = 100.0
)

// Breakdown holds the per-hour damage contributions for one component,
// before the global multiplier is applied.
type Breakdown struct {
	Solar          float64
	Micrometeorite float64
	Wear           float64
	Radiation      float64
}

func (b Breakdown) Sum() float64 {
	return b.Solar + b.Micrometeorite + b.Wear + b.Radiation
}

// Emitter is a reactor snapshot taken once per structure per pass.
type Emitter struct {
	Integrity float64
	Power     float64
	Min       physics.Vec3i
}

// CollectEmitters returns every reactor with positive power output.
func CollectEmitters(components []models.Component) []Emitter {
	var out []Emitter
	for _, c := range components {
		r, ok := models.AsReactor(c)
		if !ok {
			continue
		}
		power := r.PowerOutput()
		if !(power > 0) {
			continue
		}
		out = append(out, Emitter{
			Integrity: r.Integrity(),
			Power:     power,
			Min:       r.Min(),
		})
	}
	return out
}

type ModelOption func(*Model)

// WithRandom replaces the micrometeorite draw. fn must return values in [0, 1).
func WithRandom(fn func() float64) ModelOption {
	return func(m *Model) {
		if fn != nil {
			m.random = fn
		}
	}
}

// Model computes integrity loss for single components.
type Model struct {
	random func() float64
}

func NewModel(opts ...ModelOption) *Model {
	m := &Model{random: rand.Float64}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Contributions sums every damage source acting on c. Negative or non-finite
// power draws are treated as zero. Reactors never receive radiation damage.
func (m *Model) Contributions(c models.Component, emitters []Emitter, blockSize float64, v tuning.Values) Breakdown {
	b := Breakdown{
		Solar:          v.SolarRadiationRate,
		Micrometeorite: m.random() * v.MicrometeoriteRate,
	}

	if pc, ok := models.AsPowerConsumer(c); ok {
		b.Wear = usableDraw(pc.PowerDraw()) * v.WearAndTearRate
	}

	if _, isReactor := models.AsReactor(c); !isReactor {
		pos := c.Min()
		for _, e := range emitters {
			b.Radiation += RadiationLeak(e.Integrity, e.Power, pos.Sub(e.Min), blockSize, v)
		}
	}

	return b
}

func usableDraw(draw float64) float64 {
	if math.IsNaN(draw) || math.IsInf(draw, 0) || draw < 0 {
		return 0
	}
	return draw
}

// Damage integrates the contributions over dt.
func Damage(dt time.Duration, b Breakdown, v tuning.Values) float64 {
	if dt <= 0 {
		return 0
	}
	return dt.Hours() * b.Sum() * v.DamageRate
}

// NextIntegrity applies damage as a percentage loss, never going below the
// floor. A NaN or negative damage leaves old unchanged.
func NextIntegrity(old, damage float64) float64 {
	if !(damage >= 0) {
		return old
	}
	return math.Max(IntegrityFloor, old-damage/integrityScale)
}

// Eligible reports whether a component with this integrity still takes damage.
func Eligible(integrity float64) bool {
	return integrity > IntegrityFloor
}

// Apply computes the new integrity of c without writing it. ok is false for
// inert components, in which case the current integrity is returned.
func (m *Model) Apply(c models.Component, emitters []Emitter, blockSize float64, dt time.Duration, v tuning.Values) (next float64, ok bool) {
	old := c.Integrity()
	if !Eligible(old) {
		return old, false
	}
	b := m.Contributions(c, emitters, blockSize, v)
	return NextIntegrity(old, Damage(dt, b, v)), true
}
