package tuning

import (
	"fmt"

	"github.com/zeusync/durability/internal/core/vars"
)

// Name identifies one of the tunable rates.
type Name uint8

const (
	DamageRate Name = iota
	SolarRadiationRate
	MicrometeoriteRate
	WearAndTearRate
	ReactorRadiationBase
	ReactorRangeBase
	ReactorPowerRate

	nameCount
)

var names = [nameCount]string{
	DamageRate:           "damage_rate",
	SolarRadiationRate:   "solar_radiation_rate",
	MicrometeoriteRate:   "micrometeorite_rate",
	WearAndTearRate:      "wear_and_tear_rate",
	ReactorRadiationBase: "reactor_radiation_base",
	ReactorRangeBase:     "reactor_range_base",
	ReactorPowerRate:     "reactor_power_rate",
}

func (n Name) String() string {
	if n < nameCount {
		return names[n]
	}
	return fmt.Sprintf("rate(%d)", uint8(n))
}

// Names lists every rate in declaration order.
func Names() []Name {
	out := make([]Name, 0, nameCount)
	for n := Name(0); n < nameCount; n++ {
		out = append(out, n)
	}
	return out
}

// ParseName resolves a yaml key such as "solar_radiation_rate".
func ParseName(s string) (Name, error) {
	for n, key := range names {
		if key == s {
			return Name(n), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRate, s)
}

// Rates is the shared, runtime-adjustable rate set. Every field is an
// independent atomic word; there is no cross-field consistency.
type Rates struct {
	fields [nameCount]*vars.AtomicFloat64
}

// NewRates validates the initial values and builds a Rates.
func NewRates(initial Values) (*Rates, error) {
	if err := initial.Validate(); err != nil {
		return nil, err
	}
	r := &Rates{}
	for _, name := range Names() {
		value, _ := initial.Get(name)
		r.fields[name] = vars.NewAtomicFloat64(value)
	}
	return r, nil
}

// DefaultRates returns Rates holding DefaultValues.
func DefaultRates() *Rates {
	r, err := NewRates(DefaultValues())
	if err != nil {
		panic(err)
	}
	return r
}

// Get returns the current value of a rate.
func (r *Rates) Get(name Name) (float64, error) {
	if name >= nameCount {
		return 0, fmt.Errorf("%w: %d", ErrUnknownRate, name)
	}
	return r.fields[name].Get(), nil
}

// Set stores a new value. Invalid values are rejected and the old value stays.
func (r *Rates) Set(name Name, value float64) error {
	if name >= nameCount {
		return fmt.Errorf("%w: %d", ErrUnknownRate, name)
	}
	if err := ValidateRate(value); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	r.fields[name].Set(value)
	return nil
}

// Apply replaces every rate. Nothing is written if any value is invalid.
func (r *Rates) Apply(v Values) error {
	if err := v.Validate(); err != nil {
		return err
	}
	for _, name := range Names() {
		value, _ := v.Get(name)
		r.fields[name].Set(value)
	}
	return nil
}

// Snapshot copies all rates. Fields are read one by one, so a concurrent
// writer may be observed for some fields and not others.
func (r *Rates) Snapshot() Values {
	var v Values
	for _, name := range Names() {
		*v.field(name) = r.fields[name].Get()
	}
	return v
}

// Version sums the per-field versions; it grows on every successful Set.
func (r *Rates) Version() uint64 {
	var total uint64
	for _, f := range r.fields {
		total += f.Version()
	}
	return total
}

func (r *Rates) DamageRate() float64           { return r.fields[DamageRate].Get() }
func (r *Rates) SolarRadiationRate() float64   { return r.fields[SolarRadiationRate].Get() }
func (r *Rates) MicrometeoriteRate() float64   { return r.fields[MicrometeoriteRate].Get() }
func (r *Rates) WearAndTearRate() float64      { return r.fields[WearAndTearRate].Get() }
func (r *Rates) ReactorRadiationBase() float64 { return r.fields[ReactorRadiationBase].Get() }
func (r *Rates) ReactorRangeBase() float64     { return r.fields[ReactorRangeBase].Get() }
func (r *Rates) ReactorPowerRate() float64     { return r.fields[ReactorPowerRate].Get() }

func (r *Rates) SetDamageRate(v float64) error         { return r.Set(DamageRate, v) }
func (r *Rates) SetSolarRadiationRate(v float64) error { return r.Set(SolarRadiationRate, v) }
func (r *Rates) SetMicrometeoriteRate(v float64) error { return r.Set(MicrometeoriteRate, v) }
func (r *Rates) SetWearAndTearRate(v float64) error    { return r.Set(WearAndTearRate, v) }
func (r *Rates) SetReactorRadiationBase(v float64) error {
	return r.Set(ReactorRadiationBase, v)
}
func (r *Rates) SetReactorRangeBase(v float64) error { return r.Set(ReactorRangeBase, v) }
func (r *Rates) SetReactorPowerRate(v float64) error { return r.Set(ReactorPowerRate, v) }
