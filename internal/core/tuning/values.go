package tuning

import (
	"fmt"
	"math"
)

// Values is a plain copy of every tunable rate. A pass reads one Values
// snapshot and uses it for all of its components.
type Values struct {
	DamageRate           float64 `yaml:"damage_rate"`
	SolarRadiationRate   float64 `yaml:"solar_radiation_rate"`
	MicrometeoriteRate   float64 `yaml:"micrometeorite_rate"`
	WearAndTearRate      float64 `yaml:"wear_and_tear_rate"`
	ReactorRadiationBase float64 `yaml:"reactor_radiation_base"`
	ReactorRangeBase     float64 `yaml:"reactor_range_base"`
	ReactorPowerRate     float64 `yaml:"reactor_power_rate"`
}

// DefaultValues returns the reference tuning.
func DefaultValues() Values {
	return Values{
		DamageRate:           1.0,
		SolarRadiationRate:   0.125,
		MicrometeoriteRate:   0.4,
		WearAndTearRate:      1.0,
		ReactorRadiationBase: 0.1,
		ReactorRangeBase:     5.0,
		ReactorPowerRate:     0.2,
	}
}

// Get returns the value of the named rate.
func (v Values) Get(name Name) (float64, error) {
	p := v.field(name)
	if p == nil {
		return 0, fmt.Errorf("%w: %d", ErrUnknownRate, name)
	}
	return *p, nil
}

// Validate checks every field against ValidateRate.
func (v Values) Validate() error {
	for _, name := range Names() {
		value, _ := v.Get(name)
		if err := ValidateRate(value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func (v *Values) field(name Name) *float64 {
	switch name {
	case DamageRate:
		return &v.DamageRate
	case SolarRadiationRate:
		return &v.SolarRadiationRate
	case MicrometeoriteRate:
		return &v.MicrometeoriteRate
	case WearAndTearRate:
		return &v.WearAndTearRate
	case ReactorRadiationBase:
		return &v.ReactorRadiationBase
	case ReactorRangeBase:
		return &v.ReactorRangeBase
	case ReactorPowerRate:
		return &v.ReactorPowerRate
	default:
		return nil
	}
}

// ValidateRate rejects negative, NaN and infinite values.
func ValidateRate(value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidRate, value)
	}
	return nil
}
