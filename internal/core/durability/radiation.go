package durability

import (
	"math"

	"github.com/zeusync/durability/internal/core/systems/physics"
	"github.com/zeusync/durability/internal/core/tuning"
)

// RadiationLeak returns how much radiation damage a reactor applies to a
// component displaced from it by the given grid offset.
//
// The leak grows as the reactor loses integrity and its reach grows with power
// output. Inside the reach the leak falls off with 1/distance; outside it is 0.
//
// Two inputs have no finite answer in the plain formula and are saturated:
//   - reactor integrity is clamped up to IntegrityFloor before inverting it;
//   - a zero displacement is evaluated at one block of distance.
func RadiationLeak(reactorIntegrity, reactorPower float64, displacement physics.Vec3i, blockSize float64, v tuning.Values) float64 {
	if math.IsNaN(reactorIntegrity) || math.IsNaN(reactorPower) || !(blockSize > 0) {
		return 0
	}

	distance := blockSize
	if !displacement.IsZero() {
		distance = displacement.Scale(blockSize).Length()
	}

	reach := v.ReactorRangeBase + v.ReactorPowerRate*reactorPower
	if distance > reach {
		return 0
	}

	integrity := math.Max(reactorIntegrity, IntegrityFloor)
	leaking := v.ReactorRadiationBase + (0.5*(1/integrity) - 0.5)

	leak := (reach / distance) * leaking
	if !(leak > 0) || math.IsInf(leak, 0) {
		return 0
	}
	return leak
}
