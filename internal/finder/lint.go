package finder

import "slices"

// Thresholds of the lint heuristics.
const (
	kerbinLaunchDeltaV = 3400.0
	kerbinGravity      = 9.8
	highAcceleration   = 22.3
	highPressure       = 2.5
	// Two thirds of what eight S1 Kickbacks lift at 13 m/s^2 at sea level.
	heavyPayload     = 115500.0
	excessiveDeltaV  = 7300.0
	stagingDeltaV    = 4600.0
	launchMinimumAcc = 10.0
)

// Lint checks the mission for common mistakes. The warnings never prevent a
// search.
func (f *Finder) Lint() []string {
	p := f.profile
	var warnings []string

	maxAcc := slices.Max(p.MinAcceleration)
	var sumDV float64
	for _, dv := range p.DeltaV {
		sumDV += dv
	}
	launcher := sumDV >= kerbinLaunchDeltaV && slices.Contains(p.Pressure, 1.0) && maxAcc > kerbinGravity

	if maxAcc == 0 {
		warnings = append(warnings, "No minimum acceleration in any phase given. Very weak engines could be presented.")
	} else if maxAcc > highAcceleration {
		warnings = append(warnings, "Very high minimum acceleration required. Overthink whether you really need such a strong engine.")
	}
	if slices.Max(p.Pressure) > highPressure {
		warnings = append(warnings, "Very high pressure required. If you are going to land on Eve, consider landing on a mountain.")
	}
	if p.Payload > heavyPayload {
		warnings = append(warnings, "Your rocket is very heavy.")
	}
	if sumDV > excessiveDeltaV {
		warnings = append(warnings, "You require too much Delta-v for most conventional engines. Overthink your mission planning.")
	} else if sumDV > stagingDeltaV {
		warnings = append(warnings, "As you require much Delta-v, consider splitting the ship into multiple stages to carry fewer empty tanks.")
	}
	if launcher && !f.opts.Boosters {
		warnings = append(warnings, "Enable solid fuel boosters if you are building a launcher.")
	}
	if launcher && maxAcc <= launchMinimumAcc {
		warnings = append(warnings, "To launch from Kerbin, your minimum acceleration should be actually higher than the surface gravity.")
	}
	return warnings
}
