package physics

import (
	"math"
)

// G0 is standard gravity, used to convert specific impulse into exhaust
// velocity.
const G0 = 9.80665

// maxIterations bounds the fixed-point iteration of the concurrent booster
// solver.
const maxIterations = 1000

// precision is the convergence threshold of the booster solver in kg.
const precision = 0.001

// Segment is one leg of a simulated flight. Phases are split when the
// liquid-fuel engine ignites mid-phase, so several segments may belong to the
// same requested phase.
type Segment struct {
	DeltaV     float64 // m/s
	Pressure   float64 // atm
	StartAccel float64 // m/s^2 at full thrust
	EndAccel   float64
	StartMass  float64 // kg
	EndMass    float64
	Solid      bool // booster burning
	Phase      int  // index of the requested phase
}

// Trajectory is the result of a forward simulation. The last segment burns
// the propellant left over after all requested phases.
type Trajectory []Segment

// TotalDeltaV returns the delta-v of all segments, leftover included.
func (t Trajectory) TotalDeltaV() float64 {
	var sum float64
	for _, s := range t {
		sum += s.DeltaV
	}
	return sum
}

// IspAt blends atmospheric and vacuum specific impulse linearly in pressure.
func IspAt(ispAtm, ispVac, pressure float64) float64 {
	return pressure*ispAtm + (1-pressure)*ispVac
}

// ThrustAt returns the thrust of one engine. Thrust falls with specific
// impulse as pressure rises.
func ThrustAt(thrustVac, ispAtm, ispVac, pressure float64) float64 {
	return pressure*thrustVac*ispAtm/ispVac + (1-pressure)*thrustVac
}

func endMass(start, dv, isp float64) float64 {
	return start * math.Exp(-dv/(isp*G0))
}

func deltaV(start, end, isp float64) float64 {
	return G0 * isp * math.Log(start/end)
}

func massRatioExponent(dv, isp []float64) float64 {
	var sum float64
	for i := range dv {
		sum += dv[i] / isp[i]
	}
	return sum / G0
}

// NeededFuel returns the mass of propellant needed to deliver dv with a
// single engine type, given the specific impulse of each phase, the payload
// mp (engines included) and the inert tank fraction fe. ok is false when no
// amount of propellant suffices.
func NeededFuel(dv, isp []float64, mp, fe float64) (float64, bool) {
	for _, v := range isp {
		if v <= 0 {
			return 0, false
		}
	}
	e := math.Exp(massRatioExponent(dv, isp))
	denom := 1 + fe - e*fe
	if denom <= 0 {
		return 0, false
	}
	mc := mp * (e - 1) / denom
	if mc < 0 || math.IsNaN(mc) || math.IsInf(mc, 0) {
		return 0, false
	}
	return mc, true
}

// Performance simulates a single-engine stage carrying mc of propellant in
// tanks with inert fraction fe. thrust and pressure are given per phase.
func Performance(dv, isp, thrust, pressure []float64, mp, mc, fe float64) (Trajectory, bool) {
	n := len(dv)
	if n == 0 {
		return nil, false
	}
	ms := make([]float64, n+1)
	ms[0] = mp + fe*mc + mc
	for i := 1; i <= n; i++ {
		ms[i] = endMass(ms[i-1], dv[i-1], isp[i-1])
	}
	dry := mp + fe*mc
	if ms[n] < dry {
		return nil, false
	}
	t := make(Trajectory, n+1)
	for i := 0; i <= n; i++ {
		op := min(i, n-1)
		s := Segment{
			Pressure:  pressure[op],
			StartMass: ms[i],
			Phase:     op,
		}
		if i < n {
			s.DeltaV = dv[i]
			s.EndMass = ms[i+1]
		} else {
			s.EndMass = dry
			s.DeltaV = deltaV(ms[n], dry, isp[n-1])
		}
		s.StartAccel = thrust[op] / s.StartMass
		s.EndAccel = thrust[op] / s.EndMass
		t[i] = s
	}
	return t, true
}

// BoosterNeededFuel returns the liquid propellant needed when solid boosters
// burn first and the liquid engine takes over once they are spent. mx is the
// mounting hardware dropped with the boosters, sms and smt their combined
// full and empty mass. ok is false if the boosters alone deliver everything
// or the solver fails to converge.
func BoosterNeededFuel(dv, ispLiquid, ispSolid []float64, mp, mx, sms, smt float64) (float64, bool) {
	n := len(dv) - 1
	if n < 0 {
		return 0, false
	}

	// limits[i] is the propellant mass above which the boosters burn out
	// within phase i.
	limits := make([]float64, n+1)
	strong := true
	for i := 0; i <= n; i++ {
		if !strong {
			limits[i] = -1
			continue
		}
		var sum float64
		for k := 0; k <= i; k++ {
			sum += dv[k] / ispSolid[k]
		}
		limits[i] = ((sms-smt)/(math.Exp(sum/G0)-1) - mp - smt - mx) * 8 / 9
		if limits[i] < 0 {
			strong = false
		}
	}
	if strong {
		return 0, false
	}

	f := 0
	for i := 0; i <= n; i++ {
		if limits[i] < 0 {
			f = i
			break
		}
	}
	// adjust moves the burnout phase down to match propellant mass mc.
	adjust := func(mc float64) int {
		for i := f - 1; i >= 0; i-- {
			if limits[i] >= mc {
				return i + 1
			}
		}
		return 0
	}
	improve := func(old float64) (float64, bool) {
		var sum float64
		for k := 0; k < f; k++ {
			sum += dv[k] / ispSolid[k]
		}
		mf := math.Exp(-sum / G0)
		mf = sms*mf + (mf-1)*(mp+9.0/8*old+mx)
		base := mp + 9.0/8*old + mx
		solidDV := G0 * ispSolid[f] * math.Log((base+mf)/(base+smt))
		rest := make([]float64, 0, n+1-f)
		rest = append(rest, dv[f]-solidDV)
		rest = append(rest, dv[f+1:]...)
		return NeededFuel(rest, ispLiquid[f:], mp, LiquidEmptyFraction)
	}

	mc, ok := improve(0)
	if !ok {
		return 0, false
	}
	f = adjust(mc)
	for range maxIterations {
		next, ok := improve(mc)
		if !ok {
			return 0, false
		}
		if next-mc < precision {
			return next, true
		}
		mc = next
		f = adjust(mc)
	}
	return 0, false
}

// LiquidEmptyFraction is the inert mass per kg of liquid propellant.
const LiquidEmptyFraction = 1.0 / 8

// LiquidPerSolid returns the liquid-per-solid propellant consumption ratio
// while the liquid engine runs at fraction limit of its thrust next to the
// boosters. Thrust and specific impulse are taken from the first phase.
func LiquidPerSolid(limit float64, ispLiquid, ispSolid, thrustLiquid, thrustSolid []float64) float64 {
	return limit * thrustLiquid[0] * ispSolid[0] / thrustSolid[0] / ispLiquid[0]
}

func blendedIsp(ispLiquid, ispSolid []float64, lpsr float64) []float64 {
	isp := make([]float64, len(ispSolid))
	for k := range ispSolid {
		isp[k] = (ispLiquid[k]*lpsr + ispSolid[k]) / (1 + lpsr)
	}
	return isp
}

// ConcurrentNeededFuel is BoosterNeededFuel with the liquid engine burning
// alongside the boosters at consumption ratio lpsr (see LiquidPerSolid).
func ConcurrentNeededFuel(dv, ispLiquid, ispSolid []float64, mp, mx, sms, smt, lpsr float64) (float64, bool) {
	ispH := blendedIsp(ispLiquid, ispSolid, lpsr)
	extra := (sms - smt) * lpsr
	fuel, ok := BoosterNeededFuel(dv, ispLiquid, ispH, mp+extra/8, mx, sms+extra, smt)
	if !ok {
		return 0, false
	}
	return extra + fuel, true
}

// BoosterPerformance simulates a stage whose boosters burn first. Segments
// flown on boosters have Solid set.
func BoosterPerformance(dv, ispLiquid, ispSolid, thrustLiquid, thrustSolid, pressure []float64, mp, mc, mx, sms, smt float64) (Trajectory, bool) {
	n := len(dv)
	if n == 0 {
		return nil, false
	}
	ms := make([]float64, n+2)
	mt := make([]float64, n+2)
	r := make([]float64, n+2)
	op := make([]int, n+2)
	solid := make([]bool, n+2)

	ms[0] = mp + 9.0/8*mc + mx + sms
	drySolid := mp + 9.0/8*mc + mx + smt

	i := 0
	for i < n && deltaV(ms[i], drySolid, ispSolid[i]) >= dv[i] {
		mt[i] = endMass(ms[i], dv[i], ispSolid[i])
		ms[i+1] = mt[i]
		r[i] = deltaV(ms[i], mt[i], ispSolid[i])
		solid[i] = true
		op[i] = i
		i++
	}
	if i == n {
		return nil, false
	}

	mt[i] = drySolid
	r[i] = deltaV(ms[i], mt[i], ispSolid[i])
	solid[i] = true
	op[i] = i

	ms[i+1] = mp + 9.0/8*mc
	r[i+1] = dv[i] - r[i]
	mt[i+1] = endMass(ms[i+1], r[i+1], ispLiquid[i])
	op[i+1] = i

	for j := i + 2; j < n+2; j++ {
		ms[j] = mt[j-1]
		if j != n+1 {
			op[j] = j - 1
			mt[j] = endMass(ms[j], dv[j-1], ispLiquid[j-1])
		} else {
			op[j] = j - 2
			mt[j] = mp + mc/8
		}
		r[j] = deltaV(ms[j], mt[j], ispLiquid[op[j]])
	}
	if ms[n+1] < mt[n+1] {
		return nil, false
	}

	t := make(Trajectory, n+2)
	for j := range t {
		f := thrustLiquid[op[j]]
		if solid[j] {
			f = thrustSolid[op[j]]
		}
		t[j] = Segment{
			DeltaV:     r[j],
			Pressure:   pressure[op[j]],
			StartAccel: f / ms[j],
			EndAccel:   f / mt[j],
			StartMass:  ms[j],
			EndMass:    mt[j],
			Solid:      solid[j],
			Phase:      op[j],
		}
	}
	return t, true
}

// ConcurrentPerformance is BoosterPerformance with the liquid engine running
// at fraction limit of its thrust while the boosters burn. The boosters' share
// of the liquid propellant is folded into the solid stage.
func ConcurrentPerformance(dv, ispLiquid, ispSolid, thrustLiquid, thrustSolid, pressure []float64, mp, mc, mx, sms, smt, limit float64) (Trajectory, bool) {
	lpsr := LiquidPerSolid(limit, ispLiquid, ispSolid, thrustLiquid, thrustSolid)
	ispH := blendedIsp(ispLiquid, ispSolid, lpsr)
	extra := (sms - smt) * lpsr
	if mc < extra {
		return nil, false
	}
	thrustH := make([]float64, len(thrustLiquid))
	for k := range thrustLiquid {
		thrustH[k] = thrustSolid[k] + thrustLiquid[k]*limit
	}
	return BoosterPerformance(dv, ispLiquid, ispH, thrustLiquid, thrustH, pressure,
		mp+extra/8, mc-extra, mx, sms+extra, smt)
}
