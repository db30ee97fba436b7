package design

import (
	"fmt"

	"github.com/vk/stagefinder/internal/parts"
	"github.com/vk/stagefinder/internal/physics"
	"github.com/vk/stagefinder/internal/techtree"
)

// Profile is the flight a stage has to perform: a payload and, per phase, the
// requested delta-v, the minimum acceleration at full thrust and the ambient
// pressure. The three slices have equal length.
type Profile struct {
	Payload         float64   // kg
	DeltaV          []float64 // m/s
	MinAcceleration []float64 // m/s^2
	Pressure        []float64 // atm
}

// Preferences are the optional selection criteria. Mass, cost and required
// technology are always compared.
type Preferences struct {
	// PreferredSize is the favored in-line size; zero means none.
	PreferredSize parts.RadialSize
	// Gimbal is 0 (ignore), 1 (prefer any thrust vectoring) or 2 (prefer
	// the widest range).
	Gimbal         int
	Generators     bool
	ShortEngines   bool
	Monopropellant bool
	// DeltaVTieBreak favors the design with more total delta-v when mass
	// and cost are exactly equal.
	DeltaVTieBreak bool
}

// Design is one propulsion configuration. It is assembled by Build and not
// modified afterwards, except for the frontier flag and features set by
// MarkFrontier.
type Design struct {
	Payload     float64
	Engine      *parts.Engine
	EngineCount int
	Size        parts.RadialSize
	Propellant  parts.Propellant

	// Tanks carry Fuel kg of propellant including the tank mass itself.
	Tanks []parts.TankUse
	Fuel  float64
	// EmptyFraction is the inert mass per kg of propellant in the tanks.
	EmptyFraction float64

	Booster       *parts.Booster
	BoosterCount  int
	ThrottleLimit float64
	Mount         parts.Mount
	MountCount    int

	Trajectory   physics.Trajectory
	RequiredTech techtree.NodeSet
	Features     Features
	Best         bool
	Notes        []string

	rebate float64
}

func newDesign(payload float64, eng *parts.Engine, count int, size parts.RadialSize) *Design {
	d := &Design{
		Payload:     payload,
		Engine:      eng,
		EngineCount: count,
		Size:        size,
		Propellant:  eng.Propellant,
	}
	d.RequiredTech.Add(eng.Tech)
	return d
}

// Mass is the total mass at ignition: payload, engines, booster hardware and
// full tanks.
func (d *Design) Mass() float64 {
	m := d.Payload + float64(d.EngineCount)*d.Engine.Mass + d.Fuel + d.mountMass()
	if d.Booster != nil {
		m += float64(d.BoosterCount) * d.Booster.FullMass
	}
	return m
}

// Cost is the price of all parts, payload excluded.
func (d *Design) Cost() float64 {
	c := float64(d.EngineCount)*d.Engine.Cost + parts.Cost(d.Tanks) - d.rebate
	c += float64(d.MountCount) * d.Mount.Cost
	if d.Booster != nil {
		c += float64(d.BoosterCount) * d.Booster.Cost
	}
	return c
}

func (d *Design) mountMass() float64 {
	return float64(d.MountCount) * d.Mount.Mass
}

// PropellantUnits converts the tank contents into in-game units.
func (d *Design) PropellantUnits() float64 {
	return d.Fuel / (1 + d.EmptyFraction) / d.Propellant.UnitMass()
}

// Radial reports whether the engines are mounted radially around the stack.
func (d *Design) Radial() bool {
	return d.Engine.Size == parts.RadiallyMounted
}

// EnoughAcceleration reports whether every segment starts with at least the
// minimum acceleration of its phase.
func (d *Design) EnoughAcceleration(minAcceleration []float64) bool {
	if len(d.Trajectory) == 0 {
		return false
	}
	for _, s := range d.Trajectory {
		if s.StartAccel < minAcceleration[s.Phase] {
			return false
		}
	}
	return true
}

// Name is a short human readable label of the engine configuration.
func (d *Design) Name() string {
	if d.EngineCount == 1 {
		return d.Engine.Name
	}
	return fmt.Sprintf("%d * %s, radially mounted", d.EngineCount, d.Engine.Name)
}

// IsBetterThan reports whether d beats a on at least one criterion, i.e.
// whether there might be a reason to pick d instead of a.
func (d *Design) IsBetterThan(a *Design, prefs Preferences) bool {
	mass, cost := d.Mass(), d.Cost()
	if mass < a.Mass() || cost < a.Cost() {
		return true
	}
	if prefs.DeltaVTieBreak && mass == a.Mass() && cost == a.Cost() &&
		d.Trajectory.TotalDeltaV() > a.Trajectory.TotalDeltaV() {
		return true
	}
	switch {
	case prefs.Gimbal == 1:
		if d.Engine.Gimbal > 0 && a.Engine.Gimbal == 0 {
			return true
		}
	case prefs.Gimbal >= 2:
		if d.Engine.Gimbal > a.Engine.Gimbal {
			return true
		}
	}
	if prefs.Monopropellant && d.Propellant == parts.Monopropellant && a.Propellant != parts.Monopropellant {
		return true
	}
	if prefs.Generators && d.Engine.Generator && !a.Engine.Generator {
		return true
	}
	if prefs.ShortEngines && d.Engine.Length < a.Engine.Length {
		return true
	}
	if prefs.PreferredSize != 0 && d.Size == prefs.PreferredSize && a.Size != prefs.PreferredSize {
		return true
	}
	return d.RequiredTech.IsEasierThan(a.RequiredTech)
}

// MarkFrontier sets Best on every design that is better than each other
// design in at least one respect, then annotates the frontier with Features.
func MarkFrontier(designs []*Design, prefs Preferences) []*Design {
	var frontier []*Design
	for _, d := range designs {
		d.Best = true
		for _, e := range designs {
			if d != e && !d.IsBetterThan(e, prefs) {
				d.Best = false
				break
			}
		}
		if d.Best {
			frontier = append(frontier, d)
		}
	}
	for _, d := range frontier {
		d.determineFeatures(frontier, prefs)
	}
	return frontier
}

func (d *Design) determineFeatures(frontier []*Design, prefs Preferences) {
	lowestMass, lowestCost := true, true
	lowestRequirements := true
	bestGimbal, shortest := true, true
	for _, e := range frontier {
		if e.Mass() < d.Mass() {
			lowestMass = false
		}
		if e.Cost() < d.Cost() {
			lowestCost = false
		}
		if e.RequiredTech.IsEasierThan(d.RequiredTech) {
			lowestRequirements = false
		}
		if e.Engine.Gimbal > d.Engine.Gimbal {
			bestGimbal = false
		}
		if e.Engine.Length < d.Engine.Length {
			shortest = false
		}
	}

	var f Features
	if lowestMass {
		f.add(FeatureMass)
	}
	if lowestCost {
		f.add(FeatureCost)
	}
	// Needing only a single late node looks cheap but is not.
	if lowestRequirements &&
		!d.RequiredTech.Contains(techtree.VeryHeavyRocketry) &&
		!d.RequiredTech.Contains(techtree.HypersonicFlight) {
		f.add(FeatureLowRequirements)
	}
	if prefs.ShortEngines && shortest {
		f.add(FeatureShortEngine)
	}
	if (prefs.Gimbal == 1 && d.Engine.Gimbal > 0) || (prefs.Gimbal >= 2 && bestGimbal) {
		f.add(FeatureGimbal)
	}
	if prefs.Monopropellant && d.Propellant == parts.Monopropellant {
		f.add(FeatureMonopropellant)
	}
	if prefs.Generators && d.Engine.Generator {
		f.add(FeatureGenerator)
	}
	if prefs.PreferredSize != 0 && d.Size == prefs.PreferredSize {
		f.add(FeatureRadialSize)
	}
	d.Features = f
}
