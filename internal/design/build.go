package design

import (
	"context"
	"fmt"
	"math"

	"github.com/vk/stagefinder/internal/ctxlog"
	"github.com/vk/stagefinder/internal/parts"
	"github.com/vk/stagefinder/internal/physics"
)

// Shape is one candidate configuration to size and evaluate.
type Shape struct {
	Engine *parts.Engine
	Count  int
	// Size is the in-line size the stage is built around. For single
	// engines it equals the engine size.
	Size parts.RadialSize
	// Tank is the tank type of xenon and monopropellant designs.
	Tank *parts.FuelTank

	Booster      *parts.Booster
	BoosterCount int
	// ThrottleLimit is the liquid engine thrust fraction while radially
	// mounted boosters burn.
	ThrottleLimit float64
}

func (s Shape) String() string {
	str := fmt.Sprintf("%d*%s@%s", s.Count, s.Engine.Name, s.Size)
	if s.Tank != nil {
		str += "+" + s.Tank.Name
	}
	if s.Booster != nil {
		str += fmt.Sprintf("+%d*%s@%.2f", s.BoosterCount, s.Booster.Name, s.ThrottleLimit)
	}
	return str
}

// Build sizes the propellant for shape s and simulates the flight. ok is
// false when the shape cannot deliver the profile: no amount of propellant
// suffices, the boosters alone overshoot, or acceleration falls short.
func Build(ctx context.Context, cat *parts.Catalog, p Profile, s Shape) (*Design, bool) {
	logger := ctxlog.FromContext(ctx)
	d := newDesign(p.Payload, s.Engine, s.Count, s.Size)

	var ok bool
	switch {
	case s.Booster != nil:
		ok = d.buildWithBoosters(cat, p, s.Booster, s.BoosterCount, s.ThrottleLimit)
	case s.Engine.Propellant == parts.LiquidFuel:
		ok = d.buildLiquid(cat, p)
	case s.Engine.Propellant == parts.AtomicFuel:
		ok = d.buildAtomic(cat, p)
	default:
		if s.Tank == nil {
			logger.Debug("Design rejected.", "shape", s, "reason", "no tank")
			return nil, false
		}
		ok = d.buildSpecial(p, s.Tank)
	}
	if !ok {
		logger.Debug("Design rejected.", "shape", s, "reason", "infeasible")
		return nil, false
	}
	if !d.EnoughAcceleration(p.MinAcceleration) {
		logger.Debug("Design rejected.", "shape", s, "reason", "acceleration")
		return nil, false
	}
	logger.Debug("Design accepted.", "shape", s, "mass", d.Mass(), "cost", d.Cost())
	return d, true
}

func (d *Design) buildLiquid(cat *parts.Catalog, p Profile) bool {
	isp := d.Engine.Isp(p.Pressure)
	lf, ok := physics.NeededFuel(p.DeltaV, isp, d.Mass(), physics.LiquidEmptyFraction)
	if !ok {
		return false
	}
	d.addLiquidTanks(cat, (1+physics.LiquidEmptyFraction)*lf)
	d.Trajectory, ok = physics.Performance(p.DeltaV, isp, d.Engine.Thrust(d.EngineCount, p.Pressure), p.Pressure,
		d.Mass()-d.Fuel, d.Fuel/(1+d.EmptyFraction), d.EmptyFraction)
	return ok
}

func (d *Design) buildAtomic(cat *parts.Catalog, p Profile) bool {
	fe := d.Engine.EmptyFraction
	isp := d.Engine.Isp(p.Pressure)
	af, ok := physics.NeededFuel(p.DeltaV, isp, d.Mass(), fe)
	if !ok {
		return false
	}
	d.EmptyFraction = fe
	d.Tanks, d.Fuel = parts.FillLadder(cat.Ladder(d.Size), (1+fe)*af, cat.AtomicTankFactor)
	// The oxidizer left out of the tanks is not paid for.
	d.rebate = d.Fuel / (1 + fe) * 1.1 / 0.9 * 0.04
	d.Notes = append(d.Notes, "Atomic fuel is regular liquid fuel w/out oxidizer (remove oxidizer in VAB!)")
	d.Trajectory, ok = physics.Performance(p.DeltaV, isp, d.Engine.Thrust(d.EngineCount, p.Pressure), p.Pressure,
		d.Mass()-d.Fuel, d.Fuel/(1+fe), fe)
	return ok
}

func (d *Design) buildSpecial(p Profile, tank *parts.FuelTank) bool {
	fe := tank.EmptyFraction
	isp := d.Engine.Isp(p.Pressure)
	x, ok := physics.NeededFuel(p.DeltaV, isp, d.Mass(), fe)
	if !ok {
		return false
	}
	use, capacity := parts.FillSingle(tank, (1+fe)*x)
	d.Tanks = []parts.TankUse{use}
	d.Fuel = capacity
	d.EmptyFraction = fe
	d.RequiredTech.Add(tank.Tech)
	d.Trajectory, ok = physics.Performance(p.DeltaV, isp, d.Engine.Thrust(d.EngineCount, p.Pressure), p.Pressure,
		d.Mass()-d.Fuel, d.Fuel/(1+fe), fe)
	return ok
}

func (d *Design) buildWithBoosters(cat *parts.Catalog, p Profile, b *parts.Booster, count int, limit float64) bool {
	d.addBoosters(cat, b, count)
	d.ThrottleLimit = limit

	ispL := d.Engine.Isp(p.Pressure)
	ispS := b.Isp(p.Pressure)
	thrustL := d.Engine.Thrust(d.EngineCount, p.Pressure)
	thrustS := b.Thrust(count, p.Pressure)
	mx := d.mountMass()
	sms := float64(count) * b.FullMass
	smt := float64(count) * b.EmptyMass

	// Sized with the same count-multiplied thrust ratio the stage is flown with.
	lpsr := physics.LiquidPerSolid(limit, ispL, ispS, thrustL, thrustS)
	lf, ok := physics.ConcurrentNeededFuel(p.DeltaV, ispL, ispS, d.Mass()-mx-sms, mx, sms, smt, lpsr)
	if !ok {
		return false
	}
	d.addLiquidTanks(cat, (1+physics.LiquidEmptyFraction)*lf)
	d.Trajectory, ok = physics.ConcurrentPerformance(p.DeltaV, ispL, ispS, thrustL, thrustS, p.Pressure,
		d.Mass()-d.Fuel-mx-sms, d.Fuel/(1+d.EmptyFraction), mx, sms, smt, limit)
	if !ok {
		return false
	}
	if count != 1 {
		d.Notes = append(d.Notes, fmt.Sprintf("Set liquid fuel engine thrust to %.0f%% while SFB are burning", math.Round(limit*100)))
	}
	return true
}

// addLiquidTanks fills need (full tank mass) with the tanks of the design's
// size. Engines with a built-in tank never carry less than that tank.
func (d *Design) addLiquidTanks(cat *parts.Catalog, need float64) {
	d.EmptyFraction = physics.LiquidEmptyFraction
	if m := d.Engine.IntegratedTankMass; m > 0 {
		need = max(need, m)
		d.Notes = append(d.Notes, fmt.Sprintf("%.0f units of liquid fuel are already included in the engine",
			m/(1+physics.LiquidEmptyFraction)/parts.LiquidFuel.UnitMass()))
	}
	d.Tanks, d.Fuel = parts.FillLadder(cat.Ladder(d.Size), need, 1)
}

func (d *Design) addBoosters(cat *parts.Catalog, b *parts.Booster, count int) {
	d.Booster = b
	d.BoosterCount = count
	d.RequiredTech.Add(b.Tech)
	if count == 1 {
		d.Mount = cat.StackMount
		d.MountCount = 1
		d.RequiredTech.Add(cat.StackMount.Tech)
		d.Notes = append(d.Notes,
			fmt.Sprintf("Vertically stacked %s SFB", b.Name),
			fmt.Sprintf("SFB mounted on %s", cat.StackMount.Note))
		return
	}
	d.Mount = cat.RadialMount
	d.MountCount = count
	d.RequiredTech.Add(cat.RadialMount.Tech)
	d.Notes = append(d.Notes,
		fmt.Sprintf("Radially attached %d * %s SFB", count, b.Name),
		fmt.Sprintf("SFBs mounted on %s each", cat.RadialMount.Note))
}
