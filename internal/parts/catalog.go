package parts

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Catalog is the set of parts designs are assembled from. Slice order is the
// enumeration order of the finder.
type Catalog struct {
	Engines  []*Engine
	Tanks    []*FuelTank
	Boosters []*Booster
	// StackMount is attached when a single booster is stacked below the stage.
	StackMount Mount
	// RadialMount is attached per booster when boosters are mounted radially.
	RadialMount Mount
	// AtomicTankFactor is the full mass of a tank filled with atomic fuel
	// relative to the same tank filled with liquid fuel and oxidizer.
	AtomicTankFactor float64
}

// EnginesFor returns the engines burning p, in catalog order.
func (c *Catalog) EnginesFor(p Propellant) []*Engine {
	var out []*Engine
	for _, e := range c.Engines {
		if e.Propellant == p {
			out = append(out, e)
		}
	}
	return out
}

// TanksFor returns the tanks holding p, in catalog order. Atomic fuel is
// carried in liquid fuel tanks.
func (c *Catalog) TanksFor(p Propellant) []*FuelTank {
	if p == AtomicFuel {
		p = LiquidFuel
	}
	var out []*FuelTank
	for _, t := range c.Tanks {
		if t.Propellant == p {
			out = append(out, t)
		}
	}
	return out
}

// Ladder returns the liquid fuel tanks of the given size ordered by capacity.
// Each rung holds twice the propellant of the previous one.
func (c *Catalog) Ladder(size RadialSize) []*FuelTank {
	var out []*FuelTank
	for _, t := range c.TanksFor(LiquidFuel) {
		if t.Size == size {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, func(a, b *FuelTank) int {
		switch {
		case a.FullMass < b.FullMass:
			return -1
		case a.FullMass > b.FullMass:
			return 1
		}
		return 0
	})
	return out
}

// Validate checks the structural assumptions the finder relies on.
func (c *Catalog) Validate() error {
	var errs []error
	names := make(map[string]struct{})
	unique := func(kind, name string) {
		if _, ok := names[name]; ok {
			errs = append(errs, fmt.Errorf("%s %q: duplicate part name", kind, name))
		}
		names[name] = struct{}{}
	}
	for _, e := range c.Engines {
		unique("engine", e.Name)
		if e.IspAtm < 0 || e.IspVac <= 0 || e.ThrustVac <= 0 || e.Mass <= 0 || e.Cost < 0 {
			errs = append(errs, fmt.Errorf("engine %q: vacuum isp, thrust and mass must be positive, sea level isp and cost must not be negative", e.Name))
		}
		if e.Propellant == AtomicFuel && (e.EmptyFraction <= 0 || e.Size == RadiallyMounted) {
			errs = append(errs, fmt.Errorf("engine %q: atomic engines need an in-line size and an empty fraction", e.Name))
		}
		if e.Propellant == LiquidFuel && e.Size != RadiallyMounted && len(c.Ladder(e.Size)) == 0 {
			errs = append(errs, fmt.Errorf("engine %q: no %s liquid fuel tanks", e.Name, e.Size))
		}
	}
	for _, t := range c.Tanks {
		unique("tank", t.Name)
		if t.FullMass <= 0 || t.Cost < 0 {
			errs = append(errs, fmt.Errorf("tank %q: full mass must be positive", t.Name))
		}
		if (t.Propellant == Xenon || t.Propellant == Monopropellant) && t.EmptyFraction <= 0 {
			errs = append(errs, fmt.Errorf("tank %q: empty fraction must be positive", t.Name))
		}
		if t.Propellant == AtomicFuel {
			errs = append(errs, fmt.Errorf("tank %q: atomic fuel is carried in liquid fuel tanks", t.Name))
		}
	}
	for _, size := range StackSizes {
		ladder := c.Ladder(size)
		for i := 1; i < len(ladder); i++ {
			if math.Abs(ladder[i].FullMass-2*ladder[i-1].FullMass) > 1e-6 {
				errs = append(errs, fmt.Errorf("tank %q: %s tanks must double in capacity", ladder[i].Name, size))
			}
		}
	}
	for _, b := range c.Boosters {
		unique("booster", b.Name)
		if b.FullMass <= b.EmptyMass || b.EmptyMass < 0 || b.IspVac <= 0 || b.ThrustVac <= 0 {
			errs = append(errs, fmt.Errorf("booster %q: invalid masses, isp or thrust", b.Name))
		}
	}
	if len(c.EnginesFor(AtomicFuel)) > 0 && c.AtomicTankFactor <= 0 {
		errs = append(errs, errors.New("atomic tank factor must be positive"))
	}
	return errors.Join(errs...)
}

// TankUse is a number of identical tanks.
type TankUse struct {
	Count int
	Tank  *FuelTank
}

// FillLadder covers need (full tank mass) with tanks from a doubling ladder.
// The need is rounded up to whole smallest tanks and then expressed with as
// few tanks as possible, favoring the biggest. scale multiplies the capacity
// of each tank (atomic fuel tanks hold less than the same liquid fuel tank).
// It returns the tanks in ladder order and the total capacity.
func FillLadder(ladder []*FuelTank, need, scale float64) ([]TankUse, float64) {
	if len(ladder) == 0 || need <= 0 {
		return nil, 0
	}
	count := int(math.Ceil(need / (ladder[0].FullMass * scale)))
	capacity := float64(count) * ladder[0].FullMass * scale

	var uses []TankUse
	last := len(ladder) - 1
	for i, t := range ladder {
		if i == last {
			if count > 0 {
				uses = append(uses, TankUse{Count: count, Tank: t})
			}
			break
		}
		if count%2 != 0 {
			uses = append(uses, TankUse{Count: 1, Tank: t})
		}
		count /= 2
	}
	return uses, capacity
}

// FillSingle covers need with identical tanks.
func FillSingle(t *FuelTank, need float64) (TankUse, float64) {
	if need <= 0 {
		return TankUse{Tank: t}, 0
	}
	count := int(math.Ceil(need / t.FullMass))
	return TankUse{Count: count, Tank: t}, float64(count) * t.FullMass
}

// Cost returns the combined cost of the tanks.
func Cost(uses []TankUse) float64 {
	var sum float64
	for _, u := range uses {
		sum += float64(u.Count) * u.Tank.Cost
	}
	return sum
}
