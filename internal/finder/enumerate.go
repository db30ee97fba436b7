package finder

import (
	"iter"

	"github.com/vk/stagefinder/internal/design"
	"github.com/vk/stagefinder/internal/parts"
)

var (
	// engineCounts are the tried numbers of radially mounted engines.
	engineCounts = []int{2, 3, 4, 6, 8}
	// boosterCounts are the tried numbers of solid fuel boosters. A single
	// booster is stacked below the stage, more are mounted radially.
	boosterCounts = []int{1, 2, 3, 4, 6, 8}
	// throttleLimits are the tried liquid engine thrust fractions while
	// radial boosters burn.
	throttleLimits = []float64{0, 1.0 / 3, 1.0 / 2, 2.0 / 3, 1}
)

// group is a list of shapes evaluated in order by one worker. With firstOnly
// evaluation stops at the first feasible shape, since adding engines past
// that point gains nothing.
type group struct {
	shapes    []design.Shape
	firstOnly bool
}

func single(s design.Shape) group {
	return group{shapes: []design.Shape{s}}
}

// groups enumerates all candidate shapes lazily, in a fixed order.
func (f *Finder) groups() iter.Seq[group] {
	cat := f.catalog
	return func(yield func(group) bool) {
		for _, eng := range cat.EnginesFor(parts.AtomicFuel) {
			if !yield(single(design.Shape{Engine: eng, Count: 1, Size: eng.Size})) {
				return
			}
		}
		for _, eng := range cat.EnginesFor(parts.Xenon) {
			for _, tank := range cat.TanksFor(parts.Xenon) {
				if !yield(single(design.Shape{Engine: eng, Count: 1, Size: tank.Size, Tank: tank})) {
					return
				}
			}
		}
		for _, eng := range cat.EnginesFor(parts.Monopropellant) {
			for _, tank := range cat.TanksFor(parts.Monopropellant) {
				g := group{firstOnly: true}
				for _, n := range countsFor(eng) {
					g.shapes = append(g.shapes, design.Shape{Engine: eng, Count: n, Size: tank.Size, Tank: tank})
				}
				if !yield(g) {
					return
				}
			}
		}
		for _, eng := range cat.EnginesFor(parts.LiquidFuel) {
			if eng.Size != parts.RadiallyMounted {
				if !yield(single(design.Shape{Engine: eng, Count: 1, Size: eng.Size})) {
					return
				}
				if !f.boosterGroups(yield, eng, 1, eng.Size) {
					return
				}
				continue
			}
			for _, size := range parts.StackSizes {
				if len(cat.Ladder(size)) == 0 {
					continue
				}
				g := group{firstOnly: true}
				for _, n := range engineCounts {
					g.shapes = append(g.shapes, design.Shape{Engine: eng, Count: n, Size: size})
				}
				if !yield(g) {
					return
				}
				for _, n := range engineCounts {
					if !f.boosterGroups(yield, eng, n, size) {
						return
					}
				}
			}
		}
	}
}

// boosterGroups yields the booster variants of count engines on a stage of
// the given size. It returns false when the consumer stopped.
func (f *Finder) boosterGroups(yield func(group) bool, eng *parts.Engine, count int, size parts.RadialSize) bool {
	if !f.opts.Boosters || size == parts.Tiny {
		return true
	}
	for _, bc := range boosterCounts {
		// A stacked booster only looks right below a small stage.
		if bc == 1 && size != parts.Small {
			continue
		}
		for _, b := range f.catalog.Boosters {
			var g group
			for _, limit := range throttleLimits {
				g.shapes = append(g.shapes, design.Shape{
					Engine: eng, Count: count, Size: size,
					Booster: b, BoosterCount: bc, ThrottleLimit: limit,
				})
				// A stacked booster burns alone.
				if bc == 1 {
					break
				}
			}
			if !yield(g) {
				return false
			}
		}
	}
	return true
}

func countsFor(eng *parts.Engine) []int {
	if eng.Size == parts.RadiallyMounted {
		return engineCounts
	}
	return []int{1}
}
