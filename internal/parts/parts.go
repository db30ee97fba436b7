package parts

import (
	"fmt"
	"strings"

	"github.com/vk/stagefinder/internal/physics"
	"github.com/vk/stagefinder/internal/techtree"
)

// RadialSize is the mounting-diameter class of a part.
type RadialSize int

const (
	Tiny RadialSize = iota + 1
	Small
	Large
	ExtraLarge
	// RadiallyMounted marks engines and tanks attached to the side of a stage.
	RadiallyMounted
)

var radialSizeNames = map[RadialSize]string{
	Tiny:            "Tiny",
	Small:           "Small",
	Large:           "Large",
	ExtraLarge:      "ExtraLarge",
	RadiallyMounted: "RadiallyMounted",
}

func (s RadialSize) String() string {
	if name, ok := radialSizeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("RadialSize(%d)", int(s))
}

// StackSizes are the in-line sizes radially mounted engines can be combined
// with, in enumeration order.
var StackSizes = []RadialSize{Tiny, Small, Large, ExtraLarge}

// ParseRadialSize accepts the size names used in catalogs and on the command
// line ("tiny", "small", "large", "extralarge", "radial").
func ParseRadialSize(s string) (RadialSize, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tiny":
		return Tiny, nil
	case "small":
		return Small, nil
	case "large":
		return Large, nil
	case "extralarge", "extra_large", "xl":
		return ExtraLarge, nil
	case "radial", "radiallymounted", "radially_mounted":
		return RadiallyMounted, nil
	}
	return 0, fmt.Errorf("unknown radial size %q", s)
}

// Propellant is the family of propellant an engine burns. Exactly one family
// is active per design.
type Propellant int

const (
	LiquidFuel Propellant = iota
	// AtomicFuel is liquid fuel without oxidizer.
	AtomicFuel
	Xenon
	Monopropellant
)

func (p Propellant) String() string {
	switch p {
	case LiquidFuel:
		return "Liquid fuel (+Oxidizer)"
	case AtomicFuel:
		return "Atomic fuel"
	case Xenon:
		return "Xenon"
	case Monopropellant:
		return "MonoPropellant"
	}
	return fmt.Sprintf("Propellant(%d)", int(p))
}

// UnitMass is the mass of one in-game unit of the propellant.
func (p Propellant) UnitMass() float64 {
	switch p {
	case Xenon:
		return 0.1
	case Monopropellant:
		return 4
	default:
		return 5
	}
}

// ParsePropellant accepts "liquid", "atomic", "xenon" and "monopropellant".
func ParsePropellant(s string) (Propellant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "liquid", "liquidfuel", "liquid_fuel":
		return LiquidFuel, nil
	case "atomic", "atomicfuel", "atomic_fuel":
		return AtomicFuel, nil
	case "xenon":
		return Xenon, nil
	case "monopropellant", "mono", "rcs":
		return Monopropellant, nil
	}
	return 0, fmt.Errorf("unknown propellant %q", s)
}

// LiquidEmptyFraction is the inert mass per unit of liquid fuel and oxidizer
// carried in a standard tank (an empty tank weighs 1/9 of a full one).
const LiquidEmptyFraction = physics.LiquidEmptyFraction

// Engine describes a propulsion engine.
type Engine struct {
	Name       string
	Size       RadialSize
	Propellant Propellant
	Cost       float64
	Mass       float64
	IspAtm     float64 // specific impulse at 1 atm
	IspVac     float64
	ThrustVac  float64
	Gimbal     float64 // thrust vectoring range in degrees
	Tech       techtree.Node
	Generator  bool
	// Length is the shortest landing strut class the engine fits:
	// 0 LT-05, 1 LT-1, 2 LT-2, 3 none.
	Length int
	// EmptyFraction overrides the inert fraction of the propellant for
	// engines whose tanks differ from the standard ones (atomic fuel).
	EmptyFraction float64
	// IntegratedTankMass is the full mass of a tank built into the engine.
	// Designs never carry less liquid fuel than that.
	IntegratedTankMass float64
}

// Isp returns the specific impulse at each pressure.
func (e *Engine) Isp(pressure []float64) []float64 {
	isp := make([]float64, len(pressure))
	for i, p := range pressure {
		isp[i] = physics.IspAt(e.IspAtm, e.IspVac, p)
	}
	return isp
}

// Thrust returns the combined thrust of count engines at each pressure.
func (e *Engine) Thrust(count int, pressure []float64) []float64 {
	f := make([]float64, len(pressure))
	for i, p := range pressure {
		f[i] = float64(count) * physics.ThrustAt(e.ThrustVac, e.IspAtm, e.IspVac, p)
	}
	return f
}

// FuelTank describes a propellant tank.
type FuelTank struct {
	Name       string
	Size       RadialSize
	Propellant Propellant
	Cost       float64
	FullMass   float64
	// EmptyFraction is the inert fraction of special (xenon,
	// monopropellant) tanks; zero for standard liquid fuel tanks.
	EmptyFraction float64
	Tech          techtree.Node
}

// Booster describes a solid fuel booster.
type Booster struct {
	Name      string
	Cost      float64
	FullMass  float64
	EmptyMass float64
	IspAtm    float64
	IspVac    float64
	ThrustVac float64
	Tech      techtree.Node
}

// Isp returns the specific impulse at each pressure.
func (b *Booster) Isp(pressure []float64) []float64 {
	isp := make([]float64, len(pressure))
	for i, p := range pressure {
		isp[i] = physics.IspAt(b.IspAtm, b.IspVac, p)
	}
	return isp
}

// Thrust returns the combined thrust of count boosters at each pressure.
func (b *Booster) Thrust(count int, pressure []float64) []float64 {
	f := make([]float64, len(pressure))
	for i, p := range pressure {
		f[i] = float64(count) * physics.ThrustAt(b.ThrustVac, b.IspAtm, b.IspVac, p)
	}
	return f
}

// Mount is the extra hardware needed per booster attachment.
type Mount struct {
	Note string
	Mass float64
	Cost float64
	Tech techtree.Node
}
