package route

import (
	"fmt"
	"strings"
)

// Body is a celestial body of the Kerbol system.
type Body struct {
	Name string
	// Gravity is the surface gravity in multiples of standard gravity.
	Gravity float64
	// Pressure is the sea level pressure in atm, zero without atmosphere.
	Pressure float64
	// AtmosphereHeight is the height of the atmosphere in km.
	AtmosphereHeight float64
}

// HasAtmosphere reports whether the body has an atmosphere.
func (b Body) HasAtmosphere() bool {
	return b.Pressure > 0
}

// Bodies lists the celestial bodies known to the default map.
var Bodies = []Body{
	{Name: "Kerbol", Gravity: 1.746, Pressure: 0.157908, AtmosphereHeight: 600},
	{Name: "Moho", Gravity: 0.275},
	{Name: "Eve", Gravity: 1.7, Pressure: 5, AtmosphereHeight: 90},
	{Name: "Gilly", Gravity: 0.005},
	{Name: "Kerbin", Gravity: 1, Pressure: 1, AtmosphereHeight: 70},
	{Name: "Mun", Gravity: 0.166},
	{Name: "Minmus", Gravity: 0.05},
	{Name: "Duna", Gravity: 0.3, Pressure: 0.066667, AtmosphereHeight: 50},
	{Name: "Ike", Gravity: 0.112},
	{Name: "Dres", Gravity: 0.115},
	{Name: "Jool", Gravity: 0.8, Pressure: 15, AtmosphereHeight: 200},
	{Name: "Laythe", Gravity: 0.8, Pressure: 0.6, AtmosphereHeight: 50},
	{Name: "Vall", Gravity: 0.235},
	{Name: "Tylo", Gravity: 0.8},
	{Name: "Bop", Gravity: 0.06},
	{Name: "Pol", Gravity: 0.038},
	{Name: "Eeloo", Gravity: 0.172},
}

// LookupBody finds a body by name, ignoring case.
func LookupBody(name string) (Body, bool) {
	for _, b := range Bodies {
		if strings.EqualFold(b.Name, name) {
			return b, true
		}
	}
	return Body{}, false
}

// Location is a position relative to a body.
type Location int

const (
	Surface Location = iota
	Orbit
	Stationary
	SOI
	Intercept
)

var locationNames = [...]string{
	Surface:    "surface",
	Orbit:      "orbit",
	Stationary: "stationary",
	SOI:        "soi",
	Intercept:  "intercept",
}

func (l Location) String() string {
	if l < 0 || int(l) >= len(locationNames) {
		return fmt.Sprintf("Location(%d)", int(l))
	}
	return locationNames[l]
}

// Place is a location at a body, written as "body.location".
type Place struct {
	Body     string
	Location Location
}

func (p Place) String() string {
	return strings.ToLower(p.Body) + "." + p.Location.String()
}

// ParsePlace parses "body.location", for example "mun.surface".
func ParsePlace(s string) (Place, error) {
	body, loc, ok := strings.Cut(strings.TrimSpace(s), ".")
	if !ok {
		return Place{}, fmt.Errorf("%w: %q is not of the form body.location", ErrUnknownLocation, s)
	}
	b, ok := LookupBody(body)
	if !ok {
		return Place{}, fmt.Errorf("%w: unknown body %q", ErrUnknownLocation, body)
	}
	for i, name := range locationNames {
		if strings.EqualFold(name, loc) {
			return Place{Body: b.Name, Location: Location(i)}, nil
		}
	}
	return Place{}, fmt.Errorf("%w: unknown location %q", ErrUnknownLocation, loc)
}

// Edge is a transfer between two places with its delta-v cost in m/s.
// PlaneChange is the extra delta-v of a worst case plane change.
type Edge struct {
	DeltaV      float64
	From, To    Place
	PlaneChange float64
}

func edge(dv float64, body string, from, to Location) Edge {
	return Edge{DeltaV: dv, From: Place{body, from}, To: Place{body, to}}
}

func transfer(dv float64, fromBody string, from, to Location, toBody string, planeChange float64) Edge {
	return Edge{DeltaV: dv, From: Place{fromBody, from}, To: Place{toBody, to}, PlaneChange: planeChange}
}

// Edges is the community delta-v map for KSP 1.1.
var Edges = []Edge{
	edge(3400, "Kerbin", Surface, Orbit),
	edge(1115, "Kerbin", Orbit, Stationary),

	transfer(860, "Kerbin", Orbit, Intercept, "Mun", 0),
	edge(310, "Mun", Intercept, Orbit),
	edge(580, "Mun", Orbit, Surface),

	transfer(930, "Kerbin", Orbit, Intercept, "Minmus", 340),
	edge(160, "Minmus", Intercept, Orbit),
	edge(180, "Minmus", Orbit, Surface),

	edge(950, "Kerbin", Orbit, SOI),

	transfer(6000, "Kerbin", SOI, SOI, "Kerbol", 0),
	edge(13700, "Kerbol", SOI, Orbit),
	edge(67000, "Kerbol", Orbit, Surface),

	transfer(760, "Kerbin", SOI, Intercept, "Moho", 2520),
	edge(2410, "Moho", Intercept, Orbit),
	edge(870, "Moho", Orbit, Surface),

	transfer(90, "Kerbin", SOI, Intercept, "Eve", 430),
	edge(80, "Eve", Intercept, SOI),
	edge(1330, "Eve", SOI, Orbit),
	edge(8000, "Eve", Orbit, Surface),
	transfer(60, "Eve", SOI, Intercept, "Gilly", 0),
	edge(410, "Gilly", Intercept, Orbit),
	edge(30, "Gilly", Orbit, Surface),

	transfer(130, "Kerbin", SOI, Intercept, "Duna", 10),
	edge(250, "Duna", Intercept, SOI),
	edge(360, "Duna", SOI, Orbit),
	edge(1450, "Duna", Orbit, Surface),
	transfer(30, "Duna", SOI, Intercept, "Ike", 0),
	edge(180, "Ike", Intercept, Orbit),
	edge(390, "Ike", Orbit, Surface),

	transfer(610, "Kerbin", SOI, Intercept, "Dres", 1010),
	edge(1290, "Dres", Intercept, Orbit),
	edge(430, "Dres", Orbit, Surface),

	transfer(980, "Kerbin", SOI, Intercept, "Jool", 270),
	edge(160, "Jool", Intercept, SOI),
	edge(2810, "Jool", SOI, Orbit),
	edge(14000, "Jool", Orbit, Surface),
	transfer(160, "Jool", SOI, Intercept, "Pol", 700),
	edge(820, "Pol", Intercept, Orbit),
	edge(130, "Pol", Orbit, Surface),
	transfer(220, "Jool", SOI, Intercept, "Bop", 2440),
	edge(900, "Bop", Intercept, Orbit),
	edge(220, "Bop", Orbit, Surface),
	transfer(400, "Jool", SOI, Intercept, "Tylo", 0),
	edge(1100, "Tylo", Intercept, Orbit),
	edge(2270, "Tylo", Orbit, Surface),
	transfer(620, "Jool", SOI, Intercept, "Vall", 0),
	edge(910, "Vall", Intercept, Orbit),
	edge(860, "Vall", Orbit, Surface),
	transfer(930, "Jool", SOI, Intercept, "Laythe", 0),
	edge(1070, "Laythe", Intercept, Orbit),
	edge(2900, "Laythe", Orbit, Surface),

	transfer(1140, "Kerbin", SOI, Intercept, "Eeloo", 1330),
	edge(1370, "Eeloo", Intercept, Orbit),
	edge(620, "Eeloo", Orbit, Surface),
}
