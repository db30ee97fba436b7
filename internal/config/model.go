package config

import (
	"context"
	"fmt"

	"github.com/vk/stagefinder/internal/design"
	"github.com/vk/stagefinder/internal/finder"
	"github.com/vk/stagefinder/internal/parts"
	"github.com/vk/stagefinder/internal/route"
)

// Model is the unified, format-agnostic representation of all loaded
// configuration files.
type Model struct {
	Missions []*Mission
	// Catalog is nil when none of the files declared any parts.
	Catalog *parts.Catalog
}

// Mission is one stage to design.
type Mission struct {
	Name    string
	Payload float64 // kg
	Phases  []Phase
	// Route, when set, appends the phases of a trip across the delta-v map
	// after the explicit ones.
	Route       *Route
	Preferences Preferences
}

// Phase is one flight phase.
type Phase struct {
	DeltaV          float64 // m/s
	MinAcceleration float64 // m/s^2
	Pressure        float64 // atm
}

// Route names the endpoints of a trip, such as "kerbin.orbit".
type Route struct {
	From, To      string
	PlaneChange   bool
	GravityMargin float64
}

// Preferences tune the search and the ranking of designs.
type Preferences struct {
	PreferredSize  parts.RadialSize // zero when no size is preferred
	Gimbal         int
	Boosters       bool
	Generators     bool
	ShortEngines   bool
	Monopropellant bool
	DeltaVTieBreak bool
	// Cheapest orders results by cost instead of mass.
	Cheapest bool
	// ShowAll lists every feasible design, not just the optimal ones.
	ShowAll bool
}

// Profile resolves the mission into the flight profile the finder works on.
func (m *Mission) Profile(ctx context.Context) (design.Profile, error) {
	p := design.Profile{Payload: m.Payload}
	for _, ph := range m.Phases {
		p.DeltaV = append(p.DeltaV, ph.DeltaV)
		p.MinAcceleration = append(p.MinAcceleration, ph.MinAcceleration)
		p.Pressure = append(p.Pressure, ph.Pressure)
	}
	if m.Route != nil {
		legs, err := route.Resolve(ctx, m.Route.From, m.Route.To, route.Options{
			PlaneChange:   m.Route.PlaneChange,
			GravityMargin: m.Route.GravityMargin,
		})
		if err != nil {
			return design.Profile{}, fmt.Errorf("mission %q: %w", m.Name, err)
		}
		for _, l := range legs {
			p.DeltaV = append(p.DeltaV, l.DeltaV)
			p.MinAcceleration = append(p.MinAcceleration, l.MinAcceleration)
			p.Pressure = append(p.Pressure, l.Pressure)
		}
	}
	return p, nil
}

// Options returns the finder options for the mission's preferences.
func (p Preferences) Options(workers int) finder.Options {
	return finder.Options{
		Preferences: design.Preferences{
			PreferredSize:  p.PreferredSize,
			Gimbal:         p.Gimbal,
			Generators:     p.Generators,
			ShortEngines:   p.ShortEngines,
			Monopropellant: p.Monopropellant,
			DeltaVTieBreak: p.DeltaVTieBreak,
		},
		Boosters: p.Boosters,
		Workers:  workers,
	}
}
