// This file contains the logic for translating HCL schema structs into the
// format-agnostic mission model and the parts catalog.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/vk/stagefinder/internal/config"
	"github.com/vk/stagefinder/internal/ctxlog"
	"github.com/vk/stagefinder/internal/parts"
	"github.com/vk/stagefinder/internal/techtree"
)

// translateMission converts the HCL-specific mission schema into the agnostic model.
func translateMission(ctx context.Context, m *Mission) (*config.Mission, error) {
	logger := ctxlog.FromContext(ctx).With("mission", m.Name)
	logger.Debug("Translating HCL mission to internal config model.", "phases", len(m.Phases), "has_route", m.Route != nil)

	mission := &config.Mission{Name: m.Name, Payload: m.Payload}
	for _, ph := range m.Phases {
		mission.Phases = append(mission.Phases, config.Phase{
			DeltaV:          ph.DeltaV,
			MinAcceleration: ph.MinAcceleration,
			Pressure:        ph.Pressure,
		})
	}
	if r := m.Route; r != nil {
		mission.Route = &config.Route{
			From:          r.From,
			To:            r.To,
			PlaneChange:   r.PlaneChange,
			GravityMargin: r.GravityMargin,
		}
	}
	if len(mission.Phases) == 0 && mission.Route == nil {
		return nil, fmt.Errorf("mission '%s': at least one phase or a route is required", m.Name)
	}
	if p := m.Preferences; p != nil {
		prefs := config.Preferences{
			Gimbal:         p.Gimbal,
			Boosters:       p.Boosters,
			Generators:     p.Generators,
			ShortEngines:   p.ShortEngines,
			Monopropellant: p.Monopropellant,
			DeltaVTieBreak: p.DeltaVTieBreak,
			Cheapest:       p.Cheapest,
			ShowAll:        p.ShowAll,
		}
		if p.PreferredSize != "" {
			size, err := parts.ParseRadialSize(p.PreferredSize)
			if err != nil {
				return nil, fmt.Errorf("mission '%s': %w", m.Name, err)
			}
			prefs.PreferredSize = size
		}
		if p.Gimbal < 0 || p.Gimbal > 2 {
			return nil, fmt.Errorf("mission '%s': gimbal must be 0, 1 or 2, got %d", m.Name, p.Gimbal)
		}
		mission.Preferences = prefs
	}
	return mission, nil
}

// translateParts merges the catalog blocks of one file into cat.
func translateParts(ctx context.Context, root *fileRoot, cat *parts.Catalog) error {
	logger := ctxlog.FromContext(ctx)

	for _, e := range root.Engines {
		eng, err := translateEngine(e)
		if err != nil {
			return err
		}
		cat.Engines = append(cat.Engines, eng)
	}
	for _, t := range root.Tanks {
		tank, err := translateTank(t)
		if err != nil {
			return err
		}
		cat.Tanks = append(cat.Tanks, tank)
	}
	for _, b := range root.Boosters {
		tech, err := parseTech(b.Tech)
		if err != nil {
			return fmt.Errorf("booster '%s': %w", b.Name, err)
		}
		cat.Boosters = append(cat.Boosters, &parts.Booster{
			Name:      b.Name,
			Cost:      b.Cost,
			FullMass:  b.FullMass,
			EmptyMass: b.EmptyMass,
			IspAtm:    b.IspAtm,
			IspVac:    b.IspVac,
			ThrustVac: b.Thrust,
			Tech:      tech,
		})
	}
	for _, m := range root.Mounts {
		tech, err := parseTech(m.Tech)
		if err != nil {
			return fmt.Errorf("mount '%s': %w", m.Kind, err)
		}
		mount := parts.Mount{Note: m.Note, Mass: m.Mass, Cost: m.Cost, Tech: tech}
		switch m.Kind {
		case "stack":
			cat.StackMount = mount
		case "radial":
			cat.RadialMount = mount
		default:
			return fmt.Errorf("mount '%s': kind must be \"stack\" or \"radial\"", m.Kind)
		}
	}
	if root.AtomicTankFactor != nil {
		cat.AtomicTankFactor = *root.AtomicTankFactor
	}

	logger.Debug("Translated HCL parts.", "engines", len(root.Engines), "tanks", len(root.Tanks),
		"boosters", len(root.Boosters), "mounts", len(root.Mounts))
	return nil
}

func translateEngine(e *Engine) (*parts.Engine, error) {
	size, err := parts.ParseRadialSize(e.Size)
	if err != nil {
		return nil, fmt.Errorf("engine '%s': %w", e.Name, err)
	}
	prop, err := parsePropellant(e.Propellant)
	if err != nil {
		return nil, fmt.Errorf("engine '%s': %w", e.Name, err)
	}
	tech, err := parseTech(e.Tech)
	if err != nil {
		return nil, fmt.Errorf("engine '%s': %w", e.Name, err)
	}
	return &parts.Engine{
		Name:               e.Name,
		Size:               size,
		Propellant:         prop,
		Cost:               e.Cost,
		Mass:               e.Mass,
		IspAtm:             e.IspAtm,
		IspVac:             e.IspVac,
		ThrustVac:          e.Thrust,
		Gimbal:             e.Gimbal,
		Tech:               tech,
		Generator:          e.Generator,
		Length:             e.Length,
		EmptyFraction:      e.EmptyFraction,
		IntegratedTankMass: e.IntegratedTankMass,
	}, nil
}

func translateTank(t *Tank) (*parts.FuelTank, error) {
	size, err := parts.ParseRadialSize(t.Size)
	if err != nil {
		return nil, fmt.Errorf("tank '%s': %w", t.Name, err)
	}
	prop, err := parsePropellant(t.Propellant)
	if err != nil {
		return nil, fmt.Errorf("tank '%s': %w", t.Name, err)
	}
	tech, err := parseTech(t.Tech)
	if err != nil {
		return nil, fmt.Errorf("tank '%s': %w", t.Name, err)
	}
	return &parts.FuelTank{
		Name:          t.Name,
		Size:          size,
		Propellant:    prop,
		Cost:          t.Cost,
		FullMass:      t.FullMass,
		EmptyFraction: t.EmptyFraction,
		Tech:          tech,
	}, nil
}

// parsePropellant defaults to liquid fuel.
func parsePropellant(s string) (parts.Propellant, error) {
	if s == "" {
		return parts.LiquidFuel, nil
	}
	return parts.ParsePropellant(s)
}

// parseTech defaults to the start node.
func parseTech(s string) (techtree.Node, error) {
	if s == "" {
		return techtree.Start, nil
	}
	return techtree.ParseNode(s)
}
