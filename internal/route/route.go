package route

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vk/stagefinder/internal/ctxlog"
	"github.com/vk/stagefinder/internal/physics"
)

var (
	// ErrUnknownLocation is returned for places not on the map.
	ErrUnknownLocation = errors.New("unknown location")
	// ErrNoRoute is returned when two places are not connected.
	ErrNoRoute = errors.New("no route")
	// ErrSurfaceUnreachable is returned when a route touches a surface whose
	// pressure no engine can operate in.
	ErrSurfaceUnreachable = errors.New("surface unreachable")
)

// MaxPressure is the highest ambient pressure a route may pass through, in
// atm.
const MaxPressure = 5.0

// DefaultGravityMargin is the factor applied to surface gravity when no
// margin is configured.
const DefaultGravityMargin = 1.2

// Options tune how a route is turned into phases.
type Options struct {
	// PlaneChange adds the worst case plane change delta-v of each transfer.
	PlaneChange bool
	// GravityMargin is the required acceleration during surface legs in
	// multiples of the local gravity. Zero means DefaultGravityMargin.
	GravityMargin float64
}

// Leg is one flight phase of a route.
type Leg struct {
	From, To        Place
	DeltaV          float64
	MinAcceleration float64 // m/s^2
	Pressure        float64 // atm
}

// Map is a delta-v map ready for route queries. It is safe for concurrent
// use.
type Map struct {
	graph  *graph
	bodies map[string]Body
}

// NewMap builds a map from bodies and edges. Every edge endpoint must name a
// known body.
func NewMap(bodies []Body, edges []Edge) (*Map, error) {
	m := &Map{graph: newGraph(), bodies: make(map[string]Body, len(bodies))}
	for _, b := range bodies {
		m.bodies[b.Name] = b
	}
	for i := range edges {
		e := &edges[i]
		for _, p := range []Place{e.From, e.To} {
			if _, ok := m.bodies[p.Body]; !ok {
				return nil, fmt.Errorf("edge %d: %w: unknown body %q", i, ErrUnknownLocation, p.Body)
			}
			m.graph.addNode(p.String())
		}
		if err := m.graph.addEdge(e); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
	}
	return m, nil
}

var defaultMap = sync.OnceValue(func() *Map {
	m, err := NewMap(Bodies, Edges)
	if err != nil {
		panic(fmt.Sprintf("route: invalid default map: %v", err))
	}
	return m
})

// Default returns the map of the Kerbol system.
func Default() *Map {
	return defaultMap()
}

// Resolve finds the cheapest route between two places on the default map.
func Resolve(ctx context.Context, from, to string, opts Options) ([]Leg, error) {
	return Default().Resolve(ctx, from, to, opts)
}

// Resolve finds the cheapest route from one place ("kerbin.surface") to
// another and returns its phases in flight order.
func (m *Map) Resolve(ctx context.Context, from, to string, opts Options) ([]Leg, error) {
	logger := ctxlog.FromContext(ctx)
	start, err := ParsePlace(from)
	if err != nil {
		return nil, err
	}
	end, err := ParsePlace(to)
	if err != nil {
		return nil, err
	}
	if start == end {
		return nil, fmt.Errorf("%w: %s is both start and destination", ErrNoRoute, start)
	}
	margin := opts.GravityMargin
	if margin <= 0 {
		margin = DefaultGravityMargin
	}

	weight := func(e *Edge) float64 {
		if opts.PlaneChange {
			return e.DeltaV + e.PlaneChange
		}
		return e.DeltaV
	}
	path, err := m.graph.shortestPath(start.String(), end.String(), weight)
	if err != nil {
		if errors.Is(err, ErrNoRoute) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUnknownLocation, err)
	}

	legs := make([]Leg, 0, len(path))
	for _, s := range path {
		leg := Leg{From: s.edge.From, To: s.edge.To, DeltaV: weight(s.edge)}
		if s.reverse {
			leg.From, leg.To = leg.To, leg.From
		}
		if surface, ok := surfaceOf(s.edge); ok {
			body := m.bodies[surface]
			if body.Pressure > MaxPressure {
				return nil, fmt.Errorf("%w: %s has %g atm at sea level", ErrSurfaceUnreachable, body.Name, body.Pressure)
			}
			leg.Pressure = body.Pressure
			leg.MinAcceleration = body.Gravity * physics.G0 * margin
		}
		logger.Debug("Route leg.", "from", leg.From, "to", leg.To, "delta_v", leg.DeltaV,
			"pressure", leg.Pressure, "min_acceleration", leg.MinAcceleration)
		legs = append(legs, leg)
	}
	return legs, nil
}

// surfaceOf returns the body whose surface e touches.
func surfaceOf(e *Edge) (string, bool) {
	switch {
	case e.From.Location == Surface:
		return e.From.Body, true
	case e.To.Location == Surface:
		return e.To.Body, true
	}
	return "", false
}
