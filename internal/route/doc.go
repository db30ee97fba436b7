// Package route turns a trip through the Kerbol system into flight phases.
//
// The community delta-v map is modeled as an undirected graph of places,
// each place being a location (surface, low orbit, stationary orbit, sphere
// of influence, intercept) at a celestial body. Resolve finds the cheapest
// path between two places and emits one phase per traversed edge, carrying
// the delta-v, the ambient pressure and the acceleration needed to hover at
// the body's surface.
package route
