package techtree

import (
	"fmt"
	"slices"
	"strings"
)

// Node is a node of the technology tree. Only the nodes that unlock parts
// known to the catalog are modeled.
type Node int

const (
	Start Node = iota
	BasicRocketry
	Engineering101
	GeneralRocketry
	Stability
	AdvancedRocketry
	FlightControl
	HeavyRocketry
	PropulsionSystems
	Aerodynamics
	AdvancedFlightControl
	HeavierRocketry
	PrecisionPropulsion
	AdvancedFuelSystems
	SupersonicFlight
	SpecializedControl
	NuclearPropulsion
	HighAltitudeFlight
	VeryHeavyRocketry
	HypersonicFlight
	IonPropulsion
	AerospaceTech
)

var nodeNames = [...]string{
	Start:                 "Start",
	BasicRocketry:         "BasicRocketry",
	Engineering101:        "Engineering101",
	GeneralRocketry:       "GeneralRocketry",
	Stability:             "Stability",
	AdvancedRocketry:      "AdvancedRocketry",
	FlightControl:         "FlightControl",
	HeavyRocketry:         "HeavyRocketry",
	PropulsionSystems:     "PropulsionSystems",
	Aerodynamics:          "Aerodynamics",
	AdvancedFlightControl: "AdvancedFlightControl",
	HeavierRocketry:       "HeavierRocketry",
	PrecisionPropulsion:   "PrecisionPropulsion",
	AdvancedFuelSystems:   "AdvancedFuelSystems",
	SupersonicFlight:      "SupersonicFlight",
	SpecializedControl:    "SpecializedControl",
	NuclearPropulsion:     "NuclearPropulsion",
	HighAltitudeFlight:    "HighAltitudeFlight",
	VeryHeavyRocketry:     "VeryHeavyRocketry",
	HypersonicFlight:      "HypersonicFlight",
	IonPropulsion:         "IonPropulsion",
	AerospaceTech:         "AerospaceTech",
}

func (n Node) String() string {
	if n < 0 || int(n) >= len(nodeNames) {
		return fmt.Sprintf("Node(%d)", int(n))
	}
	return nodeNames[n]
}

// ParseNode looks a node up by name, ignoring case.
func ParseNode(name string) (Node, error) {
	for i, s := range nodeNames {
		if strings.EqualFold(s, name) {
			return Node(i), nil
		}
	}
	return Start, fmt.Errorf("unknown technology node %q", name)
}

// chains lists the dependency chains of the tree. OR-branches are skipped
// until they merge again.
var chains = [][]Node{
	{Start, BasicRocketry, GeneralRocketry, AdvancedRocketry, HeavyRocketry, HeavierRocketry, NuclearPropulsion},
	{Start, BasicRocketry, GeneralRocketry, AdvancedRocketry, PropulsionSystems, PrecisionPropulsion},
	{Start, AdvancedFuelSystems, NuclearPropulsion},
	{Start, VeryHeavyRocketry},
	{Start, Aerodynamics, SupersonicFlight, HighAltitudeFlight, HypersonicFlight, AerospaceTech},
	{Start, Engineering101, IonPropulsion},
	{Start, Stability},
	{Start, FlightControl, AdvancedFlightControl, SpecializedControl},
}

// DependsOn reports whether other must have been researched before n can be
// researched, i.e. other strictly precedes n on some chain. A node never
// depends on itself.
func DependsOn(n, other Node) bool {
	for _, chain := range chains {
		i := slices.Index(chain, other)
		j := slices.Index(chain, n)
		if i >= 0 && j >= 0 && i < j {
			return true
		}
	}
	return false
}

// NodeSet holds the maximal elements of all nodes added to it. No two members
// are comparable under DependsOn.
type NodeSet struct {
	nodes []Node
}

// Add inserts n. Members n depends on are dropped; n itself is dropped when a
// member already depends on it.
func (s *NodeSet) Add(n Node) {
	for _, m := range s.nodes {
		if m == n || DependsOn(m, n) {
			return
		}
	}
	s.nodes = slices.DeleteFunc(s.nodes, func(m Node) bool {
		return DependsOn(n, m)
	})
	s.nodes = append(s.nodes, n)
	slices.Sort(s.nodes)
}

// Nodes returns the members in ascending node order.
func (s NodeSet) Nodes() []Node {
	return slices.Clone(s.nodes)
}

// Contains reports whether n is a member of s.
func (s NodeSet) Contains(n Node) bool {
	return slices.Contains(s.nodes, n)
}

// Len returns the number of members.
func (s NodeSet) Len() int {
	return len(s.nodes)
}

// IsEasierThan reports whether every node of s has to be researched anyway
// to research other: s is a proper subset of other, or for each a in s there
// is a b in other with DependsOn(b, a).
func (s NodeSet) IsEasierThan(other NodeSet) bool {
	if s.isProperSubsetOf(other) {
		return true
	}
	if len(s.nodes) == 0 {
		return false
	}
	for _, a := range s.nodes {
		if !slices.ContainsFunc(other.nodes, func(b Node) bool { return DependsOn(b, a) }) {
			return false
		}
	}
	return true
}

func (s NodeSet) isProperSubsetOf(other NodeSet) bool {
	if len(s.nodes) >= len(other.nodes) {
		return false
	}
	for _, n := range s.nodes {
		if !other.Contains(n) {
			return false
		}
	}
	return true
}

func (s NodeSet) String() string {
	names := make([]string, len(s.nodes))
	for i, n := range s.nodes {
		names[i] = n.String()
	}
	return strings.Join(names, ", ")
}
