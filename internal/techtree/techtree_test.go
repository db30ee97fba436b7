package techtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDependsOn(t *testing.T) {
	testCases := []struct {
		name     string
		n, other Node
		expected bool
	}{
		{name: "self", n: Start, other: Start, expected: false},
		{name: "nuclear needs heavy", n: NuclearPropulsion, other: HeavyRocketry, expected: true},
		{name: "nuclear needs fuel systems", n: NuclearPropulsion, other: AdvancedFuelSystems, expected: true},
		{name: "separate chains", n: VeryHeavyRocketry, other: HeavyRocketry, expected: false},
		{name: "reverse order", n: BasicRocketry, other: GeneralRocketry, expected: false},
		{name: "everything needs start", n: IonPropulsion, other: Start, expected: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DependsOn(tc.n, tc.other))
		})
	}
}

func TestNodeSetAdd(t *testing.T) {
	var s NodeSet

	s.Add(BasicRocketry)
	assert.Equal(t, []Node{BasicRocketry}, s.Nodes())

	s.Add(Start)
	assert.Equal(t, []Node{BasicRocketry}, s.Nodes(), "prerequisite of a member is not added")

	s.Add(GeneralRocketry)
	assert.Equal(t, []Node{GeneralRocketry}, s.Nodes(), "new node replaces its prerequisite")

	s.Add(IonPropulsion)
	assert.ElementsMatch(t, []Node{GeneralRocketry, IonPropulsion}, s.Nodes())

	s.Add(Start)
	assert.Equal(t, 2, s.Len())

	s.Add(AdvancedRocketry)
	assert.ElementsMatch(t, []Node{AdvancedRocketry, IonPropulsion}, s.Nodes())

	s.Add(IonPropulsion)
	assert.Equal(t, 2, s.Len(), "adding a member twice keeps one copy")
}

func TestNodeSetAntichainInvariant(t *testing.T) {
	sequences := [][]Node{
		{Start, BasicRocketry, NuclearPropulsion, AdvancedFuelSystems, HeavyRocketry},
		{AerospaceTech, Aerodynamics, IonPropulsion, Engineering101, Stability},
		{PrecisionPropulsion, HeavierRocketry, GeneralRocketry, VeryHeavyRocketry, SpecializedControl, FlightControl},
		{Stability, Stability, Start, HypersonicFlight, SupersonicFlight, AerospaceTech},
	}

	for _, seq := range sequences {
		var s NodeSet
		for _, n := range seq {
			s.Add(n)
		}
		nodes := s.Nodes()
		for _, a := range nodes {
			for _, b := range nodes {
				assert.False(t, DependsOn(a, b), "%s and %s are comparable", a, b)
			}
		}

		// The retained nodes are exactly the maximal elements of the history.
		var maximal []Node
		for _, a := range seq {
			isMax := true
			for _, b := range seq {
				if DependsOn(b, a) {
					isMax = false
				}
			}
			if isMax && !containsNode(maximal, a) {
				maximal = append(maximal, a)
			}
		}
		assert.ElementsMatch(t, maximal, nodes)
	}
}

func TestNodeSetIsEasierThan(t *testing.T) {
	var n, m NodeSet
	n.Add(BasicRocketry)
	m.Add(GeneralRocketry)
	assert.True(t, n.IsEasierThan(m))
	assert.False(t, m.IsEasierThan(n))

	n.Add(AerospaceTech)
	assert.False(t, n.IsEasierThan(m))
	assert.False(t, m.IsEasierThan(n))

	var a, b NodeSet
	a.Add(BasicRocketry)
	a.Add(Engineering101)
	b.Add(BasicRocketry)
	assert.False(t, a.IsEasierThan(b))
	assert.True(t, b.IsEasierThan(a), "proper subset is easier")
	assert.False(t, b.IsEasierThan(b), "a set is not easier than itself")

	var empty NodeSet
	assert.True(t, empty.IsEasierThan(b))
	assert.False(t, empty.IsEasierThan(empty))
}

func TestParseNode(t *testing.T) {
	n, err := ParseNode("nuclearpropulsion")
	require.NoError(t, err)
	assert.Equal(t, NuclearPropulsion, n)
	assert.Equal(t, "NuclearPropulsion", n.String())

	_, err = ParseNode("Warp")
	require.Error(t, err)
}

func containsNode(nodes []Node, n Node) bool {
	for _, m := range nodes {
		if m == n {
			return true
		}
	}
	return false
}
