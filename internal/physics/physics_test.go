package physics

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const delta = 0.05

func repeat(v float64, n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}

func assertFloats(t *testing.T, want []float64, got []float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, "index %d", i)
	}
}

func column(tr Trajectory, f func(Segment) float64) []float64 {
	out := make([]float64, len(tr))
	for i, s := range tr {
		out[i] = f(s)
	}
	return out
}

func TestNeededFuel(t *testing.T) {
	dv := []float64{1750, 580, 310, 792}
	testCases := []struct {
		name string
		isp  []float64
		want float64
	}{
		{"constant isp", repeat(345, 4), 3378.94},
		{"weaker last phase", []float64{345, 345, 345, 300}, 3625.64},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mc, ok := NeededFuel(dv, tc.isp, 1500, LiquidEmptyFraction)
			require.True(t, ok)
			assert.InDelta(t, tc.want, mc, delta)
		})
	}
}

func TestNeededFuel_Monotonic(t *testing.T) {
	dv := []float64{1750, 580, 310, 792}
	isp := repeat(345, 4)
	base, ok := NeededFuel(dv, isp, 1500, LiquidEmptyFraction)
	require.True(t, ok)

	type change struct {
		name    string
		dv, isp []float64
	}
	var testCases []change
	for i := range dv {
		more := slices.Clone(dv)
		more[i] += 100
		weaker := slices.Clone(isp)
		weaker[i] -= 20
		testCases = append(testCases,
			change{name: fmt.Sprintf("more delta-v in phase %d", i+1), dv: more, isp: isp},
			change{name: fmt.Sprintf("lower isp in phase %d", i+1), dv: dv, isp: weaker},
		)
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mc, ok := NeededFuel(tc.dv, tc.isp, 1500, LiquidEmptyFraction)
			require.True(t, ok)
			assert.GreaterOrEqual(t, mc, base)
		})
	}
}

func TestNeededFuel_Infeasible(t *testing.T) {
	t.Run("beyond the tank limit", func(t *testing.T) {
		_, ok := NeededFuel([]float64{20000}, []float64{300}, 1000, LiquidEmptyFraction)
		assert.False(t, ok)
	})
	t.Run("non-positive isp", func(t *testing.T) {
		_, ok := NeededFuel([]float64{100}, []float64{0}, 1000, LiquidEmptyFraction)
		assert.False(t, ok)
	})
}

func TestPerformance(t *testing.T) {
	tr, ok := Performance([]float64{1750, 580, 310, 792}, repeat(345, 4), repeat(60000, 4), repeat(0, 4), 2005, 5000, LiquidEmptyFraction)
	require.True(t, ok)
	require.Len(t, tr, 5)

	assertFloats(t, []float64{1750, 580, 310, 792, 171.56}, column(tr, func(s Segment) float64 { return s.DeltaV }))
	assertFloats(t, []float64{7.86, 13.19, 15.65, 17.15, 21.68}, column(tr, func(s Segment) float64 { return s.StartAccel }))
	assertFloats(t, []float64{13.19, 15.65, 17.15, 21.68, 22.81}, column(tr, func(s Segment) float64 { return s.EndAccel }))
	assertFloats(t, []float64{7630.0, 4548.69, 3832.08, 3496.57, 2766.80}, column(tr, func(s Segment) float64 { return s.StartMass }))
	assertFloats(t, []float64{4548.69, 3832.08, 3496.57, 2766.80, 2630.0}, column(tr, func(s Segment) float64 { return s.EndMass }))

	phases := make([]int, len(tr))
	for i, s := range tr {
		phases[i] = s.Phase
		assert.False(t, s.Solid)
		assert.Zero(t, s.Pressure)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 3}, phases)
}

func TestPerformance_ReproducesNeededFuel(t *testing.T) {
	dv := []float64{1170, 580, 580, 210, 700}
	isp := repeat(320, 5)
	mc, ok := NeededFuel(dv, isp, 3000, LiquidEmptyFraction)
	require.True(t, ok)

	tr, ok := Performance(dv, isp, repeat(200000, 5), repeat(0, 5), 3000, mc*(1+1e-9), LiquidEmptyFraction)
	require.True(t, ok)
	for i := range dv {
		assert.InDelta(t, dv[i], tr[i].DeltaV, 1e-9)
	}
	// Just enough fuel leaves nothing for the trailing segment.
	assert.InDelta(t, 0, tr[len(dv)].DeltaV, 1e-3)
}

func TestBoosterNeededFuel(t *testing.T) {
	testCases := []struct {
		name                  string
		dv, ispl, isps        []float64
		mp, mx, sms, smt, want float64
	}{
		{"two phases heavy boosters", []float64{2500, 2000}, []float64{250, 320}, []float64{195, 220}, 15000, 50, 24000, 4500, 104716.64},
		{"single phase", []float64{2000}, []float64{250}, []float64{150}, 10000, 200, 10000, 2000, 10106.61},
		{"burnout in second phase", []float64{150, 2000}, []float64{240, 250}, []float64{130, 150}, 10000, 200, 10000, 2000, 12298.56},
		{"one long phase", []float64{2150}, []float64{250}, []float64{150}, 10000, 200, 10000, 2000, 11990.20},
		{"same phase split in two", []float64{150, 2000}, repeat(250, 2), repeat(150, 2), 10000, 200, 10000, 2000, 11990.20},
		{"launcher", []float64{905, 3650}, []float64{260, 284.6}, []float64{195, 215.5}, 10040, 50, 24000, 4500, 63162.60},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mc, ok := BoosterNeededFuel(tc.dv, tc.ispl, tc.isps, tc.mp, tc.mx, tc.sms, tc.smt)
			require.True(t, ok)
			assert.InDelta(t, tc.want, mc, delta)
		})
	}
}

func TestBoosterNeededFuel_BoostersTooStrong(t *testing.T) {
	_, ok := BoosterNeededFuel([]float64{50}, []float64{300}, []float64{200}, 1000, 50, 24000, 4500)
	assert.False(t, ok)
}

func TestBoosterPerformance(t *testing.T) {
	testCases := []struct {
		name                       string
		dv, ispl, isps             []float64
		mp, mc, mx, sms, smt       float64
		wantDV, wantStart, wantEnd []float64
		wantSolid                  []bool
		wantPhase                  []int
	}{
		{
			name: "burnout in first phase",
			dv:   []float64{1000, 500}, ispl: []float64{250, 260}, isps: []float64{150, 170},
			mp: 10000, mc: 7000, mx: 100, sms: 5000, smt: 1000,
			wantDV:    []float64{281.37, 718.62, 500.0, 19.68},
			wantStart: []float64{22975.0, 17875.0, 13333.60, 10959.29},
			wantEnd:   []float64{18975.0, 13333.60, 10959.29, 10875.0},
			wantSolid: []bool{true, false, false, false},
			wantPhase: []int{0, 0, 1, 1},
		},
		{
			name: "single phase",
			dv:   []float64{2000}, ispl: []float64{250}, isps: []float64{150},
			mp: 10000, mc: 11000, mx: 200, sms: 10000, smt: 2000,
			wantDV:    []float64{414.54, 1585.45, 73.16},
			wantStart: []float64{32575.0, 22375.0, 11719.57},
			wantEnd:   []float64{24575.0, 11719.57, 11375.0},
			wantSolid: []bool{true, false, false},
			wantPhase: []int{0, 0, 0},
		},
		{
			name: "boosters outlast first phase",
			dv:   []float64{100, 900, 500}, ispl: []float64{250, 250, 260}, isps: []float64{150, 150, 170},
			mp: 10000, mc: 7000, mx: 100, sms: 5000, smt: 1000,
			wantDV:    []float64{100.0, 181.37, 718.62, 500.0, 19.68},
			wantStart: []float64{22975.0, 21465.04, 17875.0, 13333.60, 10959.29},
			wantEnd:   []float64{21465.04, 18975.0, 13333.60, 10959.29, 10875.0},
			wantSolid: []bool{true, true, false, false, false},
			wantPhase: []int{0, 1, 1, 2, 2},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			zero := repeat(0, len(tc.dv))
			tr, ok := BoosterPerformance(tc.dv, tc.ispl, tc.isps, zero, zero, zero, tc.mp, tc.mc, tc.mx, tc.sms, tc.smt)
			require.True(t, ok)
			assertFloats(t, tc.wantDV, column(tr, func(s Segment) float64 { return s.DeltaV }))
			assertFloats(t, tc.wantStart, column(tr, func(s Segment) float64 { return s.StartMass }))
			assertFloats(t, tc.wantEnd, column(tr, func(s Segment) float64 { return s.EndMass }))
			solid := make([]bool, len(tr))
			phase := make([]int, len(tr))
			for i, s := range tr {
				solid[i] = s.Solid
				phase[i] = s.Phase
			}
			assert.Equal(t, tc.wantSolid, solid)
			assert.Equal(t, tc.wantPhase, phase)
		})
	}
}

func TestBoosterPerformance_BoostersTooStrong(t *testing.T) {
	zero := repeat(0, 1)
	_, ok := BoosterPerformance([]float64{50}, []float64{300}, []float64{200}, zero, zero, zero, 1000, 500, 50, 24000, 4500)
	assert.False(t, ok)
}

func TestConcurrent_ZeroLimitMatchesSequential(t *testing.T) {
	dv := []float64{905, 3650}
	ispl := []float64{260, 284.6}
	isps := []float64{195, 215.5}
	fl := []float64{215000, 215000}
	fs := []float64{670000, 670000}
	p := []float64{1, 0}

	seq, ok := BoosterNeededFuel(dv, ispl, isps, 10040, 50, 24000, 4500)
	require.True(t, ok)
	con, ok := ConcurrentNeededFuel(dv, ispl, isps, 10040, 50, 24000, 4500, LiquidPerSolid(0, ispl, isps, fl, fs))
	require.True(t, ok)
	assert.InDelta(t, seq, con, 1e-9)

	// Tanks are always rounded up, so simulate with a little slack.
	mc := seq * 1.01
	a, ok := BoosterPerformance(dv, ispl, isps, fl, fs, p, 10040, mc, 50, 24000, 4500)
	require.True(t, ok)
	b, ok := ConcurrentPerformance(dv, ispl, isps, fl, fs, p, 10040, mc, 50, 24000, 4500, 0)
	require.True(t, ok)
	assert.Equal(t, a, b)
}

func TestConcurrent_DeliversRequestedDeltaV(t *testing.T) {
	dv := []float64{1200, 2200}
	ispl := []float64{280, 310}
	isps := []float64{175, 210}
	fl := []float64{215000, 215000}
	fs := []float64{300000, 300000}
	p := []float64{1, 0}

	for _, limit := range []float64{1.0 / 3, 0.5, 1} {
		lpsr := LiquidPerSolid(limit, ispl, isps, fl, fs)
		mc, ok := ConcurrentNeededFuel(dv, ispl, isps, 8000, 225, 7650, 1500, lpsr)
		require.True(t, ok, "limit %v", limit)
		tr, ok := ConcurrentPerformance(dv, ispl, isps, fl, fs, p, 8000, mc*1.01, 225, 7650, 1500, limit)
		require.True(t, ok, "limit %v", limit)

		delivered := make([]float64, len(dv))
		for _, s := range tr[:len(tr)-1] {
			delivered[s.Phase] += s.DeltaV
		}
		for i := range dv {
			assert.InDelta(t, dv[i], delivered[i], 1, "limit %v phase %d", limit, i)
		}
	}
}

func TestEngineCurves(t *testing.T) {
	assert.InDelta(t, 300.0, IspAt(280, 300, 0), 1e-9)
	assert.InDelta(t, 280.0, IspAt(280, 300, 1), 1e-9)
	assert.InDelta(t, 290.0, IspAt(280, 300, 0.5), 1e-9)
	assert.InDelta(t, 215000.0, ThrustAt(215000, 280, 300, 0), 1e-9)
	assert.InDelta(t, 215000*280.0/300, ThrustAt(215000, 280, 300, 1), 1e-6)
}
