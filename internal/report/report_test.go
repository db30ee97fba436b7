package report

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/stagefinder/internal/config"
	"github.com/vk/stagefinder/internal/design"
	"github.com/vk/stagefinder/internal/hcl_adapter"
	"github.com/vk/stagefinder/internal/parts"
)

func terrierDesign(t *testing.T) (design.Profile, *design.Design) {
	t.Helper()
	cat, err := hcl_adapter.DefaultCatalog(context.Background())
	require.NoError(t, err)

	var terrier *parts.Engine
	for _, e := range cat.Engines {
		if e.Name == "LV-909 Terrier" {
			terrier = e
		}
	}
	require.NotNil(t, terrier)

	p := design.Profile{Payload: 1000, DeltaV: []float64{1000}, MinAcceleration: []float64{0}, Pressure: []float64{0}}
	d, ok := design.Build(context.Background(), cat, p, design.Shape{Engine: terrier, Count: 1, Size: parts.Small})
	require.True(t, ok)
	design.MarkFrontier([]*design.Design{d}, design.Preferences{})
	return p, d
}

func TestWriteText_Design(t *testing.T) {
	_, d := terrierDesign(t)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, Request{}, []*design.Design{d}, true))
	out := buf.String()

	assert.True(t, len(out) > 0 && out[:len("LV-909 Terrier\n")] == "LV-909 Terrier\n", out)
	assert.Contains(t, out, "      ✔ Total Mass: ")
	assert.Contains(t, out, "      ✔ Cost: ")
	assert.Contains(t, out, "\tLiquid fuel (+Oxidizer): ")
	assert.Contains(t, out, "\tTanks: ")
	assert.Contains(t, out, "      ✔ Requires: AdvancedRocketry\n")
	assert.Contains(t, out, "\tRadial size: Small\n")
	assert.Contains(t, out, "\tGimbal: 4.0 °\n")
	assert.NotContains(t, out, "electricity")
	assert.Contains(t, out, "\tEngine is short enough to be used with LT-05 Micro Landing Struts\n")
	assert.Contains(t, out, "\tPerformance:\n\t  1:  1000 m/s @ vacuum  ")
	assert.Contains(t, out, "\t  2: ")
	assert.NotContains(t, out, "Sorry")
	assert.NotContains(t, out, "Payload")
}

func TestWriteText_Prologue(t *testing.T) {
	p, _ := terrierDesign(t)
	req := Request{
		Profile:     p,
		Preferences: config.Preferences{PreferredSize: parts.Large, Gimbal: 2, Monopropellant: true},
		Warnings:    []string{"Your rocket is very heavy."},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, req, nil, false))
	out := buf.String()

	assert.Contains(t, out, "- Payload: 1000 kg.\n")
	assert.Contains(t, out, "- Flight phases: 1000 m/s, 0.0 m/s², 0.00 atm.\n")
	assert.Contains(t, out, "- Preferred size: large.\n")
	assert.Contains(t, out, "- You prefer engines with the best thrust vectoring.\n")
	assert.Contains(t, out, "- Solid fuel boosters must not be added to the ship.\n")
	assert.Contains(t, out, "- You prefer engines using monopropellant.\n")
	assert.Contains(t, out, "WARNING: Your rocket is very heavy.\n")
	assert.Contains(t, out, "Sorry, nothing found.")
	for _, line := range bytes.Split(buf.Bytes(), []byte("\n")) {
		if bytes.HasPrefix(line, []byte("Printing")) || bytes.HasPrefix(line, []byte("Note")) {
			assert.LessOrEqual(t, len(line), lineWidth)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	_, d := terrierDesign(t)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, []*design.Design{d}, []string{"careful"}))

	var got struct {
		Warnings []string         `json:"warnings"`
		Designs  []map[string]any `json:"designs"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []string{"careful"}, got.Warnings)
	require.Len(t, got.Designs, 1)

	jd := got.Designs[0]
	assert.Equal(t, "LV-909 Terrier", jd["engine"])
	assert.Equal(t, "Small", jd["size"])
	assert.Equal(t, "", jd["booster"])
	assert.Equal(t, true, jd["best"])
	assert.InDelta(t, d.Mass(), jd["mass"], 1e-6)
	assert.InDelta(t, d.Cost(), jd["cost"], 1e-6)
	assert.Equal(t, []any{"AdvancedRocketry"}, jd["required_tech"])
	assert.Equal(t, []any{"mass", "cost", "low_requirements"}, jd["features"])

	traj, ok := jd["trajectory"].([]any)
	require.True(t, ok)
	require.Len(t, traj, 2)
	first := traj[0].(map[string]any)
	assert.Equal(t, 1.0, first["phase"])
	assert.Equal(t, 1000.0, first["delta_v"])
	assert.Equal(t, false, first["solid"])
}

func TestWriteJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil, nil))
	assert.JSONEq(t, `{"designs":[],"warnings":[]}`, buf.String())
}
