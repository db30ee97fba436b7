package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/stagefinder/internal/config"
	"github.com/vk/stagefinder/internal/finder"
	"github.com/vk/stagefinder/internal/hcl_adapter"
	"github.com/vk/stagefinder/internal/parts"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewConfig(t *testing.T) {
	phases := []config.Phase{{DeltaV: 1000}}
	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "phases", cfg: Config{Payload: 1500, Phases: phases}},
		{name: "route", cfg: Config{Payload: 1500, Route: &config.Route{From: "kerbin.orbit", To: "mun.orbit"}}},
		{name: "mission file", cfg: Config{MissionPaths: []string{"missions"}}},
		{name: "serve", cfg: Config{ServeAddr: ":8080"}},
		{name: "nothing to do", cfg: Config{}, wantErr: "a mission is required"},
		{name: "serve with mission", cfg: Config{ServeAddr: ":8080", Phases: phases}, wantErr: "takes no mission"},
		{name: "negative payload", cfg: Config{Payload: -1, Phases: phases}, wantErr: "payload must not be negative"},
		{name: "half route", cfg: Config{Route: &config.Route{From: "kerbin.orbit"}}, wantErr: "start and a destination"},
		{name: "gimbal", cfg: Config{Phases: phases, Preferences: config.Preferences{Gimbal: 3}}, wantErr: "gimbal"},
		{name: "workers", cfg: Config{Phases: phases, WorkerCount: -1}, wantErr: "worker count"},
		{name: "searches", cfg: Config{ServeAddr: ":8080", MaxSearches: -2}, wantErr: "search limit"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := NewConfig(tc.cfg)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.cfg, *cfg)
		})
	}
}

func TestMergePreferences(t *testing.T) {
	file := config.Preferences{PreferredSize: parts.Small, Gimbal: 2, Boosters: true}
	flags := config.Preferences{PreferredSize: parts.Large, Gimbal: 1, Cheapest: true, ShowAll: true}

	got := mergePreferences(file, flags)
	want := config.Preferences{PreferredSize: parts.Large, Gimbal: 2, Boosters: true, Cheapest: true, ShowAll: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mergePreferences() mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, file, mergePreferences(file, config.Preferences{}))
}

func TestRun_CommandLineMission(t *testing.T) {
	cfg := &Config{
		Payload: 1500,
		Phases:  []config.Phase{{DeltaV: 1000, MinAcceleration: 5}},
	}
	a, out, logs := SetupAppTest(t, cfg)

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), "Printing the best (and only the best!) designs")
	assert.Contains(t, out.String(), "- Payload: 1500 kg.")
	assert.Contains(t, out.String(), "Total Mass:")
	assert.NotContains(t, out.String(), "=== Mission")
	assert.Contains(t, logs.String(), "Search finished.")
}

func TestRun_Quiet(t *testing.T) {
	cfg := &Config{
		Payload: 1500,
		Phases:  []config.Phase{{DeltaV: 1000}},
		Quiet:   true,
	}
	a, out, _ := SetupAppTest(t, cfg)

	require.NoError(t, a.Run(context.Background()))
	assert.NotContains(t, out.String(), "Printing")
	assert.Contains(t, out.String(), "Total Mass:")
}

func TestRun_JSON(t *testing.T) {
	cfg := &Config{
		Payload: 1500,
		Phases:  []config.Phase{{DeltaV: 1000, MinAcceleration: 5}},
		JSON:    true,
	}
	a, out, _ := SetupAppTest(t, cfg)

	require.NoError(t, a.Run(context.Background()))
	var res struct {
		Designs  []map[string]any `json:"designs"`
		Warnings []string         `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal([]byte(out.String()), &res), out.String())
	assert.NotEmpty(t, res.Designs)
}

func TestRun_MissionFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "missions.hcl", `
mission "hop" {
  payload = 800
  phase {
    delta_v          = 600
    min_acceleration = 2 * gravity.mun
  }
}

mission "return" {
  payload = 1500
  route {
    from = "mun.orbit"
    to   = "kerbin.orbit"
  }
  preferences {
    gimbal = 1
  }
}
`)
	cfg := &Config{
		MissionPaths: []string{path},
		Preferences:  config.Preferences{Cheapest: true},
	}
	a, out, _ := SetupAppTest(t, cfg)

	require.Len(t, a.Missions(), 2)
	assert.True(t, a.Missions()[0].Preferences.Cheapest)
	assert.Equal(t, 1, a.Missions()[1].Preferences.Gimbal)

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), "=== Mission hop ===")
	assert.Contains(t, out.String(), "=== Mission return ===")
}

func TestRun_InvalidMission(t *testing.T) {
	cfg := &Config{Phases: []config.Phase{{DeltaV: -5}}}
	a, _, _ := SetupAppTest(t, cfg)

	err := a.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, finder.ErrInvalidMission)
	assert.Contains(t, err.Error(), `mission "command line"`)
}

func TestNewApp_Errors(t *testing.T) {
	dir := t.TempDir()
	missionOnly := writeFile(t, dir, "mission.hcl", `
mission "hop" {
  payload = 800
  phase {
    delta_v = 600
  }
}
`)
	partsOnly := writeFile(t, dir, "parts.hcl", `atomic_tank_factor = 0.5`)

	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "missing mission file",
			cfg:     Config{MissionPaths: []string{filepath.Join(dir, "nope.hcl")}},
			wantErr: "failed to load missions",
		},
		{
			name:    "no missions declared",
			cfg:     Config{MissionPaths: []string{partsOnly}},
			wantErr: "no missions declared",
		},
		{
			name:    "no parts declared",
			cfg:     Config{CatalogPaths: []string{missionOnly}, Phases: []config.Phase{{DeltaV: 100}}},
			wantErr: "no parts declared",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.cfg
			_, err := NewApp(&SafeBuffer{}, &SafeBuffer{}, &cfg, hcl_adapter.NewLoader())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestRun_Serve(t *testing.T) {
	cfg := &Config{ServeAddr: "127.0.0.1:0"}
	a, _, logs := SetupAppTest(t, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	require.NoError(t, a.Run(ctx))
	assert.Contains(t, logs.String(), "Shutting down query server")
}

func TestRun_ServeListenError(t *testing.T) {
	cfg := &Config{ServeAddr: "not-an-address"}
	a, _, _ := SetupAppTest(t, cfg)

	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}

func TestNewLogger(t *testing.T) {
	var buf SafeBuffer
	logger := newLogger("info", "json", &buf)
	logger.Debug("hidden")
	logger.Info("shown", "phase", 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(buf.String()), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.EqualValues(t, 1, rec["phase"])

	var text SafeBuffer
	logger = newLogger("bogus", "text", &text)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, text.String(), "hidden")
	assert.Contains(t, text.String(), "level=WARN")
}
