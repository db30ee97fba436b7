package integration_tests

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/stagefinder/internal/cli"
	"github.com/vk/stagefinder/internal/testutil"
)

func TestHelp(t *testing.T) {
	t.Parallel()

	result := testutil.RunIntegrationTest(t, nil, "-h")

	require.NoError(t, result.Err)
	assert.Nil(t, result.App)
	assert.Contains(t, result.Output, "Usage:")
	assert.Contains(t, result.Output, "DV[:ACC[:PRESSURE]]")
}

func TestUsageErrorExitCode(t *testing.T) {
	t.Parallel()

	result := testutil.RunIntegrationTest(t, nil, "1500", "100:1:0:7")

	require.Error(t, result.Err)
	var exitErr *cli.ExitError
	require.ErrorAs(t, result.Err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestTextReport(t *testing.T) {
	t.Parallel()

	// --- Act ---
	// Land on the Mun and return to orbit with a 1.5 t payload.
	result := testutil.RunIntegrationTest(t, nil, "-R", "small", "-g", "1500", "640:3", "580:3")

	// --- Assert ---
	require.NoError(t, result.Err)
	out := result.Output
	assert.Contains(t, out, "- Payload: 1500 kg.")
	assert.Contains(t, out, "- Flight phases: 640 m/s, 3.0 m/s², 0.00 atm; 580 m/s, 3.0 m/s², 0.00 atm.")
	assert.Contains(t, out, "- Preferred size: small.")
	assert.Contains(t, out, "- You prefer engines with thrust vectoring.")
	assert.Contains(t, out, "Total Mass:")
	assert.Contains(t, out, "Performance:")
	assert.NotContains(t, out, "Sorry, nothing found.")
	assert.Contains(t, result.LogOutput, "Search finished.")
}

func TestRouteReport(t *testing.T) {
	t.Parallel()

	result := testutil.RunIntegrationTest(t, nil, "-q", "--from", "kerbin.orbit", "--to", "mun.surface", "2000")

	require.NoError(t, result.Err)
	assert.Contains(t, result.Output, "Total Mass:")
	assert.NotContains(t, result.Output, "Printing the best")
	assert.Contains(t, result.LogOutput, "Route leg.")
}

func TestJSONReport(t *testing.T) {
	t.Parallel()

	result := testutil.RunIntegrationTest(t, nil, "--json", "-c", "--show-all", "900", "1200:4")

	require.NoError(t, result.Err)
	var report struct {
		Designs []struct {
			Engine string  `json:"engine"`
			Cost   float64 `json:"cost"`
			Best   bool    `json:"best"`
		} `json:"designs"`
		Warnings []string `json:"warnings"`
	}
	require.NoError(t, json.NewDecoder(strings.NewReader(result.Output)).Decode(&report))
	require.NotEmpty(t, report.Designs)

	sawOther := false
	for i, d := range report.Designs {
		assert.NotEmpty(t, d.Engine)
		if i > 0 {
			assert.GreaterOrEqual(t, d.Cost, report.Designs[i-1].Cost, "designs must be sorted by cost")
		}
		sawOther = sawOther || !d.Best
	}
	assert.True(t, sawOther, "--show-all lists designs off the frontier too")
}

func TestNothingFound(t *testing.T) {
	t.Parallel()

	result := testutil.RunIntegrationTest(t, nil, "1500", "20000:50")

	require.NoError(t, result.Err)
	assert.Contains(t, result.Output, "Sorry, nothing found.")
	assert.Contains(t, result.Output, "WARNING:")
}
