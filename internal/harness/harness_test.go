package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarios_Golden(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths, "scenario fixtures present")

	for _, path := range paths {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			s, err := LoadScenario(path)
			require.NoError(t, err)
			require.NoError(t, RunWithGolden(t, s))
		})
	}
}

func TestRun_ReturnsResultShape(t *testing.T) {
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", "reconcile-fit.yaml"))
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)

	assert.Equal(t, "reconcile-fit", result.Scenario)
	assert.Equal(t, "uninitialized", result.FinalState, "scenario ends with teardown")
	assert.Zero(t, result.PendingRetries)
	assert.Equal(t, []string{"loc-1"}, result.Selections)
	assert.Equal(t, "create_map", result.Ops[0].Op)
	assert.Equal(t, "close", result.Ops[len(result.Ops)-1].Op)
}

func TestRun_FailsOnUnrenderedDetail(t *testing.T) {
	lat, lng := 40.0, -75.0
	s := &Scenario{
		Name: "bad-detail",
		Steps: []Step{
			{Do: StepReconcile, Locations: []StepLocation{
				{ID: "loc-1", Name: "A", Lat: &lat, Lng: &lng},
			}},
			{Do: StepOpenDetail, ID: "ghost"},
		},
	}
	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not rendered")
}

func TestRun_FailsOnMissingClusterLayer(t *testing.T) {
	s := &Scenario{
		Name:  "bad-cluster",
		Steps: []Step{{Do: StepClusterClick, Layer: 0}},
	}
	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not rendered")
}

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadScenario_Validation(t *testing.T) {
	cases := map[string]struct {
		body string
		want string
	}{
		"missing name": {
			body: "steps:\n  - do: teardown\n",
			want: "missing name",
		},
		"no steps": {
			body: "name: empty\n",
			want: "no steps",
		},
		"unknown kind": {
			body: "name: x\nsteps:\n  - do: explode\n",
			want: "unknown kind",
		},
		"select without id": {
			body: "name: x\nsteps:\n  - do: select\n",
			want: "requires id",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tc.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestStepLocations_OmitsCoordinatesWhenUnset(t *testing.T) {
	lat := 40.0
	st := Step{Locations: []StepLocation{
		{ID: "a", Name: "Placed", Lat: &lat, Lng: &lat},
		{ID: "b", Name: "Half", Lat: &lat},
		{ID: "c", Name: "Unplaced"},
	}}

	locs := st.locations()
	require.Len(t, locs, 3)
	assert.NotNil(t, locs[0].Coordinates)
	assert.NotNil(t, locs[1].Coordinates)
	assert.Nil(t, locs[1].Coordinates.Lng)
	assert.Nil(t, locs[2].Coordinates, "no coordinate block at all stays nil")
}
