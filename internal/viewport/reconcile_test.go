package viewport

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stone-age-io/iot-ui-sub006/internal/model"
	"github.com/stone-age-io/iot-ui-sub006/internal/surface"
)

func TestReconcile_OneMarkerPerValidLocation(t *testing.T) {
	c, _, _, _ := newTestController(t)
	require.NoError(t, c.Initialize())

	locs := []model.Location{
		{ID: "1", Name: "Has coords", Coordinates: &model.Coordinates{Lat: ptr(40.0), Lng: ptr(-75.0)}},
		{ID: "2", Name: "No coords"},
		{ID: "3", Name: "Lat only", Coordinates: &model.Coordinates{Lat: ptr(40.0)}},
		{ID: "4", Name: "Lng only", Coordinates: &model.Coordinates{Lng: ptr(-75.0)}},
		{ID: "5", Name: "Also valid", Coordinates: &model.Coordinates{Lat: ptr(41.0), Lng: ptr(-74.0)}},
	}
	c.Reconcile(locs, nil)

	assert.Equal(t, 2, c.MarkerCount(), "exactly one marker per location with both components")
	assert.Equal(t, []string{"1", "5"}, c.MarkerEntityIDs())
}

func TestReconcile_Idempotent(t *testing.T) {
	c, surf, _, _ := newTestController(t)
	require.NoError(t, c.Initialize())

	locs := twoLocations()
	edges := []model.Edge{{ID: "e1", Name: "Factory"}}

	c.Reconcile(locs, edges)
	firstCount := c.MarkerCount()
	firstIDs := c.MarkerEntityIDs()
	firstBounds := c.SavedBounds()

	c.Reconcile(locs, edges)

	assert.Equal(t, firstCount, c.MarkerCount())
	assert.Equal(t, firstIDs, c.MarkerEntityIDs())
	assert.Equal(t, firstBounds, c.SavedBounds())
	assert.Equal(t, firstCount, surf.MarkerCount(), "surface carries no leftover markers")
}

func TestReconcile_FullClearAndRebuild(t *testing.T) {
	c, surf, _, _ := newTestController(t)
	require.NoError(t, c.Initialize())

	c.Reconcile(twoLocations(), nil)
	require.Equal(t, 2, surf.MarkerCount())

	// Second pass with one location: the first pass's markers are destroyed,
	// not diffed.
	c.Reconcile(twoLocations()[:1], nil)

	assert.Equal(t, 1, surf.MarkerCount())
	assert.Equal(t, []string{"1"}, c.MarkerEntityIDs())

	var removed int
	for _, op := range surf.Ops() {
		if op.Op == surface.OpRemoveMarker {
			removed++
		}
	}
	assert.Equal(t, 2, removed, "both prior markers removed on rebuild")
}

// Scenario from the surface contract: two typed locations, no edges.
func TestReconcile_TwoLocationScenario(t *testing.T) {
	c, surf, _, _ := newTestController(t)
	require.NoError(t, c.Initialize())

	c.Reconcile(twoLocations(), nil)

	require.Equal(t, 2, c.MarkerCount())

	saved := c.SavedBounds()
	require.True(t, saved.Valid())
	assert.Equal(t, 40.0, saved.MinLat)
	assert.Equal(t, -75.0, saved.MinLng)
	assert.Equal(t, 41.0, saved.MaxLat)
	assert.Equal(t, -74.0, saved.MaxLng)

	var fit *surface.Op
	for i := range surf.Ops() {
		op := surf.Ops()[i]
		if op.Op == surface.OpFitBounds {
			fit = &op
		}
	}
	require.NotNil(t, fit, "reconcile with valid markers fits the view")
	assert.Equal(t, 50, fit.PaddingPx)
	assert.Equal(t, 8, fit.MaxZoom)
	assert.False(t, fit.Animate)
	assert.Equal(t, saved.String(), fit.Bounds)

	// Marker texture: icon by type, title from name.
	markers := surf.Markers()
	icons := map[string]string{}
	for _, spec := range markers {
		icons[spec.EntityID] = spec.IconClass
	}
	assert.Equal(t, model.IconEntrance, icons["1"])
	assert.Equal(t, model.IconServerRoom, icons["2"])
}

func TestReconcile_ZeroValidKeepsSavedBounds(t *testing.T) {
	c, surf, _, _ := newTestController(t)
	require.NoError(t, c.Initialize())

	c.Reconcile(twoLocations(), nil)
	saved := c.SavedBounds()
	require.True(t, saved.Valid())
	fitsBefore := countOps(surf, surface.OpFitBounds)

	// All coordinates gone: markers clear, but the rectangle survives
	// stale-but-valid and no fit is attempted.
	c.Reconcile([]model.Location{{ID: "9", Name: "Unplaced"}}, nil)

	assert.Zero(t, c.MarkerCount())
	assert.Equal(t, saved, c.SavedBounds())
	assert.Equal(t, fitsBefore, countOps(surf, surface.OpFitBounds))
}

func TestReconcile_EmptyListIsAccepted(t *testing.T) {
	c, _, _, _ := newTestController(t)
	require.NoError(t, c.Initialize())

	c.Reconcile(nil, nil)
	assert.Zero(t, c.MarkerCount())

	// A later reconcile is still accepted - no failure is fatal.
	c.Reconcile(twoLocations(), nil)
	assert.Equal(t, 2, c.MarkerCount())
}

func TestReconcile_ClusterLayerForDensePoints(t *testing.T) {
	c, surf, _, _ := newTestController(t)
	require.NoError(t, c.Initialize())

	var locs []model.Location
	for i := 0; i < 12; i++ {
		lat := 40.0 + float64(i)*0.0001
		lng := -75.0
		locs = append(locs, model.Location{
			ID:          fmt.Sprintf("loc-%d", i),
			Name:        fmt.Sprintf("Rack %d", i),
			Coordinates: &model.Coordinates{Lat: &lat, Lng: &lng},
		})
	}
	c.Reconcile(locs, nil)

	assert.Equal(t, 12, c.MarkerCount(), "clustering never replaces 1:1 markers")
	require.Equal(t, 1, surf.LayerCount())

	var clusterOp *surface.Op
	ops := surf.Ops()
	for i := range ops {
		if ops[i].Op == surface.OpAddCluster {
			clusterOp = &ops[i]
		}
	}
	require.NotNil(t, clusterOp)
	assert.Equal(t, 12, clusterOp.Count)
	assert.Equal(t, "medium", clusterOp.Size)
}

func TestReconcile_RebuildClosesOpenOverlays(t *testing.T) {
	c, _, _, selected := newTestController(t)
	require.NoError(t, c.Initialize())

	c.Reconcile(twoLocations(), nil)
	_, ok := c.OpenDetail("1")
	require.True(t, ok)

	// Clear-and-rebuild drops the binding along with the marker.
	c.Reconcile(twoLocations(), nil)

	assert.False(t, c.Select("1"), "binding from before the rebuild must be gone")
	assert.Empty(t, *selected)
}

func countOps(h *surface.Headless, kind string) int {
	n := 0
	for _, op := range h.Ops() {
		if op.Op == kind {
			n++
		}
	}
	return n
}
