package viewport

import (
	"github.com/stone-age-io/iot-ui-sub006/internal/cluster"
	"github.com/stone-age-io/iot-ui-sub006/internal/geo"
	"github.com/stone-age-io/iot-ui-sub006/internal/model"
	"github.com/stone-age-io/iot-ui-sub006/internal/surface"
)

// Reconcile rebuilds the rendered marker set from the supplied location and
// edge lists. Hosts call it whenever their authoritative lists change -
// there is no hidden observation mechanism.
//
// Policy is full clear-and-rebuild: every previously rendered marker and
// cluster layer is destroyed, then markers are recreated for each location
// with both coordinate components present. Locations lacking valid
// coordinates are silently excluded - not an error. Deferred under the
// zoom guard like every viewport mutation; idempotent for identical inputs.
func (c *Controller) Reconcile(locations []model.Location, edges []model.Edge) {
	c.guarded("reconcile", func() {
		c.reconcileLocked(locations, edges)
	})
}

func (c *Controller) reconcileLocked(locations []model.Location, edges []model.Edge) {
	c.clearRenderedLocked()

	c.edgeIndex = model.EdgeIndex(edges)
	c.lastLocations = make(map[string]model.Location, len(locations))

	points := make([]cluster.Point, 0, len(locations))
	coords := make([]geo.LatLng, 0, len(locations))
	skipped := 0

	for _, loc := range locations {
		p, ok := loc.LatLng()
		if !ok {
			skipped++
			continue
		}
		c.lastLocations[loc.ID] = loc
		points = append(points, cluster.Point{ID: loc.ID, Name: loc.Name, At: p})
		coords = append(coords, p)
	}
	c.lastPoints = coords

	// Exactly one marker per valid location. Cluster layers are a display
	// aggregation stacked on top - they never replace the markers.
	for _, p := range points {
		c.addMarkerLocked(p)
	}
	for _, g := range c.agg.Group(points, c.surf.Zoom()) {
		if g.Singleton() {
			continue
		}
		c.addClusterLocked(g)
	}

	bounds := geo.Compute(coords)
	if !bounds.Valid() {
		// Zero valid markers: savedBounds stays stale-but-valid, the
		// viewport is left untouched.
		c.logger.Warn("reconcile yielded no valid coordinates",
			"locations", len(locations),
			"skipped", skipped,
		)
		return
	}

	c.saved = bounds
	c.fitLocked(bounds)

	c.logger.Info("markers reconciled",
		"markers", len(c.markers),
		"clusters", len(c.layers),
		"skipped", skipped,
		"bounds", bounds.String(),
	)
}

// clearRenderedLocked destroys every rendered marker, cluster layer, and
// popup binding. Surface failures are logged and skipped; a half-cleared
// surface is rebuilt by the adds that follow.
func (c *Controller) clearRenderedLocked() {
	for _, entityID := range c.markerOrder {
		if err := c.surf.RemoveMarker(c.markers[entityID]); err != nil {
			c.logger.Error("remove marker", "entity_id", entityID, "error", err)
		}
	}
	for _, id := range c.layerOrder {
		if err := c.surf.RemoveLayer(id); err != nil {
			c.logger.Error("remove cluster layer", "layer_id", string(id), "error", err)
		}
	}
	c.markers = make(map[string]surface.MarkerID)
	c.markerOrder = nil
	c.layers = make(map[surface.LayerID]geo.Bounds)
	c.layerOrder = nil
	c.emitter.Clear()
}

func (c *Controller) addMarkerLocked(p cluster.Point) {
	loc := c.lastLocations[p.ID]
	id, err := c.surf.AddMarker(surface.MarkerSpec{
		EntityID:  loc.ID,
		Title:     loc.Name,
		IconClass: model.IconClass(loc.Type),
		At:        p.At,
	})
	if err != nil {
		c.logger.Error("add marker abandoned", "entity_id", loc.ID, "error", err)
		return
	}
	c.markers[loc.ID] = id
	c.markerOrder = append(c.markerOrder, loc.ID)
}

func (c *Controller) addClusterLocked(g cluster.Group) {
	id, err := c.surf.AddClusterLayer(surface.ClusterSpec{
		Count:     g.Count,
		SizeClass: g.SizeClass,
		At:        g.Center,
		Bounds:    g.Bounds,
	})
	if err != nil {
		c.logger.Error("add cluster layer abandoned", "count", g.Count, "error", err)
		return
	}
	c.layers[id] = g.Bounds
	c.layerOrder = append(c.layerOrder, id)
}
