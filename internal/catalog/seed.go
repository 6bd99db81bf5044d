package catalog

import (
	"context"
	"fmt"

	"github.com/stone-age-io/iot-ui-sub006/internal/model"
)

func f(v float64) *float64 { return &v }

// SeedDemo loads a small demo inventory: two edges, a spread of typed
// locations, one unplaced location, and a dense group that clusters at
// the default zoom.
func (c *Catalog) SeedDemo(ctx context.Context) error {
	edges := []model.Edge{
		{ID: "edge-north", Name: "Factory North"},
		{ID: "edge-south", Name: "Factory South"},
	}
	locs := []model.Location{
		{ID: "loc-entrance", Name: "Main Entrance", Code: "ENT-1", Type: "entrance",
			EdgeID: "edge-north", Coordinates: &model.Coordinates{Lat: f(40.0), Lng: f(-75.0)}},
		{ID: "loc-server-b", Name: "Server Room B", Code: "SRV-B", Type: "server-room",
			EdgeID: "edge-north", Coordinates: &model.Coordinates{Lat: f(41.0), Lng: f(-74.0)}},
		{ID: "loc-storage", Name: "Cold Storage", Code: "STO-1", Type: "storage",
			EdgeID: "edge-south", Coordinates: &model.Coordinates{Lat: f(33.749), Lng: f(-84.388)}},
		{ID: "loc-unplaced", Name: "Staging Area", Code: "STG-1", Type: "room",
			EdgeID: "edge-south"},
	}
	// Dense group near the south edge.
	for i := 0; i < 6; i++ {
		locs = append(locs, model.Location{
			ID:     fmt.Sprintf("loc-rack-%d", i+1),
			Name:   fmt.Sprintf("Utility Rack %d", i+1),
			Code:   fmt.Sprintf("UTL-%d", i+1),
			Type:   "utility",
			EdgeID: "edge-south",
			Coordinates: &model.Coordinates{
				Lat: f(33.7490 + float64(i)*0.0002),
				Lng: f(-84.3880),
			},
		})
	}

	for _, e := range edges {
		if _, err := c.PutEdge(ctx, e); err != nil {
			return err
		}
	}
	for _, l := range locs {
		if _, err := c.PutLocation(ctx, l); err != nil {
			return err
		}
	}
	return nil
}
