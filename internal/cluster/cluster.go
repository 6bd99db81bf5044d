package cluster

import (
	"math"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/stone-age-io/iot-ui-sub006/internal/geo"
)

// Size bucket thresholds by member count.
const (
	SizeSmall  = "small"  // count < 10
	SizeMedium = "medium" // 10 <= count < 50
	SizeLarge  = "large"  // count >= 50

	mediumThreshold = 10
	largeThreshold  = 50
)

// DefaultRadiusPx is the clustering radius when none is configured.
const DefaultRadiusPx = 50.0

// DefaultMaxZoom is the zoom at and above which markers render 1:1.
const DefaultMaxZoom = 18

// tileExtent is the pixel extent of one world tile in the Web-Mercator
// projection used for radius comparisons.
const tileExtent = 256.0

// Config controls aggregation.
type Config struct {
	// RadiusPx is the grouping radius in screen pixels.
	RadiusPx float64

	// MaxZoom disables clustering at and above this zoom level.
	MaxZoom int
}

// DefaultConfig returns the standard radius and zoom threshold.
func DefaultConfig() Config {
	return Config{RadiusPx: DefaultRadiusPx, MaxZoom: DefaultMaxZoom}
}

// Point is one marker candidate entering aggregation.
type Point struct {
	ID   string
	Name string
	At   geo.LatLng
}

// Group is one render-epoch cluster. A singleton group (Count == 1) renders
// as a plain marker; larger groups render as a cluster icon showing Count.
type Group struct {
	Count     int
	SizeClass string
	Center    geo.LatLng
	Bounds    geo.Bounds
	Members   []Point
}

// Singleton reports whether the group renders as a plain 1:1 marker.
func (g Group) Singleton() bool {
	return g.Count == 1
}

// MemberNames returns the member display names in collation order.
// Used for cluster detail text; locale-aware so mixed-script site names
// sort the way an operator expects.
func (g Group) MemberNames() []string {
	names := make([]string, 0, len(g.Members))
	for _, m := range g.Members {
		names = append(names, m.Name)
	}
	collate.New(language.Und).SortStrings(names)
	return names
}

// SizeClass buckets a member count into small/medium/large.
func SizeClass(count int) string {
	switch {
	case count >= largeThreshold:
		return SizeLarge
	case count >= mediumThreshold:
		return SizeMedium
	default:
		return SizeSmall
	}
}

// Aggregator groups points by pixel radius at a zoom level.
type Aggregator struct {
	cfg Config
}

// New creates an aggregator, filling zero config fields with defaults.
func New(cfg Config) *Aggregator {
	if cfg.RadiusPx <= 0 {
		cfg.RadiusPx = DefaultRadiusPx
	}
	if cfg.MaxZoom <= 0 {
		cfg.MaxZoom = DefaultMaxZoom
	}
	return &Aggregator{cfg: cfg}
}

// Group partitions points into clusters at the given zoom.
//
// Grouping is greedy in input order: each unclaimed point claims every
// other unclaimed point within the pixel radius. Identical input therefore
// yields identical groups, which the reconciliation idempotence guarantee
// depends on.
func (a *Aggregator) Group(points []Point, zoom int) []Group {
	if len(points) == 0 {
		return nil
	}

	// 1:1 markers at max zoom - no aggregation.
	if zoom >= a.cfg.MaxZoom {
		groups := make([]Group, 0, len(points))
		for _, p := range points {
			groups = append(groups, singleton(p))
		}
		return groups
	}

	px := make([][2]float64, len(points))
	for i, p := range points {
		px[i] = project(p.At, zoom)
	}

	radius2 := a.cfg.RadiusPx * a.cfg.RadiusPx
	claimed := make([]bool, len(points))
	var groups []Group

	for i, p := range points {
		if claimed[i] {
			continue
		}
		claimed[i] = true
		members := []Point{p}

		for j := i + 1; j < len(points); j++ {
			if claimed[j] {
				continue
			}
			dx := px[j][0] - px[i][0]
			dy := px[j][1] - px[i][1]
			if dx*dx+dy*dy <= radius2 {
				claimed[j] = true
				members = append(members, points[j])
			}
		}

		if len(members) == 1 {
			groups = append(groups, singleton(p))
			continue
		}
		groups = append(groups, aggregate(members))
	}

	return groups
}

func singleton(p Point) Group {
	return Group{
		Count:     1,
		SizeClass: SizeSmall,
		Center:    p.At,
		Bounds:    geo.Compute([]geo.LatLng{p.At}),
		Members:   []Point{p},
	}
}

// aggregate builds a cluster with the member centroid and enclosing bounds.
func aggregate(members []Point) Group {
	var sumLat, sumLng float64
	var b geo.Bounds
	for _, m := range members {
		sumLat += m.At.Lat
		sumLng += m.At.Lng
		b = b.Extend(m.At)
	}
	n := float64(len(members))
	return Group{
		Count:     len(members),
		SizeClass: SizeClass(len(members)),
		Center:    geo.LatLng{Lat: sumLat / n, Lng: sumLng / n},
		Bounds:    b,
		Members:   members,
	}
}

// project converts lng/lat to Web-Mercator pixel coordinates at a zoom.
func project(p geo.LatLng, zoom int) [2]float64 {
	sin := math.Sin(p.Lat * math.Pi / 180)
	x := (p.Lng + 180) / 360
	y := 0.5 - 0.25*math.Log((1+sin)/(1-sin))/math.Pi

	scale := math.Pow(2, float64(zoom)) * tileExtent
	return [2]float64{x * scale, y * scale}
}
