package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_ZeroPoints(t *testing.T) {
	b := Compute(nil)
	assert.False(t, b.Valid(), "zero points must yield an invalid Bounds")

	b = Compute([]LatLng{})
	assert.False(t, b.Valid())
}

func TestCompute_SinglePoint(t *testing.T) {
	p := LatLng{Lat: 40.0, Lng: -75.0}
	b := Compute([]LatLng{p})

	require.True(t, b.Valid())
	assert.True(t, b.IsPoint(), "single point must yield a zero-area rectangle")
	assert.True(t, b.Contains(p))
	assert.Equal(t, p, b.Center())
}

func TestCompute_MinMaxCorners(t *testing.T) {
	points := []LatLng{
		{Lat: 40.0, Lng: -75.0},
		{Lat: 41.0, Lng: -74.0},
		{Lat: 40.5, Lng: -74.5},
	}
	b := Compute(points)

	require.True(t, b.Valid())
	assert.Equal(t, 40.0, b.MinLat)
	assert.Equal(t, -75.0, b.MinLng)
	assert.Equal(t, 41.0, b.MaxLat)
	assert.Equal(t, -74.0, b.MaxLng)
	assert.False(t, b.IsPoint())

	for _, p := range points {
		assert.True(t, b.Contains(p), "computed bounds must contain %v", p)
	}
}

func TestBounds_ExtendZeroValue(t *testing.T) {
	var b Bounds
	p := LatLng{Lat: 10, Lng: 20}

	b = b.Extend(p)
	require.True(t, b.Valid())
	assert.True(t, b.IsPoint())
	assert.Equal(t, p, b.Center())
}

func TestBounds_ExtendBounds(t *testing.T) {
	a := Compute([]LatLng{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}})
	c := Compute([]LatLng{{Lat: 5, Lng: -3}})

	merged := a.ExtendBounds(c)
	assert.Equal(t, 0.0, merged.MinLat)
	assert.Equal(t, -3.0, merged.MinLng)
	assert.Equal(t, 5.0, merged.MaxLat)
	assert.Equal(t, 1.0, merged.MaxLng)

	// Extending by an invalid Bounds is a no-op.
	assert.Equal(t, a, a.ExtendBounds(Bounds{}))
}

func TestBounds_ContainsInvalid(t *testing.T) {
	var b Bounds
	assert.False(t, b.Contains(LatLng{}), "invalid bounds contain nothing")
}

func TestBounds_Center(t *testing.T) {
	b := Compute([]LatLng{{Lat: 40.0, Lng: -75.0}, {Lat: 41.0, Lng: -74.0}})
	assert.Equal(t, LatLng{Lat: 40.5, Lng: -74.5}, b.Center())
}

func TestDefaultFitOptions(t *testing.T) {
	opts := DefaultFitOptions()
	assert.Equal(t, 50, opts.PaddingPx)
	assert.Equal(t, 8, opts.MaxZoom)
	assert.False(t, opts.Animate, "sync-engine fits are never animated")
}
