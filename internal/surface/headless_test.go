package surface

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stone-age-io/iot-ui-sub006/internal/geo"
)

func TestHeadless_RecordsLifecycle(t *testing.T) {
	h := NewHeadless(nil)

	require.NoError(t, h.SetView(geo.LatLng{Lat: 40, Lng: -75}, 4))
	id, err := h.AddMarker(MarkerSpec{EntityID: "loc-1", Title: "A", At: geo.LatLng{Lat: 40, Lng: -75}})
	require.NoError(t, err)
	require.NoError(t, h.RemoveMarker(id))
	require.NoError(t, h.Close())

	ops := h.Ops()
	require.Len(t, ops, 5)
	assert.Equal(t, OpCreate, ops[0].Op)
	assert.Equal(t, OpSetView, ops[1].Op)
	assert.Equal(t, OpAddMarker, ops[2].Op)
	assert.Equal(t, OpRemoveMarker, ops[3].Op)
	assert.Equal(t, OpClose, ops[4].Op)
	assert.Zero(t, h.MarkerCount())
}

func TestHeadless_CallsAfterCloseFail(t *testing.T) {
	h := NewHeadless(nil)
	require.NoError(t, h.Close())
	require.NoError(t, h.Close(), "close is idempotent")

	_, err := h.AddMarker(MarkerSpec{EntityID: "x"})
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, h.SetView(geo.LatLng{}, 1), ErrClosed)
	assert.ErrorIs(t, h.FitBounds(geo.Bounds{}, geo.FitOptions{}), ErrClosed)
	assert.ErrorIs(t, h.InvalidateSize(), ErrClosed)
}

func TestHeadless_ZoomHandlersDetachOnClose(t *testing.T) {
	h := NewHeadless(nil)

	started := 0
	h.SetZoomHandlers(func() { started++ }, nil)
	h.EmitZoomStart()
	assert.Equal(t, 1, started)

	require.NoError(t, h.Close())
	h.EmitZoomStart()
	assert.Equal(t, 1, started, "listeners are gone after close")
}

func TestUUIDv7Generator_MintsValidHandles(t *testing.T) {
	g := UUIDv7Generator{}

	a := g.Next("marker")
	b := g.Next("marker")
	assert.NotEqual(t, a, b)

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}
