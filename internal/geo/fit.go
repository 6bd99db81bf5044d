package geo

// Fit parameter defaults. Padding keeps markers off the viewport edge;
// the zoom cap stops a dense local cluster from over-zooming the view.
const (
	DefaultFitPaddingPx = 50
	DefaultFitMaxZoom   = 8
)

// FitOptions controls how a Bounds is applied to the viewport.
type FitOptions struct {
	// PaddingPx is uniform padding applied around the rectangle, in pixels.
	PaddingPx int `json:"padding_px"`

	// MaxZoom caps the zoom level reached by the fit.
	MaxZoom int `json:"max_zoom"`

	// Animate requests an animated transition. Programmatic fits from the
	// sync engine are always non-animated; an animated fit racing marker
	// placement corrupts marker pixel positions.
	Animate bool `json:"animate"`
}

// DefaultFitOptions returns the standard non-animated fit parameters.
func DefaultFitOptions() FitOptions {
	return FitOptions{
		PaddingPx: DefaultFitPaddingPx,
		MaxZoom:   DefaultFitMaxZoom,
		Animate:   false,
	}
}
