package crispr

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	red   = colorful.Color{R: 1, G: 0, B: 0}
	green = colorful.Color{R: 0, G: 1, B: 0}
	blue  = colorful.Color{R: 0, G: 0, B: 1}
)

// palettes are the gradients coverage can be drawn with, low to high.
var palettes = map[string][]colorful.Color{
	"red-blue":       {red, blue},
	"blue-red":       {blue, red},
	"red-blue-green": {red, blue, green},
	"green-blue-red": {green, blue, red},
}

// Rainbow maps a coverage to a color on a gradient split into bins.
type Rainbow struct {
	stops []colorful.Color
	bins  int

	min float64
	max float64
}

// NewRainbow returns a Rainbow over the named palette.
func NewRainbow(palette string, bins int) (*Rainbow, error) {
	stops, ok := palettes[palette]
	if !ok {
		return nil, newError(InputError, "", "not a known color type: %q", palette)
	}
	if bins < 1 {
		return nil, newError(InputError, "", "the number of bins of colour must be greater than 0")
	}

	return &Rainbow{stops: stops, bins: bins}, nil
}

// SetLimits sets the coverage at either end of the gradient.
func (r *Rainbow) SetLimits(min, max float64) {
	r.min, r.max = min, max
}

// Colour returns the "#rrggbb" color of a coverage.
func (r *Rainbow) Colour(cov float64) string {
	return r.at(r.position(cov)).Hex()
}

// position is where cov falls on the gradient, snapped to the bottom of its bin.
func (r *Rainbow) position(cov float64) float64 {
	if r.max <= r.min || r.bins == 1 {
		return 0
	}

	frac := (cov - r.min) / (r.max - r.min)
	bin := int(math.Floor(frac * float64(r.bins)))
	if bin < 0 {
		bin = 0
	}
	if bin >= r.bins {
		bin = r.bins - 1
	}
	return float64(bin) / float64(r.bins-1)
}

// at blends between the two stops either side of t.
func (r *Rainbow) at(t float64) colorful.Color {
	segments := len(r.stops) - 1
	scaled := t * float64(segments)
	i := int(math.Floor(scaled))
	if i >= segments {
		return r.stops[segments]
	}
	return r.stops[i].BlendRgb(r.stops[i+1], scaled-float64(i))
}
