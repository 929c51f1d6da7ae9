// Package layout suggests anchor points for overlay text placement.
package layout

import (
	"math"
	"strings"
)

// Orientation classifies a canvas by its aspect.
type Orientation string

const (
	Landscape Orientation = "landscape"
	Portrait  Orientation = "portrait"
	Square    Orientation = "square"
)

// OrientationFor derives the orientation of a w x h canvas.
func OrientationFor(w, h int) Orientation {
	switch {
	case w > h:
		return Landscape
	case w < h:
		return Portrait
	default:
		return Square
	}
}

// ParseOrientation normalizes a user-supplied orientation name.
func ParseOrientation(s string) (Orientation, bool) {
	switch Orientation(strings.ToLower(strings.TrimSpace(s))) {
	case Landscape:
		return Landscape, true
	case Portrait:
		return Portrait, true
	case Square:
		return Square, true
	}
	return "", false
}

// Suggestion is a named anchor point, in image pixel coordinates with
// (0, 0) at the top-left corner.
type Suggestion struct {
	Name string `json:"name"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

type config struct {
	marginFraction float64
	marginPx       int
}

// Option adjusts how suggestions are spaced.
type Option func(*config)

// WithMarginFraction sets the edge margin as a fraction of the shorter
// canvas dimension. The default is 0.05.
func WithMarginFraction(f float64) Option {
	return func(c *config) {
		if f > 0 {
			c.marginFraction = f
		}
	}
}

// WithMarginPx pins the edge margin to a pixel value, overriding the
// fraction.
func WithMarginPx(px int) Option {
	return func(c *config) {
		if px > 0 {
			c.marginPx = px
		}
	}
}

// Suggest returns ordered anchor suggestions for a w x h canvas. The
// hint wins over the derived orientation when set; square canvases
// share the landscape set. Suggestions are purely geometric: they do
// not account for the text eventually placed there.
func Suggest(width, height int, hint Orientation, opts ...Option) []Suggestion {
	if width <= 0 || height <= 0 {
		return nil
	}
	cfg := config{marginFraction: 0.05}
	for _, opt := range opts {
		opt(&cfg)
	}

	orient := hint
	if orient != Landscape && orient != Portrait && orient != Square {
		orient = OrientationFor(width, height)
	}

	m := cfg.margin(width, height)
	cx, cy := width/2, height/2

	if orient == Portrait {
		return []Suggestion{
			{Name: "Top Center", X: cx, Y: m},
			{Name: "Upper Third", X: cx, Y: height / 3},
			{Name: "Center", X: cx, Y: cy},
			{Name: "Lower Third", X: cx, Y: 2 * height / 3},
			{Name: "Bottom Center", X: cx, Y: height - m},
			{Name: "Bottom Left", X: m, Y: height - m},
			{Name: "Bottom Right", X: width - m, Y: height - m},
		}
	}
	return []Suggestion{
		{Name: "Top Left", X: m, Y: m},
		{Name: "Top Center", X: cx, Y: m},
		{Name: "Top Right", X: width - m, Y: m},
		{Name: "Center", X: cx, Y: cy},
		{Name: "Bottom Left", X: m, Y: height - m},
		{Name: "Bottom Center", X: cx, Y: height - m},
		{Name: "Bottom Right", X: width - m, Y: height - m},
	}
}

// margin resolves the configured margin against the shorter dimension,
// clamped to at least one pixel and at most a quarter of that
// dimension so tiny canvases keep distinct anchors.
func (c config) margin(w, h int) int {
	short := w
	if h < short {
		short = h
	}
	m := c.marginPx
	if m <= 0 {
		m = int(math.Round(c.marginFraction * float64(short)))
	}
	if m < 1 {
		m = 1
	}
	if limit := short / 4; limit >= 1 && m > limit {
		m = limit
	}
	return m
}
