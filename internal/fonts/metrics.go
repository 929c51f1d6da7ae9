package fonts

import (
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Box is the measured extent of a rendered string. Rect is the tight glyph
// rectangle relative to the drawing origin (negative Min.Y above the
// baseline); Advance is the total advance width. A Box is a pure function
// of (text, face) and carries no state.
type Box struct {
	Rect    fixed.Rectangle26_6
	Advance fixed.Int26_6
}

// Measure computes the bounding box of text in the handle's face. Strings
// are measured in logical order; any bidi handling belongs to the draw
// primitive, so mixed Hebrew/Latin runs must not be reordered here.
func Measure(text string, h *Handle) Box {
	if h == nil || h.Face == nil || text == "" {
		return Box{}
	}
	rect, advance := font.BoundString(h.Face, text)
	return Box{Rect: rect, Advance: advance}
}

// Empty reports whether the box contains no ink.
func (b Box) Empty() bool {
	return b.Rect.Empty()
}

// Width is the integer pixel width of the glyph box, rounded up.
func (b Box) Width() int {
	if b.Empty() {
		return 0
	}
	return (b.Rect.Max.X - b.Rect.Min.X).Ceil()
}

// Height is the integer pixel height of the glyph box, rounded up.
func (b Box) Height() int {
	if b.Empty() {
		return 0
	}
	return (b.Rect.Max.Y - b.Rect.Min.Y).Ceil()
}

// Ascent is the pixel extent above the baseline.
func (b Box) Ascent() int {
	if b.Empty() {
		return 0
	}
	return (-b.Rect.Min.Y).Ceil()
}

// Descent is the pixel extent below the baseline.
func (b Box) Descent() int {
	if b.Empty() {
		return 0
	}
	return b.Rect.Max.Y.Ceil()
}

// Inflate grows the box by px on every side. This is the outer ink
// footprint when a stroke of width px is drawn around the glyphs: stroke
// passes offset the glyph run by at most px per axis, so the stroked
// extent is the glyph box inflated by exactly px per side.
func (b Box) Inflate(px int) Box {
	if px <= 0 || b.Empty() {
		return b
	}
	d := fixed.I(px)
	out := b
	out.Rect.Min.X -= d
	out.Rect.Min.Y -= d
	out.Rect.Max.X += d
	out.Rect.Max.Y += d
	return out
}
