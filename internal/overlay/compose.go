// Package overlay composites styled text onto raster images.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"shivuk/internal/domain"
	"shivuk/internal/fonts"
)

// Renderer draws text overlays. The anchor passed to Render is the
// top-left corner of the glyph bounding box in image pixel space, with
// (0, 0) at the image's top-left corner.
type Renderer struct {
	fonts      *fonts.Resolver
	log        zerolog.Logger
	background color.NRGBA
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithDefaultBackground sets the opaque background the renderer
// flattens onto when a call does not override it. White by default.
func WithDefaultBackground(c color.NRGBA) Option {
	return func(r *Renderer) {
		r.background = c
	}
}

func NewRenderer(resolver *fonts.Resolver, log zerolog.Logger, opts ...Option) *Renderer {
	r := &Renderer{
		fonts:      resolver,
		log:        log,
		background: color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderOption adjusts a single Render call.
type RenderOption func(*renderConfig)

type renderConfig struct {
	background color.NRGBA
}

// WithBackground overrides the flatten background for one call.
func WithBackground(c color.NRGBA) RenderOption {
	return func(cfg *renderConfig) {
		cfg.background = c
	}
}

// Render draws style.Text onto a copy of src and returns the flattened
// result. src is never mutated. The anchor is clamped to the image
// rectangle; text anchored near the right or bottom edge may extend
// past the canvas and is cropped.
func (r *Renderer) Render(src image.Image, style TextStyle, anchor image.Point, opts ...RenderOption) (*image.NRGBA, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil source image", domain.ErrRenderFailure)
	}
	if err := style.Validate(); err != nil {
		return nil, err
	}
	cfg := renderConfig{background: r.background}
	for _, opt := range opts {
		opt(&cfg)
	}

	// Clone yields an NRGBA copy with bounds at (0, 0), so src stays
	// untouched and palette or opaque inputs gain an alpha channel.
	base := imaging.Clone(src)
	if style.Text == "" {
		return flatten(base, cfg.background), nil
	}

	handle, err := r.fonts.ResolveSpec(style.Font)
	if err != nil {
		return nil, err
	}
	if handle.Degraded {
		r.log.Warn().
			Str("family", style.Font.Family).
			Int("size_px", style.Font.SizePx).
			Msg("overlay: using built-in fallback face")
	}

	bounds := base.Bounds()
	at := clampAnchor(anchor, bounds)
	box := fonts.Measure(style.Text, handle)

	// Stroke and fill land on one transparent layer so the run
	// composites onto the image atomically.
	layer := image.NewNRGBA(bounds)
	dot := fixed.Point26_6{
		X: fixed.I(at.X) - box.Rect.Min.X,
		Y: fixed.I(at.Y) - box.Rect.Min.Y,
	}
	d := font.Drawer{Dst: layer, Face: handle.Face, Dot: dot}

	if style.HasStroke() {
		d.Src = image.NewUniform(*style.Stroke)
		sw := style.StrokeWidth
		for dy := -sw; dy <= sw; dy++ {
			for dx := -sw; dx <= sw; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				d.Dot = fixed.Point26_6{X: dot.X + fixed.I(dx), Y: dot.Y + fixed.I(dy)}
				d.DrawString(style.Text)
			}
		}
	}
	d.Src = image.NewUniform(style.Fill)
	d.Dot = dot
	d.DrawString(style.Text)

	draw.Draw(base, bounds, layer, bounds.Min, draw.Over)
	return flatten(base, cfg.background), nil
}

// clampAnchor clamps p to [0, w] x [0, h]. No smarter adjustment is
// made; an anchor at the far edge legitimately pushes text off-canvas.
func clampAnchor(p image.Point, b image.Rectangle) image.Point {
	if p.X < b.Min.X {
		p.X = b.Min.X
	}
	if p.X > b.Max.X {
		p.X = b.Max.X
	}
	if p.Y < b.Min.Y {
		p.Y = b.Min.Y
	}
	if p.Y > b.Max.Y {
		p.Y = b.Max.Y
	}
	return p
}

func flatten(img *image.NRGBA, bg color.NRGBA) *image.NRGBA {
	out := image.NewNRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Over)
	return out
}
