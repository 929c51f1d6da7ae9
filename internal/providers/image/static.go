package image

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	stdimage "image"
	"image/color"
	"image/png"
	"strconv"

	"github.com/rs/zerolog"

	"shivuk/internal/imagegen"
)

// Static renders deterministic placeholder images locally, keeping the
// pipeline fully operational without a remote provider.
type Static struct {
	log zerolog.Logger
}

func NewStatic(log zerolog.Logger) *Static {
	return &Static{log: log}
}

func (s *Static) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	width, height := imagegen.NormalizeAspect(req.AspectRatio)
	seed := placeholderSeed(req.Prompt, req.AspectRatio, req.Locale)
	data, err := renderPlaceholder(width, height, seed)
	if err != nil {
		return nil, fmt.Errorf("image: render placeholder: %w", err)
	}

	s.log.Debug().
		Str("request_id", req.RequestID).
		Str("seed", seed).
		Int("width", width).
		Int("height", height).
		Msg("image: placeholder generated")

	return &Result{
		Data:     data,
		MIME:     "image/png",
		Width:    width,
		Height:   height,
		Provider: "static",
	}, nil
}

var _ Generator = (*Static)(nil)

func placeholderSeed(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{'|'})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// renderPlaceholder paints a vertical gradient between two seed-derived
// colors with a contrasting band across the lower third.
func renderPlaceholder(width, height int, seed string) ([]byte, error) {
	img := stdimage.NewNRGBA(stdimage.Rect(0, 0, width, height))
	top := colorFromSeed(seed, 0)
	bottom := colorFromSeed(seed, 1)

	span := height - 1
	if span < 1 {
		span = 1
	}
	for y := 0; y < height; y++ {
		c := lerpColor(top, bottom, float64(y)/float64(span))
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}

	band := colorFromSeed(seed, 2)
	bandTop := height * 2 / 3
	bandHeight := height / 24
	if bandHeight < 8 {
		bandHeight = 8
	}
	for y := bandTop; y < bandTop+bandHeight && y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, band)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// colorFromSeed reads six hex digits out of the seed, offset per shift,
// so one seed yields a stable palette.
func colorFromSeed(seed string, shift int) color.NRGBA {
	if len(seed) < 6 {
		seed = seed + "9f7b42c1d0e5"
	}
	doubled := seed + seed
	start := (shift * 6) % len(seed)
	segment := doubled[start : start+6]
	return color.NRGBA{
		R: hexByte(segment[0:2]),
		G: hexByte(segment[2:4]),
		B: hexByte(segment[4:6]),
		A: 0xFF,
	}
}

func hexByte(s string) uint8 {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0
	}
	return uint8(v)
}

func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.NRGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: 0xFF}
}
