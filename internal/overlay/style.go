package overlay

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"shivuk/internal/domain"
	"shivuk/internal/fonts"
)

// TextStyle describes one run of overlay text.
type TextStyle struct {
	Text        string
	Font        fonts.Spec
	Fill        color.NRGBA
	Stroke      *color.NRGBA
	StrokeWidth int
}

// Validate rejects styles the renderer cannot draw.
func (s TextStyle) Validate() error {
	if s.Font.SizePx <= 0 {
		return fmt.Errorf("%w: font size must be positive, got %d", domain.ErrInvalidStyle, s.Font.SizePx)
	}
	if s.StrokeWidth < 0 {
		return fmt.Errorf("%w: stroke width must not be negative, got %d", domain.ErrInvalidStyle, s.StrokeWidth)
	}
	return nil
}

// HasStroke reports whether an outline pass is drawn.
func (s TextStyle) HasStroke() bool {
	return s.Stroke != nil && s.StrokeWidth > 0
}

// ParseHexColor parses #RRGGBB and #RRGGBBAA color strings. The leading
// hash is optional.
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("%w: color %q must be #RRGGBB or #RRGGBBAA", domain.ErrInvalidStyle, s)
	}
	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: color %q is not valid hex", domain.ErrInvalidStyle, s)
	}
	c := color.NRGBA{A: 0xFF}
	if len(hex) == 8 {
		c.A = uint8(v)
		v >>= 8
	}
	c.R = uint8(v >> 16)
	c.G = uint8(v >> 8)
	c.B = uint8(v)
	return c, nil
}
