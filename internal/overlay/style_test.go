package overlay

import (
	"errors"
	"image/color"
	"testing"

	"shivuk/internal/domain"
	"shivuk/internal/fonts"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#FFFFFF", color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}},
		{"#000000", color.NRGBA{A: 0xFF}},
		{"ff8800", color.NRGBA{R: 0xFF, G: 0x88, A: 0xFF}},
		{" #FF8800 ", color.NRGBA{R: 0xFF, G: 0x88, A: 0xFF}},
		{"#11223344", color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if err != nil {
				t.Fatalf("ParseHexColor(%q) returned error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("ParseHexColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseHexColorRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "#FFF", "#GGHHII", "red", "#FFFFFFF"} {
		if _, err := ParseHexColor(in); !errors.Is(err, domain.ErrInvalidStyle) {
			t.Fatalf("ParseHexColor(%q) error = %v, want ErrInvalidStyle", in, err)
		}
	}
}

func TestTextStyleValidate(t *testing.T) {
	white := color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

	valid := TextStyle{Text: "hi", Font: fonts.Spec{Family: "Go", SizePx: 12}, Fill: white}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	tests := []struct {
		name  string
		style TextStyle
	}{
		{"zero size", TextStyle{Font: fonts.Spec{SizePx: 0}}},
		{"negative size", TextStyle{Font: fonts.Spec{SizePx: -48}}},
		{"negative stroke", TextStyle{Font: fonts.Spec{SizePx: 12}, StrokeWidth: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.style.Validate(); !errors.Is(err, domain.ErrInvalidStyle) {
				t.Fatalf("Validate() = %v, want ErrInvalidStyle", err)
			}
		})
	}
}

func TestTextStyleHasStroke(t *testing.T) {
	black := color.NRGBA{A: 0xFF}
	tests := []struct {
		name  string
		style TextStyle
		want  bool
	}{
		{"stroke set", TextStyle{Stroke: &black, StrokeWidth: 2}, true},
		{"nil color", TextStyle{StrokeWidth: 2}, false},
		{"zero width", TextStyle{Stroke: &black}, false},
	}
	for _, tt := range tests {
		if got := tt.style.HasStroke(); got != tt.want {
			t.Fatalf("%s: HasStroke() = %t, want %t", tt.name, got, tt.want)
		}
	}
}
