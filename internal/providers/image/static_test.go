package image

import (
	"bytes"
	"context"
	stdimage "image"
	"testing"

	"github.com/rs/zerolog"
)

func TestStaticDeterministic(t *testing.T) {
	s := NewStatic(zerolog.Nop())
	req := Request{Prompt: "candles", AspectRatio: "1:1", Locale: "he"}

	first, err := s.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	second, err := s.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if !bytes.Equal(first.Data, second.Data) {
		t.Fatal("same request produced different placeholders")
	}
	if first.Provider != "static" {
		t.Fatalf("Provider = %q, want %q", first.Provider, "static")
	}

	other, err := s.Generate(context.Background(), Request{Prompt: "sneakers", AspectRatio: "1:1", Locale: "he"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if bytes.Equal(first.Data, other.Data) {
		t.Fatal("different prompts produced identical placeholders")
	}
}

func TestStaticDimensions(t *testing.T) {
	s := NewStatic(zerolog.Nop())
	tests := []struct {
		aspect string
		w, h   int
	}{
		{"16:9", 1920, 1080},
		{"9:16", 1080, 1920},
		{"", 1024, 1024},
	}
	for _, tt := range tests {
		res, err := s.Generate(context.Background(), Request{Prompt: "x", AspectRatio: tt.aspect})
		if err != nil {
			t.Fatalf("Generate(%q) returned error: %v", tt.aspect, err)
		}
		if res.Width != tt.w || res.Height != tt.h {
			t.Fatalf("Generate(%q) = %dx%d, want %dx%d", tt.aspect, res.Width, res.Height, tt.w, tt.h)
		}
		cfg, _, err := stdimage.DecodeConfig(bytes.NewReader(res.Data))
		if err != nil {
			t.Fatalf("decode placeholder: %v", err)
		}
		if cfg.Width != tt.w || cfg.Height != tt.h {
			t.Fatalf("encoded placeholder = %dx%d, want %dx%d", cfg.Width, cfg.Height, tt.w, tt.h)
		}
	}
}

func TestStaticCanceledContext(t *testing.T) {
	s := NewStatic(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Generate(ctx, Request{Prompt: "x"}); err == nil {
		t.Fatal("expected an error for a canceled context")
	}
}
