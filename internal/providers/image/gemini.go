package image

import (
	"bytes"
	"context"
	"fmt"
	stdimage "image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/rs/zerolog"

	"shivuk/internal/imagegen"
	"shivuk/internal/providers/genai"
)

// Gemini generates images with the configured Gemini image model.
type Gemini struct {
	client *genai.Client
	log    zerolog.Logger
}

func NewGemini(client *genai.Client, log zerolog.Logger) *Gemini {
	return &Gemini{client: client, log: log}
}

func (g *Gemini) Generate(ctx context.Context, req Request) (*Result, error) {
	instruction := imagegen.BuildInstruction(imagegen.Request{
		Prompt:       req.Prompt,
		AspectRatio:  req.AspectRatio,
		Locale:       req.Locale,
		HasReference: len(req.Reference) > 0,
	})

	res, err := g.client.GenerateImage(ctx, genai.ImageRequest{
		Instruction:   instruction,
		Reference:     req.Reference,
		ReferenceMIME: req.ReferenceMIME,
	})
	if err != nil {
		return nil, fmt.Errorf("image: gemini generate: %w", err)
	}

	w, h := decodeDimensions(res.Data)
	if w == 0 || h == 0 {
		w, h = imagegen.NormalizeAspect(req.AspectRatio)
	}

	g.log.Debug().
		Str("request_id", req.RequestID).
		Str("model", g.client.ImageModel()).
		Int("width", w).
		Int("height", h).
		Msg("image: gemini asset generated")

	return &Result{
		Data:     res.Data,
		MIME:     res.MIME,
		Width:    w,
		Height:   h,
		Provider: "gemini",
	}, nil
}

var _ Generator = (*Gemini)(nil)

func decodeDimensions(data []byte) (int, int) {
	cfg, _, err := stdimage.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
