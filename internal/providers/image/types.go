// Package image provides marketing image generation backends.
package image

import "context"

// Request is the normalized request passed to any generator.
type Request struct {
	Prompt        string
	AspectRatio   string
	Locale        string
	RequestID     string
	Reference     []byte
	ReferenceMIME string
}

// Result is one generated image.
type Result struct {
	Data     []byte
	MIME     string
	Width    int
	Height   int
	Provider string
}

// Generator is the contract implemented by all image backends.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}
