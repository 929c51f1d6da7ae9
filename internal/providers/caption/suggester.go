// Package caption suggests short marketing captions for overlaying on
// generated images.
package caption

import "context"

const maxSuggestions = 5

// Request describes what the captions should sell. Image, when set, is
// the encoded picture the captions will be drawn onto.
type Request struct {
	Description string
	Image       []byte
	ImageMIME   string
	Locale      string
}

// Suggestion is one caption with its resolved base direction, so
// clients can lay out Hebrew and English text correctly.
type Suggestion struct {
	Text      string `json:"text"`
	Direction string `json:"direction"`
}

// Response carries ordered caption suggestions.
type Response struct {
	Suggestions []Suggestion `json:"suggestions"`
	Provider    string       `json:"provider"`
}

// Suggester is the contract implemented by all caption backends.
type Suggester interface {
	Suggest(ctx context.Context, req Request) (*Response, error)
}
