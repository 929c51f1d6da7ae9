package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidStyle    = errors.New("invalid style")
	ErrInvalidPrompt   = errors.New("invalid prompt")
	ErrFontUnavailable = errors.New("font unavailable")
	ErrRenderFailure   = errors.New("render failure")
	ErrProviderFailure = errors.New("provider failure")
)
