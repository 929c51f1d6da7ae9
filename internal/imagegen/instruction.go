// Package imagegen turns user intent into model-facing generation
// instructions.
package imagegen

import (
	"fmt"
	"strconv"
	"strings"
)

// Request carries the user intent for one marketing image.
type Request struct {
	Prompt       string
	AspectRatio  string
	Locale       string
	HasReference bool
}

// BuildInstruction renders the request as a generation instruction. The
// wording steers the model toward ad-ready photography and keeps the
// canvas free of baked-in text, which the overlay step adds later.
func BuildInstruction(req Request) string {
	parts := []string{}
	prompt := strings.TrimSuffix(strings.TrimSpace(req.Prompt), ".")
	switch {
	case req.HasReference && prompt != "":
		parts = append(parts, fmt.Sprintf("Edit the attached product photo: %s.", prompt))
	case req.HasReference:
		parts = append(parts, "Enhance the attached product photo for marketing use.")
	case prompt != "":
		parts = append(parts, fmt.Sprintf("Create a professional marketing image: %s.", prompt))
	default:
		parts = append(parts, "Create a professional marketing image.")
	}
	parts = append(parts, "High quality, photorealistic, clean composition, suitable for advertising.")
	parts = append(parts, "Leave clear space for overlay text. Do not render any text, captions, or watermarks.")
	if aspect := strings.TrimSpace(req.AspectRatio); aspect != "" {
		parts = append(parts, fmt.Sprintf("Compose for a %s aspect ratio.", aspect))
	}
	if lang := languageName(req.Locale); lang != "" {
		parts = append(parts, fmt.Sprintf("The target audience is %s-speaking.", lang))
	}
	return strings.Join(parts, " ")
}

func languageName(locale string) string {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case "he":
		return "Hebrew"
	case "en":
		return "English"
	}
	return ""
}

// NormalizeAspect maps an aspect ratio string to pixel dimensions.
// Unknown ratios of the form "a:b" keep a 1024 width; anything else
// falls back to a square canvas.
func NormalizeAspect(aspect string) (int, int) {
	switch strings.TrimSpace(aspect) {
	case "", "1:1":
		return 1024, 1024
	case "16:9":
		return 1920, 1080
	case "9:16":
		return 1080, 1920
	case "4:5":
		return 1024, 1280
	case "3:2":
		return 1536, 1024
	}
	if w, h, ok := parseAspect(aspect); ok {
		return w, h
	}
	return 1024, 1024
}

func parseAspect(aspect string) (int, int, bool) {
	parts := strings.SplitN(strings.TrimSpace(aspect), ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	a, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || a <= 0 {
		return 0, 0, false
	}
	b, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || b <= 0 {
		return 0, 0, false
	}
	const baseWidth = 1024
	return baseWidth, baseWidth * b / a, true
}
