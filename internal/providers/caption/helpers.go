package caption

import (
	"encoding/json"
	"errors"
	"strings"

	"golang.org/x/text/unicode/bidi"
)

func parseModelPayload[T any](raw string) (T, error) {
	var zero T
	cleaned := extractJSONFragment(raw)
	if cleaned == "" {
		return zero, errors.New("empty payload")
	}
	var decoded T
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		return zero, err
	}
	return decoded, nil
}

func extractJSONFragment(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	text = trimCodeFence(text)
	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "]}")
	if start >= 0 && end >= start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

func trimCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```JSON")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}

// stripListMarker removes leading bullets, numbering, and wrapping
// quotes the model sometimes adds despite the JSON instruction.
func stripListMarker(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimLeft(s, "-*•·"))
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > 0 && i < len(s) && (s[i] == '.' || s[i] == ')') {
		s = strings.TrimSpace(s[i+1:])
	}
	return strings.Trim(s, `"'“”`)
}

// detectDirection resolves the base direction of s from its first
// strong directional rune.
func detectDirection(s string) string {
	for i := 0; i < len(s); {
		props, sz := bidi.LookupString(s[i:])
		if sz == 0 {
			break
		}
		switch props.Class() {
		case bidi.L:
			return "ltr"
		case bidi.R, bidi.AL:
			return "rtl"
		}
		i += sz
	}
	return "ltr"
}

func buildSuggestions(texts []string) []Suggestion {
	seen := make(map[string]struct{})
	var out []Suggestion
	for _, t := range texts {
		t = stripListMarker(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, Suggestion{Text: t, Direction: detectDirection(t)})
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
