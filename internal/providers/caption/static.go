package caption

import (
	"context"
	"strings"
)

var staticCaptions = map[string][]string{
	"he": {"מבצע מיוחד!", "הזדמנות אחרונה", "קנה עכשיו", "חדש!", "מחיר מיוחד"},
	"en": {"Special offer!", "Last chance", "Buy now", "New!", "Special price"},
}

// Static serves a fixed caption list per locale so the endpoint keeps
// working without a remote provider.
type Static struct{}

func NewStatic() *Static {
	return &Static{}
}

func (s *Static) Suggest(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	texts, ok := staticCaptions[strings.ToLower(strings.TrimSpace(req.Locale))]
	if !ok {
		texts = staticCaptions["he"]
	}
	return &Response{Suggestions: buildSuggestions(texts), Provider: "static"}, nil
}

var _ Suggester = (*Static)(nil)
