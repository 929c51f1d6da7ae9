package caption

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"shivuk/internal/providers/genai"
)

// Gemini asks the text model for short selling captions, optionally
// grounded on the image they will be drawn onto.
type Gemini struct {
	client *genai.Client
	log    zerolog.Logger
}

func NewGemini(client *genai.Client, log zerolog.Logger) *Gemini {
	return &Gemini{client: client, log: log}
}

type modelCaptionPayload struct {
	Captions []string `json:"captions"`
}

func (g *Gemini) Suggest(ctx context.Context, req Request) (*Response, error) {
	text, err := g.client.GenerateText(ctx, genai.TextRequest{
		Instruction: buildCaptionInstruction(req),
		Image:       req.Image,
		ImageMIME:   req.ImageMIME,
	})
	if err != nil {
		return nil, fmt.Errorf("caption: gemini suggest: %w", err)
	}

	parsed, err := parseModelPayload[modelCaptionPayload](text)
	if err != nil {
		// Some responses come back as a bare JSON array.
		texts, arrErr := parseModelPayload[[]string](text)
		if arrErr != nil {
			return nil, fmt.Errorf("caption: parse model payload: %w", err)
		}
		parsed.Captions = texts
	}

	suggestions := buildSuggestions(parsed.Captions)
	if len(suggestions) == 0 {
		return nil, fmt.Errorf("caption: model returned no usable captions")
	}

	g.log.Debug().
		Int("count", len(suggestions)).
		Str("model", g.client.TextModel()).
		Msg("caption: suggestions generated")

	return &Response{Suggestions: suggestions, Provider: "gemini"}, nil
}

var _ Suggester = (*Gemini)(nil)

func buildCaptionInstruction(req Request) string {
	lang := "Hebrew"
	if strings.EqualFold(strings.TrimSpace(req.Locale), "en") {
		lang = "English"
	}
	sb := &strings.Builder{}
	sb.WriteString(`You are a marketing copywriter. Respond strictly with JSON matching this schema: {"captions":string[]}. `)
	fmt.Fprintf(sb, "Write up to %d short punchy %s captions for an advertising image", maxSuggestions, lang)
	if desc := strings.TrimSpace(req.Description); desc != "" {
		fmt.Fprintf(sb, " promoting: %s", desc)
	}
	sb.WriteString(". Each caption must be at most four words, with no emojis and no numbering.")
	if len(req.Image) > 0 {
		sb.WriteString(" Match the mood of the attached image.")
	}
	return sb.String()
}
