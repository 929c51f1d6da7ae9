package caption

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"shivuk/internal/providers/genai"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// textClient fakes the model answering every request with modelText.
func textClient(t *testing.T, modelText string) *genai.Client {
	t.Helper()
	quoted, err := json.Marshal(modelText)
	if err != nil {
		t.Fatalf("marshal model text: %v", err)
	}
	return genai.New(genai.Options{
		APIKey: "test-key",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			body := `{"candidates":[{"content":{"parts":[{"text":` + string(quoted) + `}]}}]}`
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader(body)),
			}, nil
		})},
		Logger: zerolog.Nop(),
	})
}

func TestGeminiSuggest(t *testing.T) {
	modelText := "```json\n" +
		`{"captions":["- מבצע מיוחד!","מבצע מיוחד!","1. Buy now","New!","Last chance","Special price","Extra one"]}` +
		"\n```"
	g := NewGemini(textClient(t, modelText), zerolog.Nop())

	res, err := g.Suggest(context.Background(), Request{Description: "hand made candles", Locale: "he"})
	if err != nil {
		t.Fatalf("Suggest returned error: %v", err)
	}
	if res.Provider != "gemini" {
		t.Fatalf("Provider = %q, want %q", res.Provider, "gemini")
	}
	if len(res.Suggestions) != 5 {
		t.Fatalf("len(suggestions) = %d, want 5", len(res.Suggestions))
	}
	if res.Suggestions[0].Text != "מבצע מיוחד!" || res.Suggestions[0].Direction != "rtl" {
		t.Fatalf("first suggestion = %+v", res.Suggestions[0])
	}
	if res.Suggestions[1].Text != "Buy now" {
		t.Fatalf("second suggestion = %+v, want the numbering stripped", res.Suggestions[1])
	}
}

func TestGeminiSuggestBareArray(t *testing.T) {
	g := NewGemini(textClient(t, `["קנה עכשיו","חדש!"]`), zerolog.Nop())

	res, err := g.Suggest(context.Background(), Request{Description: "candles"})
	if err != nil {
		t.Fatalf("Suggest returned error: %v", err)
	}
	if len(res.Suggestions) != 2 {
		t.Fatalf("len(suggestions) = %d, want 2", len(res.Suggestions))
	}
}

func TestGeminiSuggestUnparseable(t *testing.T) {
	g := NewGemini(textClient(t, "sorry, no ideas today"), zerolog.Nop())

	if _, err := g.Suggest(context.Background(), Request{Description: "x"}); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestGeminiSuggestTransportError(t *testing.T) {
	client := genai.New(genai.Options{
		APIKey: "test-key",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusServiceUnavailable,
				Body:       io.NopCloser(strings.NewReader(`{"error":{"code":503,"message":"overloaded"}}`)),
			}, nil
		})},
		Logger: zerolog.Nop(),
	})
	g := NewGemini(client, zerolog.Nop())

	if _, err := g.Suggest(context.Background(), Request{Description: "x"}); err == nil {
		t.Fatal("expected an error")
	}
}

func TestGeminiSuggestSendsImage(t *testing.T) {
	var sawInline bool
	client := genai.New(genai.Options{
		APIKey: "test-key",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			raw, _ := io.ReadAll(r.Body)
			sawInline = strings.Contains(string(raw), "inlineData")
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader(`{"candidates":[{"content":{"parts":[{"text":"{\"captions\":[\"חדש!\"]}"}]}}]}`)),
			}, nil
		})},
		Logger: zerolog.Nop(),
	})
	g := NewGemini(client, zerolog.Nop())

	if _, err := g.Suggest(context.Background(), Request{Image: []byte("img"), ImageMIME: "image/png"}); err != nil {
		t.Fatalf("Suggest returned error: %v", err)
	}
	if !sawInline {
		t.Fatal("image was not attached to the model request")
	}
}
