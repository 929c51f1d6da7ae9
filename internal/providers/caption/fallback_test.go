package caption

import (
	"context"
	"errors"
	"testing"
)

type fakeSuggester struct {
	response *Response
	err      error
	calls    int
}

func (f *fakeSuggester) Suggest(ctx context.Context, req Request) (*Response, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func TestFallbackUsesPrimary(t *testing.T) {
	primary := &fakeSuggester{response: &Response{Provider: "gemini"}}
	backup := &fakeSuggester{response: &Response{Provider: "static"}}
	var notified bool
	fb := &Fallback{Primary: primary, Backup: backup, OnFallback: func(string, error) { notified = true }}

	res, err := fb.Suggest(context.Background(), Request{Description: "candles"})
	if err != nil {
		t.Fatalf("Suggest returned error: %v", err)
	}
	if res.Provider != "gemini" {
		t.Fatalf("Provider = %q, want %q", res.Provider, "gemini")
	}
	if backup.calls != 0 {
		t.Fatalf("backup.calls = %d, want 0", backup.calls)
	}
	if notified {
		t.Fatal("OnFallback fired without a fallback")
	}
}

func TestFallbackSwitchesOnError(t *testing.T) {
	boom := errors.New("model unavailable")
	primary := &fakeSuggester{err: boom}
	backup := &fakeSuggester{response: &Response{Provider: "static"}}
	var gotReason string
	var gotErr error
	fb := &Fallback{Primary: primary, Backup: backup, OnFallback: func(reason string, err error) {
		gotReason, gotErr = reason, err
	}}

	res, err := fb.Suggest(context.Background(), Request{Description: "candles"})
	if err != nil {
		t.Fatalf("Suggest returned error: %v", err)
	}
	if res.Provider != "static" {
		t.Fatalf("Provider = %q, want %q", res.Provider, "static")
	}
	if gotReason != "primary_failed" {
		t.Fatalf("reason = %q, want %q", gotReason, "primary_failed")
	}
	if !errors.Is(gotErr, boom) {
		t.Fatalf("OnFallback err = %v, want %v", gotErr, boom)
	}
}

func TestFallbackMissingPrimary(t *testing.T) {
	backup := &fakeSuggester{response: &Response{Provider: "static"}}
	var gotReason string
	fb := &Fallback{Backup: backup, OnFallback: func(reason string, err error) { gotReason = reason }}

	res, err := fb.Suggest(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Suggest returned error: %v", err)
	}
	if res.Provider != "static" {
		t.Fatalf("Provider = %q, want %q", res.Provider, "static")
	}
	if gotReason != "primary_missing" {
		t.Fatalf("reason = %q, want %q", gotReason, "primary_missing")
	}
}

func TestFallbackNoSuggesters(t *testing.T) {
	fb := &Fallback{}
	if _, err := fb.Suggest(context.Background(), Request{}); err == nil {
		t.Fatal("expected an error with no suggesters configured")
	}
}

func TestFallbackRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	primary := &fakeSuggester{err: context.Canceled}
	backup := &fakeSuggester{response: &Response{Provider: "static"}}
	fb := &Fallback{Primary: primary, Backup: backup}
	cancel()

	if _, err := fb.Suggest(ctx, Request{}); err == nil {
		t.Fatal("expected the canceled context error to surface")
	}
	if backup.calls != 0 {
		t.Fatalf("backup.calls = %d, want 0", backup.calls)
	}
}
