package handlers

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"shivuk/internal/fonts"
	"shivuk/internal/infra"
	"shivuk/internal/overlay"
	"shivuk/internal/providers/caption"
	"shivuk/internal/providers/image"
	"shivuk/internal/storage"
)

// App carries the wired dependencies shared by all HTTP handlers.
type App struct {
	Log      zerolog.Logger
	Config   *infra.Config
	Store    *storage.FileStore
	Images   image.Generator
	Captions caption.Suggester
	Renderer *overlay.Renderer
	Fonts    *fonts.Resolver

	startedAt       time.Time
	imagesGenerated atomic.Int64
	textsRendered   atomic.Int64
	captionsServed  atomic.Int64
}

func NewApp(cfg *infra.Config, log zerolog.Logger, store *storage.FileStore, images image.Generator, captions caption.Suggester, renderer *overlay.Renderer, resolver *fonts.Resolver) *App {
	return &App{
		Log:       log,
		Config:    cfg,
		Store:     store,
		Images:    images,
		Captions:  captions,
		Renderer:  renderer,
		Fonts:     resolver,
		startedAt: time.Now(),
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]errorBody{"error": {Code: code, Message: message}})
}
