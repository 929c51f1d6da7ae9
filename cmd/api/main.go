package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"shivuk/internal/fonts"
	"shivuk/internal/http/handlers"
	httpapi "shivuk/internal/http/httpapi"
	"shivuk/internal/infra"
	"shivuk/internal/infra/geoip"
	"shivuk/internal/overlay"
	"shivuk/internal/providers/caption"
	"shivuk/internal/providers/genai"
	"shivuk/internal/providers/image"
	"shivuk/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	countries, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip database unavailable, locale detection falls back to headers")
	}
	if closer, ok := countries.(*geoip.Resolver); ok {
		defer closer.Close()
	}

	store, err := storage.NewFileStore(cfg.StorageDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare storage")
	}

	catalog := fonts.DefaultCatalog()
	for _, dir := range cfg.FontDirs {
		candidates, err := fonts.CatalogFromDir(dir)
		if err != nil {
			logger.Warn().Err(err).Str("dir", dir).Msg("failed to scan font directory")
			continue
		}
		catalog.Append(candidates...)
	}
	resolver := fonts.NewResolver(catalog, logger)
	renderer := overlay.NewRenderer(resolver, logger)

	client := genai.New(genai.Options{
		APIKey:     cfg.GeminiAPIKey,
		BaseURL:    cfg.GeminiBaseURL,
		ImageModel: cfg.GeminiImageModel,
		TextModel:  cfg.GeminiTextModel,
		Logger:     logger,
	})

	var images image.Generator = image.NewStatic(logger)
	var captions caption.Suggester = caption.NewStatic()
	if client.HasKey() {
		images = &image.Fallback{
			Primary: image.NewGemini(client, logger),
			Backup:  image.NewStatic(logger),
			OnFallback: func(reason string, err error) {
				logger.Warn().Err(err).Str("reason", reason).Msg("image generation fell back to the placeholder")
			},
		}
		captions = &caption.Fallback{
			Primary: caption.NewGemini(client, logger),
			Backup:  caption.NewStatic(),
			OnFallback: func(reason string, err error) {
				logger.Warn().Err(err).Str("reason", reason).Msg("caption suggestion fell back to canned texts")
			},
		}
	} else {
		logger.Info().Msg("GEMINI_API_KEY not set, serving placeholder images and canned captions")
	}

	app := handlers.NewApp(cfg, logger, store, images, captions, renderer, resolver)
	router := httpapi.NewRouter(app, countries)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
