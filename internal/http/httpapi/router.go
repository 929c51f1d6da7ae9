package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"shivuk/internal/http/handlers"
	"shivuk/internal/infra/geoip"
	appmw "shivuk/internal/middleware"
)

func NewRouter(app *handlers.App, countries geoip.CountryResolver) http.Handler {
	r := chi.NewRouter()

	r.Use(
		chimw.RealIP,
		appmw.RequestID,
		appmw.Logger(app.Log),
		chimw.Recoverer,
	)
	r.Use(appmw.CORS(app.Config.CORSAllowedOrigins))

	var lookup appmw.CountryLookup
	if countries != nil {
		lookup = countries.CountryCode
	}
	r.Use(appmw.I18N(app.Config.DefaultLocale, lookup))

	r.Get("/health", app.Health)
	r.Get("/v1/openapi.json", app.OpenAPIJSON)
	r.Get("/docs", app.OpenAPIDocs)

	r.Route("/api", func(r chi.Router) {
		if app.Config.RateLimitPerMin > 0 {
			r.Use(appmw.RateLimit(app.Config.RateLimitPerMin, time.Minute))
		}
		r.Post("/generate-image", app.GenerateImage)
		r.Post("/add-text", app.AddText)
		r.Post("/suggest-texts", app.SuggestTexts)
		r.Get("/suggest-positions", app.SuggestPositions)
		r.Get("/image/{image_id}", app.GetImage)
		r.Get("/download/{image_id}", app.DownloadImage)
		r.Get("/stats", app.StatsSummary)
	})

	return r
}
