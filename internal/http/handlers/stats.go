package handlers

import (
	"net/http"
	"time"
)

func (a *App) StatsSummary(w http.ResponseWriter, r *http.Request) {
	var uptime int64
	if !a.startedAt.IsZero() {
		uptime = int64(time.Since(a.startedAt).Seconds())
	}
	fontCacheSize := 0
	if a.Fonts != nil {
		fontCacheSize = a.Fonts.CacheSize()
	}
	a.json(w, http.StatusOK, map[string]any{
		"uptime_seconds":   uptime,
		"images_generated": a.imagesGenerated.Load(),
		"texts_rendered":   a.textsRendered.Load(),
		"captions_served":  a.captionsServed.Load(),
		"font_cache_size":  fontCacheSize,
	})
}
