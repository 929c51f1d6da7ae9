package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"shivuk/internal/domain"
	"shivuk/internal/middleware"
	"shivuk/internal/providers/caption"
)

type suggestTextsRequest struct {
	ProductDescription string `json:"product_description"`
	ImageID            string `json:"image_id"`
}

// SuggestTexts proposes short captions for a product, optionally grounded on
// a previously generated image.
func (a *App) SuggestTexts(w http.ResponseWriter, r *http.Request) {
	var req suggestTextsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.ProductDescription = strings.TrimSpace(req.ProductDescription)
	req.ImageID = strings.TrimSpace(req.ImageID)
	if req.ProductDescription == "" && req.ImageID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "product_description or image_id is required")
		return
	}

	capReq := caption.Request{
		Description: req.ProductDescription,
		Locale:      middleware.LocaleFromContext(r.Context()),
	}
	if req.ImageID != "" {
		data, err := a.Store.Read(r.Context(), req.ImageID+".png")
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				a.error(w, http.StatusNotFound, "not_found", "image not found")
				return
			}
			a.error(w, http.StatusInternalServerError, "internal", "failed to load image")
			return
		}
		capReq.Image = data
		capReq.ImageMIME = "image/png"
	}

	res, err := a.Captions.Suggest(r.Context(), capReq)
	if err != nil {
		a.Log.Error().Err(err).Msg("caption suggestion failed")
		a.error(w, http.StatusBadGateway, "suggestion_failed", "caption suggestion failed")
		return
	}
	a.captionsServed.Add(1)

	a.json(w, http.StatusOK, map[string]any{
		"texts":    res.Suggestions,
		"provider": res.Provider,
	})
}
