package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"shivuk/internal/domain"
	"shivuk/internal/layout"
	"shivuk/internal/middleware"
	"shivuk/internal/overlay"
	"shivuk/internal/providers/image"
	"shivuk/pkg/zip"
)

const defaultAspectRatio = "16:9"

type generateImageRequest struct {
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspect_ratio"`
	ImageBase64 string `json:"image_base64"`
}

type generateImageResponse struct {
	ImageID            string              `json:"image_id"`
	ImageURL           string              `json:"image_url"`
	ImageBase64        string              `json:"image_base64"`
	Width              int                 `json:"width"`
	Height             int                 `json:"height"`
	Provider           string              `json:"provider"`
	SuggestedPositions []layout.Suggestion `json:"suggested_positions"`
}

// GenerateImage turns a prompt, an uploaded photo, or both into a stored
// marketing image. An upload without a prompt is normalized and stored as-is.
func (a *App) GenerateImage(w http.ResponseWriter, r *http.Request) {
	var req generateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.Prompt == "" && strings.TrimSpace(req.ImageBase64) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "prompt or image_base64 is required")
		return
	}
	req.AspectRatio = strings.TrimSpace(req.AspectRatio)
	if req.AspectRatio == "" {
		req.AspectRatio = defaultAspectRatio
	}

	var reference []byte
	var referenceMIME string
	if strings.TrimSpace(req.ImageBase64) != "" {
		var err error
		reference, referenceMIME, err = decodeImagePayload(req.ImageBase64)
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "image_base64 is not valid base64")
			return
		}
	}

	var result *image.Result
	if req.Prompt == "" {
		// Upload only: no generation, just keep the photo for later steps.
		result = &image.Result{Data: reference, MIME: referenceMIME, Provider: "upload"}
	} else {
		res, err := a.Images.Generate(r.Context(), image.Request{
			Prompt:        req.Prompt,
			AspectRatio:   req.AspectRatio,
			Locale:        middleware.LocaleFromContext(r.Context()),
			RequestID:     middleware.RequestIDFromContext(r.Context()),
			Reference:     reference,
			ReferenceMIME: referenceMIME,
		})
		if err != nil {
			a.Log.Error().Err(err).Msg("image generation failed")
			a.error(w, http.StatusBadGateway, "generation_failed", "image generation failed")
			return
		}
		result = res
	}

	data, width, height, err := normalizePNG(result.Data)
	if err != nil {
		if result.Provider == "upload" {
			a.error(w, http.StatusBadRequest, "bad_request", "image_base64 does not contain a decodable image")
			return
		}
		a.Log.Error().Err(err).Str("provider", result.Provider).Msg("generated image is not decodable")
		a.error(w, http.StatusBadGateway, "generation_failed", "image generation failed")
		return
	}

	id := uuid.NewString()
	if _, err := a.Store.Write(r.Context(), id+".png", data); err != nil {
		a.Log.Error().Err(err).Msg("failed to store generated image")
		a.error(w, http.StatusInternalServerError, "storage_failed", "failed to store image")
		return
	}
	a.imagesGenerated.Add(1)

	a.json(w, http.StatusCreated, generateImageResponse{
		ImageID:            id,
		ImageURL:           "/api/image/" + id,
		ImageBase64:        "data:image/png;base64," + base64.StdEncoding.EncodeToString(data),
		Width:              width,
		Height:             height,
		Provider:           result.Provider,
		SuggestedPositions: layout.Suggest(width, height, ""),
	})
}

// GetImage serves the stored base image.
func (a *App) GetImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "image_id")
	if id == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "image_id required")
		return
	}
	data, err := a.Store.Read(r.Context(), id+".png")
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "image not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to load image")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// DownloadImage serves the texted rendition when one exists, the base image
// otherwise. With ?bundle=1 both renditions come back as a zip archive.
func (a *App) DownloadImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "image_id")
	if id == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "image_id required")
		return
	}

	if r.URL.Query().Get("bundle") == "1" {
		a.downloadBundle(w, r, id)
		return
	}

	data, err := a.Store.Read(r.Context(), id+"_final.png")
	if errors.Is(err, domain.ErrNotFound) {
		data, err = a.Store.Read(r.Context(), id+".png")
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "image not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to load image")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=product_image_%s.png", id))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (a *App) downloadBundle(w http.ResponseWriter, r *http.Request, id string) {
	var assets []zip.Asset
	if base, err := a.Store.Read(r.Context(), id+".png"); err == nil {
		assets = append(assets, zip.Asset{Filename: fmt.Sprintf("product_image_%s.png", id), MIME: "image/png", Data: base})
	}
	if final, err := a.Store.Read(r.Context(), id+"_final.png"); err == nil {
		assets = append(assets, zip.Asset{Filename: fmt.Sprintf("product_image_%s_final.png", id), MIME: "image/png", Data: final})
	}
	if len(assets) == 0 {
		a.error(w, http.StatusNotFound, "not_found", "image not found")
		return
	}
	archive, err := zip.Archive(assets)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to build archive")
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=product_image_%s.zip", id))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

// decodeImagePayload accepts either a raw base64 string or a data URI and
// returns the decoded bytes with the declared MIME type.
func decodeImagePayload(payload string) ([]byte, string, error) {
	payload = strings.TrimSpace(payload)
	var mime string
	if strings.HasPrefix(payload, "data:") {
		head, rest, ok := strings.Cut(payload, ",")
		if !ok {
			return nil, "", errors.New("handlers: malformed data uri")
		}
		head = strings.TrimPrefix(head, "data:")
		mime = strings.TrimSuffix(head, ";base64")
		payload = rest
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("handlers: decode base64: %w", err)
	}
	return data, mime, nil
}

// normalizePNG re-encodes arbitrary image bytes as PNG and reports the pixel
// dimensions.
func normalizePNG(data []byte) ([]byte, int, int, error) {
	img, err := overlay.Decode(data)
	if err != nil {
		return nil, 0, 0, err
	}
	png, err := overlay.EncodePNG(img)
	if err != nil {
		return nil, 0, 0, err
	}
	bounds := img.Bounds()
	return png, bounds.Dx(), bounds.Dy(), nil
}
