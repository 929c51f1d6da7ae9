package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	stdimage "image"
	"net/http"
	"strconv"
	"strings"

	"shivuk/internal/domain"
	"shivuk/internal/fonts"
	"shivuk/internal/layout"
	"shivuk/internal/overlay"
)

const (
	defaultFontFamily  = "DejaVu Sans"
	defaultFontSizePx  = 60
	defaultStrokeWidth = 2
)

type addTextRequest struct {
	ImageID     string  `json:"image_id"`
	Text        string  `json:"text"`
	X           int     `json:"x"`
	Y           int     `json:"y"`
	FontFamily  string  `json:"font_family"`
	FontBold    bool    `json:"font_bold"`
	FontSize    int     `json:"font_size"`
	Color       string  `json:"color"`
	StrokeColor *string `json:"stroke_color"`
	StrokeWidth *int    `json:"stroke_width"`
	Background  string  `json:"background"`
}

type addTextResponse struct {
	ImageID     string `json:"image_id"`
	ImageURL    string `json:"image_url"`
	ImageBase64 string `json:"image_base64"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

// AddText composites a styled caption onto a stored image. The rendition is
// always built from the base image, so repeated calls replace the caption
// instead of stacking captions on top of each other.
func (a *App) AddText(w http.ResponseWriter, r *http.Request) {
	var req addTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.ImageID) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "image_id required")
		return
	}

	style, err := a.buildStyle(req)
	if err != nil {
		a.error(w, http.StatusBadRequest, "invalid_style", err.Error())
		return
	}

	data, err := a.Store.Read(r.Context(), req.ImageID+".png")
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "image not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to load image")
		return
	}
	img, err := overlay.Decode(data)
	if err != nil {
		a.Log.Error().Err(err).Str("image_id", req.ImageID).Msg("stored image is not decodable")
		a.error(w, http.StatusInternalServerError, "render_failure", "stored image is not decodable")
		return
	}

	var opts []overlay.RenderOption
	if strings.TrimSpace(req.Background) != "" {
		bg, err := overlay.ParseHexColor(req.Background)
		if err != nil {
			a.error(w, http.StatusBadRequest, "invalid_style", "background must be a hex color")
			return
		}
		opts = append(opts, overlay.WithBackground(bg))
	}

	out, err := a.Renderer.Render(img, style, stdimage.Pt(req.X, req.Y), opts...)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidStyle):
			a.error(w, http.StatusBadRequest, "invalid_style", err.Error())
		default:
			a.Log.Error().Err(err).Str("image_id", req.ImageID).Msg("text rendering failed")
			a.error(w, http.StatusInternalServerError, "render_failure", "text rendering failed")
		}
		return
	}

	png, err := overlay.EncodePNG(out)
	if err != nil {
		a.Log.Error().Err(err).Msg("failed to encode rendition")
		a.error(w, http.StatusInternalServerError, "render_failure", "failed to encode image")
		return
	}
	if _, err := a.Store.Write(r.Context(), req.ImageID+"_final.png", png); err != nil {
		a.Log.Error().Err(err).Msg("failed to store rendition")
		a.error(w, http.StatusInternalServerError, "storage_failed", "failed to store image")
		return
	}
	a.textsRendered.Add(1)

	bounds := out.Bounds()
	a.json(w, http.StatusOK, addTextResponse{
		ImageID:     req.ImageID,
		ImageURL:    "/api/download/" + req.ImageID,
		ImageBase64: "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
	})
}

// buildStyle maps the request fields onto a text style, applying the
// documented defaults. A nil stroke_color keeps the default black outline,
// an empty string disables the outline entirely.
func (a *App) buildStyle(req addTextRequest) (overlay.TextStyle, error) {
	style := overlay.TextStyle{
		Text: req.Text,
		Font: fonts.Spec{
			Family: req.FontFamily,
			Bold:   req.FontBold,
			SizePx: req.FontSize,
		},
	}
	if style.Font.Family == "" {
		style.Font.Family = defaultFontFamily
	}
	if style.Font.SizePx == 0 {
		style.Font.SizePx = defaultFontSizePx
	}

	fill := "#FFFFFF"
	if strings.TrimSpace(req.Color) != "" {
		fill = req.Color
	}
	parsed, err := overlay.ParseHexColor(fill)
	if err != nil {
		return overlay.TextStyle{}, errors.New("color must be a hex color like #FFFFFF")
	}
	style.Fill = parsed

	strokeHex := "#000000"
	if req.StrokeColor != nil {
		strokeHex = *req.StrokeColor
	}
	if strings.TrimSpace(strokeHex) != "" {
		stroke, err := overlay.ParseHexColor(strokeHex)
		if err != nil {
			return overlay.TextStyle{}, errors.New("stroke_color must be a hex color like #000000")
		}
		style.Stroke = &stroke
		style.StrokeWidth = defaultStrokeWidth
		if req.StrokeWidth != nil {
			style.StrokeWidth = *req.StrokeWidth
		}
	}
	return style, nil
}

// SuggestPositions returns named anchor points for the given canvas.
func (a *App) SuggestPositions(w http.ResponseWriter, r *http.Request) {
	width, err := strconv.Atoi(r.URL.Query().Get("width"))
	if err != nil || width <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "width must be a positive integer")
		return
	}
	height, err := strconv.Atoi(r.URL.Query().Get("height"))
	if err != nil || height <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "height must be a positive integer")
		return
	}
	orientation, ok := layout.ParseOrientation(r.URL.Query().Get("orientation"))
	if !ok {
		orientation = layout.OrientationFor(width, height)
	}

	a.json(w, http.StatusOK, map[string]any{
		"orientation": orientation,
		"suggestions": layout.Suggest(width, height, orientation),
	})
}
