package overlay

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"shivuk/internal/domain"
)

// Decode reads an encoded raster image (PNG, JPEG, GIF, TIFF, BMP).
func Decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode image: %v", domain.ErrRenderFailure, err)
	}
	return img, nil
}

// EncodePNG serializes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("%w: encode png: %v", domain.ErrRenderFailure, err)
	}
	return buf.Bytes(), nil
}
