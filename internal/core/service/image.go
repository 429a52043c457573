package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // register gif
	"image/jpeg"
	_ "image/png" // register png

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register webp

	"github.com/cinemyst/onboarding-service/internal/core/domain"
)

const (
	defaultJPEGQuality  = 70
	defaultMaxDimension = 1024
	defaultMaxPixels    = 40_000_000
)

// JPEGEncoder re-encodes pictures as JPEG, scaling them down to fit within
// MaxDimension on their longest side. Pictures declaring more than MaxPixels
// are rejected before they are decoded.
type JPEGEncoder struct {
	Quality      int
	MaxDimension int
	MaxPixels    int
}

func NewJPEGEncoder(quality, maxDimension int) *JPEGEncoder {
	if quality <= 0 || quality > 100 {
		quality = defaultJPEGQuality
	}
	if maxDimension <= 0 {
		maxDimension = defaultMaxDimension
	}
	return &JPEGEncoder{Quality: quality, MaxDimension: maxDimension, MaxPixels: defaultMaxPixels}
}

// Encode implements ports.ImageEncoder.
func (e *JPEGEncoder) Encode(pic domain.Picture) ([]byte, string, string, error) {
	if len(pic.Data) == 0 {
		return nil, "", "", fmt.Errorf("%w: empty picture", domain.ErrImageCompressionFailed)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(pic.Data))
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: decode: %v", domain.ErrImageCompressionFailed, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > e.MaxPixels/cfg.Height {
		return nil, "", "", fmt.Errorf("%w: %dx%d exceeds %d pixels", domain.ErrImageCompressionFailed, cfg.Width, cfg.Height, e.MaxPixels)
	}

	src, _, err := image.Decode(bytes.NewReader(pic.Data))
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: decode: %v", domain.ErrImageCompressionFailed, err)
	}

	img := e.fit(src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: e.Quality}); err != nil {
		return nil, "", "", fmt.Errorf("%w: encode: %v", domain.ErrImageCompressionFailed, err)
	}
	return buf.Bytes(), "image/jpeg", "jpg", nil
}

// fit scales src down so that neither side exceeds MaxDimension.
func (e *JPEGEncoder) fit(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= e.MaxDimension && h <= e.MaxDimension {
		return src
	}

	if w >= h {
		h = h * e.MaxDimension / w
		w = e.MaxDimension
	} else {
		w = w * e.MaxDimension / h
		h = e.MaxDimension
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
