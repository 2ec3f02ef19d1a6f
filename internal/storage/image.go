package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	maxPhotoSize = 512
	webpQuality  = 85
)

// NormalizePhoto decodifica JPEG/PNG, reduz para no máximo 512px no maior
// lado e reencoda em webp.
func NormalizePhoto(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("invalid image: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxPhotoSize || h > maxPhotoSize {
		scale := float64(maxPhotoSize) / float64(w)
		if h > w {
			scale = float64(maxPhotoSize) / float64(h)
		}
		dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("webp encode: %w", err)
	}

	return buf.Bytes(), nil
}
