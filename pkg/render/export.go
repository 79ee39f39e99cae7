package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
)

// WritePNG encodes img as PNG, resampled by scale first unless scale is 1.
func WritePNG(w io.Writer, img image.Image, scale float64) error {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return fmt.Errorf("render: invalid scale %v", scale)
	}
	if scale != 1 {
		b := img.Bounds()
		dw := int(math.Round(float64(b.Dx()) * scale))
		dh := int(math.Round(float64(b.Dy()) * scale))
		if dw < 1 || dh < 1 {
			return fmt.Errorf("render: scale %v leaves an empty %dx%d image", scale, dw, dh)
		}
		dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		img = dst
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("png.Encode: %w", err)
	}
	return nil
}
