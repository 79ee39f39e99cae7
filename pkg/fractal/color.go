package fractal

import "image/color"

// ToPixel maps an escape count to a colour. Points that did not escape
// are left fully transparent; escaped points get bands that wrap every
// 256 steps of their channel multiplier.
func ToPixel(iter, maxIter uint32) color.RGBA {
	if iter >= maxIter {
		return color.RGBA{}
	}
	return color.RGBA{
		R: uint8(iter * 2),
		G: uint8(iter * 5),
		B: uint8(iter * 3),
		A: 255,
	}
}
