package render

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/joshvictor1024/mandelview/pkg/fractal"
)

const (
	hudMargin  = 10
	hudPadding = 5
)

// 70% white, premultiplied
var hudBackground = color.RGBA{178, 178, 178, 178}

// Compose returns the image to display for f. Without a HUD it shares
// f's pixels; with one it draws on a copy.
func Compose(f *fractal.Frame, hud bool, baseZoom float64) *image.RGBA {
	if !hud {
		return f.RGBA()
	}
	return HUD(f, baseZoom)
}

// HUD copies f and draws the view position and magnification relative
// to baseZoom in its top-left corner.
func HUD(f *fractal.Frame, baseZoom float64) *image.RGBA {
	src := f.RGBA()
	img := image.NewRGBA(src.Bounds())
	copy(img.Pix, src.Pix)

	vp := f.Viewport
	lines := []string{
		fmt.Sprintf("X: %.3f", vp.Offset.X),
		fmt.Sprintf("Y: %.3f", vp.Offset.Y),
		fmt.Sprintf("Zoom: %.1fx", vp.Zoom/baseZoom),
	}

	face := basicfont.Face7x13
	width := 0
	for _, l := range lines {
		if w := font.MeasureString(face, l).Ceil(); w > width {
			width = w
		}
	}
	lineHeight := face.Height + 2
	panel := image.Rect(
		hudMargin, hudMargin,
		hudMargin+2*hudPadding+width, hudMargin+2*hudPadding+len(lines)*lineHeight,
	).Intersect(img.Bounds())
	if panel.Empty() {
		return img
	}
	draw.Draw(img, panel, image.NewUniform(hudBackground), image.Point{}, draw.Over)

	d := font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: face,
	}
	for i, l := range lines {
		d.Dot = fixed.P(panel.Min.X+hudPadding, panel.Min.Y+hudPadding+i*lineHeight+face.Ascent)
		d.DrawString(l)
	}
	return img
}
