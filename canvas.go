package main

import (
	"fmt"
	"image"

	"github.com/veandco/go-sdl2/sdl"
)

// canvas shows frames through a streaming texture the size of the window.
type canvas struct {
	renderer *sdl.Renderer
	texture  *sdl.Texture
	w        int
	h        int
}

func newCanvas(r *sdl.Renderer, w, h int) (*canvas, error) {
	t, err := r.CreateTexture(
		// R, G, B, A byte order in memory on little-endian machines
		sdl.PIXELFORMAT_ABGR8888,
		sdl.TEXTUREACCESS_STREAMING, // only textures with TEXTUREACCESS_STREAMING can be locked
		int32(w),
		int32(h),
	)
	if err != nil {
		return nil, fmt.Errorf("CreateTexture: %w", err)
	}
	// interior pixels are transparent; show them as the clear colour
	if err := t.SetBlendMode(sdl.BLENDMODE_BLEND); err != nil {
		t.Destroy()
		return nil, fmt.Errorf("SetBlendMode: %w", err)
	}
	return &canvas{
		renderer: r,
		texture:  t,
		w:        w,
		h:        h,
	}, nil
}

func (c *canvas) close() {
	c.texture.Destroy()
}

// upload replaces the texture contents with img, which must match the canvas size.
func (c *canvas) upload(img *image.RGBA) error {
	b := img.Bounds()
	if b.Dx() != c.w || b.Dy() != c.h {
		return fmt.Errorf("frame %dx%d on a %dx%d canvas", b.Dx(), b.Dy(), c.w, c.h)
	}
	data, pitch, err := c.texture.Lock(nil)
	if err != nil {
		return fmt.Errorf("texture.Lock: %w", err)
	}
	defer c.texture.Unlock()

	rowLen := c.w * 4
	for y := 0; y < c.h; y++ {
		src := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		copy(data[y*pitch:y*pitch+rowLen], src[:rowLen])
	}
	return nil
}

func (c *canvas) draw() error {
	return c.renderer.Copy(c.texture, nil, nil)
}
