package fractal

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/sync/errgroup"
)

// Frame is a fully assembled render: Width*Height RGBA pixels, row-major,
// together with the viewport snapshot it was rendered from.
type Frame struct {
	Pix      []byte
	Width    int
	Height   int
	Viewport Viewport
	MaxIter  uint32
}

// At returns the pixel at (x, y).
func (f *Frame) At(x, y int) color.RGBA {
	i := (y*f.Width + x) * 4
	return color.RGBA{R: f.Pix[i], G: f.Pix[i+1], B: f.Pix[i+2], A: f.Pix[i+3]}
}

// RGBA wraps the frame's pixels without copying them.
func (f *Frame) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    f.Pix,
		Stride: f.Width * 4,
		Rect:   image.Rect(0, 0, f.Width, f.Height),
	}
}

// RenderFrame renders a width x height frame of vp, split into
// concurrency row bands evaluated in parallel. With concurrency 1 the
// bands are evaluated on the calling goroutine.
//
// The frame is returned only once every band has finished; on any error,
// including ctx being cancelled, nothing is returned.
func RenderFrame(ctx context.Context, width, height int, vp Viewport, maxIter uint32, concurrency int) (*Frame, error) {
	regions, err := Partition(width, height, concurrency)
	if err != nil {
		return nil, err
	}
	if err := vp.Validate(); err != nil {
		return nil, err
	}
	if maxIter < 1 {
		return nil, ErrInvalidMaxIter
	}

	f := &Frame{
		Pix:      make([]byte, width*height*4),
		Width:    width,
		Height:   height,
		Viewport: vp,
		MaxIter:  maxIter,
	}

	if len(regions) == 1 || concurrency == 1 {
		for _, r := range regions {
			if err := renderBand(ctx, f.band(r), r, vp, maxIter); err != nil {
				return nil, err
			}
		}
		return f, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, r := range regions {
		dst := f.band(r)
		g.Go(func() error {
			return renderBand(gctx, dst, r, vp, maxIter)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return f, nil
}

// renderBand turns a panicking band into an error for the whole frame.
func renderBand(ctx context.Context, dst []byte, r Region, vp Viewport, maxIter uint32) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: rows [%d, %d): %v", ErrChunkFailed, r.StartRow, r.EndRow, p)
		}
	}()
	if err := computeRows(ctx, dst, r, vp, maxIter); err != nil {
		return fmt.Errorf("rows [%d, %d): %w", r.StartRow, r.EndRow, err)
	}
	return nil
}

// band is the slice of f.Pix holding r. Bands of disjoint regions never overlap.
func (f *Frame) band(r Region) []byte {
	return f.Pix[r.StartRow*f.Width*4 : r.EndRow*f.Width*4 : r.EndRow*f.Width*4]
}
