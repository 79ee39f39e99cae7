package fractal

import (
	"context"
	"fmt"
)

// ComputeChunk renders the pixels of r. Row 0 of the returned buffer is
// r.StartRow of the frame.
func ComputeChunk(r Region, vp Viewport, maxIter uint32) ([]byte, error) {
	if err := checkChunk(r, vp, maxIter); err != nil {
		return nil, err
	}
	data := make([]byte, r.Len())
	if err := computeRows(context.Background(), data, r, vp, maxIter); err != nil {
		return nil, err
	}
	return data, nil
}

func checkChunk(r Region, vp Viewport, maxIter uint32) error {
	if err := r.Validate(0); err != nil {
		return err
	}
	if err := vp.Validate(); err != nil {
		return err
	}
	if maxIter < 1 {
		return ErrInvalidMaxIter
	}
	return nil
}

// computeRows writes r into data, which must hold exactly r.Len() bytes.
// ctx is polled once per row.
func computeRows(ctx context.Context, data []byte, r Region, vp Viewport, maxIter uint32) error {
	if len(data) != r.Len() {
		return fmt.Errorf("%w: buffer of %d bytes for %d", ErrInvalidRegion, len(data), r.Len())
	}
	for y := r.StartRow; y < r.EndRow; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		cim := float64(y)/vp.Zoom + vp.Offset.Y
		row := data[(y-r.StartRow)*r.Width*4:]
		for x := 0; x < r.Width; x++ {
			cre := float64(x)/vp.Zoom + vp.Offset.X
			c := ToPixel(Evaluate(cre, cim, maxIter), maxIter)
			px := row[x*4 : x*4+4]
			px[0], px[1], px[2], px[3] = c.R, c.G, c.B, c.A
		}
	}
	return nil
}
