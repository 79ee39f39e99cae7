package fractal

import "fmt"

// Region is a band of whole rows [StartRow, EndRow) of a frame Width pixels wide.
type Region struct {
	Width    int
	StartRow int
	EndRow   int
}

func (r Region) Rows() int {
	return r.EndRow - r.StartRow
}

// Len is the size in bytes of the region's RGBA pixels.
func (r Region) Len() int {
	return r.Width * r.Rows() * 4
}

// Validate checks r against a frame height; height <= 0 skips the upper bound.
func (r Region) Validate(height int) error {
	if r.Width <= 0 || r.StartRow < 0 || r.StartRow >= r.EndRow || (height > 0 && r.EndRow > height) {
		return fmt.Errorf("%w: width %d rows [%d, %d) in height %d", ErrInvalidRegion, r.Width, r.StartRow, r.EndRow, height)
	}
	return nil
}

// Partition splits rows [0, height) into at most n contiguous bands of
// height/n rows; the last band takes the remainder. Empty bands are
// omitted, so fewer than n regions come back when height < n.
func Partition(width, height, n int) ([]Region, error) {
	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidConcurrency, n)
	}

	rowsPerRegion := height / n
	regions := make([]Region, 0, n)
	for i := 0; i < n; i++ {
		r := Region{Width: width, StartRow: i * rowsPerRegion, EndRow: (i + 1) * rowsPerRegion}
		if i == n-1 {
			r.EndRow = height
		}
		if r.Rows() == 0 {
			continue
		}
		regions = append(regions, r)
	}
	return regions, nil
}
