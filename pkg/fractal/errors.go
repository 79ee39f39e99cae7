package fractal

import "errors"

// MaxDimension bounds frame width and height in pixels.
const MaxDimension = 1 << 15

var (
	ErrInvalidSize        = errors.New("fractal: invalid frame size")
	ErrInvalidViewport    = errors.New("fractal: invalid viewport")
	ErrInvalidRegion      = errors.New("fractal: invalid pixel region")
	ErrInvalidMaxIter     = errors.New("fractal: iteration cap must be at least 1")
	ErrInvalidConcurrency = errors.New("fractal: concurrency must be at least 1")
	ErrChunkFailed        = errors.New("fractal: chunk failed")
)
