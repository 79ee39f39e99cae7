// Package render drives fractal.RenderFrame from a stream of viewport
// changes and prepares finished frames for display.
package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/joshvictor1024/mandelview/pkg/fractal"
	"github.com/joshvictor1024/mandelview/pkg/types"
)

type Config struct {
	Width       int
	Height      int
	MaxIter     uint32
	Concurrency int
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 || c.Width > fractal.MaxDimension || c.Height > fractal.MaxDimension {
		return fmt.Errorf("%w: %dx%d", fractal.ErrInvalidSize, c.Width, c.Height)
	}
	if c.MaxIter < 1 {
		return fractal.ErrInvalidMaxIter
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: %d", fractal.ErrInvalidConcurrency, c.Concurrency)
	}
	return nil
}

// Worker renders the most recently requested viewport. Requests that
// arrive before the worker gets to them replace each other, and a new
// request cancels the render in flight, whose result is dropped.
// Finished frames wait in a one-slot queue; an undisplayed frame is
// replaced by a newer one.
type Worker struct {
	cfg    Config
	logger *slog.Logger

	requests *types.ControlledQueue[request]
	frames   *types.ControlledQueue[*fractal.Frame]

	mu       sync.Mutex
	gen      uint64             // last request queued
	inflight uint64             // request being rendered
	cancel   context.CancelFunc // render in flight
}

// request is a viewport tagged with the order it was asked for in.
type request struct {
	vp  fractal.Viewport
	gen uint64
}

func NewWorker(cfg Config, logger *slog.Logger) (*Worker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{
		cfg:      cfg,
		logger:   logger,
		requests: types.NewControlledQueue[request](),
		frames:   types.NewControlledQueue[*fractal.Frame](),
	}, nil
}

func (w *Worker) Config() Config {
	return w.cfg
}

// Request asks for a frame of vp. It never blocks.
func (w *Worker) Request(vp fractal.Viewport) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.gen++
	dropped, ok := w.requests.Replace(request{vp: vp, gen: w.gen})
	if !ok {
		return
	}
	if dropped > 0 {
		w.logger.Debug("coalesced redraw requests", "dropped", dropped)
	}
	w.cancelOlder(w.gen)
}

// cancelOlder cancels the render in flight if it was asked for before gen.
// w.mu must be held.
func (w *Worker) cancelOlder(gen uint64) {
	if w.cancel != nil && w.inflight < gen {
		w.cancel()
	}
}

// Run renders requests until ctx is done or Close is called.
func (w *Worker) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, w.Close)
	defer stop()

	for {
		req, ok := w.requests.Recv()
		if !ok {
			return nil
		}
		vp := req.vp
		f, err := w.render(ctx, req)
		switch {
		case ctx.Err() != nil:
			return nil
		case errors.Is(err, context.Canceled):
			w.logger.Debug("render superseded", "zoom", vp.Zoom, "re", vp.Offset.X, "im", vp.Offset.Y)
			continue
		case err != nil:
			// nothing is shown; the next gesture renders again
			w.logger.Error("render failed", "err", err)
			continue
		}
		if _, ok := w.frames.Replace(f); !ok {
			return nil
		}
	}
}

func (w *Worker) render(ctx context.Context, req request) (*fractal.Frame, error) {
	vp := req.vp
	rctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w.mu.Lock()
	w.inflight = req.gen
	w.cancel = cancel
	if req.gen < w.gen {
		// already stale
		cancel()
	}
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		w.cancel = nil
		w.mu.Unlock()
	}()

	start := time.Now()
	f, err := fractal.RenderFrame(rctx, w.cfg.Width, w.cfg.Height, vp, w.cfg.MaxIter, w.cfg.Concurrency)
	if err != nil {
		return nil, err
	}
	w.logger.Debug("frame rendered",
		"width", w.cfg.Width, "height", w.cfg.Height,
		"zoom", vp.Zoom, "re", vp.Offset.X, "im", vp.Offset.Y,
		"elapsed", time.Since(start))
	return f, nil
}

// TryFrame returns a finished frame if one is waiting.
func (w *Worker) TryFrame() (*fractal.Frame, bool) {
	canRecv, f, ok := w.frames.AttemptRecv(false)
	return f, canRecv && ok
}

// NextFrame blocks until a frame is finished. It returns false once the
// worker is closed.
func (w *Worker) NextFrame() (*fractal.Frame, bool) {
	return w.frames.Recv()
}

// Close stops the worker and wakes NextFrame callers. Pending requests
// and undisplayed frames are dropped.
func (w *Worker) Close() {
	w.requests.Close()
	w.frames.Close()
	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
	}
	w.mu.Unlock()
}
