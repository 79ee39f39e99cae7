// Package viewport turns pointer gestures into viewport changes.
//
// A Controller owns the live zoom/offset state. Renders never read it
// directly: every change hands a copy of the new state to the redraw
// callback, and Viewport returns a copy on demand.
package viewport

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/joshvictor1024/mandelview/pkg/fractal"
	"github.com/joshvictor1024/mandelview/pkg/types"
)

const (
	// scrolling down (positive delta) multiplies the zoom by ScrollDownFactor,
	// anything else by ScrollUpFactor
	ScrollDownFactor = 1.1
	ScrollUpFactor   = 0.9

	DefaultMinZoom = 1e-3
	// beyond this a pixel is narrower than float64 resolves near the set
	DefaultMaxZoom = 1e15
)

var ErrNonFinite = errors.New("viewport: non-finite pointer coordinates")

type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type Option func(*Controller)

// WithZoomLimits bounds the zoom level gestures can reach.
func WithZoomLimits(min, max float64) Option {
	return func(c *Controller) {
		c.minZoom = min
		c.maxZoom = max
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

type Controller struct {
	mu      sync.Mutex
	initial fractal.Viewport
	vp      fractal.Viewport
	state   State
	last    types.Pointf64

	minZoom float64
	maxZoom float64
	redraw  func(fractal.Viewport)
	logger  *slog.Logger
}

// New returns a Controller showing initial. redraw is called exactly once
// per change with the new viewport, while the Controller is locked: it
// must not block or call back into the Controller.
func New(initial fractal.Viewport, redraw func(fractal.Viewport), opts ...Option) (*Controller, error) {
	c := &Controller{
		initial: initial,
		vp:      initial,
		minZoom: DefaultMinZoom,
		maxZoom: DefaultMaxZoom,
		redraw:  redraw,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.redraw == nil {
		c.redraw = func(fractal.Viewport) {}
	}

	if err := initial.Validate(); err != nil {
		return nil, err
	}
	if !(c.minZoom > 0) || !(c.minZoom <= c.maxZoom) || math.IsInf(c.maxZoom, 0) {
		return nil, fmt.Errorf("%w: zoom limits [%v, %v]", fractal.ErrInvalidViewport, c.minZoom, c.maxZoom)
	}
	if initial.Zoom < c.minZoom || initial.Zoom > c.maxZoom {
		return nil, fmt.Errorf("%w: zoom %v outside [%v, %v]", fractal.ErrInvalidViewport, initial.Zoom, c.minZoom, c.maxZoom)
	}
	return c, nil
}

// Viewport returns a snapshot of the current state.
func (c *Controller) Viewport() fractal.Viewport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vp
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Redraw requests a render of the current state without changing it.
func (c *Controller) Redraw() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.redraw(c.vp)
}

func (c *Controller) PointerDown(x, y float64) error {
	if !finite(x, y) {
		return ErrNonFinite
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Dragging
	c.last = types.Pointf64{X: x, Y: y}
	return nil
}

// PointerMove pans the view while dragging so the plane point grabbed
// at the last position stays under the pointer.
func (c *Controller) PointerMove(x, y float64) error {
	if !finite(x, y) {
		return ErrNonFinite
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Dragging {
		return nil
	}
	p := types.Pointf64{X: x, Y: y}
	delta := p.Sub(c.last)
	c.last = p
	if delta == (types.Pointf64{}) {
		return nil
	}
	c.set(c.vp.Pan(delta))
	return nil
}

func (c *Controller) PointerUp() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Idle
}

// Scroll zooms about the pointer at (x, y); the plane point under it does not move.
func (c *Controller) Scroll(deltaY, x, y float64) error {
	if !finite(deltaY, x, y) {
		return ErrNonFinite
	}
	factor := ScrollUpFactor
	if deltaY > 0 {
		factor = ScrollDownFactor
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	zoom := math.Min(math.Max(c.vp.Zoom*factor, c.minZoom), c.maxZoom)
	if zoom == c.vp.Zoom {
		c.logger.Debug("zoom limit reached", "zoom", zoom)
		return nil
	}
	c.set(c.vp.ZoomTo(types.Pointf64{X: x, Y: y}, zoom))
	return nil
}

// Reset restores the initial viewport and ends any drag.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Idle
	c.set(c.initial)
}

// must hold mu
func (c *Controller) set(vp fractal.Viewport) {
	c.vp = vp
	c.logger.Debug("viewport changed", "zoom", vp.Zoom, "re", vp.Offset.X, "im", vp.Offset.Y)
	c.redraw(vp)
}

func finite(fs ...float64) bool {
	for _, f := range fs {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
