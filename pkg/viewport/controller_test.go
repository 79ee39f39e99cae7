package viewport

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/joshvictor1024/mandelview/pkg/fractal"
	"github.com/joshvictor1024/mandelview/pkg/types"
)

var start = fractal.Viewport{Zoom: 200, Offset: types.Pointf64{X: -2, Y: -1}}

type recorder struct {
	mu    sync.Mutex
	views []fractal.Viewport
}

func (r *recorder) redraw(vp fractal.Viewport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, vp)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

func newController(t *testing.T, opts ...Option) (*Controller, *recorder) {
	t.Helper()
	rec := &recorder{}
	c, err := New(start, rec.redraw, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return c, rec
}

func TestControllerDragStates(t *testing.T) {
	c, rec := newController(t)
	if c.State() != Idle {
		t.Fatalf("initial state %v", c.State())
	}

	// moves while idle do nothing
	if err := c.PointerMove(50, 50); err != nil {
		t.Fatal(err)
	}
	if rec.count() != 0 || c.Viewport() != start {
		t.Fatal("idle move changed the viewport")
	}

	if err := c.PointerDown(10, 20); err != nil {
		t.Fatal(err)
	}
	if c.State() != Dragging {
		t.Fatalf("state after down = %v", c.State())
	}
	c.PointerUp()
	if c.State() != Idle {
		t.Fatalf("state after up = %v", c.State())
	}
	if rec.count() != 0 {
		t.Fatalf("down/up requested %d redraws", rec.count())
	}
}

func TestControllerPan(t *testing.T) {
	c, rec := newController(t)
	c.PointerDown(100, 100)
	c.PointerMove(120, 90)
	c.PointerMove(140, 95)

	want := start
	want.Offset.X -= 20.0 / 200
	want.Offset.Y -= -10.0 / 200
	want.Offset.X -= 20.0 / 200
	want.Offset.Y -= 5.0 / 200
	got := c.Viewport()
	if math.Abs(got.Offset.X-want.Offset.X) > 1e-12 || math.Abs(got.Offset.Y-want.Offset.Y) > 1e-12 || got.Zoom != 200 {
		t.Fatalf("viewport = %+v, want %+v", got, want)
	}
	if rec.count() != 2 {
		t.Fatalf("%d redraws for 2 moves", rec.count())
	}
	if rec.views[1] != got {
		t.Fatalf("last redraw saw %+v, controller holds %+v", rec.views[1], got)
	}

	// a move to the same position changes nothing
	c.PointerMove(140, 95)
	if rec.count() != 2 {
		t.Fatal("zero-length move requested a redraw")
	}
}

func TestControllerScrollAnchorsZoom(t *testing.T) {
	tests := []struct {
		deltaY float64
		factor float64
	}{
		{120, ScrollDownFactor},
		{-120, ScrollUpFactor},
		{0, ScrollUpFactor},
	}
	for _, tt := range tests {
		c, rec := newController(t)
		p := types.Pointf64{X: 321, Y: 123}
		before := c.Viewport().ToPlane(p)
		if err := c.Scroll(tt.deltaY, p.X, p.Y); err != nil {
			t.Fatal(err)
		}
		vp := c.Viewport()
		if vp.Zoom != 200*tt.factor {
			t.Errorf("deltaY %v: zoom = %v, want %v", tt.deltaY, vp.Zoom, 200*tt.factor)
		}
		after := vp.ToPlane(p)
		if math.Abs(after.X-before.X) > 1e-9 || math.Abs(after.Y-before.Y) > 1e-9 {
			t.Errorf("deltaY %v: anchor moved from %v to %v", tt.deltaY, before, after)
		}
		if rec.count() != 1 {
			t.Errorf("deltaY %v: %d redraws", tt.deltaY, rec.count())
		}
	}
}

func TestControllerZoomStaysPositive(t *testing.T) {
	c, rec := newController(t, WithZoomLimits(1, 1000))
	for i := 0; i < 500; i++ {
		if err := c.Scroll(-1, 400, 300); err != nil {
			t.Fatal(err)
		}
	}
	if z := c.Viewport().Zoom; z != 1 {
		t.Fatalf("zoom after zooming out = %v, want clamped to 1", z)
	}
	n := rec.count()
	c.Scroll(-1, 400, 300)
	if rec.count() != n {
		t.Fatal("clamped scroll requested a redraw")
	}

	for i := 0; i < 500; i++ {
		c.Scroll(1, 0, 0)
	}
	if z := c.Viewport().Zoom; z != 1000 {
		t.Fatalf("zoom after zooming in = %v, want clamped to 1000", z)
	}
	if err := c.Viewport().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestControllerRejectsNonFinite(t *testing.T) {
	c, rec := newController(t)
	nan := math.NaN()
	if err := c.PointerDown(nan, 0); !errors.Is(err, ErrNonFinite) {
		t.Errorf("PointerDown(NaN) = %v", err)
	}
	c.PointerDown(0, 0)
	if err := c.PointerMove(math.Inf(1), 0); !errors.Is(err, ErrNonFinite) {
		t.Errorf("PointerMove(Inf) = %v", err)
	}
	if err := c.Scroll(nan, 1, 1); !errors.Is(err, ErrNonFinite) {
		t.Errorf("Scroll(NaN) = %v", err)
	}
	if rec.count() != 0 || c.Viewport() != start {
		t.Fatal("rejected events changed the viewport")
	}
}

func TestControllerReset(t *testing.T) {
	c, rec := newController(t)
	c.Scroll(1, 10, 10)
	c.PointerDown(0, 0)
	c.PointerMove(5, 5)
	c.Reset()
	if c.Viewport() != start || c.State() != Idle {
		t.Fatalf("after reset: %+v %v", c.Viewport(), c.State())
	}
	if rec.count() != 3 {
		t.Fatalf("%d redraws, want 3", rec.count())
	}
}

func TestControllerHandle(t *testing.T) {
	c, rec := newController(t)
	events := []Event{
		PointerDown{X: 0, Y: 0},
		PointerMove{X: 10, Y: 0},
		PointerUp{},
		PointerMove{X: 20, Y: 0},
		Scroll{DeltaY: 1, X: 5, Y: 5},
		Reset{},
	}
	for _, e := range events {
		if err := c.Handle(e); err != nil {
			t.Fatalf("Handle(%#v): %v", e, err)
		}
	}
	if rec.count() != 3 {
		t.Fatalf("%d redraws, want 3", rec.count())
	}
	if err := c.Handle(nil); err == nil {
		t.Fatal("Handle(nil) succeeded")
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	if _, err := New(fractal.Viewport{Zoom: 0}, nil); !errors.Is(err, fractal.ErrInvalidViewport) {
		t.Errorf("zero zoom: %v", err)
	}
	if _, err := New(start, nil, WithZoomLimits(0, 10)); !errors.Is(err, fractal.ErrInvalidViewport) {
		t.Errorf("zero min zoom: %v", err)
	}
	if _, err := New(start, nil, WithZoomLimits(10, 1)); !errors.Is(err, fractal.ErrInvalidViewport) {
		t.Errorf("inverted limits: %v", err)
	}
	if _, err := New(start, nil, WithZoomLimits(1, 100)); !errors.Is(err, fractal.ErrInvalidViewport) {
		t.Errorf("initial zoom above max: %v", err)
	}
}

func TestControllerConcurrentSnapshots(t *testing.T) {
	c, _ := newController(t)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			c.Scroll(float64(i%2*2-1), 400, 300)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if err := c.Viewport().Validate(); err != nil {
				t.Error(err)
				return
			}
		}
	}()
	wg.Wait()
}
