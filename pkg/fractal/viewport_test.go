package fractal

import (
	"errors"
	"math"
	"testing"

	"github.com/joshvictor1024/mandelview/pkg/types"
)

func near(a, b types.Pointf64, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

func TestViewportZoomToKeepsAnchor(t *testing.T) {
	anchors := []types.Pointf64{{0, 0}, {400, 300}, {799, 0}, {12.5, 587.25}}
	zooms := []float64{200 * 1.1, 200 * 0.9, 0.5, 1e9}
	for _, p := range anchors {
		for _, z := range zooms {
			before := testViewport.ToPlane(p)
			after := testViewport.ZoomTo(p, z)
			if after.Zoom != z {
				t.Fatalf("zoom = %v, want %v", after.Zoom, z)
			}
			if got := after.ToPlane(p); !near(got, before, 1e-9) {
				t.Errorf("anchor %v zoom %v: plane point moved from %v to %v", p, z, before, got)
			}
		}
	}
}

func TestViewportPanFollowsPointer(t *testing.T) {
	from := types.Pointf64{X: 100, Y: 50}
	to := types.Pointf64{X: 130, Y: 20}
	grabbed := testViewport.ToPlane(from)

	moved := testViewport.Pan(to.Sub(from))
	if got := moved.ToPlane(to); !near(got, grabbed, 1e-12) {
		t.Fatalf("plane point under pointer = %v, want %v", got, grabbed)
	}
	if moved.Zoom != testViewport.Zoom {
		t.Fatalf("pan changed zoom to %v", moved.Zoom)
	}
}

func TestViewportValidate(t *testing.T) {
	bad := []Viewport{
		{},
		{Zoom: -1},
		{Zoom: math.NaN()},
		{Zoom: math.Inf(1)},
		{Zoom: 1, Offset: types.Pointf64{X: math.NaN()}},
		{Zoom: 1, Offset: types.Pointf64{Y: math.Inf(-1)}},
	}
	for _, vp := range bad {
		if err := vp.Validate(); !errors.Is(err, ErrInvalidViewport) {
			t.Errorf("%+v.Validate() = %v", vp, err)
		}
	}
	if err := testViewport.Validate(); err != nil {
		t.Errorf("reference viewport rejected: %v", err)
	}
}
