package fractal

import (
	"fmt"
	"math"

	"github.com/joshvictor1024/mandelview/pkg/types"
)

// Viewport maps canvas pixels to the complex plane.
// Zoom is pixels per unit; Offset is the plane coordinate of pixel (0, 0).
// Both axes share the same scale, so a non-square canvas shows a stretched view.
type Viewport struct {
	Zoom   float64
	Offset types.Pointf64
}

func (vp Viewport) Validate() error {
	if !(vp.Zoom > 0) || math.IsInf(vp.Zoom, 0) {
		return fmt.Errorf("%w: zoom %v", ErrInvalidViewport, vp.Zoom)
	}
	if !finite(vp.Offset.X) || !finite(vp.Offset.Y) {
		return fmt.Errorf("%w: offset (%v, %v)", ErrInvalidViewport, vp.Offset.X, vp.Offset.Y)
	}
	return nil
}

// ToPlane returns the plane coordinate under canvas pixel p.
func (vp Viewport) ToPlane(p types.Pointf64) types.Pointf64 {
	return types.Pointf64{
		X: p.X/vp.Zoom + vp.Offset.X,
		Y: p.Y/vp.Zoom + vp.Offset.Y,
	}
}

// Pan moves the view by a pointer delta in pixels so that the plane
// point under the pointer follows it.
func (vp Viewport) Pan(delta types.Pointf64) Viewport {
	vp.Offset.X -= delta.X / vp.Zoom
	vp.Offset.Y -= delta.Y / vp.Zoom
	return vp
}

// ZoomTo changes the zoom level keeping the plane point under anchor fixed.
func (vp Viewport) ZoomTo(anchor types.Pointf64, zoom float64) Viewport {
	vp.Offset.X += anchor.X/vp.Zoom - anchor.X/zoom
	vp.Offset.Y += anchor.Y/vp.Zoom - anchor.Y/zoom
	vp.Zoom = zoom
	return vp
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
