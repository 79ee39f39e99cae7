package viewport

import "fmt"

// Event is a pointer event in canvas pixels.
type Event interface {
	isEvent()
}

type PointerDown struct{ X, Y float64 }
type PointerMove struct{ X, Y float64 }
type PointerUp struct{}
type Scroll struct{ DeltaY, X, Y float64 }
type Reset struct{}

func (PointerDown) isEvent() {}
func (PointerMove) isEvent() {}
func (PointerUp) isEvent()   {}
func (Scroll) isEvent()      {}
func (Reset) isEvent()       {}

// Handle dispatches e to the matching Controller method.
func (c *Controller) Handle(e Event) error {
	switch e := e.(type) {
	case PointerDown:
		return c.PointerDown(e.X, e.Y)
	case PointerMove:
		return c.PointerMove(e.X, e.Y)
	case PointerUp:
		c.PointerUp()
		return nil
	case Scroll:
		return c.Scroll(e.DeltaY, e.X, e.Y)
	case Reset:
		c.Reset()
		return nil
	default:
		return fmt.Errorf("viewport: unknown event %T", e)
	}
}
