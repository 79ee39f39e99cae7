package types

// Pointf64 is a position in canvas pixels or on the complex plane,
// depending on context.
type Pointf64 struct {
	X, Y float64
}

func (p Pointf64) Sub(q Pointf64) Pointf64 {
	return Pointf64{X: p.X - q.X, Y: p.Y - q.Y}
}
