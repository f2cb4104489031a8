package scrollfx

// Sample is the scroll and pointer state read once at the start of a tick.
// Every consumer evaluated in that tick sees the same copy.
type Sample struct {
	// Scroll is the container's vertical scroll offset in pixels.
	Scroll float64
	// Viewport is the container's visible rectangle.
	Viewport Rect
	// Pointer is the pointer position in viewport coordinates.
	Pointer Vec2
	// PointerInside is false when the pointer is outside the window.
	PointerInside bool
}

// PointerDoc returns the pointer in document (content) coordinates.
func (s Sample) PointerDoc() Vec2 {
	return Vec2{X: s.Pointer.X, Y: s.Pointer.Y + s.Scroll}
}

// Source supplies the current sample. It is read once per tick.
type Source interface {
	Sample() Sample
}

// StaticSource always returns the same sample. Useful in tests and for
// rendering a fixed scroll position.
type StaticSource struct {
	S Sample
}

// Sample implements Source.
func (s *StaticSource) Sample() Sample { return s.S }

// Sink receives a consumer's published values for the next paint.
type Sink interface {
	Apply(prop Property, v Value)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(prop Property, v Value)

// Apply implements Sink.
func (f SinkFunc) Apply(prop Property, v Value) { f(prop, v) }
