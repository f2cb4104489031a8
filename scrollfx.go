package scrollfx

import (
	"errors"
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default fill (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// Vec2 is a 2D vector used for positions, offsets and pointer coordinates.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Top returns the top edge.
func (r Rect) Top() float64 { return r.Y }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Property identifies the visual property a track drives on a Sink.
type Property uint8

const (
	PropTranslateX Property = iota // horizontal offset from layout position
	PropTranslateY                 // vertical offset from layout position
	PropScale                      // uniform scale around the node center
	PropRotate                     // in-plane rotation
	PropRotateX                    // tilt around the horizontal axis
	PropRotateY                    // tilt around the vertical axis
	PropOpacity                    // alpha multiplier in [0, 1]
	PropWidth                      // drawn width, % of the layout width
)

var propertyNames = [...]string{
	PropTranslateX: "x",
	PropTranslateY: "y",
	PropScale:      "scale",
	PropRotate:     "rotate",
	PropRotateX:    "rotateX",
	PropRotateY:    "rotateY",
	PropOpacity:    "opacity",
	PropWidth:      "width",
}

// String returns the property's style name ("x", "opacity", ...).
func (p Property) String() string {
	if int(p) < len(propertyNames) {
		return propertyNames[p]
	}
	return "unknown"
}

// ParseProperty maps a style name back to its Property.
func ParseProperty(name string) (Property, bool) {
	for i, n := range propertyNames {
		if n == name {
			return Property(i), true
		}
	}
	return 0, false
}

// Configuration errors. Constructors wrap these with context; match them
// with errors.Is.
var (
	ErrTooFewBreakpoints = errors.New("scrollfx: interpolation needs at least two breakpoints")
	ErrBreakpointOrder   = errors.New("scrollfx: breakpoint domains must be strictly increasing")
	ErrUnitMismatch      = errors.New("scrollfx: breakpoint outputs mix units")
	ErrInvalidValue      = errors.New("scrollfx: invalid value")
	ErrInvalidSpring     = errors.New("scrollfx: invalid spring parameters")
	ErrInvalidThreshold  = errors.New("scrollfx: reveal threshold must be in [0, 1]")
	ErrInvalidOffset     = errors.New("scrollfx: invalid offset")
)

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
