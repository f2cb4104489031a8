package scrollfx

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	defaultScrollLerp      = 0.1
	defaultWheelMultiplier = 100.0
	// scrollIdleTicks is how many unmoving ticks end a scroll gesture.
	scrollIdleTicks = 6
	// scrollRestDelta snaps the smoothed offset onto its target.
	scrollRestDelta = 0.1
)

// Viewport is the page's scroll container: a window of Width x Height onto
// a document ContentHeight tall. Wheel input moves a target offset and the
// visible offset eases toward it each tick, the way smooth-scroll wrappers
// do. ScrollTo runs a timed tween instead.
type Viewport struct {
	// Scroll is the visible scroll offset. Read it; move it with ScrollBy,
	// ScrollTo or JumpTo.
	Scroll float64
	// Width and Height are the visible size. Change them with Resize.
	Width, Height float64
	// ContentHeight is the document height. Scroll is clamped to
	// [0, ContentHeight-Height].
	ContentHeight float64

	// Lerp is the fraction of the remaining distance covered per tick
	// (1 snaps immediately).
	Lerp float64
	// WheelMultiplier converts one wheel notch to pixels.
	WheelMultiplier float64

	target      float64
	scrollTween *gween.Tween
	scrolling   bool
	idle        int
	last        float64 // Scroll at the end of the previous update
}

// ViewportConfig holds optional viewport settings. Zero values use the
// defaults.
type ViewportConfig struct {
	Lerp            float64
	WheelMultiplier float64
}

// NewViewport creates a viewport of the given visible size.
func NewViewport(width, height float64, cfg ViewportConfig) *Viewport {
	v := &Viewport{
		Width:           width,
		Height:          height,
		Lerp:            cfg.Lerp,
		WheelMultiplier: cfg.WheelMultiplier,
	}
	if v.Lerp <= 0 || v.Lerp > 1 {
		v.Lerp = defaultScrollLerp
	}
	if v.WheelMultiplier == 0 {
		v.WheelMultiplier = defaultWheelMultiplier
	}
	return v
}

// Rect returns the container rect regions are measured against: the
// content origin with the visible size.
func (v *Viewport) Rect() Rect {
	return Rect{Width: v.Width, Height: v.Height}
}

// MaxScroll returns the largest valid scroll offset.
func (v *Viewport) MaxScroll() float64 {
	return math.Max(0, v.ContentHeight-v.Height)
}

// Target returns the offset the viewport is easing toward.
func (v *Viewport) Target() float64 { return v.target }

// Scrolling reports whether a scroll gesture is in progress.
func (v *Viewport) Scrolling() bool { return v.scrolling }

// ScrollBy moves the target by wheel notches (positive scrolls down).
// Cancels any ScrollTo in progress.
func (v *Viewport) ScrollBy(notches float64) {
	if notches == 0 || !finite(notches) {
		return
	}
	v.scrollTween = nil
	v.target = v.clamp(v.target + notches*v.WheelMultiplier)
}

// ScrollTo animates to y over duration seconds.
func (v *Viewport) ScrollTo(y float64, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.OutCubic
	}
	y = v.clamp(y)
	v.target = y
	v.scrollTween = gween.New(float32(v.Scroll), float32(y), duration, easeFn)
}

// JumpTo moves to y immediately, without smoothing.
func (v *Viewport) JumpTo(y float64) {
	v.scrollTween = nil
	v.target = v.clamp(y)
	v.Scroll = v.target
}

// Resize changes the visible size and re-clamps the offsets.
func (v *Viewport) Resize(width, height float64) {
	v.Width, v.Height = width, height
	v.target = v.clamp(v.target)
	v.Scroll = v.clamp(v.Scroll)
}

// SetContentHeight changes the document height and re-clamps the offsets.
func (v *Viewport) SetContentHeight(h float64) {
	v.ContentHeight = h
	v.target = v.clamp(v.target)
	v.Scroll = v.clamp(v.Scroll)
}

// update advances smoothing or the scroll tween. It reports whether a new
// scroll gesture started since the previous update, counting jumps made
// between updates. Called from Page.Step.
func (v *Viewport) update(dt float32) (started bool) {
	prev := v.last
	defer func() { v.last = v.Scroll }()

	if v.scrollTween != nil {
		val, done := v.scrollTween.Update(dt)
		v.Scroll = v.clamp(float64(val))
		if done {
			v.Scroll = v.target
			v.scrollTween = nil
		}
	} else if v.Scroll != v.target {
		v.Scroll += (v.target - v.Scroll) * v.Lerp
		if math.Abs(v.target-v.Scroll) < scrollRestDelta {
			v.Scroll = v.target
		}
	}

	if v.Scroll != prev {
		v.idle = 0
		if !v.scrolling {
			v.scrolling = true
			return true
		}
		return false
	}
	if v.scrolling {
		v.idle++
		if v.idle >= scrollIdleTicks {
			v.scrolling = false
		}
	}
	return false
}

func (v *Viewport) clamp(y float64) float64 {
	return math.Max(0, math.Min(y, v.MaxScroll()))
}
