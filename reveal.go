package scrollfx

import (
	"fmt"
	"math"
)

// RevealState is the state of a visibility trigger.
type RevealState uint8

const (
	RevealPending   RevealState = iota // not yet (or no longer) revealed
	RevealTriggered                    // revealed
)

// String returns "pending" or "triggered".
func (s RevealState) String() string {
	if s == RevealTriggered {
		return "triggered"
	}
	return "pending"
}

type revealHandler struct {
	id uint32
	fn func(RevealState)
}

// RevealTrigger turns a stream of intersection ratios into Pending and
// Triggered transitions. A one-shot trigger fires once and then ignores
// every later sample. A repeatable trigger re-arms when the element is fully
// out of view.
type RevealTrigger struct {
	once      bool
	threshold float64
	margin    float64

	state    RevealState
	fired    bool
	handlers []revealHandler
	nextID   uint32
}

// NewRevealTrigger creates a trigger. once selects one-shot behavior;
// threshold is the visible fraction in [0, 1] needed to trigger (0 means
// any visible pixel); margin grows (positive) or shrinks (negative) the
// viewport in pixels before the ratio is measured.
func NewRevealTrigger(once bool, threshold, margin float64) (*RevealTrigger, error) {
	if !(threshold >= 0 && threshold <= 1) {
		return nil, fmt.Errorf("new reveal trigger: threshold %g: %w", threshold, ErrInvalidThreshold)
	}
	if !finite(margin) {
		return nil, fmt.Errorf("new reveal trigger: margin %g: %w", margin, ErrInvalidValue)
	}
	return &RevealTrigger{once: once, threshold: threshold, margin: margin}, nil
}

// Once reports whether the trigger is one-shot.
func (t *RevealTrigger) Once() bool { return t.once }

// Threshold returns the visible fraction needed to trigger.
func (t *RevealTrigger) Threshold() float64 { return t.threshold }

// Margin returns the viewport margin in pixels.
func (t *RevealTrigger) Margin() float64 { return t.margin }

// State returns the current state.
func (t *RevealTrigger) State() RevealState { return t.state }

// Subscribe registers fn to be called once per state transition. The
// returned func removes it; calling it twice is harmless.
func (t *RevealTrigger) Subscribe(fn func(RevealState)) (unsubscribe func()) {
	t.nextID++
	id := t.nextID
	t.handlers = append(t.handlers, revealHandler{id: id, fn: fn})
	return func() {
		for i := range t.handlers {
			if t.handlers[i].id == id {
				copy(t.handlers[i:], t.handlers[i+1:])
				t.handlers[len(t.handlers)-1] = revealHandler{}
				t.handlers = t.handlers[:len(t.handlers)-1]
				return
			}
		}
	}
}

// Observe feeds one intersection ratio and returns the resulting state.
// Identical consecutive states never notify, so jittery samples around the
// threshold produce one notification per real transition.
func (t *RevealTrigger) Observe(ratio float64) RevealState {
	if t.once && t.fired {
		return t.state
	}
	if !finite(ratio) {
		return t.state
	}
	next := t.state
	switch t.state {
	case RevealPending:
		if ratio > 0 && ratio >= t.threshold {
			next = RevealTriggered
		}
	case RevealTriggered:
		if ratio <= 0 {
			next = RevealPending
		}
	}
	if next == t.state {
		return t.state
	}
	t.state = next
	if next == RevealTriggered {
		t.fired = true
	}
	t.notify(next)
	return t.state
}

// ObserveRect computes the intersection ratio of r at the given scroll
// offset using the trigger's margin, then observes it.
func (t *RevealTrigger) ObserveRect(r MeasuredRect, scroll float64) RevealState {
	if !r.Valid() {
		return t.state
	}
	return t.Observe(IntersectionRatio(r, scroll, r.ViewportHeight, t.margin))
}

func (t *RevealTrigger) notify(s RevealState) {
	// Handlers may unsubscribe themselves.
	hs := append([]revealHandler(nil), t.handlers...)
	for _, h := range hs {
		h.fn(s)
	}
}

// IntersectionRatio returns the fraction of r's height inside the viewport
// [−margin, viewportH+margin] at the given scroll offset. A degenerate rect
// yields 0.
func IntersectionRatio(r MeasuredRect, scroll, viewportH, margin float64) float64 {
	if r.Height <= 0 || viewportH <= 0 {
		return 0
	}
	top := r.Top - scroll
	bottom := r.Bottom - scroll
	lo := math.Max(top, -margin)
	hi := math.Min(bottom, viewportH+margin)
	if hi <= lo {
		return 0
	}
	return clamp01((hi - lo) / r.Height)
}
