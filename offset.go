package scrollfx

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Edge is a position along an axis as a fraction of the element's (or
// container's) size: 0 is the start edge, 1 the end edge.
type Edge float64

const (
	EdgeStart  Edge = 0
	EdgeCenter Edge = 0.5
	EdgeEnd    Edge = 1
)

// OffsetSpec names the moment a region's Target edge meets the container's
// Container edge. A pair of specs bounds the scroll domain a progress value
// sweeps over.
type OffsetSpec struct {
	Target    Edge
	Container Edge
}

// Common offsets, named "<target> <container>".
var (
	// OffsetStartEnd: region top reaches the viewport bottom (entering).
	OffsetStartEnd = OffsetSpec{EdgeStart, EdgeEnd}
	// OffsetEndStart: region bottom reaches the viewport top (leaving).
	OffsetEndStart = OffsetSpec{EdgeEnd, EdgeStart}
	// OffsetStartStart: region top reaches the viewport top.
	OffsetStartStart = OffsetSpec{EdgeStart, EdgeStart}
	// OffsetEndEnd: region bottom reaches the viewport bottom.
	OffsetEndEnd = OffsetSpec{EdgeEnd, EdgeEnd}
	// OffsetCenterCenter: region center reaches the viewport center.
	OffsetCenterCenter = OffsetSpec{EdgeCenter, EdgeCenter}
)

// ParseOffset parses "<target> <container>" where each side is "start",
// "center", "end" or a fraction such as "0.25".
func ParseOffset(s string) (OffsetSpec, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return OffsetSpec{}, fmt.Errorf("parse offset %q: %w", s, ErrInvalidOffset)
	}
	t, err := parseEdge(fields[0])
	if err != nil {
		return OffsetSpec{}, fmt.Errorf("parse offset %q: %w", s, err)
	}
	c, err := parseEdge(fields[1])
	if err != nil {
		return OffsetSpec{}, fmt.Errorf("parse offset %q: %w", s, err)
	}
	return OffsetSpec{Target: t, Container: c}, nil
}

func parseEdge(tok string) (Edge, error) {
	switch tok {
	case "start":
		return EdgeStart, nil
	case "center":
		return EdgeCenter, nil
	case "end":
		return EdgeEnd, nil
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil || !finite(f) {
		return 0, ErrInvalidOffset
	}
	return Edge(f), nil
}

// String formats o the way ParseOffset reads it.
func (o OffsetSpec) String() string {
	return edgeString(o.Target) + " " + edgeString(o.Container)
}

func edgeString(e Edge) string {
	switch e {
	case EdgeStart:
		return "start"
	case EdgeCenter:
		return "center"
	case EdgeEnd:
		return "end"
	}
	return strconv.FormatFloat(float64(e), 'g', -1, 64)
}

// ScrollAt returns the scroll offset at which o's region edge meets its
// container edge for the measured rect r.
func (o OffsetSpec) ScrollAt(r MeasuredRect) float64 {
	return r.Top + float64(o.Target)*r.Height - float64(o.Container)*r.ViewportHeight
}

// ProgressSample is one frame's progress for a region. Clamped is true when
// the scroll position lay outside the domain and the value was pinned.
type ProgressSample struct {
	Value   float64
	Clamped bool
}

// Progress converts scroll into a progress value for region r over the
// domain [start.ScrollAt(r), end.ScrollAt(r)]. With clamp it is pinned to
// exactly 0 below and 1 above the domain; without, it extrapolates linearly.
// A degenerate rect or empty domain yields 0. Progress has no hidden state.
func Progress(scroll float64, r MeasuredRect, start, end OffsetSpec, clamp bool) ProgressSample {
	if !r.Valid() || !finite(scroll) {
		return ProgressSample{}
	}
	s0 := start.ScrollAt(r)
	s1 := end.ScrollAt(r)
	span := s1 - s0
	if span == 0 || !finite(span) {
		return ProgressSample{}
	}
	v := (scroll - s0) / span
	if !clamp {
		return ProgressSample{Value: v}
	}
	switch {
	case v < 0:
		return ProgressSample{Value: 0, Clamped: true}
	case v > 1:
		return ProgressSample{Value: 1, Clamped: true}
	}
	return ProgressSample{Value: math.Max(0, math.Min(1, v))}
}
