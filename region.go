package scrollfx

// Measurable is any handle whose layout box can be read. Bounds returns the
// rectangle in document coordinates and whether the handle is attached and
// rendered. Reading bounds is treated as expensive: only the Measurer calls
// it, never the per-frame tick.
type Measurable interface {
	Bounds() (Rect, bool)
}

// LayoutNotifier is implemented by handles that can report their own layout
// changes (resize, move, detach/reattach). The returned func cancels the
// watch.
type LayoutNotifier interface {
	WatchLayout(fn func()) (cancel func())
}

// MeasuredRect is a region's layout box relative to its scroll container's
// content origin, plus the container's visible size at measurement time.
type MeasuredRect struct {
	Top, Bottom, Height float64
	Left, Width         float64
	ViewportHeight      float64
	ViewportWidth       float64
}

// Valid reports whether the rect came from an attached, non-empty element.
// Degenerate rects have zero height.
func (m MeasuredRect) Valid() bool {
	return m.Height > 0 && m.ViewportHeight > 0
}

// Measure reads h's layout box relative to container. An unattached,
// zero-sized or nil handle yields a degenerate rect carrying only the
// container size; it is never an error, since a later remeasure corrects it.
func Measure(h Measurable, container Rect) MeasuredRect {
	out := MeasuredRect{ViewportHeight: container.Height, ViewportWidth: container.Width}
	if h == nil {
		return out
	}
	r, ok := h.Bounds()
	if !ok || r.Height <= 0 || !finite(r.Y) || !finite(r.Height) {
		return out
	}
	out.Top = r.Y - container.Y
	out.Height = r.Height
	out.Bottom = out.Top + r.Height
	out.Left = r.X - container.X
	out.Width = r.Width
	return out
}

// TrackedRegion is a consumer's measured region and its progress domain.
// The consumer owns it; the Measurer only refreshes Rect when dirty.
type TrackedRegion struct {
	Handle     Measurable
	Start, End OffsetSpec
	// Rect is the last valid measurement. It is kept across failed
	// remeasurements so animation values hold instead of jumping.
	Rect MeasuredRect

	dirty       bool
	cancelWatch func()
	measurer    *Measurer
}

// Dirty reports whether the region is waiting for a remeasure.
func (r *TrackedRegion) Dirty() bool { return r.dirty }

// Progress maps scroll through the region's domain. See the package-level
// Progress for semantics.
func (r *TrackedRegion) Progress(scroll float64, clamp bool) ProgressSample {
	return Progress(scroll, r.Rect, r.Start, r.End, clamp)
}

// Measurer owns the set of tracked regions for one scroll container and
// remeasures them only on resize, scroll start or explicit invalidation.
type Measurer struct {
	container Rect
	regions   []*TrackedRegion
	pending   int
	reads     int
}

// NewMeasurer creates a measurer for a container whose visible area is
// container (content origin at container.X, container.Y).
func NewMeasurer(container Rect) *Measurer {
	return &Measurer{container: container}
}

// Container returns the current container rectangle.
func (m *Measurer) Container() Rect { return m.container }

// Track starts tracking h. The region begins dirty and is measured on the
// next Flush. If h implements LayoutNotifier, its layout changes mark the
// region dirty automatically.
func (m *Measurer) Track(h Measurable, start, end OffsetSpec) *TrackedRegion {
	r := &TrackedRegion{Handle: h, Start: start, End: end, measurer: m}
	if ln, ok := h.(LayoutNotifier); ok {
		r.cancelWatch = ln.WatchLayout(func() { m.Invalidate(r) })
	}
	m.regions = append(m.regions, r)
	m.markDirty(r)
	return r
}

// Untrack stops tracking r. Calling it more than once is a no-op.
func (m *Measurer) Untrack(r *TrackedRegion) {
	if r == nil || r.measurer != m {
		return
	}
	for i, x := range m.regions {
		if x == r {
			copy(m.regions[i:], m.regions[i+1:])
			m.regions[len(m.regions)-1] = nil
			m.regions = m.regions[:len(m.regions)-1]
			break
		}
	}
	if r.dirty {
		r.dirty = false
		m.pending--
	}
	if r.cancelWatch != nil {
		r.cancelWatch()
		r.cancelWatch = nil
	}
	r.measurer = nil
}

// Invalidate marks r dirty, or every region when r is nil.
func (m *Measurer) Invalidate(r *TrackedRegion) {
	if r != nil {
		if r.measurer == m {
			m.markDirty(r)
		}
		return
	}
	for _, x := range m.regions {
		m.markDirty(x)
	}
}

// Resize updates the container and invalidates every region.
func (m *Measurer) Resize(container Rect) {
	if container == m.container {
		return
	}
	m.container = container
	m.Invalidate(nil)
}

// ScrollStart remeasures every region. Called on the idle-to-scrolling
// edge so layout that shifted while idle is picked up before it matters.
func (m *Measurer) ScrollStart() {
	m.Invalidate(nil)
	m.Flush()
}

// Pending reports how many regions are waiting for a remeasure.
func (m *Measurer) Pending() int { return m.pending }

// Flush remeasures every dirty region and returns how many were read.
// A handle that is not measurable yet keeps the region's previous valid
// Rect; its next layout notification or Invalidate retries.
func (m *Measurer) Flush() int {
	if m.pending == 0 {
		return 0
	}
	n := 0
	for _, r := range m.regions {
		if !r.dirty {
			continue
		}
		mr := Measure(r.Handle, m.container)
		m.reads++
		n++
		r.dirty = false
		m.pending--
		if mr.Valid() || !r.Rect.Valid() {
			r.Rect = mr
		}
	}
	return n
}

// Measurements returns the total number of layout reads performed.
func (m *Measurer) Measurements() int { return m.reads }

func (m *Measurer) markDirty(r *TrackedRegion) {
	if !r.dirty {
		r.dirty = true
		m.pending++
	}
}
