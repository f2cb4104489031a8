package scrollfx

import "testing"

// fakeHandle is a Measurable that counts reads.
type fakeHandle struct {
	rect     Rect
	attached bool
	reads    int
}

func (h *fakeHandle) Bounds() (Rect, bool) {
	h.reads++
	return h.rect, h.attached
}

var testContainer = Rect{Width: 1000, Height: 800}

// --- Measure ---

func TestMeasureRelativeToContainer(t *testing.T) {
	h := &fakeHandle{rect: Rect{X: 30, Y: 1200, Width: 200, Height: 400}, attached: true}
	m := Measure(h, Rect{X: 10, Y: 100, Width: 1000, Height: 800})
	if m.Top != 1100 || m.Bottom != 1500 || m.Height != 400 || m.Left != 20 || m.Width != 200 {
		t.Errorf("Measure = %+v", m)
	}
	if m.ViewportHeight != 800 || m.ViewportWidth != 1000 {
		t.Errorf("viewport = %vx%v", m.ViewportWidth, m.ViewportHeight)
	}
	if !m.Valid() {
		t.Error("Valid = false")
	}
}

func TestMeasureDegenerate(t *testing.T) {
	cases := map[string]Measurable{
		"nil":        nil,
		"unattached": &fakeHandle{rect: Rect{Y: 10, Height: 50}},
		"zero size":  &fakeHandle{rect: Rect{Y: 10}, attached: true},
	}
	for name, h := range cases {
		m := Measure(h, testContainer)
		if m.Valid() {
			t.Errorf("%s: Valid = true", name)
		}
		if m.ViewportHeight != 800 {
			t.Errorf("%s: ViewportHeight = %v, want 800", name, m.ViewportHeight)
		}
	}
}

// --- Measurer ---

func TestMeasurerMeasuresOnlyWhenDirty(t *testing.T) {
	h := &fakeHandle{rect: Rect{Y: 1200, Width: 100, Height: 400}, attached: true}
	m := NewMeasurer(testContainer)
	r := m.Track(h, OffsetStartEnd, OffsetEndStart)
	if !r.Dirty() || m.Pending() != 1 {
		t.Fatalf("new region: dirty=%v pending=%d", r.Dirty(), m.Pending())
	}
	if n := m.Flush(); n != 1 {
		t.Errorf("Flush = %d, want 1", n)
	}
	for i := 0; i < 100; i++ {
		m.Flush()
		_ = r.Progress(float64(i*10), true)
	}
	if h.reads != 1 {
		t.Errorf("reads = %d, want 1", h.reads)
	}
	if m.Measurements() != 1 {
		t.Errorf("Measurements = %d, want 1", m.Measurements())
	}
}

func TestMeasurerInvalidate(t *testing.T) {
	a := &fakeHandle{rect: Rect{Y: 100, Height: 100}, attached: true}
	b := &fakeHandle{rect: Rect{Y: 300, Height: 100}, attached: true}
	m := NewMeasurer(testContainer)
	ra := m.Track(a, OffsetStartEnd, OffsetEndStart)
	m.Track(b, OffsetStartEnd, OffsetEndStart)
	m.Flush()

	a.rect.Y = 150
	m.Invalidate(ra)
	if m.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", m.Pending())
	}
	m.Flush()
	if ra.Rect.Top != 150 {
		t.Errorf("Top = %v, want 150", ra.Rect.Top)
	}
	if a.reads != 2 || b.reads != 1 {
		t.Errorf("reads = %d/%d, want 2/1", a.reads, b.reads)
	}

	m.Invalidate(nil)
	if m.Pending() != 2 {
		t.Errorf("Pending after Invalidate(nil) = %d, want 2", m.Pending())
	}
}

func TestMeasurerResize(t *testing.T) {
	h := &fakeHandle{rect: Rect{Y: 100, Height: 100}, attached: true}
	m := NewMeasurer(testContainer)
	r := m.Track(h, OffsetStartEnd, OffsetEndStart)
	m.Flush()

	m.Resize(testContainer)
	if m.Pending() != 0 {
		t.Error("same-size Resize should not invalidate")
	}
	m.Resize(Rect{Width: 500, Height: 400})
	if m.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", m.Pending())
	}
	m.Flush()
	if r.Rect.ViewportHeight != 400 {
		t.Errorf("ViewportHeight = %v, want 400", r.Rect.ViewportHeight)
	}
}

func TestMeasurerScrollStartRemeasures(t *testing.T) {
	h := &fakeHandle{rect: Rect{Y: 100, Height: 100}, attached: true}
	m := NewMeasurer(testContainer)
	r := m.Track(h, OffsetStartEnd, OffsetEndStart)
	m.Flush()

	// Layout shifted without notification.
	h.rect.Y = 400
	m.ScrollStart()
	if r.Rect.Top != 400 {
		t.Errorf("Top = %v, want 400", r.Rect.Top)
	}
	if m.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", m.Pending())
	}
}

func TestMeasurerKeepsLastValidRect(t *testing.T) {
	h := &fakeHandle{rect: Rect{Y: 100, Height: 100}, attached: true}
	m := NewMeasurer(testContainer)
	r := m.Track(h, OffsetStartEnd, OffsetEndStart)
	m.Flush()

	h.attached = false
	m.Invalidate(r)
	m.Flush()
	if !r.Rect.Valid() || r.Rect.Top != 100 {
		t.Errorf("Rect = %+v, want previous valid rect", r.Rect)
	}
	if r.Dirty() {
		t.Error("failed remeasure should not leave the region dirty")
	}
}

func TestMeasurerUnattachedFirstMeasurement(t *testing.T) {
	h := &fakeHandle{rect: Rect{Y: 100, Height: 100}}
	m := NewMeasurer(testContainer)
	r := m.Track(h, OffsetStartEnd, OffsetEndStart)
	m.Flush()
	if r.Rect.Valid() {
		t.Error("unattached handle produced a valid rect")
	}
	if p := r.Progress(500, true); p != (ProgressSample{}) {
		t.Errorf("Progress = %+v, want zero", p)
	}
}

func TestMeasurerUntrackIdempotent(t *testing.T) {
	h := &fakeHandle{rect: Rect{Y: 100, Height: 100}, attached: true}
	m := NewMeasurer(testContainer)
	r := m.Track(h, OffsetStartEnd, OffsetEndStart)
	m.Untrack(r)
	m.Untrack(r)
	if m.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", m.Pending())
	}
	m.Invalidate(r)
	if m.Pending() != 0 {
		t.Error("Invalidate on an untracked region marked it dirty")
	}
	if m.Flush() != 0 || h.reads != 0 {
		t.Error("untracked region was measured")
	}
}

func TestMeasurerFollowsNodeLayout(t *testing.T) {
	p := NewPage(1000, 800)
	n := NewNode("box", 100, 100)
	n.SetLayout(0, 500, 100, 100)
	p.Root().AddChild(n)

	m := p.Measurer()
	r := m.Track(n, OffsetStartEnd, OffsetEndStart)
	m.Flush()
	if r.Rect.Top != 500 {
		t.Fatalf("Top = %v, want 500", r.Rect.Top)
	}

	n.SetLayout(0, 700, 100, 100)
	if !r.Dirty() {
		t.Fatal("SetLayout did not dirty the region")
	}
	m.Flush()
	if r.Rect.Top != 700 {
		t.Errorf("Top = %v, want 700", r.Rect.Top)
	}

	// Moving an ancestor dirties descendants too.
	holder := NewContainer("holder")
	p.Root().AddChild(holder)
	holder.AddChild(n)
	m.Flush()
	holder.SetLayout(0, 50, 0, 0)
	if !r.Dirty() {
		t.Fatal("ancestor SetLayout did not dirty the region")
	}
	m.Flush()
	if r.Rect.Top != 750 {
		t.Errorf("Top = %v, want 750", r.Rect.Top)
	}
}
