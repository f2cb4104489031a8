package scrollfx

import (
	"errors"
	"testing"
)

func rectAt(top, height, viewportH float64) MeasuredRect {
	return MeasuredRect{Top: top, Bottom: top + height, Height: height, Width: 100, ViewportHeight: viewportH, ViewportWidth: 100}
}

// --- ParseOffset ---

func TestParseOffsetKeywords(t *testing.T) {
	cases := map[string]OffsetSpec{
		"start end":     OffsetStartEnd,
		"end start":     OffsetEndStart,
		"start start":   OffsetStartStart,
		"end end":       OffsetEndEnd,
		"center center": OffsetCenterCenter,
		"0.25 1":        {Target: 0.25, Container: 1},
		"  start   end": OffsetStartEnd,
	}
	for in, want := range cases {
		got, err := ParseOffset(in)
		if err != nil {
			t.Errorf("ParseOffset(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseOffset(%q) = %+v, want %+v", in, got, want)
		}
	}
}

func TestParseOffsetErrors(t *testing.T) {
	for _, in := range []string{"", "start", "start end center", "top bottom", "NaN end"} {
		if _, err := ParseOffset(in); !errors.Is(err, ErrInvalidOffset) {
			t.Errorf("ParseOffset(%q) error = %v, want ErrInvalidOffset", in, err)
		}
	}
}

func TestOffsetStringRoundTrip(t *testing.T) {
	for _, o := range []OffsetSpec{OffsetStartEnd, OffsetCenterCenter, {Target: 0.3, Container: 0.7}} {
		got, err := ParseOffset(o.String())
		if err != nil || got != o {
			t.Errorf("ParseOffset(%q) = %+v, %v", o.String(), got, err)
		}
	}
}

// --- ScrollAt ---

func TestScrollAt(t *testing.T) {
	r := rectAt(1200, 400, 800)
	if got := OffsetStartEnd.ScrollAt(r); got != 400 {
		t.Errorf("start end = %v, want 400", got)
	}
	if got := OffsetEndStart.ScrollAt(r); got != 1600 {
		t.Errorf("end start = %v, want 1600", got)
	}
	if got := OffsetStartStart.ScrollAt(r); got != 1200 {
		t.Errorf("start start = %v, want 1200", got)
	}
	if got := OffsetEndEnd.ScrollAt(r); got != 800 {
		t.Errorf("end end = %v, want 800", got)
	}
	if got := OffsetCenterCenter.ScrollAt(r); got != 1000 {
		t.Errorf("center center = %v, want 1000", got)
	}
}

// --- Progress ---

func TestProgressClampsExactly(t *testing.T) {
	r := rectAt(1200, 400, 800)
	below := Progress(0, r, OffsetStartEnd, OffsetEndStart, true)
	if below.Value != 0 || !below.Clamped {
		t.Errorf("below = %+v, want exactly 0 clamped", below)
	}
	above := Progress(5000, r, OffsetStartEnd, OffsetEndStart, true)
	if above.Value != 1 || !above.Clamped {
		t.Errorf("above = %+v, want exactly 1 clamped", above)
	}
	mid := Progress(1000, r, OffsetStartEnd, OffsetEndStart, true)
	if mid.Value != 0.5 || mid.Clamped {
		t.Errorf("mid = %+v, want 0.5 unclamped", mid)
	}
}

func TestProgressUnclampedExtrapolates(t *testing.T) {
	r := rectAt(1200, 400, 800)
	got := Progress(2800, r, OffsetStartEnd, OffsetEndStart, false)
	if got.Value != 2 || got.Clamped {
		t.Errorf("unclamped = %+v, want 2", got)
	}
	got = Progress(-800, r, OffsetStartEnd, OffsetEndStart, false)
	if got.Value != -1 {
		t.Errorf("unclamped below = %+v, want -1", got)
	}
}

func TestProgressNonDecreasing(t *testing.T) {
	r := rectAt(700, 350, 600)
	pairs := [][2]OffsetSpec{
		{OffsetStartEnd, OffsetEndStart},
		{OffsetStartStart, OffsetEndEnd},
		{OffsetStartStart, OffsetEndStart},
		{OffsetCenterCenter, OffsetEndStart},
	}
	for _, pr := range pairs {
		prev := -1.0
		for s := -200.0; s <= 2000; s += 7 {
			p := Progress(s, r, pr[0], pr[1], true).Value
			if p < prev {
				t.Fatalf("%v..%v: progress decreased at scroll %v: %v < %v", pr[0], pr[1], s, p, prev)
			}
			if p < 0 || p > 1 {
				t.Fatalf("%v..%v: progress %v outside [0,1]", pr[0], pr[1], p)
			}
			prev = p
		}
	}
}

func TestProgressDegenerate(t *testing.T) {
	zero := MeasuredRect{ViewportHeight: 800}
	if got := Progress(100, zero, OffsetStartEnd, OffsetEndStart, true); got != (ProgressSample{}) {
		t.Errorf("zero-height rect = %+v, want zero sample", got)
	}
	// Region as tall as the viewport: start end..end end is still a real
	// domain, but start start..end end is empty.
	r := rectAt(1000, 800, 800)
	if got := Progress(1000, r, OffsetStartStart, OffsetEndEnd, true); got != (ProgressSample{}) {
		t.Errorf("empty domain = %+v, want zero sample", got)
	}
}

func TestProgressEndToEndSweep(t *testing.T) {
	// Region 400 tall in an 800 viewport. Top meets the viewport bottom at
	// scroll 400; bottom meets the viewport top at scroll 1600.
	r := rectAt(1200, 400, 800)
	start := Progress(400, r, OffsetStartEnd, OffsetEndStart, true)
	end := Progress(1600, r, OffsetStartEnd, OffsetEndStart, true)
	if start.Value != 0 || end.Value != 1 {
		t.Fatalf("sweep endpoints = %v..%v, want exactly 0..1", start.Value, end.Value)
	}
	prev := 0.0
	const steps = 1200
	for i := 1; i <= steps; i++ {
		s := 400 + float64(i)
		p := Progress(s, r, OffsetStartEnd, OffsetEndStart, true).Value
		if p < prev {
			t.Fatalf("not monotonic at %v", s)
		}
		// One pixel of scroll moves progress by exactly 1/1200.
		if !approxEqual(p-prev, 1.0/steps, 1e-9) {
			t.Fatalf("discontinuity at scroll %v: step %v", s, p-prev)
		}
		prev = p
	}
}
