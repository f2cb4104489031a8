package scrollfx

import "time"

// ConsumerID identifies a registered consumer. IDs are never reused within
// a Runtime.
type ConsumerID uint32

// InputFunc derives a track's input from the tick's sample and the
// consumer's last measured rect, for tracks driven by something other than
// scroll progress (pointer offset, for instance).
type InputFunc func(s Sample, r MeasuredRect) float64

// Track drives one visual property of a consumer.
type Track struct {
	Property Property
	// Interp maps the input to the output value. Nil passes the input
	// through as a unitless number.
	Interp *Interpolation
	// Input overrides the consumer's scroll progress as this track's input.
	Input InputFunc
	// Spring, when set, smooths the interpolated value toward its target.
	Spring *SpringState
}

// Consumer is a visual element's animation state: at most one tracked
// region, any number of tracks, and an optional reveal trigger. The caller
// owns it; the runtime only holds a reference while it is registered.
type Consumer struct {
	Name   string
	Region *TrackedRegion
	// Unclamped lets scroll progress extrapolate outside [0, 1].
	Unclamped bool
	Tracks    []Track
	Reveal    *RevealTrigger
	Sink      Sink
	// OnProgress, if set, receives each tick's scroll progress.
	OnProgress func(ProgressSample)
}

type runtimeEntry struct {
	id       ConsumerID
	c        *Consumer
	dead     bool
	progress ProgressSample
}

type publication struct {
	entry int
	prop  Property
	value Value
}

// TickStats describes the most recent tick.
type TickStats struct {
	Consumers int
	Tracks    int
	Published int
	Duration  time.Duration
}

// Runtime evaluates every registered consumer once per tick against a
// single sample and publishes the results in one pass. It is not safe for
// concurrent use; call it from the game loop.
type Runtime struct {
	entries []runtimeEntry
	pending []runtimeEntry
	nextID  ConsumerID
	ticking bool

	sample Sample
	pubs   []publication
	stats  TickStats
	timed  bool
	ticks  uint64
}

// NewRuntime creates an empty runtime.
func NewRuntime() *Runtime {
	return &Runtime{}
}

// Register adds c and returns its ID. During a tick the consumer is
// queued and takes part from the next tick on.
func (r *Runtime) Register(c *Consumer) ConsumerID {
	r.nextID++
	e := runtimeEntry{id: r.nextID, c: c}
	if r.ticking {
		r.pending = append(r.pending, e)
	} else {
		r.entries = append(r.entries, e)
	}
	return e.id
}

// Deregister removes a consumer. Unknown or already removed IDs are
// ignored. A consumer removed mid-tick receives nothing further, even in
// the tick that removed it.
func (r *Runtime) Deregister(id ConsumerID) {
	for i := range r.pending {
		if r.pending[i].id == id {
			r.pending = append(r.pending[:i], r.pending[i+1:]...)
			return
		}
	}
	for i := range r.entries {
		if r.entries[i].id == id {
			r.entries[i].dead = true
			r.entries[i].c = nil
			if !r.ticking {
				r.compact()
			}
			return
		}
	}
}

// Len returns the number of live consumers, including queued ones.
func (r *Runtime) Len() int {
	n := len(r.pending)
	for i := range r.entries {
		if !r.entries[i].dead {
			n++
		}
	}
	return n
}

// Progress returns the consumer's progress from the last tick.
func (r *Runtime) Progress(id ConsumerID) (ProgressSample, bool) {
	for i := range r.entries {
		if r.entries[i].id == id && !r.entries[i].dead {
			return r.entries[i].progress, true
		}
	}
	return ProgressSample{}, false
}

// Sample returns the sample used by the last tick.
func (r *Runtime) Sample() Sample { return r.sample }

// Stats returns the last tick's stats. Duration is only measured when
// timing is enabled.
func (r *Runtime) Stats() TickStats { return r.stats }

// Ticks returns the number of completed ticks.
func (r *Runtime) Ticks() uint64 { return r.ticks }

// SetTiming enables measuring tick duration.
func (r *Runtime) SetTiming(enabled bool) { r.timed = enabled }

// TickFrom reads src once and ticks with that sample.
func (r *Runtime) TickFrom(src Source, dt float64) {
	r.Tick(src.Sample(), dt)
}

// Tick evaluates every consumer against s and publishes the results. dt is
// the frame time in seconds and only affects springs.
func (r *Runtime) Tick(s Sample, dt float64) {
	var t0 time.Time
	if r.timed {
		t0 = time.Now()
	}
	r.ticking = true
	r.sample = s
	r.pubs = r.pubs[:0]
	stats := TickStats{}

	// Evaluate.
	for i := range r.entries {
		e := &r.entries[i]
		if e.dead {
			continue
		}
		c := e.c
		stats.Consumers++
		var rect MeasuredRect
		if c.Region != nil {
			rect = c.Region.Rect
			e.progress = c.Region.Progress(r.sample.Scroll, !c.Unclamped)
		}
		for j := range c.Tracks {
			tr := &c.Tracks[j]
			x := e.progress.Value
			if tr.Input != nil {
				x = tr.Input(r.sample, rect)
			}
			v := Num(x)
			if tr.Interp != nil {
				v = tr.Interp.Evaluate(x)
			}
			if tr.Spring != nil {
				v.Num = tr.Spring.Update(v.Num, dt)
			}
			stats.Tracks++
			if c.Sink != nil {
				r.pubs = append(r.pubs, publication{entry: i, prop: tr.Property, value: v})
			}
		}
	}

	// Publish.
	for _, p := range r.pubs {
		e := &r.entries[p.entry]
		if e.dead {
			continue
		}
		e.c.Sink.Apply(p.prop, p.value)
		stats.Published++
	}
	for i := range r.entries {
		e := &r.entries[i]
		if e.dead {
			continue
		}
		if e.c.OnProgress != nil {
			e.c.OnProgress(e.progress)
		}
		if e.dead {
			continue
		}
		if e.c.Reveal != nil && e.c.Region != nil {
			e.c.Reveal.ObserveRect(e.c.Region.Rect, r.sample.Scroll)
		}
	}

	r.ticking = false
	r.compact()
	if len(r.pending) > 0 {
		r.entries = append(r.entries, r.pending...)
		r.pending = r.pending[:0]
	}
	r.ticks++
	if r.timed {
		stats.Duration = time.Since(t0)
	}
	r.stats = stats
}

func (r *Runtime) compact() {
	n := 0
	for i := range r.entries {
		if !r.entries[i].dead {
			r.entries[n] = r.entries[i]
			n++
		}
	}
	for i := n; i < len(r.entries); i++ {
		r.entries[i] = runtimeEntry{}
	}
	r.entries = r.entries[:n]
}
