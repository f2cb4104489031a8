package scrollfx

import (
	"fmt"

	"github.com/tanema/gween/ease"
)

// Ready-made effects. Each builds a Consumer targeting one node, attaches
// it to the page and returns the binding. Bindings detach themselves when
// their target node is disposed.

// ParallaxOptions configures Parallax. Zero values use the defaults.
type ParallaxOptions struct {
	// Distance is how far the target travels each way, in percent of its
	// own height. Default 10.
	Distance float64
	// Zoom is the extra scale at both ends of the pass. Default 0.1; a
	// negative value disables zooming.
	Zoom float64
	// Spring, when set, smooths the motion.
	Spring *SpringConfig
}

// Parallax moves target from -Distance% to +Distance% of its height while
// region passes through the viewport (start end to end start), zooming out
// and back in around the midpoint.
func (p *Page) Parallax(target, region *Node, opt ParallaxOptions) (*Binding, error) {
	if opt.Distance == 0 {
		opt.Distance = 10
	}
	if opt.Zoom == 0 {
		opt.Zoom = 0.1
	}
	y, err := NewInterpolation([]float64{0, 1}, []Value{Percent(-opt.Distance), Percent(opt.Distance)})
	if err != nil {
		return nil, fmt.Errorf("parallax: %w", err)
	}
	c := &Consumer{Name: "parallax:" + target.Name, Sink: target}
	if err := c.addTrack(PropTranslateY, y, opt.Spring); err != nil {
		return nil, fmt.Errorf("parallax: %w", err)
	}
	if opt.Zoom > 0 {
		scale, err := NewInterpolation([]float64{0, 0.5, 1}, []Value{Num(1 + opt.Zoom), Num(1), Num(1 + opt.Zoom)})
		if err != nil {
			return nil, fmt.Errorf("parallax: %w", err)
		}
		if err := c.addTrack(PropScale, scale, opt.Spring); err != nil {
			return nil, fmt.Errorf("parallax: %w", err)
		}
	}
	return p.bind(c, target, region, OffsetStartEnd, OffsetEndStart), nil
}

// HeroFade fades, shrinks and lowers target as region scrolls out of the
// top of the viewport (start start to end start). The effect completes at
// half the pass: opacity 1 to 0, scale 1 to 0.95, y 0 to drop pixels.
func (p *Page) HeroFade(target, region *Node, drop float64) (*Binding, error) {
	domain := []float64{0, 0.5}
	opacity, err := NewInterpolation(domain, []Value{Num(1), Num(0)})
	if err != nil {
		return nil, fmt.Errorf("hero fade: %w", err)
	}
	scale, err := NewInterpolation(domain, []Value{Num(1), Num(0.95)})
	if err != nil {
		return nil, fmt.Errorf("hero fade: %w", err)
	}
	y, err := NewInterpolation(domain, []Value{Px(0), Px(drop)})
	if err != nil {
		return nil, fmt.Errorf("hero fade: %w", err)
	}
	c := &Consumer{
		Name: "hero:" + target.Name,
		Sink: target,
		Tracks: []Track{
			{Property: PropOpacity, Interp: opacity},
			{Property: PropScale, Interp: scale},
			{Property: PropTranslateY, Interp: y},
		},
	}
	return p.bind(c, target, region, OffsetStartStart, OffsetEndStart), nil
}

// ProgressBar fills bar from 0% to 100% of its width as region's progress
// runs from 0 to 1 between start and end. A spring, if given, smooths the
// fill.
func (p *Page) ProgressBar(bar, region *Node, start, end OffsetSpec, spring *SpringConfig) (*Binding, error) {
	width, err := NewInterpolation([]float64{0, 1}, []Value{Percent(0), Percent(100)})
	if err != nil {
		return nil, fmt.Errorf("progress bar: %w", err)
	}
	c := &Consumer{Name: "progress:" + bar.Name, Sink: bar}
	if err := c.addTrack(PropWidth, width, spring); err != nil {
		return nil, fmt.Errorf("progress bar: %w", err)
	}
	return p.bind(c, bar, region, start, end), nil
}

// Marquee slides row horizontally by half its width while region passes
// through the viewport: 0% to -50%, or -50% to 0% when reverse is set.
// Rows are expected to hold their content twice so the slide reads as
// continuous.
func (p *Page) Marquee(row, region *Node, reverse bool) (*Binding, error) {
	from, to := Percent(0), Percent(-50)
	if reverse {
		from, to = to, from
	}
	x, err := NewInterpolation([]float64{0, 1}, []Value{from, to})
	if err != nil {
		return nil, fmt.Errorf("marquee: %w", err)
	}
	c := &Consumer{
		Name:   "marquee:" + row.Name,
		Sink:   row,
		Tracks: []Track{{Property: PropTranslateX, Interp: x}},
	}
	return p.bind(c, row, region, OffsetStartEnd, OffsetEndStart), nil
}

// HorizontalTrack translates track left by travel pixels while section is
// pinned (start start to end end), turning vertical scroll into sideways
// motion.
func (p *Page) HorizontalTrack(track, section *Node, travel float64) (*Binding, error) {
	x, err := NewInterpolation([]float64{0, 1}, []Value{Px(0), Px(-travel)})
	if err != nil {
		return nil, fmt.Errorf("horizontal track: %w", err)
	}
	c := &Consumer{
		Name:   "track:" + track.Name,
		Sink:   track,
		Tracks: []Track{{Property: PropTranslateX, Interp: x}},
	}
	return p.bind(c, track, section, OffsetStartStart, OffsetEndEnd), nil
}

// TiltRange is the pointer offset from a card's center, in pixels, at
// which Tilt reaches its full angle. Farther offsets hold that angle.
const TiltRange = 100.0

// Tilt rotates card toward the pointer while it hovers the card, up to
// maxDeg about each axis once the pointer is TiltRange pixels from the
// card's center, and springs back to flat when the pointer leaves.
func (p *Page) Tilt(card *Node, maxDeg float64, spring SpringConfig) (*Binding, error) {
	if err := spring.Validate(); err != nil {
		return nil, fmt.Errorf("tilt: %w", err)
	}
	if card.Width <= 0 || card.Height <= 0 {
		return nil, fmt.Errorf("tilt: card %q has no size: %w", card.Name, ErrInvalidValue)
	}
	// Pointer below center tips the top edge away: negative rotateX.
	rx, err := NewInterpolation([]float64{-TiltRange, TiltRange}, []Value{Deg(maxDeg), Deg(-maxDeg)})
	if err != nil {
		return nil, fmt.Errorf("tilt: %w", err)
	}
	ry, err := NewInterpolation([]float64{-TiltRange, TiltRange}, []Value{Deg(-maxDeg), Deg(maxDeg)})
	if err != nil {
		return nil, fmt.Errorf("tilt: %w", err)
	}
	sx, _ := NewSpring(spring, 0)
	sy, _ := NewSpring(spring, 0)
	c := &Consumer{
		Name: "tilt:" + card.Name,
		Sink: card,
		Tracks: []Track{
			{Property: PropRotateX, Interp: rx, Input: PointerOffset(false), Spring: sx},
			{Property: PropRotateY, Interp: ry, Input: PointerOffset(true), Spring: sy},
		},
	}
	return p.bind(c, card, card, OffsetStartEnd, OffsetEndStart), nil
}

// RevealOptions configures Reveal. Once and Threshold have no defaults
// worth guessing, so they are always taken as given.
type RevealOptions struct {
	// Once fires a single time; otherwise the reveal replays each time the
	// node re-enters after leaving the viewport entirely.
	Once bool
	// Threshold is the visible fraction in [0, 1] that triggers the reveal.
	Threshold float64
	// Margin grows (positive) or shrinks (negative) the viewport in pixels.
	Margin float64
	// Delay before the entry transition starts, in seconds.
	Delay float32
	// Duration of the entry transition. Default 0.6 seconds.
	Duration float32
	// OffsetY is how far below its place the node starts. Default 40.
	OffsetY float64
	// Ease of the entry transition. Default ease.OutCubic.
	Ease ease.TweenFunc
}

func (o RevealOptions) withDefaults() RevealOptions {
	if o.Duration <= 0 {
		o.Duration = 0.6
	}
	if o.OffsetY == 0 {
		o.OffsetY = 40
	}
	if o.Ease == nil {
		o.Ease = ease.OutCubic
	}
	return o
}

// Reveal hides node and plays a fade-up transition when it scrolls into
// view. A repeatable reveal hides the node again once it is fully out of
// view. Reveal changes are forwarded to the page's event store.
func (p *Page) Reveal(node *Node, opt RevealOptions) (*Binding, error) {
	opt = opt.withDefaults()
	trig, err := NewRevealTrigger(opt.Once, opt.Threshold, opt.Margin)
	if err != nil {
		return nil, fmt.Errorf("reveal %q: %w", node.Name, err)
	}
	tr := FadeUp(node, opt.OffsetY, opt.Duration, opt.Ease).WithDelay(opt.Delay)
	tr.Done = true

	c := &Consumer{Name: "reveal:" + node.Name, Reveal: trig}
	b := p.bind(c, node, node, OffsetStartEnd, OffsetEndStart)
	unsub := trig.Subscribe(func(s RevealState) {
		tr.Reset()
		if s == RevealTriggered {
			p.Play(tr)
		} else {
			tr.Done = true
		}
		p.emitReveal(node, s)
	})
	b.cleanup = append(b.cleanup, unsub)
	return b, nil
}

// RevealStagger reveals each node with its own trigger, delaying node i's
// entry by opt.Delay plus plan.Delay(i). plan.Count is ignored; the nodes
// slice sets the count. On error no bindings are left attached.
func (p *Page) RevealStagger(nodes []*Node, plan StaggerPlan, opt RevealOptions) ([]*Binding, error) {
	out := make([]*Binding, 0, len(nodes))
	for i, n := range nodes {
		o := opt
		o.Delay = opt.Delay + float32(plan.Delay(i))
		b, err := p.Reveal(n, o)
		if err != nil {
			for _, prev := range out {
				prev.Detach()
			}
			return nil, fmt.Errorf("reveal stagger: item %d: %w", i, err)
		}
		out = append(out, b)
	}
	return out, nil
}

// Stagger plays a fade-up entry on every node right away, node i delayed
// by plan.Delay(i). It is the load-time counterpart of RevealStagger, for
// content visible on the first frame.
func (p *Page) Stagger(nodes []*Node, plan StaggerPlan, offsetY float64, duration float32, fn ease.TweenFunc) []*Transition {
	if fn == nil {
		fn = ease.OutCubic
	}
	out := make([]*Transition, len(nodes))
	for i, n := range nodes {
		out[i] = FadeUp(n, offsetY, duration, fn).WithDelay(float32(plan.Delay(i)))
		p.Play(out[i])
	}
	return out
}

// --- Helpers ---

// addTrack appends a track, with its own spring when cfg is non-nil. The
// spring starts at the interpolation's first output.
func (c *Consumer) addTrack(prop Property, in *Interpolation, cfg *SpringConfig) error {
	t := Track{Property: prop, Interp: in}
	if cfg != nil {
		s, err := NewSpring(*cfg, in.Evaluate(0).Num)
		if err != nil {
			return err
		}
		t.Spring = s
	}
	c.Tracks = append(c.Tracks, t)
	return nil
}

// bind attaches c with region measured from region and detaches it when
// target is disposed.
func (p *Page) bind(c *Consumer, target, region *Node, start, end OffsetSpec) *Binding {
	if region == nil {
		region = target
	}
	b := p.Attach(c, region, start, end)
	b.detachOnDispose(target)
	if region != target {
		b.detachOnDispose(region)
	}
	return b
}
