package scrollfx

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EventStore is the interface for optional ECS integration.
// When set on a Page, reveal changes are forwarded to it.
type EventStore interface {
	EmitReveal(event RevealEvent)
}

// RevealEvent carries a reveal trigger change for the ECS bridge.
type RevealEvent struct {
	NodeID uint32
	Name   string
	State  RevealState
	Scroll float64
}

// Page is the top-level object: it owns the node tree, the scroll
// viewport, the region measurer and the animation runtime, and drives them
// from the game loop.
//
// Each Step runs the same order: input, viewport smoothing, deferred
// measurement, one runtime tick against one sample, transitions, hover and
// node callbacks. Measurement never happens inside the tick.
type Page struct {
	root     *Node
	viewport *Viewport
	measurer *Measurer
	runtime  *Runtime
	pointer  pointerState
	store    EventStore
	debug    bool

	playing []*Transition

	// ClearColor fills the screen before the tree is drawn. Zero leaves the
	// screen as is.
	ClearColor Color

	updateFunc  func() error
	injectQueue []syntheticEvent
	testRunner  *TestRunner
	frames      uint64
}

// NewPage creates a page with a visible area of width x height and an empty
// root container as wide as the viewport.
func NewPage(width, height float64) *Page {
	root := NewContainer("root")
	root.Width = width
	vp := NewViewport(width, height, ViewportConfig{})
	p := &Page{
		root:     root,
		viewport: vp,
		measurer: NewMeasurer(vp.Rect()),
		runtime:  NewRuntime(),
	}
	root.page = p
	return p
}

// Root returns the page's root container node.
func (p *Page) Root() *Node { return p.root }

// Viewport returns the page's scroll container.
func (p *Page) Viewport() *Viewport { return p.viewport }

// Measurer returns the page's region measurer.
func (p *Page) Measurer() *Measurer { return p.measurer }

// Runtime returns the page's animation runtime.
func (p *Page) Runtime() *Runtime { return p.runtime }

// Frames returns the number of completed steps.
func (p *Page) Frames() uint64 { return p.frames }

// Sample implements Source.
func (p *Page) Sample() Sample {
	return Sample{
		Scroll:        p.viewport.Scroll,
		Viewport:      p.viewport.Rect(),
		Pointer:       Vec2{X: p.pointer.x, Y: p.pointer.y},
		PointerInside: p.pointer.inside,
	}
}

// SetUpdateFunc registers a callback run at the end of every Update.
// A non-nil error stops the game loop.
func (p *Page) SetUpdateFunc(fn func() error) {
	p.updateFunc = fn
}

// SetEventStore sets the optional ECS bridge.
func (p *Page) SetEventStore(store EventStore) {
	p.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are printed, and
// per-tick stats are logged to stderr.
func (p *Page) SetDebugMode(enabled bool) {
	p.debug = enabled
	p.runtime.SetTiming(enabled)
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Page debug flag so that node
// operations (which lack a Page pointer) can check it cheaply. Only valid
// with a single Page.
var globalDebug bool

// --- Layout ---

// Resize changes the visible size. Every tracked region is remeasured
// before the next tick.
func (p *Page) Resize(width, height float64) {
	if width == p.viewport.Width && height == p.viewport.Height {
		return
	}
	p.viewport.Resize(width, height)
	p.measurer.Resize(p.viewport.Rect())
	p.root.SetLayout(p.root.X, p.root.Y, width, p.root.Height)
}

// SetContentHeight sets the document height the viewport scrolls over.
func (p *Page) SetContentHeight(h float64) {
	p.viewport.SetContentHeight(h)
}

// FitContent sets the document height to the bottom of the lowest visible
// child of the root and returns it.
func (p *Page) FitContent() float64 {
	h := 0.0
	for _, c := range p.root.children {
		if !c.Visible || c.disposed {
			continue
		}
		h = math.Max(h, c.Y+c.Height)
	}
	p.root.Height = h
	p.viewport.SetContentHeight(h)
	return h
}

// --- Consumers ---

// Binding ties a registered consumer to its tracked region. Detach removes
// both.
type Binding struct {
	page     *Page
	id       ConsumerID
	consumer *Consumer
	cleanup  []func()
	detached bool
}

// Attach tracks h with the given offsets, assigns the region to c and
// registers c with the runtime. A nil h registers c without a region.
func (p *Page) Attach(c *Consumer, h Measurable, start, end OffsetSpec) *Binding {
	if n, ok := h.(*Node); ok && p.debug && !n.Attached() {
		debugWarnf("consumer %q tracks unattached node %q; progress holds until it is added", c.Name, n.Name)
	}
	if h != nil {
		c.Region = p.measurer.Track(h, start, end)
	}
	b := &Binding{page: p, consumer: c}
	b.id = p.runtime.Register(c)
	return b
}

// ID returns the consumer's runtime ID.
func (b *Binding) ID() ConsumerID { return b.id }

// Consumer returns the bound consumer.
func (b *Binding) Consumer() *Consumer { return b.consumer }

// Detached reports whether Detach has been called.
func (b *Binding) Detached() bool { return b.detached }

// Progress returns the consumer's scroll progress from the last tick.
func (b *Binding) Progress() ProgressSample {
	ps, _ := b.page.runtime.Progress(b.id)
	return ps
}

// Detach deregisters the consumer and stops tracking its region. Safe to
// call more than once, including from inside a tick.
func (b *Binding) Detach() {
	if b.detached {
		return
	}
	b.detached = true
	b.page.runtime.Deregister(b.id)
	if b.consumer.Region != nil {
		b.page.measurer.Untrack(b.consumer.Region)
	}
	for _, fn := range b.cleanup {
		fn()
	}
	b.cleanup = nil
}

// detachOnDispose detaches b when n is disposed.
func (b *Binding) detachOnDispose(n *Node) {
	cancel := n.WatchLayout(func() {
		if n.disposed {
			b.Detach()
		}
	})
	b.cleanup = append(b.cleanup, cancel)
}

// --- Transitions ---

// Play starts a transition. It is updated once per step until done.
// Playing an already playing transition has no effect.
func (p *Page) Play(t *Transition) {
	if t == nil {
		return
	}
	for _, q := range p.playing {
		if q == t {
			return
		}
	}
	p.playing = append(p.playing, t)
}

// Playing returns the number of transitions in progress.
func (p *Page) Playing() int { return len(p.playing) }

func (p *Page) updateTransitions(dt float32) {
	n := 0
	for _, t := range p.playing {
		t.Update(dt)
		if !t.Done {
			p.playing[n] = t
			n++
		}
	}
	for i := n; i < len(p.playing); i++ {
		p.playing[i] = nil
	}
	p.playing = p.playing[:n]
}

// --- Frame ---

// Update reads wheel, keyboard and cursor input and advances one frame of
// 1/TPS seconds. Real input is skipped while injected events are queued.
func (p *Page) Update() error {
	if len(p.injectQueue) == 0 && p.testRunner == nil {
		p.readInput()
	}
	p.Step(1.0 / float64(ebiten.TPS()))
	if p.updateFunc != nil {
		return p.updateFunc()
	}
	return nil
}

func (p *Page) readInput() {
	if _, wy := ebiten.Wheel(); wy != 0 {
		p.viewport.ScrollBy(-wy)
	}
	vp := p.viewport
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		vp.ScrollTo(vp.Target()+vp.Height*0.9, 0.4, nil)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		vp.ScrollTo(vp.Target()-vp.Height*0.9, 0.4, nil)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		vp.ScrollTo(0, 0.6, nil)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		vp.ScrollTo(vp.MaxScroll(), 0.6, nil)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		vp.ScrollBy(0.5)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		vp.ScrollBy(-0.5)
	}
	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)
	p.pointer.x, p.pointer.y = x, y
	p.pointer.inside = x >= 0 && y >= 0 && x < vp.Width && y < vp.Height
}

// Step advances the page by dt seconds without reading real input. Tests
// and headless drivers call it directly.
func (p *Page) Step(dt float64) {
	if p.testRunner != nil {
		p.testRunner.step(p)
	}
	p.processInjected()

	if p.viewport.update(float32(dt)) {
		p.measurer.ScrollStart()
	}
	if p.measurer.Pending() > 0 {
		p.measurer.Flush()
	}

	p.runtime.Tick(p.Sample(), dt)
	if p.debug {
		p.debugLog(p.runtime.Stats())
	}

	p.updateTransitions(float32(dt))
	p.processHover()
	updateNodes(p.root, dt)
	p.frames++
}

// updateNodes runs OnUpdate callbacks depth first.
func updateNodes(n *Node, dt float64) {
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	for i := 0; i < len(n.children); i++ {
		updateNodes(n.children[i], dt)
	}
}

// emitReveal forwards a reveal change to the event store, if any.
func (p *Page) emitReveal(n *Node, s RevealState) {
	if p.store == nil {
		return
	}
	p.store.EmitReveal(RevealEvent{NodeID: n.ID, Name: n.Name, State: s, Scroll: p.viewport.Scroll})
}
