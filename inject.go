package scrollfx

// syntheticKind identifies an injected event.
type syntheticKind uint8

const (
	syntheticWheel syntheticKind = iota
	syntheticMove
	syntheticLeave
	syntheticJump
)

// syntheticEvent represents a single injected input event. Pointer
// coordinates are viewport coordinates, identical to real cursor input.
type syntheticEvent struct {
	kind syntheticKind
	x, y float64
	// notches for wheel events, the offset for jumps.
	amount float64
}

// InjectWheel queues one wheel event of the given notches (positive
// scrolls down). Events are consumed one per step.
func (p *Page) InjectWheel(notches float64) {
	p.injectQueue = append(p.injectQueue, syntheticEvent{kind: syntheticWheel, amount: notches})
}

// InjectPointer queues a pointer move to viewport coordinates (x, y).
func (p *Page) InjectPointer(x, y float64) {
	p.injectQueue = append(p.injectQueue, syntheticEvent{kind: syntheticMove, x: x, y: y})
}

// InjectPointerLeave queues the pointer leaving the window.
func (p *Page) InjectPointerLeave() {
	p.injectQueue = append(p.injectQueue, syntheticEvent{kind: syntheticLeave})
}

// InjectScroll queues a scroll from the current target to y, spread evenly
// over frames steps. Each step jumps the viewport, without smoothing.
// Minimum frames is 1.
func (p *Page) InjectScroll(y float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	from := p.viewport.Target()
	if n := len(p.injectQueue); n > 0 {
		for i := n - 1; i >= 0; i-- {
			if p.injectQueue[i].kind == syntheticJump {
				from = p.injectQueue[i].amount
				break
			}
		}
	}
	for i := 1; i <= frames; i++ {
		t := float64(i) / float64(frames)
		p.injectQueue = append(p.injectQueue, syntheticEvent{kind: syntheticJump, amount: from + (y-from)*t})
	}
}

// InjectPointerPath queues pointer moves from (fromX, fromY) to (toX, toY)
// over frames steps, both ends included. Minimum frames is 2.
func (p *Page) InjectPointerPath(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		p.InjectPointer(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// processInjected pops one event from the inject queue and applies it.
// Returns true if an event was consumed.
func (p *Page) processInjected() bool {
	if len(p.injectQueue) == 0 {
		return false
	}
	evt := p.injectQueue[0]
	copy(p.injectQueue, p.injectQueue[1:])
	p.injectQueue = p.injectQueue[:len(p.injectQueue)-1]

	switch evt.kind {
	case syntheticWheel:
		p.viewport.ScrollBy(evt.amount)
	case syntheticMove:
		p.pointer.x, p.pointer.y = evt.x, evt.y
		p.pointer.inside = evt.x >= 0 && evt.y >= 0 && evt.x < p.viewport.Width && evt.y < p.viewport.Height
	case syntheticLeave:
		p.pointer.inside = false
	case syntheticJump:
		p.viewport.JumpTo(evt.amount)
	}
	return true
}
