package scrollfx

// PointerContext carries hover event data.
type PointerContext struct {
	Node *Node
	// Viewport coordinates.
	X, Y float64
	// Document coordinates.
	DocX, DocY float64
	// Offset of the pointer from the node's layout center.
	OffsetX, OffsetY float64
}

// pointerState is the per-page pointer.
type pointerState struct {
	x, y      float64
	inside    bool
	hoverNode *Node
}

// Pointer returns the pointer position in viewport coordinates and whether
// it is inside the window.
func (p *Page) Pointer() (x, y float64, inside bool) {
	return p.pointer.x, p.pointer.y, p.pointer.inside
}

// HoverNode returns the node the pointer is over, or nil.
func (p *Page) HoverNode() *Node {
	return p.pointer.hoverNode
}

// processHover updates the hovered node and fires enter/leave callbacks.
// Only nodes with a hover callback take part in hit testing.
func (p *Page) processHover() {
	var hit *Node
	if p.pointer.inside {
		dx, dy := p.pointer.x, p.pointer.y+p.viewport.Scroll
		hit = hitTest(p.root, dx, dy)
	}
	prev := p.pointer.hoverNode
	if hit == prev {
		return
	}
	if prev != nil && !prev.disposed && prev.OnPointerLeave != nil {
		prev.OnPointerLeave(p.pointerContext(prev))
	}
	p.pointer.hoverNode = hit
	if hit != nil && hit.OnPointerEnter != nil {
		hit.OnPointerEnter(p.pointerContext(hit))
	}
}

func (p *Page) pointerContext(n *Node) PointerContext {
	dx, dy := p.pointer.x, p.pointer.y+p.viewport.Scroll
	ctx := PointerContext{Node: n, X: p.pointer.x, Y: p.pointer.y, DocX: dx, DocY: dy}
	if r, ok := n.Bounds(); ok {
		ctx.OffsetX = dx - (r.X + r.Width/2)
		ctx.OffsetY = dy - (r.Y + r.Height/2)
	}
	return ctx
}

// hitTest returns the topmost hoverable node whose layout box contains the
// document point. Later siblings draw on top, so they are tested first.
func hitTest(n *Node, dx, dy float64) *Node {
	if !n.Visible {
		return nil
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		if h := hitTest(n.children[i], dx, dy); h != nil {
			return h
		}
	}
	if n.OnPointerEnter == nil && n.OnPointerLeave == nil {
		return nil
	}
	r, ok := n.Bounds()
	if ok && r.Contains(dx, dy) {
		return n
	}
	return nil
}

// PointerOffset returns an InputFunc giving the pointer's offset from the
// center of the consumer's measured rect along one axis (horizontal when
// horizontal is true). Outside the rect, or with the pointer outside the
// window, it returns 0 so the value relaxes back to rest.
func PointerOffset(horizontal bool) InputFunc {
	return func(s Sample, r MeasuredRect) float64 {
		if !s.PointerInside || !r.Valid() {
			return 0
		}
		doc := s.PointerDoc()
		if doc.X < r.Left || doc.X > r.Left+r.Width || doc.Y < r.Top || doc.Y > r.Bottom {
			return 0
		}
		if horizontal {
			return doc.X - (r.Left + r.Width/2)
		}
		return doc.Y - (r.Top + r.Height/2)
	}
}
