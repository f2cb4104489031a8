package scrollfx

import "math"

// nodeIDCounter is a plain counter; pages are single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

type layoutWatcher struct {
	id uint32
	fn func()
}

// Node is a box on the page. Its layout (X, Y, Width, Height, relative to
// the parent) is what regions are measured from; its animated properties
// are what sinks write each tick. Animated properties never feed back into
// measurement.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Layout, in parent coordinates. Change it with SetLayout so tracked
	// regions are remeasured.
	X, Y          float64
	Width, Height float64

	// Animated properties
	TranslateX, TranslateY float64
	Scale                  float64
	Rotation               float64 // degrees
	RotateX, RotateY       float64 // tilt in degrees
	Alpha                  float64
	Fill                   float64 // drawn fraction of Width, in [0, 1]

	// Appearance
	Color   Color
	Visible bool
	// Label, if set, is drawn over the box.
	Label *Label

	// Metadata
	UserData any

	// OnUpdate is called once per page update, after the runtime tick.
	OnUpdate func(dt float64)

	// Hover callbacks (nil by default). Hover is tested against the layout
	// box in document space.
	OnPointerEnter func(PointerContext)
	OnPointerLeave func(PointerContext)

	// Internal
	page      *Page // set on the root of an attached tree only
	disposed  bool
	watchers  []layoutWatcher
	nextWatch uint32
}

// NewNode creates a box with the given layout size and default animated
// properties (no offset, scale 1, fully opaque, fully filled).
func NewNode(name string, width, height float64) *Node {
	n := &Node{
		ID:      nextNodeID(),
		Name:    name,
		Width:   width,
		Height:  height,
		Scale:   1,
		Alpha:   1,
		Fill:    1,
		Color:   ColorWhite,
		Visible: true,
	}
	return n
}

// NewContainer creates a node with no size of its own.
func NewContainer(name string) *Node {
	return NewNode(name, 0, 0)
}

// --- Layout ---

// SetLayout moves and resizes the node and notifies layout watchers of
// the node and its descendants.
func (n *Node) SetLayout(x, y, width, height float64) {
	if n.X == x && n.Y == y && n.Width == width && n.Height == height {
		return
	}
	n.X, n.Y, n.Width, n.Height = x, y, width, height
	notifySubtree(n)
}

// WatchLayout implements LayoutNotifier. fn runs whenever the node's
// document-space box may have changed: its own or an ancestor's layout
// changed, or it was attached, detached or disposed.
func (n *Node) WatchLayout(fn func()) (cancel func()) {
	n.nextWatch++
	id := n.nextWatch
	n.watchers = append(n.watchers, layoutWatcher{id: id, fn: fn})
	return func() {
		for i := range n.watchers {
			if n.watchers[i].id == id {
				copy(n.watchers[i:], n.watchers[i+1:])
				n.watchers[len(n.watchers)-1] = layoutWatcher{}
				n.watchers = n.watchers[:len(n.watchers)-1]
				return
			}
		}
	}
}

// Bounds implements Measurable: the layout box in document coordinates,
// and whether the node is attached to a page and visible.
func (n *Node) Bounds() (Rect, bool) {
	if n.disposed {
		return Rect{}, false
	}
	x, y := n.X, n.Y
	visible := n.Visible
	p := n.Parent
	root := n
	for ; p != nil; p = p.Parent {
		x += p.X
		y += p.Y
		visible = visible && p.Visible
		root = p
	}
	attached := root.page != nil
	return Rect{X: x, Y: y, Width: n.Width, Height: n.Height}, attached && visible
}

// Attached reports whether the node belongs to a page's tree.
func (n *Node) Attached() bool {
	root := n
	for root.Parent != nil {
		root = root.Parent
	}
	return root.page != nil
}

// --- Sink ---

// Apply implements Sink. Percentages are relative to the node's own
// layout size for translation and width, and to 100 for scale and opacity.
func (n *Node) Apply(prop Property, v Value) {
	if n.disposed || !finite(v.Num) {
		return
	}
	switch prop {
	case PropTranslateX:
		n.TranslateX = lengthOf(v, n.Width)
	case PropTranslateY:
		n.TranslateY = lengthOf(v, n.Height)
	case PropScale:
		n.Scale = ratioOf(v)
	case PropRotate:
		n.Rotation = v.Num
	case PropRotateX:
		n.RotateX = v.Num
	case PropRotateY:
		n.RotateY = v.Num
	case PropOpacity:
		n.Alpha = clamp01(ratioOf(v))
	case PropWidth:
		switch {
		case v.Unit == UnitPx && n.Width > 0:
			n.Fill = clamp01(v.Num / n.Width)
		case v.Unit == UnitPx:
			n.Fill = 0
		default:
			n.Fill = clamp01(ratioOf(v))
		}
	}
}

func lengthOf(v Value, ref float64) float64 {
	if v.Unit == UnitPercent {
		return v.Num / 100 * ref
	}
	return v.Num
}

func ratioOf(v Value) float64 {
	if v.Unit == UnitPercent {
		return v.Num / 100
	}
	return v.Num
}

// ResetAnimated restores the animated properties to their defaults.
func (n *Node) ResetAnimated() {
	n.TranslateX, n.TranslateY = 0, 0
	n.Scale = 1
	n.Rotation, n.RotateX, n.RotateY = 0, 0, 0
	n.Alpha = 1
	n.Fill = 1
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("scrollfx: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("scrollfx: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	notifySubtree(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("scrollfx: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	notifySubtree(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// Find returns the first node named name in this subtree (depth first,
// including n itself), or nil.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.children {
		if f := c.Find(name); f != nil {
			return f
		}
	}
	return nil
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants. Layout watchers run one last
// time after the node is marked disposed, then are dropped.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.UserData = nil
	n.OnUpdate = nil
	n.OnPointerEnter = nil
	n.OnPointerLeave = nil
	ws := n.watchers
	n.watchers = nil
	for _, w := range ws {
		w.fn()
	}
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Transform ---

// localTransform composes the node's layout position with its animated
// properties, pivoting around the box center:
//
//	Translate(X+TranslateX, Y+TranslateY) * Translate(c) * Rotate * Scale * Translate(-c)
//
// Tilt is flattened to 2D by foreshortening: RotateX shrinks the height by
// cos(RotateX), RotateY the width by cos(RotateY).
func (n *Node) localTransform() [6]float64 {
	sx := n.Scale * math.Cos(n.RotateY*math.Pi/180)
	sy := n.Scale * math.Cos(n.RotateX*math.Pi/180)
	sin, cos := math.Sincos(n.Rotation * math.Pi / 180)
	cx, cy := n.Width/2, n.Height/2

	a, b := cos*sx, sin*sx
	c, d := -sin*sy, cos*sy
	tx := cx - (a*cx + c*cy) + n.X + n.TranslateX
	ty := cy - (b*cx + d*cy) + n.Y + n.TranslateY
	return [6]float64{a, b, c, d, tx, ty}
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// notifySubtree runs the layout watchers of node and all its descendants.
// Watchers may cancel themselves while it runs.
func notifySubtree(node *Node) {
	ws := append([]layoutWatcher(nil), node.watchers...)
	for _, w := range ws {
		w.fn()
	}
	for _, child := range node.children {
		notifySubtree(child)
	}
}
