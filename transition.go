package scrollfx

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Transition animates up to 4 float64 fields on a Node simultaneously after
// an optional delay. It is the timed counterpart of a scroll-linked track:
// reveal triggers start them and stagger plans supply their delays.
// Create one with a constructor (FadeUp, TweenTranslate, ...) and either
// call Update(dt) each frame or hand it to Page.Play. If the target node is
// disposed, the transition stops immediately.
type Transition struct {
	tweens [4]*gween.Tween
	from   [4]float32
	count  int
	fields [4]*float64
	target *Node
	// Delay is the time in seconds before the tweens start.
	Delay   float32
	elapsed float32
	Done    bool
}

// WithDelay sets the start delay and returns g.
func (g *Transition) WithDelay(seconds float32) *Transition {
	if seconds > 0 {
		g.Delay = seconds
	}
	return g
}

// Update advances the transition by dt seconds. While delayed, the fields
// are held at their start values. If the target node has been disposed,
// Done is set and no writes occur.
func (g *Transition) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	if g.elapsed < g.Delay {
		g.elapsed += dt
		if g.elapsed < g.Delay {
			for i := 0; i < g.count; i++ {
				*g.fields[i] = float64(g.from[i])
			}
			return
		}
		dt = g.elapsed - g.Delay
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Reset rewinds the transition to its start, including the delay, and
// writes the start values.
func (g *Transition) Reset() {
	g.elapsed = 0
	g.Done = false
	for i := 0; i < g.count; i++ {
		g.tweens[i].Reset()
		*g.fields[i] = float64(g.from[i])
	}
}

func (g *Transition) add(field *float64, from, to float64, duration float32, fn ease.TweenFunc) {
	i := g.count
	g.tweens[i] = gween.New(float32(from), float32(to), duration, fn)
	g.from[i] = float32(from)
	g.fields[i] = field
	g.count++
}

// FadeUp creates the usual entry transition: Alpha 0→1 and TranslateY
// offsetY→0. It writes the start values immediately so the node is hidden
// until it plays.
func FadeUp(node *Node, offsetY float64, duration float32, fn ease.TweenFunc) *Transition {
	g := &Transition{target: node}
	g.add(&node.Alpha, 0, 1, duration, fn)
	g.add(&node.TranslateY, offsetY, 0, duration, fn)
	node.Alpha = 0
	node.TranslateY = offsetY
	return g
}

// TweenTranslate creates a Transition that animates TranslateX and
// TranslateY to the given offsets.
func TweenTranslate(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *Transition {
	g := &Transition{target: node}
	g.add(&node.TranslateX, node.TranslateX, toX, duration, fn)
	g.add(&node.TranslateY, node.TranslateY, toY, duration, fn)
	return g
}

// TweenScale creates a Transition that animates Scale to the target.
func TweenScale(node *Node, to float64, duration float32, fn ease.TweenFunc) *Transition {
	g := &Transition{target: node}
	g.add(&node.Scale, node.Scale, to, duration, fn)
	return g
}

// TweenAlpha creates a Transition that animates Alpha to the target.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *Transition {
	g := &Transition{target: node}
	g.add(&node.Alpha, node.Alpha, to, duration, fn)
	return g
}

// TweenRotation creates a Transition that animates Rotation (degrees).
func TweenRotation(node *Node, to float64, duration float32, fn ease.TweenFunc) *Transition {
	g := &Transition{target: node}
	g.add(&node.Rotation, node.Rotation, to, duration, fn)
	return g
}

// TweenColor creates a Transition that animates all four color components.
func TweenColor(node *Node, to Color, duration float32, fn ease.TweenFunc) *Transition {
	g := &Transition{target: node}
	g.add(&node.Color.R, node.Color.R, to.R, duration, fn)
	g.add(&node.Color.G, node.Color.G, to.G, duration, fn)
	g.add(&node.Color.B, node.Color.B, to.B, duration, fn)
	g.add(&node.Color.A, node.Color.A, to.A, duration, fn)
	return g
}
