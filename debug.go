package scrollfx

import (
	"fmt"
	"os"
)

// debugLogInterval is how many steps pass between stats lines.
const debugLogInterval = 60

// debugLog prints the runtime's tick stats and the measurer's read count
// to stderr, once every debugLogInterval steps.
func (p *Page) debugLog(stats TickStats) {
	if !p.debug || p.frames%debugLogInterval != 0 {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[scrollfx] tick: %v | consumers: %d | tracks: %d | published: %d\n",
		stats.Duration, stats.Consumers, stats.Tracks, stats.Published)
	_, _ = fmt.Fprintf(os.Stderr,
		"[scrollfx] scroll: %.1f/%.1f | layout reads: %d | transitions: %d\n",
		p.viewport.Scroll, p.viewport.MaxScroll(), p.measurer.Measurements(), len(p.playing))
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("scrollfx debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[scrollfx] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[scrollfx] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}

// debugWarnf prints a warning line to stderr in debug mode.
func debugWarnf(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[scrollfx] warning: "+format+"\n", args...)
}
