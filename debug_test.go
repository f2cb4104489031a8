package scrollfx

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"
)

// captureStderr runs fn with os.Stderr redirected and returns the output.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = w
	fn()
	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String()
}

// ---- Debug mode tests ------------------------------------------------------

func TestDebugMode_DisposedNodePanics(t *testing.T) {
	p := NewPage(800, 600)
	p.SetDebugMode(true)
	defer p.SetDebugMode(false)

	parent := NewContainer("parent")
	p.Root().AddChild(parent)

	child := NewNode("child", 10, 10)
	child.Dispose()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on AddChild with disposed node, got none")
		}
		msg := fmt.Sprint(r)
		if !strings.Contains(msg, "disposed") {
			t.Errorf("panic message should mention 'disposed', got: %s", msg)
		}
	}()

	parent.AddChild(child)
}

func TestReleaseMode_DisposedNodeNoPanic(t *testing.T) {
	p := NewPage(800, 600)
	p.SetDebugMode(false)

	child := NewNode("child", 10, 10)
	child.Dispose()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("release mode should not panic on disposed node, got: %v", r)
		}
	}()
	p.Root().AddChild(child)
}

func TestDebugMode_TreeDepthWarning(t *testing.T) {
	p := NewPage(800, 600)
	p.SetDebugMode(true)
	defer p.SetDebugMode(false)

	output := captureStderr(t, func() {
		current := p.Root()
		for i := 0; i < debugMaxTreeDepth+5; i++ {
			child := NewContainer(fmt.Sprintf("depth_%d", i))
			current.AddChild(child)
			current = child
		}
	})
	if !strings.Contains(output, "warning: tree depth") {
		t.Errorf("expected tree depth warning, got: %q", output)
	}
}

func TestDebugMode_ChildCountWarning(t *testing.T) {
	p := NewPage(800, 600)
	p.SetDebugMode(true)
	defer p.SetDebugMode(false)

	output := captureStderr(t, func() {
		for i := 0; i < debugMaxChildCount+1; i++ {
			p.Root().AddChild(NewContainer("c"))
		}
	})
	if !strings.Contains(output, "children (threshold") {
		t.Errorf("expected child count warning, got: %q", output)
	}
}

func TestDebugMode_TickStatsLogged(t *testing.T) {
	p := NewPage(800, 600)
	p.SetDebugMode(true)
	defer p.SetDebugMode(false)

	n := NewNode("box", 100, 100)
	p.Root().AddChild(n)
	if _, err := p.ProgressBar(n, n, OffsetStartEnd, OffsetEndStart, nil); err != nil {
		t.Fatal(err)
	}

	output := captureStderr(t, func() {
		for i := 0; i < debugLogInterval+1; i++ {
			p.Step(1.0 / 60)
		}
	})
	if got := strings.Count(output, "[scrollfx] tick:"); got != 2 {
		t.Errorf("tick lines = %d, want 2; output: %q", got, output)
	}
	if !strings.Contains(output, "consumers: 1") {
		t.Errorf("stats missing consumer count: %q", output)
	}
}

func TestReleaseMode_NoTickStats(t *testing.T) {
	p := NewPage(800, 600)
	output := captureStderr(t, func() {
		for i := 0; i < debugLogInterval+1; i++ {
			p.Step(1.0 / 60)
		}
	})
	if output != "" {
		t.Errorf("release mode wrote to stderr: %q", output)
	}
}

func TestDebugMode_UnattachedRegionWarning(t *testing.T) {
	p := NewPage(800, 600)
	p.SetDebugMode(true)
	defer p.SetDebugMode(false)

	loose := NewNode("loose", 100, 100)
	out := captureStderr(t, func() {
		p.Attach(&Consumer{Name: "probe"}, loose, OffsetStartEnd, OffsetEndStart)
	})
	if !strings.Contains(out, `unattached node "loose"`) {
		t.Errorf("expected unattached warning, got: %q", out)
	}

	attached := NewNode("attached", 100, 100)
	p.Root().AddChild(attached)
	out = captureStderr(t, func() {
		p.Attach(&Consumer{Name: "probe"}, attached, OffsetStartEnd, OffsetEndStart)
	})
	if out != "" {
		t.Errorf("unexpected output: %q", out)
	}
}
