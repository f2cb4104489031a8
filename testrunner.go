package scrollfx

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	FromX   float64 `json:"fromX,omitempty"`
	FromY   float64 `json:"fromY,omitempty"`
	ToX     float64 `json:"toX,omitempty"`
	ToY     float64 `json:"toY,omitempty"`
	Notches float64 `json:"notches,omitempty"`
	Frames  int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// Mark is a snapshot recorded by a "mark" step.
type Mark struct {
	Label  string
	Frame  uint64
	Scroll float64
}

// TestRunner sequences injected scroll and pointer events across frames
// for automated testing. Attach to a Page via SetTestRunner.
//
// Supported actions: "scroll" (notches), "scrollTo" (y, frames), "move"
// (x, y), "hover" (fromX, fromY, toX, toY, frames), "leave", "wait"
// (frames) and "mark" (label).
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	marks     []Mark
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Page via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "scroll", "scrollTo", "move", "hover", "leave", "wait", "mark":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the page. The runner's step
// method is called at the start of every Page.Step, and real input is
// ignored while it is attached.
func (p *Page) SetTestRunner(runner *TestRunner) {
	p.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Marks returns the snapshots recorded so far.
func (r *TestRunner) Marks() []Mark {
	return r.marks
}

// step advances the test runner by one frame. Called from Page.Step.
func (r *TestRunner) step(p *Page) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(p.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "mark":
		r.marks = append(r.marks, Mark{Label: st.Label, Frame: p.frames, Scroll: p.viewport.Scroll})
	case "scroll":
		p.InjectWheel(st.Notches)
	case "scrollTo":
		p.InjectScroll(st.Y, st.Frames)
	case "move":
		p.InjectPointer(st.X, st.Y)
	case "hover":
		p.InjectPointerPath(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "leave":
		p.InjectPointerLeave()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(p.injectQueue) == 0 {
		r.done = true
	}
}
