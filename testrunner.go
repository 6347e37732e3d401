package starfield

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"move": true, "sweep": true, "scroll": true, "resize": true,
	"hide": true, "show": true, "wait": true, "screenshot": true, "unmount": true,
}

// scriptTarget is the host side a TestRunner drives.
type scriptTarget interface {
	InjectPointerMove(x, y float64)
	InjectPointerPath(fromX, fromY, toX, toY float64, frames int)
	InjectScroll(y float64)
	InjectResize(width, height int)
	SetVisible(c Container, visible bool)
	Screenshot(label string)
	Queued() int
}

// TestRunner sequences injected input, visibility changes and screenshots
// across frames for scripted runs. Attach it to a host with SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	animator  *Animator
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// SetTestRunner attaches runner to the host; its steps act on a. The runner
// advances once per Tick before queued input is consumed.
func (h *ManualHost) SetTestRunner(runner *TestRunner, a *Animator) {
	runner.animator = a
	h.runner = runner
}

// step advances the test runner by one frame.
func (r *TestRunner) step(t scriptTarget) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if t.Queued() > 0 {
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
	case "screenshot":
		t.Screenshot(st.Label)
	case "move":
		t.InjectPointerMove(st.X, st.Y)
	case "sweep":
		t.InjectPointerPath(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 1))
	case "scroll":
		t.InjectScroll(st.Y)
	case "resize":
		t.InjectResize(st.Width, st.Height)
	case "hide", "show":
		if r.animator != nil && r.animator.container != nil {
			t.SetVisible(r.animator.container, st.Action == "show")
		}
	case "unmount":
		r.animator.Dispose()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && t.Queued() == 0 {
		r.done = true
	}
}
