package starfield

import "testing"

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "move", "x": 100, "y": 200},
			{"action": "sweep", "fromX": 0, "fromY": 0, "toX": 800, "toY": 600, "frames": 10},
			{"action": "wait", "frames": 3},
			{"action": "scroll", "y": 900},
			{"action": "resize", "width": 640, "height": 480}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 6 {
		t.Fatalf("expected 6 steps, got %d", len(runner.steps))
	}
	if runner.steps[1].Action != "move" || runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if s := runner.steps[2]; s.ToX != 800 || s.ToY != 600 || s.Frames != 10 {
		t.Error("step 2 mismatch")
	}
	if runner.steps[4].Y != 900 || runner.steps[5].Width != 640 {
		t.Error("scroll or resize mismatch")
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `not json`},
		{"empty", `{"steps": []}`},
		{"unknown action", `{"steps": [{"action": "click"}]}`},
	}
	for _, tt := range tests {
		if _, err := LoadTestScript([]byte(tt.data)); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestRunnerWaitsForQueue(t *testing.T) {
	h := NewManualHost(800, 600)
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "sweep", "fromX": 0, "fromY": 0, "toX": 100, "toY": 0, "frames": 3},
		{"action": "screenshot", "label": "after sweep"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	h.SetTestRunner(runner, nil)

	h.Tick(frame) // queues 3 moves, consumes one
	if h.Queued() != 2 {
		t.Fatalf("Queued = %d, want 2", h.Queued())
	}
	h.Tick(frame)
	h.Tick(frame)
	if len(h.Screenshots()) != 0 {
		t.Fatal("screenshot taken before the sweep drained")
	}
	h.Tick(frame)
	if got := h.Screenshots(); len(got) != 1 || got[0] != "after_sweep" {
		t.Fatalf("screenshots %v", got)
	}
	if !runner.Done() {
		t.Error("runner not done after last step")
	}
}

func TestRunnerWait(t *testing.T) {
	h := NewManualHost(800, 600)
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "late"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	h.SetTestRunner(runner, nil)
	for i := 0; i < 3; i++ {
		h.Tick(frame)
	}
	if len(h.Screenshots()) != 0 {
		t.Fatal("screenshot before the wait elapsed")
	}
	h.Tick(frame)
	if len(h.Screenshots()) != 1 {
		t.Error("screenshot not taken after the wait")
	}
}

func TestRunnerDrivesAnimator(t *testing.T) {
	f := mount(t, HeroConfig())
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "move", "x": 400, "y": 300},
		{"action": "scroll", "y": 1200},
		{"action": "hide"},
		{"action": "wait", "frames": 3},
		{"action": "show"},
		{"action": "wait", "frames": 2},
		{"action": "unmount"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	f.host.SetTestRunner(runner, f.animator)

	for i := 0; i < 100 && !runner.Done(); i++ {
		f.host.Tick(frame)
	}
	if !runner.Done() {
		t.Fatal("script never finished")
	}
	if !f.animator.Disposed() {
		t.Error("unmount step did not dispose")
	}
	if f.host.ScrollY() != 1200 {
		t.Errorf("scroll %v", f.host.ScrollY())
	}
	if f.renderer.renders == 0 {
		t.Error("nothing drawn")
	}
	if _, removes, misses := f.container.Counts(); removes != 1 || misses != 0 {
		t.Errorf("removes %d misses %d", removes, misses)
	}

	drawn := f.renderer.renders
	f.host.Tick(frame)
	if f.renderer.renders != drawn {
		t.Error("drew after unmount")
	}
}

func TestRunnerHiddenFramesSkipDraws(t *testing.T) {
	f := mount(t, HeroConfig())
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "hide"},
		{"action": "wait", "frames": 5}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	f.host.SetTestRunner(runner, f.animator)
	for i := 0; i < 10; i++ {
		f.host.Tick(frame)
	}
	if f.renderer.renders != 0 {
		t.Errorf("renders %d while hidden from the first frame", f.renderer.renders)
	}
}
