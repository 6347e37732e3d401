package starfield

import (
	"math"
	"testing"
)

func TestCompositeScale(t *testing.T) {
	tests := []struct {
		surfW, surfH, screenW, screenH int
		wantX, wantY                   float64
	}{
		{1280, 720, 1280, 720, 1, 1},
		{1920, 1080, 2560, 1440, 2560.0 / 1920, 1440.0 / 1080},
		{1920, 1080, 1920, 1080, 1, 1},
		{0, 0, 800, 600, 1, 1},
	}
	for _, tt := range tests {
		sx, sy := compositeScale(tt.surfW, tt.surfH, tt.screenW, tt.screenH)
		if math.Abs(sx-tt.wantX) > 1e-12 || math.Abs(sy-tt.wantY) > 1e-12 {
			t.Errorf("compositeScale(%d, %d, %d, %d) = (%v, %v), want (%v, %v)",
				tt.surfW, tt.surfH, tt.screenW, tt.screenH, sx, sy, tt.wantX, tt.wantY)
		}
		// The scaled surface covers the whole screen.
		if tt.surfW > 0 {
			if w := float64(tt.surfW) * sx; math.Abs(w-float64(tt.screenW)) > 1e-9 {
				t.Errorf("scaled width %v, want %d", w, tt.screenW)
			}
		}
	}
}

func TestEbitenHostClientRectFollowsScroll(t *testing.T) {
	h := NewEbitenHost(RunConfig{Width: 800, Height: 600, ScrollHeight: 2000}, nil)
	if r := h.ClientRect(); r.Y != 0 || r.Width != 800 || r.Height != 600 {
		t.Fatalf("rect at top = %+v", r)
	}

	rig := newCameraRig(ContactConfig().Camera)
	rig.scroll(h.ScrollY(), 600, h.ClientRect())
	atTop := rig.parallaxTarget

	h.dispatch(Event{Kind: EventScroll, ScrollY: 300})
	if r := h.ClientRect(); r.Y != -300 {
		t.Fatalf("rect Y after scrolling = %v, want -300", r.Y)
	}
	rig.scroll(h.ScrollY(), 600, h.ClientRect())
	if math.Abs(atTop-0.5) > 1e-12 || math.Abs(rig.parallaxTarget-0.75) > 1e-12 {
		t.Errorf("section parallax %v then %v, want 0.5 then 0.75", atTop, rig.parallaxTarget)
	}
}
