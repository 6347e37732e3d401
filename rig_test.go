package starfield

import (
	"math"
	"testing"
)

func TestRigPointerNDC(t *testing.T) {
	r := newCameraRig(ContactConfig().Camera)
	tests := []struct {
		x, y         float64
		wantX, wantY float64
	}{
		{400, 300, 0, 0},
		{0, 0, -1, 1},
		{800, 600, 1, -1},
		{600, 150, 0.5, 0.5},
	}
	for _, tt := range tests {
		r.pointerMove(tt.x, tt.y, 800, 600)
		if !approxEqual(r.mouseX, tt.wantX, epsilon) || !approxEqual(r.mouseY, tt.wantY, epsilon) {
			t.Errorf("pointer (%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, r.mouseX, r.mouseY, tt.wantX, tt.wantY)
		}
	}
	r.pointerMove(10, 10, 0, 600)
	if !approxEqual(r.mouseX, 0.5, epsilon) {
		t.Error("zero viewport should be ignored")
	}
}

func TestRigSnapFirstMove(t *testing.T) {
	hero := newCameraRig(HeroConfig().Camera)
	hero.pointerMove(800, 0, 800, 600)
	if hero.smoothX != 1 || hero.smoothY != 1 {
		t.Errorf("hero first move smoothed to (%v, %v), want snap to (1, 1)", hero.smoothX, hero.smoothY)
	}
	hero.pointerMove(0, 600, 800, 600)
	if hero.smoothX != 1 {
		t.Error("only the first move snaps")
	}

	contact := newCameraRig(ContactConfig().Camera)
	contact.pointerMove(800, 0, 800, 600)
	if contact.smoothX != 0 || contact.smoothY != 0 {
		t.Error("contact rig should ease from the origin")
	}
}

func TestRigScrollParallax(t *testing.T) {
	hero := newCameraRig(HeroConfig().Camera)
	hero.scroll(300, 600, Rect{})
	if !approxEqual(hero.parallaxTarget, 0.5, epsilon) {
		t.Errorf("hero parallax target %v, want 0.5", hero.parallaxTarget)
	}

	contact := newCameraRig(ContactConfig().Camera)
	tests := []struct {
		top  float64
		want float64
	}{
		{600, 0},     // just below the viewport
		{900, 0},     // further below clamps to 0
		{0, 0.5},     // top of the viewport
		{-600, 1},    // scrolled out above
		{-2000, 1.2}, // clamps at ParallaxMax
	}
	for _, tt := range tests {
		contact.scroll(0, 600, Rect{Y: tt.top, Width: 800, Height: 600})
		if !approxEqual(contact.parallaxTarget, tt.want, epsilon) {
			t.Errorf("section top %v: parallax target %v, want %v", tt.top, contact.parallaxTarget, tt.want)
		}
	}
}

func TestRigRotationThreshold(t *testing.T) {
	r := newCameraRig(HeroConfig().Camera)
	r.scroll(500, 600, Rect{})
	r.step(1.0 / 60)
	if r.rotationTarget != 0 {
		t.Errorf("rotation target %v below threshold", r.rotationTarget)
	}
	r.scroll(1800, 600, Rect{})
	r.step(1.0 / 60)
	if want := 1000 * 0.0015; !approxEqual(r.rotationTarget, want, epsilon) {
		t.Errorf("rotation target %v, want %v", r.rotationTarget, want)
	}
	if r.rotation <= 0 || r.rotation >= r.rotationTarget {
		t.Errorf("rotation %v should ease toward %v", r.rotation, r.rotationTarget)
	}
}

func TestRigStepRateIndependent(t *testing.T) {
	run := func(hz int) cameraRig {
		r := newCameraRig(ContactConfig().Camera)
		r.pointerMove(800, 0, 800, 600)
		r.scroll(0, 600, Rect{Y: 0, Width: 800, Height: 600})
		for i := 0; i < hz/2; i++ {
			r.step(1 / float64(hz))
		}
		return r
	}
	a, b := run(60), run(120)
	if !approxEqual(a.smoothX, b.smoothX, 1e-9) || !approxEqual(a.parallax, b.parallax, 1e-9) {
		t.Errorf("60 Hz (%v, %v) vs 120 Hz (%v, %v)", a.smoothX, a.parallax, b.smoothX, b.parallax)
	}
	if a.smoothX <= 0 || a.smoothX >= 1 {
		t.Errorf("smoothX %v should be easing toward 1", a.smoothX)
	}
}

func TestRigPlaceFixed(t *testing.T) {
	cfg := ContactConfig().Camera
	r := newCameraRig(cfg)
	r.smoothX, r.smoothY = 0.5, -0.5
	r.parallax = 0.2
	cam := NewCamera(cfg.FOV, 1, cfg.Near, cfg.Far, cfg.Distance)
	r.place(cam, 10)

	pos := cam.Position()
	drop := -0.2 * cfg.ParallaxScale
	if !approxEqual(pos.X(), 0.5*cfg.MouseOffset, epsilon) ||
		!approxEqual(pos.Y(), drop-0.5*cfg.MouseOffset, epsilon) ||
		!approxEqual(pos.Z(), cfg.Distance, epsilon) {
		t.Errorf("position %v", pos)
	}
	if tg := cam.Target(); !approxEqual(tg.Y(), drop, epsilon) || tg.X() != 0 || tg.Z() != 0 {
		t.Errorf("target %v, want (0, %v, 0)", tg, drop)
	}
	if spin := r.starSpin(10); !approxEqual(spin, 10*cfg.StarSpin, epsilon) {
		t.Errorf("star spin %v", spin)
	}
}

func TestRigPlaceOrbit(t *testing.T) {
	cfg := HeroConfig().Camera
	r := newCameraRig(cfg)
	r.rotation = 0.3
	cam := NewCamera(cfg.FOV, 1, cfg.Near, cfg.Far, cfg.Distance)
	r.place(cam, 5)

	angle := 0.3 + 5*cfg.OrbitSpeed
	pos := cam.Position()
	if !approxEqual(pos.X(), math.Sin(angle)*cfg.Distance, 1e-9) ||
		!approxEqual(pos.Z(), math.Cos(angle)*cfg.Distance, 1e-9) {
		t.Errorf("orbit position %v at angle %v", pos, angle)
	}
	if spin := r.starSpin(5); !approxEqual(spin, 0.3*cfg.StarSpinFactor, epsilon) {
		t.Errorf("star spin %v", spin)
	}
}
