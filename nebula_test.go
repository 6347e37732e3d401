package starfield

import (
	"math"
	"testing"
)

func TestGenerateNebulaBounds(t *testing.T) {
	cfg := HeroConfig().Nebula
	b := GenerateNebula(cfg.Count, cfg, newRand(1))
	if b.Len() != cfg.Count {
		t.Fatalf("Len = %d, want %d", b.Len(), cfg.Count)
	}
	const eps = 1e-3
	for i := 0; i < b.Len(); i++ {
		p := b.Position(i)
		if math.Abs(p.X()) > cfg.Width/2+eps || math.Abs(p.Y()) > cfg.Height/2+eps {
			t.Fatalf("instance %d at %v outside box", i, p)
		}
		if p.Z() > -cfg.NearZ+eps || p.Z() < -cfg.NearZ-cfg.Depth-eps {
			t.Fatalf("instance %d z %v outside [%v, %v]", i, p.Z(), -cfg.NearZ-cfg.Depth, -cfg.NearZ)
		}
		if o := b.Opacity(i); o < cfg.Opacity.Min-eps || o > cfg.Opacity.Max+eps {
			t.Fatalf("instance %d opacity %v", i, o)
		}
	}
}

func TestGenerateNebulaPalette(t *testing.T) {
	cfg := HeroConfig().Nebula
	b := GenerateNebula(200, cfg, newRand(2))
	for i := 0; i < b.Len(); i++ {
		c := b.Color(i)
		found := false
		for _, p := range cfg.Palette {
			if math.Abs(c.R-p.R) < 1e-6 && math.Abs(c.G-p.G) < 1e-6 && math.Abs(c.B-p.B) < 1e-6 {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("instance %d color %v not in palette", i, c)
		}
	}
}

func TestGenerateNebulaScale(t *testing.T) {
	cfg := HeroConfig().Nebula
	b := GenerateNebula(50, cfg, newRand(3))
	for i := 0; i < b.Len(); i++ {
		m := b.Matrix(i)
		sx := m.Col(0).Vec3().Len()
		if sx < cfg.Scale.Min-0.01 || sx > cfg.Scale.Max+0.01 {
			t.Fatalf("instance %d scale %v", i, sx)
		}
		if sz := m.Col(2).Vec3().Len(); math.Abs(sz-1) > 1e-5 {
			t.Fatalf("instance %d z scale %v, want 1", i, sz)
		}
	}
}

func TestNebulaPulseRange(t *testing.T) {
	for tm := 0.0; tm < 200; tm += 0.37 {
		p := NebulaPulse(0.08, 1.3, tm)
		if p < -1 || p > 1 {
			t.Fatalf("pulse %v at t=%v", p, tm)
		}
	}
}

func TestNebulaShadeEntrance(t *testing.T) {
	cfg := HeroConfig().Nebula
	b := GenerateNebula(10, cfg, newRand(4))
	for i := 0; i < b.Len(); i++ {
		if o, _ := b.Shade(i, 5, 0); o != 0 {
			t.Fatalf("opacity %v with zero entrance", o)
		}
		o, k := b.Shade(i, 5, 1)
		base := b.Opacity(i)
		if o < base*0.4-1e-9 || o > base*1.2+1e-9 {
			t.Fatalf("opacity %v outside pulse range of %v", o, base)
		}
		if k < 0.95 || k > 1.05 {
			t.Fatalf("scale multiplier %v", k)
		}
	}
}

func TestEntranceFade(t *testing.T) {
	f := newEntranceFade(1, 2)
	const dt = 1.0 / 60
	prev := 0.0
	for i := 1; i <= 240; i++ {
		v := f.Update(dt)
		tm := float64(i) * dt
		if v < prev {
			t.Fatalf("t=%.3f: fade %v decreased from %v", tm, v, prev)
		}
		if tm < 0.95 && v != 0 {
			t.Fatalf("t=%.3f: fade %v before delay", tm, v)
		}
		if tm > 1.95 && tm < 2.05 && math.Abs(v-0.5) > 0.05 {
			t.Fatalf("t=%.3f: fade %v, want ~0.5", tm, v)
		}
		if tm >= 3.05 && v != 1 {
			t.Fatalf("t=%.3f: fade %v after entrance", tm, v)
		}
		prev = v
	}
	if f.Value() != 1 {
		t.Errorf("Value = %v, want 1", f.Value())
	}
}

func TestEntranceFadeLargeStep(t *testing.T) {
	f := newEntranceFade(1, 2)
	if v := f.Update(10); v != 1 {
		t.Errorf("single large step = %v, want 1", v)
	}
}

func TestEntranceFadeNoDuration(t *testing.T) {
	f := newEntranceFade(1, 0)
	if f.Value() != 1 || f.Update(0.1) != 1 {
		t.Error("zero duration should be fully faded in")
	}
}

func TestCloudTexture(t *testing.T) {
	img := CloudTexture(64, 7)
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Fatalf("bounds %v", b)
	}
	center := img.NRGBAAt(32, 32)
	if center.A < 200 || center.R != 255 {
		t.Errorf("center %+v, want bright opaque", center)
	}
	if corner := img.NRGBAAt(0, 0); corner.A != 0 {
		t.Errorf("corner alpha %d, want 0", corner.A)
	}
	if edge := img.NRGBAAt(32, 0); edge.A > 40 {
		t.Errorf("edge alpha %d, want faint", edge.A)
	}
}

func TestCloudTextureDegenerate(t *testing.T) {
	img := CloudTexture(0, 1)
	if b := img.Bounds(); b.Dx() != 1 || b.Dy() != 1 {
		t.Errorf("bounds %v, want 1x1", b)
	}
}

func TestCloudAlphaStops(t *testing.T) {
	tests := []struct{ r, want float64 }{
		{0, 1}, {0.1, 0.9}, {0.2, 0.8}, {0.5, 0.2}, {1, 0}, {1.5, 0},
	}
	for _, tt := range tests {
		if got := cloudAlpha(tt.r); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("cloudAlpha(%v) = %v, want %v", tt.r, got, tt.want)
		}
	}
}
