package starfield

import (
	"math"
	"testing"
)

func TestSmoothFactorComposes(t *testing.T) {
	bases := []float64{0.0001, 0.001, 0.01, math.Pow(0.95, 60), 0.5}
	for _, base := range bases {
		full := smoothToward(0, 1, base, 1.0/60)
		half := smoothToward(0, 1, base, 1.0/120)
		half = smoothToward(half, 1, base, 1.0/120)
		if math.Abs(full-half) > 1e-12 {
			t.Errorf("base %v: one step %v, two half steps %v", base, full, half)
		}
	}
}

func TestSmoothFactorZeroDelta(t *testing.T) {
	if got := smoothFactor(0.01, 0); got != 0 {
		t.Errorf("smoothFactor(dt=0) = %v, want 0", got)
	}
	if got := smoothFactor(0.01, -1); got != 0 {
		t.Errorf("smoothFactor(dt<0) = %v, want 0", got)
	}
}

func TestSmoothTowardApproachesTarget(t *testing.T) {
	v := 0.0
	prev := v
	for i := 0; i < 600; i++ {
		v = smoothToward(v, 10, 0.01, 1.0/60)
		if v < prev || v > 10 {
			t.Fatalf("frame %d: %v after %v, want monotonic within target", i, v, prev)
		}
		prev = v
	}
	if math.Abs(v-10) > 1e-6 {
		t.Errorf("after 10s v = %v, want 10", v)
	}
}

func TestHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ffffff", Color{1, 1, 1, 1}},
		{"#000000", Color{0, 0, 0, 1}},
		{"#FF0000", Color{1, 0, 0, 1}},
		{"#4c1d95", Color{0x4c / 255.0, 0x1d / 255.0, 0x95 / 255.0, 1}},
		{"ffffff", ColorBlack},
		{"#fff", ColorBlack},
		{"#gggggg", ColorBlack},
	}
	for _, tt := range tests {
		if got := HexColor(tt.in); got != tt.want {
			t.Errorf("HexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestColorToRGBAPremultiplies(t *testing.T) {
	c := Color{1, 0.5, 0, 0.5}.toRGBA()
	if c.A != 127 || c.R != 127 || c.G != 63 || c.B != 0 {
		t.Errorf("toRGBA = %+v", c)
	}
}

func TestRangeRandom(t *testing.T) {
	rng := newRand(7)
	r := Range{2, 5}
	for i := 0; i < 1000; i++ {
		if v := r.Random(rng); !r.Contains(v) {
			t.Fatalf("Random = %v, outside %v", v, r)
		}
	}
	if v := (Range{3, 3}).Random(rng); v != 3 {
		t.Errorf("degenerate range = %v, want 3", v)
	}
}

func TestNewRandSeeded(t *testing.T) {
	a, b := newRand(42), newRand(42)
	for i := 0; i < 10; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatal("same seed produced different sequences")
		}
	}
}

func TestVariantString(t *testing.T) {
	if VariantHero.String() != "hero" || VariantContact.String() != "contact" {
		t.Error("variant names")
	}
	if Variant(9).String() != "unknown" {
		t.Error("unknown variant name")
	}
}

func TestBlendModes(t *testing.T) {
	if BlendAdd.EbitenBlend() == BlendNormal.EbitenBlend() {
		t.Error("additive and normal blend should differ")
	}
}

func TestRectEmpty(t *testing.T) {
	if !(Rect{Width: 0, Height: 10}).Empty() {
		t.Error("zero width should be empty")
	}
	if (Rect{Width: 1, Height: 1}).Empty() {
		t.Error("1x1 should not be empty")
	}
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	if cfg.frameDeltaCap() != 0.1 {
		t.Errorf("frameDeltaCap = %v, want 0.1", cfg.frameDeltaCap())
	}
	if cfg.referenceRate() != 60 {
		t.Errorf("referenceRate = %v, want 60", cfg.referenceRate())
	}
}

func TestVariantConfigs(t *testing.T) {
	hero, contact := HeroConfig(), ContactConfig()
	if hero.Variant != VariantHero || contact.Variant != VariantContact {
		t.Fatal("variant mismatch")
	}
	if hero.Nebula.Count == 0 || hero.ShootingStars.PoolSize == 0 || hero.Network.Nodes != 0 {
		t.Error("hero should have nebula and shooting stars but no network")
	}
	if contact.Nebula.Count != 0 || contact.ShootingStars.PoolSize != 0 || contact.Network.Nodes == 0 {
		t.Error("contact should have a network and nothing else")
	}
	if !hero.Camera.Orbit || contact.Camera.Orbit {
		t.Error("only the hero camera orbits")
	}
	if hero.MaxPixelRatio != 1.5 || contact.MaxPixelRatio != 1.5 {
		t.Error("pixel ratio cap")
	}
	if contact.Network.MaxEdges != 600 {
		t.Errorf("MaxEdges = %d, want 600", contact.Network.MaxEdges)
	}
}
