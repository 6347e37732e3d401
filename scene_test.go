package starfield

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// smallConfig shrinks a variant's generation so tests stay fast.
func smallConfig(cfg Config) Config {
	cfg.Seed = 1
	cfg.Stars.Count = 300
	if cfg.Nebula.Count > 0 {
		cfg.Nebula.Count = 10
		cfg.Nebula.TextureSize = 16
	}
	if cfg.Network.Nodes > 0 {
		cfg.Network.Nodes = 40
	}
	return cfg
}

func TestNewSceneHero(t *testing.T) {
	cfg := smallConfig(HeroConfig())
	s := NewScene(&cfg)
	if s.Stars == nil || s.Stars.Len() != 300 {
		t.Fatal("stars")
	}
	if s.Nebula == nil || s.Nebula.Len() != 10 || s.Cloud == nil {
		t.Fatal("nebula")
	}
	if s.ShootingStars == nil || s.ShootingStars.Capacity() != 20 {
		t.Fatal("shooting stars")
	}
	if s.Network != nil {
		t.Error("hero has no network")
	}
	if s.NebulaEntrance != 0 {
		t.Errorf("entrance %v at mount, want 0", s.NebulaEntrance)
	}
}

func TestNewSceneContact(t *testing.T) {
	cfg := smallConfig(ContactConfig())
	s := NewScene(&cfg)
	if s.Network == nil || len(s.Network.Nodes) != 40 || s.Network.Edges.Capacity != 600 {
		t.Fatal("network")
	}
	if s.Nebula != nil || s.ShootingStars != nil || s.Cloud != nil {
		t.Error("contact has only stars and network")
	}
}

func TestNewSceneDeterministic(t *testing.T) {
	cfg := smallConfig(HeroConfig())
	a, b := NewScene(&cfg), NewScene(&cfg)
	for i := range a.Stars.Positions {
		if a.Stars.Positions[i] != b.Stars.Positions[i] {
			t.Fatal("stars differ for equal seeds")
		}
	}
	for i := range a.Cloud.Pix {
		if a.Cloud.Pix[i] != b.Cloud.Pix[i] {
			t.Fatal("cloud textures differ for equal seeds")
		}
	}
}

func TestSceneAdvance(t *testing.T) {
	cfg := smallConfig(HeroConfig())
	s := NewScene(&cfg)
	for i := 0; i < 240; i++ {
		s.advance(1.0 / 60)
	}
	if !approxEqual(s.Time, 4, 1e-9) {
		t.Errorf("Time = %v, want 4", s.Time)
	}
	if s.NebulaEntrance != 1 {
		t.Errorf("entrance %v after 4s, want 1", s.NebulaEntrance)
	}
	if !approxEqual(s.NebulaRotationZ, 4*cfg.Nebula.Spin, 1e-9) {
		t.Errorf("nebula rotation %v", s.NebulaRotationZ)
	}
}

func TestSceneTransforms(t *testing.T) {
	s := &Scene{StarRotationY: math.Pi / 2, StarOffsetY: -100}
	p := s.StarTransform().Mul4x1(mgl64.Vec4{1, 0, 0, 1})
	if !approxEqual(p.X(), 0, 1e-9) || !approxEqual(p.Y(), -100, 1e-9) || !approxEqual(p.Z(), -1, 1e-9) {
		t.Errorf("star transform moved (1,0,0) to %v", p)
	}

	s.NebulaRotationZ = math.Pi / 2
	q := s.NebulaTransform().Mul4x1(mgl64.Vec4{1, 0, 0, 1})
	if !approxEqual(q.X(), 0, 1e-9) || !approxEqual(q.Y(), 1, 1e-9) {
		t.Errorf("nebula transform moved (1,0,0) to %v", q)
	}
}

func TestSceneFog(t *testing.T) {
	s := &Scene{FogDensity: 0.0003}
	if s.Fog(0) != 1 {
		t.Error("no fog at zero depth")
	}
	prev := 1.0
	for d := 100.0; d <= 3000; d += 100 {
		f := s.Fog(d)
		if f >= prev || f < 0 {
			t.Fatalf("fog at %v = %v, want below %v", d, f, prev)
		}
		prev = f
	}
	want := math.Exp(-(0.0003 * 2000) * (0.0003 * 2000))
	if !approxEqual(s.Fog(2000), want, 1e-12) {
		t.Errorf("Fog(2000) = %v, want %v", s.Fog(2000), want)
	}
	if (&Scene{}).Fog(1e6) != 1 {
		t.Error("zero density should not fog")
	}
}

func TestSceneDispose(t *testing.T) {
	cfg := smallConfig(HeroConfig())
	s := NewScene(&cfg)
	s.Dispose()
	if s.Stars != nil || s.Nebula != nil || s.Cloud != nil || s.ShootingStars != nil {
		t.Error("buffers survived Dispose")
	}
	s.Dispose()
}
