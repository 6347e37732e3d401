package starfield

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Scene is everything one mounted animator draws: the generated buffers,
// their group transforms and the shared time uniform. It is rebuilt per
// mount and never shared between animators.
type Scene struct {
	Background Color
	// FogDensity is the exponential-squared fog density. Fog fades toward
	// Background.
	FogDensity float64
	// Time is the scene clock in seconds, the sum of clamped frame deltas.
	Time float64

	Stars *StarBuffer
	// Star field group transform: rotation about Y, then a vertical offset.
	StarRotationY float64
	StarOffsetY   float64

	Nebula *NebulaBuffer
	// Nebula group rotation about Z and the current entrance progress.
	NebulaRotationZ float64
	NebulaEntrance  float64
	// Cloud is the texture every nebula quad samples.
	Cloud *image.NRGBA

	Network       *Network
	ShootingStars *ShootingStarPool

	fade       *entranceFade
	nebulaSpin float64
}

// NewScene generates every buffer cfg enables.
func NewScene(cfg *Config) *Scene {
	rng := newRand(cfg.Seed)
	s := &Scene{
		Background: cfg.Background,
		FogDensity: cfg.FogDensity,
	}
	if cfg.Stars.Count > 0 {
		s.Stars = GenerateStars(cfg.Stars.Count, cfg.Stars, rng)
	}
	if n := cfg.Nebula; n.Count > 0 {
		s.Nebula = GenerateNebula(n.Count, n, rng)
		s.Cloud = CloudTexture(n.TextureSize, int64(rng.Uint64()>>1))
		s.fade = newEntranceFade(n.EntranceDelay.Seconds(), n.EntranceDuration.Seconds())
		s.NebulaEntrance = s.fade.Value()
		s.nebulaSpin = n.Spin
	}
	if n := cfg.Network; n.Nodes > 0 {
		s.Network = NewNetwork(GenerateNetwork(n.Nodes, n, rng), n, cfg.referenceRate())
	}
	if cfg.ShootingStars.PoolSize > 0 {
		s.ShootingStars = NewShootingStarPool(cfg.ShootingStars, cfg.referenceRate(), rng)
	}
	return s
}

// advance moves the scene clock and the time-driven group animations by dt
// seconds.
func (s *Scene) advance(dt float64) {
	s.Time += dt
	if s.fade != nil {
		s.NebulaEntrance = s.fade.Update(dt)
	}
	s.NebulaRotationZ = s.Time * s.nebulaSpin
}

// StarTransform returns the star field's model matrix.
func (s *Scene) StarTransform() mgl64.Mat4 {
	return mgl64.Translate3D(0, s.StarOffsetY, 0).Mul4(mgl64.HomogRotate3DY(s.StarRotationY))
}

// NebulaTransform returns the nebula group's model matrix.
func (s *Scene) NebulaTransform() mgl64.Mat4 {
	return mgl64.HomogRotate3DZ(s.NebulaRotationZ)
}

// Fog returns the fraction of a color that survives fog at depth.
func (s *Scene) Fog(depth float64) float64 {
	if s.FogDensity <= 0 {
		return 1
	}
	d := s.FogDensity * depth
	return clamp01(math.Exp(-d * d))
}

// Dispose drops every buffer. The scene must not be drawn afterwards.
func (s *Scene) Dispose() {
	if s.Stars != nil {
		s.Stars.release()
		s.Stars = nil
	}
	if s.Nebula != nil {
		s.Nebula.release()
		s.Nebula = nil
	}
	if s.Network != nil {
		s.Network.release()
		s.Network = nil
	}
	if s.ShootingStars != nil {
		s.ShootingStars.Reset()
		s.ShootingStars = nil
	}
	s.Cloud = nil
	s.fade = nil
}
