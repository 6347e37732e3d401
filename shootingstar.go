package starfield

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// TrailColors are the fixed vertex colors of a shooting-star trail: the tail
// is transparent and the head opaque. Overall opacity follows the star's life.
var TrailColors = [6]float32{0, 0, 0, 1, 1, 1}

// ShootingStar is one pooled trail entity.
type ShootingStar struct {
	Active bool
	Pos    mgl64.Vec3
	// Vel is in world units per reference frame.
	Vel         mgl64.Vec3
	Angle       float64
	TrailLength float64
	// Life runs from 1 to 0; Opacity is max(0, Life).
	Life    float64
	Opacity float64
}

// Trail returns the tail and head of the trail in world space.
func (s *ShootingStar) Trail() (tail, head mgl64.Vec3) {
	dir := mgl64.Vec3{math.Cos(s.Angle), math.Sin(s.Angle), 0}
	return s.Pos.Sub(dir.Mul(s.TrailLength)), s.Pos
}

// ShootingStarPool is a fixed set of trail entities toggled active and
// inactive instead of being allocated per spawn.
type ShootingStarPool struct {
	stars  []ShootingStar
	active int
	config ShootingStarConfig
	rate   float64
	rng    *rand.Rand
}

// NewShootingStarPool creates a pool with cfg.PoolSize inactive entities.
func NewShootingStarPool(cfg ShootingStarConfig, referenceRate float64, rng *rand.Rand) *ShootingStarPool {
	size := cfg.PoolSize
	if size < 0 {
		size = 0
	}
	if referenceRate <= 0 {
		referenceRate = 60
	}
	return &ShootingStarPool{
		stars:  make([]ShootingStar, size),
		config: cfg,
		rate:   referenceRate,
		rng:    rng,
	}
}

// Capacity returns the fixed pool size.
func (p *ShootingStarPool) Capacity() int {
	return len(p.stars)
}

// ActiveCount returns the number of active entities.
func (p *ShootingStarPool) ActiveCount() int {
	return p.active
}

// Stars returns the pool's entities. The returned slice MUST NOT be resized.
func (p *ShootingStarPool) Stars() []ShootingStar {
	return p.stars
}

// Config returns a pointer to the pool's config for live tuning.
func (p *ShootingStarPool) Config() *ShootingStarConfig {
	return &p.config
}

// Spawn activates the first inactive entity with a random start, heading
// and speed. It reports false, changing nothing, when every slot is active.
func (p *ShootingStarPool) Spawn() bool {
	idx := -1
	for i := range p.stars {
		if !p.stars[i].Active {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	cfg := &p.config
	rng := p.rng
	angle := cfg.Angle.Random(rng)
	speed := cfg.Speed.Random(rng)

	s := &p.stars[idx]
	s.Pos = mgl64.Vec3{
		(rng.Float64() - 0.5) * cfg.Width,
		(rng.Float64() - 0.5) * cfg.Height,
		(rng.Float64()-0.5)*cfg.Depth + cfg.DepthOffset,
	}
	s.Vel = mgl64.Vec3{math.Cos(angle) * speed, math.Sin(angle) * speed, 0}
	s.Angle = angle
	s.TrailLength = cfg.TrailLength.Random(rng)
	s.Life = 1
	s.Opacity = 1
	s.Active = true
	p.active++
	return true
}

// Step runs one frame of dt seconds: a spawn attempt with the configured
// chance, then advances every active entity.
func (p *ShootingStarPool) Step(dt float64) {
	if dt <= 0 {
		return
	}
	chance := 1 - math.Pow(1-p.config.SpawnChance, dt*p.rate)
	if p.rng.Float64() < chance {
		p.Spawn()
	}
	p.update(dt)
}

// update moves active entities along their velocity, decays their life and
// retires those that reach zero.
func (p *ShootingStarPool) update(dt float64) {
	decay := p.config.LifeDecay * dt
	move := dt * p.rate
	for i := range p.stars {
		s := &p.stars[i]
		if !s.Active {
			continue
		}
		s.Pos[0] += s.Vel[0] * move
		s.Pos[1] += s.Vel[1] * move
		s.Life -= decay
		s.Opacity = math.Max(0, s.Life)
		if s.Life <= 0 {
			s.Active = false
			p.active--
		}
	}
}

// Reset deactivates every entity.
func (p *ShootingStarPool) Reset() {
	for i := range p.stars {
		p.stars[i] = ShootingStar{}
	}
	p.active = 0
}
