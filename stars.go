package starfield

import (
	"math"
	"math/rand/v2"
)

// Attribute strides for StarBuffer.
const (
	starPosStride   = 3
	starColorStride = 3
	starExtraStride = 4 // glow, twinkle, base alpha, scintillation
)

var (
	starWhite  = [3]float32{1.0, 1.0, 1.0}
	starBlue   = [3]float32{0.7, 0.8, 1.0}
	starYellow = [3]float32{1.0, 0.9, 0.7}
)

// Star is one entry of a StarBuffer, unpacked for inspection.
type Star struct {
	X, Y, Z       float64
	R, G, B       float64
	Size          float64
	Phase         float64
	Frequency     float64
	Glow          bool
	Twinkle       bool
	Alpha         float64
	Scintillation float64
}

// Radius returns the star's distance from the origin.
func (s Star) Radius() float64 {
	return math.Sqrt(s.X*s.X + s.Y*s.Y + s.Z*s.Z)
}

// StarBuffer holds generated stars as flat attribute arrays, ready to be
// streamed to the GPU. Stars are immutable after generation; only the shared
// time uniform animates them.
type StarBuffer struct {
	Positions   []float32 // 3 per star
	Colors      []float32 // 3 per star
	Sizes       []float32
	Phases      []float32
	Frequencies []float32
	Extra       []float32 // 4 per star: glow, twinkle, base alpha, scintillation
	shading     StarShading
}

// Len returns the number of stars.
func (b *StarBuffer) Len() int {
	return len(b.Sizes)
}

// Star unpacks star i.
func (b *StarBuffer) Star(i int) Star {
	p := b.Positions[i*starPosStride:]
	c := b.Colors[i*starColorStride:]
	e := b.Extra[i*starExtraStride:]
	return Star{
		X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2]),
		R: float64(c[0]), G: float64(c[1]), B: float64(c[2]),
		Size:          float64(b.Sizes[i]),
		Phase:         float64(b.Phases[i]),
		Frequency:     float64(b.Frequencies[i]),
		Glow:          e[0] > 0,
		Twinkle:       e[1] > 0,
		Alpha:         float64(e[2]),
		Scintillation: float64(e[3]),
	}
}

// GenerateStars fills a StarBuffer with count stars placed in the spherical
// shell described by cfg.
func GenerateStars(count int, cfg StarConfig, rng *rand.Rand) *StarBuffer {
	if count < 0 {
		count = 0
	}
	b := &StarBuffer{
		Positions:   make([]float32, count*starPosStride),
		Colors:      make([]float32, count*starColorStride),
		Sizes:       make([]float32, count),
		Phases:      make([]float32, count),
		Frequencies: make([]float32, count),
		Extra:       make([]float32, count*starExtraStride),
		shading:     cfg.Shading,
	}

	shell := Range{cfg.InnerRadius, cfg.OuterRadius}
	for i := 0; i < count; i++ {
		r := shell.Random(rng)
		x, y, z := sampleDirection(cfg, rng)
		p := b.Positions[i*starPosStride:]
		p[0] = float32(r * x)
		p[1] = float32(r * y)
		p[2] = float32(r * z)

		// One draw decides both the size bucket and the glow flag, so glow
		// only lands on bright stars.
		seed := rng.Float64()
		if seed < 1-cfg.BrightChance {
			b.Sizes[i] = float32(cfg.SmallSize.Random(rng))
		} else {
			b.Sizes[i] = float32(cfg.BrightSize.Random(rng))
		}
		b.Phases[i] = float32(rng.Float64() * 2 * math.Pi)
		b.Frequencies[i] = float32(cfg.Frequency.Random(rng))

		e := b.Extra[i*starExtraStride:]
		if seed > 1-cfg.GlowChance {
			e[0] = 1
		}
		if rng.Float64() < cfg.TwinkleChance {
			e[1] = 1
		}
		e[2] = float32(cfg.Alpha.Random(rng))
		if rng.Float64() < cfg.ScintillationChance {
			e[3] = float32(cfg.Scintillation.Random(rng))
		}

		tint := starWhite
		switch cs := rng.Float64(); {
		case cs < cfg.BlueChance:
			tint = starBlue
		case cs < cfg.BlueChance+cfg.YellowChance:
			tint = starYellow
		}
		copy(b.Colors[i*starColorStride:], tint[:])
	}
	return b
}

// sampleDirection returns a unit vector drawn according to cfg.Distribution.
func sampleDirection(cfg StarConfig, rng *rand.Rand) (x, y, z float64) {
	theta := 2 * math.Pi * rng.Float64()
	switch cfg.Distribution {
	case DistributionPolarBias:
		bias := cfg.PolarBias
		if bias <= 0 {
			bias = 1
		}
		cosPhi := 1 - 2*math.Pow(rng.Float64(), bias)
		sinPhi := math.Sqrt(math.Max(0, 1-cosPhi*cosPhi))
		return sinPhi * math.Cos(theta), cosPhi, sinPhi * math.Sin(theta)
	default:
		cosPhi := 2*rng.Float64() - 1
		sinPhi := math.Sqrt(math.Max(0, 1-cosPhi*cosPhi))
		return sinPhi * math.Cos(theta), sinPhi * math.Sin(theta), cosPhi
	}
}

// Twinkle returns the brightness wave for star i at time t: 0.5+0.5*sin(t*f+phase)
// for twinkling stars, 1 for the rest.
func (b *StarBuffer) Twinkle(i int, t float64) float64 {
	if b.Extra[i*starExtraStride+1] == 0 {
		return 1
	}
	return 0.5 + 0.5*math.Sin(t*float64(b.Frequencies[i])+float64(b.Phases[i]))
}

// Shade computes how star i is drawn at time t: its alpha, a multiplier for
// its point size and its color after scintillation.
func (b *StarBuffer) Shade(i int, t float64) (alpha, sizeScale float64, c Color) {
	sh := &b.shading
	tw := b.Twinkle(i, t)
	e := b.Extra[i*starExtraStride:]
	alpha = float64(e[2]) * (sh.AlphaFloor + sh.AlphaGain*tw)
	sizeScale = sh.SizeFloor + sh.SizeGain*tw

	col := b.Colors[i*starColorStride:]
	c = Color{float64(col[0]), float64(col[1]), float64(col[2]), 1}
	if scin := float64(e[3]); scin > 0 {
		flicker := math.Sin(t*sh.FlickerRate + float64(b.Phases[i])*sh.FlickerPhase)
		k := lerp(1, 1+flicker*sh.FlickerGain*scin, scin)
		c.R *= k
		c.G *= k
		c.B *= k
	}
	return alpha, sizeScale, c
}

// Glow reports whether star i carries the soft halo.
func (b *StarBuffer) Glow(i int) bool {
	return b.Extra[i*starExtraStride] > 0
}

// release drops the attribute arrays.
func (b *StarBuffer) release() {
	*b = StarBuffer{}
}
