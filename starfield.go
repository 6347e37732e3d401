package starfield

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorBlack is the scene background and fog color.
var ColorBlack = Color{0, 0, 0, 1}

// HexColor parses a "#rrggbb" string into an opaque Color. Malformed input
// yields black.
func HexColor(s string) Color {
	if len(s) != 7 || s[0] != '#' {
		return ColorBlack
	}
	var v [3]float64
	for i := 0; i < 3; i++ {
		hi, ok1 := hexNibble(s[1+i*2])
		lo, ok2 := hexNibble(s[2+i*2])
		if !ok1 || !ok2 {
			return ColorBlack
		}
		v[i] = float64(hi<<4|lo) / 255
	}
	return Color{v[0], v[1], v[2], 1}
}

func hexNibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Range is a general-purpose min/max range used by the generators.
type Range struct {
	Min, Max float64
}

// Random returns a random float64 in [Min, Max] drawn from rng.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Contains reports whether v lies inside the range, inclusive.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// BlendMode selects a compositing operation. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                     // additive / lighter
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdd:
		return ebiten.BlendLighter
	default:
		return ebiten.BlendSourceOver
	}
}

// Variant selects which section of the page a scene decorates.
type Variant uint8

const (
	VariantHero    Variant = iota // star field, nebula and shooting stars behind the hero
	VariantContact                // star field and node network behind the contact form
)

// String returns the variant name used in logs.
func (v Variant) String() string {
	switch v {
	case VariantHero:
		return "hero"
	case VariantContact:
		return "contact"
	default:
		return "unknown"
	}
}

// newRand returns a PCG-backed generator. A zero seed draws a random one.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// smoothFactor converts a per-second retention base into the blend factor for
// a step of dt seconds: 1 - base^dt. Two steps of dt/2 compose to one step of dt.
func smoothFactor(base, dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	return 1 - math.Pow(base, dt)
}

// smoothToward moves current toward target by the time-aware smoothing factor.
func smoothToward(current, target, base, dt float64) float64 {
	return current + (target-current)*smoothFactor(base, dt)
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}
