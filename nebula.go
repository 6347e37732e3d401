package starfield

import (
	"image"
	"math"
	"math/rand/v2"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	nebulaMatrixStride = 16
	nebulaColorStride  = 3
	nebulaDataStride   = 4 // pulse speed, phase, base opacity, scale
)

// NebulaBuffer holds the per-instance data of the instanced cloud quads.
// Instances are immutable after generation and animated only through time.
type NebulaBuffer struct {
	Matrices []float32 // 16 per instance, column-major
	Colors   []float32 // 3 per instance
	Data     []float32 // 4 per instance: pulse speed, phase, base opacity, scale
}

// Len returns the number of instances.
func (b *NebulaBuffer) Len() int {
	return len(b.Data) / nebulaDataStride
}

// Matrix returns the transform of instance i.
func (b *NebulaBuffer) Matrix(i int) mgl64.Mat4 {
	var m mgl64.Mat4
	src := b.Matrices[i*nebulaMatrixStride : (i+1)*nebulaMatrixStride]
	for j, v := range src {
		m[j] = float64(v)
	}
	return m
}

// Color returns the palette color of instance i.
func (b *NebulaBuffer) Color(i int) Color {
	c := b.Colors[i*nebulaColorStride:]
	return Color{float64(c[0]), float64(c[1]), float64(c[2]), 1}
}

// Position returns the translation of instance i.
func (b *NebulaBuffer) Position(i int) mgl64.Vec3 {
	return b.Matrix(i).Col(3).Vec3()
}

// Opacity returns the base opacity of instance i.
func (b *NebulaBuffer) Opacity(i int) float64 {
	return float64(b.Data[i*nebulaDataStride+2])
}

// Shade returns the animated opacity and scale multiplier of instance i at
// time t with the given entrance progress in [0, 1].
func (b *NebulaBuffer) Shade(i int, t, entrance float64) (opacity, scale float64) {
	d := b.Data[i*nebulaDataStride:]
	pulse := NebulaPulse(float64(d[0]), float64(d[1]), t)
	opacity = float64(d[2]) * (0.8 + 0.4*pulse) * entrance
	scale = 1 + 0.05*pulse
	return opacity, scale
}

// NebulaPulse blends two sine waves into a pulse in [-1, 1].
func NebulaPulse(speed, phase, t float64) float64 {
	p1 := math.Sin(t*speed + phase)
	p2 := math.Sin(t*speed*2.3 + phase + 1)
	return (p1 + 0.5*p2) / 1.5
}

// GenerateNebula places count camera-facing cloud quads in the box described
// by cfg, each tinted with a palette color.
func GenerateNebula(count int, cfg NebulaConfig, rng *rand.Rand) *NebulaBuffer {
	if count < 0 {
		count = 0
	}
	b := &NebulaBuffer{
		Matrices: make([]float32, count*nebulaMatrixStride),
		Colors:   make([]float32, count*nebulaColorStride),
		Data:     make([]float32, count*nebulaDataStride),
	}
	for i := 0; i < count; i++ {
		c := ColorBlack
		if len(cfg.Palette) > 0 {
			c = cfg.Palette[rng.IntN(len(cfg.Palette))]
		}
		opacity := cfg.Opacity.Random(rng)
		scale := cfg.Scale.Random(rng)

		x := (rng.Float64() - 0.5) * cfg.Width
		y := (rng.Float64() - 0.5) * cfg.Height
		z := -cfg.NearZ - rng.Float64()*cfg.Depth
		rot := rng.Float64() * 2 * math.Pi

		m := mgl64.Translate3D(x, y, z).
			Mul4(mgl64.HomogRotate3DZ(rot)).
			Mul4(mgl64.Scale3D(scale, scale, 1))
		dst := b.Matrices[i*nebulaMatrixStride:]
		for j, v := range m {
			dst[j] = float32(v)
		}

		col := b.Colors[i*nebulaColorStride:]
		col[0], col[1], col[2] = float32(c.R), float32(c.G), float32(c.B)

		d := b.Data[i*nebulaDataStride:]
		d[0] = float32(cfg.PulseSpeed.Random(rng))
		d[1] = float32(rng.Float64() * 2 * math.Pi)
		d[2] = float32(opacity)
		d[3] = float32(scale)
	}
	return b
}

// release drops the instance arrays.
func (b *NebulaBuffer) release() {
	*b = NebulaBuffer{}
}

// entranceFade ramps the nebula in: zero for delay seconds, then a linear
// tween to one over duration seconds.
type entranceFade struct {
	delay   float32
	waited  float32
	tween   *gween.Tween
	value   float64
	settled bool
}

func newEntranceFade(delay, duration float64) *entranceFade {
	if duration <= 0 {
		return &entranceFade{value: 1, settled: true}
	}
	return &entranceFade{
		delay: float32(delay),
		tween: gween.New(0, 1, float32(duration), ease.Linear),
	}
}

// Update advances the fade by dt seconds and returns the progress in [0, 1].
func (f *entranceFade) Update(dt float64) float64 {
	if f.settled {
		return f.value
	}
	step := float32(dt)
	if f.waited < f.delay {
		f.waited += step
		if f.waited < f.delay {
			return f.value
		}
		step = f.waited - f.delay
	}
	v, done := f.tween.Update(step)
	f.value = clamp01(float64(v))
	if done {
		f.value = 1
		f.settled = true
	}
	return f.value
}

// Value returns the current progress.
func (f *entranceFade) Value() float64 {
	return f.value
}

// cloudStops are the radial gradient alpha stops of the cloud puff.
var cloudStops = [...]struct{ at, alpha float64 }{
	{0.0, 1.0},
	{0.2, 0.8},
	{0.5, 0.2},
	{0.8, 0.05},
	{1.0, 0.0},
}

// cloudAlpha evaluates the gradient at normalised radius r.
func cloudAlpha(r float64) float64 {
	if r <= 0 {
		return cloudStops[0].alpha
	}
	for i := 1; i < len(cloudStops); i++ {
		s0, s1 := cloudStops[i-1], cloudStops[i]
		if r <= s1.at {
			return lerp(s0.alpha, s1.alpha, (r-s0.at)/(s1.at-s0.at))
		}
	}
	return 0
}

// CloudTexture renders the soft puff used by every nebula quad: a white
// radial gradient whose alpha carries a little Perlin grain. A non-positive
// size yields a blank 1x1 texture so a missing drawing context never fails a
// mount.
func CloudTexture(size int, seed int64) *image.NRGBA {
	if size <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 1, 1))
	}
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	noise := perlin.NewPerlin(2, 2, 3, seed)
	half := float64(size) / 2
	grain := 32.0 / float64(size)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - half
			dy := float64(y) + 0.5 - half
			r := math.Sqrt(dx*dx+dy*dy) / half

			a := cloudAlpha(r) * 255
			if a > 0 {
				a += noise.Noise2D(float64(x)*grain, float64(y)*grain) * 15
			}
			white := 255.0
			if r > 0.8 {
				white = lerp(255, 0, clamp01((r-0.8)/0.2))
			}

			off := img.PixOffset(x, y)
			img.Pix[off+0] = uint8(white)
			img.Pix[off+1] = uint8(white)
			img.Pix[off+2] = uint8(white)
			img.Pix[off+3] = uint8(clamp(a, 0, 255))
		}
	}
	return img
}
