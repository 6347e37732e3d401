package starfield

import (
	"math"
	"time"
)

// StarDistribution selects how star directions are sampled on the shell.
type StarDistribution uint8

const (
	// DistributionUniform samples directions uniformly over the sphere.
	DistributionUniform StarDistribution = iota
	// DistributionPolarBias raises a uniform draw to PolarBias before mapping
	// it to cos(polar angle), crowding stars toward one pole.
	DistributionPolarBias
)

// StarConfig controls star field generation and shading.
type StarConfig struct {
	// Count is the number of stars. Zero disables the star field.
	Count int
	// InnerRadius and OuterRadius bound the spherical shell stars are placed in.
	InnerRadius float64
	OuterRadius float64
	// Distribution selects the direction sampler; PolarBias is its exponent.
	Distribution StarDistribution
	PolarBias    float64

	// BrightChance is the probability a star is drawn from BrightSize rather
	// than SmallSize.
	BrightChance float64
	SmallSize    Range
	BrightSize   Range
	// GlowChance is the probability a star carries the glow flag.
	GlowChance float64

	// BlueChance and YellowChance are the tint buckets; the rest are white.
	BlueChance   float64
	YellowChance float64

	// TwinkleChance gates whether a star's brightness follows the twinkle wave.
	TwinkleChance float64
	Frequency     Range
	Alpha         Range

	ScintillationChance float64
	Scintillation       Range

	Shading StarShading
}

// StarShading holds the per-variant constants applied when a star is drawn.
type StarShading struct {
	// Alpha = baseAlpha * (AlphaFloor + AlphaGain*twinkle)
	AlphaFloor, AlphaGain float64
	// Size multiplier = SizeFloor + SizeGain*twinkle
	SizeFloor, SizeGain float64
	// MinPointSize is the smallest on-screen point size in device pixels,
	// before the pixel ratio is applied.
	MinPointSize float64
	// PointScale is the perspective numerator: size * PointScale / depth.
	PointScale float64
	// Colour flicker for scintillating stars: sin(t*FlickerRate + phase*FlickerPhase).
	FlickerRate, FlickerPhase, FlickerGain float64
}

// NebulaConfig controls the instanced cloud quads.
type NebulaConfig struct {
	// Count is the number of cloud instances. Zero disables the nebula.
	Count int
	// Box is the placement volume: X in ±Width/2, Y in ±Height/2,
	// Z in [-NearZ-Depth, -NearZ].
	Width, Height, NearZ, Depth float64
	Palette                     []Color
	Opacity                     Range
	Scale                       Range
	PulseSpeed                  Range
	// EntranceDelay and EntranceDuration shape the fade-in after mount.
	EntranceDelay    time.Duration
	EntranceDuration time.Duration
	// Spin is the group's rotation about Z in radians per second.
	Spin float64
	// TextureSize is the edge length of the generated cloud texture.
	TextureSize int
}

// NetworkConfig controls the node-link network and its physics.
type NetworkConfig struct {
	// Nodes is the number of nodes. Zero disables the network.
	Nodes  int
	Radius float64

	Spring          float64
	Friction        float64
	InfluenceRadius float64
	MaxAttraction   float64

	// EdgeDistance is the proximity threshold; MaxEdges the buffer capacity.
	EdgeDistance float64
	MaxEdges     int

	// Cursor projection: mouse NDC times these scales gives world units.
	CursorScaleX, CursorScaleY float64
	// CursorFalloff is the radius over which edges brighten near the cursor.
	CursorFalloff float64
	BaseIntensity float64
	CursorBoost   float64
	Hues          [3]Color
}

// ShootingStarConfig controls the pooled shooting-star trails.
type ShootingStarConfig struct {
	// PoolSize is the fixed number of trail entities. Zero disables them.
	PoolSize int
	// SpawnChance is the per-frame spawn probability at the reference rate.
	SpawnChance float64
	// Spawn box: X in ±Width/2, Y in ±Height/2, Z in DepthOffset ± Depth/2.
	Width, Height, Depth, DepthOffset float64
	// Angle is measured from horizontal in radians (negative is downward).
	Angle Range
	// Speed is in world units per reference frame.
	Speed       Range
	TrailLength Range
	// LifeDecay is the life lost per second.
	LifeDecay float64
}

// CameraConfig controls camera projection and the scroll/mouse rig.
type CameraConfig struct {
	FOV, Near, Far float64
	Distance       float64

	// MouseOffset converts mouse NDC into a camera offset in world units.
	MouseOffset float64
	// SnapFirstMove makes the first pointer move set the offset directly.
	SnapFirstMove bool

	// Per-second retention bases for exponential smoothing.
	MouseSmoothing    float64
	ParallaxSmoothing float64
	RotationSmoothing float64

	// ParallaxScale converts the parallax value into world units of drop.
	ParallaxScale float64
	// SectionParallax maps the container's position in the viewport instead
	// of the absolute scroll offset.
	SectionParallax bool
	ParallaxMax     float64

	// Orbit enables circling the origin at Distance.
	Orbit      bool
	OrbitSpeed float64
	// Scroll-driven rotation starts past RotationThreshold pixels.
	RotationThreshold float64
	RotationRate      float64
	// StarSpin rotates the star field by StarSpinFactor*rotation (orbiting)
	// or StarSpin*t (fixed camera).
	StarSpinFactor float64
	StarSpin       float64
}

// Config is the full parameter set for one mounted scene.
type Config struct {
	Variant Variant
	// Seed makes generation deterministic when non-zero.
	Seed uint64

	Stars         StarConfig
	Nebula        NebulaConfig
	Network       NetworkConfig
	ShootingStars ShootingStarConfig
	Camera        CameraConfig

	Background Color
	FogDensity float64

	// MaxPixelRatio caps the device pixel ratio to bound fragment cost.
	MaxPixelRatio float64
	// MaxFrameDelta clamps the elapsed time between frames.
	MaxFrameDelta time.Duration
	// ReferenceRate is the frame rate the per-frame physics constants were
	// tuned at.
	ReferenceRate float64

	// NewRenderer builds the renderer at mount. Nil uses NewEbitenRenderer.
	NewRenderer RendererFactory
	// Logger receives lifecycle and debug output. Nil discards it.
	Logger Logger
	// Debug enables per-frame stats logging.
	Debug bool
}

// HeroConfig returns the parameter set for the hero background: a dense,
// pole-biased star field, a drifting nebula and occasional shooting stars,
// seen from a camera that orbits as the page scrolls.
func HeroConfig() Config {
	return Config{
		Variant: VariantHero,
		Stars: StarConfig{
			Count:               12000,
			InnerRadius:         1000,
			OuterRadius:         2000,
			Distribution:        DistributionPolarBias,
			PolarBias:           1.8,
			BrightChance:        0.2,
			SmallSize:           Range{0.8, 2.0},
			BrightSize:          Range{2.0, 3.5},
			GlowChance:          0.06,
			BlueChance:          0.04,
			YellowChance:        0.04,
			TwinkleChance:       0.2,
			Frequency:           Range{0.5, 1.5},
			Alpha:               Range{0.4, 1.0},
			ScintillationChance: 0.08,
			Scintillation:       Range{0.2, 0.4},
			Shading: StarShading{
				AlphaFloor:   0.4,
				AlphaGain:    1.0,
				SizeFloor:    0.9,
				SizeGain:     0.2,
				MinPointSize: 2.0,
				PointScale:   600,
				FlickerRate:  6,
				FlickerPhase: 10,
				FlickerGain:  0.1,
			},
		},
		Nebula: NebulaConfig{
			Count:  50,
			Width:  2000,
			Height: 1000,
			NearZ:  200,
			Depth:  800,
			Palette: []Color{
				HexColor("#4c1d95"),
				HexColor("#065f46"),
				HexColor("#312e81"),
				HexColor("#164e63"),
			},
			Opacity:          Range{0.07, 0.20},
			Scale:            Range{500, 1200},
			PulseSpeed:       Range{0.05, 0.10},
			EntranceDelay:    time.Second,
			EntranceDuration: 2 * time.Second,
			Spin:             0.01,
			TextureSize:      256,
		},
		ShootingStars: ShootingStarConfig{
			PoolSize:    20,
			SpawnChance: 0.006,
			Width:       2000,
			Height:      1200,
			Depth:       400,
			DepthOffset: -100,
			Angle:       Range{-math.Pi/6 - math.Pi/4, -math.Pi / 6},
			Speed:       Range{25, 40},
			TrailLength: Range{10, 30},
			LifeDecay:   1.2,
		},
		Camera: CameraConfig{
			FOV:               60,
			Near:              0.1,
			Far:               2000,
			Distance:          500,
			MouseOffset:       50,
			SnapFirstMove:     true,
			MouseSmoothing:    0.0001,
			ParallaxSmoothing: 0.001,
			RotationSmoothing: 0.01,
			ParallaxScale:     1000,
			Orbit:             true,
			OrbitSpeed:        0.02,
			RotationThreshold: 800,
			RotationRate:      0.0015,
			StarSpinFactor:    0.8,
		},
		Background:    ColorBlack,
		FogDensity:    0.0003,
		MaxPixelRatio: 1.5,
		MaxFrameDelta: 100 * time.Millisecond,
		ReferenceRate: 60,
	}
}

// ContactConfig returns the parameter set for the contact section: a sparser
// star field and a cursor-reactive node network in front of a fixed camera.
func ContactConfig() Config {
	cfg := HeroConfig()
	cfg.Variant = VariantContact
	cfg.Nebula = NebulaConfig{}
	cfg.ShootingStars = ShootingStarConfig{}

	s := &cfg.Stars
	s.Count = 3000
	s.Distribution = DistributionUniform
	s.SmallSize = Range{0.8, 2.3}
	s.BrightSize = Range{2.5, 4.5}
	s.GlowChance = 0.08
	s.BlueChance = 0.05
	s.YellowChance = 0.07
	s.Frequency = Range{2, 6}
	s.Scintillation = Range{0.4, 0.8}
	s.Shading = StarShading{
		AlphaFloor:   0.15,
		AlphaGain:    1.35,
		SizeFloor:    0.75,
		SizeGain:     0.5,
		MinPointSize: 1.0,
		PointScale:   600,
		FlickerRate:  30,
		FlickerPhase: 8,
		FlickerGain:  0.15,
	}

	cfg.Network = NetworkConfig{
		Nodes:           180,
		Radius:          800,
		Spring:          0.012,
		Friction:        0.92,
		InfluenceRadius: 450,
		MaxAttraction:   8.0,
		EdgeDistance:    280,
		MaxEdges:        600,
		CursorScaleX:    600,
		CursorScaleY:    400,
		CursorFalloff:   500,
		BaseIntensity:   0.003,
		CursorBoost:     0.3,
		Hues: [3]Color{
			{0.5, 0.5, 0.5, 1},
			{0.2, 0.5, 1.0, 1},
			{1.0, 0.8, 0.3, 1},
		},
	}

	c := &cfg.Camera
	c.SnapFirstMove = false
	// Per-frame factors 0.05 (mouse) and 0.12 (parallax) at 60 Hz, as
	// per-second retention bases.
	c.MouseSmoothing = math.Pow(1-0.05, 60)
	c.ParallaxSmoothing = math.Pow(1-0.12, 60)
	c.SectionParallax = true
	c.ParallaxMax = 1.2
	c.Orbit = false
	c.RotationThreshold = 0
	c.RotationRate = 0
	c.StarSpinFactor = 0
	c.StarSpin = 0.02
	return cfg
}

// frameDeltaCap returns MaxFrameDelta in seconds, defaulting to 0.1.
func (c *Config) frameDeltaCap() float64 {
	if c.MaxFrameDelta <= 0 {
		return 0.1
	}
	return c.MaxFrameDelta.Seconds()
}

// referenceRate returns ReferenceRate, defaulting to 60.
func (c *Config) referenceRate() float64 {
	if c.ReferenceRate <= 0 {
		return 60
	}
	return c.ReferenceRate
}
