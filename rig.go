package starfield

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// cameraRig turns pointer and scroll input into camera motion. Every target
// is approached with time-aware exponential smoothing so the feel does not
// depend on the display's refresh rate.
type cameraRig struct {
	cfg CameraConfig

	// Pointer in normalised device coordinates, +Y up.
	mouseX, mouseY float64
	mouseSeen      bool

	// Smoothed pointer, NDC. The camera offset is this times MouseOffset.
	smoothX, smoothY float64

	scrollY        float64
	parallaxTarget float64
	parallax       float64

	rotationTarget float64
	rotation       float64
}

func newCameraRig(cfg CameraConfig) cameraRig {
	return cameraRig{cfg: cfg}
}

// pointerMove records a pointer position given in viewport pixels.
func (r *cameraRig) pointerMove(clientX, clientY float64, viewportW, viewportH int) {
	if viewportW <= 0 || viewportH <= 0 {
		return
	}
	x := clientX/float64(viewportW)*2 - 1
	y := -(clientY/float64(viewportH))*2 + 1
	if r.cfg.SnapFirstMove && !r.mouseSeen {
		r.smoothX, r.smoothY = x, y
	}
	r.mouseSeen = true
	r.mouseX, r.mouseY = x, y
}

// scroll records the document scroll offset and derives the parallax target.
// section is the container's client rect, used by section parallax.
func (r *cameraRig) scroll(scrollY float64, viewportH int, section Rect) {
	r.scrollY = scrollY
	if viewportH <= 0 {
		return
	}
	vh := float64(viewportH)
	if r.cfg.SectionParallax {
		r.parallaxTarget = clamp((vh-section.Y)/(vh+section.Height), 0, r.cfg.ParallaxMax)
		return
	}
	r.parallaxTarget = scrollY / vh
}

// step advances all smoothed values by dt seconds.
func (r *cameraRig) step(dt float64) {
	cfg := &r.cfg
	r.rotationTarget = 0
	if cfg.RotationRate > 0 && r.scrollY > cfg.RotationThreshold {
		r.rotationTarget = (r.scrollY - cfg.RotationThreshold) * cfg.RotationRate
	}
	r.rotation = smoothToward(r.rotation, r.rotationTarget, cfg.RotationSmoothing, dt)
	r.parallax = smoothToward(r.parallax, r.parallaxTarget, cfg.ParallaxSmoothing, dt)

	r.smoothX = smoothToward(r.smoothX, r.mouseX, cfg.MouseSmoothing, dt)
	r.smoothY = smoothToward(r.smoothY, r.mouseY, cfg.MouseSmoothing, dt)
}

// offset returns the smoothed camera offset in world units.
func (r *cameraRig) offset() (x, y float64) {
	return r.smoothX * r.cfg.MouseOffset, r.smoothY * r.cfg.MouseOffset
}

// drop is the vertical world offset produced by the current parallax.
func (r *cameraRig) drop() float64 {
	return -r.parallax * r.cfg.ParallaxScale
}

// starSpin returns the star field's rotation about Y at scene time t.
func (r *cameraRig) starSpin(t float64) float64 {
	if r.cfg.Orbit {
		return r.rotation * r.cfg.StarSpinFactor
	}
	return t * r.cfg.StarSpin
}

// place positions cam for scene time t and aims it at the parallax-adjusted
// origin.
func (r *cameraRig) place(cam *Camera, t float64) {
	cfg := &r.cfg
	drop := r.drop()
	offX, offY := r.offset()
	if cfg.Orbit {
		angle := r.rotation + t*cfg.OrbitSpeed
		cam.SetPosition(mgl64.Vec3{
			math.Sin(angle)*cfg.Distance + offX,
			drop + offY,
			math.Cos(angle) * cfg.Distance,
		})
	} else {
		cam.SetPosition(mgl64.Vec3{offX, drop + offY, cfg.Distance})
	}
	cam.LookAt(mgl64.Vec3{0, drop, 0})
}
