package starfield

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera: vertical field of view, aspect ratio,
// clip planes, and a position aimed at a target.
type Camera struct {
	// FOV is the vertical field of view in degrees.
	FOV    float64
	Aspect float64
	Near   float64
	Far    float64

	position mgl64.Vec3
	target   mgl64.Vec3
	up       mgl64.Vec3

	projection mgl64.Mat4
	view       mgl64.Mat4
	viewProj   mgl64.Mat4
	dirty      bool
}

// NewCamera creates a camera at (0, 0, distance) looking at the origin.
func NewCamera(fov, aspect, near, far, distance float64) *Camera {
	if aspect <= 0 || math.IsNaN(aspect) || math.IsInf(aspect, 0) {
		aspect = 1
	}
	return &Camera{
		FOV:      fov,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
		position: mgl64.Vec3{0, 0, distance},
		up:       mgl64.Vec3{0, 1, 0},
		dirty:    true,
	}
}

// SetAspect updates the aspect ratio from a viewport size. Degenerate sizes
// are ignored.
func (c *Camera) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float64(width) / float64(height)
	c.dirty = true
}

// SetPosition moves the camera.
func (c *Camera) SetPosition(p mgl64.Vec3) {
	c.position = p
	c.dirty = true
}

// Position returns the camera position.
func (c *Camera) Position() mgl64.Vec3 {
	return c.position
}

// LookAt aims the camera at target with +Y up.
func (c *Camera) LookAt(target mgl64.Vec3) {
	c.target = target
	c.up = mgl64.Vec3{0, 1, 0}
	c.dirty = true
}

// Target returns the point the camera is aimed at.
func (c *Camera) Target() mgl64.Vec3 {
	return c.target
}

// MarkDirty forces a recomputation of the cached matrices.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// computeMatrices recomputes the cached projection and view matrices if dirty.
func (c *Camera) computeMatrices() {
	if !c.dirty {
		return
	}
	c.dirty = false
	c.projection = mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
	eye := c.position
	if eye.Sub(c.target).Len() == 0 {
		eye = c.target.Add(mgl64.Vec3{0, 0, 1})
	}
	c.view = mgl64.LookAtV(eye, c.target, c.up)
	c.viewProj = c.projection.Mul4(c.view)
}

// Projection returns the projection matrix.
func (c *Camera) Projection() mgl64.Mat4 {
	c.computeMatrices()
	return c.projection
}

// View returns the view matrix.
func (c *Camera) View() mgl64.Mat4 {
	c.computeMatrices()
	return c.view
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection() mgl64.Mat4 {
	c.computeMatrices()
	return c.viewProj
}

// Projected is a world point mapped onto a viewport.
type Projected struct {
	// X and Y are viewport pixels, origin top-left.
	X, Y float64
	// Depth is the distance in front of the camera along its view axis.
	Depth float64
}

// Project maps world point p (already in world space) onto a viewport of
// width x height pixels. ok is false for points behind the near plane or
// beyond the far plane.
func (c *Camera) Project(p mgl64.Vec3, width, height float64) (Projected, bool) {
	return projectWith(c.ViewProjection(), c.View(), p, width, height, c.Near, c.Far)
}

// projectWith is Project with the matrices supplied, so batch callers can
// fold a model transform into them once.
func projectWith(viewProj, view mgl64.Mat4, p mgl64.Vec3, width, height, near, far float64) (Projected, bool) {
	v := view.Mul4x1(p.Vec4(1))
	depth := -v.Z()
	if depth <= near || depth >= far {
		return Projected{}, false
	}
	clip := viewProj.Mul4x1(p.Vec4(1))
	w := clip.W()
	if w <= 0 {
		return Projected{}, false
	}
	nx := clip.X() / w
	ny := clip.Y() / w
	return Projected{
		X:     (nx + 1) / 2 * width,
		Y:     (1 - ny) / 2 * height,
		Depth: depth,
	}, true
}
