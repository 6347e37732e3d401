package starfield

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNoHost is returned by Mount when no Host is supplied.
var ErrNoHost = errors.New("starfield: nil host")

// LoopState is the render loop's state.
type LoopState uint8

const (
	// LoopSuspended means no frame is scheduled.
	LoopSuspended LoopState = iota
	// LoopRunning means a frame is scheduled.
	LoopRunning
)

func (s LoopState) String() string {
	if s == LoopRunning {
		return "running"
	}
	return "suspended"
}

// Animator is one mounted scene: its buffers, camera, renderer, listeners and
// render loop. Create it with Mount and release it with Dispose.
type Animator struct {
	id        string
	cfg       Config
	host      Host
	container Container
	log       Logger

	scene    *Scene
	camera   *Camera
	renderer Renderer
	surface  Surface
	rig      cameraRig

	observer Observer
	removers []func()

	frameFn FrameFunc
	frame   FrameID
	last    time.Duration
	visible bool

	width, height int
	draws         int
	inert         bool
	disposed      bool
}

// Mount builds a scene in container and starts its render loop. A nil
// container or one without area yields an inert Animator that never draws;
// that is not an error.
func Mount(host Host, container Container, cfg Config) (*Animator, error) {
	id := uuid.NewString()
	a := &Animator{
		id:        id,
		cfg:       cfg,
		host:      host,
		container: container,
		log:       withTag(cfg.Logger, "starfield "+id),
		rig:       newCameraRig(cfg.Camera),
	}
	if host == nil {
		return nil, fmt.Errorf("mount %s: %w", cfg.Variant, ErrNoHost)
	}
	if container == nil {
		a.inert = true
		a.log.Warnf("mount %s: no container, not rendering", cfg.Variant)
		return a, nil
	}
	rect := container.ClientRect()
	if rect.Empty() {
		a.inert = true
		a.log.Warnf("mount %s: container is %vx%v, not rendering", cfg.Variant, rect.Width, rect.Height)
		return a, nil
	}
	a.width, a.height = int(rect.Width), int(rect.Height)

	a.scene = NewScene(&a.cfg)
	factory := cfg.NewRenderer
	if factory == nil {
		factory = NewEbitenRenderer
	}
	r, err := factory(RendererOptions{
		Width:      a.width,
		Height:     a.height,
		PixelRatio: a.pixelRatio(),
		Scene:      a.scene,
		Config:     &a.cfg,
	})
	if err != nil {
		a.scene.Dispose()
		a.scene = nil
		return nil, fmt.Errorf("mount %s: %w", cfg.Variant, err)
	}
	a.renderer = r

	cc := &a.cfg.Camera
	a.camera = NewCamera(cc.FOV, float64(a.width)/float64(a.height), cc.Near, cc.Far, cc.Distance)

	a.surface = r.Surface()
	container.AppendSurface(a.surface)

	_, vh := host.Viewport()
	a.rig.scroll(host.ScrollY(), vh, rect)
	a.listen()
	a.observer = host.Observe(container, a.onVisibility)

	a.frameFn = a.tick
	a.visible = true
	a.last = host.Now()
	a.frame = host.RequestFrame(a.frameFn)

	a.log.Infof("mounted %s %dx%d @%.2f", cfg.Variant, a.width, a.height, r.PixelRatio())
	return a, nil
}

// pixelRatio returns the container's pixel ratio capped by MaxPixelRatio.
func (a *Animator) pixelRatio() float64 {
	ratio := a.container.PixelRatio()
	if ratio <= 0 {
		ratio = 1
	}
	if maxRatio := a.cfg.MaxPixelRatio; maxRatio > 0 && ratio > maxRatio {
		ratio = maxRatio
	}
	return ratio
}

// ID returns the animator's unique id.
func (a *Animator) ID() string {
	return a.id
}

// Variant returns the configured variant.
func (a *Animator) Variant() Variant {
	return a.cfg.Variant
}

// Scene returns the mounted scene, nil when inert or disposed.
func (a *Animator) Scene() *Scene {
	return a.scene
}

// Camera returns the camera, nil when inert or disposed.
func (a *Animator) Camera() *Camera {
	return a.camera
}

// Renderer returns the renderer, nil when inert or disposed.
func (a *Animator) Renderer() Renderer {
	return a.renderer
}

// Inert reports whether the animator was mounted without a usable container.
func (a *Animator) Inert() bool {
	return a.inert
}

// Disposed reports whether Dispose has been called.
func (a *Animator) Disposed() bool {
	return a.disposed
}

// Draws returns the number of frames rendered.
func (a *Animator) Draws() int {
	return a.draws
}

// Size returns the current client size.
func (a *Animator) Size() (width, height int) {
	return a.width, a.height
}

// State reports whether a frame is scheduled.
func (a *Animator) State() LoopState {
	if a.frame != 0 {
		return LoopRunning
	}
	return LoopSuspended
}

// Resize updates the camera aspect ratio and the renderer size together.
// It is a no-op once disposed and for sizes without area.
func (a *Animator) Resize(width, height int) {
	if a.disposed || a.camera == nil || a.renderer == nil {
		return
	}
	if width <= 0 || height <= 0 {
		return
	}
	a.width, a.height = width, height
	a.camera.SetAspect(width, height)
	a.renderer.SetSize(width, height)
}

// Dispose stops the loop, removes listeners and the observer, detaches the
// surface and releases every resource allocated at mount. Calling it again
// does nothing.
func (a *Animator) Dispose() {
	if a == nil || a.disposed {
		return
	}
	a.disposed = true

	if a.frame != 0 {
		a.host.CancelFrame(a.frame)
		a.frame = 0
	}
	if a.observer != nil {
		a.observer.Disconnect()
		a.observer = nil
	}
	for _, remove := range a.removers {
		if remove != nil {
			remove()
		}
	}
	a.removers = nil
	if a.surface != nil && a.container != nil {
		a.container.RemoveSurface(a.surface)
	}
	a.surface = nil
	if a.renderer != nil {
		a.renderer.Dispose()
		a.renderer = nil
	}
	if a.scene != nil {
		a.scene.Dispose()
		a.scene = nil
	}
	a.camera = nil

	if !a.inert {
		a.log.Infof("disposed %s after %d frames", a.cfg.Variant, a.draws)
	}
}
