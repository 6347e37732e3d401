package starfield

import (
	"fmt"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig holds optional parameters for Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ShowFPS draws an FPS/TPS readout over the scene.
	ShowFPS bool
	// ScrollHeight is the scrollable document height below the viewport. The
	// mouse wheel scrolls between 0 and ScrollHeight.
	ScrollHeight float64
	// WheelStep is the scroll distance per wheel notch. Default 60.
	WheelStep float64
	// TestScript, when set, is a JSON test script run against the scene.
	TestScript []byte
	// ScreenshotDir receives screenshot PNGs. Default "screenshots".
	ScreenshotDir string
}

// EbitenHost runs scenes inside an Ebitengine window. The window is both the
// Host and the single Container. Window focus stands in for visibility and
// the mouse wheel scrolls a virtual document.
type EbitenHost struct {
	start  time.Time
	frames frameQueue

	width, height int
	scrollY       float64
	scrollHeight  float64
	wheelStep     float64

	cursorX, cursorY int
	cursorSeen       bool
	focused          bool

	listeners listenerRegistry
	observers observerRegistry
	queue     []Event
	surfaces  []Surface

	runner        *TestRunner
	screenshots   []string
	screenshotDir string
	showFPS       bool
	log           Logger
}

// NewEbitenHost returns a host for a window of the given size.
func NewEbitenHost(rc RunConfig, log Logger) *EbitenHost {
	if log == nil {
		log = NewNopLogger()
	}
	h := &EbitenHost{
		start:         time.Now(),
		width:         rc.Width,
		height:        rc.Height,
		scrollHeight:  rc.ScrollHeight,
		wheelStep:     rc.WheelStep,
		focused:       true,
		screenshotDir: rc.ScreenshotDir,
		showFPS:       rc.ShowFPS,
		log:           log,
	}
	if h.wheelStep <= 0 {
		h.wheelStep = 60
	}
	if h.screenshotDir == "" {
		h.screenshotDir = "screenshots"
	}
	return h
}

// --- Scheduler / Host ---

func (h *EbitenHost) Now() time.Duration { return time.Since(h.start) }

func (h *EbitenHost) RequestFrame(fn FrameFunc) FrameID { return h.frames.request(fn) }

func (h *EbitenHost) CancelFrame(id FrameID) { h.frames.cancel(id) }

func (h *EbitenHost) Viewport() (int, int) { return h.width, h.height }

func (h *EbitenHost) ScrollY() float64 { return h.scrollY }

func (h *EbitenHost) Listen(kind EventKind, fn func(Event)) func() {
	return h.listeners.add(kind, fn)
}

func (h *EbitenHost) Observe(c Container, fn func(bool)) Observer {
	return h.observers.add(c, fn)
}

// --- Container ---

// ClientRect is the window, shifted up by the virtual document scroll.
func (h *EbitenHost) ClientRect() Rect {
	return Rect{Y: -h.scrollY, Width: float64(h.width), Height: float64(h.height)}
}

func (h *EbitenHost) PixelRatio() float64 {
	if m := ebiten.Monitor(); m != nil {
		return m.DeviceScaleFactor()
	}
	return 1
}

func (h *EbitenHost) AppendSurface(s Surface) {
	h.surfaces = append(h.surfaces, s)
}

func (h *EbitenHost) RemoveSurface(s Surface) {
	for i, x := range h.surfaces {
		if x == s {
			h.surfaces = append(h.surfaces[:i], h.surfaces[i+1:]...)
			return
		}
	}
}

// --- Script target ---

func (h *EbitenHost) InjectPointerMove(x, y float64) {
	h.queue = append(h.queue, Event{Kind: EventPointerMove, X: x, Y: y})
}

func (h *EbitenHost) InjectPointerPath(fromX, fromY, toX, toY float64, frames int) {
	for i := 1; i <= max(frames, 1); i++ {
		t := float64(i) / float64(max(frames, 1))
		h.InjectPointerMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

func (h *EbitenHost) InjectScroll(y float64) {
	h.queue = append(h.queue, Event{Kind: EventScroll, ScrollY: y})
}

func (h *EbitenHost) InjectResize(width, height int) {
	ebiten.SetWindowSize(width, height)
}

func (h *EbitenHost) SetVisible(c Container, visible bool) {
	h.observers.notify(c, visible)
}

// Screenshot queues a labeled capture taken at the end of the next Draw.
func (h *EbitenHost) Screenshot(label string) {
	h.screenshots = append(h.screenshots, label)
}

func (h *EbitenHost) Queued() int { return len(h.queue) }

// SetTestRunner attaches runner to the host; its steps act on a.
func (h *EbitenHost) SetTestRunner(runner *TestRunner, a *Animator) {
	runner.animator = a
	h.runner = runner
}

// --- ebiten.Game ---

// Update polls input, then runs the pending frame callbacks.
func (h *EbitenHost) Update() error {
	if h.runner != nil {
		h.runner.step(h)
		if h.runner.Done() && len(h.screenshots) == 0 {
			return ebiten.Termination
		}
	}
	if len(h.queue) > 0 {
		e := h.queue[0]
		copy(h.queue, h.queue[1:])
		h.queue = h.queue[:len(h.queue)-1]
		h.dispatch(e)
	} else {
		h.pollInput()
	}
	h.frames.run(h.Now())
	return nil
}

// pollInput turns window input into events.
func (h *EbitenHost) pollInput() {
	if focused := ebiten.IsFocused(); focused != h.focused {
		h.focused = focused
		h.observers.notify(h, focused)
	}

	x, y := ebiten.CursorPosition()
	if !h.cursorSeen || x != h.cursorX || y != h.cursorY {
		h.cursorSeen = true
		h.cursorX, h.cursorY = x, y
		h.dispatch(Event{Kind: EventPointerMove, X: float64(x), Y: float64(y)})
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		next := clamp(h.scrollY-dy*h.wheelStep, 0, math.Max(h.scrollHeight, 0))
		if next != h.scrollY {
			h.dispatch(Event{Kind: EventScroll, ScrollY: next})
		}
	}
}

func (h *EbitenHost) dispatch(e Event) {
	switch e.Kind {
	case EventScroll:
		h.scrollY = e.ScrollY
	case EventResize:
		h.width, h.height = e.Width, e.Height
	}
	h.listeners.dispatch(e)
}

// Draw composites the attached surfaces onto the screen.
func (h *EbitenHost) Draw(screen *ebiten.Image) {
	for _, s := range h.surfaces {
		es, ok := s.(*EbitenSurface)
		if !ok || es.Image() == nil {
			continue
		}
		sw, sh := es.Size()
		bounds := screen.Bounds()
		op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
		op.GeoM.Scale(compositeScale(sw, sh, bounds.Dx(), bounds.Dy()))
		screen.DrawImage(es.Image(), op)
	}
	if h.showFPS {
		drawFPS(screen)
	}
	if len(h.screenshots) > 0 {
		flushScreenshots(screen, h.screenshotDir, h.screenshots, h.log)
		h.screenshots = h.screenshots[:0]
	}
}

// compositeScale stretches a surface rendered at the clamped pixel ratio over
// the full device-pixel screen.
func compositeScale(surfW, surfH, screenW, screenH int) (sx, sy float64) {
	if surfW <= 0 || surfH <= 0 {
		return 1, 1
	}
	return float64(screenW) / float64(surfW), float64(screenH) / float64(surfH)
}

// Layout tracks the window size and reports a device-pixel screen.
func (h *EbitenHost) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != h.width || outsideHeight != h.height {
		h.dispatch(Event{Kind: EventResize, Width: outsideWidth, Height: outsideHeight})
	}
	ratio := h.PixelRatio()
	return int(math.Round(float64(outsideWidth) * ratio)), int(math.Round(float64(outsideHeight) * ratio))
}

// Run opens a window, mounts a scene built from cfg and runs it until the
// window closes or the test script finishes.
func Run(cfg Config, rc RunConfig) error {
	if rc.Width <= 0 {
		rc.Width = 1280
	}
	if rc.Height <= 0 {
		rc.Height = 720
	}
	if rc.Title == "" {
		rc.Title = "starfield " + cfg.Variant.String()
	}
	if cfg.Logger == nil {
		cfg.Logger = NewDefaultLogger("starfield", cfg.Debug)
	}

	host := NewEbitenHost(rc, cfg.Logger)
	ebiten.SetWindowTitle(rc.Title)
	ebiten.SetWindowSize(rc.Width, rc.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	a, err := Mount(host, host, cfg)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	defer a.Dispose()

	if len(rc.TestScript) > 0 {
		runner, err := LoadTestScript(rc.TestScript)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		host.SetTestRunner(runner, a)
	}

	if err := ebiten.RunGame(host); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
