package starfield

import "time"

// Surface is the drawing surface a Renderer presents into. The container
// holds it while the scene is mounted.
type Surface interface {
	// Size returns the surface size in device pixels.
	Size() (width, height int)
}

// Container is the element a scene is mounted into.
type Container interface {
	// ClientRect returns the container's box in viewport pixels. Y is the
	// distance from the top of the viewport and changes with scrolling.
	ClientRect() Rect
	// PixelRatio returns the device pixel ratio of the display.
	PixelRatio() float64
	AppendSurface(s Surface)
	RemoveSurface(s Surface)
}

// FrameFunc is called once per scheduled frame with the scheduler's clock.
type FrameFunc func(now time.Duration)

// FrameID identifies a scheduled frame. Zero is never a valid id.
type FrameID uint64

// Scheduler runs one-shot frame callbacks on the next display refresh.
type Scheduler interface {
	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)
	Now() time.Duration
}

// EventKind identifies an input source.
type EventKind uint8

const (
	EventPointerMove EventKind = iota
	EventScroll
	EventResize
)

// String returns the event name used in logs and test scripts.
func (k EventKind) String() string {
	switch k {
	case EventPointerMove:
		return "pointermove"
	case EventScroll:
		return "scroll"
	case EventResize:
		return "resize"
	default:
		return "unknown"
	}
}

// Event is one input notification. Only the fields of its Kind are set.
type Event struct {
	Kind EventKind
	// Pointer position in viewport pixels.
	X, Y float64
	// Document scroll offset in pixels.
	ScrollY float64
	// New viewport size.
	Width, Height int
}

// Observer reports visibility changes of one container until disconnected.
type Observer interface {
	Disconnect()
}

// Host is the platform a scene runs on: a frame scheduler plus the viewport,
// its input and its visibility notifications. Every callback is delivered on
// the thread that runs frames.
type Host interface {
	Scheduler
	Viewport() (width, height int)
	ScrollY() float64
	// Listen registers fn for events of kind and returns a function that
	// removes it.
	Listen(kind EventKind, fn func(Event)) (remove func())
	// Observe calls fn with true when c enters the viewport and false when it
	// leaves.
	Observe(c Container, fn func(visible bool)) Observer
}
