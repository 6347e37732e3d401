package starfield

import "time"

// pendingFrame is one scheduled frame callback.
type pendingFrame struct {
	id FrameID
	fn FrameFunc
}

// frameQueue is a one-shot callback list in request order. Callbacks
// requested while the queue runs wait for the next run.
type frameQueue struct {
	nextID  FrameID
	pending []pendingFrame
}

func (q *frameQueue) request(fn FrameFunc) FrameID {
	q.nextID++
	q.pending = append(q.pending, pendingFrame{id: q.nextID, fn: fn})
	return q.nextID
}

func (q *frameQueue) cancel(id FrameID) {
	for i := range q.pending {
		if q.pending[i].id == id {
			copy(q.pending[i:], q.pending[i+1:])
			q.pending[len(q.pending)-1] = pendingFrame{}
			q.pending = q.pending[:len(q.pending)-1]
			return
		}
	}
}

// run calls every callback pending at entry and returns how many ran.
func (q *frameQueue) run(now time.Duration) int {
	if len(q.pending) == 0 {
		return 0
	}
	batch := q.pending
	q.pending = nil
	for _, f := range batch {
		f.fn(now)
	}
	return len(batch)
}

// ManualHost is a deterministic Host driven by explicit Tick calls. Injected
// input is queued and consumed one event per tick, ahead of that tick's
// frame callbacks.
type ManualHost struct {
	now     time.Duration
	frames  frameQueue
	width   int
	height  int
	scrollY float64

	listeners listenerRegistry
	observers observerRegistry
	queue     []Event

	runner      *TestRunner
	ran         int
	screenshots []string
}

// NewManualHost returns a host with a viewport of width x height pixels.
func NewManualHost(width, height int) *ManualHost {
	return &ManualHost{width: width, height: height}
}

func (h *ManualHost) Now() time.Duration { return h.now }

func (h *ManualHost) RequestFrame(fn FrameFunc) FrameID { return h.frames.request(fn) }

func (h *ManualHost) CancelFrame(id FrameID) { h.frames.cancel(id) }

func (h *ManualHost) Viewport() (int, int) { return h.width, h.height }

func (h *ManualHost) ScrollY() float64 { return h.scrollY }

func (h *ManualHost) Listen(kind EventKind, fn func(Event)) func() {
	return h.listeners.add(kind, fn)
}

func (h *ManualHost) Observe(c Container, fn func(bool)) Observer {
	return h.observers.add(c, fn)
}

// Tick advances the clock by dt, steps the attached test runner, consumes
// one queued event and runs the frame callbacks pending at that point. It
// returns the number of callbacks run.
func (h *ManualHost) Tick(dt time.Duration) int {
	h.now += dt
	if h.runner != nil {
		h.runner.step(h)
	}
	if len(h.queue) > 0 {
		e := h.queue[0]
		copy(h.queue, h.queue[1:])
		h.queue = h.queue[:len(h.queue)-1]
		h.Dispatch(e)
	}
	n := h.frames.run(h.now)
	h.ran += n
	return n
}

// Dispatch applies e to the viewport state and delivers it immediately.
func (h *ManualHost) Dispatch(e Event) {
	switch e.Kind {
	case EventScroll:
		h.scrollY = e.ScrollY
	case EventResize:
		h.width, h.height = e.Width, e.Height
	}
	h.listeners.dispatch(e)
}

// InjectPointerMove queues a pointer move to viewport pixel (x, y).
func (h *ManualHost) InjectPointerMove(x, y float64) {
	h.queue = append(h.queue, Event{Kind: EventPointerMove, X: x, Y: y})
}

// InjectPointerPath queues moves along a straight line, one per tick over
// frames ticks, ending exactly at (toX, toY).
func (h *ManualHost) InjectPointerPath(fromX, fromY, toX, toY float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	for i := 1; i <= frames; i++ {
		t := float64(i) / float64(frames)
		h.InjectPointerMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// InjectScroll queues a document scroll to offset y.
func (h *ManualHost) InjectScroll(y float64) {
	h.queue = append(h.queue, Event{Kind: EventScroll, ScrollY: y})
}

// InjectResize queues a viewport resize.
func (h *ManualHost) InjectResize(width, height int) {
	h.queue = append(h.queue, Event{Kind: EventResize, Width: width, Height: height})
}

// SetVisible notifies the observers of c.
func (h *ManualHost) SetVisible(c Container, visible bool) {
	h.observers.notify(c, visible)
}

// Screenshot records a labeled capture request. ManualHost has no display,
// so only the label is kept.
func (h *ManualHost) Screenshot(label string) {
	h.screenshots = append(h.screenshots, shotName(label))
}

// Screenshots returns the recorded capture labels.
func (h *ManualHost) Screenshots() []string { return h.screenshots }

// Queued returns the number of injected events not yet consumed.
func (h *ManualHost) Queued() int { return len(h.queue) }

// PendingFrames returns the number of scheduled frame callbacks.
func (h *ManualHost) PendingFrames() int { return len(h.frames.pending) }

// FramesRun returns the total number of frame callbacks run.
func (h *ManualHost) FramesRun() int { return h.ran }

// ListenerCount returns the number of listeners registered for kind.
func (h *ManualHost) ListenerCount(kind EventKind) int { return h.listeners.count(kind) }

// ObserverCount returns the number of connected observers.
func (h *ManualHost) ObserverCount() int { return h.observers.count() }

// ManualContainer is an in-memory Container that records surface changes.
type ManualContainer struct {
	Rect  Rect
	Ratio float64

	surfaces []Surface
	appends  int
	removes  int
	misses   int
}

// NewManualContainer returns a container of width x height pixels at the
// top of the viewport with a pixel ratio of 1.
func NewManualContainer(width, height float64) *ManualContainer {
	return &ManualContainer{Rect: Rect{Width: width, Height: height}, Ratio: 1}
}

func (c *ManualContainer) ClientRect() Rect { return c.Rect }

func (c *ManualContainer) PixelRatio() float64 { return c.Ratio }

func (c *ManualContainer) AppendSurface(s Surface) {
	c.surfaces = append(c.surfaces, s)
	c.appends++
}

// RemoveSurface detaches s. Removing a surface that is not attached is
// counted as a miss.
func (c *ManualContainer) RemoveSurface(s Surface) {
	for i, x := range c.surfaces {
		if x == s {
			c.surfaces = append(c.surfaces[:i], c.surfaces[i+1:]...)
			c.removes++
			return
		}
	}
	c.misses++
}

// Surfaces returns the attached surfaces.
func (c *ManualContainer) Surfaces() []Surface { return c.surfaces }

// Counts returns how many surfaces were appended, removed, and removed
// while not attached.
func (c *ManualContainer) Counts() (appends, removes, misses int) {
	return c.appends, c.removes, c.misses
}
