package starfield

// --- Animator listeners ---

// listen registers the pointer, scroll and resize handlers. Each handler
// checks for disposal so a late event is a no-op.
func (a *Animator) listen() {
	a.removers = append(a.removers,
		a.host.Listen(EventPointerMove, a.onPointerMove),
		a.host.Listen(EventScroll, a.onScroll),
		a.host.Listen(EventResize, a.onResize),
	)
}

func (a *Animator) onPointerMove(e Event) {
	if a.disposed || a.camera == nil {
		return
	}
	vw, vh := a.host.Viewport()
	a.rig.pointerMove(e.X, e.Y, vw, vh)
}

func (a *Animator) onScroll(e Event) {
	if a.disposed || a.camera == nil {
		return
	}
	_, vh := a.host.Viewport()
	a.rig.scroll(e.ScrollY, vh, a.container.ClientRect())
}

func (a *Animator) onResize(e Event) {
	if a.disposed || a.camera == nil {
		return
	}
	rect := a.container.ClientRect()
	a.Resize(int(rect.Width), int(rect.Height))
	a.rig.scroll(a.host.ScrollY(), e.Height, rect)
}

// --- Host-side registries ---

type listener struct {
	id uint32
	fn func(Event)
}

// listenerRegistry holds event listeners for a Host, keyed by kind.
type listenerRegistry struct {
	byKind [EventResize + 1][]listener
	nextID uint32
}

// add registers fn and returns its remover. Removing twice is harmless.
func (r *listenerRegistry) add(kind EventKind, fn func(Event)) func() {
	if int(kind) >= len(r.byKind) || fn == nil {
		return func() {}
	}
	r.nextID++
	id := r.nextID
	r.byKind[kind] = append(r.byKind[kind], listener{id: id, fn: fn})
	return func() {
		r.byKind[kind] = removeListener(r.byKind[kind], id)
	}
}

// dispatch calls every listener for e.Kind. Listeners removed during the
// dispatch are not called.
func (r *listenerRegistry) dispatch(e Event) {
	if int(e.Kind) >= len(r.byKind) {
		return
	}
	ls := r.byKind[e.Kind]
	ids := make([]uint32, len(ls))
	for i := range ls {
		ids[i] = ls[i].id
	}
	for _, id := range ids {
		for _, l := range r.byKind[e.Kind] {
			if l.id == id {
				l.fn(e)
				break
			}
		}
	}
}

// count returns the number of listeners for kind.
func (r *listenerRegistry) count(kind EventKind) int {
	if int(kind) >= len(r.byKind) {
		return 0
	}
	return len(r.byKind[kind])
}

func removeListener(s []listener, id uint32) []listener {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = listener{}
			return s[:len(s)-1]
		}
	}
	return s
}

// observation is one Observe registration.
type observation struct {
	container Container
	fn        func(bool)
	reg       *observerRegistry
}

// Disconnect stops notifications. Calling it again does nothing.
func (o *observation) Disconnect() {
	if o.reg == nil {
		return
	}
	o.reg.remove(o)
	o.reg = nil
}

// observerRegistry holds visibility observers for a Host.
type observerRegistry struct {
	list []*observation
}

func (r *observerRegistry) add(c Container, fn func(bool)) *observation {
	o := &observation{container: c, fn: fn, reg: r}
	r.list = append(r.list, o)
	return o
}

func (r *observerRegistry) remove(o *observation) {
	for i, x := range r.list {
		if x == o {
			copy(r.list[i:], r.list[i+1:])
			r.list[len(r.list)-1] = nil
			r.list = r.list[:len(r.list)-1]
			return
		}
	}
}

// notify reports a visibility change of c to its observers.
func (r *observerRegistry) notify(c Container, visible bool) {
	snapshot := append([]*observation(nil), r.list...)
	for _, o := range snapshot {
		if o.reg != nil && o.container == c && o.fn != nil {
			o.fn(visible)
		}
	}
}

func (r *observerRegistry) count() int {
	return len(r.list)
}
