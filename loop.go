package starfield

import "time"

// statsReporter is implemented by renderers that count their work.
type statsReporter interface {
	Stats() RenderStats
}

// tick is the frame callback. A hidden or disposed animator returns without
// rescheduling, which suspends the loop.
func (a *Animator) tick(now time.Duration) {
	a.frame = 0
	if a.disposed || a.renderer == nil {
		return
	}
	if !a.visible {
		a.log.Debugf("suspended at t=%.2fs", a.sceneTime())
		return
	}
	a.frame = a.host.RequestFrame(a.frameFn)

	dt := clamp((now - a.last).Seconds(), 0, a.cfg.frameDeltaCap())
	a.last = now
	a.step(dt)
}

// step runs one frame of dt seconds: the time uniform, physics, smoothing,
// camera placement and a single draw.
func (a *Animator) step(dt float64) {
	var physicsStart time.Time
	debug := a.cfg.Debug && a.log.DebugEnabled()
	if debug {
		physicsStart = time.Now()
	}

	s := a.scene
	s.advance(dt)
	if s.ShootingStars != nil {
		s.ShootingStars.Step(dt)
	}
	if s.Network != nil {
		cursor := s.Network.CursorWorld(a.rig.mouseX, a.rig.mouseY, a.rig.parallax, a.cfg.Camera.ParallaxScale)
		s.Network.Step(dt, cursor)
		s.Network.RebuildEdges(cursor)
	}

	a.rig.step(dt)
	s.StarRotationY = a.rig.starSpin(s.Time)
	s.StarOffsetY = a.rig.drop()
	a.rig.place(a.camera, s.Time)

	var renderStart time.Time
	if debug {
		renderStart = time.Now()
	}
	a.renderer.Render(s, a.camera)
	a.draws++

	if debug {
		a.debugLog(renderStart.Sub(physicsStart), time.Since(renderStart))
	}
}

// onVisibility resumes a suspended loop when the container scrolls back into
// view. Leaving the viewport only marks it hidden; the next frame callback
// then declines to reschedule.
func (a *Animator) onVisibility(visible bool) {
	if a.disposed || a.renderer == nil {
		return
	}
	was := a.visible
	a.visible = visible
	if visible && !was && a.frame == 0 {
		a.last = a.host.Now()
		a.frame = a.host.RequestFrame(a.frameFn)
		a.log.Debugf("resumed at t=%.2fs", a.sceneTime())
	}
}

func (a *Animator) sceneTime() float64 {
	if a.scene == nil {
		return 0
	}
	return a.scene.Time
}

// debugLog prints per-frame timing and work counters.
func (a *Animator) debugLog(physics, render time.Duration) {
	s := a.scene
	edges, shooting := 0, 0
	if s.Network != nil {
		edges = s.Network.Edges.Count
	}
	if s.ShootingStars != nil {
		shooting = s.ShootingStars.ActiveCount()
	}
	a.log.Debugf("frame %d | t: %.2fs | physics: %v | render: %v | edges: %d | shooting stars: %d",
		a.draws, s.Time, physics, render, edges, shooting)
	if sr, ok := a.renderer.(statsReporter); ok {
		st := sr.Stats()
		a.log.Debugf("stars: %d | clouds: %d | edges: %d | trails: %d | vertices: %d | draw calls: %d",
			st.Stars, st.Clouds, st.Edges, st.Trails, st.Vertices, st.DrawCalls)
	}
}
