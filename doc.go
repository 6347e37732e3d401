// Package starfield renders the procedural space backgrounds of a portfolio
// site with [Ebitengine]: a twinkling star field, drifting nebula clouds,
// shooting stars and a cursor-reactive node network.
//
// # Quick start
//
// The simplest way to see a scene is [Run], which opens a window and drives
// the render loop for you:
//
//	starfield.Run(starfield.HeroConfig(), starfield.RunConfig{
//		Title: "Hero", Width: 1280, Height: 720, ScrollHeight: 2400,
//	})
//
// To embed a scene in another loop, implement [Host] and [Container] and call
// [Mount]. The returned [Animator] owns every resource of the scene until
// [Animator.Dispose]:
//
//	a, err := starfield.Mount(host, container, starfield.ContactConfig())
//	if err != nil {
//		return err
//	}
//	defer a.Dispose()
//
// # Variants
//
// [HeroConfig] and [ContactConfig] are the two parameter sets. The hero scene
// has 12000 pole-biased stars, 50 nebula quads and a pool of 20 shooting
// stars seen from a camera that orbits once the page scrolls past 800 pixels.
// The contact scene has 3000 stars and a 180-node network pulled toward the
// cursor, seen from a fixed camera.
//
// # Render loop
//
// Each frame clamps the elapsed time to [Config.MaxFrameDelta], advances the
// scene clock, steps the physics, smooths the camera toward its pointer and
// scroll targets and issues one draw. The loop suspends itself when the
// container leaves the viewport and resumes when it returns.
//
// All smoothing uses 1 - base^dt with per-second bases so motion does not
// depend on the refresh rate. Per-frame physics constants are rescaled by
// [Config.ReferenceRate].
//
// # Testing
//
// [ManualHost] and [ManualContainer] drive a scene deterministically: inject
// input, call [ManualHost.Tick] and inspect the [Animator]. JSON test scripts
// loaded with [LoadTestScript] sequence the same actions:
//
//	{"steps": [
//		{"action": "move", "x": 400, "y": 300},
//		{"action": "wait", "frames": 30},
//		{"action": "scroll", "y": 1200},
//		{"action": "screenshot", "label": "scrolled"}
//	]}
//
// [Ebitengine]: https://ebitengine.org
package starfield
