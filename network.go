package starfield

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// Node is one point of the proximity network. Pos and Vel change every frame;
// Anchor is the rest position the spring pulls toward.
type Node struct {
	Pos, Vel, Anchor mgl64.Vec3
}

// EdgeBuffer is the fixed-capacity line buffer rebuilt from node distances
// every frame. Only the first Count edges are valid.
type EdgeBuffer struct {
	Positions []float32 // 6 per edge: two endpoints
	Colors    []float32 // 6 per edge: same color at both endpoints
	Count     int
	Capacity  int
}

func newEdgeBuffer(capacity int) EdgeBuffer {
	if capacity < 0 {
		capacity = 0
	}
	return EdgeBuffer{
		Positions: make([]float32, capacity*6),
		Colors:    make([]float32, capacity*6),
		Capacity:  capacity,
	}
}

// Network is the node-link effect behind the contact form: nodes on springs,
// drawn toward the cursor, connected by edges between near neighbours.
type Network struct {
	Nodes []Node
	Edges EdgeBuffer

	config NetworkConfig
	rate   float64
	cursor mgl64.Vec3
}

// GenerateNetwork places count nodes uniformly inside a sphere of
// cfg.Radius. Each node starts at rest on its anchor.
func GenerateNetwork(count int, cfg NetworkConfig, rng *rand.Rand) []Node {
	if count < 0 {
		count = 0
	}
	nodes := make([]Node, count)
	for i := range nodes {
		r := cfg.Radius * math.Cbrt(rng.Float64())
		theta := rng.Float64() * 2 * math.Pi
		cosPhi := 2*rng.Float64() - 1
		sinPhi := math.Sqrt(1 - cosPhi*cosPhi)
		p := mgl64.Vec3{
			r * sinPhi * math.Cos(theta),
			r * sinPhi * math.Sin(theta),
			r * cosPhi,
		}
		nodes[i] = Node{Pos: p, Anchor: p}
	}
	return nodes
}

// NewNetwork wraps nodes with the physics and edge settings of cfg.
// referenceRate is the frame rate the per-frame constants are expressed at.
func NewNetwork(nodes []Node, cfg NetworkConfig, referenceRate float64) *Network {
	if referenceRate <= 0 {
		referenceRate = 60
	}
	return &Network{
		Nodes:  nodes,
		Edges:  newEdgeBuffer(cfg.MaxEdges),
		config: cfg,
		rate:   referenceRate,
	}
}

// Config returns a pointer to the network's config for live tuning.
func (n *Network) Config() *NetworkConfig {
	return &n.config
}

// Step advances every node by dt seconds: spring toward the anchor, pull
// toward cursor when within the influence radius, friction, then explicit
// Euler integration. At dt = 1/referenceRate this is exactly one frame of
// the per-frame constants.
func (n *Network) Step(dt float64, cursor mgl64.Vec3) {
	n.cursor = cursor
	if dt <= 0 {
		return
	}
	cfg := &n.config
	frames := dt * n.rate
	spring := cfg.Spring * frames
	friction := math.Pow(cfg.Friction, frames)
	influenceSq := cfg.InfluenceRadius * cfg.InfluenceRadius

	for i := range n.Nodes {
		nd := &n.Nodes[i]
		nd.Vel = nd.Vel.Add(nd.Anchor.Sub(nd.Pos).Mul(spring))

		d := cursor.Sub(nd.Pos)
		if distSq := d.Dot(d); distSq < influenceSq && distSq > 0 {
			dist := math.Sqrt(distSq)
			strength := (1 - dist/cfg.InfluenceRadius) * cfg.MaxAttraction * frames
			nd.Vel = nd.Vel.Add(d.Mul(strength / dist))
		}

		nd.Vel = nd.Vel.Mul(friction)
		nd.Pos = nd.Pos.Add(nd.Vel.Mul(frames))
	}
}

// RebuildEdges scans node pairs in index order and writes an edge for each
// pair closer than EdgeDistance until the buffer is full. Pairs past
// capacity are dropped. It returns the number of edges written.
func (n *Network) RebuildEdges(cursor mgl64.Vec3) int {
	cfg := &n.config
	maxSq := cfg.EdgeDistance * cfg.EdgeDistance
	eb := &n.Edges
	eb.Count = 0
	if eb.Capacity == 0 {
		return 0
	}

	for i := 0; i < len(n.Nodes); i++ {
		a := n.Nodes[i].Pos
		for j := i + 1; j < len(n.Nodes); j++ {
			b := n.Nodes[j].Pos
			d := a.Sub(b)
			dSq := d.Dot(d)
			if dSq >= maxSq {
				continue
			}
			n.writeEdge(eb.Count, a, b, dSq, maxSq, cursor)
			eb.Count++
			if eb.Count == eb.Capacity {
				return eb.Count
			}
		}
	}
	return eb.Count
}

// writeEdge stores edge index between a and b. The hue cycles with the index;
// intensity is a faint baseline plus a boost near the cursor, faded by the
// pair's separation.
func (n *Network) writeEdge(index int, a, b mgl64.Vec3, dSq, maxSq float64, cursor mgl64.Vec3) {
	cfg := &n.config
	off := index * 6
	pos := n.Edges.Positions[off : off+6]
	pos[0], pos[1], pos[2] = float32(a[0]), float32(a[1]), float32(a[2])
	pos[3], pos[4], pos[5] = float32(b[0]), float32(b[1]), float32(b[2])

	da := a.Sub(cursor)
	db := b.Sub(cursor)
	avgSq := (da.Dot(da) + db.Dot(db)) / 2
	falloffSq := cfg.CursorFalloff * cfg.CursorFalloff
	cursorInfluence := 0.0
	if falloffSq > 0 {
		cursorInfluence = math.Max(0, 1-avgSq/falloffSq)
	}
	proximity := 1 - dSq/maxSq
	intensity := (cfg.BaseIntensity + cursorInfluence*cfg.CursorBoost) * proximity

	hue := cfg.Hues[index%3]
	col := n.Edges.Colors[off : off+6]
	col[0] = float32(hue.R * intensity)
	col[1] = float32(hue.G * intensity)
	col[2] = float32(hue.B * intensity)
	copy(col[3:], col[:3])
}

// Cursor returns the attraction point of the last Step.
func (n *Network) Cursor() mgl64.Vec3 { return n.cursor }

// CursorWorld maps mouse NDC and the current parallax into the network's
// world space.
func (n *Network) CursorWorld(mouseX, mouseY, parallax, parallaxScale float64) mgl64.Vec3 {
	return mgl64.Vec3{
		mouseX * n.config.CursorScaleX,
		mouseY*n.config.CursorScaleY - parallax*parallaxScale,
		0,
	}
}

// release drops the node and edge arrays.
func (n *Network) release() {
	n.Nodes = nil
	n.Edges = EdgeBuffer{}
}
