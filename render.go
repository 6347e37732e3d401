package starfield

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// ErrEmptySurface is returned when a renderer is created without area.
var ErrEmptySurface = errors.New("starfield: surface has no area")

const (
	starSpriteRadius = 16
	whiteBlock       = 4
)

// RenderStats describes the last Render call.
type RenderStats struct {
	Stars, Clouds, Edges, Trails int
	Vertices                     int
	DrawCalls                    int
}

// EbitenSurface is the offscreen image an ebiten renderer draws into.
type EbitenSurface struct {
	img *ebiten.Image
}

// Size returns the surface size in device pixels.
func (s *EbitenSurface) Size() (int, int) {
	if s.img == nil {
		return 0, 0
	}
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image returns the backing image, nil once disposed.
func (s *EbitenSurface) Image() *ebiten.Image {
	return s.img
}

// atlasRegion is a source rectangle inside the renderer's texture atlas.
type atlasRegion struct {
	x0, y0, x1, y1 float32
}

// ebitenRenderer draws the whole scene as one additive DrawTriangles32 call
// sampling a single atlas that holds the cloud puff, the star sprite and a
// white block for lines.
type ebitenRenderer struct {
	surface *EbitenSurface
	atlas   *ebiten.Image
	cloud   atlasRegion
	star    atlasRegion
	whiteX  float32
	whiteY  float32

	width, height int
	ratio         float64

	verts    []ebiten.Vertex
	inds     []uint32
	stats    RenderStats
	disposed bool
}

// NewEbitenRenderer is the default RendererFactory.
func NewEbitenRenderer(opts RendererOptions) (Renderer, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("new renderer %dx%d: %w", opts.Width, opts.Height, ErrEmptySurface)
	}
	r := &ebitenRenderer{
		surface: &EbitenSurface{},
		width:   opts.Width,
		height:  opts.Height,
		ratio:   opts.PixelRatio,
	}
	if r.ratio <= 0 {
		r.ratio = 1
	}
	var cloud image.Image
	if opts.Scene != nil && opts.Scene.Cloud != nil {
		cloud = opts.Scene.Cloud
	}
	r.buildAtlas(cloud)
	r.resizeSurface()
	return r, nil
}

// buildAtlas composes the textures on the CPU and uploads them once. A nil
// cloud is replaced by a blank texel.
func (r *ebitenRenderer) buildAtlas(cloud image.Image) {
	if cloud == nil {
		cloud = image.NewNRGBA(image.Rect(0, 0, 1, 1))
	}
	cb := cloud.Bounds()
	cw, ch := cb.Dx(), cb.Dy()
	spriteSize := starSpriteRadius * 2

	w := cw + 1 + spriteSize
	h := max(ch, spriteSize+1+whiteBlock)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, image.Rect(0, 0, cw, ch), cloud, cb.Min, draw.Src)

	sx := cw + 1
	drawStarSprite(dst, sx, 0, starSpriteRadius)
	wy := spriteSize + 1
	for y := wy; y < wy+whiteBlock; y++ {
		for x := sx; x < sx+whiteBlock; x++ {
			off := dst.PixOffset(x, y)
			dst.Pix[off+0], dst.Pix[off+1], dst.Pix[off+2], dst.Pix[off+3] = 255, 255, 255, 255
		}
	}

	r.atlas = ebiten.NewImageFromImage(dst)
	r.cloud = atlasRegion{0, 0, float32(cw), float32(ch)}
	r.star = atlasRegion{float32(sx), 0, float32(sx + spriteSize), float32(spriteSize)}
	r.whiteX = float32(sx) + whiteBlock/2
	r.whiteY = float32(wy) + whiteBlock/2
}

// drawStarSprite writes a premultiplied white disc with a smoothstep edge.
func drawStarSprite(dst *image.RGBA, ox, oy int, radius float64) {
	size := int(math.Ceil(radius * 2))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - radius
			dy := float64(y) + 0.5 - radius
			dist := math.Sqrt(dx*dx+dy*dy) / radius

			var alpha float64
			if dist < 1 {
				t := 1 - dist
				alpha = t * t * (3 - 2*t)
			}
			a := uint8(alpha * 255)
			off := dst.PixOffset(ox+x, oy+y)
			dst.Pix[off+0] = a
			dst.Pix[off+1] = a
			dst.Pix[off+2] = a
			dst.Pix[off+3] = a
		}
	}
}

func (r *ebitenRenderer) Surface() Surface {
	return r.surface
}

func (r *ebitenRenderer) SetSize(width, height int) {
	if r.disposed || width <= 0 || height <= 0 {
		return
	}
	r.width, r.height = width, height
	r.resizeSurface()
}

func (r *ebitenRenderer) SetPixelRatio(ratio float64) {
	if r.disposed || ratio <= 0 {
		return
	}
	r.ratio = ratio
	r.resizeSurface()
}

func (r *ebitenRenderer) PixelRatio() float64 {
	return r.ratio
}

// Stats returns the counters of the last Render.
func (r *ebitenRenderer) Stats() RenderStats {
	return r.stats
}

// resizeSurface reallocates the surface when its device size changes.
func (r *ebitenRenderer) resizeSurface() {
	w := max(1, int(math.Round(float64(r.width)*r.ratio)))
	h := max(1, int(math.Round(float64(r.height)*r.ratio)))
	if r.surface.img != nil {
		if cw, ch := r.surface.Size(); cw == w && ch == h {
			return
		}
		r.surface.img.Deallocate()
	}
	r.surface.img = ebiten.NewImage(w, h)
}

func (r *ebitenRenderer) Render(scene *Scene, cam *Camera) {
	if r.disposed || scene == nil || cam == nil || r.surface.img == nil {
		return
	}
	target := r.surface.img
	target.Fill(scene.Background.toRGBA())

	w, h := r.surface.Size()
	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
	r.stats = RenderStats{}

	r.appendNebula(scene, cam, float64(w), float64(h))
	r.appendStars(scene, cam, float64(w), float64(h))
	r.appendEdges(scene, cam, float64(w), float64(h))
	r.appendTrails(scene, cam, float64(w), float64(h))

	r.stats.Vertices = len(r.verts)
	if len(r.verts) == 0 {
		return
	}

	var triOp ebiten.DrawTrianglesOptions
	triOp.Blend = BlendAdd.EbitenBlend()
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	triOp.Filter = ebiten.FilterLinear

	target.DrawTriangles32(r.verts, r.inds, r.atlas, &triOp)
	r.stats.DrawCalls = 1
}

// appendQuad adds a textured quad. Corners are top-left, top-right,
// bottom-left, bottom-right. c is premultiplied.
func (r *ebitenRenderer) appendQuad(dx, dy [4]float32, src atlasRegion, c [4]float32) {
	sx := [4]float32{src.x0, src.x1, src.x0, src.x1}
	sy := [4]float32{src.y0, src.y0, src.y1, src.y1}
	base := uint32(len(r.verts))
	for j := 0; j < 4; j++ {
		r.verts = append(r.verts, ebiten.Vertex{
			DstX:   dx[j],
			DstY:   dy[j],
			SrcX:   sx[j],
			SrcY:   sy[j],
			ColorR: c[0],
			ColorG: c[1],
			ColorB: c[2],
			ColorA: c[3],
		})
	}
	r.inds = append(r.inds,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
}

// appendLine adds a screen-space segment of the given pixel width with a
// premultiplied color at each end.
func (r *ebitenRenderer) appendLine(a, b Projected, width float32, ca, cb [4]float32) {
	dx := float32(b.X - a.X)
	dy := float32(b.Y - a.Y)
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	nx := -dy / l * width / 2
	ny := dx / l * width / 2
	ax, ay := float32(a.X), float32(a.Y)
	bx, by := float32(b.X), float32(b.Y)

	base := uint32(len(r.verts))
	pts := [4][2]float32{{ax + nx, ay + ny}, {bx + nx, by + ny}, {ax - nx, ay - ny}, {bx - nx, by - ny}}
	cols := [4][4]float32{ca, cb, ca, cb}
	for j := 0; j < 4; j++ {
		r.verts = append(r.verts, ebiten.Vertex{
			DstX:   pts[j][0],
			DstY:   pts[j][1],
			SrcX:   r.whiteX,
			SrcY:   r.whiteY,
			ColorR: cols[j][0],
			ColorG: cols[j][1],
			ColorB: cols[j][2],
			ColorA: cols[j][3],
		})
	}
	r.inds = append(r.inds,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
}

var nebulaCorners = [4]mgl64.Vec3{
	{-0.5, 0.5, 0},
	{0.5, 0.5, 0},
	{-0.5, -0.5, 0},
	{0.5, -0.5, 0},
}

func (r *ebitenRenderer) appendNebula(scene *Scene, cam *Camera, w, h float64) {
	nb := scene.Nebula
	if nb == nil || scene.NebulaEntrance <= 0 {
		return
	}
	group := scene.NebulaTransform()
	viewProj, view := cam.ViewProjection(), cam.View()

	for i := 0; i < nb.Len(); i++ {
		opacity, k := nb.Shade(i, scene.Time, scene.NebulaEntrance)
		if opacity <= 0 {
			continue
		}
		model := group.Mul4(nb.Matrix(i)).Mul4(mgl64.Scale3D(k, k, 1))
		mvp, mv := viewProj.Mul4(model), view.Mul4(model)

		var dx, dy [4]float32
		var depth float64
		visible := true
		for j, corner := range nebulaCorners {
			p, ok := projectWith(mvp, mv, corner, w, h, cam.Near, cam.Far)
			if !ok {
				visible = false
				break
			}
			dx[j], dy[j] = float32(p.X), float32(p.Y)
			depth += p.Depth / 4
		}
		if !visible {
			continue
		}
		a := opacity * scene.Fog(depth)
		c := nb.Color(i)
		r.appendQuad(dx, dy, r.cloud, [4]float32{
			float32(c.R * a), float32(c.G * a), float32(c.B * a), float32(a),
		})
		r.stats.Clouds++
	}
}

func (r *ebitenRenderer) appendStars(scene *Scene, cam *Camera, w, h float64) {
	sb := scene.Stars
	if sb == nil {
		return
	}
	model := scene.StarTransform()
	mvp := cam.ViewProjection().Mul4(model)
	mv := cam.View().Mul4(model)
	sh := &sb.shading
	minSize := sh.MinPointSize * r.ratio

	for i := 0; i < sb.Len(); i++ {
		pos := sb.Positions[i*starPosStride:]
		p, ok := projectWith(mvp, mv, mgl64.Vec3{float64(pos[0]), float64(pos[1]), float64(pos[2])}, w, h, cam.Near, cam.Far)
		if !ok || p.X < -w || p.X > 2*w || p.Y < -h || p.Y > 2*h {
			continue
		}
		alpha, sizeScale, c := sb.Shade(i, scene.Time)
		a := clamp01(alpha) * scene.Fog(p.Depth)
		if a <= 0 {
			continue
		}
		size := math.Max(float64(sb.Sizes[i])*sizeScale*sh.PointScale/p.Depth*r.ratio, minSize)
		if sb.Glow(i) {
			size *= 2
		}
		half := float32(size / 2)
		x, y := float32(p.X), float32(p.Y)
		r.appendQuad(
			[4]float32{x - half, x + half, x - half, x + half},
			[4]float32{y - half, y - half, y + half, y + half},
			r.star,
			[4]float32{float32(clamp01(c.R) * a), float32(clamp01(c.G) * a), float32(clamp01(c.B) * a), float32(a)},
		)
		r.stats.Stars++
	}
}

func (r *ebitenRenderer) appendEdges(scene *Scene, cam *Camera, w, h float64) {
	nw := scene.Network
	if nw == nil || nw.Edges.Count == 0 {
		return
	}
	viewProj, view := cam.ViewProjection(), cam.View()
	width := float32(r.ratio)
	eb := &nw.Edges
	for e := 0; e < eb.Count; e++ {
		pos := eb.Positions[e*6:]
		a, okA := projectWith(viewProj, view, mgl64.Vec3{float64(pos[0]), float64(pos[1]), float64(pos[2])}, w, h, cam.Near, cam.Far)
		b, okB := projectWith(viewProj, view, mgl64.Vec3{float64(pos[3]), float64(pos[4]), float64(pos[5])}, w, h, cam.Near, cam.Far)
		if !okA || !okB {
			continue
		}
		f := float32(scene.Fog((a.Depth + b.Depth) / 2))
		col := eb.Colors[e*6:]
		c := [4]float32{col[0] * f, col[1] * f, col[2] * f, 0}
		c[3] = max(c[0], c[1], c[2])
		r.appendLine(a, b, width, c, c)
		r.stats.Edges++
	}
}

func (r *ebitenRenderer) appendTrails(scene *Scene, cam *Camera, w, h float64) {
	pool := scene.ShootingStars
	if pool == nil || pool.ActiveCount() == 0 {
		return
	}
	viewProj, view := cam.ViewProjection(), cam.View()
	width := float32(1.5 * r.ratio)
	stars := pool.Stars()
	for i := range stars {
		s := &stars[i]
		if !s.Active || s.Opacity <= 0 {
			continue
		}
		tail, head := s.Trail()
		a, okA := projectWith(viewProj, view, tail, w, h, cam.Near, cam.Far)
		b, okB := projectWith(viewProj, view, head, w, h, cam.Near, cam.Far)
		if !okA || !okB {
			continue
		}
		o := float32(s.Opacity * scene.Fog(b.Depth))
		tc := TrailColors[0] * o
		hc := TrailColors[3] * o
		r.appendLine(a, b, width,
			[4]float32{tc, tc, tc, tc},
			[4]float32{hc, hc, hc, hc},
		)
		r.stats.Trails++
	}
}

func (r *ebitenRenderer) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	if r.surface.img != nil {
		r.surface.img.Deallocate()
		r.surface.img = nil
	}
	if r.atlas != nil {
		r.atlas.Deallocate()
		r.atlas = nil
	}
	r.verts = nil
	r.inds = nil
}
