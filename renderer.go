package starfield

// Renderer draws a Scene through a Camera into its Surface. Sizes are in
// container pixels; the surface itself is Width*PixelRatio by
// Height*PixelRatio device pixels.
type Renderer interface {
	Surface() Surface
	SetSize(width, height int)
	SetPixelRatio(ratio float64)
	PixelRatio() float64
	// Render issues one draw of the whole scene.
	Render(scene *Scene, cam *Camera)
	// Dispose releases every GPU resource. The renderer is unusable afterwards.
	Dispose()
}

// RendererOptions are passed to a RendererFactory at mount.
type RendererOptions struct {
	Width, Height int
	PixelRatio    float64
	// Scene provides the textures generated at mount.
	Scene  *Scene
	Config *Config
}

// RendererFactory builds the renderer for a mount.
type RendererFactory func(opts RendererOptions) (Renderer, error)
