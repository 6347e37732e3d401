package starfield

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// drawFPS prints the current FPS and TPS in the top-left corner over a
// semi-transparent backing.
func drawFPS(screen *ebiten.Image) {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	vector.DrawFilledRect(screen, 0, 0, 100, 32, color.RGBA{0, 0, 0, 128}, false)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}
