package gallery

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often, in seconds, the FPS readout is redrawn.
const fpsRefresh = 0.5

// fpsCounter is the FPS/TPS readout in the top-right corner. Its image is
// redrawn about every half second using ebitenutil.DebugPrint.
type fpsCounter struct {
	img     *ebiten.Image
	elapsed float64
	dirty   bool
}

// tick accumulates simulated time and flags a refresh when due.
func (f *fpsCounter) tick(dt float64) {
	f.elapsed += dt
	if f.elapsed < fpsRefresh {
		return
	}
	f.elapsed = 0
	f.dirty = true
}

func (f *fpsCounter) draw(screen *ebiten.Image) {
	if f.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		f.img = ebiten.NewImage(100, 32)
		f.dirty = true
	}
	if f.dirty {
		f.dirty = false
		f.img.Clear()
		f.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(f.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(screen.Bounds().Dx()-f.img.Bounds().Dx()-8), 8)
	screen.DrawImage(f.img, &op)
}
