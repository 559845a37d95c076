package gallery

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// alphaEpsilon is the opacity change below which the shared paint state is
// left alone.
const alphaEpsilon = 0.01

// fillerColor marks items whose bitmap is still loading.
var fillerColor = Color{1, 1, 1, 0.15}

// alphaChanged reports whether next differs enough from last to be written.
func alphaChanged(last, next float64) bool {
	return math.Abs(next-last) > alphaEpsilon
}

// setAlpha writes opacity into the shared draw options when it changed.
func (g *Gallery) setAlpha(a float64) {
	if !alphaChanged(g.lastAlpha, a) {
		return
	}
	g.drawOpts.ColorScale.Reset()
	g.drawOpts.ColorScale.ScaleAlpha(float32(clamp01(a)))
	g.lastAlpha = a
	g.stats.alphaWrites++
}

// Draw implements ebiten.Game. It renders the background grid, every point,
// captions and overlays. Until the loader settles only the progress gate is
// drawn.
func (g *Gallery) Draw(screen *ebiten.Image) {
	var t0 time.Time
	g.stats = debugStats{}
	g.lastAlpha = -1

	screen.Fill(g.background.toRGBA())

	if !g.loader.Done() {
		g.drawLoading(screen)
		g.drawOverlays(screen)
		return
	}

	view := geoM(g.camera.computeViewMatrix())

	if g.debug {
		t0 = time.Now()
	}
	g.drawGrid(screen)
	if g.debug {
		g.stats.gridTime = time.Since(t0)
		t0 = time.Now()
	}
	g.drawPoints(screen, view)
	if g.debug {
		g.stats.pointsTime = time.Since(t0)
		t0 = time.Now()
	}

	if g.cfg.Layout.ShowCaptions && g.mode == ModeAligned {
		g.drawCaptions(screen, view)
	}
	g.drawUsername(screen)
	g.drawScrollIndicator(screen)
	if g.mode == ModeAbout {
		g.drawAbout(screen)
	}
	if g.debug {
		g.stats.overlayTime = time.Since(t0)
	}
	g.drawOverlays(screen)
}

// drawOverlays draws the FPS widget, logs stats and captures screenshots.
// Screenshots include everything drawn before them.
func (g *Gallery) drawOverlays(screen *ebiten.Image) {
	if g.showFPS {
		g.fps.draw(screen)
	}
	if g.debug {
		g.stats.imagesLoaded = g.loader.Progress().Loaded
		g.debugLog(g.stats)
	}
	g.flushScreenshots(screen)
}

// gridLines returns the world coordinates of grid lines of spacing size
// covering [lo, hi].
func gridLines(lo, hi, size float64, buf []float64) []float64 {
	buf = buf[:0]
	if size <= 0 {
		return buf
	}
	for v := math.Floor(lo/size) * size; v <= hi; v += size {
		buf = append(buf, v)
	}
	return buf
}

// drawGrid strokes the background grid across the visible world rectangle.
func (g *Gallery) drawGrid(dst *ebiten.Image) {
	gc := &g.cfg.Grid
	if gc.Size <= 0 || gc.Opacity <= 0 {
		return
	}
	b := g.camera.VisibleBounds()
	clr := g.gridColor.toRGBA()
	var buf [256]float64

	for _, x := range gridLines(b.X, b.X+b.Width, gc.Size, buf[:0]) {
		x0, y0 := g.camera.WorldToScreen(x, b.Y)
		x1, y1 := g.camera.WorldToScreen(x, b.Y+b.Height)
		vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1), 1, clr, false)
	}
	for _, y := range gridLines(b.Y, b.Y+b.Height, gc.Size, buf[:0]) {
		x0, y0 := g.camera.WorldToScreen(b.X, y)
		x1, y1 := g.camera.WorldToScreen(b.X+b.Width, y)
		vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1), 1, clr, false)
	}
}

// fitSize returns the largest width and height with the given aspect ratio
// (width / height) that fit in a size x size square.
func fitSize(size, aspect float64) (w, h float64) {
	if aspect <= 0 {
		return size, size
	}
	if aspect >= 1 {
		return size, size / aspect
	}
	return size * aspect, size
}

// culled reports whether a point of the given size lies entirely outside the
// visible world rectangle.
func culled(p *Point, size float64, visible Rect) bool {
	half := size / 2
	return p.X+half < visible.X || p.X-half > visible.X+visible.Width ||
		p.Y+half < visible.Y || p.Y-half > visible.Y+visible.Height
}

// drawPoints draws every point in index order, so later points sit on top.
// Loaded bitmaps keep their aspect ratio, pending ones show a filler, failed
// ones draw nothing.
func (g *Gallery) drawPoints(dst *ebiten.Image, view ebiten.GeoM) {
	visible := g.camera.VisibleBounds()
	op := &g.drawOpts

	for _, p := range g.points {
		size := p.DisplaySize()
		if p.Opacity < 0.005 || size <= 0 || culled(p, size, visible) {
			continue
		}

		switch {
		case p.Item.IsImage():
			img, entry := g.imageFor(p.Item.Path)
			if img == nil {
				if !g.loader.Failed(p.Item.Path) {
					g.drawFiller(dst, p, size)
				}
				continue
			}
			w, h := fitSize(size, entry.AspectRatio)
			op.GeoM.Reset()
			op.GeoM.Scale(w/float64(entry.Width), h/float64(entry.Height))
			op.GeoM.Translate(p.X-w/2, p.Y-h/2)
			op.GeoM.Concat(view)
			g.setAlpha(p.Opacity)
			dst.DrawImage(img, &op.DrawImageOptions)

		case p.Item.Glyph != "":
			face, scale := g.fonts.face(size)
			op.GeoM.Reset()
			op.GeoM.Scale(scale, scale)
			op.GeoM.Translate(p.X, p.Y)
			op.GeoM.Concat(view)
			op.PrimaryAlign = text.AlignCenter
			op.SecondaryAlign = text.AlignCenter
			op.LineSpacing = 0
			g.setAlpha(p.Opacity)
			text.Draw(dst, p.Item.Glyph, face, op)

		default:
			g.drawFiller(dst, p, size)
		}
		g.stats.pointsDrawn++
	}
}

// drawFiller draws a faint disc in place of a pending item.
func (g *Gallery) drawFiller(dst *ebiten.Image, p *Point, size float64) {
	sx, sy := g.camera.WorldToScreen(p.X, p.Y)
	r := size / 2 * g.camera.Zoom
	clr := fillerColor.WithAlpha(p.Opacity).toRGBA()
	vector.DrawFilledCircle(dst, float32(sx), float32(sy), float32(r), clr, true)
}

// imageFor returns the GPU image for a loaded asset, creating it on first use.
func (g *Gallery) imageFor(path string) (*ebiten.Image, *ImageEntry) {
	entry := g.loader.Entry(path)
	if entry == nil {
		return nil, nil
	}
	img, ok := g.images[path]
	if !ok {
		img = ebiten.NewImageFromImage(entry.Image)
		g.images[path] = img
	}
	return img, entry
}

// scrollIndicator returns the thumb rectangle and opacity of the narrow
// stack's scroll indicator. The thumb fades out fadeMs after the last scroll.
func scrollIndicator(ui *UIConfig, vp Rect, scroll, limit, sinceMs float64) (Rect, float64) {
	if limit <= 0 {
		return Rect{}, 0
	}
	fade := 1.0
	if ui.ScrollIndicatorFadeDuration > 0 {
		fade = clamp01(1 - sinceMs/ui.ScrollIndicatorFadeDuration)
	}
	track := vp.Height - 2*ui.ScrollIndicatorMinY - ui.ScrollIndicatorHeight
	// Positive scroll moves content down, towards the top of the stack.
	progress := clamp01((limit - scroll) / (2 * limit))
	return Rect{
		X:      vp.X + vp.Width - ui.ScrollIndicatorPadding - ui.ScrollIndicatorWidth,
		Y:      vp.Y + ui.ScrollIndicatorMinY + progress*math.Max(0, track),
		Width:  ui.ScrollIndicatorWidth,
		Height: ui.ScrollIndicatorHeight,
	}, ui.ScrollIndicatorOpacity * fade
}

func (g *Gallery) drawScrollIndicator(dst *ebiten.Image) {
	if !g.scrollable() {
		return
	}
	r, alpha := scrollIndicator(&g.cfg.UI, g.camera.Viewport, g.scroll, g.scrollLimit, g.clock-g.scrollShownAt)
	if alpha <= 0 {
		return
	}
	clr := ColorWhite.WithAlpha(alpha).toRGBA()
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), clr, true)
}

// drawProgressBar draws the loading bar centred on center.
func (g *Gallery) drawProgressBar(dst *ebiten.Image, center Vec2, frac float64) {
	const w, h = 240.0, 4.0
	x, y := center.X-w/2, center.Y
	vector.DrawFilledRect(dst, float32(x), float32(y), w, h, ColorWhite.WithAlpha(0.2).toRGBA(), false)
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w*clamp01(frac)), h, ColorWhite.toRGBA(), false)
}
