package gallery

import (
	"context"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Gallery is the top-level object that owns the points, the camera, the
// interaction state and the image loader. It implements ebiten.Game.
type Gallery struct {
	cfg   Config
	fsys  fs.FS
	items []Item
	rng   *rand.Rand

	camera   *Camera
	points   []*Point
	genStats GenerationStats

	mode     Mode
	layout   Layout
	groupKey string
	category string

	// clock is the time in milliseconds, advanced by dt every tick.
	clock float64

	pointer       Vec2 // smoothed, drives parallax and hover
	pointerTarget Vec2
	pointerInside bool
	touchSeen     bool
	press         pressState

	// Narrow stack scrolling, in screen pixels of vertical pan.
	scroll, scrollTarget, scrollLimit float64
	scrollShownAt                     float64

	loader *ImageLoader
	images map[string]*ebiten.Image
	fonts  *fontSet

	background Color
	gridColor  Color
	// drawOpts is the shared paint state for images and text. lastAlpha is
	// the opacity last written to it.
	drawOpts  text.DrawOptions
	lastAlpha float64

	input           inputState
	injectQueue     []Event
	testRunner      *TestRunner
	screenshotQueue []string

	// ScreenshotDir is where Screenshot writes captures.
	ScreenshotDir string
	// ScreenshotFormat selects the capture encoding.
	ScreenshotFormat ImageFormat

	debug   bool
	showFPS bool
	stats   debugStats
	mem     *memSampler // created by the first debug log
	fps     fpsCounter

	width, height int
}

// NewGallery validates cfg, places the points for a width x height viewport
// and starts loading image items from fsys. fsys may be nil when every item
// is a glyph.
func NewGallery(cfg Config, fsys fs.FS, width, height int) (*Gallery, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("gallery: bad viewport %dx%d", width, height)
	}
	background, _ := parseHexColor(cfg.UI.Background)
	grid, _ := parseHexColor(cfg.Grid.Color)

	seed := cfg.Point.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	g := &Gallery{
		cfg:              cfg,
		fsys:             fsys,
		items:            cfg.Content.Items,
		rng:              rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		images:           make(map[string]*ebiten.Image),
		background:       background,
		gridColor:        grid.WithAlpha(cfg.Grid.Opacity),
		ScreenshotDir:    "screenshots",
		ScreenshotFormat: FormatPNG,
		width:            width,
		height:           height,
	}
	g.camera = NewCamera(Rect{Width: float64(width), Height: float64(height)}, &g.cfg)
	g.pointer = g.camera.Center()
	g.pointerTarget = g.pointer
	g.regenerate()
	g.fonts = loadFonts(fsys, cfg.Content.FontPath, cfg.Layout.TextSize)

	var paths []string
	for _, it := range g.items {
		if it.IsImage() {
			paths = append(paths, it.Path)
		}
	}
	if len(paths) > 0 && fsys == nil {
		return nil, fmt.Errorf("gallery: %d image items but no asset filesystem", len(paths))
	}
	g.loader = NewImageLoader(fsys, cfg.loaderConfig())
	g.loader.Start(context.Background(), paths)
	return g, nil
}

// Close stops background loading.
func (g *Gallery) Close() {
	g.loader.Close()
}

// Config returns the gallery's configuration.
func (g *Gallery) Config() *Config {
	return &g.cfg
}

// Camera returns the gallery camera.
func (g *Gallery) Camera() *Camera {
	return g.camera
}

// Points returns the current points. The returned slice MUST NOT be mutated.
func (g *Gallery) Points() []*Point {
	return g.points
}

// Loader returns the image loader.
func (g *Gallery) Loader() *ImageLoader {
	return g.loader
}

// GenerationStats reports how the last point placement went.
func (g *Gallery) GenerationStats() GenerationStats {
	return g.genStats
}

// SetDebugMode enables or disables debug mode. When enabled, per-frame timing
// stats, relaxed point placements and dropped assets are logged to stderr.
func (g *Gallery) SetDebugMode(enabled bool) {
	g.debug = enabled
	g.loader.SetDebug(enabled)
}

// SetShowFPS shows or hides the FPS overlay.
func (g *Gallery) SetShowFPS(show bool) {
	g.showFPS = show
}

// regenerate replaces every point with a fresh placement for the viewport.
func (g *Gallery) regenerate() {
	vp := g.camera.Viewport
	pts, stats := GeneratePoints(g.rng, GenerateOptions{
		Count:        g.cfg.Point.Count,
		MinDistance:  g.cfg.Point.MinDistance,
		Width:        vp.Width,
		Height:       vp.Height,
		MarginFactor: g.cfg.Point.BoundingBoxMargin,
		MaxAttempts:  g.cfg.Point.MaxGenerationAttempts,
	}, g.items)
	InitSizes(pts, &g.cfg.Image)
	g.points = pts
	g.genStats = stats
	if g.debug && stats.Relaxed > 0 {
		_, _ = fmt.Fprintf(os.Stderr, "[gallery] %d of %d points placed closer than %.0fpx\n",
			stats.Relaxed, len(pts), g.cfg.Point.MinDistance)
	}
}

// resize regenerates the field for a new viewport and returns to idle.
func (g *Gallery) resize(width, height int) {
	g.width, g.height = width, height
	g.camera.SetViewport(Rect{Width: float64(width), Height: float64(height)})
	g.regenerate()
	g.mode = ModeIdle
	g.layout = Layout{}
	g.groupKey, g.category = "", ""
	g.scroll, g.scrollTarget, g.scrollLimit = 0, 0, 0
	g.press = pressState{}
	g.camera.ResetZoom()
	g.camera.ResetPan()
	g.pointer = g.camera.Center()
	g.pointerTarget = g.pointer
}

// Update implements ebiten.Game.
func (g *Gallery) Update() error {
	g.advance(float32(1.0/float64(ebiten.TPS())), g.pollInput)
	return nil
}

// Layout implements ebiten.Game. A size change regenerates the field.
func (g *Gallery) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 && (outsideWidth != g.width || outsideHeight != g.height) {
		g.resize(outsideWidth, outsideHeight)
	}
	return g.width, g.height
}

// advance runs one tick. Injected input replaces real input for the frames
// it covers; poll may be nil in headless use.
func (g *Gallery) advance(dt float32, poll func()) {
	if g.testRunner != nil {
		g.testRunner.step(g)
	}
	if !g.processInjectedInput() && poll != nil {
		poll()
	}
	g.step(dt)
}

// step advances the animation state by dt seconds. It never touches the GPU.
func (g *Gallery) step(dt float32) {
	g.clock += float64(dt) * 1000
	g.loader.Poll()

	if g.mode == ModeDragging {
		g.pointer = g.pointerTarget
	} else {
		s := g.cfg.Parallax.MouseSmoothness
		g.pointer.X = SmoothTowards(g.pointer.X, g.pointerTarget.X, s)
		g.pointer.Y = SmoothTowards(g.pointer.Y, g.pointerTarget.Y, s)
	}

	g.camera.update(dt, g.mode == ModeDragging)
	g.updatePoints(dt)

	if g.scrollable() {
		g.scroll = SmoothTowards(g.scroll, g.scrollTarget, g.cfg.Animation.MobileScrollSmoothness)
		g.camera.Pan = Vec2{Y: g.scroll}
		g.camera.TargetPan = g.camera.Pan
		g.camera.MarkDirty()
	}
	g.fps.tick(float64(dt))
}

// parallaxOffset is the pointer displacement from the viewport center scaled
// by the parallax strength. Layers multiply it by their speed.
func (g *Gallery) parallaxOffset() Vec2 {
	return g.pointer.Sub(g.camera.Center()).Scale(g.cfg.Parallax.Strength)
}

func (g *Gallery) layerSpeed(l Layer) float64 {
	if l == LayerTwo {
		return g.cfg.Parallax.Layer2Speed
	}
	return g.cfg.Parallax.Layer1Speed
}

// updatePoints recomputes every point's frame position, size and opacity from
// its current and target state.
func (g *Gallery) updatePoints(dt float32) {
	off := g.parallaxOffset()
	mx, my := g.camera.ScreenToWorld(g.pointer.X, g.pointer.Y)
	anim := &g.cfg.Animation
	hoverDur := millis(anim.HoverDuration)
	hoverable := g.mode == ModeIdle && g.pointerInside

	for _, p := range g.points {
		speed := g.layerSpeed(p.Layer)
		p.Opacity = SmoothTowards(p.Opacity, p.TargetOpacity, anim.OpacitySmoothness)

		if p.transition != nil {
			p.transition.Update(dt)
			if p.transition.Done {
				p.transition = nil
				if p.returning {
					p.returning = false
					p.AlignedX, p.AlignedY = p.OriginalX, p.OriginalY
				}
			}
		}

		switch {
		case p.Aligned:
			p.X, p.Y = p.AlignedX, p.AlignedY
		case p.returning:
			p.X = p.AlignedX + off.X*speed
			p.Y = p.AlignedY + off.Y*speed
		default:
			p.X = p.OriginalX + off.X*speed
			p.Y = p.OriginalY + off.Y*speed
			p.Size = SmoothTowards(p.Size, p.TargetSize, anim.SizeInterpolationSpeed)
			setHover(p, hoverable && IsHovered(p.X, p.Y, mx, my, p.Size), g.cfg.Image.HoverZoom, hoverDur)
		}
		updateHover(p, dt)
	}
}

// RunConfig holds optional parameters for Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	ShowFPS   bool
	Resizable bool
}

// Run opens a window and runs g until the window closes.
func Run(g *Gallery, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	g.showFPS = cfg.ShowFPS
	defer g.Close()
	return ebiten.RunGame(g)
}
