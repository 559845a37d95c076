package gallery

import (
	"testing"
)

const frame = float32(1.0 / 60)

// newTestGallery builds a glyph-only gallery with a fixed seed. No asset
// filesystem is needed and nothing touches the GPU.
func newTestGallery(t *testing.T, width, height int) *Gallery {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Point.Seed = 42
	cfg.Point.Count = 40
	cfg.Content.Items = []Item{
		{Glyph: "a", Category: "x"},
		{Glyph: "b", Category: "y"},
	}
	g, err := NewGallery(cfg, nil, width, height)
	if err != nil {
		t.Fatalf("NewGallery: %v", err)
	}
	t.Cleanup(g.Close)
	return g
}

// run advances g by n headless frames.
func run(g *Gallery, n int) {
	for i := 0; i < n; i++ {
		g.advance(frame, nil)
	}
}

func TestNewGallery(t *testing.T) {
	g := newTestGallery(t, 1920, 1080)
	if len(g.Points()) != 40 {
		t.Errorf("points = %d, want 40", len(g.Points()))
	}
	if g.Mode() != ModeIdle {
		t.Errorf("Mode = %v, want idle", g.Mode())
	}
	if !g.Loader().Done() {
		t.Error("glyph-only gallery should have nothing to load")
	}
	if g.ScreenshotDir != "screenshots" || g.ScreenshotFormat != FormatPNG {
		t.Errorf("screenshot defaults = %q %v", g.ScreenshotDir, g.ScreenshotFormat)
	}
	for _, p := range g.Points() {
		if p.Item.Glyph != "a" && p.Item.Glyph != "b" {
			t.Fatalf("point %d has item %+v", p.Index, p.Item)
		}
	}
}

func TestNewGalleryRejectsBadInput(t *testing.T) {
	cfg := DefaultConfig()
	if _, err := NewGallery(cfg, nil, 0, 600); err == nil {
		t.Error("zero width accepted")
	}

	cfg.Image.BaseSize = -1
	if _, err := NewGallery(cfg, nil, 800, 600); err == nil {
		t.Error("invalid config accepted")
	}

	cfg = DefaultConfig()
	cfg.Content.Items = []Item{{Path: "a/b.png"}}
	if _, err := NewGallery(cfg, nil, 800, 600); err == nil {
		t.Error("image items without a filesystem accepted")
	}
}

func TestGallerySeedIsDeterministic(t *testing.T) {
	a := newTestGallery(t, 1280, 720)
	b := newTestGallery(t, 1280, 720)
	for i := range a.Points() {
		pa, pb := a.Points()[i], b.Points()[i]
		if pa.OriginalX != pb.OriginalX || pa.OriginalY != pb.OriginalY || pa.Item != pb.Item {
			t.Fatalf("point %d differs with the same seed", i)
		}
	}
}

func TestSetDebugMode(t *testing.T) {
	g := newTestGallery(t, 800, 600)
	g.SetDebugMode(true)
	if !g.debug || !g.loader.debug {
		t.Error("debug should reach the loader")
	}
	g.SetDebugMode(false)
	if g.debug || g.loader.debug {
		t.Error("debug still on")
	}
}

func TestParallaxFollowsPointer(t *testing.T) {
	g := newTestGallery(t, 1000, 800)
	g.HandleEvent(Event{Type: EventPointerMove, X: 1000, Y: 400})
	run(g, 200)

	off := g.parallaxOffset()
	if !approxEqual(off.X, 500*g.cfg.Parallax.Strength, 1e-3) || !approxEqual(off.Y, 0, 1e-3) {
		t.Fatalf("parallax offset = %v", off)
	}
	for _, p := range g.Points() {
		speed := g.layerSpeed(p.Layer)
		if !approxEqual(p.X, p.OriginalX+off.X*speed, 1e-9) {
			t.Fatalf("point %d X = %f, want %f", p.Index, p.X, p.OriginalX+off.X*speed)
		}
	}
	// Layer 2 moves less than layer 1.
	if g.layerSpeed(LayerTwo) >= g.layerSpeed(LayerOne) {
		t.Error("back layer should be slower")
	}
}

func TestHoverGrowsPoint(t *testing.T) {
	g := newTestGallery(t, 1920, 1080)
	var target *Point
	for _, p := range g.Points() {
		if p.Layer == LayerOne {
			target = p
			break
		}
	}
	g.HandleEvent(Event{Type: EventPointerMove, X: target.OriginalX, Y: target.OriginalY})
	run(g, 120)
	if target.hoverBoost <= 1 {
		t.Fatalf("hoverBoost = %f, want > 1", target.hoverBoost)
	}
	if !approxEqual(target.DisplaySize(), target.Size*g.cfg.Image.HoverZoom, 1e-3) {
		t.Errorf("DisplaySize = %f, want %f", target.DisplaySize(), target.Size*g.cfg.Image.HoverZoom)
	}

	g.HandleEvent(Event{Type: EventPointerLeave})
	run(g, 60)
	if target.hoverBoost != 1 {
		t.Errorf("hoverBoost = %f after leaving, want 1", target.hoverBoost)
	}
}

func TestOpacitySmoothing(t *testing.T) {
	g := newTestGallery(t, 800, 600)
	p := g.Points()[0]
	p.TargetOpacity = 0
	run(g, 1)
	if p.Opacity >= 1 || p.Opacity <= 0 {
		t.Errorf("Opacity = %f after one frame, want between 0 and 1", p.Opacity)
	}
	run(g, 600)
	if p.Opacity > 0.01 {
		t.Errorf("Opacity = %f, want near 0", p.Opacity)
	}
}

func TestResizeRegenerates(t *testing.T) {
	g := newTestGallery(t, 1920, 1080)
	g.Align(g.Points()[0])

	w, h := g.Layout(640, 480)
	if w != 640 || h != 480 {
		t.Errorf("Layout = %dx%d, want 640x480", w, h)
	}
	if g.Mode() != ModeIdle {
		t.Errorf("Mode = %v after resize, want idle", g.Mode())
	}
	box := BoundingBox(640, 480, g.cfg.Point.BoundingBoxMargin)
	for _, p := range g.Points() {
		if !box.Contains(p.OriginalX, p.OriginalY) {
			t.Fatalf("point %d at (%f,%f) outside %+v", p.Index, p.OriginalX, p.OriginalY, box)
		}
		if p.Aligned {
			t.Fatalf("point %d still aligned", p.Index)
		}
	}
	if c := g.Camera().Center(); c != (Vec2{320, 240}) {
		t.Errorf("camera center = %v", c)
	}

	// Same size is a no-op.
	before := g.Points()[0]
	g.Layout(640, 480)
	if g.Points()[0] != before {
		t.Error("Layout with an unchanged size regenerated the points")
	}
}
