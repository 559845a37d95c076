package gallery

import "testing"

// layoutConfig gives aligned items a size of 100 and a 31.6px caption.
func layoutConfig() Config {
	cfg := DefaultConfig()
	cfg.Image.BaseSize = 100
	cfg.Image.AlignedSizeMultiplier = 1
	return cfg
}

func TestComputeLayoutRow(t *testing.T) {
	cfg := layoutConfig()
	cam := NewCamera(Rect{Width: 1920, Height: 1080}, &cfg)
	l := ComputeLayout(5, &cfg, cam, false)

	if l.Kind != LayoutRow {
		t.Fatalf("Kind = %v, want row", l.Kind)
	}
	wantX := []float64{720, 840, 960, 1080, 1200}
	for i, p := range l.Positions {
		if !approxEqual(p.X, wantX[i], epsilon) || !approxEqual(p.Y, 540, epsilon) {
			t.Errorf("position %d = %v, want (%v,540)", i, p, wantX[i])
		}
	}
	// A 580px row in 1760px of room fits up to 3x.
	if l.ZoomIndex != 5 {
		t.Errorf("ZoomIndex = %d, want 5", l.ZoomIndex)
	}
	if l.Columns != 5 {
		t.Errorf("Columns = %d, want 5", l.Columns)
	}
}

func TestComputeLayoutRowPicksLargestFittingLevel(t *testing.T) {
	cfg := layoutConfig()
	cam := NewCamera(Rect{Width: 1920, Height: 1080}, &cfg)
	// 12 items: row 1420px wide, 1760/1420 = 1.24, so level 1.0.
	l := ComputeLayout(12, &cfg, cam, false)
	if l.Kind != LayoutRow {
		t.Fatalf("Kind = %v, want row", l.Kind)
	}
	if got := cam.Levels()[l.ZoomIndex]; got != 1 {
		t.Errorf("zoom = %v, want 1", got)
	}
}

func TestComputeLayoutSingleItem(t *testing.T) {
	cfg := DefaultConfig() // aligned size 672
	cam := NewCamera(Rect{Width: 1920, Height: 1080}, &cfg)
	l := ComputeLayout(1, &cfg, cam, false)
	if l.Kind != LayoutRow || len(l.Positions) != 1 {
		t.Fatalf("layout = %+v", l)
	}
	if l.Positions[0] != cam.Center() {
		t.Errorf("single item at %v, want the center", l.Positions[0])
	}
}

func TestComputeLayoutGridFallback(t *testing.T) {
	cfg := layoutConfig()
	cam := NewCamera(Rect{Width: 1920, Height: 1080}, &cfg)
	l := ComputeLayout(40, &cfg, cam, false)

	if l.Kind != LayoutGrid {
		t.Fatalf("Kind = %v, want grid", l.Kind)
	}
	if l.Columns != 29 {
		t.Errorf("Columns = %d, want 29", l.Columns)
	}
	if len(l.Positions) != 40 {
		t.Fatalf("len = %d, want 40", len(l.Positions))
	}
	if l.ZoomIndex != 0 {
		t.Errorf("ZoomIndex = %d, want 0", l.ZoomIndex)
	}
	// Two rows, centred on the viewport.
	rowStep := 100 + captionHeight(&cfg.Layout) + cfg.Layout.DesktopHorizontalGap
	if !approxEqual(l.Positions[0].Y, 540-rowStep/2, epsilon) {
		t.Errorf("first row y = %f, want %f", l.Positions[0].Y, 540-rowStep/2)
	}
	if !approxEqual(l.Positions[39].Y, 540+rowStep/2, epsilon) {
		t.Errorf("second row y = %f, want %f", l.Positions[39].Y, 540+rowStep/2)
	}
	// The short second row is centred too.
	second := l.Positions[29:]
	mid := (second[0].X + second[len(second)-1].X) / 2
	if !approxEqual(mid, 960, epsilon) {
		t.Errorf("second row centre = %f, want 960", mid)
	}
}

func TestComputeLayoutStack(t *testing.T) {
	cfg := layoutConfig()
	cam := NewCamera(Rect{Width: 400, Height: 800}, &cfg)
	l := ComputeLayout(3, &cfg, cam, true)

	if l.Kind != LayoutStack {
		t.Fatalf("Kind = %v, want stack", l.Kind)
	}
	step := 100*1.7 + captionHeight(&cfg.Layout)
	for i, p := range l.Positions {
		wantY := 400 + float64(i-1)*step
		if !approxEqual(p.X, 200, epsilon) || !approxEqual(p.Y, wantY, epsilon) {
			t.Errorf("position %d = %v, want (200,%f)", i, p, wantY)
		}
	}
	// 320px of room for a 100px item: 3.2, so the 3x level.
	if l.ZoomIndex != 5 {
		t.Errorf("ZoomIndex = %d, want 5", l.ZoomIndex)
	}
	if !approxEqual(l.Extent.Height, 2*step, epsilon) {
		t.Errorf("Extent.Height = %f, want %f", l.Extent.Height, 2*step)
	}
}

func TestStackScrollLimit(t *testing.T) {
	cfg := layoutConfig()
	cam := NewCamera(Rect{Width: 400, Height: 800}, &cfg)
	l := ComputeLayout(3, &cfg, cam, true)

	ch := captionHeight(&cfg.Layout)
	contentH := (l.Extent.Height + 100 + ch) * 3
	want := (contentH - (800 - 2*cfg.Layout.MobileTopPadding)) / 2
	if got := stackScrollLimit(l, &cfg, 800, 3); !approxEqual(got, want, 1e-9) {
		t.Errorf("stackScrollLimit = %f, want %f", got, want)
	}

	// Content that fits does not scroll.
	if got := stackScrollLimit(l, &cfg, 800, 0.5); got != 0 {
		t.Errorf("stackScrollLimit at 0.5x = %f, want 0", got)
	}
	row := ComputeLayout(3, &cfg, cam, false)
	if got := stackScrollLimit(row, &cfg, 800, 3); got != 0 {
		t.Errorf("row layout scroll limit = %f, want 0", got)
	}
}

func TestCaptionHeight(t *testing.T) {
	cfg := DefaultConfig().Layout
	if got := captionHeight(&cfg); !approxEqual(got, 10+18*1.2, epsilon) {
		t.Errorf("captionHeight = %f", got)
	}
	cfg.ShowCaptions = false
	if captionHeight(&cfg) != 0 {
		t.Error("captions off should reserve nothing")
	}
}

func TestLayoutKindString(t *testing.T) {
	if LayoutRow.String() != "row" || LayoutStack.String() != "stack" || LayoutGrid.String() != "grid" {
		t.Error("unexpected layout names")
	}
}
