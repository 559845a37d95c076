package gallery

import "math"

// LayoutKind is the arrangement used for an aligned group.
type LayoutKind uint8

const (
	LayoutRow   LayoutKind = iota // single horizontal row (desktop)
	LayoutStack                   // single vertical column (narrow viewports)
	LayoutGrid                    // rows of columns when one row will not fit
)

var layoutNames = [...]string{"row", "stack", "grid"}

func (k LayoutKind) String() string {
	if int(k) < len(layoutNames) {
		return layoutNames[k]
	}
	return "unknown"
}

// Layout is the result of arranging n aligned items around the world center.
type Layout struct {
	Kind      LayoutKind
	Positions []Vec2
	// ZoomIndex is the largest discrete level that keeps Extent inside the
	// viewport minus padding (or 0 if none does).
	ZoomIndex int
	// Extent is the world-space bounding box of the laid-out items.
	Extent Rect
	// Columns is the number of items per row (1 for stacks).
	Columns int
}

// rowSpacingFactor leaves 20% of an aligned item's size between row neighbours.
const rowSpacingFactor = 1.2

// captionHeight is the vertical room reserved under an aligned item.
func captionHeight(cfg *LayoutConfig) float64 {
	if !cfg.ShowCaptions {
		return 0
	}
	return cfg.TextSpacing + cfg.TextSize*cfg.TextLineHeight
}

// alignedSize is the target size of aligned items.
func alignedSize(cfg *Config) float64 {
	return cfg.Image.BaseSize * cfg.Image.AlignedSizeMultiplier
}

// ComputeLayout arranges n items for the given camera viewport. narrow selects
// the vertical stack used on small or touch screens; otherwise a row is used
// unless it would not fit even at the smallest zoom level, in which case the
// items wrap into a grid.
func ComputeLayout(n int, cfg *Config, cam *Camera, narrow bool) Layout {
	if n <= 0 {
		return Layout{ZoomIndex: cam.FitZoomIndex(math.Inf(1))}
	}
	if narrow {
		return stackLayout(n, cfg, cam)
	}

	size := alignedSize(cfg)
	spacing := size * rowSpacingFactor
	vp := cam.Viewport
	availW := vp.Width - 2*cfg.Layout.DesktopPadding
	availH := vp.Height - 2*cfg.Layout.DesktopPadding
	levels := cam.Levels()

	rowW := float64(n-1)*spacing + size
	rowH := size + captionHeight(&cfg.Layout)
	required := math.Min(availW/rowW, availH/rowH)
	if availW/rowW >= levels[0] || n == 1 {
		return gridLayout(n, n, LayoutRow, spacing, rowH, cam, required)
	}

	cols := int(math.Floor((availW/levels[0]-size)/spacing)) + 1
	if cols < 1 {
		cols = 1
	}
	rows := (n + cols - 1) / cols
	rowStep := rowH + cfg.Layout.DesktopHorizontalGap
	gridW := float64(cols-1)*spacing + size
	gridH := float64(rows-1)*rowStep + rowH
	required = math.Min(availW/gridW, availH/gridH)
	return gridLayout(n, cols, LayoutGrid, spacing, rowStep, cam, required)
}

// gridLayout places n items in rows of cols, each row centred horizontally
// and the whole block centred on the viewport center.
func gridLayout(n, cols int, kind LayoutKind, colStep, rowStep float64, cam *Camera, required float64) Layout {
	center := cam.Center()
	rows := (n + cols - 1) / cols
	totalH := float64(rows-1) * rowStep
	startY := center.Y - totalH/2

	l := Layout{
		Kind:      kind,
		Positions: make([]Vec2, n),
		ZoomIndex: cam.FitZoomIndex(required),
		Columns:   cols,
	}
	minX, maxX := math.Inf(1), math.Inf(-1)
	for r := 0; r < rows; r++ {
		inRow := cols
		if rem := n - r*cols; rem < cols {
			inRow = rem
		}
		rowW := float64(inRow-1) * colStep
		startX := center.X - rowW/2
		for c := 0; c < inRow; c++ {
			p := Vec2{startX + float64(c)*colStep, startY + float64(r)*rowStep}
			l.Positions[r*cols+c] = p
			minX = math.Min(minX, p.X)
			maxX = math.Max(maxX, p.X)
		}
	}
	l.Extent = Rect{X: minX, Y: startY, Width: maxX - minX, Height: totalH}
	return l
}

// stackLayout centres n items in one column sized to fit the viewport width.
func stackLayout(n int, cfg *Config, cam *Camera) Layout {
	size := alignedSize(cfg)
	step := size*(1+cfg.Layout.MobileVerticalSpacing) + captionHeight(&cfg.Layout)
	availW := cam.Viewport.Width - 2*cfg.Layout.MobilePadding
	return gridLayout(n, 1, LayoutStack, 0, step, cam, availW/size)
}

// stackScrollLimit returns how far the pan may move vertically so both ends
// of a stacked layout can be brought on screen at the given zoom.
func stackScrollLimit(l Layout, cfg *Config, viewportH, zoom float64) float64 {
	if l.Kind != LayoutStack {
		return 0
	}
	contentH := (l.Extent.Height + alignedSize(cfg) + captionHeight(&cfg.Layout)) * zoom
	visible := viewportH - 2*cfg.Layout.MobileTopPadding
	return math.Max(0, (contentH-visible)/2)
}
