package gallery

import (
	"math"
	"math/rand/v2"
	"path"
	"strings"

	"github.com/tanema/gween"
)

// Item is the content a point shows: a bitmap asset or a glyph.
type Item struct {
	// Path is an asset path inside the gallery's asset filesystem.
	Path string `yaml:"path,omitempty"`
	// Glyph is drawn as text when Path is empty (emoji, symbols).
	Glyph string `yaml:"glyph,omitempty"`
	// Category tags the item for filtering. Defaults to the asset folder.
	Category string `yaml:"category,omitempty"`
}

// IsImage reports whether the item is backed by a bitmap asset.
func (it Item) IsImage() bool {
	return it.Path != ""
}

// GroupKey identifies the items that align together: the asset folder for
// images, the glyph itself otherwise.
func (it Item) GroupKey() string {
	if it.Path != "" {
		return "dir:" + path.Dir(strings.ReplaceAll(it.Path, "\\", "/"))
	}
	return "glyph:" + it.Glyph
}

// CategoryName returns Category, or the asset folder name when unset.
func (it Item) CategoryName() string {
	if it.Category != "" {
		return it.Category
	}
	if it.Path != "" {
		return path.Base(path.Dir(strings.ReplaceAll(it.Path, "\\", "/")))
	}
	return ""
}

// Caption is the text shown under an aligned item.
func (it Item) Caption() string {
	if it.Path != "" {
		return ExtractFilename(it.Path)
	}
	return it.Glyph
}

// Point is one visual item placed on the field.
type Point struct {
	Index int

	// OriginalX and OriginalY are fixed at creation and never written again;
	// every return transition heads back to them.
	OriginalX, OriginalY float64

	// X and Y are where the point is drawn this frame, in world space.
	X, Y float64

	Layer Layer
	Item  Item

	Aligned          bool
	TargetX, TargetY float64
	// AlignedX and AlignedY are the interpolated layout position while a
	// transition runs or the point is aligned.
	AlignedX, AlignedY float64

	Size, TargetSize       float64
	Opacity, TargetOpacity float64

	transition *TweenGroup
	// returning is set while a reverted point travels back to its original
	// position; parallax applies on top of the tween.
	returning bool

	hovered    bool
	hoverBoost float64
	hoverTween *gween.Tween
}

// Transitioning reports whether an align or return animation is running.
func (p *Point) Transitioning() bool {
	return p.transition != nil && !p.transition.Done
}

// DisplaySize is the drawn size including the hover boost.
func (p *Point) DisplaySize() float64 {
	return p.Size * p.hoverBoost
}

// GenerateOptions drives GeneratePoints.
type GenerateOptions struct {
	Count        int
	MinDistance  float64
	Width        float64
	Height       float64
	MarginFactor float64
	MaxAttempts  int
}

// GenerationStats reports how a generation pass went.
type GenerationStats struct {
	// Relaxed counts points accepted after MaxAttempts candidates all
	// violated the minimum distance.
	Relaxed int
}

// BoundingBox returns the region points are placed in: the full width and
// the height minus a margin of marginFactor*height at top and bottom.
func BoundingBox(width, height, marginFactor float64) Rect {
	margin := height * marginFactor
	return Rect{X: 0, Y: margin, Width: width, Height: height - margin*2}
}

// GeneratePoints places opts.Count points by rejection sampling so that no two
// are closer than opts.MinDistance. When MaxAttempts candidates fail, the last
// one is kept anyway and counted in GenerationStats.Relaxed: the minimum
// distance is best effort, never a reason to loop forever.
//
// Points alternate layers by index and draw their item uniformly from items.
func GeneratePoints(rng *rand.Rand, opts GenerateOptions, items []Item) ([]*Point, GenerationStats) {
	var stats GenerationStats
	if opts.Count <= 0 {
		return nil, stats
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	box := BoundingBox(opts.Width, opts.Height, opts.MarginFactor)
	minSq := opts.MinDistance * opts.MinDistance
	points := make([]*Point, 0, opts.Count)

	for i := 0; i < opts.Count; i++ {
		var x, y float64
		valid := false
		for attempt := 0; attempt < opts.MaxAttempts && !valid; attempt++ {
			x = rng.Float64()*box.Width + box.X
			y = rng.Float64()*box.Height + box.Y
			valid = true
			for _, q := range points {
				dx, dy := x-q.OriginalX, y-q.OriginalY
				if dx*dx+dy*dy < minSq {
					valid = false
					break
				}
			}
		}
		if !valid {
			stats.Relaxed++
		}

		p := &Point{
			Index:         i,
			OriginalX:     x,
			OriginalY:     y,
			X:             x,
			Y:             y,
			AlignedX:      x,
			AlignedY:      y,
			TargetX:       x,
			TargetY:       y,
			Opacity:       1,
			TargetOpacity: 1,
			hoverBoost:    1,
		}
		if i%2 == 1 {
			p.Layer = LayerTwo
		}
		if len(items) > 0 {
			p.Item = items[rng.IntN(len(items))]
		}
		points = append(points, p)
	}
	return points, stats
}

// layerSize returns the resting size for a layer.
func layerSize(cfg *ImageConfig, l Layer) float64 {
	if l == LayerTwo {
		return cfg.BaseSize * cfg.Layer2SizeMultiplier
	}
	return cfg.BaseSize
}

// InitSizes sets every point to its layer's resting size at full opacity.
func InitSizes(points []*Point, cfg *ImageConfig) {
	for _, p := range points {
		s := layerSize(cfg, p.Layer)
		p.Size = s
		p.TargetSize = s
		p.Opacity = 1
		p.TargetOpacity = 1
		p.hoverBoost = 1
	}
}

// IsHovered reports whether (mx, my) is within half of size from (px, py).
func IsHovered(px, py, mx, my, size float64) bool {
	return Distance(px, py, mx, my) < size/2
}

// HitTest returns the point under the world position (wx, wy), or nil.
// Points are checked in reverse draw order and the closest centre wins; the
// hit radius is half of each point's displayed size.
func HitTest(points []*Point, wx, wy float64) *Point {
	var hit *Point
	best := math.Inf(1)
	for i := len(points) - 1; i >= 0; i-- {
		p := points[i]
		d := Distance(p.X, p.Y, wx, wy)
		if d < p.DisplaySize()/2 && d < best {
			hit = p
			best = d
		}
	}
	return hit
}

// groupOf returns every point sharing key, in index order.
func groupOf(points []*Point, key string) []*Point {
	var out []*Point
	for _, p := range points {
		if p.Item.GroupKey() == key {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct item categories in first-seen order.
func Categories(items []Item) []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range items {
		c := it.CategoryName()
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
