package gallery

import (
	"math"

	"github.com/tanema/gween"
)

// Camera maps between screen space (pixels, origin top-left) and world space:
//
//	screen = (world - center) * zoom + center + pan
//	world  = (screen - center - pan) / zoom + center
//
// Zoom moves along an ordered ladder of discrete levels with an eased
// transition, or, during focal zoom, chases a continuous target while the
// world point under the focal point stays put. Pan chases its target with
// exponential smoothing plus a decaying flick velocity.
type Camera struct {
	// Viewport is the screen-space rectangle the camera renders into.
	Viewport Rect

	// Zoom is the current, possibly interpolating, scale factor.
	Zoom float64
	// Pan is the current screen-space offset; TargetPan is where it heads.
	Pan, TargetPan Vec2
	// Velocity is the flick velocity in pixels per millisecond.
	Velocity Vec2

	levels       []float64
	index        int
	defaultIndex int
	minZoom      float64
	maxZoom      float64

	transition         *gween.Tween
	transitionDuration float32

	// Continuous focal zoom. continuous stays set after the focal point is
	// released, until a discrete level is selected again.
	targetZoom  float64
	continuous  bool
	focalActive bool
	focal       Vec2 // screen space
	focalWorld  Vec2

	panSmoothness   float64
	zoomSmoothness  float64
	velocityDecay   float64
	inertiaStrength float64
	sensitivity     float64

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	dirty         bool
}

// minVelocity is the flick speed below which inertia stops.
const minVelocity = 0.01

// NewCamera creates a camera for the given viewport from cfg. Zoom starts at
// the default level.
func NewCamera(viewport Rect, cfg *Config) *Camera {
	c := &Camera{
		Viewport:           viewport,
		levels:             append([]float64(nil), cfg.Camera.ZoomLevels...),
		index:              cfg.Camera.DefaultZoomIndex,
		defaultIndex:       cfg.Camera.DefaultZoomIndex,
		minZoom:            cfg.Camera.MinZoom,
		maxZoom:            cfg.Camera.MaxZoom,
		transitionDuration: millis(cfg.Camera.ZoomTransitionDuration),
		panSmoothness:      cfg.Animation.PanSmoothness,
		zoomSmoothness:     cfg.Animation.ZoomSmoothness,
		velocityDecay:      cfg.Animation.VelocityDecay,
		inertiaStrength:    cfg.Animation.InertiaStrength,
		sensitivity:        cfg.Camera.ZoomSensitivity,
		Pan:                Vec2{cfg.Camera.InitialPanX, cfg.Camera.InitialPanY},
		dirty:              true,
	}
	c.TargetPan = c.Pan
	c.Zoom = c.levels[c.index]
	c.targetZoom = c.Zoom
	return c
}

// Center returns the viewport center in screen space. World and screen share
// this point when pan is zero.
func (c *Camera) Center() Vec2 {
	return c.Viewport.Center()
}

// ZoomIndex returns the selected discrete level.
func (c *Camera) ZoomIndex() int {
	return c.index
}

// TargetZoom returns the zoom the camera is heading to.
func (c *Camera) TargetZoom() float64 {
	if c.continuous {
		return c.targetZoom
	}
	return c.levels[c.index]
}

// Levels returns the discrete zoom ladder. The returned slice MUST NOT be mutated.
func (c *Camera) Levels() []float64 {
	return c.levels
}

// Transitioning reports whether a discrete zoom transition is running.
func (c *Camera) Transitioning() bool {
	return c.transition != nil
}

// SetViewport changes the viewport, e.g. after a window resize.
func (c *Camera) SetViewport(viewport Rect) {
	c.Viewport = viewport
	c.dirty = true
}

// StepZoom moves one discrete level in (dir > 0) or out (dir < 0). Returns
// false if already at the end of the ladder.
func (c *Camera) StepZoom(dir int) bool {
	next := c.index
	switch {
	case dir > 0:
		next++
	case dir < 0:
		next--
	}
	if next < 0 || next >= len(c.levels) || next == c.index {
		return false
	}
	c.SetZoomIndex(next)
	return true
}

// SetZoomIndex selects a discrete level and eases towards it from the
// current zoom. Any focal zoom in progress ends.
func (c *Camera) SetZoomIndex(i int) {
	if i < 0 {
		i = 0
	}
	if i >= len(c.levels) {
		i = len(c.levels) - 1
	}
	c.index = i
	c.focalActive = false
	c.continuous = false
	c.targetZoom = c.levels[i]
	c.transition = gween.New(float32(c.Zoom), float32(c.levels[i]), c.transitionDuration, easeInOutTween)
}

// ResetZoom eases back to the default level.
func (c *Camera) ResetZoom() {
	c.SetZoomIndex(c.defaultIndex)
}

// FitZoomIndex returns the largest level not exceeding required, or 0 when
// even the smallest level is too large.
func (c *Camera) FitZoomIndex(required float64) int {
	for i := len(c.levels) - 1; i >= 0; i-- {
		if c.levels[i] <= required {
			return i
		}
	}
	return 0
}

// ZoomAt zooms continuously around the screen point (fx, fy). delta follows
// wheel conventions: negative zooms in. The target is clamped to
// [minZoom, maxZoom] and the world point under the focal point stays fixed
// while zoom catches up.
func (c *Camera) ZoomAt(fx, fy, delta float64) {
	from := c.Zoom
	if c.continuous {
		from = c.targetZoom
	}
	c.transition = nil
	c.targetZoom = Clamp(from*math.Exp(-delta*c.sensitivity), c.minZoom, c.maxZoom)
	c.focal = Vec2{fx, fy}
	c.focalWorld = c.screenToWorldAt(fx, fy, c.Zoom, c.Pan)
	c.focalActive = true
	c.continuous = true
	c.Velocity = Vec2{}
}

// Drag adds a drag delta (screen pixels) to the pan target. dtMillis is the
// time since the previous pointer sample and sets the flick velocity.
func (c *Camera) Drag(dx, dy, dtMillis float64) {
	if dtMillis < 1 {
		dtMillis = 1
	}
	c.focalActive = false
	c.TargetPan.X += dx
	c.TargetPan.Y += dy
	c.Velocity = Vec2{dx / dtMillis, dy / dtMillis}
}

// ResetPan heads back to zero pan and cancels any flick.
func (c *Camera) ResetPan() {
	c.TargetPan = Vec2{}
	c.Velocity = Vec2{}
	c.focalActive = false
}

// update advances zoom and pan by one frame.
func (c *Camera) update(dt float32, dragging bool) {
	prevZoom, prevPan := c.Zoom, c.Pan

	switch {
	case c.transition != nil:
		val, done := c.transition.Update(dt)
		c.Zoom = float64(val)
		if done {
			c.transition = nil
			c.Zoom = c.levels[c.index]
		}
	case c.continuous:
		c.Zoom = SmoothTowards(c.Zoom, c.targetZoom, c.zoomSmoothness)
		if math.Abs(c.targetZoom-c.Zoom) < 1e-4 {
			c.Zoom = c.targetZoom
		}
	default:
		c.Zoom = c.levels[c.index]
	}

	if c.focalActive {
		// Keep the focal world point under the focal screen point.
		center := c.Center()
		c.Pan = Vec2{
			X: c.focal.X - center.X - (c.focalWorld.X-center.X)*c.Zoom,
			Y: c.focal.Y - center.Y - (c.focalWorld.Y-center.Y)*c.Zoom,
		}
		c.TargetPan = c.Pan
		if c.Zoom == c.targetZoom {
			c.focalActive = false
		}
	} else {
		if !dragging && (math.Abs(c.Velocity.X) > minVelocity || math.Abs(c.Velocity.Y) > minVelocity) {
			c.TargetPan.X += c.Velocity.X * c.inertiaStrength
			c.TargetPan.Y += c.Velocity.Y * c.inertiaStrength
			c.Velocity.X *= c.velocityDecay
			c.Velocity.Y *= c.velocityDecay
		}
		c.Pan.X = SmoothTowards(c.Pan.X, c.TargetPan.X, c.panSmoothness)
		c.Pan.Y = SmoothTowards(c.Pan.Y, c.TargetPan.Y, c.panSmoothness)
	}

	if c.Zoom != prevZoom || c.Pan != prevPan {
		c.dirty = true
	}
}

// computeViewMatrix recomputes the cached view matrix if dirty.
func (c *Camera) computeViewMatrix() [6]float64 {
	if !c.dirty {
		return c.viewMatrix
	}
	c.dirty = false
	center := c.Center()
	c.viewMatrix = scaleAbout(c.Zoom, center.X, center.Y, c.Pan.X, c.Pan.Y)
	c.invViewMatrix = invertAffine(c.viewMatrix)
	return c.viewMatrix
}

// MarkDirty forces a recomputation of the view matrix. Call it after writing
// Zoom or Pan directly.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	c.computeViewMatrix()
	return transformPoint(c.viewMatrix, wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	c.computeViewMatrix()
	return transformPoint(c.invViewMatrix, sx, sy)
}

// screenToWorldAt converts with explicit zoom and pan, bypassing the cache.
func (c *Camera) screenToWorldAt(sx, sy, zoom float64, pan Vec2) Vec2 {
	center := c.Center()
	return Vec2{
		X: (sx-center.X-pan.X)/zoom + center.X,
		Y: (sy-center.Y-pan.Y)/zoom + center.Y,
	}
}

// VisibleBounds returns the world-space rectangle currently on screen.
func (c *Camera) VisibleBounds() Rect {
	c.computeViewMatrix()
	vp := c.Viewport
	x0, y0 := transformPoint(c.invViewMatrix, vp.X, vp.Y)
	x1, y1 := transformPoint(c.invViewMatrix, vp.X+vp.Width, vp.Y+vp.Height)
	return Rect{X: math.Min(x0, x1), Y: math.Min(y0, y1), Width: math.Abs(x1 - x0), Height: math.Abs(y1 - y0)}
}
