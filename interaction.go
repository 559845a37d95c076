package gallery

import (
	"fmt"
	"os"
)

// wheelNotch is the delta one wheel notch contributes, in the same units
// ZoomSensitivity is tuned for.
const wheelNotch = 100.0

// Event is one input event in screen coordinates. Real input from Ebitengine
// and injected input both arrive as Events.
type Event struct {
	Type EventType
	X, Y float64
	// DeltaY is the wheel delta; positive scrolls down and zooms out.
	DeltaY float64
	// Touch is set when the event came from a touch screen.
	Touch bool
	// Command and Category are set for EventKey. Category is the 0-based
	// index into Categories for CommandFilter.
	Command  Command
	Category int
}

// pressState tracks the pointer between down and up.
type pressState struct {
	active   bool
	touch    bool
	start    Vec2
	last     Vec2
	lastTime float64 // ms on the gallery clock
	moved    float64 // largest distance from start so far
	// revertOnRelease defers the revert of a focused mode to pointer-up so a
	// scroll gesture on a narrow viewport does not dismiss the stack.
	revertOnRelease bool
}

// Mode returns the current interaction mode.
func (g *Gallery) Mode() Mode {
	return g.mode
}

// Narrow reports whether the narrow (stacked, touch) layouts apply.
func (g *Gallery) Narrow() bool {
	if g.camera.Viewport.Width < g.cfg.Mobile.Breakpoint {
		return true
	}
	return g.cfg.Mobile.TouchDetection && g.touchSeen
}

// HandleEvent applies one input event immediately.
func (g *Gallery) HandleEvent(ev Event) {
	if ev.Touch {
		g.touchSeen = true
	}
	switch ev.Type {
	case EventPointerDown:
		g.pointerDown(ev)
	case EventPointerMove:
		g.pointerMove(ev)
	case EventPointerUp:
		g.pointerUp(ev)
	case EventPointerLeave:
		g.pointerLeave()
	case EventWheel:
		g.wheel(ev)
	case EventKey:
		g.command(ev)
	}
}

func (g *Gallery) pointerDown(ev Event) {
	pos := Vec2{ev.X, ev.Y}
	g.pointerTarget = pos
	g.pointerInside = true
	g.press = pressState{
		active:   true,
		touch:    ev.Touch,
		start:    pos,
		last:     pos,
		lastTime: g.clock,
	}

	if g.mode.focused() {
		if g.Narrow() {
			g.press.revertOnRelease = true
			return
		}
		g.Revert()
		return
	}

	wx, wy := g.camera.ScreenToWorld(ev.X, ev.Y)
	if p := HitTest(g.points, wx, wy); p != nil {
		g.Align(p)
		return
	}
	g.beginDrag()
}

func (g *Gallery) pointerMove(ev Event) {
	pos := Vec2{ev.X, ev.Y}
	g.pointerTarget = pos
	g.pointerInside = true
	if !g.press.active {
		return
	}

	d := pos.Sub(g.press.last)
	dt := g.clock - g.press.lastTime
	if m := Distance(g.press.start.X, g.press.start.Y, pos.X, pos.Y); m > g.press.moved {
		g.press.moved = m
	}

	switch {
	case g.mode == ModeDragging:
		// A still sample keeps the last flick velocity.
		if d != (Vec2{}) {
			g.camera.Drag(d.X, d.Y, dt)
		}
	case g.scrollable() && g.press.moved >= g.cfg.UI.ScrollThreshold:
		g.scrollBy(d.Y * g.cfg.UI.ScrollSensitivity)
	}

	g.press.last = pos
	g.press.lastTime = g.clock
}

func (g *Gallery) pointerUp(ev Event) {
	if !g.press.active {
		return
	}
	g.pointerMove(Event{Type: EventPointerMove, X: ev.X, Y: ev.Y, Touch: ev.Touch})

	if g.press.revertOnRelease && g.press.moved < g.cfg.UI.ScrollThreshold {
		g.Revert()
	}
	if g.mode == ModeDragging {
		g.endDrag()
	}
	g.press = pressState{}
}

func (g *Gallery) pointerLeave() {
	g.pointerInside = false
	g.pointerTarget = g.camera.Center()
	if g.mode == ModeDragging {
		g.endDrag()
	}
	g.press = pressState{}
}

func (g *Gallery) wheel(ev Event) {
	switch {
	case g.scrollable():
		g.scrollBy(-ev.DeltaY * g.cfg.UI.ScrollSensitivity)
	case g.mode == ModeIdle:
		switch {
		case ev.DeltaY < 0:
			g.camera.StepZoom(1)
		case ev.DeltaY > 0:
			g.camera.StepZoom(-1)
		}
	case g.mode.focused():
		g.camera.ZoomAt(ev.X, ev.Y, ev.DeltaY)
	}
}

func (g *Gallery) command(ev Event) {
	switch ev.Command {
	case CommandAbout:
		if g.mode == ModeAbout {
			g.Revert()
			return
		}
		g.ShowAbout()
	case CommandRevert:
		g.Revert()
	case CommandFilter:
		cats := Categories(g.items)
		if ev.Category < 0 || ev.Category >= len(cats) {
			return
		}
		if g.mode == ModeFiltered && g.category == cats[ev.Category] {
			g.Revert()
			return
		}
		g.Filter(cats[ev.Category])
	case CommandScreenshot:
		g.Screenshot("capture")
	case CommandToggleFPS:
		g.showFPS = !g.showFPS
	}
}

// beginDrag enters ModeDragging; pointer moves pan the camera until endDrag.
func (g *Gallery) beginDrag() {
	g.mode = ModeDragging
	g.camera.Velocity = Vec2{}
}

// endDrag returns to idle. The flick velocity keeps applying inertia.
func (g *Gallery) endDrag() {
	g.mode = ModeIdle
}

// Align lays out every point sharing target's group key, grows them to the
// aligned size and fades everything else. The camera moves to the largest
// zoom level that keeps the layout inside the padded viewport.
func (g *Gallery) Align(target *Point) {
	if g.mode.focused() {
		g.Revert()
	}
	key := target.Item.GroupKey()
	group := groupOf(g.points, key)
	layout := ComputeLayout(len(group), &g.cfg, g.camera, g.Narrow())
	size := alignedSize(&g.cfg)
	dur := millis(g.cfg.Animation.AlignmentDuration)

	for _, p := range g.points {
		setHover(p, false, g.cfg.Image.HoverZoom, millis(g.cfg.Animation.HoverDuration))
		p.TargetOpacity = g.cfg.Animation.FadedOpacity
	}
	for i, p := range group {
		// Start from where the point is drawn now, parallax included.
		p.AlignedX, p.AlignedY = p.X, p.Y
		p.Size = p.DisplaySize()
		p.hoverBoost = 1
		p.hoverTween = nil
		p.Aligned = true
		p.returning = false
		p.TargetOpacity = 1
		pos := layout.Positions[i]
		startTransition(p, pos.X, pos.Y, size, dur)
	}

	g.camera.SetZoomIndex(layout.ZoomIndex)
	g.camera.ResetPan()
	g.layout = layout
	g.groupKey = key
	g.scroll, g.scrollTarget = 0, 0
	g.scrollLimit = stackScrollLimit(layout, &g.cfg, g.camera.Viewport.Height, g.camera.Levels()[layout.ZoomIndex])
	g.scrollShownAt = g.clock
	g.mode = ModeAligned

	if g.debug {
		_, _ = fmt.Fprintf(os.Stderr, "[gallery] align %s: %d items, %s layout, zoom %.2f\n",
			key, len(group), layout.Kind, g.camera.Levels()[layout.ZoomIndex])
	}
}

// Filter keeps the points of category at full opacity and fades the rest.
// Positions do not change.
func (g *Gallery) Filter(category string) {
	if g.mode.focused() {
		g.Revert()
	}
	for _, p := range g.points {
		if p.Item.CategoryName() == category {
			p.TargetOpacity = 1
		} else {
			p.TargetOpacity = g.cfg.Animation.FadedOpacity
		}
	}
	g.category = category
	g.mode = ModeFiltered
}

// ShowAbout fades the whole field behind the about text.
func (g *Gallery) ShowAbout() {
	if g.mode.focused() {
		g.Revert()
	}
	for _, p := range g.points {
		p.TargetOpacity = g.cfg.Animation.AboutOpacity
	}
	g.mode = ModeAbout
}

// Revert returns to the idle field: aligned points travel back to their
// original positions and layer sizes, every point fades in and the camera
// eases back to the default zoom with no pan.
func (g *Gallery) Revert() {
	dur := millis(g.cfg.Animation.AlignmentDuration)
	for _, p := range g.points {
		rest := layerSize(&g.cfg.Image, p.Layer)
		if p.Aligned || p.Transitioning() {
			// A returning point's AlignedX/Y already excludes parallax.
			if !p.returning {
				p.AlignedX, p.AlignedY = p.X, p.Y
			}
			p.Aligned = false
			p.returning = true
			startTransition(p, p.OriginalX, p.OriginalY, rest, dur)
		}
		p.TargetSize = rest
		p.TargetOpacity = 1
	}
	g.camera.ResetZoom()
	g.camera.ResetPan()
	g.mode = ModeIdle
	g.layout = Layout{}
	g.groupKey = ""
	g.category = ""
	g.scroll, g.scrollTarget, g.scrollLimit = 0, 0, 0
}

// scrollable reports whether pointer movement scrolls a stacked layout.
func (g *Gallery) scrollable() bool {
	return g.mode == ModeAligned && g.layout.Kind == LayoutStack
}

// scrollBy moves the stack scroll target, clamped to the stack extents.
func (g *Gallery) scrollBy(dy float64) {
	g.scrollTarget = Clamp(g.scrollTarget+dy, -g.scrollLimit, g.scrollLimit)
	g.scrollShownAt = g.clock
}

// AlignedGroup returns the key of the aligned group, or "" when none is.
func (g *Gallery) AlignedGroup() string {
	return g.groupKey
}

// FilterCategory returns the active filter category, or "".
func (g *Gallery) FilterCategory() string {
	return g.category
}
