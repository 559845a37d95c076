package gallery

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default foreground color.
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is the default background color.
var ColorBlack = Color{0, 0, 0, 1}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// WithAlpha returns a copy of c with its alpha multiplied by a.
func (c Color) WithAlpha(a float64) Color {
	c.A *= a
	return c
}

// Vec2 is a 2D vector used for positions, offsets and sizes.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the center point of r.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Layer is the depth layer a point is drawn on. Each layer has its own
// parallax speed and base size.
type Layer uint8

const (
	LayerOne Layer = iota // front layer: full size, full parallax speed
	LayerTwo              // back layer: smaller and slower
)

// String returns the layer name used in configs and logs.
func (l Layer) String() string {
	if l == LayerTwo {
		return "layer_2"
	}
	return "layer_1"
}

// Mode is the interaction state of a Gallery.
type Mode uint8

const (
	ModeIdle     Mode = iota // free parallax field, discrete zoom
	ModeDragging             // pointer held on empty space, panning the camera
	ModeAligned              // one group laid out in a row, stack or grid
	ModeFiltered             // one category highlighted, others faded
	ModeAbout                // about text shown over a faded field
)

var modeNames = [...]string{"idle", "dragging", "aligned", "filtered", "about"}

// String returns the lower-case mode name.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// focused reports whether the mode replaces the free field with a selection
// that any click dismisses.
func (m Mode) focused() bool {
	return m == ModeAligned || m == ModeFiltered || m == ModeAbout
}

// EventType identifies a kind of input event.
type EventType uint8

const (
	EventPointerDown EventType = iota // pointer pressed
	EventPointerMove                  // pointer moved, pressed or not
	EventPointerUp                    // pointer released
	EventPointerLeave                 // pointer left the window
	EventWheel                        // wheel scrolled
	EventKey                          // command key pressed
)

// Command is a keyboard-triggered action.
type Command uint8

const (
	CommandNone       Command = iota
	CommandAbout              // toggle the about overlay
	CommandRevert             // return to the idle field
	CommandFilter             // filter by the category in Event.Category
	CommandScreenshot         // capture the next frame
	CommandToggleFPS          // show or hide the FPS overlay
)
