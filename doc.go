// Package gallery is an interactive parallax gallery for [Ebitengine].
//
// A [Gallery] scatters images and glyphs across a two-layer parallax field,
// with drag panning and flick inertia, a discrete zoom ladder, hover zoom,
// click-to-align grouping, category filtering and an about overlay. All
// tuning lives in [Config], loadable from YAML.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	cfg, err := gallery.LoadConfig("configs/emoji.yaml")
//	// ...
//	g, err := gallery.NewGallery(cfg, os.DirFS("assets"), 1280, 720)
//	// ...
//	gallery.Run(g, gallery.RunConfig{Title: "Gallery", Width: 1280, Height: 720})
//
// [Gallery] implements [ebiten.Game], so it can also be embedded in a larger
// game that forwards Update, Draw and Layout.
//
// # Coordinates
//
// Points live in world space. The [Camera] maps world to screen with
//
//	screen = (world - center) * zoom + center + pan
//
// where center is the viewport center. At zoom 1 and zero pan the two spaces
// coincide.
//
// # Modes
//
// Interaction is a tagged state ([Mode]): idle, dragging, aligned, filtered
// and about. Clicking a point aligns its group (same folder or same glyph)
// in a row, a vertical stack on narrow viewports, or a grid when a row will
// not fit. Any click in a focused mode returns to the idle field.
//
// # Testing
//
// Input can be injected ([Gallery.InjectClick], [Gallery.InjectDrag], ...)
// or scripted with [LoadTestScript], and frames captured with
// [Gallery.Screenshot].
//
// [Ebitengine]: https://ebitengine.org
package gallery
