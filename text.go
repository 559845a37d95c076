package gallery

import (
	"bytes"
	"fmt"
	"io/fs"
	"log"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

const (
	basicFaceSize = 13  // pixel height of basicfont.Face7x13
	maxFaceSize   = 128 // larger text scales a face of this size
)

// fontSet holds the faces for glyph items, captions and overlays. Without a
// TrueType source every face is the built-in bitmap face, scaled.
type fontSet struct {
	source *text.GoTextFaceSource
	basic  text.Face
	faces  map[float64]*text.GoTextFace
}

// loadFonts loads the TrueType font at fontPath from fsys. A missing or bad
// font is not fatal: the built-in face is used instead.
func loadFonts(fsys fs.FS, fontPath string, size float64) *fontSet {
	f := &fontSet{
		basic: text.NewGoXFace(basicfont.Face7x13),
		faces: make(map[float64]*text.GoTextFace),
	}
	if fontPath == "" || fsys == nil {
		return f
	}
	data, err := fs.ReadFile(fsys, fontPath)
	if err != nil {
		log.Printf("gallery: font %s: %v; using built-in face", fontPath, err)
		return f
	}
	source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		log.Printf("gallery: font %s: %v; using built-in face", fontPath, err)
		return f
	}
	f.source = source
	f.face(size) // warm the caption size
	return f
}

// face returns a face and the scale that brings it to size pixels.
func (f *fontSet) face(size float64) (text.Face, float64) {
	if size <= 0 {
		size = basicFaceSize
	}
	if f.source == nil {
		return f.basic, size / basicFaceSize
	}
	nominal := math.Max(1, math.Min(math.Round(size), maxFaceSize))
	face, ok := f.faces[nominal]
	if !ok {
		face = &text.GoTextFace{Source: f.source, Size: nominal}
		f.faces[nominal] = face
	}
	return face, size / nominal
}

// lineHeight returns the distance between baselines of face, unscaled.
func lineHeight(face text.Face) float64 {
	m := face.Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}

// wrapText breaks s into lines no wider than maxWidth. Newlines always break.
// A single word wider than maxWidth gets a line of its own.
func wrapText(s string, maxWidth float64, measure func(string) float64) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			next := cur + " " + w
			if measure(next) > maxWidth {
				lines = append(lines, cur)
				cur = w
				continue
			}
			cur = next
		}
		lines = append(lines, cur)
	}
	return lines
}

// textStyle positions a run of text.
type textStyle struct {
	size    float64
	color   Color
	primary text.Align // horizontal
	second  text.Align // vertical
}

// drawText draws s at screen position (x, y), with geo applied after the
// local scale. Pass a zero GeoM for screen-space text.
func (g *Gallery) drawText(dst *ebiten.Image, s string, x, y float64, st textStyle, geo *ebiten.GeoM) {
	face, scale := g.fonts.face(st.size)
	op := &g.drawOpts
	op.GeoM.Reset()
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	if geo != nil {
		op.GeoM.Concat(*geo)
	}
	op.PrimaryAlign = st.primary
	op.SecondaryAlign = st.second
	op.LineSpacing = lineHeight(face)
	a := clamp01(st.color.A)
	op.ColorScale.Reset()
	op.ColorScale.Scale(float32(st.color.R*a), float32(st.color.G*a), float32(st.color.B*a), float32(a))
	text.Draw(dst, s, face, op)
	// The tint is not a plain alpha, so the next setAlpha must write.
	g.lastAlpha = -1
}

// measureText returns the width of s at size pixels.
func (g *Gallery) measureText(s string, size float64) float64 {
	face, scale := g.fonts.face(size)
	return text.Advance(s, face) * scale
}

// drawCaptions writes each aligned item's name under it, in world space so
// captions follow the zoom.
func (g *Gallery) drawCaptions(dst *ebiten.Image, view ebiten.GeoM) {
	lc := &g.cfg.Layout
	for _, p := range g.points {
		if !p.Aligned || p.Opacity < 0.01 {
			continue
		}
		caption := p.Item.Caption()
		if caption == "" || !p.Item.IsImage() {
			continue
		}
		g.drawText(dst, caption, p.X, p.Y+p.Size/2+lc.TextSpacing, textStyle{
			size:    lc.TextSize,
			color:   ColorWhite.WithAlpha(p.Opacity),
			primary: text.AlignCenter,
			second:  text.AlignStart,
		}, &view)
	}
}

// drawUsername draws the label in the top-left corner.
func (g *Gallery) drawUsername(dst *ebiten.Image) {
	ui := &g.cfg.UI
	if ui.Username == "" {
		return
	}
	g.drawText(dst, ui.Username, ui.UsernameX, ui.UsernameY, textStyle{
		size:  ui.UsernameSize,
		color: ColorWhite,
	}, nil)
}

// aboutWidth is the widest the about text runs on a wide viewport.
const aboutWidth = 640

// drawAbout draws the wrapped about text centred on screen.
func (g *Gallery) drawAbout(dst *ebiten.Image) {
	about := g.cfg.Content.About
	if about == "" {
		return
	}
	vp := g.camera.Viewport
	pad := g.cfg.Layout.DesktopPadding
	if g.Narrow() {
		pad = g.cfg.Layout.MobilePadding
	}
	maxW := math.Min(aboutWidth, vp.Width-2*pad)
	size := g.cfg.Layout.TextSize
	lines := wrapText(about, maxW, func(s string) float64 { return g.measureText(s, size) })

	lh := size * g.cfg.Layout.TextLineHeight
	center := vp.Center()
	y := center.Y - float64(len(lines))*lh/2
	for _, line := range lines {
		g.drawText(dst, line, center.X, y, textStyle{
			size:    size,
			color:   ColorWhite,
			primary: text.AlignCenter,
		}, nil)
		y += lh
	}
}

// drawLoading draws the progress gate shown until every asset settled.
func (g *Gallery) drawLoading(dst *ebiten.Image) {
	pr := g.loader.Progress()
	center := g.camera.Center()
	label := fmt.Sprintf("Loading %d / %d", pr.Loaded+pr.Failed, pr.Total)
	g.drawText(dst, label, center.X, center.Y-24, textStyle{
		size:    g.cfg.Layout.TextSize,
		color:   ColorWhite,
		primary: text.AlignCenter,
		second:  text.AlignEnd,
	}, nil)
	g.drawProgressBar(dst, center, pr.Fraction())
}
