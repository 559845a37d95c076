package gallery

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/hajimehoshi/ebiten/v2"
)

// ImageFormat selects the screenshot encoding.
type ImageFormat uint8

const (
	FormatPNG  ImageFormat = iota // lossless PNG
	FormatWebP                    // lossless WebP
)

// Ext returns the file extension including the dot.
func (f ImageFormat) Ext() string {
	if f == FormatWebP {
		return ".webp"
	}
	return ".png"
}

// ParseImageFormat parses "png" or "webp" (case-insensitive, optional dot).
func ParseImageFormat(s string) (ImageFormat, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "", "png":
		return FormatPNG, nil
	case "webp":
		return FormatWebP, nil
	}
	return FormatPNG, fmt.Errorf("unknown image format %q", s)
}

// Screenshot queues a labeled screenshot to be captured at the end of the
// current frame's Draw call. The file is written to ScreenshotDir with a
// timestamped filename. Safe to call from Update or Draw.
func (g *Gallery) Screenshot(label string) {
	g.screenshotQueue = append(g.screenshotQueue, label)
}

// flushScreenshots captures the rendered frame for every queued label.
// Called at the end of Gallery.Draw.
func (g *Gallery) flushScreenshots(screen *ebiten.Image) {
	if len(g.screenshotQueue) == 0 {
		return
	}
	defer func() { g.screenshotQueue = g.screenshotQueue[:0] }()

	if err := os.MkdirAll(g.ScreenshotDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[gallery] screenshot: mkdir %s: %v\n", g.ScreenshotDir, err)
		return
	}

	bounds := screen.Bounds()
	pixels := make([]byte, 4*bounds.Dx()*bounds.Dy())
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, bounds.Dx(), bounds.Dy())

	stamp := time.Now().Format("20060102_150405")
	for _, label := range g.screenshotQueue {
		name := fmt.Sprintf("%s_%s%s", stamp, sanitizeLabel(label), g.ScreenshotFormat.Ext())
		if err := writeImage(filepath.Join(g.ScreenshotDir, name), img, g.ScreenshotFormat); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[gallery] screenshot: %v\n", err)
		}
	}
}

// unpremultiply converts premultiplied RGBA bytes to straight-alpha NRGBA.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// encodeImage writes img to w in the given format.
func encodeImage(w io.Writer, img image.Image, format ImageFormat) error {
	if format == FormatWebP {
		return nativewebp.Encode(w, img, nil)
	}
	return png.Encode(w, img)
}

// writeImage encodes an image to a file at the given path.
func writeImage(path string, img image.Image, format ImageFormat) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := encodeImage(f, img, format); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
