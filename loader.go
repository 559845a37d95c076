package gallery

import (
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	"time"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// ImageEntry is a successfully decoded asset. Entries are created once and
// never mutated.
type ImageEntry struct {
	Path        string
	Image       image.Image
	Width       int
	Height      int
	AspectRatio float64 // Width / Height
	Format      string
}

// Progress counts loader outcomes for the loading screen.
type Progress struct {
	Loaded, Failed, Total int
}

// Fraction returns the share of paths that finished, loaded or failed.
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 1
	}
	return float64(p.Loaded+p.Failed) / float64(p.Total)
}

type loadResult struct {
	path  string
	entry *ImageEntry
	err   error
}

// decoders maps lower-case extensions to decoders. TGA has no magic number,
// so formats are chosen by extension rather than sniffed.
var decoders = map[string]func(io.Reader) (image.Image, error){
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".gif":  gif.Decode,
	".webp": webp.Decode,
	".bmp":  bmp.Decode,
	".tga":  tga.Decode,
}

// ImageLoader decodes bitmap assets from an fs.FS on background goroutines.
// Results are handed to the game goroutine through Poll, so entries and
// progress are only read and written there.
type ImageLoader struct {
	fsys fs.FS
	cfg  LoaderConfig

	results chan loadResult
	cancel  context.CancelFunc

	entries map[string]*ImageEntry
	failed  map[string]error
	total   int

	debug bool
}

// NewImageLoader creates a loader reading from fsys.
func NewImageLoader(fsys fs.FS, cfg LoaderConfig) *ImageLoader {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &ImageLoader{
		fsys:    fsys,
		cfg:     cfg,
		entries: make(map[string]*ImageEntry),
		failed:  make(map[string]error),
	}
}

// SetDebug enables stderr logging of dropped assets.
func (l *ImageLoader) SetDebug(enabled bool) {
	l.debug = enabled
}

// uniquePaths drops empty and repeated paths and applies the cap (0 = none).
func uniquePaths(paths []string, limit int) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Start begins loading paths. Duplicates are dropped and the total is capped
// at MaxImages. At most Concurrency decodes run at once. Start must be called
// once; cancel ctx (or call Close) to abandon pending retries.
func (l *ImageLoader) Start(ctx context.Context, paths []string) {
	unique := uniquePaths(paths, l.cfg.MaxImages)
	l.total = len(unique)
	// Buffered for every result so workers never block on a slow Poll.
	l.results = make(chan loadResult, len(unique))
	ctx, l.cancel = context.WithCancel(ctx)

	go func() {
		var eg errgroup.Group
		eg.SetLimit(l.cfg.Concurrency)
		for _, p := range unique {
			eg.Go(func() error {
				entry, err := l.loadWithRetry(ctx, p)
				l.results <- loadResult{path: p, entry: entry, err: err}
				return nil
			})
		}
		_ = eg.Wait()
	}()
}

// Close cancels pending loads and retries.
func (l *ImageLoader) Close() {
	if l.cancel != nil {
		l.cancel()
	}
}

// loadWithRetry decodes p, retrying up to MaxRetries times with RetryDelay
// between attempts.
func (l *ImageLoader) loadWithRetry(ctx context.Context, p string) (*ImageEntry, error) {
	var err error
	for attempt := 0; attempt <= l.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			t := time.NewTimer(millisDuration(l.cfg.RetryDelay))
			select {
			case <-ctx.Done():
				t.Stop()
				return nil, ctx.Err()
			case <-t.C:
			}
		}
		var entry *ImageEntry
		entry, err = decodeEntry(l.fsys, p)
		if err == nil {
			return entry, nil
		}
	}
	return nil, fmt.Errorf("load %s: %d attempts: %w", p, l.cfg.MaxRetries+1, err)
}

// decodeEntry opens and decodes one asset.
func decodeEntry(fsys fs.FS, p string) (*ImageEntry, error) {
	f, err := fsys.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ext := strings.ToLower(path.Ext(p))
	var img image.Image
	format := strings.TrimPrefix(ext, ".")
	if dec, ok := decoders[ext]; ok {
		img, err = dec(f)
	} else {
		img, format, err = image.Decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", p, err)
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("decode %s: empty image", p)
	}
	return &ImageEntry{
		Path:        p,
		Image:       img,
		Width:       b.Dx(),
		Height:      b.Dy(),
		AspectRatio: float64(b.Dx()) / float64(b.Dy()),
		Format:      format,
	}, nil
}

// Poll applies every finished load. Call it from the game goroutine once per
// frame. Returns the number of results applied.
func (l *ImageLoader) Poll() int {
	if l.results == nil {
		return 0
	}
	n := 0
	for {
		select {
		case r := <-l.results:
			n++
			if r.err != nil {
				l.failed[r.path] = r.err
				if l.debug {
					_, _ = fmt.Fprintf(os.Stderr, "[gallery] image dropped: %v\n", r.err)
				}
				continue
			}
			l.entries[r.path] = r.entry
		default:
			return n
		}
	}
}

// Progress returns the current counts.
func (l *ImageLoader) Progress() Progress {
	return Progress{Loaded: len(l.entries), Failed: len(l.failed), Total: l.total}
}

// Done reports whether every path has loaded or failed.
func (l *ImageLoader) Done() bool {
	return len(l.entries)+len(l.failed) >= l.total
}

// Entry returns the decoded asset for p, or nil if it is pending or failed.
func (l *ImageLoader) Entry(p string) *ImageEntry {
	return l.entries[p]
}

// Failed reports whether p was given up on.
func (l *ImageLoader) Failed(p string) bool {
	_, ok := l.failed[p]
	return ok
}

// ScanItems walks fsys and returns an image item for every file with a
// supported extension, in lexical order. Each item's category is left empty,
// so it defaults to the containing folder.
func ScanItems(fsys fs.FS) ([]Item, error) {
	var items []Item
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if _, ok := decoders[strings.ToLower(path.Ext(p))]; ok {
			items = append(items, Item{Path: p})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan items: %w", err)
	}
	return items, nil
}
