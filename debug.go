package gallery

import (
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// debugStats holds per-frame timing and draw metrics.
// Only populated when Gallery.debug is true.
type debugStats struct {
	gridTime     time.Duration
	pointsTime   time.Duration
	overlayTime  time.Duration
	pointsDrawn  int
	alphaWrites  int
	imagesLoaded int
}

// memSampler reads the process resident set size, at most once per interval.
type memSampler struct {
	proc     *process.Process
	interval time.Duration
	last     time.Time
	rss      uint64
	err      error
}

func newMemSampler(interval time.Duration) *memSampler {
	proc, err := process.NewProcess(int32(os.Getpid()))
	return &memSampler{proc: proc, interval: interval, err: err}
}

// RSS returns the latest sample in bytes, refreshing it when stale.
func (m *memSampler) RSS(now time.Time) (uint64, error) {
	if m.proc == nil || now.Sub(m.last) < m.interval {
		return m.rss, m.err
	}
	m.last = now
	info, err := m.proc.MemoryInfo()
	if err != nil {
		m.err = err
		return m.rss, err
	}
	m.rss, m.err = info.RSS, nil
	return m.rss, nil
}

// debugLog prints timing and draw stats to stderr.
func (g *Gallery) debugLog(stats debugStats) {
	if !g.debug {
		return
	}
	if g.mem == nil {
		g.mem = newMemSampler(time.Second)
	}
	total := stats.gridTime + stats.pointsTime + stats.overlayTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[gallery] grid: %v | points: %v | overlay: %v | total: %v\n",
		stats.gridTime, stats.pointsTime, stats.overlayTime, total)

	rss, err := g.mem.RSS(time.Now())
	mem := fmt.Sprintf("%.1f MiB", float64(rss)/(1<<20))
	if err != nil {
		mem = "n/a"
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[gallery] mode: %s | points: %d | alpha writes: %d | images: %d | rss: %s\n",
		g.mode, stats.pointsDrawn, stats.alphaWrites, stats.imagesLoaded, mem)
}
