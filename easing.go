package gallery

import (
	"math"
	"path"
	"strings"
)

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Distance returns the Euclidean distance between (x1, y1) and (x2, y2).
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// EaseOutCubic decelerates towards 1: 1 - (1-t)^3.
func EaseOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// EaseInOut accelerates quadratically for the first half and decelerates
// cubically for the second half. Used for discrete zoom transitions.
func EaseInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// SmoothTowards moves current towards target by the fraction smoothness.
// Called once per frame it gives an exponential chase.
func SmoothTowards(current, target, smoothness float64) float64 {
	return current + (target-current)*smoothness
}

// easeInOutTween adapts EaseInOut to the gween ease.TweenFunc signature:
// t elapsed, b begin, c change, d duration.
func easeInOutTween(t, b, c, d float32) float32 {
	if d <= 0 {
		return b + c
	}
	return b + c*float32(EaseInOut(float64(t/d)))
}

// ExtractFilename returns the last path element without its extension.
func ExtractFilename(p string) string {
	name := path.Base(strings.ReplaceAll(p, "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	return name
}
