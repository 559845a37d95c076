package gallery

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously. Each frame the
// owner calls Update(dt) and the group writes the eased values straight into
// the fields. There is no global animation manager.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// add registers field to animate from its current value to end.
func (g *TweenGroup) add(field *float64, end float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(end), duration, fn)
	g.fields[g.count] = field
	g.count++
}

// Update advances all tweens by dt seconds and writes the values back.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenTransition creates a TweenGroup that moves a point's aligned position
// and size from their current values to (toX, toY, toSize). The start values
// are captured now, so retargeting mid-flight starts from wherever the point
// currently is.
func TweenTransition(p *Point, toX, toY, toSize float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(&p.AlignedX, toX, duration, fn)
	g.add(&p.AlignedY, toY, duration, fn)
	g.add(&p.Size, toSize, duration, fn)
	return g
}

// startTransition retargets p and starts its ease-out-cubic transition.
func startTransition(p *Point, toX, toY, toSize float64, duration float32) {
	p.TargetX, p.TargetY, p.TargetSize = toX, toY, toSize
	p.transition = TweenTransition(p, toX, toY, toSize, duration, ease.OutCubic)
}

// setHover starts the hover boost tween when the hovered state flips.
func setHover(p *Point, hovered bool, boost float64, duration float32) {
	if p.hovered == hovered {
		return
	}
	p.hovered = hovered
	to := 1.0
	if hovered {
		to = boost
	}
	p.hoverTween = gween.New(float32(p.hoverBoost), float32(to), duration, ease.OutCubic)
}

// updateHover advances the hover tween.
func updateHover(p *Point, dt float32) {
	if p.hoverTween == nil {
		return
	}
	val, done := p.hoverTween.Update(dt)
	p.hoverBoost = float64(val)
	if done {
		p.hoverTween = nil
	}
}
