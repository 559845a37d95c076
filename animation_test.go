package gallery

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenTransitionReachesTarget(t *testing.T) {
	p := &Point{AlignedX: 10, AlignedY: 20, Size: 30}
	tg := TweenTransition(p, 110, 220, 90, 0.5, ease.OutCubic)

	tg.Update(0.25)
	if tg.Done {
		t.Fatal("Done after half the duration")
	}
	if p.AlignedX <= 10 || p.AlignedX >= 110 {
		t.Errorf("AlignedX = %f mid-tween, want between 10 and 110", p.AlignedX)
	}
	// Ease-out covers more than half the distance in half the time.
	if p.AlignedX < 60 {
		t.Errorf("AlignedX = %f, want >= 60 for an ease-out curve", p.AlignedX)
	}

	tg.Update(0.3)
	if !tg.Done {
		t.Fatal("not Done after the full duration")
	}
	if p.AlignedX != 110 || p.AlignedY != 220 || p.Size != 90 {
		t.Errorf("end = (%f,%f,%f), want (110,220,90)", p.AlignedX, p.AlignedY, p.Size)
	}

	// Further updates are ignored.
	p.AlignedX = 0
	tg.Update(1)
	if p.AlignedX != 0 {
		t.Error("Update after Done wrote a value")
	}
}

func TestStartTransitionSetsTargets(t *testing.T) {
	p := &Point{AlignedX: 5, AlignedY: 5, Size: 10}
	startTransition(p, 50, 60, 70, 0.1)
	if p.TargetX != 50 || p.TargetY != 60 || p.TargetSize != 70 {
		t.Errorf("targets = (%f,%f,%f), want (50,60,70)", p.TargetX, p.TargetY, p.TargetSize)
	}
	if !p.Transitioning() {
		t.Error("Transitioning = false after startTransition")
	}
}

func TestRetargetStartsFromCurrent(t *testing.T) {
	p := &Point{AlignedX: 0, Size: 10}
	startTransition(p, 100, 0, 10, 1)
	p.transition.Update(0.5)
	mid := p.AlignedX

	startTransition(p, 0, 0, 10, 1)
	p.transition.Update(0.001)
	if !approxEqual(p.AlignedX, mid, 1) {
		t.Errorf("retargeted tween jumped from %f to %f", mid, p.AlignedX)
	}
}

func TestHoverBoost(t *testing.T) {
	p := &Point{Size: 40, hoverBoost: 1}
	setHover(p, true, 2, 0.25)
	for i := 0; i < 30; i++ {
		updateHover(p, 1.0/60)
	}
	if p.hoverBoost != 2 || p.DisplaySize() != 80 {
		t.Errorf("hoverBoost = %f DisplaySize = %f, want 2 and 80", p.hoverBoost, p.DisplaySize())
	}

	// Setting the same state again does not restart the tween.
	setHover(p, true, 2, 0.25)
	if p.hoverTween != nil {
		t.Error("setHover with unchanged state started a tween")
	}

	setHover(p, false, 2, 0.25)
	for i := 0; i < 30; i++ {
		updateHover(p, 1.0/60)
	}
	if p.hoverBoost != 1 {
		t.Errorf("hoverBoost = %f after unhover, want 1", p.hoverBoost)
	}
}
