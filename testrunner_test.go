package gallery

import (
	"strings"
	"testing"
)

func TestLoadTestScript(t *testing.T) {
	r, err := LoadTestScript([]byte(`
steps:
  - action: screenshot
    label: start
  - action: click
    x: 100
    y: 200
  - action: drag
    fromX: 10
    fromY: 10
    toX: 110
    toY: 10
    frames: 6
  - action: wheel
    x: 5
    y: 5
    delta: -100
  - action: key
    key: filter
    category: 1
  - action: wait
    frames: 3
`))
	if err != nil {
		t.Fatal(err)
	}
	if len(r.steps) != 6 {
		t.Fatalf("steps = %d, want 6", len(r.steps))
	}
	if r.steps[2].Frames != 6 || r.steps[2].ToX != 110 {
		t.Errorf("drag step = %+v", r.steps[2])
	}
	if r.steps[4].Category != 1 {
		t.Errorf("key step = %+v", r.steps[4])
	}
}

func TestLoadTestScriptJSON(t *testing.T) {
	r, err := LoadTestScript([]byte(`{"steps": [{"action": "press", "x": 1, "y": 2}, {"action": "release", "x": 1, "y": 2}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(r.steps) != 2 || r.steps[0].Y != 2 {
		t.Errorf("steps = %+v", r.steps)
	}
}

func TestLoadTestScriptErrors(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{"empty", "steps: []", "no steps"},
		{"bad yaml", "steps: [", "parse test script"},
		{"unknown action", "steps:\n  - action: teleport", `unknown action "teleport"`},
		{"unknown key", "steps:\n  - action: key\n    key: jump", `unknown key "jump"`},
		{"unknown field", "steps:\n  - action: click\n    z: 4", "parse test script"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTestScript([]byte(tt.src))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestTestRunnerClickQueuesTwoEvents(t *testing.T) {
	g := newTestGallery(t, 800, 600)
	r, err := LoadTestScript([]byte("steps:\n  - action: click\n    x: 5\n    y: 5\n"))
	if err != nil {
		t.Fatal(err)
	}
	g.SetTestRunner(r)
	r.step(g)
	if len(g.injectQueue) != 2 {
		t.Fatalf("queue = %d, want 2", len(g.injectQueue))
	}
	if g.injectQueue[0].Type != EventPointerDown || g.injectQueue[1].Type != EventPointerUp {
		t.Errorf("queue = %+v", g.injectQueue)
	}
}

func TestTestRunnerDragFrames(t *testing.T) {
	g := newTestGallery(t, 800, 600)
	r, _ := LoadTestScript([]byte("steps:\n  - action: drag\n    fromX: 0\n    toX: 50\n    frames: 5\n"))
	g.SetTestRunner(r)
	r.step(g)
	if len(g.injectQueue) != 5 {
		t.Fatalf("queue = %d, want 5", len(g.injectQueue))
	}
	if x := g.injectQueue[2].X; !approxEqual(x, 25, epsilon) {
		t.Errorf("middle move x = %f, want 25", x)
	}
}

func TestTestRunnerTouchFlag(t *testing.T) {
	g := newTestGallery(t, 1920, 1080)
	r, _ := LoadTestScript([]byte("steps:\n  - action: move\n    x: 5\n    y: 5\n    touch: true\n"))
	g.SetTestRunner(r)
	run(g, 3)
	if !g.Narrow() {
		t.Error("touch step did not switch to narrow layouts")
	}
}

func TestTestRunnerRunsToCompletion(t *testing.T) {
	g := newTestGallery(t, 800, 600)
	r, err := LoadTestScript([]byte(`
steps:
  - action: key
    key: about
  - action: wait
    frames: 4
  - action: key
    key: about
  - action: screenshot
    label: done
`))
	if err != nil {
		t.Fatal(err)
	}
	g.SetTestRunner(r)

	sawAbout := false
	for i := 0; i < 30 && !r.Done(); i++ {
		g.advance(frame, nil)
		if g.Mode() == ModeAbout {
			sawAbout = true
		}
	}
	if !r.Done() {
		t.Fatal("runner not done after 30 frames")
	}
	if !sawAbout {
		t.Error("about overlay never shown")
	}
	if g.Mode() != ModeIdle {
		t.Errorf("Mode = %v, want idle", g.Mode())
	}
	if len(g.screenshotQueue) != 1 || g.screenshotQueue[0] != "done" {
		t.Errorf("screenshotQueue = %v", g.screenshotQueue)
	}
}
