package gallery

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action   string  `yaml:"action"`
	Label    string  `yaml:"label,omitempty"`
	X        float64 `yaml:"x,omitempty"`
	Y        float64 `yaml:"y,omitempty"`
	FromX    float64 `yaml:"fromX,omitempty"`
	FromY    float64 `yaml:"fromY,omitempty"`
	ToX      float64 `yaml:"toX,omitempty"`
	ToY      float64 `yaml:"toY,omitempty"`
	Frames   int     `yaml:"frames,omitempty"`
	Delta    float64 `yaml:"delta,omitempty"`
	Key      string  `yaml:"key,omitempty"`
	Category int     `yaml:"category,omitempty"`
	Touch    bool    `yaml:"touch,omitempty"`
}

// testScript is the top-level structure for a test script.
type testScript struct {
	Steps []testStep `yaml:"steps"`
}

// keyNames maps script key names to commands.
var keyNames = map[string]Command{
	"about":      CommandAbout,
	"revert":     CommandRevert,
	"filter":     CommandFilter,
	"screenshot": CommandScreenshot,
	"fps":        CommandToggleFPS,
}

// TestRunner sequences injected input events and screenshots across frames
// for automated visual testing. Attach to a Gallery via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a YAML (or JSON) test script and returns a TestRunner
// ready to be attached to a Gallery via SetTestRunner.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script testScript
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "press", "move", "release", "click", "drag", "wheel", "wait", "screenshot", "leave":
		case "key":
			if _, ok := keyNames[st.Key]; !ok {
				return nil, fmt.Errorf("parse test script: step %d: unknown key %q", i, st.Key)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the gallery. The runner's step
// method is called from Gallery.Update before input each frame.
func (g *Gallery) SetTestRunner(runner *TestRunner) {
	g.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Gallery.Update.
func (r *TestRunner) step(g *Gallery) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(g.injectQueue) > 0 {
		return
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	pointer := func(t EventType, x, y float64) {
		ev := Event{Type: t, X: x, Y: y}
		if st.Touch {
			g.InjectTouch(ev)
			return
		}
		g.injectQueue = append(g.injectQueue, ev)
	}

	switch st.Action {
	case "screenshot":
		g.Screenshot(st.Label)
	case "press":
		pointer(EventPointerDown, st.X, st.Y)
	case "move":
		pointer(EventPointerMove, st.X, st.Y)
	case "release":
		pointer(EventPointerUp, st.X, st.Y)
	case "leave":
		g.InjectLeave()
	case "click":
		pointer(EventPointerDown, st.X, st.Y)
		pointer(EventPointerUp, st.X, st.Y)
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		pointer(EventPointerDown, st.FromX, st.FromY)
		steps := frames - 2
		for i := 1; i <= steps; i++ {
			t := float64(i) / float64(steps+1)
			pointer(EventPointerMove, Lerp(st.FromX, st.ToX, t), Lerp(st.FromY, st.ToY, t))
		}
		pointer(EventPointerUp, st.ToX, st.ToY)
	case "wheel":
		g.InjectWheel(st.X, st.Y, st.Delta)
	case "key":
		g.InjectKey(keyNames[st.Key], st.Category)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(g.injectQueue) == 0 {
		r.done = true
	}
}
