package gallery

// Injected events use screen coordinates (matching what a screenshot shows)
// and go through HandleEvent exactly like real input. One event is consumed
// per frame, and real input is skipped on frames that consume one.

// InjectPress queues a pointer press at the given screen coordinates.
func (g *Gallery) InjectPress(x, y float64) {
	g.injectQueue = append(g.injectQueue, Event{Type: EventPointerDown, X: x, Y: y})
}

// InjectMove queues a pointer move. Use it between InjectPress and
// InjectRelease to simulate a drag.
func (g *Gallery) InjectMove(x, y float64) {
	g.injectQueue = append(g.injectQueue, Event{Type: EventPointerMove, X: x, Y: y})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (g *Gallery) InjectRelease(x, y float64) {
	g.injectQueue = append(g.injectQueue, Event{Type: EventPointerUp, X: x, Y: y})
}

// InjectLeave queues the pointer leaving the window.
func (g *Gallery) InjectLeave() {
	g.injectQueue = append(g.injectQueue, Event{Type: EventPointerLeave})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same screen coordinates. Consumes two frames.
func (g *Gallery) InjectClick(x, y float64) {
	g.InjectPress(x, y)
	g.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (g *Gallery) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	g.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		g.InjectMove(Lerp(fromX, toX, t), Lerp(fromY, toY, t))
	}
	g.InjectRelease(toX, toY)
}

// InjectWheel queues a wheel event at (x, y). Negative deltaY zooms in.
func (g *Gallery) InjectWheel(x, y, deltaY float64) {
	g.injectQueue = append(g.injectQueue, Event{Type: EventWheel, X: x, Y: y, DeltaY: deltaY})
}

// InjectKey queues a command. category is used by CommandFilter only.
func (g *Gallery) InjectKey(cmd Command, category int) {
	g.injectQueue = append(g.injectQueue, Event{Type: EventKey, Command: cmd, Category: category})
}

// InjectTouch queues ev as touch input, which switches the gallery to the
// narrow layouts when touch detection is enabled.
func (g *Gallery) InjectTouch(ev Event) {
	ev.Touch = true
	g.injectQueue = append(g.injectQueue, ev)
}

// processInjectedInput pops one event from the inject queue and handles it.
// Returns true if an event was consumed (real input should be skipped).
func (g *Gallery) processInjectedInput() bool {
	if len(g.injectQueue) == 0 {
		return false
	}
	ev := g.injectQueue[0]
	copy(g.injectQueue, g.injectQueue[1:])
	g.injectQueue = g.injectQueue[:len(g.injectQueue)-1]
	g.HandleEvent(ev)
	return true
}
