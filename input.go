package gallery

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// --- Per-pointer state ---

type pointerSlot struct {
	down bool
	x, y float64
}

// inputState is the polling state between frames.
type inputState struct {
	pointers     [maxPointers]pointerSlot
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
	// primary is the touch slot that drives the gallery pointer (0 = none).
	// Further fingers are tracked but ignored.
	primary     int
	mouseInside bool
}

// keyCommands maps keys to the commands they trigger. Digits filter by
// category and are handled separately.
var keyCommands = []struct {
	key ebiten.Key
	cmd Command
}{
	{ebiten.KeyA, CommandAbout},
	{ebiten.Key0, CommandRevert},
	{ebiten.KeyEscape, CommandRevert},
	{ebiten.KeyF12, CommandScreenshot},
	{ebiten.KeyP, CommandScreenshot},
	{ebiten.KeyF, CommandToggleFPS},
}

var digitKeys = [...]ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// pollInput reads Ebitengine's mouse, touch, wheel and keyboard state and
// turns changes into Events.
func (g *Gallery) pollInput() {
	g.pollMouse()
	g.pollTouches()
	g.pollWheel()
	g.pollKeys()
}

// pollMouse handles the mouse (pointer 0).
func (g *Gallery) pollMouse() {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	ps := &g.input.pointers[0]
	inside := g.camera.Viewport.Contains(x, y)

	if !inside && g.input.mouseInside && !pressed {
		g.input.mouseInside = false
		ps.down = false
		g.HandleEvent(Event{Type: EventPointerLeave, X: x, Y: y})
		return
	}
	if !inside && !ps.down {
		return
	}
	g.input.mouseInside = inside

	switch {
	case pressed && !ps.down:
		g.HandleEvent(Event{Type: EventPointerDown, X: x, Y: y})
	case !pressed && ps.down:
		g.HandleEvent(Event{Type: EventPointerUp, X: x, Y: y})
	case x != ps.x || y != ps.y:
		g.HandleEvent(Event{Type: EventPointerMove, X: x, Y: y})
	}
	ps.down = pressed
	ps.x, ps.y = x, y
}

// pollTouches handles touch input (pointers 1-9).
func (g *Gallery) pollTouches() {
	in := &g.input
	touchIDs := ebiten.AppendTouchIDs(in.prevTouchIDs[:0])
	in.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := in.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		x, y := float64(tx), float64(ty)
		ps := &in.pointers[slot]
		if in.primary == 0 && !ps.down {
			in.primary = slot
		}
		if slot == in.primary {
			switch {
			case !ps.down:
				g.HandleEvent(Event{Type: EventPointerDown, X: x, Y: y, Touch: true})
			case x != ps.x || y != ps.y:
				g.HandleEvent(Event{Type: EventPointerMove, X: x, Y: y, Touch: true})
			}
		}
		ps.down = true
		ps.x, ps.y = x, y
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && !activeSlots[i] {
			ps := &in.pointers[i]
			if ps.down && i == in.primary {
				g.HandleEvent(Event{Type: EventPointerUp, X: ps.x, Y: ps.y, Touch: true})
				in.primary = 0
			}
			ps.down = false
			in.touchUsed[i] = false
			in.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (in *inputState) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && in.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !in.touchUsed[i] {
			in.touchUsed[i] = true
			in.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// pollWheel converts wheel notches to a delta where positive zooms out.
func (g *Gallery) pollWheel() {
	_, wy := ebiten.Wheel()
	if wy == 0 {
		return
	}
	mx, my := ebiten.CursorPosition()
	g.HandleEvent(Event{Type: EventWheel, X: float64(mx), Y: float64(my), DeltaY: -wy * wheelNotch})
}

func (g *Gallery) pollKeys() {
	for _, kc := range keyCommands {
		if inpututil.IsKeyJustPressed(kc.key) {
			g.HandleEvent(Event{Type: EventKey, Command: kc.cmd})
		}
	}
	for i, k := range digitKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.HandleEvent(Event{Type: EventKey, Command: CommandFilter, Category: i})
		}
	}
}
