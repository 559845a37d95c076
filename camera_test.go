package gallery

import (
	"math"
	"testing"
)

const epsilon = 1e-6

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// runCamera advances cam by frames ticks of 1/60 s.
func runCamera(cam *Camera, frames int, dragging bool) {
	for i := 0; i < frames; i++ {
		cam.update(1.0/60, dragging)
	}
}

func newTestCamera() *Camera {
	cfg := DefaultConfig()
	return NewCamera(Rect{Width: 800, Height: 600}, &cfg)
}

func TestCameraDefaults(t *testing.T) {
	cam := newTestCamera()
	if cam.Zoom != 1.0 {
		t.Errorf("Zoom = %f, want 1.0", cam.Zoom)
	}
	if cam.ZoomIndex() != 2 {
		t.Errorf("ZoomIndex = %d, want 2", cam.ZoomIndex())
	}
	if cam.Pan != (Vec2{}) {
		t.Errorf("Pan = %v, want zero", cam.Pan)
	}
	if c := cam.Center(); c != (Vec2{400, 300}) {
		t.Errorf("Center = %v, want (400,300)", c)
	}
}

func TestCameraIdentityAtDefault(t *testing.T) {
	cam := newTestCamera()
	sx, sy := cam.WorldToScreen(123, 45)
	if !approxEqual(sx, 123, epsilon) || !approxEqual(sy, 45, epsilon) {
		t.Errorf("WorldToScreen(123,45) = (%f,%f), want (123,45)", sx, sy)
	}
}

func TestCameraZoomAboutCenter(t *testing.T) {
	cam := newTestCamera()
	cam.Zoom = 2
	cam.MarkDirty()

	sx, sy := cam.WorldToScreen(400, 300)
	if !approxEqual(sx, 400, epsilon) || !approxEqual(sy, 300, epsilon) {
		t.Errorf("center moved to (%f,%f)", sx, sy)
	}
	// One world unit right of center is two pixels right at zoom 2.
	sx, _ = cam.WorldToScreen(401, 300)
	if !approxEqual(sx, 402, epsilon) {
		t.Errorf("WorldToScreen(401,300).x = %f, want 402", sx)
	}
}

func TestCameraPanOffsetsScreen(t *testing.T) {
	cam := newTestCamera()
	cam.Pan = Vec2{30, -20}
	cam.MarkDirty()
	sx, sy := cam.WorldToScreen(100, 100)
	if !approxEqual(sx, 130, epsilon) || !approxEqual(sy, 80, epsilon) {
		t.Errorf("WorldToScreen = (%f,%f), want (130,80)", sx, sy)
	}
}

func TestCameraRoundTrip(t *testing.T) {
	cam := newTestCamera()
	for _, z := range []float64{0.5, 1, 1.5, 3} {
		for _, pan := range []Vec2{{}, {120, -75}, {-300, 40}} {
			cam.Zoom = z
			cam.Pan = pan
			cam.MarkDirty()
			for _, w := range []Vec2{{0, 0}, {400, 300}, {-250, 900}, {1234.5, -66}} {
				sx, sy := cam.WorldToScreen(w.X, w.Y)
				wx, wy := cam.ScreenToWorld(sx, sy)
				if !approxEqual(wx, w.X, 1e-6) || !approxEqual(wy, w.Y, 1e-6) {
					t.Errorf("zoom %v pan %v: round trip of %v = (%f,%f)", z, pan, w, wx, wy)
				}
			}
		}
	}
}

func TestCameraStepZoomClamps(t *testing.T) {
	cam := newTestCamera()
	n := len(cam.Levels())
	for i := 0; i < n+2; i++ {
		cam.StepZoom(1)
	}
	if cam.ZoomIndex() != n-1 {
		t.Errorf("ZoomIndex = %d after stepping in, want %d", cam.ZoomIndex(), n-1)
	}
	if cam.StepZoom(1) {
		t.Error("StepZoom(1) at the top level should return false")
	}
	for i := 0; i < n+2; i++ {
		cam.StepZoom(-1)
	}
	if cam.ZoomIndex() != 0 {
		t.Errorf("ZoomIndex = %d after stepping out, want 0", cam.ZoomIndex())
	}
	if cam.StepZoom(-1) {
		t.Error("StepZoom(-1) at the bottom level should return false")
	}
}

func TestCameraZoomTransitionLandsOnLevel(t *testing.T) {
	cam := newTestCamera()
	cam.SetZoomIndex(4)
	if !cam.Transitioning() {
		t.Fatal("expected a transition after SetZoomIndex")
	}
	runCamera(cam, 10, false)
	if cam.Zoom <= 1 || cam.Zoom >= 2 {
		t.Errorf("mid-transition Zoom = %f, want between 1 and 2", cam.Zoom)
	}
	runCamera(cam, 120, false)
	if cam.Transitioning() {
		t.Error("transition still running after 2 s")
	}
	if cam.Zoom != 2 {
		t.Errorf("Zoom = %f, want exactly 2", cam.Zoom)
	}
}

func TestCameraSetZoomIndexClamps(t *testing.T) {
	cam := newTestCamera()
	cam.SetZoomIndex(-4)
	if cam.ZoomIndex() != 0 {
		t.Errorf("ZoomIndex = %d, want 0", cam.ZoomIndex())
	}
	cam.SetZoomIndex(99)
	if cam.ZoomIndex() != len(cam.Levels())-1 {
		t.Errorf("ZoomIndex = %d, want last", cam.ZoomIndex())
	}
}

func TestCameraFitZoomIndex(t *testing.T) {
	cam := newTestCamera() // levels 0.5 0.75 1 1.5 2 3
	tests := []struct {
		required float64
		want     int
	}{
		{0.1, 0},
		{0.5, 0},
		{0.9, 1},
		{1.2, 2},
		{2.99, 4},
		{10, 5},
	}
	for _, tt := range tests {
		if got := cam.FitZoomIndex(tt.required); got != tt.want {
			t.Errorf("FitZoomIndex(%v) = %d, want %d", tt.required, got, tt.want)
		}
	}
}

func TestCameraZoomAtKeepsFocalPoint(t *testing.T) {
	cam := newTestCamera()
	fx, fy := 600.0, 200.0
	wx, wy := cam.ScreenToWorld(fx, fy)

	cam.ZoomAt(fx, fy, -100)
	if cam.TargetZoom() <= 1 {
		t.Fatalf("TargetZoom = %f, want > 1 for a negative delta", cam.TargetZoom())
	}
	for i := 0; i < 300; i++ {
		cam.update(1.0/60, false)
		gx, gy := cam.ScreenToWorld(fx, fy)
		if !approxEqual(gx, wx, 1e-6) || !approxEqual(gy, wy, 1e-6) {
			t.Fatalf("frame %d: focal world point drifted to (%f,%f), want (%f,%f)", i, gx, gy, wx, wy)
		}
	}
	if cam.Zoom > 3 {
		t.Errorf("Zoom = %f exceeds maxZoom", cam.Zoom)
	}
}

func TestCameraZoomAtClamps(t *testing.T) {
	cam := newTestCamera()
	cam.ZoomAt(400, 300, 1e6)
	if cam.TargetZoom() != 0.5 {
		t.Errorf("TargetZoom = %f, want minZoom 0.5", cam.TargetZoom())
	}
	cam.ZoomAt(400, 300, -1e6)
	if cam.TargetZoom() != 3 {
		t.Errorf("TargetZoom = %f, want maxZoom 3", cam.TargetZoom())
	}
}

func TestCameraDragInertia(t *testing.T) {
	cam := newTestCamera()
	cam.Drag(10, 0, 10)
	if cam.Velocity.X != 1 {
		t.Fatalf("Velocity.X = %f, want 1 px/ms", cam.Velocity.X)
	}

	// No inertia while the pointer is still held.
	runCamera(cam, 5, true)
	if cam.TargetPan.X != 10 {
		t.Errorf("TargetPan.X = %f while dragging, want 10", cam.TargetPan.X)
	}

	runCamera(cam, 300, false)
	if cam.TargetPan.X <= 10 {
		t.Errorf("TargetPan.X = %f, want > 10 after the flick", cam.TargetPan.X)
	}
	if math.Abs(cam.Velocity.X) > minVelocity {
		t.Errorf("Velocity.X = %f, want decayed below %v", cam.Velocity.X, minVelocity)
	}
	if !approxEqual(cam.Pan.X, cam.TargetPan.X, 0.01) {
		t.Errorf("Pan.X = %f did not settle on TargetPan.X = %f", cam.Pan.X, cam.TargetPan.X)
	}
}

func TestCameraResetPan(t *testing.T) {
	cam := newTestCamera()
	cam.Drag(50, 50, 5)
	cam.ResetPan()
	if cam.TargetPan != (Vec2{}) || cam.Velocity != (Vec2{}) {
		t.Errorf("TargetPan = %v, Velocity = %v, want zero", cam.TargetPan, cam.Velocity)
	}
}

func TestCameraVisibleBounds(t *testing.T) {
	cam := newTestCamera()
	cam.Zoom = 2
	cam.MarkDirty()
	b := cam.VisibleBounds()
	want := Rect{X: 200, Y: 150, Width: 400, Height: 300}
	if !approxEqual(b.X, want.X, epsilon) || !approxEqual(b.Y, want.Y, epsilon) ||
		!approxEqual(b.Width, want.Width, epsilon) || !approxEqual(b.Height, want.Height, epsilon) {
		t.Errorf("VisibleBounds = %+v, want %+v", b, want)
	}
}
