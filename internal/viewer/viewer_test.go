package viewer

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/yardview/internal/config"
	"github.com/Faultbox/yardview/internal/engine/input"
	"github.com/Faultbox/yardview/internal/engine/transform"
	"github.com/Faultbox/yardview/internal/render"
	"github.com/Faultbox/yardview/internal/scene"
)

const eps = 1e-4

// near compares with an absolute tolerance; mgl32's relative threshold
// degenerates to eps*eps when one side is zero.
func near(a, b float32) bool { return mgl32.Abs(a-b) < eps }

type fakeWindow struct {
	width, height int
	batches       [][]input.Event
	polls         int
	swaps         int
	closeAfter    int // ShouldClose after this many swaps; 0 disables
	closing       bool
	titles        []string
}

func (w *fakeWindow) FramebufferSize() (int, int) { return w.width, w.height }

func (w *fakeWindow) ShouldClose() bool {
	return w.closing || (w.closeAfter > 0 && w.swaps >= w.closeAfter)
}

func (w *fakeWindow) PollEvents(dst []input.Event) []input.Event {
	if w.polls < len(w.batches) {
		dst = append(dst, w.batches[w.polls]...)
	}
	w.polls++
	return dst
}

func (w *fakeWindow) SwapBuffers()          { w.swaps++ }
func (w *fakeWindow) RequestClose()         { w.closing = true }
func (w *fakeWindow) SetTitle(title string) { w.titles = append(w.titles, title) }

type viewport struct{ x, y, w, h int32 }

type fakeDevice struct {
	viewports []viewport
	wireframe []bool
	errs      []error
}

func (d *fakeDevice) BindFramebuffer(uint32)     {}
func (d *fakeDevice) Clear(render.ClearMask)     {}
func (d *fakeDevice) SetDepthTest(bool)          {}
func (d *fakeDevice) BindTexture(uint32, uint32) {}
func (d *fakeDevice) SetWireframe(on bool)       { d.wireframe = append(d.wireframe, on) }
func (d *fakeDevice) Viewport(x, y, w, h int32)  { d.viewports = append(d.viewports, viewport{x, y, w, h}) }

func (d *fakeDevice) Errors() []error {
	errs := d.errs
	d.errs = nil
	return errs
}

// capturePass records every frame it executes.
type capturePass struct {
	frames []render.Frame
	err    error
}

func (p *capturePass) Name() string              { return "capture" }
func (p *capturePass) Reads() []render.Resource  { return nil }
func (p *capturePass) Writes() []render.Resource { return []render.Resource{render.Backbuffer} }

func (p *capturePass) Execute(f *render.Frame) error {
	if p.err != nil {
		return p.err
	}
	cp := *f
	cp.Objects = append([]render.Object(nil), f.Objects...)
	p.frames = append(p.frames, cp)
	return nil
}

type nopMesh struct{}

func (nopMesh) Draw(render.Program) {}

type fixture struct {
	win  *fakeWindow
	dev  *fakeDevice
	pass *capturePass
	v    *Viewer
}

func newFixture(t *testing.T, cfg *config.Config) *fixture {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	f := &fixture{
		win:  &fakeWindow{width: 1920, height: 1080},
		dev:  &fakeDevice{},
		pass: &capturePass{},
	}
	graph, err := render.Compile(f.pass)
	if err != nil {
		t.Fatal(err)
	}
	set := scene.NewSet()
	for _, id := range scene.IDs() {
		set.Put(id, nopMesh{})
	}
	f.v, err = New(cfg, f.win, f.dev, graph, set)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f
}

func (f *fixture) frame(t *testing.T, events ...input.Event) render.Frame {
	t.Helper()
	f.win.batches = append(f.win.batches[:f.win.polls], events)
	if err := f.v.Frame(16 * time.Millisecond); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if len(f.pass.frames) == 0 {
		t.Fatal("no frame rendered")
	}
	return f.pass.frames[len(f.pass.frames)-1]
}

func keyDown(k input.Key) input.Event {
	return input.Event{Type: input.EventKeyDown, Key: k}
}

func keyUp(k input.Key) input.Event {
	return input.Event{Type: input.EventKeyUp, Key: k}
}

func assertNormalFresh(t *testing.T, s *State) {
	t.Helper()
	ts := s.Transforms
	if !ts.Normal().ApproxFuncEqual(transform.NormalMatrix(ts.View(), ts.Model()), near) {
		t.Error("normal matrix is stale")
	}
}

func TestNewInitialState(t *testing.T) {
	f := newFixture(t, nil)
	s := f.v.State()

	want := transform.Perspective(45, 1920, 1080, 0.1, 1000)
	if !s.Transforms.Projection().ApproxFuncEqual(want, near) {
		t.Error("initial projection should use the framebuffer aspect and far plane 1000")
	}
	if len(f.dev.viewports) != 1 || f.dev.viewports[0] != (viewport{0, 0, 1920, 1080}) {
		t.Errorf("viewports = %v", f.dev.viewports)
	}
	if s.Transforms.Model() != mgl32.Ident4() {
		t.Error("model should start at identity")
	}
	assertNormalFresh(t, s)
}

func TestNewRejectsIncompleteScene(t *testing.T) {
	graph, _ := render.Compile(&capturePass{})
	set := scene.NewSet()
	set.Put(scene.MainScene, nopMesh{})
	if _, err := New(config.Default(), &fakeWindow{width: 1, height: 1}, &fakeDevice{}, graph, set); err == nil {
		t.Error("expected error for a scene without every mesh")
	}
}

func TestResizeChangesOnlyProjection(t *testing.T) {
	f := newFixture(t, nil)
	s := f.v.State()
	view, model, normal := s.Transforms.View(), s.Transforms.Model(), s.Transforms.Normal()

	fr := f.frame(t, input.Event{Type: input.EventResize, Width: 800, Height: 600})

	want := transform.Perspective(45, 800, 600, 0.1, 1000)
	if !fr.Projection.ApproxFuncEqual(want, near) {
		t.Error("projection should use the new aspect")
	}
	if s.Transforms.View() != view || s.Transforms.Model() != model || s.Transforms.Normal() != normal {
		t.Error("resize must not touch view, model or normal matrix")
	}
	if last := f.dev.viewports[len(f.dev.viewports)-1]; last != (viewport{0, 0, 800, 600}) {
		t.Errorf("viewport = %v", last)
	}
	if fr.Width != 800 || fr.Height != 600 {
		t.Errorf("frame size = %dx%d", fr.Width, fr.Height)
	}

	// minimized window
	fr = f.frame(t, input.Event{Type: input.EventResize, Width: 0, Height: 0})
	for i, x := range fr.Projection {
		if math.IsNaN(float64(x)) {
			t.Fatalf("projection[%d] is NaN after a zero-size resize", i)
		}
	}
}

func TestNormalMatrixFreshAfterEveryChange(t *testing.T) {
	f := newFixture(t, nil)
	s := f.v.State()

	f.frame(t, keyDown(input.KeyW))
	assertNormalFresh(t, s)
	f.frame(t, keyUp(input.KeyW), keyDown(input.KeyQ))
	assertNormalFresh(t, s)
	f.frame(t,
		input.Event{Type: input.EventPointerMove, X: 10, Y: 10},
		input.Event{Type: input.EventPointerMove, X: 40, Y: 25},
	)
	assertNormalFresh(t, s)

	fr := f.frame(t)
	for _, o := range fr.Objects {
		if !o.Normal.ApproxFuncEqual(transform.NormalMatrix(fr.View, o.Model), near) {
			t.Errorf("%s: normal matrix does not match its model", o.Name)
		}
	}
}

func TestHeldKeyMovesEveryFrame(t *testing.T) {
	f := newFixture(t, nil)
	cam := f.v.State().Camera
	start, front := cam.Position(), cam.Front()

	f.frame(t, keyDown(input.KeyW))
	f.frame(t)
	f.frame(t, keyUp(input.KeyW))

	// the key-up is dispatched before ApplyHeld of the third frame
	want := start.Add(front.Mul(0.03 * 2))
	if !cam.Position().ApproxFuncEqual(want, near) {
		t.Errorf("position = %v, want %v", cam.Position(), want)
	}
}

func TestFrameIndependentStep(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.FrameIndependent = true
	f := newFixture(t, cfg)
	s := f.v.State()

	f.win.batches = [][]input.Event{{keyDown(input.KeyE)}}
	if err := f.v.Frame(time.Second / 30); err != nil {
		t.Fatal(err)
	}
	if mgl32.Abs(s.ObjectYaw-2) > eps {
		t.Errorf("ObjectYaw = %v, want 2 at 30 fps", s.ObjectYaw)
	}
}

func TestObjectYawAccumulates(t *testing.T) {
	f := newFixture(t, nil)
	s := f.v.State()

	f.frame(t, keyDown(input.KeyE))
	f.frame(t)
	f.frame(t, keyUp(input.KeyE), keyDown(input.KeyQ))

	if mgl32.Abs(s.ObjectYaw-1) > eps {
		t.Errorf("ObjectYaw = %v, want 1", s.ObjectYaw)
	}
	want := mgl32.HomogRotate3DY(mgl32.DegToRad(1))
	if !s.Transforms.Model().ApproxFuncEqual(want, near) {
		t.Error("model should be a Y rotation by the accumulated yaw")
	}
}

func TestWireframeTogglesDevice(t *testing.T) {
	f := newFixture(t, nil)

	f.frame(t, keyDown(input.KeyF), keyUp(input.KeyF))
	f.frame(t, keyDown(input.KeyF), input.Event{Type: input.EventKeyDown, Key: input.KeyF, Repeat: true})
	f.frame(t, keyUp(input.KeyF), keyDown(input.KeyF))

	want := []bool{true, false, true}
	if len(f.dev.wireframe) != len(want) {
		t.Fatalf("SetWireframe calls = %v, want %v", f.dev.wireframe, want)
	}
	for i := range want {
		if f.dev.wireframe[i] != want[i] {
			t.Errorf("call %d = %v, want %v", i, f.dev.wireframe[i], want[i])
		}
	}
}

func TestTogglesReachFrame(t *testing.T) {
	f := newFixture(t, nil)

	fr := f.frame(t, keyDown(input.KeyC), keyDown(input.KeyL), keyDown(input.KeyM), keyDown(input.KeyO))
	if !fr.Fog || !fr.AltLight || !fr.DepthPreview {
		t.Errorf("frame toggles = fog %v alt %v preview %v", fr.Fog, fr.AltLight, fr.DepthPreview)
	}
	gate := fr.Objects[scene.Gate]
	if want := scene.HingeModel(true, scene.GatePivot, fr.Objects[scene.MainScene].Model); gate.Model != want {
		t.Error("open door should swing the gate")
	}

	fr = f.frame(t, keyUp(input.KeyO), keyDown(input.KeyO))
	if fr.Objects[scene.Gate].Model != fr.Objects[scene.MainScene].Model {
		t.Error("closed door should use the shared model")
	}
}

func TestZoomRecomputesProjection(t *testing.T) {
	f := newFixture(t, nil)
	fr := f.frame(t, input.Event{Type: input.EventScroll, ScrollY: 5})

	if got := f.v.State().Camera.FOV(); got != 40 {
		t.Fatalf("FOV = %v, want 40", got)
	}
	want := transform.Perspective(40, 1920, 1080, 0.1, 1000)
	if !fr.Projection.ApproxFuncEqual(want, near) {
		t.Error("projection should follow the zoomed field of view")
	}
}

func TestLightSpaceInFrame(t *testing.T) {
	f := newFixture(t, nil)
	fr := f.frame(t)

	want := transform.DefaultLight().SpaceMatrix()
	if !fr.LightSpace.ApproxFuncEqual(want, near) {
		t.Error("frame light space matrix mismatch")
	}
	if fr.PointLight != (mgl32.Vec3{1.5921, 8.6604, -4.4947}) {
		t.Errorf("point light = %v", fr.PointLight)
	}
	if fr.Index != 0 || f.v.State().Frame != 1 {
		t.Errorf("frame index = %d, counter = %d", fr.Index, f.v.State().Frame)
	}
}

func TestRunStopsOnEscape(t *testing.T) {
	f := newFixture(t, nil)
	f.win.batches = [][]input.Event{nil, nil, {keyDown(input.KeyEscape)}}

	if err := f.v.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if f.win.swaps != 2 {
		t.Errorf("swaps = %d, want 2 (no present after quit)", f.win.swaps)
	}
	if !f.v.Done() {
		t.Error("viewer should be done")
	}
	if !f.win.closing {
		t.Error("quit should request the window to close")
	}
}

func TestFocusResetsPointerReference(t *testing.T) {
	f := newFixture(t, nil)
	yaw := f.v.State().Camera.Yaw()

	f.frame(t, input.Event{Type: input.EventPointerMove, X: 10, Y: 10})
	f.frame(t, input.Event{Type: input.EventFocus}, input.Event{Type: input.EventPointerMove, X: 900, Y: 10})

	if got := f.v.State().Camera.Yaw(); got != yaw {
		t.Errorf("yaw = %f after refocus, want %f (no jump)", got, yaw)
	}
}

func TestFPSTitle(t *testing.T) {
	if got := fpsTitle("yard", 60); got != "yard - 60 fps" {
		t.Errorf("fpsTitle = %q", got)
	}
}

func TestRunStopsOnWindowClose(t *testing.T) {
	f := newFixture(t, nil)
	f.win.closeAfter = 3

	if err := f.v.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if f.win.swaps != 3 {
		t.Errorf("swaps = %d, want 3", f.win.swaps)
	}
}

func TestRunStopsOnQuitEvent(t *testing.T) {
	f := newFixture(t, nil)
	f.win.batches = [][]input.Event{{{Type: input.EventQuit}}}

	if err := f.v.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if f.win.swaps != 0 {
		t.Errorf("swaps = %d, want 0", f.win.swaps)
	}
}

func TestGPUErrorsAreNotFatal(t *testing.T) {
	f := newFixture(t, nil)
	f.dev.errs = []error{errors.New("GL_INVALID_ENUM")}

	f.frame(t)
	f.frame(t)
	if f.win.swaps != 2 {
		t.Errorf("swaps = %d, want 2", f.win.swaps)
	}
}

func TestPassErrorStopsRun(t *testing.T) {
	f := newFixture(t, nil)
	boom := errors.New("boom")
	f.pass.err = boom

	err := f.v.Run()
	if !errors.Is(err, boom) {
		t.Fatalf("Run error = %v, want wrapped boom", err)
	}
	if f.win.swaps != 0 {
		t.Errorf("swaps = %d, want 0", f.win.swaps)
	}
}
