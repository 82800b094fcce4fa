// Package viewer runs the frame loop: input, transforms, passes, present.
package viewer

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/yardview/internal/config"
	"github.com/Faultbox/yardview/internal/engine/camera"
	"github.com/Faultbox/yardview/internal/engine/input"
	"github.com/Faultbox/yardview/internal/engine/transform"
	"github.com/Faultbox/yardview/internal/logger"
	"github.com/Faultbox/yardview/internal/render"
	"github.com/Faultbox/yardview/internal/scene"
)

// Window is the surface the viewer presents to.
type Window interface {
	FramebufferSize() (width, height int)
	ShouldClose() bool
	PollEvents(dst []input.Event) []input.Event
	SwapBuffers()
	RequestClose()
	SetTitle(title string)
}

// Device is the render device plus its error queue.
type Device interface {
	render.Device
	Errors() []error
}

// referenceFPS converts elapsed time into per-frame steps when
// frame-independent movement is on.
const referenceFPS = 60

// Viewer owns the per-frame state and drives the pass graph.
type Viewer struct {
	state State

	title            string
	near, far        float32
	frameIndependent bool

	win    Window
	dev    Device
	graph  *render.Graph
	scene  *scene.Set
	router *input.Router
	log    *zap.Logger

	quit    bool
	events  []input.Event
	objects []render.Object
}

var _ input.Handler = (*Viewer)(nil)

// New builds the initial state from cfg and sizes it to the window's
// framebuffer.
func New(cfg *config.Config, win Window, dev Device, graph *render.Graph, objects *scene.Set) (*Viewer, error) {
	if id, ok := objects.Complete(); !ok {
		return nil, fmt.Errorf("scene object %s has no mesh", id)
	}

	cam := camera.New(vec3(cfg.Camera.Position), vec3(cfg.Camera.Target), vec3(cfg.Camera.Up))

	v := &Viewer{
		title:            cfg.Graphics.Title,
		near:             cfg.Graphics.Near,
		far:              cfg.Graphics.Far,
		frameIndependent: cfg.Camera.FrameIndependent,
		win:              win,
		dev:              dev,
		graph:            graph,
		scene:            objects,
		log:              logger.Named("viewer"),
	}
	v.state.Camera = cam
	v.state.Light = transform.DefaultLight()

	width, height := win.FramebufferSize()
	v.state.Width, v.state.Height = width, height
	v.state.Transforms = transform.NewSet(v.projection())
	v.state.Transforms.SetView(cam.ViewMatrix())
	dev.Viewport(0, 0, int32(width), int32(height))

	v.router = input.NewRouter(v, cfg.Camera.Sensitivity, cfg.Camera.Speed)

	v.log.Info("viewer ready",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Float32("yaw", cam.Yaw()),
		zap.Float32("pitch", cam.Pitch()),
	)
	return v, nil
}

// State returns the live state. Callers must not retain it across frames.
func (v *Viewer) State() *State {
	return &v.state
}

// Run renders frames until a quit command or the window's close signal.
func (v *Viewer) Run() error {
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting frame loop")

	for !v.Done() {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		if err := v.Frame(dt); err != nil {
			return err
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount), zap.Duration("dt", dt))
			v.win.SetTitle(fpsTitle(v.title, frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	v.log.Info("frame loop finished", zap.Uint64("frames", v.state.Frame))
	return nil
}

func fpsTitle(title string, fps int) string {
	return fmt.Sprintf("%s - %d fps", title, fps)
}

// Done reports whether the loop should stop.
func (v *Viewer) Done() bool {
	return v.quit || v.win.ShouldClose()
}

// Frame processes input and renders one frame.
func (v *Viewer) Frame(dt time.Duration) error {
	v.events = v.win.PollEvents(v.events[:0])
	for _, ev := range v.events {
		if ev.Type == input.EventResize {
			v.Resize(ev.Width, ev.Height)
			continue
		}
		v.router.Dispatch(ev)
	}
	if v.quit {
		return nil
	}

	v.router.ApplyHeld(v.step(dt))

	frame := v.buildFrame()
	if err := v.graph.Execute(&frame); err != nil {
		return fmt.Errorf("frame %d: %w", v.state.Frame, err)
	}
	v.win.SwapBuffers()

	for _, err := range v.dev.Errors() {
		v.log.Warn("gpu error",
			zap.Uint64("frame", v.state.Frame),
			zap.Error(err),
		)
	}
	v.state.Frame++
	return nil
}

func (v *Viewer) step(dt time.Duration) float32 {
	if !v.frameIndependent {
		return 1
	}
	return float32(dt.Seconds() * referenceFPS)
}

func (v *Viewer) buildFrame() render.Frame {
	ts := v.state.Transforms
	light := v.state.Light
	toggles := &v.state.Toggles

	v.objects = v.scene.Objects(scene.Pose{
		Model:     ts.Model(),
		DoorOpen:  toggles.DoorOpen(),
		NormalFor: ts.NormalFor,
	}, v.objects)

	return render.Frame{
		Index:        v.state.Frame,
		View:         ts.View(),
		Projection:   ts.Projection(),
		LightSpace:   light.SpaceMatrix(),
		LightDir:     light.Direction,
		LightColor:   light.Color,
		PointLight:   light.PointPosition,
		Fog:          toggles.Fog(),
		AltLight:     toggles.AltLight(),
		DepthPreview: toggles.DepthPreview(),
		Width:        int32(v.state.Width),
		Height:       int32(v.state.Height),
		Objects:      v.objects,
	}
}

// Resize reacts to a framebuffer size change. Only the projection aspect
// and the viewport change.
func (v *Viewer) Resize(width, height int) {
	v.state.Width, v.state.Height = width, height
	v.state.Transforms.SetProjection(v.projection())
	v.dev.Viewport(0, 0, int32(width), int32(height))
	v.log.Debug("resized", zap.Int("width", width), zap.Int("height", height))
}

func (v *Viewer) projection() mgl32.Mat4 {
	return transform.Perspective(v.state.Camera.FOV(), v.state.Width, v.state.Height, v.near, v.far)
}
