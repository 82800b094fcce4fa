package input

import "github.com/Faultbox/yardview/internal/engine/camera"

// Handler receives the commands produced by the Router.
type Handler interface {
	MoveCamera(dir camera.Direction, speed float32)
	// RotateCamera receives sensitivity-scaled degrees.
	RotateCamera(pitchDelta, yawDelta float32)
	ZoomCamera(delta float32)
	// RotateObject spins the shared scene model around Y, in degrees.
	RotateObject(deltaDeg float32)
	Toggle(t Toggle)
	Quit()
}

// Default tuning for the router.
const (
	DefaultSensitivity = 0.1
	DefaultSpeed       = 0.03
	ObjectYawStep      = 1.0
)

var edgeToggles = map[Key]Toggle{
	KeyM: ToggleDepthPreview,
	KeyF: ToggleWireframe,
	KeyL: ToggleAltLight,
	KeyC: ToggleFog,
	KeyO: ToggleDoor,
}

var heldMoves = []struct {
	key Key
	dir camera.Direction
}{
	{KeyW, camera.Forward},
	{KeyS, camera.Backward},
	{KeyA, camera.Left},
	{KeyD, camera.Right},
}

// Router maps raw events onto a Handler. Toggles fire on key-down edges;
// movement keys act once per ApplyHeld call while held.
type Router struct {
	handler     Handler
	sensitivity float32
	speed       float32

	held [keyCount]bool

	havePointer  bool
	lastX, lastY float64
}

// NewRouter creates a router driving h.
func NewRouter(h Handler, sensitivity, speed float32) *Router {
	return &Router{
		handler:     h,
		sensitivity: sensitivity,
		speed:       speed,
	}
}

// Dispatch handles one polled event.
func (r *Router) Dispatch(ev Event) {
	switch ev.Type {
	case EventQuit:
		r.handler.Quit()

	case EventKeyDown:
		if !ev.Repeat {
			r.keyPressed(ev.Key)
		}
		r.setHeld(ev.Key, true)

	case EventKeyUp:
		r.setHeld(ev.Key, false)

	case EventPointerMove:
		r.pointer(ev.X, ev.Y)

	case EventScroll:
		r.scroll(ev.ScrollX, ev.ScrollY)

	case EventFocus:
		r.ResetPointer()
	}
}

// ApplyHeld fires the continuous effect of every held key once.
// step scales the effect; 1 gives one fixed increment per frame.
func (r *Router) ApplyHeld(step float32) {
	for _, m := range heldMoves {
		if r.held[m.key] {
			r.handler.MoveCamera(m.dir, r.speed*step)
		}
	}
	if r.held[KeyQ] {
		r.handler.RotateObject(-ObjectYawStep * step)
	}
	if r.held[KeyE] {
		r.handler.RotateObject(ObjectYawStep * step)
	}
}

// Held reports whether a key is currently down.
func (r *Router) Held(k Key) bool {
	if k <= KeyUnknown || k >= keyCount {
		return false
	}
	return r.held[k]
}

// ResetPointer makes the next pointer sample a reference point again.
// Dispatch calls it on EventFocus.
func (r *Router) ResetPointer() {
	r.havePointer = false
}

func (r *Router) keyPressed(k Key) {
	if k == KeyEscape {
		r.handler.Quit()
		return
	}
	if t, ok := edgeToggles[k]; ok {
		r.handler.Toggle(t)
	}
}

func (r *Router) setHeld(k Key, down bool) {
	if k <= KeyUnknown || k >= keyCount {
		return
	}
	r.held[k] = down
}

func (r *Router) pointer(x, y float64) {
	if !r.havePointer {
		r.lastX, r.lastY = x, y
		r.havePointer = true
		return
	}

	dx := float32(x-r.lastX) * r.sensitivity
	// screen Y grows downward, pitch grows upward
	dy := float32(r.lastY-y) * r.sensitivity
	r.lastX, r.lastY = x, y

	r.handler.RotateCamera(dy, dx)
}

// scroll zooms and then nudges the camera, matching the stock viewer:
// a wheel event always translates as well.
func (r *Router) scroll(xoff, yoff float64) {
	r.handler.ZoomCamera(float32(yoff))
	if xoff > yoff {
		r.handler.MoveCamera(camera.Backward, r.speed)
	} else {
		r.handler.MoveCamera(camera.Forward, r.speed)
	}
}
