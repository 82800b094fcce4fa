package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/yardview/internal/engine/input"
)

var scancodes = map[sdl.Scancode]input.Key{
	sdl.SCANCODE_ESCAPE: input.KeyEscape,
	sdl.SCANCODE_W:      input.KeyW,
	sdl.SCANCODE_A:      input.KeyA,
	sdl.SCANCODE_S:      input.KeyS,
	sdl.SCANCODE_D:      input.KeyD,
	sdl.SCANCODE_Q:      input.KeyQ,
	sdl.SCANCODE_E:      input.KeyE,
	sdl.SCANCODE_M:      input.KeyM,
	sdl.SCANCODE_F:      input.KeyF,
	sdl.SCANCODE_L:      input.KeyL,
	sdl.SCANCODE_C:      input.KeyC,
	sdl.SCANCODE_O:      input.KeyO,
}

// PollEvents drains the SDL queue, appending converted events to dst.
// Events the viewer does not handle are dropped.
func (w *Window) PollEvents(dst []input.Event) []input.Event {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			w.shouldClose = true
			dst = append(dst, input.Event{Type: input.EventQuit})

		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_SIZE_CHANGED:
				width, height := w.FramebufferSize()
				dst = append(dst, input.Event{
					Type:   input.EventResize,
					Width:  width,
					Height: height,
				})
			case sdl.WINDOWEVENT_FOCUS_GAINED, sdl.WINDOWEVENT_ENTER:
				dst = append(dst, input.Event{Type: input.EventFocus})
			}

		case *sdl.KeyboardEvent:
			ev := input.Event{
				Key:    scancodes[e.Keysym.Scancode],
				Repeat: e.Repeat != 0,
			}
			if e.Type == sdl.KEYDOWN {
				ev.Type = input.EventKeyDown
			} else {
				ev.Type = input.EventKeyUp
			}
			dst = append(dst, ev)

		case *sdl.MouseMotionEvent:
			dst = append(dst, input.Event{
				Type: input.EventPointerMove,
				X:    float64(e.X),
				Y:    float64(e.Y),
			})

		case *sdl.MouseWheelEvent:
			x, y := float64(e.X), float64(e.Y)
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				x, y = -x, -y
			}
			dst = append(dst, input.Event{
				Type:    input.EventScroll,
				ScrollX: x,
				ScrollY: y,
			})
		}
	}
	return dst
}
