// Package input routes window events to camera commands and render toggles.
package input

// EventType identifies the kind of a polled event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventResize
	EventKeyDown
	EventKeyUp
	EventPointerMove
	EventScroll
	// EventFocus is sent when the window regains keyboard or pointer focus.
	EventFocus
)

// Key is a toolkit-neutral key identifier. Only keys the viewer binds
// are mapped; everything else arrives as KeyUnknown.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyW
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyM
	KeyF
	KeyL
	KeyC
	KeyO

	keyCount
)

// Event represents a processed input event.
type Event struct {
	Type EventType
	Key  Key
	// Repeat is set for key-down events generated by the OS auto-repeat.
	Repeat bool

	// Pointer position in window coordinates (EventPointerMove).
	X, Y float64
	// Wheel offsets (EventScroll).
	ScrollX, ScrollY float64
	// Framebuffer size in pixels (EventResize).
	Width, Height int
}
