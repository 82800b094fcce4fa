package input

// Toggle names one of the boolean render switches.
type Toggle int

const (
	ToggleWireframe Toggle = iota
	ToggleFog
	ToggleAltLight
	ToggleDoor
	ToggleDepthPreview

	toggleCount
)

// String returns a readable name for logging.
func (t Toggle) String() string {
	switch t {
	case ToggleWireframe:
		return "wireframe"
	case ToggleFog:
		return "fog"
	case ToggleAltLight:
		return "alt_light"
	case ToggleDoor:
		return "door"
	case ToggleDepthPreview:
		return "depth_preview"
	}
	return "unknown"
}

// Toggles is the render toggle state. The zero value has every switch off.
type Toggles struct {
	flags [toggleCount]bool
}

// Flip inverts a toggle and returns its new value.
func (t *Toggles) Flip(which Toggle) bool {
	if which < 0 || which >= toggleCount {
		return false
	}
	t.flags[which] = !t.flags[which]
	return t.flags[which]
}

// Get reports whether a toggle is on.
func (t *Toggles) Get(which Toggle) bool {
	if which < 0 || which >= toggleCount {
		return false
	}
	return t.flags[which]
}

// Wireframe reports whether polygons are drawn as lines.
func (t *Toggles) Wireframe() bool { return t.flags[ToggleWireframe] }

// Fog reports whether distance fog is applied in the color pass.
func (t *Toggles) Fog() bool { return t.flags[ToggleFog] }

// AltLight reports whether the alternate light color is used.
func (t *Toggles) AltLight() bool { return t.flags[ToggleAltLight] }

// DoorOpen reports whether the gate is swung open on its hinge.
func (t *Toggles) DoorOpen() bool { return t.flags[ToggleDoor] }

// DepthPreview reports whether the color pass shows the shadow depth map.
func (t *Toggles) DepthPreview() bool { return t.flags[ToggleDepthPreview] }
