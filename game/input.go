package game

// Key is a frontend-independent key.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyFire
	KeyPause
	KeyConfirm
	KeyEscape
)

var keyNames = [...]string{"none", "left", "right", "up", "down", "fire", "pause", "confirm", "escape"}

func (k Key) String() string {
	if k < 0 || int(k) >= len(keyNames) {
		return "unknown"
	}
	return keyNames[k]
}

// KeyEvent is a key going down or up. Terminals only report presses; frontends that cannot
// observe releases send Tap events instead.
type KeyEvent struct {
	Key     Key
	Pressed bool
	Tap     bool
}

// QuitEvent asks the game to stop, e.g. when the window is closed.
type QuitEvent struct{}

// Controls maps held keys onto the player's controls.
type Controls struct {
	held [ControlCount]bool
	taps [ControlCount]int
}

func controlOf(k Key) (Control, bool) {
	switch k {
	case KeyLeft:
		return ControlLeft, true
	case KeyRight:
		return ControlRight, true
	case KeyUp:
		return ControlUp, true
	case KeyDown:
		return ControlDown, true
	case KeyFire:
		return ControlShoot, true
	}
	return 0, false
}

// Apply records ev and reports whether it was a movement or fire key.
func (c *Controls) Apply(ev KeyEvent) bool {
	control, ok := controlOf(ev.Key)
	if !ok {
		return false
	}
	switch {
	case ev.Tap:
		c.taps[control] = tapFrames
	default:
		c.held[control] = ev.Pressed
	}
	return true
}

// tapFrames is how many ticks a tap keeps a control pressed.
const tapFrames = 6

// Snapshot returns the current control state and ages taps by one tick.
func (c *Controls) Snapshot() [ControlCount]bool {
	var out [ControlCount]bool
	for i := range out {
		out[i] = c.held[i] || c.taps[i] > 0
		if c.taps[i] > 0 {
			c.taps[i]--
		}
	}
	return out
}

// Release drops every held control.
func (c *Controls) Release() {
	*c = Controls{}
}
