package session

import "chromafix/internal/daltonize"

// Event is a discrete UI input consumed by the frame loop.
type Event int

const (
	// EventNone means no input arrived this tick.
	EventNone Event = iota
	EventNormal
	EventProtanopia
	EventDeuteranopia
	EventTritanopia
	EventQuit
)

// KeyEvent maps a key code to its Event. Unrecognized keys map to EventNone;
// they cause no transition and no error.
func KeyEvent(key int) Event {
	switch key {
	case 'n', 'N':
		return EventNormal
	case 'p', 'P':
		return EventProtanopia
	case 'd', 'D':
		return EventDeuteranopia
	case 't', 'T':
		return EventTritanopia
	case 'q', 'Q', 27: // 27 = ESC
		return EventQuit
	default:
		return EventNone
	}
}

// EventFor returns the selection event for a deficiency type, e.g. to seed
// a starting mode from configuration through the normal transition path.
func EventFor(d daltonize.Deficiency) Event {
	switch d {
	case daltonize.Protanopia:
		return EventProtanopia
	case daltonize.Deuteranopia:
		return EventDeuteranopia
	case daltonize.Tritanopia:
		return EventTritanopia
	default:
		return EventNormal
	}
}

// ModeController owns the session's current deficiency mode. It is the only
// cross-tick mutable state besides the detection cache, and it is written and
// read by the same single-threaded loop, so it takes no lock.
type ModeController struct {
	current daltonize.Deficiency
}

// NewModeController starts in Normal mode.
func NewModeController() *ModeController {
	return &ModeController{current: daltonize.None}
}

// Current returns the selected deficiency type.
func (c *ModeController) Current() daltonize.Deficiency {
	return c.current
}

// Handle applies a selection event and reports whether the mode changed.
// EventNone, EventQuit, and unknown events leave the mode untouched.
func (c *ModeController) Handle(ev Event) bool {
	var next daltonize.Deficiency
	switch ev {
	case EventNormal:
		next = daltonize.None
	case EventProtanopia:
		next = daltonize.Protanopia
	case EventDeuteranopia:
		next = daltonize.Deuteranopia
	case EventTritanopia:
		next = daltonize.Tritanopia
	default:
		return false
	}
	changed := next != c.current
	c.current = next
	return changed
}
