package widget

// Key is the closed keyboard vocabulary delivered to focused widgets.
// Raw host key events outside this set are dropped before delivery.
type Key int

const (
	// KeyBackspace deletes the rune before the cursor.
	KeyBackspace Key = iota
	// KeyDelete deletes the rune under the cursor.
	KeyDelete
	// KeyLeft moves the cursor left.
	KeyLeft
	// KeyRight moves the cursor right.
	KeyRight
	// KeyHome moves the cursor to the start.
	KeyHome
	// KeyEnd moves the cursor to the end.
	KeyEnd
	// KeyEnter commits the current value.
	KeyEnter
)

func (k Key) String() string {
	switch k {
	case KeyBackspace:
		return "backspace"
	case KeyDelete:
		return "delete"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyHome:
		return "home"
	case KeyEnd:
		return "end"
	case KeyEnter:
		return "enter"
	default:
		return "unknown"
	}
}

// EventType identifies the kind of a widget event.
type EventType int

const (
	// EventClick is delivered on pointer release over the pressed node.
	EventClick EventType = iota
	// EventFocusGained is delivered when a node becomes the focus target.
	EventFocusGained
	// EventFocusLost is delivered when a node stops being the focus target.
	EventFocusLost
	// EventKeyDown carries one Key from the closed vocabulary.
	EventKeyDown
	// EventCharInput carries one printable ASCII rune (including space).
	EventCharInput
)

// Event is a widget-level event. Key is meaningful only for EventKeyDown
// and Char only for EventCharInput.
type Event struct {
	Type EventType
	Key  Key
	Char rune
}

// Click returns a click event.
func Click() Event {
	return Event{Type: EventClick}
}

// FocusGained returns a focus-gained event.
func FocusGained() Event {
	return Event{Type: EventFocusGained}
}

// FocusLost returns a focus-lost event.
func FocusLost() Event {
	return Event{Type: EventFocusLost}
}

// KeyDown returns a key-down event for k.
func KeyDown(k Key) Event {
	return Event{Type: EventKeyDown, Key: k}
}

// CharInput returns a character-input event for c.
func CharInput(c rune) Event {
	return Event{Type: EventCharInput, Char: c}
}
