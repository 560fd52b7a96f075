package widget

// Button is a clickable widget. A click on a button with a non-empty
// action name triggers the full dispatch sequence; the button itself
// holds no other behavior.
type Button struct {
	label  string
	action string
	down   bool
}

// NewButton creates a button with a display label and an action name
// ("" for a button with no associated action).
func NewButton(label, action string) *Button {
	return &Button{label: label, action: action}
}

// Kind returns KindButton.
func (b *Button) Kind() Kind {
	return KindButton
}

// Label returns the display label.
func (b *Button) Label() string {
	return b.label
}

// Action returns the associated action name, or "".
func (b *Button) Action() string {
	return b.action
}

// Down reports whether the button is visually depressed. The renderer
// reads this; it has no behavioral effect.
func (b *Button) Down() bool {
	return b.down
}

// SetDown updates the depressed visual state.
func (b *Button) SetDown(down bool) {
	b.down = down
}

// OnEvent consumes clicks; everything else is ignored.
func (b *Button) OnEvent(ev Event) bool {
	return ev.Type == EventClick
}
