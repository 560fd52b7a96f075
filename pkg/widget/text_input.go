package widget

// TextInput is an editable single-line text field. Editing mutates the
// text and cursor in place and raises the dirty flag; only the binding
// sync clears it.
type TextInput struct {
	binding string
	text    []rune
	cursor  int
	focused bool
	dirty   bool
}

// NewTextInput creates an empty text input bound to the given store key.
// Pass "" for an unbound input.
func NewTextInput(binding string) *TextInput {
	return &TextInput{binding: binding}
}

// Kind returns KindTextInput.
func (t *TextInput) Kind() Kind {
	return KindTextInput
}

// Binding returns the bound store key, or "".
func (t *TextInput) Binding() string {
	return t.binding
}

// Text returns the current text content.
func (t *TextInput) Text() string {
	return string(t.text)
}

// SetText replaces the content, moves the cursor to the end, and raises
// the dirty flag.
func (t *TextInput) SetText(s string) {
	t.text = []rune(s)
	t.cursor = len(t.text)
	t.dirty = true
}

// Cursor returns the cursor position in runes from the start.
func (t *TextInput) Cursor() int {
	return t.cursor
}

// Focused reports whether the input currently holds focus.
func (t *TextInput) Focused() bool {
	return t.focused
}

// Dirty reports unsynchronized local edits.
func (t *TextInput) Dirty() bool {
	return t.dirty
}

// ClearDirty marks the content as synchronized.
func (t *TextInput) ClearDirty() {
	t.dirty = false
}

// OnEvent applies editing events to the text and cursor. Enter is left
// unconsumed so the host may treat it as a commit.
func (t *TextInput) OnEvent(ev Event) bool {
	switch ev.Type {
	case EventCharInput:
		t.text = append(t.text[:t.cursor], append([]rune{ev.Char}, t.text[t.cursor:]...)...)
		t.cursor++
		t.dirty = true
		return true
	case EventKeyDown:
		return t.onKey(ev.Key)
	case EventFocusGained:
		t.focused = true
		return true
	case EventFocusLost:
		t.focused = false
		return true
	case EventClick:
		// No glyph metrics here, so a click just parks the cursor at the end.
		t.cursor = len(t.text)
		return true
	}
	return false
}

func (t *TextInput) onKey(k Key) bool {
	switch k {
	case KeyBackspace:
		if t.cursor > 0 {
			t.text = append(t.text[:t.cursor-1], t.text[t.cursor:]...)
			t.cursor--
			t.dirty = true
		}
		return true
	case KeyDelete:
		if t.cursor < len(t.text) {
			t.text = append(t.text[:t.cursor], t.text[t.cursor+1:]...)
			t.dirty = true
		}
		return true
	case KeyLeft:
		if t.cursor > 0 {
			t.cursor--
		}
		return true
	case KeyRight:
		if t.cursor < len(t.text) {
			t.cursor++
		}
		return true
	case KeyHome:
		t.cursor = 0
		return true
	case KeyEnd:
		t.cursor = len(t.text)
		return true
	}
	// Enter and anything else falls through to the host.
	return false
}
