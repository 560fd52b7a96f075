package widget

// StaticText displays read-only text. When bound, its content is
// refreshed from the store after each dispatch.
type StaticText struct {
	binding string
	content string
}

// NewStaticText creates a static text widget with initial content,
// bound to the given store key ("" for unbound).
func NewStaticText(binding, content string) *StaticText {
	return &StaticText{binding: binding, content: content}
}

// Kind returns KindStaticText.
func (s *StaticText) Kind() Kind {
	return KindStaticText
}

// Binding returns the bound store key, or "".
func (s *StaticText) Binding() string {
	return s.binding
}

// Content returns the displayed text.
func (s *StaticText) Content() string {
	return s.content
}

// SetContent replaces the displayed text.
func (s *StaticText) SetContent(content string) {
	s.content = content
}

// OnEvent ignores all events; static text is inert.
func (s *StaticText) OnEvent(Event) bool {
	return false
}
