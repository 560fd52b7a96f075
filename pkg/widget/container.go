package widget

// Container is a purely structural widget grouping child nodes. It has
// no state, no binding, and ignores every event.
type Container struct{}

// NewContainer creates a container widget.
func NewContainer() *Container {
	return &Container{}
}

// Kind returns KindContainer.
func (c *Container) Kind() Kind {
	return KindContainer
}

// OnEvent ignores all events.
func (c *Container) OnEvent(Event) bool {
	return false
}
