// Package widget defines the closed set of widget variants held by tree
// nodes, the event vocabulary delivered to them, and the capability
// interfaces the runtime uses to discriminate variants.
//
// The variant set is small and fixed, so widgets expose an explicit Kind
// discriminant and narrow capability interfaces (Binder, Editor, Display,
// Actionable) instead of open-ended dynamic downcasting.
package widget

// Kind identifies the concrete widget variant behind a Widget value.
type Kind int

const (
	// KindContainer is a purely structural widget grouping children.
	KindContainer Kind = iota
	// KindStaticText displays read-only text, optionally store-bound.
	KindStaticText
	// KindTextInput is an editable single-line text field.
	KindTextInput
	// KindButton is a clickable widget with an associated action name.
	KindButton
)

func (k Kind) String() string {
	switch k {
	case KindStaticText:
		return "static_text"
	case KindTextInput:
		return "text_input"
	case KindButton:
		return "button"
	default:
		return "container"
	}
}

// Widget is one polymorphic widget instance owned by a tree node.
//
// OnEvent reacts to a delivered event by mutating the widget's private
// state and reports whether the event was consumed. An unconsumed event
// signals the host that it may apply a default action.
type Widget interface {
	Kind() Kind
	OnEvent(Event) bool
}

// Binder is implemented by widgets associated with a store key.
type Binder interface {
	// Binding returns the store key, or "" when unbound.
	Binding() string
}

// Editor is implemented by input-capable widgets whose local edits are
// synchronized into the store. Dirty reports unsynchronized edits; the
// binding sync is the only caller of ClearDirty.
type Editor interface {
	Binder
	Text() string
	Dirty() bool
	ClearDirty()
}

// Display is implemented by display-capable widgets whose content is
// refreshed from the store after each dispatch.
type Display interface {
	Binder
	Content() string
	SetContent(string)
}

// Actionable is implemented by widgets that trigger an action dispatch
// when clicked.
type Actionable interface {
	// Action returns the action name, or "" when the widget has none.
	Action() string
}
