// Package action defines named actions and the ordered handler chain
// that converts them into side effects. Handlers communicate with the
// rest of the system only through the store and the services bag.
package action

import (
	"github.com/go-veneer/veneer/pkg/store"
)

// Action is a named request plus an optional payload. Actions are
// constructed per dispatch, consumed by the handler chain, and
// discarded; they are never persisted.
type Action struct {
	// Name identifies the action (e.g. "calculate_blend").
	Name string
	// Payload carries extra values for the handler, keyed by string.
	Payload map[string]store.Value
}

// New creates an action with an empty payload.
func New(name string) *Action {
	return &Action{Name: name, Payload: make(map[string]store.Value)}
}

// With adds a payload entry and returns the action for chaining.
func (a *Action) With(key string, v store.Value) *Action {
	a.Payload[key] = v
	return a
}

// Services is an opaque capability bag passed through dispatch to
// handlers. The dispatcher never inspects it; handlers look up the
// integrations they need by name.
type Services struct {
	entries map[string]any
}

// NewServices creates an empty services bag.
func NewServices() *Services {
	return &Services{entries: make(map[string]any)}
}

// Register adds a capability under name, replacing any previous entry.
func (s *Services) Register(name string, svc any) {
	s.entries[name] = svc
}

// Lookup returns the capability registered under name, if any.
func (s *Services) Lookup(name string) (any, bool) {
	svc, ok := s.entries[name]
	return svc, ok
}
