package action

import (
	"github.com/go-veneer/veneer/pkg/errors"
	"github.com/go-veneer/veneer/pkg/store"
)

// Handler processes actions. Handle returns true when it claimed the
// action (the chain stops there) and false to let the next handler try.
// A returned error stops the chain and surfaces to the dispatch caller;
// it is never swallowed here.
type Handler interface {
	Handle(a *Action, st *store.Store, services *Services) (bool, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(a *Action, st *store.Store, services *Services) (bool, error)

// Handle calls f.
func (f HandlerFunc) Handle(a *Action, st *store.Store, services *Services) (bool, error) {
	return f(a, st, services)
}

// Dispatcher tries an ordered chain of handlers, first claim wins. The
// chain is append-only after construction and lives for the whole
// process; handlers are never individually removed.
type Dispatcher struct {
	handlers []Handler
}

// NewDispatcher creates a dispatcher with an empty chain.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// AddHandler appends a handler to the chain.
func (d *Dispatcher) AddHandler(h Handler) {
	d.handlers = append(d.handlers, h)
}

// Dispatch tries each handler in registration order. Iteration stops at
// the first handler that claims the action; later handlers are never
// invoked for it. If no handler claims it, dispatch completes as a
// no-op, which is not an error.
//
// A handler error is returned to the caller, which is expected to
// report it and keep the interaction loop running.
func (d *Dispatcher) Dispatch(a *Action, st *store.Store, services *Services) error {
	for _, h := range d.handlers {
		claimed, err := h.Handle(a, st, services)
		if err != nil {
			return &errors.Error{
				Op:     "action.Dispatcher.Dispatch",
				Kind:   errors.KindDispatch,
				Action: a.Name,
				Err:    err,
			}
		}
		if claimed {
			return nil
		}
	}
	return nil
}
