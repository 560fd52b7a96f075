// Package runtime connects the widget tree, the store, and the action
// dispatcher into one interaction engine. Hosts translate their raw
// window events into the pointer/key vocabulary and call the Pointer*
// and KeyPressed methods; everything else happens in here.
//
// The engine is single-threaded and event-driven: each call runs to
// completion before the host delivers the next event. No locking, no
// suspension.
package runtime

import (
	"github.com/go-veneer/veneer/pkg/action"
	"github.com/go-veneer/veneer/pkg/errors"
	"github.com/go-veneer/veneer/pkg/store"
	"github.com/go-veneer/veneer/pkg/tree"
	"github.com/go-veneer/veneer/pkg/widget"
)

// Runtime bundles the long-lived collaborators touched by event
// processing. Hosts construct it once at startup and pass it into every
// event-processing call; there is no ambient global state.
type Runtime struct {
	Tree       *tree.Tree
	Store      *store.Store
	Dispatcher *action.Dispatcher
	Services   *action.Services
}

// New creates a runtime around an already-built tree with an empty
// store, an empty handler chain, and an empty services bag.
func New(t *tree.Tree) *Runtime {
	return &Runtime{
		Tree:       t,
		Store:      store.New(),
		Dispatcher: action.NewDispatcher(),
		Services:   action.NewServices(),
	}
}

// PointerMoved recomputes the hit test and updates the hovered role,
// which may become empty.
func (r *Runtime) PointerMoved(x, y float64) {
	if id, ok := r.Tree.HitTest(x, y); ok {
		r.Tree.SetHovered(id)
	} else {
		r.Tree.SetHovered(tree.NodeID{})
	}
}

// PointerPressed handles a pointer button going down at the current
// hover position. A press over a node makes it the pressed node and
// moves focus to it; a press over empty space clears focus and leaves
// pressed unset.
func (r *Runtime) PointerPressed() {
	hovered, ok := r.Tree.Hovered()
	if !ok {
		r.clearFocus()
		return
	}

	r.Tree.SetPressed(hovered)
	if n := r.Tree.Get(hovered); n != nil {
		if b, ok := n.Widget().(*widget.Button); ok {
			b.SetDown(true)
		}
	}
	r.moveFocus(hovered)
}

// PointerReleased handles the pointer button coming back up. A click
// fires only when hover and press still coincide: if the pointer left
// the pressed node before release, nothing is delivered. A click on a
// widget with an associated action runs the full dispatch sequence.
// Pressed is cleared afterward regardless of whether the click fired.
func (r *Runtime) PointerReleased() {
	pressed, ok := r.Tree.Pressed()
	if ok {
		if n := r.Tree.Get(pressed); n != nil {
			if b, ok := n.Widget().(*widget.Button); ok {
				b.SetDown(false)
			}
		}
		if hovered, hok := r.Tree.Hovered(); hok && hovered == pressed {
			var name string
			if n := r.Tree.Get(pressed); n != nil {
				if a, ok := n.Widget().(widget.Actionable); ok {
					name = a.Action()
				}
			}
			r.deliver(pressed, widget.Click())
			if name != "" {
				r.DispatchAction(name)
			}
		}
	}
	r.Tree.SetPressed(tree.NodeID{})
}

// KeyPressed routes a mapped key event to the focused widget, then runs
// the inputs-to-store sync. It reports whether the event was consumed;
// an unconsumed event lets the host apply a default action. Key-up
// events and keys outside the closed vocabulary never reach here: the
// host's translation drops them.
func (r *Runtime) KeyPressed(ev widget.Event) bool {
	if ev.Type != widget.EventKeyDown && ev.Type != widget.EventCharInput {
		return false
	}
	// Character input is restricted to printable ASCII plus space.
	if ev.Type == widget.EventCharInput && (ev.Char < ' ' || ev.Char > '~') {
		return false
	}

	focused, ok := r.Tree.Focused()
	if !ok {
		return false
	}
	consumed := r.deliver(focused, ev)
	r.SyncInputsToStore()
	return consumed
}

// DispatchAction runs the full dispatch sequence for a named action:
// dirty inputs are written to the store, the handler chain runs, and
// store values flow back into display widgets so scripted outputs
// become visible. A handler error is reported and the loop continues.
func (r *Runtime) DispatchAction(name string) {
	r.SyncInputsToStore()

	a := action.New(name)
	if err := r.Dispatcher.Dispatch(a, r.Store, r.Services); err != nil {
		if verr, ok := err.(*errors.Error); ok {
			errors.Report(verr)
		} else {
			errors.Report(&errors.Error{
				Op:     "runtime.DispatchAction",
				Kind:   errors.KindDispatch,
				Action: name,
				Err:    err,
			})
		}
	}

	r.SyncStoreToOutputs()
}

// SyncInputsToStore writes every dirty, bound input widget's value into
// the store and clears its dirty flag. Runs after input-mutating key
// events and immediately before every dispatch.
func (r *Runtime) SyncInputsToStore() {
	for _, id := range r.Tree.IDs() {
		n := r.Tree.Get(id)
		if n == nil {
			continue
		}
		ed, ok := n.Widget().(widget.Editor)
		if !ok || !ed.Dirty() {
			continue
		}
		if key := ed.Binding(); key != "" {
			r.Store.SetString(key, ed.Text())
		}
		ed.ClearDirty()
	}
}

// SyncStoreToOutputs refreshes every bound display widget from the
// store. An empty store rendering leaves the widget's current content
// alone. Runs immediately after every dispatch completes.
func (r *Runtime) SyncStoreToOutputs() {
	for _, id := range r.Tree.IDs() {
		n := r.Tree.Get(id)
		if n == nil {
			continue
		}
		d, ok := n.Widget().(widget.Display)
		if !ok {
			continue
		}
		key := d.Binding()
		if key == "" {
			continue
		}
		if v := r.Store.GetString(key); v != "" && v != d.Content() {
			d.SetContent(v)
		}
	}
}

func (r *Runtime) moveFocus(target tree.NodeID) {
	old, hadOld := r.Tree.Focused()
	if hadOld && old == target {
		return
	}
	if hadOld {
		r.deliver(old, widget.FocusLost())
	}
	r.Tree.SetFocused(target)
	r.deliver(target, widget.FocusGained())
}

func (r *Runtime) clearFocus() {
	if old, ok := r.Tree.Focused(); ok {
		r.deliver(old, widget.FocusLost())
	}
	r.Tree.SetFocused(tree.NodeID{})
}

func (r *Runtime) deliver(id tree.NodeID, ev widget.Event) bool {
	n := r.Tree.Get(id)
	if n == nil {
		return false
	}
	return n.Widget().OnEvent(ev)
}
