// Package uitest provides a test harness that drives a runtime with
// synthetic pointer and keyboard input, without any rendering or host
// window. Tests build a tree, wrap it in a Tester, and script
// interactions against it.
package uitest

import (
	"fmt"

	"github.com/go-veneer/veneer/pkg/runtime"
	"github.com/go-veneer/veneer/pkg/tree"
	"github.com/go-veneer/veneer/pkg/widget"
)

// Tester drives a runtime with synthetic input events.
type Tester struct {
	// Runtime is the engine under test.
	Runtime *runtime.Runtime
}

// New wraps a runtime in a tester.
func New(rt *runtime.Runtime) *Tester {
	return &Tester{Runtime: rt}
}

// MoveTo moves the pointer to the given root coordinates.
func (t *Tester) MoveTo(x, y float64) {
	t.Runtime.PointerMoved(x, y)
}

// Press sends a pointer-button-down at the current hover position.
func (t *Tester) Press() {
	t.Runtime.PointerPressed()
}

// Release sends a pointer-button-up.
func (t *Tester) Release() {
	t.Runtime.PointerReleased()
}

// TapAt moves to the position, presses, and releases.
func (t *Tester) TapAt(x, y float64) {
	t.MoveTo(x, y)
	t.Press()
	t.Release()
}

// Tap taps the center of the node's bounds.
func (t *Tester) Tap(id tree.NodeID) error {
	n := t.Runtime.Tree.Get(id)
	if n == nil {
		return fmt.Errorf("Tap: node does not exist")
	}
	c := n.Bounds().Center()
	t.TapAt(c.X, c.Y)
	return nil
}

// TypeText delivers each rune of s as character input to the focused
// widget. Runes outside printable ASCII are dropped by the runtime,
// matching real key translation.
func (t *Tester) TypeText(s string) {
	for _, c := range s {
		t.Runtime.KeyPressed(widget.CharInput(c))
	}
}

// PressKey delivers one key from the closed vocabulary to the focused
// widget and reports whether it was consumed.
func (t *Tester) PressKey(k widget.Key) bool {
	return t.Runtime.KeyPressed(widget.KeyDown(k))
}

// FindByBinding returns the first node whose widget is bound to the
// given store key, in insertion order.
func (t *Tester) FindByBinding(binding string) (tree.NodeID, bool) {
	for _, id := range t.Runtime.Tree.IDs() {
		n := t.Runtime.Tree.Get(id)
		if n == nil {
			continue
		}
		if b, ok := n.Widget().(widget.Binder); ok && b.Binding() == binding {
			return id, true
		}
	}
	return tree.NodeID{}, false
}

// FindByAction returns the first node whose widget carries the given
// action name, in insertion order.
func (t *Tester) FindByAction(name string) (tree.NodeID, bool) {
	for _, id := range t.Runtime.Tree.IDs() {
		n := t.Runtime.Tree.Get(id)
		if n == nil {
			continue
		}
		if a, ok := n.Widget().(widget.Actionable); ok && a.Action() == name {
			return id, true
		}
	}
	return tree.NodeID{}, false
}
