// Package tree provides the widget tree: an arena of nodes addressed by
// stable ids, geometric hit testing, and the tree-wide interaction roles
// (hovered, pressed, focused).
//
// The tree is built once at startup by the skin builder and thereafter
// only mutated in place. Parent links are non-owning back-references used
// for lookup only; ownership always flows root-to-leaf through the
// ordered child lists.
package tree

import (
	"github.com/go-veneer/veneer/pkg/geometry"
	"github.com/go-veneer/veneer/pkg/widget"
)

// NodeID is an opaque, stable handle into the tree's arena. The zero
// NodeID never refers to a live node. IDs are generational: once a node
// is removed, its id is never resurrected by a later insert into the
// same slot.
type NodeID struct {
	index uint32
	gen   uint32
}

// IsZero reports whether the id is the zero handle.
func (id NodeID) IsZero() bool {
	return id == NodeID{}
}

// Node owns exactly one widget instance plus its bounds and links.
type Node struct {
	widget   widget.Widget
	bounds   geometry.Rect
	parent   NodeID
	children []NodeID
}

// Widget returns the widget instance owned by this node.
func (n *Node) Widget() widget.Widget {
	return n.widget
}

// Bounds returns the bounding rectangle in root coordinates.
func (n *Node) Bounds() geometry.Rect {
	return n.bounds
}

// SetBounds updates the bounding rectangle.
func (n *Node) SetBounds(r geometry.Rect) {
	n.bounds = r
}

// Parent returns the back-reference to the parent node, if any.
func (n *Node) Parent() (NodeID, bool) {
	return n.parent, !n.parent.IsZero()
}

// Children returns the ordered child ids. The order is paint order;
// hit testing walks it back-to-front.
func (n *Node) Children() []NodeID {
	return n.children
}

type slot struct {
	gen  uint32
	node *Node
}

// Tree is an arena of nodes with geometric hit testing and the three
// tree-wide interaction roles. At most one node holds each role at a
// time, and a held role always references a live node.
type Tree struct {
	slots []slot
	free  []uint32
	roots []NodeID

	hovered NodeID
	pressed NodeID
	focused NodeID
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{}
}

// Insert adds a node owning w with the given bounds under parent. A zero
// parent inserts a top-level root. Returns the zero id if parent is
// neither zero nor live.
func (t *Tree) Insert(parent NodeID, w widget.Widget, bounds geometry.Rect) NodeID {
	if !parent.IsZero() && t.Get(parent) == nil {
		return NodeID{}
	}

	n := &Node{widget: w, bounds: bounds, parent: parent}

	var id NodeID
	if len(t.free) > 0 {
		idx := t.free[len(t.free)-1]
		t.free = t.free[:len(t.free)-1]
		t.slots[idx].gen++
		t.slots[idx].node = n
		id = NodeID{index: idx, gen: t.slots[idx].gen}
	} else {
		// Generations start at 1 so the zero NodeID stays invalid.
		t.slots = append(t.slots, slot{gen: 1, node: n})
		id = NodeID{index: uint32(len(t.slots) - 1), gen: 1}
	}

	if parent.IsZero() {
		t.roots = append(t.roots, id)
	} else {
		p := t.Get(parent)
		p.children = append(p.children, id)
	}
	return id
}

// Get returns the node for id, or nil if the id is zero, stale, or was
// removed. Lookup is O(1).
func (t *Tree) Get(id NodeID) *Node {
	if id.IsZero() || int(id.index) >= len(t.slots) {
		return nil
	}
	s := t.slots[id.index]
	if s.gen != id.gen || s.node == nil {
		return nil
	}
	return s.node
}

// Remove deletes the node and its entire subtree, invalidating their ids
// for future lookups. Any interaction role referencing a removed node is
// cleared.
func (t *Tree) Remove(id NodeID) {
	n := t.Get(id)
	if n == nil {
		return
	}

	// Each child removal shrinks n.children through the parent link, so
	// recurse over a snapshot.
	children := append([]NodeID(nil), n.children...)
	for _, child := range children {
		t.Remove(child)
	}

	if n.parent.IsZero() {
		t.roots = removeID(t.roots, id)
	} else if p := t.Get(n.parent); p != nil {
		p.children = removeID(p.children, id)
	}

	t.slots[id.index].node = nil
	t.free = append(t.free, id.index)

	if t.hovered == id {
		t.hovered = NodeID{}
	}
	if t.pressed == id {
		t.pressed = NodeID{}
	}
	if t.focused == id {
		t.focused = NodeID{}
	}
}

func removeID(ids []NodeID, id NodeID) []NodeID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// IDs returns every live node id in insertion order. The binding sync
// uses this for its linear scans.
func (t *Tree) IDs() []NodeID {
	ids := make([]NodeID, 0, len(t.slots))
	for i, s := range t.slots {
		if s.node != nil {
			ids = append(ids, NodeID{index: uint32(i), gen: s.gen})
		}
	}
	return ids
}

// Len returns the number of live nodes.
func (t *Tree) Len() int {
	n := 0
	for _, s := range t.slots {
		if s.node != nil {
			n++
		}
	}
	return n
}

// HitTest returns the topmost node whose bounding rectangle contains the
// point. Later siblings stack above earlier ones, so children are tested
// in reverse order, descending before falling back to the node itself;
// the first matching leaf wins.
func (t *Tree) HitTest(x, y float64) (NodeID, bool) {
	p := geometry.Offset{X: x, Y: y}
	for i := len(t.roots) - 1; i >= 0; i-- {
		if id, ok := t.hitNode(t.roots[i], p); ok {
			return id, true
		}
	}
	return NodeID{}, false
}

func (t *Tree) hitNode(id NodeID, p geometry.Offset) (NodeID, bool) {
	n := t.Get(id)
	if n == nil {
		return NodeID{}, false
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		if hit, ok := t.hitNode(n.children[i], p); ok {
			return hit, true
		}
	}
	if n.bounds.Contains(p) {
		return id, true
	}
	return NodeID{}, false
}

// Hovered returns the hovered node, if any.
func (t *Tree) Hovered() (NodeID, bool) {
	return t.hovered, !t.hovered.IsZero()
}

// SetHovered updates the hovered role. A zero or dead id clears it.
func (t *Tree) SetHovered(id NodeID) {
	t.hovered = t.validate(id)
}

// Pressed returns the pressed node, if any. Pressed is only meaningful
// while the pointer button remains down after a press over a node.
func (t *Tree) Pressed() (NodeID, bool) {
	return t.pressed, !t.pressed.IsZero()
}

// SetPressed updates the pressed role. A zero or dead id clears it.
func (t *Tree) SetPressed(id NodeID) {
	t.pressed = t.validate(id)
}

// Focused returns the focused node, if any.
func (t *Tree) Focused() (NodeID, bool) {
	return t.focused, !t.focused.IsZero()
}

// SetFocused updates the focused role. A zero or dead id clears it.
func (t *Tree) SetFocused(id NodeID) {
	t.focused = t.validate(id)
}

func (t *Tree) validate(id NodeID) NodeID {
	if t.Get(id) == nil {
		return NodeID{}
	}
	return id
}
