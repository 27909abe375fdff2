// Package doctree provides the immutable document tree consumed by the
// Markdown renderer.
//
// Nodes live in an arena owned by a Tree and are addressed by NodeID. Each
// node records its parent and its position among the parent's children, so
// upward and sideways lookups never need owning back-pointers.
package doctree

// NodeID addresses a node inside a Tree.
type NodeID int32

// NoNode is the absent node: the parent of a root, the sibling after the last child.
const NoNode NodeID = -1

// Kind distinguishes the node variants.
type Kind uint8

// Kind values. The zero value is deliberately invalid so that an
// uninitialized node is detected as malformed.
const (
	KindInvalid Kind = iota
	KindText
	KindElement
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindElement:
		return "element"
	default:
		return "invalid"
	}
}

type node struct {
	kind     Kind
	tag      string
	text     string
	raw      string
	attrs    map[string]string
	children []NodeID
	parent   NodeID
	index    int
}

// Tree is an arena of nodes with an ordered list of top-level nodes.
type Tree struct {
	nodes []node
	roots []NodeID
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{}
}

// AddElement appends an element under parent (NoNode for a top-level node)
// and returns its id.
func (t *Tree) AddElement(parent NodeID, tag string, attrs map[string]string) NodeID {
	return t.add(parent, node{kind: KindElement, tag: tag, attrs: attrs})
}

// AddText appends a text leaf under parent (NoNode for a top-level node).
func (t *Tree) AddText(parent NodeID, text string) NodeID {
	return t.add(parent, node{kind: KindText, text: text})
}

// SetRaw records the raw markup an element was built from.
func (t *Tree) SetRaw(id NodeID, raw string) {
	if t.Valid(id) {
		t.nodes[id].raw = raw
	}
}

func (t *Tree) add(parent NodeID, n node) NodeID {
	id := NodeID(len(t.nodes))
	n.parent = NoNode
	if t.Valid(parent) && t.nodes[parent].kind == KindElement {
		n.parent = parent
		n.index = len(t.nodes[parent].children)
		t.nodes[parent].children = append(t.nodes[parent].children, id)
	} else {
		n.index = len(t.roots)
		t.roots = append(t.roots, id)
	}
	t.nodes = append(t.nodes, n)
	return id
}

// Roots returns the top-level nodes in document order.
func (t *Tree) Roots() []NodeID {
	return t.roots
}

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Valid reports whether id addresses a node of this tree.
func (t *Tree) Valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Kind returns the kind of id, KindInvalid for an id outside the arena.
func (t *Tree) Kind(id NodeID) Kind {
	if !t.Valid(id) {
		return KindInvalid
	}
	return t.nodes[id].kind
}

// IsText reports whether id is a text leaf.
func (t *Tree) IsText(id NodeID) bool {
	return t.Kind(id) == KindText
}

// IsElement reports whether id is an element.
func (t *Tree) IsElement(id NodeID) bool {
	return t.Kind(id) == KindElement
}

// IsElementTag reports whether id is an element with the given tag.
func (t *Tree) IsElementTag(id NodeID, tag string) bool {
	return t.IsElement(id) && t.nodes[id].tag == tag
}

// Tag returns the element tag, or "" for text and invalid ids.
func (t *Tree) Tag(id NodeID) string {
	if !t.Valid(id) {
		return ""
	}
	return t.nodes[id].tag
}

// Text returns the content of a text leaf.
func (t *Tree) Text(id NodeID) string {
	if !t.Valid(id) {
		return ""
	}
	return t.nodes[id].text
}

// Raw returns the raw markup recorded for an element.
func (t *Tree) Raw(id NodeID) string {
	if !t.Valid(id) {
		return ""
	}
	return t.nodes[id].raw
}

// Attr returns an attribute value and whether it is present.
func (t *Tree) Attr(id NodeID, key string) (string, bool) {
	if !t.Valid(id) {
		return "", false
	}
	v, ok := t.nodes[id].attrs[key]
	return v, ok
}

// Children returns the children of an element in order.
func (t *Tree) Children(id NodeID) []NodeID {
	if !t.Valid(id) {
		return nil
	}
	return t.nodes[id].children
}

// Parent returns the parent element, or NoNode for a root.
func (t *Tree) Parent(id NodeID) NodeID {
	if !t.Valid(id) {
		return NoNode
	}
	return t.nodes[id].parent
}

// ParentTag returns the tag of the parent element, or "" for a root.
func (t *Tree) ParentTag(id NodeID) string {
	return t.Tag(t.Parent(id))
}

// siblings returns the sequence id belongs to: its parent's children, or
// the roots when it has no parent.
func (t *Tree) siblings(id NodeID) []NodeID {
	if p := t.Parent(id); p != NoNode {
		return t.nodes[p].children
	}
	return t.roots
}

// NextSibling returns the node after id in its parent's children. A node
// without a parent has no next sibling.
func (t *Tree) NextSibling(id NodeID) NodeID {
	p := t.Parent(id)
	if p == NoNode {
		return NoNode
	}
	next := t.nodes[id].index + 1
	children := t.nodes[p].children
	if next >= len(children) {
		return NoNode
	}
	return children[next]
}

// IsFirstChild reports whether id is its parent's first child. Roots count
// as both first and last child.
func (t *Tree) IsFirstChild(id NodeID) bool {
	if t.Parent(id) == NoNode {
		return true
	}
	return t.nodes[id].index == 0
}

// IsLastChild reports whether id is its parent's last child.
func (t *Tree) IsLastChild(id NodeID) bool {
	if t.Parent(id) == NoNode {
		return true
	}
	return t.nodes[id].index == len(t.siblings(id))-1
}

// Ancestors calls fn for each ancestor of id, nearest first, until fn
// returns false.
func (t *Tree) Ancestors(id NodeID, fn func(NodeID) bool) {
	for cur := t.Parent(id); cur != NoNode; cur = t.Parent(cur) {
		if !fn(cur) {
			return
		}
	}
}
