// Package suite provides the static test tree and the per-leaf execution
// context. A tree is composed once, before the run starts, from leaves
// (named runnable tests) and groups (named ordered collections); it is
// read-only during traversal.
package suite

// Func is a leaf body. It receives the leaf's fresh Context and reports
// its fault, if any, through the returned error or a panic; a nil return
// with no flags set means the leaf passed.
type Func func(c *Context) error

// Node is a two-variant tagged union: a leaf carries a non-nil Run and no
// children, a group carries children and a nil Run. The runner matches on
// IsLeaf explicitly.
type Node struct {
	Name     string
	Run      Func
	Children []*Node
}

// Leaf builds a runnable test bound to a name.
func Leaf(name string, fn Func) *Node {
	if fn == nil {
		panic("suite: leaf requires a body")
	}
	return &Node{Name: name, Run: fn}
}

// Group builds a named collection of child nodes. Sibling ordinals follow
// declaration order, so the sibling-ordinal invariant holds by
// construction; duplicate names among siblings are permitted and are told
// apart by ordinal alone.
func Group(name string, children ...*Node) *Node {
	return &Node{Name: name, Children: children}
}

// IsLeaf reports which variant the node is.
func (n *Node) IsLeaf() bool {
	return n.Run != nil
}
