// Package census holds the extension-count tree: its node type, the extension
// classifier, the shared insertion routine used by archive sources and the
// bottom-up aggregator.
package census

// Node is one directory of a filesystem walk or one path segment inside a container.
// Files are never nodes of their own; they are folded into the Counts of a node.
type Node struct {
	Name             string    `json:"name" yaml:"name"`
	Children         []*Node   `json:"children,omitempty" yaml:"children,omitempty"`
	Counts           ExtCounts `json:"counts" yaml:"counts"`
	PermissionDenied bool      `json:"permission_denied,omitempty" yaml:"permission_denied,omitempty"`
	Note             string    `json:"note,omitempty" yaml:"note,omitempty"`

	childByName map[string]*Node
}

func NewNode(name string) *Node {
	return &Node{
		Name:   name,
		Counts: make(ExtCounts),
	}
}

// Total returns the number of files counted at this node.
func (n *Node) Total() int {
	if n == nil {
		return 0
	}
	return n.Counts.Total()
}

// Child returns the direct child with exactly the given name.
func (n *Node) Child(name string) *Node {
	if n.childByName != nil {
		return n.childByName[name]
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// AddChild appends c and returns it.
func (n *Node) AddChild(c *Node) *Node {
	n.Children = append(n.Children, c)
	if n.childByName == nil {
		n.childByName = make(map[string]*Node, 1)
	}
	if _, exists := n.childByName[c.Name]; !exists {
		n.childByName[c.Name] = c
	}
	return c
}

// Find follows a slash separated path of child names starting at n.
// An empty path returns n itself.
func (n *Node) Find(segments ...string) *Node {
	cur := n
	for _, s := range segments {
		if cur = cur.Child(s); cur == nil {
			return nil
		}
	}
	return cur
}

// Walk visits n and its descendants depth first, parents before children.
// Returning false from visit skips the node's children.
func (n *Node) Walk(visit func(node *Node, depth int) bool) {
	type item struct {
		node  *Node
		depth int
	}
	stack := []item{{n, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visit(it.node, it.depth) {
			continue
		}
		for i := len(it.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, item{it.node.Children[i], it.depth + 1})
		}
	}
}
