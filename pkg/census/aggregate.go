package census

// Aggregate adds every node's descendant counts into its own Counts.
// It must run exactly once on a tree built with Insert.
// The traversal is post-order on an explicit stack, so deep trees do not
// grow the goroutine stack.
func Aggregate(root *Node) {
	if root == nil {
		return
	}
	type frame struct {
		node     *Node
		expanded bool
	}
	stack := []frame{{node: root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if !top.expanded {
			top.expanded = true
			for _, c := range top.node.Children {
				stack = append(stack, frame{node: c})
			}
			continue
		}
		n := top.node
		stack = stack[:len(stack)-1]
		if n.Counts == nil {
			n.Counts = make(ExtCounts)
		}
		for _, c := range n.Children {
			n.Counts.Merge(c.Counts)
		}
	}
}
