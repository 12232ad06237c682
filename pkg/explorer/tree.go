package explorer

import (
	"fmt"

	"github.com/filetug/extcensus/pkg/census"
	"github.com/rivo/tview"
)

// SetRoot replaces the folder tree. Levels deeper than the max depth
// are not shown; the root is selected.
func (e *Explorer) SetRoot(root *census.Node) {
	e.root = root
	if root == nil {
		e.tree.SetRoot(nil)
		e.current = nil
		return
	}

	// parents[d] is the tree item of the last visited node at depth d.
	var parents []*tview.TreeNode
	root.Walk(func(n *census.Node, depth int) bool {
		treeNode := newTreeNode(n)
		if depth > 0 {
			parents[depth-1].AddChild(treeNode)
		}
		parents = append(parents[:depth], treeNode)
		return e.maxDepth < 0 || depth < e.maxDepth
	})
	rootItem := parents[0]

	e.tree.SetRoot(rootItem)
	e.tree.SetCurrentNode(rootItem)
	e.selectNode(root)
}

func newTreeNode(n *census.Node) *tview.TreeNode {
	var text string
	if n.PermissionDenied {
		text = fmt.Sprintf("%s (permission denied)", n.Name)
	} else {
		text = fmt.Sprintf("%s (%d)", n.Name, n.Total())
	}
	treeNode := tview.NewTreeNode(tview.Escape(text))
	treeNode.SetReference(n)
	treeNode.SetSelectable(true)
	switch {
	case n.PermissionDenied:
		treeNode.SetColor(Style.ErrorColor)
	case n.Note != "":
		treeNode.SetColor(Style.CellTextColor)
	}
	return treeNode
}
