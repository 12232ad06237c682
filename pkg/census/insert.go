package census

import "strings"

// Insert records one file with extension ext under root.
// dirs holds the path segments leading to the file, without the file name.
// Missing nodes are created in first-seen order and the count lands on the
// file's immediate parent; Aggregate rolls it up later.
func Insert(root *Node, dirs []string, ext string) *Node {
	cur := root
	for _, name := range dirs {
		next := cur.Child(name)
		if next == nil {
			next = cur.AddChild(NewNode(name))
		}
		cur = next
	}
	cur.Counts.Add(ext, 1)
	return cur
}

// SplitEntryPath splits an archive member name on "/" and drops empty and "." segments.
func SplitEntryPath(name string) []string {
	raw := strings.Split(name, "/")
	segments := raw[:0]
	for _, s := range raw {
		if s == "" || s == "." {
			continue
		}
		segments = append(segments, s)
	}
	return segments
}

// InsertEntry inserts an archive member by its full name.
// It reports false when the name has no segments left.
func InsertEntry(root *Node, name string) bool {
	segments := SplitEntryPath(name)
	if len(segments) == 0 {
		return false
	}
	last := len(segments) - 1
	Insert(root, segments[:last], ExtOf(segments[last]))
	return true
}
