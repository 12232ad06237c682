package render

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/filetug/extcensus/pkg/census"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
)

// TreemapRow is one node of a treemap. IDs join the names from the root with "/";
// the root has an empty Parent. Value is the node's subtree total, so a parent's
// value already includes its children.
type TreemapRow struct {
	ID     string `json:"id" yaml:"id"`
	Label  string `json:"label" yaml:"label"`
	Parent string `json:"parent" yaml:"parent"`
	Value  int    `json:"value" yaml:"value"`
	Depth  int    `json:"-" yaml:"-"`
}

// TreemapRows flattens root in pre-order.
func TreemapRows(root *census.Node) []TreemapRow {
	if root == nil {
		return nil
	}
	rows := make([]TreemapRow, 0)
	// ids[d] is the id of the last visited node at depth d.
	var ids []string
	root.Walk(func(n *census.Node, depth int) bool {
		var parentID string
		if depth > 0 {
			parentID = ids[depth-1]
		}
		id := n.Name
		if parentID != "" {
			id = parentID + "/" + n.Name
		}
		ids = append(ids[:depth], id)
		rows = append(rows, TreemapRow{
			ID:     id,
			Label:  n.Name,
			Parent: parentID,
			Value:  n.Total(),
			Depth:  depth,
		})
		return true
	})
	return rows
}

// TreemapTable lists TreemapRows with each node's share of its parent.
func TreemapTable(root *census.Node) string {
	rows := TreemapRows(root)
	values := lo.SliceToMap(rows, func(r TreemapRow) (string, int) {
		return r.ID, r.Value
	})

	t := table.NewWriter()
	if root != nil {
		t.SetTitle("Treemap – %s", root.Name)
	}
	t.AppendHeader(table.Row{"Folder", "Files", "Share"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	for _, r := range rows {
		share := "100.0%"
		if r.Parent != "" {
			share = percent(r.Value, values[r.Parent])
		}
		t.AppendRow(table.Row{strings.Repeat("  ", r.Depth) + r.Label, r.Value, share})
	}
	return t.Render()
}

func percent(part, whole int) string {
	if whole == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", float64(part)*100/float64(whole))
}

// Rect is an axis aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Area() float64 {
	return r.W * r.H
}

// Squarify lays values out inside r keeping tiles close to square
// (Bruls, Huizing, van Wijk). The result is in the order of values;
// non-positive values get an empty Rect.
func Squarify(values []float64, r Rect) []Rect {
	out := make([]Rect, len(values))
	if r.W <= 0 || r.H <= 0 {
		return out
	}
	order := make([]int, 0, len(values))
	total := 0.0
	for i, v := range values {
		if v > 0 {
			order = append(order, i)
			total += v
		}
	}
	if total == 0 {
		return out
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(values[b], values[a])
	})
	scale := r.Area() / total
	area := func(k int) float64 {
		return values[order[k]] * scale
	}

	rest := r
	for i := 0; i < len(order); {
		short := math.Min(rest.W, rest.H)
		j := i + 1
		rowSum := area(i)
		for j < len(order) {
			next := rowSum + area(j)
			if worstRatio(area(i), area(j), next, short) > worstRatio(area(i), area(j-1), rowSum, short) {
				break
			}
			rowSum = next
			j++
		}

		if rest.W >= rest.H {
			w := rowSum / rest.H
			y := rest.Y
			for k := i; k < j; k++ {
				h := area(k) / w
				out[order[k]] = Rect{X: rest.X, Y: y, W: w, H: h}
				y += h
			}
			rest.X += w
			rest.W -= w
		} else {
			h := rowSum / rest.W
			x := rest.X
			for k := i; k < j; k++ {
				w := area(k) / h
				out[order[k]] = Rect{X: x, Y: rest.Y, W: w, H: h}
				x += w
			}
			rest.Y += h
			rest.H -= h
		}
		i = j
	}
	return out
}

// worstRatio is the largest aspect ratio in a row whose biggest and smallest
// areas are maxArea and minArea, laid along a side of length side.
func worstRatio(maxArea, minArea, sum, side float64) float64 {
	s2 := sum * sum
	w2 := side * side
	return math.Max(w2*maxArea/s2, s2/(w2*minArea))
}

// Tile is one child of a node placed by Squarify.
type Tile struct {
	Node *census.Node
	Rect Rect
}

// TreemapTiles lays out the non-empty children of n inside r.
func TreemapTiles(n *census.Node, r Rect) []Tile {
	if n == nil {
		return nil
	}
	values := lo.Map(n.Children, func(c *census.Node, _ int) float64 {
		return float64(c.Total())
	})
	rects := Squarify(values, r)
	tiles := make([]Tile, 0, len(rects))
	for i, rect := range rects {
		if values[i] > 0 {
			tiles = append(tiles, Tile{Node: n.Children[i], Rect: rect})
		}
	}
	return tiles
}
