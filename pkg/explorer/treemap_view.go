package explorer

import (
	"fmt"
	"math"

	"github.com/filetug/extcensus/pkg/census"
	"github.com/filetug/extcensus/pkg/render"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const noSubfoldersText = "No subfolders to plot."

// treemapView draws the children of a node as squarified tiles sized by
// their file totals.
type treemapView struct {
	*tview.Box
	node *census.Node
}

func newTreemapView() *treemapView {
	return &treemapView{Box: tview.NewBox()}
}

func (v *treemapView) SetNode(n *census.Node) {
	v.node = n
}

func (v *treemapView) Draw(screen tcell.Screen) {
	v.DrawForSubclass(screen, v)
	x, y, width, height := v.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}
	bounds := render.Rect{X: float64(x), Y: float64(y), W: float64(width), H: float64(height)}
	tiles := render.TreemapTiles(v.node, bounds)
	if len(tiles) == 0 {
		tview.Print(screen, noSubfoldersText, x, y+height/2, width, tview.AlignCenter, Style.CellTextColor)
		return
	}
	for i, tile := range tiles {
		x0, y0 := round(tile.Rect.X), round(tile.Rect.Y)
		x1, y1 := round(tile.Rect.X+tile.Rect.W), round(tile.Rect.Y+tile.Rect.H)
		if x1 <= x0 || y1 <= y0 {
			continue
		}
		style := tcell.StyleDefault.Background(tilePalette[i%len(tilePalette)]).Foreground(tcell.ColorBlack)
		for row := y0; row < y1; row++ {
			for col := x0; col < x1; col++ {
				screen.SetContent(col, row, ' ', nil, style)
			}
		}
		label := fmt.Sprintf("%s (%d)", tile.Node.Name, tile.Node.Total())
		tview.Print(screen, tview.Escape(label), x0, y0, x1-x0, tview.AlignLeft, tcell.ColorBlack)
	}
}

func round(f float64) int {
	return int(math.Round(f))
}
