package explorer

import (
	"fmt"

	"github.com/filetug/extcensus/pkg/census"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

func filesText(count int) string {
	if count == 1 {
		return "[ghostwhite]1[-] file "
	}
	return fmt.Sprintf("[ghostwhite]%d[-] files", count)
}

// updateExtTable lists the counts of n grouped by kind, with the language
// chroma associates with each extension.
func (e *Explorer) updateExtTable(n *census.Node) {
	t := e.extTable
	t.Clear()

	header := []string{"Extension", "Files", "Language"}
	for col, title := range header {
		t.SetCell(0, col, tview.NewTableCell(title).
			SetTextColor(tcell.ColorWhiteSmoke).
			SetSelectable(false))
	}
	t.SetFixed(1, 0)

	row := 1
	for _, g := range census.Groups(n.Counts) {
		nameCell := tview.NewTableCell("▼ " + g.Title).SetExpansion(1)
		nameCell.SetReference(g)
		nameCell.SetBackgroundColor(Style.GroupBackgroundColor)
		t.SetCell(row, 0, nameCell)
		countCell := tview.NewTableCell(filesText(g.Count)).SetAlign(tview.AlignRight).SetTextColor(Style.CellTextColor)
		countCell.SetBackgroundColor(Style.GroupBackgroundColor)
		t.SetCell(row, 1, countCell)
		t.SetCell(row, 2, tview.NewTableCell("").SetBackgroundColor(Style.GroupBackgroundColor))
		row++

		for _, ec := range g.Exts {
			name := "  *" + ec.Ext
			if ec.Ext == census.NoExt {
				name = "  <no extension>"
			}
			extCell := tview.NewTableCell(tview.Escape(name)).SetExpansion(1).SetTextColor(ExtColor(ec.Ext))
			extCell.SetReference(ec.Ext)
			t.SetCell(row, 0, extCell)
			t.SetCell(row, 1, tview.NewTableCell(filesText(ec.Count)).SetAlign(tview.AlignRight).SetTextColor(Style.CellTextColor))
			t.SetCell(row, 2, tview.NewTableCell(" "+census.Language(ec.Ext)).SetTextColor(Style.CellTextColor))
			row++
		}
	}
	if row > 1 {
		t.Select(1, 0)
	}
	t.ScrollToBeginning()
}
