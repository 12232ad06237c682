package explorer

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"
)

type tab struct {
	id    string
	title string
}

// tabs is a one line tab bar over a set of pages. Tabs are switched by
// clicking their title or with SwitchTo.
type tabs struct {
	*tview.Flex
	bar     *tview.TextView
	pages   *tview.Pages
	tabs    []tab
	current string
}

func newTabs() *tabs {
	t := &tabs{
		Flex:  tview.NewFlex().SetDirection(tview.FlexRow),
		bar:   tview.NewTextView(),
		pages: tview.NewPages(),
	}
	t.bar.SetDynamicColors(true)
	t.bar.SetRegions(true)
	t.bar.SetWrap(false)
	t.bar.SetHighlightedFunc(func(added, _, _ []string) {
		if len(added) > 0 {
			t.SwitchTo(added[0])
		}
	})
	t.AddItem(t.bar, 1, 0, false)
	t.AddItem(t.pages, 0, 1, true)
	return t
}

func (t *tabs) AddTab(id, title string, content tview.Primitive) {
	t.tabs = append(t.tabs, tab{id: id, title: title})
	t.pages.AddPage(id, content, true, len(t.tabs) == 1)
	t.updateBar()
	if len(t.tabs) == 1 {
		t.SwitchTo(id)
	}
}

func (t *tabs) SwitchTo(id string) {
	if t.current == id {
		return
	}
	t.current = id
	t.pages.SwitchToPage(id)
	t.bar.Highlight(id)
}

// SwitchToIndex selects the i-th tab, ignoring out of range indexes.
func (t *tabs) SwitchToIndex(i int) {
	if i >= 0 && i < len(t.tabs) {
		t.SwitchTo(t.tabs[i].id)
	}
}

func (t *tabs) Current() string {
	return t.current
}

func (t *tabs) updateBar() {
	titles := make([]string, 0, len(t.tabs))
	for i, tb := range t.tabs {
		titles = append(titles, fmt.Sprintf(`["%s"] %d %s [""]`, tb.id, i+1, tb.title))
	}
	t.bar.SetText(strings.Join(titles, "│"))
	if t.current != "" {
		t.bar.Highlight(t.current)
	}
}
