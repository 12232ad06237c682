// Package explorer is the interactive terminal front end: a form to pick a
// folder or archive, a folder tree and per folder views of the census.
package explorer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/filetug/extcensus/pkg/census"
	"github.com/filetug/extcensus/pkg/fsutils"
	"github.com/filetug/extcensus/pkg/render"
	"github.com/filetug/extcensus/pkg/sources"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"
)

var buildCensus = sources.Build

const (
	tabSummary  = "summary"
	tabBars     = "bars"
	tabTreemap  = "treemap"
	tabDocument = "yaml"
)

type Options struct {
	Path     string
	TopK     int
	MaxDepth int // < 0 is unlimited
	Sources  []sources.Option

	// LastPath prefills the path input when Path is empty.
	LastPath string
	// OnAnalyzed is called with the normalized path after every successful analysis.
	OnAnalyzed func(path string)
}

type Explorer struct {
	*tview.Flex
	app  App
	opts Options

	form       *tview.Form
	pathInput  *tview.InputField
	depthInput *tview.InputField
	topKInput  *tview.InputField
	status     *tview.TextView

	tree     *tview.TreeView
	extTable *tview.Table
	tabs     *tabs
	summary  *tview.TextView
	bars     *tview.TextView
	treemap  *treemapView
	document *tview.TextView

	root     *census.Node
	current  *census.Node
	topK     int
	maxDepth int

	cancel     context.CancelFunc
	generation int
}

func New(app App, opts Options) *Explorer {
	e := &Explorer{
		Flex:     tview.NewFlex().SetDirection(tview.FlexRow),
		app:      app,
		opts:     opts,
		topK:     opts.TopK,
		maxDepth: opts.MaxDepth,
	}

	initialPath := opts.Path
	if initialPath == "" {
		initialPath = opts.LastPath
	}
	e.pathInput = tview.NewInputField().SetLabel("Path ").SetText(initialPath).SetFieldWidth(48)
	e.pathInput.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter {
			e.Analyze()
		}
	})
	depthText := ""
	if opts.MaxDepth >= 0 {
		depthText = strconv.Itoa(opts.MaxDepth)
	}
	e.depthInput = tview.NewInputField().SetLabel("Max depth ").SetText(depthText).SetFieldWidth(5)
	e.topKInput = tview.NewInputField().SetLabel("Top-K ").SetText(strconv.Itoa(opts.TopK)).SetFieldWidth(4)

	e.form = tview.NewForm().SetHorizontal(true)
	e.form.AddFormItem(e.pathInput)
	e.form.AddFormItem(e.depthInput)
	e.form.AddFormItem(e.topKInput)
	e.form.AddButton("Analyze", e.Analyze)

	e.status = tview.NewTextView().SetDynamicColors(true)

	e.tree = tview.NewTreeView()
	e.tree.SetBorder(true).SetTitle(" Folders ")
	e.tree.SetChangedFunc(func(node *tview.TreeNode) {
		if n, ok := node.GetReference().(*census.Node); ok {
			e.selectNode(n)
		}
	})
	e.tree.SetInputCapture(e.treeInputCapture)
	e.tree.SetFocusFunc(func() { e.tree.SetBorderColor(Style.FocusedBorderColor) })
	e.tree.SetBlurFunc(func() { e.tree.SetBorderColor(Style.BlurBorderColor) })

	e.extTable = tview.NewTable()
	e.extTable.SetBorder(true).SetTitle(" File types ")
	e.extTable.SetSelectable(true, false)
	e.extTable.SetSelectedStyle(tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhiteSmoke))
	e.extTable.SetInputCapture(e.extTableInputCapture)
	e.extTable.SetFocusFunc(func() { e.extTable.SetBorderColor(Style.FocusedBorderColor) })
	e.extTable.SetBlurFunc(func() { e.extTable.SetBorderColor(Style.BlurBorderColor) })

	e.summary = tview.NewTextView()
	e.bars = tview.NewTextView().SetWrap(false)
	e.treemap = newTreemapView()
	e.document = tview.NewTextView().SetDynamicColors(true)

	e.tabs = newTabs()
	e.tabs.SetBorder(true)
	e.tabs.AddTab(tabSummary, "Summary", e.summary)
	e.tabs.AddTab(tabBars, "Bars", e.bars)
	e.tabs.AddTab(tabTreemap, "Treemap", e.treemap)
	e.tabs.AddTab(tabDocument, "YAML", e.document)

	right := tview.NewFlex().SetDirection(tview.FlexRow)
	right.AddItem(e.extTable, 0, 1, false)
	right.AddItem(e.tabs, 0, 2, false)

	body := tview.NewFlex()
	body.AddItem(e.tree, 0, 1, true)
	body.AddItem(right, 0, 2, false)

	e.AddItem(e.form, 3, 0, true)
	e.AddItem(e.status, 1, 0, false)
	e.AddItem(body, 0, 1, false)

	e.setStatus("Enter a folder or archive path and press Enter.", false)
	return e
}

// Analyze validates the form and builds the census in the background.
// A newer call supersedes a running one.
func (e *Explorer) Analyze() {
	path := strings.TrimSpace(e.pathInput.GetText())
	if path == "" {
		e.setStatus("Enter a folder or archive path.", true)
		return
	}
	maxDepth, err := parseMaxDepth(e.depthInput.GetText())
	if err != nil {
		e.setStatus(err.Error(), true)
		return
	}
	topK, err := parseTopK(e.topKInput.GetText())
	if err != nil {
		e.setStatus(err.Error(), true)
		return
	}

	if e.cancel != nil {
		e.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.generation++
	generation := e.generation
	normalized := fsutils.NormalizePath(path)
	e.setStatus("Analyzing "+normalized+"…", false)

	go func() {
		root, err := buildCensus(ctx, path, e.opts.Sources...)
		e.app.QueueUpdateDraw(func() {
			if generation != e.generation {
				return
			}
			cancel()
			e.cancel = nil
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					logrus.WithError(err).WithField("path", normalized).Warn("analysis failed")
					e.setStatus("Error: "+err.Error(), true)
				}
				return
			}
			e.topK, e.maxDepth = topK, maxDepth
			e.SetRoot(root)
			e.setStatus(fmt.Sprintf("%s  (%d files)", normalized, root.Total()), false)
			e.app.SetFocus(e.tree)
			if e.opts.OnAnalyzed != nil {
				e.opts.OnAnalyzed(normalized)
			}
		})
	}()
}

// Root returns the tree shown by the explorer.
func (e *Explorer) Root() *census.Node {
	return e.root
}

// Current returns the node whose details are shown.
func (e *Explorer) Current() *census.Node {
	return e.current
}

func (e *Explorer) setStatus(text string, isError bool) {
	e.status.SetText(tview.Escape(text))
	if isError {
		e.status.SetTextColor(Style.ErrorColor)
	} else {
		e.status.SetTextColor(Style.CellTextColor)
	}
}

func (e *Explorer) selectNode(n *census.Node) {
	e.current = n
	e.updateExtTable(n)

	e.summary.SetText(render.Summary(n, render.TreeOptions{TopK: e.topK, MaxDepth: e.maxDepth}))
	e.summary.ScrollToBeginning()

	chart, err := render.BarChart(n, e.topK)
	if errors.Is(err, render.ErrNoSubfolders) {
		chart = noSubfoldersText
	}
	e.bars.SetText(chart)
	e.bars.ScrollToBeginning()

	e.treemap.SetNode(n)

	var doc bytes.Buffer
	if err = render.Encode(&doc, n, render.YAMLFormat); err != nil {
		e.document.SetText(tview.Escape(err.Error()))
	} else {
		e.document.SetText(colorizeYAML(doc.String()))
	}
	e.document.ScrollToBeginning()
}

func (e *Explorer) treeInputCapture(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyRight:
		e.app.SetFocus(e.extTable)
		return nil
	case tcell.KeyEscape:
		e.app.SetFocus(e.pathInput)
		return nil
	case tcell.KeyRune:
		if r := event.Rune(); r >= '1' && r <= '9' {
			e.tabs.SwitchToIndex(int(r - '1'))
			return nil
		}
	}
	return event
}

func (e *Explorer) extTableInputCapture(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyLeft, tcell.KeyEscape:
		e.app.SetFocus(e.tree)
		return nil
	}
	return event
}

func parseMaxDepth(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return -1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("max depth must be a non-negative integer or blank, got %q", s)
	}
	return n, nil
}

func parseTopK(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return render.DefaultTopK, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("top-K must be a non-negative integer, got %q", s)
	}
	return n, nil
}
