package explorer

import "github.com/rivo/tview"

// App is the part of *tview.Application the explorer needs.
type App interface {
	QueueUpdateDraw(f func())
	SetFocus(p tview.Primitive)
}

type tviewApp struct {
	*tview.Application
}

func (a tviewApp) QueueUpdateDraw(f func()) {
	_ = a.Application.QueueUpdateDraw(f)
}

func (a tviewApp) SetFocus(p tview.Primitive) {
	_ = a.Application.SetFocus(p)
}

// SetupApp makes an explorer the root of app. When opts.Path is set the
// analysis starts right away.
func SetupApp(app *tview.Application, opts Options) *Explorer {
	app.EnableMouse(true)
	e := New(tviewApp{app}, opts)
	app.SetRoot(e, true)
	app.SetFocus(e.pathInput)
	if opts.Path != "" {
		e.Analyze()
	}
	return e
}
