package gui

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/thiagokokada/gitk-refs/internal/contextmenu"
	"github.com/thiagokokada/gitk-refs/internal/gui/tkutil"
	. "modernc.org/tk9.0"
)

// initRefMenus creates one Tk menu per context menu. Entries are filled in
// each time the menu pops up since their visibility depends on the node.
func (a *Controller) initRefMenus() {
	state := &a.state.menus
	state.widgets = make(map[*contextmenu.Menu]*MenuWidget)
	state.hints = make(map[*MenuWidget][]string)
	for _, m := range state.actions.Registry().Menus() {
		w := App.Menu(Tearoff(false))
		state.widgets[m] = w
		Bind(w, "<<MenuSelect>>", Command(func() { a.onMenuSelect(w) }))
	}
}

func (a *Controller) showRefContextMenu(e *Event) {
	if e == nil || a.ui.refTree == nil {
		return
	}
	actions := a.state.menus.actions
	node := a.nodeAt(e.X, e.Y)
	if id := a.idOf(node); id != "" {
		a.ui.refTree.Selection("set", id)
		a.ui.refTree.Focus(id)
	}
	actions.MouseClick(node, contextmenu.ButtonRight)
	opened, ok := actions.Open()
	if !ok {
		return
	}
	w := a.state.menus.widgets[opened.Menu]
	if w == nil {
		slog.Error("context menu without widget", slog.String("menu", opened.Menu.Name))
		return
	}
	a.fillMenu(w, opened)
	Popup(w.Window, e.XRoot, e.YRoot, nil)
}

func (a *Controller) fillMenu(w *MenuWidget, opened contextmenu.Opened) {
	if _, err := tkutil.Eval("%s delete 0 end", w); err != nil {
		slog.Error("clear context menu", slog.Any("error", err))
	}
	for _, it := range opened.Items {
		if it.Separator {
			w.AddSeparator()
			continue
		}
		item := it
		w.AddCommand(Lbl(item.Text), Command(func() { opened.Activate(item) }))
	}
	a.state.menus.hints[w] = menuHints(opened.Items)
}

// menuHints returns the tooltip of each rendered entry by menu index.
func menuHints(items []*contextmenu.Item) []string {
	hints := make([]string, len(items))
	for i, it := range items {
		if !it.Separator {
			hints[i] = it.ToolTip
		}
	}
	return hints
}

func (a *Controller) onMenuSelect(w *MenuWidget) {
	out := strings.TrimSpace(tkutil.EvalOrEmpty("%s index active", w))
	idx, err := strconv.Atoi(out)
	if err != nil {
		return
	}
	hints := a.state.menus.hints[w]
	if idx < 0 || idx >= len(hints) || hints[idx] == "" {
		return
	}
	a.ui.status.Configure(Txt(hints[idx]))
}
