package gui

import (
	"fmt"
	"strings"

	"github.com/thiagokokada/gitk-refs/internal/reftree"
	. "modernc.org/tk9.0"
)

type shortcutBinding struct {
	sequences   []string
	display     string
	description string
	category    string
	handler     func()
}

func (a *Controller) bindShortcuts() {
	for _, sc := range a.shortcutBindings() {
		if sc.handler == nil {
			continue
		}
		for _, seq := range sc.sequences {
			if seq == "" {
				continue
			}
			Bind(App, seq, Command(sc.handler))
		}
	}
}

func (a *Controller) shortcutBindings() []shortcutBinding {
	return []shortcutBinding{
		{
			category:    "Ref tree",
			display:     "+",
			description: "Expand every node",
			sequences:   []string{"<KeyPress-plus>", "<KeyPress-KP_Add>"},
			handler:     a.ExpandAll,
		},
		{
			category:    "Ref tree",
			display:     "-",
			description: "Collapse every node",
			sequences:   []string{"<KeyPress-minus>", "<KeyPress-KP_Subtract>"},
			handler:     a.CollapseAll,
		},
		{
			category:    "Ref tree",
			display:     "Return",
			description: "Show the commits of the selected branch",
			sequences:   []string{"<KeyPress-Return>"},
			handler:     a.filterSelectedBranch,
		},
		{
			category:    "Ref tree",
			display:     "F2",
			description: "Rename the selected branch",
			sequences:   []string{"<F2>"},
			handler:     a.renameSelected,
		},
		{
			category:    "Ref tree",
			display:     "Delete",
			description: "Delete the selected branch or tag",
			sequences:   []string{"<KeyPress-Delete>"},
			handler:     a.deleteSelected,
		},
		{
			category:    "General",
			display:     "F5",
			description: "Reload refs",
			sequences:   []string{"<F5>"},
			handler:     a.reloadRefsAsync,
		},
		{
			category:    "General",
			display:     "F1",
			description: "Show shortcut list",
			sequences:   []string{"<F1>"},
			handler:     a.showShortcutsDialog,
		},
		{
			category:    "General",
			display:     "Ctrl+Q",
			description: "Quit gitk-refs",
			sequences:   []string{"<Control-KeyPress-q>"},
			handler:     func() { Destroy(App) },
		},
	}
}

func (a *Controller) selectedNode() reftree.Node {
	if a.ui.refTree == nil {
		return nil
	}
	sel := a.ui.refTree.Selection("")
	if len(sel) == 0 {
		return nil
	}
	return a.state.refs.rows[sel[0]]
}

func (a *Controller) filterSelectedBranch() {
	if branch, ok := a.selectedNode().(reftree.BranchNode); ok {
		a.state.commits.SetBranchFilter(branch.FullPath(), true)
	}
}

func (a *Controller) renameSelected() {
	if n, ok := a.selectedNode().(reftree.Renamable); ok {
		n.Rename()
	}
}

// deleteSelected leaves the checked out branch alone, like its menu does.
func (a *Controller) deleteSelected() {
	n, ok := a.selectedNode().(reftree.Deletable)
	if !ok {
		return
	}
	if b, ok := n.(reftree.BranchNode); ok && b.Active() {
		return
	}
	n.Delete()
}

func (a *Controller) showShortcutsDialog() {
	if a.state.shortcuts.window != nil {
		Destroy(a.state.shortcuts.window.Window)
		a.state.shortcuts.window = nil
	}
	dialog := App.Toplevel()
	a.state.shortcuts.window = dialog
	dialog.Window.WmTitle("Keyboard Shortcuts")
	WmTransient(dialog.Window, App)
	WmAttributes(dialog.Window, "-topmost", 1)

	frame := dialog.TFrame(Padding("12p"))
	Grid(frame, Row(0), Column(0), Sticky(NEWS))
	GridColumnConfigure(frame.Window, 0, Weight(1))
	GridRowConfigure(frame.Window, 1, Weight(1))

	header := frame.TLabel(Txt("Keyboard Shortcuts"), Anchor(W))
	Grid(header, Row(0), Column(0), Sticky(W), Pady("0 8p"))

	text := frame.Text(Width(56), Height(12), Wrap(WORD), Exportselection(false))
	text.Insert("1.0", formatShortcutsHelpText(a.shortcutBindings()))
	text.Configure(State("disabled"))
	Grid(text, Row(1), Column(0), Sticky(NEWS))

	closeBtn := frame.TButton(Txt("Close"), Command(func() { Destroy(dialog.Window) }))
	Grid(closeBtn, Row(2), Column(0), Sticky(E), Pady("8p 0"))

	Bind(dialog.Window, "<Destroy>", Command(func() {
		if a.state.shortcuts.window == dialog {
			a.state.shortcuts.window = nil
		}
	}))
	dialog.Window.Center()
}

func formatShortcutsHelpText(bindings []shortcutBinding) string {
	var b strings.Builder
	currentCategory := ""
	for _, sc := range bindings {
		if sc.category == "" || sc.display == "" || sc.description == "" {
			continue
		}
		if sc.category != currentCategory {
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			currentCategory = sc.category
			b.WriteString(currentCategory)
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "  %s: %s\n", sc.display, sc.description)
	}
	return strings.TrimRight(b.String(), "\n")
}
