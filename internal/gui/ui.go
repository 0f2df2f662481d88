package gui

import (
	"fmt"
	"log/slog"

	"github.com/thiagokokada/gitk-refs/internal/gui/tkutil"
	. "modernc.org/tk9.0"
)

func (a *Controller) buildUI() {
	a.initMenubar()
	GridColumnConfigure(App, 0, Weight(1))
	GridRowConfigure(App, 1, Weight(1))

	controls := App.TFrame(Padding("8p"))
	Grid(controls, Row(0), Column(0), Sticky(WE))
	GridColumnConfigure(controls.Window, 0, Weight(1))

	a.ui.repoLabel = controls.TLabel(Txt(""), Anchor(W))
	Grid(a.ui.repoLabel, Row(0), Column(0), Sticky(W))
	a.ui.reloadButton = controls.TButton(Txt("Reload"), Command(a.onReloadButton))
	Grid(a.ui.reloadButton, Row(0), Column(1), Sticky(E))

	pane := App.TPanedwindow(Orient(HORIZONTAL))
	Grid(pane, Row(1), Column(0), Sticky(NEWS), Padx("4p"), Pady("4p"))

	refArea := pane.TFrame()
	commitArea := pane.TFrame()
	pane.Add(refArea.Window)
	pane.Add(commitArea.Window)
	if _, err := tkutil.Eval("%s pane %s -weight 1", pane, refArea.Window); err != nil {
		slog.Debug("pane weight", slog.Any("error", err))
	}
	if _, err := tkutil.Eval("%s pane %s -weight 2", pane, commitArea.Window); err != nil {
		slog.Debug("pane weight", slog.Any("error", err))
	}

	GridRowConfigure(refArea.Window, 0, Weight(1))
	GridColumnConfigure(refArea.Window, 0, Weight(1))
	refScroll := refArea.TScrollbar()
	a.ui.refTree = refArea.TTreeview(
		Show("tree"),
		Selectmode("browse"),
		Height(24),
		Yscrollcommand(func(e *Event) { e.ScrollSet(refScroll) }),
	)
	Grid(a.ui.refTree, Row(0), Column(0), Sticky(NEWS))
	Grid(refScroll, Row(0), Column(1), Sticky(NS))
	refScroll.Configure(Command(func(e *Event) { e.Yview(a.ui.refTree) }))
	a.configureRefTreeTags()
	a.bindRefTree()
	a.initRefMenus()

	GridRowConfigure(commitArea.Window, 1, Weight(1))
	GridColumnConfigure(commitArea.Window, 0, Weight(1))
	a.ui.commitTitle = commitArea.TLabel(Txt(commitListTitle("")), Anchor(W), Padding("4p"))
	Grid(a.ui.commitTitle, Row(0), Column(0), Columnspan(2), Sticky(WE))
	commitScroll := commitArea.TScrollbar()
	a.ui.commitList = commitArea.TTreeview(
		Show("headings"),
		Columns("commit author date"),
		Selectmode("browse"),
		Yscrollcommand(func(e *Event) { e.ScrollSet(commitScroll) }),
	)
	a.ui.commitList.Column("commit", Anchor(W), Width(420))
	a.ui.commitList.Column("author", Anchor(W), Width(240))
	a.ui.commitList.Column("date", Anchor(W), Width(140))
	a.ui.commitList.Heading("commit", Txt("Commit"))
	a.ui.commitList.Heading("author", Txt("Author"))
	a.ui.commitList.Heading("date", Txt("Date"))
	Grid(a.ui.commitList, Row(1), Column(0), Sticky(NEWS))
	Grid(commitScroll, Row(1), Column(1), Sticky(NS))
	commitScroll.Configure(Command(func(e *Event) { e.Yview(a.ui.commitList) }))

	a.ui.status = App.TLabel(Anchor(W), Relief(SUNKEN), Padding("4p"))
	Grid(a.ui.status, Row(2), Column(0), Sticky(WE))

	a.updateRepoLabel()
	a.bindShortcuts()
}

func (a *Controller) updateRepoLabel() {
	if a.ui.repoLabel == nil {
		return
	}
	head := a.repo.head
	if head == "" {
		head = "detached HEAD"
	}
	a.ui.repoLabel.Configure(Txt(fmt.Sprintf("Repository: %s (%s)", a.repo.path, head)))
}
