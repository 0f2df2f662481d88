package gui

import (
	"fmt"
	"strings"

	"github.com/thiagokokada/gitk-refs/internal/buildinfo"
	"github.com/thiagokokada/gitk-refs/internal/git"
	. "modernc.org/tk9.0"
)

func (a *Controller) initMenubar() {
	menubar := Menu(Tearoff(false))

	fileMenu := menubar.Menu(Tearoff(false))
	fileMenu.AddCommand(Lbl("Open Repository..."), Command(a.promptRepositorySwitch))
	fileMenu.AddCommand(Lbl("Manage Remotes..."), Command(func() { a.ManageRemotes("") }))
	fileMenu.AddSeparator()
	fileMenu.AddCommand(Lbl("Quit"), Command(func() { Destroy(App) }))
	menubar.AddCascade(Lbl("File"), Mnu(fileMenu))

	viewMenu := menubar.Menu(Tearoff(false))
	viewMenu.AddCommand(Lbl("Reload"), Command(a.reloadRefsAsync))
	viewMenu.AddCommand(Lbl("Expand All"), Command(a.ExpandAll))
	viewMenu.AddCommand(Lbl("Collapse All"), Command(a.CollapseAll))
	menubar.AddCascade(Lbl("View"), Mnu(viewMenu))

	helpMenu := menubar.Menu(Tearoff(false))
	helpMenu.AddCommand(Lbl("Keyboard Shortcuts"), Command(a.showShortcutsDialog))
	helpMenu.AddCommand(Lbl("About gitk-refs"), Command(a.showAboutDialog))
	menubar.AddCascade(Lbl("Help"), Mnu(helpMenu))

	App.Configure(Mnu(menubar))
}

func (a *Controller) promptRepositorySwitch() {
	dir := strings.TrimSpace(ChooseDirectory(
		Parent(App),
		Title("Select Git repository"),
		Initialdir(a.repo.path),
		Mustexist(true),
	))
	if dir == "" || dir == a.repo.path {
		return
	}
	a.switchRepository(dir)
}

func (a *Controller) showAboutDialog() {
	MessageBox(
		Parent(App),
		Title("About gitk-refs"),
		Icon("info"),
		Msg(fmt.Sprintf("gitk-refs %s", buildinfo.String())),
		Type("ok"),
	)
}

func (a *Controller) switchRepository(path string) {
	newSvc, err := git.Open(path)
	if err != nil {
		a.showError("Open Repository", fmt.Errorf("unable to open repository: %w", err))
		return
	}

	a.state.watch.mu.Lock()
	wasConfigured := a.state.watch.configured
	wasEnabled := a.state.watch.enabled
	a.state.watch.mu.Unlock()
	a.disableAutoReload()

	a.svc = newSvc
	a.repo.path = newSvc.RepoPath()
	a.repo.head = ""
	a.state.refs = refsState{}
	a.state.menus.actions.MouseClick(nil, 0)
	a.state.commits.branch = ""
	a.state.commits.gen++
	a.state.commits.render(nil)
	if a.ui.commitTitle != nil {
		a.ui.commitTitle.Configure(Txt(commitListTitle("")))
	}
	if a.state.remotes.window != nil {
		Destroy(a.state.remotes.window.Window)
	}
	a.updateRepoLabel()
	a.setStatus("Loading refs...")

	if wasConfigured && wasEnabled {
		if err := a.enableAutoReload(); err != nil {
			a.state.watch.mu.Lock()
			a.state.watch.configured = false
			a.state.watch.mu.Unlock()
			a.showError("Auto reload", err)
		}
	}
	a.updateReloadButtonLabel()
	a.reloadRefsAsync()
}
