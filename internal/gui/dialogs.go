package gui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/thiagokokada/gitk-refs/internal/git"
	"github.com/thiagokokada/gitk-refs/internal/gui/tkutil"
	"github.com/thiagokokada/gitk-refs/internal/reftree"
	. "modernc.org/tk9.0"
)

type remotesDialogState struct {
	window  *ToplevelWidget
	list    *ListboxWidget
	remotes []git.Remote
}

// PromptName asks for a branch name and blocks until the dialog closes.
func (a *Controller) PromptName(title, initial string) (string, bool) {
	dialog := App.Toplevel()
	dialog.WmTitle(title)
	WmTransient(dialog.Window, App)

	frame := dialog.TFrame(Padding("12p"))
	Grid(frame, Row(0), Column(0), Sticky(NEWS))
	GridColumnConfigure(frame.Window, 0, Weight(1))

	Grid(frame.TLabel(Txt("Branch name:"), Anchor(W)), Row(0), Column(0), Sticky(W))
	entry := frame.TEntry(Width(48), Textvariable(initial))
	Grid(entry, Row(1), Column(0), Sticky(WE), Pady("4p 4p"))
	hint := frame.TLabel(Txt(""), Anchor(W))
	Grid(hint, Row(2), Column(0), Sticky(WE), Pady("0 8p"))

	var (
		result string
		ok     bool
	)
	accept := func() {
		name, err := validateBranchInput(entry.Textvariable())
		if err != nil {
			hint.Configure(Txt(err.Error()))
			return
		}
		result, ok = name, true
		Destroy(dialog.Window)
	}
	buttons := frame.TFrame()
	Grid(buttons, Row(3), Column(0), Sticky(E))
	cancelBtn := buttons.TButton(Txt("Cancel"), Command(func() { Destroy(dialog.Window) }))
	okBtn := buttons.TButton(Txt("OK"), Command(accept))
	Grid(cancelBtn, Row(0), Column(0), Sticky(E), Padx("0 8p"))
	Grid(okBtn, Row(0), Column(1), Sticky(E))

	Bind(dialog.Window, "<KeyPress-Return>", Command(accept))
	Bind(dialog.Window, "<KeyPress-Escape>", Command(func() { Destroy(dialog.Window) }))
	dialog.Center()

	for _, script := range []string{"focus %s", "%s selection range 0 end", "%s icursor end"} {
		if _, err := tkutil.Eval(script, entry); err != nil {
			slog.Debug("prompt entry", slog.Any("error", err))
		}
	}
	if _, err := tkutil.Eval("grab set %s", dialog); err != nil {
		slog.Debug("prompt grab", slog.Any("error", err))
	}
	if _, err := tkutil.Eval("tkwait window %s", dialog); err != nil {
		slog.Error("prompt wait", slog.Any("error", err))
	}
	return result, ok
}

func validateBranchInput(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", fmt.Errorf("enter a branch name")
	}
	if !git.ValidBranchName(name) {
		return "", fmt.Errorf("%q is not a valid branch name", name)
	}
	return name, nil
}

// Confirm asks a yes/no question. With confirm_delete off it always agrees.
func (a *Controller) Confirm(title, message string) bool {
	if !a.cfg.confirmDelete {
		return true
	}
	answer := MessageBox(
		Parent(App),
		Title(title),
		Icon("question"),
		Msg(message),
		Type("yesno"),
	)
	return answer == "yes"
}

// ManageRemotes opens the remotes dialog with remote selected.
func (a *Controller) ManageRemotes(remote string) {
	state := &a.state.remotes
	if state.window != nil {
		Destroy(state.window.Window)
		state.window = nil
	}
	dialog := App.Toplevel()
	state.window = dialog
	dialog.WmTitle("Manage remotes")
	WmTransient(dialog.Window, App)

	frame := dialog.TFrame(Padding("12p"))
	Grid(frame, Row(0), Column(0), Sticky(NEWS))
	GridColumnConfigure(frame.Window, 0, Weight(1))
	GridRowConfigure(frame.Window, 0, Weight(1))

	scroll := frame.TScrollbar()
	list := frame.Listbox(Exportselection(false), Height(8), Width(72))
	state.list = list
	list.Configure(Yscrollcommand(func(e *Event) { e.ScrollSet(scroll) }))
	Grid(list, Row(0), Column(0), Sticky(NEWS))
	Grid(scroll, Row(0), Column(1), Sticky(NS))
	scroll.Configure(Command(func(e *Event) { e.Yview(list) }))

	selected := func() (git.Remote, bool) {
		sel := list.Curselection()
		if len(sel) == 0 || sel[0] >= len(state.remotes) {
			return git.Remote{}, false
		}
		return state.remotes[sel[0]], true
	}
	withRemote := func(fn func(git.Remote)) func() {
		return func() {
			if r, ok := selected(); ok {
				fn(r)
			}
		}
	}

	buttons := frame.TFrame()
	Grid(buttons, Row(1), Column(0), Columnspan(2), Sticky(E), Pady("8p 0"))
	actions := []struct {
		label string
		fn    func(git.Remote)
	}{
		{label: "Fetch", fn: a.fetchRemote},
		{label: "Enable/Disable", fn: a.toggleRemote},
		{label: "Prune", fn: a.pruneRemote},
	}
	for i, act := range actions {
		btn := buttons.TButton(Txt(act.label), Command(withRemote(act.fn)))
		Grid(btn, Row(0), Column(i), Padx("0 8p"))
	}
	closeBtn := buttons.TButton(Txt("Close"), Command(func() { Destroy(dialog.Window) }))
	Grid(closeBtn, Row(0), Column(len(actions)))

	Bind(dialog.Window, "<KeyPress-Escape>", Command(func() { Destroy(dialog.Window) }))
	Bind(dialog.Window, "<Destroy>", Command(func() {
		if state.window == dialog {
			state.window = nil
			state.list = nil
		}
	}))
	a.refreshRemotesDialog(remote)
	dialog.Center()
}

func (a *Controller) refreshRemotesDialog(selectRemote string) {
	state := &a.state.remotes
	if state.window == nil || state.list == nil {
		return
	}
	if selectRemote == "" {
		if sel := state.list.Curselection(); len(sel) > 0 && sel[0] < len(state.remotes) {
			selectRemote = state.remotes[sel[0]].Name
		}
	}
	remotes, err := a.svc.Remotes()
	if err != nil {
		slog.Error("list remotes", slog.Any("error", err))
		a.showError("Manage remotes", err)
		return
	}
	state.remotes = remotes
	state.list.Delete(0, END)
	for _, r := range remotes {
		state.list.Insert(END, remoteLabel(r))
	}
	if idx := remoteIndex(remotes, selectRemote); idx >= 0 {
		state.list.SelectionSet(idx)
		state.list.Activate(idx)
		state.list.See(idx)
	}
}

func remoteLabel(r git.Remote) string {
	label := r.Name
	if len(r.URLs) > 0 {
		label += "  " + strings.Join(r.URLs, ", ")
	}
	if !r.Enabled {
		label += "  (disabled)"
	}
	return label
}

func remoteIndex(remotes []git.Remote, name string) int {
	if name == "" {
		return -1
	}
	for i, r := range remotes {
		if r.Name == name {
			return i
		}
	}
	return -1
}

func (a *Controller) remoteNode(name string) (*reftree.RemoteRepoNode, bool) {
	if a.state.refs.tree == nil {
		return nil, false
	}
	n, ok := a.state.refs.tree.Find(reftree.KindRemoteRepo, name)
	if !ok {
		return nil, false
	}
	remote, ok := n.(*reftree.RemoteRepoNode)
	return remote, ok
}

func (a *Controller) fetchRemote(r git.Remote) {
	if node, ok := a.remoteNode(r.Name); ok {
		node.Fetch()
	}
}

func (a *Controller) toggleRemote(r git.Remote) {
	node, ok := a.remoteNode(r.Name)
	if !ok {
		return
	}
	if r.Enabled {
		node.Disable()
		return
	}
	node.Enable(false)
}

func (a *Controller) pruneRemote(r git.Remote) {
	if node, ok := a.remoteNode(r.Name); ok {
		node.Prune()
	}
}
