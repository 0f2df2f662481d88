package contextmenu

import (
	"errors"

	"github.com/thiagokokada/gitk-refs/internal/reftree"
)

// Host collects what the menus need from the surrounding program.
type Host interface {
	TreeActions
	Reload()
	ManageRemotes(remote string)
}

// BranchFilter narrows the commit list to one branch.
type BranchFilter interface {
	SetBranchFilter(path string, refresh bool)
}

// Menus holds the menus created by Setup.
type Menus struct {
	Branch       *Menu
	BranchPath   *Menu
	RemoteBranch *Menu
	RemoteRepo   *Menu
	Tag          *Menu
	Header       *Menu
	Default      *Menu
}

// Setup creates, composes and registers the menu of every node kind and
// returns the controller driving them.
func Setup(host Host, filter BranchFilter) (*Actions, Menus, error) {
	menus := Menus{
		Branch:       NewMenu("branch"),
		BranchPath:   NewMenu("branch-path"),
		RemoteBranch: NewMenu("remote-branch"),
		RemoteRepo:   NewMenu("remote"),
		Tag:          NewMenu("tag"),
		Header:       NewMenu("header"),
		Default:      NewMenu("default"),
	}
	filterItem := NewItem(
		"Filter in revision grid",
		"Show only the commits reachable from this branch",
		"filter",
		On(func(b reftree.BranchNode) { filter.SetBranchFilter(b.FullPath(), true) }),
	)

	localEntries := LocalBranchEntries()
	menus.Branch.Append(filterItem)
	Compose(menus.Branch, localEntries.Items(), nil)

	menus.BranchPath.Append(NewItem(
		"Delete all branches", "Delete every branch in this group", "branch-delete",
		On((*reftree.BranchPathNode).DeleteAll),
	))

	remoteSep := NewSeparator()
	menus.RemoteBranch.Append(
		NewItem("Fetch", "Fetch this branch", "fetch", On((*reftree.RemoteBranchNode).Fetch)),
		NewItem("Pull", "Fetch this branch and merge it into the current branch", "pull",
			On((*reftree.RemoteBranchNode).FetchAndMerge)),
		filterItem,
		NewItem("Fetch and checkout", "Fetch this branch and check out its local branch", "checkout",
			On((*reftree.RemoteBranchNode).FetchAndCheckout)),
		NewItem("Fetch and create branch...", "Fetch this branch and create a local branch from it", "branch-create",
			On((*reftree.RemoteBranchNode).FetchAndCreateBranch)),
		NewItem("Fetch and rebase", "Fetch this branch and rebase the current branch on it", "rebase",
			On((*reftree.RemoteBranchNode).FetchAndRebase)),
		remoteSep,
	)
	Compose(menus.RemoteBranch, RemoteBranchEntries().Items(), remoteSep)

	fetchAll := NewItem("Fetch all branches", "Fetch every branch of this remote", "fetch",
		On((*reftree.RemoteRepoNode).Fetch))
	enable := NewItem("Enable", "Include this remote in fetches", "enable",
		On(func(n *reftree.RemoteRepoNode) { n.Enable(false) }))
	enableFetch := NewItem("Enable and fetch", "Include this remote in fetches and fetch it now", "enable",
		On(func(n *reftree.RemoteRepoNode) { n.Enable(true) }))
	disable := NewItem("Disable", "Leave this remote out of fetches", "disable",
		On((*reftree.RemoteRepoNode).Disable))
	prune := NewItem("Prune", "Remove tracking branches deleted on the remote", "prune",
		On((*reftree.RemoteRepoNode).Prune))
	menus.RemoteRepo.Append(
		NewItem("Manage remotes...", "Edit the configured remotes", "remotes",
			On((*reftree.RemoteRepoNode).PopupManageRemotesForm)),
		fetchAll, enable, enableFetch, disable, prune,
	)
	setVisible([]*Item{enable, enableFetch}, false)

	Compose(menus.Tag, TagEntries().Items(), nil)

	reload := NewItem("Reload", "Reload refs from the repository", "reload", Command(host.Reload))
	headerRemotes := NewItem("Manage remotes...", "Edit the configured remotes", "remotes",
		On((*reftree.HeaderNode).PopupManageRemotesForm))
	menus.Header.Append(reload, headerRemotes)

	menus.Default.Append(
		reload,
		NewItem("Manage remotes...", "Edit the configured remotes", "remotes",
			Command(func() { host.ManageRemotes("") })),
	)

	registry := NewRegistry(menus.Default)
	err := errors.Join(
		registry.Register(reftree.KindLocalBranch, menus.Branch),
		registry.Register(reftree.KindBranchPath, menus.BranchPath),
		registry.Register(reftree.KindRemoteBranch, menus.RemoteBranch),
		registry.Register(reftree.KindRemoteRepo, menus.RemoteRepo),
		registry.Register(reftree.KindTag, menus.Tag),
		registry.Register(reftree.KindHeader, menus.Header),
	)
	if err != nil {
		return nil, Menus{}, err
	}

	augmenter := NewAugmenter(host)
	for _, m := range registry.Menus() {
		augmenter.Augment(m)
	}
	actions := NewActions(registry,
		augmenter.Rule(),
		BranchRule(menus.Branch, localEntries.InactiveItems()),
		RemoteRepoRule(menus.RemoteRepo,
			[]*Item{fetchAll, disable, prune},
			[]*Item{enable, enableFetch},
		),
		HeaderRule(menus.Header, headerRemotes),
	)
	return actions, menus, nil
}
