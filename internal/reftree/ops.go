package reftree

import (
	"context"
	"errors"
	"fmt"
)

func (n *LocalBranchNode) Checkout() {
	branch := n.FullPath()
	n.tree.run("Checkout "+branch, func(ctx context.Context) error {
		return n.tree.deps.Repo.Checkout(ctx, branch)
	})
}

func (n *LocalBranchNode) Merge() {
	mergeRef(n.tree, n.FullPath())
}

func (n *LocalBranchNode) Rebase() {
	rebaseOnto(n.tree, n.FullPath())
}

func (n *LocalBranchNode) CreateBranch() {
	createBranchFrom(n.tree, n.FullPath(), n.FullPath())
}

func (n *LocalBranchNode) Rename() {
	oldName := n.FullPath()
	newName, ok := n.tree.deps.Dialogs.PromptName("Rename branch "+oldName, oldName)
	if !ok || newName == "" || newName == oldName {
		return
	}
	n.tree.run(fmt.Sprintf("Rename %s to %s", oldName, newName), func(ctx context.Context) error {
		return n.tree.deps.Repo.RenameBranch(ctx, oldName, newName)
	})
}

func (n *LocalBranchNode) Delete() {
	if n.IsActive {
		return
	}
	branch := n.FullPath()
	if !n.tree.deps.Dialogs.Confirm("Delete branch", fmt.Sprintf("Delete branch %s?", branch)) {
		return
	}
	n.tree.run("Delete "+branch, func(ctx context.Context) error {
		return n.tree.deps.Repo.DeleteBranch(ctx, branch)
	})
}

func (n *RemoteBranchNode) Fetch() {
	n.tree.run("Fetch "+n.FullPath(), n.fetch)
}

func (n *RemoteBranchNode) FetchAndMerge() {
	full := n.FullPath()
	n.tree.run("Pull "+full, func(ctx context.Context) error {
		if err := n.fetch(ctx); err != nil {
			return err
		}
		return n.tree.deps.Repo.Merge(ctx, full)
	})
}

func (n *RemoteBranchNode) FetchAndRebase() {
	full := n.FullPath()
	n.tree.run("Fetch and rebase on "+full, func(ctx context.Context) error {
		if err := n.fetch(ctx); err != nil {
			return err
		}
		return n.tree.deps.Repo.Rebase(ctx, full)
	})
}

// FetchAndCheckout switches to the local branch of the same name, creating it
// with the remote branch as upstream when it does not exist yet.
func (n *RemoteBranchNode) FetchAndCheckout() {
	full := n.FullPath()
	local := n.Branch
	exists := n.tree.HasLocalBranch(local)
	n.tree.run("Fetch and checkout "+full, func(ctx context.Context) error {
		if err := n.fetch(ctx); err != nil {
			return err
		}
		if exists {
			return n.tree.deps.Repo.Checkout(ctx, local)
		}
		return n.tree.deps.Repo.CheckoutNewBranch(ctx, local, full, true)
	})
}

func (n *RemoteBranchNode) FetchAndCreateBranch() {
	full := n.FullPath()
	name, ok := n.tree.deps.Dialogs.PromptName("Create branch from "+full, n.Branch)
	if !ok || name == "" {
		return
	}
	n.tree.run(fmt.Sprintf("Fetch %s and create %s", full, name), func(ctx context.Context) error {
		if err := n.fetch(ctx); err != nil {
			return err
		}
		return n.tree.deps.Repo.CheckoutNewBranch(ctx, name, full, true)
	})
}

func (n *RemoteBranchNode) Checkout() {
	full := n.FullPath()
	n.tree.run("Checkout "+full, func(ctx context.Context) error {
		return n.tree.deps.Repo.CheckoutDetached(ctx, full)
	})
}

func (n *RemoteBranchNode) Merge() {
	mergeRef(n.tree, n.FullPath())
}

func (n *RemoteBranchNode) Rebase() {
	rebaseOnto(n.tree, n.FullPath())
}

func (n *RemoteBranchNode) CreateBranch() {
	createBranchFrom(n.tree, n.FullPath(), n.Branch)
}

// Delete removes the branch from the remote repository.
func (n *RemoteBranchNode) Delete() {
	full := n.FullPath()
	msg := fmt.Sprintf("Delete branch %s from remote %s?", n.Branch, n.Remote)
	if !n.tree.deps.Dialogs.Confirm("Delete remote branch", msg) {
		return
	}
	n.tree.run("Delete "+full, func(ctx context.Context) error {
		return n.tree.deps.Repo.DeleteRemoteBranch(ctx, n.Remote, n.Branch)
	})
}

func (n *RemoteBranchNode) fetch(ctx context.Context) error {
	return n.tree.deps.Repo.FetchBranch(ctx, n.Remote, n.Branch)
}

func (n *TagNode) Checkout() {
	tag := n.FullPath()
	n.tree.run("Checkout tag "+tag, func(ctx context.Context) error {
		return n.tree.deps.Repo.CheckoutDetached(ctx, tag)
	})
}

func (n *TagNode) Merge() {
	mergeRef(n.tree, n.FullPath())
}

func (n *TagNode) Rebase() {
	rebaseOnto(n.tree, n.FullPath())
}

func (n *TagNode) CreateBranch() {
	createBranchFrom(n.tree, n.FullPath(), "")
}

func (n *TagNode) Delete() {
	tag := n.FullPath()
	if !n.tree.deps.Dialogs.Confirm("Delete tag", fmt.Sprintf("Delete tag %s?", tag)) {
		return
	}
	n.tree.run("Delete tag "+tag, func(ctx context.Context) error {
		return n.tree.deps.Repo.DeleteTag(ctx, tag)
	})
}

// DeleteAll deletes every branch below the group. The checked out branch is
// kept; for remote groups the branches are deleted on the remote.
func (n *BranchPathNode) DeleteAll() {
	var locals []string
	var remotes []*RemoteBranchNode
	walkBelow(n, func(c Node) {
		switch b := c.(type) {
		case *LocalBranchNode:
			if !b.IsActive {
				locals = append(locals, b.FullPath())
			}
		case *RemoteBranchNode:
			remotes = append(remotes, b)
		}
	})
	count := len(locals) + len(remotes)
	if count == 0 {
		return
	}
	msg := fmt.Sprintf("Delete %d branches below %s?", count, n.FullPath())
	if !n.tree.deps.Dialogs.Confirm("Delete all branches", msg) {
		return
	}
	n.tree.run("Delete branches below "+n.FullPath(), func(ctx context.Context) error {
		var errs []error
		for _, name := range locals {
			errs = append(errs, n.tree.deps.Repo.DeleteBranch(ctx, name))
		}
		for _, rb := range remotes {
			errs = append(errs, n.tree.deps.Repo.DeleteRemoteBranch(ctx, rb.Remote, rb.Branch))
		}
		return errors.Join(errs...)
	})
}

func (n *RemoteRepoNode) Fetch() {
	remote := n.Name()
	n.tree.run("Fetch "+remote, func(ctx context.Context) error {
		return n.tree.deps.Repo.Fetch(ctx, remote)
	})
}

func (n *RemoteRepoNode) Enable(fetch bool) {
	remote := n.Name()
	title := "Enable " + remote
	if fetch {
		title += " and fetch"
	}
	n.tree.run(title, func(ctx context.Context) error {
		if err := n.tree.deps.Repo.SetRemoteEnabled(ctx, remote, true); err != nil {
			return err
		}
		if !fetch {
			return nil
		}
		return n.tree.deps.Repo.Fetch(ctx, remote)
	})
}

func (n *RemoteRepoNode) Disable() {
	remote := n.Name()
	n.tree.run("Disable "+remote, func(ctx context.Context) error {
		return n.tree.deps.Repo.SetRemoteEnabled(ctx, remote, false)
	})
}

func (n *RemoteRepoNode) Prune() {
	remote := n.Name()
	n.tree.run("Prune "+remote, func(ctx context.Context) error {
		return n.tree.deps.Repo.Prune(ctx, remote)
	})
}

func (n *RemoteRepoNode) PopupManageRemotesForm() {
	n.tree.deps.Dialogs.ManageRemotes(n.Name())
}

func mergeRef(t *Tree, rev string) {
	t.run(fmt.Sprintf("Merge %s into current branch", rev), func(ctx context.Context) error {
		return t.deps.Repo.Merge(ctx, rev)
	})
}

func rebaseOnto(t *Tree, rev string) {
	t.run("Rebase current branch on "+rev, func(ctx context.Context) error {
		return t.deps.Repo.Rebase(ctx, rev)
	})
}

func createBranchFrom(t *Tree, start, suggestion string) {
	name, ok := t.deps.Dialogs.PromptName("Create branch from "+start, suggestion)
	if !ok || name == "" {
		return
	}
	t.run(fmt.Sprintf("Create branch %s from %s", name, start), func(ctx context.Context) error {
		return t.deps.Repo.CreateBranch(ctx, name, start)
	})
}

func walkBelow(n Node, fn func(Node)) {
	for _, c := range n.Children() {
		fn(c)
		walkBelow(c, fn)
	}
}
