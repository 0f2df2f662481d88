package reftree

import (
	"context"
	"slices"
	"strings"

	"github.com/thiagokokada/gitk-refs/internal/git"
)

// Repository is the set of git operations the nodes delegate to.
// *git.Service implements it.
type Repository interface {
	CreateBranch(ctx context.Context, name, start string) error
	RenameBranch(ctx context.Context, oldName, newName string) error
	DeleteBranch(ctx context.Context, name string) error
	DeleteTag(ctx context.Context, name string) error
	Checkout(ctx context.Context, branch string) error
	CheckoutDetached(ctx context.Context, rev string) error
	CheckoutNewBranch(ctx context.Context, name, start string, track bool) error
	Merge(ctx context.Context, rev string) error
	Rebase(ctx context.Context, rev string) error
	Fetch(ctx context.Context, remote string) error
	FetchBranch(ctx context.Context, remote, branch string) error
	DeleteRemoteBranch(ctx context.Context, remote, branch string) error
	Prune(ctx context.Context, remote string) error
	SetRemoteEnabled(ctx context.Context, remote string, enabled bool) error
}

// Runner executes repository jobs. Implementations decide where the job runs
// and report failures; node operations never see the error.
type Runner interface {
	Run(title string, op func(ctx context.Context) error)
}

type RunnerFunc func(title string, op func(ctx context.Context) error)

func (f RunnerFunc) Run(title string, op func(ctx context.Context) error) { f(title, op) }

// Dialogs collects the user interactions node operations need.
type Dialogs interface {
	PromptName(title, initial string) (string, bool)
	Confirm(title, message string) bool
	ManageRemotes(remote string)
}

type Deps struct {
	Repo    Repository
	Runner  Runner
	Dialogs Dialogs
}

type Tree struct {
	deps          Deps
	roots         []Node
	head          string
	localBranches map[string]struct{}
}

// Build creates the tree for a refs snapshot: local branches grouped by path,
// remotes with their branches, and tags.
func Build(refs git.Refs, deps Deps) *Tree {
	t := &Tree{
		deps:          deps,
		head:          refs.Head,
		localBranches: make(map[string]struct{}, len(refs.Branches)),
	}
	branches := t.newHeader(SectionBranches)
	remotes := t.newHeader(SectionRemotes)
	tags := t.newHeader(SectionTags)

	for _, b := range refs.Branches {
		t.localBranches[b.Name] = struct{}{}
		parent := t.ensurePath(branches, "", "", b.Name)
		leaf := &LocalBranchNode{Hash: b.Hash, Upstream: b.Upstream, IsActive: b.Name == refs.Head}
		t.attach(parent, leaf, lastSegment(b.Name), b.Name)
	}

	remoteNodes := make(map[string]*RemoteRepoNode, len(refs.Remotes))
	for _, r := range refs.Remotes {
		node := &RemoteRepoNode{URLs: slices.Clone(r.URLs), Enabled: r.Enabled}
		t.attach(remotes, node, r.Name, r.Name)
		remoteNodes[r.Name] = node
	}
	for _, rb := range refs.RemoteBranches {
		remote, ok := remoteNodes[rb.Remote]
		if !ok {
			// Tracking refs of a remote that is no longer configured.
			remote = &RemoteRepoNode{}
			t.attach(remotes, remote, rb.Remote, rb.Remote)
			remoteNodes[rb.Remote] = remote
		}
		parent := t.ensurePath(remote, rb.Remote, rb.Remote+"/", rb.Name)
		leaf := &RemoteBranchNode{Remote: rb.Remote, Branch: rb.Name, Hash: rb.Hash}
		t.attach(parent, leaf, lastSegment(rb.Name), rb.FullName())
	}

	for _, tag := range refs.Tags {
		t.attach(tags, &TagNode{Hash: tag.Hash}, tag.Name, tag.Name)
	}

	for _, root := range t.roots {
		sortChildren(root)
	}
	return t
}

func (t *Tree) Roots() []Node { return t.roots }

// Head returns the checked out branch, or "" when HEAD is detached.
func (t *Tree) Head() string { return t.head }

func (t *Tree) HasLocalBranch(name string) bool {
	_, ok := t.localBranches[name]
	return ok
}

// Walk visits nodes depth first, parents before children. Returning false
// from fn stops the walk.
func (t *Tree) Walk(fn func(Node) bool) {
	var visit func(Node) bool
	visit = func(n Node) bool {
		if !fn(n) {
			return false
		}
		for _, c := range n.Children() {
			if !visit(c) {
				return false
			}
		}
		return true
	}
	for _, r := range t.roots {
		if !visit(r) {
			return
		}
	}
}

// Find returns the node of the given kind and full path.
func (t *Tree) Find(kind Kind, fullPath string) (Node, bool) {
	var found Node
	t.Walk(func(n Node) bool {
		if n.Kind() == kind && n.FullPath() == fullPath {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}

func (t *Tree) newHeader(section Section) *HeaderNode {
	h := &HeaderNode{Section: section}
	h.baseNode = baseNode{name: section.String(), fullPath: section.String(), tree: t}
	t.roots = append(t.roots, h)
	return h
}

func (t *Tree) attach(parent Node, child Node, name, fullPath string) {
	b := child.base()
	b.name = name
	b.fullPath = fullPath
	b.parent = parent
	b.tree = t
	parent.base().addChild(child)
}

// ensurePath returns the group node that should hold the last segment of
// name, creating BranchPathNodes for each intermediate segment.
func (t *Tree) ensurePath(root Node, remote, prefix, name string) Node {
	segments := strings.Split(name, "/")
	parent := root
	path := prefix
	for _, seg := range segments[:len(segments)-1] {
		path += seg
		var next Node
		for _, c := range parent.Children() {
			if c.Kind() == KindBranchPath && c.Name() == seg {
				next = c
				break
			}
		}
		if next == nil {
			next = &BranchPathNode{Remote: remote}
			t.attach(parent, next, seg, path)
		}
		parent = next
		path += "/"
	}
	return parent
}

func lastSegment(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// sortChildren orders groups before leaves, each by name.
func sortChildren(n Node) {
	b := n.base()
	slices.SortStableFunc(b.children, func(x, y Node) int {
		xg, yg := x.Kind() == KindBranchPath, y.Kind() == KindBranchPath
		if xg != yg {
			if xg {
				return -1
			}
			return 1
		}
		return strings.Compare(x.Name(), y.Name())
	})
	for _, c := range b.children {
		sortChildren(c)
	}
}

func (t *Tree) run(title string, op func(ctx context.Context) error) {
	t.deps.Runner.Run(title, op)
}
