package reftree

import (
	"fmt"
	"strings"
)

type Kind int

const (
	KindHeader Kind = iota
	KindLocalBranch
	KindRemoteBranch
	KindTag
	KindBranchPath
	KindRemoteRepo
)

var kindNames = [...]string{
	KindHeader:       "header",
	KindLocalBranch:  "branch",
	KindRemoteBranch: "remote-branch",
	KindTag:          "tag",
	KindBranchPath:   "branch-path",
	KindRemoteRepo:   "remote",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func ParseKind(raw string) (Kind, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	for k, name := range kindNames {
		if name == raw {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown node kind %q", raw)
}

// Node is one entry of the repository objects tree. The set of
// implementations is closed; Kind is meant for dispatch only, behavior lives
// on the concrete types.
type Node interface {
	Kind() Kind
	Name() string
	FullPath() string
	Parent() Node
	Children() []Node

	base() *baseNode
}

// BranchNode is satisfied by local and remote branches. Active reports
// whether the branch is the checked out one.
type BranchNode interface {
	Node
	Active() bool
}

// GitRefNode is a node pointing at a commit: branches and tags.
type GitRefNode interface {
	Node
	Checkout()
	Merge()
	Rebase()
	CreateBranch()
}

type Deletable interface {
	Node
	Delete()
}

type Renamable interface {
	Node
	Rename()
}

type baseNode struct {
	name     string
	fullPath string
	parent   Node
	children []Node
	tree     *Tree
}

func (b *baseNode) Name() string     { return b.name }
func (b *baseNode) FullPath() string { return b.fullPath }
func (b *baseNode) Parent() Node     { return b.parent }
func (b *baseNode) Children() []Node { return b.children }
func (b *baseNode) base() *baseNode  { return b }
func (b *baseNode) addChild(n Node)  { b.children = append(b.children, n) }

// Section identifies the three top level headers.
type Section int

const (
	SectionBranches Section = iota
	SectionRemotes
	SectionTags
)

func (s Section) String() string {
	switch s {
	case SectionRemotes:
		return "Remotes"
	case SectionTags:
		return "Tags"
	default:
		return "Branches"
	}
}

type HeaderNode struct {
	baseNode
	Section Section
}

func (*HeaderNode) Kind() Kind { return KindHeader }

// PopupManageRemotesForm opens the remotes dialog without a preselection.
func (n *HeaderNode) PopupManageRemotesForm() {
	n.tree.deps.Dialogs.ManageRemotes("")
}

type LocalBranchNode struct {
	baseNode
	Hash     string
	Upstream string
	IsActive bool
}

func (*LocalBranchNode) Kind() Kind     { return KindLocalBranch }
func (n *LocalBranchNode) Active() bool { return n.IsActive }

type RemoteBranchNode struct {
	baseNode
	Remote string
	Branch string // name on the remote, without the remote prefix
	Hash   string
}

func (*RemoteBranchNode) Kind() Kind   { return KindRemoteBranch }
func (*RemoteBranchNode) Active() bool { return false }

type TagNode struct {
	baseNode
	Hash string
}

func (*TagNode) Kind() Kind { return KindTag }

// BranchPathNode groups branches sharing a path prefix, e.g. "feature".
// Remote is set for groups below a remote.
type BranchPathNode struct {
	baseNode
	Remote string
}

func (*BranchPathNode) Kind() Kind { return KindBranchPath }

type RemoteRepoNode struct {
	baseNode
	URLs    []string
	Enabled bool
}

func (*RemoteRepoNode) Kind() Kind { return KindRemoteRepo }
