package contextmenu

import "github.com/thiagokokada/gitk-refs/internal/reftree"

// Entry declares one menu entry for nodes of type K.
type Entry[K reftree.Node] struct {
	Text    string
	ToolTip string
	Icon    string
	// InactiveOnly entries only apply to a branch that is not checked out.
	InactiveOnly bool
	Run          func(K)
}

// Generator declares the ordered entries of one node kind. It does not know
// about trees or widgets; Items materializes the entries once and returns
// the same items on every call.
type Generator[K reftree.Node] struct {
	SeparatorBefore bool
	SeparatorAfter  bool

	entries  []Entry[K]
	items    []*Item
	inactive []*Item
}

func (g *Generator[K]) Add(entries ...Entry[K]) *Generator[K] {
	g.entries = append(g.entries, entries...)
	return g
}

func (g *Generator[K]) Items() []*Item {
	if g.items != nil {
		return g.items
	}
	items := make([]*Item, 0, len(g.entries)+2)
	if g.SeparatorBefore {
		items = append(items, NewSeparator())
	}
	for _, e := range g.entries {
		it := NewItem(e.Text, e.ToolTip, e.Icon, On(e.Run))
		if e.InactiveOnly {
			g.inactive = append(g.inactive, it)
		}
		items = append(items, it)
	}
	if g.SeparatorAfter {
		items = append(items, NewSeparator())
	}
	g.items = items
	return g.items
}

// InactiveItems returns the materialized entries marked InactiveOnly.
func (g *Generator[K]) InactiveItems() []*Item {
	g.Items()
	return g.inactive
}

// gitRefEntries declares the entries shared by everything pointing at a
// commit. withCheckout is false for remote branches, whose menu offers
// fetch-and-checkout instead.
func gitRefEntries[K reftree.GitRefNode](withCheckout, inactiveOnly bool) *Generator[K] {
	g := &Generator[K]{}
	if withCheckout {
		g.Add(Entry[K]{
			Text:         "Checkout",
			ToolTip:      "Check out this ref",
			Icon:         "checkout",
			InactiveOnly: inactiveOnly,
			Run:          func(n K) { n.Checkout() },
		})
	}
	return g.Add(
		Entry[K]{
			Text:         "Merge into current branch",
			ToolTip:      "Merge this ref into the checked out branch",
			Icon:         "merge",
			InactiveOnly: inactiveOnly,
			Run:          func(n K) { n.Merge() },
		},
		Entry[K]{
			Text:         "Rebase current branch on",
			ToolTip:      "Rebase the checked out branch on this ref",
			Icon:         "rebase",
			InactiveOnly: inactiveOnly,
			Run:          func(n K) { n.Rebase() },
		},
		Entry[K]{
			Text:    "Create branch...",
			ToolTip: "Create a new branch starting at this ref",
			Icon:    "branch-create",
			Run:     func(n K) { n.CreateBranch() },
		},
	)
}

func LocalBranchEntries() *Generator[*reftree.LocalBranchNode] {
	return gitRefEntries[*reftree.LocalBranchNode](true, true).Add(
		Entry[*reftree.LocalBranchNode]{
			Text:    "Rename...",
			ToolTip: "Rename this branch",
			Icon:    "rename",
			Run:     (*reftree.LocalBranchNode).Rename,
		},
		Entry[*reftree.LocalBranchNode]{
			Text:         "Delete",
			ToolTip:      "Delete this branch",
			Icon:         "branch-delete",
			InactiveOnly: true,
			Run:          (*reftree.LocalBranchNode).Delete,
		},
	)
}

func RemoteBranchEntries() *Generator[*reftree.RemoteBranchNode] {
	return gitRefEntries[*reftree.RemoteBranchNode](false, false).Add(
		Entry[*reftree.RemoteBranchNode]{
			Text:    "Delete from remote",
			ToolTip: "Delete this branch on the remote repository",
			Icon:    "branch-delete",
			Run:     (*reftree.RemoteBranchNode).Delete,
		},
	)
}

func TagEntries() *Generator[*reftree.TagNode] {
	return gitRefEntries[*reftree.TagNode](true, false).Add(
		Entry[*reftree.TagNode]{
			Text:    "Delete tag",
			ToolTip: "Delete this tag",
			Icon:    "tag-delete",
			Run:     (*reftree.TagNode).Delete,
		},
	)
}
