package contextmenu

import "github.com/thiagokokada/gitk-refs/internal/reftree"

// Compose inserts items right after insertAfter, or at the top of the menu
// when insertAfter is nil or not part of it. Items already in the menu are
// skipped.
func Compose(menu *Menu, items []*Item, insertAfter *Item) {
	index := max(0, menu.IndexOf(insertAfter)+1)
	missing := make([]*Item, 0, len(items))
	for _, it := range items {
		if !menu.Contains(it) {
			missing = append(missing, it)
		}
	}
	menu.Insert(index, missing...)
}

// TreeActions are the tree-wide commands every menu offers.
type TreeActions interface {
	CollapseAll()
	ExpandAll()
}

// Augmenter appends the tree-wide block (separator, collapse all, expand
// all) to menus. The block is added at most once per menu.
type Augmenter struct {
	separator *Item
	collapse  *Item
	expand    *Item
}

func NewAugmenter(tree TreeActions) *Augmenter {
	return &Augmenter{
		separator: NewSeparator(),
		collapse:  NewItem("Collapse all", "Collapse every node of the tree", "collapse", Command(tree.CollapseAll)),
		expand:    NewItem("Expand all", "Expand every node of the tree", "expand", Command(tree.ExpandAll)),
	}
}

func (a *Augmenter) Augment(menu *Menu) {
	for _, it := range a.Items() {
		if !menu.Contains(it) {
			menu.Append(it)
		}
	}
}

func (a *Augmenter) Items() []*Item {
	return []*Item{a.separator, a.collapse, a.expand}
}

// Rule augments whichever menu is opening.
func (a *Augmenter) Rule() OpeningRule {
	return func(e *OpeningEvent) { a.Augment(e.Menu) }
}

// OpeningEvent is passed to every rule right before a menu is shown. Node is
// the node the menu is opened for, nil for empty space. Setting Cancel
// keeps the menu from being shown.
type OpeningEvent struct {
	Menu   *Menu
	Node   reftree.Node
	Cancel bool
}

type OpeningRule func(e *OpeningEvent)

// BranchRule shows inactiveOnly entries of menu only for a branch that is
// not checked out. Other nodes leave the entries untouched.
func BranchRule(menu *Menu, inactiveOnly []*Item) OpeningRule {
	return func(e *OpeningEvent) {
		if e.Menu != menu {
			return
		}
		branch, ok := e.Node.(reftree.BranchNode)
		if !ok {
			return
		}
		setVisible(inactiveOnly, !branch.Active())
	}
}

// RemoteRepoRule shows the enabled group for an enabled remote and the
// disabled group otherwise.
func RemoteRepoRule(menu *Menu, enabled, disabled []*Item) OpeningRule {
	return func(e *OpeningEvent) {
		if e.Menu != menu {
			return
		}
		remote, ok := e.Node.(*reftree.RemoteRepoNode)
		if !ok {
			return
		}
		setVisible(enabled, remote.Enabled)
		setVisible(disabled, !remote.Enabled)
	}
}

// HeaderRule shows remotesOnly entries only on the Remotes section header.
func HeaderRule(menu *Menu, remotesOnly ...*Item) OpeningRule {
	return func(e *OpeningEvent) {
		if e.Menu != menu {
			return
		}
		header, ok := e.Node.(*reftree.HeaderNode)
		if !ok {
			return
		}
		setVisible(remotesOnly, header.Section == reftree.SectionRemotes)
	}
}

func setVisible(items []*Item, visible bool) {
	for _, it := range items {
		it.Visible = visible
	}
}
