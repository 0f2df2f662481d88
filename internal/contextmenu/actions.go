package contextmenu

import (
	"log/slog"

	"github.com/thiagokokada/gitk-refs/internal/reftree"
)

type MouseButton int

const (
	ButtonLeft MouseButton = iota + 1
	ButtonMiddle
	ButtonRight
)

// Actions tracks one right-click interaction: the clicked node, the menu
// opened for it and the entry activated from that menu.
type Actions struct {
	registry *Registry
	rules    []OpeningRule
	clicked  reftree.Node
}

// NewActions creates the controller. Rules run in the given order each time a
// menu opens.
func NewActions(registry *Registry, rules ...OpeningRule) *Actions {
	return &Actions{registry: registry, rules: rules}
}

func (a *Actions) Registry() *Registry { return a.registry }

// MouseClick records node on a right click and forgets it on any other
// button.
func (a *Actions) MouseClick(node reftree.Node, button MouseButton) {
	if button == ButtonRight {
		a.clicked = node
		return
	}
	a.clicked = nil
}

// Clicked returns the node of the pending interaction, if any.
func (a *Actions) Clicked() reftree.Node { return a.clicked }

// Opened is a menu ready to be shown for a node.
type Opened struct {
	Menu  *Menu
	Node  reftree.Node
	Items []*Item

	actions *Actions
}

// Open resolves and prepares the menu for the last clicked node. It reports
// false when a rule vetoed the menu.
func (a *Actions) Open() (Opened, bool) {
	e := &OpeningEvent{Menu: a.registry.Resolve(a.clicked), Node: a.clicked}
	if e.Menu == nil {
		return Opened{}, false
	}
	for _, rule := range a.rules {
		rule(e)
		if e.Cancel {
			slog.Debug("context menu canceled", slog.String("menu", e.Menu.Name))
			return Opened{}, false
		}
	}
	return Opened{Menu: e.Menu, Node: e.Node, Items: e.Menu.Visible(), actions: a}, true
}

// Activate runs item against the node the menu was opened for and ends the
// interaction.
func (o Opened) Activate(item *Item) {
	if o.actions != nil && o.actions.clicked == o.Node {
		o.actions.clicked = nil
	}
	item.Invoke(o.Node)
}

// Activate is the slot-reading form of Opened.Activate, for hosts that keep
// no Opened value between popup and click: it consumes the last clicked node
// and runs item against it.
func (a *Actions) Activate(item *Item) {
	node := a.clicked
	a.clicked = nil
	item.Invoke(node)
}
