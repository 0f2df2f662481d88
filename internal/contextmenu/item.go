// Package contextmenu builds the per-kind context menus of the refs tree and
// dispatches their entries to the node they were opened for.
//
// Menus here are abstract: a Menu is an ordered list of Items that a host
// renders with its own widgets. Entries are declared once per node kind by a
// Generator and bound to a concrete node only when activated.
package contextmenu

import (
	"slices"

	"github.com/thiagokokada/gitk-refs/internal/reftree"
)

// Handler runs an entry against the node its menu was opened for. node may
// be nil when the menu was opened on empty space.
type Handler func(node reftree.Node)

// On adapts a handler for nodes of type K. The returned Handler ignores any
// node that is not a K.
func On[K reftree.Node](fn func(K)) Handler {
	return func(node reftree.Node) {
		if k, ok := node.(K); ok {
			fn(k)
		}
	}
}

// Command adapts an action that does not need the clicked node.
func Command(fn func()) Handler {
	return func(reftree.Node) { fn() }
}

type Item struct {
	Text      string
	ToolTip   string
	Icon      string
	Separator bool
	Visible   bool

	handler Handler
}

func NewItem(text, toolTip, icon string, handler Handler) *Item {
	return &Item{Text: text, ToolTip: toolTip, Icon: icon, Visible: true, handler: handler}
}

func NewSeparator() *Item {
	return &Item{Separator: true, Visible: true}
}

// Invoke runs the item handler for node. Separators do nothing.
func (it *Item) Invoke(node reftree.Node) {
	if it == nil || it.handler == nil {
		return
	}
	it.handler(node)
}

type Menu struct {
	Name  string
	items []*Item
}

func NewMenu(name string) *Menu {
	return &Menu{Name: name}
}

func (m *Menu) Items() []*Item { return slices.Clone(m.items) }

func (m *Menu) Len() int { return len(m.items) }

func (m *Menu) Append(items ...*Item) {
	m.items = append(m.items, items...)
}

// Insert places items at index, clamped to the menu bounds.
func (m *Menu) Insert(index int, items ...*Item) {
	index = max(0, min(index, len(m.items)))
	m.items = slices.Insert(m.items, index, items...)
}

func (m *Menu) IndexOf(it *Item) int {
	if it == nil {
		return -1
	}
	return slices.Index(m.items, it)
}

func (m *Menu) Contains(it *Item) bool {
	return m.IndexOf(it) >= 0
}

// Find returns the first item with the given text.
func (m *Menu) Find(text string) *Item {
	for _, it := range m.items {
		if !it.Separator && it.Text == text {
			return it
		}
	}
	return nil
}

// Visible returns the items to display. Separators are dropped when they
// would lead, trail or follow another separator.
func (m *Menu) Visible() []*Item {
	out := make([]*Item, 0, len(m.items))
	for _, it := range m.items {
		if !it.Visible {
			continue
		}
		if it.Separator && (len(out) == 0 || out[len(out)-1].Separator) {
			continue
		}
		out = append(out, it)
	}
	if n := len(out); n > 0 && out[n-1].Separator {
		out = out[:n-1]
	}
	return out
}
