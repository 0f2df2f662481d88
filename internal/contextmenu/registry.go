package contextmenu

import (
	"errors"
	"fmt"
	"slices"

	"github.com/thiagokokada/gitk-refs/internal/reftree"
)

var ErrKindRegistered = errors.New("menu already registered for kind")

// Registry binds each node kind to a single menu. Kinds without a binding
// and clicks on empty space resolve to the default menu.
type Registry struct {
	menus map[reftree.Kind]*Menu
	def   *Menu
}

func NewRegistry(def *Menu) *Registry {
	return &Registry{menus: make(map[reftree.Kind]*Menu), def: def}
}

func (r *Registry) Register(kind reftree.Kind, menu *Menu) error {
	if _, ok := r.menus[kind]; ok {
		return fmt.Errorf("register %s: %w", kind, ErrKindRegistered)
	}
	r.menus[kind] = menu
	return nil
}

func (r *Registry) Resolve(node reftree.Node) *Menu {
	if node == nil {
		return r.def
	}
	if m, ok := r.menus[node.Kind()]; ok {
		return m
	}
	return r.def
}

func (r *Registry) Default() *Menu { return r.def }

// Menus returns the registered menus ordered by kind, followed by the
// default menu.
func (r *Registry) Menus() []*Menu {
	kinds := make([]reftree.Kind, 0, len(r.menus))
	for k := range r.menus {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	out := make([]*Menu, 0, len(kinds)+1)
	for _, k := range kinds {
		out = append(out, r.menus[k])
	}
	if r.def != nil {
		out = append(out, r.def)
	}
	return out
}
