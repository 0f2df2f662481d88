package gui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/thiagokokada/gitk-refs/internal/contextmenu"
	"github.com/thiagokokada/gitk-refs/internal/gui/tkutil"
	"github.com/thiagokokada/gitk-refs/internal/reftree"
	. "modernc.org/tk9.0"
)

const (
	tagHeader   = "header"
	tagGroup    = "group"
	tagActive   = "active"
	tagDisabled = "disabled"
)

type refRow struct {
	ID     string
	Parent string
	Key    string
	Text   string
	Tags   []string
	Node   reftree.Node
}

// buildRefRows flattens the tree parents first. IDs are positional; Key
// identifies the node across reloads.
func buildRefRows(tree *reftree.Tree) []refRow {
	if tree == nil {
		return nil
	}
	var rows []refRow
	ids := make(map[reftree.Node]string)
	tree.Walk(func(n reftree.Node) bool {
		id := fmt.Sprintf("n%d", len(rows))
		ids[n] = id
		var parent string
		if p := n.Parent(); p != nil {
			parent = ids[p]
		}
		rows = append(rows, refRow{
			ID:     id,
			Parent: parent,
			Key:    nodeKey(n),
			Text:   reftree.Label(n),
			Tags:   nodeTags(n),
			Node:   n,
		})
		return true
	})
	return rows
}

func nodeKey(n reftree.Node) string {
	return n.Kind().String() + ":" + n.FullPath()
}

func nodeTags(n reftree.Node) []string {
	switch v := n.(type) {
	case *reftree.HeaderNode:
		return []string{tagHeader}
	case *reftree.BranchPathNode:
		return []string{tagGroup}
	case *reftree.LocalBranchNode:
		if v.IsActive {
			return []string{tagActive}
		}
	case *reftree.RemoteRepoNode:
		if !v.Enabled {
			return []string{tagDisabled}
		}
	}
	return nil
}

func (a *Controller) renderRefTree() {
	w := a.ui.refTree
	if w == nil {
		return
	}
	a.rememberOpenState()
	if _, err := tkutil.Eval("%s delete [%s children {}]", w, w); err != nil {
		slog.Error("clear ref tree", slog.Any("error", err))
	}
	rows := buildRefRows(a.state.refs.tree)
	refs := &a.state.refs
	refs.rows = make(map[string]reftree.Node, len(rows))
	refs.keys = make(map[string]string, len(rows))
	for _, row := range rows {
		w.Insert(row.Parent, "end", Id(row.ID), Txt(row.Text), Tags(strings.Join(row.Tags, " ")))
		refs.rows[row.ID] = row.Node
		refs.keys[row.ID] = row.Key
		if a.shouldOpen(row) {
			a.setItemOpen(row.ID, true)
		}
	}
	refs.ready = true
}

// shouldOpen keeps the previous open state; on first render only the
// headers are expanded.
func (a *Controller) shouldOpen(row refRow) bool {
	if open, ok := a.state.refs.open[row.Key]; ok {
		return open
	}
	return row.Node.Kind() == reftree.KindHeader
}

func (a *Controller) rememberOpenState() {
	refs := &a.state.refs
	if !refs.ready {
		return
	}
	if refs.open == nil {
		refs.open = make(map[string]bool)
	}
	for id, key := range refs.keys {
		out := strings.TrimSpace(tkutil.EvalOrEmpty("%s item %s -open", a.ui.refTree, id))
		refs.open[key] = out == "true" || tkutil.Atoi(out) != 0
	}
}

func (a *Controller) setItemOpen(id string, open bool) {
	value := 0
	if open {
		value = 1
	}
	if _, err := tkutil.Eval("%s item %s -open %d", a.ui.refTree, id, value); err != nil {
		slog.Debug("ref tree open", slog.String("id", id), slog.Any("error", err))
	}
}

func (a *Controller) CollapseAll() { a.setAllOpen(false) }

func (a *Controller) ExpandAll() { a.setAllOpen(true) }

func (a *Controller) setAllOpen(open bool) {
	for id, node := range a.state.refs.rows {
		if len(node.Children()) == 0 {
			continue
		}
		a.setItemOpen(id, open)
	}
}

func (a *Controller) nodeAt(x, y int) reftree.Node {
	id := strings.TrimSpace(a.ui.refTree.IdentifyItem(x, y))
	if id == "" {
		return nil
	}
	return a.state.refs.rows[id]
}

func (a *Controller) idOf(node reftree.Node) string {
	for id, n := range a.state.refs.rows {
		if n == node {
			return id
		}
	}
	return ""
}

func (a *Controller) bindRefTree() {
	w := a.ui.refTree
	Bind(w, "<Button-1>", Command(func(e *Event) {
		a.state.menus.actions.MouseClick(a.nodeAt(e.X, e.Y), contextmenu.ButtonLeft)
	}))
	Bind(w, "<Double-Button-1>", Command(func(e *Event) {
		if branch, ok := a.nodeAt(e.X, e.Y).(reftree.BranchNode); ok {
			a.state.commits.SetBranchFilter(branch.FullPath(), true)
		}
	}))
	handler := func(e *Event) { a.showRefContextMenu(e) }
	Bind(w, "<Button-2>", Command(handler))
	Bind(w, "<Button-3>", Command(handler))
}

type tagColor struct {
	tag   string
	color string
}

func refTreeTagColors(p colorPalette) []tagColor {
	return []tagColor{
		{tagActive, p.ActiveBranch},
		{tagDisabled, p.DisabledRemote},
		{tagGroup, p.GroupNode},
	}
}

func (a *Controller) configureRefTreeTags() {
	w := a.ui.refTree
	for _, tc := range refTreeTagColors(a.theme.palette) {
		w.TagConfigure(tc.tag, Foreground(tc.color))
	}
	if _, err := tkutil.Eval("%s tag configure %s -font TkHeadingFont", w, tagHeader); err != nil {
		slog.Debug("header font", slog.Any("error", err))
	}
}
