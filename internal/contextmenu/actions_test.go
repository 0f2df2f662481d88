package contextmenu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thiagokokada/gitk-refs/internal/reftree"
)

var augmentation = []string{"-", "Collapse all", "Expand all"}

func withAugmentation(entries ...string) []string {
	return append(entries, augmentation...)
}

func TestMenusShowGeneratedEntries(t *testing.T) {
	tests := []struct {
		name string
		kind reftree.Kind
		path string
		want []string
	}{
		{
			name: "inactive local branch",
			kind: reftree.KindLocalBranch,
			path: "feature/login",
			want: withAugmentation(
				"Checkout", "Merge into current branch", "Rebase current branch on",
				"Create branch...", "Rename...", "Delete", "Filter in revision grid",
			),
		},
		{
			name: "active local branch",
			kind: reftree.KindLocalBranch,
			path: "main",
			want: withAugmentation("Create branch...", "Rename...", "Filter in revision grid"),
		},
		{
			name: "remote branch",
			kind: reftree.KindRemoteBranch,
			path: "origin/main",
			want: withAugmentation(
				"Fetch", "Pull", "Filter in revision grid", "Fetch and checkout",
				"Fetch and create branch...", "Fetch and rebase", "-",
				"Merge into current branch", "Rebase current branch on", "Create branch...", "Delete from remote",
			),
		},
		{
			name: "enabled remote",
			kind: reftree.KindRemoteRepo,
			path: "origin",
			want: withAugmentation("Manage remotes...", "Fetch all branches", "Disable", "Prune"),
		},
		{
			name: "disabled remote",
			kind: reftree.KindRemoteRepo,
			path: "upstream",
			want: withAugmentation("Manage remotes...", "Enable", "Enable and fetch"),
		},
		{
			name: "tag",
			kind: reftree.KindTag,
			path: "v1.0.0",
			want: withAugmentation(
				"Checkout", "Merge into current branch", "Rebase current branch on", "Create branch...", "Delete tag",
			),
		},
		{
			name: "branch path",
			kind: reftree.KindBranchPath,
			path: "feature",
			want: withAugmentation("Delete all branches"),
		},
		{
			name: "branches header",
			kind: reftree.KindHeader,
			path: "Branches",
			want: withAugmentation("Reload"),
		},
		{
			name: "remotes header",
			kind: reftree.KindHeader,
			path: "Remotes",
			want: withAugmentation("Reload", "Manage remotes..."),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			node := f.node(t, tc.kind, tc.path)
			for range 5 {
				opened := f.open(t, node)
				assert.Same(t, node, opened.Node)
				assert.Equal(t, tc.want, texts(opened.Items))
			}
		})
	}
}

func TestEmptySpaceOpensDefaultMenu(t *testing.T) {
	f := newFixture(t)
	opened := f.open(t, nil)
	assert.Same(t, f.menus.Default, opened.Menu)
	assert.Nil(t, opened.Node)
	assert.Equal(t, withAugmentation("Reload", "Manage remotes..."), texts(opened.Items))

	opened.Activate(opened.Menu.Find("Reload"))
	opened.Activate(opened.Menu.Find("Manage remotes..."))
	assert.Equal(t, []string{"reload", "remotes "}, f.host.calls)
}

func TestRemotesHeaderOpensManageRemotes(t *testing.T) {
	f := newFixture(t)
	header := f.node(t, reftree.KindHeader, "Remotes")
	opened := f.open(t, header)
	assert.Same(t, f.menus.Header, opened.Menu)

	opened.Activate(opened.Menu.Find("Manage remotes..."))
	assert.Equal(t, []string{""}, f.dialogs.managed)
	assert.Empty(t, f.host.calls)

	// Switching to another section header hides the entry again.
	tags := f.open(t, f.node(t, reftree.KindHeader, "Tags"))
	assert.NotContains(t, texts(tags.Items), "Manage remotes...")
}

func TestRemoteGroupsBeforeFirstOpen(t *testing.T) {
	f := newFixture(t)
	got := texts(f.menus.RemoteRepo.Visible())
	for _, text := range []string{"Fetch all branches", "Disable", "Prune"} {
		assert.Contains(t, got, text)
	}
	for _, text := range []string{"Enable", "Enable and fetch"} {
		assert.NotContains(t, got, text)
	}
}

func TestAugmentationNeverDuplicates(t *testing.T) {
	f := newFixture(t)
	nodes := []reftree.Node{
		f.node(t, reftree.KindLocalBranch, "main"),
		f.node(t, reftree.KindRemoteRepo, "origin"),
		f.node(t, reftree.KindTag, "v1.0.0"),
		f.node(t, reftree.KindHeader, "Remotes"),
		nil,
	}
	for range 10 {
		for _, n := range nodes {
			f.open(t, n)
		}
	}
	for _, m := range f.actions.Registry().Menus() {
		items := m.Items()
		assert.Equal(t, 1, countItems(items, "Collapse all"), m.Name)
		assert.Equal(t, 1, countItems(items, "Expand all"), m.Name)
		last := items[len(items)-3:]
		assert.Equal(t, augmentation, texts(last), m.Name)
	}
}

func TestActiveToggleUpdatesVisibility(t *testing.T) {
	f := newFixture(t)
	branch := f.node(t, reftree.KindLocalBranch, "feature/login").(*reftree.LocalBranchNode)
	for _, active := range []bool{true, false, true, false} {
		branch.IsActive = active
		opened := f.open(t, branch)
		got := texts(opened.Items)
		if active {
			assert.NotContains(t, got, "Checkout")
			assert.NotContains(t, got, "Delete")
		} else {
			assert.Contains(t, got, "Checkout")
			assert.Contains(t, got, "Delete")
		}
		assert.Contains(t, got, "Rename...")
	}
}

func TestRemoteGroupsArePartitioned(t *testing.T) {
	f := newFixture(t)
	remote := f.node(t, reftree.KindRemoteRepo, "origin").(*reftree.RemoteRepoNode)
	enabledGroup := []string{"Fetch all branches", "Disable", "Prune"}
	disabledGroup := []string{"Enable", "Enable and fetch"}
	for _, enabled := range []bool{true, false, false, true} {
		remote.Enabled = enabled
		got := texts(f.open(t, remote).Items)
		show, hide := enabledGroup, disabledGroup
		if !enabled {
			show, hide = hide, show
		}
		for _, text := range show {
			assert.Contains(t, got, text)
		}
		for _, text := range hide {
			assert.NotContains(t, got, text)
		}
	}
}

func TestActivateKindMismatchIsNoop(t *testing.T) {
	f := newFixture(t)
	fetch := f.menus.RemoteBranch.Find("Fetch")
	require.NotNil(t, fetch)

	f.actions.MouseClick(f.node(t, reftree.KindTag, "v1.0.0"), ButtonRight)
	assert.NotPanics(t, func() { f.actions.Activate(fetch) })
	assert.Empty(t, f.repo.calls)
	assert.Nil(t, f.actions.Clicked())

	assert.NotPanics(t, func() { f.actions.Activate(fetch) })
	assert.Empty(t, f.repo.calls)
}

func TestActivateRunsHandlerOnce(t *testing.T) {
	f := newFixture(t)
	remote := f.node(t, reftree.KindRemoteBranch, "origin/main")
	opened := f.open(t, remote)
	opened.Activate(opened.Menu.Find("Fetch"))
	assert.Equal(t, []string{"fetch-branch origin main"}, f.repo.calls)
	assert.Nil(t, f.actions.Clicked())
}

func TestActivateConsumesClickedNode(t *testing.T) {
	f := newFixture(t)
	checkout := f.menus.Tag.Find("Checkout")
	f.actions.MouseClick(f.node(t, reftree.KindTag, "v1.0.0"), ButtonRight)
	f.actions.Activate(checkout)
	f.actions.Activate(checkout)
	assert.Equal(t, []string{"checkout-detached v1.0.0"}, f.repo.calls)
}

func TestMouseClickOtherButtonClears(t *testing.T) {
	f := newFixture(t)
	node := f.node(t, reftree.KindTag, "v1.0.0")
	f.actions.MouseClick(node, ButtonRight)
	assert.Same(t, node, f.actions.Clicked())
	f.actions.MouseClick(node, ButtonLeft)
	assert.Nil(t, f.actions.Clicked())

	other := f.node(t, reftree.KindLocalBranch, "main")
	f.actions.MouseClick(node, ButtonRight)
	f.actions.MouseClick(other, ButtonRight)
	assert.Same(t, other, f.actions.Clicked())
}

func TestOpenedActivateUsesOwnNode(t *testing.T) {
	f := newFixture(t)
	first := f.open(t, f.node(t, reftree.KindRemoteRepo, "origin"))
	f.actions.MouseClick(f.node(t, reftree.KindTag, "v1.0.0"), ButtonRight)

	first.Activate(first.Menu.Find("Fetch all branches"))
	assert.Equal(t, []string{"fetch origin"}, f.repo.calls)
	assert.NotNil(t, f.actions.Clicked(), "a newer click is kept")
}

func TestFilterInRevisionGrid(t *testing.T) {
	f := newFixture(t)
	node := f.node(t, reftree.KindLocalBranch, "feature/login")
	opened := f.open(t, node)
	assert.Same(t, f.menus.Branch, opened.Menu)

	opened.Activate(opened.Menu.Find("Filter in revision grid"))
	assert.Equal(t, []filterCall{{path: "feature/login", refresh: true}}, f.filter.calls)
	assert.Empty(t, f.repo.calls, "no remote branch handler ran")
}

func TestOpenCanBeCanceled(t *testing.T) {
	f := newFixture(t)
	var ran bool
	actions := NewActions(f.actions.Registry(),
		func(e *OpeningEvent) { e.Cancel = e.Node == nil },
		func(*OpeningEvent) { ran = true },
	)
	actions.MouseClick(nil, ButtonRight)
	_, ok := actions.Open()
	assert.False(t, ok)
	assert.False(t, ran)

	actions.MouseClick(f.node(t, reftree.KindTag, "v1.0.0"), ButtonRight)
	_, ok = actions.Open()
	assert.True(t, ok)
	assert.True(t, ran)
}

func TestRegistry(t *testing.T) {
	def := NewMenu("default")
	tags := NewMenu("tags")
	r := NewRegistry(def)
	require.NoError(t, r.Register(reftree.KindTag, tags))
	err := r.Register(reftree.KindTag, NewMenu("other"))
	require.ErrorIs(t, err, ErrKindRegistered)

	f := newFixture(t)
	assert.Same(t, tags, r.Resolve(f.node(t, reftree.KindTag, "v1.0.0")))
	assert.Same(t, def, r.Resolve(f.node(t, reftree.KindLocalBranch, "main")))
	assert.Same(t, def, r.Resolve(nil))
	assert.Equal(t, []*Menu{tags, def}, r.Menus())
}

func TestOpenWithoutDefaultMenu(t *testing.T) {
	actions := NewActions(NewRegistry(nil))
	_, ok := actions.Open()
	assert.False(t, ok)
}
