package contextmenu

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thiagokokada/gitk-refs/internal/git"
	"github.com/thiagokokada/gitk-refs/internal/reftree"
)

// recordingRepo implements the repository calls the menus can reach.
type recordingRepo struct {
	reftree.Repository
	calls []string
}

func (r *recordingRepo) record(format string, args ...any) error {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
	return nil
}

func (r *recordingRepo) Checkout(_ context.Context, branch string) error {
	return r.record("checkout %s", branch)
}

func (r *recordingRepo) CheckoutDetached(_ context.Context, rev string) error {
	return r.record("checkout-detached %s", rev)
}

func (r *recordingRepo) Merge(_ context.Context, rev string) error {
	return r.record("merge %s", rev)
}

func (r *recordingRepo) Fetch(_ context.Context, remote string) error {
	return r.record("fetch %s", remote)
}

func (r *recordingRepo) FetchBranch(_ context.Context, remote, branch string) error {
	return r.record("fetch-branch %s %s", remote, branch)
}

func (r *recordingRepo) SetRemoteEnabled(_ context.Context, remote string, enabled bool) error {
	return r.record("set-enabled %s %t", remote, enabled)
}

func (r *recordingRepo) DeleteBranch(_ context.Context, name string) error {
	return r.record("delete %s", name)
}

// acceptDialogs confirms everything and records remote dialog requests.
type acceptDialogs struct {
	managed []string
}

func (*acceptDialogs) PromptName(string, string) (string, bool) { return "", false }
func (*acceptDialogs) Confirm(string, string) bool              { return true }
func (d *acceptDialogs) ManageRemotes(remote string)            { d.managed = append(d.managed, remote) }

type fakeHost struct {
	calls []string
}

func (h *fakeHost) CollapseAll()                { h.calls = append(h.calls, "collapse") }
func (h *fakeHost) ExpandAll()                  { h.calls = append(h.calls, "expand") }
func (h *fakeHost) Reload()                     { h.calls = append(h.calls, "reload") }
func (h *fakeHost) ManageRemotes(remote string) { h.calls = append(h.calls, "remotes "+remote) }

type filterCall struct {
	path    string
	refresh bool
}

type fakeFilter struct {
	calls []filterCall
}

func (f *fakeFilter) SetBranchFilter(path string, refresh bool) {
	f.calls = append(f.calls, filterCall{path: path, refresh: refresh})
}

type fixture struct {
	actions *Actions
	menus   Menus
	tree    *reftree.Tree
	repo    *recordingRepo
	host    *fakeHost
	filter  *fakeFilter
	dialogs *acceptDialogs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{repo: &recordingRepo{}, host: &fakeHost{}, filter: &fakeFilter{}, dialogs: &acceptDialogs{}}
	runner := reftree.RunnerFunc(func(_ string, op func(ctx context.Context) error) {
		require.NoError(t, op(context.Background()))
	})
	f.tree = reftree.Build(git.Refs{
		Head: "main",
		Branches: []git.Branch{
			{Name: "main", Hash: "b0"},
			{Name: "feature/login", Hash: "b1"},
		},
		RemoteBranches: []git.RemoteBranch{{Remote: "origin", Name: "main", Hash: "r0"}},
		Tags:           []git.Tag{{Name: "v1.0.0", Hash: "t0"}},
		Remotes: []git.Remote{
			{Name: "origin", Enabled: true},
			{Name: "upstream", Enabled: false},
		},
	}, reftree.Deps{Repo: f.repo, Runner: runner, Dialogs: f.dialogs})

	var err error
	f.actions, f.menus, err = Setup(f.host, f.filter)
	require.NoError(t, err)
	return f
}

func (f *fixture) node(t *testing.T, kind reftree.Kind, path string) reftree.Node {
	t.Helper()
	n, ok := f.tree.Find(kind, path)
	require.True(t, ok, "%s %s", kind, path)
	return n
}

// open right-clicks node and opens its menu.
func (f *fixture) open(t *testing.T, node reftree.Node) Opened {
	t.Helper()
	f.actions.MouseClick(node, ButtonRight)
	opened, ok := f.actions.Open()
	require.True(t, ok)
	return opened
}

func texts(items []*Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it.Separator {
			out = append(out, "-")
			continue
		}
		out = append(out, it.Text)
	}
	return out
}

func countItems(items []*Item, text string) int {
	var n int
	for _, it := range items {
		if texts([]*Item{it})[0] == text {
			n++
		}
	}
	return n
}
