package reftree

import (
	"context"
	"fmt"
	"strings"

	"github.com/thiagokokada/gitk-refs/internal/git"
)

// fakeRepo records each call as "op arg...".
type fakeRepo struct {
	calls []string
	fail  map[string]error
}

func (r *fakeRepo) record(op string, args ...any) error {
	parts := []string{op}
	for _, a := range args {
		parts = append(parts, fmt.Sprint(a))
	}
	r.calls = append(r.calls, strings.Join(parts, " "))
	return r.fail[op]
}

func (r *fakeRepo) CreateBranch(_ context.Context, name, start string) error {
	return r.record("create", name, start)
}

func (r *fakeRepo) RenameBranch(_ context.Context, oldName, newName string) error {
	return r.record("rename", oldName, newName)
}

func (r *fakeRepo) DeleteBranch(_ context.Context, name string) error {
	return r.record("delete", name)
}

func (r *fakeRepo) DeleteTag(_ context.Context, name string) error {
	return r.record("delete-tag", name)
}

func (r *fakeRepo) Checkout(_ context.Context, branch string) error {
	return r.record("checkout", branch)
}

func (r *fakeRepo) CheckoutDetached(_ context.Context, rev string) error {
	return r.record("checkout-detached", rev)
}

func (r *fakeRepo) CheckoutNewBranch(_ context.Context, name, start string, track bool) error {
	return r.record("checkout-new", name, start, track)
}

func (r *fakeRepo) Merge(_ context.Context, rev string) error {
	return r.record("merge", rev)
}

func (r *fakeRepo) Rebase(_ context.Context, rev string) error {
	return r.record("rebase", rev)
}

func (r *fakeRepo) Fetch(_ context.Context, remote string) error {
	return r.record("fetch", remote)
}

func (r *fakeRepo) FetchBranch(_ context.Context, remote, branch string) error {
	return r.record("fetch-branch", remote, branch)
}

func (r *fakeRepo) DeleteRemoteBranch(_ context.Context, remote, branch string) error {
	return r.record("push-delete", remote, branch)
}

func (r *fakeRepo) Prune(_ context.Context, remote string) error {
	return r.record("prune", remote)
}

func (r *fakeRepo) SetRemoteEnabled(_ context.Context, remote string, enabled bool) error {
	return r.record("set-enabled", remote, enabled)
}

type fakeDialogs struct {
	name     string
	nameOK   bool
	confirm  bool
	prompts  []string
	confirms []string
	managed  []string
}

func (d *fakeDialogs) PromptName(title, initial string) (string, bool) {
	d.prompts = append(d.prompts, title+"|"+initial)
	return d.name, d.nameOK
}

func (d *fakeDialogs) Confirm(title, message string) bool {
	d.confirms = append(d.confirms, message)
	return d.confirm
}

func (d *fakeDialogs) ManageRemotes(remote string) {
	d.managed = append(d.managed, remote)
}

type jobResult struct {
	title string
	err   error
}

type fixture struct {
	tree    *Tree
	repo    *fakeRepo
	dialogs *fakeDialogs
	jobs    []jobResult
}

func sampleRefs() git.Refs {
	return git.Refs{
		Head: "main",
		Branches: []git.Branch{
			{Name: "feature/login", Hash: "b1"},
			{Name: "feature/ui/theme", Hash: "b2"},
			{Name: "main", Hash: "b0", Upstream: "origin/main"},
		},
		RemoteBranches: []git.RemoteBranch{
			{Remote: "origin", Name: "main", Hash: "r0"},
			{Remote: "origin", Name: "feature/login", Hash: "r1"},
			{Remote: "stale", Name: "old", Hash: "r2"},
		},
		Tags: []git.Tag{
			{Name: "v1.0.0", Hash: "t0"},
		},
		Remotes: []git.Remote{
			{Name: "origin", URLs: []string{"https://example.com/repo.git"}, Enabled: true},
			{Name: "upstream", URLs: []string{"https://example.com/up.git"}, Enabled: false},
		},
	}
}

// newFixture builds the sample tree with a runner executing jobs inline.
func newFixture(refs git.Refs) *fixture {
	f := &fixture{repo: &fakeRepo{}, dialogs: &fakeDialogs{confirm: true}}
	runner := RunnerFunc(func(title string, op func(ctx context.Context) error) {
		f.jobs = append(f.jobs, jobResult{title: title, err: op(context.Background())})
	})
	f.tree = Build(refs, Deps{Repo: f.repo, Runner: runner, Dialogs: f.dialogs})
	return f
}

func (f *fixture) find(kind Kind, path string) Node {
	n, ok := f.tree.Find(kind, path)
	if !ok {
		panic(fmt.Sprintf("node %s %q not found", kind, path))
	}
	return n
}
