package reftree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thiagokokada/gitk-refs/internal/git"
)

func childNames(n Node) []string {
	var names []string
	for _, c := range n.Children() {
		names = append(names, c.Name())
	}
	return names
}

func TestBuildSections(t *testing.T) {
	f := newFixture(sampleRefs())
	roots := f.tree.Roots()
	require.Len(t, roots, 3)
	for i, want := range []Section{SectionBranches, SectionRemotes, SectionTags} {
		h, ok := roots[i].(*HeaderNode)
		require.True(t, ok)
		assert.Equal(t, want, h.Section)
		assert.Equal(t, want.String(), h.Name())
		assert.Nil(t, h.Parent())
	}
	assert.Equal(t, "main", f.tree.Head())
}

func TestBuildGroupsBranchPaths(t *testing.T) {
	f := newFixture(sampleRefs())
	branches := f.tree.Roots()[0]
	assert.Equal(t, []string{"feature", "main"}, childNames(branches))

	feature := f.find(KindBranchPath, "feature")
	assert.Equal(t, []string{"ui", "login"}, childNames(feature))
	assert.Empty(t, feature.(*BranchPathNode).Remote)

	theme := f.find(KindLocalBranch, "feature/ui/theme").(*LocalBranchNode)
	assert.Equal(t, "theme", theme.Name())
	assert.Equal(t, "b2", theme.Hash)
	assert.Equal(t, "feature/ui", theme.Parent().FullPath())
	assert.False(t, theme.IsActive)
}

func TestBuildMarksActiveBranch(t *testing.T) {
	f := newFixture(sampleRefs())
	main := f.find(KindLocalBranch, "main").(*LocalBranchNode)
	assert.True(t, main.IsActive)
	assert.Equal(t, "origin/main", main.Upstream)

	refs := sampleRefs()
	refs.Head = ""
	f = newFixture(refs)
	f.tree.Walk(func(n Node) bool {
		if b, ok := n.(*LocalBranchNode); ok {
			assert.False(t, b.IsActive, b.FullPath())
		}
		return true
	})
}

func TestBuildRemotes(t *testing.T) {
	f := newFixture(sampleRefs())
	remotes := f.tree.Roots()[1]
	assert.Equal(t, []string{"origin", "stale", "upstream"}, childNames(remotes))

	origin := f.find(KindRemoteRepo, "origin").(*RemoteRepoNode)
	assert.True(t, origin.Enabled)
	assert.Equal(t, []string{"https://example.com/repo.git"}, origin.URLs)
	assert.Equal(t, []string{"feature", "main"}, childNames(origin))

	group := f.find(KindBranchPath, "origin/feature").(*BranchPathNode)
	assert.Equal(t, "origin", group.Remote)

	login := f.find(KindRemoteBranch, "origin/feature/login").(*RemoteBranchNode)
	assert.Equal(t, "origin", login.Remote)
	assert.Equal(t, "feature/login", login.Branch)
	assert.Equal(t, "login", login.Name())

	upstream := f.find(KindRemoteRepo, "upstream").(*RemoteRepoNode)
	assert.False(t, upstream.Enabled)
	assert.Empty(t, upstream.Children())

	stale := f.find(KindRemoteRepo, "stale").(*RemoteRepoNode)
	assert.Empty(t, stale.URLs)
	assert.Equal(t, []string{"old"}, childNames(stale))
}

func TestBuildTags(t *testing.T) {
	f := newFixture(sampleRefs())
	tag := f.find(KindTag, "v1.0.0").(*TagNode)
	assert.Equal(t, "t0", tag.Hash)
	assert.Equal(t, KindHeader, tag.Parent().Kind())
}

func TestBuildEmptySnapshot(t *testing.T) {
	f := newFixture(git.Refs{})
	require.Len(t, f.tree.Roots(), 3)
	for _, r := range f.tree.Roots() {
		assert.Empty(t, r.Children())
	}
	assert.False(t, f.tree.HasLocalBranch("main"))
}

func TestWalkStops(t *testing.T) {
	f := newFixture(sampleRefs())
	var visited int
	f.tree.Walk(func(Node) bool {
		visited++
		return visited < 3
	})
	assert.Equal(t, 3, visited)
}

func TestFindMissing(t *testing.T) {
	f := newFixture(sampleRefs())
	_, ok := f.tree.Find(KindLocalBranch, "origin/main")
	assert.False(t, ok)
	_, ok = f.tree.Find(KindTag, "main")
	assert.False(t, ok)
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		raw     string
		want    Kind
		wantErr bool
	}{
		{raw: "branch", want: KindLocalBranch},
		{raw: " Remote-Branch ", want: KindRemoteBranch},
		{raw: "tag", want: KindTag},
		{raw: "branch-path", want: KindBranchPath},
		{raw: "remote", want: KindRemoteRepo},
		{raw: "header", want: KindHeader},
		{raw: "commit", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ParseKind(tc.raw)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want, mustParse(t, got.String()))
		})
	}
	assert.Equal(t, "Kind(42)", Kind(42).String())
}

func mustParse(t *testing.T, raw string) Kind {
	t.Helper()
	k, err := ParseKind(raw)
	require.NoError(t, err)
	return k
}
