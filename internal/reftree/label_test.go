package reftree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabel(t *testing.T) {
	f := newFixture(sampleRefs())
	tests := []struct {
		kind Kind
		path string
		want string
	}{
		{KindLocalBranch, "main", "* main  -> origin/main"},
		{KindLocalBranch, "feature/login", "login"},
		{KindBranchPath, "feature", "feature/"},
		{KindRemoteRepo, "origin", "origin"},
		{KindRemoteRepo, "upstream", "upstream (disabled)"},
		{KindRemoteBranch, "origin/main", "main"},
		{KindTag, "v1.0.0", "v1.0.0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Label(f.find(tt.kind, tt.path)), tt.path)
	}

	roots := f.tree.Roots()
	assert.Equal(t, "Branches (3)", Label(roots[0]))
	assert.Equal(t, "Remotes (3)", Label(roots[1]))
	assert.Equal(t, "Tags (1)", Label(roots[2]))
}

func TestCountLeavesEmpty(t *testing.T) {
	f := newFixture(sampleRefs())
	assert.Zero(t, CountLeaves(f.find(KindRemoteRepo, "upstream")))
	assert.Equal(t, 2, CountLeaves(f.find(KindBranchPath, "feature")))
}

func TestDepth(t *testing.T) {
	f := newFixture(sampleRefs())
	assert.Equal(t, 0, Depth(f.tree.Roots()[0]))
	assert.Equal(t, 1, Depth(f.find(KindLocalBranch, "main")))
	assert.Equal(t, 3, Depth(f.find(KindLocalBranch, "feature/ui/theme")))
	assert.Equal(t, 3, Depth(f.find(KindRemoteBranch, "origin/feature/login")))
}
