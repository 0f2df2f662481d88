package git

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
)

const (
	remoteSection      = "remote"
	skipFetchAllOption = "skipFetchAll"
)

// Refs reads local branches, remote tracking branches, tags and remotes.
func (s *Service) Refs(ctx context.Context) (Refs, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	head, err := s.headBranchLocked()
	if err != nil {
		return Refs{}, err
	}
	cfg, err := s.repo.Config()
	if err != nil {
		return Refs{}, fmt.Errorf("read config: %w", err)
	}
	out := Refs{Head: head, Remotes: remotesFromConfig(cfg)}
	remoteNames := make([]string, 0, len(out.Remotes))
	for _, r := range out.Remotes {
		remoteNames = append(remoteNames, r.Name)
	}

	iter, err := s.repo.References()
	if err != nil {
		return Refs{}, fmt.Errorf("list references: %w", err)
	}
	defer iter.Close()
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		name := ref.Name()
		hash := ref.Hash().String()
		switch {
		case name.IsBranch():
			short := name.Short()
			out.Branches = append(out.Branches, Branch{Name: short, Hash: hash, Upstream: upstreamOf(cfg, short)})
		case name.IsRemote():
			remote, branch, ok := splitRemoteRef(strings.TrimPrefix(name.String(), "refs/remotes/"), remoteNames)
			if !ok || branch == "HEAD" {
				return nil
			}
			out.RemoteBranches = append(out.RemoteBranches, RemoteBranch{Remote: remote, Name: branch, Hash: hash})
		case name.IsTag():
			out.Tags = append(out.Tags, Tag{Name: name.Short(), Hash: hash})
		}
		return nil
	})
	if err != nil {
		return Refs{}, fmt.Errorf("iterate references: %w", err)
	}

	slices.SortFunc(out.Branches, func(a, b Branch) int { return strings.Compare(a.Name, b.Name) })
	slices.SortFunc(out.RemoteBranches, func(a, b RemoteBranch) int {
		return strings.Compare(a.FullName(), b.FullName())
	})
	slices.SortFunc(out.Tags, func(a, b Tag) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func remotesFromConfig(cfg *config.Config) []Remote {
	remotes := make([]Remote, 0, len(cfg.Remotes))
	for name, rc := range cfg.Remotes {
		remotes = append(remotes, Remote{
			Name:    name,
			URLs:    slices.Clone(rc.URLs),
			Enabled: !skipFetchAll(cfg, name),
		})
	}
	slices.SortFunc(remotes, func(a, b Remote) int { return strings.Compare(a.Name, b.Name) })
	return remotes
}

func skipFetchAll(cfg *config.Config, remote string) bool {
	if !cfg.Raw.HasSection(remoteSection) {
		return false
	}
	sec := cfg.Raw.Section(remoteSection)
	if !sec.HasSubsection(remote) {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(sec.Subsection(remote).Option(skipFetchAllOption)), "true")
}

func upstreamOf(cfg *config.Config, branch string) string {
	b, ok := cfg.Branches[branch]
	if !ok || b.Remote == "" || b.Remote == "." || !b.Merge.IsBranch() {
		return ""
	}
	return b.Remote + "/" + b.Merge.Short()
}

// splitRemoteRef splits "origin/feature/x" into remote and branch. Known
// remote names win over the first slash so remotes containing '/' work.
func splitRemoteRef(short string, remotes []string) (remote, branch string, ok bool) {
	best := ""
	for _, r := range remotes {
		if strings.HasPrefix(short, r+"/") && len(r) > len(best) {
			best = r
		}
	}
	if best != "" {
		return best, strings.TrimPrefix(short, best+"/"), true
	}
	remote, branch, ok = strings.Cut(short, "/")
	if !ok || remote == "" || branch == "" {
		return "", "", false
	}
	return remote, branch, true
}
