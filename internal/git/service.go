package git

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

const DefaultCommitLimit = 200

var (
	ErrBranchCheckedOut = errors.New("branch is checked out")
	ErrBranchExists     = errors.New("branch already exists")
	ErrRemoteNotFound   = errors.New("remote not found")
	ErrInvalidName      = errors.New("invalid ref name")
)

type Service struct {
	// mu serializes access to the ref storage and the repository config.
	mu sync.Mutex

	repo repoState
}

type repoState struct {
	*gitlib.Repository
	path string
}

func Open(repoPath string) (*Service, error) {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, err
	}
	repo, err := gitlib.PlainOpenWithOptions(abs, &gitlib.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	if wt, err := repo.Worktree(); err == nil {
		abs = wt.Filesystem.Root()
	}
	slog.Debug("repository opened", slog.String("path", abs))
	return &Service{repo: repoState{path: abs, Repository: repo}}, nil
}

func (s *Service) RepoPath() string {
	return s.repo.path
}

// headBranchLocked returns the short name of the branch HEAD points at, or ""
// when HEAD is detached. It also handles unborn branches.
func (s *Service) headBranchLocked() (string, error) {
	ref, err := s.repo.Storer.Reference(plumbing.HEAD)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	if ref.Type() != plumbing.SymbolicReference || !ref.Target().IsBranch() {
		return "", nil
	}
	return ref.Target().Short(), nil
}

func (s *Service) resolveLocked(rev string) (plumbing.Hash, error) {
	hash, err := s.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolve %s: %w", rev, err)
	}
	return *hash, nil
}
