package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
)

// ValidBranchName reports whether name is acceptable as a new branch name.
// It covers the rules of git check-ref-format that matter for user input.
func ValidBranchName(name string) bool {
	if name == "" || name == "HEAD" || name == "@" {
		return false
	}
	if strings.HasPrefix(name, "-") || strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") {
		return false
	}
	if strings.HasSuffix(name, ".") || strings.HasSuffix(name, ".lock") {
		return false
	}
	if strings.Contains(name, "..") || strings.Contains(name, "//") || strings.Contains(name, "@{") {
		return false
	}
	for _, r := range name {
		if r <= ' ' || r == 0x7f || strings.ContainsRune("~^:?*[\\", r) {
			return false
		}
	}
	for _, part := range strings.Split(name, "/") {
		if strings.HasPrefix(part, ".") {
			return false
		}
	}
	return true
}

// CreateBranch creates name pointing at start without checking it out.
func (s *Service) CreateBranch(ctx context.Context, name, start string) error {
	if !ValidBranchName(name) {
		return fmt.Errorf("create branch %q: %w", name, ErrInvalidName)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	refName := plumbing.NewBranchReferenceName(name)
	if _, err := s.repo.Reference(refName, false); err == nil {
		return fmt.Errorf("create branch %s: %w", name, ErrBranchExists)
	}
	hash, err := s.resolveLocked(start)
	if err != nil {
		return fmt.Errorf("create branch %s: %w", name, err)
	}
	if err := s.repo.Storer.SetReference(plumbing.NewHashReference(refName, hash)); err != nil {
		return fmt.Errorf("create branch %s: %w", name, err)
	}
	return nil
}

// RenameBranch moves the branch ref, its tracking config, and HEAD when the
// branch is checked out.
func (s *Service) RenameBranch(ctx context.Context, oldName, newName string) error {
	if !ValidBranchName(newName) {
		return fmt.Errorf("rename branch to %q: %w", newName, ErrInvalidName)
	}
	if oldName == newName {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	oldRef, err := s.repo.Reference(plumbing.NewBranchReferenceName(oldName), false)
	if err != nil {
		return fmt.Errorf("rename branch %s: %w", oldName, err)
	}
	newRefName := plumbing.NewBranchReferenceName(newName)
	if _, err := s.repo.Reference(newRefName, false); err == nil {
		return fmt.Errorf("rename branch %s: %w", newName, ErrBranchExists)
	}
	if err := s.repo.Storer.SetReference(plumbing.NewHashReference(newRefName, oldRef.Hash())); err != nil {
		return fmt.Errorf("rename branch %s: %w", oldName, err)
	}
	head, err := s.headBranchLocked()
	if err != nil {
		return err
	}
	if head == oldName {
		if err := s.repo.Storer.SetReference(plumbing.NewSymbolicReference(plumbing.HEAD, newRefName)); err != nil {
			return fmt.Errorf("rename branch %s: update HEAD: %w", oldName, err)
		}
	}
	if err := s.repo.Storer.RemoveReference(oldRef.Name()); err != nil {
		return fmt.Errorf("rename branch %s: %w", oldName, err)
	}

	cfg, err := s.repo.Config()
	if err != nil {
		return fmt.Errorf("rename branch %s: read config: %w", oldName, err)
	}
	if b, ok := cfg.Branches[oldName]; ok {
		if err := s.repo.DeleteBranch(oldName); err != nil {
			return fmt.Errorf("rename branch %s: %w", oldName, err)
		}
		moved := &config.Branch{Name: newName, Remote: b.Remote, Merge: b.Merge, Rebase: b.Rebase}
		if err := s.repo.CreateBranch(moved); err != nil {
			return fmt.Errorf("rename branch %s: %w", oldName, err)
		}
	}
	return nil
}

// DeleteBranch removes a local branch. The checked out branch is refused.
func (s *Service) DeleteBranch(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	head, err := s.headBranchLocked()
	if err != nil {
		return err
	}
	if head == name {
		return fmt.Errorf("delete branch %s: %w", name, ErrBranchCheckedOut)
	}
	refName := plumbing.NewBranchReferenceName(name)
	if _, err := s.repo.Reference(refName, false); err != nil {
		return fmt.Errorf("delete branch %s: %w", name, err)
	}
	if err := s.repo.Storer.RemoveReference(refName); err != nil {
		return fmt.Errorf("delete branch %s: %w", name, err)
	}
	if err := s.repo.DeleteBranch(name); err != nil && !errors.Is(err, gitlib.ErrBranchNotFound) {
		return fmt.Errorf("delete branch %s: config: %w", name, err)
	}
	return nil
}

func (s *Service) DeleteTag(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Repository.DeleteTag(name); err != nil {
		return fmt.Errorf("delete tag %s: %w", name, err)
	}
	return nil
}

func (s *Service) Checkout(ctx context.Context, branch string) error {
	branch = strings.TrimSpace(branch)
	if branch == "" {
		return fmt.Errorf("branch not specified")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.runGitCommand(ctx, []string{"switch", "--", branch}, "git switch")
	return err
}

// CheckoutDetached checks out rev with a detached HEAD (tags, remote branches).
func (s *Service) CheckoutDetached(ctx context.Context, rev string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.runGitCommand(ctx, []string{"switch", "--detach", rev}, "git switch --detach")
	return err
}

// CheckoutNewBranch creates name at start and checks it out. With track set,
// start must be a remote tracking branch and becomes the upstream.
func (s *Service) CheckoutNewBranch(ctx context.Context, name, start string, track bool) error {
	if !ValidBranchName(name) {
		return fmt.Errorf("checkout new branch %q: %w", name, ErrInvalidName)
	}
	args := []string{"switch", "-c", name}
	if track {
		args = append(args, "--track")
	} else {
		args = append(args, "--no-track")
	}
	args = append(args, start)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.runGitCommand(ctx, args, "git switch -c")
	return err
}

// Merge merges rev into the checked out branch.
func (s *Service) Merge(ctx context.Context, rev string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.runGitCommand(ctx, []string{"merge", "--no-edit", rev}, "git merge")
	return err
}

// Rebase rebases the checked out branch onto rev.
func (s *Service) Rebase(ctx context.Context, rev string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.runGitCommand(ctx, []string{"rebase", rev}, "git rebase")
	return err
}
