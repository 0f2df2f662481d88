package git

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5/config"
)

// Fetch fetches remote using its configured refspecs.
func (s *Service) Fetch(ctx context.Context, remote string) error {
	if err := s.requireRemote(remote); err != nil {
		return err
	}
	_, err := s.runGitCommand(ctx, []string{"fetch", "--", remote}, "git fetch")
	return err
}

// FetchBranch updates a single remote tracking branch.
func (s *Service) FetchBranch(ctx context.Context, remote, branch string) error {
	if err := s.requireRemote(remote); err != nil {
		return err
	}
	spec := config.RefSpec(fmt.Sprintf("+refs/heads/%s:refs/remotes/%s/%s", branch, remote, branch))
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("fetch %s/%s: %w", remote, branch, err)
	}
	_, err := s.runGitCommand(ctx, []string{"fetch", "--", remote, spec.String()}, "git fetch")
	return err
}

// DeleteRemoteBranch deletes branch on the remote and drops its tracking ref.
func (s *Service) DeleteRemoteBranch(ctx context.Context, remote, branch string) error {
	if err := s.requireRemote(remote); err != nil {
		return err
	}
	_, err := s.runGitCommand(ctx, []string{"push", remote, "--delete", branch}, "git push --delete")
	return err
}

// Prune removes tracking branches whose remote counterpart is gone.
func (s *Service) Prune(ctx context.Context, remote string) error {
	if err := s.requireRemote(remote); err != nil {
		return err
	}
	_, err := s.runGitCommand(ctx, []string{"remote", "prune", remote}, "git remote prune")
	return err
}

// SetRemoteEnabled toggles remote.<name>.skipFetchAll, which is how a remote
// is left out of "fetch all" style operations.
func (s *Service) SetRemoteEnabled(ctx context.Context, remote string, enabled bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.repo.Config()
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if _, ok := cfg.Remotes[remote]; !ok {
		return fmt.Errorf("remote %s: %w", remote, ErrRemoteNotFound)
	}
	sub := cfg.Raw.Section(remoteSection).Subsection(remote)
	if enabled {
		sub.RemoveOption(skipFetchAllOption)
	} else {
		sub.SetOption(skipFetchAllOption, "true")
	}
	if err := s.repo.SetConfig(cfg); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (s *Service) Remotes() ([]Remote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, err := s.repo.Config()
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return remotesFromConfig(cfg), nil
}

func (s *Service) requireRemote(remote string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.repo.Remote(remote); err != nil {
		return fmt.Errorf("remote %s: %w", remote, ErrRemoteNotFound)
	}
	return nil
}
