package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

var errLimitReached = errors.New("limit reached")

// Commits returns up to limit commits reachable from rev, newest first.
func (s *Service) Commits(ctx context.Context, rev string, limit int) ([]Commit, error) {
	if limit <= 0 {
		limit = DefaultCommitLimit
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	from, err := s.resolveLocked(rev)
	if err != nil {
		return nil, err
	}
	iter, err := s.repo.Log(&gitlib.LogOptions{From: from, Order: gitlib.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("read commits: %w", err)
	}
	defer iter.Close()

	commits := make([]Commit, 0, limit)
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		commits = append(commits, commitFromObject(c))
		if len(commits) >= limit {
			return errLimitReached
		}
		return nil
	})
	if err != nil && !errors.Is(err, errLimitReached) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("iterate commits: %w", err)
	}
	slog.Debug("commits loaded", slog.String("rev", rev), slog.Int("count", len(commits)))
	return commits, nil
}

func commitFromObject(c *object.Commit) Commit {
	return Commit{
		Hash: c.Hash.String(),
		Author: Signature{
			Name:  c.Author.Name,
			Email: c.Author.Email,
			When:  c.Author.When,
		},
		Message: c.Message,
	}
}
