package git

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// gitExecutable is swapped in tests.
var gitExecutable = "git"

// runGitCommand runs git inside the repository. Used for operations go-git
// does not cover (merge, rebase, prune) and for network operations, which need
// the user's credential helpers.
func (s *Service) runGitCommand(ctx context.Context, args []string, desc string) (string, error) {
	if s.repo.path == "" {
		return "", fmt.Errorf("repository root not set")
	}
	if _, err := GitVersion(); err != nil {
		return "", fmt.Errorf("%s: %w", desc, err)
	}
	cmdArgs := append([]string{"-C", s.repo.path}, args...)
	cmd := exec.CommandContext(ctx, gitExecutable, cmdArgs...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	slog.Debug("git command", slog.String("desc", desc), slog.Any("args", args))
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("%s: %w", desc, ctxErr)
		}
		if stderr.Len() > 0 {
			return "", fmt.Errorf("%s: %w: %s", desc, err, strings.TrimSpace(stderr.String()))
		}
		return "", fmt.Errorf("%s: %w", desc, err)
	}
	return stdout.String(), nil
}
