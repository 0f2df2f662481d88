package gui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/thiagokokada/gitk-refs/internal/git"
	. "modernc.org/tk9.0"
)

const jobTimeout = 5 * time.Minute

// Run executes a repository job off the UI thread. Failures are logged and
// shown in a message box; the refs are reloaded either way.
func (a *Controller) Run(title string, op func(ctx context.Context) error) {
	a.state.jobs.running++
	a.setStatus(title + "...")
	slog.Debug("job started", slog.String("job", title))
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		err := op(ctx)
		PostEvent(func() {
			a.finishJob(title, err)
		}, false)
	}()
}

func (a *Controller) finishJob(title string, err error) {
	a.state.jobs.running--
	a.setStatus(jobStatus(title, err))
	if err != nil {
		slog.Error("job failed", slog.String("job", title), slog.Any("error", err))
		a.showError(title, errors.New(jobErrorMessage(err)))
	} else {
		slog.Debug("job done", slog.String("job", title))
	}
	a.reloadRefsAsync()
}

func jobStatus(title string, err error) string {
	if err != nil {
		return fmt.Sprintf("%s failed.", title)
	}
	return fmt.Sprintf("%s done.", title)
}

func jobErrorMessage(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("The operation timed out after %s.\n\n%v", jobTimeout, err)
	case errors.Is(err, git.ErrBranchCheckedOut):
		return fmt.Sprintf("Switch to another branch first.\n\n%v", err)
	case errors.Is(err, git.ErrRemoteNotFound):
		return fmt.Sprintf("The remote is not configured.\n\n%v", err)
	case errors.Is(err, git.ErrInvalidName):
		return fmt.Sprintf("Not a valid branch name.\n\n%v", err)
	default:
		return err.Error()
	}
}
