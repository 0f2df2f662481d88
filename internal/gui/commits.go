package gui

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/thiagokokada/gitk-refs/internal/git"
	"github.com/thiagokokada/gitk-refs/internal/gui/tkutil"
	. "modernc.org/tk9.0"
)

const maxSummaryLen = 80

// commitListState is the revision list next to the ref tree. It shows the
// commits reachable from the branch picked with "Filter in revision grid".
type commitListState struct {
	ctrl   *Controller
	branch string
	gen    int
}

func (c *commitListState) SetBranchFilter(path string, refresh bool) {
	c.branch = path
	if w := c.ctrl.ui.commitTitle; w != nil {
		w.Configure(Txt(commitListTitle(path)))
	}
	if refresh {
		c.load()
	}
}

func (c *commitListState) refreshIfShowing() {
	if c.branch != "" {
		c.load()
	}
}

func (c *commitListState) load() {
	c.gen++
	gen := c.gen
	a := c.ctrl
	svc, branch, limit := a.svc, c.branch, a.cfg.commitLimit
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), refsLoadTimeout)
		defer cancel()
		commits, err := svc.Commits(ctx, branch, limit)
		PostEvent(func() {
			if gen != c.gen {
				return
			}
			if err != nil {
				slog.Error("load commits", slog.String("branch", branch), slog.Any("error", err))
				a.setStatus(fmt.Sprintf("Unable to load commits of %s: %v", branch, err))
				return
			}
			c.render(commits)
		}, false)
	}()
}

func (c *commitListState) render(commits []git.Commit) {
	w := c.ctrl.ui.commitList
	if w == nil {
		return
	}
	if _, err := tkutil.Eval("%s delete [%s children {}]", w, w); err != nil {
		slog.Error("clear commit list", slog.Any("error", err))
	}
	for i, commit := range commits {
		summary, author, date := commitColumns(commit)
		w.Insert("", "end", Id("c"+strconv.Itoa(i)), Values(tclList(summary, author, date)))
	}
	c.ctrl.setStatus(fmt.Sprintf("Showing %d commits of %s.", len(commits), c.branch))
}

func commitListTitle(branch string) string {
	if branch == "" {
		return "Commits: double click a branch or use Filter in revision grid"
	}
	return "Commits of " + branch
}

func commitColumns(c git.Commit) (summary, author, date string) {
	summary = strings.TrimSpace(c.Summary())
	summary = truncateRunes(summary, maxSummaryLen)
	short := c.Hash
	if len(short) > 7 {
		short = short[:7]
	}
	summary = fmt.Sprintf("%s  %s", short, summary)
	author = fmt.Sprintf("%s <%s>", c.Author.Name, c.Author.Email)
	if !c.Author.When.IsZero() {
		date = c.Author.When.Format("2006-01-02 15:04")
	}
	return summary, author, date
}

// truncateRunes shortens s to at most limit runes, ending in "...".
func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-3]) + "..."
}

// tclList renders values as a Tcl list, one element per value.
func tclList(values ...string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = tclQuote(v)
	}
	return strings.Join(parts, " ")
}

func tclQuote(s string) string {
	if s == "" {
		return "{}"
	}
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\', '{', '}', '[', ']', '$', '"', ';', ' ':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
