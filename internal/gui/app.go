package gui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/thiagokokada/gitk-refs/internal/contextmenu"
	"github.com/thiagokokada/gitk-refs/internal/git"
	"github.com/thiagokokada/gitk-refs/internal/reftree"

	. "modernc.org/tk9.0"
	_ "modernc.org/tk9.0/themes/azure" // load theme
)

const refsLoadTimeout = 30 * time.Second

// RunConfig describes the parameters that control the GUI runtime.
type RunConfig struct {
	RepoPath        string
	CommitLimit     int
	ThemePreference ThemePreference
	AutoReload      bool
	ConfirmDelete   bool
	Verbose         bool
}

func Run(cfg RunConfig) error {
	if cfg.RepoPath == "" {
		cfg.RepoPath = "."
	}
	if err := InitializeExtension("eval"); err != nil && !errors.Is(err, AlreadyInitialized) {
		return fmt.Errorf("init eval extension: %w", err)
	}
	svc, err := git.Open(cfg.RepoPath)
	if err != nil {
		return err
	}
	pref := cfg.ThemePreference
	if pref < ThemeAuto || pref > ThemeDark {
		pref = ThemeAuto
	}
	limit := cfg.CommitLimit
	if limit <= 0 {
		limit = git.DefaultCommitLimit
	}
	app := &Controller{
		svc: svc,
		cfg: controllerConfig{
			commitLimit:         limit,
			autoReloadRequested: cfg.AutoReload,
			confirmDelete:       cfg.ConfirmDelete,
			verbose:             cfg.Verbose,
		},
		repo: controllerRepo{
			path: svc.RepoPath(),
		},
		theme: controllerTheme{
			pref: pref,
		},
	}
	app.state.commits.ctrl = app
	return app.run()
}

func (a *Controller) run() error {
	defer a.shutdown()
	a.theme.palette = paletteForPreference(a.theme.pref)
	if a.theme.palette.ThemeName != "" {
		err := ActivateTheme(a.theme.palette.ThemeName)
		if err != nil {
			slog.Error(
				"activate theme",
				slog.String("theme", a.theme.palette.ThemeName),
				slog.Any("error", err),
			)
		}
	}
	level := slog.LevelInfo
	if a.cfg.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	actions, menus, err := contextmenu.Setup(a, &a.state.commits)
	if err != nil {
		return fmt.Errorf("context menus: %w", err)
	}
	a.state.menus.actions = actions
	a.state.menus.menus = menus

	applyAppIcon()
	a.buildUI()
	a.initAutoReload(a.cfg.autoReloadRequested)
	a.setStatus("Loading refs...")
	a.reloadRefsAsync()
	App.WmTitle("gitk-refs")
	App.SetResizable(true, true)
	App.Center().Wait()
	return nil
}

// Reload reads the refs again and rebuilds the tree.
func (a *Controller) Reload() {
	a.reloadRefsAsync()
}

func (a *Controller) reloadRefsAsync() {
	svc := a.svc
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), refsLoadTimeout)
		defer cancel()
		refs, err := svc.Refs(ctx)
		PostEvent(func() {
			if svc != a.svc {
				return
			}
			if err != nil {
				slog.Error("load refs", slog.Any("error", err))
				a.setStatus(fmt.Sprintf("Unable to load refs: %v", err))
				return
			}
			a.applyRefs(refs)
		}, false)
	}()
}

func (a *Controller) applyRefs(refs git.Refs) {
	tree := reftree.Build(refs, reftree.Deps{Repo: a.svc, Runner: a, Dialogs: a})
	a.state.refs.tree = tree
	a.repo.head = refs.Head
	a.renderRefTree()
	a.updateRepoLabel()
	a.state.commits.refreshIfShowing()
	a.refreshRemotesDialog("")
	if a.state.jobs.running == 0 {
		a.setStatus(refsSummary(refs, a.repo.path))
	}
}

func refsSummary(refs git.Refs, path string) string {
	head := refs.Head
	if head == "" {
		head = "detached HEAD"
	}
	return fmt.Sprintf("%d branches, %d remote branches, %d tags on %s - %s",
		len(refs.Branches), len(refs.RemoteBranches), len(refs.Tags), head, path)
}

func (a *Controller) setStatus(msg string) {
	text := msg
	PostEvent(func() {
		if a.ui.status != nil {
			a.ui.status.Configure(Txt(text))
		}
	}, false)
}

func (a *Controller) showError(title string, err error) {
	MessageBox(
		Parent(App),
		Title(title),
		Icon("error"),
		Msg(err.Error()),
		Type("ok"),
	)
}
