package gui

import (
	"github.com/thiagokokada/gitk-refs/internal/contextmenu"
	"github.com/thiagokokada/gitk-refs/internal/git"
	"github.com/thiagokokada/gitk-refs/internal/reftree"
	. "modernc.org/tk9.0"
)

type Controller struct {
	svc *git.Service

	cfg   controllerConfig
	repo  controllerRepo
	theme controllerTheme

	ui appWidgets

	state controllerState
}

type controllerConfig struct {
	commitLimit         int
	autoReloadRequested bool
	confirmDelete       bool
	verbose             bool
}

type controllerRepo struct {
	path string
	head string
}

type controllerTheme struct {
	pref    ThemePreference
	palette colorPalette
}

type controllerState struct {
	refs      refsState
	menus     menuState
	commits   commitListState
	jobs      jobState
	remotes   remotesDialogState
	watch     autoReloadState
	shortcuts shortcutsState
}

type refsState struct {
	tree  *reftree.Tree
	rows  map[string]reftree.Node
	keys  map[string]string
	open  map[string]bool
	ready bool
}

type menuState struct {
	actions *contextmenu.Actions
	menus   contextmenu.Menus
	widgets map[*contextmenu.Menu]*MenuWidget
	hints   map[*MenuWidget][]string
}

type jobState struct {
	running int
}

type shortcutsState struct {
	window *ToplevelWidget
}

type appWidgets struct {
	status       *TLabelWidget
	repoLabel    *TLabelWidget
	reloadButton *TButtonWidget
	refTree      *TTreeviewWidget
	commitTitle  *TLabelWidget
	commitList   *TTreeviewWidget
}
