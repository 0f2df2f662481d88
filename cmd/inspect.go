package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thiagokokada/gitk-refs/internal/contextmenu"
	"github.com/thiagokokada/gitk-refs/internal/git"
	"github.com/thiagokokada/gitk-refs/internal/reftree"
)

var gitVersion = git.GitVersion

func newTreeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tree [repo]",
		Short: "Print the repository objects tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := opts.load(); err != nil {
				return err
			}
			tree, err := loadTree(cmd.Context(), repoArg(args))
			if err != nil {
				return err
			}
			printTree(cmd.OutOrStdout(), tree)
			return nil
		},
	}
}

func newMenuCmd(opts *rootOptions) *cobra.Command {
	var repo string
	var tooltips bool
	cmd := &cobra.Command{
		Use:   "menu <kind> <path>",
		Short: "Print the context menu shown for a node",
		Long: "Print the context menu shown for a node.\n\n" +
			"Kinds: header, branch, branch-path, remote-branch, remote, tag.\n" +
			"Paths are as shown by the tree command, e.g. feature/login or origin/main.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := opts.load(); err != nil {
				return err
			}
			kind, err := reftree.ParseKind(args[0])
			if err != nil {
				return err
			}
			tree, err := loadTree(cmd.Context(), repo)
			if err != nil {
				return err
			}
			node, ok := tree.Find(kind, args[1])
			if !ok {
				return fmt.Errorf("no %s named %q", kind, args[1])
			}
			items, err := menuFor(node)
			if err != nil {
				return err
			}
			printMenu(cmd.OutOrStdout(), items, tooltips)
			return nil
		},
	}
	cmd.Flags().StringVar(&repo, "repo", ".", "repository path")
	cmd.Flags().BoolVar(&tooltips, "tooltips", false, "print the tooltip of each entry")
	return cmd
}

func loadTree(ctx context.Context, path string) (*reftree.Tree, error) {
	svc, err := git.Open(path)
	if err != nil {
		return nil, err
	}
	refs, err := svc.Refs(ctx)
	if err != nil {
		return nil, err
	}
	return reftree.Build(refs, reftree.Deps{
		Repo:    svc,
		Runner:  reftree.RunnerFunc(skipJob),
		Dialogs: noDialogs{},
	}), nil
}

func skipJob(title string, _ func(ctx context.Context) error) {
	slog.Warn("jobs only run from the GUI", slog.String("job", title))
}

// menuFor resolves and opens the menu of node the way a right click does.
func menuFor(node reftree.Node) ([]*contextmenu.Item, error) {
	actions, _, err := contextmenu.Setup(noHost{}, noFilter{})
	if err != nil {
		return nil, err
	}
	actions.MouseClick(node, contextmenu.ButtonRight)
	opened, ok := actions.Open()
	if !ok {
		return nil, fmt.Errorf("no menu for %s", node.FullPath())
	}
	return opened.Items, nil
}

func printTree(w io.Writer, tree *reftree.Tree) {
	tree.Walk(func(n reftree.Node) bool {
		fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", reftree.Depth(n)), reftree.Label(n))
		return true
	})
}

func printMenu(w io.Writer, items []*contextmenu.Item, tooltips bool) {
	for _, it := range items {
		switch {
		case it.Separator:
			fmt.Fprintln(w, "-")
		case tooltips && it.ToolTip != "":
			fmt.Fprintf(w, "%s\t%s\n", it.Text, it.ToolTip)
		default:
			fmt.Fprintln(w, it.Text)
		}
	}
}

type noDialogs struct{}

func (noDialogs) PromptName(string, string) (string, bool) { return "", false }
func (noDialogs) Confirm(string, string) bool              { return false }
func (noDialogs) ManageRemotes(string)                     {}

type noHost struct{}

func (noHost) CollapseAll()         {}
func (noHost) ExpandAll()           {}
func (noHost) Reload()              {}
func (noHost) ManageRemotes(string) {}

type noFilter struct{}

func (noFilter) SetBranchFilter(string, bool) {}
