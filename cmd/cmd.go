// Package cmd wires the command line: the root command starts the GUI and
// the subcommands print the ref tree, menus and configuration.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thiagokokada/gitk-refs/internal/buildinfo"
	"github.com/thiagokokada/gitk-refs/internal/config"
	"github.com/thiagokokada/gitk-refs/internal/gui"
)

// launchGUI is replaced in tests.
var launchGUI = gui.Run

type rootOptions struct {
	v          *viper.Viper
	configFile string
}

func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.Load(o.v, o.configFile)
	if err != nil {
		return nil, err
	}
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{v: config.New()}
	root := &cobra.Command{
		Use:           config.AppName + " [repo]",
		Short:         "Browse and manage the branches, remotes and tags of a git repository",
		Args:          cobra.MaximumNArgs(1),
		Version:       buildinfo.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			return launchGUI(gui.RunConfig{
				RepoPath:        repoArg(args),
				CommitLimit:     cfg.CommitLimit,
				ThemePreference: gui.ThemePreferenceFromString(cfg.Mode),
				AutoReload:      cfg.AutoReload,
				ConfirmDelete:   cfg.ConfirmDelete,
				Verbose:         cfg.Verbose,
			})
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default "+config.Dir()+"/config.yaml)")
	flags.String("mode", "auto", "color mode: auto, light, or dark")
	flags.Bool("auto-reload", true, "reload refs when the repository changes")
	flags.Int("commit-limit", 200, "number of commits shown for a branch")
	flags.Bool("confirm-delete", true, "ask before deleting branches and tags")
	flags.BoolP("verbose", "v", false, "enable verbose logging")
	for key, name := range map[string]string{
		config.KeyMode:          "mode",
		config.KeyAutoReload:    "auto-reload",
		config.KeyCommitLimit:   "commit-limit",
		config.KeyConfirmDelete: "confirm-delete",
		config.KeyVerbose:       "verbose",
	} {
		if err := opts.v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}

	root.AddCommand(
		newTreeCmd(opts),
		newMenuCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return root
}

func repoArg(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return "."
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			out, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", config.AppName, buildinfo.String())
			if v, err := gitVersion(); err != nil {
				fmt.Fprintf(out, "git: %v\n", err)
			} else {
				fmt.Fprintln(out, v)
			}
		},
	}
}

// Execute runs the root command against os.Args.
func Execute() error {
	return newRootCmd().Execute()
}
