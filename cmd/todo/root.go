package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/tasktools/internal/cli"
	"github.com/idilsaglam/tasktools/internal/config"
	"github.com/idilsaglam/tasktools/internal/logging"
	"github.com/idilsaglam/tasktools/internal/store/taskfile"
	"github.com/idilsaglam/tasktools/internal/tui"
	"github.com/idilsaglam/tasktools/internal/ui"
)

// Root flags (apply to every subcommand)
type rootFlags struct {
	configPath string
	taskFile   string
	theme      string
	logLevel   string
}

// env is what every subcommand needs once flags and config are resolved.
type env struct {
	cfg   *config.Config
	log   *log.Logger
	theme ui.Theme
	store *taskfile.Store
}

// loadError marks a task file that could not be read at startup.
type loadError struct {
	err error
}

func (e *loadError) Error() string { return "reading tasks: " + e.err.Error() }
func (e *loadError) Unwrap() error { return e.err }

func newRootCommand() *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:           "todo",
		Short:         "Interactive task list backed by a flat text file",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := flags.setup(cmd)
			if err != nil {
				return err
			}
			sess := cli.NewSession(e.store, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), e.theme, e.log)
			if f, ok := cmd.InOrStdin().(*os.File); ok {
				sess.Prompt = cli.Interactive(f)
			}
			return sess.Run()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&flags.taskFile, "file", "f", "", "Task file path (default tasks.txt)")
	rootCmd.PersistentFlags().StringVar(&flags.theme, "theme", "", "Color theme: classic, neon or mono")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(newTUICommand(&flags))
	return rootCmd
}

func newTUICommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse and edit tasks in a full-screen list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := flags.setup(cmd)
			if err != nil {
				return err
			}
			if err := tui.Run(e.store, e.theme); err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			return nil
		},
	}
}

func (f *rootFlags) setup(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(f.configPath, config.Overrides{
		TaskFile: f.taskFile,
		Theme:    f.theme,
		LogLevel: f.logLevel,
	})
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cmd.ErrOrStderr(), "todo", cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	for _, file := range cfg.Files {
		logger.Debug("config applied", "file", file)
	}
	theme, err := ui.NewTheme(cfg.Theme, cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}
	store, err := taskfile.Open(cfg.TaskFile, logger)
	if err != nil {
		return nil, &loadError{err: err}
	}
	return &env{cfg: cfg, log: logger, theme: theme, store: store}, nil
}
