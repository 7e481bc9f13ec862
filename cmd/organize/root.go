package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tasktools/internal/config"
	"github.com/idilsaglam/tasktools/internal/logging"
	"github.com/idilsaglam/tasktools/internal/organizer"
	"github.com/idilsaglam/tasktools/internal/ui"
)

func newRootCommand() *cobra.Command {
	var (
		configPath string
		onConflict string
		logLevel   string
		theme      string
		dryRun     bool
	)

	rootCmd := &cobra.Command{
		Use:           "organize [root]",
		Short:         "Move files into subdirectories named after their extension",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			cfg, err := config.Load(configPath, config.Overrides{
				Theme:      theme,
				LogLevel:   logLevel,
				OnConflict: onConflict,
			})
			if err != nil {
				return err
			}
			logger, err := logging.New(cmd.ErrOrStderr(), "organize", cfg.LogLevel)
			if err != nil {
				return err
			}
			th, err := ui.NewTheme(cfg.Theme, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			report, err := organizer.Organize(root, organizer.Options{
				OnConflict: cfg.ConflictPolicy(),
				DryRun:     dryRun,
				Logger:     logger,
			})
			for _, e := range report.Errors {
				logger.Warn("entry skipped", "path", e.Path, "op", e.Op, "err", e.Err)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dryRun {
				for _, m := range report.Moved {
					fmt.Fprintf(out, "%s -> %s\n", m.From, m.To)
				}
			}
			th.OK(out, "Files organized successfully!")
			th.Info(out, th.Muted.Render(fmt.Sprintf("moved %d, skipped %d, failed %d",
				len(report.Moved), len(report.Skipped), len(report.Errors))))
			return nil
		},
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file path")
	rootCmd.Flags().StringVar(&onConflict, "on-conflict", "", "When the destination exists: skip, suffix or overwrite")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.Flags().StringVar(&theme, "theme", "", "Color theme: classic, neon or mono")
	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Print planned moves without touching files")
	return rootCmd
}
