package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reshelf/internal/preflight"
	"reshelf/internal/runlock"
)

func newRenameCommand(ctx *commandContext) *cobra.Command {
	var skipChecks bool

	cmd := &cobra.Command{
		Use:   "rename <scene-id>...",
		Short: "Rename the files of one or more scenes using the configured templates",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			lock, err := runlock.Acquire(cfg.LockPath())
			if err != nil {
				return err
			}
			defer lock.Release()

			if !skipChecks {
				results := preflight.Run(cmd.Context(), cfg)
				if failed := preflight.Failed(results); len(failed) > 0 {
					details := make([]string, 0, len(failed))
					for _, result := range failed {
						details = append(details, fmt.Sprintf("%s: %s", result.Name, result.Detail))
					}
					return fmt.Errorf("preflight checks failed:\n  %s", strings.Join(details, "\n  "))
				}
			}

			client, err := ctx.newClient()
			if err != nil {
				return err
			}
			journal, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer journal.Close()

			run := newRunner(cfg, client, journal, logger)
			outcomes := run.processScenes(cmd.Context(), args)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderOutcomes(outcomes))
			if cfg.Rename.DryRun {
				fmt.Fprintln(out, "Dry run enabled in configuration; nothing was moved.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipChecks, "skip-checks", false, "Skip preflight checks before renaming")
	return cmd
}
