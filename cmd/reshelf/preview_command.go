package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "preview <scene-id>...",
		Short: "Show the renames a batch would perform without touching anything",
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
			client, err := ctx.newClient()
			if err != nil {
				return err
			}

			// Preview always simulates, never journals.
			previewCfg := *cfg
			previewCfg.Rename.DryRun = true

			run := newRunner(&previewCfg, client, nil, logger)
			outcomes := run.processScenes(cmd.Context(), args)

			fmt.Fprintln(cmd.OutOrStdout(), renderOutcomes(outcomes))
			return nil
		},
	}
}
