package main

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"reshelf/internal/catalog"
	"reshelf/internal/config"
	"reshelf/internal/history"
	"reshelf/internal/logging"
	"reshelf/internal/renamer"
	"reshelf/internal/services"
	"reshelf/internal/template"
)

// runner drives one batch of scene renames. Scenes and files are processed
// sequentially; a failure on one item is logged and recorded without
// aborting the rest of the batch.
type runner struct {
	cfg     *config.Config
	client  catalog.Client
	exec    *renamer.Executor
	journal *history.Store
	logger  *slog.Logger
	runID   string
}

func newRunner(cfg *config.Config, client catalog.Client, journal *history.Store, logger *slog.Logger) *runner {
	resolver := template.NewResolver(client)
	builder := renamer.NewPathBuilder(cfg, resolver)
	return &runner{
		cfg:     cfg,
		client:  client,
		exec:    renamer.NewExecutor(cfg, builder, client, logger),
		journal: journal,
		logger:  logger.With(logging.String(logging.FieldComponent, "runner")),
		runID:   uuid.NewString(),
	}
}

func (r *runner) processScenes(ctx context.Context, sceneIDs []string) []renamer.Outcome {
	ctx = services.WithRunID(ctx, r.runID)
	logger := logging.WithContext(ctx, r.logger)

	var outcomes []renamer.Outcome
	for _, sceneID := range sceneIDs {
		sceneCtx := services.WithSceneID(ctx, sceneID)
		scene, err := r.client.FindScene(sceneCtx, sceneID)
		if err != nil {
			logging.WithContext(sceneCtx, r.logger).Error("cannot load scene from catalog", logging.Error(err))
			outcome := renamer.Outcome{SceneID: sceneID, Action: renamer.ActionSkipped, Reason: err.Error()}
			r.record(sceneCtx, outcome)
			outcomes = append(outcomes, outcome)
			continue
		}
		outcomes = append(outcomes, r.processScene(sceneCtx, scene)...)
	}

	logger.Info("batch finished",
		logging.Int("scenes", len(sceneIDs)),
		logging.Int("files", len(outcomes)),
		logging.Bool("dry_run", r.cfg.Rename.DryRun),
	)
	return outcomes
}

func (r *runner) processScene(ctx context.Context, scene *catalog.Scene) []renamer.Outcome {
	logger := logging.WithContext(ctx, r.logger)
	if len(scene.Files) == 0 {
		logger.Warn("scene has no files on record")
		return nil
	}

	var outcomes []renamer.Outcome
	for i := range scene.Files {
		file := &scene.Files[i]
		fileCtx := services.WithFileID(ctx, file.ID)

		outcome, err := r.exec.Rename(fileCtx, scene, file)
		if err != nil {
			logging.WithContext(fileCtx, r.logger).Error("rename failed", logging.Error(err))
			failed := renamer.Outcome{
				SceneID: scene.ID,
				FileID:  file.ID,
				OldPath: file.Path,
				Action:  renamer.ActionSkipped,
				Reason:  err.Error(),
			}
			r.record(fileCtx, failed)
			outcomes = append(outcomes, failed)
			continue
		}
		r.record(fileCtx, *outcome)
		outcomes = append(outcomes, *outcome)
	}
	return outcomes
}

func (r *runner) record(ctx context.Context, outcome renamer.Outcome) {
	if r.journal == nil {
		return
	}
	entry := history.Entry{
		RunID:          r.runID,
		SceneID:        outcome.SceneID,
		FileID:         outcome.FileID,
		OldPath:        outcome.OldPath,
		NewPath:        outcome.NewPath,
		DuplicateIndex: outcome.DuplicateIndex,
		Action:         string(outcome.Action),
		DryRun:         r.cfg.Rename.DryRun,
		ErrorMessage:   outcome.Reason,
	}
	if err := r.journal.Record(ctx, &entry); err != nil {
		logging.WithContext(ctx, r.logger).Warn("cannot record rename outcome", logging.Error(err))
	}
}
